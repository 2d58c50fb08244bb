package introspect

import (
	"fmt"
)

// FaultKind describes how an accessor invocation failed.
type FaultKind int

const (
	// FaultPanic means the accessor panicked.
	FaultPanic FaultKind = iota
	// FaultError means the accessor returned a non-nil error.
	FaultError
	// FaultNotInvocable means the accessor requires arguments.
	FaultNotInvocable
)

func (k FaultKind) String() string {
	switch k {
	case FaultPanic:
		return "panic"
	case FaultError:
		return "error"
	case FaultNotInvocable:
		return "not invocable"
	default:
		return "fault"
	}
}

// InvocationError is the failure value produced when an accessor cannot be
// read. It is fed back into classification as its own shape, so a failing
// accessor shows up in the dump next to its siblings.
type InvocationError struct {
	Accessor string    // accessor signature, e.g. "GetOwner()"
	Fault    FaultKind // panic or returned error
	Type     string    // dynamic type of the panic value or error
	Message  string
	Cause    error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("Couldn't invoke method %s: %s %q with message %q", e.Accessor, e.Fault, e.Type, e.Message)
}

func (e *InvocationError) Unwrap() error {
	return e.Cause
}

// Result is the outcome of a fault-isolated invocation: either a value or
// an *InvocationError, never both.
type Result struct {
	Value any
	Err   *InvocationError
}

// OK reports whether the invocation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Unwrap returns the value on success and the *InvocationError otherwise.
func (r Result) Unwrap() any {
	if r.Err != nil {
		return r.Err
	}
	return r.Value
}

func invoke(signature string, get func() (any, error)) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: panicError(signature, r)}
		}
	}()
	v, err := get()
	if err != nil {
		return Result{Err: &InvocationError{
			Accessor: signature,
			Fault:    FaultError,
			Type:     fmt.Sprintf("%T", err),
			Message:  fmt.Sprint(err),
			Cause:    err,
		}}
	}
	return Result{Value: v}
}

// Recovered converts a recovered panic value into an *InvocationError
// attributed to the operation with the given signature.
func Recovered(signature string, r any) *InvocationError {
	return panicError(signature, r)
}

func panicError(signature string, r any) *InvocationError {
	e := &InvocationError{
		Accessor: signature,
		Fault:    FaultPanic,
		Type:     fmt.Sprintf("%T", r),
	}
	// fmt recovers from panicking Error and String methods.
	e.Message = fmt.Sprint(r)
	if err, ok := r.(error); ok {
		e.Cause = err
	}
	return e
}
