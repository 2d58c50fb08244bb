package dumpy

import (
	"errors"
	"fmt"
)

// ErrorKind describes the type of error.
type ErrorKind int

const (
	ErrUnknownFilter ErrorKind = iota
	ErrInvalidArgument
	ErrTooManyArguments
	ErrEncode
	ErrConfig
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnknownFilter:
		return "unknown filter"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrTooManyArguments:
		return "too many arguments"
	case ErrEncode:
		return "encoding failed"
	case ErrConfig:
		return "invalid configuration"
	default:
		return "error"
	}
}

// Error is returned by filters and configuration loading. Sanitization
// itself never fails.
type Error struct {
	Kind    ErrorKind
	Message string
	Filter  string // filter name, if raised by a filter
	Err     error  // underlying cause
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Filter != "" {
		msg = fmt.Sprintf("%s (in filter %q)", msg, e.Filter)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, so callers can test with
// errors.Is(err, dumpy.NewError(dumpy.ErrConfig, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// NewError creates a new error.
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// WithFilter adds the filter name to an error.
func (e *Error) WithFilter(name string) *Error {
	e.Filter = name
	return e
}

// WithCause attaches the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
