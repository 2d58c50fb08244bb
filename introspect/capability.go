// Package introspect classifies Go values and discovers their accessors.
//
// The sanitizer never inspects values directly. It asks this package two
// questions about every value it meets: what shape is it (Classify), and
// which read operations does it expose (Discover). Answers come from
// reflection by default, or from explicit capability interfaces when a type
// wants to control how it is dumped.
//
// # Accessors
//
// An accessor is an exported method whose name starts with "Get", "Has" or
// "Is" (case-insensitive). Methods without required parameters are invoked;
// methods with required parameters are only reported by signature:
//
//	func (u *User) GetName() string           // invoked: GetName()
//	func (u *User) IsAdmin() bool             // invoked: IsAdmin()
//	func (u *User) HasRole(role string) bool  // reported: HasRole(string)
//
// Invocation is fault isolated. A panic or a non-nil error return becomes an
// *InvocationError carried in the Result instead of escaping to the caller.
//
// # Capabilities
//
// Types can opt out of reflection by implementing Inspectable, and can ask to
// be dumped as a collection by implementing Iterable.
package introspect

import (
	"iter"
	"strings"
)

// Inspectable is implemented by values that describe their own accessors.
//
// When a value implements Inspectable, reflection-based discovery is skipped
// and the returned accessors are used verbatim, in order.
//
// Example implementation:
//
//	func (s *Session) Accessors() []introspect.Accessor {
//	    return []introspect.Accessor{
//	        {Name: "GetUser", Get: func() (any, error) { return s.user, nil }},
//	        {Name: "GetAttribute", Params: []string{"name"}},
//	    }
//	}
type Inspectable interface {
	Accessors() []Accessor
}

// Iterable is implemented by objects that enumerate their own elements.
//
// Objects implementing Iterable are dumped through their elements instead
// of their accessors.
type Iterable interface {
	// Iterate returns a sequence of key/element pairs.
	// Called once per dump.
	Iterate() iter.Seq2[any, any]
}

// Lener provides the element count of an Iterable up front.
//
// Without it the count is taken while walking the elements.
type Lener interface {
	Len() int
}

// Accessor is a discovered read operation.
type Accessor struct {
	// Name is the method or field name.
	Name string

	// Params lists the parameters for display. Reflection renders them by
	// type since Go does not keep parameter names at runtime.
	Params []string

	// Field marks an exported struct field rather than a method.
	Field bool

	// Get reads the value. It is nil when the accessor takes required
	// parameters and cannot be invoked without arguments.
	Get func() (any, error)
}

// Signature returns the display signature, e.g. "GetItem(int, string)".
//
// Fields are shown by name only.
func (a Accessor) Signature() string {
	if a.Field {
		return a.Name
	}
	return a.Name + "(" + strings.Join(a.Params, ", ") + ")"
}

// Invocable reports whether the accessor can be called without arguments.
func (a Accessor) Invocable() bool {
	return a.Get != nil
}

// Invoke calls the accessor with fault isolation.
func (a Accessor) Invoke() Result {
	if a.Get == nil {
		return Result{Err: &InvocationError{
			Accessor: a.Signature(),
			Fault:    FaultNotInvocable,
			Type:     "arguments",
			Message:  "accessor requires arguments",
		}}
	}
	return invoke(a.Signature(), a.Get)
}
