package introspect

import (
	"reflect"
)

// Shape is the category a value falls into for dumping purposes.
type Shape int

const (
	// ShapeOpaque is a handle that cannot be introspected: channels,
	// functions, unsafe pointers and anything exposing a file descriptor.
	ShapeOpaque Shape = iota

	// ShapeContainer is a slice, array or map.
	ShapeContainer

	// ShapeFailure is an *InvocationError produced by a failed accessor.
	ShapeFailure

	// ShapeObject is a struct, a pointer to one, or a value implementing
	// Inspectable or Iterable.
	ShapeObject

	// ShapePrimitive is a string, number, bool, byte slice or nil.
	ShapePrimitive
)

func (s Shape) String() string {
	switch s {
	case ShapeOpaque:
		return "opaque"
	case ShapeContainer:
		return "container"
	case ShapeFailure:
		return "failure"
	case ShapeObject:
		return "object"
	case ShapePrimitive:
		return "primitive"
	default:
		return "unknown"
	}
}

type fileDescriptor interface {
	Fd() uintptr
}

// Classify returns the shape of v. It never panics.
//
// Pointers and interfaces are looked through; a nil anywhere along the way
// makes the value a primitive nil.
func Classify(v any) Shape {
	if v == nil {
		return ShapePrimitive
	}
	if _, ok := v.(fileDescriptor); ok {
		if IsNil(v) {
			return ShapePrimitive
		}
		return ShapeOpaque
	}
	rv, ok := Indirect(v)
	if !ok {
		return ShapePrimitive
	}
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return ShapeOpaque
	case reflect.Slice:
		if rv.IsNil() {
			return ShapePrimitive
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return ShapePrimitive
		}
		return ShapeContainer
	case reflect.Map:
		if rv.IsNil() {
			return ShapePrimitive
		}
		return ShapeContainer
	case reflect.Array:
		return ShapeContainer
	}
	if _, ok := v.(*InvocationError); ok {
		return ShapeFailure
	}
	if rv.Kind() == reflect.Struct {
		return ShapeObject
	}
	if _, ok := v.(Inspectable); ok {
		return ShapeObject
	}
	if IsIterable(v) {
		return ShapeObject
	}
	return ShapePrimitive
}

// IsIterable reports whether an object enumerates its own elements.
func IsIterable(v any) bool {
	_, ok := AsIterable(v)
	return ok
}

// AsIterable returns v's Iterable implementation, looking at pointer
// receiver methods as well.
func AsIterable(v any) (Iterable, bool) {
	if it, ok := v.(Iterable); ok {
		return it, true
	}
	if p, ok := addressable(v); ok {
		if it, ok := p.Interface().(Iterable); ok {
			return it, true
		}
	}
	return nil, false
}

// Indirect follows pointers and interfaces until it reaches a concrete
// value. It reports false if it meets a nil on the way.
func Indirect(v any) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return rv, rv.IsValid()
}

// IsNil reports whether v is nil or a typed nil.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// ClassName returns the short and package qualified names of v's type,
// looking through pointers.
func ClassName(v any) (short, full string) {
	t := reflect.TypeOf(v)
	if t == nil {
		return "nil", "nil"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String(), t.String()
	}
	if t.PkgPath() == "" {
		return t.Name(), t.Name()
	}
	return t.Name(), t.PkgPath() + "." + t.Name()
}

// addressable returns a pointer to v (or to a copy of it) so that methods
// with pointer receivers are part of the method set.
func addressable(v any) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return reflect.Value{}, false
	}
	for rv.Kind() == reflect.Ptr && rv.Elem().Kind() == reflect.Ptr {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		return rv, true
	}
	ptr := reflect.New(rv.Type())
	ptr.Elem().Set(rv)
	return ptr, true
}
