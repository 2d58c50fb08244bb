package introspect

import (
	"fmt"
	"reflect"
)

// StringOf returns the string form of v when its type implements
// fmt.Stringer or error. A panic inside the method is folded into the
// returned text.
func StringOf(v any) (s string, ok bool) {
	ptr, found := addressable(v)
	if !found {
		return "", false
	}
	var call func() string
	switch x := ptr.Interface().(type) {
	case fmt.Stringer:
		call = x.String
	case error:
		call = x.Error
	default:
		return "", false
	}
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("(string) casting panicked with %q, please report or fix", fmt.Sprint(r))
			ok = true
		}
	}()
	return call(), true
}

func formatValue(rv reflect.Value) string {
	if !rv.IsValid() {
		return ""
	}
	if !rv.CanInterface() {
		return rv.String()
	}
	return fmt.Sprint(rv.Interface())
}
