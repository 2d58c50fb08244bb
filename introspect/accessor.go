package introspect

import (
	"reflect"
	"regexp"
	"strings"
)

var accessorPattern = regexp.MustCompile(`(?i)^(get|has|is)`)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// DiscoverOptions controls reflection-based discovery.
type DiscoverOptions struct {
	// IncludeFields reports exported struct fields after the methods.
	IncludeFields bool
}

// Discover returns the accessors of v.
//
// Values implementing Inspectable describe themselves. Everything else is
// discovered by reflection over the method set of *T, in the order
// reflection reports methods (sorted by name), followed by the exported
// fields in declaration order when opts.IncludeFields is set.
func Discover(v any, opts DiscoverOptions) []Accessor {
	if in, ok := v.(Inspectable); ok {
		return inspectable(in)
	}
	ptr, ok := addressable(v)
	if !ok {
		return nil
	}
	if in, ok := ptr.Interface().(Inspectable); ok {
		return inspectable(in)
	}

	var out []Accessor
	t := ptr.Type()
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if !accessorPattern.MatchString(m.Name) {
			continue
		}
		params, required := describeParams(m.Type, 1)
		acc := Accessor{Name: m.Name, Params: params}
		if required == 0 {
			acc.Get = getter(ptr.Method(i))
		}
		out = append(out, acc)
	}

	if opts.IncludeFields && ptr.Elem().Kind() == reflect.Struct {
		out = append(out, fields(ptr.Elem())...)
	}
	return out
}

// inspectable copies the self-reported accessors. A panicking Accessors
// method is reported as a single failing accessor.
func inspectable(in Inspectable) (out []Accessor) {
	defer func() {
		if r := recover(); r != nil {
			out = []Accessor{{
				Name: "Accessors",
				Get: func() (any, error) {
					panic(r)
				},
			}}
		}
	}()
	return append([]Accessor(nil), in.Accessors()...)
}

// describeParams renders the parameters of a function type starting at
// index first. The returned count excludes a trailing variadic parameter,
// which can always be left empty.
func describeParams(ft reflect.Type, first int) (params []string, required int) {
	for i := first; i < ft.NumIn(); i++ {
		pt := ft.In(i)
		if ft.IsVariadic() && i == ft.NumIn()-1 {
			params = append(params, "..."+pt.Elem().String())
			continue
		}
		params = append(params, pt.String())
		required++
	}
	return params, required
}

func getter(method reflect.Value) func() (any, error) {
	return func() (any, error) {
		return unpackResults(method.Call(nil))
	}
}

// unpackResults maps method results onto a single value. A trailing error
// result is treated as the failure channel of the call.
func unpackResults(out []reflect.Value) (any, error) {
	switch {
	case len(out) == 0:
		return nil, nil
	case len(out) == 1:
		return out[0].Interface(), nil
	case len(out) == 2 && out[1].Type().Implements(errorType):
		if err, _ := out[1].Interface().(error); err != nil && !IsNil(err) {
			return nil, err
		}
		return out[0].Interface(), nil
	}
	values := make([]any, len(out))
	for i, o := range out {
		values[i] = o.Interface()
	}
	return values, nil
}

func fields(sv reflect.Value) []Accessor {
	st := sv.Type()
	var out []Accessor
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if !f.IsExported() {
			continue
		}
		idx := i
		out = append(out, Accessor{
			Name:  f.Name,
			Field: true,
			Get: func() (any, error) {
				return sv.Field(idx).Interface(), nil
			},
		})
	}
	return out
}

var identityNames = []string{"GetID", "GetId", "ID", "Id"}

// NoID is the identity text used when the identity accessor returns nil.
const NoID = "(no id)"

// IdentityOf looks for a zero-argument identity accessor (GetID, GetId, ID
// or Id) and returns "#<id>", or NoID when it returns nil. It reports false
// when v has no such accessor or the accessor fails.
func IdentityOf(v any) (string, bool) {
	acc, ok := identityAccessor(v)
	if !ok {
		return "", false
	}
	res := acc.Invoke()
	if !res.OK() {
		return "", false
	}
	if IsNil(res.Value) {
		return NoID, true
	}
	rv, _ := Indirect(res.Value)
	return "#" + formatValue(rv), true
}

func identityAccessor(v any) (Accessor, bool) {
	if in, ok := v.(Inspectable); ok {
		for _, acc := range inspectable(in) {
			if acc.Invocable() && isIdentityName(acc.Name) {
				return acc, true
			}
		}
		return Accessor{}, false
	}
	ptr, ok := addressable(v)
	if !ok {
		return Accessor{}, false
	}
	for _, name := range identityNames {
		m, ok := ptr.Type().MethodByName(name)
		if !ok {
			continue
		}
		params, required := describeParams(m.Type, 1)
		if required > 0 {
			continue
		}
		return Accessor{Name: name, Params: params, Get: getter(ptr.Method(m.Index))}, true
	}
	return Accessor{}, false
}

func isIdentityName(name string) bool {
	return strings.EqualFold(name, "getid") || strings.EqualFold(name, "id")
}
