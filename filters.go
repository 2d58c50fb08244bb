package dumpy

import (
	"fmt"
	"html"
	htmltemplate "html/template"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Built-in filter implementations. Each takes escape to select between the
// plain and the HTML-safe rendering.

// Pre wraps text in a <pre> block.
func Pre(text string) string {
	return "<pre>" + text + "</pre>"
}

// filterPre implements the built-in `pre` filter.
func (d *Dumper) filterPre(escape bool) FilterFunc {
	return func(val any, args ...any) (any, error) {
		if len(args) > 0 {
			return nil, NewError(ErrTooManyArguments, "pre takes no arguments").WithFilter("pre")
		}
		if safe, ok := val.(htmltemplate.HTML); ok {
			return Pre(string(safe)), nil
		}
		text := stringify(val)
		if escape {
			text = html.EscapeString(text)
		}
		return Pre(text), nil
	}
}

// filterDump implements the built-in `dump` filter.
func (d *Dumper) filterDump(escape bool) FilterFunc {
	return func(val any, args ...any) (any, error) {
		if len(args) > 0 {
			return nil, NewError(ErrTooManyArguments, "dump takes no arguments").WithFilter("dump")
		}
		return Pre(d.raw(val, escape)), nil
	}
}

// filterDumpy implements the built-in `dumpy` filter. The optional argument
// is the depth budget.
func (d *Dumper) filterDumpy(escape bool) FilterFunc {
	return func(val any, args ...any) (any, error) {
		depth, err := depthArg(d.cfg.MaxDepth, d.cfg.depthLimit(), args)
		if err != nil {
			return nil, err.WithFilter("dumpy")
		}
		return Pre(d.yaml(val, depth, escape)), nil
	}
}

func stringify(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// depthArg parses the optional depth argument. Integers of any width,
// integral floats and numeric strings are accepted up to limit.
func depthArg(def, limit int, args []any) (int, *Error) {
	switch len(args) {
	case 0:
		return def, nil
	case 1:
	default:
		return 0, NewError(ErrTooManyArguments, fmt.Sprintf("expected at most 1 argument, got %d", len(args)))
	}

	var depth int64
	rv := reflect.ValueOf(args[0])
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		depth = rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt32 {
			return 0, NewError(ErrInvalidArgument, fmt.Sprintf("depth %d is out of range", u))
		}
		depth = int64(u)
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, NewError(ErrInvalidArgument, fmt.Sprintf("depth must be an integer, got %v", f))
		}
		depth = int64(f)
	case reflect.String:
		n, err := strconv.Atoi(strings.TrimSpace(rv.String()))
		if err != nil {
			return 0, NewError(ErrInvalidArgument, fmt.Sprintf("depth must be an integer, got %q", rv.String())).WithCause(err)
		}
		depth = int64(n)
	default:
		return 0, NewError(ErrInvalidArgument, fmt.Sprintf("depth must be an integer, got %T", args[0]))
	}

	if depth < 0 || depth > math.MaxInt32 {
		return 0, NewError(ErrInvalidArgument, fmt.Sprintf("depth %d is out of range", depth))
	}
	if depth > int64(limit) {
		return 0, NewError(ErrInvalidArgument, fmt.Sprintf("depth %d exceeds the limit of %d", depth, limit))
	}
	return int(depth), nil
}
