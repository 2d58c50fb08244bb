// Package sanitize turns arbitrary Go values into bounded node trees.
//
// Sanitization walks a value down to a maximum depth. Objects at the depth
// limit collapse into a one-line summary built from their type name, their
// identity accessor and their string form; containers at the limit collapse
// into an element count. Containers within the limit emit at most
// Policy.ContainerCap elements. Together these bound the size of the tree
// for any input, including cyclic object graphs.
//
// Sanitize never fails. Accessors that panic or return an error are shown
// as their failure message next to their siblings.
package sanitize

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/brother79/dumpy/introspect"
	"github.com/brother79/dumpy/node"
)

// Sanitizer converts values into node trees. It holds no per-call state and
// is safe for concurrent use.
type Sanitizer struct {
	policy Policy
	logger *zap.Logger
}

// New creates a Sanitizer. A nil logger discards log output.
func New(policy Policy, logger *zap.Logger) *Sanitizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sanitizer{policy: policy.normalized(), logger: logger}
}

// Policy returns the effective policy.
func (s *Sanitizer) Policy() Policy {
	return s.policy
}

// Sanitize converts v into a node tree no deeper than maxDepth. A negative
// maxDepth is treated as zero.
func (s *Sanitizer) Sanitize(v any, maxDepth int) (n node.Node) {
	if maxDepth < 0 {
		maxDepth = 0
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("sanitizer recovered from panic",
				zap.String("type", fmt.Sprintf("%T", v)),
				zap.String("panic", fmt.Sprint(r)),
				zap.Stack("stack"))
			n = node.Summary{Text: fmt.Sprintf("unable to sanitize %T: %s", v, fmt.Sprint(r))}
		}
	}()
	return s.sanitize(v, maxDepth, 0)
}

func (s *Sanitizer) sanitize(v any, maxDepth, depth int) node.Node {
	switch introspect.Classify(v) {
	case introspect.ShapeOpaque:
		return node.Opaque{Text: "Resource(" + reflect.TypeOf(v).String() + ")"}
	case introspect.ShapeContainer:
		return s.walkContainer(v, maxDepth, depth)
	case introspect.ShapeFailure:
		err, _ := v.(*introspect.InvocationError)
		return node.Scalar{Text: err.Error()}
	case introspect.ShapeObject:
		return s.object(v, maxDepth, depth)
	default:
		return primitive(v)
	}
}

func (s *Sanitizer) object(v any, maxDepth, depth int) node.Node {
	short, full := introspect.ClassName(v)
	if depth >= maxDepth {
		return node.Summary{Text: s.summarize(v, full)}
	}

	obj := &node.Object{ClassName: short, FullName: full}
	if it, ok := introspect.AsIterable(v); ok {
		obj.Body = &node.Iterable{Elements: s.walkIterable(it, maxDepth, depth)}
		return obj
	}

	acc := &node.Accessors{}
	sigs := keySet{}
	opts := introspect.DiscoverOptions{IncludeFields: s.policy.IncludeFields}
	for _, a := range introspect.Discover(v, opts) {
		sig := sigs.unique(stringText(a.Signature()), "accessor")
		if !a.Invocable() {
			acc.Add(sig, nil)
			continue
		}
		res := a.Invoke()
		if !res.OK() {
			s.logger.Debug("accessor invocation failed",
				zap.String("class", full),
				zap.String("accessor", res.Err.Accessor),
				zap.Stringer("fault", res.Err.Fault),
				zap.Error(res.Err))
		}
		acc.Add(sig, s.sanitize(res.Unwrap(), maxDepth, depth+1))
	}
	obj.Body = acc
	return obj
}

// summarize describes an object past the depth budget on one line:
// type name, identity, string form and, for times, the timestamp.
func (s *Sanitizer) summarize(v any, full string) string {
	var b strings.Builder
	b.WriteString(full)
	if id, ok := introspect.IdentityOf(v); ok {
		b.WriteString(" ")
		b.WriteString(id)
	}
	if str, ok := introspect.StringOf(v); ok {
		b.WriteString(" ")
		b.WriteString(str)
	}
	if t, ok := asTime(v); ok {
		b.WriteString(" : ")
		b.WriteString(t.Format(s.policy.TimeLayout))
	}
	return b.String()
}

func asTime(v any) (time.Time, bool) {
	rv, ok := introspect.Indirect(v)
	if !ok || !rv.CanInterface() {
		return time.Time{}, false
	}
	t, ok := rv.Interface().(time.Time)
	return t, ok
}

func primitive(v any) node.Node {
	rv, ok := introspect.Indirect(v)
	if !ok {
		return node.Null{}
	}
	switch rv.Kind() {
	case reflect.String:
		return node.Scalar{Text: "(string) " + stringText(rv.String())}
	case reflect.Bool:
		if rv.Bool() {
			return node.Scalar{Text: "(bool) true"}
		}
		return node.Scalar{Text: "(bool) false"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return node.Scalar{Text: "(int) " + strconv.FormatInt(rv.Int(), 10)}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return node.Scalar{Text: "(int) " + strconv.FormatUint(rv.Uint(), 10)}
	case reflect.Float32:
		return node.Scalar{Text: "(float) " + strconv.FormatFloat(rv.Float(), 'g', -1, 32)}
	case reflect.Float64:
		return node.Scalar{Text: "(float) " + strconv.FormatFloat(rv.Float(), 'g', -1, 64)}
	case reflect.Complex64:
		return node.Scalar{Text: "(complex) " + strconv.FormatComplex(rv.Complex(), 'g', -1, 64)}
	case reflect.Complex128:
		return node.Scalar{Text: "(complex) " + strconv.FormatComplex(rv.Complex(), 'g', -1, 128)}
	case reflect.Slice, reflect.Map:
		if rv.IsNil() {
			return node.Null{}
		}
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return node.Scalar{Text: "(bytes) " + bytesText(rv.Bytes())}
		}
	}
	return node.Scalar{Text: "(" + rv.Type().String() + ") " + fmt.Sprint(rv.Interface())}
}

// stringText replaces invalid UTF-8 so the text can be encoded.
func stringText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}

func bytesText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return hex.EncodeToString(b)
}
