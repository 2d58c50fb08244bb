package sanitize

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/brother79/dumpy/introspect"
	"github.com/brother79/dumpy/node"
)

// walkContainer sanitizes a slice, array or map.
//
// Within the depth budget at most ContainerCap elements are emitted and the
// remainder is reported in the container's More message. At the limit the
// whole container collapses into a count.
func (s *Sanitizer) walkContainer(v any, maxDepth, depth int) node.Node {
	rv, _ := introspect.Indirect(v)
	count := rv.Len()
	if depth >= maxDepth {
		return node.Summary{Text: countSummary(count, rv.Type().String())}
	}

	var c *node.Container
	if rv.Kind() == reflect.Map {
		c = node.NewContainer(node.LayoutMap)
		keys := newKeySet()
		for _, e := range sortedEntries(rv) {
			if c.Len() >= s.policy.ContainerCap {
				break
			}
			key := keys.unique(formatKey(e.key), keyType(e.key))
			c.Append(key, s.sanitize(e.value.Interface(), maxDepth, depth+1))
		}
	} else {
		c = node.NewContainer(node.LayoutSeq)
		for i := 0; i < count && c.Len() < s.policy.ContainerCap; i++ {
			c.Append(strconv.Itoa(i), s.sanitize(rv.Index(i).Interface(), maxDepth, depth+1))
		}
	}
	if rest := count - c.Len(); rest > 0 {
		c.More = moreMessage(rest, false)
	}
	return c
}

// walkIterable sanitizes the elements of an object implementing
// introspect.Iterable. Elements keep the object's depth plus one, like
// container elements.
func (s *Sanitizer) walkIterable(it introspect.Iterable, maxDepth, depth int) (c *node.Container) {
	c = node.NewContainer(node.LayoutSeq)
	count, known := iterableLen(it)

	seen := 0
	overflow := false
	keys := newKeySet()
	defer func() {
		if r := recover(); r != nil {
			err := introspect.Recovered("Iterate()", r)
			s.logger.Debug("iteration failed", zap.Error(err))
			c.Append(keys.unique("Iterate()", "error"), node.Scalar{Text: err.Error()})
			c.Layout = node.LayoutMap
		}
		if !known {
			count = seen
		}
		if rest := count - c.Len(); rest > 0 {
			c.More = moreMessage(rest, overflow)
		}
	}()

	seq := it.Iterate()
	if seq == nil {
		return c
	}
	for k, v := range seq {
		if c.Len() < s.policy.ContainerCap {
			key := keys.unique(stringText(fmt.Sprint(k)), fmt.Sprintf("%T", k))
			if key != strconv.Itoa(seen) {
				c.Layout = node.LayoutMap
			}
			c.Append(key, s.sanitize(v, maxDepth, depth+1))
			seen++
			continue
		}
		if known {
			break
		}
		seen++
		if seen > s.policy.CountLimit {
			overflow = true
			break
		}
	}
	return c
}

func iterableLen(it introspect.Iterable) (n int, ok bool) {
	l, isLener := it.(introspect.Lener)
	if !isLener {
		return 0, false
	}
	defer func() {
		if recover() != nil {
			n, ok = 0, false
		}
	}()
	return l.Len(), true
}

func countSummary(count int, typeName string) string {
	if count > 0 {
		return fmt.Sprintf("%d of %s", count, typeName)
	}
	return "empty " + typeName
}

func moreMessage(rest int, atLeast bool) string {
	if atLeast {
		return fmt.Sprintf("... and at least %d more ...", rest)
	}
	return fmt.Sprintf("... and %d more ...", rest)
}

type mapEntry struct {
	key, value reflect.Value
}

// sortedEntries orders map entries by key: numerically, then lexically, then
// by their printed form, since Go maps have no natural order. Entries are
// read with MapRange; a NaN key cannot be looked up again with MapIndex.
func sortedEntries(rv reflect.Value) []mapEntry {
	entries := make([]mapEntry, 0, rv.Len())
	mi := rv.MapRange()
	for mi.Next() {
		entries = append(entries, mapEntry{key: mi.Key(), value: mi.Value()})
	}
	slices.SortStableFunc(entries, func(a, b mapEntry) int {
		return compareKeys(a.key, b.key)
	})
	return entries
}

// keySet hands out mapping keys that are unique within one container.
// MoreKey is reserved for the truncation message.
type keySet map[string]struct{}

func newKeySet() keySet {
	return keySet{node.MoreKey: {}}
}

// unique returns key, or key qualified by typeName and then a counter when
// it is already taken. Distinct keys can print alike, e.g. 1 and "1".
func (ks keySet) unique(key, typeName string) string {
	if _, taken := ks[key]; taken {
		base := key + " (" + typeName + ")"
		key = base
		for i := 2; ; i++ {
			if _, taken := ks[key]; !taken {
				break
			}
			key = base + " " + strconv.Itoa(i)
		}
	}
	ks[key] = struct{}{}
	return key
}

func keyType(k reflect.Value) string {
	k = elem(k)
	if !k.IsValid() {
		return "nil"
	}
	return k.Type().String()
}

func compareKeys(a, b reflect.Value) int {
	a, b = elem(a), elem(b)
	ra, rb := keyRank(a), keyRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch {
	case isInt(a) && isInt(b):
		return cmp.Compare(a.Int(), b.Int())
	case isUint(a) && isUint(b):
		return cmp.Compare(a.Uint(), b.Uint())
	case ra == 0:
		return cmp.Compare(toFloat(a), toFloat(b))
	case ra == 1:
		return strings.Compare(a.String(), b.String())
	}
	return strings.Compare(formatKey(a), formatKey(b))
}

func elem(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv
}

func keyRank(rv reflect.Value) int {
	switch {
	case isInt(rv), isUint(rv), rv.Kind() == reflect.Float32, rv.Kind() == reflect.Float64:
		return 0
	case rv.Kind() == reflect.String:
		return 1
	default:
		return 2
	}
}

func isInt(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func toFloat(rv reflect.Value) float64 {
	switch {
	case isInt(rv):
		return float64(rv.Int())
	case isUint(rv):
		return float64(rv.Uint())
	default:
		return rv.Float()
	}
}

func formatKey(k reflect.Value) string {
	k = elem(k)
	if !k.IsValid() || !k.CanInterface() {
		return "<invalid>"
	}
	return stringText(fmt.Sprint(k.Interface()))
}
