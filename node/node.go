// Package node provides the sanitized tree produced by the dumper.
//
// A sanitized tree is a bounded, fully owned projection of an arbitrary Go
// value. It never holds references back to the value it was built from, so it
// is acyclic by construction and can be handed to an encoder and discarded.
//
// # Node Kinds
//
// The tree is a closed set of node types:
//   - Scalar: a primitive rendered with an explicit type prefix, e.g. "(int) 3"
//   - Null: the nil value
//   - Opaque: a handle that cannot be introspected (channels, funcs, files)
//   - Summary: a one-line stand-in for a value past the depth budget
//   - Container: an ordered sequence of keyed entries (slices, arrays, maps)
//   - Object: a class label plus either accessor values or iterated elements
//
// # Example Usage
//
//	n := node.NewContainer(node.LayoutSeq)
//	n.Append("0", node.Scalar{Text: "(int) 1"})
//	n.Append("1", node.Null{})
//
//	if n.Kind() == node.KindContainer {
//	    fmt.Println(len(n.Entries))
//	}
package node

// Kind describes the type of a Node.
type Kind int

const (
	// KindScalar is a primitive value rendered with its type prefix.
	KindScalar Kind = iota

	// KindNull represents nil.
	KindNull

	// KindOpaque is a handle that cannot be introspected, such as a
	// channel, a function or an open file.
	KindOpaque

	// KindSummary is a one-line description of a value that exceeded the
	// depth budget.
	KindSummary

	// KindContainer is an ordered or keyed collection of child nodes.
	KindContainer

	// KindObject is an object with a class label and a body.
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindNull:
		return "null"
	case KindOpaque:
		return "opaque"
	case KindSummary:
		return "summary"
	case KindContainer:
		return "container"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Node is a sanitized value.
//
// The set of implementations is closed; the unexported marker method keeps
// other packages from adding node types the encoder does not know about.
type Node interface {
	Kind() Kind
	isNode()
}

// Scalar is a primitive value with an explicit type prefix.
type Scalar struct {
	Text string
}

// Null is the sanitized nil value.
type Null struct{}

// Opaque is a non-introspectable handle.
type Opaque struct {
	Text string
}

// Summary stands in for a value that was not expanded.
type Summary struct {
	Text string
}

func (Scalar) Kind() Kind  { return KindScalar }
func (Null) Kind() Kind    { return KindNull }
func (Opaque) Kind() Kind  { return KindOpaque }
func (Summary) Kind() Kind { return KindSummary }

func (Scalar) isNode()  {}
func (Null) isNode()    {}
func (Opaque) isNode()  {}
func (Summary) isNode() {}

// NullText is the rendering of the nil value.
const NullText = "null"

// Text returns the one-line text of a leaf node.
//
// Containers and objects have no single-line text and report false.
func Text(n Node) (string, bool) {
	switch n := n.(type) {
	case Scalar:
		return n.Text, true
	case Null:
		return NullText, true
	case Opaque:
		return n.Text, true
	case Summary:
		return n.Text, true
	default:
		return "", false
	}
}
