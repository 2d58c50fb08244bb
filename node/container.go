package node

// Layout tells an encoder whether a container is positional or keyed.
type Layout int

const (
	// LayoutSeq is a positional sequence; entry keys are indexes.
	LayoutSeq Layout = iota
	// LayoutMap is a keyed mapping.
	LayoutMap
)

func (l Layout) String() string {
	switch l {
	case LayoutSeq:
		return "seq"
	case LayoutMap:
		return "map"
	default:
		return "unknown"
	}
}

// MoreKey is the mapping key that holds the truncation message. Sanitized
// mapping keys never use it.
const MoreKey = "..."

// Entry is a single keyed child of a container.
type Entry struct {
	Key   string
	Value Node
}

// Container is an ordered collection of sanitized elements.
//
// More holds the truncation message ("... and N more ...") when the source
// container had more elements than were emitted, and is empty otherwise.
type Container struct {
	Layout  Layout
	Entries []Entry
	More    string
}

// NewContainer creates an empty container with the given layout.
func NewContainer(layout Layout) *Container {
	return &Container{Layout: layout}
}

// Append adds an entry at the end of the container.
func (c *Container) Append(key string, v Node) {
	c.Entries = append(c.Entries, Entry{Key: key, Value: v})
}

// Len returns the number of emitted entries, not counting the truncation
// message.
func (c *Container) Len() int {
	return len(c.Entries)
}

// Truncated reports whether elements were dropped.
func (c *Container) Truncated() bool {
	return c.More != ""
}

func (*Container) Kind() Kind { return KindContainer }
func (*Container) isNode()    {}
