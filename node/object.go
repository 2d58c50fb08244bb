package node

// Object is an object expanded within the depth budget.
//
// ClassName is the short display name; FullName carries the package
// qualified name and is rendered as auxiliary metadata.
type Object struct {
	ClassName string
	FullName  string
	Body      Body
}

func (*Object) Kind() Kind { return KindObject }
func (*Object) isNode()    {}

// Body is the content of an Object: either Accessors or Iterable.
type Body interface {
	isBody()
}

// Accessors lists an object's read operations in discovery order.
type Accessors struct {
	Entries []AccessorEntry
}

// AccessorEntry is one discovered accessor.
//
// Value is nil when the accessor takes required parameters and was therefore
// not invoked; only the signature is known.
type AccessorEntry struct {
	Signature string
	Value     Node
}

// Invoked reports whether the entry carries a value.
func (e AccessorEntry) Invoked() bool {
	return e.Value != nil
}

// Iterable holds the elements of an object that enumerates its own items.
type Iterable struct {
	Elements *Container
}

func (*Accessors) isBody() {}
func (*Iterable) isBody()  {}

// Add appends an accessor entry.
func (a *Accessors) Add(signature string, v Node) {
	a.Entries = append(a.Entries, AccessorEntry{Signature: signature, Value: v})
}

// Lookup returns the entry with the given signature.
func (a *Accessors) Lookup(signature string) (AccessorEntry, bool) {
	for _, e := range a.Entries {
		if e.Signature == signature {
			return e, true
		}
	}
	return AccessorEntry{}, false
}
