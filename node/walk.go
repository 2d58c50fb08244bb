package node

// Walk visits n and its descendants depth first, in entry order.
//
// The depth passed to fn is the nominal sanitization depth: container
// elements and accessor values sit one level below their parent, and the
// elements of an iterable object one level below the object. Returning false
// from fn skips the children of the visited node. Signature-only accessor
// entries have no node and are not visited.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	switch n := n.(type) {
	case *Container:
		for _, e := range n.Entries {
			walk(e.Value, depth+1, fn)
		}
	case *Object:
		switch body := n.Body.(type) {
		case *Accessors:
			for _, e := range body.Entries {
				if e.Invoked() {
					walk(e.Value, depth+1, fn)
				}
			}
		case *Iterable:
			if body.Elements != nil {
				for _, e := range body.Elements.Entries {
					walk(e.Value, depth+1, fn)
				}
			}
		}
	}
}

// MaxDepth returns the deepest nominal depth reached by any node in the tree.
func MaxDepth(n Node) int {
	deepest := 0
	Walk(n, func(_ Node, depth int) bool {
		if depth > deepest {
			deepest = depth
		}
		return true
	})
	return deepest
}
