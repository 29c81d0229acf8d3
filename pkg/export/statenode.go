package export

// StateNode is one node of the host's state graph. The graph is
// externally owned; this module only walks parent links to locate the
// exportable structure behind a decorated selection.
type StateNode interface {
	// Parent returns the parent node, nil at the root.
	Parent() StateNode

	// Kind names what the node holds, e.g. "structure" or
	// "representation".
	Kind() string
}

// maxWalkDepth bounds the ancestor walk; the host tree depth is
// caller-controlled, so a cycle or a pathological tree must not spin
// forever.
const maxWalkDepth = 1024

// FindAncestor walks up from n and returns the nearest ancestor
// (including n itself) of the given kind, or nil when none exists
// within the depth bound. The walk is an explicit loop, never
// recursion.
func FindAncestor(n StateNode, kind string) StateNode {
	for depth := 0; n != nil && depth < maxWalkDepth; depth++ {
		if n.Kind() == kind {
			return n
		}
		n = n.Parent()
	}
	return nil
}
