package hast

// WalkResult tells Visit how to continue.
type WalkResult int

// WalkContinue continues with the children of the current node.
const WalkContinue WalkResult = 0

// WalkSkip skips the children of the current node.
const WalkSkip WalkResult = 1

// WalkStop stops the traversal immediately.
const WalkStop WalkResult = 2

// Visitor is called for each node of a tree, with the index of the node
// in its parent's children and the parent. For the start node, index is -1
// and parent is nil.
type Visitor func(n Node, index int, parent Parent) WalkResult

// Visit walks the tree below and including n in document order (pre-order).
func Visit(n Node, fn Visitor) {
	visit(n, -1, nil, fn)
}

func visit(n Node, index int, parent Parent, fn Visitor) WalkResult {
	r := fn(n, index, parent)
	if r != WalkContinue {
		return r
	}
	p, ok := n.(Parent)
	if !ok {
		return WalkContinue
	}
	for i := 0; i < len(p.ChildNodes()); i++ {
		if visit(p.ChildNodes()[i], i, p, fn) == WalkStop {
			return WalkStop
		}
	}
	return WalkContinue
}

// VisitElements walks the elements below and including n in document order.
func VisitElements(n Node, fn func(e *Element, index int, parent Parent) WalkResult) {
	Visit(n, func(node Node, index int, parent Parent) WalkResult {
		if e, ok := node.(*Element); ok {
			return fn(e, index, parent)
		}
		return WalkContinue
	})
}

// FindAll collects all elements below and including n with one of the given
// tag names.
func FindAll(n Node, tags ...string) []*Element {
	var found []*Element
	VisitElements(n, func(e *Element, _ int, _ Parent) WalkResult {
		if IsElement(e, tags...) {
			found = append(found, e)
		}
		return WalkContinue
	})
	return found
}
