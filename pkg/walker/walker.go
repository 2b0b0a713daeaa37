// Package walker implements deterministic depth-first traversal over a
// syntax tree, producing an ordered enter/leave event stream with caller
// controls for skipping subtrees and aborting the walk.
package walker

import (
	"github.com/Sumatoshi-tech/lintfang/pkg/tree"
)

// VisitFunc observes one node together with its parent (nil for the root).
type VisitFunc func(node, parent *tree.Node)

// Walker drives a single depth-first traversal. Instance state is reset at
// the start of every Traverse call, so one Walker can be reused
// sequentially but never concurrently.
type Walker struct {
	keys  tree.KeyMap
	enter VisitFunc
	leave VisitFunc

	current *tree.Node
	parents []*tree.Node
	skipped bool
	broken  bool
}

// New creates a walker with the given child-key map and callbacks. Either
// callback may be nil. A nil key map falls back to per-node field
// enumeration for every type.
func New(keys tree.KeyMap, enter, leave VisitFunc) *Walker {
	return &Walker{keys: keys, enter: enter, leave: leave}
}

// Skip requests that the children of the node currently being entered are
// not descended into. Its leave callback still fires.
func (w *Walker) Skip() {
	w.skipped = true
}

// Break aborts the remainder of the traversal immediately: no further enter
// or leave calls occur, including leaves of currently open ancestors.
func (w *Walker) Break() {
	w.broken = true
}

// Current returns the node being visited, queryable from either callback.
func (w *Walker) Current() *tree.Node {
	return w.current
}

// Parents returns a snapshot copy of the ancestor chain of the current
// node, ordered root-first. Mutating the returned slice has no effect on
// the traversal.
func (w *Walker) Parents() []*tree.Node {
	snapshot := make([]*tree.Node, len(w.parents))
	copy(snapshot, w.parents)

	return snapshot
}

// Traverse walks the tree rooted at root in depth-first order, calling
// enter before a node's children and leave after.
func (w *Walker) Traverse(root *tree.Node) {
	w.current = nil
	w.parents = w.parents[:0]
	w.skipped = false
	w.broken = false

	w.visit(root, nil)
}

func (w *Walker) visit(node, parent *tree.Node) {
	if node == nil || w.broken {
		return
	}

	w.current = node
	w.skipped = false

	if w.enter != nil {
		w.enter(node, parent)
	}

	if w.broken {
		return
	}

	if !w.skipped {
		w.parents = append(w.parents, node)

		for _, key := range w.keys.ChildKeys(node) {
			for _, child := range node.ChildNodes(key) {
				w.visit(child, node)

				if w.broken {
					return
				}
			}
		}

		w.parents = w.parents[:len(w.parents)-1]
	}

	w.current = node

	if w.leave != nil {
		w.leave(node, parent)
	}
}
