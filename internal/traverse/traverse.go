// Package traverse walks ast trees depth-first with per-kind enter
// handlers, explicit subtree pruning and in-place replacement.
//
// Each node is entered once. When a handler replaces the node it was
// called for, the replacement is dispatched again (so handlers registered
// for the new kind run) and its children are walked instead of the
// original's. Children are snapshotted before descent, so replacing a child
// while it is visited is safe.
package traverse

import (
	"fmt"

	"github.com/roach88/remap/internal/ast"
)

// Action tells the walker how to proceed after a handler returns.
type Action uint8

const (
	// Continue descends into the node's children.
	Continue Action = iota
	// Skip prunes the node's subtree.
	Skip
	// Stop aborts the whole traversal.
	Stop
)

// Handler is invoked when the walker enters a node of a registered kind.
type Handler func(w *Walker, id ast.NodeID) Action

// Visitor maps node kinds to enter handlers. Kinds without a handler are
// descended into.
type Visitor map[ast.Kind]Handler

// maxRedispatch bounds the replace-then-redispatch chain for a single slot.
const maxRedispatch = 64

// Walker carries the state of one traversal.
type Walker struct {
	tree     *ast.Tree
	visitor  Visitor
	replaced map[ast.NodeID]ast.NodeID
	stopped  bool
}

// Walk visits root and all of its descendants.
func Walk(t *ast.Tree, root ast.NodeID, v Visitor) {
	w := newWalker(t, v)
	w.walk(root)
}

// WalkChildren visits the descendants of root without entering root
// itself, so boundary handlers never prune the starting node.
func WalkChildren(t *ast.Tree, root ast.NodeID, v Visitor) {
	w := newWalker(t, v)
	for _, c := range t.Children(root) {
		w.walk(c)
		if w.stopped {
			return
		}
	}
}

func newWalker(t *ast.Tree, v Visitor) *Walker {
	return &Walker{
		tree:     t,
		visitor:  v,
		replaced: make(map[ast.NodeID]ast.NodeID),
	}
}

// Tree returns the tree being walked.
func (w *Walker) Tree() *ast.Tree {
	return w.tree
}

// Replace puts repl in place of old and records it so the walker continues
// with repl. Handlers must use this instead of Tree.Replace for the node
// they were entered on.
func (w *Walker) Replace(old, repl ast.NodeID) {
	w.tree.Replace(old, repl)
	w.replaced[old] = repl
}

// Visit walks the subtree at id immediately with the current visitor.
// Boundary handlers use it to reach parts of a pruned node, such as a
// computed method key, that still belong to the enclosing scope.
func (w *Walker) Visit(id ast.NodeID) {
	if id != ast.NoNode {
		w.walk(id)
	}
}

// Stopped reports whether a handler returned Stop.
func (w *Walker) Stopped() bool {
	return w.stopped
}

func (w *Walker) walk(id ast.NodeID) {
	for hops := 0; ; hops++ {
		if hops > maxRedispatch {
			panic(fmt.Sprintf("traverse: replacement chain at #%d exceeds %d hops", id, maxRedispatch))
		}
		act := Continue
		if h := w.visitor[w.tree.Kind(id)]; h != nil {
			act = h(w, id)
		}
		if act == Stop {
			w.stopped = true
			return
		}
		if repl, ok := w.replaced[id]; ok {
			delete(w.replaced, id)
			id = repl
			continue
		}
		if act == Skip {
			return
		}
		break
	}
	for _, c := range w.tree.Children(id) {
		w.walk(c)
		if w.stopped {
			return
		}
	}
}

// Merge combines visitors. Handlers for the same kind run in argument
// order; the first Skip or Stop wins, and the chain ends early once a
// handler has replaced the node.
func Merge(vs ...Visitor) Visitor {
	chains := make(map[ast.Kind][]Handler)
	var order []ast.Kind
	for _, v := range vs {
		for k, h := range v {
			if _, seen := chains[k]; !seen {
				order = append(order, k)
			}
			chains[k] = append(chains[k], h)
		}
	}
	merged := make(Visitor, len(chains))
	for _, k := range order {
		hs := chains[k]
		if len(hs) == 1 {
			merged[k] = hs[0]
			continue
		}
		merged[k] = func(w *Walker, id ast.NodeID) Action {
			result := Continue
			for _, h := range hs {
				act := h(w, id)
				if act > result {
					result = act
				}
				if _, replaced := w.replaced[id]; replaced || result != Continue {
					break
				}
			}
			return result
		}
	}
	return merged
}

// Inspect calls fn for root and every descendant in pre-order. It is a
// read-only walk: fn must not mutate the tree.
func Inspect(t *ast.Tree, root ast.NodeID, fn func(id ast.NodeID) Action) {
	inspect(t, root, fn)
}

func inspect(t *ast.Tree, id ast.NodeID, fn func(ast.NodeID) Action) bool {
	switch fn(id) {
	case Stop:
		return false
	case Skip:
		return true
	}
	for _, c := range t.Children(id) {
		if !inspect(t, c, fn) {
			return false
		}
	}
	return true
}

// Find returns the first node in pre-order under root (inclusive) for which
// pred holds, or NoNode.
func Find(t *ast.Tree, root ast.NodeID, pred func(id ast.NodeID) bool) ast.NodeID {
	found := ast.NoNode
	Inspect(t, root, func(id ast.NodeID) Action {
		if pred(id) {
			found = id
			return Stop
		}
		return Continue
	})
	return found
}
