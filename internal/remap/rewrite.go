package remap

import (
	"github.com/roach88/remap/internal/ast"
	"github.com/roach88/remap/internal/traverse"
)

// RewriteAwaits replaces every await expression in fn's own scope with a
// yield expression and returns the number of awaits rewritten.
//
// The operand is moved, not copied. When wrapAwait is set each yield gets
// its own clone of it as callee: `await x` becomes `yield WRAP(x)`.
// Arrow functions are pruned entirely; nested functions and methods follow
// traverse.Environment. Awaits nested in another await's operand are each
// rewritten once.
func RewriteAwaits(t *ast.Tree, fn, wrapAwait ast.NodeID) int {
	rewritten := 0
	visitor := traverse.Merge(
		traverse.Visitor{
			ast.KindArrowFunctionExpression: func(*traverse.Walker, ast.NodeID) traverse.Action {
				return traverse.Skip
			},
			ast.KindAwaitExpression: func(w *traverse.Walker, id ast.NodeID) traverse.Action {
				tree := w.Tree()
				arg := tree.Node(id).A
				tree.Detach(arg)
				if wrapAwait != ast.NoNode {
					arg = tree.Call(tree.Clone(wrapAwait), arg)
				}
				w.Replace(id, tree.Yield(arg))
				rewritten++
				return traverse.Continue
			},
		},
		traverse.Environment,
	)
	traverse.WalkChildren(t, fn, visitor)
	return rewritten
}

// containsForAwait reports whether fn's own scope holds a `for await` loop.
func containsForAwait(t *ast.Tree, fn ast.NodeID) bool {
	found := false
	traverse.WalkChildren(t, fn, traverse.Merge(
		traverse.Visitor{
			ast.KindArrowFunctionExpression: func(*traverse.Walker, ast.NodeID) traverse.Action {
				return traverse.Skip
			},
			ast.KindForOfStatement: func(w *traverse.Walker, id ast.NodeID) traverse.Action {
				if w.Tree().Node(id).Flags.Has(ast.FlagAwait) {
					found = true
				}
				return traverse.Continue
			},
		},
		traverse.Environment,
	))
	return found
}
