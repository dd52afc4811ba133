package remap

import "github.com/roach88/remap/internal/ast"

// IsIIFE reports whether fn is invoked right where it is defined, either
// directly as `(function () {})()` or through `(function () {}).bind(this)()`,
// the shape arrow-function lowering produces.
//
// The check is purely syntactic. It misses invocations through aliases but
// never reports a function that is not called on the spot. Hand-written
// `.bind(this)()` matching the same shape is accepted as well.
func IsIIFE(t *ast.Tree, fn ast.NodeID) bool {
	if t.IsCallee(fn) {
		return true
	}

	member := t.Parent(fn)
	m := t.Node(member)
	if m == nil || m.Kind != ast.KindMemberExpression || m.A != fn || m.Flags.Has(ast.FlagComputed) {
		return false
	}
	if prop := t.Node(m.B); prop.Kind != ast.KindIdentifier || prop.Name != "bind" {
		return false
	}

	bindCall := t.Parent(member)
	bc := t.Node(bindCall)
	return bc != nil &&
		bc.Kind == ast.KindCallExpression &&
		bc.A == member &&
		len(bc.List) == 1 &&
		t.Kind(bc.List[0]) == ast.KindThisExpression &&
		t.IsCallee(bindCall)
}
