package traverse

import "github.com/roach88/remap/internal/ast"

// Environment is the boundary policy for passes that operate on one
// function's own scope. It prunes nested non-arrow functions and methods,
// whose `this`, `arguments` and suspend semantics are their own, class
// fields and static blocks. Computed keys of methods and fields are evaluated
// in the enclosing scope, so they are still visited.
//
// Arrow functions are not pruned here; passes that must not enter arrows
// merge in their own handler.
var Environment = Visitor{
	ast.KindFunctionDeclaration:  skipNode,
	ast.KindFunctionExpression:   skipNode,
	ast.KindObjectMethod:         skipAllButComputedKey,
	ast.KindClassMethod:          skipAllButComputedKey,
	ast.KindClassPrivateMethod:   skipNode,
	ast.KindClassProperty:        skipAllButComputedKey,
	ast.KindClassPrivateProperty: skipNode,
	ast.KindStaticBlock:          skipNode,
}

func skipNode(*Walker, ast.NodeID) Action {
	return Skip
}

func skipAllButComputedKey(w *Walker, id ast.NodeID) Action {
	n := w.Tree().Node(id)
	if n.Flags.Has(ast.FlagComputed) {
		w.Visit(n.A)
	}
	return Skip
}
