package wrapfn

import (
	"github.com/roach88/remap/internal/ast"
	"github.com/roach88/remap/internal/traverse"
)

// envRefs are the references inside a function that resolve against its
// enclosing function environment rather than its own.
type envRefs struct {
	this      []ast.NodeID
	arguments []ast.NodeID
	super     []ast.NodeID
}

func (r envRefs) empty() bool {
	return len(r.this) == 0 && len(r.arguments) == 0 && len(r.super) == 0
}

// collectEnvRefs gathers `this`, `arguments` and `super` references in the
// children of fn, following arrows but not nested functions or methods.
func collectEnvRefs(t *ast.Tree, fn ast.NodeID) envRefs {
	var refs envRefs
	traverse.WalkChildren(t, fn, traverse.Merge(traverse.Environment, traverse.Visitor{
		ast.KindThisExpression: func(_ *traverse.Walker, id ast.NodeID) traverse.Action {
			refs.this = append(refs.this, id)
			return traverse.Continue
		},
		ast.KindSuper: func(_ *traverse.Walker, id ast.NodeID) traverse.Action {
			refs.super = append(refs.super, id)
			return traverse.Continue
		},
		ast.KindIdentifier: func(_ *traverse.Walker, id ast.NodeID) traverse.Action {
			if t.Node(id).Name == "arguments" && isReference(t, id) {
				refs.arguments = append(refs.arguments, id)
			}
			return traverse.Continue
		},
	}))
	return refs
}

// isReference reports whether the identifier at id is read as a variable,
// as opposed to naming a property, a label or a declaration.
func isReference(t *ast.Tree, id ast.NodeID) bool {
	p := t.Node(t.Parent(id))
	if p == nil {
		return true
	}
	switch p.Kind {
	case ast.KindMemberExpression:
		return p.A == id || p.Flags.Has(ast.FlagComputed)
	case ast.KindObjectProperty, ast.KindClassProperty:
		return p.A != id || p.Flags.Has(ast.FlagComputed)
	case ast.KindObjectMethod, ast.KindClassMethod:
		return p.A == id && p.Flags.Has(ast.FlagComputed)
	case ast.KindFunctionDeclaration, ast.KindFunctionExpression, ast.KindClassDeclaration,
		ast.KindClassExpression, ast.KindVariableDeclarator, ast.KindLabeledStatement,
		ast.KindBreakStatement, ast.KindContinueStatement:
		return p.A != id
	case ast.KindPrivateName:
		return false
	}
	return true
}

// hoistEnvironment redirects the environment references of fn to bindings
// declared at the top of env's body:
//
//	var _arguments = arguments, _superprop_getX = () => super.x, _this = this;
//
// When hoistThis is false `this` is left in place.
func hoistEnvironment(t *ast.Tree, fn, env ast.NodeID, refs envRefs, hoistThis bool) error {
	if len(refs.super) > 0 {
		if err := checkSuper(t, fn, env, refs.super); err != nil {
			return err
		}
	}

	var decls []ast.NodeID
	if len(refs.arguments) > 0 && hasOwnArguments(t.Kind(env)) {
		decls = append(decls, alias(t, refs.arguments, "arguments", t.Ident("arguments")))
	}
	if len(refs.super) > 0 {
		sp := &superProps{tree: t, bindings: make(map[string]string)}
		for _, ref := range refs.super {
			refs.this = append(refs.this, sp.lower(ref)...)
		}
		decls = append(decls, sp.decls...)
	}
	if hoistThis && len(refs.this) > 0 {
		decls = append(decls, alias(t, refs.this, "this", t.This()))
	}
	if len(decls) == 0 {
		return nil
	}
	t.Prepend(envBody(t, env), t.VarDecl("var", decls...))
	return nil
}

func hasOwnArguments(k ast.Kind) bool {
	return k != ast.KindProgram && k != ast.KindStaticBlock
}

// envBody returns the statement list holder of env, giving an arrow with an
// expression body a block first.
func envBody(t *ast.Tree, env ast.NodeID) ast.NodeID {
	switch t.Kind(env) {
	case ast.KindProgram, ast.KindStaticBlock:
		return env
	case ast.KindArrowFunctionExpression:
		return ensureBlock(t, env)
	}
	return t.Node(env).B
}

// ensureBlock turns the expression body of fn into `{ return EXPR; }` and
// returns the block.
func ensureBlock(t *ast.Tree, fn ast.NodeID) ast.NodeID {
	n := t.Node(fn)
	if t.Kind(n.B) == ast.KindBlockStatement {
		return n.B
	}
	expr := n.B
	t.Detach(expr)
	t.SetB(fn, t.Block(t.Return(expr)))
	return n.B
}

// alias replaces every ref with a fresh identifier and returns its declarator.
func alias(t *ast.Tree, refs []ast.NodeID, hint string, init ast.NodeID) ast.NodeID {
	name := t.GenerateUID(hint)
	for _, ref := range refs {
		t.Replace(ref, t.Ident(name))
	}
	return t.Declarator(t.Ident(name), init)
}

// arrowEnvironment finds the node that provides `this` and `arguments` to
// the arrow at id: the nearest non-arrow function, program or static block.
//
// Class field initializers have no function of their own. An arrow nested in
// another arrow inside the field uses the closest enclosing arrow. Otherwise
// the arrow is replaced by `(() => ARROW)()` and the new arrow is the
// environment; the returned call is what now occupies the arrow's position.
//
// env is NoNode for an arrow that is not attached to a program.
func arrowEnvironment(t *ast.Tree, id ast.NodeID) (env, outer ast.NodeID) {
	var arrowParent ast.NodeID
	child := id
	for cur := t.Parent(id); cur != ast.NoNode; child, cur = cur, t.Parent(cur) {
		n := t.Node(cur)
		switch {
		case n.Kind == ast.KindArrowFunctionExpression:
			if arrowParent == ast.NoNode {
				arrowParent = cur
			}
		case n.Kind == ast.KindProgram || n.Kind == ast.KindStaticBlock:
			return cur, ast.NoNode
		case n.Kind.IsFunction():
			// A computed method key is evaluated in the enclosing scope.
			if !n.Kind.IsMethod() || n.A != child {
				return cur, ast.NoNode
			}
		case n.Kind.IsClassField() && n.B == child:
			if arrowParent != ast.NoNode {
				return arrowParent, ast.NoNode
			}
			hole := t.Null()
			t.Replace(id, hole)
			wrapper := t.Function(ast.KindArrowFunctionExpression, ast.NoNode, nil, id, 0)
			call := t.Call(wrapper)
			t.Replace(hole, call)
			return wrapper, call
		}
	}
	return ast.NoNode, ast.NoNode
}
