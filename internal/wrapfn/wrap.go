// Package wrapfn hands a generator function to a driver helper while keeping
// every call site of the original function working.
//
// The driver (for example `_asyncToGenerator`) takes a generator function and
// returns a function that steps it. Depending on where the function sits the
// wrapper takes one of these forms:
//
//	method:      m() { return WRAP(function* () { BODY })(); }
//	declaration: function f(_x) { return _f.apply(this, arguments); }
//	             function _f() { _f = WRAP(function* (x) { BODY }); return _f.apply(this, arguments); }
//	expression:  WRAP(function* () { BODY })
//	             (function () { var _ref = WRAP(...); return function NAME(_x) { return _ref.apply(this, arguments); }; })()
//
// The long expression form is used when the function has a name (declared or
// inferred from its position) or when its declared arity must be kept.
package wrapfn

import (
	"fmt"

	"github.com/roach88/remap/internal/ast"
)

// Options tune the generated wrapper.
type Options struct {
	// NoNewArrows converts arrow functions by aliasing `this` in the
	// enclosing function instead of emitting `function () {}.bind(this)`.
	NoNewArrows bool
	// IgnoreFunctionLength allows the short expression form even when the
	// function declares parameters, changing its observable `length`.
	IgnoreFunctionLength bool
}

// Wrap rewrites the generator function fn so that it is driven by callee,
// a detached expression that Wrap takes ownership of. It returns the node
// that now occupies the position fn had: fn itself for methods, and for
// arrows the outermost node built around the driver call, such as
// `WRAP(...).bind(this)` or the `(() => ...)()` of a class field.
//
// A failed Wrap may leave the tree partially rewritten.
func Wrap(t *ast.Tree, fn, callee ast.NodeID, opts Options) (ast.NodeID, error) {
	switch kind := t.Kind(fn); {
	case kind.IsMethod():
		return wrapMethod(t, fn, callee)
	case kind.IsFunction():
		return wrapPlain(t, fn, callee, opts)
	default:
		return ast.NoNode, fmt.Errorf("wrap #%d: %s is not a function", fn, kind)
	}
}

func wrapMethod(t *ast.Tree, fn, callee ast.NodeID) (ast.NodeID, error) {
	n := t.Node(fn)
	if n.Name != "" && n.Name != "method" {
		return ast.NoNode, &UnsupportedError{Kind: n.Kind, Reason: fmt.Sprintf("%s cannot be driven by a generator", n.Name)}
	}

	stmts := t.Node(n.B).List
	t.SetList(n.B, nil)
	inner := t.Function(ast.KindFunctionExpression, ast.NoNode, nil, t.Block(stmts...), ast.FlagGenerator)
	t.SetList(n.B, []ast.NodeID{t.Return(t.Call(t.Call(callee, inner)))})
	n.Flags &^= ast.FlagAsync | ast.FlagGenerator

	if refs := collectEnvRefs(t, inner); !refs.empty() {
		if err := hoistEnvironment(t, fn, fn, refs, true); err != nil {
			return ast.NoNode, err
		}
	}
	return fn, nil
}

func wrapPlain(t *ast.Tree, fn, callee ast.NodeID, opts Options) (ast.NodeID, error) {
	n := t.Node(fn)
	arity := declaredArity(t, n.Params)

	var position ast.NodeID
	if n.Kind == ast.KindArrowFunctionExpression {
		var err error
		if position, err = arrowToExpression(t, fn, opts.NoNewArrows); err != nil {
			return ast.NoNode, err
		}
	}

	isDeclaration := n.Kind == ast.KindFunctionDeclaration
	functionID := n.A
	if functionID != ast.NoNode {
		t.Detach(functionID)
	}
	n.Kind = ast.KindFunctionExpression

	hole := t.Null()
	t.Replace(fn, hole)
	built := t.Call(callee, fn)

	params := make([]ast.NodeID, arity)
	for i := range params {
		params[i] = t.Ident(t.GenerateUID("x"))
	}
	refHint := "ref"
	if functionID != ast.NoNode {
		refHint = t.Node(functionID).Name
	}
	ref := t.GenerateUID(refHint)

	if isDeclaration {
		outer := t.Function(ast.KindFunctionDeclaration, functionID, params,
			t.Block(t.Return(applyRef(t, ref))), 0)
		impl := t.Function(ast.KindFunctionDeclaration, t.Ident(ref), nil, t.Block(
			t.ExprStmt(t.Assign("=", t.Ident(ref), built)),
			t.Return(applyRef(t, ref)),
		), 0)
		t.Replace(hole, outer)
		if err := t.InsertAfter(outer, impl); err != nil {
			return ast.NoNode, fmt.Errorf("wrap function %s: %w", t.Node(functionID).Name, err)
		}
		return outer, nil
	}

	named := functionID != ast.NoNode
	if !named {
		if name := inferName(t, hole); name != "" {
			functionID = t.Ident(name)
		}
	}

	result := built
	switch {
	case named:
		result = namedExpressionWrapper(t, functionID, ref, built, params)
	case functionID != ast.NoNode || (!opts.IgnoreFunctionLength && arity > 0):
		result = anonymousExpressionWrapper(t, functionID, ref, built, params)
	}
	t.Replace(hole, result)
	if position != ast.NoNode {
		return position, nil
	}
	return result, nil
}

// declaredArity counts parameters up to the first default or rest, which is
// what Function#length reports.
func declaredArity(t *ast.Tree, params []ast.NodeID) int {
	n := 0
	for _, p := range params {
		if k := t.Kind(p); k == ast.KindAssignmentPattern || k == ast.KindRestElement {
			break
		}
		n++
	}
	return n
}

// arrowToExpression turns the arrow at fn into a function expression in
// place. Environment references are aliased in the enclosing environment;
// with noNewArrows false `this` is kept and the function is bound instead.
//
// It returns the node now holding the arrow's original position when that
// is no longer fn: the class field call or the bind call.
func arrowToExpression(t *ast.Tree, fn ast.NodeID, noNewArrows bool) (ast.NodeID, error) {
	n := t.Node(fn)
	env, position := arrowEnvironment(t, fn)
	refs := collectEnvRefs(t, fn)
	if len(refs.arguments) > 0 || len(refs.super) > 0 || (noNewArrows && len(refs.this) > 0) {
		if env == ast.NoNode {
			return ast.NoNode, &UnsupportedError{
				Kind:   ast.KindArrowFunctionExpression,
				Reason: "arrow function is not inside a function or program",
			}
		}
		if err := hoistEnvironment(t, fn, env, refs, noNewArrows); err != nil {
			return ast.NoNode, err
		}
	}

	ensureBlock(t, fn)
	n.Kind = ast.KindFunctionExpression

	if !noNewArrows {
		hole := t.Null()
		t.Replace(fn, hole)
		bound := t.Call(t.Member(fn, "bind"), t.This())
		t.Replace(hole, bound)
		if position == ast.NoNode {
			position = bound
		}
	}
	return position, nil
}

// applyRef builds `REF.apply(this, arguments)`.
func applyRef(t *ast.Tree, ref string) ast.NodeID {
	return t.Call(t.Member(t.Ident(ref), "apply"), t.This(), t.Ident("arguments"))
}

// anonymousExpressionWrapper builds
//
//	(function () {
//	  var REF = FUNCTION;
//	  return function NAME(PARAMS) { return REF.apply(this, arguments); };
//	})()
func anonymousExpressionWrapper(t *ast.Tree, name ast.NodeID, ref string, built ast.NodeID, params []ast.NodeID) ast.NodeID {
	ret := t.Function(ast.KindFunctionExpression, name, params, t.Block(t.Return(applyRef(t, ref))), 0)
	body := t.Block(t.Var("var", ref, built), t.Return(ret))
	return t.Call(t.Function(ast.KindFunctionExpression, ast.NoNode, nil, body, 0))
}

// namedExpressionWrapper builds
//
//	(function () {
//	  var REF = FUNCTION;
//	  function NAME(PARAMS) { return REF.apply(this, arguments); }
//	  return NAME;
//	})()
func namedExpressionWrapper(t *ast.Tree, name ast.NodeID, ref string, built ast.NodeID, params []ast.NodeID) ast.NodeID {
	decl := t.Function(ast.KindFunctionDeclaration, name, params, t.Block(t.Return(applyRef(t, ref))), 0)
	body := t.Block(
		t.Var("var", ref, built),
		decl,
		t.Return(t.Ident(t.Node(name).Name)),
	)
	return t.Call(t.Function(ast.KindFunctionExpression, ast.NoNode, nil, body, 0))
}
