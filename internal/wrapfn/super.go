package wrapfn

import (
	"strings"

	"github.com/roach88/remap/internal/ast"
)

// superProps lowers `super.x` accesses that move into a generator function
// to calls of arrow helpers declared in the environment, where `super` is
// still bound:
//
//	super.x          _superprop_getX()
//	super[k]         _superprop_get(k)
//	super.x(a)       _superprop_getX().call(this, a)
//	super.x = v      _superprop_setX(v)
//	super.x += v     _superprop_setX(_superprop_getX() + v)
//
// Helpers are declared once per environment, in order of first use.
type superProps struct {
	tree     *ast.Tree
	bindings map[string]string
	decls    []ast.NodeID
}

// checkSuper rejects super references that cannot be lowered. It runs before
// anything is rewritten.
func checkSuper(t *ast.Tree, fn, env ast.NodeID, refs []ast.NodeID) error {
	fail := func(reason string) error {
		return &UnsupportedError{Kind: t.Kind(fn), Reason: reason}
	}
	switch k := t.Kind(env); {
	case k.IsMethod(), k == ast.KindArrowFunctionExpression, k == ast.KindStaticBlock:
	default:
		return fail("super is only available inside methods and class bodies")
	}
	for _, ref := range refs {
		m := t.Node(t.Parent(ref))
		if m.Kind != ast.KindMemberExpression || m.A != ref {
			if m.Kind == ast.KindCallExpression {
				return fail("super() calls cannot be moved into the generated generator function")
			}
			return fail("super is only supported in property accesses")
		}
		p := t.Node(m.Parent)
		switch {
		case p.Kind == ast.KindUpdateExpression:
			return fail("update expressions on super properties are not supported")
		case p.Kind == ast.KindAssignmentExpression && p.A == t.Parent(ref):
			switch {
			case p.Name == "=":
			case p.Name == "&&=" || p.Name == "||=" || p.Name == "??=":
				return fail("logical assignment to a super property is not supported")
			case m.Flags.Has(ast.FlagComputed):
				return fail("compound assignment to a computed super property is not supported")
			}
		}
	}
	return nil
}

// lower rewrites the access around the super reference ref and returns the
// `this` expressions it introduced, which follow the environment's `this`.
func (sp *superProps) lower(ref ast.NodeID) []ast.NodeID {
	t := sp.tree
	member := t.Parent(ref)
	m := t.Node(member)

	var prop string
	var args []ast.NodeID
	if m.Flags.Has(ast.FlagComputed) {
		key := m.B
		t.Detach(key)
		args = append(args, key)
	} else {
		prop = t.Node(m.B).Name
	}

	parentID := m.Parent
	parent := t.Node(parentID)
	switch {
	case parent.Kind == ast.KindAssignmentExpression && parent.A == member:
		value := parent.B
		t.Detach(value)
		setter := sp.binding(true, prop)
		if op := parent.Name; op != "=" {
			getter := sp.binding(false, prop)
			value = t.Binary(strings.TrimSuffix(op, "="), t.Call(t.Ident(getter)), value)
		}
		t.Replace(parentID, t.Call(t.Ident(setter), append(args, value)...))
		return nil
	case parent.Kind == ast.KindCallExpression && parent.A == member:
		this := t.This()
		get := t.Call(t.Ident(sp.binding(false, prop)), args...)
		t.Replace(member, t.Member(get, "call"))
		t.SetList(parentID, append([]ast.NodeID{this}, parent.List...))
		return []ast.NodeID{this}
	case parent.Kind == ast.KindTaggedTemplateExpression && parent.A == member:
		this := t.This()
		get := t.Call(t.Ident(sp.binding(false, prop)), args...)
		t.Replace(member, t.Call(t.Member(get, "bind"), this))
		return []ast.NodeID{this}
	}
	t.Replace(member, t.Call(t.Ident(sp.binding(false, prop)), args...))
	return nil
}

// binding returns the helper that reads (or writes) prop, declaring it on
// first use. prop is "" for computed access, whose helper takes the key.
func (sp *superProps) binding(set bool, prop string) string {
	op := "get"
	if set {
		op = "set"
	}
	key := op + ":" + prop
	if name, ok := sp.bindings[key]; ok {
		return name
	}

	t := sp.tree
	name := t.GenerateUID(bindingName("superprop_" + key))
	var params []ast.NodeID
	var body ast.NodeID
	if prop != "" {
		body = t.Member(t.Super(), prop)
	} else {
		k := t.GenerateUID("prop")
		params = append(params, t.Ident(k))
		body = t.Index(t.Super(), t.Ident(k))
	}
	if set {
		v := t.GenerateUID("value")
		params = append(params, t.Ident(v))
		body = t.Assign("=", body, t.Ident(v))
	}
	arrow := t.Function(ast.KindArrowFunctionExpression, ast.NoNode, params, body, 0)
	sp.decls = append(sp.decls, t.Declarator(t.Ident(name), arrow))
	sp.bindings[key] = name
	return name
}
