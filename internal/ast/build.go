package ast

import (
	"fmt"
	"strings"
	"unicode"
)

// Program creates a program node.
func (t *Tree) Program(stmts ...NodeID) NodeID {
	return t.add(Node{Kind: KindProgram, List: stmts})
}

// Block creates a block statement.
func (t *Tree) Block(stmts ...NodeID) NodeID {
	return t.add(Node{Kind: KindBlockStatement, List: stmts})
}

// ExprStmt creates an expression statement.
func (t *Tree) ExprStmt(expr NodeID) NodeID {
	return t.add(Node{Kind: KindExpressionStatement, A: expr})
}

// Return creates a return statement; arg may be NoNode.
func (t *Tree) Return(arg NodeID) NodeID {
	return t.add(Node{Kind: KindReturnStatement, A: arg})
}

// Throw creates a throw statement.
func (t *Tree) Throw(arg NodeID) NodeID {
	return t.add(Node{Kind: KindThrowStatement, A: arg})
}

// If creates an if statement; alt may be NoNode.
func (t *Tree) If(test, cons, alt NodeID) NodeID {
	return t.add(Node{Kind: KindIfStatement, A: test, B: cons, C: alt})
}

// While creates a while loop.
func (t *Tree) While(test, body NodeID) NodeID {
	return t.add(Node{Kind: KindWhileStatement, A: test, B: body})
}

// DoWhile creates a do-while loop.
func (t *Tree) DoWhile(body, test NodeID) NodeID {
	return t.add(Node{Kind: KindDoWhileStatement, A: body, B: test})
}

// For creates a for loop; init, test and update may be NoNode.
func (t *Tree) For(init, test, update, body NodeID) NodeID {
	return t.add(Node{Kind: KindForStatement, A: init, B: test, C: update, D: body})
}

// ForIn creates a for-in loop.
func (t *Tree) ForIn(left, right, body NodeID) NodeID {
	return t.add(Node{Kind: KindForInStatement, A: left, B: right, C: body})
}

// ForOf creates a for-of loop. flags may carry FlagAwait.
func (t *Tree) ForOf(left, right, body NodeID, flags Flags) NodeID {
	return t.add(Node{Kind: KindForOfStatement, A: left, B: right, C: body, Flags: flags})
}

// Switch creates a switch statement over cases.
func (t *Tree) Switch(disc NodeID, cases ...NodeID) NodeID {
	return t.add(Node{Kind: KindSwitchStatement, A: disc, List: cases})
}

// Case creates a switch case; a NoNode test is the default clause.
func (t *Tree) Case(test NodeID, stmts ...NodeID) NodeID {
	return t.add(Node{Kind: KindSwitchCase, A: test, List: stmts})
}

// Break creates a break statement; label may be NoNode.
func (t *Tree) Break(label NodeID) NodeID {
	return t.add(Node{Kind: KindBreakStatement, A: label})
}

// Continue creates a continue statement; label may be NoNode.
func (t *Tree) Continue(label NodeID) NodeID {
	return t.add(Node{Kind: KindContinueStatement, A: label})
}

// Labeled creates a labeled statement.
func (t *Tree) Labeled(label, body NodeID) NodeID {
	return t.add(Node{Kind: KindLabeledStatement, A: label, B: body})
}

// Empty creates an empty statement.
func (t *Tree) Empty() NodeID {
	return t.add(Node{Kind: KindEmptyStatement})
}

// Try creates a try statement; handler and finalizer may be NoNode.
func (t *Tree) Try(block, handler, finalizer NodeID) NodeID {
	return t.add(Node{Kind: KindTryStatement, A: block, B: handler, C: finalizer})
}

// Catch creates a catch clause; param may be NoNode.
func (t *Tree) Catch(param, body NodeID) NodeID {
	return t.add(Node{Kind: KindCatchClause, A: param, B: body})
}

// VarDecl creates a variable declaration of the given kind.
func (t *Tree) VarDecl(kind string, decls ...NodeID) NodeID {
	return t.add(Node{Kind: KindVariableDeclaration, Name: kind, List: decls})
}

// Declarator creates a variable declarator; init may be NoNode.
func (t *Tree) Declarator(id, init NodeID) NodeID {
	return t.add(Node{Kind: KindVariableDeclarator, A: id, B: init})
}

// Var is shorthand for a single-declarator declaration of name.
func (t *Tree) Var(kind, name string, init NodeID) NodeID {
	return t.VarDecl(kind, t.Declarator(t.Ident(name), init))
}

// Ident creates an identifier.
func (t *Tree) Ident(name string) NodeID {
	return t.add(Node{Kind: KindIdentifier, Name: name})
}

// PrivateName creates a private class key #name.
func (t *Tree) PrivateName(name string) NodeID {
	return t.add(Node{Kind: KindPrivateName, A: t.Ident(name)})
}

// This creates a this expression.
func (t *Tree) This() NodeID {
	return t.add(Node{Kind: KindThisExpression})
}

// Super creates a super reference.
func (t *Tree) Super() NodeID {
	return t.add(Node{Kind: KindSuper})
}

// Str creates a string literal holding the decoded value.
func (t *Tree) Str(value string) NodeID {
	return t.add(Node{Kind: KindStringLiteral, Name: value})
}

// Num creates a numeric literal from its source text.
func (t *Tree) Num(raw string) NodeID {
	return t.add(Node{Kind: KindNumericLiteral, Name: raw})
}

// Bool creates a boolean literal.
func (t *Tree) Bool(v bool) NodeID {
	name := "false"
	if v {
		name = "true"
	}
	return t.add(Node{Kind: KindBooleanLiteral, Name: name})
}

// Null creates a null literal.
func (t *Tree) Null() NodeID {
	return t.add(Node{Kind: KindNullLiteral})
}

// Template creates a template literal. quasis must hold one more element
// than exprs.
func (t *Tree) Template(quasis []NodeID, exprs ...NodeID) NodeID {
	if len(quasis) != len(exprs)+1 {
		panic(fmt.Sprintf("ast: Template called with %d quasis for %d expressions", len(quasis), len(exprs)))
	}
	return t.add(Node{Kind: KindTemplateLiteral, Params: quasis, List: exprs})
}

// Quasi creates a template element from its raw text.
func (t *Tree) Quasi(raw string, tail bool) NodeID {
	var flags Flags
	if tail {
		flags = FlagTail
	}
	return t.add(Node{Kind: KindTemplateElement, Name: raw, Flags: flags})
}

// TaggedTemplate creates tag`quasi`.
func (t *Tree) TaggedTemplate(tag, quasi NodeID) NodeID {
	return t.add(Node{Kind: KindTaggedTemplateExpression, A: tag, B: quasi})
}

// Call creates a call expression.
func (t *Tree) Call(callee NodeID, args ...NodeID) NodeID {
	return t.add(Node{Kind: KindCallExpression, A: callee, List: args})
}

// New creates a new expression.
func (t *Tree) New(callee NodeID, args ...NodeID) NodeID {
	return t.add(Node{Kind: KindNewExpression, A: callee, List: args})
}

// Member creates a non-computed member access obj.prop.
func (t *Tree) Member(obj NodeID, prop string) NodeID {
	return t.add(Node{Kind: KindMemberExpression, A: obj, B: t.Ident(prop)})
}

// Index creates a computed member access obj[prop].
func (t *Tree) Index(obj, prop NodeID) NodeID {
	return t.add(Node{Kind: KindMemberExpression, A: obj, B: prop, Flags: FlagComputed})
}

// Await creates an await expression.
func (t *Tree) Await(arg NodeID) NodeID {
	return t.add(Node{Kind: KindAwaitExpression, A: arg})
}

// Yield creates a non-delegating yield; arg may be NoNode.
func (t *Tree) Yield(arg NodeID) NodeID {
	return t.add(Node{Kind: KindYieldExpression, A: arg})
}

// Unary creates a prefix unary expression such as !x or typeof x.
func (t *Tree) Unary(op string, arg NodeID) NodeID {
	return t.add(Node{Kind: KindUnaryExpression, Name: op, A: arg})
}

// Update creates x++ / x-- (or the prefix forms when prefix is set).
func (t *Tree) Update(op string, arg NodeID, prefix bool) NodeID {
	var flags Flags
	if prefix {
		flags = FlagPrefix
	}
	return t.add(Node{Kind: KindUpdateExpression, Name: op, A: arg, Flags: flags})
}

// Logical creates a &&, || or ?? expression.
func (t *Tree) Logical(op string, left, right NodeID) NodeID {
	return t.add(Node{Kind: KindLogicalExpression, Name: op, A: left, B: right})
}

// Conditional creates test ? cons : alt.
func (t *Tree) Conditional(test, cons, alt NodeID) NodeID {
	return t.add(Node{Kind: KindConditionalExpression, A: test, B: cons, C: alt})
}

// Sequence creates a comma expression.
func (t *Tree) Sequence(exprs ...NodeID) NodeID {
	return t.add(Node{Kind: KindSequenceExpression, List: exprs})
}

// Binary creates a binary expression.
func (t *Tree) Binary(op string, left, right NodeID) NodeID {
	return t.add(Node{Kind: KindBinaryExpression, Name: op, A: left, B: right})
}

// Assign creates an assignment expression.
func (t *Tree) Assign(op string, left, right NodeID) NodeID {
	return t.add(Node{Kind: KindAssignmentExpression, Name: op, A: left, B: right})
}

// Array creates an array literal.
func (t *Tree) Array(elems ...NodeID) NodeID {
	return t.add(Node{Kind: KindArrayExpression, List: elems})
}

// Spread creates a spread element.
func (t *Tree) Spread(arg NodeID) NodeID {
	return t.add(Node{Kind: KindSpreadElement, A: arg})
}

// Object creates an object literal.
func (t *Tree) Object(props ...NodeID) NodeID {
	return t.add(Node{Kind: KindObjectExpression, List: props})
}

// Property creates an object property.
func (t *Tree) Property(key, value NodeID, flags Flags) NodeID {
	return t.add(Node{Kind: KindObjectProperty, A: key, B: value, Flags: flags})
}

// Function creates a function declaration, function expression or arrow.
// id may be NoNode for expressions and must be NoNode for arrows.
func (t *Tree) Function(kind Kind, id NodeID, params []NodeID, body NodeID, flags Flags) NodeID {
	if kind != KindFunctionDeclaration && kind != KindFunctionExpression && kind != KindArrowFunctionExpression {
		panic(fmt.Sprintf("ast: Function called with %s", kind))
	}
	return t.add(Node{Kind: kind, A: id, Params: params, B: body, Flags: flags})
}

// Method creates an object or class method. methodKind is "method",
// "constructor", "get" or "set".
func (t *Tree) Method(kind Kind, methodKind string, key NodeID, params []NodeID, body NodeID, flags Flags) NodeID {
	if !kind.IsMethod() {
		panic(fmt.Sprintf("ast: Method called with %s", kind))
	}
	return t.add(Node{Kind: kind, Name: methodKind, A: key, Params: params, B: body, Flags: flags})
}

// Class creates a class declaration or expression.
func (t *Tree) Class(kind Kind, id, superClass NodeID, members ...NodeID) NodeID {
	if !kind.IsClass() {
		panic(fmt.Sprintf("ast: Class called with %s", kind))
	}
	return t.add(Node{Kind: kind, A: id, B: superClass, List: members})
}

// ClassProperty creates a public class field; value may be NoNode.
func (t *Tree) ClassProperty(key, value NodeID, flags Flags) NodeID {
	return t.add(Node{Kind: KindClassProperty, A: key, B: value, Flags: flags})
}

// ClassPrivateProperty creates a private class field; value may be NoNode.
func (t *Tree) ClassPrivateProperty(key, value NodeID, flags Flags) NodeID {
	return t.add(Node{Kind: KindClassPrivateProperty, A: key, B: value, Flags: flags})
}

// StaticBlock creates a class static initialization block.
func (t *Tree) StaticBlock(stmts ...NodeID) NodeID {
	return t.add(Node{Kind: KindStaticBlock, List: stmts})
}

// ObjectPattern creates a destructuring object pattern.
func (t *Tree) ObjectPattern(props ...NodeID) NodeID {
	return t.add(Node{Kind: KindObjectPattern, List: props})
}

// ArrayPattern creates a destructuring array pattern.
func (t *Tree) ArrayPattern(elems ...NodeID) NodeID {
	return t.add(Node{Kind: KindArrayPattern, List: elems})
}

// AssignPattern creates a parameter default left = right.
func (t *Tree) AssignPattern(left, right NodeID) NodeID {
	return t.add(Node{Kind: KindAssignmentPattern, A: left, B: right})
}

// Rest creates a rest element ...arg.
func (t *Tree) Rest(arg NodeID) NodeID {
	return t.add(Node{Kind: KindRestElement, A: arg})
}

// ParseDotted builds an identifier or member chain from a dotted path such
// as "babelHelpers.asyncToGenerator".
func (t *Tree) ParseDotted(path string) (NodeID, error) {
	parts := strings.Split(path, ".")
	for _, p := range parts {
		if !IsIdentifierName(p) {
			return NoNode, fmt.Errorf("invalid helper expression %q: %q is not an identifier", path, p)
		}
	}
	expr := t.Ident(parts[0])
	for _, p := range parts[1:] {
		expr = t.Member(expr, p)
	}
	return expr, nil
}

// IsIdentifierName reports whether s is a valid JavaScript identifier name.
func IsIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !isIdentRune(r, i == 0) {
			return false
		}
	}
	return true
}

func isIdentRune(r rune, first bool) bool {
	if r == '_' || r == '$' || unicode.IsLetter(r) {
		return true
	}
	return !first && unicode.IsDigit(r)
}
