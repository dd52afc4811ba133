// Package printer renders ast trees as JavaScript source.
//
// Output follows the layout conventions of Babel's generator closely enough
// for readable golden files: two-space indentation, double-quoted strings,
// multi-line blocks and object literals, and a /*#__PURE__*/ comment in
// front of pure-annotated calls. It does not preserve source formatting.
package printer

import (
	"fmt"
	"strings"

	"github.com/roach88/remap/internal/ast"
)

// Operator precedence levels, loosest first.
const (
	precLowest = iota
	precYield
	precAssign
	precConditional
	precNullish
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precCompare
	precShift
	precAdd
	precMultiply
	precExponent
	precPrefix
	precCall
	precPrimary
)

var binaryPrec = map[string]int{
	"??": precNullish, "||": precOr, "&&": precAnd,
	"|": precBitOr, "^": precBitXor, "&": precBitAnd,
	"==": precEquality, "!=": precEquality, "===": precEquality, "!==": precEquality,
	"<": precCompare, ">": precCompare, "<=": precCompare, ">=": precCompare,
	"instanceof": precCompare, "in": precCompare,
	"<<": precShift, ">>": precShift, ">>>": precShift,
	"+": precAdd, "-": precAdd,
	"*": precMultiply, "/": precMultiply, "%": precMultiply,
	"**": precExponent,
}

// Print renders the subtree at id. Statements and programs are printed as
// statement lists; anything else as an expression.
func Print(t *ast.Tree, id ast.NodeID) string {
	p := &printer{tree: t, parens: make(map[ast.NodeID]bool)}
	switch k := t.Kind(id); {
	case k == ast.KindProgram:
		p.statements(t.Node(id).List)
	case isStatement(k):
		p.statement(id)
	default:
		p.expr(id, precLowest)
	}
	return p.buf.String()
}

type printer struct {
	tree   *ast.Tree
	buf    strings.Builder
	indent int
	// parens holds expressions that open an expression statement and must
	// be parenthesized so they are not parsed as declarations or blocks.
	parens map[ast.NodeID]bool
}

func (p *printer) print(s string) {
	p.buf.WriteString(s)
}

func (p *printer) newline() {
	p.buf.WriteByte('\n')
	p.buf.WriteString(strings.Repeat("  ", p.indent))
}

func isStatement(k ast.Kind) bool {
	switch k {
	case ast.KindBlockStatement, ast.KindEmptyStatement, ast.KindExpressionStatement,
		ast.KindReturnStatement, ast.KindThrowStatement, ast.KindIfStatement,
		ast.KindWhileStatement, ast.KindDoWhileStatement, ast.KindForStatement,
		ast.KindForInStatement, ast.KindForOfStatement, ast.KindSwitchStatement,
		ast.KindBreakStatement, ast.KindContinueStatement, ast.KindLabeledStatement,
		ast.KindTryStatement, ast.KindVariableDeclaration, ast.KindFunctionDeclaration,
		ast.KindClassDeclaration:
		return true
	}
	return false
}

func (p *printer) statements(ids []ast.NodeID) {
	for i, id := range ids {
		if i > 0 {
			p.newline()
		}
		p.statement(id)
	}
}

func (p *printer) block(id ast.NodeID) {
	p.braced(p.tree.Node(id).List)
}

func (p *printer) braced(stmts []ast.NodeID) {
	if len(stmts) == 0 {
		p.print("{}")
		return
	}
	p.print("{")
	p.indent++
	p.newline()
	p.statements(stmts)
	p.indent--
	p.newline()
	p.print("}")
}

func (p *printer) statement(id ast.NodeID) {
	n := p.tree.Node(id)
	switch n.Kind {
	case ast.KindBlockStatement:
		p.block(id)
	case ast.KindExpressionStatement:
		switch lead := leftmost(p.tree, n.A); {
		case p.tree.Kind(lead) == ast.KindObjectPattern:
			// A parenthesized pattern is not assignable; wrap the whole expression.
			p.parens[n.A] = true
		case opensStatementAmbiguously(p.tree.Kind(lead)):
			p.parens[lead] = true
		}
		p.expr(n.A, precLowest)
		p.print(";")
	case ast.KindReturnStatement:
		p.print("return")
		if n.A != ast.NoNode {
			p.print(" ")
			p.expr(n.A, precLowest)
		}
		p.print(";")
	case ast.KindThrowStatement:
		p.print("throw ")
		p.expr(n.A, precLowest)
		p.print(";")
	case ast.KindIfStatement:
		p.print("if (")
		p.expr(n.A, precLowest)
		p.print(") ")
		p.statement(n.B)
		if n.C != ast.NoNode {
			p.print(" else ")
			p.statement(n.C)
		}
	case ast.KindWhileStatement:
		p.print("while (")
		p.expr(n.A, precLowest)
		p.print(") ")
		p.statement(n.B)
	case ast.KindDoWhileStatement:
		p.print("do ")
		p.statement(n.A)
		p.print(" while (")
		p.expr(n.B, precLowest)
		p.print(");")
	case ast.KindForStatement:
		p.print("for (")
		if n.A != ast.NoNode {
			p.forHead(n.A)
		}
		p.print(";")
		if n.B != ast.NoNode {
			p.print(" ")
			p.expr(n.B, precLowest)
		}
		p.print(";")
		if n.C != ast.NoNode {
			p.print(" ")
			p.expr(n.C, precLowest)
		}
		p.print(") ")
		p.statement(n.D)
	case ast.KindForInStatement, ast.KindForOfStatement:
		p.print("for ")
		if n.Flags.Has(ast.FlagAwait) {
			p.print("await ")
		}
		p.print("(")
		p.forHead(n.A)
		if n.Kind == ast.KindForInStatement {
			p.print(" in ")
		} else {
			p.print(" of ")
		}
		p.expr(n.B, precYield)
		p.print(") ")
		p.statement(n.C)
	case ast.KindSwitchStatement:
		p.print("switch (")
		p.expr(n.A, precLowest)
		p.print(") {")
		p.indent++
		for _, c := range n.List {
			p.newline()
			p.switchCase(p.tree.Node(c))
		}
		p.indent--
		p.newline()
		p.print("}")
	case ast.KindBreakStatement, ast.KindContinueStatement:
		if n.Kind == ast.KindBreakStatement {
			p.print("break")
		} else {
			p.print("continue")
		}
		if n.A != ast.NoNode {
			p.print(" ")
			p.expr(n.A, precPrimary)
		}
		p.print(";")
	case ast.KindLabeledStatement:
		p.expr(n.A, precPrimary)
		p.print(": ")
		p.statement(n.B)
	case ast.KindEmptyStatement:
		p.print(";")
	case ast.KindTryStatement:
		p.print("try ")
		p.block(n.A)
		if n.B != ast.NoNode {
			c := p.tree.Node(n.B)
			p.print(" catch ")
			if c.A != ast.NoNode {
				p.print("(")
				p.expr(c.A, precLowest)
				p.print(") ")
			}
			p.block(c.B)
		}
		if n.C != ast.NoNode {
			p.print(" finally ")
			p.block(n.C)
		}
	case ast.KindVariableDeclaration:
		p.varDecl(n)
		p.print(";")
	case ast.KindFunctionDeclaration:
		p.function(id)
	case ast.KindClassDeclaration:
		p.class(id)
	default:
		panic(fmt.Sprintf("printer: %s is not a statement", n.Kind))
	}
}

// forHead prints the init or left side of a loop head: a declaration
// without its semicolon, or an expression.
func (p *printer) forHead(id ast.NodeID) {
	if n := p.tree.Node(id); n.Kind == ast.KindVariableDeclaration {
		p.varDecl(n)
		return
	}
	p.expr(id, precLowest)
}

func (p *printer) switchCase(n *ast.Node) {
	if n.A == ast.NoNode {
		p.print("default:")
	} else {
		p.print("case ")
		p.expr(n.A, precLowest)
		p.print(":")
	}
	p.indent++
	for _, s := range n.List {
		p.newline()
		p.statement(s)
	}
	p.indent--
}

func (p *printer) varDecl(n *ast.Node) {
	p.print(n.Name)
	p.print(" ")
	multiline := false
	if len(n.List) > 1 {
		for _, d := range n.List {
			if p.tree.Node(d).B != ast.NoNode {
				multiline = true
			}
		}
	}
	if multiline {
		p.indent++
	}
	for i, d := range n.List {
		if i > 0 {
			p.print(",")
			if multiline {
				p.newline()
			} else {
				p.print(" ")
			}
		}
		dn := p.tree.Node(d)
		p.expr(dn.A, precAssign)
		if dn.B != ast.NoNode {
			p.print(" = ")
			p.expr(dn.B, precYield)
		}
	}
	if multiline {
		p.indent--
	}
}

// leftmost returns the expression printed first when id is printed.
func leftmost(t *ast.Tree, id ast.NodeID) ast.NodeID {
	for {
		n := t.Node(id)
		switch n.Kind {
		case ast.KindCallExpression, ast.KindMemberExpression, ast.KindTaggedTemplateExpression,
			ast.KindBinaryExpression, ast.KindLogicalExpression, ast.KindAssignmentExpression,
			ast.KindConditionalExpression:
			id = n.A
		case ast.KindUpdateExpression:
			if n.Flags.Has(ast.FlagPrefix) {
				return id
			}
			id = n.A
		case ast.KindSequenceExpression:
			id = n.List[0]
		default:
			return id
		}
	}
}

func opensStatementAmbiguously(k ast.Kind) bool {
	switch k {
	case ast.KindFunctionExpression, ast.KindClassExpression, ast.KindObjectExpression:
		return true
	}
	return false
}

func precedence(t *ast.Tree, id ast.NodeID) int {
	n := t.Node(id)
	switch n.Kind {
	case ast.KindYieldExpression:
		return precYield
	case ast.KindAssignmentExpression, ast.KindArrowFunctionExpression:
		return precAssign
	case ast.KindConditionalExpression:
		return precConditional
	case ast.KindBinaryExpression, ast.KindLogicalExpression:
		if prec, ok := binaryPrec[n.Name]; ok {
			return prec
		}
		return precCompare
	case ast.KindAwaitExpression, ast.KindUnaryExpression, ast.KindUpdateExpression:
		return precPrefix
	case ast.KindCallExpression, ast.KindMemberExpression, ast.KindNewExpression,
		ast.KindTaggedTemplateExpression:
		return precCall
	case ast.KindSequenceExpression:
		return precLowest
	default:
		return precPrimary
	}
}

// expr prints id, parenthesized when its precedence is below minPrec.
func (p *printer) expr(id ast.NodeID, minPrec int) {
	wrap := p.parens[id] || precedence(p.tree, id) < minPrec
	if wrap {
		p.print("(")
	}
	p.exprNoParens(id)
	if wrap {
		p.print(")")
	}
}

func (p *printer) exprNoParens(id ast.NodeID) {
	n := p.tree.Node(id)
	switch n.Kind {
	case ast.KindIdentifier:
		p.print(n.Name)
	case ast.KindThisExpression:
		p.print("this")
	case ast.KindSuper:
		p.print("super")
	case ast.KindStringLiteral:
		p.print(quote(n.Name))
	case ast.KindNumericLiteral, ast.KindBooleanLiteral:
		p.print(n.Name)
	case ast.KindNullLiteral:
		p.print("null")
	case ast.KindPrivateName:
		p.print("#")
		p.expr(n.A, precPrimary)
	case ast.KindTemplateLiteral:
		p.template(n)
	case ast.KindTaggedTemplateExpression:
		p.expr(n.A, precCall)
		p.template(p.tree.Node(n.B))
	case ast.KindCallExpression:
		if n.Flags.Has(ast.FlagPure) {
			p.print("/*" + ast.PureAnnotation + "*/")
		}
		p.expr(n.A, precCall)
		p.print("(")
		p.list(n.List)
		p.print(")")
	case ast.KindNewExpression:
		if n.Flags.Has(ast.FlagPure) {
			p.print("/*" + ast.PureAnnotation + "*/")
		}
		p.print("new ")
		if containsCall(p.tree, n.A) {
			p.parens[n.A] = true
		}
		p.expr(n.A, precCall)
		p.print("(")
		p.list(n.List)
		p.print(")")
	case ast.KindMemberExpression:
		p.expr(n.A, precCall)
		if n.Flags.Has(ast.FlagComputed) {
			p.print("[")
			p.expr(n.B, precLowest)
			p.print("]")
		} else {
			p.print(".")
			p.expr(n.B, precPrimary)
		}
	case ast.KindAwaitExpression:
		p.print("await ")
		p.expr(n.A, precPrefix)
	case ast.KindYieldExpression:
		p.print("yield")
		if n.Flags.Has(ast.FlagDelegate) {
			p.print("*")
		}
		if n.A != ast.NoNode {
			p.print(" ")
			p.expr(n.A, precYield)
		}
	case ast.KindUnaryExpression:
		p.print(n.Name)
		if needsUnarySpace(p.tree, n) {
			p.print(" ")
		}
		p.expr(n.A, precPrefix)
	case ast.KindUpdateExpression:
		if n.Flags.Has(ast.FlagPrefix) {
			p.print(n.Name)
			p.expr(n.A, precPrefix)
			break
		}
		p.expr(n.A, precCall)
		p.print(n.Name)
	case ast.KindBinaryExpression, ast.KindLogicalExpression:
		prec := precedence(p.tree, id)
		if n.Name == "**" {
			// Right-associative, and a unary left operand is a syntax error.
			p.expr(n.A, precCall)
			p.print(" ** ")
			p.expr(n.B, prec)
			break
		}
		p.expr(n.A, prec)
		p.print(" " + n.Name + " ")
		p.expr(n.B, prec+1)
	case ast.KindConditionalExpression:
		p.expr(n.A, precNullish)
		p.print(" ? ")
		p.expr(n.B, precYield)
		p.print(" : ")
		p.expr(n.C, precYield)
	case ast.KindSequenceExpression:
		for i, e := range n.List {
			if i > 0 {
				p.print(", ")
			}
			p.expr(e, precYield)
		}
	case ast.KindAssignmentExpression:
		p.expr(n.A, precCall)
		p.print(" " + n.Name + " ")
		p.expr(n.B, precYield)
	case ast.KindArrayExpression, ast.KindArrayPattern:
		p.print("[")
		p.list(n.List)
		p.print("]")
	case ast.KindSpreadElement, ast.KindRestElement:
		p.print("...")
		p.expr(n.A, precYield)
	case ast.KindAssignmentPattern:
		p.expr(n.A, precCall)
		p.print(" = ")
		p.expr(n.B, precYield)
	case ast.KindObjectExpression, ast.KindObjectPattern:
		p.object(n)
	case ast.KindFunctionExpression:
		p.function(id)
	case ast.KindArrowFunctionExpression:
		p.arrow(n)
	case ast.KindClassExpression:
		p.class(id)
	default:
		panic(fmt.Sprintf("printer: %s is not an expression", n.Kind))
	}
}

func (p *printer) list(ids []ast.NodeID) {
	for i, id := range ids {
		if i > 0 {
			p.print(", ")
		}
		p.expr(id, precYield)
	}
}

func (p *printer) params(ids []ast.NodeID) {
	p.print("(")
	p.list(ids)
	p.print(")")
}

func (p *printer) function(id ast.NodeID) {
	n := p.tree.Node(id)
	if n.Flags.Has(ast.FlagAsync) {
		p.print("async ")
	}
	p.print("function")
	if n.Flags.Has(ast.FlagGenerator) {
		p.print("*")
	}
	p.print(" ")
	if n.A != ast.NoNode {
		p.expr(n.A, precPrimary)
	}
	p.params(n.Params)
	p.print(" ")
	p.block(n.B)
}

func (p *printer) arrow(n *ast.Node) {
	if n.Flags.Has(ast.FlagAsync) {
		p.print("async ")
	}
	p.params(n.Params)
	p.print(" => ")
	if p.tree.Kind(n.B) == ast.KindBlockStatement {
		p.block(n.B)
		return
	}
	if p.tree.Kind(n.B) == ast.KindObjectExpression {
		p.parens[n.B] = true
	}
	p.expr(n.B, precAssign)
}

func (p *printer) key(n *ast.Node) {
	if n.Flags.Has(ast.FlagComputed) {
		p.print("[")
		p.expr(n.A, precYield)
		p.print("]")
		return
	}
	p.expr(n.A, precPrimary)
}

func (p *printer) method(id ast.NodeID) {
	n := p.tree.Node(id)
	if n.Flags.Has(ast.FlagStatic) {
		p.print("static ")
	}
	switch n.Name {
	case "get", "set":
		p.print(n.Name + " ")
	}
	if n.Flags.Has(ast.FlagAsync) {
		p.print("async ")
	}
	if n.Flags.Has(ast.FlagGenerator) {
		p.print("*")
	}
	p.key(n)
	p.params(n.Params)
	p.print(" ")
	p.block(n.B)
}

func (p *printer) object(n *ast.Node) {
	if len(n.List) == 0 {
		p.print("{}")
		return
	}
	p.print("{")
	p.indent++
	for i, prop := range n.List {
		if i > 0 {
			p.print(",")
		}
		p.newline()
		pn := p.tree.Node(prop)
		switch pn.Kind {
		case ast.KindObjectMethod:
			p.method(prop)
		case ast.KindSpreadElement, ast.KindRestElement:
			p.expr(prop, precLowest)
		default:
			if pn.Flags.Has(ast.FlagShorthand) {
				p.expr(pn.B, precYield)
				continue
			}
			p.key(pn)
			p.print(": ")
			p.expr(pn.B, precYield)
		}
	}
	p.indent--
	p.newline()
	p.print("}")
}

func (p *printer) class(id ast.NodeID) {
	n := p.tree.Node(id)
	p.print("class ")
	if n.A != ast.NoNode {
		p.expr(n.A, precPrimary)
		p.print(" ")
	}
	if n.B != ast.NoNode {
		p.print("extends ")
		p.expr(n.B, precCall)
		p.print(" ")
	}
	if len(n.List) == 0 {
		p.print("{}")
		return
	}
	p.print("{")
	p.indent++
	for _, m := range n.List {
		p.newline()
		mn := p.tree.Node(m)
		switch mn.Kind {
		case ast.KindStaticBlock:
			p.print("static ")
			p.braced(mn.List)
		case ast.KindClassProperty, ast.KindClassPrivateProperty:
			if mn.Flags.Has(ast.FlagStatic) {
				p.print("static ")
			}
			p.key(mn)
			if mn.B != ast.NoNode {
				p.print(" = ")
				p.expr(mn.B, precYield)
			}
			p.print(";")
		default:
			p.method(m)
		}
	}
	p.indent--
	p.newline()
	p.print("}")
}

func (p *printer) template(n *ast.Node) {
	p.print("`")
	for i, q := range n.Params {
		p.print(p.tree.Node(q).Name)
		if i < len(n.List) {
			p.print("${")
			p.expr(n.List[i], precLowest)
			p.print("}")
		}
	}
	p.print("`")
}

// containsCall reports whether the callee chain of a new expression holds a
// call, which would otherwise bind the arguments to the wrong expression.
func containsCall(t *ast.Tree, id ast.NodeID) bool {
	for {
		n := t.Node(id)
		switch n.Kind {
		case ast.KindCallExpression:
			return true
		case ast.KindMemberExpression, ast.KindTaggedTemplateExpression:
			id = n.A
		default:
			return false
		}
	}
}

// needsUnarySpace reports whether a unary operator must be separated from
// its operand: word operators, and "- -x" / "+ +x".
func needsUnarySpace(t *ast.Tree, n *ast.Node) bool {
	if n.Name == "typeof" || n.Name == "void" || n.Name == "delete" {
		return true
	}
	arg := t.Node(n.A)
	switch arg.Kind {
	case ast.KindUnaryExpression, ast.KindUpdateExpression:
		return arg.Name[0] == n.Name[0] && (arg.Kind == ast.KindUnaryExpression || arg.Flags.Has(ast.FlagPrefix))
	}
	return false
}

// quote renders s as a double-quoted JavaScript string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
