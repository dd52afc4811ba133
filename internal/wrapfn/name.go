package wrapfn

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/roach88/remap/internal/ast"
)

// reserved words cannot name a function and get an underscore prefix.
var reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true, "let": true, "static": true, "implements": true,
	"interface": true, "package": true, "private": true, "protected": true,
	"public": true, "await": true, "arguments": true, "eval": true,
}

// inferName returns the name an anonymous function expression at id takes
// from its syntactic position: `var NAME = fn`, `{ NAME: fn }` or
// `NAME = fn`. It returns "" when the position gives no name.
func inferName(t *ast.Tree, id ast.NodeID) string {
	p := t.Node(t.Parent(id))
	if p == nil || p.B != id {
		return ""
	}
	var raw string
	switch p.Kind {
	case ast.KindVariableDeclarator:
		if t.Kind(p.A) == ast.KindIdentifier {
			raw = t.Node(p.A).Name
		}
	case ast.KindObjectProperty:
		if p.Flags.Has(ast.FlagComputed) {
			return ""
		}
		switch key := t.Node(p.A); key.Kind {
		case ast.KindIdentifier, ast.KindStringLiteral, ast.KindNumericLiteral:
			raw = key.Name
		}
	case ast.KindAssignmentExpression:
		if p.Name == "=" && t.Kind(p.A) == ast.KindIdentifier {
			raw = t.Node(p.A).Name
		}
	}
	if raw == "" {
		return ""
	}
	return bindingName(raw)
}

// bindingName turns an arbitrary property name into an identifier: invalid
// characters split words that are then camel-cased, leading digits are
// dropped and reserved words are prefixed with an underscore.
func bindingName(raw string) string {
	words := strings.FieldsFunc(raw, func(r rune) bool {
		return !(r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			w = strings.TrimLeftFunc(w, unicode.IsDigit)
		} else if w != "" {
			r, size := utf8.DecodeRuneInString(w)
			w = string(unicode.ToUpper(r)) + w[size:]
		}
		if b.Len() == 0 && i > 0 {
			w = strings.TrimLeftFunc(w, unicode.IsDigit)
		}
		b.WriteString(w)
	}
	name := b.String()
	if name == "" {
		return "_"
	}
	if reserved[name] || !ast.IsIdentifierName(name) {
		return "_" + name
	}
	return name
}
