package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/remap/internal/ast"
)

func TestPrintExpressions(t *testing.T) {
	tests := []struct {
		name  string
		build func(tr *ast.Tree) ast.NodeID
		want  string
	}{
		{"precedence kept", func(tr *ast.Tree) ast.NodeID {
			return tr.Binary("+", tr.Ident("a"), tr.Binary("*", tr.Ident("b"), tr.Ident("c")))
		}, "a + b * c"},
		{"precedence raised", func(tr *ast.Tree) ast.NodeID {
			return tr.Binary("*", tr.Binary("+", tr.Ident("a"), tr.Ident("b")), tr.Ident("c"))
		}, "(a + b) * c"},
		{"right operand of same level", func(tr *ast.Tree) ast.NodeID {
			return tr.Binary("-", tr.Ident("a"), tr.Binary("-", tr.Ident("b"), tr.Ident("c")))
		}, "a - (b - c)"},
		{"yield operand", func(tr *ast.Tree) ast.NodeID {
			return tr.Binary("+", tr.Yield(tr.Ident("a")), tr.Ident("b"))
		}, "(yield a) + b"},
		{"yield argument", func(tr *ast.Tree) ast.NodeID {
			return tr.Call(tr.Ident("f"), tr.Yield(tr.Ident("a")))
		}, "f(yield a)"},
		{"yield object", func(tr *ast.Tree) ast.NodeID {
			return tr.Member(tr.Yield(tr.Ident("a")), "b")
		}, "(yield a).b"},
		{"await member", func(tr *ast.Tree) ast.NodeID {
			return tr.Await(tr.Member(tr.Ident("a"), "b"))
		}, "await a.b"},
		{"await object", func(tr *ast.Tree) ast.NodeID {
			return tr.Member(tr.Await(tr.Ident("a")), "b")
		}, "(await a).b"},
		{"assignment argument", func(tr *ast.Tree) ast.NodeID {
			return tr.Call(tr.Ident("f"), tr.Assign("=", tr.Ident("a"), tr.Ident("b")))
		}, "f(a = b)"},
		{"arrow operand", func(tr *ast.Tree) ast.NodeID {
			arrow := tr.Function(ast.KindArrowFunctionExpression, ast.NoNode, nil, tr.Ident("b"), 0)
			return tr.Binary("||", tr.Ident("a"), arrow)
		}, "a || (() => b)"},
		{"arrow returning object", func(tr *ast.Tree) ast.NodeID {
			return tr.Function(ast.KindArrowFunctionExpression, ast.NoNode, nil, tr.Object(), 0)
		}, "() => ({})"},
		{"async arrow", func(tr *ast.Tree) ast.NodeID {
			body := tr.Block(tr.Return(tr.Await(tr.Ident("x"))))
			return tr.Function(ast.KindArrowFunctionExpression, ast.NoNode, []ast.NodeID{tr.Ident("x")}, body, ast.FlagAsync)
		}, "async (x) => {\n  return await x;\n}"},
		{"computed member", func(tr *ast.Tree) ast.NodeID {
			return tr.Index(tr.Ident("a"), tr.Str("b"))
		}, `a["b"]`},
		{"numeric source text", func(tr *ast.Tree) ast.NodeID {
			return tr.Array(tr.Num("1e3"), tr.Null(), tr.Bool(false), tr.Spread(tr.Ident("xs")))
		}, "[1e3, null, false, ...xs]"},
		{"pure call", func(tr *ast.Tree) ast.NodeID {
			c := tr.Call(tr.Member(tr.Ident("babelHelpers"), "wrap"), tr.Ident("fn"))
			ast.AnnotateAsPure(tr, c)
			return c
		}, "/*#__PURE__*/babelHelpers.wrap(fn)"},
		{"parameters", func(tr *ast.Tree) ast.NodeID {
			params := []ast.NodeID{tr.AssignPattern(tr.Ident("a"), tr.Num("1")), tr.Rest(tr.Ident("r"))}
			return tr.Function(ast.KindFunctionExpression, tr.Ident("f"), params, tr.Block(), 0)
		}, "function f(a = 1, ...r) {}"},
		{"generator expression", func(tr *ast.Tree) ast.NodeID {
			return tr.Function(ast.KindFunctionExpression, ast.NoNode, nil, tr.Block(), ast.FlagGenerator)
		}, "function* () {}"},
		{"object literal", func(tr *ast.Tree) ast.NodeID {
			return tr.Object(
				tr.Property(tr.Ident("a"), tr.Ident("a"), ast.FlagShorthand),
				tr.Property(tr.Str("k"), tr.Num("1"), ast.FlagComputed),
				tr.Method(ast.KindObjectMethod, "method", tr.Ident("g"), nil, tr.Block(), ast.FlagGenerator),
				tr.Spread(tr.Ident("rest")),
			)
		}, "{\n  a,\n  [\"k\"]: 1,\n  *g() {},\n  ...rest\n}"},
		{"unary yield operand", func(tr *ast.Tree) ast.NodeID {
			return tr.Unary("!", tr.Yield(tr.Ident("a")))
		}, "!(yield a)"},
		{"word unary", func(tr *ast.Tree) ast.NodeID {
			return tr.Unary("typeof", tr.Await(tr.Ident("a")))
		}, "typeof await a"},
		{"nested negation", func(tr *ast.Tree) ast.NodeID {
			return tr.Unary("-", tr.Unary("-", tr.Ident("x")))
		}, "- -x"},
		{"update forms", func(tr *ast.Tree) ast.NodeID {
			return tr.Sequence(tr.Update("++", tr.Ident("i"), false), tr.Update("--", tr.Member(tr.This(), "n"), true))
		}, "i++, --this.n"},
		{"logical mixes", func(tr *ast.Tree) ast.NodeID {
			return tr.Logical("||", tr.Logical("&&", tr.Ident("a"), tr.Ident("b")), tr.Yield(tr.Ident("c")))
		}, "a && b || (yield c)"},
		{"conditional", func(tr *ast.Tree) ast.NodeID {
			cond := tr.Conditional(tr.Ident("a"), tr.Yield(tr.Ident("b")), tr.Assign("=", tr.Ident("c"), tr.Num("1")))
			return tr.Binary("+", cond, tr.Ident("d"))
		}, "(a ? yield b : c = 1) + d"},
		{"sequence argument", func(tr *ast.Tree) ast.NodeID {
			return tr.Call(tr.Ident("f"), tr.Sequence(tr.Ident("a"), tr.Ident("b")))
		}, "f((a, b))"},
		{"new expression", func(tr *ast.Tree) ast.NodeID {
			return tr.New(tr.Member(tr.Ident("ns"), "Client"), tr.Yield(tr.Ident("cfg")))
		}, "new ns.Client(yield cfg)"},
		{"new with call in callee", func(tr *ast.Tree) ast.NodeID {
			return tr.New(tr.Member(tr.Call(tr.Ident("load")), "Client"))
		}, "new (load().Client)()"},
		{"pure new", func(tr *ast.Tree) ast.NodeID {
			n := tr.New(tr.Ident("Map"))
			ast.AnnotateAsPure(tr, n)
			return n
		}, "/*#__PURE__*/new Map()"},
		{"template literal", func(tr *ast.Tree) ast.NodeID {
			quasis := []ast.NodeID{tr.Quasi("id=", false), tr.Quasi(`\n`, true)}
			return tr.Template(quasis, tr.Yield(tr.Ident("id")))
		}, "`id=${yield id}\\n`"},
		{"tagged template", func(tr *ast.Tree) ast.NodeID {
			quasi := tr.Template([]ast.NodeID{tr.Quasi("a", false), tr.Quasi("", true)}, tr.Ident("b"))
			return tr.TaggedTemplate(tr.Member(tr.Ident("db"), "sql"), quasi)
		}, "db.sql`a${b}`"},
		{"exponent operands", func(tr *ast.Tree) ast.NodeID {
			left := tr.Binary("**", tr.Unary("-", tr.Ident("a")), tr.Ident("b"))
			return tr.Binary("**", left, tr.Binary("**", tr.Ident("c"), tr.Ident("d")))
		}, "((-a) ** b) ** c ** d"},
		{"patterns", func(tr *ast.Tree) ast.NodeID {
			obj := tr.ObjectPattern(
				tr.Property(tr.Ident("a"), tr.Ident("a"), ast.FlagShorthand),
				tr.Rest(tr.Ident("rest")),
			)
			arr := tr.ArrayPattern(tr.Ident("x"), tr.AssignPattern(tr.Ident("y"), tr.Num("2")))
			return tr.Function(ast.KindArrowFunctionExpression, ast.NoNode, []ast.NodeID{obj, arr}, tr.Ident("a"), 0)
		}, "({\n  a,\n  ...rest\n}, [x, y = 2]) => a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := ast.New()
			assert.Equal(t, tt.want, Print(tr, tt.build(tr)))
		})
	}
}

func TestPrintStatements(t *testing.T) {
	tests := []struct {
		name  string
		build func(tr *ast.Tree) ast.NodeID
		want  string
	}{
		{"function expression statement", func(tr *ast.Tree) ast.NodeID {
			fn := tr.Function(ast.KindFunctionExpression, ast.NoNode, nil, tr.Block(), 0)
			return tr.ExprStmt(tr.Call(fn))
		}, "(function () {})();"},
		{"pure function expression statement", func(tr *ast.Tree) ast.NodeID {
			fn := tr.Function(ast.KindFunctionExpression, ast.NoNode, nil, tr.Block(), 0)
			c := tr.Call(fn)
			ast.AnnotateAsPure(tr, c)
			return tr.ExprStmt(c)
		}, "/*#__PURE__*/(function () {})();"},
		{"object statement", func(tr *ast.Tree) ast.NodeID {
			return tr.ExprStmt(tr.Member(tr.Object(), "x"))
		}, "({}).x;"},
		{"class expression statement", func(tr *ast.Tree) ast.NodeID {
			return tr.ExprStmt(tr.Class(ast.KindClassExpression, ast.NoNode, ast.NoNode))
		}, "(class {});"},
		{"if else", func(tr *ast.Tree) ast.NodeID {
			return tr.If(tr.Ident("a"), tr.Block(tr.Return(ast.NoNode)), tr.Block())
		}, "if (a) {\n  return;\n} else {}"},
		{"while", func(tr *ast.Tree) ast.NodeID {
			return tr.While(tr.Bool(true), tr.Block(tr.Throw(tr.Ident("e"))))
		}, "while (true) {\n  throw e;\n}"},
		{"try catch finally", func(tr *ast.Tree) ast.NodeID {
			return tr.Try(tr.Block(tr.ExprStmt(tr.Call(tr.Ident("f")))), tr.Catch(tr.Ident("e"), tr.Block()), tr.Block())
		}, "try {\n  f();\n} catch (e) {} finally {}"},
		{"optional catch binding", func(tr *ast.Tree) ast.NodeID {
			return tr.Try(tr.Block(), tr.Catch(ast.NoNode, tr.Block()), ast.NoNode)
		}, "try {} catch {}"},
		{"declarators on one line", func(tr *ast.Tree) ast.NodeID {
			return tr.VarDecl("let", tr.Declarator(tr.Ident("a"), ast.NoNode), tr.Declarator(tr.Ident("b"), ast.NoNode))
		}, "let a, b;"},
		{"declarators with initializer", func(tr *ast.Tree) ast.NodeID {
			return tr.VarDecl("var", tr.Declarator(tr.Ident("a"), tr.Num("1")), tr.Declarator(tr.Ident("b"), ast.NoNode))
		}, "var a = 1,\n  b;"},
		{"class members", func(tr *ast.Tree) ast.NodeID {
			return tr.Class(ast.KindClassDeclaration, tr.Ident("A"), tr.Ident("B"),
				tr.ClassProperty(tr.Ident("x"), tr.Num("1"), ast.FlagStatic),
				tr.Method(ast.KindClassMethod, "get", tr.Ident("v"), nil, tr.Block(tr.Return(tr.This())), 0),
			)
		}, "class A extends B {\n  static x = 1;\n  get v() {\n    return this;\n  }\n}"},
		{"for loop", func(tr *ast.Tree) ast.NodeID {
			init := tr.Var("let", "i", tr.Num("0"))
			test := tr.Binary("<", tr.Ident("i"), tr.Ident("n"))
			return tr.For(init, test, tr.Update("++", tr.Ident("i"), false), tr.Block(tr.Continue(ast.NoNode)))
		}, "for (let i = 0; i < n; i++) {\n  continue;\n}"},
		{"empty for head", func(tr *ast.Tree) ast.NodeID {
			return tr.For(ast.NoNode, ast.NoNode, ast.NoNode, tr.Empty())
		}, "for (;;) ;"},
		{"for of and for in", func(tr *ast.Tree) ast.NodeID {
			of := tr.ForOf(tr.VarDecl("const", tr.Declarator(tr.Ident("x"), ast.NoNode)), tr.Ident("xs"), tr.Block(), ast.FlagAwait)
			in := tr.ForIn(tr.Ident("k"), tr.Ident("o"), tr.Block())
			return tr.Program(of, in)
		}, "for await (const x of xs) {}\nfor (k in o) {}"},
		{"do while", func(tr *ast.Tree) ast.NodeID {
			return tr.DoWhile(tr.Block(tr.Break(ast.NoNode)), tr.Ident("more"))
		}, "do {\n  break;\n} while (more);"},
		{"switch", func(tr *ast.Tree) ast.NodeID {
			return tr.Switch(tr.Ident("k"),
				tr.Case(tr.Str("a"), tr.ExprStmt(tr.Call(tr.Ident("f"))), tr.Break(ast.NoNode)),
				tr.Case(ast.NoNode),
			)
		}, "switch (k) {\n  case \"a\":\n    f();\n    break;\n  default:\n}"},
		{"labeled loop", func(tr *ast.Tree) ast.NodeID {
			body := tr.Block(tr.Break(tr.Ident("outer")))
			return tr.Labeled(tr.Ident("outer"), tr.While(tr.Bool(true), body))
		}, "outer: while (true) {\n  break outer;\n}"},
		{"conditional statement", func(tr *ast.Tree) ast.NodeID {
			fn := tr.Function(ast.KindFunctionExpression, ast.NoNode, nil, tr.Block(), 0)
			return tr.ExprStmt(tr.Conditional(fn, tr.Ident("a"), tr.Ident("b")))
		}, "(function () {}) ? a : b;"},
		{"object pattern assignment", func(tr *ast.Tree) ast.NodeID {
			pat := tr.ObjectPattern(tr.Property(tr.Ident("a"), tr.Ident("a"), ast.FlagShorthand))
			return tr.ExprStmt(tr.Assign("=", pat, tr.Ident("o")))
		}, "({\n  a\n} = o);"},
		{"private members and static block", func(tr *ast.Tree) ast.NodeID {
			read := tr.Member(tr.This(), "n")
			tr.Replace(tr.Node(read).B, tr.PrivateName("n"))
			return tr.Class(ast.KindClassDeclaration, tr.Ident("A"), ast.NoNode,
				tr.ClassPrivateProperty(tr.PrivateName("n"), tr.Num("1"), 0),
				tr.Method(ast.KindClassPrivateMethod, "method", tr.PrivateName("get"), nil, tr.Block(tr.Return(read)), ast.FlagAsync),
				tr.StaticBlock(tr.Empty()),
			)
		}, "class A {\n  #n = 1;\n  async #get() {\n    return this.#n;\n  }\n  static {\n    ;\n  }\n}"},
		{"program", func(tr *ast.Tree) ast.NodeID {
			return tr.Program(
				tr.Var("const", "a", tr.Num("1")),
				tr.Function(ast.KindFunctionDeclaration, tr.Ident("f"), nil, tr.Block(tr.Return(tr.Ident("a"))), ast.FlagAsync),
			)
		}, "const a = 1;\nasync function f() {\n  return a;\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := ast.New()
			assert.Equal(t, tt.want, Print(tr, tt.build(tr)))
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{"a\\b", `"a\\b"`},
		{"line\nbreak\ttab\r", `"line\nbreak\ttab\r"`},
		{"\x01", `"\u0001"`},
		{" ", `" "`},
		{"héllo", `"héllo"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, quote(tt.in), "quote(%q)", tt.in)
	}
}

func TestPrintPanicsOnNonExpression(t *testing.T) {
	tr := ast.New()
	prop := tr.ClassProperty(tr.Ident("x"), ast.NoNode, 0)
	assert.Panics(t, func() { Print(tr, prop) })
}
