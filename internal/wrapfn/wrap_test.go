package wrapfn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/remap/internal/ast"
	"github.com/roach88/remap/internal/printer"
)

const driver = "_asyncToGenerator"

func wrap(t *testing.T, tr *ast.Tree, fn ast.NodeID, opts Options) ast.NodeID {
	t.Helper()
	res, err := Wrap(tr, fn, tr.Ident(driver), opts)
	require.NoError(t, err)
	return res
}

func TestWrapDeclaration(t *testing.T) {
	tr := ast.New()
	body := tr.Block(tr.Return(tr.Yield(tr.Call(tr.Ident("g"), tr.Ident("x")))))
	fn := tr.Function(ast.KindFunctionDeclaration, tr.Ident("f"), []ast.NodeID{tr.Ident("x")}, body, ast.FlagGenerator)
	prog := tr.Program(fn)

	res := wrap(t, tr, fn, Options{NoNewArrows: true})

	assert.Equal(t, ast.KindFunctionDeclaration, tr.Kind(res))
	assert.Len(t, tr.Node(prog).List, 2)
	assert.Equal(t, `function f(_x) {
  return _f.apply(this, arguments);
}
function _f() {
  _f = _asyncToGenerator(function* (x) {
    return yield g(x);
  });
  return _f.apply(this, arguments);
}`, printer.Print(tr, prog))
}

func TestWrapDeclarationOutsideStatementList(t *testing.T) {
	tr := ast.New()
	fn := tr.Function(ast.KindFunctionDeclaration, tr.Ident("f"), nil, tr.Block(), ast.FlagGenerator)
	tr.If(tr.Ident("x"), fn, ast.NoNode)

	_, err := Wrap(tr, fn, tr.Ident(driver), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrap function f")
}

func TestWrapAnonymousExpression(t *testing.T) {
	tr := ast.New()
	fn := tr.Function(ast.KindFunctionExpression, ast.NoNode, nil,
		tr.Block(tr.ExprStmt(tr.Yield(tr.Ident("x")))), ast.FlagGenerator)
	stmt := tr.ExprStmt(tr.Call(tr.Ident("run"), fn))

	res := wrap(t, tr, fn, Options{})

	assert.Equal(t, ast.KindCallExpression, tr.Kind(res))
	assert.Equal(t, fn, tr.Node(res).List[0], "the generator function itself is handed to the driver")
	assert.False(t, tr.Node(fn).Flags.Has(ast.FlagAsync))
	assert.Equal(t, `run(_asyncToGenerator(function* () {
  yield x;
}));`, printer.Print(tr, stmt))
}

func TestWrapPreservesArity(t *testing.T) {
	build := func() (*ast.Tree, ast.NodeID, ast.NodeID) {
		tr := ast.New()
		params := []ast.NodeID{tr.Ident("a"), tr.AssignPattern(tr.Ident("b"), tr.Num("1")), tr.Ident("c")}
		fn := tr.Function(ast.KindFunctionExpression, ast.NoNode, params, tr.Block(), ast.FlagGenerator)
		return tr, fn, tr.ExprStmt(tr.Call(tr.Ident("run"), fn))
	}

	t.Run("kept", func(t *testing.T) {
		tr, fn, stmt := build()
		wrap(t, tr, fn, Options{})
		assert.Equal(t, `run(function () {
  var _ref = _asyncToGenerator(function* (a, b = 1, c) {});
  return function (_x) {
    return _ref.apply(this, arguments);
  };
}());`, printer.Print(tr, stmt))
	})

	t.Run("ignored", func(t *testing.T) {
		tr, fn, stmt := build()
		wrap(t, tr, fn, Options{IgnoreFunctionLength: true})
		assert.Equal(t, `run(_asyncToGenerator(function* (a, b = 1, c) {}));`, printer.Print(tr, stmt))
	})
}

func TestWrapInfersName(t *testing.T) {
	tr := ast.New()
	fn := tr.Function(ast.KindFunctionExpression, ast.NoNode, nil, tr.Block(), ast.FlagGenerator)
	decl := tr.Var("var", "fetch", fn)

	res := wrap(t, tr, fn, Options{IgnoreFunctionLength: true})

	assert.Equal(t, ast.KindCallExpression, tr.Kind(res))
	assert.Equal(t, `var fetch = function () {
  var _ref = _asyncToGenerator(function* () {});
  return function fetch() {
    return _ref.apply(this, arguments);
  };
}();`, printer.Print(tr, decl))
}

func TestWrapNamedExpression(t *testing.T) {
	tr := ast.New()
	fn := tr.Function(ast.KindFunctionExpression, tr.Ident("load"), []ast.NodeID{tr.Ident("id")},
		tr.Block(), ast.FlagGenerator)
	stmt := tr.ExprStmt(tr.Call(tr.Ident("run"), fn))

	wrap(t, tr, fn, Options{})

	assert.Equal(t, `run(function () {
  var _load = _asyncToGenerator(function* (id) {});
  function load(_x) {
    return _load.apply(this, arguments);
  }
  return load;
}());`, printer.Print(tr, stmt))
}

func TestWrapMethodHoistsEnvironment(t *testing.T) {
	tr := ast.New()
	call := tr.Call(tr.Member(tr.This(), "fetch"), tr.Ident("arguments"))
	body := tr.Block(tr.Return(tr.Yield(call)))
	m := tr.Method(ast.KindObjectMethod, "method", tr.Ident("load"), []ast.NodeID{tr.Ident("id")}, body, ast.FlagGenerator)
	decl := tr.Var("var", "o", tr.Object(m))

	res := wrap(t, tr, m, Options{})

	assert.Equal(t, m, res, "methods are rewritten in place")
	assert.False(t, tr.Node(m).Flags.Has(ast.FlagGenerator))
	assert.False(t, tr.Node(m).Flags.Has(ast.FlagAsync))
	assert.Equal(t, `var o = {
  load(id) {
    var _arguments = arguments,
      _this = this;
    return _asyncToGenerator(function* () {
      return yield _this.fetch(_arguments);
    })();
  }
};`, printer.Print(tr, decl))
}

func TestWrapMethodLeavesNestedFunctionsAlone(t *testing.T) {
	tr := ast.New()
	nested := tr.Function(ast.KindFunctionExpression, ast.NoNode, nil,
		tr.Block(tr.Return(tr.This())), 0)
	body := tr.Block(tr.Return(nested))
	m := tr.Method(ast.KindClassMethod, "method", tr.Ident("make"), nil, body, ast.FlagGenerator|ast.FlagStatic)
	cls := tr.Class(ast.KindClassDeclaration, tr.Ident("A"), ast.NoNode, m)

	wrap(t, tr, m, Options{})

	assert.Equal(t, `class A {
  static make() {
    return _asyncToGenerator(function* () {
      return function () {
        return this;
      };
    })();
  }
}`, printer.Print(tr, cls))
}

func TestWrapMethodWithSuper(t *testing.T) {
	tr := ast.New()
	body := tr.Block(tr.Return(tr.Call(tr.Member(tr.Super(), "load"))))
	m := tr.Method(ast.KindClassMethod, "method", tr.Ident("load"), nil, body, ast.FlagGenerator)
	cls := tr.Class(ast.KindClassDeclaration, tr.Ident("A"), tr.Ident("Base"), m)

	wrap(t, tr, m, Options{})

	assert.Equal(t, `class A extends Base {
  load() {
    var _superprop_getLoad = () => super.load,
      _this = this;
    return _asyncToGenerator(function* () {
      return _superprop_getLoad().call(_this);
    })();
  }
}`, printer.Print(tr, cls))
}

func TestWrapMethodLowersSuperAccess(t *testing.T) {
	// m(k) {
	//   yield super.a;
	//   super[k](1);
	//   super.b = 2;
	//   super.c += 3;
	//   return super.a;
	// }
	tr := ast.New()
	body := tr.Block(
		tr.ExprStmt(tr.Yield(tr.Member(tr.Super(), "a"))),
		tr.ExprStmt(tr.Call(tr.Index(tr.Super(), tr.Ident("k")), tr.Num("1"))),
		tr.ExprStmt(tr.Assign("=", tr.Member(tr.Super(), "b"), tr.Num("2"))),
		tr.ExprStmt(tr.Assign("+=", tr.Member(tr.Super(), "c"), tr.Num("3"))),
		tr.Return(tr.Member(tr.Super(), "a")),
	)
	m := tr.Method(ast.KindClassMethod, "method", tr.Ident("m"), []ast.NodeID{tr.Ident("k")}, body, ast.FlagGenerator)
	cls := tr.Class(ast.KindClassDeclaration, tr.Ident("A"), tr.Ident("Base"), m)

	wrap(t, tr, m, Options{})

	assert.Equal(t, `class A extends Base {
  m(k) {
    var _superprop_getA = () => super.a,
      _superprop_get = (_prop) => super[_prop],
      _superprop_setB = (_value) => super.b = _value,
      _superprop_setC = (_value2) => super.c = _value2,
      _superprop_getC = () => super.c,
      _this = this;
    return _asyncToGenerator(function* () {
      yield _superprop_getA();
      _superprop_get(k).call(_this, 1);
      _superprop_setB(2);
      _superprop_setC(_superprop_getC() + 3);
      return _superprop_getA();
    })();
  }
}`, printer.Print(tr, cls))
}

func TestWrapArrowWithSuperInMethod(t *testing.T) {
	tr := ast.New()
	tag := tr.TaggedTemplate(tr.Member(tr.Super(), "fmt"), tr.Template([]ast.NodeID{tr.Quasi("x", true)}))
	arrow := tr.Function(ast.KindArrowFunctionExpression, ast.NoNode, nil, tag, ast.FlagGenerator)
	m := tr.Method(ast.KindObjectMethod, "method", tr.Ident("m"), nil, tr.Block(tr.Return(arrow)), 0)
	decl := tr.Var("var", "o", tr.Object(m))

	res := wrap(t, tr, arrow, Options{NoNewArrows: true})

	assert.Equal(t, ast.KindReturnStatement, tr.Kind(tr.Parent(res)))
	assert.Equal(t, `var o = {
  m() {
    var _superprop_getFmt = () => super.fmt,
      _this = this;
    return _asyncToGenerator(function* () {
      return _superprop_getFmt().bind(_this)`+"`x`"+`;
    });
  }
};`, printer.Print(tr, decl))
}

func TestWrapSuperUnsupported(t *testing.T) {
	tests := []struct {
		name   string
		build  func(tr *ast.Tree) ast.NodeID
		reason string
	}{
		{"update expression", func(tr *ast.Tree) ast.NodeID {
			body := tr.Block(tr.ExprStmt(tr.Update("++", tr.Member(tr.Super(), "count"), false)))
			m := tr.Method(ast.KindClassMethod, "method", tr.Ident("m"), nil, body, ast.FlagGenerator)
			tr.Class(ast.KindClassDeclaration, tr.Ident("A"), tr.Ident("Base"), m)
			return m
		}, "update expressions on super properties"},
		{"computed compound assignment", func(tr *ast.Tree) ast.NodeID {
			body := tr.Block(tr.ExprStmt(tr.Assign("-=", tr.Index(tr.Super(), tr.Ident("k")), tr.Num("1"))))
			m := tr.Method(ast.KindClassMethod, "method", tr.Ident("m"), nil, body, ast.FlagGenerator)
			tr.Class(ast.KindClassDeclaration, tr.Ident("A"), tr.Ident("Base"), m)
			return m
		}, "compound assignment to a computed super property"},
		{"logical assignment", func(tr *ast.Tree) ast.NodeID {
			body := tr.Block(tr.ExprStmt(tr.Assign("??=", tr.Member(tr.Super(), "v"), tr.Num("1"))))
			m := tr.Method(ast.KindObjectMethod, "method", tr.Ident("m"), nil, body, ast.FlagGenerator)
			tr.Object(m)
			return m
		}, "logical assignment"},
		{"arrow outside a method", func(tr *ast.Tree) ast.NodeID {
			arrow := tr.Function(ast.KindArrowFunctionExpression, ast.NoNode, nil,
				tr.Member(tr.Super(), "x"), ast.FlagGenerator)
			tr.Function(ast.KindFunctionDeclaration, tr.Ident("f"), nil, tr.Block(tr.Return(arrow)), 0)
			return arrow
		}, "only available inside methods and class bodies"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := ast.New()
			fn := tt.build(tr)

			_, err := Wrap(tr, fn, tr.Ident(driver), Options{NoNewArrows: true})
			require.Error(t, err)
			assert.True(t, IsUnsupported(err))
			assert.Contains(t, err.Error(), tt.reason)

			var ue *UnsupportedError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, tr.Kind(fn), ue.Kind)
		})
	}
}

func TestWrapAccessorIsUnsupported(t *testing.T) {
	tr := ast.New()
	m := tr.Method(ast.KindObjectMethod, "get", tr.Ident("value"), nil, tr.Block(), ast.FlagGenerator)
	tr.Object(m)

	_, err := Wrap(tr, m, tr.Ident(driver), Options{})
	assert.True(t, IsUnsupported(err))
}

func TestWrapArrowAliasesThis(t *testing.T) {
	tr := ast.New()
	arrow := tr.Function(ast.KindArrowFunctionExpression, ast.NoNode, nil,
		tr.Member(tr.This(), "x"), ast.FlagGenerator)
	outer := tr.Function(ast.KindFunctionDeclaration, tr.Ident("outer"), nil,
		tr.Block(tr.Return(arrow)), 0)

	res := wrap(t, tr, arrow, Options{NoNewArrows: true})

	assert.Equal(t, ast.KindCallExpression, tr.Kind(res))
	assert.Equal(t, ast.KindFunctionExpression, tr.Kind(arrow), "arrow is converted in place")
	assert.Equal(t, `function outer() {
  var _this = this;
  return _asyncToGenerator(function* () {
    return _this.x;
  });
}`, printer.Print(tr, outer))
}

func TestWrapArrowBindsThis(t *testing.T) {
	tr := ast.New()
	arrow := tr.Function(ast.KindArrowFunctionExpression, ast.NoNode, nil,
		tr.Member(tr.This(), "x"), ast.FlagGenerator)
	decl := tr.Var("var", "h", arrow)
	prog := tr.Program(decl)

	res := wrap(t, tr, arrow, Options{NoNewArrows: false})

	require.Equal(t, ast.KindCallExpression, tr.Kind(res))
	assert.Equal(t, ast.KindVariableDeclarator, tr.Kind(tr.Parent(res)), "the bind call holds the arrow's position")
	assert.Equal(t, ast.KindMemberExpression, tr.Kind(tr.Node(res).A))
	assert.Equal(t, `var h = _asyncToGenerator(function* () {
  return this.x;
}).bind(this);`, printer.Print(tr, prog))
}

func TestWrapArrowArgumentsAtProgramLevel(t *testing.T) {
	tr := ast.New()
	arrow := tr.Function(ast.KindArrowFunctionExpression, ast.NoNode, nil,
		tr.Ident("arguments"), ast.FlagGenerator)
	prog := tr.Program(tr.ExprStmt(tr.Call(tr.Ident("run"), arrow)))

	wrap(t, tr, arrow, Options{NoNewArrows: true})

	assert.Equal(t, `run(_asyncToGenerator(function* () {
  return arguments;
}));`, printer.Print(tr, prog))
}

func TestWrapArrowInClassField(t *testing.T) {
	tests := []struct {
		name  string
		field func(tr *ast.Tree, value ast.NodeID) ast.NodeID
		body  func(tr *ast.Tree) ast.NodeID
		opts  Options
		want  string
	}{
		{
			name:  "aliases this in a new arrow",
			field: func(tr *ast.Tree, v ast.NodeID) ast.NodeID { return tr.ClassProperty(tr.Ident("load"), v, 0) },
			body:  func(tr *ast.Tree) ast.NodeID { return tr.Member(tr.This(), "x") },
			opts:  Options{NoNewArrows: true},
			want: `class {
  load = (() => {
    var _this = this;
    return _asyncToGenerator(function* () {
      return _this.x;
    });
  })();
}`,
		},
		{
			name:  "binds inside a new arrow",
			field: func(tr *ast.Tree, v ast.NodeID) ast.NodeID { return tr.ClassProperty(tr.Ident("load"), v, 0) },
			body:  func(tr *ast.Tree) ast.NodeID { return tr.Num("1") },
			opts:  Options{},
			want: `class {
  load = (() => _asyncToGenerator(function* () {
    return 1;
  }).bind(this))();
}`,
		},
		{
			name: "private field",
			field: func(tr *ast.Tree, v ast.NodeID) ast.NodeID {
				return tr.ClassPrivateProperty(tr.PrivateName("load"), v, ast.FlagStatic)
			},
			body: func(tr *ast.Tree) ast.NodeID { return tr.Num("1") },
			opts: Options{NoNewArrows: true},
			want: `class {
  static #load = (() => _asyncToGenerator(function* () {
    return 1;
  }))();
}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := ast.New()
			arrow := tr.Function(ast.KindArrowFunctionExpression, ast.NoNode, nil, tt.body(tr), ast.FlagGenerator)
			field := tt.field(tr, arrow)
			cls := tr.Class(ast.KindClassExpression, ast.NoNode, ast.NoNode, field)

			res := wrap(t, tr, arrow, tt.opts)

			assert.Equal(t, tr.Node(field).B, res, "the field call holds the arrow's position")
			assert.Equal(t, tt.want, printer.Print(tr, cls))
		})
	}
}

func TestWrapArrowNestedInClassFieldArrow(t *testing.T) {
	tr := ast.New()
	inner := tr.Function(ast.KindArrowFunctionExpression, ast.NoNode, nil,
		tr.Member(tr.This(), "x"), ast.FlagGenerator)
	outer := tr.Function(ast.KindArrowFunctionExpression, ast.NoNode, nil, inner, 0)
	cls := tr.Class(ast.KindClassExpression, ast.NoNode, ast.NoNode,
		tr.ClassProperty(tr.Ident("make"), outer, 0))

	res := wrap(t, tr, inner, Options{NoNewArrows: true})

	assert.Equal(t, ast.KindReturnStatement, tr.Kind(tr.Parent(res)))
	assert.Equal(t, `class {
  make = () => {
    var _this = this;
    return _asyncToGenerator(function* () {
      return _this.x;
    });
  };
}`, printer.Print(tr, cls))
}

func TestWrapArrowInStaticBlock(t *testing.T) {
	tr := ast.New()
	arrow := tr.Function(ast.KindArrowFunctionExpression, ast.NoNode, nil,
		tr.Member(tr.This(), "x"), ast.FlagGenerator)
	cls := tr.Class(ast.KindClassExpression, ast.NoNode, ast.NoNode,
		tr.StaticBlock(tr.ExprStmt(tr.Call(tr.Ident("run"), arrow))))

	wrap(t, tr, arrow, Options{NoNewArrows: true})

	assert.Equal(t, `class {
  static {
    var _this = this;
    run(_asyncToGenerator(function* () {
      return _this.x;
    }));
  }
}`, printer.Print(tr, cls))
}

func TestWrapDetachedArrowNeedingEnvironment(t *testing.T) {
	tr := ast.New()
	arrow := tr.Function(ast.KindArrowFunctionExpression, ast.NoNode, nil,
		tr.Ident("arguments"), ast.FlagGenerator)

	_, err := Wrap(tr, arrow, tr.Ident(driver), Options{NoNewArrows: true})
	require.Error(t, err)
	assert.True(t, IsUnsupported(err))
	assert.Contains(t, err.Error(), "not inside a function or program")
}

func TestWrapRejectsNonFunction(t *testing.T) {
	tr := ast.New()
	_, err := Wrap(tr, tr.Ident("x"), tr.Ident(driver), Options{})
	require.Error(t, err)
	assert.False(t, IsUnsupported(err))
	assert.Contains(t, err.Error(), "is not a function")
}

func TestDeclaredArity(t *testing.T) {
	tr := ast.New()
	tests := []struct {
		name   string
		params []ast.NodeID
		want   int
	}{
		{"none", nil, 0},
		{"plain", []ast.NodeID{tr.Ident("a"), tr.Ident("b")}, 2},
		{"default first", []ast.NodeID{tr.AssignPattern(tr.Ident("a"), tr.Num("1")), tr.Ident("b")}, 0},
		{"rest", []ast.NodeID{tr.Ident("a"), tr.Rest(tr.Ident("b"))}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, declaredArity(tr, tt.params))
		})
	}
}
