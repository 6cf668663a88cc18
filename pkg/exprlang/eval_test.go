package exprlang

import (
	"testing"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
)

func execStr(t *testing.T, src string, ctx *Context) Value {
	ast, err := Parse(src)
	So(err, ShouldBeNil)
	v, err := ast.Exec(ctx)
	So(err, ShouldBeNil)
	return v
}

func TestEvalArithmeticPrecedence(t *testing.T) {
	Convey("Given '2+3*5-2/2+6*(2+4)-20'", t, func() {
		v := execStr(t, "2+3*5-2/2+6*(2+4)-20", NewContext())
		Convey("it evaluates to 32", func() {
			n, ok := v.Number()
			So(ok, ShouldBeTrue)
			So(n.Equal(decimal.NewFromInt(32)), ShouldBeTrue)
		})
	})
}

func TestEvalBeginWith(t *testing.T) {
	Convey("Given a beginWith expression", t, func() {
		v := execStr(t, "'hahhadf' beginWith 'hahha'", NewContext())
		b, ok := v.Bool()
		So(ok, ShouldBeTrue)
		So(b, ShouldBeTrue)
	})
}

func TestEvalIn(t *testing.T) {
	Convey("Given a containment expression", t, func() {
		v := execStr(t, "true in [2, true, 'haha']", NewContext())
		b, ok := v.Bool()
		So(ok, ShouldBeTrue)
		So(b, ShouldBeTrue)
	})
}

func TestEvalSetterSemantics(t *testing.T) {
	Convey("Given 'd=3; d+=4; d*2' on a fresh context", t, func() {
		ctx := NewContext()
		v := execStr(t, "d=3; d+=4; d*2", ctx)

		Convey("the chain result is 14", func() {
			n, ok := v.Number()
			So(ok, ShouldBeTrue)
			So(n.Equal(decimal.NewFromInt(14)), ShouldBeTrue)
		})

		Convey("ctx[\"d\"] is 7", func() {
			bound, ok := ctx.Value("d")
			So(ok, ShouldBeTrue)
			n, ok := bound.Number()
			So(ok, ShouldBeTrue)
			So(n.Equal(decimal.NewFromInt(7)), ShouldBeTrue)
		})
	})
}

func TestEvalMapLiteral(t *testing.T) {
	Convey("Given \"{'haha':2, 1+2:2>3}\"", t, func() {
		v := execStr(t, "{'haha':2, 1+2:2>3}", NewContext())
		pairs, ok := v.Map()
		So(ok, ShouldBeTrue)
		So(pairs, ShouldHaveLength, 2)

		k0, _ := pairs[0].Key.Str()
		So(k0, ShouldEqual, "haha")
		n0, _ := pairs[0].Value.Number()
		So(n0.Equal(decimal.NewFromInt(2)), ShouldBeTrue)

		k1, _ := pairs[1].Key.Number()
		So(k1.Equal(decimal.NewFromInt(3)), ShouldBeTrue)
		b1, _ := pairs[1].Value.Bool()
		So(b1, ShouldBeFalse)
	})
}

func TestEvalTernary(t *testing.T) {
	Convey("Given '2<=3 ? \"yes\" : \"no\"'", t, func() {
		ast, err := Parse(`2<=3 ? 'yes' : 'no'`)
		So(err, ShouldBeNil)
		v, err := ast.Exec(NewContext())
		So(err, ShouldBeNil)
		s, ok := v.Str()
		So(ok, ShouldBeTrue)
		So(s, ShouldEqual, "yes")

		Convey("its canonical form quotes the branches", func() {
			So(ast.Expr(), ShouldEqual, `2 <= 3 ? "yes" : "no"`)
		})
	})

	Convey("Given 'true ? 1 : nope' on a context missing 'nope'", t, func() {
		ast, err := Parse("true ? 1 : nope")
		So(err, ShouldBeNil)

		Convey("it succeeds with 1, never evaluating the unchosen branch", func() {
			v, err := ast.Exec(NewContext())
			So(err, ShouldBeNil)
			n, ok := v.Number()
			So(ok, ShouldBeTrue)
			So(n.Equal(decimal.NewFromInt(1)), ShouldBeTrue)
		})
	})

	Convey("Given a non-bool condition", t, func() {
		ast, err := Parse("1 ? 2 : 3")
		So(err, ShouldBeNil)
		_, err = ast.Exec(NewContext())
		So(err, ShouldNotBeNil)
		exprErr, ok := err.(*Error)
		So(ok, ShouldBeTrue)
		So(exprErr.Kind, ShouldEqual, ShouldBeBool)
	})
}

func TestEvalReferenceNotExist(t *testing.T) {
	Convey("Given a reference to an unbound variable", t, func() {
		ast, err := Parse("undef")
		So(err, ShouldBeNil)
		_, err = ast.Exec(NewContext())
		So(err, ShouldNotBeNil)

		exprErr, ok := err.(*Error)
		So(ok, ShouldBeTrue)
		So(exprErr.Kind, ShouldEqual, ReferenceNotExist)
	})
}

func TestEvalSetterRequiresReference(t *testing.T) {
	Convey("Given '1+2=3'", t, func() {
		ast, err := Parse("1+2=3")
		So(err, ShouldBeNil)
		_, err = ast.Exec(NewContext())
		So(err, ShouldNotBeNil)

		exprErr, ok := err.(*Error)
		So(ok, ShouldBeTrue)
		So(exprErr.Kind, ShouldEqual, NotReferenceExpr)
	})
}

func TestEvalUserFunctionPrecedesRegistry(t *testing.T) {
	Convey("Given a context registering its own 'max'", t, func() {
		ctx := NewContextWith(nil, map[string]Func{
			"max": func(args []Value) (Value, error) { return IntValue(999), nil },
		})
		v := execStr(t, "max(1,2,3)", ctx)
		n, ok := v.Number()
		So(ok, ShouldBeTrue)
		So(n.Equal(decimal.NewFromInt(999)), ShouldBeTrue)
	})
}

func TestEvalBuiltinFunctions(t *testing.T) {
	Convey("Given the built-in numeric functions", t, func() {
		ctx := NewContext()
		cases := map[string]int64{
			"min(3,1,2)": 1,
			"max(3,1,2)": 3,
			"sum(1,2,3)": 6,
			"mul(2,3,4)": 24,
		}
		for src, want := range cases {
			v := execStr(t, src, ctx)
			n, ok := v.Number()
			So(ok, ShouldBeTrue)
			So(n.Equal(decimal.NewFromInt(want)), ShouldBeTrue)
		}
	})

	Convey("Given AND/OR over a single list argument", t, func() {
		ctx := NewContext()
		v := execStr(t, "AND([1>2,true])", ctx)
		b, _ := v.Bool()
		So(b, ShouldBeFalse)

		v = execStr(t, "OR([1>2,true])", ctx)
		b, _ = v.Bool()
		So(b, ShouldBeTrue)
	})
}

func TestEvalLogicalNoShortCircuitByDefault(t *testing.T) {
	Convey("Given a context without ShortCircuit", t, func() {
		ctx := NewContext()
		calls := 0
		ctx.Register("mark", func(args []Value) (Value, error) {
			calls++
			return BoolValue(true), nil
		})
		v := execStr(t, "false && mark()", ctx)
		b, _ := v.Bool()
		So(b, ShouldBeFalse)
		Convey("the rhs is still evaluated", func() {
			So(calls, ShouldEqual, 1)
		})
	})

	Convey("Given a context with ShortCircuit enabled", t, func() {
		ctx := NewContext()
		ctx.ShortCircuit = true
		calls := 0
		ctx.Register("mark", func(args []Value) (Value, error) {
			calls++
			return BoolValue(true), nil
		})
		v := execStr(t, "false && mark()", ctx)
		b, _ := v.Bool()
		So(b, ShouldBeFalse)
		Convey("the rhs is never evaluated", func() {
			So(calls, ShouldEqual, 0)
		})
	})
}

func TestEvalChainPersistsPriorSideEffects(t *testing.T) {
	Convey("Given a chain where a later statement fails", t, func() {
		ctx := NewContext()
		ast, err := Parse("a=1; undef")
		So(err, ShouldBeNil)
		_, err = ast.Exec(ctx)
		So(err, ShouldNotBeNil)

		Convey("the earlier assignment's side effect persists", func() {
			v, ok := ctx.Value("a")
			So(ok, ShouldBeTrue)
			n, _ := v.Number()
			So(n.Equal(decimal.NewFromInt(1)), ShouldBeTrue)
		})
	})
}
