package exprlang

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParserPrecedence(t *testing.T) {
	Convey("Given 'a+b*c'", t, func() {
		ast, err := Parse("a+b*c")
		So(err, ShouldBeNil)

		Convey("it parses as Binary(+, a, Binary(*, b, c))", func() {
			bin, ok := ast.(*BinaryNode)
			So(ok, ShouldBeTrue)
			So(bin.Op, ShouldEqual, "+")
			_, lhsIsRef := bin.Lhs.(*ReferenceNode)
			So(lhsIsRef, ShouldBeTrue)
			rhsBin, ok := bin.Rhs.(*BinaryNode)
			So(ok, ShouldBeTrue)
			So(rhsBin.Op, ShouldEqual, "*")
		})

		Convey("its canonical form has no parentheses", func() {
			So(ast.Expr(), ShouldEqual, "a + b * c")
		})
	})

	Convey("Given '(a+b)*c'", t, func() {
		ast, err := Parse("(a+b)*c")
		So(err, ShouldBeNil)

		Convey("it parses as Binary(*, Binary(+, a, b), c)", func() {
			bin, ok := ast.(*BinaryNode)
			So(ok, ShouldBeTrue)
			So(bin.Op, ShouldEqual, "*")
			lhsBin, ok := bin.Lhs.(*BinaryNode)
			So(ok, ShouldBeTrue)
			So(lhsBin.Op, ShouldEqual, "+")
		})

		Convey("its canonical form parenthesizes the lower-precedence lhs", func() {
			So(ast.Expr(), ShouldEqual, "(a + b) * c")
		})
	})
}

func TestParserChainUnwrap(t *testing.T) {
	Convey("Given a single statement 'x'", t, func() {
		ast, err := Parse("x")
		So(err, ShouldBeNil)

		Convey("the parser never emits a Chain of length 1", func() {
			_, isChain := ast.(*ChainNode)
			So(isChain, ShouldBeFalse)
			_, isRef := ast.(*ReferenceNode)
			So(isRef, ShouldBeTrue)
		})
	})

	Convey("Given 'd=3; d+=4; d*2'", t, func() {
		ast, err := Parse("d=3; d+=4; d*2")
		So(err, ShouldBeNil)

		Convey("it parses as a three-statement Chain", func() {
			chain, ok := ast.(*ChainNode)
			So(ok, ShouldBeTrue)
			So(chain.Stmts, ShouldHaveLength, 3)
		})
	})
}

func TestParserCanonicalPrinterRoundTrip(t *testing.T) {
	cases := []string{
		"a + b * c",
		"(a + b) * c",
		`2 <= 3 ? "yes" : "no"`,
		"! a",
		"not a",
		"- 5",
		"[a,b,c]",
		`{"haha":2,1 + 2:2 > 3}`,
		"a(1,2,3)",
	}
	Convey("Given canonical-form source text", t, func() {
		for _, src := range cases {
			src := src
			Convey("parsing "+src+" and re-printing it is idempotent", func() {
				ast, err := Parse(src)
				So(err, ShouldBeNil)
				printed := ast.Expr()
				So(printed, ShouldEqual, src)

				ast2, err := Parse(printed)
				So(err, ShouldBeNil)
				So(ast2.Expr(), ShouldEqual, printed)
			})
		}
	})
}

func TestParserRejects(t *testing.T) {
	rejected := []string{
		"",
		"   ",
		"[",
		"[1,",
		"{",
		"{2",
		"{2:",
		"{2:}",
		"(",
		"a(",
		"a(,)",
		"a(2,true,",
		"true ?",
		"true ? x :",
		"2+",
	}
	Convey("Given malformed source text", t, func() {
		for _, src := range rejected {
			src := src
			Convey("parsing "+"'"+src+"'"+" fails", func() {
				_, err := Parse(src)
				So(err, ShouldNotBeNil)
			})
		}
	})
}

func TestParserUnaryMinusDisambiguation(t *testing.T) {
	Convey("Given '--a'", t, func() {
		ast, err := Parse("--a")
		So(err, ShouldBeNil)

		Convey("it parses as Unary(-, Unary(-, Reference(a)))", func() {
			outer, ok := ast.(*UnaryNode)
			So(ok, ShouldBeTrue)
			So(outer.Op, ShouldEqual, "-")
			inner, ok := outer.Child.(*UnaryNode)
			So(ok, ShouldBeTrue)
			So(inner.Op, ShouldEqual, "-")
			_, isRef := inner.Child.(*ReferenceNode)
			So(isRef, ShouldBeTrue)
		})
	})
}
