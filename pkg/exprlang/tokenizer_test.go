package exprlang

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func allTokens(t *testing.T, src string) []Token {
	tz, err := NewTokenizer(src)
	So(err, ShouldBeNil)
	var toks []Token
	toks = append(toks, tz.CurToken)
	for !tz.CurToken.IsEOF() {
		tok, err := tz.Next()
		So(err, ShouldBeNil)
		toks = append(toks, tok)
	}
	return toks
}

func TestTokenizerLiterals(t *testing.T) {
	Convey("Given a source with a number literal", t, func() {
		toks := allTokens(t, "3.14")
		So(toks[0].Type, ShouldEqual, TokNumber)
		So(toks[0].Number.String(), ShouldEqual, "3.14")
	})

	Convey("Given a source with single- and double-quoted strings", t, func() {
		toks := allTokens(t, `'hahha' "haha"`)
		So(toks[0].Type, ShouldEqual, TokString)
		So(toks[0].Text, ShouldEqual, "hahha")
		So(toks[1].Type, ShouldEqual, TokString)
		So(toks[1].Text, ShouldEqual, "haha")
	})

	Convey("Given an unterminated string", t, func() {
		_, err := NewTokenizer(`'unterminated`)
		So(err, ShouldNotBeNil)
		exprErr, ok := err.(*Error)
		So(ok, ShouldBeTrue)
		So(exprErr.Kind, ShouldEqual, UnterminatedString)
	})

	Convey("Given boolean reserved words in lower and capitalized case", t, func() {
		toks := allTokens(t, "true false True False")
		So(toks[0].Type, ShouldEqual, TokBool)
		So(toks[0].Bool, ShouldBeTrue)
		So(toks[1].Bool, ShouldBeFalse)
		So(toks[2].Bool, ShouldBeTrue)
		So(toks[3].Bool, ShouldBeFalse)
	})
}

func TestTokenizerIdentifiers(t *testing.T) {
	Convey("Given an identifier followed by '('", t, func() {
		toks := allTokens(t, "foo(1)")
		So(toks[0].Type, ShouldEqual, TokFunction)
		So(toks[0].Text, ShouldEqual, "foo")
	})

	Convey("Given a bare identifier", t, func() {
		toks := allTokens(t, "foo")
		So(toks[0].Type, ShouldEqual, TokReference)
		So(toks[0].Text, ShouldEqual, "foo")
	})

	Convey("Given word-form operators in mixed case", t, func() {
		toks := allTokens(t, "a AND b")
		So(toks[0].Type, ShouldEqual, TokReference)
		So(toks[1].Type, ShouldEqual, TokOperator)
		So(toks[1].Text, ShouldEqual, "and")
	})
}

func TestTokenizerOperators(t *testing.T) {
	Convey("Given adjacent operator symbols that share a prefix", t, func() {
		toks := allTokens(t, "<<= << < <=")
		So(toks[0].Text, ShouldEqual, "<<=")
		So(toks[1].Text, ShouldEqual, "<<")
		So(toks[2].Text, ShouldEqual, "<")
		So(toks[3].Text, ShouldEqual, "<=")
	})

	Convey("Given an unrecognized character", t, func() {
		_, err := NewTokenizer("@")
		So(err, ShouldNotBeNil)
		exprErr, ok := err.(*Error)
		So(ok, ShouldBeTrue)
		So(exprErr.Kind, ShouldEqual, UnexpectedChar)
	})
}
