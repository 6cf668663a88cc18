package exprlang

import "github.com/shopspring/decimal"

// TokenType is the tag of a Token's variant, grounded on graft's TokenType
// enum (pkg/graft/parser/tokenizer.go), narrowed to the tokens spec.md §3
// lists.
type TokenType int

const (
	TokNumber TokenType = iota
	TokBool
	TokString
	TokReference
	TokFunction
	TokOperator
	TokDelim
	TokEOF
)

func (t TokenType) String() string {
	switch t {
	case TokNumber:
		return "Number"
	case TokBool:
		return "Bool"
	case TokString:
		return "String"
	case TokReference:
		return "Reference"
	case TokFunction:
		return "Function"
	case TokOperator:
		return "Operator"
	case TokDelim:
		return "Delim"
	case TokEOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// DelimKind enumerates the single-character delimiters spec.md §3 names.
type DelimKind int

const (
	OpenParen DelimKind = iota
	CloseParen
	OpenBracket
	CloseBracket
	OpenBrace
	CloseBrace
	Comma
	Colon
	Semicolon
	QuestionMark
)

func (d DelimKind) String() string {
	switch d {
	case OpenParen:
		return "("
	case CloseParen:
		return ")"
	case OpenBracket:
		return "["
	case CloseBracket:
		return "]"
	case OpenBrace:
		return "{"
	case CloseBrace:
		return "}"
	case Comma:
		return ","
	case Colon:
		return ":"
	case Semicolon:
		return ";"
	case QuestionMark:
		return "?"
	default:
		return "?unknown?"
	}
}

// Token is the tagged union every scanned lexeme is reduced to, carrying
// its source Position for diagnostics (spec.md §3).
type Token struct {
	Type     TokenType
	Text     string
	Number   decimal.Decimal
	Bool     bool
	Delim    DelimKind
	Position Position
}

// IsOpToken reports whether t is an Operator token.
func (t Token) IsOpToken() bool { return t.Type == TokOperator }

// IsBinopToken reports whether t is an Operator token registered as a
// binary operator.
func (t Token) IsBinopToken() bool {
	if t.Type != TokOperator {
		return false
	}
	_, ok := LookupBinaryOp(t.Text)
	return ok
}

// IsQuestionMark reports whether t is the '?' delimiter.
func (t Token) IsQuestionMark() bool { return t.Type == TokDelim && t.Delim == QuestionMark }

// IsSemicolon reports whether t is the ';' delimiter.
func (t Token) IsSemicolon() bool { return t.Type == TokDelim && t.Delim == Semicolon }

// IsCloseParen reports whether t is the ')' delimiter.
func (t Token) IsCloseParen() bool { return t.Type == TokDelim && t.Delim == CloseParen }

// IsCloseBracket reports whether t is the ']' delimiter.
func (t Token) IsCloseBracket() bool { return t.Type == TokDelim && t.Delim == CloseBracket }

// IsCloseBrace reports whether t is the '}' delimiter.
func (t Token) IsCloseBrace() bool { return t.Type == TokDelim && t.Delim == CloseBrace }

// IsEOF reports whether t is the end-of-input sentinel token.
func (t Token) IsEOF() bool { return t.Type == TokEOF }

// String returns the textual symbol a token represents, for error
// messages and diagnostics.
func (t Token) String() string {
	switch t.Type {
	case TokDelim:
		return t.Delim.String()
	case TokEOF:
		return "<eof>"
	default:
		return t.Text
	}
}
