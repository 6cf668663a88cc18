package exprlang

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidalcode/exprlang/internal/xlog"
)

var reservedBoolWords = map[string]bool{
	"true": true, "True": true, "false": true, "False": true,
}

// Tokenizer is a one-character-lookahead scanner over source text,
// grounded on graft's Tokenizer (pkg/graft/parser/tokenizer.go), narrowed
// to the token set spec.md §3/§4.1 defines.
type Tokenizer struct {
	src  string
	pos  int
	line int
	col  int

	CurToken  Token
	PrevToken *Token

	hasPeek bool
	peekTok Token
}

// NewTokenizer scans the first token immediately, so CurToken is valid as
// soon as construction returns (spec.md §4.1: "fields cur_token and
// prev_token are readable").
func NewTokenizer(src string) (*Tokenizer, error) {
	t := &Tokenizer{src: src, line: 1, col: 1}
	tok, err := t.scan()
	if err != nil {
		return nil, err
	}
	t.CurToken = tok
	xlog.Tracef("tokenizer: first token %s %q", tok.Type, tok.String())
	return t, nil
}

// Next advances and returns the new current token.
func (t *Tokenizer) Next() (Token, error) {
	var tok Token
	var err error
	if t.hasPeek {
		tok = t.peekTok
		t.hasPeek = false
	} else {
		tok, err = t.scan()
		if err != nil {
			return Token{}, err
		}
	}
	prev := t.CurToken
	t.PrevToken = &prev
	t.CurToken = tok
	xlog.Tracef("tokenizer: next token %s %q", tok.Type, tok.String())
	return t.CurToken, nil
}

// Peek returns the upcoming token without consuming it.
func (t *Tokenizer) Peek() (Token, error) {
	if !t.hasPeek {
		tok, err := t.scan()
		if err != nil {
			return Token{}, err
		}
		t.peekTok = tok
		t.hasPeek = true
	}
	return t.peekTok, nil
}

// Expect requires CurToken to render as sym, advancing past it, matching
// spec.md §4.1's `expect(sym)`.
func (t *Tokenizer) Expect(sym string) error {
	if t.CurToken.String() != sym {
		return errUnexpectedToken(t.CurToken.Position, t.CurToken.String())
	}
	_, err := t.Next()
	return err
}

func (t *Tokenizer) position() Position {
	return Position{Offset: t.pos, Line: t.line, Column: t.col}
}

func (t *Tokenizer) peekByte() (byte, bool) {
	if t.pos >= len(t.src) {
		return 0, false
	}
	return t.src[t.pos], true
}

func (t *Tokenizer) advanceByte() {
	if t.pos >= len(t.src) {
		return
	}
	if t.src[t.pos] == '\n' {
		t.line++
		t.col = 1
	} else {
		t.col++
	}
	t.pos++
}

func (t *Tokenizer) skipWhitespace() {
	for {
		b, ok := t.peekByte()
		if !ok {
			return
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			t.advanceByte()
			continue
		}
		return
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlnum(b byte) bool { return isAlpha(b) || isDigit(b) }

func (t *Tokenizer) scan() (Token, error) {
	t.skipWhitespace()
	pos := t.position()

	b, ok := t.peekByte()
	if !ok {
		return Token{Type: TokEOF, Position: pos}, nil
	}

	switch {
	case isDigit(b):
		return t.scanNumber(pos)
	case b == '\'' || b == '"':
		return t.scanString(pos, b)
	case isAlpha(b):
		return t.scanIdentifier(pos)
	}

	if delim, ok := delimFor(b); ok {
		t.advanceByte()
		return Token{Type: TokDelim, Delim: delim, Position: pos}, nil
	}

	// Longest-match against the union of operator-registry keys, per
	// spec.md §4.1 — OperatorSymbols() already returns them longest-first
	// (registry.go's rebuildSymbolsLocked), so a symbol registered after
	// bootstrap via RegisterBinaryOp/RegisterUnaryOp is scannable here too.
	for _, sym := range OperatorSymbols() {
		if strings.HasPrefix(t.src[t.pos:], sym) {
			for range sym {
				t.advanceByte()
			}
			return Token{Type: TokOperator, Text: sym, Position: pos}, nil
		}
	}

	return Token{}, errUnexpectedChar(pos, b)
}

func delimFor(b byte) (DelimKind, bool) {
	switch b {
	case '(':
		return OpenParen, true
	case ')':
		return CloseParen, true
	case '[':
		return OpenBracket, true
	case ']':
		return CloseBracket, true
	case '{':
		return OpenBrace, true
	case '}':
		return CloseBrace, true
	case ',':
		return Comma, true
	case ':':
		return Colon, true
	case ';':
		return Semicolon, true
	case '?':
		return QuestionMark, true
	default:
		return 0, false
	}
}

func (t *Tokenizer) scanNumber(pos Position) (Token, error) {
	start := t.pos
	seenDot := false
	for {
		b, ok := t.peekByte()
		if !ok {
			break
		}
		if isDigit(b) {
			t.advanceByte()
			continue
		}
		if b == '.' && !seenDot {
			seenDot = true
			t.advanceByte()
			continue
		}
		break
	}
	text := t.src[start:t.pos]
	d, err := decimal.NewFromString(text)
	if err != nil {
		return Token{}, errInvalidNumber(pos, text)
	}
	return Token{Type: TokNumber, Text: text, Number: d, Position: pos}, nil
}

func (t *Tokenizer) scanString(pos Position, quote byte) (Token, error) {
	t.advanceByte() // opening quote
	start := t.pos
	for {
		b, ok := t.peekByte()
		if !ok {
			return Token{}, errUnterminatedString(pos)
		}
		if b == quote {
			text := t.src[start:t.pos]
			t.advanceByte() // closing quote
			return Token{Type: TokString, Text: text, Position: pos}, nil
		}
		t.advanceByte()
	}
}

func (t *Tokenizer) scanIdentifier(pos Position) (Token, error) {
	start := t.pos
	for {
		b, ok := t.peekByte()
		if !ok || !isAlnum(b) {
			break
		}
		t.advanceByte()
	}
	name := t.src[start:t.pos]

	if reservedBoolWords[name] {
		return Token{Type: TokBool, Text: name, Bool: name == "true" || name == "True", Position: pos}, nil
	}

	// The '('-lookahead is resolved before the reserved-word-operator
	// check: a word like "AND" or "OR" registered as a built-in function
	// (functions.go's bootstrapFunctions) must tokenize as TokFunction
	// when called as `AND(...)`, even though its lowercase form also
	// matches a reserved operator alias (registry.go's reservedWordOps).
	// Bare "and"/"or"/"not"/"in"/"beginWith"/"endWith", not immediately
	// followed by '(', still tokenize as the reserved operator.
	savedPos, savedLine, savedCol := t.pos, t.line, t.col
	t.skipWhitespace()
	nextIsParen := false
	if b, ok := t.peekByte(); ok && b == '(' {
		nextIsParen = true
	}
	t.pos, t.line, t.col = savedPos, savedLine, savedCol

	if nextIsParen {
		return Token{Type: TokFunction, Text: name, Position: pos}, nil
	}

	lower := strings.ToLower(name)
	if reservedWordOps[lower] {
		return Token{Type: TokOperator, Text: canonicalReservedOp(lower), Position: pos}, nil
	}
	return Token{Type: TokReference, Text: name, Position: pos}, nil
}
