package exprlang

import (
	"fmt"
	"strings"

	"github.com/tidalcode/exprlang/internal/utils/ansi"
)

// ErrorKind is the closed error taxonomy from spec.md §7. It mirrors the
// Rust source's error.rs Error enum, collapsed onto the categories spec.md
// names.
type ErrorKind int

const (
	InvalidNumber ErrorKind = iota
	UnterminatedString
	UnexpectedChar
	UnexpectedEOF
	UnexpectedToken
	NoOpenDelim
	NoCloseDelim
	InvalidTernary
	NotReferenceExpr
	ReferenceNotExist
	FunctionNotExist
	BinaryOpNotRegistered
	UnaryOpNotRegistered
	ShouldBeBool
	ShouldBeNumber
	NotSupportedOp
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidNumber:
		return "invalid number"
	case UnterminatedString:
		return "unterminated string"
	case UnexpectedChar:
		return "unexpected character"
	case UnexpectedEOF:
		return "unexpected eof"
	case UnexpectedToken:
		return "unexpected token"
	case NoOpenDelim:
		return "no open delimiter"
	case NoCloseDelim:
		return "no close delimiter"
	case InvalidTernary:
		return "invalid ternary"
	case NotReferenceExpr:
		return "not a reference expression"
	case ReferenceNotExist:
		return "reference not exist"
	case FunctionNotExist:
		return "function not exist"
	case BinaryOpNotRegistered:
		return "binary op not registered"
	case UnaryOpNotRegistered:
		return "unary op not registered"
	case ShouldBeBool:
		return "should be bool"
	case ShouldBeNumber:
		return "should be number"
	case NotSupportedOp:
		return "not supported op"
	default:
		return "unknown error"
	}
}

// Position tracks where in the source an error occurred, the way graft's
// pkg/graft/expr_errors.go Position does.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Error is exprlang's single error type. Every failure returned by the
// tokenizer, parser or evaluator is one of these, closed over ErrorKind.
type Error struct {
	Kind     ErrorKind
	Detail   string
	Position Position
	Source   string
	Nested   error
}

func newError(kind ErrorKind, pos Position, detail string) *Error {
	return &Error{Kind: kind, Position: pos, Detail: detail}
}

// Error implements the error interface with ANSI-colored rendering,
// grounded on graft's ExprError.Error() (pkg/graft/expr_errors.go).
func (e *Error) Error() string {
	var parts []string
	parts = append(parts, ansi.Sprintf("@R{%s}", e.Kind.String()))

	if e.Position.Line > 0 {
		parts = append(parts, ansi.Sprintf("@Y{%d:%d}", e.Position.Line, e.Position.Column))
	}

	msg := e.Detail
	if msg == "" {
		msg = e.Kind.String()
	}
	parts = append(parts, msg)

	out := strings.Join(parts, ": ")
	if e.Source != "" && e.Position.Line > 0 {
		lines := strings.Split(e.Source, "\n")
		if e.Position.Line <= len(lines) {
			out += "\n" + formatSourceContext(lines, e.Position)
		}
	}
	if e.Nested != nil {
		out += "\n  caused by: " + e.Nested.Error()
	}
	return out
}

// Unwrap exposes the nested error for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Nested
}

// Is reports whether target is an *Error of the same Kind, so callers can
// compare two *Error values by kind, e.g.
// errors.Is(err, &exprlang.Error{Kind: exprlang.ReferenceNotExist}).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// WithSource attaches the original source text for contextual rendering.
func (e *Error) WithSource(src string) *Error {
	e.Source = src
	return e
}

func formatSourceContext(lines []string, pos Position) string {
	idx := pos.Line - 1
	if idx < 0 || idx >= len(lines) {
		return ""
	}
	var b strings.Builder
	b.WriteString(lines[idx])
	b.WriteByte('\n')
	col := pos.Column - 1
	if col < 0 {
		col = 0
	}
	b.WriteString(ansi.Sprintf("@R{%s^}", strings.Repeat(" ", col)))
	return b.String()
}

// Helper constructors, one per ErrorKind, mirroring the Rust source's
// per-variant constructors (error.rs) and spec.md §7's table.

func errInvalidNumber(pos Position, text string) error {
	return newError(InvalidNumber, pos, fmt.Sprintf("invalid number: %s", text))
}

func errUnterminatedString(pos Position) error {
	return newError(UnterminatedString, pos, "unterminated string literal")
}

func errUnexpectedChar(pos Position, ch byte) error {
	return newError(UnexpectedChar, pos, fmt.Sprintf("unexpected character %q", ch))
}

func errUnexpectedEOF(pos Position) error {
	return newError(UnexpectedEOF, pos, "unexpected end of input")
}

func errUnexpectedToken(pos Position, got string) error {
	return newError(UnexpectedToken, pos, fmt.Sprintf("unexpected token %q", got))
}

func errNoOpenDelim(pos Position, want string) error {
	return newError(NoOpenDelim, pos, fmt.Sprintf("expected opening %q", want))
}

func errNoCloseDelim(pos Position, want string) error {
	return newError(NoCloseDelim, pos, fmt.Sprintf("expected closing %q", want))
}

func errInvalidTernary(pos Position) error {
	return newError(InvalidTernary, pos, "expected ':' in ternary expression")
}

func errNotReferenceExpr(pos Position) error {
	return newError(NotReferenceExpr, pos, "left-hand side of a setter operator must be a reference")
}

func errReferenceNotExist(name string) error {
	return newError(ReferenceNotExist, Position{}, fmt.Sprintf("reference not exist: %s", name))
}

func errFunctionNotExist(name string) error {
	return newError(FunctionNotExist, Position{}, fmt.Sprintf("function not exist: %s", name))
}

func errBinaryOpNotRegistered(op string) error {
	return newError(BinaryOpNotRegistered, Position{}, fmt.Sprintf("binary op not registered: %s", op))
}

func errUnaryOpNotRegistered(op string) error {
	return newError(UnaryOpNotRegistered, Position{}, fmt.Sprintf("unary op not registered: %s", op))
}

func errShouldBeBool() error {
	return newError(ShouldBeBool, Position{}, "should be bool")
}

func errShouldBeNumber() error {
	return newError(ShouldBeNumber, Position{}, "should be number")
}

func errNotSupportedOp(op string) error {
	return newError(NotSupportedOp, Position{}, fmt.Sprintf("not supported op: %s", op))
}
