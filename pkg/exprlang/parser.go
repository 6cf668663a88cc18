package exprlang

import (
	"strings"

	"github.com/tidalcode/exprlang/internal/xlog"
)

// Parser is a recursive-descent, Pratt-style precedence-climbing parser
// over a Tokenizer, grounded on graft's Parser (pkg/graft/parser/parser.go)
// and the grammar spec.md §4.2 gives informally.
type Parser struct {
	tz *Tokenizer
}

// NewParser constructs a Parser over src, matching spec.md §6's
// `new(source) → Parser`.
func NewParser(src string) (*Parser, error) {
	tz, err := NewTokenizer(src)
	if err != nil {
		return nil, err
	}
	return &Parser{tz: tz}, nil
}

// Parse parses src as a full chain expression in one call.
func Parse(src string) (AST, error) {
	p, err := NewParser(src)
	if err != nil {
		return nil, err
	}
	return p.ParseChainExpression()
}

func (p *Parser) curIsDelim(k DelimKind) bool {
	return p.tz.CurToken.Type == TokDelim && p.tz.CurToken.Delim == k
}

func (p *Parser) expectOpenDelim(k DelimKind) error {
	if !p.curIsDelim(k) {
		return errNoOpenDelim(p.tz.CurToken.Position, k.String())
	}
	_, err := p.tz.Next()
	return err
}

func (p *Parser) expectCloseDelim(k DelimKind) error {
	if !p.curIsDelim(k) {
		return errNoCloseDelim(p.tz.CurToken.Position, k.String())
	}
	_, err := p.tz.Next()
	return err
}

// ParseChainExpression parses a ';'-separated statement sequence through
// EOF, matching spec.md §6's `Parser::parse_chain_expression() → Ast`. A
// chain of length 1 unwraps to the bare expression (spec.md §3); pure
// whitespace or empty input is a parse error (spec.md §4.2).
func (p *Parser) ParseChainExpression() (AST, error) {
	if p.tz.CurToken.IsEOF() {
		return nil, errUnexpectedEOF(p.tz.CurToken.Position)
	}

	var stmts []AST
	for {
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, expr)

		if p.tz.CurToken.IsSemicolon() {
			if _, err := p.tz.Next(); err != nil {
				return nil, err
			}
			if p.tz.CurToken.IsEOF() {
				break
			}
			continue
		}
		break
	}

	if !p.tz.CurToken.IsEOF() {
		return nil, errUnexpectedToken(p.tz.CurToken.Position, p.tz.CurToken.String())
	}
	return NewChain(stmts), nil
}

// ParseExpression parses a single expression: a precedence-climbed binary
// chain, optionally followed by a ternary, matching spec.md §6's
// `Parser::parse_expression() → Ast`.
func (p *Parser) ParseExpression() (AST, error) {
	lhs, err := p.parseUnaryOrPrimary()
	if err != nil {
		return nil, err
	}
	expr, err := p.parseBinOpRHS(0, lhs)
	if err != nil {
		return nil, err
	}
	if p.tz.CurToken.IsQuestionMark() {
		return p.parseTernary(expr)
	}
	return expr, nil
}

func (p *Parser) parseTernary(cond AST) (AST, error) {
	position := p.tz.CurToken.Position
	if _, err := p.tz.Next(); err != nil { // consume '?'
		return nil, err
	}
	thenExpr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if !p.curIsDelim(Colon) {
		return nil, errInvalidTernary(p.tz.CurToken.Position)
	}
	if _, err := p.tz.Next(); err != nil { // consume ':'
		return nil, err
	}
	elseExpr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &TernaryNode{Cond: cond, Then: thenExpr, Else: elseExpr, Position: position}, nil
}

// parseBinOpRHS implements precedence-climbing: it folds in every binary
// operator with precedence >= minPrec, recursing to absorb tighter-binding
// (or, for right-associative operators, equally-binding) chains on the
// right before building each BinaryNode (spec.md §4.2's op_rest).
func (p *Parser) parseBinOpRHS(minPrec int, lhs AST) (AST, error) {
	for {
		tok := p.tz.CurToken
		if !tok.IsBinopToken() {
			return lhs, nil
		}
		info, ok := LookupBinaryOp(tok.Text)
		if !ok || info.Prec < minPrec {
			return lhs, nil
		}
		opText := tok.Text
		position := tok.Position
		if _, err := p.tz.Next(); err != nil {
			return nil, err
		}
		rhs, err := p.parseUnaryOrPrimary()
		if err != nil {
			return nil, err
		}

		for {
			tok2 := p.tz.CurToken
			if !tok2.IsBinopToken() {
				break
			}
			info2, ok := LookupBinaryOp(tok2.Text)
			if !ok {
				break
			}
			nextMin := info.Prec + 1
			if info.Assoc == RightAssoc {
				nextMin = info.Prec
			}
			if info2.Prec < nextMin {
				break
			}
			rhs, err = p.parseBinOpRHS(nextMin, rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = &BinaryNode{Op: opText, Lhs: lhs, Rhs: rhs, Prec: info.Prec, Position: position}
		xlog.Tracef("parser: built binary %s", lhs.Expr())
	}
}

// parseUnaryOrPrimary is the `unary_op primary | primary` alternative of
// spec.md §4.2's primary production. `-` is tried as unary whenever it
// appears here (primary position); `--a` recurses into
// Unary(-, Unary(-, Reference(a))), the disambiguation spec.md §9 Open
// Question 2 calls for.
func (p *Parser) parseUnaryOrPrimary() (AST, error) {
	tok := p.tz.CurToken
	if tok.Type == TokOperator {
		lower := strings.ToLower(tok.Text)
		if lower == "!" || lower == "not" || lower == "-" {
			if _, ok := LookupUnaryOp(tok.Text); ok {
				position := tok.Position
				if _, err := p.tz.Next(); err != nil {
					return nil, err
				}
				child, err := p.parseUnaryOrPrimary()
				if err != nil {
					return nil, err
				}
				return &UnaryNode{Op: tok.Text, Child: child, Position: position}, nil
			}
		}
	}
	return p.parsePrimary()
}

// parsePrimary never looks past its own token; it leaves CurToken
// positioned on the first token after the primary (spec.md §4.2).
func (p *Parser) parsePrimary() (AST, error) {
	tok := p.tz.CurToken

	switch tok.Type {
	case TokNumber:
		if _, err := p.tz.Next(); err != nil {
			return nil, err
		}
		return &LiteralNode{Value: NumberValue(tok.Number)}, nil
	case TokBool:
		if _, err := p.tz.Next(); err != nil {
			return nil, err
		}
		return &LiteralNode{Value: BoolValue(tok.Bool)}, nil
	case TokString:
		if _, err := p.tz.Next(); err != nil {
			return nil, err
		}
		return &LiteralNode{Value: StringValue(tok.Text)}, nil
	case TokReference:
		if _, err := p.tz.Next(); err != nil {
			return nil, err
		}
		return &ReferenceNode{Name: tok.Text, Position: tok.Position}, nil
	case TokFunction:
		return p.parseFunctionCall()
	case TokDelim:
		switch tok.Delim {
		case OpenParen:
			return p.parseParenExpr()
		case OpenBracket:
			return p.parseListLiteral()
		case OpenBrace:
			return p.parseMapLiteral()
		default:
			return nil, errUnexpectedToken(tok.Position, tok.String())
		}
	case TokEOF:
		return nil, errUnexpectedEOF(tok.Position)
	default:
		return nil, errUnexpectedToken(tok.Position, tok.String())
	}
}

func (p *Parser) parseParenExpr() (AST, error) {
	if err := p.expectOpenDelim(OpenParen); err != nil {
		return nil, err
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectCloseDelim(CloseParen); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseListLiteral() (AST, error) {
	if err := p.expectOpenDelim(OpenBracket); err != nil {
		return nil, err
	}
	var items []AST
	if !p.curIsDelim(CloseBracket) {
		for {
			item, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			if p.curIsDelim(Comma) {
				if _, err := p.tz.Next(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if err := p.expectCloseDelim(CloseBracket); err != nil {
		return nil, err
	}
	return &ListNode{Items: items}, nil
}

func (p *Parser) parseMapLiteral() (AST, error) {
	if err := p.expectOpenDelim(OpenBrace); err != nil {
		return nil, err
	}
	var pairs []MapPair
	if !p.curIsDelim(CloseBrace) {
		for {
			key, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			if !p.curIsDelim(Colon) {
				if p.tz.CurToken.IsEOF() {
					return nil, errUnexpectedEOF(p.tz.CurToken.Position)
				}
				return nil, errUnexpectedToken(p.tz.CurToken.Position, p.tz.CurToken.String())
			}
			if _, err := p.tz.Next(); err != nil { // consume ':'
				return nil, err
			}
			value, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, MapPair{Key: key, Value: value})
			if p.curIsDelim(Comma) {
				if _, err := p.tz.Next(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if err := p.expectCloseDelim(CloseBrace); err != nil {
		return nil, err
	}
	return &MapNode{Pairs: pairs}, nil
}

func (p *Parser) parseFunctionCall() (AST, error) {
	tok := p.tz.CurToken
	name := tok.Text
	position := tok.Position
	if _, err := p.tz.Next(); err != nil { // consume function name
		return nil, err
	}
	if err := p.expectOpenDelim(OpenParen); err != nil {
		return nil, err
	}
	var args []AST
	if !p.curIsDelim(CloseParen) {
		for {
			arg, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.curIsDelim(Comma) {
				if _, err := p.tz.Next(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}
	if err := p.expectCloseDelim(CloseParen); err != nil {
		return nil, err
	}
	return &FunctionNode{Name: name, Args: args, Position: position}, nil
}
