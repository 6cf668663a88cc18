package exprlang

import (
	"fmt"
	"strings"

	"github.com/tidalcode/exprlang/internal/xlog"
)

// AST is the interface every expression-tree node implements: Exec walks
// the node against a Context (spec.md §4.3), Expr renders its canonical
// source-text form (spec.md §4.4), and String gives a verbose debug
// rendering, grounded on the Rust source's separate `Display`/`expr()`
// impls (original_source/src/parser.rs) — see SPEC_FULL.md's Supplemented
// features for why the two are kept distinct.
type AST interface {
	Exec(ctx *Context) (Value, error)
	Expr() string
	String() string
}

// LiteralNode is a self-contained constant — Number, Bool or String.
type LiteralNode struct {
	Value Value
}

func (n *LiteralNode) Exec(ctx *Context) (Value, error) { return n.Value, nil }

func (n *LiteralNode) Expr() string {
	switch n.Value.Kind() {
	case KindString:
		s, _ := n.Value.Str()
		return `"` + s + `"`
	default:
		return n.Value.String()
	}
}

func (n *LiteralNode) String() string {
	return fmt.Sprintf("Literal AST: %s", n.Value.String())
}

// ReferenceNode is a variable lookup by name.
type ReferenceNode struct {
	Name     string
	Position Position
}

func (n *ReferenceNode) Exec(ctx *Context) (Value, error) {
	v, ok := ctx.Value(n.Name)
	if !ok {
		return Value{}, errReferenceNotExist(n.Name)
	}
	return v, nil
}

func (n *ReferenceNode) Expr() string { return n.Name }

func (n *ReferenceNode) String() string { return fmt.Sprintf("Reference AST: %s", n.Name) }

// UnaryNode is one prefix operator application.
type UnaryNode struct {
	Op       string
	Child    AST
	Position Position
}

func (n *UnaryNode) Exec(ctx *Context) (Value, error) {
	info, ok := LookupUnaryOp(n.Op)
	if !ok {
		return Value{}, errUnaryOpNotRegistered(n.Op)
	}
	v, err := n.Child.Exec(ctx)
	if err != nil {
		return Value{}, err
	}
	return info.Fn(v)
}

// Expr renders "op child" — a literal space between operator and operand,
// matching the Rust source's `unary_expr` exactly (SPEC_FULL.md's
// Supplemented features: unary `expr()` spacing).
func (n *UnaryNode) Expr() string {
	return n.Op + " " + n.Child.Expr()
}

func (n *UnaryNode) String() string {
	return fmt.Sprintf("Unary AST: Op: %s, Child: %s", n.Op, n.Child.String())
}

// BinaryNode is an infix operator application. Prec is the operator's
// registry precedence at parse time, cached here so Expr() can decide
// parenthesization without a registry lookup (spec.md §4.4).
type BinaryNode struct {
	Op       string
	Lhs, Rhs AST
	Prec     int
	Position Position
}

func (n *BinaryNode) Exec(ctx *Context) (Value, error) {
	info, ok := LookupBinaryOp(n.Op)
	if !ok {
		return Value{}, errBinaryOpNotRegistered(n.Op)
	}

	if info.Category == Setter {
		ref, ok := n.Lhs.(*ReferenceNode)
		if !ok {
			return Value{}, errNotReferenceExpr(n.Position)
		}
		rhsVal, err := n.Rhs.Exec(ctx)
		if err != nil {
			return Value{}, err
		}
		var oldVal Value
		if info.Symbol != "=" {
			v, bound := ctx.Value(ref.Name)
			if !bound {
				return Value{}, errReferenceNotExist(ref.Name)
			}
			oldVal = v
		}
		newVal, err := binaryFn(ctx, info)(oldVal, rhsVal)
		if err != nil {
			return Value{}, err
		}
		ctx.SetVariable(ref.Name, newVal)
		xlog.Debugf("setter: %s %s -> %s", ref.Name, info.Symbol, newVal.String())
		return None, nil
	}

	if ctx.ShortCircuit && isLogicalOp(info.Symbol) {
		lhsVal, err := n.Lhs.Exec(ctx)
		if err != nil {
			return Value{}, err
		}
		lb, ok := lhsVal.Bool()
		if !ok {
			return Value{}, errShouldBeBool()
		}
		if isAndOp(info.Symbol) && !lb {
			return BoolValue(false), nil
		}
		if isOrOp(info.Symbol) && lb {
			return BoolValue(true), nil
		}
		rhsVal, err := n.Rhs.Exec(ctx)
		if err != nil {
			return Value{}, err
		}
		return binaryFn(ctx, info)(lhsVal, rhsVal)
	}

	// Calc category: both sides are always evaluated, regardless of op —
	// spec.md §4.3: no implicit short-circuit for && / ||. (Unless the
	// Context opts into ShortCircuit above.)
	lhsVal, err := n.Lhs.Exec(ctx)
	if err != nil {
		return Value{}, err
	}
	rhsVal, err := n.Rhs.Exec(ctx)
	if err != nil {
		return Value{}, err
	}
	return binaryFn(ctx, info)(lhsVal, rhsVal)
}

// binaryFn returns info.Fn, except for `/`/`/=` when ctx carries a non-zero
// DivScale (config.go's DecimalPlaces knob) — there it substitutes a
// divide rounded to that scale instead of opDiv's built-in default of 16.
func binaryFn(ctx *Context, info BinaryOpInfo) BinaryFunc {
	if ctx.DivScale != 0 && (info.Symbol == "/" || info.Symbol == "/=") {
		scale := ctx.DivScale
		return func(lhs, rhs Value) (Value, error) { return divScaled(lhs, rhs, scale) }
	}
	return info.Fn
}

// Expr renders "lhs op rhs", parenthesising a child only when it is a
// *BinaryNode with strictly lower precedence than this node — spec.md
// §4.4. Equal precedence is never parenthesized and a Ternary child is
// never parenthesized (SPEC_FULL.md's Supplemented features).
func (n *BinaryNode) Expr() string {
	return n.wrapChild(n.Lhs) + " " + n.Op + " " + n.wrapChild(n.Rhs)
}

func (n *BinaryNode) wrapChild(child AST) string {
	if b, ok := child.(*BinaryNode); ok && b.Prec < n.Prec {
		return "(" + b.Expr() + ")"
	}
	return child.Expr()
}

func (n *BinaryNode) String() string {
	return fmt.Sprintf("Binary AST: Op: %s, Lhs: %s, Rhs: %s", n.Op, n.Lhs.String(), n.Rhs.String())
}

// TernaryNode is a conditional; only the chosen branch is ever evaluated
// (spec.md §4.3's ternary laziness requirement).
type TernaryNode struct {
	Cond, Then, Else AST
	Position         Position
}

func (n *TernaryNode) Exec(ctx *Context) (Value, error) {
	cv, err := n.Cond.Exec(ctx)
	if err != nil {
		return Value{}, err
	}
	b, ok := cv.Bool()
	if !ok {
		return Value{}, errShouldBeBool()
	}
	if b {
		return n.Then.Exec(ctx)
	}
	return n.Else.Exec(ctx)
}

// Expr renders "cond ? then : else" flat, with no added parentheses
// around any of the three sub-expressions — the authoritative Rust
// `ternary_expr` (original_source/src/parser.rs) does the same; see
// SPEC_FULL.md's Supplemented features.
func (n *TernaryNode) Expr() string {
	return n.Cond.Expr() + " ? " + n.Then.Expr() + " : " + n.Else.Expr()
}

func (n *TernaryNode) String() string {
	return fmt.Sprintf("Ternary AST: Cond: %s, Then: %s, Else: %s", n.Cond.String(), n.Then.String(), n.Else.String())
}

// FunctionNode is a call by name with positional arguments.
type FunctionNode struct {
	Name     string
	Args     []AST
	Position Position
}

func (n *FunctionNode) Exec(ctx *Context) (Value, error) {
	if err := ctx.enterCall(); err != nil {
		return Value{}, err
	}
	defer ctx.exitCall()

	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := a.Exec(ctx)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	fn, ok := ctx.resolveFunction(n.Name)
	if !ok {
		return Value{}, errFunctionNotExist(n.Name)
	}
	xlog.Debugf("function: calling %s with %d arg(s)", n.Name, len(args))
	return fn(args)
}

func (n *FunctionNode) Expr() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.Expr()
	}
	return n.Name + "(" + strings.Join(parts, ",") + ")"
}

func (n *FunctionNode) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("Function AST: Name: %s, Args: [%s]", n.Name, strings.Join(parts, ", "))
}

// ListNode is an ordered sequence literal.
type ListNode struct {
	Items []AST
}

func (n *ListNode) Exec(ctx *Context) (Value, error) {
	items := make([]Value, len(n.Items))
	for i, it := range n.Items {
		v, err := it.Exec(ctx)
		if err != nil {
			return Value{}, err
		}
		items[i] = v
	}
	return ListValue(items), nil
}

func (n *ListNode) Expr() string {
	parts := make([]string, len(n.Items))
	for i, it := range n.Items {
		parts[i] = it.Expr()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (n *ListNode) String() string {
	parts := make([]string, len(n.Items))
	for i, it := range n.Items {
		parts[i] = it.String()
	}
	return fmt.Sprintf("List AST: [%s]", strings.Join(parts, ", "))
}

// MapPair is one (key,value) expression pair of a MapNode — keys are
// expressions, not identifiers (spec.md §3).
type MapPair struct {
	Key, Value AST
}

// MapNode is an ordered sequence of (key,value) expression pairs.
type MapNode struct {
	Pairs []MapPair
}

func (n *MapNode) Exec(ctx *Context) (Value, error) {
	pairs := make([]Pair, len(n.Pairs))
	for i, p := range n.Pairs {
		k, err := p.Key.Exec(ctx)
		if err != nil {
			return Value{}, err
		}
		v, err := p.Value.Exec(ctx)
		if err != nil {
			return Value{}, err
		}
		pairs[i] = Pair{Key: k, Value: v}
	}
	return MapValue(pairs), nil
}

func (n *MapNode) Expr() string {
	parts := make([]string, len(n.Pairs))
	for i, p := range n.Pairs {
		parts[i] = p.Key.Expr() + ":" + p.Value.Expr()
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func (n *MapNode) String() string {
	parts := make([]string, len(n.Pairs))
	for i, p := range n.Pairs {
		parts[i] = fmt.Sprintf("%s: %s", p.Key.String(), p.Value.String())
	}
	return fmt.Sprintf("Map AST: {%s}", strings.Join(parts, ", "))
}

// ChainNode is a sequence of statements separated by ';'; the result is
// the value of the last statement. The parser never emits a Chain of
// length 1 (spec.md §3's invariant) — NewChain enforces this.
type ChainNode struct {
	Stmts []AST
}

// NewChain collapses a single-statement chain to the bare statement,
// preserving the "parser never emits a Chain of length 1" invariant
// wherever a ChainNode would otherwise be constructed.
func NewChain(stmts []AST) AST {
	if len(stmts) == 1 {
		return stmts[0]
	}
	return &ChainNode{Stmts: stmts}
}

func (n *ChainNode) Exec(ctx *Context) (Value, error) {
	if len(n.Stmts) == 0 {
		return None, nil
	}
	var result Value
	for _, s := range n.Stmts {
		v, err := s.Exec(ctx)
		if err != nil {
			return Value{}, err
		}
		result = v
	}
	return result, nil
}

func (n *ChainNode) Expr() string {
	parts := make([]string, len(n.Stmts))
	for i, s := range n.Stmts {
		parts[i] = s.Expr()
	}
	return strings.Join(parts, ";")
}

func (n *ChainNode) String() string {
	parts := make([]string, len(n.Stmts))
	for i, s := range n.Stmts {
		parts[i] = s.String()
	}
	return fmt.Sprintf("Chain AST: [%s]", strings.Join(parts, "; "))
}

func isAndOp(symbol string) bool { return symbol == "&&" || symbol == "and" }
func isOrOp(symbol string) bool  { return symbol == "||" || symbol == "or" }
func isLogicalOp(symbol string) bool { return isAndOp(symbol) || isOrOp(symbol) }

// NoneNode represents empty input after trimming.
type NoneNode struct{}

func (n *NoneNode) Exec(ctx *Context) (Value, error) { return None, nil }
func (n *NoneNode) Expr() string                     { return "" }
func (n *NoneNode) String() string                   { return "None AST" }
