package exprlang

import "github.com/shopspring/decimal"

// bootstrapOperators registers every binary and unary operator spec.md §6
// requires. It plays the role of graft's per-file init() bootstrap
// (pkg/graft/operators/op_add.go and friends each call RegisterOp in their
// own init()); exprlang collects the equivalent registrations into one
// function invoked once by globalRegistry(), since the operator set here
// is closed and small rather than spread across graft's many per-operator
// files.
func bootstrapOperators(r *registry) {
	for _, info := range calcBinaryOps() {
		r.binary[info.Symbol] = info
	}
	for _, info := range setterBinaryOps() {
		r.binary[info.Symbol] = info
	}
	for _, info := range unaryOps() {
		r.unary[info.Symbol] = info
	}
	r.rebuildSymbolsLocked()
}

func numOp(fn func(a, b decimal.Decimal) decimal.Decimal) BinaryFunc {
	return func(lhs, rhs Value) (Value, error) {
		a, ok := lhs.Number()
		if !ok {
			return Value{}, errShouldBeNumber()
		}
		b, ok := rhs.Number()
		if !ok {
			return Value{}, errShouldBeNumber()
		}
		return NumberValue(fn(a, b)), nil
	}
}

func cmpOp(fn func(cmp int) bool) BinaryFunc {
	return func(lhs, rhs Value) (Value, error) {
		a, ok := lhs.Number()
		if !ok {
			return Value{}, errShouldBeNumber()
		}
		b, ok := rhs.Number()
		if !ok {
			return Value{}, errShouldBeNumber()
		}
		return BoolValue(fn(a.Cmp(b))), nil
	}
}

func boolOp(fn func(a, b bool) bool) BinaryFunc {
	return func(lhs, rhs Value) (Value, error) {
		a, ok := lhs.Bool()
		if !ok {
			return Value{}, errShouldBeBool()
		}
		b, ok := rhs.Bool()
		if !ok {
			return Value{}, errShouldBeBool()
		}
		return BoolValue(fn(a, b)), nil
	}
}

// opAdd, opSub, opMul, opDiv and opMod are decimal.Decimal arithmetic —
// spec.md §9 Design Notes: "exact decimal semantics (not binary float)".
func opAdd(lhs, rhs Value) (Value, error) {
	return numOp(func(a, b decimal.Decimal) decimal.Decimal { return a.Add(b) })(lhs, rhs)
}

func opSub(lhs, rhs Value) (Value, error) {
	return numOp(func(a, b decimal.Decimal) decimal.Decimal { return a.Sub(b) })(lhs, rhs)
}

func opMul(lhs, rhs Value) (Value, error) {
	return numOp(func(a, b decimal.Decimal) decimal.Decimal { return a.Mul(b) })(lhs, rhs)
}

func opDiv(lhs, rhs Value) (Value, error) {
	return numOp(func(a, b decimal.Decimal) decimal.Decimal {
		return a.DivRound(b, 16)
	})(lhs, rhs)
}

func opMod(lhs, rhs Value) (Value, error) {
	return numOp(func(a, b decimal.Decimal) decimal.Decimal { return a.Mod(b) })(lhs, rhs)
}

// divScaled is opDiv rounded to an embedder-chosen scale instead of the
// fixed 16 places, wired through Context.DivScale (config.go's
// DecimalPlaces knob) by ast.go's binaryFn.
func divScaled(lhs, rhs Value, scale int32) (Value, error) {
	return numOp(func(a, b decimal.Decimal) decimal.Decimal {
		return a.DivRound(b, scale)
	})(lhs, rhs)
}

func opShl(lhs, rhs Value) (Value, error) {
	return numOp(func(a, b decimal.Decimal) decimal.Decimal {
		return decimal.NewFromInt(a.IntPart() << uint(b.IntPart()))
	})(lhs, rhs)
}

func opShr(lhs, rhs Value) (Value, error) {
	return numOp(func(a, b decimal.Decimal) decimal.Decimal {
		return decimal.NewFromInt(a.IntPart() >> uint(b.IntPart()))
	})(lhs, rhs)
}

func opEq(lhs, rhs Value) (Value, error) { return BoolValue(lhs.Equal(rhs)), nil }

func opNe(lhs, rhs Value) (Value, error) { return BoolValue(!lhs.Equal(rhs)), nil }

func opLt(lhs, rhs Value) (Value, error)  { return cmpOp(func(c int) bool { return c < 0 })(lhs, rhs) }
func opLe(lhs, rhs Value) (Value, error)  { return cmpOp(func(c int) bool { return c <= 0 })(lhs, rhs) }
func opGt(lhs, rhs Value) (Value, error)  { return cmpOp(func(c int) bool { return c > 0 })(lhs, rhs) }
func opGe(lhs, rhs Value) (Value, error)  { return cmpOp(func(c int) bool { return c >= 0 })(lhs, rhs) }

// opAnd and opOr combine two already-evaluated bool operands; by default
// the AST evaluator (ast.go) evaluates both sides first — spec.md §4.3:
// "no implicit short-circuit for && / ||, both sides are evaluated before
// the op function combines them". With Context.ShortCircuit set, ast.go
// skips the rhs when the lhs already decides the result.
func opAnd(lhs, rhs Value) (Value, error) { return boolOp(func(a, b bool) bool { return a && b })(lhs, rhs) }
func opOr(lhs, rhs Value) (Value, error)  { return boolOp(func(a, b bool) bool { return a || b })(lhs, rhs) }

// opIn implements containment: true when lhs equals any element of the
// rhs List (spec.md §6 lists `in` among the comparison-precedence ops).
func opIn(lhs, rhs Value) (Value, error) {
	items, ok := rhs.List()
	if !ok {
		return Value{}, newError(NotSupportedOp, Position{}, "in: rhs must be a list")
	}
	for _, item := range items {
		if lhs.Equal(item) {
			return BoolValue(true), nil
		}
	}
	return BoolValue(false), nil
}

func opBeginWith(lhs, rhs Value) (Value, error) {
	a, ok := lhs.Str()
	if !ok {
		return Value{}, newError(NotSupportedOp, Position{}, "beginWith: lhs must be a string")
	}
	b, ok := rhs.Str()
	if !ok {
		return Value{}, newError(NotSupportedOp, Position{}, "beginWith: rhs must be a string")
	}
	return BoolValue(len(a) >= len(b) && a[:len(b)] == b), nil
}

func opEndWith(lhs, rhs Value) (Value, error) {
	a, ok := lhs.Str()
	if !ok {
		return Value{}, newError(NotSupportedOp, Position{}, "endWith: lhs must be a string")
	}
	b, ok := rhs.Str()
	if !ok {
		return Value{}, newError(NotSupportedOp, Position{}, "endWith: rhs must be a string")
	}
	return BoolValue(len(a) >= len(b) && a[len(a)-len(b):] == b), nil
}

// calcBinaryOps is the Calc-category table from spec.md §6, precedence
// classes high to low as listed there (here expressed low-to-high binding
// via the Prec* constants in registry.go).
func calcBinaryOps() []*BinaryOpInfo {
	return []*BinaryOpInfo{
		{Symbol: "||", Prec: PrecOr, Assoc: LeftAssoc, Category: Calc, Fn: opOr},
		{Symbol: "or", Prec: PrecOr, Assoc: LeftAssoc, Category: Calc, Fn: opOr},
		{Symbol: "&&", Prec: PrecAnd, Assoc: LeftAssoc, Category: Calc, Fn: opAnd},
		{Symbol: "and", Prec: PrecAnd, Assoc: LeftAssoc, Category: Calc, Fn: opAnd},
		{Symbol: "==", Prec: PrecEquality, Assoc: LeftAssoc, Category: Calc, Fn: opEq},
		{Symbol: "!=", Prec: PrecEquality, Assoc: LeftAssoc, Category: Calc, Fn: opNe},
		{Symbol: "<", Prec: PrecRelational, Assoc: LeftAssoc, Category: Calc, Fn: opLt},
		{Symbol: "<=", Prec: PrecRelational, Assoc: LeftAssoc, Category: Calc, Fn: opLe},
		{Symbol: ">", Prec: PrecRelational, Assoc: LeftAssoc, Category: Calc, Fn: opGt},
		{Symbol: ">=", Prec: PrecRelational, Assoc: LeftAssoc, Category: Calc, Fn: opGe},
		{Symbol: "in", Prec: PrecRelational, Assoc: LeftAssoc, Category: Calc, Fn: opIn},
		{Symbol: "beginWith", Prec: PrecRelational, Assoc: LeftAssoc, Category: Calc, Fn: opBeginWith},
		{Symbol: "endWith", Prec: PrecRelational, Assoc: LeftAssoc, Category: Calc, Fn: opEndWith},
		{Symbol: "<<", Prec: PrecShift, Assoc: LeftAssoc, Category: Calc, Fn: opShl},
		{Symbol: ">>", Prec: PrecShift, Assoc: LeftAssoc, Category: Calc, Fn: opShr},
		{Symbol: "+", Prec: PrecAdditive, Assoc: LeftAssoc, Category: Calc, Fn: opAdd},
		{Symbol: "-", Prec: PrecAdditive, Assoc: LeftAssoc, Category: Calc, Fn: opSub},
		{Symbol: "*", Prec: PrecMultiplicative, Assoc: LeftAssoc, Category: Calc, Fn: opMul},
		{Symbol: "/", Prec: PrecMultiplicative, Assoc: LeftAssoc, Category: Calc, Fn: opDiv},
		{Symbol: "%", Prec: PrecMultiplicative, Assoc: LeftAssoc, Category: Calc, Fn: opMod},
	}
}

// setterBinaryOps is the Setter-category table from spec.md §6. Fn is the
// base function combining the reference's prior value with rhs; simple
// `=` takes rhs outright (spec.md §4.3: "simple `=` is a setter whose base
// function is 'take rhs'").
func setterBinaryOps() []*BinaryOpInfo {
	takeRhs := func(lhs, rhs Value) (Value, error) { return rhs, nil }
	return []*BinaryOpInfo{
		{Symbol: "=", Prec: PrecSetter, Assoc: RightAssoc, Category: Setter, Fn: takeRhs},
		{Symbol: "+=", Prec: PrecSetter, Assoc: RightAssoc, Category: Setter, Fn: opAdd},
		{Symbol: "-=", Prec: PrecSetter, Assoc: RightAssoc, Category: Setter, Fn: opSub},
		{Symbol: "*=", Prec: PrecSetter, Assoc: RightAssoc, Category: Setter, Fn: opMul},
		{Symbol: "/=", Prec: PrecSetter, Assoc: RightAssoc, Category: Setter, Fn: opDiv},
		{Symbol: "%=", Prec: PrecSetter, Assoc: RightAssoc, Category: Setter, Fn: opMod},
		{Symbol: "<<=", Prec: PrecSetter, Assoc: RightAssoc, Category: Setter, Fn: opShl},
		{Symbol: ">>=", Prec: PrecSetter, Assoc: RightAssoc, Category: Setter, Fn: opShr},
	}
}

func unaryNot(v Value) (Value, error) {
	b, ok := v.Bool()
	if !ok {
		return Value{}, errShouldBeBool()
	}
	return BoolValue(!b), nil
}

func unaryNeg(v Value) (Value, error) {
	n, ok := v.Number()
	if !ok {
		return Value{}, errShouldBeNumber()
	}
	return NumberValue(n.Neg()), nil
}

// unaryOps is the unary table from spec.md §6: `!`, `not`, prefix `-`.
func unaryOps() []*UnaryOpInfo {
	return []*UnaryOpInfo{
		{Symbol: "!", Fn: unaryNot},
		{Symbol: "not", Fn: unaryNot},
		{Symbol: "-", Fn: unaryNeg},
	}
}
