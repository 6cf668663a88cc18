package exprlang

import "github.com/shopspring/decimal"

// bootstrapFunctions registers the built-in InnerFunctionRegistry entries
// spec.md §6 requires (min, max, sum, mul) plus the AND/OR functions the
// Rust test corpus exercises (original_source/src/parser.rs's
// `"AND[1>2,true]"` case, called here as `AND([1>2,true])` — this grammar
// has no bracket-call syntax, so the Rust corpus's argument shape is
// reached through a function call taking a list literal) — see
// SPEC_FULL.md's Supplemented features.
func bootstrapFunctions(r *registry) {
	r.funcs["min"] = fnMin
	r.funcs["max"] = fnMax
	r.funcs["sum"] = fnSum
	r.funcs["mul"] = fnMul
	r.funcs["AND"] = fnAND
	r.funcs["OR"] = fnOR
}

func numberArgs(args []Value) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(args))
	for i, a := range args {
		n, ok := a.Number()
		if !ok {
			return nil, errShouldBeNumber()
		}
		out[i] = n
	}
	return out, nil
}

func fnMin(args []Value) (Value, error) {
	nums, err := numberArgs(args)
	if err != nil {
		return Value{}, err
	}
	if len(nums) == 0 {
		return Value{}, newError(NotSupportedOp, Position{}, "min: requires at least one argument")
	}
	min := nums[0]
	for _, n := range nums[1:] {
		if n.LessThan(min) {
			min = n
		}
	}
	return NumberValue(min), nil
}

func fnMax(args []Value) (Value, error) {
	nums, err := numberArgs(args)
	if err != nil {
		return Value{}, err
	}
	if len(nums) == 0 {
		return Value{}, newError(NotSupportedOp, Position{}, "max: requires at least one argument")
	}
	max := nums[0]
	for _, n := range nums[1:] {
		if n.GreaterThan(max) {
			max = n
		}
	}
	return NumberValue(max), nil
}

func fnSum(args []Value) (Value, error) {
	nums, err := numberArgs(args)
	if err != nil {
		return Value{}, err
	}
	total := decimal.Zero
	for _, n := range nums {
		total = total.Add(n)
	}
	return NumberValue(total), nil
}

func fnMul(args []Value) (Value, error) {
	nums, err := numberArgs(args)
	if err != nil {
		return Value{}, err
	}
	total := decimal.NewFromInt(1)
	for _, n := range nums {
		total = total.Mul(n)
	}
	return NumberValue(total), nil
}

// fnAND and fnOR take a single List argument of Bool values, matching the
// Rust test corpus's `AND[1>2,true]` call shape (the list literal is a
// single positional argument, not varargs).
func fnAND(args []Value) (Value, error) {
	items, err := boolListArg("AND", args)
	if err != nil {
		return Value{}, err
	}
	for _, b := range items {
		if !b {
			return BoolValue(false), nil
		}
	}
	return BoolValue(true), nil
}

func fnOR(args []Value) (Value, error) {
	items, err := boolListArg("OR", args)
	if err != nil {
		return Value{}, err
	}
	for _, b := range items {
		if b {
			return BoolValue(true), nil
		}
	}
	return BoolValue(false), nil
}

func boolListArg(name string, args []Value) ([]bool, error) {
	if len(args) != 1 {
		return nil, newError(NotSupportedOp, Position{}, name+": requires exactly one list argument")
	}
	list, ok := args[0].List()
	if !ok {
		return nil, newError(NotSupportedOp, Position{}, name+": argument must be a list")
	}
	out := make([]bool, len(list))
	for i, v := range list {
		b, ok := v.Bool()
		if !ok {
			return nil, errShouldBeBool()
		}
		out[i] = b
	}
	return out, nil
}
