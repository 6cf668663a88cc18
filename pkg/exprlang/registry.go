package exprlang

import (
	"strings"
	"sync"
)

// Associativity mirrors graft's Associativity enum
// (pkg/graft/operator_registry.go), narrowed to the two values exprlang's
// binary operators need.
type Associativity int

const (
	LeftAssoc Associativity = iota
	RightAssoc
)

// OpCategory distinguishes a pure binary operator from one that mutates a
// reference in place, per spec.md §3's Registries.
type OpCategory int

const (
	Calc OpCategory = iota
	Setter
)

// Precedence levels, lowest-binds-loosest, per spec.md §6's table. Ternary
// sits below every binary operator (spec.md §4.2); Setter ops are the
// lowest among binary operators.
const (
	PrecTernary = iota
	PrecSetter
	PrecOr
	PrecAnd
	PrecEquality
	PrecRelational
	PrecShift
	PrecAdditive
	PrecMultiplicative
)

// NoPrecedence is returned for an operator symbol the registry does not
// recognize, so the parser's climbing loop terminates (spec.md §4.2).
const NoPrecedence = -1

// BinaryFunc is the shape every binary operator implementation takes.
type BinaryFunc func(lhs, rhs Value) (Value, error)

// UnaryFunc is the shape every unary operator implementation takes.
type UnaryFunc func(operand Value) (Value, error)

// Func is the shape every built-in or user-registered function takes,
// matching spec.md §6's `Context::register(name, fn)`.
type Func func(args []Value) (Value, error)

// BinaryOpInfo is one entry of the BinaryOpRegistry, grounded on graft's
// OperatorInfo (pkg/graft/operator_registry.go) trimmed to what spec.md §3
// requires: symbol, precedence, category, associativity, implementation.
type BinaryOpInfo struct {
	Symbol   string
	Prec     int
	Assoc    Associativity
	Category OpCategory
	Fn       BinaryFunc
}

// UnaryOpInfo is one entry of the UnaryOpRegistry.
type UnaryOpInfo struct {
	Symbol string
	Fn     UnaryFunc
}

// registry is the process-wide holder for the three catalogues spec.md §3
// names: BinaryOpRegistry, UnaryOpRegistry, InnerFunctionRegistry. It is a
// read-mostly singleton guarded by a RWMutex so registration after the
// one-time bootstrap (spec.md §5) is serialized safely.
type registry struct {
	mu       sync.RWMutex
	binary   map[string]*BinaryOpInfo
	unary    map[string]*UnaryOpInfo
	funcs    map[string]Func
	opSymbols []string // cached longest-match-first ordering for the tokenizer
}

var (
	defaultRegistry     *registry
	defaultRegistryOnce sync.Once
)

// globalRegistry returns the shared, lazily-bootstrapped registry,
// mirroring the "lazily initialised once" requirement of spec.md §9's
// Design Notes and graft's own init() bootstrap (pkg/graft/init.go).
func globalRegistry() *registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = &registry{
			binary: make(map[string]*BinaryOpInfo),
			unary:  make(map[string]*UnaryOpInfo),
			funcs:  make(map[string]Func),
		}
		bootstrapOperators(defaultRegistry)
		bootstrapFunctions(defaultRegistry)
	})
	return defaultRegistry
}

func (r *registry) registerBinary(info *BinaryOpInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.binary[info.Symbol] = info
	r.rebuildSymbolsLocked()
}

func (r *registry) registerUnary(info *UnaryOpInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unary[info.Symbol] = info
	r.rebuildSymbolsLocked()
}

func (r *registry) registerFunc(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
}

func (r *registry) rebuildSymbolsLocked() {
	syms := make([]string, 0, len(r.binary)+len(r.unary))
	seen := make(map[string]bool)
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			syms = append(syms, s)
		}
	}
	for s := range r.binary {
		add(s)
	}
	for s := range r.unary {
		add(s)
	}
	// Longest-match-first, per spec.md §4.1's "Longest-match against the
	// union of operator-registry keys".
	for i := 1; i < len(syms); i++ {
		for j := i; j > 0 && len(syms[j]) > len(syms[j-1]); j-- {
			syms[j], syms[j-1] = syms[j-1], syms[j]
		}
	}
	r.opSymbols = syms
}

func (r *registry) lookupBinary(symbol string) (*BinaryOpInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.binary[lowerIfReserved(symbol)]
	return info, ok
}

func (r *registry) lookupUnary(symbol string) (*UnaryOpInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.unary[lowerIfReserved(symbol)]
	return info, ok
}

func (r *registry) lookupFunc(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

func (r *registry) precedence(symbol string) int {
	info, ok := r.lookupBinary(symbol)
	if !ok {
		return NoPrecedence
	}
	return info.Prec
}

func (r *registry) operatorSymbols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.opSymbols))
	copy(out, r.opSymbols)
	return out
}

// reservedWordOps are the word-form operator aliases spec.md §4.1 requires
// to match case-insensitively; every other operator symbol is
// case-sensitive (matched literally, e.g. "+", "==").
var reservedWordOps = map[string]bool{
	"and": true, "or": true, "not": true,
	"in": true, "beginwith": true, "endwith": true,
}

// lowerIfReserved normalizes a reserved word-operator to lower case before
// a registry lookup, case-sensitive symbol operators pass through
// unchanged.
func lowerIfReserved(symbol string) string {
	lower := strings.ToLower(symbol)
	if reservedWordOps[lower] {
		return canonicalReservedOp(lower)
	}
	return symbol
}

func canonicalReservedOp(lower string) string {
	switch lower {
	case "beginwith":
		return "beginWith"
	case "endwith":
		return "endWith"
	default:
		return lower
	}
}

// RegisterBinaryOp adds or replaces a binary operator in the shared
// registry. Intended for embedder bootstrap, serialized per spec.md §5.
func RegisterBinaryOp(info BinaryOpInfo) {
	globalRegistry().registerBinary(&info)
}

// RegisterUnaryOp adds or replaces a unary operator in the shared
// registry.
func RegisterUnaryOp(info UnaryOpInfo) {
	globalRegistry().registerUnary(&info)
}

// RegisterFunction adds or replaces a built-in function in the shared
// InnerFunctionRegistry.
func RegisterFunction(name string, fn Func) {
	globalRegistry().registerFunc(name, fn)
}

// LookupBinaryOp looks a binary operator symbol up in the shared registry.
func LookupBinaryOp(symbol string) (BinaryOpInfo, bool) {
	info, ok := globalRegistry().lookupBinary(symbol)
	if !ok {
		return BinaryOpInfo{}, false
	}
	return *info, true
}

// LookupUnaryOp looks a unary operator symbol up in the shared registry.
func LookupUnaryOp(symbol string) (UnaryOpInfo, bool) {
	info, ok := globalRegistry().lookupUnary(symbol)
	if !ok {
		return UnaryOpInfo{}, false
	}
	return *info, true
}

// LookupFunction looks a built-in function name up in the shared
// InnerFunctionRegistry.
func LookupFunction(name string) (Func, bool) {
	return globalRegistry().lookupFunc(name)
}

// BinaryPrecedence returns symbol's precedence, or NoPrecedence if it is
// not a registered binary operator (spec.md §4.2).
func BinaryPrecedence(symbol string) int {
	return globalRegistry().precedence(symbol)
}

// OperatorSymbols returns every registered operator symbol (binary and
// unary), longest first, for the tokenizer's longest-match scan
// (spec.md §4.1).
func OperatorSymbols() []string {
	return globalRegistry().operatorSymbols()
}
