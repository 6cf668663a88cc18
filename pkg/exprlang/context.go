package exprlang

import "sync"

// Context bundles the variable bindings and user-supplied functions an
// evaluation runs against — spec.md §3's "sole mutable state touched
// during evaluation", owned by the caller. Not safe for concurrent use by
// multiple goroutines (spec.md §5: "a Context is not shared across
// threads").
type Context struct {
	mu    sync.Mutex
	vars  map[string]Value
	funcs map[string]Func

	// ShortCircuit controls whether && / || stop evaluating their rhs once
	// the lhs already determines the result. spec.md §4.3 describes the
	// source behavior as always evaluating both sides; this is an
	// explicit, opt-in deviation a Config can request (see config.go and
	// DESIGN.md's Open Question decision). Defaults to false, preserving
	// spec.md's documented behavior.
	ShortCircuit bool

	// DivScale overrides the rounding scale opDiv uses for `/` and `/=`
	// (operators.go's default of 16 decimal places). 0 means "use the
	// default". Set via Config.Apply (config.go).
	DivScale int32

	// MaxCallDepth bounds nested Function-call evaluation depth; 0 means
	// unbounded. Set via Config.Apply (config.go).
	MaxCallDepth int

	callDepth int
}

// enterCall increments the function-call nesting counter, failing with
// NotSupportedOp once MaxCallDepth is exceeded rather than letting
// recursion blow the native call stack unchecked (spec.md §5).
func (c *Context) enterCall() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.MaxCallDepth > 0 && c.callDepth >= c.MaxCallDepth {
		return newError(NotSupportedOp, Position{}, "max call depth exceeded")
	}
	c.callDepth++
	return nil
}

func (c *Context) exitCall() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callDepth--
}

// NewContext returns an empty Context, matching spec.md §6's
// `Context::new()`.
func NewContext() *Context {
	return &Context{
		vars:  make(map[string]Value),
		funcs: make(map[string]Func),
	}
}

// NewContextWith returns a Context pre-populated with vars and funcs, the
// idiomatic Go equivalent of the Rust test harness's `create_context!`
// macro (original_source/src/parser.rs) — see SPEC_FULL.md's Supplemented
// features.
func NewContextWith(vars map[string]Value, funcs map[string]Func) *Context {
	ctx := NewContext()
	for k, v := range vars {
		ctx.vars[k] = v
	}
	for k, f := range funcs {
		ctx.funcs[k] = f
	}
	return ctx
}

// SetVariable binds name to value, matching spec.md §6's
// `Context::set_variable(name, value)`.
func (c *Context) SetVariable(name string, value Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vars[name] = value
}

// Value looks up a bound variable, matching spec.md §6's
// `Context::value(name) → Value`.
func (c *Context) Value(name string) (Value, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.vars[name]
	return v, ok
}

// Register binds a user-supplied function under name, matching spec.md
// §6's `Context::register(name, fn)`. User functions take precedence over
// the InnerFunctionRegistry on lookup (spec.md §4.3).
func (c *Context) Register(name string, fn Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs[name] = fn
}

// resolveFunction returns the function bound to name, preferring the
// Context's own registrations over the shared InnerFunctionRegistry —
// spec.md §4.3: "the context's user-function map takes precedence over
// the inner-function registry".
func (c *Context) resolveFunction(name string) (Func, bool) {
	c.mu.Lock()
	fn, ok := c.funcs[name]
	c.mu.Unlock()
	if ok {
		return fn, true
	}
	return LookupFunction(name)
}
