package exprlang

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config carries the small set of evaluation knobs SPEC_FULL.md's Ambient
// Stack/Configuration section calls for. It mirrors the *shape* of
// graft's internal/config (a decoded settings struct), without any of
// graft's file-watching or profile machinery, and without performing any
// file I/O itself — the core's Non-goals exclude file I/O, so the
// embedder reads the bytes and hands them to LoadConfig.
type Config struct {
	// DecimalPlaces bounds the scale division rounds results to; 0 means
	// "use decimal's default behavior" (see opDiv in operators.go).
	DecimalPlaces int32 `yaml:"decimal_places"`

	// ShortCircuitLogical opts && / || into stopping early once the lhs
	// determines the result, overriding spec.md §4.3's documented
	// always-evaluate-both-sides behavior. See DESIGN.md's Open Question
	// decision and Context.ShortCircuit in context.go.
	ShortCircuitLogical bool `yaml:"short_circuit_logical"`

	// MaxCallDepth bounds how deeply nested Function evaluation may
	// recurse before exprlang gives up rather than exhausting the native
	// call stack (spec.md §5: "an infinitely recursive user function will
	// blow the native call stack — this is the caller's responsibility to
	// avoid"; MaxCallDepth lets an embedder opt into a softer failure
	// instead). 0 means unbounded.
	MaxCallDepth int `yaml:"max_call_depth"`
}

// DefaultConfig returns the zero-value Config: no decimal place clamp, no
// short-circuit, no call-depth limit — the literal behavior spec.md
// documents.
func DefaultConfig() Config {
	return Config{}
}

// LoadConfig decodes a Config from caller-supplied YAML bytes via
// gopkg.in/yaml.v3, the library graft itself lists in go.mod. exprlang
// never opens a file on the caller's behalf; the embedder is responsible
// for reading config from disk, environment, or wherever it lives and
// passing the bytes here.
func LoadConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("exprlang: decode config: %w", err)
	}
	return cfg, nil
}

// Apply applies cfg's knobs to ctx.
func (cfg Config) Apply(ctx *Context) {
	ctx.ShortCircuit = cfg.ShortCircuitLogical
	ctx.DivScale = cfg.DecimalPlaces
	ctx.MaxCallDepth = cfg.MaxCallDepth
}
