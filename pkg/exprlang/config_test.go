package exprlang

import (
	"testing"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConfigLoadAndApply(t *testing.T) {
	Convey("Given YAML config bytes", t, func() {
		cfg, err := LoadConfig([]byte("short_circuit_logical: true\ndecimal_places: 2\nmax_call_depth: 3\n"))
		So(err, ShouldBeNil)
		So(cfg.ShortCircuitLogical, ShouldBeTrue)
		So(cfg.DecimalPlaces, ShouldEqual, 2)
		So(cfg.MaxCallDepth, ShouldEqual, 3)

		ctx := NewContext()
		cfg.Apply(ctx)

		Convey("ShortCircuit is applied", func() {
			So(ctx.ShortCircuit, ShouldBeTrue)
		})

		Convey("DivScale rounds '/' results to the configured scale", func() {
			ast, err := Parse("1/3")
			So(err, ShouldBeNil)
			v, err := ast.Exec(ctx)
			So(err, ShouldBeNil)
			n, ok := v.Number()
			So(ok, ShouldBeTrue)
			So(n.Equal(decimal.RequireFromString("0.33")), ShouldBeTrue)
		})

		Convey("MaxCallDepth rejects recursion beyond the configured depth", func() {
			ctx.Register("recurse", func(args []Value) (Value, error) {
				ast, err := Parse("recurse()")
				if err != nil {
					return Value{}, err
				}
				return ast.Exec(ctx)
			})
			ast, err := Parse("recurse()")
			So(err, ShouldBeNil)
			_, err = ast.Exec(ctx)
			So(err, ShouldNotBeNil)
		})
	})

	Convey("DefaultConfig has no knobs enabled", t, func() {
		cfg := DefaultConfig()
		So(cfg.ShortCircuitLogical, ShouldBeFalse)
		So(cfg.DecimalPlaces, ShouldEqual, 0)
		So(cfg.MaxCallDepth, ShouldEqual, 0)
	})
}
