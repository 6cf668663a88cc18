// Package exprlang implements the core of a small, embeddable,
// dynamically-typed expression language: a tokenizer, a Pratt-style
// precedence-climbing parser, and a tree-walking evaluator, operating
// over a Value model of numbers (exact decimals), booleans, strings,
// lists, maps and a None sentinel.
//
// Typical use:
//
//	ast, err := exprlang.Parse("d=3; d+=4; d*2")
//	ctx := exprlang.NewContext()
//	result, err := ast.Exec(ctx)
//
// Parsing and evaluation are separate steps; a parsed AST can be reused
// across many evaluations against different contexts.
package exprlang
