package lsys

import "math/rand/v2"

// RandomSource supplies uniform values in [0, 1) for the twist applied
// after turn commands. *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
}

// globalSource draws from the math/rand/v2 top-level generator, which is
// safe for concurrent use.
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// InterpretOption configures a single Interpret call.
//
// Example:
//
//	// Replayable twist
//	buf := lsys.Interpret(g.Symbols, g.Births, params,
//	    lsys.WithRandom(rand.New(rand.NewPCG(1, 2))))
type InterpretOption func(*interpretOptions)

// interpretOptions holds optional configuration for Interpret.
type interpretOptions struct {
	random   RandomSource
	limit    int
	maxDepth int
}

// defaultInterpretOptions returns the default interpreter options.
func defaultInterpretOptions() interpretOptions {
	return interpretOptions{
		random:   globalSource{},
		limit:    -1, // no segment limit
		maxDepth: 0,  // unbounded stack
	}
}

// WithRandom sets the source used for twist sampling. A nil source keeps
// the default. Interpretation with twist > 0 is reproducible only with a
// seeded source.
func WithRandom(src RandomSource) InterpretOption {
	return func(o *interpretOptions) {
		if src != nil {
			o.random = src
		}
	}
}

// WithSegmentLimit stops interpretation once n segments have been emitted.
// The result equals the first n segments of the unlimited buffer.
// A negative n removes the limit.
func WithSegmentLimit(n int) InterpretOption {
	return func(o *interpretOptions) {
		o.limit = n
	}
}

// WithMaxDepth bounds the save stack to n entries. A '[' at full depth is
// ignored together with its matching ']'. Zero or negative means unbounded.
func WithMaxDepth(n int) InterpretOption {
	return func(o *interpretOptions) {
		o.maxDepth = n
	}
}
