package lsys

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/gogpu/lsys/internal/parallel"
)

// DefaultMaxSymbols is the default symbol cap per generation. The value
// is a practical memory bound, not a property of any particular system.
const DefaultMaxSymbols = 500_000

// Frame is the outcome for one generation.
//
// Exactly one of Buffer and Err is set. Err is a *ComplexityError (it
// matches ErrTooComplex) for generations over the symbol cap.
type Frame struct {
	Index      int
	Generation Generation
	Buffer     *Buffer
	Err        error
}

// TooComplex reports whether the generation was skipped by the size guard.
func (f Frame) TooComplex() bool {
	return errors.Is(f.Err, ErrTooComplex)
}

// Result holds one frame per generation, 0..Iterations.
type Result struct {
	Frames []Frame
}

// Len returns the number of generations, including skipped ones.
func (r *Result) Len() int {
	return len(r.Frames)
}

// Usable returns the last frame that has geometry, and false if none does.
func (r *Result) Usable() (Frame, bool) {
	for i := len(r.Frames) - 1; i >= 0; i-- {
		if r.Frames[i].Buffer != nil {
			return r.Frames[i], true
		}
	}
	return Frame{}, false
}

// BuilderOption configures a Builder.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	maxSymbols int
	workers    int
	random     RandomSource
	interpret  []InterpretOption
}

func defaultBuilderOptions() builderOptions {
	return builderOptions{
		maxSymbols: DefaultMaxSymbols,
		workers:    0, // GOMAXPROCS
	}
}

// WithMaxSymbols sets the per-generation symbol cap. Zero or negative
// disables the guard.
func WithMaxSymbols(n int) BuilderOption {
	return func(o *builderOptions) {
		o.maxSymbols = n
	}
}

// WithWorkers sets how many generations are interpreted concurrently.
// Zero or negative uses GOMAXPROCS; 1 interprets on the calling goroutine.
func WithWorkers(n int) BuilderOption {
	return func(o *builderOptions) {
		o.workers = n
	}
}

// WithBuildRandom sets the twist source. Generations are then interpreted
// in order on the calling goroutine, so a seeded source replays exactly.
func WithBuildRandom(src RandomSource) BuilderOption {
	return func(o *builderOptions) {
		o.random = src
	}
}

// WithInterpretOptions passes extra options to every Interpret call.
func WithInterpretOptions(opts ...InterpretOption) BuilderOption {
	return func(o *builderOptions) {
		o.interpret = append(o.interpret, opts...)
	}
}

// Builder expands a parameter set and interprets every generation that
// fits under the symbol cap. A Builder holds no state between builds and
// may be shared.
type Builder struct {
	opts builderOptions
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	o := defaultBuilderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{opts: o}
}

// Build validates p, expands it and interprets each generation.
//
// Generations over the symbol cap, and every generation after the first
// such one, are returned as frames with ErrTooComplex and no buffer;
// smaller generations are still interpreted. ctx is checked between
// generations.
func (b *Builder) Build(ctx context.Context, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := Logger()
	gens, expandErr := ExpandLimit(p.Axiom, p.Rules, p.Iterations, b.opts.maxSymbols)

	res := &Result{Frames: make([]Frame, p.Iterations+1)}
	for i, g := range gens {
		res.Frames[i] = Frame{Index: i, Generation: g}
	}
	for i := len(gens); i <= p.Iterations; i++ {
		res.Frames[i] = Frame{Index: i, Err: skippedError(expandErr, i)}
		log.Warn("lsys: generation skipped", "generation", i, "err", res.Frames[i].Err)
	}

	turtle := p.Turtle()
	opts, seeded := b.interpretOptions()
	interpret := func(i int) {
		f := &res.Frames[i]
		f.Buffer = Interpret(f.Generation.Symbols, f.Generation.Births, turtle, opts...)
		log.Debug("lsys: generation interpreted",
			slog.Int("generation", i),
			slog.Int("symbols", f.Generation.Len()),
			slog.Int("segments", f.Buffer.Len()))
	}

	if b.opts.workers == 1 || seeded || len(gens) < 2 {
		for i := range gens {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			interpret(i)
		}
		return res, nil
	}

	workers := b.opts.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pool := parallel.NewWorkerPool(min(workers, len(gens)))
	defer pool.Close()
	pool.Map(len(gens), func(i int) {
		if ctx.Err() != nil {
			return
		}
		interpret(i)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// interpretOptions returns the options for every Interpret call and
// whether they resolve to a caller-supplied random source. Such a source
// is not assumed safe for concurrent use, so it forces sequential
// interpretation.
func (b *Builder) interpretOptions() ([]InterpretOption, bool) {
	opts := make([]InterpretOption, 0, len(b.opts.interpret)+1)
	if b.opts.random != nil {
		opts = append(opts, WithRandom(b.opts.random))
	}
	opts = append(opts, b.opts.interpret...)

	resolved := defaultInterpretOptions()
	for _, opt := range opts {
		opt(&resolved)
	}
	_, global := resolved.random.(globalSource)
	return opts, !global
}

// skippedError describes generation i, which was never expanded because
// expansion stopped at or before it.
func skippedError(expandErr error, i int) error {
	var ce *ComplexityError
	if errors.As(expandErr, &ce) && ce.Generation == i {
		return ce
	}
	return fmt.Errorf("lsys: generation %d follows an oversized generation: %w", i, ErrTooComplex)
}
