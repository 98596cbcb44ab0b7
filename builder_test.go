package lsys

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"reflect"
	"testing"
)

func plantParams() Params {
	return Params{
		Axiom:       "X",
		Rules:       Rules{'X': "F+[[X]-X]-F[-FX]+X", 'F': "FF"},
		Iterations:  4,
		Angle:       25,
		Length:      1,
		BranchColor: testBranch,
		LeafColor:   testLeaf,
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
		ok     bool
	}{
		{"valid", func(*Params) {}, true},
		{"empty axiom", func(p *Params) { p.Axiom = "" }, false},
		{"negative iterations", func(p *Params) { p.Iterations = -1 }, false},
		{"too many iterations", func(p *Params) { p.Iterations = MaxIterations + 1 }, false},
		{"zero length", func(p *Params) { p.Length = 0 }, false},
		{"nan length", func(p *Params) { p.Length = math.NaN() }, false},
		{"infinite angle", func(p *Params) { p.Angle = math.Inf(1) }, false},
		{"twist above one", func(p *Params) { p.Twist = 1.5 }, false},
		{"negative twist", func(p *Params) { p.Twist = -0.1 }, false},
		{"negative angle", func(p *Params) { p.Angle = -90 }, true},
		{"no rules", func(p *Params) { p.Rules = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := plantParams()
			tt.modify(&p)
			err := p.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidParams) {
				t.Errorf("Validate() = %v, want ErrInvalidParams", err)
			}
		})
	}
}

func TestBuilder_Build(t *testing.T) {
	p := plantParams()
	res, err := NewBuilder().Build(context.Background(), p)
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	if res.Len() != p.Iterations+1 {
		t.Fatalf("Len() = %d, want %d", res.Len(), p.Iterations+1)
	}

	gens := Expand(p.Axiom, p.Rules, p.Iterations)
	for i, f := range res.Frames {
		if f.Index != i || f.Err != nil || f.Buffer == nil {
			t.Fatalf("frame %d = index %d err %v buffer %v", i, f.Index, f.Err, f.Buffer != nil)
		}
		if f.Generation.Symbols != gens[i].Symbols {
			t.Errorf("frame %d symbols differ from Expand", i)
		}
		want := Interpret(gens[i].Symbols, gens[i].Births, p.Turtle())
		if !reflect.DeepEqual(f.Buffer, want) {
			t.Errorf("frame %d buffer differs from Interpret", i)
		}
	}
}

func TestBuilder_ParallelMatchesSequential(t *testing.T) {
	p := plantParams()
	p.Iterations = 5

	seq, err := NewBuilder(WithWorkers(1)).Build(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	par, err := NewBuilder(WithWorkers(4)).Build(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(seq, par) {
		t.Error("parallel build differs from sequential build")
	}
}

func TestBuilder_TooComplex(t *testing.T) {
	p := Params{Axiom: "F", Rules: Rules{'F': "FF"}, Iterations: 8, Angle: 90, Length: 1}
	res, err := NewBuilder(WithMaxSymbols(20)).Build(context.Background(), p)
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	if res.Len() != 9 {
		t.Fatalf("Len() = %d, want 9", res.Len())
	}

	// 2^4 = 16 fits under 20; generation 5 (32 symbols) is the first skip.
	for i, f := range res.Frames {
		if i <= 4 {
			if f.TooComplex() || f.Buffer == nil || f.Buffer.Len() != 1<<i {
				t.Errorf("frame %d should be usable with %d segments", i, 1<<i)
			}
			continue
		}
		if !f.TooComplex() || f.Buffer != nil {
			t.Errorf("frame %d should be too complex, got err %v", i, f.Err)
		}
	}

	var ce *ComplexityError
	if !errors.As(res.Frames[5].Err, &ce) || ce.Symbols != 32 || ce.Limit != 20 {
		t.Errorf("frame 5 error = %v, want ComplexityError with 32 symbols", res.Frames[5].Err)
	}

	last, ok := res.Usable()
	if !ok || last.Index != 4 {
		t.Errorf("Usable() = %d, %v, want 4, true", last.Index, ok)
	}
}

func TestBuilder_AxiomTooComplex(t *testing.T) {
	p := Params{Axiom: "FFFF", Iterations: 1, Angle: 90, Length: 1}
	res, err := NewBuilder(WithMaxSymbols(2)).Build(context.Background(), p)
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	for _, f := range res.Frames {
		if !f.TooComplex() {
			t.Errorf("frame %d should be too complex", f.Index)
		}
	}
	if _, ok := res.Usable(); ok {
		t.Error("Usable() should report no geometry")
	}
}

func TestBuilder_InvalidParams(t *testing.T) {
	p := plantParams()
	p.Length = -1
	if _, err := NewBuilder().Build(context.Background(), p); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("Build() = %v, want ErrInvalidParams", err)
	}
}

func TestBuilder_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewBuilder().Build(ctx, plantParams()); !errors.Is(err, context.Canceled) {
		t.Errorf("Build() = %v, want context.Canceled", err)
	}
}

func TestBuilder_SeededTwistReplays(t *testing.T) {
	p := plantParams()
	p.Twist = 0.5

	build := func() *Result {
		b := NewBuilder(WithBuildRandom(rand.New(rand.NewPCG(3, 4))))
		res, err := b.Build(context.Background(), p)
		if err != nil {
			t.Fatal(err)
		}
		return res
	}
	if !reflect.DeepEqual(build(), build()) {
		t.Error("seeded builds differ")
	}
}

func TestBuilder_SeededInterpretOptionRunsInOrder(t *testing.T) {
	p := Params{
		Axiom: "F", Rules: Rules{'F': "F+F-F"}, Iterations: 8,
		Angle: 30, Length: 1, Twist: 0.5,
	}

	// A random source passed through WithInterpretOptions is shared by
	// every Interpret call, so the build must stay on one goroutine even
	// with several workers. Run with -race to catch a regression.
	build := func() *Result {
		src := rand.New(rand.NewPCG(1, 2))
		b := NewBuilder(WithWorkers(4), WithInterpretOptions(WithRandom(src)))
		res, err := b.Build(context.Background(), p)
		if err != nil {
			t.Fatal(err)
		}
		return res
	}
	got := build()
	if !reflect.DeepEqual(got, build()) {
		t.Fatal("seeded builds differ")
	}

	src := rand.New(rand.NewPCG(1, 2))
	for i, g := range Expand(p.Axiom, p.Rules, p.Iterations) {
		want := Interpret(g.Symbols, g.Births, p.Turtle(), WithRandom(src))
		if !reflect.DeepEqual(got.Frames[i].Buffer, want) {
			t.Errorf("generation %d differs from in-order interpretation", i)
		}
	}
}

func TestBuilder_InterpretOptionsSeeded(t *testing.T) {
	tests := []struct {
		name string
		opts []BuilderOption
		want bool
	}{
		{"default", nil, false},
		{"segment limit", []BuilderOption{WithInterpretOptions(WithSegmentLimit(3))}, false},
		{"nil random", []BuilderOption{WithInterpretOptions(WithRandom(nil))}, false},
		{"build random", []BuilderOption{WithBuildRandom(rand.New(rand.NewPCG(1, 1)))}, true},
		{"interpret random", []BuilderOption{WithInterpretOptions(WithRandom(rand.New(rand.NewPCG(1, 1))))}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, got := NewBuilder(tt.opts...).interpretOptions(); got != tt.want {
				t.Errorf("interpretOptions() seeded = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuilder_InterpretOptions(t *testing.T) {
	b := NewBuilder(WithInterpretOptions(WithSegmentLimit(3)))
	res, err := b.Build(context.Background(), plantParams())
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range res.Frames {
		if f.Buffer.Len() > 3 {
			t.Errorf("frame %d has %d segments, want at most 3", f.Index, f.Buffer.Len())
		}
	}
}
