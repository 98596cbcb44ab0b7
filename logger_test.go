package lsys

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// captureLogs installs a text logger at level for the rest of the test.
func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	return &buf
}

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("k", "v")}).(nopHandler); !ok {
		t.Error("WithAttrs() did not return a nopHandler")
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("WithGroup() did not return a nopHandler")
	}
}

func TestSetLogger(t *testing.T) {
	buf := captureLogs(t, slog.LevelDebug)
	Logger().Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("log output = %q", buf.String())
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}

func TestBuildLogsSkippedGenerations(t *testing.T) {
	buf := captureLogs(t, slog.LevelWarn)

	b := NewBuilder(WithMaxSymbols(10), WithWorkers(1))
	p := Params{Axiom: "F", Rules: Rules{'F': "FF"}, Iterations: 6, Angle: 90, Length: 1}
	if _, err := b.Build(context.Background(), p); err != nil {
		t.Fatalf("Build() = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "too complex") {
		t.Errorf("expected a too complex warning, got: %s", out)
	}
	// Generations 4, 5 and 6 are over the cap.
	if n := strings.Count(out, "generation skipped"); n != 3 {
		t.Errorf("logged %d skipped generations, want 3:\n%s", n, out)
	}
	if strings.Contains(out, "generation interpreted") {
		t.Error("debug records leaked through a warn-level logger")
	}
}

func TestBuildLogsInterpretedGenerations(t *testing.T) {
	buf := captureLogs(t, slog.LevelDebug)

	p := Params{Axiom: "F", Rules: Rules{'F': "F+F"}, Iterations: 2, Angle: 90, Length: 1}
	if _, err := NewBuilder(WithWorkers(1)).Build(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"generation=0", "generation=2 symbols=7 segments=4"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestSetLoggerDuringBuild(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	p := plantParams()
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := NewBuilder(WithMaxSymbols(200)).Build(context.Background(), p); err != nil {
				t.Error(err)
			}
		}()
	}
	for range 50 {
		SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
		SetLogger(nil)
	}
	wg.Wait()
}
