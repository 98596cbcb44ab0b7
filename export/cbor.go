// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package export encodes segment buffers and build results as CBOR for
// renderers running in another process.
//
// Encoding uses canonical mode, so equal inputs always produce identical
// bytes.
package export

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/gogpu/lsys"
)

// ErrMalformed is returned when decoded data violates the buffer layout.
var ErrMalformed = errors.New("export: malformed data")

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("export: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// wireBuffer is the on-wire form of lsys.Buffer.
type wireBuffer struct {
	Positions []float32 `cbor:"positions"`
	Colors    []float32 `cbor:"colors"`
	Births    []int     `cbor:"births"`
}

// wireFrame is one generation. Too-complex frames carry the reason and
// no geometry.
type wireFrame struct {
	Index      int         `cbor:"index"`
	Symbols    int         `cbor:"symbols"`
	TooComplex bool        `cbor:"too_complex,omitempty"`
	Reason     string      `cbor:"reason,omitempty"`
	Buffer     *wireBuffer `cbor:"buffer,omitempty"`
}

type wireResult struct {
	Generations int         `cbor:"generations"`
	Frames      []wireFrame `cbor:"frames"`
}

// Frame is a decoded generation.
type Frame struct {
	Index      int
	Symbols    int
	TooComplex bool
	Reason     string
	Buffer     *lsys.Buffer // nil when TooComplex
}

// MarshalBuffer serializes a buffer to CBOR bytes.
func MarshalBuffer(b *lsys.Buffer) ([]byte, error) {
	return encMode.Marshal(toWire(b))
}

// UnmarshalBuffer deserializes and validates a buffer.
func UnmarshalBuffer(data []byte) (*lsys.Buffer, error) {
	var w wireBuffer
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("export: unmarshal buffer: %w", err)
	}
	return fromWire(&w)
}

// MarshalResult serializes every frame of a build result. A nil result
// encodes as zero generations.
func MarshalResult(r *lsys.Result) ([]byte, error) {
	if r == nil {
		return encMode.Marshal(wireResult{Frames: []wireFrame{}})
	}
	w := wireResult{Generations: r.Len(), Frames: make([]wireFrame, len(r.Frames))}
	for i, f := range r.Frames {
		wf := wireFrame{Index: f.Index, Symbols: f.Generation.Len()}
		var ce *lsys.ComplexityError
		if errors.As(f.Err, &ce) {
			wf.Symbols = ce.Symbols
		}
		switch {
		case f.Err != nil:
			wf.TooComplex = f.TooComplex()
			wf.Reason = f.Err.Error()
		case f.Buffer != nil:
			wf.Buffer = toWire(f.Buffer)
		}
		w.Frames[i] = wf
	}
	return encMode.Marshal(w)
}

// UnmarshalResult deserializes the frames written by MarshalResult.
func UnmarshalResult(data []byte) ([]Frame, error) {
	var w wireResult
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("export: unmarshal result: %w", err)
	}
	if w.Generations != len(w.Frames) {
		return nil, fmt.Errorf("%w: %d generations but %d frames", ErrMalformed, w.Generations, len(w.Frames))
	}

	frames := make([]Frame, len(w.Frames))
	for i, wf := range w.Frames {
		f := Frame{Index: wf.Index, Symbols: wf.Symbols, TooComplex: wf.TooComplex, Reason: wf.Reason}
		if wf.Buffer != nil {
			b, err := fromWire(wf.Buffer)
			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", i, err)
			}
			f.Buffer = b
		}
		if f.TooComplex == (f.Buffer != nil) {
			return nil, fmt.Errorf("%w: frame %d must have exactly one of buffer and too_complex", ErrMalformed, i)
		}
		frames[i] = f
	}
	return frames, nil
}

func toWire(b *lsys.Buffer) *wireBuffer {
	if b == nil {
		return &wireBuffer{}
	}
	return &wireBuffer{Positions: b.Positions, Colors: b.Colors, Births: b.Births}
}

func fromWire(w *wireBuffer) (*lsys.Buffer, error) {
	n := len(w.Births)
	if len(w.Positions) != 6*n || len(w.Colors) != 6*n {
		return nil, fmt.Errorf("%w: %d segments need %d floats, got %d positions and %d colors",
			ErrMalformed, n, 6*n, len(w.Positions), len(w.Colors))
	}
	return &lsys.Buffer{
		Positions: nonNil(w.Positions),
		Colors:    nonNil(w.Colors),
		Births:    nonNilInts(w.Births),
	}, nil
}

func nonNil(s []float32) []float32 {
	if s == nil {
		return []float32{}
	}
	return s
}

func nonNilInts(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
