// Package lsys generates branching fractal geometry from L-system rules.
//
// # Overview
//
// lsys has two stages. Expand rewrites an axiom through production rules
// and tags every symbol with the generation that introduced it. Interpret
// walks one generation's symbols with a 3D turtle and produces a Buffer:
// a flat, ordered list of line segments with per-vertex colors and a
// per-segment birth generation.
//
// # Quick Start
//
//	import "github.com/gogpu/lsys"
//
//	rules, _ := lsys.ParseRules("X=F+[[X]-X]-F[-FX]+X; F=FF")
//	gens := lsys.Expand("X", rules, 5)
//	last := gens[len(gens)-1]
//
//	buf := lsys.Interpret(last.Symbols, last.Births, lsys.TurtleParams{
//	    Angle:       25,
//	    Length:      1,
//	    BranchColor: lsys.Hex("#8b5a2b"),
//	    LeafColor:   lsys.Hex("#3cb043"),
//	})
//
//	// Growth animation: draw ever longer prefixes of the same buffer.
//	for k := 0; k <= buf.Len(); k += 100 {
//	    renderer.RenderPrefix(buf, k)
//	}
//
// Builder runs the whole pipeline for a validated Params, interprets
// generations concurrently and skips generations over a symbol cap with
// ErrTooComplex instead of failing the run.
//
// # Symbols
//
//	F A B  branch segment forward
//	X      two leaf segments, turtle does not move
//	+ -    turn about the local Z axis (with optional random twist)
//	^ &    pitch about the local X axis
//	\ /    roll about the local Y axis (the heading)
//	[ ]    push and pop position and orientation
//
// The turtle starts at the origin heading +Y. Rotations compose in the
// turtle's local frame.
//
// # Sub-packages
//
//   - raster: CPU prefix renderer writing PNG images
//   - export: CBOR encoding of buffers and build results
package lsys

// Version is the current version of the library
const Version = "0.1.0"
