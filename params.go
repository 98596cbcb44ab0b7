package lsys

import (
	"fmt"
	"math"
)

// MaxIterations is the largest iteration count Params.Validate accepts.
const MaxIterations = 20

// Params is a complete parameter set: the grammar plus drawing parameters.
type Params struct {
	Axiom       string
	Rules       Rules
	Iterations  int
	Angle       float64 // degrees
	Length      float64
	Twist       float64
	BranchColor RGB
	LeafColor   RGB
}

// Turtle returns the drawing part of p.
func (p Params) Turtle() TurtleParams {
	return TurtleParams{
		Angle:       p.Angle,
		Length:      p.Length,
		Twist:       p.Twist,
		BranchColor: p.BranchColor,
		LeafColor:   p.LeafColor,
	}
}

// Validate checks p at the boundary. The errors match ErrInvalidParams.
func (p Params) Validate() error {
	switch {
	case p.Axiom == "":
		return fmt.Errorf("%w: axiom is empty", ErrInvalidParams)
	case p.Iterations < 0 || p.Iterations > MaxIterations:
		return fmt.Errorf("%w: iterations %d outside [0, %d]", ErrInvalidParams, p.Iterations, MaxIterations)
	case math.IsNaN(p.Angle) || math.IsInf(p.Angle, 0):
		return fmt.Errorf("%w: angle %v is not finite", ErrInvalidParams, p.Angle)
	case !(p.Length > 0) || math.IsInf(p.Length, 0):
		return fmt.Errorf("%w: length %v must be positive", ErrInvalidParams, p.Length)
	case !(p.Twist >= 0 && p.Twist <= 1):
		return fmt.Errorf("%w: twist %v outside [0, 1]", ErrInvalidParams, p.Twist)
	}
	return nil
}
