package lsys

import (
	"errors"
	"fmt"
)

// ErrTooComplex indicates a generation exceeds the configured symbol cap
// and was not interpreted. Earlier generations remain usable.
var ErrTooComplex = errors.New("lsys: too complex, reduce iterations")

// ErrInvalidParams indicates a parameter set rejected by Params.Validate.
var ErrInvalidParams = errors.New("lsys: invalid parameters")

// ComplexityError reports which generation crossed the symbol cap.
// It matches ErrTooComplex with errors.Is.
type ComplexityError struct {
	Generation int // first generation over the cap
	Symbols    int // its symbol count
	Limit      int // the cap in effect
}

func (e *ComplexityError) Error() string {
	return fmt.Sprintf("lsys: generation %d has %d symbols, limit %d: too complex, reduce iterations",
		e.Generation, e.Symbols, e.Limit)
}

// Unwrap returns ErrTooComplex.
func (e *ComplexityError) Unwrap() error {
	return ErrTooComplex
}
