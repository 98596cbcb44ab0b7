package lsys

import "strings"

// Generation is one rewriting step: the symbol string and, for every
// symbol, the iteration at which it was introduced.
//
// Invariant: len(Symbols) == len(Births).
type Generation struct {
	Symbols string
	Births  []int
}

// Len returns the number of symbols.
func (g Generation) Len() int {
	return len(g.Symbols)
}

// MaxBirth returns the largest birth generation present, or 0 if empty.
func (g Generation) MaxBirth() int {
	m := 0
	for _, b := range g.Births {
		if b > m {
			m = b
		}
	}
	return m
}

// Expand rewrites axiom through rules and returns generations
// 0..iterations inclusive. Generation 0 is the axiom with all-zero births.
//
// Symbols with a rule are replaced and every appended symbol is tagged with
// the new iteration. Symbols without a rule, and symbols whose rule is
// their own single symbol, are copied with their birth unchanged. Expand
// is deterministic and does not bound growth; see ExpandLimit.
func Expand(axiom string, rules Rules, iterations int) []Generation {
	gens, _ := ExpandLimit(axiom, rules, iterations, 0)
	return gens
}

// ExpandLimit is Expand with a symbol cap. The length of each generation
// is computed before it is built; expansion stops at the first generation
// longer than maxSymbols and returns the generations built so far together
// with a *ComplexityError. A maxSymbols of 0 or less disables the cap.
func ExpandLimit(axiom string, rules Rules, iterations, maxSymbols int) ([]Generation, error) {
	if iterations < 0 {
		iterations = 0
	}
	if maxSymbols > 0 && len(axiom) > maxSymbols {
		return nil, &ComplexityError{Generation: 0, Symbols: len(axiom), Limit: maxSymbols}
	}

	gens := make([]Generation, 0, iterations+1)
	gens = append(gens, Generation{
		Symbols: axiom,
		Births:  make([]int, len(axiom)),
	})

	for i := 1; i <= iterations; i++ {
		prev := gens[i-1]
		size := expandedLen(prev.Symbols, rules)
		if maxSymbols > 0 && size > maxSymbols {
			return gens, &ComplexityError{Generation: i, Symbols: size, Limit: maxSymbols}
		}
		gens = append(gens, step(prev, rules, i, size))
	}
	return gens, nil
}

// step computes generation iter from prev; size is the result length.
func step(prev Generation, rules Rules, iter, size int) Generation {
	var sb strings.Builder
	sb.Grow(size)
	births := make([]int, 0, size)

	for i := 0; i < len(prev.Symbols); i++ {
		sym := prev.Symbols[i]
		replacement, ok := rules.Lookup(sym)
		switch {
		case !ok, isIdentity(sym, replacement):
			sb.WriteByte(sym)
			births = append(births, prev.Births[i])
		default:
			sb.WriteString(replacement)
			for range len(replacement) {
				births = append(births, iter)
			}
		}
	}

	return Generation{Symbols: sb.String(), Births: births}
}

// isIdentity reports whether replacement rewrites sym to itself.
func isIdentity(sym byte, replacement string) bool {
	return len(replacement) == 1 && replacement[0] == sym
}

// expandedLen returns the length of the next generation of symbols.
func expandedLen(symbols string, rules Rules) int {
	n := 0
	for i := 0; i < len(symbols); i++ {
		if replacement, ok := rules.Lookup(symbols[i]); ok {
			n += len(replacement)
		} else {
			n++
		}
	}
	return n
}
