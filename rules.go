package lsys

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidRule is returned by ParseRules for malformed rule text.
var ErrInvalidRule = errors.New("lsys: invalid rule")

// Rules maps a single symbol to its replacement string.
//
// A symbol without an entry is terminal: it is copied unchanged into the
// next generation and keeps its birth generation. An entry with an empty
// replacement deletes the symbol.
type Rules map[byte]string

// Lookup returns the replacement for sym and whether a rule exists.
func (r Rules) Lookup(sym byte) (string, bool) {
	if r == nil {
		return "", false
	}
	replacement, ok := r[sym]
	return replacement, ok
}

// Symbols returns the rule keys in ascending order.
func (r Rules) Symbols() []byte {
	keys := make([]byte, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// String renders the rules one per line as "A=replacement", sorted by
// symbol. The output parses back with ParseRules.
func (r Rules) String() string {
	var sb strings.Builder
	for i, k := range r.Symbols() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteByte(k)
		sb.WriteByte('=')
		sb.WriteString(r[k])
	}
	return sb.String()
}

// ParseRules parses rule text of the form
//
//	F=F-F++F-F
//	A -> +B-A-B+; B -> -A+B+A-
//
// Rules are separated by newlines or ';'. Blank entries and lines starting
// with '#' are skipped. Spaces around the key and replacement are trimmed;
// spaces inside a replacement are kept as symbols.
func ParseRules(text string) (Rules, error) {
	rules := make(Rules)
	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		for _, entry := range strings.Split(line, ";") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			key, replacement, err := splitRule(entry)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
			}
			if _, dup := rules[key]; dup {
				return nil, fmt.Errorf("line %d: %w: duplicate rule for %q", lineNo+1, ErrInvalidRule, key)
			}
			rules[key] = replacement
		}
	}
	return rules, nil
}

func splitRule(entry string) (byte, string, error) {
	// The first separator wins so replacements may contain the other one.
	sep := "="
	at := strings.Index(entry, "=")
	if arrow := strings.Index(entry, "->"); arrow >= 0 && (at < 0 || arrow < at) {
		sep, at = "->", arrow
	}
	if at < 0 {
		return 0, "", fmt.Errorf("%w: %q has no '=' or '->'", ErrInvalidRule, entry)
	}
	key, replacement := strings.TrimSpace(entry[:at]), strings.TrimSpace(entry[at+len(sep):])
	if len(key) != 1 {
		return 0, "", fmt.Errorf("%w: key %q must be a single symbol", ErrInvalidRule, key)
	}
	return key[0], replacement, nil
}
