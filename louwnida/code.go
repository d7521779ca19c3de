// Package louwnida provides the Louw/Nida code vocabulary: parsing,
// normalization, and base-number extraction for LN semantic classification
// codes as they appear both in Semantic Domains lists and in tagged texts.
//
// An LN code takes one of three shapes:
//   - a bare domain number: "89"
//   - a decimal sub-code:   "89.32"
//   - a lettered subdomain: "92a" (letter case is not significant)
//
// The leading number identifies the domain class; the Louw/Nida lexicon
// defines domains 1 through 93. Everything below the number (the ".32" or
// the "a") refines the domain but keys onto the same base number.
package louwnida

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Valid range of Louw/Nida domain numbers.
const (
	MinBase = 1
	MaxBase = 93
)

// codePattern matches an LN code at the start of a string: leading number,
// optional subdomain letter (with the occasional prime mark seen in source
// data, e.g. "25A'"), optional decimal sub-code.
var codePattern = regexp.MustCompile(`^(\d+)([A-Za-z]'?)?(?:\.(\d+))?`)

// Code is a single parsed Louw/Nida code.
type Code struct {
	// Raw is the normalized code string: digits, upper-cased letter, and
	// decimal part, with any trailing free text stripped.
	Raw string

	// Base is the leading domain number.
	Base int

	// Letter is the subdomain letter in upper case, "" when absent.
	Letter string

	// Sub is the decimal part after the dot, "" when absent.
	Sub string
}

// Parse parses a single LN code. Trailing free text after the code itself
// (source lists carry entries like "14A Weather") is ignored. Parse fails
// when the input does not begin with a domain number.
func Parse(s string) (Code, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Code{}, fmt.Errorf("parse LN code: empty string")
	}

	m := codePattern.FindStringSubmatch(s)
	if m == nil || m[1] == "" {
		return Code{}, fmt.Errorf("parse LN code %q: no leading domain number", s)
	}

	base, err := strconv.Atoi(m[1])
	if err != nil {
		return Code{}, fmt.Errorf("parse LN code %q: %w", s, err)
	}

	c := Code{
		Base:   base,
		Letter: strings.ToUpper(m[2]),
		Sub:    m[3],
	}

	raw := m[1] + c.Letter
	if c.Sub != "" {
		raw += "." + c.Sub
	}
	c.Raw = raw

	return c, nil
}

// InRange reports whether the code's base number falls inside the standard
// Louw/Nida domain range.
func (c Code) InRange() bool {
	return c.Base >= MinBase && c.Base <= MaxBase
}

// String returns the normalized code form.
func (c Code) String() string {
	return c.Raw
}

// SplitList splits a whitespace-separated LN code list, as found in the
// ln attribute of tagged-text tokens. Empty entries are dropped.
func SplitList(s string) []string {
	return strings.Fields(s)
}

// SplitField splits a semicolon-separated LouwNidaCodes list field and trims
// each entry. Empty entries are dropped.
func SplitField(s string) []string {
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
