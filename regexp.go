// Package backgrep provides a small regular-expression matcher: literals,
// '.', character classes, \d/\w, '?'/'*'/'+' quantifiers on atoms or groups,
// parenthesised capturing groups with top-level alternation, numbered
// backreferences \1-\9, and ^/$ anchors at the pattern's extremes. See
// SPEC_FULL.md for the full grammar and semantics.
//
// It is not a general-purpose regexp replacement: there is no
// lookaround, no non-greedy quantifiers, no named groups, no {n,m} bounded
// repetition, and worst-case matching time is exponential in pathological
// patterns (this engine never compiles to an automaton; it backtracks).
// For production text processing, use the standard library's regexp
// package. This one exists to be read.
//
// Basic usage:
//
//	re, err := backgrep.Compile(`(\w+)@(\w+)\.com`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if re.MatchString("contact us at hello@example.com") {
//	    fmt.Println("matched!")
//	}
package backgrep

import (
	"fmt"

	"github.com/ossarca/backgrep/internal/matcher"
	"github.com/ossarca/backgrep/internal/parser"
)

// Regexp is a parsed pattern ready for matching.
//
// A Regexp is safe for concurrent use by multiple goroutines: MatchString
// allocates a fresh capture table per call and shares no other mutable
// state.
type Regexp struct {
	pattern string
}

// Compile parses pattern and validates it against the grammar described in
// SPEC_FULL.md. It returns a *parser.SyntaxError wrapping one of
// parser.ErrUnterminatedEscape, parser.ErrUnterminatedClass,
// parser.ErrUnterminatedGroup, or parser.ErrBackrefOutOfRange if pattern is
// malformed.
func Compile(pattern string) (*Regexp, error) {
	_, inner := matcher.StripAnchors(pattern)
	if err := parser.Validate(inner, parser.CountGroups(inner)); err != nil {
		return nil, err
	}
	return &Regexp{pattern: pattern}, nil
}

// MustCompile is like Compile but panics if pattern is malformed. Intended
// for compile-time-constant patterns.
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic(fmt.Sprintf("backgrep: MustCompile(%q): %v", pattern, err))
	}
	return re
}

// MatchString reports whether s contains a match for re anywhere (or, if
// re is anchored, at the required position), per spec.md §6's
// match_pattern contract.
func (re *Regexp) MatchString(s string) bool {
	ok, _ := matcher.HasMatch(s, re.pattern)
	return ok
}

// Match is the []byte counterpart of MatchString.
func (re *Regexp) Match(b []byte) bool {
	return re.MatchString(string(b))
}

// String returns the original pattern text.
func (re *Regexp) String() string {
	return re.pattern
}

// MatchString is a one-shot convenience wrapper around Compile and
// (*Regexp).MatchString for callers that don't need to reuse a compiled
// pattern across many inputs.
func MatchString(pattern, s string) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}
