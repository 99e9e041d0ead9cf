// Package predicate builds character predicates from parsed atoms
// (spec.md §4.3). Grounded on coregx-coregex's nfa/charclass_searcher.go:
// character classes are interpreted as an interleaved sequence of single
// characters and two-character ranges, scanned left to right.
package predicate

import "github.com/ossarca/backgrep/internal/ast"

// Func is a predicate over a single input byte.
type Func func(c byte) bool

// IsDigit reports whether c is an ASCII digit.
func IsDigit(c byte) bool { return c >= '0' && c <= '9' }

// IsWord reports whether c is a letter, digit, or underscore.
func IsWord(c byte) bool {
	return IsDigit(c) ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		c == '_'
}

// For builds the predicate for a non-group, non-backreference atom.
func For(a ast.Atom) Func {
	switch a.Kind {
	case ast.Literal:
		ch := a.Ch
		return func(c byte) bool { return c == ch }
	case ast.Wildcard:
		return func(c byte) bool { return true }
	case ast.EscapeDigit:
		return IsDigit
	case ast.EscapeWord:
		return IsWord
	case ast.CharClass:
		return charClass(a.ClassBody, a.Negated)
	default:
		// Backref has no per-character predicate; callers must not reach
		// here for it (internal/matcher dispatches Backref separately).
		return func(c byte) bool { return false }
	}
}

// charClass interprets body left to right: a run "x-y" with both
// neighbouring bytes present is an inclusive range, otherwise each byte is a
// single-character alternative. Ranges are compared by byte value.
func charClass(body string, negated bool) Func {
	return func(c byte) bool {
		matched := false
		for i := 0; i < len(body); {
			if i+2 < len(body) && body[i+1] == '-' {
				lo, hi := body[i], body[i+2]
				if c >= lo && c <= hi {
					matched = true
					break
				}
				i += 3
				continue
			}
			if body[i] == c {
				matched = true
				break
			}
			i++
		}
		if negated {
			return !matched
		}
		return matched
	}
}
