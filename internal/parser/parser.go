// Package parser implements the pattern lexer / atom parser and group
// structure analyser of SPEC_FULL.md §4.1-§4.2. Parsing is interleaved with
// matching: ParseExpr consumes exactly one expression (an atom or a group)
// from the front of a pattern suffix and reports how many pattern bytes it
// consumed, mirroring the teacher's on-demand, no-precompiled-tree approach
// (coregx-coregex parses and compiles upfront because it targets a DFA; we
// never compile, per spec.md's Non-goals, so there is nothing to precompute
// beyond validation).
package parser

import (
	"github.com/ossarca/backgrep/internal/ast"
)

// CountGroups counts the capturing groups in pattern: every '(' not
// immediately preceded by an unpaired '\' (spec.md §3's invariant).
// Grounded on original_source/main.py's _count_capture_groups.
func CountGroups(pattern string) int {
	count := 0
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++ // skip the escaped character, if any
		case '(':
			count++
		}
	}
	return count
}

// ParseAtom parses exactly one atom from the front of pattern (spec.md
// §4.1). pattern must be non-empty and must not start with '('; callers
// route group parsing through ParseExpr.
func ParseAtom(pattern string) (ast.Atom, int, error) {
	switch pattern[0] {
	case '\\':
		if len(pattern) < 2 {
			return ast.Atom{}, 0, &SyntaxError{Pattern: pattern, Pos: 0, Err: ErrUnterminatedEscape}
		}
		esc := pattern[1]
		switch {
		case esc >= '1' && esc <= '9':
			return ast.Atom{Kind: ast.Backref, Ref: int(esc - '0')}, 2, nil
		case esc == 'd':
			return ast.Atom{Kind: ast.EscapeDigit}, 2, nil
		case esc == 'w':
			return ast.Atom{Kind: ast.EscapeWord}, 2, nil
		default:
			return ast.Atom{Kind: ast.Literal, Ch: esc}, 2, nil
		}

	case '[':
		i := 1
		negated := false
		if i < len(pattern) && pattern[i] == '^' {
			negated = true
			i++
		}
		start := i
		for i < len(pattern) && pattern[i] != ']' {
			i++
		}
		if i >= len(pattern) {
			return ast.Atom{}, 0, &SyntaxError{Pattern: pattern, Pos: 0, Err: ErrUnterminatedClass}
		}
		return ast.Atom{Kind: ast.CharClass, ClassBody: pattern[start:i], Negated: negated}, i + 1, nil

	case '.':
		return ast.Atom{Kind: ast.Wildcard}, 1, nil

	default:
		return ast.Atom{Kind: ast.Literal, Ch: pattern[0]}, 1, nil
	}
}

// findMatchingParen returns the index (relative to pattern, where pattern[0]
// == '(') of the ')' that closes the group opened at position 0. Escaped
// parens are skipped (SPEC_FULL.md §9 item 2), unlike the unescaped depth
// counter in original_source/main.py.
func findMatchingParen(pattern string) (int, error) {
	depth := 1
	for i := 1; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++ // the escaped character never affects depth
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, &SyntaxError{Pattern: pattern, Pos: 0, Err: ErrUnterminatedGroup}
}

// splitAlternatives splits a group body into top-level alternatives on '|',
// ignoring '|' inside nested groups and escaped characters. Always returns
// at least one (possibly empty) alternative.
func splitAlternatives(body string) []string {
	var alts []string
	depth := 0
	start := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
		case '|':
			if depth == 0 {
				alts = append(alts, body[start:i])
				start = i + 1
			}
		}
	}
	return append(alts, body[start:])
}

// ParseExpr parses the next expression (an atom or a parenthesised group)
// from the front of pattern, plus a trailing quantifier character if one
// immediately follows. nextGroupIndex is the capture index this expression
// would receive if it is a group (spec.md §4.4's "next unused index, in
// appearance order"); it is threaded through recursion by the caller rather
// than precomputed, exactly as original_source/main.py's group_counter is,
// so that repeated matches of a quantified group reuse the same index
// instead of incrementing per repetition.
func ParseExpr(pattern string, nextGroupIndex int) (*ast.Expr, error) {
	expr := &ast.Expr{}
	var baseLen int

	if pattern[0] == '(' {
		end, err := findMatchingParen(pattern)
		if err != nil {
			return nil, err
		}
		expr.Group = &ast.Group{
			Index:        nextGroupIndex,
			Alternatives: splitAlternatives(pattern[1:end]),
		}
		baseLen = end + 1
	} else {
		a, n, err := ParseAtom(pattern)
		if err != nil {
			return nil, err
		}
		expr.Atom = &a
		baseLen = n
	}

	expr.Quant = ast.None
	if baseLen < len(pattern) {
		switch pattern[baseLen] {
		case '?':
			expr.Quant = ast.Question
			baseLen++
		case '*':
			expr.Quant = ast.Star
			baseLen++
		case '+':
			expr.Quant = ast.Plus
			baseLen++
		}
	}
	expr.Consumed = baseLen
	return expr, nil
}

// Validate performs a structural dry-parse of pattern (the anchor-stripped
// inner pattern, per spec.md §4.5) without any input. It walks every atom,
// group, and alternative exactly as matching would, surfacing malformed-
// pattern errors (spec.md §7) and out-of-range backreferences
// (SPEC_FULL.md §9 item 1, checked against totalGroups) at compile time
// rather than at first match.
func Validate(pattern string, totalGroups int) error {
	return validate(pattern, 0, totalGroups)
}

func validate(pattern string, nextGroupIndex, totalGroups int) error {
	if pattern == "" {
		return nil
	}

	expr, err := ParseExpr(pattern, nextGroupIndex)
	if err != nil {
		return err
	}
	rest := pattern[expr.Consumed:]

	if expr.IsAtom() {
		if expr.Atom.Kind == ast.Backref && expr.Atom.Ref > totalGroups {
			return &SyntaxError{Pattern: pattern, Pos: 0, Err: ErrBackrefOutOfRange}
		}
		return validate(rest, nextGroupIndex, totalGroups)
	}

	next := nextGroupIndex + 1
	for _, alt := range expr.Group.Alternatives {
		if err := validate(alt, next, totalGroups); err != nil {
			return err
		}
	}
	return validate(rest, next, totalGroups)
}
