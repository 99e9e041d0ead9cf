// Package matcher implements the recursive backtracking matcher of
// spec.md §4.4 and the top-level driver of §4.5.
//
// Grounded on coregx-coregex's nfa/backtrack.go for the recursive-dispatch
// shape (a switch over the current construct's kind, one recursive call per
// branch, left-then-right ordering at choice points) and on
// original_source/main.py's match_inner for the exact enumeration order and
// quantifier semantics it implements via Python generators. Go has no
// generators, so enumeration is expressed as the accept-continuation
// callback style spec.md §9 names as one valid translation: match calls
// emit once per successful match length, in greedy-first order, and a
// caller returning false from emit stops the search immediately.
package matcher

import (
	"github.com/ossarca/backgrep/internal/ast"
	"github.com/ossarca/backgrep/internal/captures"
	"github.com/ossarca/backgrep/internal/parser"
	"github.com/ossarca/backgrep/internal/predicate"
)

// emitFunc receives one successful match length at a time, in greedy-first
// order, and reports whether the search should continue looking for more.
type emitFunc func(length int) (wantMore bool)

// state carries the one piece of mutable shared state for a single
// has_match invocation: the capture table (spec.md §5).
type state struct {
	tbl *captures.Table
}

// match enumerates match lengths for pattern against input, calling emit for
// each (spec.md §4.4's contract). nextGroup is the capture index the next
// group encountered in pattern would receive. Returns false as soon as emit
// returns false, so callers can propagate early termination up the stack
// without further exploring an already-satisfied search.
func (s *state) match(input, pattern string, nextGroup int, emit emitFunc) bool {
	if pattern == "" {
		return emit(0)
	}

	expr, err := parser.ParseExpr(pattern, nextGroup)
	if err != nil {
		// Validate rejects malformed patterns before matching begins; a
		// parse error here would be an internal inconsistency. Treat it as
		// "no match on this path" rather than panicking mid-search.
		return true
	}
	rest := pattern[expr.Consumed:]

	if expr.IsAtom() && expr.Atom.Kind == ast.Backref {
		return s.matchBackref(input, rest, nextGroup, *expr.Atom, emit)
	}
	if expr.IsAtom() {
		return s.matchAtom(input, rest, nextGroup, *expr.Atom, expr.Quant, emit)
	}
	return s.matchGroup(input, rest, expr.Group, expr.Quant, emit)
}

// matchAtom dispatches a single parsed atom plus its trailing quantifier
// (spec.md §4.4 "Atom dispatch").
func (s *state) matchAtom(input, rest string, nextGroup int, a ast.Atom, q ast.Quantifier, emit emitFunc) bool {
	pred := predicate.For(a)

	switch q {
	case ast.None:
		if len(input) == 0 || !pred(input[0]) {
			return true
		}
		return s.match(input[1:], rest, nextGroup, func(r int) bool {
			return emit(1 + r)
		})

	case ast.Question:
		if len(input) > 0 && pred(input[0]) {
			if !s.match(input[1:], rest, nextGroup, func(r int) bool {
				return emit(1 + r)
			}) {
				return false
			}
		}
		return s.match(input, rest, nextGroup, emit)

	case ast.Plus:
		if len(input) == 0 || !pred(input[0]) {
			return true
		}
		k := 1
		for k < len(input) && pred(input[k]) {
			k++
		}
		for rep := k; rep >= 1; rep-- {
			if !s.match(input[rep:], rest, nextGroup, func(r int) bool {
				return emit(rep + r)
			}) {
				return false
			}
		}
		return true

	case ast.Star:
		k := 0
		for k < len(input) && pred(input[k]) {
			k++
		}
		for rep := k; rep >= 0; rep-- {
			if !s.match(input[rep:], rest, nextGroup, func(r int) bool {
				return emit(rep + r)
			}) {
				return false
			}
		}
		return true
	}
	return true
}

// matchBackref dispatches a backreference (spec.md §4.4 "Backreference
// dispatch"). A backreference never carries a trailing quantifier.
func (s *state) matchBackref(input, rest string, nextGroup int, a ast.Atom, emit emitFunc) bool {
	captured, ok := s.tbl.Get(a.Ref)
	if !ok {
		return true
	}
	if len(input) < len(captured) || input[:len(captured)] != captured {
		return true
	}
	n := len(captured)
	return s.match(input[n:], rest, nextGroup, func(r int) bool {
		return emit(n + r)
	})
}

// matchGroup dispatches a parenthesised group plus its trailing quantifier
// (spec.md §4.4 "Group dispatch").
func (s *state) matchGroup(input, rest string, g *ast.Group, q ast.Quantifier, emit emitFunc) bool {
	// Per-alternative starting group index: capture indices are assigned by
	// left-to-right appearance of '(' across the *entire* group body (every
	// alternative's text), not restarted per alternative -- so a nested
	// group in the second alternative gets a higher index than one in the
	// first, even though only one alternative ever executes on a given
	// path. (original_source/main.py instead reuses the same starting index
	// for every alternative; DESIGN.md's internal/matcher section treats
	// spec.md §3's literal "left-to-right order ... in the full pattern" as
	// authoritative here.)
	altStart := make([]int, len(g.Alternatives))
	next := g.Index + 1
	for i, alt := range g.Alternatives {
		altStart[i] = next
		next += parser.CountGroups(alt)
	}
	afterGroup := next

	// matchOnce tries each alternative once against inp, snapshotting and
	// restoring captures around the whole attempt so that a failed or
	// abandoned alternative never leaks its partial captures into the next
	// one (spec.md §5).
	matchOnce := func(inp string, onceEmit emitFunc) bool {
		snap := s.tbl.Snapshot()
		for i, alt := range g.Alternatives {
			cont := s.match(inp, alt, altStart[i], func(m int) bool {
				s.tbl.Set(g.Index, inp[:m])
				return onceEmit(m)
			})
			if !cont {
				return false
			}
			s.tbl.Restore(snap)
		}
		return true
	}

	switch q {
	case ast.None:
		return matchOnce(input, func(m int) bool {
			return s.match(input[m:], rest, afterGroup, func(r int) bool {
				return emit(m + r)
			})
		})

	case ast.Question:
		if !matchOnce(input, func(m int) bool {
			return s.match(input[m:], rest, afterGroup, func(r int) bool {
				return emit(m + r)
			})
		}) {
			return false
		}
		// Zero-match branch: captures already restored by matchOnce.
		return s.match(input, rest, afterGroup, emit)

	case ast.Plus:
		return s.matchPlus(input, rest, afterGroup, matchOnce, emit)

	case ast.Star:
		// By analogy with '+' (spec.md §9 item 4): one-or-more repetitions,
		// plus an explicit zero-repetition branch.
		if !s.matchPlus(input, rest, afterGroup, matchOnce, emit) {
			return false
		}
		return s.match(input, rest, afterGroup, emit)
	}
	return true
}

// matchPlus enumerates one-or-more repetitions of a quantified group,
// greedy-first: each repetition may either continue for another repetition
// or stop, and "stop" is tried after "continue" so the longest repetition
// count is emitted first (spec.md §4.4's ordering guarantee). The group's
// capture slot is overwritten by each repetition; its final value on a
// given path is whatever the last committed repetition on that path wrote.
func (s *state) matchPlus(input, rest string, afterGroup int, matchOnce func(string, emitFunc) bool, emit emitFunc) bool {
	var repeat func(inp string, emitRep emitFunc) bool
	repeat = func(inp string, emitRep emitFunc) bool {
		return matchOnce(inp, func(m int) bool {
			if m > 0 {
				if !repeat(inp[m:], func(l int) bool {
					return emitRep(m + l)
				}) {
					return false
				}
			}
			// Termination branch: stop repeating after this one. A
			// zero-length match can never usefully repeat further, so it
			// only contributes its own (zero) length here.
			return emitRep(m)
		})
	}
	return repeat(input, func(total int) bool {
		return s.match(input[total:], rest, afterGroup, func(r int) bool {
			return emit(total + r)
		})
	})
}
