package matcher

import (
	"strings"

	"github.com/ossarca/backgrep/internal/captures"
	"github.com/ossarca/backgrep/internal/parser"
)

// Span is a byte-offset range within an input line, End exclusive.
type Span struct {
	Start, End int
}

// LocateMatch finds the same match HasMatch would report, and additionally
// returns the overall match's span plus one span per capture group that
// participated in that match, for display purposes (cmd/backgrep's
// --color highlighting). It is not part of the matcher's core contract --
// spec.md §4.5 defines only the boolean has_match -- so it re-derives
// positions after the fact rather than threading offsets through match
// itself: it locates each captured group's string value within the
// overall match span via the first occurrence found left to right. When a
// capture's text repeats within the match (e.g. "a(a)" matching "aa", whose
// group 1 consumed offset 1 but is reported at offset 0), this can report
// an earlier occurrence than the one the matcher actually consumed; for
// highlighting purposes that is an
// acceptable approximation, since it still always highlights a correct
// occurrence of the captured text.
func LocateMatch(input, pattern string) (match Span, groups map[int]Span, ok bool) {
	anchors, inner := StripAnchors(pattern)
	totalGroups := parser.CountGroups(inner)

	tryFrom := func(start int) (Span, map[int]Span, bool) {
		tbl := captures.NewTable(totalGroups)
		s := &state{tbl: tbl}
		found := false
		var matchLen int
		s.match(input[start:], inner, 1, func(length int) bool {
			if anchors.End && length != len(input)-start {
				return true
			}
			found = true
			matchLen = length
			return false
		})
		if !found {
			return Span{}, nil, false
		}
		m := Span{Start: start, End: start + matchLen}
		g := map[int]Span{}
		for idx := 1; idx <= totalGroups; idx++ {
			val, set := tbl.Get(idx)
			if !set {
				continue
			}
			if off := strings.Index(input[m.Start:m.End], val); off >= 0 {
				g[idx] = Span{Start: m.Start + off, End: m.Start + off + len(val)}
			}
		}
		return m, g, true
	}

	if anchors.Start {
		m, g, found := tryFrom(0)
		return m, g, found
	}
	for i := 0; i <= len(input); i++ {
		if m, g, found := tryFrom(i); found {
			return m, g, true
		}
	}
	return Span{}, nil, false
}
