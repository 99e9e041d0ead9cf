package matcher

import (
	"github.com/ossarca/backgrep/internal/captures"
	"github.com/ossarca/backgrep/internal/parser"
)

// Anchors holds the start/end anchor flags derived from a pattern's
// extremes (spec.md §3, §4.5).
type Anchors struct {
	Start bool
	End   bool
}

// StripAnchors recognizes '^' and '$' only at the pattern's extremes
// (spec.md §1, §4.5) and returns the anchor flags plus the inner pattern.
// The edge cases of SPEC_FULL.md §9 item 3 fall out of this directly:
//   - "^$"  -> Start=true, End=true, inner=""  (matches only empty input)
//   - "^"   -> Start=true, End=false, inner="" (matches any input at offset 0)
//   - "$"   -> Start=false, End=true, inner=""
func StripAnchors(pattern string) (Anchors, string) {
	var a Anchors
	inner := pattern
	if len(inner) > 0 && inner[0] == '^' {
		a.Start = true
		inner = inner[1:]
	}
	if len(inner) > 0 && inner[len(inner)-1] == '$' {
		a.End = true
		inner = inner[:len(inner)-1]
	}
	return a, inner
}

// HasMatch implements spec.md §4.5's has_match: it computes anchor flags,
// allocates a fresh capture table sized to the pattern's group count, and
// searches input for a match of pattern.
//
// Unlike original_source/main.py, which shares one capture table across
// every starting offset it tries, this allocates a fresh table per starting
// offset (SPEC_FULL.md §9 item 5): no more expensive, and it removes any
// possibility of a stale capture leaking into an unrelated offset's
// backreferences.
func HasMatch(input, pattern string) (bool, error) {
	anchors, inner := StripAnchors(pattern)
	totalGroups := parser.CountGroups(inner)
	if err := parser.Validate(inner, totalGroups); err != nil {
		return false, err
	}

	if anchors.Start {
		return attemptFrom(input, inner, totalGroups, anchors.End, len(input)), nil
	}

	for i := 0; i <= len(input); i++ {
		if attemptFrom(input[i:], inner, totalGroups, anchors.End, len(input)-i) {
			return true, nil
		}
	}
	return false, nil
}

// attemptFrom runs the matcher once against input (already sliced to the
// candidate starting offset) and reports whether it produced an accepting
// match: any match at all when not end-anchored, or a match whose length
// equals wantLen when it is.
func attemptFrom(input, inner string, totalGroups int, endAnchored bool, wantLen int) bool {
	s := &state{tbl: captures.NewTable(totalGroups)}
	found := false
	s.match(input, inner, 1, func(length int) bool {
		if endAnchored {
			if length == wantLen {
				found = true
				return false
			}
			return true // keep looking for one of the right length
		}
		found = true
		return false
	})
	return found
}
