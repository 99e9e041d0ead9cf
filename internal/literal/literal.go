// Package literal extracts required literal substrings from a pattern and
// builds an Aho-Corasick prefilter over them (SPEC_FULL.md §4.6).
//
// The prefilter is a pure optimization: it never changes whether a pattern
// matches, only whether the backtracking matcher is worth invoking at all.
// A candidate line that the prefilter rejects cannot possibly satisfy the
// pattern, because every extracted run is required literal text that any
// match must contain verbatim; a candidate the prefilter accepts still goes
// through the real matcher, which may yet reject it.
package literal

import (
	"github.com/coregx/ahocorasick"

	"github.com/ossarca/backgrep/internal/ast"
	"github.com/ossarca/backgrep/internal/matcher"
	"github.com/ossarca/backgrep/internal/parser"
)

// Prefilter wraps an Aho-Corasick automaton over a pattern's required
// literal runs. A nil *Prefilter (returned when no run could be extracted)
// means "always attempt the matcher": the zero value's Accept reports true
// for anything.
type Prefilter struct {
	auto *ahocorasick.Automaton
}

// Build extracts required literal runs from pattern and compiles them into
// a Prefilter. It returns a nil *Prefilter, not an error, for patterns with
// no extractable literal (e.g. "a*", "\d+", "(cat|dog)"): such patterns
// always fall through to the matcher directly.
func Build(pattern string) (*Prefilter, error) {
	_, inner := matcher.StripAnchors(pattern)
	runs := ExtractRuns(inner)
	if len(runs) == 0 {
		return nil, nil
	}

	builder := ahocorasick.NewBuilder()
	for _, r := range runs {
		builder.AddPattern([]byte(r))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &Prefilter{auto: auto}, nil
}

// Accept reports whether line could possibly satisfy the pattern this
// Prefilter was built from. false is a definitive rejection; true means
// "ask the matcher".
func (p *Prefilter) Accept(line string) bool {
	if p == nil || p.auto == nil {
		return true
	}
	return p.auto.IsMatch([]byte(line))
}

// ExtractRuns walks pattern's top-level atom sequence and returns the
// maximal required literal runs: a run breaks at any atom that is not an
// ast.Literal, and at '?'/'*' quantified atoms since those may be absent
// from a match entirely (SPEC_FULL.md §4.6). A '+'-quantified literal ends
// the run it extends and also starts the next one, since only its first
// repetition is known to follow the text before it and only its last
// repetition is known to precede the text after it. Runs shorter than
// one byte are never returned; Aho-Corasick over an empty pattern would
// match everything and defeat the prefilter's purpose.
//
// Only the top-level sequence is examined -- a literal run inside a group
// is not required text of the overall pattern unless the group itself is
// required, and working that out in general needs more than this
// single-pass extractor. Treating every group as opaque (never descending
// into one) is conservative: it may extract fewer runs than a deeper
// analysis would, but it never extracts a run that isn't actually
// required, which is the property Accept's contract depends on.
func ExtractRuns(pattern string) []string {
	var runs []string
	var current []byte
	flush := func() {
		if len(current) > 0 {
			runs = append(runs, string(current))
			current = nil
		}
	}

	nextGroup := 1
	for pattern != "" {
		expr, err := parser.ParseExpr(pattern, nextGroup)
		if err != nil {
			// Malformed pattern: Validate (called before any search begins)
			// will reject it. Extraction just gives up on what it has so far.
			flush()
			return runs
		}
		pattern = pattern[expr.Consumed:]

		if !expr.IsAtom() {
			flush()
			nextGroup = groupEndIndex(expr.Group, nextGroup)
			continue
		}
		if expr.Atom.Kind != ast.Literal || expr.Quant == ast.Question || expr.Quant == ast.Star {
			flush()
			continue
		}
		// A '+'-quantified literal still guarantees at least one occurrence
		// of the byte, but more may follow, so it closes a non-empty run
		// (e.g. "ab" for "ab+c") and then opens the next one ("bc").
		if expr.Quant == ast.Plus && len(current) > 0 {
			current = append(current, expr.Atom.Ch)
			flush()
		}
		current = append(current, expr.Atom.Ch)
	}
	flush()
	return runs
}

// groupEndIndex mirrors the capture-index accumulation matcher.matchGroup
// performs, so that ExtractRuns assigns nextGroup values consistent with
// the real matcher when parsing atoms that follow a group.
func groupEndIndex(g *ast.Group, nextGroup int) int {
	next := g.Index + 1
	for _, alt := range g.Alternatives {
		next += parser.CountGroups(alt)
	}
	return next
}
