package matcher

import (
	"testing"

	"github.com/ossarca/backgrep/internal/captures"
	"github.com/ossarca/backgrep/internal/parser"
)

func TestHasMatchScenarios(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{`\d\d\d`, "abc123xyz", true},
		{`^\d+$`, "12a3", false},
		{"a.c", "abc", true},
		{"[^xyz]+", "xxxyyy", false},
		{"(cat|dog)s?", "dogs", true},
		{`(a+)b\1`, "aaabaaa", true},
		{`(a+)b\1`, "aaabaa", false},
		{`((\w+)-(\w+)) \2 \3`, "foo-bar foo bar", true},
		{"a*", "", true},
		{"^hello$", "hello world", false},
	}
	for _, tt := range tests {
		got, err := HasMatch(tt.input, tt.pattern)
		if err != nil {
			t.Fatalf("HasMatch(%q, %q) unexpected error: %v", tt.input, tt.pattern, err)
		}
		if got != tt.want {
			t.Errorf("HasMatch(%q, %q) = %v, want %v", tt.input, tt.pattern, got, tt.want)
		}
	}
}

func TestAnchorEdgeCases(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"^$", "", true},
		{"^$", "x", false},
		{"^", "anything", true},
		{"^", "", true},
		{"$", "anything", true},
		{"$", "", true},
	}
	for _, tt := range tests {
		got, err := HasMatch(tt.input, tt.pattern)
		if err != nil {
			t.Fatalf("HasMatch(%q, %q) unexpected error: %v", tt.input, tt.pattern, err)
		}
		if got != tt.want {
			t.Errorf("HasMatch(%q, %q) = %v, want %v", tt.input, tt.pattern, got, tt.want)
		}
	}
}

func TestAnchorIdempotence(t *testing.T) {
	// for patterns p without anchors, "^"+p+"$" matches s iff p has a match
	// of p consuming exactly len(s) from offset 0.
	p := "a+b"
	s := "aaab"
	anchored, err := HasMatch(s, "^"+p+"$")
	if err != nil {
		t.Fatal(err)
	}
	if !anchored {
		t.Fatalf("expected ^%s$ to match %q", p, s)
	}
	direct := attemptFrom(s, p, parser.CountGroups(p), true, len(s))
	if direct != anchored {
		t.Fatalf("direct attempt = %v, anchored HasMatch = %v", direct, anchored)
	}
}

func TestQuantifierMonotonicity(t *testing.T) {
	p := "a+"
	s := "aaa"
	plusMatch, err := HasMatch(s, p)
	if err != nil {
		t.Fatal(err)
	}
	starMatch, err := HasMatch(s, "a*")
	if err != nil {
		t.Fatal(err)
	}
	if plusMatch && !starMatch {
		t.Fatal("a+ matched but a* did not")
	}
}

func TestAlternationCommutativity(t *testing.T) {
	for _, s := range []string{"a", "b", "c"} {
		ab, err := HasMatch(s, "(a|b)")
		if err != nil {
			t.Fatal(err)
		}
		ba, err := HasMatch(s, "(b|a)")
		if err != nil {
			t.Fatal(err)
		}
		if ab != ba {
			t.Errorf("(a|b) vs (b|a) disagree on %q", s)
		}
	}
}

func TestGreedyFirstCapture(t *testing.T) {
	// (a+)a on "aaaa" must capture group 1 as "aaa" (greedy-first).
	_, inner := StripAnchors("(a+)a")
	tbl := captures.NewTable(parser.CountGroups(inner))
	s := &state{tbl: tbl}

	var firstCapture string
	s.match("aaaa", inner, 1, func(length int) bool {
		if length == 4 {
			firstCapture, _ = tbl.Get(1)
			return false
		}
		return true
	})
	if firstCapture != "aaa" {
		t.Errorf("group 1 = %q, want \"aaa\"", firstCapture)
	}
}
