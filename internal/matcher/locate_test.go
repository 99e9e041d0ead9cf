package matcher

import "testing"

func TestLocateMatch(t *testing.T) {
	input := "the cat sat"
	match, groups, ok := LocateMatch(input, "(cat|dog)")
	if !ok {
		t.Fatal("expected a match")
	}
	if input[match.Start:match.End] != "cat" {
		t.Errorf("match span = %q, want %q", input[match.Start:match.End], "cat")
	}
	sp, found := groups[1]
	if !found {
		t.Fatal("expected group 1 to be captured")
	}
	if input[sp.Start:sp.End] != "cat" {
		t.Errorf("group 1 span = %q, want %q", input[sp.Start:sp.End], "cat")
	}
}

func TestLocateMatchNoMatch(t *testing.T) {
	_, _, ok := LocateMatch("no digits here", `\d+`)
	if ok {
		t.Fatal("expected no match")
	}
}

func TestLocateMatchAnchored(t *testing.T) {
	match, _, ok := LocateMatch("hello world", "^hello")
	if !ok || match.Start != 0 || match.End != 5 {
		t.Errorf("got %+v, %v, want span [0,5)", match, ok)
	}
}
