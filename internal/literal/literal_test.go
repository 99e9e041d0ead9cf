package literal

import "testing"

func TestExtractRuns(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{"abc", []string{"abc"}},
		{"a.c", []string{"a", "c"}},
		{"a*bc", []string{"bc"}},
		{"ab?c", []string{"a", "c"}},
		{"a+bc", []string{"abc"}},
		{`\d\d\d`, nil},
		{"(cat|dog)s", []string{"s"}},
		{"hello(world)", []string{"hello"}},
	}
	for _, tt := range tests {
		got := ExtractRuns(tt.pattern)
		if len(got) != len(tt.want) {
			t.Errorf("ExtractRuns(%q) = %v, want %v", tt.pattern, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ExtractRuns(%q)[%d] = %q, want %q", tt.pattern, i, got[i], tt.want[i])
			}
		}
	}
}

func TestBuildAndAccept(t *testing.T) {
	pf, err := Build("hello world")
	if err != nil {
		t.Fatal(err)
	}
	if pf == nil {
		t.Fatal("expected non-nil prefilter for a pure-literal pattern")
	}
	if !pf.Accept("say hello world now") {
		t.Error("expected Accept to be true for a line containing the required literal")
	}
	if pf.Accept("no match here") {
		t.Error("expected Accept to be false for a line missing the required literal")
	}
}

func TestBuildStripsAnchors(t *testing.T) {
	pf, err := Build("^anchored$")
	if err != nil {
		t.Fatal(err)
	}
	if pf == nil {
		t.Fatal("expected non-nil prefilter")
	}
	if !pf.Accept("this line is anchored, sort of") {
		t.Error("expected Accept to match on the literal run alone, without the anchor characters")
	}
}

func TestBuildNoExtractableLiteral(t *testing.T) {
	pf, err := Build(`\d+`)
	if err != nil {
		t.Fatal(err)
	}
	if pf != nil {
		t.Fatal("expected nil prefilter when no literal run can be extracted")
	}
	if !pf.Accept("anything at all") {
		t.Error("nil prefilter must accept unconditionally")
	}
}

func TestNilPrefilterAccept(t *testing.T) {
	var pf *Prefilter
	if !pf.Accept("x") {
		t.Error("nil *Prefilter.Accept must report true")
	}
}
