package parser

import (
	"errors"
	"testing"

	"github.com/ossarca/backgrep/internal/ast"
)

func TestCountGroups(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"abc", 0},
		{"(a)(b)", 2},
		{`\(a\)`, 0},
		{"((a)(b(c)))", 4},
	}
	for _, tt := range tests {
		if got := CountGroups(tt.pattern); got != tt.want {
			t.Errorf("CountGroups(%q) = %d, want %d", tt.pattern, got, tt.want)
		}
	}
}

func TestParseAtom(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		wantKind   ast.AtomKind
		wantLen    int
		wantErr    error
	}{
		{"literal", "abc", ast.Literal, 1, nil},
		{"wildcard", ".bc", ast.Wildcard, 1, nil},
		{"digit escape", `\dbc`, ast.EscapeDigit, 2, nil},
		{"word escape", `\wbc`, ast.EscapeWord, 2, nil},
		{"literal escape", `\.bc`, ast.Literal, 2, nil},
		{"backref", `\1bc`, ast.Backref, 2, nil},
		{"class", "[a-z]bc", ast.CharClass, 5, nil},
		{"negated class", "[^a-z]bc", ast.CharClass, 6, nil},
		{"unterminated escape", `\`, 0, 0, ErrUnterminatedEscape},
		{"unterminated class", "[abc", 0, 0, ErrUnterminatedClass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, n, err := ParseAtom(tt.pattern)
			if tt.wantErr != nil {
				var se *SyntaxError
				if !errors.As(err, &se) || !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseAtom(%q) error = %v, want %v", tt.pattern, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAtom(%q) unexpected error: %v", tt.pattern, err)
			}
			if a.Kind != tt.wantKind || n != tt.wantLen {
				t.Errorf("ParseAtom(%q) = (%v, %d), want (%v, %d)", tt.pattern, a.Kind, n, tt.wantKind, tt.wantLen)
			}
		})
	}
}

func TestParseExprGroup(t *testing.T) {
	expr, err := ParseExpr("(cat|dog)s?", 1)
	if err != nil {
		t.Fatalf("ParseExpr error: %v", err)
	}
	if expr.IsAtom() {
		t.Fatal("expected group, got atom")
	}
	if expr.Group.Index != 1 {
		t.Errorf("Group.Index = %d, want 1", expr.Group.Index)
	}
	want := []string{"cat", "dog"}
	if len(expr.Group.Alternatives) != len(want) {
		t.Fatalf("Alternatives = %v, want %v", expr.Group.Alternatives, want)
	}
	for i := range want {
		if expr.Group.Alternatives[i] != want[i] {
			t.Errorf("Alternatives[%d] = %q, want %q", i, expr.Group.Alternatives[i], want[i])
		}
	}
	if expr.Consumed != len("(cat|dog)") {
		t.Errorf("Consumed = %d, want %d", expr.Consumed, len("(cat|dog)"))
	}
}

func TestParseExprEscapedParens(t *testing.T) {
	// "\(" and "\)" must not perturb paren depth (SPEC_FULL.md §9 item 2).
	expr, err := ParseExpr(`(a\(b)`, 1)
	if err != nil {
		t.Fatalf("ParseExpr error: %v", err)
	}
	if expr.IsAtom() {
		t.Fatal("expected group")
	}
	if got, want := expr.Group.Alternatives[0], `a\(b`; got != want {
		t.Errorf("alternative = %q, want %q", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		pattern string
		groups  int
		wantErr bool
	}{
		{`\d\d\d`, 0, false},
		{`(a+)b\1`, 1, false},
		{`(a+)b\2`, 1, true},
		{`(`, 0, true},
		{`[abc`, 0, true},
		{`\`, 0, true},
	}
	for _, tt := range tests {
		err := Validate(tt.pattern, tt.groups)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%q, %d) error = %v, wantErr %v", tt.pattern, tt.groups, err, tt.wantErr)
		}
	}
}
