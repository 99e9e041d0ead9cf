// Package style renders matched lines for a terminal: highlighting the
// overall match and each capture group in a distinct color when output is
// a tty, falling back to plain text otherwise (SPEC_FULL.md §6's --color
// option).
//
// Grounded on 0x4D5352-regolith's internal/renderer/styles.go, which picks
// one fixed color per subexpression depth (its SubexpColors palette) for
// an SVG rendering of a regex's structure; this package solves the same
// "give nested/sibling subexpressions visually distinct colors" problem
// for terminal text instead of SVG, generating the palette with
// go-colorful's perceptually uniform HCL space rather than hand-picking
// hex strings, since a terminal match can have an unbounded number of
// capture groups where regolith's diagram only ever needed a handful.
package style

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/rivo/uniseg"
	"golang.org/x/sys/unix"
)

// Span is one highlighted region of a line: either the whole match (Group
// == 0) or one capture group (Group == its 1-based index).
type Span struct {
	Group      int
	Start, End int // byte offsets into the line, End exclusive
}

// Highlighter renders matched lines with per-group coloring when attached
// to a terminal, and renders plain text otherwise.
type Highlighter struct {
	enabled bool
	profile termenv.Profile
	out     io.Writer
}

// New returns a Highlighter for out. Color is auto-enabled when out is a
// terminal (via go-isatty) and forced off otherwise, matching the
// --color=auto default most grep implementations use; forceColor
// overrides the tty check, for --color=always.
func New(out io.Writer, forceColor bool) *Highlighter {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Highlighter{
		enabled: forceColor || isTTY,
		profile: termenv.EnvColorProfile(),
		out:     out,
	}
}

// groupColor returns a perceptually distinct color for capture-group
// index g (0 for the whole match), by rotating hue around an HCL wheel.
// Unlike regolith's fixed 5-entry SubexpColors slice, this never runs out
// of colors: index 0 is always white-ish (used for the overall match
// highlight), and every index past it gets its own hue.
func groupColor(g int) colorful.Color {
	if g == 0 {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	const goldenAngle = 137.50776405003785
	hue := float64(g-1) * goldenAngle
	hue = math.Mod(hue, 360)
	return colorful.Hcl(hue, 0.6, 0.75).Clamped()
}

// Render writes line to the Highlighter's output, coloring each span per
// groupColor when enabled, and writing line unmodified otherwise. Render
// sorts spans by start offset; where spans overlap (nested capture groups),
// the bytes an earlier span already wrote are not written again, so every
// byte of line is printed exactly once.
func (h *Highlighter) Render(line string, spans []Span) {
	if !h.enabled || len(spans) == 0 {
		fmt.Fprintln(h.out, line)
		return
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	var b strings.Builder
	pos := 0
	for _, sp := range spans {
		if sp.Start < pos {
			sp.Start = pos
		}
		if sp.End <= sp.Start {
			continue
		}
		if sp.Start > pos {
			b.WriteString(line[pos:sp.Start])
		}
		c := groupColor(sp.Group)
		styled := termenv.String(line[sp.Start:sp.End]).
			Foreground(h.profile.Color(c.Hex())).
			Bold()
		b.WriteString(styled.String())
		pos = sp.End
	}
	if pos < len(line) {
		b.WriteString(line[pos:])
	}
	fmt.Fprintln(h.out, b.String())
}

// truncateOffset scans s's grapheme clusters and returns the byte offset of
// the first width clusters, plus whether s had more clusters past that
// point. Shared by Truncate (which only needs the trimmed text) and
// TruncateLine (which also has to clamp span offsets against the cut).
func truncateOffset(s string, width int) (cut int, truncated bool) {
	gr := uniseg.NewGraphemes(s)
	n, end := 0, 0
	for gr.Next() {
		if n == width {
			return end, true
		}
		_, to := gr.Positions()
		end = to
		n++
	}
	return end, false
}

// Truncate shortens s to at most width printable grapheme clusters
// (uniseg-aware, so multi-byte/combining characters are never split
// mid-cluster), appending an ellipsis if anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	cut, truncated := truncateOffset(s, width)
	if !truncated {
		return s[:cut]
	}
	return s[:cut] + "…"
}

// TruncateLine truncates line to width printable grapheme clusters like
// Truncate, and clamps spans to the kept text so a highlighted match or
// capture group never points past what's actually printed: a span wholly
// in the truncated tail is dropped, one straddling the cut is shortened.
// Used by internal/search's emit to keep long matched lines within the
// real terminal width before handing them to a Highlighter.
func TruncateLine(line string, width int, spans []Span) (string, []Span) {
	if width <= 0 {
		return line, spans
	}
	cut, truncated := truncateOffset(line, width)
	if !truncated {
		return line, spans
	}
	kept := make([]Span, 0, len(spans))
	for _, sp := range spans {
		if sp.Start >= cut {
			continue
		}
		if sp.End > cut {
			sp.End = cut
		}
		kept = append(kept, sp)
	}
	return line[:cut] + "…", kept
}

// TerminalWidth reports the current terminal width in columns, via an
// ioctl on fd, or ok=false if fd is not a terminal or the ioctl fails
// (piped output, a non-Unix environment, etc).
func TerminalWidth(fd uintptr) (width int, ok bool) {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil {
		return 0, false
	}
	return int(ws.Col), true
}

// CopyToClipboard sends s to the terminal clipboard via an OSC 52 escape
// sequence, for the --copy flag (SPEC_FULL.md §6). This works over SSH and
// through most modern terminal emulators without any clipboard daemon on
// the remote end.
func CopyToClipboard(out io.Writer, s string) error {
	seq := osc52.New(s)
	_, err := seq.WriteTo(out)
	return err
}
