// Package search implements the grep-like line search described in
// SPEC_FULL.md §6: reading from stdin, one or more files, or a directory
// tree, testing each line against a compiled pattern, and reporting
// matches with the filename prefixing rules grep users expect.
//
// The functional-options constructor shape (an Options type built up by a
// variadic list of With* funcs) is grounded on the other_examples grep
// package's Option/WithRegexps design; the file-discovery and prefixing
// rules themselves are grounded on original_source/main.py's Main.run,
// Main.recursive_find_files, and Main.read_input, which this package
// reimplements using filepath.WalkDir rather than a hand-rolled recursive
// os.listdir walk.
package search

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ossarca/backgrep/internal/literal"
	"github.com/ossarca/backgrep/internal/matcher"
	"github.com/ossarca/backgrep/internal/parser"
	"github.com/ossarca/backgrep/internal/style"
)

// Option configures a Runner.
type Option func(*Runner)

// WithPattern sets the regular expression to search for. Required.
func WithPattern(pattern string) Option {
	return func(r *Runner) {
		r.pattern = pattern
	}
}

// WithPaths sets the files (or, with WithRecursive, the single directory)
// to search. If unset, Run reads a single line from stdin instead.
func WithPaths(paths ...string) Option {
	return func(r *Runner) {
		r.paths = append(r.paths, paths...)
	}
}

// WithRecursive walks the single path given to WithPaths as a directory
// tree, searching every regular file found beneath it (spec.md §6's -r
// mode). It is an error to combine this with more than one path.
func WithRecursive() Option {
	return func(r *Runner) {
		r.recursive = true
	}
}

// WithOutput redirects matched-line output away from os.Stdout. Mainly
// useful for tests.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithHighlighter enables --color output: each capture group that took
// part in the match is rendered in its own color via h (or, when none did,
// the overall match is), instead of the plain text Run otherwise writes.
func WithHighlighter(h *style.Highlighter) Option {
	return func(r *Runner) {
		r.highlighter = h
	}
}

// Match is one matched line, already associated with the path it came
// from (empty for stdin input).
type Match struct {
	Path string
	Line string
}

// Runner holds the configuration built up by Option values and executes a
// single search.
type Runner struct {
	pattern     string
	paths       []string
	recursive   bool
	out         io.Writer
	highlighter *style.Highlighter
}

// New builds a Runner from opts. It does not itself validate the pattern;
// that happens on Run, where a malformed pattern is reported the same way
// an I/O error would be.
func New(opts ...Option) *Runner {
	r := &Runner{out: os.Stdout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the search and returns every matched line plus whether any
// match was found, mirroring spec.md §6's exit-code contract (callers
// translate found into exit code 0 or 1). A non-nil error here is always
// a pattern compile error or an unrecoverable top-level I/O error (e.g.
// the -r target not being a directory). A file that cannot be opened is
// reported on stderr and skipped; a read error partway through a file ends
// that file's scan without being reported.
func (r *Runner) Run() (matches []Match, found bool, err error) {
	if err := parser.Validate(stripAnchorsOnly(r.pattern), parser.CountGroups(stripAnchorsOnly(r.pattern))); err != nil {
		return nil, false, err
	}
	pf, err := literal.Build(r.pattern)
	if err != nil {
		return nil, false, err
	}

	check := func(line string) bool {
		if !pf.Accept(line) {
			return false
		}
		ok, _ := matcher.HasMatch(line, r.pattern)
		return ok
	}

	switch {
	case r.recursive:
		return r.runRecursive(check)
	case len(r.paths) > 0:
		return r.runFiles(check)
	default:
		return r.runStdin(check)
	}
}

func stripAnchorsOnly(pattern string) string {
	_, inner := matcher.StripAnchors(pattern)
	return inner
}

func (r *Runner) runStdin(check func(string) bool) ([]Match, bool, error) {
	line, err := readSingleLine(os.Stdin)
	if err != nil {
		return nil, false, err
	}
	if !check(line) {
		return nil, false, nil
	}
	// Stdin mode reports only the verdict via the caller's exit code
	// (original_source/main.py's legacy single-line mode); it never prints
	// the line itself.
	return []Match{{Line: line}}, true, nil
}

// readSingleLine reads all of r and trims one trailing newline, matching
// original_source/main.py's read_input (stdin mode is single-line, not a
// line-by-line scan).
func readSingleLine(rd io.Reader) (string, error) {
	b, err := io.ReadAll(rd)
	if err != nil {
		return "", err
	}
	s := string(b)
	if len(s) > 0 && s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	return s, nil
}

func (r *Runner) runFiles(check func(string) bool) ([]Match, bool, error) {
	multi := len(r.paths) > 1
	var matches []Match
	found := false
	for _, path := range r.paths {
		f, err := os.Open(path)
		if err != nil {
			// Skip unreadable files and keep going (original_source/main.py
			// only does this in recursive mode, but SPEC_FULL.md §7 extends
			// the same skip-and-continue behavior to explicit multi-file
			// mode, since a single bad path shouldn't abort the whole scan),
			// logging the skip to stderr per SPEC_FULL.md §7.
			fmt.Fprintf(os.Stderr, "backgrep: %s: %v\n", path, err)
			continue
		}
		r.scanFile(f, path, multi, check, &matches, &found)
		f.Close()
	}
	return matches, found, nil
}

func (r *Runner) runRecursive(check func(string) bool) ([]Match, bool, error) {
	if len(r.paths) != 1 {
		return nil, false, fmt.Errorf("search: recursive mode requires exactly one directory argument")
	}
	root := r.paths[0]
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, false, fmt.Errorf("search: %s is not a directory", root)
	}

	// relBase mirrors original_source/main.py's choice to report paths
	// relative to the parent of the target directory, so the directory's
	// own name appears as the leading path component.
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, false, err
	}
	relBase := filepath.Dir(absRoot)

	var matches []Match
	found := false
	walkErr := filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Unreadable directory entry: log and keep walking.
			fmt.Fprintf(os.Stderr, "backgrep: %s: %v\n", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		f, openErr := os.Open(path)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "backgrep: %s: %v\n", path, openErr)
			return nil
		}
		defer f.Close()
		rel, relErr := filepath.Rel(relBase, path)
		if relErr != nil {
			rel = path
		}
		r.scanFile(f, rel, true, check, &matches, &found)
		return nil
	})
	if walkErr != nil {
		return matches, found, walkErr
	}
	return matches, found, nil
}

// scanFile reads f line by line and records every matching line, prefixed
// with label:<line> when prefix is true (spec.md §6's path: convention:
// used whenever more than one path was given explicitly, and for every
// file found in -r mode, however many there are).
func (r *Runner) scanFile(f *os.File, label string, prefix bool, check func(string) bool, matches *[]Match, found *bool) {
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if !check(line) {
			continue
		}
		*found = true
		*matches = append(*matches, Match{Path: label, Line: line})
		r.emit(label, line, prefix)
	}
}

// emit writes one matched line, colorized via r.highlighter if one is set,
// truncated to the real terminal width when r.out is a terminal.
func (r *Runner) emit(label, line string, prefix bool) {
	if prefix {
		fmt.Fprintf(r.out, "%s:", label)
	}
	width, hasWidth := r.terminalWidth()

	if r.highlighter == nil {
		if hasWidth {
			line = style.Truncate(line, width)
		}
		fmt.Fprintln(r.out, line)
		return
	}
	match, groups, ok := matcher.LocateMatch(line, r.pattern)
	if !ok {
		if hasWidth {
			line = style.Truncate(line, width)
		}
		fmt.Fprintln(r.out, line)
		return
	}
	// When the pattern has capture groups, color each captured span
	// distinctly and leave the rest of the match uncolored; with no groups,
	// color the whole match as a single span (spec.md §6's --color rule).
	var spans []style.Span
	if len(groups) == 0 {
		spans = []style.Span{{Group: 0, Start: match.Start, End: match.End}}
	} else {
		spans = make([]style.Span, 0, len(groups))
		for idx, sp := range groups {
			spans = append(spans, style.Span{Group: idx, Start: sp.Start, End: sp.End})
		}
	}
	if hasWidth {
		line, spans = style.TruncateLine(line, width, spans)
	}
	r.highlighter.Render(line, spans)
}

// terminalWidth reports r.out's terminal width, via style.TerminalWidth,
// when r.out is a terminal; ok is false for a plain file, a pipe, or any
// non-Unix environment where the ioctl fails, and emit then prints lines
// untruncated.
func (r *Runner) terminalWidth() (width int, ok bool) {
	f, isFile := r.out.(*os.File)
	if !isFile {
		return 0, false
	}
	return style.TerminalWidth(f.Fd())
}
