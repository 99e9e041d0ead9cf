// Command backgrep is a grep-like line searcher built on the regular
// expression matcher in the parent module. Usage:
//
//	backgrep [-r] -E <pattern> [path ...]
//
// With no path arguments it reads a single line from stdin and reports
// the match via its exit code only (legacy mode, preserved from the
// harness this was built from). With one or more paths it searches each
// file line by line; with -r and exactly one path, it searches every
// regular file under that directory.
//
// Grounded on 0x4D5352-regolith's cmd/regolith/main.go run(args, stdin,
// stdout, stderr) error shape, which keeps main itself a thin os.Exit
// wrapper around a function that takes its streams as parameters so it's
// testable without touching the process's real stdio. Here run takes args,
// stdout and stderr; stdin mode reads os.Stdin directly.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/ossarca/backgrep/internal/search"
	"github.com/ossarca/backgrep/internal/style"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run parses args and executes one search, returning the process exit
// code: 0 if any line matched, 1 if none did, 2 on a malformed pattern or
// an unusable -r directory (spec.md §6's exit-code contract, SPEC_FULL.md
// §6). A file path that cannot be opened is skipped, not fatal.
//
// stdout is taken as *os.File, not io.Writer, specifically so style.New
// can check it for tty-ness via its file descriptor; callers that don't
// care about color detection (tests) pass an *os.File backed by a
// temporary file.
func run(args []string, stdout *os.File, stderr io.Writer) int {
	fs := pflag.NewFlagSet("backgrep", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	recursive := fs.BoolP("recursive", "r", false, "recurse into the given directory")
	pattern := fs.StringP("regexp", "E", "", "pattern to search for")
	colorMode := fs.StringP("color", "C", "auto", "highlight matches: always, never, or auto")
	copyLast := fs.Bool("copy", false, "copy the last matched line to the terminal clipboard via OSC 52")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: backgrep [-r] -E <pattern> [path ...]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *pattern == "" {
		fs.Usage()
		return 2
	}

	opts := []search.Option{search.WithPattern(*pattern), search.WithOutput(stdout)}
	if paths := fs.Args(); len(paths) > 0 {
		opts = append(opts, search.WithPaths(paths...))
	}
	if *recursive {
		opts = append(opts, search.WithRecursive())
	}

	forceColor := *colorMode == "always"
	if *colorMode != "never" {
		opts = append(opts, search.WithHighlighter(style.New(stdout, forceColor)))
	}

	runner := search.New(opts...)
	matches, found, err := runner.Run()
	if err != nil {
		// Both a malformed-pattern *parser.SyntaxError and an unusable -r
		// target report the same way: a stderr message and exit code 2
		// (spec.md §7).
		fmt.Fprintf(stderr, "backgrep: %v\n", err)
		return 2
	}

	if *copyLast && len(matches) > 0 {
		last := matches[len(matches)-1]
		if err := style.CopyToClipboard(stdout, last.Line); err != nil {
			fmt.Fprintf(stderr, "backgrep: clipboard copy failed: %v\n", err)
		}
	}

	if found {
		return 0
	}
	return 1
}
