// Package runner orchestrates a voidcaster invocation: the scan phase over
// every input file, followed (in interactive mode) by the apply phase that
// drains the modification queue.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/SamuelMarks/voidcaster/internal/files"
	"github.com/SamuelMarks/voidcaster/pkg/classify"
	"github.com/SamuelMarks/voidcaster/pkg/filter"
	"github.com/SamuelMarks/voidcaster/pkg/frontend"
	"github.com/SamuelMarks/voidcaster/pkg/interact"
	"github.com/SamuelMarks/voidcaster/pkg/loc"
	"github.com/SamuelMarks/voidcaster/pkg/patch"
	"github.com/SamuelMarks/voidcaster/pkg/report"
)

// Options configures one invocation.
type Options struct {
	// Paths are the files or directories to inspect.
	Paths []string
	// Defines are raw -D arguments, NAME or NAME=VALUE.
	Defines []string
	// IncludeDirs are the -I header search directories.
	IncludeDirs []string
	// ExcludeGlob patterns skip files when directories are walked.
	ExcludeGlob []string
	// ExcludeSymbolGlob patterns suppress findings by function name.
	ExcludeSymbolGlob []string

	// Interactive proposes each fix and applies the accepted ones.
	Interactive bool
	// DryRun collects every fix without prompting and prints unified diffs
	// instead of rewriting files. Takes precedence over Interactive.
	DryRun bool
	// ExtendedStatus exits with ExitSuggestion if a warn-mode suggestion
	// was given.
	ExtendedStatus bool
	// ReportJSON prints a JSON run summary to Stdout at completion.
	ReportJSON bool

	// Stdin is the prompt stream; Stdout carries prompts and diffs; Stderr
	// carries diagnostics. All three default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// autoAccept queues every finding without prompting; it backs dry-run mode.
type autoAccept struct {
	queue *patch.Queue
}

func (a autoAccept) MissingVoid(f classify.MissingVoid) error {
	a.queue.Add(patch.Insert(f.File, f.At, interact.CastText))
	return nil
}

func (a autoAccept) SuperfluousVoid(f classify.SuperfluousVoid) error {
	a.queue.Add(patch.Remove(f.File, f.From, f.To))
	return nil
}

// Run executes one invocation and returns the process exit code. The scan
// phase stops at the first file that fails to parse; fixes accepted for
// files scanned before the failure are still applied, and the failure's
// exit code is kept.
func Run(opts Options) int {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	inputs, err := files.Collect(opts.Paths, opts.ExcludeGlob)
	if err != nil {
		fmt.Fprintln(opts.Stderr, err)
		return ExitFileOpen
	}
	if len(inputs) == 0 {
		fmt.Fprintln(opts.Stderr, "no input files")
		return ExitUsage
	}

	fe := frontend.New(frontend.Options{
		Defines:     parseDefines(opts.Defines),
		IncludeDirs: opts.IncludeDirs,
	})

	queue := &patch.Queue{}
	rep := report.New(opts.Stderr)

	var sink classify.Sink = rep
	switch {
	case opts.DryRun:
		sink = autoAccept{queue: queue}
	case opts.Interactive:
		sink = interact.NewCollector(queue, opts.Stdin, opts.Stdout)
	}
	if len(opts.ExcludeSymbolGlob) > 0 {
		sink = filter.New(opts.ExcludeSymbolGlob).Sink(sink)
	}

	walker := &classify.Walker{
		Sink: sink,
		Warnf: func(file string, at loc.Location, function string) {
			rep.IncUnjudgeable()
			fmt.Fprintf(opts.Stderr, "%s:%s: Warning: can't check call to %s (can't find original definition).\n",
				file, at, function)
		},
	}

	ctx := context.Background()
	scanCode := ExitOK
	for _, path := range inputs {
		tree, err := fe.Parse(ctx, path)
		if err != nil {
			scanCode = reportParseFailure(opts.Stderr, err)
			break
		}
		rep.IncFile()

		if err := walker.Walk(tree); err != nil {
			if errors.Is(err, interact.ErrEndOfInput) {
				// queued modifications are discarded
				fmt.Fprintln(opts.Stdout, "Okay, exiting.")
				return ExitOK
			}
			fmt.Fprintln(opts.Stderr, err)
			return ExitFrontend
		}
	}

	engine := &patch.Engine{}
	switch {
	case opts.DryRun:
		if err := engine.RenderDiffs(opts.Stdout, queue.Drain()); err != nil {
			fmt.Fprintln(opts.Stderr, err)
			if scanCode == ExitOK {
				scanCode = ExitFileOpen
			}
		}
	case opts.Interactive:
		if err := engine.Apply(queue.Drain()); err != nil {
			fmt.Fprintln(opts.Stderr, err)
			if scanCode == ExitOK {
				scanCode = ExitFileOpen
			}
		}
	}

	if scanCode != ExitOK {
		return scanCode
	}

	if opts.ReportJSON {
		if err := rep.WriteJSON(opts.Stdout); err != nil {
			fmt.Fprintln(opts.Stderr, err)
			return ExitFrontend
		}
	}

	if opts.ExtendedStatus && rep.Suggested() {
		return ExitSuggestion
	}
	return ExitOK
}

// reportParseFailure prints the failure and maps it to an exit code: open
// failures are distinguished from parse failures, everything else counts as
// an internal front-end failure.
func reportParseFailure(stderr io.Writer, err error) int {
	var parseErr *frontend.ParseError
	if errors.As(err, &parseErr) {
		for _, d := range parseErr.Diagnostics {
			fmt.Fprintln(stderr, d)
		}
		fmt.Fprintln(stderr, "Aborting parse.")
		return ExitFileParse
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		fmt.Fprintln(stderr, err)
		return ExitFileOpen
	}
	fmt.Fprintln(stderr, err)
	return ExitFrontend
}

// parseDefines splits raw -D arguments into name/value pairs. A bare NAME
// defines the macro with an empty replacement.
func parseDefines(defs []string) map[string]string {
	parsed := make(map[string]string, len(defs))
	for _, d := range defs {
		name, value, _ := strings.Cut(d, "=")
		parsed[name] = value
	}
	return parsed
}
