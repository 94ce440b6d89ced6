// Command voidcaster proposes locations for casts to void in a C program.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/SamuelMarks/voidcaster/pkg/runner"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// main is the entry point for the application. It delegates execution to
// run() and exits with whatever code it returns.
func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run parses the command line and hands control to the runner. It serves
// as the testable entry point for the application.
//
// args: the command line arguments (excluding the executable name).
// stdin: the interactive prompt stream.
// stdout: prompts, diffs and the JSON summary.
// stderr: diagnostics.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cfg Config

	parser, err := kong.New(&cfg,
		kong.Name("voidcaster"),
		kong.Description("Proposes locations for casts to void in a C program."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // prevent os.Exit during tests
		kong.Vars{"version": version},
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return runner.ExitUsage
	}

	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintln(stderr, err)
		return runner.ExitUsage
	}

	return runner.Run(runner.Options{
		Paths:             cfg.Paths,
		Defines:           cfg.Define,
		IncludeDirs:       cfg.Include,
		ExcludeGlob:       cfg.ExcludeGlob,
		ExcludeSymbolGlob: cfg.ExcludeSymbolGlob,
		Interactive:       cfg.Interactive,
		DryRun:            cfg.DryRun,
		ExtendedStatus:    cfg.ExtendedStatus,
		ReportJSON:        cfg.ReportJSON,
		Stdin:             stdin,
		Stdout:            stdout,
		Stderr:            stderr,
	})
}
