package main

import "github.com/alecthomas/kong"

// Config holds the complete configuration mapping to CLI flags.
type Config struct {
	// Define lists macros to define, NAME or NAME=VALUE. They participate
	// in return-type resolution; no textual expansion is performed.
	Define []string `short:"D" name:"define" placeholder:"MACRO" help:"Macro to define (NAME or NAME=VALUE)."`

	// Include lists directories where the front end searches for included
	// headers.
	Include []string `short:"I" name:"include" placeholder:"PATH" help:"Add a path where included headers are searched for."`

	// Interactive proposes each fix, asks for confirmation and rewrites
	// the affected files.
	Interactive bool `short:"i" help:"Interactive mode: propose each fix and apply the accepted ones."`

	// ExtendedStatus makes the process exit with code 4 when a suggestion
	// was given.
	ExtendedStatus bool `short:"s" name:"extended-status" help:"Exit with code 4 if a suggestion is given."`

	// DryRun collects every fix without prompting and prints unified diffs
	// instead of rewriting files.
	DryRun bool `name:"dry-run" help:"Print unified diffs of every fix instead of rewriting files."`

	// ExcludeGlob skips files when directories are scanned.
	ExcludeGlob []string `name:"exclude-glob" help:"Glob patterns to exclude files when directories are scanned (e.g. 'vendor/**')."`

	// ExcludeSymbolGlob suppresses findings about matching function names.
	ExcludeSymbolGlob []string `name:"exclude-symbol-glob" help:"Glob patterns to exclude functions from findings (e.g. 'debug_*')."`

	// ReportJSON prints a JSON run summary to stdout at completion.
	ReportJSON bool `name:"report-json" help:"Print a JSON run summary to stdout."`

	// Paths to inspect.
	Paths []string `arg:"" help:"C source files or directories to inspect."`

	// Version prints version information and exits.
	Version kong.VersionFlag `name:"version" help:"Print version information and exit."`
}
