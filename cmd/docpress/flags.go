package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// cliFlags holds every command-line flag.
type cliFlags struct {
	writer      string
	output      string
	parts       []string
	config      string
	reportLevel int
	haltLevel   int
	quiet       bool
	verbose     bool
	version     bool

	// set tracks which flags were given explicitly, so defaults do not
	// shadow environment or configuration file values.
	set map[string]bool
}

// parseFlags parses args (including the program name) and returns the flags
// and the remaining positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("docpress", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	fs.StringVarP(&f.writer, "writer", "w", "html", "output writer: html or text")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	fs.StringSliceVar(&f.parts, "part", nil, "emit a named part to <output>.<part> (repeatable)")
	fs.StringVarP(&f.config, "config", "c", "", "extra configuration file, consulted after the standard ones")
	fs.IntVar(&f.reportLevel, "report-level", int(defaultReportLevel), "report conditions at or above this severity (0-10)")
	fs.IntVar(&f.haltLevel, "halt-level", int(defaultHaltLevel), "halt the run at or above this severity (0-10)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress diagnostics output")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print progress to stderr")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errUsage, err)
	}

	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, fs.Args(), nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), `docpress - publish marked-up text through a document tree

Usage:
  docpress [flags] [input.md]

Reads from stdin when no input file is given.

Flags:
%s`, fs.FlagUsages())
}
