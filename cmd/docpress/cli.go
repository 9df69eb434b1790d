package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	docpress "github.com/alnah/go-docpress"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Default escalation thresholds, mirrored from the library for flag help.
const (
	defaultReportLevel = docpress.DefaultReportLevel
	defaultHaltLevel   = docpress.DefaultHaltLevel
)

// run executes the CLI: parse flags, merge environment, publish.
// Precedence: flags > environment > configuration files.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags, positional, err := parseFlags(args)
	if err != nil {
		return err
	}
	if flags.version {
		fmt.Fprintf(stdout, "docpress %s\n", Version)
		return nil
	}

	env, err := loadEnvConfig()
	if err != nil {
		return err
	}
	if !flags.quiet {
		warnUnknownEnvVars(stderr)
	}

	writer := flags.writer
	if !flags.set["writer"] && env.Writer != "" {
		writer = env.Writer
	}
	configPath := flags.config
	if !flags.set["config"] && env.ConfigPath != "" {
		configPath = env.ConfigPath
	}

	overrides := make(map[string]any)
	switch {
	case flags.set["report-level"]:
		overrides["report-level"] = flags.reportLevel
	case env.ReportLevel >= 0:
		overrides["report-level"] = env.ReportLevel
	}
	switch {
	case flags.set["halt-level"]:
		overrides["halt-level"] = flags.haltLevel
	case env.HaltLevel >= 0:
		overrides["halt-level"] = env.HaltLevel
	}

	reporter := docpress.NewReporter()
	reporter.Dest = stderr
	if flags.quiet {
		reporter.Dest = io.Discard
	}

	opts := []docpress.PublisherOption{
		docpress.WithWriterName(writer),
		docpress.WithReporter(reporter),
		docpress.WithOverrides(overrides),
	}
	if configPath != "" {
		// The flag-named file is consulted after every standard source, so
		// it wins over them (the document-local file still comes last).
		opts = append(opts, docpress.WithSearchPath(append(docpress.StandardSearchPath(), configPath)...))
	}
	pub := docpress.NewPublisher(opts...)

	var src *docpress.Source
	if len(positional) > 0 {
		src = &docpress.Source{Path: positional[0]}
	} else {
		src = &docpress.Source{Reader: stdin}
	}

	if len(flags.parts) > 0 && flags.output == "" {
		return fmt.Errorf("%w: --part requires --output", errUsage)
	}

	dest, closeDest, err := openOutput(flags.output, env.OutputDir, stdout)
	if err != nil {
		return err
	}
	defer closeDest()

	if flags.verbose {
		fmt.Fprintf(stderr, "Publishing %s with the %s writer\n", src.Name(), writer)
	}
	if err := pub.Publish(ctx, src, dest); err != nil {
		return err
	}

	for _, part := range flags.parts {
		path := flags.output + "." + part
		if err := writePartFile(pub, part, path); err != nil {
			return err
		}
		if flags.verbose {
			fmt.Fprintf(stderr, "Wrote part %s to %s\n", part, path)
		}
	}
	return nil
}

// openOutput resolves the destination writer. Relative output paths land in
// DOCPRESS_OUTPUT_DIR when set.
func openOutput(output, outputDir string, stdout io.Writer) (io.Writer, func(), error) {
	if output == "" {
		return stdout, func() {}, nil
	}
	if outputDir != "" && !filepath.IsAbs(output) {
		output = filepath.Join(outputDir, output)
	}
	f, err := os.Create(output) // #nosec G304 -- output path is user-provided
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func writePartFile(pub *docpress.Publisher, part, path string) error {
	f, err := os.Create(path) // #nosec G304 -- output path is user-provided
	if err != nil {
		return fmt.Errorf("creating part file: %w", err)
	}
	defer f.Close()
	return pub.WritePart(part, f)
}
