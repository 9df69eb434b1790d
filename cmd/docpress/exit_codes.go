package main

import (
	"errors"
	"os"

	docpress "github.com/alnah/go-docpress"
)

// Exit codes for the docpress CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, custom codes < 126.
const (
	ExitSuccess = 0 // successful publish
	ExitGeneral = 1 // general/unexpected error
	ExitUsage   = 2 // invalid flags, environment, or configuration
	ExitIO      = 3 // file not found, permission denied, empty input
	ExitHalted  = 4 // a condition reached the halt level
)

// errUsage marks CLI usage errors so they map to ExitUsage.
var errUsage = errors.New("usage error")

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, docpress.ErrRunHalted) {
		return ExitHalted
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, docpress.ErrEmptySource) {
		return ExitIO
	}

	if errors.Is(err, errUsage) ||
		errors.Is(err, docpress.ErrConfigValue) ||
		errors.Is(err, docpress.ErrUnknownWriter) ||
		errors.Is(err, docpress.ErrUnknownPart) ||
		errors.Is(err, docpress.ErrFrontmatter) {
		return ExitUsage
	}

	return ExitGeneral
}
