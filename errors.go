package docpress

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptySource   = errors.New("source content cannot be empty")
	ErrNilDocument   = errors.New("document cannot be nil")
	ErrInvalidNode   = errors.New("invalid node id")
	ErrNodeAttached  = errors.New("node already has a parent")
	ErrRemoveRoot    = errors.New("document root cannot be removed")
	ErrUnknownPart   = errors.New("unknown writer part")
	ErrNoReader      = errors.New("publisher has no reader")
	ErrNotAttached   = errors.New("writer has no attached document")
	ErrRunHalted     = errors.New("transform run halted")
	ErrUnknownWriter = errors.New("unknown writer")
	ErrVisitorAbort  = errors.New("visitor aborted traversal")
	ErrParseMarkdown = errors.New("markdown parsing failed")

	// Settings validation errors.
	ErrConfigValue    = errors.New("invalid configuration value")
	ErrConfigLine     = errors.New("malformed configuration line")
	ErrReservedOption = errors.New("option name is reserved")

	// Frontmatter errors.
	ErrFrontmatter = errors.New("frontmatter parsing failed")
)
