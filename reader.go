package docpress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Source is an opaque input: a file path, a stream, in-memory text, or a
// pre-split line sequence. The first non-zero field in that order wins.
type Source struct {
	Path   string
	Reader io.Reader
	Text   string
	Lines  []string
}

// Name returns a display name for the source.
func (s *Source) Name() string {
	if s == nil {
		return ""
	}
	if s.Path != "" {
		return s.Path
	}
	return "<source>"
}

// Content reads the whole source as text.
func (s *Source) Content() (string, error) {
	switch {
	case s == nil:
		return "", ErrEmptySource
	case s.Path != "":
		data, err := os.ReadFile(s.Path) // #nosec G304 -- source path is caller-provided
		if err != nil {
			return "", fmt.Errorf("reading source %s: %w", s.Path, err)
		}
		return string(data), nil
	case s.Reader != nil:
		data, err := io.ReadAll(s.Reader)
		if err != nil {
			return "", fmt.Errorf("reading source: %w", err)
		}
		return string(data), nil
	case s.Text != "":
		return s.Text, nil
	case s.Lines != nil:
		return strings.Join(s.Lines, "\n"), nil
	}
	return "", ErrEmptySource
}

// Reader builds a document tree from a source and declares the transforms
// that must run on it before the document is handed to a writer.
type Reader interface {
	Read(ctx context.Context, src *Source) (*Document, error)
	Transforms() []TransformSpec
}

// ReadDocument reads a source through a reader and, as a non-optional final
// step, runs the reader's transform list. A nil settings mapping resolves
// to catalogue defaults.
func ReadDocument(ctx context.Context, src *Source, r Reader, settings Values, reporter *Reporter) (*Document, error) {
	if r == nil {
		return nil, ErrNoReader
	}
	if settings == nil {
		var err error
		settings, err = (&Resolver{Reporter: reporter, SearchPath: []string{}}).Resolve("")
		if err != nil {
			return nil, err
		}
	}
	doc, err := r.Read(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := ApplyTransforms(doc, r.Transforms(), settings, reporter); err != nil {
		return nil, err
	}
	return doc, nil
}
