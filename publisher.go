package docpress

import (
	"context"
	"fmt"
	"io"
)

// Compile-time interface implementation checks.
var (
	_ Reader = (*MarkdownReader)(nil)
	_ Writer = (*HTMLWriter)(nil)
	_ Writer = (*TextWriter)(nil)

	_ Transformer = (*PromoteTitle)(nil)
	_ Transformer = (*NumberSections)(nil)
	_ Transformer = funcTransform{}
)

// settingsExtractor is implemented by readers whose sources carry their own
// settings overrides (frontmatter). Overrides merge after file resolution
// and before the run begins.
type settingsExtractor interface {
	SettingsOverrides() map[string]any
}

// Publisher ties the pipeline together: it resolves settings, reads a
// source into a document tree, runs the transform schedule, and renders the
// result through a writer. Create with NewPublisher, then call Publish once
// per source; WritePart emits individual parts of the last published
// document.
type Publisher struct {
	reader     Reader
	writer     Writer
	writerName string
	registry   *Registry
	reporter   *Reporter
	fallback   FallbackPolicy
	transforms []TransformSpec
	overrides  map[string]any
	searchPath []string

	dw *DocumentWriter
}

// NewPublisher creates a Publisher with the markdown reader and HTML writer
// unless options say otherwise.
func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{
		writerName: "html",
		registry:   DefaultRegistry(),
		reporter:   NewReporter(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.reader == nil {
		p.reader = NewMarkdownReader()
	}
	return p
}

// Publish runs the full pipeline for one source and writes the assembled
// output to dest (skipped when dest is nil, for part-wise emission).
// Recovers from internal panics to keep them from propagating to callers.
func (p *Publisher) Publish(ctx context.Context, src *Source, dest io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	resolver := &Resolver{
		Registry:   p.registry,
		Reporter:   p.reporter,
		Fallback:   p.fallback,
		SearchPath: p.searchPath,
	}
	var sourcePath string
	if src != nil {
		sourcePath = src.Path
	}
	values, err := resolver.Resolve(sourcePath)
	if err != nil {
		return err
	}
	for name, v := range p.overrides {
		if err := resolver.setValue(p.registry, values, NormalizeOptionName(name), "", v); err != nil {
			return err
		}
	}
	p.reporter.ReportLevel = values.ReportLevel()

	doc, err := p.reader.Read(ctx, src)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	// Source-carried overrides are the last merge before the run begins;
	// the mapping is immutable from here on.
	if ex, ok := p.reader.(settingsExtractor); ok {
		for name, v := range ex.SettingsOverrides() {
			if err := resolver.setValue(p.registry, values, NormalizeOptionName(name), "", v); err != nil {
				return err
			}
		}
		p.reporter.ReportLevel = values.ReportLevel()
	}

	specs := append(append([]TransformSpec{}, p.reader.Transforms()...), p.transforms...)
	if err := ApplyTransforms(doc, specs, values, p.reporter); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	writer := p.writer
	if writer == nil {
		writer, err = newNamedWriter(p.writerName, values)
		if err != nil {
			return err
		}
	}
	dw := NewDocumentWriter(writer, p.reporter)
	if err := dw.Attach(doc); err != nil {
		return err
	}
	p.dw = dw

	if dest != nil {
		return dw.Write(dest)
	}
	return nil
}

// WritePart emits one named part of the last published document, for
// multi-file output formats.
func (p *Publisher) WritePart(name string, dest io.Writer) error {
	if p.dw == nil {
		return ErrNotAttached
	}
	return p.dw.WritePart(name, dest)
}

// PartNames returns the part names of the last published document.
func (p *Publisher) PartNames() []string {
	if p.dw == nil {
		return nil
	}
	return p.dw.acc.Names()
}

// newNamedWriter constructs a built-in writer bound to resolved settings.
func newNamedWriter(name string, settings Values) (Writer, error) {
	switch name {
	case "html":
		return NewHTMLWriter(settings), nil
	case "text":
		return NewTextWriter(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownWriter, name)
}
