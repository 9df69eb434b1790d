package docpress

// PublisherOption customizes a Publisher.
type PublisherOption func(*Publisher)

// WithReader sets the reader that builds the document tree.
func WithReader(r Reader) PublisherOption {
	return func(p *Publisher) { p.reader = r }
}

// WithWriter sets a pre-built writer. Prefer WithWriterName for the
// built-in writers so they see the run's resolved settings.
func WithWriter(w Writer) PublisherOption {
	return func(p *Publisher) { p.writer = w }
}

// WithWriterName selects a built-in writer ("html" or "text"),
// constructed against the resolved settings once Publish runs.
func WithWriterName(name string) PublisherOption {
	return func(p *Publisher) { p.writerName = name }
}

// WithRegistry sets the option catalogue consulted during resolution.
func WithRegistry(reg *Registry) PublisherOption {
	return func(p *Publisher) { p.registry = reg }
}

// WithReporter sets the diagnostics destination and report level.
func WithReporter(r *Reporter) PublisherOption {
	return func(p *Publisher) { p.reporter = r }
}

// WithFallback sets the policy for invalid configuration values.
// The default propagates them as resolution failures.
func WithFallback(f FallbackPolicy) PublisherOption {
	return func(p *Publisher) { p.fallback = f }
}

// WithTransforms schedules extra transforms after the reader's own list.
func WithTransforms(specs ...TransformSpec) PublisherOption {
	return func(p *Publisher) { p.transforms = append(p.transforms, specs...) }
}

// WithSearchPath replaces the standard configuration file search path.
// An empty (non-nil) slice disables file-based configuration entirely.
func WithSearchPath(paths ...string) PublisherOption {
	return func(p *Publisher) {
		if paths == nil {
			paths = []string{}
		}
		p.searchPath = paths
	}
}

// WithOverrides merges explicit settings overrides after all configuration
// files (flags and environment beat files).
func WithOverrides(overrides map[string]any) PublisherOption {
	return func(p *Publisher) {
		if p.overrides == nil {
			p.overrides = make(map[string]any, len(overrides))
		}
		for k, v := range overrides {
			p.overrides[k] = v
		}
	}
}
