package docpress

import (
	"fmt"
	"slices"
	"strings"
)

// Accumulator holds a writer's named output parts. Exactly one part is
// active at a time; Append and Prepend add fragments to it. The active part
// changes only inside a WithPart block, which restores the previous part on
// exit even when the body fails or panics.
//
// Fragments are stored in forward order: appends are amortized O(1),
// prepends shift the slice. Part contents are small relative to traversal
// work, so the front-insert cost is acceptable.
type Accumulator struct {
	names   []string
	parts   map[string][]string
	current string
}

// NewAccumulator creates an accumulator with the given part names, in
// emission order. The first name is the initially active part.
func NewAccumulator(names ...string) *Accumulator {
	a := &Accumulator{
		names: slices.Clone(names),
		parts: make(map[string][]string, len(names)),
	}
	for _, n := range names {
		a.parts[n] = nil
	}
	if len(names) > 0 {
		a.current = names[0]
	}
	return a
}

// Names returns the part names in emission order.
func (a *Accumulator) Names() []string { return slices.Clone(a.names) }

// Reset empties every part. Called when a new document is attached.
func (a *Accumulator) Reset() {
	for n := range a.parts {
		a.parts[n] = nil
	}
}

// WithPart activates the named part for the duration of fn, restoring the
// previously active part afterwards, including on panic.
func (a *Accumulator) WithPart(name string, fn func() error) error {
	if _, ok := a.parts[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPart, name)
	}
	prev := a.current
	a.current = name
	defer func() { a.current = prev }()
	return fn()
}

// Append adds fragments to the end of the active part.
func (a *Accumulator) Append(fragments ...string) {
	a.parts[a.current] = append(a.parts[a.current], fragments...)
}

// Prepend adds fragments to the front of the active part, keeping their
// relative order.
func (a *Accumulator) Prepend(fragments ...string) {
	a.parts[a.current] = append(slices.Clone(fragments), a.parts[a.current]...)
}

// Part returns the finalized content of a named part, first-appended-first.
func (a *Accumulator) Part(name string) (string, error) {
	frags, ok := a.parts[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPart, name)
	}
	return strings.Join(frags, ""), nil
}

// Assemble concatenates every part in emission order.
func (a *Accumulator) Assemble() string {
	var sb strings.Builder
	for _, n := range a.names {
		sb.WriteString(strings.Join(a.parts[n], ""))
	}
	return sb.String()
}
