package docpress

// TextWriter serializes the text content of a document verbatim into a
// single "body" part. With an empty transform list it reproduces the text
// leaves of the tree exactly, which makes it the reference writer for
// round-trip checks and plain-text output.
type TextWriter struct{}

// NewTextWriter creates a TextWriter.
func NewTextWriter() *TextWriter { return &TextWriter{} }

func (*TextWriter) PartNames() []string { return []string{"body"} }
func (*TextWriter) MainPart() string    { return "body" }

func (*TextWriter) Visit(doc *Document, id NodeID, out *Accumulator) (Action, error) {
	if doc.Kind(id) == KindText {
		out.Append(doc.Text(id))
	}
	return ActionContinue, nil
}

func (*TextWriter) Depart(doc *Document, id NodeID, out *Accumulator) error {
	// Block-level constructs separate with a blank line so consecutive
	// paragraphs do not run together.
	switch doc.Kind(id) {
	case KindParagraph, KindTitle, KindLiteralBlock, KindBulletList:
		out.Append("\n\n")
	case KindListItem:
		out.Append("\n")
	}
	return nil
}
