package docpress

import (
	"errors"
	"fmt"
	"io"
)

// Writer renders document nodes into named output parts. Implementations
// are stateless with respect to the traversal: all accumulation goes
// through the Accumulator they are handed.
type Writer interface {
	// PartNames declares the writer's parts in emission order.
	PartNames() []string
	// MainPart names the part active for the bulk of the traversal.
	MainPart() string
	// Visit renders a node's opening content. The returned Action controls
	// descent exactly as in Document.Traverse.
	Visit(doc *Document, id NodeID, out *Accumulator) (Action, error)
	// Depart renders a node's closing content after its children.
	Depart(doc *Document, id NodeID, out *Accumulator) error
}

// DocumentWriter drives a Writer over a document: it attaches a document,
// runs the visitor traversal, and emits the finalized parts.
type DocumentWriter struct {
	writer   Writer
	reporter *Reporter
	acc      *Accumulator
	doc      *Document
}

// NewDocumentWriter wraps a Writer with part state and failure recovery.
func NewDocumentWriter(w Writer, reporter *Reporter) *DocumentWriter {
	return &DocumentWriter{
		writer:   w,
		reporter: reporter,
		acc:      NewAccumulator(w.PartNames()...),
	}
}

// Attach binds a document and runs the traversal. Attaching the document
// already held is a no-op; otherwise every part is reset first and finalized
// after the walk completes.
//
// A visitor failure is recovered: the failing node's subtree and departure
// are skipped, a condition is reported, and traversal continues with the
// next sibling. Failures wrapping ErrVisitorAbort propagate instead.
func (dw *DocumentWriter) Attach(doc *Document) error {
	if doc == nil {
		return ErrNilDocument
	}
	if dw.doc == doc {
		return nil
	}
	dw.acc.Reset()

	walker := &recoveringVisitor{dw: dw, doc: doc, failed: make(map[NodeID]bool)}
	err := dw.acc.WithPart(dw.writer.MainPart(), func() error {
		return doc.Traverse(doc.Root(), walker)
	})
	if err != nil {
		return err
	}
	dw.doc = doc
	return nil
}

// Write emits every part in emission order to dest.
func (dw *DocumentWriter) Write(dest io.Writer) error {
	if dw.doc == nil {
		return ErrNotAttached
	}
	_, err := io.WriteString(dest, dw.acc.Assemble())
	return err
}

// WritePart emits a single named part to dest, for multi-file output
// formats that place parts in separate destinations.
func (dw *DocumentWriter) WritePart(name string, dest io.Writer) error {
	if dw.doc == nil {
		return ErrNotAttached
	}
	content, err := dw.acc.Part(name)
	if err != nil {
		return err
	}
	_, err = io.WriteString(dest, content)
	return err
}

// Part returns a finalized part's content.
func (dw *DocumentWriter) Part(name string) (string, error) {
	if dw.doc == nil {
		return "", ErrNotAttached
	}
	return dw.acc.Part(name)
}

// recoveringVisitor adapts a Writer to TreeVisitor, converting visitor
// failures into reported conditions and a skip of the failing frame.
type recoveringVisitor struct {
	dw     *DocumentWriter
	doc    *Document
	failed map[NodeID]bool
}

func (rv *recoveringVisitor) Visit(id NodeID) (Action, error) {
	act, err := rv.writerVisit(id)
	if err == nil {
		return act, nil
	}
	if errors.Is(err, ErrVisitorAbort) {
		return ActionStop, err
	}
	rv.failed[id] = true
	rv.dw.reporter.Report(&Condition{
		Severity: SeverityError,
		Message:  fmt.Sprintf("visitor failed on %s node: %v", rv.doc.Kind(id), err),
		Node:     id,
	})
	return ActionSkipChildren, nil
}

func (rv *recoveringVisitor) writerVisit(id NodeID) (act Action, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("visitor panic: %v", r)
		}
	}()
	return rv.dw.writer.Visit(rv.doc, id, rv.dw.acc)
}

func (rv *recoveringVisitor) Depart(id NodeID) error {
	if rv.failed[id] {
		// The opening content never made it out; departing would emit an
		// unbalanced close.
		return nil
	}
	err := rv.dw.writer.Depart(rv.doc, id, rv.dw.acc)
	if err == nil || errors.Is(err, ErrVisitorAbort) {
		return err
	}
	rv.dw.reporter.Report(&Condition{
		Severity: SeverityError,
		Message:  fmt.Sprintf("visitor failed departing %s node: %v", rv.doc.Kind(id), err),
		Node:     id,
	})
	return nil
}
