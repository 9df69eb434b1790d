package docpress

import (
	"fmt"
	"strconv"
)

// DiagnosticsTitle names the section collecting transform failure records.
// The section is located by title match, never by identity, so repeated
// failures in one run share a single section.
const DiagnosticsTitle = "Processing Messages"

// Run is the execution context handed to each transform. Target is the
// subtree root the current transform rewrites; Add schedules additional
// transforms into the same run.
type Run struct {
	Doc      *Document
	Target   NodeID
	Settings Values
	Reporter *Reporter

	sched *scheduler
}

// Add schedules a transform for the current run. Late additions are merged
// into the sorted execution: an added transform whose (priority, order) sorts
// before every pending one runs immediately after the transform that added it.
func (r *Run) Add(spec TransformSpec) {
	r.sched.add(spec)
}

type scheduled struct {
	t      Transformer
	target NodeID
	seq    int // insertion sequence, final tie-break among order-0 callables
	done   bool
}

type scheduler struct {
	pending []scheduled
	seq     int
}

func (s *scheduler) add(spec TransformSpec) {
	var t Transformer
	switch {
	case spec.Instance != nil:
		t = spec.Instance
	case spec.Constructor != nil:
		t = spec.Constructor()
	case spec.Func != nil:
		t = funcTransform{fn: spec.Func}
	default:
		return
	}
	s.pending = append(s.pending, scheduled{t: t, target: spec.Target, seq: s.seq})
	s.seq++
}

// next picks the unexecuted transform with the lowest (priority, order, seq)
// key. Selecting the minimum on every step instead of sorting once is what
// lets transforms added mid-run take their proper place in the ordering.
func (s *scheduler) next() *scheduled {
	var best *scheduled
	for i := range s.pending {
		c := &s.pending[i]
		if c.done {
			continue
		}
		if best == nil || less(c, best) {
			best = c
		}
	}
	return best
}

func less(a, b *scheduled) bool {
	if a.t.Priority() != b.t.Priority() {
		return a.t.Priority() < b.t.Priority()
	}
	if a.t.Order() != b.t.Order() {
		return a.t.Order() < b.t.Order()
	}
	return a.seq < b.seq
}

// ApplyTransforms instantiates, orders, and runs the given transforms
// against the document. Failures below the halt level are absorbed into the
// document as diagnostic nodes; failures at or above it abort the run with
// an error wrapping ErrRunHalted. The scheduler holds no cross-run state.
func ApplyTransforms(doc *Document, specs []TransformSpec, settings Values, reporter *Reporter) error {
	if doc == nil {
		return ErrNilDocument
	}
	// An empty document is skipped entirely; no diagnostics section is ever
	// created for it.
	if doc.NumChildren(doc.Root()) == 0 {
		return nil
	}

	sched := &scheduler{}
	for _, spec := range specs {
		sched.add(spec)
	}

	run := &Run{Doc: doc, Settings: settings, Reporter: reporter, sched: sched}
	haltLevel := settings.HaltLevel()

	var halted error
	for {
		current := sched.next()
		if current == nil {
			break
		}
		current.done = true

		run.Target = current.target
		if run.Target == NoNode {
			run.Target = doc.Root()
		}

		err := current.t.Apply(run)
		if err == nil {
			continue
		}

		cond := AsCondition(err)
		recordDiagnostic(doc, cond)
		reporter.Report(cond)
		if cond.Severity >= haltLevel {
			halted = fmt.Errorf("%w: transform %T: %s", ErrRunHalted, current.t, cond.Message)
			break
		}
		// Recovered: execution resumes with the next transform in order.
	}

	pruneDiagnostics(doc)
	return halted
}

// recordDiagnostic appends a system_message node describing the condition to
// the diagnostics section, creating the section on first use. When the
// condition identifies an originating node, the diagnostic gets a
// back-reference to it after the node is assigned an identifier.
func recordDiagnostic(doc *Document, cond *Condition) {
	section := findDiagnostics(doc)
	if section == NoNode {
		section = doc.NewNode(KindSection)
		title := doc.NewNode(KindTitle)
		_ = doc.Append(title, doc.NewText(DiagnosticsTitle))
		_ = doc.Append(section, title)
		_ = doc.Append(doc.Root(), section)
	}

	msg := doc.NewNode(KindSystemMessage)
	doc.SetAttr(msg, "level", strconv.Itoa(int(cond.Severity)))
	if cond.Line > 0 {
		doc.SetAttr(msg, "line", strconv.Itoa(cond.Line))
	}
	para := doc.NewNode(KindParagraph)
	_ = doc.Append(para, doc.NewText(cond.Message))
	_ = doc.Append(msg, para)
	_ = doc.Append(section, msg)

	if cond.Node != NoNode && doc.Valid(cond.Node) {
		doc.EnsureID(cond.Node)
		_ = doc.AddBackref(msg, cond.Node)
	}
}

// findDiagnostics locates the diagnostics section by title match.
func findDiagnostics(doc *Document) NodeID {
	root := doc.Root()
	for i := 0; i < doc.NumChildren(root); i++ {
		child := doc.Child(root, i)
		if doc.Kind(child) != KindSection || doc.NumChildren(child) == 0 {
			continue
		}
		title := doc.Child(child, 0)
		if doc.Kind(title) == KindTitle && doc.NodeText(title) == DiagnosticsTitle {
			return child
		}
	}
	return NoNode
}

// pruneDiagnostics removes the diagnostics section if it holds only its
// title and no actual entries.
func pruneDiagnostics(doc *Document) {
	section := findDiagnostics(doc)
	if section != NoNode && doc.NumChildren(section) < 2 {
		_ = doc.Remove(section)
	}
}
