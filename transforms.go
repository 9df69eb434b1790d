package docpress

import "strconv"

// Transform priorities for the standard transforms. Lower runs earlier;
// ad-hoc callables default to CallablePriority (950) and run after these.
const (
	PriorityPromoteTitle   = 320
	PriorityNumberSections = 710
)

// PromoteTitle lifts a lone top-level section into the document: the
// section's title becomes the document title attribute and its remaining
// children move to the root. Documents with zero or multiple top-level
// sections are left alone.
type PromoteTitle struct {
	Base
}

// NewPromoteTitle creates a PromoteTitle transform.
func NewPromoteTitle() *PromoteTitle {
	return &PromoteTitle{Base: NewBase(PriorityPromoteTitle)}
}

func (t *PromoteTitle) Apply(run *Run) error {
	doc := run.Doc
	root := run.Target

	var section NodeID
	for _, child := range doc.Children(root) {
		switch doc.Kind(child) {
		case KindSection:
			if section != NoNode {
				return nil // multiple sections, nothing to promote
			}
			section = child
		default:
			return nil // loose content outside the section
		}
	}
	if section == NoNode || doc.NumChildren(section) == 0 {
		return nil
	}

	title := doc.Child(section, 0)
	if doc.Kind(title) != KindTitle {
		return nil
	}
	doc.SetAttr(root, "title", doc.NodeText(title))

	if err := doc.Remove(section); err != nil {
		return err
	}
	for _, child := range doc.Children(section) {
		if child == title {
			continue
		}
		if err := doc.Remove(child); err != nil {
			return err
		}
		if err := doc.Append(root, child); err != nil {
			return err
		}
	}
	return nil
}

// NumberSections assigns dotted section numbers ("1", "1.2", ...) to the
// "number" attribute of every section title under the target.
type NumberSections struct {
	Base
}

// NewNumberSections creates a NumberSections transform.
func NewNumberSections() *NumberSections {
	return &NumberSections{Base: NewBase(PriorityNumberSections)}
}

func (t *NumberSections) Apply(run *Run) error {
	number(run.Doc, run.Target, "")
	return nil
}

func number(doc *Document, parent NodeID, prefix string) {
	n := 0
	for _, child := range doc.Children(parent) {
		if doc.Kind(child) != KindSection || doc.NumChildren(child) == 0 {
			continue
		}
		title := doc.Child(child, 0)
		if doc.Kind(title) != KindTitle {
			continue
		}
		// The diagnostics section stays unnumbered.
		if doc.NodeText(title) == DiagnosticsTitle {
			continue
		}
		n++
		num := strconv.Itoa(n)
		if prefix != "" {
			num = prefix + "." + num
		}
		doc.SetAttr(title, "number", num)
		number(doc, child, num)
	}
}
