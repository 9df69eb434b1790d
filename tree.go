package docpress

import (
	"fmt"
	"strings"
)

// Document is an arena-backed document tree. The arena owns every node;
// parent/child edges and back-references are index pairs into it. Every node
// except the root has exactly one owning parent.
//
// A Document is not safe for concurrent mutation. The scheduler and writer
// both assume exclusive access for the duration of a run.
type Document struct {
	nodes  []node // index 0 unused; root is always NodeID 1
	source string
	idSeq  int
}

// NewDocument creates an empty document tree for the given source.
// The source is opaque; only its display name is recorded on the root.
func NewDocument(src *Source) *Document {
	d := &Document{nodes: make([]node, 1, 16)}
	root := d.alloc(KindDocument)
	if src != nil {
		d.source = src.Name()
		d.SetAttr(root, "source", src.Name())
	}
	return d
}

// Root returns the document node. It is always valid.
func (d *Document) Root() NodeID { return 1 }

// Source returns the display name of the source this document was built from.
func (d *Document) Source() string { return d.source }

func (d *Document) alloc(kind NodeKind) NodeID {
	d.nodes = append(d.nodes, node{kind: kind})
	return NodeID(len(d.nodes) - 1)
}

// NewNode allocates a detached node of the given kind.
// Attach it with Append before traversal can reach it.
func (d *Document) NewNode(kind NodeKind) NodeID { return d.alloc(kind) }

// NewText allocates a detached text leaf.
func (d *Document) NewText(text string) NodeID {
	id := d.alloc(KindText)
	d.nodes[id].text = text
	return id
}

// Valid reports whether id addresses a node in this document.
func (d *Document) Valid(id NodeID) bool {
	return id > 0 && int(id) < len(d.nodes)
}

// Kind returns the node's kind. Callers must check Valid for IDs coming
// from untrusted positions; Kind itself does not.
func (d *Document) Kind(id NodeID) NodeKind { return d.nodes[id].kind }

// Text returns a text leaf's payload. Empty for non-leaf nodes.
func (d *Document) Text(id NodeID) string { return d.nodes[id].text }

// SetText replaces a text leaf's payload.
func (d *Document) SetText(id NodeID, text string) { d.nodes[id].text = text }

// Attr returns the named attribute and whether it is set.
func (d *Document) Attr(id NodeID, name string) (string, bool) {
	v, ok := d.nodes[id].attrs[name]
	return v, ok
}

// SetAttr sets the named attribute on a node.
func (d *Document) SetAttr(id NodeID, name, value string) {
	if d.nodes[id].attrs == nil {
		d.nodes[id].attrs = make(map[string]string, 4)
	}
	d.nodes[id].attrs[name] = value
}

// NumChildren returns the number of children of a node.
func (d *Document) NumChildren(id NodeID) int { return len(d.nodes[id].children) }

// Child returns the i-th child of a node. Panics if i is out of range,
// matching slice indexing semantics.
func (d *Document) Child(id NodeID, i int) NodeID { return d.nodes[id].children[i] }

// Children returns a copy of a node's child list.
func (d *Document) Children(id NodeID) []NodeID {
	out := make([]NodeID, len(d.nodes[id].children))
	copy(out, d.nodes[id].children)
	return out
}

// Parent returns the owning parent, or NoNode for the root and detached nodes.
func (d *Document) Parent(id NodeID) NodeID { return d.nodes[id].parent }

// Detached reports whether a node has been removed from its parent.
// Freshly allocated nodes that were never attached report false.
func (d *Document) Detached(id NodeID) bool { return d.nodes[id].detached }

// Append attaches child as the last child of parent.
// Returns ErrNodeAttached if the child already has an owning parent.
func (d *Document) Append(parent, child NodeID) error {
	if !d.Valid(parent) || !d.Valid(child) {
		return ErrInvalidNode
	}
	if d.nodes[child].parent != NoNode {
		return fmt.Errorf("%w: node %d", ErrNodeAttached, child)
	}
	d.nodes[parent].children = append(d.nodes[parent].children, child)
	d.nodes[child].parent = parent
	d.nodes[child].detached = false
	return nil
}

// Remove detaches a node from its parent. The node stays addressable so
// back-references held elsewhere keep resolving; they report Detached rather
// than being cleaned up. The root cannot be removed.
func (d *Document) Remove(id NodeID) error {
	if !d.Valid(id) {
		return ErrInvalidNode
	}
	if id == d.Root() {
		return ErrRemoveRoot
	}
	parent := d.nodes[id].parent
	if parent != NoNode {
		siblings := d.nodes[parent].children
		for i, c := range siblings {
			if c == id {
				d.nodes[parent].children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	d.nodes[id].parent = NoNode
	d.nodes[id].detached = true
	return nil
}

// AddBackref registers a back-reference from owner to target. Back-references
// are lookup relations only: they never participate in ownership or traversal.
func (d *Document) AddBackref(owner, target NodeID) error {
	if !d.Valid(owner) || !d.Valid(target) {
		return ErrInvalidNode
	}
	d.nodes[owner].backrefs = append(d.nodes[owner].backrefs, target)
	return nil
}

// Backrefs returns a copy of a node's back-reference list. Targets that were
// removed since registration are still listed; check Detached on each.
func (d *Document) Backrefs(id NodeID) []NodeID {
	out := make([]NodeID, len(d.nodes[id].backrefs))
	copy(out, d.nodes[id].backrefs)
	return out
}

// EnsureID returns the node's "ids" attribute, assigning a document-unique
// identifier first if the node has none.
func (d *Document) EnsureID(id NodeID) string {
	if v, ok := d.Attr(id, "ids"); ok && v != "" {
		return v
	}
	d.idSeq++
	assigned := fmt.Sprintf("id%d", d.idSeq)
	d.SetAttr(id, "ids", assigned)
	return assigned
}

// NodeText concatenates the text of all text leaves under id, in order.
func (d *Document) NodeText(id NodeID) string {
	var sb strings.Builder
	d.collectText(id, &sb)
	return sb.String()
}

func (d *Document) collectText(id NodeID, sb *strings.Builder) {
	if d.nodes[id].kind == KindText {
		sb.WriteString(d.nodes[id].text)
		return
	}
	for _, c := range d.nodes[id].children {
		d.collectText(c, sb)
	}
}
