package docpress

// NodeKind enumerates the structural kinds a document tree node can have.
type NodeKind int

const (
	KindDocument NodeKind = iota // tree root
	KindSection
	KindTitle
	KindParagraph
	KindText // leaf carrying literal text
	KindEmphasis
	KindStrong
	KindLiteral // inline code span
	KindLiteralBlock
	KindBulletList
	KindListItem
	KindReference
	KindTransition
	KindSystemMessage
)

func (k NodeKind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindSection:
		return "section"
	case KindTitle:
		return "title"
	case KindParagraph:
		return "paragraph"
	case KindText:
		return "text"
	case KindEmphasis:
		return "emphasis"
	case KindStrong:
		return "strong"
	case KindLiteral:
		return "literal"
	case KindLiteralBlock:
		return "literal_block"
	case KindBulletList:
		return "bullet_list"
	case KindListItem:
		return "list_item"
	case KindReference:
		return "reference"
	case KindTransition:
		return "transition"
	case KindSystemMessage:
		return "system_message"
	default:
		return "unknown"
	}
}

// NodeID addresses a node inside its Document arena. IDs are stable for the
// lifetime of the document: removing a node detaches it from its parent but
// never invalidates IDs already handed out, so back-references held by other
// nodes keep resolving (to a node that then reports Detached).
type NodeID int

// NoNode is the zero NodeID, used for "no node" in optional positions.
const NoNode NodeID = 0

// node is the arena slot backing one tree node. Parent/child edges and
// back-references are NodeID pairs; back-references never imply ownership.
type node struct {
	kind     NodeKind
	attrs    map[string]string
	children []NodeID
	parent   NodeID
	backrefs []NodeID
	text     string
	detached bool
}
