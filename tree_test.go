package docpress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentTree(t *testing.T) {
	t.Run("fresh document has an empty root", func(t *testing.T) {
		doc := NewDocument(&Source{Path: "test.md"})
		require.True(t, doc.Valid(doc.Root()))
		assert.Equal(t, KindDocument, doc.Kind(doc.Root()))
		assert.Equal(t, 0, doc.NumChildren(doc.Root()))
		assert.Equal(t, "test.md", doc.Source())
	})

	t.Run("append establishes a single owning parent", func(t *testing.T) {
		doc := NewDocument(nil)
		para := doc.NewNode(KindParagraph)
		require.NoError(t, doc.Append(doc.Root(), para))
		assert.Equal(t, doc.Root(), doc.Parent(para))
		assert.Equal(t, 1, doc.NumChildren(doc.Root()))
		assert.Equal(t, para, doc.Child(doc.Root(), 0))

		other := doc.NewNode(KindSection)
		require.NoError(t, doc.Append(doc.Root(), other))
		err := doc.Append(other, para)
		assert.ErrorIs(t, err, ErrNodeAttached)
	})

	t.Run("remove detaches but keeps the node addressable", func(t *testing.T) {
		doc := NewDocument(nil)
		para := doc.NewNode(KindParagraph)
		require.NoError(t, doc.Append(doc.Root(), para))
		require.NoError(t, doc.Remove(para))

		assert.Equal(t, 0, doc.NumChildren(doc.Root()))
		assert.True(t, doc.Detached(para))
		assert.Equal(t, NoNode, doc.Parent(para))
		// Still addressable after removal.
		assert.Equal(t, KindParagraph, doc.Kind(para))
	})

	t.Run("root cannot be removed", func(t *testing.T) {
		doc := NewDocument(nil)
		assert.ErrorIs(t, doc.Remove(doc.Root()), ErrRemoveRoot)
	})

	t.Run("removed node can be reattached elsewhere", func(t *testing.T) {
		doc := NewDocument(nil)
		section := doc.NewNode(KindSection)
		para := doc.NewNode(KindParagraph)
		require.NoError(t, doc.Append(doc.Root(), section))
		require.NoError(t, doc.Append(section, para))

		require.NoError(t, doc.Remove(para))
		require.NoError(t, doc.Append(doc.Root(), para))
		assert.Equal(t, doc.Root(), doc.Parent(para))
		assert.False(t, doc.Detached(para))
	})

	t.Run("back-references survive removal as unresolved state", func(t *testing.T) {
		doc := NewDocument(nil)
		target := doc.NewNode(KindParagraph)
		msg := doc.NewNode(KindSystemMessage)
		require.NoError(t, doc.Append(doc.Root(), target))
		require.NoError(t, doc.Append(doc.Root(), msg))
		require.NoError(t, doc.AddBackref(msg, target))

		require.NoError(t, doc.Remove(target))
		refs := doc.Backrefs(msg)
		require.Len(t, refs, 1)
		assert.Equal(t, target, refs[0])
		assert.True(t, doc.Detached(refs[0]))
	})

	t.Run("EnsureID is stable and unique", func(t *testing.T) {
		doc := NewDocument(nil)
		a := doc.NewNode(KindParagraph)
		b := doc.NewNode(KindParagraph)

		idA := doc.EnsureID(a)
		assert.Equal(t, idA, doc.EnsureID(a), "second call must not reassign")
		assert.NotEqual(t, idA, doc.EnsureID(b))

		doc.SetAttr(b, "ids", "explicit")
		assert.Equal(t, "explicit", doc.EnsureID(b))
	})

	t.Run("NodeText concatenates descendant leaves in order", func(t *testing.T) {
		doc := NewDocument(nil)
		para := doc.NewNode(KindParagraph)
		em := doc.NewNode(KindEmphasis)
		require.NoError(t, doc.Append(doc.Root(), para))
		require.NoError(t, doc.Append(para, doc.NewText("Hello, ")))
		require.NoError(t, doc.Append(em, doc.NewText("world")))
		require.NoError(t, doc.Append(para, em))
		require.NoError(t, doc.Append(para, doc.NewText("!")))

		assert.Equal(t, "Hello, world!", doc.NodeText(para))
	})
}

// buildWalkFixture returns a document shaped:
//
//	root
//	├── a (section)
//	│   └── a1 (paragraph)
//	├── b (section)
//	└── c (section)
func buildWalkFixture(t *testing.T) (*Document, map[string]NodeID) {
	t.Helper()
	doc := NewDocument(nil)
	ids := map[string]NodeID{"root": doc.Root()}
	for _, name := range []string{"a", "b", "c"} {
		id := doc.NewNode(KindSection)
		doc.SetAttr(id, "name", name)
		require.NoError(t, doc.Append(doc.Root(), id))
		ids[name] = id
	}
	a1 := doc.NewNode(KindParagraph)
	doc.SetAttr(a1, "name", "a1")
	require.NoError(t, doc.Append(ids["a"], a1))
	ids["a1"] = a1
	return doc, ids
}

func TestWalk(t *testing.T) {
	name := func(doc *Document, id NodeID) string {
		if id == doc.Root() {
			return "root"
		}
		n, _ := doc.Attr(id, "name")
		return n
	}

	t.Run("pre-order visits node before children", func(t *testing.T) {
		doc, _ := buildWalkFixture(t)
		var order []string
		err := doc.Walk(doc.Root(), func(id NodeID) (Action, error) {
			order = append(order, name(doc, id))
			return ActionContinue, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"root", "a", "a1", "b", "c"}, order)
	})

	t.Run("skip children keeps siblings", func(t *testing.T) {
		doc, ids := buildWalkFixture(t)
		var order []string
		err := doc.Walk(doc.Root(), func(id NodeID) (Action, error) {
			order = append(order, name(doc, id))
			if id == ids["a"] {
				return ActionSkipChildren, nil
			}
			return ActionContinue, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"root", "a", "b", "c"}, order)
	})

	t.Run("skip siblings is scoped to the current frame", func(t *testing.T) {
		doc, ids := buildWalkFixture(t)
		var order []string
		var departs []string
		v := &trackingVisitor{
			visit: func(id NodeID) (Action, error) {
				order = append(order, name(doc, id))
				if id == ids["a"] {
					return ActionSkipSiblings, nil
				}
				return ActionContinue, nil
			},
			depart: func(id NodeID) error {
				departs = append(departs, name(doc, id))
				return nil
			},
		}
		require.NoError(t, doc.Traverse(doc.Root(), v))
		assert.Equal(t, []string{"root", "a"}, order, "b and c skipped")
		assert.Equal(t, []string{"a", "root"}, departs, "parent departure still runs")
	})

	t.Run("stop aborts the traversal", func(t *testing.T) {
		doc, ids := buildWalkFixture(t)
		var order []string
		err := doc.Walk(doc.Root(), func(id NodeID) (Action, error) {
			order = append(order, name(doc, id))
			if id == ids["a1"] {
				return ActionStop, nil
			}
			return ActionContinue, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"root", "a", "a1"}, order)
	})
}

type trackingVisitor struct {
	visit  func(id NodeID) (Action, error)
	depart func(id NodeID) error
}

func (v *trackingVisitor) Visit(id NodeID) (Action, error) { return v.visit(id) }
func (v *trackingVisitor) Depart(id NodeID) error          { return v.depart(id) }
