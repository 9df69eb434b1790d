package docpress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sectionWithTitle appends a section with a title node under parent.
func sectionWithTitle(t *testing.T, doc *Document, parent NodeID, text string) NodeID {
	t.Helper()
	section := doc.NewNode(KindSection)
	title := doc.NewNode(KindTitle)
	require.NoError(t, doc.Append(title, doc.NewText(text)))
	require.NoError(t, doc.Append(section, title))
	require.NoError(t, doc.Append(parent, section))
	return section
}

func applyOne(t *testing.T, doc *Document, tr Transformer) {
	t.Helper()
	require.NoError(t, ApplyTransforms(doc, []TransformSpec{Instance(tr)}, testSettings(), nil))
}

func TestPromoteTitle(t *testing.T) {
	t.Run("lone section is promoted", func(t *testing.T) {
		doc := NewDocument(&Source{Path: "page.md"})
		section := sectionWithTitle(t, doc, doc.Root(), "The Title")
		para := doc.NewNode(KindParagraph)
		require.NoError(t, doc.Append(para, doc.NewText("body")))
		require.NoError(t, doc.Append(section, para))

		applyOne(t, doc, NewPromoteTitle())

		title, ok := doc.Attr(doc.Root(), "title")
		require.True(t, ok)
		assert.Equal(t, "The Title", title)

		// The section is gone; its paragraph now hangs off the root.
		children := doc.Children(doc.Root())
		require.Len(t, children, 1)
		assert.Equal(t, KindParagraph, doc.Kind(children[0]))
	})

	t.Run("multiple sections left alone", func(t *testing.T) {
		doc := NewDocument(&Source{Path: "page.md"})
		sectionWithTitle(t, doc, doc.Root(), "One")
		sectionWithTitle(t, doc, doc.Root(), "Two")

		applyOne(t, doc, NewPromoteTitle())

		_, ok := doc.Attr(doc.Root(), "title")
		assert.False(t, ok)
		assert.Len(t, doc.Children(doc.Root()), 2)
	})

	t.Run("loose content blocks promotion", func(t *testing.T) {
		doc := NewDocument(&Source{Path: "page.md"})
		sectionWithTitle(t, doc, doc.Root(), "One")
		para := doc.NewNode(KindParagraph)
		require.NoError(t, doc.Append(para, doc.NewText("stray")))
		require.NoError(t, doc.Append(doc.Root(), para))

		applyOne(t, doc, NewPromoteTitle())

		_, ok := doc.Attr(doc.Root(), "title")
		assert.False(t, ok)
	})

	t.Run("section without a leading title left alone", func(t *testing.T) {
		doc := NewDocument(&Source{Path: "page.md"})
		section := doc.NewNode(KindSection)
		para := doc.NewNode(KindParagraph)
		require.NoError(t, doc.Append(para, doc.NewText("no title")))
		require.NoError(t, doc.Append(section, para))
		require.NoError(t, doc.Append(doc.Root(), section))

		applyOne(t, doc, NewPromoteTitle())

		_, ok := doc.Attr(doc.Root(), "title")
		assert.False(t, ok)
		assert.Len(t, doc.Children(doc.Root()), 1)
	})
}

func TestNumberSections(t *testing.T) {
	titleNumber := func(doc *Document, section NodeID) string {
		num, _ := doc.Attr(doc.Child(section, 0), "number")
		return num
	}

	t.Run("dotted numbers by depth", func(t *testing.T) {
		doc := NewDocument(&Source{Path: "page.md"})
		s1 := sectionWithTitle(t, doc, doc.Root(), "One")
		s11 := sectionWithTitle(t, doc, s1, "One-One")
		s12 := sectionWithTitle(t, doc, s1, "One-Two")
		s2 := sectionWithTitle(t, doc, doc.Root(), "Two")

		applyOne(t, doc, NewNumberSections())

		assert.Equal(t, "1", titleNumber(doc, s1))
		assert.Equal(t, "1.1", titleNumber(doc, s11))
		assert.Equal(t, "1.2", titleNumber(doc, s12))
		assert.Equal(t, "2", titleNumber(doc, s2))
	})

	t.Run("diagnostics section stays unnumbered", func(t *testing.T) {
		doc := NewDocument(&Source{Path: "page.md"})
		s1 := sectionWithTitle(t, doc, doc.Root(), "Content")
		diag := sectionWithTitle(t, doc, doc.Root(), DiagnosticsTitle)
		s3 := sectionWithTitle(t, doc, doc.Root(), "More")

		applyOne(t, doc, NewNumberSections())

		assert.Equal(t, "1", titleNumber(doc, s1))
		assert.Empty(t, titleNumber(doc, diag))
		// Numbering continues past the skipped section without a gap.
		assert.Equal(t, "2", titleNumber(doc, s3))
	})

	t.Run("non-section children ignored", func(t *testing.T) {
		doc := NewDocument(&Source{Path: "page.md"})
		para := doc.NewNode(KindParagraph)
		require.NoError(t, doc.Append(para, doc.NewText("intro")))
		require.NoError(t, doc.Append(doc.Root(), para))
		s1 := sectionWithTitle(t, doc, doc.Root(), "One")

		applyOne(t, doc, NewNumberSections())

		assert.Equal(t, "1", titleNumber(doc, s1))
	})
}
