package docpress

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderText(t *testing.T, doc *Document) string {
	t.Helper()
	dw := NewDocumentWriter(NewTextWriter(), nil)
	require.NoError(t, dw.Attach(doc))
	var buf strings.Builder
	require.NoError(t, dw.Write(&buf))
	return buf.String()
}

func TestTextWriter(t *testing.T) {
	t.Run("paragraphs separated by blank lines", func(t *testing.T) {
		doc, _, _ := twoParaDoc(t)
		assert.Equal(t, "first\n\nsecond\n\n", renderText(t, doc))
	})

	t.Run("bare text leaf reproduced verbatim", func(t *testing.T) {
		doc := NewDocument(&Source{Path: "raw.md"})
		require.NoError(t, doc.Append(doc.Root(), doc.NewText("exact content\nwith newline")))
		assert.Equal(t, "exact content\nwith newline", renderText(t, doc))
	})

	t.Run("markup contributes nothing", func(t *testing.T) {
		doc := NewDocument(&Source{Path: "inline.md"})
		p := doc.NewNode(KindParagraph)
		require.NoError(t, doc.Append(doc.Root(), p))
		em := doc.NewNode(KindEmphasis)
		require.NoError(t, doc.Append(p, em))
		require.NoError(t, doc.Append(em, doc.NewText("plain")))
		assert.Equal(t, "plain\n\n", renderText(t, doc))
	})

	t.Run("list items on separate lines", func(t *testing.T) {
		doc := NewDocument(&Source{Path: "list.md"})
		list := doc.NewNode(KindBulletList)
		require.NoError(t, doc.Append(doc.Root(), list))
		for _, label := range []string{"one", "two"} {
			item := doc.NewNode(KindListItem)
			require.NoError(t, doc.Append(list, item))
			require.NoError(t, doc.Append(item, doc.NewText(label)))
		}
		assert.Equal(t, "one\ntwo\n\n\n", renderText(t, doc))
	})

	t.Run("single body part", func(t *testing.T) {
		w := NewTextWriter()
		assert.Equal(t, []string{"body"}, w.PartNames())
		assert.Equal(t, "body", w.MainPart())
	})
}
