package docpress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFrontmatter(t *testing.T) {
	t.Run("no fence passes through", func(t *testing.T) {
		fm, body, err := splitFrontmatter("# Title\n\ntext\n")
		require.NoError(t, err)
		assert.Nil(t, fm)
		assert.Equal(t, "# Title\n\ntext\n", body)
	})

	t.Run("metadata block", func(t *testing.T) {
		src := "---\ntitle: My Page\nauthor: Ada\ndate: 2026-08-30\n---\n\nbody text\n"
		fm, body, err := splitFrontmatter(src)
		require.NoError(t, err)
		require.NotNil(t, fm)
		assert.Equal(t, "My Page", fm.Title)
		assert.Equal(t, "Ada", fm.Author)
		assert.Equal(t, "2026-08-30", fm.Date)
		assert.Equal(t, "\nbody text\n", body)
	})

	t.Run("settings map", func(t *testing.T) {
		src := "---\nsettings:\n  initial-header-level: 2\n  generator: false\n---\ntext\n"
		fm, _, err := splitFrontmatter(src)
		require.NoError(t, err)
		require.NotNil(t, fm)
		assert.Len(t, fm.Settings, 2)
	})

	t.Run("unterminated block", func(t *testing.T) {
		_, _, err := splitFrontmatter("---\ntitle: broken\n")
		assert.ErrorIs(t, err, ErrFrontmatter)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, _, err := splitFrontmatter("---\ntitle: [unclosed\n---\ntext\n")
		assert.ErrorIs(t, err, ErrFrontmatter)
	})

	t.Run("dash prefix inside body is not a fence", func(t *testing.T) {
		fm, body, err := splitFrontmatter("text first\n---\nnot frontmatter\n")
		require.NoError(t, err)
		assert.Nil(t, fm)
		assert.Equal(t, "text first\n---\nnot frontmatter\n", body)
	})
}

func TestFrontmatterApply(t *testing.T) {
	t.Run("copies metadata to root attributes", func(t *testing.T) {
		doc := NewDocument(&Source{Path: "page.md"})
		fm := &Frontmatter{Title: "My Page", Author: "Ada", Date: "2026-08-30"}
		fm.apply(doc)

		title, _ := doc.Attr(doc.Root(), "title")
		author, _ := doc.Attr(doc.Root(), "author")
		date, _ := doc.Attr(doc.Root(), "date")
		assert.Equal(t, "My Page", title)
		assert.Equal(t, "Ada", author)
		assert.Equal(t, "2026-08-30", date)
	})

	t.Run("empty fields leave attributes unset", func(t *testing.T) {
		doc := NewDocument(&Source{Path: "page.md"})
		(&Frontmatter{}).apply(doc)
		_, ok := doc.Attr(doc.Root(), "title")
		assert.False(t, ok)
	})

	t.Run("nil receiver is a no-op", func(t *testing.T) {
		doc := NewDocument(&Source{Path: "page.md"})
		var fm *Frontmatter
		fm.apply(doc)
		_, ok := doc.Attr(doc.Root(), "title")
		assert.False(t, ok)
	})
}

func TestFrontmatterMergeSettings(t *testing.T) {
	resolved := func(t *testing.T) Values {
		t.Helper()
		values, err := (&Resolver{SearchPath: []string{}}).Resolve("")
		require.NoError(t, err)
		return values
	}

	t.Run("typed overrides win over resolved values", func(t *testing.T) {
		values := resolved(t)
		fm := &Frontmatter{Settings: map[string]any{
			"initial-header-level": 3,
			"generator":            false,
		}}
		require.NoError(t, fm.MergeSettings(nil, values, UseDefault))
		assert.Equal(t, 3, values.Int("initial-header-level"))
		assert.False(t, values.Bool("generator"))
	})

	t.Run("underscore names normalize", func(t *testing.T) {
		values := resolved(t)
		fm := &Frontmatter{Settings: map[string]any{"initial_header_level": 4}}
		require.NoError(t, fm.MergeSettings(nil, values, UseDefault))
		assert.Equal(t, 4, values.Int("initial-header-level"))
	})

	t.Run("invalid value falls back per policy", func(t *testing.T) {
		values := resolved(t)
		fm := &Frontmatter{Settings: map[string]any{"initial-header-level": "loud"}}
		require.NoError(t, fm.MergeSettings(nil, values, UseDefault))
		assert.Equal(t, 1, values.Int("initial-header-level"))
	})

	t.Run("abort policy propagates the failure", func(t *testing.T) {
		values := resolved(t)
		fm := &Frontmatter{Settings: map[string]any{"initial-header-level": "loud"}}
		err := fm.MergeSettings(nil, values, Abort)
		assert.ErrorIs(t, err, ErrConfigValue)
	})

	t.Run("nil frontmatter and empty settings no-op", func(t *testing.T) {
		values := resolved(t)
		var fm *Frontmatter
		require.NoError(t, fm.MergeSettings(nil, values, UseDefault))
		require.NoError(t, (&Frontmatter{}).MergeSettings(nil, values, UseDefault))
	})
}
