package docpress

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// MarkdownReader parses markdown sources through goldmark, extracts YAML
// frontmatter into document attributes, and declares the standard transform
// list (title promotion, section numbering).
type MarkdownReader struct {
	md goldmark.Markdown

	// frontmatter of the last Read, for settings overrides.
	fm *Frontmatter
}

// NewMarkdownReader creates a MarkdownReader.
func NewMarkdownReader() *MarkdownReader {
	return &MarkdownReader{md: goldmark.New()}
}

// Read parses a source into a document tree. goldmark has no native context
// support, so parsing runs in a goroutine raced against ctx.
func (r *MarkdownReader) Read(ctx context.Context, src *Source) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := src.Content()
	if err != nil {
		return nil, err
	}
	fm, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}
	r.fm = fm

	type result struct {
		doc *Document
		err error
	}
	done := make(chan result, 1)

	go func() {
		doc, err := r.buildTree(src, body)
		done <- result{doc: doc, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		fm.apply(res.doc)
		return res.doc, nil
	}
}

// Transforms declares the post-read transform list the scheduler must run.
func (r *MarkdownReader) Transforms() []TransformSpec {
	return []TransformSpec{
		Constructor(func() Transformer { return NewPromoteTitle() }),
		Constructor(func() Transformer { return NewNumberSections() }),
	}
}

// SettingsOverrides returns the frontmatter settings map of the last Read.
func (r *MarkdownReader) SettingsOverrides() map[string]any {
	if r.fm == nil {
		return nil
	}
	return r.fm.Settings
}

// buildTree converts goldmark's AST into the document tree. Markdown
// headings are flat, so sections nest through a stack keyed by heading
// level: a level-N heading closes every open section at depth >= N.
func (r *MarkdownReader) buildTree(src *Source, body string) (doc *Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrParseMarkdown, rec)
		}
	}()

	source := []byte(body)
	root := r.md.Parser().Parse(gmtext.NewReader(source))

	doc = NewDocument(src)
	type openSection struct {
		id    NodeID
		level int
	}
	stack := []openSection{{id: doc.Root(), level: 0}}
	parent := func() NodeID { return stack[len(stack)-1].id }

	for block := root.FirstChild(); block != nil; block = block.NextSibling() {
		if heading, ok := block.(*gast.Heading); ok {
			for len(stack) > 1 && stack[len(stack)-1].level >= heading.Level {
				stack = stack[:len(stack)-1]
			}
			section := doc.NewNode(KindSection)
			title := doc.NewNode(KindTitle)
			r.convertInlines(doc, title, heading, source)
			doc.SetAttr(section, "ids", slugify(doc.NodeText(title)))
			if err := doc.Append(section, title); err != nil {
				return nil, err
			}
			if err := doc.Append(parent(), section); err != nil {
				return nil, err
			}
			stack = append(stack, openSection{id: section, level: heading.Level})
			continue
		}
		if err := r.convertBlock(doc, parent(), block, source); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (r *MarkdownReader) convertBlock(doc *Document, parent NodeID, n gast.Node, source []byte) error {
	switch block := n.(type) {
	case *gast.Paragraph, *gast.TextBlock:
		para := doc.NewNode(KindParagraph)
		r.convertInlines(doc, para, n, source)
		return doc.Append(parent, para)
	case *gast.FencedCodeBlock:
		lit := doc.NewNode(KindLiteralBlock)
		if lang := block.Language(source); lang != nil {
			doc.SetAttr(lit, "language", string(lang))
		}
		if err := doc.Append(lit, doc.NewText(blockLines(block, source))); err != nil {
			return err
		}
		return doc.Append(parent, lit)
	case *gast.CodeBlock:
		lit := doc.NewNode(KindLiteralBlock)
		if err := doc.Append(lit, doc.NewText(blockLines(block, source))); err != nil {
			return err
		}
		return doc.Append(parent, lit)
	case *gast.List:
		list := doc.NewNode(KindBulletList)
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			li := doc.NewNode(KindListItem)
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				if err := r.convertBlock(doc, li, c, source); err != nil {
					return err
				}
			}
			if err := doc.Append(list, li); err != nil {
				return err
			}
		}
		return doc.Append(parent, list)
	case *gast.ThematicBreak:
		return doc.Append(parent, doc.NewNode(KindTransition))
	case *gast.Blockquote:
		// No dedicated kind; contents flatten into the parent.
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if err := r.convertBlock(doc, parent, c, source); err != nil {
				return err
			}
		}
		return nil
	default:
		// Unknown block constructs degrade to their text content.
		if text := string(n.Text(source)); text != "" {
			para := doc.NewNode(KindParagraph)
			if err := doc.Append(para, doc.NewText(text)); err != nil {
				return err
			}
			return doc.Append(parent, para)
		}
		return nil
	}
}

func (r *MarkdownReader) convertInlines(doc *Document, parent NodeID, n gast.Node, source []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch inline := c.(type) {
		case *gast.Text:
			_ = doc.Append(parent, doc.NewText(string(inline.Segment.Value(source))))
			if inline.SoftLineBreak() || inline.HardLineBreak() {
				_ = doc.Append(parent, doc.NewText("\n"))
			}
		case *gast.Emphasis:
			kind := KindEmphasis
			if inline.Level >= 2 {
				kind = KindStrong
			}
			span := doc.NewNode(kind)
			r.convertInlines(doc, span, c, source)
			_ = doc.Append(parent, span)
		case *gast.CodeSpan:
			code := doc.NewNode(KindLiteral)
			_ = doc.Append(code, doc.NewText(string(c.Text(source))))
			_ = doc.Append(parent, code)
		case *gast.Link:
			ref := doc.NewNode(KindReference)
			doc.SetAttr(ref, "refuri", string(inline.Destination))
			r.convertInlines(doc, ref, c, source)
			_ = doc.Append(parent, ref)
		case *gast.AutoLink:
			ref := doc.NewNode(KindReference)
			uri := string(inline.URL(source))
			doc.SetAttr(ref, "refuri", uri)
			_ = doc.Append(ref, doc.NewText(string(inline.Label(source))))
			_ = doc.Append(parent, ref)
		default:
			if text := string(c.Text(source)); text != "" {
				_ = doc.Append(parent, doc.NewText(text))
			}
		}
	}
}

// blockLines concatenates a code block's line segments.
func blockLines(n gast.Node, source []byte) string {
	var out []byte
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		out = append(out, seg.Value(source)...)
	}
	return string(out)
}

// slugify derives a stable id from title text.
func slugify(text string) string {
	out := make([]rune, 0, len(text))
	lastDash := true
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			out = append(out, r)
			lastDash = false
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
			lastDash = false
		default:
			if !lastDash {
				out = append(out, '-')
				lastDash = true
			}
		}
	}
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return "section"
	}
	return string(out)
}
