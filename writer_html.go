package docpress

import (
	"bytes"
	"fmt"
	"html"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// HTMLWriter renders a document as a standalone HTML5 page split into three
// parts: "head" (up to and including the <body> open tag), "body" (document
// content), and "foot" (closing boilerplate, datestamp, source link).
type HTMLWriter struct {
	settings  Values
	formatter *chromahtml.Formatter
}

// NewHTMLWriter creates an HTMLWriter bound to one run's resolved settings.
// Syntax highlighting uses CSS classes, keeping the markup small and the
// colors under stylesheet control.
func NewHTMLWriter(settings Values) *HTMLWriter {
	return &HTMLWriter{
		settings:  settings,
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

func (w *HTMLWriter) PartNames() []string { return []string{"head", "body", "foot"} }
func (w *HTMLWriter) MainPart() string    { return "body" }

// Visit renders a node's opening markup into the active part.
func (w *HTMLWriter) Visit(doc *Document, id NodeID, out *Accumulator) (Action, error) {
	switch doc.Kind(id) {
	case KindDocument:
		return ActionContinue, out.WithPart("head", func() error {
			w.writeHead(doc, out)
			return nil
		})
	case KindSection:
		if ref, ok := doc.Attr(id, "ids"); ok {
			out.Append(fmt.Sprintf("<section id=%q>\n", ref))
		} else {
			out.Append("<section>\n")
		}
	case KindTitle:
		out.Append(fmt.Sprintf("<h%d>", w.headingLevel(doc, id)))
		if number, ok := doc.Attr(id, "number"); ok {
			out.Append(html.EscapeString(number), "&nbsp;&nbsp;")
		}
	case KindParagraph:
		out.Append("<p>")
	case KindText:
		out.Append(html.EscapeString(doc.Text(id)))
	case KindEmphasis:
		out.Append("<em>")
	case KindStrong:
		out.Append("<strong>")
	case KindLiteral:
		out.Append("<code>")
	case KindLiteralBlock:
		lang, _ := doc.Attr(id, "language")
		out.Append(w.highlight(doc.NodeText(id), lang))
		return ActionSkipChildren, nil
	case KindBulletList:
		out.Append("<ul>\n")
	case KindListItem:
		out.Append("<li>")
	case KindReference:
		uri, _ := doc.Attr(id, "refuri")
		out.Append(fmt.Sprintf("<a href=%q>", uri))
	case KindTransition:
		out.Append("<hr/>\n")
		return ActionSkipChildren, nil
	case KindSystemMessage:
		level, _ := doc.Attr(id, "level")
		out.Append(fmt.Sprintf("<div class=\"system-message level-%s\">\n", html.EscapeString(level)))
	}
	return ActionContinue, nil
}

// Depart renders a node's closing markup.
func (w *HTMLWriter) Depart(doc *Document, id NodeID, out *Accumulator) error {
	switch doc.Kind(id) {
	case KindDocument:
		return out.WithPart("foot", func() error {
			w.writeFoot(doc, out)
			return nil
		})
	case KindSection:
		out.Append("</section>\n")
	case KindTitle:
		out.Append(fmt.Sprintf("</h%d>\n", w.headingLevel(doc, id)))
	case KindParagraph:
		out.Append("</p>\n")
	case KindEmphasis:
		out.Append("</em>")
	case KindStrong:
		out.Append("</strong>")
	case KindLiteral:
		out.Append("</code>")
	case KindBulletList:
		out.Append("</ul>\n")
	case KindListItem:
		out.Append("</li>\n")
	case KindReference:
		out.Append("</a>")
	case KindSystemMessage:
		out.Append("</div>\n")
	}
	return nil
}

func (w *HTMLWriter) writeHead(doc *Document, out *Accumulator) {
	lang := w.settings.String("language-code")
	encoding := w.settings.String("output-encoding")
	out.Append(
		"<!DOCTYPE html>\n",
		fmt.Sprintf("<html lang=%q>\n", lang),
		"<head>\n",
		fmt.Sprintf("<meta charset=%q />\n", encoding),
	)
	if w.settings.Bool("generator") {
		out.Append("<meta name=\"generator\" content=\"docpress\" />\n")
	}
	title := doc.Source()
	if t, ok := doc.Attr(doc.Root(), "title"); ok && t != "" {
		title = t
	}
	out.Append(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(title)))
	if sheet := w.settings.String("stylesheet"); sheet != "" {
		out.Append(fmt.Sprintf("<link rel=\"stylesheet\" href=%q />\n", sheet))
	}
	out.Append("</head>\n<body>\n")
}

func (w *HTMLWriter) writeFoot(doc *Document, out *Accumulator) {
	if stamp := w.settings.String("datestamp"); stamp != "" {
		out.Append(fmt.Sprintf("<p class=\"datestamp\">%s</p>\n", html.EscapeString(stamp)))
	}
	if w.settings.Bool("source-link") && doc.Source() != "" {
		out.Append(fmt.Sprintf("<p class=\"source-link\"><a href=%q>source</a></p>\n", doc.Source()))
	}
	out.Append("</body>\n</html>\n")
}

// headingLevel maps a title's section nesting depth to an HTML heading
// level, offset by the initial-header-level setting and capped at h6.
func (w *HTMLWriter) headingLevel(doc *Document, title NodeID) int {
	depth := 0
	for id := doc.Parent(title); id != NoNode; id = doc.Parent(id) {
		if doc.Kind(id) == KindSection {
			depth++
		}
	}
	level := w.settings.Int("initial-header-level") + depth - 1
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return level
}

// highlight renders a literal block through chroma. Unknown languages fall
// back to the passthrough lexer; a formatter failure degrades to an escaped
// <pre> block rather than failing the traversal.
func (w *HTMLWriter) highlight(code, lang string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "<pre><code>" + html.EscapeString(code) + "</code></pre>\n"
	}
	var buf bytes.Buffer
	if err := w.formatter.Format(&buf, styles.Fallback, iterator); err != nil {
		return "<pre><code>" + html.EscapeString(code) + "</code></pre>\n"
	}
	buf.WriteByte('\n')
	return buf.String()
}
