package docpress

import (
	"fmt"
	"strings"

	"github.com/alnah/go-docpress/internal/yamlutil"
)

const frontmatterFence = "---"

// Frontmatter is the YAML block a markdown source may open with. Document
// metadata lands in tree attributes; the Settings map overrides resolved
// settings for this document only, validated against the catalogue.
type Frontmatter struct {
	Title    string         `yaml:"title"`
	Author   string         `yaml:"author"`
	Date     string         `yaml:"date"`
	Settings map[string]any `yaml:"settings"`
}

// splitFrontmatter separates a leading YAML frontmatter block from the body.
// Sources without a fence pass through untouched with a nil frontmatter.
func splitFrontmatter(text string) (*Frontmatter, string, error) {
	rest, ok := strings.CutPrefix(text, frontmatterFence+"\n")
	if !ok {
		return nil, text, nil
	}
	block, body, ok := strings.Cut(rest, "\n"+frontmatterFence)
	if !ok {
		return nil, "", fmt.Errorf("%w: unterminated block", ErrFrontmatter)
	}
	body = strings.TrimPrefix(body, "\n")

	var fm Frontmatter
	if err := yamlutil.Unmarshal([]byte(block), &fm); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFrontmatter, err)
	}
	return &fm, body, nil
}

// apply copies frontmatter metadata onto the document root.
func (fm *Frontmatter) apply(doc *Document) {
	if fm == nil {
		return
	}
	root := doc.Root()
	if fm.Title != "" {
		doc.SetAttr(root, "title", fm.Title)
	}
	if fm.Author != "" {
		doc.SetAttr(root, "author", fm.Author)
	}
	if fm.Date != "" {
		doc.SetAttr(root, "date", fm.Date)
	}
}

// MergeSettings validates frontmatter settings overrides against the
// catalogue and merges them into values. The merge happens before the run
// begins; the resolved mapping stays immutable afterwards.
func (fm *Frontmatter) MergeSettings(reg *Registry, values Values, fallback FallbackPolicy) error {
	if fm == nil || len(fm.Settings) == 0 {
		return nil
	}
	if reg == nil {
		reg = DefaultRegistry()
	}
	r := &Resolver{Registry: reg, Fallback: fallback}
	for name, v := range fm.Settings {
		if err := r.setValue(reg, values, NormalizeOptionName(name), "", v); err != nil {
			return err
		}
	}
	return nil
}
