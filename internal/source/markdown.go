package source

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser recovers text from a Markdown document using goldmark.
// Thematic breaks (---) act as page separators.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(data []byte, name string) (*Document, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(data))

	doc := &Document{
		Title: strings.TrimSuffix(strings.TrimSuffix(name, ".md"), ".markdown"),
	}

	var page bytes.Buffer
	flush := func() {
		if s := strings.TrimSpace(page.String()); s != "" {
			doc.Pages = append(doc.Pages, s)
		}
		page.Reset()
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if _, ok := n.(*ast.ThematicBreak); ok {
			flush()
			continue
		}
		t := blockText(n, data)
		if t == "" {
			continue
		}
		if page.Len() > 0 {
			page.WriteString("\n\n")
		}
		page.WriteString(t)
	}
	flush()

	return doc, nil
}

// blockText gets the text content of a goldmark AST node, including nested
// inlines.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(blockText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
