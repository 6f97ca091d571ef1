package source

import "strings"

// TextParser handles plain text. Form feeds, the page separator most
// pdftotext-style exports emit, split the text into pages.
type TextParser struct{}

func (p *TextParser) Parse(data []byte, name string) (*Document, error) {
	doc := &Document{Title: strings.TrimSuffix(name, ".txt")}
	for _, page := range strings.Split(string(data), "\f") {
		if strings.TrimSpace(page) == "" {
			continue
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}
