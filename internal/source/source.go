// Package source acquires document text: it downloads an exam document from
// a URL and recovers its ordered page text through a format-specific parser.
package source

import (
	"path"
	"strings"
)

// Document is the page text recovered from one fetched source. It lives for
// a single extraction call.
type Document struct {
	Title string
	Pages []string
}

// Parser extracts ordered page text from raw document bytes.
type Parser interface {
	Parse(data []byte, name string) (*Document, error)
}

// ForContent picks a parser from the response content type, falling back to
// the URL path extension. Unknown formats are treated as plain text.
func ForContent(contentType, name string) Parser {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "application/pdf"):
		return &PDFParser{}
	case strings.Contains(ct, "wordprocessingml"):
		return &DOCXParser{}
	case strings.Contains(ct, "text/html"):
		return &HTMLParser{}
	case strings.Contains(ct, "text/markdown"):
		return &MarkdownParser{}
	case strings.Contains(ct, "text/plain"):
		return &TextParser{}
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return &PDFParser{}
	case ".docx":
		return &DOCXParser{}
	case ".html", ".htm":
		return &HTMLParser{}
	case ".md", ".markdown":
		return &MarkdownParser{}
	default:
		return &TextParser{}
	}
}
