package source

import (
	"bytes"
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser recovers per-page plain text from a PDF. Pages the library
// cannot decode are skipped rather than failing the document.
type PDFParser struct{}

func (p *PDFParser) Parse(data []byte, name string) (*Document, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	doc := &Document{Title: strings.TrimSuffix(name, ".pdf")}
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		doc.Pages = append(doc.Pages, text)
	}
	return doc, nil
}
