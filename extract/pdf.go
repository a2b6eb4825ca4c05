package extract

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts per-page plain text from PDF files using the
// ledongthuc/pdf library.
type PDFExtractor struct{}

// NewPDFExtractor creates a PDF extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract opens the PDF at path and snapshots the text of every page.
// An unreadable or unparsable file yields a LoadError. Failures while
// extracting an individual page are recorded on that page only.
func (e *PDFExtractor) Extract(path string) (*Document, error) {
	if err := statError(path); err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	total := reader.NumPage()
	doc := &Document{
		Path:       path,
		TotalPages: total,
		Pages:      make([]PageText, 0, total),
	}

	for num := 1; num <= total; num++ {
		text, pageErr := extractPage(reader, num)
		doc.Pages = append(doc.Pages, PageText{
			Number: num,
			Text:   NormalizeLineEndings(text),
			Err:    pageErr,
		})
	}

	return doc, nil
}

// extractPage pulls the plain text of a single page. The underlying parser
// panics on some malformed content streams, so the panic is converted into a
// per-page error here instead of taking down the whole run.
func extractPage(reader *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("extracting page %d: %v", num, r)
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return "", nil
	}

	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("extracting page %d: %w", num, err)
	}
	return text, nil
}
