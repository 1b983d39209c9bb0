package ingest

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDFText extracts text from a PDF page by page, in page order.
// Pages that yield no extractable text contribute nothing; the remaining
// page texts are joined with a single newline.
func extractPDFText(path string) (text string, err error) {
	// The pdf package panics on some malformed files instead of returning
	// an error; a damaged upload must surface as a read error, not crash
	// the request.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			// A single unreadable page is not an error for the document
			continue
		}
		if strings.TrimSpace(content) == "" {
			continue
		}
		// Page text is kept as extracted; only the joined result gets
		// trimmed, by the caller
		pages = append(pages, content)
	}

	return strings.Join(pages, "\n"), nil
}
