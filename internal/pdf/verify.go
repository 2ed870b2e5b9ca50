package pdfutil

import (
	"bytes"
	"fmt"

	pdf "github.com/ledongthuc/pdf"
)

// Verify checks that data is a readable PDF with at least one page. It is
// used as a sanity check before a PDF document is persisted; documents that
// fail it are recorded with a nil storage reference, same as upload failures.
func Verify(data []byte) error {
	reader := bytes.NewReader(data)
	doc, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return fmt.Errorf("new pdf reader: %w", err)
	}
	if doc.NumPage() < 1 {
		return fmt.Errorf("pdf has no pages")
	}
	return nil
}
