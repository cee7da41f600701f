// Package documents turns uploaded files into indexed, embedded chunks.
package documents

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// PDFParser extracts plain text from PDF bytes.
type PDFParser struct{}

// NewPDFParser creates a new PDF parser
func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

// ExtractText extracts the text of every page, pages joined by blank
// lines. A scanned or image-only PDF yields an empty string, not an
// error.
func (p *PDFParser) ExtractText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var textParts []string
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err == nil && strings.TrimSpace(text) != "" {
			textParts = append(textParts, text)
		}
	}

	return strings.Join(textParts, "\n\n"), nil
}
