// Package pdf wraps the PDF text-extraction library behind a small
// interface so ingestion can be tested without real files.
package pdf

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/policywise/policywise/internal/domain"
)

// TextExtractor extracts plain text from a PDF on disk.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// Extractor implements TextExtractor using ledongthuc/pdf.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText reads every page of the PDF at path and joins the page
// texts with spaces. A document with no extractable text is a
// validation failure, not an internal error.
func (e *Extractor) ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid PDF file", err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := extractPageText(page)
		if err != nil {
			// Skip unreadable pages; the document fails below only
			// when nothing at all could be extracted.
			continue
		}
		if text != "" {
			pages = append(pages, text)
		}
	}

	text := strings.TrimSpace(strings.Join(pages, " "))
	if text == "" {
		return "", domain.ErrNoExtractableText
	}

	return text, nil
}

func extractPageText(page pdf.Page) (text string, err error) {
	// The parsing library panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page text extraction panicked: %v", r)
		}
	}()

	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
