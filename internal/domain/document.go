package domain

import (
	"fmt"
	"strings"
	"time"
)

// DocumentSource classifies an uploaded document
type DocumentSource string

const (
	DocumentSourcePolicy     DocumentSource = "policy"
	DocumentSourceRegulation DocumentSource = "regulation"
)

// Document represents an ingested PDF document
type Document struct {
	ID        string
	Title     string
	Source    DocumentSource
	FilePath  string
	CreatedAt time.Time
}

// NewDocument creates a new Document instance
func NewDocument(id, title string, source DocumentSource, filePath string, createdAt time.Time) *Document {
	return &Document{
		ID:        id,
		Title:     title,
		Source:    source,
		FilePath:  filePath,
		CreatedAt: createdAt,
	}
}

// ValidateDocument validates a Document instance
func ValidateDocument(d *Document) error {
	if d == nil {
		return fmt.Errorf("document cannot be nil")
	}

	if d.ID == "" {
		return fmt.Errorf("document ID is required")
	}

	if d.Title == "" {
		return fmt.Errorf("document Title is required")
	}

	if d.FilePath == "" {
		return fmt.Errorf("document FilePath is required")
	}

	if !IsValidDocumentSource(d.Source) {
		return fmt.Errorf("document Source is invalid: %s", d.Source)
	}

	return nil
}

// IsValidDocumentSource checks if a DocumentSource is in the allowed set
func IsValidDocumentSource(s DocumentSource) bool {
	switch s {
	case DocumentSourcePolicy, DocumentSourceRegulation:
		return true
	}
	return false
}

// ParseDocumentSource normalizes and validates a raw doc_type value
func ParseDocumentSource(raw string) (DocumentSource, error) {
	source := DocumentSource(strings.ToLower(strings.TrimSpace(raw)))
	if !IsValidDocumentSource(source) {
		return "", ErrInvalidDocumentSource
	}
	return source, nil
}
