package service

import (
	"context"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/policywise/policywise/internal/domain"
	"github.com/policywise/policywise/internal/telemetry"
)

// DocumentRepository persists document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, d *domain.Document) error
	List(ctx context.Context) ([]*domain.Document, error)
}

// DocumentFileStore writes uploaded files under a type-partitioned tree.
type DocumentFileStore interface {
	Save(source domain.DocumentSource, origFilename string, content []byte) (path, storedName string, err error)
	Remove(path string) error
}

// TextExtractor extracts plain text from a stored PDF.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// Indexer feeds extracted text into the vector index.
type Indexer interface {
	IndexDocument(ctx context.Context, doc *domain.Document, text string, mode IndexMode) (int, error)
}

// IngestInput describes one uploaded file.
type IngestInput struct {
	Filename string
	DocType  string
	Content  []byte
}

// IngestResult reports a successful ingestion.
type IngestResult struct {
	DocumentID string
	Text       string
	Path       string
	Chunks     int
}

// IngestService validates uploads, stores them on disk, extracts text,
// records document metadata, and indexes the extracted text.
type IngestService struct {
	docs      DocumentRepository
	files     DocumentFileStore
	extractor TextExtractor
	indexer   Indexer
	uuidGen   UUIDGenerator
}

func NewIngestService(
	docs DocumentRepository,
	files DocumentFileStore,
	extractor TextExtractor,
	indexer Indexer,
	uuidGen UUIDGenerator,
) *IngestService {
	return &IngestService{
		docs:      docs,
		files:     files,
		extractor: extractor,
		indexer:   indexer,
		uuidGen:   uuidGen,
	}
}

// Ingest runs the full upload pipeline. Validation failures are
// detected before any file is written. Once the file exists on disk,
// any later failure removes it again; cleanup failures are logged and
// otherwise ignored.
func (s *IngestService) Ingest(ctx context.Context, input IngestInput) (*IngestResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "IngestService.Ingest", telemetry.SpanAttributes{
		Source:    input.DocType,
		Operation: "ingest",
	})
	defer span.End()

	source, err := domain.ParseDocumentSource(input.DocType)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(filepath.Ext(input.Filename), ".pdf") {
		return nil, domain.ErrNotPDF
	}

	if len(input.Content) == 0 {
		return nil, domain.ErrEmptyFile
	}

	path, storedName, err := s.files.Save(source, input.Filename, input.Content)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to store uploaded file", err)
	}

	saved := false
	defer func() {
		if saved {
			return
		}
		if rmErr := s.files.Remove(path); rmErr != nil {
			log.Printf("ingest: cleanup of %s failed: %v", path, rmErr)
		}
	}()

	text, err := s.extractor.ExtractText(path)
	if err != nil {
		if _, ok := err.(*domain.DomainError); ok {
			return nil, err
		}
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid PDF file", err)
	}

	doc := domain.NewDocument(s.uuidGen.NewString(), storedName, source, path, time.Now().UTC())
	if err := domain.ValidateDocument(doc); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to build document record", err)
	}

	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to save document", err)
	}

	// The document row is the terminal write: from here the stored
	// file must survive even if indexing fails.
	saved = true

	chunks, err := s.indexer.IndexDocument(ctx, doc, text, IndexModeAppend)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to index document", err)
	}

	return &IngestResult{
		DocumentID: doc.ID,
		Text:       text,
		Path:       path,
		Chunks:     chunks,
	}, nil
}

// ListDocuments returns every stored document in creation order.
func (s *IngestService) ListDocuments(ctx context.Context) ([]*domain.Document, error) {
	return s.docs.List(ctx)
}
