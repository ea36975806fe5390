package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/policywise/policywise/internal/domain"
)

// DefaultIndexName is the persisted vector index written and queried
// unless a deployment overrides it. The same name always resolves to
// the same row set.
const DefaultIndexName = "default"

// IndexMode selects how indexing treats chunks already persisted for
// the same document.
type IndexMode string

const (
	// IndexModeAppend adds chunks alongside whatever the index holds.
	IndexModeAppend IndexMode = "append"
	// IndexModeReplace drops the document's existing chunks first.
	IndexModeReplace IndexMode = "replace"
)

// EmbeddingClient defines the interface for generating embeddings
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ChunkRepository persists vector index entries.
type ChunkRepository interface {
	InsertChunks(ctx context.Context, chunks []domain.DocumentChunk) error
	DeleteByDocument(ctx context.Context, indexName, documentID string) error
	CountByIndex(ctx context.Context, indexName string) (int, error)
	SearchByEmbedding(ctx context.Context, indexName string, embedding []float32, source domain.DocumentSource, limit int) ([]*domain.DocumentChunk, error)
}

// UUIDGenerator generates unique IDs
type UUIDGenerator interface {
	NewString() string
}

// IndexService splits extracted text into overlapping chunks, embeds
// each chunk, and persists the results into a named vector index.
type IndexService struct {
	embedding EmbeddingClient
	chunks    ChunkRepository
	uuidGen   UUIDGenerator
	indexName string
	chunkCfg  ChunkConfig
}

func NewIndexService(embedding EmbeddingClient, chunks ChunkRepository, uuidGen UUIDGenerator) *IndexService {
	return &IndexService{
		embedding: embedding,
		chunks:    chunks,
		uuidGen:   uuidGen,
		indexName: DefaultIndexName,
		chunkCfg:  DefaultChunkConfig(),
	}
}

// IndexName returns the name of the index this service writes to.
func (s *IndexService) IndexName() string {
	return s.indexName
}

// IndexDocument chunks and embeds text, then persists one index entry
// per chunk tagged with the document's identity and source. Concurrent
// indexing of the same index name interleaves row by row; last write
// wins and no locking is attempted.
func (s *IndexService) IndexDocument(ctx context.Context, doc *domain.Document, text string, mode IndexMode) (int, error) {
	if doc == nil {
		return 0, fmt.Errorf("document is required")
	}

	if mode == IndexModeReplace {
		if err := s.chunks.DeleteByDocument(ctx, s.indexName, doc.ID); err != nil {
			return 0, fmt.Errorf("failed to clear existing chunks: %w", err)
		}
	}

	pieces := chunkText(text, s.chunkCfg)
	if len(pieces) == 0 {
		return 0, nil
	}

	createdAt := time.Now().UTC()
	entries := make([]domain.DocumentChunk, 0, len(pieces))
	for i, piece := range pieces {
		embedding, err := s.embedding.GenerateEmbedding(ctx, piece)
		if err != nil {
			return 0, fmt.Errorf("failed to generate chunk embedding: %w", err)
		}

		entries = append(entries, domain.DocumentChunk{
			ID:         s.uuidGen.NewString(),
			IndexName:  s.indexName,
			DocumentID: doc.ID,
			Source:     doc.Source,
			Title:      doc.Title,
			ChunkIndex: i,
			Content:    piece,
			Embedding:  embedding,
			CreatedAt:  createdAt,
		})
	}

	if err := s.chunks.InsertChunks(ctx, entries); err != nil {
		return 0, fmt.Errorf("failed to persist index entries: %w", err)
	}

	return len(entries), nil
}

// DefaultUUIDGenerator is the production UUIDGenerator
type DefaultUUIDGenerator struct{}

func (g *DefaultUUIDGenerator) NewString() string {
	return uuid.NewString()
}
