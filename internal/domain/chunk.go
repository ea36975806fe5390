package domain

import "time"

// DocumentChunk is one entry of the persisted vector index: a bounded
// slice of a document's extracted text plus its embedding and metadata.
type DocumentChunk struct {
	ID         string
	IndexName  string
	DocumentID string
	Source     DocumentSource
	Title      string
	ChunkIndex int
	Content    string
	Embedding  []float32
	CreatedAt  time.Time
}
