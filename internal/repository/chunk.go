package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"github.com/policywise/policywise/internal/domain"
)

// ChunkRepository handles persistence and similarity search of the
// embedded document chunks that make up the vector index.
type ChunkRepository struct {
	db dbtx
}

func NewChunkRepository(pool *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{db: pool}
}

func NewChunkRepositoryWithTx(tx pgx.Tx) *ChunkRepository {
	return &ChunkRepository{db: tx}
}

func (r *ChunkRepository) InsertChunks(ctx context.Context, chunks []domain.DocumentChunk) error {
	for _, c := range chunks {
		createdAt := c.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		_, err := r.db.Exec(ctx,
			`INSERT INTO document_chunks
				(id, index_name, document_id, source, title, chunk_index, content, embedding, created_at)
			 VALUES
				($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			c.ID,
			c.IndexName,
			c.DocumentID,
			c.Source,
			c.Title,
			c.ChunkIndex,
			c.Content,
			pgvector.NewVector(c.Embedding),
			createdAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *ChunkRepository) DeleteByDocument(ctx context.Context, indexName, documentID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM document_chunks WHERE index_name = $1 AND document_id = $2`,
		indexName, documentID,
	)
	return err
}

// DeleteIndex removes every chunk belonging to the named index.
func (r *ChunkRepository) DeleteIndex(ctx context.Context, indexName string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM document_chunks WHERE index_name = $1`,
		indexName,
	)
	return err
}

func (r *ChunkRepository) CountByIndex(ctx context.Context, indexName string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM document_chunks WHERE index_name = $1`,
		indexName,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SearchByEmbedding returns the chunks nearest to the query embedding.
// A non-empty source restricts results to chunks with exactly that
// source; a source matching nothing yields an empty result.
func (r *ChunkRepository) SearchByEmbedding(ctx context.Context, indexName string, embedding []float32, source domain.DocumentSource, limit int) ([]*domain.DocumentChunk, error) {
	if limit <= 0 {
		limit = 4
	}

	vec := pgvector.NewVector(embedding)

	query := `
		SELECT id, index_name, document_id, source, title, chunk_index, content, created_at
		FROM document_chunks
		WHERE index_name = $1`
	args := []interface{}{indexName, vec, limit}

	if source != "" {
		query += " AND source = $4"
		args = append(args, source)
	}

	query += `
		ORDER BY embedding <=> $2
		LIMIT $3`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]*domain.DocumentChunk, 0)
	for rows.Next() {
		var c domain.DocumentChunk
		if err := rows.Scan(&c.ID, &c.IndexName, &c.DocumentID, &c.Source, &c.Title, &c.ChunkIndex, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, &c)
	}

	return results, rows.Err()
}
