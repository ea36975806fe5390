package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/policywise/policywise/internal/domain"
)

// FeedbackRepository persists the query feedback log.
type FeedbackRepository struct {
	db dbtx
}

func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{db: pool}
}

// Create appends one feedback entry and returns its assigned id.
func (r *FeedbackRepository) Create(ctx context.Context, entry *domain.FeedbackEntry) (int64, error) {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO feedback_logs (question, answer, source, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		entry.Question, entry.Answer, nullableString(entry.Source), createdAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	entry.ID = id
	return id, nil
}

// List returns feedback entries newest first.
func (r *FeedbackRepository) List(ctx context.Context, limit int) ([]*domain.FeedbackEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, question, answer, source, created_at
		 FROM feedback_logs ORDER BY created_at DESC, id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFeedbackRows(rows)
}

func scanFeedbackRows(rows pgx.Rows) ([]*domain.FeedbackEntry, error) {
	var results []*domain.FeedbackEntry
	for rows.Next() {
		var entry domain.FeedbackEntry
		var source *string
		if err := rows.Scan(&entry.ID, &entry.Question, &entry.Answer, &source, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if source != nil {
			entry.Source = *source
		}
		results = append(results, &entry)
	}
	return results, rows.Err()
}
