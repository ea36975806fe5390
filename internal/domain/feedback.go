package domain

import (
	"fmt"
	"time"
)

// FeedbackEntry is an append-only record of one answered query.
type FeedbackEntry struct {
	ID        int64
	Question  string
	Answer    string
	Source    string // optional source filter used for the query
	CreatedAt time.Time
}

// ValidateFeedbackEntry validates a FeedbackEntry instance
func ValidateFeedbackEntry(f *FeedbackEntry) error {
	if f == nil {
		return fmt.Errorf("feedback entry cannot be nil")
	}

	if f.Question == "" {
		return fmt.Errorf("feedback Question is required")
	}

	if f.Answer == "" {
		return fmt.Errorf("feedback Answer is required")
	}

	return nil
}
