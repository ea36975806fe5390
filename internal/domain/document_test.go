package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentSource(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    DocumentSource
		wantErr bool
	}{
		{"policy", "policy", DocumentSourcePolicy, false},
		{"regulation", "regulation", DocumentSourceRegulation, false},
		{"mixed case", "Policy", DocumentSourcePolicy, false},
		{"surrounding space", "  regulation ", DocumentSourceRegulation, false},
		{"unknown", "contract", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDocumentSource(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDocumentSource)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateDocument(t *testing.T) {
	valid := NewDocument("doc-1", "basel3.pdf", DocumentSourceRegulation, "data/regulations/doc-1.pdf", time.Now().UTC())
	require.NoError(t, ValidateDocument(valid))

	t.Run("nil", func(t *testing.T) {
		assert.Error(t, ValidateDocument(nil))
	})

	t.Run("missing id", func(t *testing.T) {
		d := *valid
		d.ID = ""
		assert.Error(t, ValidateDocument(&d))
	})

	t.Run("missing title", func(t *testing.T) {
		d := *valid
		d.Title = ""
		assert.Error(t, ValidateDocument(&d))
	})

	t.Run("missing path", func(t *testing.T) {
		d := *valid
		d.FilePath = ""
		assert.Error(t, ValidateDocument(&d))
	})

	t.Run("bad source", func(t *testing.T) {
		d := *valid
		d.Source = "memo"
		assert.Error(t, ValidateDocument(&d))
	})
}

func TestValidateFeedbackEntry(t *testing.T) {
	entry := &FeedbackEntry{
		Question:  "What is the LCR minimum requirement?",
		Answer:    "100% of net cash outflows over 30 days.",
		Source:    "regulation",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, ValidateFeedbackEntry(entry))

	t.Run("missing question", func(t *testing.T) {
		f := *entry
		f.Question = ""
		assert.Error(t, ValidateFeedbackEntry(&f))
	})

	t.Run("missing answer", func(t *testing.T) {
		f := *entry
		f.Answer = ""
		assert.Error(t, ValidateFeedbackEntry(&f))
	})

	t.Run("source optional", func(t *testing.T) {
		f := *entry
		f.Source = ""
		assert.NoError(t, ValidateFeedbackEntry(&f))
	})
}

func TestDomainError(t *testing.T) {
	err := NewDomainError(ErrCodeValidation, "bad input")
	assert.Equal(t, "[VALIDATION_ERROR] bad input", err.Error())

	wrapped := NewDomainErrorWithCause(ErrCodeInternalError, "extraction failed", assert.AnError)
	assert.Contains(t, wrapped.Error(), "extraction failed")
	assert.ErrorIs(t, wrapped, assert.AnError)
}
