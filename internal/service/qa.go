package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/policywise/policywise/internal/domain"
	"github.com/policywise/policywise/internal/telemetry"
)

const (
	// RetrievalTopK is the number of chunks fed to the model per question.
	RetrievalTopK = 4
)

// GenerationClient produces an answer from an assembled prompt.
type GenerationClient interface {
	GenerateAnswer(ctx context.Context, prompt string) (string, error)
}

// FeedbackRepository records every answered query.
type FeedbackRepository interface {
	Create(ctx context.Context, entry *domain.FeedbackEntry) (int64, error)
}

// AnswerInput is one question with an optional exact source filter.
type AnswerInput struct {
	Question string
	Source   string
}

// AnswerOutput carries the generated answer and the retrieval context
// that produced it.
type AnswerOutput struct {
	Answer    string
	Retrieved int
}

// QAService answers questions by retrieving the most relevant indexed
// chunks and running them plus the question through a chat model.
type QAService struct {
	embedding  EmbeddingClient
	generation GenerationClient
	chunks     ChunkRepository
	feedback   FeedbackRepository
	indexName  string
	topK       int
}

func NewQAService(
	embedding EmbeddingClient,
	generation GenerationClient,
	chunks ChunkRepository,
	feedback FeedbackRepository,
) *QAService {
	return &QAService{
		embedding:  embedding,
		generation: generation,
		chunks:     chunks,
		feedback:   feedback,
		indexName:  DefaultIndexName,
		topK:       RetrievalTopK,
	}
}

// Answer runs retrieval and generation for one question. A source
// filter restricts retrieval to chunks whose source matches exactly; a
// filter matching nothing still invokes the model with empty context.
// Every successful answer is recorded to the feedback log; a logging
// failure does not mask the answer.
func (s *QAService) Answer(ctx context.Context, input AnswerInput) (*AnswerOutput, error) {
	ctx, span := telemetry.StartSpan(ctx, "QAService.Answer", telemetry.SpanAttributes{
		Source:    input.Source,
		Operation: "answer",
	})
	defer span.End()

	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, domain.ErrEmptyQuestion
	}

	count, err := s.chunks.CountByIndex(ctx, s.indexName)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to read vector index", err)
	}
	if count == 0 {
		return nil, domain.ErrIndexNotFound
	}

	queryEmbedding, err := s.embedding.GenerateEmbedding(ctx, question)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to embed question", err)
	}

	var source domain.DocumentSource
	filter := strings.TrimSpace(input.Source)
	if filter != "" {
		// The filter is advisory: an unknown source retrieves nothing
		// rather than erroring.
		source = domain.DocumentSource(filter)
	}

	retrieved, err := s.chunks.SearchByEmbedding(ctx, s.indexName, queryEmbedding, source, s.topK)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to search vector index", err)
	}

	prompt := buildPrompt(question, retrieved)

	answer, err := s.generation.GenerateAnswer(ctx, prompt)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to generate answer", err)
	}

	entry := &domain.FeedbackEntry{
		Question:  question,
		Answer:    answer,
		Source:    filter,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.feedback.Create(ctx, entry); err != nil {
		log.Printf("qa: failed to record feedback entry: %v", err)
		telemetry.CaptureError(ctx, err)
	}

	return &AnswerOutput{
		Answer:    answer,
		Retrieved: len(retrieved),
	}, nil
}

func buildPrompt(question string, chunks []*domain.DocumentChunk) string {
	var b strings.Builder

	b.WriteString("Answer the question using only the context below. ")
	b.WriteString("Quote the relevant passage where possible; if the context does not contain the answer, say so.\n\n")

	if len(chunks) == 0 {
		b.WriteString("Context: (no matching documents)\n")
	} else {
		b.WriteString("Context:\n")
		for i, chunk := range chunks {
			fmt.Fprintf(&b, "[%d] %s (%s)\n%s\n\n", i+1, chunk.Title, chunk.Source, chunk.Content)
		}
	}

	b.WriteString("Question: ")
	b.WriteString(question)

	return b.String()
}
