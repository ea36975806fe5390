package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/policywise/policywise/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGenerationClient struct {
	mock.Mock
}

func (m *MockGenerationClient) GenerateAnswer(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, entry *domain.FeedbackEntry) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func retrievedChunks() []*domain.DocumentChunk {
	return []*domain.DocumentChunk{
		{
			ID:         "c-1",
			IndexName:  DefaultIndexName,
			DocumentID: "doc-1",
			Source:     domain.DocumentSourceRegulation,
			Title:      "doc-1.pdf",
			ChunkIndex: 0,
			Content:    "The LCR minimum requirement is 100% of net cash outflows.",
			CreatedAt:  time.Now().UTC(),
		},
	}
}

func newQAService(embedder *MockEmbeddingClient, gen *MockGenerationClient, chunks *MockChunkRepository, feedback *MockFeedbackRepository) *QAService {
	return NewQAService(embedder, gen, chunks, feedback)
}

func TestAnswer_Success(t *testing.T) {
	embedder := new(MockEmbeddingClient)
	gen := new(MockGenerationClient)
	chunks := new(MockChunkRepository)
	feedback := new(MockFeedbackRepository)
	svc := newQAService(embedder, gen, chunks, feedback)

	question := "What is the LCR minimum requirement?"
	embedding := make([]float32, 1536)

	chunks.On("CountByIndex", mock.Anything, DefaultIndexName).Return(12, nil)
	embedder.On("GenerateEmbedding", mock.Anything, question).Return(embedding, nil)
	chunks.On("SearchByEmbedding", mock.Anything, DefaultIndexName, embedding, domain.DocumentSource("regulation"), RetrievalTopK).
		Return(retrievedChunks(), nil)
	gen.On("GenerateAnswer", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return len(prompt) > 0
	})).Return("The minimum is 100%.", nil)
	feedback.On("Create", mock.Anything, mock.MatchedBy(func(entry *domain.FeedbackEntry) bool {
		return entry.Question == question &&
			entry.Answer == "The minimum is 100%." &&
			entry.Source == "regulation"
	})).Return(int64(1), nil)

	output, err := svc.Answer(context.Background(), AnswerInput{Question: question, Source: "regulation"})

	require.NoError(t, err)
	assert.Equal(t, "The minimum is 100%.", output.Answer)
	assert.Equal(t, 1, output.Retrieved)

	embedder.AssertExpectations(t)
	gen.AssertExpectations(t)
	chunks.AssertExpectations(t)
	feedback.AssertExpectations(t)
}

func TestAnswer_EmptyQuestion(t *testing.T) {
	svc := newQAService(new(MockEmbeddingClient), new(MockGenerationClient), new(MockChunkRepository), new(MockFeedbackRepository))

	_, err := svc.Answer(context.Background(), AnswerInput{Question: "   "})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyQuestion)
}

func TestAnswer_MissingIndex(t *testing.T) {
	embedder := new(MockEmbeddingClient)
	chunks := new(MockChunkRepository)
	svc := newQAService(embedder, new(MockGenerationClient), chunks, new(MockFeedbackRepository))

	chunks.On("CountByIndex", mock.Anything, DefaultIndexName).Return(0, nil)

	_, err := svc.Answer(context.Background(), AnswerInput{Question: "anything?"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIndexNotFound)
	embedder.AssertNotCalled(t, "GenerateEmbedding", mock.Anything, mock.Anything)
}

func TestAnswer_NoFilterSearchesAllSources(t *testing.T) {
	embedder := new(MockEmbeddingClient)
	gen := new(MockGenerationClient)
	chunks := new(MockChunkRepository)
	feedback := new(MockFeedbackRepository)
	svc := newQAService(embedder, gen, chunks, feedback)

	embedding := make([]float32, 1536)
	chunks.On("CountByIndex", mock.Anything, DefaultIndexName).Return(3, nil)
	embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).Return(embedding, nil)
	chunks.On("SearchByEmbedding", mock.Anything, DefaultIndexName, embedding, domain.DocumentSource(""), RetrievalTopK).
		Return(retrievedChunks(), nil)
	gen.On("GenerateAnswer", mock.Anything, mock.Anything).Return("answer", nil)
	feedback.On("Create", mock.Anything, mock.Anything).Return(int64(1), nil)

	_, err := svc.Answer(context.Background(), AnswerInput{Question: "q?"})

	require.NoError(t, err)
	chunks.AssertExpectations(t)
}

func TestAnswer_FilterMatchingNothingStillGenerates(t *testing.T) {
	embedder := new(MockEmbeddingClient)
	gen := new(MockGenerationClient)
	chunks := new(MockChunkRepository)
	feedback := new(MockFeedbackRepository)
	svc := newQAService(embedder, gen, chunks, feedback)

	chunks.On("CountByIndex", mock.Anything, DefaultIndexName).Return(5, nil)
	embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).Return(make([]float32, 1536), nil)
	chunks.On("SearchByEmbedding", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.DocumentChunk{}, nil)
	gen.On("GenerateAnswer", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return assert.ObjectsAreEqual(true, len(prompt) > 0)
	})).Return("I could not find that in the provided documents.", nil)
	feedback.On("Create", mock.Anything, mock.Anything).Return(int64(1), nil)

	output, err := svc.Answer(context.Background(), AnswerInput{Question: "q?", Source: "policy"})

	require.NoError(t, err)
	assert.Zero(t, output.Retrieved)
	assert.NotEmpty(t, output.Answer)
}

func TestAnswer_GenerationFailureNoFeedback(t *testing.T) {
	embedder := new(MockEmbeddingClient)
	gen := new(MockGenerationClient)
	chunks := new(MockChunkRepository)
	feedback := new(MockFeedbackRepository)
	svc := newQAService(embedder, gen, chunks, feedback)

	chunks.On("CountByIndex", mock.Anything, DefaultIndexName).Return(5, nil)
	embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).Return(make([]float32, 1536), nil)
	chunks.On("SearchByEmbedding", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(retrievedChunks(), nil)
	gen.On("GenerateAnswer", mock.Anything, mock.Anything).Return("", errors.New("model unavailable"))

	_, err := svc.Answer(context.Background(), AnswerInput{Question: "q?"})

	require.Error(t, err)
	feedback.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAnswer_FeedbackFailureDoesNotMaskAnswer(t *testing.T) {
	embedder := new(MockEmbeddingClient)
	gen := new(MockGenerationClient)
	chunks := new(MockChunkRepository)
	feedback := new(MockFeedbackRepository)
	svc := newQAService(embedder, gen, chunks, feedback)

	chunks.On("CountByIndex", mock.Anything, DefaultIndexName).Return(5, nil)
	embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).Return(make([]float32, 1536), nil)
	chunks.On("SearchByEmbedding", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(retrievedChunks(), nil)
	gen.On("GenerateAnswer", mock.Anything, mock.Anything).Return("the answer", nil)
	feedback.On("Create", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	output, err := svc.Answer(context.Background(), AnswerInput{Question: "q?"})

	require.NoError(t, err)
	assert.Equal(t, "the answer", output.Answer)
}

func TestBuildPrompt_IncludesChunksAndQuestion(t *testing.T) {
	prompt := buildPrompt("What is the LCR?", retrievedChunks())

	assert.Contains(t, prompt, "The LCR minimum requirement is 100%")
	assert.Contains(t, prompt, "Question: What is the LCR?")
	assert.Contains(t, prompt, "doc-1.pdf")
}

func TestBuildPrompt_EmptyContext(t *testing.T) {
	prompt := buildPrompt("What is the LCR?", nil)

	assert.Contains(t, prompt, "no matching documents")
	assert.Contains(t, prompt, "Question: What is the LCR?")
}
