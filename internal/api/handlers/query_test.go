package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/policywise/policywise/internal/domain"
	"github.com/policywise/policywise/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAnswerService struct {
	mock.Mock
}

func (m *MockAnswerService) Answer(ctx context.Context, input service.AnswerInput) (*service.AnswerOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnswerOutput), args.Error(1)
}

func newQueryRequest(t *testing.T, payload any) *http.Request {
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestQuery_Success(t *testing.T) {
	svc := new(MockAnswerService)
	handler := NewQueryHandler(svc)

	svc.On("Answer", mock.Anything, service.AnswerInput{
		Question: "What is the LCR?",
		Source:   "regulation",
	}).Return(&service.AnswerOutput{Answer: "100% of net cash outflows.", Retrieved: 2}, nil)

	source := "regulation"
	w := httptest.NewRecorder()
	handler.Query(w, newQueryRequest(t, QueryRequest{Question: "What is the LCR?", Source: &source}))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp QueryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "100% of net cash outflows.", resp.Answer)

	svc.AssertExpectations(t)
}

func TestQuery_NullSource(t *testing.T) {
	svc := new(MockAnswerService)
	handler := NewQueryHandler(svc)

	svc.On("Answer", mock.Anything, service.AnswerInput{Question: "What is the LCR?"}).
		Return(&service.AnswerOutput{Answer: "answer"}, nil)

	w := httptest.NewRecorder()
	handler.Query(w, newQueryRequest(t, map[string]any{
		"question": "What is the LCR?",
		"source":   nil,
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestQuery_MalformedBody(t *testing.T) {
	svc := new(MockAnswerService)
	handler := NewQueryHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	handler.Query(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Answer", mock.Anything, mock.Anything)
}

func TestQuery_EmptyQuestionMapsTo400(t *testing.T) {
	svc := new(MockAnswerService)
	handler := NewQueryHandler(svc)

	svc.On("Answer", mock.Anything, mock.Anything).Return(nil, domain.ErrEmptyQuestion)

	w := httptest.NewRecorder()
	handler.Query(w, newQueryRequest(t, QueryRequest{Question: ""}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuery_MissingIndexMapsTo404(t *testing.T) {
	svc := new(MockAnswerService)
	handler := NewQueryHandler(svc)

	svc.On("Answer", mock.Anything, mock.Anything).Return(nil, domain.ErrIndexNotFound)

	w := httptest.NewRecorder()
	handler.Query(w, newQueryRequest(t, QueryRequest{Question: "anything"}))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "vector index not found")
}

func TestQuery_GenerationFailureMapsTo500(t *testing.T) {
	svc := new(MockAnswerService)
	handler := NewQueryHandler(svc)

	svc.On("Answer", mock.Anything, mock.Anything).
		Return(nil, domain.NewDomainError(domain.ErrCodeInternalError, "failed to generate answer"))

	w := httptest.NewRecorder()
	handler.Query(w, newQueryRequest(t, QueryRequest{Question: "anything"}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
