package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/policywise/policywise/internal/api"
	"github.com/policywise/policywise/internal/service"
)

type AnswerService interface {
	Answer(ctx context.Context, input service.AnswerInput) (*service.AnswerOutput, error)
}

type QueryHandler struct {
	svc AnswerService
}

func NewQueryHandler(svc AnswerService) *QueryHandler {
	return &QueryHandler{svc: svc}
}

type QueryRequest struct {
	Question string  `json:"question"`
	Source   *string `json:"source"`
}

type QueryResponse struct {
	Answer string `json:"answer"`
}

// Query answers one question over the indexed documents.
func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := service.AnswerInput{Question: req.Question}
	if req.Source != nil {
		input.Source = *req.Source
	}

	output, err := h.svc.Answer(r.Context(), input)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, QueryResponse{Answer: output.Answer})
}
