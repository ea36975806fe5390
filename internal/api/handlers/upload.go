package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/policywise/policywise/internal/api"
	"github.com/policywise/policywise/internal/service"
)

// maxUploadBytes bounds the in-memory portion of multipart parsing.
const maxUploadBytes = 25 << 20

type IngestionService interface {
	Ingest(ctx context.Context, input service.IngestInput) (*service.IngestResult, error)
}

type UploadHandler struct {
	svc IngestionService
}

func NewUploadHandler(svc IngestionService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

type UploadResponse struct {
	Status        string `json:"status"`
	DocumentID    string `json:"document_id"`
	SavedTo       string `json:"saved_to"`
	TextExtracted bool   `json:"text_extracted"`
}

// Upload accepts one multipart PDF plus a doc_type form field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		api.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}

	result, err := h.svc.Ingest(r.Context(), service.IngestInput{
		Filename: header.Filename,
		DocType:  r.FormValue("doc_type"),
		Content:  content,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, UploadResponse{
		Status:        "success",
		DocumentID:    result.DocumentID,
		SavedTo:       result.Path,
		TextExtracted: result.Text != "",
	})
}
