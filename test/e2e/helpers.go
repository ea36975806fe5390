//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/policywise/policywise/internal/api/handlers"
	"github.com/policywise/policywise/internal/repository"
	"github.com/policywise/policywise/internal/server"
	"github.com/policywise/policywise/internal/service"
	"github.com/policywise/policywise/internal/storage"
	"github.com/policywise/policywise/internal/testutil"
)

// TestEnv holds the in-process server and its backing resources.
type TestEnv struct {
	T         *testing.T
	Ctx       context.Context
	PostgresC *testutil.PostgresContainer
	Pool      *pgxpool.Pool
	Server    *httptest.Server
	FilesDir  string
}

// stubAI provides deterministic embeddings and answers so the pipeline
// can run without a model provider. Texts sharing a word overlap in
// embedding space more than disjoint texts.
type stubAI struct{}

func (s *stubAI) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	vec := make([]float32, 1536)
	for i := 0; i < len(text); i++ {
		vec[int(text[i])%1536]++
	}
	return vec, nil
}

func (s *stubAI) GenerateAnswer(ctx context.Context, prompt string) (string, error) {
	return "stub answer: " + fmt.Sprintf("%d chars of context", len(prompt)), nil
}

// stubExtractor returns the raw bytes as text, bypassing PDF parsing.
type stubExtractor struct{}

func (e *stubExtractor) ExtractText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// SetupEnv creates a pgvector container and an in-process server wired
// with real repositories and stubbed AI/extraction.
func SetupEnv(t *testing.T) *TestEnv {
	ctx := context.Background()

	pc := testutil.NewPostgresContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")

	docRepo := repository.NewDocumentRepository(pool)
	chunkRepo := repository.NewChunkRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)

	ai := &stubAI{}
	uuidGen := &service.DefaultUUIDGenerator{}
	filesDir := t.TempDir()
	fileStore := storage.NewFileStore(filesDir)

	indexSvc := service.NewIndexService(ai, chunkRepo, uuidGen)
	ingestSvc := service.NewIngestService(docRepo, fileStore, &stubExtractor{}, indexSvc, uuidGen)
	qaSvc := service.NewQAService(ai, ai, chunkRepo, feedbackRepo)

	router := server.NewRouter(server.RouterConfig{
		UploadHandler: handlers.NewUploadHandler(ingestSvc),
		QueryHandler:  handlers.NewQueryHandler(qaSvc),
		PagesHandler:  handlers.NewPagesHandler(ingestSvc, "policywise", "e2e"),
		FilesDir:      filesDir,
	})

	srv := httptest.NewServer(router)

	t.Cleanup(func() {
		srv.Close()
		pool.Close()
		pc.Terminate(ctx)
	})

	return &TestEnv{
		T:         t,
		Ctx:       ctx,
		PostgresC: pc,
		Pool:      pool,
		Server:    srv,
		FilesDir:  filesDir,
	}
}

// UploadPDF posts one file to /upload and returns the response.
func (env *TestEnv) UploadPDF(filename, docType string, content []byte) (*http.Response, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, bytes.NewReader(content)); err != nil {
		return nil, err
	}
	if err := writer.WriteField("doc_type", docType); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, env.Server.URL+"/upload", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return http.DefaultClient.Do(req)
}

// Query posts one question to /query and returns the response.
func (env *TestEnv) Query(payload string) (*http.Response, error) {
	return http.Post(env.Server.URL+"/query", "application/json", bytes.NewBufferString(payload))
}
