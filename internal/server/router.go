package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/policywise/policywise/internal/api/handlers"
	"github.com/policywise/policywise/internal/api/middleware"
)

type RouterConfig struct {
	UploadHandler *handlers.UploadHandler
	QueryHandler  *handlers.QueryHandler
	PagesHandler  *handlers.PagesHandler
	// FilesDir is the root of the uploaded-file tree served at /files.
	FilesDir string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 25 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", cfg.PagesHandler.Health)
	r.Post("/upload", cfg.UploadHandler.Upload)
	r.Post("/query", cfg.QueryHandler.Query)
	r.Get("/documents", cfg.PagesHandler.Documents)
	r.Get("/upload-form", cfg.PagesHandler.UploadForm)
	r.Get("/ask", cfg.PagesHandler.Ask)

	if cfg.FilesDir != "" {
		fileServer := http.StripPrefix("/files", http.FileServer(http.Dir(cfg.FilesDir)))
		r.Get("/files/*", fileServer.ServeHTTP)
	}

	return r
}
