package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/policywise/policywise/internal/config"
	"github.com/policywise/policywise/internal/database"
	"github.com/policywise/policywise/internal/openai"
	"github.com/policywise/policywise/internal/pdf"
	"github.com/policywise/policywise/internal/repository"
	"github.com/policywise/policywise/internal/service"
	"github.com/policywise/policywise/internal/storage"
	"github.com/spf13/cobra"
)

// IndexCmd returns the index command for offline ingestion of local PDFs.
func IndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index <pdf>",
		Short: "Ingest a local PDF into the vector index",
		Long:  "Validate, store, and index a local PDF file without going through the HTTP API",
		Args:  cobra.ExactArgs(1),
		RunE:  runIndex,
	}

	cmd.Flags().String("doc-type", "", "Document type: policy or regulation (required)")
	cmd.Flags().Bool("replace", false, "Wipe the existing index before ingesting")
	cmd.MarkFlagRequired("doc-type")

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.HasOpenAI() {
		return fmt.Errorf("OPENAI_API_KEY is required for indexing")
	}

	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	docType, _ := cmd.Flags().GetString("doc-type")
	replace, _ := cmd.Flags().GetBool("replace")

	pool, err := database.Connect(ctx, cfg.DatabaseURL())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := runMigrations(cfg.DatabaseURL()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	docRepo := repository.NewDocumentRepository(pool)
	chunkRepo := repository.NewChunkRepository(pool)

	if replace {
		if err := chunkRepo.DeleteIndex(ctx, service.DefaultIndexName); err != nil {
			return fmt.Errorf("failed to clear index: %w", err)
		}
		log.Printf("cleared index %q", service.DefaultIndexName)
	}

	uuidGen := &service.DefaultUUIDGenerator{}
	openaiClient := openai.NewClient(cfg.OpenAIAPIKey)
	indexSvc := service.NewIndexService(openaiClient, chunkRepo, uuidGen)
	ingestSvc := service.NewIngestService(docRepo, storage.NewFileStore(cfg.DataDir), pdf.NewExtractor(), indexSvc, uuidGen)

	result, err := ingestSvc.Ingest(ctx, service.IngestInput{
		Filename: filepath.Base(path),
		DocType:  docType,
		Content:  content,
	})
	if err != nil {
		return err
	}

	log.Printf("indexed %s: document %s, %d chunks, stored at %s",
		path, result.DocumentID, result.Chunks, result.Path)
	return nil
}
