// Package storage persists uploaded documents on the local filesystem.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/policywise/policywise/internal/domain"
)

// FileStore writes uploaded documents into a type-partitioned directory
// tree under a single root, e.g. data/policies and data/regulations.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Root returns the base directory of the stored-document tree.
func (s *FileStore) Root() string {
	return s.root
}

// Save writes content under the source's partition with a freshly
// generated unique filename. The original filename contributes only its
// extension; collisions are impossible by construction.
func (s *FileStore) Save(source domain.DocumentSource, origFilename string, content []byte) (path, storedName string, err error) {
	dir := filepath.Join(s.root, string(source)+"s")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create document directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(origFilename))
	storedName = uuid.NewString() + ext
	path = filepath.Join(dir, storedName)

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write document file: %w", err)
	}

	return path, storedName, nil
}

// Remove deletes a stored file. Used for best-effort cleanup when
// ingestion fails after the file write; the error is for logging only.
func (s *FileStore) Remove(path string) error {
	return os.Remove(path)
}
