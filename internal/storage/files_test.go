package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/policywise/policywise/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Save_PartitionsBySource(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root)

	path, name, err := store.Save(domain.DocumentSourcePolicy, "Liquidity-Policy.PDF", []byte("%PDF-1.4 fake"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, filepath.Join(root, "policies")))
	assert.True(t, strings.HasSuffix(name, ".pdf"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), content)
}

func TestFileStore_Save_UniqueNamesForSameFilename(t *testing.T) {
	store := NewFileStore(t.TempDir())

	path1, name1, err := store.Save(domain.DocumentSourceRegulation, "basel3.pdf", []byte("a"))
	require.NoError(t, err)
	path2, name2, err := store.Save(domain.DocumentSourceRegulation, "basel3.pdf", []byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, path1, path2)
	assert.NotEqual(t, name1, name2)
}

func TestFileStore_Remove(t *testing.T) {
	store := NewFileStore(t.TempDir())

	path, _, err := store.Save(domain.DocumentSourcePolicy, "doc.pdf", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_Remove_MissingFile(t *testing.T) {
	store := NewFileStore(t.TempDir())
	assert.Error(t, store.Remove(filepath.Join(store.Root(), "policies", "gone.pdf")))
}
