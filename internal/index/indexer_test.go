package index

import (
	"os"
	"path/filepath"
	"testing"

	"specview/internal/crawler"
	"specview/internal/extractor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexer_SnapshotRoundTrip(t *testing.T) {
	ext, err := extractor.NewExtractor("c")
	require.NoError(t, err)
	idx := NewIndexer(crawler.NewCrawler(ext))

	dir := t.TempDir()
	header := filepath.Join(dir, "mpi.h")
	require.NoError(t, os.WriteFile(header, []byte("int MPI_Barrier(MPI_Comm comm);\nint MPI_Finalize(void);\n"), 0o644))

	snap, err := idx.Load(dir)
	require.NoError(t, err)
	require.Len(t, snap.Prototypes, 2)
	assert.Equal(t, dir, snap.Root)

	path := filepath.Join(dir, "headers.json")
	require.NoError(t, SaveSnapshot(snap, path))

	loaded, err := idx.Load(path)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)

	t.Run("Missing snapshot", func(t *testing.T) {
		_, err := LoadSnapshot(filepath.Join(dir, "absent.json"))
		assert.Error(t, err)
	})
}
