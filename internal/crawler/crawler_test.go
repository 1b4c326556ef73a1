package crawler

import (
	"os"
	"path/filepath"
	"testing"

	"specview/internal/extractor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCrawler_ScanHeaders(t *testing.T) {
	ext, err := extractor.NewExtractor("c")
	require.NoError(t, err)
	c := NewCrawler(ext)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "mpi.h"), "int MPI_Init(int *argc, char ***argv);\n")
	writeFile(t, filepath.Join(root, "sub", "mpi_p2p.h"), "int MPI_Send(void* buf {SINGLE_IN}, int count);\n")
	writeFile(t, filepath.Join(root, "sub", "notes.txt"), "int NotAHeader(void);\n")
	writeFile(t, filepath.Join(root, ".git", "hidden.h"), "int Hidden(void);\n")

	t.Run("Directory walk", func(t *testing.T) {
		var names []string
		err := c.ScanHeaders(root, func(p *extractor.Prototype) {
			names = append(names, p.Name)
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"MPI_Init", "MPI_Send"}, names)
	})

	t.Run("Single file", func(t *testing.T) {
		var protos []*extractor.Prototype
		err := c.ScanHeaders(filepath.Join(root, "sub", "mpi_p2p.h"), func(p *extractor.Prototype) {
			protos = append(protos, p)
		})
		require.NoError(t, err)
		require.Len(t, protos, 1)
		assert.Equal(t, []string{"buf", "count"}, protos[0].ParamNames())
	})

	t.Run("Missing root", func(t *testing.T) {
		err := c.ScanHeaders(filepath.Join(root, "absent"), func(*extractor.Prototype) {})
		assert.Error(t, err)
	})
}
