package verify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestDiffTrees_Equal(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	files := map[string]string{
		"one.log":        "line a\nline b\n",
		"nested/two.log": "line c\n",
	}
	writeTree(t, a, files)
	writeTree(t, b, files)

	diffs, err := DiffTrees(a, b)
	require.NoError(t, err)
	require.Empty(t, diffs)
}

func TestDiffTrees_ContentDiffers(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	writeTree(t, a, map[string]string{"one.log": "original\n"})
	writeTree(t, b, map[string]string{"one.log": "reconstructed\n"})

	diffs, err := DiffTrees(a, b)
	require.NoError(t, err)
	require.Equal(t, []string{"one.log"}, diffs)
}

func TestDiffTrees_FileSetDiffers(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	writeTree(t, a, map[string]string{
		"only-in-a.log": "x\n",
		"shared.log":    "x\n",
	})
	writeTree(t, b, map[string]string{
		"only-in-b.log": "x\n",
		"shared.log":    "x\n",
	})

	diffs, err := DiffTrees(a, b)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]string{"only-in-a.log", "only-in-b.log"}, diffs))
}

func TestDiffTrees_PreservesDirectoryStructure(t *testing.T) {
	// The same file name at a different depth is not a match.
	a, b := t.TempDir(), t.TempDir()
	writeTree(t, a, map[string]string{"sub/one.log": "x\n"})
	writeTree(t, b, map[string]string{"one.log": "x\n"})

	diffs, err := DiffTrees(a, b)
	require.NoError(t, err)
	require.NotEmpty(t, diffs)
}

func TestDiffTrees_MissingRoot(t *testing.T) {
	_, err := DiffTrees(t.TempDir(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestClearDirectory(t *testing.T) {
	dir := t.TempDir()
	scratch := filepath.Join(dir, "scratch")
	writeTree(t, scratch, map[string]string{"stale/file.log": "old\n"})

	require.NoError(t, ClearDirectory(scratch))

	entries, err := os.ReadDir(scratch)
	require.NoError(t, err)
	require.Empty(t, entries)

	// Clearing a directory that does not exist creates it.
	fresh := filepath.Join(dir, "fresh")
	require.NoError(t, ClearDirectory(fresh))
	info, err := os.Stat(fresh)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
