package services

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscoverCorpora_MissingRoot(t *testing.T) {
	found := DiscoverCorpora(filepath.Join(t.TempDir(), "does-not-exist"), "finetuning.jsonl")

	assert.NotNil(t, found)
	assert.Empty(t, found)
}

func TestDiscoverCorpora_FindsNestedFilesInOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "_bravo", "2024-02-01", "processed", "finetuning.jsonl"), "{}")
	writeFile(t, filepath.Join(root, "_alpha", "2024-01-01", "processed", "finetuning.jsonl"), "{}")
	writeFile(t, filepath.Join(root, "_alpha", "2024-01-01", "processed", "other.jsonl"), "{}")
	writeFile(t, filepath.Join(root, "finetuning.jsonl"), "{}")

	found := DiscoverCorpora(root, "finetuning.jsonl")

	require.Len(t, found, 3)
	assert.Equal(t, filepath.Join(root, "_alpha", "2024-01-01", "processed", "finetuning.jsonl"), found[0])
	assert.Equal(t, filepath.Join(root, "_bravo", "2024-02-01", "processed", "finetuning.jsonl"), found[1])
	assert.Equal(t, filepath.Join(root, "finetuning.jsonl"), found[2])
}

func TestDiscoverCorpora_ReturnsAbsolutePaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pipeline", "_a", "finetuning.jsonl"), "{}")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	found := DiscoverCorpora("pipeline", "finetuning.jsonl")

	require.Len(t, found, 1)
	assert.True(t, filepath.IsAbs(found[0]))
}

func TestDiscoverCorpora_IgnoresDirectoryWithCorpusName(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "finetuning.jsonl"), 0o755))

	assert.Empty(t, DiscoverCorpora(root, "finetuning.jsonl"))
}

func TestDiscoverCorpora_UnreadableDirectoryIsSkipped(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	root := t.TempDir()
	locked := filepath.Join(root, "_locked")
	writeFile(t, filepath.Join(locked, "finetuning.jsonl"), "{}")
	writeFile(t, filepath.Join(root, "_open", "finetuning.jsonl"), "{}")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	found := DiscoverCorpora(root, "finetuning.jsonl")

	require.Len(t, found, 1)
	assert.Equal(t, filepath.Join(root, "_open", "finetuning.jsonl"), found[0])
}
