package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
)

func TestConvertCmd_Use(t *testing.T) {
	assert.Equal(t, "convert [input_path output_path [display_name]]", convertCmd.Use)
}

func TestConvertCmd_WatchFlag(t *testing.T) {
	flag := convertCmd.Flags().Lookup("watch")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestConvertCmd_BatchConvertsDiscoveredCorpora(t *testing.T) {
	env := setupTestServices(t)
	corpusPath := env.writeCorpus(t, "alice", "{\"text\":\"  gm frens  \"}\nnot json")

	out, _, err := env.run("", "convert")

	require.NoError(t, err)
	assert.Contains(t, out, "Converting all finetuning.jsonl files to Vertex AI format...")
	assert.Contains(t, out, "Found 1 finetuning.jsonl file(s):")
	assert.Contains(t, out, "1. "+corpusPath)
	assert.Contains(t, out, "Skipping invalid JSON line: not json...")
	assert.Contains(t, out, "Conversion Summary:")
	assert.Contains(t, out, "1. processed")
	assert.Contains(t, out, "   Input: 2 entries")
	assert.Contains(t, out, "   Output: 1 entries")
	assert.Contains(t, out, "   Skipped: 1 (1 invalid, 0 empty)")

	data, err := os.ReadFile(filepath.Join(filepath.Dir(corpusPath), domain.DefaultOutputFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "@alice")
	assert.Contains(t, string(data), `"gm frens"`)
}

func TestConvertCmd_BatchWithNoCorpora(t *testing.T) {
	env := setupTestServices(t)

	out, _, err := env.run("", "convert")

	require.NoError(t, err)
	assert.Contains(t, out, "No finetuning.jsonl files found in pipeline directory")
	assert.NotContains(t, out, "Conversion Summary:")
}

func TestConvertCmd_BatchReportsFailedFiles(t *testing.T) {
	env := setupTestServices(t)
	good := env.writeCorpus(t, "alice", `{"text":"gm"}`)
	bad := env.writeCorpus(t, "bob", `{"text":"gn"}`)
	// A directory in place of the output file makes the write fail.
	require.NoError(t, os.MkdirAll(filepath.Join(filepath.Dir(bad), domain.DefaultOutputFile), 0o755))

	out, _, err := env.run("", "convert")

	require.NoError(t, err)
	assert.Contains(t, out, "Failed files (1):")
	assert.Contains(t, out, "  - "+bad)
	assert.FileExists(t, filepath.Join(filepath.Dir(good), domain.DefaultOutputFile))
}

func TestConvertCmd_SingleFile(t *testing.T) {
	env := setupTestServices(t)
	in := filepath.Join(env.root, "in.jsonl")
	out := filepath.Join(env.root, "out.jsonl")
	require.NoError(t, os.WriteFile(in, []byte(`{"text":"hello"}`), 0o644))

	stdout, _, err := env.run("", "convert", in, out, "takshit")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Successfully converted 1 entries to 1 valid Vertex AI format entries")
	assert.Contains(t, stdout, "Output saved to: "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "in the style of @takshit.")
}

func TestConvertCmd_SingleFileDefaultDisplayName(t *testing.T) {
	env := setupTestServices(t)
	in := filepath.Join(env.root, "in.jsonl")
	out := filepath.Join(env.root, "out.jsonl")
	require.NoError(t, os.WriteFile(in, []byte(`{"text":"hello"}`), 0o644))

	_, _, err := env.run("", "convert", in, out)

	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "in the style of @user.")
}

func TestConvertCmd_SingleFileMissingInput(t *testing.T) {
	env := setupTestServices(t)

	out, _, err := env.run("", "convert", filepath.Join(env.root, "missing.jsonl"), filepath.Join(env.root, "out.jsonl"))

	require.Error(t, err)
	assert.Contains(t, out, "Error converting file:")
	assert.NoFileExists(t, filepath.Join(env.root, "out.jsonl"))
}

func TestConvertCmd_OneArgumentPrintsUsage(t *testing.T) {
	env := setupTestServices(t)

	out, _, err := env.run("", "convert", "only-one")

	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "corpusforge convert <input_path> <output_path> [username]")
}

func TestConvertCmd_TooManyArguments(t *testing.T) {
	env := setupTestServices(t)

	_, _, err := env.run("", "convert", "a", "b", "c", "d")

	assert.Error(t, err)
}

func TestConvertCmd_WatchRejectsSingleFile(t *testing.T) {
	env := setupTestServices(t)

	_, _, err := env.run("", "convert", "--watch", "in.jsonl", "out.jsonl")

	assert.ErrorIs(t, err, domain.ErrUsage)
}
