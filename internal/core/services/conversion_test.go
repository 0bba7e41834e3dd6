package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
)

func TestNewConversionService_Defaults(t *testing.T) {
	svc := NewConversionService(domain.PipelineSettings{})

	assert.Equal(t, filepath.Join("root", "pipeline"), svc.PipelineDir("root"))
	assert.True(t, svc.IsCorpus("/a/b/finetuning.jsonl"))
	assert.False(t, svc.IsCorpus("/a/b/finetuning_vertex_ai.jsonl"))
}

func TestConversionService_PipelineDir_Absolute(t *testing.T) {
	svc := NewConversionService(domain.PipelineSettings{Dir: "/srv/pipeline"})

	assert.Equal(t, "/srv/pipeline", svc.PipelineDir("/ignored"))
}

func TestConversionService_Targets(t *testing.T) {
	svc := NewConversionService(domain.PipelineSettings{})
	pipeline := "/p/pipeline"

	out, name := svc.Targets(pipeline, "/p/pipeline/_takshit/2024-01-02/processed/finetuning.jsonl")

	assert.Equal(t, "/p/pipeline/_takshit/2024-01-02/processed/finetuning_vertex_ai.jsonl", out)
	assert.Equal(t, "takshit", name)
}

func TestDisplayNameFromPath(t *testing.T) {
	tests := []struct {
		name     string
		pipeline string
		path     string
		want     string
	}{
		{"first marked segment", "/p/pipeline", "/p/pipeline/_alice/_bob/finetuning.jsonl", "alice"},
		{"no marked segment", "/p/pipeline", "/p/pipeline/alice/finetuning.jsonl", "user"},
		{"markers above pipeline ignored", "/home/_me/pipeline", "/home/_me/pipeline/x/finetuning.jsonl", "user"},
		{"outside pipeline scans full path", "/p/pipeline", "/q/_carol/finetuning.jsonl", "carol"},
		{"empty pipeline scans full path", "", "/q/_dave/finetuning.jsonl", "dave"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayNameFromPath(tt.pipeline, tt.path, "user"))
		})
	}
}

func TestConversionService_ConvertFile_ReportsError(t *testing.T) {
	svc := NewConversionService(domain.PipelineSettings{})
	buf := new(bytes.Buffer)
	svc.SetOutput(buf)
	dir := t.TempDir()

	_, err := svc.ConvertFile(filepath.Join(dir, "missing.jsonl"), filepath.Join(dir, "out.jsonl"), "")

	require.Error(t, err)
	assert.Contains(t, buf.String(), "Error converting file:")
}

func TestConversionService_ConvertFile_FallbackName(t *testing.T) {
	svc := NewConversionService(domain.PipelineSettings{DisplayName: "fallback"})
	dir := t.TempDir()
	in := filepath.Join(dir, "in.jsonl")
	out := filepath.Join(dir, "out.jsonl")
	writeFile(t, in, `{"text":"hi"}`)

	result, err := svc.ConvertFile(in, out, "")

	require.NoError(t, err)
	assert.Equal(t, 1, result.ConvertedCount)
	records := readRecords(t, out)
	assert.Contains(t, records[0].Contents[0].Parts[0].Text, "@fallback.")
}

func TestConversionService_ConvertAll_NoFiles(t *testing.T) {
	svc := NewConversionService(domain.PipelineSettings{})

	report, err := svc.ConvertAll(context.Background(), t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, report.Discovered)
	assert.Empty(t, report.Outcomes)
}

func TestConversionService_ConvertAll_ContinuesAfterFailure(t *testing.T) {
	root := t.TempDir()
	good := filepath.Join(root, "pipeline", "_alice", "2024-01-01", "processed", "finetuning.jsonl")
	bad := filepath.Join(root, "pipeline", "_bob", "2024-01-01", "processed", "finetuning.jsonl")
	writeFile(t, good, `{"text":"alice says hi"}`)
	writeFile(t, bad, `{"text":"bob"}`)
	// A directory in place of the output makes the write fail.
	require.NoError(t, os.MkdirAll(filepath.Join(filepath.Dir(bad), "finetuning_vertex_ai.jsonl"), 0o755))

	svc := NewConversionService(domain.PipelineSettings{})
	buf := new(bytes.Buffer)
	svc.SetOutput(buf)

	report, err := svc.ConvertAll(context.Background(), root)

	require.NoError(t, err)
	require.Len(t, report.Discovered, 2)
	require.Len(t, report.Outcomes, 2)
	assert.Len(t, report.Results(), 1)
	require.Len(t, report.Failures(), 1)
	assert.Equal(t, bad, report.Failures()[0].InputPath)
	assert.Equal(t, "alice", report.Outcomes[0].DisplayName)

	assert.Contains(t, buf.String(), "Found 2 finetuning.jsonl file(s):")
	assert.Contains(t, buf.String(), "1. "+good)
	assert.Contains(t, buf.String(), "Failed to convert "+bad)

	records := readRecords(t, filepath.Join(filepath.Dir(good), "finetuning_vertex_ai.jsonl"))
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Contents[0].Parts[0].Text, "@alice.")
}

func TestConversionService_ConvertAll_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pipeline", "_a", "finetuning.jsonl"), `{"text":"x"}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewConversionService(domain.PipelineSettings{}).ConvertAll(ctx, root)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, report.Discovered, 1)
	assert.Empty(t, report.Outcomes)
}
