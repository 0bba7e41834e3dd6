package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "pipeline", s.Pipeline.Dir)
	assert.Equal(t, "finetuning.jsonl", s.Pipeline.CorpusFile)
	assert.Equal(t, "finetuning_vertex_ai.jsonl", s.Pipeline.OutputFile)
	assert.Equal(t, "user", s.Pipeline.DisplayName)
	assert.Equal(t, 50, s.Merge.DefaultQuota)
	assert.Empty(t, s.Storage.Dir)
}
