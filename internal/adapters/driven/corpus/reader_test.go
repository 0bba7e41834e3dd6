package corpus

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
)

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tweets.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReader_ReadTweets_JSONArray(t *testing.T) {
	path := writeExport(t, `[
		{"id":"100","text":"  gm  ","username":"alice","likes":3,"retweetCount":1,"isRetweet":false,"timestamp":1704067200000},
		{"id":200,"text":"rt this","isRetweet":true,"timestamp":"2024-01-02T00:00:00Z"}
	]`)

	tweets, err := NewReader().ReadTweets(path, "fallback")

	require.NoError(t, err)
	require.Len(t, tweets, 2)
	assert.Equal(t, "100", tweets[0].ID)
	assert.Equal(t, "gm", tweets[0].Text)
	assert.Equal(t, "alice", tweets[0].Username)
	assert.Equal(t, 3, tweets[0].Likes)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), tweets[0].Timestamp)

	assert.Equal(t, "200", tweets[1].ID)
	assert.Equal(t, "fallback", tweets[1].Username)
	assert.True(t, tweets[1].IsRetweet)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), tweets[1].Timestamp)
}

func TestReader_ReadTweets_JSONLines(t *testing.T) {
	path := writeExport(t, "{\"id\":\"1\",\"text\":\"one\"}\n\n{\"id\":\"2\",\"text\":\"two\",\"timestamp\":\"1704067200000\"}\n")

	tweets, err := NewReader().ReadTweets(path, "alice")

	require.NoError(t, err)
	require.Len(t, tweets, 2)
	assert.True(t, tweets[0].Timestamp.IsZero())
	assert.Equal(t, int64(1704067200000), tweets[1].Timestamp.UnixMilli())
}

func TestReader_ReadTweets_SkipsEmptyText(t *testing.T) {
	path := writeExport(t, `[{"id":"1","text":""},{"id":"2","text":"   "},{"id":"3"},{"id":"4","text":"kept"}]`)

	tweets, err := NewReader().ReadTweets(path, "alice")

	require.NoError(t, err)
	require.Len(t, tweets, 1)
	assert.Equal(t, "4", tweets[0].ID)
}

func TestReader_ReadTweets_SyntheticIDsAreStable(t *testing.T) {
	path := writeExport(t, `[{"text":"no id","timestamp":1},{"text":"other","timestamp":1}]`)
	reader := NewReader()

	first, err := reader.ReadTweets(path, "alice")
	require.NoError(t, err)
	second, err := reader.ReadTweets(path, "alice")
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.NotEmpty(t, first[0].ID)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.NotEqual(t, first[0].ID, first[1].ID)

	other, err := reader.ReadTweets(path, "bob")
	require.NoError(t, err)
	assert.NotEqual(t, first[0].ID, other[0].ID)
}

func TestReader_ReadTweets_EmptyFile(t *testing.T) {
	tweets, err := NewReader().ReadTweets(writeExport(t, "  \n"), "alice")

	require.NoError(t, err)
	assert.Empty(t, tweets)
}

func TestReader_ReadTweets_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"broken array", `[{"text":"x"`},
		{"broken line", "{\"text\":\"x\"}\nnot json"},
		{"bad timestamp", `[{"text":"x","timestamp":"yesterday"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader().ReadTweets(writeExport(t, tt.content), "alice")
			assert.Error(t, err)
		})
	}
}

func TestReader_ReadTweets_BadTimestampIsInvalidInput(t *testing.T) {
	_, err := NewReader().ReadTweets(writeExport(t, `[{"text":"x","timestamp":true}]`), "alice")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReader_ReadTweets_MissingFile(t *testing.T) {
	_, err := NewReader().ReadTweets(filepath.Join(t.TempDir(), "missing.json"), "alice")

	assert.Error(t, err)
}
