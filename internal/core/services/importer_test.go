package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpusforge/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/corpusforge/internal/core/domain"
)

type fakeReader struct {
	tweets []domain.Tweet
	err    error
	path   string
}

func (f *fakeReader) ReadTweets(path, _ string) ([]domain.Tweet, error) {
	f.path = path
	return f.tweets, f.err
}

func TestImportService_Import(t *testing.T) {
	reader := &fakeReader{tweets: []domain.Tweet{
		{ID: "1", Username: "someone-else", Text: "one"},
		{ID: "2", Text: "two"},
	}}
	store := memory.NewTweetStore()
	svc := NewImportService(reader, store)

	n, err := svc.Import(context.Background(), "@alice", "tweets.json")

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "tweets.json", reader.path)

	stored, err := store.ListTweets(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "alice", stored[0].Username)
}

func TestImportService_Import_EmptyAccount(t *testing.T) {
	svc := NewImportService(&fakeReader{}, memory.NewTweetStore())

	_, err := svc.Import(context.Background(), " @ ", "tweets.json")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportService_Import_ReaderError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewImportService(&fakeReader{err: boom}, memory.NewTweetStore())

	_, err := svc.Import(context.Background(), "alice", "tweets.json")

	assert.ErrorIs(t, err, boom)
}
