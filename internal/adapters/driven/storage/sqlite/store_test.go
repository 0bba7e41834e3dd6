package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	return store, func() {
		assert.NoError(t, store.Close())
	}
}

func seedTweets(t *testing.T, store *Store, account string, n int) {
	t.Helper()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	tweets := make([]domain.Tweet, 0, n)
	for i := 0; i < n; i++ {
		tweets = append(tweets, domain.Tweet{
			ID:           fmt.Sprintf("%s-%02d", account, i),
			Text:         fmt.Sprintf("%s tweet %d", account, i),
			Likes:        i,
			RetweetCount: n - i,
			IsRetweet:    i%5 == 0,
			Timestamp:    base.Add(time.Duration(i) * time.Hour),
		})
	}
	written, err := store.TweetStore().SaveTweets(context.Background(), account, tweets)
	require.NoError(t, err)
	require.Equal(t, n, written)
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "corpus.db"), store.Path())
	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenKeepsDataAndVersion(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	seedTweets(t, store, "alice", 3)
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	version, err := reopened.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
	tweets, err := reopened.TweetStore().ListTweets(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, tweets, 3)
}

func TestTweetStore_SaveAndList(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seedTweets(t, store, "alice", 4)

	tweets, err := store.TweetStore().ListTweets(context.Background(), "alice")

	require.NoError(t, err)
	require.Len(t, tweets, 4)
	assert.Equal(t, "alice-03", tweets[0].ID, "newest first")
	assert.Equal(t, "alice", tweets[0].Username)
	assert.Equal(t, time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC), tweets[0].Timestamp)
	assert.True(t, tweets[3].IsRetweet)
}

func TestTweetStore_SaveTweets_Upserts(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ts := store.TweetStore()
	ctx := context.Background()
	seedTweets(t, store, "alice", 2)

	_, err := ts.SaveTweets(ctx, "alice", []domain.Tweet{{ID: "alice-00", Text: "edited", Likes: 99}})
	require.NoError(t, err)

	tweets, err := ts.ListTweets(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, tweets, 2)
	for _, tw := range tweets {
		if tw.ID == "alice-00" {
			assert.Equal(t, "edited", tw.Text)
			assert.Equal(t, 99, tw.Likes)
		}
	}
}

func TestTweetStore_SaveTweets_RequiresID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.TweetStore().SaveTweets(context.Background(), "alice", []domain.Tweet{{Text: "no id"}})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTweetStore_ListTweets_UnknownAccount(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.TweetStore().ListTweets(context.Background(), "nobody")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTweetStore_CreateMerged(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seedTweets(t, store, "alice", 10)
	seedTweets(t, store, "bob", 10)

	merged, err := store.TweetStore().CreateMerged(context.Background(), "combo", []string{"alice", "bob"},
		domain.MergeOptions{TweetsPerAccount: 3, FilterRetweets: true, SortBy: domain.SortByLikes})

	require.NoError(t, err)
	require.NotEmpty(t, merged.ID)
	require.Len(t, merged.Tweets, 6)
	assert.Equal(t, []string{"alice-09", "alice-08", "alice-07"},
		[]string{merged.Tweets[0].ID, merged.Tweets[1].ID, merged.Tweets[2].ID})
	assert.Equal(t, "bob", merged.Tweets[3].Username)
	for _, tw := range merged.Tweets {
		assert.False(t, tw.IsRetweet)
	}

	status, err := store.MergeStatus(context.Background(), merged.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", status)

	var selected int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM merge_tweets WHERE merge_id = ?", merged.ID).Scan(&selected))
	assert.Equal(t, 6, selected)
}

func TestTweetStore_CommitMerged(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seedTweets(t, store, "alice", 2)
	ctx := context.Background()
	ts := store.TweetStore()
	merged, err := ts.CreateMerged(ctx, "combo", []string{"alice", "bob"},
		domain.MergeOptions{TweetsPerAccount: 1, SortBy: domain.SortByDate})
	require.NoError(t, err)

	require.NoError(t, ts.CommitMerged(ctx, merged.ID))

	status, err := store.MergeStatus(ctx, merged.ID)
	require.NoError(t, err)
	assert.Equal(t, "committed", status)
	assert.ErrorIs(t, ts.CommitMerged(ctx, merged.ID), domain.ErrNotFound)
	assert.ErrorIs(t, ts.DiscardMerged(ctx, merged.ID), domain.ErrNotFound, "committed merges are kept")
}

func TestTweetStore_DiscardMerged(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	seedTweets(t, store, "alice", 2)
	ctx := context.Background()
	ts := store.TweetStore()
	merged, err := ts.CreateMerged(ctx, "combo", []string{"alice", "bob"},
		domain.MergeOptions{TweetsPerAccount: 2, SortBy: domain.SortByTotal})
	require.NoError(t, err)

	require.NoError(t, ts.DiscardMerged(ctx, merged.ID))

	_, err = store.MergeStatus(ctx, merged.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	var selected int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM merge_tweets").Scan(&selected))
	assert.Zero(t, selected)
}

func TestTweetStore_UnknownMerge(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ts := store.TweetStore()

	assert.ErrorIs(t, ts.CommitMerged(context.Background(), "missing"), domain.ErrNotFound)
	assert.ErrorIs(t, ts.DiscardMerged(context.Background(), "missing"), domain.ErrNotFound)
}
