package sqlite

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driven"
)

// Ensure LazyTweetStore implements the interface.
var _ driven.TweetStore = (*LazyTweetStore)(nil)

// LazyTweetStore opens the database on first use, so commands that never
// touch stored tweets never create the data directory.
type LazyTweetStore struct {
	dataDir string
	open    func(dataDir string) (*Store, error)

	mu    sync.Mutex
	store *Store
}

// NewLazyTweetStore returns a tweet store backed by the database in dataDir,
// opened when first needed.
func NewLazyTweetStore(dataDir string) *LazyTweetStore {
	return &LazyTweetStore{dataDir: dataDir, open: NewStore}
}

// Opened reports whether the database has been opened.
func (l *LazyTweetStore) Opened() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store != nil
}

// Close closes the database if it was opened.
func (l *LazyTweetStore) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.store == nil {
		return nil
	}
	err := l.store.Close()
	l.store = nil
	return err
}

// get opens the database once. A failed open is retried on the next call.
func (l *LazyTweetStore) get() (driven.TweetStore, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.store == nil {
		store, err := l.open(l.dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening corpus store: %w", err)
		}
		l.store = store
	}
	return l.store.TweetStore(), nil
}

func (l *LazyTweetStore) SaveTweets(ctx context.Context, account string, tweets []domain.Tweet) (int, error) {
	ts, err := l.get()
	if err != nil {
		return 0, err
	}
	return ts.SaveTweets(ctx, account, tweets)
}

func (l *LazyTweetStore) ListTweets(ctx context.Context, account string) ([]domain.Tweet, error) {
	ts, err := l.get()
	if err != nil {
		return nil, err
	}
	return ts.ListTweets(ctx, account)
}

func (l *LazyTweetStore) CreateMerged(ctx context.Context, name string, accounts []string, opts domain.MergeOptions) (*domain.MergedCharacter, error) {
	ts, err := l.get()
	if err != nil {
		return nil, err
	}
	return ts.CreateMerged(ctx, name, accounts, opts)
}

func (l *LazyTweetStore) CommitMerged(ctx context.Context, id string) error {
	ts, err := l.get()
	if err != nil {
		return err
	}
	return ts.CommitMerged(ctx, id)
}

func (l *LazyTweetStore) DiscardMerged(ctx context.Context, id string) error {
	ts, err := l.get()
	if err != nil {
		return err
	}
	return ts.DiscardMerged(ctx, id)
}
