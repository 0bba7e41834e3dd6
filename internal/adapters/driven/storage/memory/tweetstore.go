package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driven"
)

// Ensure TweetStore implements the interface.
var _ driven.TweetStore = (*TweetStore)(nil)

// TweetStore is an in-memory implementation of driven.TweetStore.
type TweetStore struct {
	mu        sync.RWMutex
	tweets    map[string][]domain.Tweet
	pending   map[string]domain.MergedCharacter
	committed map[string]domain.MergedCharacter

	// FailAccounts makes ListTweets fail for the named accounts.
	FailAccounts map[string]error
}

// NewTweetStore creates a new in-memory tweet store.
func NewTweetStore() *TweetStore {
	return &TweetStore{
		tweets:       make(map[string][]domain.Tweet),
		pending:      make(map[string]domain.MergedCharacter),
		committed:    make(map[string]domain.MergedCharacter),
		FailAccounts: make(map[string]error),
	}
}

// SaveTweets stores or updates tweets for an account. A tweet replaces the
// stored tweet with the same ID.
func (s *TweetStore) SaveTweets(_ context.Context, account string, tweets []domain.Tweet) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.tweets[account]
	index := make(map[string]int, len(existing))
	for i, t := range existing {
		index[t.ID] = i
	}
	for _, t := range tweets {
		t.Username = account
		if i, ok := index[t.ID]; ok {
			existing[i] = t
			continue
		}
		index[t.ID] = len(existing)
		existing = append(existing, t)
	}
	s.tweets[account] = existing
	return len(tweets), nil
}

// ListTweets returns every stored tweet of an account.
func (s *TweetStore) ListTweets(_ context.Context, account string) ([]domain.Tweet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err, ok := s.FailAccounts[account]; ok {
		return nil, err
	}
	tweets, ok := s.tweets[account]
	if !ok {
		return nil, fmt.Errorf("no tweets for @%s: %w", account, domain.ErrNotFound)
	}
	result := make([]domain.Tweet, len(tweets))
	copy(result, tweets)
	return result, nil
}

// CreateMerged ranks each account's tweets and records a pending merge.
func (s *TweetStore) CreateMerged(_ context.Context, name string, accounts []string, opts domain.MergeOptions) (*domain.MergedCharacter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := domain.MergedCharacter{
		ID:        uuid.New().String(),
		Name:      name,
		Accounts:  append([]string(nil), accounts...),
		Options:   opts,
		CreatedAt: time.Now(),
	}
	for _, account := range accounts {
		merged.Tweets = append(merged.Tweets, domain.RankTweets(s.tweets[account], opts)...)
	}
	s.pending[merged.ID] = merged
	return &merged, nil
}

// CommitMerged marks a pending merge as final.
func (s *TweetStore) CommitMerged(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged, ok := s.pending[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(s.pending, id)
	s.committed[id] = merged
	return nil
}

// DiscardMerged removes a pending merge.
func (s *TweetStore) DiscardMerged(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.pending, id)
	return nil
}

// Pending returns the IDs of merges neither committed nor discarded.
func (s *TweetStore) Pending() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	return ids
}

// Committed returns a committed merge by ID.
func (s *TweetStore) Committed(id string) (*domain.MergedCharacter, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	merged, ok := s.committed[id]
	if !ok {
		return nil, false
	}
	return &merged, true
}
