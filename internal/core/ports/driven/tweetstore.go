package driven

import (
	"context"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
)

// TweetStore persists per-account tweets and the merged characters built
// from them.
type TweetStore interface {
	// SaveTweets stores or updates tweets for an account.
	// Returns the number of tweets written.
	SaveTweets(ctx context.Context, account string, tweets []domain.Tweet) (int, error)

	// ListTweets returns every stored tweet of an account.
	ListTweets(ctx context.Context, account string) ([]domain.Tweet, error)

	// CreateMerged selects and ranks tweets from each account and records
	// the result as a pending merge. Tweets are grouped by account in the
	// given order, best ranked first.
	CreateMerged(ctx context.Context, name string, accounts []string, opts domain.MergeOptions) (*domain.MergedCharacter, error)

	// CommitMerged marks a pending merge as final.
	CommitMerged(ctx context.Context, id string) error

	// DiscardMerged removes a pending merge.
	DiscardMerged(ctx context.Context, id string) error
}
