package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driven"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driving"
	"github.com/custodia-labs/corpusforge/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// ImportService loads exported tweet files into the corpus store.
type ImportService struct {
	reader driven.TweetReader
	store  driven.TweetStore
}

// NewImportService creates a new import service.
func NewImportService(reader driven.TweetReader, store driven.TweetStore) *ImportService {
	return &ImportService{reader: reader, store: store}
}

// Import reads path and stores its tweets under account.
func (s *ImportService) Import(ctx context.Context, account, path string) (int, error) {
	account = strings.TrimPrefix(strings.TrimSpace(account), "@")
	if account == "" {
		return 0, fmt.Errorf("account: %w", domain.ErrInvalidInput)
	}

	tweets, err := s.reader.ReadTweets(path, account)
	if err != nil {
		return 0, err
	}
	logger.Debug("import: read %d tweets for @%s from %s", len(tweets), account, path)

	// Tweets are stored under the account they are imported for.
	for i := range tweets {
		tweets[i].Username = account
	}

	n, err := s.store.SaveTweets(ctx, account, tweets)
	if err != nil {
		return 0, fmt.Errorf("save tweets: %w", err)
	}
	logger.Info("import: stored %d tweets for @%s", n, account)
	return n, nil
}
