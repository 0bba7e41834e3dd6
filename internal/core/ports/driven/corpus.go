package driven

import (
	"context"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
)

// TweetReader parses an exported tweets file.
type TweetReader interface {
	// ReadTweets returns the tweets in path, attributing records without a
	// username to account.
	ReadTweets(path, account string) ([]domain.Tweet, error)
}

// CorpusExporter writes merged tweets as a source corpus.
type CorpusExporter interface {
	// Export writes tweets for the named character under pipelineDir and
	// returns the path of the written corpus file.
	Export(ctx context.Context, pipelineDir, name string, tweets []domain.Tweet) (string, error)
}

// TrainingValidator checks converted files against the provider schema.
type TrainingValidator interface {
	// ValidateFile checks every line of a converted file.
	ValidateFile(path string) (domain.ValidationReport, error)
}
