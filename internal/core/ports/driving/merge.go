package driving

import (
	"context"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driven"
)

// MergeService runs the interactive merge workflow.
type MergeService interface {
	// Run collects counts, configures options, builds the merge, optionally
	// gates it on a review and commits or discards it.
	// A cancelled review returns an outcome in MergeStateCancelled and no error.
	Run(ctx context.Context, req domain.MergeRequest, ui driven.Interactor) (*domain.MergeOutcome, error)
}
