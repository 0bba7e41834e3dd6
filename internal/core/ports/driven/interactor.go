package driven

import (
	"context"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
)

// Interactor is how the merge workflow talks to the operator.
type Interactor interface {
	// ShowCounts presents the available records per source account.
	ShowCounts(counts []domain.AccountCount)

	// Notify shows an informational or warning line.
	Notify(message string)

	// Run asks the stepper's prompts until it reaches a terminal state.
	// Rejected answers are shown and the same prompt is asked again.
	// Returns an error if the operator cannot or will not answer.
	Run(ctx context.Context, stepper domain.Stepper) error
}
