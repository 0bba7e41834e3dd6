package driving

import "github.com/custodia-labs/corpusforge/internal/core/domain"

// ValidationService checks converted training files.
type ValidationService interface {
	// Validate checks the given files, or every converted file under the
	// pipeline directory of root when paths is empty.
	Validate(root string, paths []string) ([]domain.ValidationReport, error)
}
