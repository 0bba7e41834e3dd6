package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
)

// ConversionService converts source corpora into the training format.
type ConversionService interface {
	// SetOutput directs progress and diagnostics to w.
	SetOutput(w io.Writer)

	// ConvertFile converts exactly one file. Read and write failures are
	// returned; malformed lines are skipped and reported.
	ConvertFile(inputPath, outputPath, displayName string) (domain.ConversionResult, error)

	// ConvertAll discovers every corpus under the pipeline directory of root
	// and converts each one, isolating per-file failures.
	ConvertAll(ctx context.Context, root string) (*domain.BatchReport, error)

	// PipelineDir returns the pipeline directory for a project root.
	PipelineDir(root string) string

	// Targets returns the output path and display name for a corpus path.
	Targets(pipelineDir, corpusPath string) (outputPath, displayName string)

	// IsCorpus reports whether a path names a source corpus.
	IsCorpus(path string) bool
}
