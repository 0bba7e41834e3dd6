package corpus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driven"
	"github.com/custodia-labs/corpusforge/internal/fileutil"
)

// Ensure Exporter implements the interface.
var _ driven.CorpusExporter = (*Exporter)(nil)

// Exporter writes merged tweets as a source corpus at
// <pipeline>/_<name>/<YYYY-MM-DD>/processed/<corpus file>, where the
// convert command picks it up.
type Exporter struct {
	corpusFile string
	now        func() time.Time
}

// NewExporter creates an exporter writing files named corpusFile.
func NewExporter(corpusFile string) *Exporter {
	if corpusFile == "" {
		corpusFile = domain.DefaultCorpusFile
	}
	return &Exporter{corpusFile: corpusFile, now: time.Now}
}

// Export writes one {"text": ...} line per tweet and returns the file path.
func (e *Exporter) Export(ctx context.Context, pipelineDir, name string, tweets []domain.Tweet) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !domain.ValidCharacterName(name) {
		return "", fmt.Errorf("character name %q: %w", name, domain.ErrInvalidInput)
	}

	dir := filepath.Join(pipelineDir, domain.DisplayNameMarker+name, e.now().Format("2006-01-02"), "processed")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, t := range tweets {
		if err := enc.Encode(domain.SourceRecord{Text: &t.Text}); err != nil {
			return "", fmt.Errorf("encoding tweet %s: %w", t.ID, err)
		}
	}

	path := filepath.Join(dir, e.corpusFile)
	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
