// Package vertex checks converted corpora against the Vertex AI supervised
// tuning format, decoding each line into the genai SDK's Content type.
package vertex

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driven"
)

// minTurns is the shortest usable conversation: one prompt, one answer.
const minTurns = 2

// Ensure Validator implements the interface.
var _ driven.TrainingValidator = (*Validator)(nil)

// Validator checks converted training files line by line.
type Validator struct{}

// NewValidator creates a new training file validator.
func NewValidator() *Validator {
	return &Validator{}
}

// example is one line of a tuning dataset.
type example struct {
	Contents []*genai.Content `json:"contents"`
}

// ValidateFile checks every non-empty line of path. Problems are reported
// per line; only an unreadable file is an error.
func (v *Validator) ValidateFile(path string) (domain.ValidationReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ValidationReport{}, fmt.Errorf("reading %s: %w", path, err)
	}

	report := domain.ValidationReport{Path: path}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		report.Lines++
		if reason := checkLine(text); reason != "" {
			report.Problems = append(report.Problems, domain.LineProblem{Line: line, Reason: reason})
			continue
		}
		report.Valid++
	}
	if err := scanner.Err(); err != nil {
		return report, fmt.Errorf("scanning %s: %w", path, err)
	}
	return report, nil
}

// checkLine returns why a line is unusable, or "" if it is valid.
func checkLine(line []byte) string {
	var ex example
	if err := json.Unmarshal(line, &ex); err != nil {
		return "invalid JSON: " + err.Error()
	}
	if len(ex.Contents) < minTurns {
		return "expected at least " + strconv.Itoa(minTurns) + " turns, got " + strconv.Itoa(len(ex.Contents))
	}

	for i, c := range ex.Contents {
		if c == nil {
			return fmt.Sprintf("turn %d is null", i+1)
		}
		want := string(genai.RoleUser)
		if i%2 == 1 {
			want = string(genai.RoleModel)
		}
		if c.Role != want {
			return fmt.Sprintf("turn %d has role %q, want %q", i+1, c.Role, want)
		}
		if !hasText(c) {
			return fmt.Sprintf("turn %d has no text", i+1)
		}
	}

	if last := ex.Contents[len(ex.Contents)-1]; last.Role != string(genai.RoleModel) {
		return "conversation must end with a model turn"
	}
	return ""
}

func hasText(c *genai.Content) bool {
	if len(c.Parts) == 0 {
		return false
	}
	for _, p := range c.Parts {
		if p == nil || strings.TrimSpace(p.Text) == "" {
			return false
		}
	}
	return true
}
