package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
	"github.com/custodia-labs/corpusforge/internal/fileutil"
	"github.com/custodia-labs/corpusforge/internal/logger"
)

// previewLength bounds the excerpt of a malformed line in diagnostics.
const previewLength = 100

var errNullRecord = errors.New("record is null")

// Converter translates one source corpus into the training format.
type Converter struct {
	out io.Writer
}

// NewConverter creates a converter reporting progress to out.
// A nil writer discards progress.
func NewConverter(out io.Writer) *Converter {
	if out == nil {
		out = io.Discard
	}
	return &Converter{out: out}
}

// Convert reads inputPath, converts every usable record and replaces
// outputPath with the result.
//
// Lines that are not valid records are skipped with a diagnostic; records
// without text are skipped silently. Failing to read the input or to write
// the output aborts the call and leaves any existing output untouched.
func (c *Converter) Convert(inputPath, outputPath, displayName string) (domain.ConversionResult, error) {
	if displayName == "" {
		displayName = domain.DefaultDisplayName
	}

	fmt.Fprintf(c.out, "Converting %s to Vertex AI format...\n", inputPath)

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return domain.ConversionResult{}, fmt.Errorf("reading %s: %w", inputPath, err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	result := domain.ConversionResult{
		InputPath:   inputPath,
		OutputPath:  outputPath,
		SourceCount: len(lines),
	}

	converted := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		text, ok, err := recordText([]byte(line))
		if err != nil {
			result.Malformed++
			fmt.Fprintf(c.out, "Skipping invalid JSON line: %s...\n", preview(line))
			logger.Debug("convert: %s: %v", inputPath, err)
			continue
		}
		if !ok {
			result.Empty++
			continue
		}

		encoded, err := encodeRecord(domain.NewTargetRecord(displayName, text))
		if err != nil {
			return domain.ConversionResult{}, fmt.Errorf("encoding record: %w", err)
		}
		converted = append(converted, encoded)
	}
	result.ConvertedCount = len(converted)

	if err := fileutil.WriteFileAtomic(outputPath, []byte(strings.Join(converted, "\n")), 0o644); err != nil {
		return domain.ConversionResult{}, fmt.Errorf("writing %s: %w", outputPath, err)
	}

	fmt.Fprintf(c.out, "Successfully converted %d entries to %d valid Vertex AI format entries\n",
		result.SourceCount, result.ConvertedCount)
	fmt.Fprintf(c.out, "Output saved to: %s\n", outputPath)

	return result, nil
}

// recordText extracts the trimmed text of one corpus line. A line that is
// not JSON, is null, or has a set text that is not a string is an error.
// Any other value without usable text, including arrays, scalars and a
// text of false or 0, reports ok false.
func recordText(line []byte) (text string, ok bool, err error) {
	var v any
	if err := json.Unmarshal(line, &v); err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, errNullRecord
	}
	obj, isObject := v.(map[string]any)
	if !isObject {
		return "", false, nil
	}

	switch t := obj["text"].(type) {
	case nil:
		return "", false, nil
	case string:
		text = strings.TrimSpace(t)
		return text, text != "", nil
	case bool:
		if !t {
			return "", false, nil
		}
	case float64:
		if t == 0 {
			return "", false, nil
		}
	}
	return "", false, fmt.Errorf("text is %T, not a string", obj["text"])
}

// encodeRecord serialises a record on one line without HTML escaping, so
// text such as "<3" or "&" is kept as written.
func encodeRecord(rec domain.TargetRecord) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func preview(line string) string {
	runes := []rune(line)
	if len(runes) > previewLength {
		runes = runes[:previewLength]
	}
	return string(runes)
}
