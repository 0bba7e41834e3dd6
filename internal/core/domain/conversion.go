package domain

import "fmt"

// Fixed names used by the conversion pipeline.
const (
	// DefaultCorpusFile is the name of a source corpus inside the pipeline tree.
	DefaultCorpusFile = "finetuning.jsonl"

	// DefaultOutputFile is the name of the converted sibling of a corpus.
	DefaultOutputFile = "finetuning_vertex_ai.jsonl"

	// DefaultDisplayName is used when no account can be derived for a corpus.
	DefaultDisplayName = "user"

	// DisplayNameMarker prefixes the path segment that names an account,
	// e.g. pipeline/_takshit/2024-01-02/processed/finetuning.jsonl.
	DisplayNameMarker = "_"
)

// Conversation roles of the target format.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// SourceRecord is one line of a source corpus as the exporter writes it.
type SourceRecord struct {
	Text *string `json:"text"`
}

// Part is a single text part of a conversation turn.
type Part struct {
	Text string `json:"text"`
}

// Turn is one side of a training conversation.
type Turn struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// TargetRecord is one line of a converted corpus: a synthetic user turn
// followed by the model turn carrying the source text.
type TargetRecord struct {
	Contents []Turn `json:"contents"`
}

// Instruction returns the synthetic user turn for a display name.
func Instruction(displayName string) string {
	return fmt.Sprintf("Generate a tweet in the style of @%s. Keep it authentic to their voice and personality.", displayName)
}

// NewTargetRecord builds the two-turn record for an already trimmed text.
func NewTargetRecord(displayName, text string) TargetRecord {
	return TargetRecord{
		Contents: []Turn{
			{Role: RoleUser, Parts: []Part{{Text: Instruction(displayName)}}},
			{Role: RoleModel, Parts: []Part{{Text: text}}},
		},
	}
}

// ConversionResult summarises the conversion of one corpus file.
//
// SourceCount is the number of raw lines after the split, blank lines
// included. ConvertedCount is the number of records written. Malformed and
// Empty break down the records that were skipped.
type ConversionResult struct {
	InputPath      string
	OutputPath     string
	SourceCount    int
	ConvertedCount int
	Malformed      int
	Empty          int
}

// ConversionOutcome is the result or failure of one file in a batch.
type ConversionOutcome struct {
	InputPath   string
	DisplayName string
	Result      *ConversionResult
	Err         error
}

// Succeeded reports whether the file was converted.
func (o ConversionOutcome) Succeeded() bool {
	return o.Err == nil && o.Result != nil
}

// BatchReport aggregates a batch conversion in discovery order.
type BatchReport struct {
	Discovered []string
	Outcomes   []ConversionOutcome
}

// Results returns the successful conversions in discovery order.
func (r *BatchReport) Results() []ConversionResult {
	results := make([]ConversionResult, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.Succeeded() {
			results = append(results, *o.Result)
		}
	}
	return results
}

// Failures returns the outcomes that could not be converted.
func (r *BatchReport) Failures() []ConversionOutcome {
	var failed []ConversionOutcome
	for _, o := range r.Outcomes {
		if !o.Succeeded() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Totals sums the record counts over all successful conversions.
func (r *BatchReport) Totals() (source, converted, skipped int) {
	for _, res := range r.Results() {
		source += res.SourceCount
		converted += res.ConvertedCount
		skipped += res.Malformed + res.Empty
	}
	return source, converted, skipped
}
