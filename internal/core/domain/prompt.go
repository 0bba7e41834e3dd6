package domain

// PromptKind selects how a prompt is answered.
type PromptKind int

// Prompt kinds.
const (
	// PromptNumber expects an integer typed by the operator.
	PromptNumber PromptKind = iota

	// PromptConfirm expects a yes/no answer.
	PromptConfirm

	// PromptSelect expects one of a fixed set of choices.
	PromptSelect
)

// Choice is one option of a select prompt.
type Choice struct {
	Label string
	Value string
}

// Prompt is a single question asked of the operator.
type Prompt struct {
	// Field names the value being collected.
	Field string

	Kind    PromptKind
	Message string

	// Default is the answer used for empty input. Empty means no default.
	Default string

	// Choices lists the options of a select prompt.
	Choices []Choice

	// Preamble is shown once before the question (e.g. a tweet sample).
	Preamble string
}

// Stepper is an interaction expressed as a sequence of prompts.
//
// Current returns the pending prompt, or false when the stepper has reached
// a terminal state. Answer feeds the raw operator input for the pending
// prompt; a *ValidationError leaves the stepper on the same prompt.
type Stepper interface {
	Current() (Prompt, bool)
	Answer(input string) error
}
