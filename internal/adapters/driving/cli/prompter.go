package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driven"
)

// Ensure LinePrompter implements the interface.
var _ driven.Interactor = (*LinePrompter)(nil)

// LinePrompter asks merge prompts one line at a time. It is used when the
// input is not a terminal or when --plain is set.
type LinePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewLinePrompter creates a prompter reading answers from in.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// ShowCounts prints the available tweets per account.
func (p *LinePrompter) ShowCounts(counts []domain.AccountCount) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Available Tweets:")
	for _, c := range counts {
		fmt.Fprintf(p.out, "@%s: %d tweets\n", c.Account, c.Available)
	}
}

// Notify prints message on its own line.
func (p *LinePrompter) Notify(message string) {
	fmt.Fprintln(p.out, message)
}

// Run asks prompts until the stepper is done. A rejected answer is printed
// and the prompt is asked again. End of input aborts.
func (p *LinePrompter) Run(ctx context.Context, stepper domain.Stepper) error {
	var shown string
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		prompt, pending := stepper.Current()
		if !pending {
			return nil
		}

		if prompt.Preamble != "" && shown != prompt.Field {
			fmt.Fprintln(p.out)
			fmt.Fprint(p.out, prompt.Preamble)
			fmt.Fprintln(p.out)
			shown = prompt.Field
		}
		fmt.Fprint(p.out, renderPrompt(prompt))

		input, err := p.readLine()
		if err != nil {
			fmt.Fprintln(p.out)
			return err
		}

		err = stepper.Answer(input)
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			fmt.Fprintf(p.out, ">> %s\n", verr.Message)
		case err != nil:
			return err
		}
	}
}

// readLine returns the next trimmed line. A final line without a newline is
// still returned; domain.ErrAborted signals that no input is left.
func (p *LinePrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", domain.ErrAborted
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func renderPrompt(prompt domain.Prompt) string {
	var b strings.Builder
	b.WriteString("? ")
	b.WriteString(prompt.Message)

	switch prompt.Kind {
	case domain.PromptConfirm:
		if strings.HasPrefix(strings.ToLower(prompt.Default), "y") {
			b.WriteString(" (Y/n) ")
		} else {
			b.WriteString(" (y/N) ")
		}
	case domain.PromptSelect:
		b.WriteString("\n")
		for i, c := range prompt.Choices {
			fmt.Fprintf(&b, "  %d) %s\n", i+1, c.Label)
		}
		b.WriteString("  Answer: ")
	default:
		if prompt.Default != "" {
			fmt.Fprintf(&b, " (%s)", prompt.Default)
		}
		b.WriteString(" ")
	}
	return b.String()
}
