// Package wizard renders merge prompts as an interactive bubbletea form.
// A Model drives any domain.Stepper: it shows the pending prompt, feeds the
// answer back and moves on until the stepper is done.
package wizard

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/corpusforge/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/corpusforge/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/corpusforge/internal/core/domain"
)

// Model is the bubbletea model of one stepper run.
type Model struct {
	stepper domain.Stepper
	styles  *styles.Styles
	keys    *keymap.KeyMap
	input   textinput.Model

	prompt  domain.Prompt
	pending bool
	cursor  int
	errMsg  string
	history []string

	aborted bool
	err     error
}

// New creates a model for stepper.
func New(stepper domain.Stepper, s *styles.Styles) *Model {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.CharLimit = 9
	ti.Width = 12

	m := &Model{
		stepper: stepper,
		styles:  s,
		keys:    keymap.DefaultKeyMap(),
		input:   ti,
	}
	m.load()
	return m
}

// load fetches the pending prompt and resets the per-prompt state.
func (m *Model) load() {
	m.prompt, m.pending = m.stepper.Current()
	m.cursor = 0
	m.errMsg = ""
	m.input.Reset()
	m.input.Placeholder = m.prompt.Default
	if m.pending && m.prompt.Kind == domain.PromptNumber {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// Init initialises the model.
func (m *Model) Init() tea.Cmd {
	if !m.pending {
		return tea.Quit
	}
	return textinput.Blink
}

// Update handles key presses for the pending prompt.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.pending {
		return m, nil
	}

	if key.Matches(keyMsg, m.keys.Abort) {
		m.aborted = true
		return m, tea.Quit
	}

	switch m.prompt.Kind {
	case domain.PromptNumber:
		if key.Matches(keyMsg, m.keys.Submit) {
			return m, m.submit(m.input.Value(), m.input.Value())
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case domain.PromptConfirm:
		switch {
		case key.Matches(keyMsg, m.keys.Yes):
			return m, m.submit("y", "Yes")
		case key.Matches(keyMsg, m.keys.No):
			return m, m.submit("n", "No")
		case key.Matches(keyMsg, m.keys.Submit):
			label := "No"
			if defaultYes(m.prompt) {
				label = "Yes"
			}
			return m, m.submit("", label)
		}

	case domain.PromptSelect:
		switch {
		case key.Matches(keyMsg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(keyMsg, m.keys.Down):
			if m.cursor < len(m.prompt.Choices)-1 {
				m.cursor++
			}
		case key.Matches(keyMsg, m.keys.Submit):
			if len(m.prompt.Choices) == 0 {
				return m, nil
			}
			return m, m.submit(strconv.Itoa(m.cursor+1), m.prompt.Choices[m.cursor].Label)
		}
	}

	return m, nil
}

// submit answers the pending prompt. A rejected answer stays on the prompt
// with the message shown; any other failure ends the program.
func (m *Model) submit(answer, label string) tea.Cmd {
	err := m.stepper.Answer(answer)

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		m.errMsg = verr.Message
		m.input.Reset()
		return nil
	case err != nil:
		m.err = err
		return tea.Quit
	}

	if label == "" {
		label = m.prompt.Default
	}
	m.history = append(m.history, m.styles.Answered(m.prompt.Message, label))
	m.load()
	if !m.pending {
		return tea.Quit
	}
	return nil
}

// View renders answered prompts followed by the pending one.
func (m *Model) View() string {
	var b strings.Builder

	for _, line := range m.history {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if !m.pending || m.aborted {
		return b.String()
	}

	if m.prompt.Preamble != "" {
		b.WriteString(m.styles.Sample.Render(strings.TrimRight(m.prompt.Preamble, "\n")))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Question.Render("? " + m.prompt.Message))
	switch m.prompt.Kind {
	case domain.PromptNumber:
		if m.prompt.Default != "" {
			b.WriteString(m.styles.Muted.Render(" (" + m.prompt.Default + ")"))
		}
		b.WriteString(" ")
		b.WriteString(m.input.View())
		b.WriteString("\n")

	case domain.PromptConfirm:
		b.WriteString(m.styles.ConfirmHint(defaultYes(m.prompt)))
		b.WriteString("\n")

	case domain.PromptSelect:
		b.WriteString("\n")
		for i, c := range m.prompt.Choices {
			if i == m.cursor {
				b.WriteString(m.styles.Selected.Render("> " + c.Label))
			} else {
				b.WriteString("  " + m.styles.Normal.Render(c.Label))
			}
			b.WriteString("\n")
		}
	}

	if m.errMsg != "" {
		b.WriteString(m.styles.Rejected(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Muted.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func defaultYes(p domain.Prompt) bool {
	return strings.HasPrefix(strings.ToLower(p.Default), "y")
}

func (m *Model) helpLine() string {
	parts := make([]string, 0, 4)
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts, "["+h.Key+"] "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

// Done reports whether the stepper reached a terminal state.
func (m *Model) Done() bool {
	return !m.pending
}

// Err returns why the run ended early: domain.ErrAborted when the operator
// left the wizard, or the stepper's error.
func (m *Model) Err() error {
	if m.aborted {
		return domain.ErrAborted
	}
	if m.err != nil {
		return m.err
	}
	if m.pending {
		return domain.ErrIncomplete
	}
	return nil
}
