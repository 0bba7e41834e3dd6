// Package styles provides colour themes and styling for the merge wizard.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the wizard palette. Accounts are cyan and tweet metadata gray,
// matching the plain-text sample output.
type Theme struct {
	Prompt   lipgloss.Color
	Account  lipgloss.Color
	Text     lipgloss.Color
	Dim      lipgloss.Color
	Accepted lipgloss.Color
	Notice   lipgloss.Color
	Rejected lipgloss.Color
	Frame    lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Prompt:   lipgloss.Color("#7C3AED"), // Purple
		Account:  lipgloss.Color("#06B6D4"), // Cyan
		Text:     lipgloss.Color("#F5F5F5"), // White
		Dim:      lipgloss.Color("#808080"), // Gray
		Accepted: lipgloss.Color("#22C55E"), // Green
		Notice:   lipgloss.Color("#EAB308"), // Yellow
		Rejected: lipgloss.Color("#EF4444"), // Red
		Frame:    lipgloss.Color("#45475A"),
	}
}

// Styles contains the lipgloss styles of the wizard.
type Styles struct {
	theme *Theme

	// Question renders the prompt message.
	Question lipgloss.Style

	// Account renders "@name" in counts and samples.
	Account lipgloss.Style

	Normal lipgloss.Style

	// Muted renders defaults, hints and tweet metadata.
	Muted lipgloss.Style

	// Selected renders the highlighted choice and accepted answers.
	Selected lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	// Sample frames the review sample.
	Sample lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme:    theme,
		Question: lipgloss.NewStyle().Bold(true).Foreground(theme.Prompt),
		Account:  lipgloss.NewStyle().Bold(true).Foreground(theme.Account),
		Normal:   lipgloss.NewStyle().Foreground(theme.Text),
		Muted:    lipgloss.NewStyle().Foreground(theme.Dim),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(theme.Account),
		Error:    lipgloss.NewStyle().Foreground(theme.Rejected),
		Success:  lipgloss.NewStyle().Foreground(theme.Accepted),
		Warning:  lipgloss.NewStyle().Foreground(theme.Notice),
		Sample: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Frame).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Answered renders a prompt that has been answered.
func (s *Styles) Answered(message, answer string) string {
	return s.Success.Render("✔ ") + message + " " + s.Selected.Render(answer)
}

// Rejected renders the reason an answer was not accepted.
func (s *Styles) Rejected(reason string) string {
	return s.Error.Render(">> " + reason)
}

// ConfirmHint returns the yes/no hint with the default capitalised.
func (s *Styles) ConfirmHint(defaultYes bool) string {
	if defaultYes {
		return s.Muted.Render(" (Y/n)")
	}
	return s.Muted.Render(" (y/N)")
}
