package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/corpusforge/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/corpusforge/internal/core/domain"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driven"
)

// Ensure Interactor implements the interface.
var _ driven.Interactor = (*Interactor)(nil)

// Interactor asks merge prompts through a bubbletea program on a terminal.
type Interactor struct {
	in      io.Reader
	out     io.Writer
	styles  *styles.Styles
	options []tea.ProgramOption
}

// NewInteractor creates an interactor reading keys from in and drawing to out.
func NewInteractor(in io.Reader, out io.Writer, opts ...tea.ProgramOption) *Interactor {
	return &Interactor{
		in:      in,
		out:     out,
		styles:  styles.DefaultStyles(),
		options: opts,
	}
}

// ShowCounts prints the available tweets per account.
func (i *Interactor) ShowCounts(counts []domain.AccountCount) {
	fmt.Fprintln(i.out)
	fmt.Fprintln(i.out, i.styles.Question.Render("Available Tweets:"))
	for _, c := range counts {
		fmt.Fprintf(i.out, "%s: %d tweets\n", i.styles.Account.Render("@"+c.Account), c.Available)
	}
	fmt.Fprintln(i.out)
}

// Notify prints a warning line.
func (i *Interactor) Notify(message string) {
	fmt.Fprintln(i.out, i.styles.Warning.Render(message))
}

// Run runs the wizard until stepper is done or the operator aborts.
func (i *Interactor) Run(ctx context.Context, stepper domain.Stepper) error {
	if _, pending := stepper.Current(); !pending {
		return nil
	}

	model := New(stepper, i.styles)
	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(i.in),
		tea.WithOutput(i.out),
	}, i.options...)

	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("wizard: %w", err)
	}

	m, ok := final.(*Model)
	if !ok {
		return fmt.Errorf("wizard: unexpected model %T", final)
	}
	return m.Err()
}
