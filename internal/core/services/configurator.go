package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
)

// Merge configuration fields, in the order they are asked.
const (
	FieldTweetsPerAccount = "tweetsPerAccount"
	FieldFilterRetweets   = "filterRetweets"
	FieldSortBy           = "sortBy"
	FieldReviewSample     = "reviewSample"
)

// MergeConfigurator collects the merge options one prompt at a time.
// Answers are validated as they arrive; a rejected answer keeps the
// configurator on the same prompt.
type MergeConfigurator struct {
	ceiling      int
	defaultQuota int

	step   int
	config domain.MergeConfig
}

// Ensure MergeConfigurator is a domain.Stepper.
var _ domain.Stepper = (*MergeConfigurator)(nil)

// NewMergeConfigurator creates a configurator bounded by the smallest
// available count. defaultQuota is offered as the default quota.
func NewMergeConfigurator(counts []domain.AccountCount, defaultQuota int) *MergeConfigurator {
	if defaultQuota <= 0 {
		defaultQuota = domain.DefaultSettings().Merge.DefaultQuota
	}
	return &MergeConfigurator{
		ceiling:      domain.Ceiling(counts),
		defaultQuota: defaultQuota,
	}
}

// Ceiling returns the maximum accepted quota.
func (c *MergeConfigurator) Ceiling() int {
	return c.ceiling
}

// Current returns the pending prompt.
func (c *MergeConfigurator) Current() (domain.Prompt, bool) {
	switch c.step {
	case 0:
		return domain.Prompt{
			Field:   FieldTweetsPerAccount,
			Kind:    domain.PromptNumber,
			Message: "How many top tweets to include from each account?",
			Default: strconv.Itoa(c.defaultQuota),
		}, true
	case 1:
		return domain.Prompt{
			Field:   FieldFilterRetweets,
			Kind:    domain.PromptConfirm,
			Message: "Exclude retweets?",
			Default: "y",
		}, true
	case 2:
		choices := make([]domain.Choice, 0, len(domain.AllSortCriteria()))
		for _, s := range domain.AllSortCriteria() {
			choices = append(choices, domain.Choice{Label: s.Description(), Value: s.String()})
		}
		return domain.Prompt{
			Field:   FieldSortBy,
			Kind:    domain.PromptSelect,
			Message: "How should tweets be ranked?",
			Choices: choices,
		}, true
	case 3:
		return domain.Prompt{
			Field:   FieldReviewSample,
			Kind:    domain.PromptConfirm,
			Message: "Would you like to review a sample of selected tweets before merging?",
			Default: "y",
		}, true
	default:
		return domain.Prompt{}, false
	}
}

// Answer applies the operator's input to the pending prompt.
func (c *MergeConfigurator) Answer(input string) error {
	prompt, ok := c.Current()
	if !ok {
		return fmt.Errorf("configuration already complete: %w", domain.ErrInvalidInput)
	}

	switch prompt.Field {
	case FieldTweetsPerAccount:
		n, err := c.parseQuota(input)
		if err != nil {
			return err
		}
		c.config.Options.TweetsPerAccount = n
	case FieldFilterRetweets:
		c.config.Options.FilterRetweets = ParseConfirm(input, true)
	case FieldSortBy:
		s, err := parseChoice(input)
		if err != nil {
			return err
		}
		c.config.Options.SortBy = s
	case FieldReviewSample:
		c.config.ReviewSample = ParseConfirm(input, true)
	}

	c.step++
	return nil
}

// Done reports whether every prompt has been answered.
func (c *MergeConfigurator) Done() bool {
	_, pending := c.Current()
	return !pending
}

// Config returns the collected configuration.
// Returns domain.ErrIncomplete until every prompt has been answered.
func (c *MergeConfigurator) Config() (domain.MergeConfig, error) {
	if !c.Done() {
		return domain.MergeConfig{}, domain.ErrIncomplete
	}
	if err := c.config.Options.Validate(c.ceiling); err != nil {
		return domain.MergeConfig{}, err
	}
	return c.config, nil
}

func (c *MergeConfigurator) parseQuota(input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		input = strconv.Itoa(c.defaultQuota)
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, domain.NewValidationError(FieldTweetsPerAccount, "Please enter a valid number")
	}
	opts := domain.MergeOptions{TweetsPerAccount: n, SortBy: domain.SortByTotal}
	if err := opts.Validate(c.ceiling); err != nil {
		return 0, err
	}
	return n, nil
}

// parseChoice accepts a criterion name or its 1-based position.
func parseChoice(input string) (domain.SortBy, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", domain.NewValidationError(FieldSortBy, "Please choose how tweets should be ranked")
	}
	all := domain.AllSortCriteria()
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(all) {
			return all[n-1], nil
		}
		return "", domain.NewValidationError(FieldSortBy, fmt.Sprintf("Please enter a number between 1 and %d", len(all)))
	}
	if s, ok := domain.ParseSortBy(input); ok {
		return s, nil
	}
	return "", domain.NewValidationError(FieldSortBy, "Unknown option: "+input)
}

// ParseConfirm interprets a yes/no answer. Empty input selects def;
// anything starting with "y" in any case is yes and everything else is no.
func ParseConfirm(input string, def bool) bool {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return def
	}
	return strings.HasPrefix(input, "y")
}
