package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
)

// FieldProceed is the field of the review gate's only prompt.
const FieldProceed = "proceed"

// samplePerAccount is how many tweets of each account are shown for review.
const samplePerAccount = 3

// ReviewGate shows a sample of a merge and asks whether to proceed.
type ReviewGate struct {
	sample   string
	answered bool
	decision domain.MergeDecision
}

// Ensure ReviewGate is a domain.Stepper.
var _ domain.Stepper = (*ReviewGate)(nil)

// NewReviewGate creates a gate showing the best tweets of each account.
func NewReviewGate(merged *domain.MergedCharacter, accounts []string) *ReviewGate {
	var tweets []domain.Tweet
	if merged != nil {
		tweets = merged.Tweets
	}
	return &ReviewGate{sample: RenderSample(tweets, accounts)}
}

// Current returns the confirmation prompt until it has been answered.
func (g *ReviewGate) Current() (domain.Prompt, bool) {
	if g.answered {
		return domain.Prompt{}, false
	}
	return domain.Prompt{
		Field:    FieldProceed,
		Kind:     domain.PromptConfirm,
		Message:  "Proceed with merging these tweets?",
		Default:  "y",
		Preamble: g.sample,
	}, true
}

// Answer records the operator's decision.
func (g *ReviewGate) Answer(input string) error {
	if g.answered {
		return fmt.Errorf("review already answered: %w", domain.ErrInvalidInput)
	}
	g.answered = true
	if ParseConfirm(input, true) {
		g.decision = domain.DecisionProceed
	} else {
		g.decision = domain.DecisionCancel
	}
	return nil
}

// Decision returns the operator's decision.
// Returns domain.ErrIncomplete if the prompt has not been answered.
func (g *ReviewGate) Decision() (domain.MergeDecision, error) {
	if !g.answered {
		return "", domain.ErrIncomplete
	}
	return g.decision, nil
}

// Sample returns the rendered sample shown before the prompt.
func (g *ReviewGate) Sample() string {
	return g.sample
}

// RenderSample formats up to three tweets per account, in account order.
// Accounts without tweets are left out.
func RenderSample(tweets []domain.Tweet, accounts []string) string {
	var b strings.Builder
	b.WriteString("Sample of Selected Tweets:\n")

	for _, account := range accounts {
		own := domain.TweetsBy(tweets, account)
		if len(own) == 0 {
			continue
		}
		if len(own) > samplePerAccount {
			own = own[:samplePerAccount]
		}

		fmt.Fprintf(&b, "\n@%s's Top Tweets:\n", account)
		for i, t := range own {
			fmt.Fprintf(&b, "\n%d. %s\n", i+1, t.Text)
			fmt.Fprintf(&b, "   likes %d | retweets %d | %s\n", t.Likes, t.RetweetCount, formatDate(t))
		}
	}
	return b.String()
}

func formatDate(t domain.Tweet) string {
	if t.Timestamp.IsZero() {
		return "unknown date"
	}
	return t.Timestamp.Local().Format("2006-01-02")
}
