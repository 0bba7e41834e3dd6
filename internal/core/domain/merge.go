package domain

import (
	"strconv"
	"strings"
	"time"
)

const unknownDescription = "Unknown"

// SortBy is the ranking criterion used when selecting tweets for a merge.
type SortBy string

// Available ranking criteria.
const (
	// SortByTotal ranks by likes plus retweets.
	SortByTotal SortBy = "total"

	// SortByLikes ranks by likes only.
	SortByLikes SortBy = "likes"

	// SortByRetweets ranks by retweets only.
	SortByRetweets SortBy = "retweets"

	// SortByDate ranks the most recent first.
	SortByDate SortBy = "date"
)

// AllSortCriteria returns every ranking criterion in presentation order.
func AllSortCriteria() []SortBy {
	return []SortBy{SortByTotal, SortByLikes, SortByRetweets, SortByDate}
}

// IsValid returns true if the criterion is recognised.
func (s SortBy) IsValid() bool {
	switch s {
	case SortByTotal, SortByLikes, SortByRetweets, SortByDate:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SortBy) String() string {
	return string(s)
}

// Description returns a human-readable description of the criterion.
func (s SortBy) Description() string {
	switch s {
	case SortByTotal:
		return "Total engagement (likes + retweets)"
	case SortByLikes:
		return "Likes only"
	case SortByRetweets:
		return "Retweets only"
	case SortByDate:
		return "Most recent"
	default:
		return unknownDescription
	}
}

// ParseSortBy converts a case-insensitive name to a SortBy.
func ParseSortBy(s string) (SortBy, bool) {
	v := SortBy(strings.ToLower(strings.TrimSpace(s)))
	return v, v.IsValid()
}

// MergeOptions are the validated parameters handed to the corpus store.
type MergeOptions struct {
	TweetsPerAccount int
	FilterRetweets   bool
	SortBy           SortBy
}

// Validate checks the options as a whole against the scarcest source.
func (o MergeOptions) Validate(ceiling int) error {
	if o.TweetsPerAccount <= 0 {
		return NewValidationError("tweetsPerAccount", "Please enter a positive number")
	}
	if o.TweetsPerAccount > ceiling {
		return NewValidationError("tweetsPerAccount", "Maximum available tweets is "+strconv.Itoa(ceiling))
	}
	if !o.SortBy.IsValid() {
		return NewValidationError("sortBy", "Please choose how tweets should be ranked")
	}
	return nil
}

// MergeConfig is everything the operator chose while configuring a merge.
type MergeConfig struct {
	Options      MergeOptions
	ReviewSample bool
}

// AccountCount is the number of records a source account can supply.
// Err is set when the count could not be fetched; Available is then zero.
type AccountCount struct {
	Account   string
	Available int
	Err       error
}

// Ceiling returns the smallest available count, which bounds the quota.
func Ceiling(counts []AccountCount) int {
	if len(counts) == 0 {
		return 0
	}
	ceiling := counts[0].Available
	for _, c := range counts[1:] {
		if c.Available < ceiling {
			ceiling = c.Available
		}
	}
	return ceiling
}

// MergeDecision is the terminal answer of the review gate.
type MergeDecision string

// Review gate outcomes.
const (
	DecisionProceed MergeDecision = "proceed"
	DecisionCancel  MergeDecision = "cancel"
)

// MergeState is a state of the merge workflow.
type MergeState string

// Merge workflow states.
const (
	MergeStateCollectingCounts   MergeState = "collecting_counts"
	MergeStateConfiguringOptions MergeState = "configuring_options"
	MergeStateReviewingSample    MergeState = "reviewing_sample"
	MergeStateCommitted          MergeState = "committed"
	MergeStateCancelled          MergeState = "cancelled"
)

// IsTerminal reports whether no further transition is possible.
func (s MergeState) IsTerminal() bool {
	return s == MergeStateCommitted || s == MergeStateCancelled
}

// MergeRequest identifies the composite character to build.
type MergeRequest struct {
	// Root is the project root holding the pipeline tree.
	Root string

	// Name is the identifier of the new composite character.
	Name string

	// Accounts are the source accounts, in presentation order.
	Accounts []string
}

// ValidCharacterName reports whether name can be used as a single path
// segment of the pipeline tree.
func ValidCharacterName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}

// Validate checks the request before any collaborator is contacted.
func (r MergeRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidInput
	}
	if !ValidCharacterName(r.Name) {
		return NewValidationError("name", "Character name must not contain path separators or ..")
	}
	if len(r.Accounts) < 2 {
		return ErrInvalidInput
	}
	for _, a := range r.Accounts {
		if strings.TrimSpace(a) == "" {
			return ErrInvalidInput
		}
	}
	return nil
}

// MergedCharacter is a merged record set produced by the corpus store.
type MergedCharacter struct {
	ID        string
	Name      string
	Accounts  []string
	Options   MergeOptions
	Tweets    []Tweet
	CreatedAt time.Time
}

// MergeOutcome is the terminal result of a merge workflow run.
type MergeOutcome struct {
	State      MergeState
	Path       []MergeState
	Counts     []AccountCount
	Config     MergeConfig
	Merge      *MergedCharacter
	ExportPath string
}

// Committed reports whether the merge may be reported as a success.
func (o *MergeOutcome) Committed() bool {
	return o != nil && o.State == MergeStateCommitted
}
