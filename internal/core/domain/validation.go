package domain

// LineProblem describes why one line of a training file is unusable.
type LineProblem struct {
	Line   int
	Reason string
}

// ValidationReport is the outcome of checking a converted training file.
type ValidationReport struct {
	Path     string
	Lines    int
	Valid    int
	Problems []LineProblem
}

// OK reports whether every line is a usable training record.
func (r ValidationReport) OK() bool {
	return len(r.Problems) == 0
}
