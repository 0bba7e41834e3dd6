package driving

import "context"

// ImportService loads exported tweets into the corpus store.
type ImportService interface {
	// Import reads path and stores its tweets under account.
	// Returns the number of tweets stored.
	Import(ctx context.Context, account, path string) (int, error)
}
