package driven

// ConfigStore holds the persisted settings as flat dot-notation keys such as
// "merge.default_quota". Type conversion is done by the store; persistence
// is up to the implementation.
type ConfigStore interface {
	// Get returns the raw value of key and whether it is set.
	Get(key string) (any, bool)

	// GetString returns key as a string, or "" if unset or not a string.
	GetString(key string) string

	// GetInt returns key as an int, or 0 if unset or not numeric.
	GetInt(key string) int

	// Set stores value under key and persists it before returning.
	Set(key string, value any) error

	// Path returns where the settings are kept.
	Path() string
}
