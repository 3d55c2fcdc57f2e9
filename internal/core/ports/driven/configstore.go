package driven

// ConfigStore holds settings under dotted keys such as "search.max_results".
// The file adapter persists them as TOML tables; the memory adapter keeps
// them for the life of the process.
type ConfigStore interface {
	// Get returns the raw value and whether key is set.
	Get(key string) (any, bool)

	// GetString returns "" when key is missing or not a string.
	GetString(key string) string

	// GetInt returns 0 when key is missing or not a whole number.
	GetInt(key string) int

	// GetFloat returns 0 when key is missing or not numeric.
	GetFloat(key string) float64

	// GetBool returns false when key is missing or not a bool.
	GetBool(key string) bool

	// GetStringSlice returns nil when key is missing or not a list.
	GetStringSlice(key string) []string

	// Set stores value under key. File-backed stores persist immediately.
	Set(key string, value any) error

	// Save persists every value.
	Save() error

	// Load replaces the values with the persisted ones.
	Load() error

	// Path returns where values are persisted.
	Path() string
}
