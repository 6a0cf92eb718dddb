package driven

// ConfigStore provides persistent key-value configuration.
// Keys use dot notation (e.g. "embedding.provider", "chunk.size").
type ConfigStore interface {
	// Get retrieves a raw value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" if unset.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 if unset.
	GetInt(key string) int

	// GetStringSlice retrieves a string slice value, or nil if unset.
	GetStringSlice(key string) []string

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Path returns the backing file path, for display.
	Path() string
}
