package driven

// ConfigStore reads and writes persistent application settings addressed
// by dot-notation keys such as "embedding.provider" or "ingest.chunk_size".
// The file adapter maps key segments to nested TOML tables; the in-memory
// adapter backs tests with a flat map.
type ConfigStore interface {
	// Get returns the raw value stored under key and whether the key exists.
	Get(key string) (any, bool)

	// GetString returns the value under key, or "" when the key is absent
	// or holds a non-string.
	GetString(key string) string

	// GetInt returns the value under key, or 0 when the key is absent or
	// holds a non-numeric value. Numeric types are converted to int.
	GetInt(key string) int

	// GetBool returns the value under key, or false when the key is absent
	// or holds a non-boolean.
	GetBool(key string) bool

	// GetStringSlice returns the value under key, or nil when the key is
	// absent or holds a non-slice. Mixed-type slices keep only the strings.
	GetStringSlice(key string) []string

	// Set stores value under key and persists the change immediately.
	Set(key string, value any) error

	// Save writes the current settings to the backing store.
	Save() error

	// Load replaces the current settings with the backing store's contents.
	Load() error

	// Path identifies the backing store, e.g. the config file location.
	Path() string
}
