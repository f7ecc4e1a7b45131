package memory

import (
	"sync"

	"github.com/custodia-labs/memora-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a plain map so service tests can exercise
// configuration round trips without touching the filesystem. Keys are the
// same dot-notation strings the TOML adapter uses; no nesting happens here.
type ConfigStore struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewConfigStore returns an empty in-memory settings store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{data: make(map[string]any)}
}

// Get returns the raw value under key and whether it exists.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// GetString returns the string under key, or "" for missing or
// non-string values.
func (s *ConfigStore) GetString(key string) string {
	if v, ok := s.Get(key); ok {
		if str, isString := v.(string); isString {
			return str
		}
	}
	return ""
}

// GetInt returns the integer under key. Values stored as int64 or float64
// are converted; anything else yields 0.
func (s *ConfigStore) GetInt(key string) int {
	v, ok := s.Get(key)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// GetBool returns the boolean under key, or false for missing or
// non-boolean values.
func (s *ConfigStore) GetBool(key string) bool {
	if v, ok := s.Get(key); ok {
		if b, isBool := v.(bool); isBool {
			return b
		}
	}
	return false
}

// GetStringSlice returns the strings under key. An []any value keeps only
// its string elements; missing or non-slice values yield nil.
func (s *ConfigStore) GetStringSlice(key string) []string {
	v, ok := s.Get(key)
	if !ok {
		return nil
	}
	switch items := v.(type) {
	case []string:
		return items
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if str, isString := item.(string); isString {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// Set stores value under key. There is nothing to persist, so Set
// never fails.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Save is a no-op; the map is the only copy.
func (s *ConfigStore) Save() error { return nil }

// Load is a no-op; the map is the only copy.
func (s *ConfigStore) Load() error { return nil }

// Path reports the sentinel ":memory:" since no file backs the store.
func (s *ConfigStore) Path() string { return ":memory:" }
