// Package connectors provides ingestion sources and their registry.
package connectors

import "strings"

// StringValue reads a string config key, trimmed.
func StringValue(config map[string]any, key string) string {
	if v, ok := config[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// StringSliceValue reads a string-slice config key. Stored configs round-
// trip through JSON, so []any is as common as []string; comma-separated
// strings are accepted for hand-written configs.
func StringSliceValue(config map[string]any, key string) []string {
	switch v := config[key].(type) {
	case []string:
		return trimNonEmpty(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return trimNonEmpty(out)
	case string:
		return trimNonEmpty(strings.Split(v, ","))
	default:
		return nil
	}
}

// IntValue reads an int config key, accepting the numeric types a JSON
// or TOML round-trip produces.
func IntValue(config map[string]any, key string) int {
	switch v := config[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
