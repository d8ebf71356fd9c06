// Package config holds helpers shared by the config store adapters:
// value coercion and environment variable naming.
package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is prepended to environment overrides.
const EnvPrefix = "PETMATCH_"

// EnvName returns the environment variable that overrides key,
// e.g. "embedding.model" -> "PETMATCH_EMBEDDING_MODEL".
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// LookupEnv returns the override for key, if set.
func LookupEnv(key string) (string, bool) {
	return os.LookupEnv(EnvName(key))
}

// String converts a stored value to a string.
func String(val any) string {
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

// Int converts a stored value to an int. TOML integers decode as int64;
// environment overrides arrive as strings.
func Int(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Float converts a stored value to a float64.
func Float(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Bool converts a stored value to a bool.
func Bool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	default:
		return false
	}
}
