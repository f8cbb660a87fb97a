package app

import (
	"os"
	"strconv"
	"strings"
)

// EnvOr returns the named environment variable, or fallback when it is
// unset or empty. The binaries use it to give flags environment defaults.
func EnvOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// EnvIntOr is EnvOr for integer variables. Values that do not parse fall
// back rather than aborting startup.
func EnvIntOr(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// SplitList splits a comma separated flag value, trimming whitespace and
// dropping empty entries.
func SplitList(raw string) []string {
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
