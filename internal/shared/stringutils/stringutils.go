package stringutils

import "strings"

// Truncate shortens a string to at most n characters, adding "..." if it was truncated.
// It never splits a multi-byte character.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i] + "..."
		}
		count++
	}
	return s
}

// IsTruthy reports whether s is one of the accepted "on" spellings of a
// boolean environment flag: 1, true or yes, in any case.
func IsTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
