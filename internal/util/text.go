package util

import (
	"strings"
	"unicode/utf8"
)

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Preview collapses s onto one line and truncates it to max runes,
// appending an ellipsis when anything was cut. Used for log lines and the
// history pane so a long email never spans the screen.
// - Runs of whitespace (including newlines) become a single space
// - Leading/trailing whitespace is removed
// - max <= 0 returns the collapsed string untouched
func Preview(s string, max int) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	if max <= 0 || utf8.RuneCountInString(collapsed) <= max {
		return collapsed
	}
	if max == 1 {
		return "…"
	}
	runes := []rune(collapsed)
	return strings.TrimRight(string(runes[:max-1]), " ") + "…"
}
