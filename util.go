package novacore

import (
	"strings"
	"unicode/utf8"
)

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func hasPrefix(s, prefix string) bool {
	return strings.HasPrefix(s, prefix)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
