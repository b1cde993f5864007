package domain

import (
	"strings"
	"unicode/utf8"
)

func lower(s string) string { return strings.ToLower(s) }

// Truncate cuts s to at most n runes
func Truncate(s string, n int) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// StripSourceSuffix removes the trailing " - Publisher" part news APIs append to titles
func StripSourceSuffix(title string) string {
	title = strings.TrimSpace(title)
	if idx := strings.LastIndex(title, " - "); idx > 0 {
		title = title[:idx]
	}
	return strings.TrimSpace(title)
}
