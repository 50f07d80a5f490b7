package slug

import (
	"regexp"
	"strings"
)

var (
	nonAlphaNum  = regexp.MustCompile(`[^a-z0-9]+`)
	nonWordRunes = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)
)

// Make produces an ASCII kebab slug for generated note file names.
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}

// Sanitize keeps letters and digits of any script and collapses every other
// run of characters into a single underscore.
func Sanitize(input string, fallback string) string {
	s := nonWordRunes.ReplaceAllString(strings.TrimSpace(input), "_")
	if s == "" || strings.Trim(s, "_") == "" {
		return fallback
	}
	return s
}
