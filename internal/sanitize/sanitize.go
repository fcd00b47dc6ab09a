// Package sanitize turns free-text document titles into filesystem-safe
// names.
package sanitize

import (
	"regexp"
	"strings"
)

// DefaultMaxLength is the longest filename Filename will produce.
const DefaultMaxLength = 100

// Placeholder is substituted when sanitizing leaves nothing usable.
const Placeholder = "untitled_document"

var (
	reservedChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Filename returns a filesystem-safe name derived from title, limited to
// DefaultMaxLength characters. The function is pure and idempotent.
func Filename(title string) string {
	return FilenameLimit(title, DefaultMaxLength)
}

// FilenameLimit is Filename with an explicit length limit. Reserved
// characters become underscores, whitespace runs collapse to single
// spaces, and over-long names are cut at the last word boundary at or
// before the limit.
func FilenameLimit(title string, maxLen int) string {
	safe := reservedChars.ReplaceAllString(title, "_")
	safe = strings.TrimSpace(whitespaceRun.ReplaceAllString(safe, " "))

	if runes := []rune(safe); maxLen > 0 && len(runes) > maxLen {
		safe = string(runes[:maxLen])
		if i := strings.LastIndex(safe, " "); i > 0 {
			safe = safe[:i]
		}
		safe = strings.TrimSpace(safe)
	}

	if safe == "" {
		return Placeholder
	}
	return safe
}
