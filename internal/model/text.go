package model

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// Slugify derives a URL slug from a title.
func Slugify(title string) string {
	return slug.Make(title)
}

// Excerpt strips markup from content and truncates it for list display.
// maxLen counts characters, not bytes, so accented text is never cut
// mid-rune.
func Excerpt(content string, maxLen int) string {
	plain := strings.TrimSpace(htmlTagPattern.ReplaceAllString(content, ""))
	runes := []rune(plain)
	if len(runes) <= maxLen {
		return plain
	}
	return string(runes[:maxLen]) + "..."
}
