package util

import (
	"regexp"
	"strings"
)

var (
	slugStripRe = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugSepRe   = regexp.MustCompile(`[\s_-]+`)
)

// Slug lower-cases text, drops everything but letters, digits and
// separators, and joins words with single underscores. A positive maxLength
// truncates the result on a rune boundary. The result may be empty.
func Slug(text string, maxLength int) string {
	s := slugStripRe.ReplaceAllString(strings.ToLower(text), "")
	s = slugSepRe.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")

	if maxLength > 0 {
		if r := []rune(s); len(r) > maxLength {
			s = strings.TrimRight(string(r[:maxLength]), "_")
		}
	}
	return s
}
