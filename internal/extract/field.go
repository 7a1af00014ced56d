package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/ghostwriter/internal/model"
)

// trailingFieldRe removes a dangling line that starts another bullet or bold field
var trailingFieldRe = regexp.MustCompile(`\n\s*[*\-].*`)

// fieldMatcher finds the value following the first matching marker.
// A value runs until the next line starting with '*' or '-', or end of text.
type fieldMatcher struct {
	patterns []*regexp.Regexp
}

func newFieldMatcher(markers ...string) fieldMatcher {
	patterns := make([]*regexp.Regexp, 0, len(markers))
	for _, m := range markers {
		patterns = append(patterns, regexp.MustCompile(`(?is)`+regexp.QuoteMeta(m)+`\s*(.+?)(?:\n\s*[*\-]|\z)`))
	}
	return fieldMatcher{patterns: patterns}
}

func (m fieldMatcher) find(text string) (string, bool) {
	for _, re := range m.patterns {
		match := re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		value := strings.TrimSpace(match[1])
		value = trailingFieldRe.ReplaceAllString(value, "")
		return strings.TrimSpace(value), true
	}
	return "", false
}

// value returns the extracted text, or fallback when the field is missing or empty
func (m fieldMatcher) value(text, fallback string) string {
	if v, ok := m.find(text); ok && v != "" {
		return v
	}
	return fallback
}

// sectionMatcher finds the body following the first matching section marker.
// A body runs until the next bold heading such as "**TOPICS AND THEMES:**".
type sectionMatcher struct {
	patterns []*regexp.Regexp
}

func newSectionMatcher(markers ...string) sectionMatcher {
	patterns := make([]*regexp.Regexp, 0, len(markers))
	for _, m := range markers {
		patterns = append(patterns, regexp.MustCompile(`(?is)`+regexp.QuoteMeta(m)+`\s*(.+?)(?:\n[ \t]*\*\*[A-Z][A-Z ]*:\*\*|\z)`))
	}
	return sectionMatcher{patterns: patterns}
}

func (m sectionMatcher) find(text string) string {
	for _, re := range m.patterns {
		if match := re.FindStringSubmatch(text); match != nil {
			return strings.TrimSpace(match[1])
		}
	}
	return model.SectionNotFound
}

// ExtractField returns the value after the first of markers found in text.
// Markers are tried in order and matched case-insensitively; the first
// occurrence of a marker wins. ok is false when no marker is present.
func ExtractField(text string, markers []string) (value string, ok bool) {
	return newFieldMatcher(markers...).find(text)
}

// ExtractSection returns the section body after the first of markers found in
// text, or model.SectionNotFound.
func ExtractSection(text string, markers []string) string {
	return newSectionMatcher(markers...).find(text)
}
