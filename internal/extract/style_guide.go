package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/ghostwriter/internal/model"
)

// styleMatcher tries, in order: **FIELD:** [value], **FIELD:** value,
// FIELD: [value] and FIELD: value.
type styleMatcher struct {
	patterns []*regexp.Regexp
}

// leadingLabelRe detects a capture that is really the next bold label
var leadingLabelRe = regexp.MustCompile(`(?i)^(?:\*\*\s*)?\*\*[A-Z_ ]+:\*\*`)

func newStyleMatcher(field string) styleMatcher {
	f := regexp.QuoteMeta(field)
	return styleMatcher{patterns: []*regexp.Regexp{
		regexp.MustCompile(`(?is)\*\*` + f + `:\*\*\s*\[(.+?)\]`),
		regexp.MustCompile(`(?is)\*\*` + f + `:\*\*\s*(.+?)(?:\n[ \t]*\*\*|\z)`),
		regexp.MustCompile(`(?is)` + f + `:\s*\[(.+?)\]`),
		regexp.MustCompile(`(?is)` + f + `:\s*(.+?)(?:\n[A-Z_]+:|\z)`),
	}}
}

func (m styleMatcher) find(text string) string {
	for _, re := range m.patterns {
		match := re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		raw := strings.TrimSpace(match[1])
		if leadingLabelRe.MatchString(raw) {
			continue
		}
		if value := strings.TrimSpace(strings.ReplaceAll(raw, "**", "")); value != "" {
			return value
		}
	}
	return ""
}

var (
	toneStyle      = newStyleMatcher(model.ToneField.Name)
	voiceStyle     = newStyleMatcher(model.VoiceField.Name)
	formalityStyle = newStyleMatcher(model.FormalityField.Name)
	lengthStyle    = newStyleMatcher(model.LengthField.Name)
	topicsStyle    = newStyleMatcher("PREFERRED_TOPICS")
	avoidStyle     = newStyleMatcher("AVOID_TOPICS")
	notesStyle     = newStyleMatcher("WRITING_STYLE_NOTES")
)

// ParseStyleGuide builds a StyleGuide from a style guide response. Enumerated
// fields that are missing or unrecognized fall back to their defaults.
func (p *Parser) ParseStyleGuide(response string) model.StyleGuide {
	return model.StyleGuide{
		Tone:              p.choice(toneStyle.find(response), model.ToneField),
		Voice:             p.choice(voiceStyle.find(response), model.VoiceField),
		Formality:         p.choice(formalityStyle.find(response), model.FormalityField),
		LengthPreference:  p.choice(lengthStyle.find(response), model.LengthField),
		Topics:            ParseTopicList(topicsStyle.find(response)),
		AvoidTopics:       ParseTopicList(avoidStyle.find(response)),
		WritingStyleNotes: notesStyle.find(response),
	}
}

// ValidateChoice maps value onto one of field's choices: an exact
// case-insensitive match first, then the first choice that contains or is
// contained in value. ok is false when neither matched.
func ValidateChoice(value string, field model.ChoiceField) (choice string, ok bool) {
	lower := strings.ToLower(strings.TrimSpace(value))
	if lower == "" {
		return field.Default, false
	}
	for _, c := range field.Choices {
		if strings.ToLower(c) == lower {
			return c, true
		}
	}
	for _, c := range field.Choices {
		cl := strings.ToLower(c)
		if strings.Contains(cl, lower) || strings.Contains(lower, cl) {
			return c, true
		}
	}
	return field.Default, false
}

func (p *Parser) choice(value string, field model.ChoiceField) string {
	if value == "" {
		return field.Default
	}
	c, ok := ValidateChoice(value, field)
	if !ok {
		p.logger.Warn("invalid style value, using default",
			"field", strings.ToLower(field.Name), "value", value, "default", field.Default)
	}
	return c
}

var ignoredTopics = map[string]bool{"none": true, "n/a": true, "not specified": true}

// ParseTopicList splits a comma-separated list, dropping blanks and
// placeholder entries such as "none". Duplicates are kept. At most
// model.MaxTopics entries are returned.
func ParseTopicList(text string) []string {
	topics := []string{}
	if text == "" {
		return topics
	}
	for _, t := range strings.Split(text, ",") {
		t = strings.TrimSpace(t)
		if t == "" || ignoredTopics[strings.ToLower(t)] {
			continue
		}
		topics = append(topics, t)
		if len(topics) == model.MaxTopics {
			break
		}
	}
	return topics
}
