package model

// MaxTopics caps the preferred and avoided topic lists
const MaxTopics = 10

// StyleGuide is the normalized, enumerated form of a figure's writing style
type StyleGuide struct {
	Tone              string   `json:"tone" yaml:"tone"`
	Voice             string   `json:"voice" yaml:"voice"`
	Formality         string   `json:"formality" yaml:"formality"`
	LengthPreference  string   `json:"length_preference" yaml:"length_preference"`
	Topics            []string `json:"topics" yaml:"topics"`
	AvoidTopics       []string `json:"avoid_topics" yaml:"avoid_topics"`
	WritingStyleNotes string   `json:"writing_style_notes" yaml:"writing_style_notes"`
}

// ChoiceField describes an enumerated style guide field
type ChoiceField struct {
	Name    string   // Label used in prompts and responses (e.g. "TONE")
	Choices []string // Allowed values, in priority order for fuzzy matching
	Default string
}

var (
	ToneField = ChoiceField{
		Name:    "TONE",
		Choices: []string{"casual", "professional", "friendly", "authoritative", "witty", "formal"},
		Default: "professional",
	}
	VoiceField = ChoiceField{
		Name:    "VOICE",
		Choices: []string{"first_person", "second_person", "third_person"},
		Default: "first_person",
	}
	FormalityField = ChoiceField{
		Name:    "FORMALITY",
		Choices: []string{"very_casual", "casual", "moderate", "formal", "academic"},
		Default: "moderate",
	}
	LengthField = ChoiceField{
		Name:    "LENGTH_PREFERENCE",
		Choices: []string{"short", "medium", "long", "variable"},
		Default: "medium",
	}
)

// DefaultStyleGuide returns a guide with every enumerated field at its default
func DefaultStyleGuide() StyleGuide {
	return StyleGuide{
		Tone:             ToneField.Default,
		Voice:            VoiceField.Default,
		Formality:        FormalityField.Default,
		LengthPreference: LengthField.Default,
		Topics:           []string{},
		AvoidTopics:      []string{},
	}
}

// Allows reports whether value is one of the field's choices
func (f ChoiceField) Allows(value string) bool {
	for _, c := range f.Choices {
		if c == value {
			return true
		}
	}
	return false
}

// Sanitize resets enumerated fields outside their choices to the defaults
// and caps both topic lists at MaxTopics. It returns the names of the
// fields it changed.
func (g *StyleGuide) Sanitize() []string {
	var changed []string
	for _, f := range []struct {
		field ChoiceField
		value *string
	}{
		{ToneField, &g.Tone},
		{VoiceField, &g.Voice},
		{FormalityField, &g.Formality},
		{LengthField, &g.LengthPreference},
	} {
		if !f.field.Allows(*f.value) {
			*f.value = f.field.Default
			changed = append(changed, f.field.Name)
		}
	}

	if g.Topics == nil {
		g.Topics = []string{}
	}
	if g.AvoidTopics == nil {
		g.AvoidTopics = []string{}
	}
	if len(g.Topics) > MaxTopics {
		g.Topics = g.Topics[:MaxTopics]
		changed = append(changed, "PREFERRED_TOPICS")
	}
	if len(g.AvoidTopics) > MaxTopics {
		g.AvoidTopics = g.AvoidTopics[:MaxTopics]
		changed = append(changed, "AVOID_TOPICS")
	}
	return changed
}
