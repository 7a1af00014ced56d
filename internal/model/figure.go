package model

// SectionNotFound is stored in a StyleAnalysis field when the response had no such section
const SectionNotFound = "Section not found"

// Figure is a historical figure candidate returned by discovery, name search or refinement
type Figure struct {
	Name          string `json:"name"`
	TimePeriod    string `json:"time_period"`
	WritingStyle  string `json:"writing_style"`
	NotableWorks  string `json:"notable_works"`
	MatchCriteria string `json:"match_criteria"` // Why the figure matched the query
}

// StyleAnalysis is the seven-section writing style breakdown of a figure
type StyleAnalysis struct {
	FigureName            string `json:"figure_name"`
	ToneAnalysis          string `json:"tone_analysis"`
	VoicePerspective      string `json:"voice_perspective"`
	FormalityLevel        string `json:"formality_level"`
	LengthStructure       string `json:"length_structure"`
	UniqueCharacteristics string `json:"unique_characteristics"`
	TopicsThemes          string `json:"topics_themes"`
	HistoricalContext     string `json:"historical_context"`
}

// Sections returns the analysis sections in prompt order, keyed by heading
func (a StyleAnalysis) Sections() []AnalysisSection {
	return []AnalysisSection{
		{Heading: "Tone", Text: a.ToneAnalysis},
		{Heading: "Voice", Text: a.VoicePerspective},
		{Heading: "Formality", Text: a.FormalityLevel},
		{Heading: "Structure", Text: a.LengthStructure},
		{Heading: "Unique Characteristics", Text: a.UniqueCharacteristics},
		{Heading: "Topics", Text: a.TopicsThemes},
		{Heading: "Historical Context", Text: a.HistoricalContext},
	}
}

// AnalysisSection is one heading/text pair of a StyleAnalysis
type AnalysisSection struct {
	Heading string
	Text    string
}

// Found reports whether the section was present in the parsed response
func (s AnalysisSection) Found() bool {
	return s.Text != "" && s.Text != SectionNotFound
}
