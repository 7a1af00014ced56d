package extract

import (
	"github.com/ppiankov/ghostwriter/internal/model"
)

// Analysis sections in response order
var (
	toneSection           = newSectionMatcher("**TONE ANALYSIS:**", "TONE ANALYSIS:")
	voiceSection          = newSectionMatcher("**VOICE AND PERSPECTIVE:**", "VOICE AND PERSPECTIVE:")
	formalitySection      = newSectionMatcher("**FORMALITY LEVEL:**", "FORMALITY LEVEL:")
	lengthSection         = newSectionMatcher("**LENGTH AND STRUCTURE:**", "LENGTH AND STRUCTURE:")
	characteristicSection = newSectionMatcher("**UNIQUE CHARACTERISTICS:**", "UNIQUE CHARACTERISTICS:")
	topicsSection         = newSectionMatcher("**TOPICS AND THEMES:**", "TOPICS AND THEMES:")
	contextSection        = newSectionMatcher("**HISTORICAL CONTEXT:**", "HISTORICAL CONTEXT:")
)

// ParseAnalysis builds a StyleAnalysis from an analysis response. Sections
// that are absent hold model.SectionNotFound.
func (p *Parser) ParseAnalysis(figureName, response string) model.StyleAnalysis {
	a := model.StyleAnalysis{
		FigureName:            figureName,
		ToneAnalysis:          toneSection.find(response),
		VoicePerspective:      voiceSection.find(response),
		FormalityLevel:        formalitySection.find(response),
		LengthStructure:       lengthSection.find(response),
		UniqueCharacteristics: characteristicSection.find(response),
		TopicsThemes:          topicsSection.find(response),
		HistoricalContext:     contextSection.find(response),
	}

	missing := 0
	for _, s := range a.Sections() {
		if !s.Found() {
			missing++
		}
	}
	if missing > 0 {
		p.logger.Debug("analysis sections missing", "figure", figureName, "missing", missing)
	}
	return a
}

// Verification fields; bold markers take precedence over plain ones
var (
	statusField    = newFieldMatcher("**Status:**", "Status:")
	reasonField    = newFieldMatcher("**Reason:**", "Reason:")
	sourcesField   = newFieldMatcher("**Available Sources:**", "Available Sources:")
	concernsField  = newFieldMatcher("**Concerns:**", "Concerns:")
	periodField    = newFieldMatcher("**Time Period:**", "Time Period:")
	mediumField    = newFieldMatcher("**Primary Medium:**", "Primary Medium:")
	volumeField    = newFieldMatcher("**Writing Volume:**", "Writing Volume:")
	defaultStatus  = string(model.StatusUnverified)
	defaultSources = "Unknown"
)

// ParseVerification builds a Verification from a verification response.
// Status is trimmed and upper-cased but otherwise kept as written, so callers
// should check IsKnownStatus before trusting it.
func (p *Parser) ParseVerification(figureName, response string) model.Verification {
	v := model.Verification{
		FigureName:       figureName,
		Status:           model.NormalizeStatus(statusField.value(response, defaultStatus)),
		Reason:           reasonField.value(response, notSpecified),
		AvailableSources: sourcesField.value(response, defaultSources),
		Concerns:         concernsField.value(response, "None specified"),
		TimePeriod:       periodField.value(response, ""),
		PrimaryMedium:    mediumField.value(response, ""),
		WritingVolume:    volumeField.value(response, ""),
	}
	if !v.IsKnownStatus() {
		p.logger.Warn("unrecognized verification status", "figure", figureName, "status", v.Status)
	}
	return v
}
