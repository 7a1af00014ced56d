package extract

import (
	"testing"

	"github.com/ppiankov/ghostwriter/internal/model"
)

const analysisResponse = `Here is the analysis.

**TONE ANALYSIS:**
Dry, ironic and irreverent.

**VOICE AND PERSPECTIVE:**
Frequently first person, conversational.

**FORMALITY LEVEL:**
Informal, with deliberate vernacular.

**LENGTH AND STRUCTURE:**
Long anecdotes built from short sentences.

**UNIQUE CHARACTERISTICS:**
Deadpan exaggeration.

**TOPICS AND THEMES:**
Travel, hypocrisy, the Mississippi.

**HISTORICAL CONTEXT:**
Post-Civil War America.`

func TestParseAnalysis_AllSections(t *testing.T) {
	p := New(nil)

	a := p.ParseAnalysis("Mark Twain", analysisResponse)

	if a.FigureName != "Mark Twain" {
		t.Errorf("Expected figure name 'Mark Twain', got '%s'", a.FigureName)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"tone", a.ToneAnalysis, "Dry, ironic and irreverent."},
		{"voice", a.VoicePerspective, "Frequently first person, conversational."},
		{"formality", a.FormalityLevel, "Informal, with deliberate vernacular."},
		{"length", a.LengthStructure, "Long anecdotes built from short sentences."},
		{"unique", a.UniqueCharacteristics, "Deadpan exaggeration."},
		{"topics", a.TopicsThemes, "Travel, hypocrisy, the Mississippi."},
		{"context", a.HistoricalContext, "Post-Civil War America."},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, tt.got)
		}
	}
}

func TestParseAnalysis_PlainMarkersAndMissing(t *testing.T) {
	p := New(nil)

	a := p.ParseAnalysis("Unknown", "TONE ANALYSIS: Gentle.")
	if a.ToneAnalysis != "Gentle." {
		t.Errorf("Expected plain marker to match, got %q", a.ToneAnalysis)
	}
	if a.HistoricalContext != model.SectionNotFound {
		t.Errorf("Expected missing section sentinel, got %q", a.HistoricalContext)
	}
}

func TestParseAnalysis_Garbage(t *testing.T) {
	p := New(nil)

	a := p.ParseAnalysis("X", "I cannot help with that.")
	for _, s := range a.Sections() {
		if s.Text != model.SectionNotFound {
			t.Errorf("Expected %s to be %q, got %q", s.Heading, model.SectionNotFound, s.Text)
		}
	}
}

func TestParseVerification_Verified(t *testing.T) {
	p := New(nil)

	response := `**Status:** verified
**Reason:** Prolific letter writer with published essays
**Available Sources:** Letters, essays, travel books
**Concerns:** None
**Time Period:** 19th century
**Primary Medium:** Essays
**Writing Volume:** Extensive`

	v := p.ParseVerification("Mark Twain", response)

	if v.Status != model.StatusVerified {
		t.Errorf("Expected status VERIFIED, got %q", v.Status)
	}
	if !v.IsVerified() {
		t.Error("Expected IsVerified to be true")
	}
	if v.Reason != "Prolific letter writer with published essays" {
		t.Errorf("Unexpected reason: %q", v.Reason)
	}
	if v.AvailableSources != "Letters, essays, travel books" {
		t.Errorf("Unexpected sources: %q", v.AvailableSources)
	}
	if v.Concerns != "None" {
		t.Errorf("Unexpected concerns: %q", v.Concerns)
	}
	if v.TimePeriod != "19th century" || v.PrimaryMedium != "Essays" || v.WritingVolume != "Extensive" {
		t.Errorf("Unexpected optional fields: %+v", v)
	}
}

func TestParseVerification_Defaults(t *testing.T) {
	p := New(nil)

	v := p.ParseVerification("Nobody", "I am not sure who that is.")

	if v.Status != model.StatusUnverified {
		t.Errorf("Expected default status UNVERIFIED, got %q", v.Status)
	}
	if v.Reason != "Not specified" {
		t.Errorf("Expected default reason, got %q", v.Reason)
	}
	if v.AvailableSources != "Unknown" {
		t.Errorf("Expected default sources, got %q", v.AvailableSources)
	}
	if v.Concerns != "None specified" {
		t.Errorf("Expected default concerns, got %q", v.Concerns)
	}
	if v.TimePeriod != "" || v.PrimaryMedium != "" || v.WritingVolume != "" {
		t.Errorf("Expected optional fields empty, got %+v", v)
	}
}

func TestParseVerification_PlainAndUnknownStatus(t *testing.T) {
	p := New(nil)

	v := p.ParseVerification("Someone", "- Status: inappropriate\n- Reason: Modern private individual")
	if v.Status != model.StatusInappropriate {
		t.Errorf("Expected INAPPROPRIATE, got %q", v.Status)
	}

	v = p.ParseVerification("Someone", "**Status:** Maybe\n**Reason:** Unclear")
	if v.Status != "MAYBE" {
		t.Errorf("Expected unknown status kept as MAYBE, got %q", v.Status)
	}
	if v.IsKnownStatus() {
		t.Error("Expected MAYBE to be an unknown status")
	}
}

func TestParseVerification_OptionalFieldsWithUnverified(t *testing.T) {
	p := New(nil)

	// Optional fields are not tied to the status
	v := p.ParseVerification("Someone", "**Status:** UNVERIFIED\n**Time Period:** 1700s")
	if v.Status != model.StatusUnverified || v.TimePeriod != "1700s" {
		t.Errorf("Unexpected verification: %+v", v)
	}
}
