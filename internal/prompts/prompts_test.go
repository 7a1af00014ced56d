package prompts

import (
	"strings"
	"testing"
)

func TestDiscovery(t *testing.T) {
	p, err := Discovery("witty American satirists", 7)
	if err != nil {
		t.Fatalf("Discovery failed: %v", err)
	}
	for _, want := range []string{
		"User criteria: witty American satirists",
		"Please suggest 7 historical",
		"**Figure 1: [Name] ([Time Period])**",
		"- Match Criteria: [Why they fit]",
		"[Continue for all 7 figures...]",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("discovery prompt missing %q", want)
		}
	}
}

func TestNameSearch(t *testing.T) {
	p, err := NameSearch("Twain", 3)
	if err != nil {
		t.Fatalf("NameSearch failed: %v", err)
	}
	for _, want := range []string{"Name query: Twain", "- Match Type:", "- Also Known As:", "up to 3"} {
		if !strings.Contains(p, want) {
			t.Errorf("name search prompt missing %q", want)
		}
	}
}

func TestRefinement(t *testing.T) {
	p, err := Refinement("poets", "less romantic, more modern", 3)
	if err != nil {
		t.Fatalf("Refinement failed: %v", err)
	}
	if !strings.Contains(p, "FEEDBACK: less romantic, more modern") {
		t.Error("refinement prompt missing feedback")
	}
	if got := strings.Count(p, "- Better Match Because:"); got != 3 {
		t.Errorf("expected 3 figure slots, got %d", got)
	}
	if !strings.Contains(p, "**Figure 3: [Name] ([Period])**") {
		t.Error("refinement prompt missing third figure heading")
	}
}

func TestAnalysis(t *testing.T) {
	p, err := Analysis("Mark Twain")
	if err != nil {
		t.Fatalf("Analysis failed: %v", err)
	}
	for _, heading := range []string{
		"**TONE ANALYSIS:**", "**VOICE AND PERSPECTIVE:**", "**FORMALITY LEVEL:**",
		"**LENGTH AND STRUCTURE:**", "**UNIQUE CHARACTERISTICS:**",
		"**TOPICS AND THEMES:**", "**HISTORICAL CONTEXT:**",
	} {
		if !strings.Contains(p, heading) {
			t.Errorf("analysis prompt missing %s", heading)
		}
	}
	if !strings.Contains(p, "very_casual, casual, moderate, formal, academic") {
		t.Error("analysis prompt missing formality choices")
	}
}

func TestVerification(t *testing.T) {
	p, err := Verification("Ada Lovelace")
	if err != nil {
		t.Fatalf("Verification failed: %v", err)
	}
	if !strings.HasPrefix(p, `Verify if "Ada Lovelace" is a real`) {
		t.Errorf("unexpected verification prompt start: %q", p[:40])
	}
	if !strings.Contains(p, "[VERIFIED/UNVERIFIED/INAPPROPRIATE]") {
		t.Error("verification prompt missing status choices")
	}
}

func TestStyleGuide(t *testing.T) {
	p, err := StyleGuide("Mark Twain", "**TONE ANALYSIS:**\nWitty")
	if err != nil {
		t.Fatalf("StyleGuide failed: %v", err)
	}
	for _, want := range []string{
		"FIGURE ANALYSIS:\n**TONE ANALYSIS:**\nWitty",
		"**TONE:** [Select the most appropriate: casual, professional, friendly, authoritative, witty, formal]",
		"**VOICE:** [Select the most appropriate: first_person, second_person, third_person]",
		"**LENGTH_PREFERENCE:** [Select the most appropriate: short, medium, long, variable]",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("style guide prompt missing %q", want)
		}
	}
}

func TestExamples(t *testing.T) {
	p, err := Examples(ExampleRequest{
		Name:              "Mark Twain",
		Tone:              "witty",
		Voice:             "first_person",
		Formality:         "casual",
		LengthPreference:  "medium",
		StyleNotes:        "Dry humor",
		HistoricalContext: "No specific historical context available.",
		Count:             4,
	})
	if err != nil {
		t.Fatalf("Examples failed: %v", err)
	}
	for _, want := range []string{
		"Tone: witty", "Voice: first_person", "Style Notes: Dry humor",
		"Generate 4 training examples", "**EXAMPLE 1:**\nUser prompt:",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("example prompt missing %q", want)
		}
	}
}

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		op    Operation
		count int
		want  float64
	}{
		{OpAnalysis, 1, 0.0024},
		{OpVerification, 1, 0.0006},
		{OpExampleGeneration, 10, 0.012},
		{OpDiscovery, 5, 0.008},
		{OpRefinement, 1, 0.0012},
		{Operation("unknown"), 3, 0},
		{OpAnalysis, 0, 0},
	}
	for _, tt := range tests {
		if got := EstimateCost(tt.op, tt.count); got != tt.want {
			t.Errorf("EstimateCost(%s, %d) = %v, want %v", tt.op, tt.count, got, tt.want)
		}
	}
}
