package model

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Generation.BatchSize != 10 {
		t.Errorf("Expected batch size 10, got %d", cfg.Generation.BatchSize)
	}
	if cfg.Generation.MaxFigures != 20 {
		t.Errorf("Expected max figures 20, got %d", cfg.Generation.MaxFigures)
	}
	if cfg.Storage.AuthorsDir() != "data/authors" {
		t.Errorf("Expected authors dir data/authors, got %s", cfg.Storage.AuthorsDir())
	}
}

func TestConfig_Normalize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.Temperature = 3.5
	cfg.LLM.MaxContext = 500000
	cfg.LLM.MaxTokens = 200000
	cfg.Generation.BatchSize = 0
	cfg.Concurrency.Workers = -1

	cfg.Normalize()

	if cfg.LLM.Temperature != 2 {
		t.Errorf("Expected temperature clamped to 2, got %v", cfg.LLM.Temperature)
	}
	if cfg.LLM.MaxContext != 128000 {
		t.Errorf("Expected context clamped to 128000, got %d", cfg.LLM.MaxContext)
	}
	if cfg.LLM.MaxTokens != 127999 {
		t.Errorf("Expected completion tokens below context, got %d", cfg.LLM.MaxTokens)
	}
	if cfg.Generation.BatchSize != 10 {
		t.Errorf("Expected batch size reset to 10, got %d", cfg.Generation.BatchSize)
	}
	if cfg.Concurrency.Workers != 1 {
		t.Errorf("Expected workers reset to 1, got %d", cfg.Concurrency.Workers)
	}
}

func TestChoiceField_Allows(t *testing.T) {
	if !ToneField.Allows("witty") {
		t.Error("Expected witty to be an allowed tone")
	}
	if ToneField.Allows("Witty") {
		t.Error("Expected Allows to be case sensitive")
	}
	guide := DefaultStyleGuide()
	if guide.Tone != "professional" || guide.Voice != "first_person" || guide.Formality != "moderate" || guide.LengthPreference != "medium" {
		t.Errorf("Unexpected defaults: %+v", guide)
	}
}

func TestStyleGuide_Sanitize(t *testing.T) {
	topics := make([]string, MaxTopics+5)
	for i := range topics {
		topics[i] = "topic"
	}
	guide := StyleGuide{
		Tone:             "gloomy",
		Voice:            "third_person",
		Formality:        "Academic",
		LengthPreference: "long",
		Topics:           topics,
	}

	changed := guide.Sanitize()

	if guide.Tone != ToneField.Default || guide.Formality != FormalityField.Default {
		t.Errorf("Expected invalid tone and formality reset to defaults, got %+v", guide)
	}
	if guide.Voice != "third_person" || guide.LengthPreference != "long" {
		t.Errorf("Expected valid values kept, got %+v", guide)
	}
	if len(guide.Topics) != MaxTopics {
		t.Errorf("Expected %d topics, got %d", MaxTopics, len(guide.Topics))
	}
	if guide.AvoidTopics == nil {
		t.Error("Expected empty avoid topics, got nil")
	}
	want := []string{"TONE", "FORMALITY", "PREFERRED_TOPICS"}
	if strings.Join(changed, ",") != strings.Join(want, ",") {
		t.Errorf("Expected changed fields %v, got %v", want, changed)
	}

	clean := DefaultStyleGuide()
	if changed := clean.Sanitize(); len(changed) != 0 {
		t.Errorf("Expected defaults to pass unchanged, got %v", changed)
	}
}
