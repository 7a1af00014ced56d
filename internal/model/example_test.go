package model

import (
	"errors"
	"testing"
)

func TestNewConversation_Valid(t *testing.T) {
	ex, err := NewConversation(DefaultSystemMessage, "Write a letter", "Dear friend,")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(ex.Messages) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(ex.Messages))
	}
	if ex.Prompt() != "Write a letter" {
		t.Errorf("Expected prompt 'Write a letter', got '%s'", ex.Prompt())
	}
	if ex.Response() != "Dear friend," {
		t.Errorf("Expected response 'Dear friend,', got '%s'", ex.Response())
	}
}

func TestNewTrainingExample_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		messages []Message
	}{
		{"no messages", nil},
		{"one message", []Message{{Role: RoleUser, Content: "hi"}}},
		{"bad role", []Message{{Role: RoleUser, Content: "hi"}, {Role: "narrator", Content: "hello"}}},
		{"empty role", []Message{{Role: "", Content: "hi"}, {Role: RoleAssistant, Content: "hello"}}},
		{"blank content", []Message{{Role: RoleUser, Content: "  "}, {Role: RoleAssistant, Content: "hello"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTrainingExample(tt.messages...)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidExample) {
				t.Errorf("Expected ErrInvalidExample, got %v", err)
			}
		})
	}
}

func TestDataset_Add(t *testing.T) {
	ds := NewDataset("mark_twain")
	before := ds.UpdatedAt

	ex, err := NewConversation(DefaultSystemMessage, "p", "r")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	ds.Add(ex, ex)

	if ds.Size() != 2 {
		t.Errorf("Expected size 2, got %d", ds.Size())
	}
	if ds.UpdatedAt.Before(before) {
		t.Error("Expected UpdatedAt to move forward")
	}
}

func TestVerification_Status(t *testing.T) {
	v := Verification{Status: NormalizeStatus("  verified ")}
	if !v.IsVerified() {
		t.Errorf("Expected VERIFIED, got %q", v.Status)
	}

	v.Status = NormalizeStatus("maybe")
	if v.IsKnownStatus() {
		t.Errorf("Expected %q to be an unknown status", v.Status)
	}
	if v.Status != "MAYBE" {
		t.Errorf("Expected unknown status kept as MAYBE, got %q", v.Status)
	}
}

func TestStyleAnalysis_Sections(t *testing.T) {
	a := StyleAnalysis{
		ToneAnalysis:      "Wry",
		HistoricalContext: SectionNotFound,
	}
	sections := a.Sections()
	if len(sections) != 7 {
		t.Fatalf("Expected 7 sections, got %d", len(sections))
	}
	if !sections[0].Found() {
		t.Error("Expected tone section to be found")
	}
	if sections[6].Found() {
		t.Error("Expected historical context section to be missing")
	}
}
