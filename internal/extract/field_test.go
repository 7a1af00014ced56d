package extract

import (
	"testing"

	"github.com/ppiankov/ghostwriter/internal/model"
)

func TestExtractField_MarkerPrecedence(t *testing.T) {
	text := "Status: plain\n**Status:** bold"

	got, ok := ExtractField(text, []string{"**Status:**", "Status:"})
	if !ok || got != "bold" {
		t.Errorf("Expected bold marker to win, got %q (ok=%v)", got, ok)
	}

	got, ok = ExtractField(text, []string{"Status:", "**Status:**"})
	if !ok || got != "plain" {
		t.Errorf("Expected plain marker to win, got %q (ok=%v)", got, ok)
	}
}

func TestExtractField_StopsAtNextBullet(t *testing.T) {
	text := "- Writing Style: Satirical\nand folksy\n- Notable Works: Roughing It"

	got, ok := ExtractField(text, []string{"Writing Style:"})
	if !ok {
		t.Fatal("Expected field to be found")
	}
	if got != "Satirical\nand folksy" {
		t.Errorf("Expected multi-line value up to next bullet, got %q", got)
	}
}

func TestExtractField_CaseInsensitiveFirstOccurrence(t *testing.T) {
	text := "writing style: Terse\n- Writing Style: Verbose"

	got, ok := ExtractField(text, []string{"Writing Style:"})
	if !ok || got != "Terse" {
		t.Errorf("Expected first occurrence 'Terse', got %q (ok=%v)", got, ok)
	}
}

func TestExtractField_Absent(t *testing.T) {
	if got, ok := ExtractField("nothing to see", []string{"Reason:"}); ok {
		t.Errorf("Expected absent field, got %q", got)
	}
	if _, ok := ExtractField("", []string{"Reason:"}); ok {
		t.Error("Expected absent field for empty text")
	}
}

func TestExtractSection_BoundedByBoldHeading(t *testing.T) {
	text := `**TONE ANALYSIS:** Wry and dry.
More tone.
**VOICE AND PERSPECTIVE:** First person.
  **FORMALITY LEVEL:** Low`

	tone := ExtractSection(text, []string{"**TONE ANALYSIS:**", "TONE ANALYSIS:"})
	if tone != "Wry and dry.\nMore tone." {
		t.Errorf("Unexpected tone section: %q", tone)
	}

	voice := ExtractSection(text, []string{"**VOICE AND PERSPECTIVE:**"})
	if voice != "First person." {
		t.Errorf("Expected indented heading to end the section, got %q", voice)
	}
}

func TestExtractSection_IgnoresNonHeadingText(t *testing.T) {
	// A marker word inside prose must not end the section
	text := "**TONE ANALYSIS:** Notes on VOICE AND PERSPECTIVE: see below.\n**FORMALITY LEVEL:** High"

	tone := ExtractSection(text, []string{"**TONE ANALYSIS:**"})
	if tone != "Notes on VOICE AND PERSPECTIVE: see below." {
		t.Errorf("Unexpected tone section: %q", tone)
	}
}

func TestExtractSection_NotFound(t *testing.T) {
	for _, text := range []string{"", "no headings here", "**OTHER:** text"} {
		if got := ExtractSection(text, []string{"**TONE ANALYSIS:**", "TONE ANALYSIS:"}); got != model.SectionNotFound {
			t.Errorf("Expected %q for %q, got %q", model.SectionNotFound, text, got)
		}
	}
}
