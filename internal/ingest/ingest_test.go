package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const savedPage = `<!DOCTYPE html>
<html>
<head><title>Chat</title><style>body { color: red; }</style></head>
<body>
<nav><a href="/">Home</a></nav>
<script>alert("tracking")</script>
<div class="message">
<p><strong>Figure 1: Mark Twain (1835-1910)</strong></p>
<p>Writing Style: Humorous and satirical</p>
</div>
<footer>Copyright</footer>
</body>
</html>`

func TestLooksLikeHTML(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"<!DOCTYPE html><html></html>", true},
		{"  <div>hi</div>", true},
		{"\ufeff<html>", true},
		{"**Figure 1: Mark Twain (1835-1910)**", false},
		{"Use <b>bold</b> sparingly", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := LooksLikeHTML(tt.content); got != tt.want {
			t.Errorf("LooksLikeHTML(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}

func TestFromHTML(t *testing.T) {
	got, err := FromHTML(savedPage)
	if err != nil {
		t.Fatalf("FromHTML failed: %v", err)
	}

	if !strings.Contains(got, "**Figure 1: Mark Twain") {
		t.Errorf("Expected bold figure heading, got:\n%s", got)
	}
	if !strings.Contains(got, "Writing Style: Humorous and satirical") {
		t.Errorf("Expected field text, got:\n%s", got)
	}
	for _, unwanted := range []string{"alert", "color: red", "Home", "Copyright"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("Expected %q to be pruned, got:\n%s", unwanted, got)
		}
	}
}

func TestNormalize_PlainText(t *testing.T) {
	got, err := Normalize("\ufeffTONE: humorous\r\nVOICE: first_person\r\n\r\n")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got != "TONE: humorous\nVOICE: first_person" {
		t.Errorf("Unexpected text: %q", got)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	htmlPath := filepath.Join(dir, "response.html")
	if err := os.WriteFile(htmlPath, []byte(savedPage), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(htmlPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if strings.Contains(got, "<p>") {
		t.Errorf("Expected HTML converted, got:\n%s", got)
	}

	txtPath := filepath.Join(dir, "response.txt")
	if err := os.WriteFile(txtPath, []byte("STATUS: VERIFIED\r\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err = ReadFile(txtPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if got != "STATUS: VERIFIED" {
		t.Errorf("Unexpected text: %q", got)
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("Expected error for missing file")
	}
}
