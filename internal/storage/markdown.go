package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/ghostwriter/internal/util"
)

// Example types recorded in markdown copies
const (
	ExampleTypeUser = "user"
	ExampleTypeLLM  = "llm"
)

// SanitizeSubject turns a prompt into a short filename-safe subject.
// It never returns an empty string.
func SanitizeSubject(text string, maxLength int) string {
	if s := util.Slug(text, maxLength); s != "" {
		return s
	}
	return "example"
}

// MarkdownFilename returns "{type}_{subject}_{YYYYmmdd_HHMMSS}.md"
func MarkdownFilename(exampleType, prompt string, ts time.Time) string {
	return fmt.Sprintf("%s_%s_%s.md", exampleType, SanitizeSubject(prompt, 30), ts.Format("20060102_150405"))
}

// MarkdownContent renders an example with a title taken from the first 50
// characters of the prompt.
func MarkdownContent(prompt, response, exampleType string, ts time.Time) string {
	title := strings.TrimSpace(prompt)
	if r := []rune(prompt); len(r) > 50 {
		title = strings.TrimSpace(string(r[:50])) + "..."
	}

	return fmt.Sprintf("# %s\n\n**Type:** %s  \n**Created:** %s  \n**Prompt:** %s\n\n## Content\n\n%s\n",
		title, exampleType, ts.Format("2006-01-02 15:04:05"), prompt, response)
}
