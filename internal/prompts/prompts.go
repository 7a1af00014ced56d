// Package prompts renders the research and generation prompts sent to LLM providers.
package prompts

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/ppiankov/ghostwriter/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("prompts").Funcs(template.FuncMap{
	"join": strings.Join,
	"seq":  seq,
}).ParseFS(templateFS, "templates/*.tmpl"))

// seq returns 1..n
func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i + 1
	}
	return s
}

// StyleChoices lists the enumerated style guide values offered in prompts
type StyleChoices struct {
	Tones       []string
	Voices      []string
	Formalities []string
	Lengths     []string
}

var styleChoices = StyleChoices{
	Tones:       model.ToneField.Choices,
	Voices:      model.VoiceField.Choices,
	Formalities: model.FormalityField.Choices,
	Lengths:     model.LengthField.Choices,
}

func render(name string, data any) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", strings.TrimSuffix(name, ".tmpl"), err)
	}
	return b.String(), nil
}

// Discovery asks for count figures matching a free-text description
func Discovery(criteria string, count int) (string, error) {
	return render("discovery.tmpl", struct {
		Criteria string
		Count    int
	}{criteria, count})
}

// NameSearch asks for up to count figures whose name matches query
func NameSearch(query string, count int) (string, error) {
	return render("name_search.tmpl", struct {
		Query string
		Count int
	}{query, count})
}

// Refinement asks for count better matches given feedback on earlier results
func Refinement(criteria, feedback string, count int) (string, error) {
	return render("refinement.tmpl", struct {
		Criteria string
		Feedback string
		Count    int
	}{criteria, feedback, count})
}

// Analysis asks for the seven-section style analysis of a figure
func Analysis(name string) (string, error) {
	return render("analysis.tmpl", struct {
		Name string
		StyleChoices
	}{name, styleChoices})
}

// Verification asks whether a figure is real, documented and appropriate
func Verification(name string) (string, error) {
	return render("verification.tmpl", struct{ Name string }{name})
}

// StyleGuide asks for a structured style guide derived from an analysis.
// analysis is the formatted analysis text.
func StyleGuide(name, analysis string) (string, error) {
	return render("style_guide.tmpl", struct {
		Name     string
		Analysis string
		StyleChoices
	}{name, analysis, styleChoices})
}

// ExampleRequest holds the inputs for an example generation prompt
type ExampleRequest struct {
	Name              string
	Tone              string
	Voice             string
	Formality         string
	LengthPreference  string
	StyleNotes        string
	HistoricalContext string
	Count             int
}

// Examples asks for Count training examples in a figure's voice
func Examples(req ExampleRequest) (string, error) {
	return render("examples.tmpl", req)
}
