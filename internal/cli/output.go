package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/ghostwriter/internal/model"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printFigures(w io.Writer, figures []model.Figure) {
	if len(figures) == 0 {
		fmt.Fprintln(w, "No figures found.")
		return
	}
	for i, f := range figures {
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, f.Name, f.TimePeriod)
		fmt.Fprintf(w, "   Writing style: %s\n", f.WritingStyle)
		fmt.Fprintf(w, "   Notable works: %s\n", f.NotableWorks)
		fmt.Fprintf(w, "   Match:         %s\n\n", f.MatchCriteria)
	}
}

func printAnalysis(w io.Writer, a *model.StyleAnalysis) {
	fmt.Fprintf(w, "Style analysis: %s\n\n", a.FigureName)
	for _, s := range a.Sections() {
		fmt.Fprintf(w, "%s\n%s\n%s\n\n", strings.ToUpper(s.Heading), strings.Repeat("-", len(s.Heading)), s.Text)
	}
}

func printVerification(w io.Writer, v *model.Verification) {
	mark := "✓"
	if !v.IsVerified() {
		mark = "✗"
	}
	fmt.Fprintf(w, "%s %s: %s\n", mark, v.FigureName, v.Status)
	fmt.Fprintf(w, "  Reason:   %s\n", v.Reason)
	fmt.Fprintf(w, "  Sources:  %s\n", v.AvailableSources)
	fmt.Fprintf(w, "  Concerns: %s\n", v.Concerns)
	for _, opt := range []struct{ label, value string }{
		{"Period", v.TimePeriod},
		{"Medium", v.PrimaryMedium},
		{"Volume", v.WritingVolume},
	} {
		if opt.value != "" {
			fmt.Fprintf(w, "  %-9s %s\n", opt.label+":", opt.value)
		}
	}
}

func printStyleGuide(w io.Writer, g model.StyleGuide) {
	fmt.Fprintf(w, "Tone:        %s\n", g.Tone)
	fmt.Fprintf(w, "Voice:       %s\n", g.Voice)
	fmt.Fprintf(w, "Formality:   %s\n", g.Formality)
	fmt.Fprintf(w, "Length:      %s\n", g.LengthPreference)
	fmt.Fprintf(w, "Topics:      %s\n", strings.Join(g.Topics, ", "))
	fmt.Fprintf(w, "Avoid:       %s\n", strings.Join(g.AvoidTopics, ", "))
	fmt.Fprintf(w, "Notes:       %s\n", g.WritingStyleNotes)
}
