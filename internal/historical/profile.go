package historical

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ppiankov/ghostwriter/internal/extract"
	"github.com/ppiankov/ghostwriter/internal/llm"
	"github.com/ppiankov/ghostwriter/internal/model"
	"github.com/ppiankov/ghostwriter/internal/prompts"
)

// ProfileGenerator converts a style analysis into an author profile
type ProfileGenerator struct {
	provider llm.Provider
	parser   *extract.Parser
	gen      model.GenerationConfig
	logger   *slog.Logger
}

// NewProfileGenerator creates a profile generator
func NewProfileGenerator(provider llm.Provider, gen model.GenerationConfig, logger *slog.Logger) *ProfileGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileGenerator{
		provider: provider,
		parser:   extract.New(logger),
		gen:      gen,
		logger:   logger.With("component", "profile"),
	}
}

// GenerateStyleGuide asks the model to condense analysis into a style guide
func (g *ProfileGenerator) GenerateStyleGuide(ctx context.Context, analysis model.StyleAnalysis) (model.StyleGuide, error) {
	prompt, err := prompts.StyleGuide(analysis.FigureName, FormatAnalysis(analysis))
	if err != nil {
		return model.StyleGuide{}, err
	}

	g.logger.Info("generating style guide", "figure", analysis.FigureName,
		"estimated_cost", prompts.EstimateCost(prompts.OpStyleGuide, 1))

	text, err := complete(ctx, g.provider, prompt, g.gen.StyleGuideTokens)
	if err != nil {
		return model.StyleGuide{}, fmt.Errorf("generate style guide: %w", err)
	}
	return g.parser.ParseStyleGuide(text), nil
}

// GenerateProfile builds a historical author profile. An empty description
// is replaced by DefaultDescription.
func (g *ProfileGenerator) GenerateProfile(ctx context.Context, analysis model.StyleAnalysis, authorID, description string) (*model.AuthorProfile, error) {
	guide, err := g.GenerateStyleGuide(ctx, analysis)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(description) == "" {
		description = DefaultDescription(analysis.FigureName)
	}

	profile := model.NewAuthorProfile(authorID, analysis.FigureName, description, guide)
	profile.SourceType = model.SourceHistorical

	g.logger.Info("generated profile", "author_id", authorID, "tone", guide.Tone, "voice", guide.Voice)
	return &profile, nil
}

// DefaultDescription is the profile description used when none is supplied
func DefaultDescription(name string) string {
	return fmt.Sprintf("AI author based on %s's writing style and voice. "+
		"This profile captures their distinctive communication patterns, tone, "+
		"and stylistic characteristics as documented in their historical writings.", name)
}

var analysisHeadings = []string{
	"TONE ANALYSIS",
	"VOICE AND PERSPECTIVE",
	"FORMALITY LEVEL",
	"LENGTH AND STRUCTURE",
	"UNIQUE CHARACTERISTICS",
	"TOPICS AND THEMES",
	"HISTORICAL CONTEXT",
}

// FormatAnalysis renders an analysis as plain headed sections for prompts
func FormatAnalysis(analysis model.StyleAnalysis) string {
	sections := analysis.Sections()
	parts := make([]string, len(sections))
	for i, s := range sections {
		parts[i] = analysisHeadings[i] + ":\n" + s.Text
	}
	return strings.Join(parts, "\n\n")
}
