// Package historical researches historical figures and turns their writing
// style into author profiles and training datasets.
package historical

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ppiankov/ghostwriter/internal/extract"
	"github.com/ppiankov/ghostwriter/internal/llm"
	"github.com/ppiankov/ghostwriter/internal/model"
	"github.com/ppiankov/ghostwriter/internal/prompts"
)

var (
	// ErrNoProvider is returned when no LLM provider is configured
	ErrNoProvider = errors.New("no LLM provider configured")

	// ErrInvalidCount is returned for a figure count outside 1..MaxFigures
	ErrInvalidCount = errors.New("invalid figure count")
)

// DefaultFigureCount is the number of figures requested when none is given
const DefaultFigureCount = 5

// RefinementCount is the number of figures a refinement asks for
const RefinementCount = 3

// Researcher discovers, analyzes and verifies historical figures
type Researcher struct {
	provider llm.Provider
	parser   *extract.Parser
	gen      model.GenerationConfig
	logger   *slog.Logger
}

// NewResearcher creates a researcher that sends prompts to provider
func NewResearcher(provider llm.Provider, gen model.GenerationConfig, logger *slog.Logger) *Researcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Researcher{
		provider: provider,
		parser:   extract.New(logger),
		gen:      gen,
		logger:   logger.With("component", "researcher"),
	}
}

func (r *Researcher) checkCount(count int) error {
	limit := r.gen.MaxFigures
	if limit < 1 {
		limit = 20
	}
	if count < 1 || count > limit {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidCount, count, limit)
	}
	return nil
}

// Discover finds count figures matching a free-text description
func (r *Researcher) Discover(ctx context.Context, criteria string, count int) ([]model.Figure, error) {
	if err := r.checkCount(count); err != nil {
		return nil, err
	}
	prompt, err := prompts.Discovery(criteria, count)
	if err != nil {
		return nil, err
	}

	r.logger.Info("searching for figures", "criteria", criteria, "count", count,
		"estimated_cost", prompts.EstimateCost(prompts.OpDiscovery, count))

	text, err := complete(ctx, r.provider, prompt, r.gen.DiscoveryTokens)
	if err != nil {
		return []model.Figure{}, fmt.Errorf("discover figures: %w", err)
	}
	return r.parser.ParseFigures(text, extract.DialectDiscovery), nil
}

// SearchByName finds up to count figures whose name matches query
func (r *Researcher) SearchByName(ctx context.Context, query string, count int) ([]model.Figure, error) {
	if err := r.checkCount(count); err != nil {
		return nil, err
	}
	prompt, err := prompts.NameSearch(query, count)
	if err != nil {
		return nil, err
	}

	r.logger.Info("searching for figures by name", "query", query, "count", count,
		"estimated_cost", prompts.EstimateCost(prompts.OpNameSearch, count))

	text, err := complete(ctx, r.provider, prompt, r.gen.DiscoveryTokens)
	if err != nil {
		return []model.Figure{}, fmt.Errorf("search by name: %w", err)
	}
	return r.parser.ParseFigures(text, extract.DialectNameSearch), nil
}

// Search routes query to SearchByName or Discover. ModeAuto classifies the
// query first; the mode actually used is returned.
func (r *Researcher) Search(ctx context.Context, query string, mode extract.Mode, count int) ([]model.Figure, extract.Mode, error) {
	if mode == extract.ModeAuto || mode == "" {
		mode = extract.DetectMode(query)
		r.logger.Debug("detected search mode", "query", query, "mode", mode)
	}

	var (
		figures []model.Figure
		err     error
	)
	if mode == extract.ModeName {
		figures, err = r.SearchByName(ctx, query, count)
	} else {
		figures, err = r.Discover(ctx, query, count)
	}
	return figures, mode, err
}

// Refine asks for better matches given feedback on an earlier search
func (r *Researcher) Refine(ctx context.Context, criteria, feedback string) ([]model.Figure, error) {
	prompt, err := prompts.Refinement(criteria, feedback, RefinementCount)
	if err != nil {
		return nil, err
	}

	r.logger.Info("refining search", "criteria", criteria,
		"estimated_cost", prompts.EstimateCost(prompts.OpRefinement, 1))

	text, err := complete(ctx, r.provider, prompt, r.gen.RefinementTokens)
	if err != nil {
		return []model.Figure{}, fmt.Errorf("refine search: %w", err)
	}
	return r.parser.ParseFigures(text, extract.DialectRefinement), nil
}

// Analyze produces the seven-section style analysis of a figure
func (r *Researcher) Analyze(ctx context.Context, name string) (*model.StyleAnalysis, error) {
	prompt, err := prompts.Analysis(name)
	if err != nil {
		return nil, err
	}

	r.logger.Info("analyzing writing style", "figure", name,
		"estimated_cost", prompts.EstimateCost(prompts.OpAnalysis, 1))

	text, err := complete(ctx, r.provider, prompt, r.gen.AnalysisTokens)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", name, err)
	}
	analysis := r.parser.ParseAnalysis(name, text)
	return &analysis, nil
}

// Verify checks that a figure is real, documented and appropriate to emulate
func (r *Researcher) Verify(ctx context.Context, name string) (*model.Verification, error) {
	prompt, err := prompts.Verification(name)
	if err != nil {
		return nil, err
	}

	r.logger.Info("verifying figure", "figure", name,
		"estimated_cost", prompts.EstimateCost(prompts.OpVerification, 1))

	text, err := complete(ctx, r.provider, prompt, r.gen.VerificationTokens)
	if err != nil {
		return nil, fmt.Errorf("verify %s: %w", name, err)
	}
	v := r.parser.ParseVerification(name, text)
	return &v, nil
}

// complete sends a single prompt and returns the response text
func complete(ctx context.Context, provider llm.Provider, prompt string, maxTokens int) (string, error) {
	return generate(ctx, provider, llm.GenerateRequest{Prompt: prompt, MaxTokens: maxTokens})
}

func generate(ctx context.Context, provider llm.Provider, req llm.GenerateRequest) (string, error) {
	if provider == nil {
		return "", ErrNoProvider
	}
	resp, err := provider.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
