package historical

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ppiankov/ghostwriter/internal/extract"
	"github.com/ppiankov/ghostwriter/internal/llm"
	"github.com/ppiankov/ghostwriter/internal/model"
	"github.com/ppiankov/ghostwriter/internal/prompts"
	"github.com/ppiankov/ghostwriter/internal/worker"
)

// ErrNoExamples is returned when generation produced no usable examples
var ErrNoExamples = errors.New("no training examples were generated")

const noStyleNotes = "No specific notes"

// DatasetGenerator produces training examples in a figure's voice
type DatasetGenerator struct {
	provider  llm.Provider
	parser    *extract.Parser
	gen       model.GenerationConfig
	processor *worker.BatchProcessor
	logger    *slog.Logger
}

// NewDatasetGenerator creates a generator. A nil processor runs batches
// one at a time without rate limiting.
func NewDatasetGenerator(provider llm.Provider, gen model.GenerationConfig, processor *worker.BatchProcessor, logger *slog.Logger) *DatasetGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	if processor == nil {
		processor = worker.NewBatchProcessor(1, nil, "")
	}
	return &DatasetGenerator{
		provider:  provider,
		parser:    extract.New(logger),
		gen:       gen,
		processor: processor,
		logger:    logger.With("component", "dataset"),
	}
}

// GenerateBatch makes one generation call for count examples. Batches are
// never served from the response cache so repeated calls yield new examples.
func (g *DatasetGenerator) GenerateBatch(ctx context.Context, profile model.AuthorProfile, analysis model.StyleAnalysis, count int) ([]model.TrainingExample, error) {
	notes := profile.StyleGuide.WritingStyleNotes
	if notes == "" {
		notes = noStyleNotes
	}

	prompt, err := prompts.Examples(prompts.ExampleRequest{
		Name:              profile.Name,
		Tone:              profile.StyleGuide.Tone,
		Voice:             profile.StyleGuide.Voice,
		Formality:         profile.StyleGuide.Formality,
		LengthPreference:  profile.StyleGuide.LengthPreference,
		StyleNotes:        notes,
		HistoricalContext: HistoricalContext(analysis),
		Count:             count,
	})
	if err != nil {
		return nil, err
	}

	text, err := generate(ctx, g.provider, llm.GenerateRequest{
		Prompt:    prompt,
		MaxTokens: g.gen.ExampleTokens,
		NoCache:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("generate example batch: %w", err)
	}

	examples := g.parser.ParseExamples(text)
	if len(examples) != count {
		g.logger.Debug("batch size differs from request", "requested", count, "parsed", len(examples))
	}
	return examples, nil
}

// Generate builds a new dataset of about count examples for profile
func (g *DatasetGenerator) Generate(ctx context.Context, profile model.AuthorProfile, analysis model.StyleAnalysis, count int) (*model.Dataset, error) {
	dataset := model.NewDataset(profile.AuthorID)
	if _, err := g.AddExamples(ctx, dataset, profile, analysis, count); err != nil {
		return nil, err
	}
	return dataset, nil
}

// AddExamples generates count more examples into dataset in batches of
// BatchSize and returns how many were added. Failed batches are logged and
// skipped; ErrNoExamples is returned only when every batch came back empty.
func (g *DatasetGenerator) AddExamples(ctx context.Context, dataset *model.Dataset, profile model.AuthorProfile, analysis model.StyleAnalysis, count int) (int, error) {
	if count < 1 {
		return 0, fmt.Errorf("example count must be positive, got %d", count)
	}

	g.logger.Info("generating examples", "author_id", profile.AuthorID, "count", count,
		"batch_size", g.gen.BatchSize,
		"estimated_cost", prompts.EstimateCost(prompts.OpExampleGeneration, count))

	results := g.processor.ProcessBatches(ctx, count, g.gen.BatchSize,
		func(ctx context.Context, index, size int) ([]model.TrainingExample, error) {
			return g.GenerateBatch(ctx, profile, analysis, size)
		})

	added := 0
	var lastErr error
	for _, r := range results {
		if r.Error != nil {
			lastErr = r.Error
			g.logger.Warn("batch failed, continuing", "batch", r.Index+1, "error", r.Error)
			continue
		}
		dataset.Add(r.Examples...)
		added += len(r.Examples)
		g.logger.Debug("batch complete", "batch", r.Index+1, "requested", r.Size, "parsed", len(r.Examples))
	}

	if added == 0 {
		if lastErr != nil {
			return 0, fmt.Errorf("%w: %w", ErrNoExamples, lastErr)
		}
		return 0, ErrNoExamples
	}

	g.logger.Info("examples generated", "author_id", profile.AuthorID, "added", added, "total", dataset.Size())
	return added, nil
}

// HistoricalContext summarizes the era, topics and distinctive traits from
// analysis for the example prompt. Missing sections are left out.
func HistoricalContext(analysis model.StyleAnalysis) string {
	var parts []string
	for _, s := range []struct {
		label string
		text  string
	}{
		{"Historical Context", analysis.HistoricalContext},
		{"Typical Topics", analysis.TopicsThemes},
		{"Unique Characteristics", analysis.UniqueCharacteristics},
	} {
		if s.text != model.SectionNotFound {
			parts = append(parts, s.label+": "+s.text)
		}
	}
	if len(parts) == 0 {
		return "No specific historical context available."
	}
	return strings.Join(parts, "\n\n")
}
