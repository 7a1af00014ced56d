// Package pipeline runs the end-to-end author creation flow: verify a
// figure, analyze its style, build a profile and generate a dataset.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/ghostwriter/internal/historical"
	"github.com/ppiankov/ghostwriter/internal/llm"
	"github.com/ppiankov/ghostwriter/internal/model"
	"github.com/ppiankov/ghostwriter/internal/storage"
	"github.com/ppiankov/ghostwriter/internal/worker"
)

// Run kinds recorded in the run log
const (
	KindCreate  = "create"
	KindDataset = "dataset"
)

// DefaultExampleCount is the dataset size of a new author
const DefaultExampleCount = 10

var (
	// ErrNotVerified is returned when a figure fails verification and no override was given
	ErrNotVerified = errors.New("figure did not pass verification")

	// ErrProviderUnavailable is returned when the provider fails its availability check
	ErrProviderUnavailable = errors.New("LLM provider is not available")
)

// Options wires a Pipeline to its provider and stores
type Options struct {
	Provider   llm.Provider
	Generation model.GenerationConfig
	Processor  *worker.BatchProcessor // nil runs batches sequentially
	Storage    *storage.AuthorStorage
	Runs       *storage.RunLog // optional
	Logger     *slog.Logger
}

// Pipeline orchestrates the historical author creation flow
type Pipeline struct {
	provider   llm.Provider
	researcher *historical.Researcher
	profiles   *historical.ProfileGenerator
	datasets   *historical.DatasetGenerator
	store      *storage.AuthorStorage
	runs       *storage.RunLog
	logger     *slog.Logger
}

// New creates a pipeline
func New(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		provider:   opts.Provider,
		researcher: historical.NewResearcher(opts.Provider, opts.Generation, logger),
		profiles:   historical.NewProfileGenerator(opts.Provider, opts.Generation, logger),
		datasets:   historical.NewDatasetGenerator(opts.Provider, opts.Generation, opts.Processor, logger),
		store:      opts.Storage,
		runs:       opts.Runs,
		logger:     logger.With("component", "pipeline"),
	}
}

// CheckProvider verifies the provider is configured and reachable before a
// long run starts.
func (p *Pipeline) CheckProvider(ctx context.Context) error {
	if p.provider == nil {
		return historical.ErrNoProvider
	}
	if !p.provider.IsAvailable(ctx) {
		return fmt.Errorf("%w: %s", ErrProviderUnavailable, p.provider.Name())
	}
	p.logger.Debug("provider available", "provider", p.provider.Name())
	return nil
}

// CreateRequest describes an author to build from a historical figure
type CreateRequest struct {
	Name        string
	AuthorID    string // derived from Name when empty
	Description string // default description when empty
	Examples    int    // 0 uses DefaultExampleCount
	Override    bool   // continue past a failed verification
	Overwrite   bool   // replace an existing author
}

// CreateResult holds everything produced by CreateAuthor
type CreateResult struct {
	RunID        string
	AuthorID     string
	Verification *model.Verification
	Analysis     *model.StyleAnalysis
	Profile      *model.AuthorProfile
	Dataset      *model.Dataset
	Duration     time.Duration
}

// CreateAuthor runs verify, gate, analyze, profile and dataset generation.
// When the gate stops the run, the result carries the verification and the
// error wraps ErrNotVerified. Nothing is written to the author store; see Save.
func (p *Pipeline) CreateAuthor(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("figure name is required")
	}

	authorID := req.AuthorID
	if authorID == "" {
		authorID = historical.AuthorIDFromName(name)
	}
	if authorID == "" {
		return nil, fmt.Errorf("%w: cannot derive an ID from %q", storage.ErrInvalidAuthorID, name)
	}
	if p.store != nil && p.store.Exists(authorID) && !req.Overwrite {
		return nil, fmt.Errorf("%w: %s", storage.ErrAuthorExists, authorID)
	}

	count := req.Examples
	if count == 0 {
		count = DefaultExampleCount
	}

	start := time.Now()
	result := &CreateResult{RunID: uuid.NewString(), AuthorID: authorID}
	p.startRun(ctx, result.RunID, KindCreate, authorID, name)
	log := p.logger.With("run_id", result.RunID, "author_id", authorID)

	err := p.create(ctx, log, result, name, req, count)
	result.Duration = time.Since(start)

	examples := 0
	if result.Dataset != nil {
		examples = result.Dataset.Size()
	}
	switch {
	case errors.Is(err, ErrNotVerified):
		p.finishRun(ctx, result.RunID, storage.RunRejected, 0, err)
	case err != nil:
		p.finishRun(ctx, result.RunID, storage.RunFailed, examples, err)
	default:
		p.finishRun(ctx, result.RunID, storage.RunCompleted, examples, nil)
		log.Info("author created", "examples", examples, "duration", result.Duration)
	}
	return result, err
}

func (p *Pipeline) create(ctx context.Context, log *slog.Logger, result *CreateResult, name string, req CreateRequest, count int) error {
	log.Info("verifying figure", "name", name)
	v, err := p.researcher.Verify(ctx, name)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	result.Verification = v

	if !historical.ShouldProceed(v, req.Override) {
		return fmt.Errorf("%w: %s is %s", ErrNotVerified, name, v.Status)
	}
	if !v.IsVerified() {
		log.Warn("continuing with unverified figure", "status", v.Status)
	}

	log.Info("analyzing writing style")
	analysis, err := p.researcher.Analyze(ctx, name)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	result.Analysis = analysis

	log.Info("building profile")
	profile, err := p.profiles.GenerateProfile(ctx, *analysis, result.AuthorID, req.Description)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	result.Profile = profile

	dataset, err := p.datasets.Generate(ctx, *profile, *analysis, count)
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	result.Dataset = dataset
	return nil
}

// Save writes the profile, analysis, dataset and markdown copies of a
// successful CreateResult.
func (p *Pipeline) Save(result *CreateResult) error {
	if p.store == nil {
		return errors.New("no author storage configured")
	}
	if result == nil || result.Profile == nil {
		return errors.New("nothing to save: author was not created")
	}

	if err := p.store.SaveProfile(result.Profile); err != nil {
		return err
	}
	if result.Analysis != nil {
		if err := p.store.SaveAnalysis(result.AuthorID, *result.Analysis); err != nil {
			return err
		}
	}
	if result.Dataset != nil {
		if err := p.store.SaveDataset(result.Dataset); err != nil {
			return err
		}
		p.saveMarkdown(result.AuthorID, result.Dataset.Examples)
	}
	return nil
}

// ExtendResult reports an ExtendDataset run
type ExtendResult struct {
	RunID string
	Added int
	Total int
}

// ExtendDataset generates count more examples for a saved author and
// appends them to its dataset.
func (p *Pipeline) ExtendDataset(ctx context.Context, authorID string, count int) (*ExtendResult, error) {
	if p.store == nil {
		return nil, errors.New("no author storage configured")
	}

	profile, err := p.store.LoadProfile(authorID)
	if err != nil {
		return nil, err
	}
	analysis, ok, err := p.store.LoadAnalysis(authorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		analysis = emptyAnalysis(profile.Name)
	}
	dataset, err := p.store.LoadDataset(authorID)
	if err != nil {
		return nil, err
	}

	result := &ExtendResult{RunID: uuid.NewString()}
	p.startRun(ctx, result.RunID, KindDataset, authorID, profile.Name)

	before := dataset.Size()
	added, err := p.datasets.AddExamples(ctx, dataset, *profile, analysis, count)
	if err != nil {
		p.finishRun(ctx, result.RunID, storage.RunFailed, 0, err)
		return nil, err
	}

	newExamples := dataset.Examples[before:]
	if err := p.store.AppendExamples(authorID, newExamples...); err != nil {
		p.finishRun(ctx, result.RunID, storage.RunFailed, 0, err)
		return nil, err
	}
	p.saveMarkdown(authorID, newExamples)
	p.finishRun(ctx, result.RunID, storage.RunCompleted, added, nil)

	result.Added = added
	result.Total = dataset.Size()
	return result, nil
}

// emptyAnalysis stands in for authors saved without an analysis
func emptyAnalysis(name string) model.StyleAnalysis {
	a := model.StyleAnalysis{FigureName: name}
	for _, f := range []*string{
		&a.ToneAnalysis, &a.VoicePerspective, &a.FormalityLevel, &a.LengthStructure,
		&a.UniqueCharacteristics, &a.TopicsThemes, &a.HistoricalContext,
	} {
		*f = model.SectionNotFound
	}
	return a
}

func (p *Pipeline) saveMarkdown(authorID string, examples []model.TrainingExample) {
	ts := time.Now()
	for _, ex := range examples {
		if _, err := p.store.SaveExampleMarkdown(authorID, ex.Prompt(), ex.Response(), storage.ExampleTypeLLM, ts); err != nil {
			p.logger.Warn("failed to write example markdown", "author_id", authorID, "error", err)
		}
	}
}

// startRun records a run start. Run log failures are logged, never returned.
func (p *Pipeline) startRun(ctx context.Context, id, kind, authorID, figure string) {
	if p.runs == nil {
		return
	}
	if err := p.runs.Start(ctx, id, kind, authorID, figure); err != nil {
		p.logger.Warn("failed to record run", "run_id", id, "error", err)
	}
}

func (p *Pipeline) finishRun(ctx context.Context, id string, status storage.RunStatus, examples int, runErr error) {
	if p.runs == nil {
		return
	}
	// a cancelled run is still recorded
	if err := p.runs.Finish(context.WithoutCancel(ctx), id, status, examples, runErr); err != nil {
		p.logger.Warn("failed to record run result", "run_id", id, "error", err)
	}
}
