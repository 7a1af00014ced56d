package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/ghostwriter/internal/cache"
	"github.com/ppiankov/ghostwriter/internal/historical"
	"github.com/ppiankov/ghostwriter/internal/llm"
	"github.com/ppiankov/ghostwriter/internal/model"
	"github.com/ppiankov/ghostwriter/internal/pipeline"
	"github.com/ppiankov/ghostwriter/internal/storage"
	"github.com/ppiankov/ghostwriter/internal/worker"
)

const runLogFile = "ghostwriter.db"

// app bundles the configured services a command needs
type app struct {
	cfg    model.Config
	logger *slog.Logger
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: newLogger(cfg.Logging)}, nil
}

// provider builds the configured LLM provider behind the response cache
func (a *app) provider() (llm.Provider, error) {
	p, err := llm.NewProvider(llm.ConfigFromModel(a.cfg.LLM))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("no LLM provider configured (set llm.provider or --provider)")
	}
	if !a.cfg.Cache.Enabled {
		return p, nil
	}
	ttl := time.Duration(a.cfg.Cache.TTL) * time.Hour
	return llm.NewCachedProvider(p, cache.New(a.cfg.Cache), ttl, a.logger), nil
}

// processor runs example batches on the worker pool, rate limited per provider
func (a *app) processor() *worker.BatchProcessor {
	return worker.NewBatchProcessor(a.cfg.Concurrency.Workers,
		worker.NewProviderLimiter(a.cfg.RateLimiting), strings.ToLower(a.cfg.LLM.Provider))
}

func (a *app) storage() *storage.AuthorStorage {
	return storage.NewAuthorStorage(a.cfg.Storage.AuthorsDir(), a.logger)
}

func (a *app) openRunLog() (*storage.RunLog, error) {
	runs, err := storage.OpenRunLog(filepath.Join(a.cfg.Storage.DataDir, runLogFile))
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	return runs, nil
}

func (a *app) researcher() (*historical.Researcher, error) {
	p, err := a.provider()
	if err != nil {
		return nil, err
	}
	return historical.NewResearcher(p, a.cfg.Generation, a.logger), nil
}

// pipeline wires the full creation flow. The returned close func releases the run log.
func (a *app) pipeline() (*pipeline.Pipeline, func(), error) {
	p, err := a.provider()
	if err != nil {
		return nil, nil, err
	}

	runs, err := a.openRunLog()
	if err != nil {
		a.logger.Warn("run log unavailable, runs will not be recorded", "error", err)
		runs = nil
	}
	closeFn := func() {
		if runs != nil {
			_ = runs.Close()
		}
	}

	return pipeline.New(pipeline.Options{
		Provider:   p,
		Generation: a.cfg.Generation,
		Processor:  a.processor(),
		Storage:    a.storage(),
		Runs:       runs,
		Logger:     a.logger,
	}), closeFn, nil
}
