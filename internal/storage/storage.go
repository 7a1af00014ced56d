// Package storage persists author profiles and training datasets on disk.
//
// Each author lives in <authors dir>/<author id>/ with profile.json,
// style_guide.yml, train.jsonl and an examples/ directory of markdown copies.
package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/ghostwriter/internal/model"
)

const (
	profileFile    = "profile.json"
	analysisFile   = "analysis.json"
	styleGuideFile = "style_guide.yml"
	datasetFile    = "train.jsonl"
	examplesDir    = "examples"
)

var (
	// ErrAuthorNotFound is returned when an author has no saved profile
	ErrAuthorNotFound = errors.New("author not found")

	// ErrAuthorExists is returned when creating an author whose profile is already saved
	ErrAuthorExists = errors.New("author already exists")

	// ErrInvalidAuthorID is returned for IDs that are empty or contain path separators
	ErrInvalidAuthorID = errors.New("invalid author ID")
)

// AuthorStorage reads and writes author directories under a root directory
type AuthorStorage struct {
	root   string
	logger *slog.Logger
}

// NewAuthorStorage creates a store rooted at authorsDir
func NewAuthorStorage(authorsDir string, logger *slog.Logger) *AuthorStorage {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthorStorage{root: authorsDir, logger: logger.With("component", "storage")}
}

// Root returns the authors directory
func (s *AuthorStorage) Root() string {
	return s.root
}

// Dir returns the directory of one author
func (s *AuthorStorage) Dir(authorID string) (string, error) {
	if err := checkID(authorID); err != nil {
		return "", err
	}
	return filepath.Join(s.root, authorID), nil
}

func checkID(authorID string) error {
	if strings.TrimSpace(authorID) == "" || authorID == "." || authorID == ".." ||
		strings.ContainsAny(authorID, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidAuthorID, authorID)
	}
	return nil
}

// ensureDir creates the author directory and its examples subdirectory
func (s *AuthorStorage) ensureDir(authorID string) (string, error) {
	dir, err := s.Dir(authorID)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Join(dir, examplesDir), 0755); err != nil {
		return "", fmt.Errorf("create author dir: %w", err)
	}
	return dir, nil
}

// Exists reports whether the author has a saved profile
func (s *AuthorStorage) Exists(authorID string) bool {
	dir, err := s.Dir(authorID)
	if err != nil {
		return false
	}
	_, err = os.Stat(filepath.Join(dir, profileFile))
	return err == nil
}

// SaveProfile writes profile.json and a style_guide.yml copy of the style guide
func (s *AuthorStorage) SaveProfile(profile *model.AuthorProfile) error {
	dir, err := s.ensureDir(profile.AuthorID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, profileFile), data); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}

	guide, err := yaml.Marshal(profile.StyleGuide)
	if err != nil {
		return fmt.Errorf("marshal style guide: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, styleGuideFile), guide); err != nil {
		return fmt.Errorf("write style guide: %w", err)
	}

	s.logger.Debug("saved profile", "author_id", profile.AuthorID, "dir", dir)
	return nil
}

// LoadProfile reads an author's profile.json
func (s *AuthorStorage) LoadProfile(authorID string) (*model.AuthorProfile, error) {
	dir, err := s.Dir(authorID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, profileFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrAuthorNotFound, authorID)
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var profile model.AuthorProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", authorID, err)
	}
	return &profile, nil
}

// SaveAnalysis stores the style analysis a profile was built from, so more
// examples can be generated later with the same historical context.
func (s *AuthorStorage) SaveAnalysis(authorID string, analysis model.StyleAnalysis) error {
	dir, err := s.ensureDir(authorID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, analysisFile), data); err != nil {
		return fmt.Errorf("write analysis: %w", err)
	}
	return nil
}

// LoadAnalysis reads analysis.json. ok is false when none was saved, as for
// manually created authors.
func (s *AuthorStorage) LoadAnalysis(authorID string) (analysis model.StyleAnalysis, ok bool, err error) {
	dir, err := s.Dir(authorID)
	if err != nil {
		return analysis, false, err
	}
	data, err := os.ReadFile(filepath.Join(dir, analysisFile))
	if errors.Is(err, fs.ErrNotExist) {
		return analysis, false, nil
	}
	if err != nil {
		return analysis, false, fmt.Errorf("read analysis: %w", err)
	}
	if err := json.Unmarshal(data, &analysis); err != nil {
		return analysis, false, fmt.Errorf("parse analysis %s: %w", authorID, err)
	}
	return analysis, true, nil
}

// LoadStyleGuide reads style_guide.yml, which may have been edited by hand.
// Values outside a field's choices fall back to defaults and topic lists
// are capped at model.MaxTopics.
func (s *AuthorStorage) LoadStyleGuide(authorID string) (model.StyleGuide, error) {
	dir, err := s.Dir(authorID)
	if err != nil {
		return model.StyleGuide{}, err
	}

	data, err := os.ReadFile(filepath.Join(dir, styleGuideFile))
	if err != nil {
		return model.StyleGuide{}, fmt.Errorf("read style guide: %w", err)
	}

	guide := model.DefaultStyleGuide()
	if err := yaml.Unmarshal(data, &guide); err != nil {
		return model.StyleGuide{}, fmt.Errorf("parse style guide: %w", err)
	}
	if changed := guide.Sanitize(); len(changed) > 0 {
		s.logger.Warn("style guide values out of range, using defaults",
			"author_id", authorID, "fields", changed)
	}
	return guide, nil
}

// LoadProfiles loads several profiles concurrently, preserving order
func (s *AuthorStorage) LoadProfiles(ctx context.Context, authorIDs []string) ([]*model.AuthorProfile, error) {
	profiles := make([]*model.AuthorProfile, len(authorIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, id := range authorIDs {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			p, err := s.LoadProfile(id)
			if err != nil {
				return err
			}
			profiles[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// ListAuthors returns the sorted IDs of every directory with a profile.json
func (s *AuthorStorage) ListAuthors() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read authors dir: %w", err)
	}

	authors := []string{}
	for _, e := range entries {
		if e.IsDir() && s.Exists(e.Name()) {
			authors = append(authors, e.Name())
		}
	}
	sort.Strings(authors)
	return authors, nil
}

// SaveDataset replaces train.jsonl with the dataset's examples
func (s *AuthorStorage) SaveDataset(dataset *model.Dataset) error {
	dir, err := s.ensureDir(dataset.AuthorID)
	if err != nil {
		return err
	}

	var b strings.Builder
	for i, ex := range dataset.Examples {
		line, err := json.Marshal(ex)
		if err != nil {
			return fmt.Errorf("marshal example %d: %w", i+1, err)
		}
		b.Write(line)
		b.WriteByte('\n')
	}

	if err := writeFileAtomic(filepath.Join(dir, datasetFile), []byte(b.String())); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	s.logger.Debug("saved dataset", "author_id", dataset.AuthorID, "examples", dataset.Size())
	return nil
}

// AppendExamples adds examples to the end of train.jsonl
func (s *AuthorStorage) AppendExamples(authorID string, examples ...model.TrainingExample) error {
	dir, err := s.ensureDir(authorID)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, datasetFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	for i, ex := range examples {
		if err := enc.Encode(ex); err != nil {
			return fmt.Errorf("append example %d: %w", i+1, err)
		}
	}
	return nil
}

// LoadDataset reads train.jsonl. A missing file yields an empty dataset.
// Lines that are not valid examples are skipped with a warning.
func (s *AuthorStorage) LoadDataset(authorID string) (*model.Dataset, error) {
	dir, err := s.Dir(authorID)
	if err != nil {
		return nil, err
	}
	dataset := model.NewDataset(authorID)

	f, err := os.Open(filepath.Join(dir, datasetFile))
	if errors.Is(err, fs.ErrNotExist) {
		return dataset, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ex model.TrainingExample
		if err := json.Unmarshal([]byte(line), &ex); err != nil {
			s.logger.Warn("skipping malformed dataset line", "author_id", authorID, "line", lineNo, "error", err)
			continue
		}
		if err := ex.Validate(); err != nil {
			s.logger.Warn("skipping invalid example", "author_id", authorID, "line", lineNo, "error", err)
			continue
		}
		dataset.Examples = append(dataset.Examples, ex)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan dataset: %w", err)
	}
	return dataset, nil
}

// SaveExampleMarkdown writes a human-readable copy of one example to the
// author's examples directory and returns its path.
func (s *AuthorStorage) SaveExampleMarkdown(authorID, prompt, response, exampleType string, ts time.Time) (string, error) {
	dir, err := s.ensureDir(authorID)
	if err != nil {
		return "", err
	}
	if ts.IsZero() {
		ts = time.Now()
	}

	name := MarkdownFilename(exampleType, prompt, ts)
	base := strings.TrimSuffix(name, ".md")
	content := []byte(MarkdownContent(prompt, response, exampleType, ts))

	// prompts sharing a subject within one second get _2, _3, ... suffixes
	for n := 1; n <= maxMarkdownSuffix; n++ {
		if n > 1 {
			name = fmt.Sprintf("%s_%d.md", base, n)
		}
		path := filepath.Join(dir, examplesDir, name)
		err := writeFileExclusive(path, content)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("write example markdown: %w", err)
		}
	}
	return "", fmt.Errorf("write example markdown: too many files named %s", base)
}

const maxMarkdownSuffix = 1000

// writeFileExclusive creates path, failing with fs.ErrExist if it is already there
func writeFileExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

// writeFileAtomic writes through a temp file in the same directory
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}
