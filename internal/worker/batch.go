package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/ghostwriter/internal/model"
)

// BatchFunc generates size examples for the batch at index
type BatchFunc func(ctx context.Context, index, size int) ([]model.TrainingExample, error)

// BatchJob generates one batch of training examples
type BatchJob struct {
	Index   int
	Size    int
	Run     BatchFunc
	Limiter *Limiter
	Key     string
}

// Execute waits for the limiter and runs the batch
func (j *BatchJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Key); err != nil {
			return &BatchResult{Index: j.Index, Size: j.Size, Error: fmt.Errorf("rate limit: %w", err)}
		}
	}
	examples, err := j.Run(ctx, j.Index, j.Size)
	return &BatchResult{Index: j.Index, Size: j.Size, Examples: examples, Error: err}
}

// BatchResult holds the examples produced by one batch
type BatchResult struct {
	Index    int
	Size     int
	Examples []model.TrainingExample
	Error    error
}

// GetError returns the batch error
func (r *BatchResult) GetError() error {
	return r.Error
}

// ItemFunc processes a single input item such as a figure name
type ItemFunc func(ctx context.Context, item string) (any, error)

// ItemJob applies an ItemFunc to one item
type ItemJob struct {
	Index   int
	Item    string
	Run     ItemFunc
	Limiter *Limiter
	Key     string
}

// Execute waits for the limiter and processes the item
func (j *ItemJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Key); err != nil {
			return &ItemResult{Index: j.Index, Item: j.Item, Error: fmt.Errorf("rate limit: %w", err)}
		}
	}
	value, err := j.Run(ctx, j.Item)
	return &ItemResult{Index: j.Index, Item: j.Item, Value: value, Error: err}
}

// ItemResult is the outcome of an ItemJob
type ItemResult struct {
	Index int
	Item  string
	Value any
	Error error
}

// GetError returns the item error
func (r *ItemResult) GetError() error {
	return r.Error
}

// SplitBatches divides total into batch sizes of at most size.
// The last batch holds the remainder.
func SplitBatches(total, size int) []int {
	if total <= 0 {
		return []int{}
	}
	if size <= 0 {
		size = total
	}
	batches := make([]int, 0, (total+size-1)/size)
	for remaining := total; remaining > 0; remaining -= size {
		batches = append(batches, min(size, remaining))
	}
	return batches
}

// BatchProcessor fans generation work out over a worker pool
type BatchProcessor struct {
	concurrency int
	limiter     *Limiter
	key         string
}

// NewBatchProcessor creates a processor. limiter may be nil; key selects
// the limiter bucket, usually the provider name.
func NewBatchProcessor(concurrency int, limiter *Limiter, key string) *BatchProcessor {
	return &BatchProcessor{
		concurrency: concurrency,
		limiter:     limiter,
		key:         key,
	}
}

// ProcessBatches generates total examples in batches of batchSize and
// returns the batch results ordered by index.
func (b *BatchProcessor) ProcessBatches(ctx context.Context, total, batchSize int, fn BatchFunc) []*BatchResult {
	sizes := SplitBatches(total, batchSize)
	if len(sizes) == 0 {
		return []*BatchResult{}
	}

	jobs := make([]Job, len(sizes))
	for i, size := range sizes {
		jobs[i] = &BatchJob{Index: i, Size: size, Run: fn, Limiter: b.limiter, Key: b.key}
	}

	results := NewPool(ctx, b.concurrency).Run(jobs)

	batchResults := make([]*BatchResult, len(results))
	for i, result := range results {
		batchResults[i] = result.(*BatchResult)
	}
	sort.Slice(batchResults, func(i, j int) bool {
		return batchResults[i].Index < batchResults[j].Index
	})

	return batchResults
}

// ProcessItems applies fn to every item and returns results in input order
func (b *BatchProcessor) ProcessItems(ctx context.Context, items []string, fn ItemFunc) []*ItemResult {
	if len(items) == 0 {
		return []*ItemResult{}
	}

	jobs := make([]Job, len(items))
	for i, item := range items {
		jobs[i] = &ItemJob{Index: i, Item: item, Run: fn, Limiter: b.limiter, Key: b.key}
	}

	results := NewPool(ctx, b.concurrency).Run(jobs)

	itemResults := make([]*ItemResult, len(results))
	for i, result := range results {
		itemResults[i] = result.(*ItemResult)
	}
	sort.Slice(itemResults, func(i, j int) bool {
		return itemResults[i].Index < itemResults[j].Index
	})

	return itemResults
}

// ReadLines reads non-empty, non-comment lines from a file, dropping duplicates
func ReadLines(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return lines, nil
}
