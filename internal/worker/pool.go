// Package worker runs LLM generation jobs concurrently under a rate limit.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of a job
type Result interface {
	GetError() error
}

// Pool runs submitted jobs on a fixed number of goroutines.
// Cancelling the parent context stops workers after their current job.
type Pool struct {
	workers   int
	jobQueue  chan Job
	results   chan Result
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool bound to ctx. workers below 1 becomes 1.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, workers*2),
		results:  make(chan Result, workers*2),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. It reports false if the pool was cancelled first.
func (p *Pool) Submit(job Job) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- job:
		return true
	}
}

// Run starts the pool, submits jobs and waits for them. Results are
// collected concurrently with submission so a full queue never blocks.
func (p *Pool) Run(jobs []Job) []Result {
	p.Start()

	done := make(chan []Result, 1)
	go func() {
		var results []Result
		for result := range p.results {
			results = append(results, result)
		}
		done <- results
	}()

	for _, job := range jobs {
		if !p.Submit(job) {
			break
		}
	}
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()
	p.cancel()

	return <-done
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
