package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// lookupResult carries the figure a job looked up
type lookupResult struct {
	figure string
	err    error
}

func (r *lookupResult) GetError() error {
	return r.err
}

// lookupJob stands in for a verification request against a provider
type lookupJob struct {
	figure  string
	latency time.Duration
	fail    bool
	calls   *int32
}

func (j *lookupJob) Execute(ctx context.Context) Result {
	if j.calls != nil {
		atomic.AddInt32(j.calls, 1)
	}
	if j.latency > 0 {
		select {
		case <-time.After(j.latency):
		case <-ctx.Done():
			return &lookupResult{figure: j.figure, err: ctx.Err()}
		}
	}
	if j.fail {
		return &lookupResult{figure: j.figure, err: errors.New("provider unavailable")}
	}
	return &lookupResult{figure: j.figure}
}

func TestNewPool_WorkerFloor(t *testing.T) {
	for _, tc := range []struct {
		in, want int
	}{
		{in: 4, want: 4},
		{in: 0, want: 1},
		{in: -3, want: 1},
	} {
		if got := NewPool(context.Background(), tc.in).workers; got != tc.want {
			t.Errorf("NewPool(%d).workers = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestPool_RunsEveryJob(t *testing.T) {
	var calls int32
	names := []string{"Mark Twain", "Jane Austen", "Ada Lovelace", "Frederick Douglass", "Mary Shelley", "Walt Whitman"}
	jobs := make([]Job, len(names))
	for i, n := range names {
		jobs[i] = &lookupJob{figure: n, calls: &calls}
	}

	results := NewPool(context.Background(), 3).Run(jobs)
	if len(results) != len(names) {
		t.Fatalf("got %d results, want %d", len(results), len(names))
	}
	if got := atomic.LoadInt32(&calls); got != int32(len(names)) {
		t.Errorf("executed %d jobs, want %d", got, len(names))
	}

	seen := make(map[string]bool)
	for _, r := range results {
		seen[r.(*lookupResult).figure] = true
	}
	for _, n := range names {
		if !seen[n] {
			t.Errorf("no result for %q", n)
		}
	}
}

// gaugeJob records how many jobs run at the same time
type gaugeJob struct {
	onStart func()
	onEnd   func()
	hold    time.Duration
}

func (j *gaugeJob) Execute(ctx context.Context) Result {
	if j.onStart != nil {
		j.onStart()
	}
	time.Sleep(j.hold)
	if j.onEnd != nil {
		j.onEnd()
	}
	return &lookupResult{}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	const workers = 4

	var (
		running, finished int32
		mu                sync.Mutex
		peak              int32
	)
	jobs := make([]Job, 20)
	for i := range jobs {
		jobs[i] = &gaugeJob{
			onStart: func() {
				n := atomic.AddInt32(&running, 1)
				mu.Lock()
				if n > peak {
					peak = n
				}
				mu.Unlock()
			},
			onEnd: func() {
				atomic.AddInt32(&running, -1)
				atomic.AddInt32(&finished, 1)
			},
			hold: 5 * time.Millisecond,
		}
	}
	NewPool(context.Background(), workers).Run(jobs)

	if got := atomic.LoadInt32(&finished); got != 20 {
		t.Errorf("finished %d jobs, want 20", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if peak > workers {
		t.Errorf("peak concurrency %d exceeds %d workers", peak, workers)
	}
}

func TestPool_ReportsJobErrors(t *testing.T) {
	jobs := make([]Job, 4)
	for i := range jobs {
		jobs[i] = &lookupJob{figure: fmt.Sprintf("figure-%d", i), fail: i%2 == 1}
	}

	failed := 0
	for _, r := range NewPool(context.Background(), 2).Run(jobs) {
		if r.GetError() != nil {
			failed++
		}
	}
	if failed != 2 {
		t.Errorf("got %d failed lookups, want 2", failed)
	}
}

func TestPool_SubmitAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewPool(ctx, 2)
	cancel()

	done := make(chan bool)
	go func() {
		done <- pool.Submit(&lookupJob{})
	}()

	select {
	case accepted := <-done:
		if accepted {
			t.Error("Submit on a cancelled pool reported the job as accepted")
		}
	case <-time.After(time.Second):
		t.Fatal("Submit on a cancelled pool blocked")
	}
}

func TestPool_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})

	jobs := []Job{
		&gaugeJob{onStart: func() { close(started) }},
		&lookupJob{latency: time.Minute},
	}
	done := make(chan []Result)
	go func() {
		done <- NewPool(ctx, 1).Run(jobs)
	}()

	<-started
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestPool_Run(t *testing.T) {
	var executed int32
	jobs := make([]Job, 25)
	for i := range jobs {
		jobs[i] = &lookupJob{calls: &executed, fail: i%5 == 0}
	}

	results := NewPool(context.Background(), 3).Run(jobs)
	if len(results) != len(jobs) {
		t.Fatalf("expected %d results, got %d", len(jobs), len(results))
	}

	failed := 0
	for _, r := range results {
		if r.GetError() != nil {
			failed++
		}
	}
	if failed != 5 {
		t.Errorf("expected 5 failed jobs, got %d", failed)
	}
	if atomic.LoadInt32(&executed) != 25 {
		t.Errorf("expected 25 executed jobs, got %d", executed)
	}
}

func TestPool_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []Job{&lookupJob{}, &lookupJob{}, &lookupJob{}}
	done := make(chan []Result)
	go func() {
		done <- NewPool(ctx, 1).Run(jobs)
	}()

	select {
	case results := <-done:
		if len(results) > len(jobs) {
			t.Errorf("unexpected result count %d", len(results))
		}
	case <-time.After(time.Second):
		t.Fatal("Run on a cancelled context blocked")
	}
}
