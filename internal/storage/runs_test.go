package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestRunLog(t *testing.T) *RunLog {
	t.Helper()
	l, err := OpenRunLog(":memory:")
	if err != nil {
		t.Fatalf("OpenRunLog failed: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestRunLog_StartFinish(t *testing.T) {
	l := openTestRunLog(t)
	ctx := context.Background()

	if err := l.Start(ctx, "run-1", "create", "mark_twain", "Mark Twain"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	r, err := l.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if r.Status != RunRunning || !r.FinishedAt.IsZero() {
		t.Errorf("Expected running run without finish time, got %+v", r)
	}

	if err := l.Finish(ctx, "run-1", RunCompleted, 12, nil); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	r, err = l.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if r.Status != RunCompleted || r.Examples != 12 || r.Error != "" {
		t.Errorf("Unexpected finished run: %+v", r)
	}
	if r.FinishedAt.Before(r.StartedAt) {
		t.Errorf("Finish %v before start %v", r.FinishedAt, r.StartedAt)
	}
}

func TestRunLog_FailedRunKeepsError(t *testing.T) {
	l := openTestRunLog(t)
	ctx := context.Background()

	_ = l.Start(ctx, "run-2", "create", "nobody", "Nobody")
	if err := l.Finish(ctx, "run-2", RunFailed, 0, errors.New("provider unavailable")); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	r, _ := l.Get(ctx, "run-2")
	if r.Error != "provider unavailable" {
		t.Errorf("Expected error message, got %q", r.Error)
	}
}

func TestRunLog_NotFound(t *testing.T) {
	l := openTestRunLog(t)
	ctx := context.Background()

	if _, err := l.Get(ctx, "missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Get: expected ErrRunNotFound, got %v", err)
	}
	if err := l.Finish(ctx, "missing", RunCompleted, 0, nil); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Finish: expected ErrRunNotFound, got %v", err)
	}
}

func TestRunLog_List(t *testing.T) {
	l := openTestRunLog(t)
	ctx := context.Background()

	for _, run := range []struct{ id, author string }{
		{"r1", "twain"}, {"r2", "austen"}, {"r3", "twain"},
	} {
		if err := l.Start(ctx, run.id, "create", run.author, ""); err != nil {
			t.Fatal(err)
		}
	}

	all, err := l.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].StartedAt.After(all[i-1].StartedAt) {
			t.Errorf("Runs not newest first at %d", i)
		}
	}

	twain, _ := l.List(ctx, "twain", 0)
	if len(twain) != 2 {
		t.Errorf("Expected 2 twain runs, got %d", len(twain))
	}

	limited, _ := l.List(ctx, "", 1)
	if len(limited) != 1 {
		t.Errorf("Expected limit 1, got %d", len(limited))
	}
}

func TestRunLog_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ghostwriter.db")
	ctx := context.Background()

	l, err := OpenRunLog(path)
	if err != nil {
		t.Fatalf("OpenRunLog failed: %v", err)
	}
	_ = l.Start(ctx, "persisted", "dataset", "twain", "")
	_ = l.Close()

	l, err = OpenRunLog(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = l.Close() }()
	if _, err := l.Get(ctx, "persisted"); err != nil {
		t.Errorf("Expected run to persist, got %v", err)
	}
}
