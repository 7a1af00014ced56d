package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// RunStatus is the state of a recorded pipeline run
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
	RunRejected  RunStatus = "rejected" // stopped at the verification gate
)

// ErrRunNotFound is returned when a run ID is unknown
var ErrRunNotFound = errors.New("run not found")

// Run is one author creation or dataset extension attempt
type Run struct {
	ID         string
	Kind       string
	AuthorID   string
	Figure     string
	Status     RunStatus
	Examples   int
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time // zero while running
}

// RunLog records pipeline runs in a SQLite database
type RunLog struct {
	db *sql.DB
}

const runSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	kind        TEXT NOT NULL,
	author_id   TEXT NOT NULL,
	figure      TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	examples    INTEGER NOT NULL DEFAULT 0,
	error       TEXT NOT NULL DEFAULT '',
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_author ON runs(author_id);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`

// OpenRunLog opens or creates the run database at path.
// Pass ":memory:" for an in-memory log.
func OpenRunLog(path string) (*RunLog, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// one connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	for _, p := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(runSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &RunLog{db: db}, nil
}

// Close closes the database
func (l *RunLog) Close() error {
	return l.db.Close()
}

// Start records a new running run
func (l *RunLog) Start(ctx context.Context, id, kind, authorID, figure string) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, author_id, figure, status, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, kind, authorID, figure, string(RunRunning), formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("recording run start: %w", err)
	}
	return nil
}

// Finish sets the final status of a run
func (l *RunLog) Finish(ctx context.Context, id string, status RunStatus, examples int, runErr error) error {
	msg := ""
	if runErr != nil {
		msg = runErr.Error()
	}

	result, err := l.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, examples = ?, error = ?, finished_at = ? WHERE id = ?`,
		string(status), examples, msg, formatTime(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("recording run finish: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

const runColumns = `id, kind, author_id, figure, status, examples, error, started_at, finished_at`

// Get returns one run
func (l *RunLog) Get(ctx context.Context, id string) (*Run, error) {
	row := l.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return r, err
}

// List returns the most recent runs first. authorID filters when non-empty;
// limit <= 0 means no limit.
func (l *RunLog) List(ctx context.Context, authorID string, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	var args []any
	if authorID != "" {
		query += ` WHERE author_id = ?`
		args = append(args, authorID)
	}
	query += ` ORDER BY started_at DESC, id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	runs := []*Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		r                 Run
		status            string
		started, finished string
	)
	if err := row.Scan(&r.ID, &r.Kind, &r.AuthorID, &r.Figure, &status, &r.Examples, &r.Error, &started, &finished); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	r.Status = RunStatus(status)
	r.StartedAt = parseTime(started)
	r.FinishedAt = parseTime(finished)
	return &r, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
