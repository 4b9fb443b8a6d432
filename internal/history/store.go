package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"execbench/internal/domain"
)

// Run is one recorded load run
type Run struct {
	ID                int64
	StartedAt         time.Time
	CompletedAt       *time.Time
	Endpoint          string
	Requests          int
	Workers           int
	Succeeded         int
	Mismatches        int
	TransportErrors   int
	ExecutionFailures int
	ProtocolErrors    int
	WallMs            int64
	MeanMs            float64
	MinMs             int64
	MaxMs             int64
	P50Ms             int64
	P95Ms             int64
	P99Ms             int64
}

// Failed returns the total number of failed requests in the run
func (r *Run) Failed() int {
	return r.Mismatches + r.TransportErrors + r.ExecutionFailures + r.ProtocolErrors
}

// RequestRecord is one request's recorded metric within a run
type RequestRecord struct {
	ID         int64
	RunID      int64
	Index      int
	DurationMs int64
	OK         bool
	Kind       domain.FailureKind
	Message    string
}

// Store persists run history in a local sqlite database
type Store struct {
	db *sql.DB
}

// Open opens the history database at path, creating the file and schema
// when needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// sqlite allows one writer at a time
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TIMESTAMP NOT NULL,
		completed_at TIMESTAMP,
		endpoint TEXT NOT NULL,
		requests INTEGER NOT NULL,
		workers INTEGER NOT NULL,
		succeeded INTEGER NOT NULL DEFAULT 0,
		mismatches INTEGER NOT NULL DEFAULT 0,
		transport_errors INTEGER NOT NULL DEFAULT 0,
		execution_failures INTEGER NOT NULL DEFAULT 0,
		protocol_errors INTEGER NOT NULL DEFAULT 0,
		wall_ms INTEGER NOT NULL DEFAULT 0,
		mean_ms REAL NOT NULL DEFAULT 0,
		min_ms INTEGER NOT NULL DEFAULT 0,
		max_ms INTEGER NOT NULL DEFAULT 0,
		p50_ms INTEGER NOT NULL DEFAULT 0,
		p95_ms INTEGER NOT NULL DEFAULT 0,
		p99_ms INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS run_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		request_index INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		ok INTEGER NOT NULL,
		kind TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_run_requests_run ON run_requests(run_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create history schema: %w", err)
	}
	return nil
}

// CreateRun inserts a new run row and fills in its ID
func (s *Store) CreateRun(run *Run) error {
	result, err := s.db.Exec(
		`INSERT INTO runs (started_at, endpoint, requests, workers) VALUES (?, ?, ?, ?)`,
		run.StartedAt, run.Endpoint, run.Requests, run.Workers,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}
	run.ID = id
	return nil
}

// FinishRun stamps the run as completed and records its final counters and
// latency figures.
func (s *Store) FinishRun(run *Run) error {
	now := time.Now()
	run.CompletedAt = &now
	_, err := s.db.Exec(
		`UPDATE runs SET completed_at = ?, succeeded = ?, mismatches = ?, transport_errors = ?,
			execution_failures = ?, protocol_errors = ?, wall_ms = ?, mean_ms = ?, min_ms = ?,
			max_ms = ?, p50_ms = ?, p95_ms = ?, p99_ms = ?
		WHERE id = ?`,
		run.CompletedAt, run.Succeeded, run.Mismatches, run.TransportErrors,
		run.ExecutionFailures, run.ProtocolErrors, run.WallMs, run.MeanMs, run.MinMs,
		run.MaxMs, run.P50Ms, run.P95Ms, run.P99Ms, run.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// SaveOutcomes batch-inserts one metric row per request outcome inside a
// single transaction.
func (s *Store) SaveOutcomes(runID int64, outcomes []domain.Outcome) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(
		`INSERT INTO run_requests (run_id, request_index, duration_ms, ok, kind, message)
		VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range outcomes {
		_, err := stmt.Exec(runID, o.Index, o.Elapsed.Milliseconds(), o.OK, string(o.Kind), o.Message())
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert request %d: %w", o.Index, err)
		}
	}
	return tx.Commit()
}

const runColumns = `id, started_at, completed_at, endpoint, requests, workers,
	succeeded, mismatches, transport_errors, execution_failures, protocol_errors,
	wall_ms, mean_ms, min_ms, max_ms, p50_ms, p95_ms, p99_ms`

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	run := &Run{}
	err := scanner.Scan(
		&run.ID, &run.StartedAt, &run.CompletedAt, &run.Endpoint, &run.Requests, &run.Workers,
		&run.Succeeded, &run.Mismatches, &run.TransportErrors, &run.ExecutionFailures, &run.ProtocolErrors,
		&run.WallMs, &run.MeanMs, &run.MinMs, &run.MaxMs, &run.P50Ms, &run.P95Ms, &run.P99Ms,
	)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first. A non-positive limit
// returns every recorded run.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns one run by id
func (s *Store) GetRun(id int64) (*Run, error) {
	run, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// Requests returns the per-request records of a run in request-index order
func (s *Store) Requests(runID int64) ([]*RequestRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, request_index, duration_ms, ok, kind, message
		FROM run_requests WHERE run_id = ? ORDER BY request_index`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var records []*RequestRecord
	for rows.Next() {
		rec := &RequestRecord{}
		err := rows.Scan(&rec.ID, &rec.RunID, &rec.Index, &rec.DurationMs, &rec.OK, &rec.Kind, &rec.Message)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
