package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"sorter/internal/organizer"
	"sorter/internal/prune"
)

// Store manages the run journal backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Run is one journal row.
type Run struct {
	RunID      string
	Root       string
	StartedAt  time.Time
	FinishedAt time.Time
	Discovered int
	Renamed    int
	Unchanged  int
	Moved      int
	Archives   int
	Pruned     int
}

// Move is one recorded file relocation.
type Move struct {
	From     string
	To       string
	Category string
}

// Open initializes or connects to the journal at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores a completed run together with its prune decisions.
func (s *Store) Record(ctx context.Context, report organizer.Report, pruned prune.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (
            run_id, root, started_at, finished_at,
            discovered, renamed, unchanged, moved, archives, pruned
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		report.Root,
		formatTime(report.StartedAt),
		formatTime(report.FinishedAt),
		report.Discovered,
		report.Renamed,
		report.Unchanged,
		len(report.Moves),
		len(report.Archives),
		len(pruned.Removed),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	ref, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}

	for _, move := range report.Moves {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO moves (run_ref, from_path, to_path, category) VALUES (?, ?, ?, ?)`,
			ref, move.From, move.To, string(move.Category),
		); err != nil {
			return fmt.Errorf("insert move: %w", err)
		}
	}
	for _, rec := range report.Archives {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO archives (run_ref, source, dir, format, entries) VALUES (?, ?, ?, ?, ?)`,
			ref, rec.Source, rec.Dir, rec.Format, len(rec.Entries),
		); err != nil {
			return fmt.Errorf("insert archive: %w", err)
		}
	}
	for _, decision := range pruned.Decisions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO prune_decisions (run_ref, path, removed) VALUES (?, ?, ?)`,
			ref, decision.Path, boolToInt(decision.Removed),
		); err != nil {
			return fmt.Errorf("insert prune decision: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first. A limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT run_id, root, started_at, finished_at,
            discovered, renamed, unchanged, moved, archives, pruned
        FROM runs ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run               Run
			started, finished string
		)
		if err := rows.Scan(
			&run.RunID, &run.Root, &started, &finished,
			&run.Discovered, &run.Renamed, &run.Unchanged, &run.Moved, &run.Archives, &run.Pruned,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = parseTime(started)
		run.FinishedAt = parseTime(finished)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Moves returns the relocations recorded for runID in insertion order.
func (s *Store) Moves(ctx context.Context, runID string) ([]Move, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.from_path, m.to_path, m.category
        FROM moves m JOIN runs r ON r.id = m.run_ref
        WHERE r.run_id = ? ORDER BY m.id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query moves: %w", err)
	}
	defer rows.Close()

	var moves []Move
	for rows.Next() {
		var move Move
		if err := rows.Scan(&move.From, &move.To, &move.Category); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		moves = append(moves, move)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate moves: %w", err)
	}
	return moves, nil
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
