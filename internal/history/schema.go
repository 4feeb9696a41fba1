package history

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// The journal layout is versioned through SQLite's user_version header
// field. A fresh file reports 0 and gets schema.sql applied in one
// transaction that also stamps journalVersion. Any other value that differs
// from journalVersion means the file came from a build with a different
// layout; there are no migrations, so Open refuses it and the user removes
// the file. Bump journalVersion whenever schema.sql changes shape.
const journalVersion = 1

// ErrSchemaMismatch is returned by Open for a journal stamped with a
// different layout version.
var ErrSchemaMismatch = errors.New("history journal version mismatch")

func (s *Store) initSchema(ctx context.Context) error {
	var stamped int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&stamped); err != nil {
		return fmt.Errorf("read journal version: %w", err)
	}
	switch stamped {
	case journalVersion:
		return nil
	case 0:
		return s.applySchema(ctx)
	default:
		return fmt.Errorf("%w: %s is version %d, this build writes %d; remove it to start a new journal",
			ErrSchemaMismatch, s.path, stamped, journalVersion)
	}
}

func (s *Store) applySchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	// PRAGMA does not take bound parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", journalVersion)); err != nil {
		return fmt.Errorf("stamp journal version: %w", err)
	}
	return tx.Commit()
}
