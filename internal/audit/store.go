package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/orgchart/internal/db"
)

// Store persists load-pass records.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts a pass and its diagnostics. If pass.ID is empty a UUID is
// generated.
func (s *Store) Log(ctx context.Context, pass Pass) error {
	if pass.ID == "" {
		pass.ID = uuid.New().String()
	}
	if pass.Timestamp.IsZero() {
		pass.Timestamp = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO load_passes (
			id, timestamp, actor, action, source,
			team_count, user_count, diagnostic_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		pass.ID,
		pass.Timestamp,
		string(pass.Actor),
		string(pass.Action),
		pass.Source,
		pass.TeamCount,
		pass.UserCount,
		pass.DiagnosticCount,
	)
	if err != nil {
		return fmt.Errorf("inserting load pass: %w", err)
	}

	for _, diag := range pass.Diagnostics {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO load_diagnostics (id, pass_id, kind, subject, field, ref)
			VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), pass.ID, diag.Kind, diag.Subject, diag.Field, diag.Ref,
		)
		if err != nil {
			return fmt.Errorf("inserting diagnostic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load pass: %w", err)
	}
	return nil
}

// GetByID retrieves a single pass with its diagnostics.
func (s *Store) GetByID(ctx context.Context, id string) (*Pass, error) {
	var pass Pass
	err := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, actor, action, source,
		       team_count, user_count, diagnostic_count
		FROM load_passes WHERE id = ?`, id,
	).Scan(&pass.ID, &pass.Timestamp, &pass.Actor, &pass.Action, &pass.Source,
		&pass.TeamCount, &pass.UserCount, &pass.DiagnosticCount)
	if err != nil {
		return nil, fmt.Errorf("getting load pass: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, subject, field, ref FROM load_diagnostics WHERE pass_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("listing diagnostics: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var diag Diagnostic
		if err := rows.Scan(&diag.Kind, &diag.Subject, &diag.Field, &diag.Ref); err != nil {
			return nil, fmt.Errorf("scanning diagnostic: %w", err)
		}
		pass.Diagnostics = append(pass.Diagnostics, diag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &pass, nil
}

// Recent returns the most recent passes, newest first, without their
// diagnostics.
func (s *Store) Recent(ctx context.Context, limit int) ([]Pass, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, actor, action, source,
		       team_count, user_count, diagnostic_count
		FROM load_passes ORDER BY timestamp DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing load passes: %w", err)
	}
	defer rows.Close()

	var passes []Pass
	for rows.Next() {
		var pass Pass
		if err := rows.Scan(&pass.ID, &pass.Timestamp, &pass.Actor, &pass.Action, &pass.Source,
			&pass.TeamCount, &pass.UserCount, &pass.DiagnosticCount); err != nil {
			return nil, fmt.Errorf("scanning load pass: %w", err)
		}
		passes = append(passes, pass)
	}
	return passes, rows.Err()
}
