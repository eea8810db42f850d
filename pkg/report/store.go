package report

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"mercator-hq/wclint/pkg/diag"
)

// Store is the SQLite backend for validation run reports.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenStore opens or creates the report database at path and initializes
// its schema.
func OpenStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "report.store")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report database %q: %w", path, err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("report store opened", "path", path)
	return s, nil
}

func (s *Store) initialize() error {
	if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := s.db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := s.db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create report schema: %w", err)
	}
	if _, err := s.db.Exec(insertSchemaVersion, SchemaVersion); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	var version int
	if err := s.db.QueryRow(getSchemaVersion).Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version != SchemaVersion {
		return fmt.Errorf("report schema version mismatch: expected %d, got %d", SchemaVersion, version)
	}
	return nil
}

// SaveRun persists a run and its findings in one transaction.
func (s *Store) SaveRun(ctx context.Context, run *Run, findings []Finding) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, completed_at, files, errors, warnings, infos, hints)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt, run.CompletedAt, run.Files,
		run.Errors, run.Warnings, run.Infos, run.Hints,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO findings (run_id, uri, rule, severity, message, line, character)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare finding insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range findings {
		if _, err := stmt.ExecContext(ctx,
			f.RunID, f.URI, string(f.Rule), string(f.Severity), f.Message, f.Line, f.Character,
		); err != nil {
			return fmt.Errorf("failed to insert finding for %s: %w", f.URI, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", run.ID, err)
	}

	s.logger.Debug("run persisted", "run_id", run.ID, "findings", len(findings))
	return nil
}

// GetRun loads a run summary by ID. Returns sql.ErrNoRows when absent.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, completed_at, files, errors, warnings, infos, hints
		 FROM runs WHERE id = ?`, id,
	).Scan(&run.ID, &run.StartedAt, &run.CompletedAt, &run.Files,
		&run.Errors, &run.Warnings, &run.Infos, &run.Hints)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListFindings returns the findings of a run in insertion order.
func (s *Store) ListFindings(ctx context.Context, runID string) ([]Finding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, uri, rule, severity, message, line, character
		 FROM findings WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query findings for run %s: %w", runID, err)
	}
	defer rows.Close()

	var findings []Finding
	for rows.Next() {
		var f Finding
		var rule, severity string
		if err := rows.Scan(&f.RunID, &f.URI, &rule, &severity, &f.Message, &f.Line, &f.Character); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		f.Rule = diag.Rule(rule)
		f.Severity = diag.Severity(severity)
		findings = append(findings, f)
	}
	return findings, rows.Err()
}

// LatestRuns returns up to limit runs, newest first.
func (s *Store) LatestRuns(ctx context.Context, limit int) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, completed_at, files, errors, warnings, infos, hints
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.CompletedAt, &run.Files,
			&run.Errors, &run.Warnings, &run.Infos, &run.Hints); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
