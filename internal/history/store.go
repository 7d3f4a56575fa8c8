package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"recall/internal/config"
)

// Store persists the local review log backed by SQLite. The state directory
// is guarded by a file lock so two concurrent CLI sessions cannot interleave
// writes into the same history.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the history database and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire state lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another recall session is already active (lock %s)", cfg.LockPath())
	}

	dbPath := cfg.HistoryPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
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
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close closes the database and releases the state lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			firstErr = err
		}
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// RecordOutcome appends one graded review to the local log.
func (s *Store) RecordOutcome(ctx context.Context, dictionaryID, wordID int64, word string, quality int) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO review_outcomes (dictionary_id, word_id, word, quality, reviewed_at)
         VALUES (?, ?, ?, ?, ?)`,
		dictionaryID, wordID, word, quality, timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert outcome: %w", err)
	}
	return nil
}

// RecordSitting appends one finished review sitting to the local log.
func (s *Store) RecordSitting(ctx context.Context, dictionaryID int64, completed, total int, startedAt, finishedAt time.Time) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO sittings (dictionary_id, completed, total, started_at, finished_at)
         VALUES (?, ?, ?, ?, ?)`,
		dictionaryID, completed, total,
		startedAt.UTC().Format(time.RFC3339Nano),
		finishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert sitting: %w", err)
	}
	return nil
}

// Totals aggregates the local review log.
type Totals struct {
	Outcomes       int
	Sittings       int
	AverageQuality float64
	LastReviewedAt time.Time
}

// Tally summarizes everything recorded locally.
func (s *Store) Tally(ctx context.Context) (Totals, error) {
	var totals Totals
	var avg sql.NullFloat64
	var last sql.NullString

	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), AVG(quality), MAX(reviewed_at) FROM review_outcomes`)
	if err := row.Scan(&totals.Outcomes, &avg, &last); err != nil {
		return Totals{}, fmt.Errorf("tally outcomes: %w", err)
	}
	if avg.Valid {
		totals.AverageQuality = avg.Float64
	}
	if last.Valid {
		if ts, err := time.Parse(time.RFC3339Nano, last.String); err == nil {
			totals.LastReviewedAt = ts
		}
	}

	row = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sittings`)
	if err := row.Scan(&totals.Sittings); err != nil {
		return Totals{}, fmt.Errorf("tally sittings: %w", err)
	}
	return totals, nil
}

// Sitting is one recorded review session.
type Sitting struct {
	DictionaryID int64
	Completed    int
	Total        int
	StartedAt    time.Time
	FinishedAt   time.Time
}

// RecentSittings returns the most recent sittings, newest first.
func (s *Store) RecentSittings(ctx context.Context, limit int) ([]Sitting, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT dictionary_id, completed, total, started_at, finished_at
         FROM sittings ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sittings: %w", err)
	}
	defer rows.Close()

	var sittings []Sitting
	for rows.Next() {
		var sitting Sitting
		var started, finished string
		if err := rows.Scan(&sitting.DictionaryID, &sitting.Completed, &sitting.Total, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan sitting: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, started); err == nil {
			sitting.StartedAt = ts
		}
		if ts, err := time.Parse(time.RFC3339Nano, finished); err == nil {
			sitting.FinishedAt = ts
		}
		sittings = append(sittings, sitting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sittings: %w", err)
	}
	return sittings, nil
}
