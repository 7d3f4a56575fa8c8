package history

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS review_outcomes (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        dictionary_id INTEGER NOT NULL,
        word_id INTEGER NOT NULL,
        word TEXT NOT NULL,
        quality INTEGER NOT NULL,
        reviewed_at TEXT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS sittings (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        dictionary_id INTEGER NOT NULL,
        completed INTEGER NOT NULL,
        total INTEGER NOT NULL,
        started_at TEXT NOT NULL,
        finished_at TEXT NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_review_outcomes_reviewed_at
        ON review_outcomes (reviewed_at)`,
}

func (s *Store) applySchema(ctx context.Context) error {
	for _, statement := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
