package persist

import (
	"context"
	"fmt"
)

// JournalEntry is one hover transition.
type JournalEntry struct {
	Frame  uint64
	Prev   string
	Next   string
	WorldX float64
	WorldY float64
	Camera string
}

// JournalWriter is what JournalSystem flushes into.
type JournalWriter interface {
	WriteBatch(ctx context.Context, entries []JournalEntry) error
}

type JournalRepo struct {
	db *DB
}

func NewJournalRepo(db *DB) *JournalRepo {
	return &JournalRepo{db: db}
}

// WriteBatch writes entries in a single transaction. On error nothing is
// committed and the caller keeps the batch for the next attempt.
func (r *JournalRepo) WriteBatch(ctx context.Context, entries []JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("journal begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO hover_journal (frame, prev_name, next_name, world_x, world_y, camera)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			int64(e.Frame), e.Prev, e.Next, e.WorldX, e.WorldY, e.Camera,
		); err != nil {
			return fmt.Errorf("journal insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}
