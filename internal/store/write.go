package store

import (
	"context"
	"fmt"
)

// Record is one cached transform result.
type Record struct {
	ID          string
	InputHash   string
	OptionsHash string
	Output      string
	Functions   int
	Awaits      int
	IIFEs       int
	Annotated   int
	ByKind      map[string]int
	Seq         int64
}

// Put inserts a record and reports whether a new row was written.
// Uses ON CONFLICT(input_hash, options_hash) DO NOTHING for idempotency:
// the first result cached for a key wins.
func (s *Store) Put(ctx context.Context, rec Record) (bool, error) {
	byKind, err := marshalByKind(rec.ByKind)
	if err != nil {
		return false, fmt.Errorf("put transform: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO transforms
		(id, input_hash, options_hash, output, functions, awaits, iifes, annotated, by_kind, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(input_hash, options_hash) DO NOTHING
	`,
		rec.ID,
		rec.InputHash,
		rec.OptionsHash,
		rec.Output,
		rec.Functions,
		rec.Awaits,
		rec.IIFEs,
		rec.Annotated,
		byKind,
		rec.Seq,
	)
	if err != nil {
		return false, fmt.Errorf("put transform: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("put transform: rows affected: %w", err)
	}
	return n > 0, nil
}

// NextSeq returns one past the highest seq in the cache, starting at 1.
func (s *Store) NextSeq(ctx context.Context) (int64, error) {
	var seq int64
	if err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(seq), 0) + 1 FROM transforms").Scan(&seq); err != nil {
		return 0, fmt.Errorf("next seq: %w", err)
	}
	return seq, nil
}
