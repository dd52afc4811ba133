package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const selectRecord = `
	SELECT id, input_hash, options_hash, output, functions, awaits, iifes, annotated, by_kind, seq
	FROM transforms
`

// Lookup returns the record cached for an input and option set.
// The boolean is false when nothing is cached.
func (s *Store) Lookup(ctx context.Context, inputHash, optionsHash string) (Record, bool, error) {
	row := s.db.QueryRowContext(ctx, selectRecord+`
		WHERE input_hash = ? AND options_hash = ?
	`, inputHash, optionsHash)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("lookup transform: %w", err)
	}
	return rec, true, nil
}

// List returns all cached records, ordered by seq ASC, id COLLATE BINARY ASC.
//
// Returns an empty slice (not nil) if the cache is empty.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectRecord+`
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query transforms: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transform: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transforms: %w", err)
	}

	return records, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var rec Record
	var byKind string
	err := sc.Scan(
		&rec.ID,
		&rec.InputHash,
		&rec.OptionsHash,
		&rec.Output,
		&rec.Functions,
		&rec.Awaits,
		&rec.IIFEs,
		&rec.Annotated,
		&byKind,
		&rec.Seq,
	)
	if err != nil {
		return Record{}, err
	}

	rec.ByKind, err = unmarshalByKind(byKind)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}
