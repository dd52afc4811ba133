package store

import (
	"path/filepath"
	"testing"
)

// createTestStore opens a fresh store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord creates a record with minimal required fields.
func createTestRecord(id, inputHash, optionsHash string, seq int64) Record {
	return Record{
		ID:          id,
		InputHash:   inputHash,
		OptionsHash: optionsHash,
		Output:      "run(_asyncToGenerator(function* () {}));",
		Functions:   1,
		Awaits:      0,
		Annotated:   1,
		ByKind:      map[string]int{"ArrowFunctionExpression": 1},
		Seq:         seq,
	}
}
