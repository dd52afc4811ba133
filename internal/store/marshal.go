package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/remap/internal/ast"
)

// marshalByKind converts per-kind counts to canonical JSON TEXT for storage.
// A nil map is stored as "{}".
func marshalByKind(byKind map[string]int) (string, error) {
	m := make(map[string]any, len(byKind))
	for k, v := range byKind {
		m[k] = int64(v)
	}
	data, err := ast.MarshalCanonical(m)
	if err != nil {
		return "", fmt.Errorf("marshal by_kind: %w", err)
	}
	return string(data), nil
}

// unmarshalByKind parses the by_kind column. Always returns a non-nil map.
func unmarshalByKind(text string) (map[string]int, error) {
	byKind := make(map[string]int)
	if err := json.Unmarshal([]byte(text), &byKind); err != nil {
		return nil, fmt.Errorf("unmarshal by_kind: %w", err)
	}
	return byKind, nil
}
