package ast

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainNode    = "remap/node/v1"
	DomainOptions = "remap/options/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash computes the content-addressed identity of the subtree at id.
// Node IDs and parent links do not contribute, so two structurally equal
// subtrees hash the same regardless of where they live in the arena.
func Hash(t *Tree, id NodeID) (string, error) {
	canonical, err := MarshalCanonical(Encode(t, id))
	if err != nil {
		return "", fmt.Errorf("hash node: %w", err)
	}
	return hashWithDomain(DomainNode, canonical), nil
}

// HashValue hashes an arbitrary canonical value under domain.
func HashValue(domain string, v any) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("hash value: %w", err)
	}
	return hashWithDomain(domain, canonical), nil
}

// MustHash is like Hash but panics on error.
// Use only in tests or when the tree is known to be valid.
func MustHash(t *Tree, id NodeID) string {
	h, err := Hash(t, id)
	if err != nil {
		panic(err)
	}
	return h
}
