package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// NodeKey creates a deterministic key for a graph node from its path.
// Keys are stable across runs, so exported graphs can be diffed by key.
func NodeKey(path string) string {
	hash := sha256.Sum256([]byte(path))
	return hex.EncodeToString(hash[:])
}
