package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a cache key of the form class:sha256(parts). The class
// ("layout", "artifact") keeps entry kinds tellable apart when inspecting the
// cache; the hash carries all of the identity.
func hashKey(class string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return class + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 of data. Workspace snapshots and DOT sources
// are identified by this hash throughout the pipeline.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
