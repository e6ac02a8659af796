package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex-encoded SHA-256 digest of data. Graph payloads are
// hashed before keying so the raw JSON never appears in a key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a namespaced key, "<namespace>:<digest>", over the JSON
// encoding of the parts. The full 256-bit digest is kept: layout keys mix a
// graph hash with an options struct, and truncating would invite collisions
// between near-identical inputs.
func hashKey(namespace string, parts ...any) string {
	payload, _ := json.Marshal(parts)
	return namespace + ":" + Hash(payload)
}
