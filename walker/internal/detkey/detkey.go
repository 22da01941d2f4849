// Package detkey computes a deterministic ordering key for a node path,
// used only by order-determinism property tests: two walks over the same
// tree with the same Consumer must offer nodes to nodeConsumerHelper in the
// same relative order, and this key gives tests a stable way to assert
// that without depending on map iteration order or pointer identity.
package detkey

import (
	"crypto/sha256"
	"encoding/binary"
)

// Compute hashes path and index into a uint64 suitable for sorting.
//
// The key is computed by hashing path concatenated with index (as a
// 4-byte big-endian integer) and taking the first 8 bytes of the
// resulting SHA-256 digest as a big-endian uint64. Same inputs always
// produce the same key; different paths collide with cryptographically
// negligible probability.
func Compute(path string, index int) uint64 {
	h := sha256.New()
	h.Write([]byte(path))

	idxBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(idxBytes, uint32(index))
	h.Write(idxBytes)

	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}
