// Package hash provides the digests used across go-pegfed: Keccak-256 for
// identity hashes and host-chain addresses, SHA-256 for witness programs.
package hash

import (
	"github.com/minio/sha256-simd"
)

const (
	// Size is the size of every digest produced by this package (32 bytes).
	Size = 32
)

var (
	// NewSha256 is an alias to minio sha256.New.
	NewSha256 = sha256.New
	// Sum256 is an alias to minio sha256.Sum256.
	Sum256 = sha256.Sum256
)

// Keccak256 returns the legacy (pre-NIST) Keccak-256 digest of the concatenated chunks.
func Keccak256(chunks ...[]byte) (out [Size]byte) {
	h := GetHasher()
	defer PutHasher(h)
	for _, chunk := range chunks {
		h.Write(chunk) // never returns an error
	}
	h.Sum(out[:0])
	return out
}
