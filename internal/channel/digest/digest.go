// Package digest wraps the collision-resistant hash primitive the core
// treats as injected configuration (spec §4.3: "the core does not depend
// on a particular digest implementation").
package digest

import "golang.org/x/crypto/sha3"

// Hasher is the collaborator interface the channel core consumes. Production
// code uses Keccak256; tests inject Mock so assertions
// don't depend on a specific hash implementation's output bytes.
type Hasher interface {
	Sum(data []byte) [32]byte
}

// Keccak256 is the production hash primitive. The spec recommends
// Keccak-256 specifically for cross-stack compatibility with an external
// signature-recovery layer, so this wraps golang.org/x/crypto/sha3's legacy
// Keccak implementation (NOT the standardized SHA3-256, which uses
// different padding) rather than crypto/sha256.
type Keccak256 struct{}

func (Keccak256) Sum(data []byte) [32]byte {
	var out [32]byte
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	copy(out[:], h.Sum(nil))
	return out
}

// Mock is a deterministic, non-cryptographic Hasher for tests: it folds
// the input into 32 bytes with a cheap running mix so test fixtures never
// depend on a real Keccak implementation's exact output, only on the
// chaining property (same bytes in -> same digest out).
type Mock struct{}

func (Mock) Sum(data []byte) [32]byte {
	var out [32]byte
	var acc uint64 = 0xcbf29ce484222325 // FNV offset basis, reused as a mixing seed only
	for i, b := range data {
		acc ^= uint64(b)
		acc *= 0x100000001b3
		out[i%32] ^= byte(acc >> (8 * (i % 8)))
	}
	return out
}
