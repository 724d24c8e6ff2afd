// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package field implements the BN254 scalar-field arithmetic and the
// Poseidon / Keccak hash layer the privacy pool engine builds on: field
// elements, their canonical little-endian digest encoding, and the
// domain-separated derivation functions (label, context, commitment,
// nullifier hash, precommitment) the proving circuit also computes.
package field

import "encoding/binary"

// Digest is a 32-byte buffer whose value may be interpreted as a BN254
// scalar field element by little-endian decoding and reduction mod P.
type Digest [32]byte

// Zero is the all-zero digest.
var Zero Digest

// BytesToDigest copies up to 32 bytes into a Digest, left-over bytes are
// dropped and missing bytes are zero. b is expected to already be 32
// bytes; this does not reverse or reduce.
func BytesToDigest(b []byte) Digest {
	var d Digest
	copy(d[:], b)
	return d
}

// Bytes returns the underlying 32 bytes.
func (d Digest) Bytes() []byte {
	out := make([]byte, 32)
	copy(out, d[:])
	return out
}

// IsZero reports whether d is the all-zero digest.
func (d Digest) IsZero() bool {
	return d == Zero
}

// Equal reports byte-for-byte equality.
func (d Digest) Equal(o Digest) bool {
	return d == o
}

// LE256 encodes value as a 32-byte little-endian digest with the low 8
// bytes carrying value and the rest zero, per spec's commitment encoding.
func LE256(value uint64) Digest {
	var d Digest
	binary.LittleEndian.PutUint64(d[:8], value)
	return d
}

// LE64 returns the 8-byte little-endian encoding of n, used as the
// trailing bytes of the label preimage.
func LE64(n uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, n)
	return b
}
