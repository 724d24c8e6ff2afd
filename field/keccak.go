// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

import (
	"golang.org/x/crypto/sha3"
)

// KeccakReduced hashes the concatenation of parts with Keccak-256,
// reinterprets the 32-byte digest as a little-endian integer, and reduces
// it modulo the BN254 scalar field, re-encoding little-endian. This is
// the keccak-then-reduce path used for label and context derivation,
// distinct from the Poseidon path which never reduces its inputs.
func KeccakReduced(parts ...[]byte) Digest {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	sum := h.Sum(nil)

	var le Digest
	copy(le[:], sum)
	// FromDigest treats le as little-endian and reduces mod P; Digest
	// re-encodes the reduced value little-endian.
	return FromDigest(le).Digest()
}

// KeccakUnreduced hashes the concatenation of parts with Keccak-256 and
// returns the raw 32-byte digest, with no reinterpretation or modular
// reduction. Used for scope derivation, where reduction is deferred until
// scope is later consumed as a Poseidon/Label input.
func KeccakUnreduced(parts ...[]byte) Digest {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	return BytesToDigest(h.Sum(nil))
}
