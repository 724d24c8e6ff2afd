// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
)

// poseidon2HasherFactory is the underlying gnark-crypto hasher
// constructor, matching the teacher's zk/poseidon.go wiring of the same
// function value.
var poseidon2HasherFactory = poseidon2.NewMerkleDamgardHasher

// hashElements absorbs inputs into a fresh Merkle-Damgard Poseidon2
// sponge, one canonical big-endian field element at a time, and returns
// the squeezed digest reinterpreted as the protocol's little-endian
// Digest. This mirrors the teacher's Poseidon2Hasher.Hash: a fresh
// hasher per call, fed element-by-element via Write, read back with
// Sum(nil).
func hashElements(inputs ...Element) Digest {
	hasher := poseidon2HasherFactory()
	for _, in := range inputs {
		b := in.v.Bytes()
		hasher.Write(b[:])
	}
	sum := hasher.Sum(nil)

	var out Element
	out.v.SetBytes(sum)
	return out.Digest()
}

// Hash1 computes the arity-1 Poseidon hash of x.
func Hash1(x Digest) Digest {
	return hashElements(FromDigest(x))
}

// Hash2 computes the arity-2 Poseidon hash of (x, y).
func Hash2(x, y Digest) Digest {
	return hashElements(FromDigest(x), FromDigest(y))
}

// Hash3 computes the arity-3 Poseidon hash of (x, y, z).
func Hash3(x, y, z Digest) Digest {
	return hashElements(FromDigest(x), FromDigest(y), FromDigest(z))
}

// Hash4 computes the arity-4 Poseidon hash of (w, x, y, z).
func Hash4(w, x, y, z Digest) Digest {
	return hashElements(FromDigest(w), FromDigest(x), FromDigest(y), FromDigest(z))
}
