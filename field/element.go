// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Element is a BN254 scalar field element. It wraps gnark-crypto's
// fr.Element, which stores values in Montgomery form internally but
// always round-trips through canonical big-endian bytes via Bytes /
// SetBytes; this type layers the protocol's little-endian Digest
// convention on top.
type Element struct {
	v fr.Element
}

// FromDigest interprets d as a little-endian field element and reduces it
// mod P (fr.Element.SetBytes reduces any input larger than the modulus).
func FromDigest(d Digest) Element {
	var be [32]byte
	reverse32(&be, &d)
	var e Element
	e.v.SetBytes(be[:])
	return e
}

// Digest returns the canonical little-endian 32-byte encoding of e.
func (e Element) Digest() Digest {
	be := e.v.Bytes()
	var d Digest
	reverseBytes(d[:], be[:])
	return d
}

func reverse32(dst *[32]byte, src *Digest) {
	for i := 0; i < 32; i++ {
		dst[i] = src[31-i]
	}
}

func reverseBytes(dst, src []byte) {
	n := len(src)
	for i := 0; i < n; i++ {
		dst[i] = src[n-1-i]
	}
}
