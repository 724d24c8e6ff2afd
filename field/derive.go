// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

// withdrawalContextTag is the domain separator the circuit mixes into the
// context hash, binding it to the withdraw instruction specifically.
const withdrawalContextTag = "IPrivacyPool.Withdrawal"

// Withdrawal carries the data a withdraw context hash is bound to: the
// party authorized to receive funds and any auxiliary routing data the
// host passes through untouched.
type Withdrawal struct {
	Processor Digest
	Data      []byte
}

// Label derives the per-deposit identifier label(scope, nonce) =
// keccakReduced(scope || LE64(nonce)).
func Label(scope Digest, nonce uint64) Digest {
	return KeccakReduced(scope.Bytes(), LE64(nonce))
}

// Context derives context(withdrawal, scope), binding the processor,
// auxiliary data, and pool scope together so a withdraw proof cannot be
// replayed against a different recipient or pool.
func Context(w Withdrawal, scope Digest) Digest {
	return KeccakReduced([]byte(withdrawalContextTag), w.Processor.Bytes(), w.Data, scope.Bytes())
}

// Commitment derives commitment(value, label, precommitment) =
// hash3(LE256(value), label, precommitment).
func Commitment(value uint64, label, precommitment Digest) Digest {
	return Hash3(LE256(value), label, precommitment)
}

// NullifierHash derives nullifierHash(nullifier) = hash1(nullifier).
func NullifierHash(nullifier Digest) Digest {
	return Hash1(nullifier)
}

// Precommitment derives precommitment(nullifier, secret) =
// hash2(nullifier, secret).
func Precommitment(nullifier, secret Digest) Digest {
	return Hash2(nullifier, secret)
}

// Scope derives the per-pool domain separator scope = Keccak256("PrivacyPool"
// || assetMint), without field reduction -- reduction happens downstream
// when scope is consumed as a Label input.
func Scope(assetMint Digest) Digest {
	return KeccakUnreduced([]byte("PrivacyPool"), assetMint.Bytes())
}
