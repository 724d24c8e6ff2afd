// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pool

import (
	"github.com/luxfi/privacypool/field"
	"github.com/luxfi/privacypool/merkle"
)

// State is one pool's full record: identity, configuration, nonce
// counter, dead flag, the two LeanIMTs (state tree and ASP tree), and the
// root history ring. Created once by InitializePool; mutated in place by
// Deposit, Withdraw, and WindDown. Never deleted.
type State struct {
	IsInitialized bool

	// Authority is the account that called InitializePool (the payer /
	// creator). EntrypointAuthority is the only account permitted to
	// WindDown. The original source threads these separately even though
	// a deployment may set them equal.
	Authority           Pubkey
	EntrypointAuthority Pubkey
	AssetMint           Pubkey

	// VerifyingKeyID identifies the Groth16 verifying key this pool
	// checks withdraw/ragequit proofs against. The engine treats it as an
	// opaque handle; see the proof package.
	VerifyingKeyID field.Digest

	Scope        field.Digest
	Nonce        uint64
	Dead         bool
	MaxTreeDepth uint8

	StateTree *merkle.LeanIMT
	AspTree   *merkle.LeanIMT
	Roots     Ring
}

// NewState constructs an initialized pool record. This is the effect
// half of InitializePool; validation lives in Engine.InitializePool.
func NewState(caller, entrypointAuthority, assetMint Pubkey, maxTreeDepth uint8) *State {
	scope := field.Scope(field.Digest(assetMint))
	return &State{
		IsInitialized:       true,
		Authority:           caller,
		EntrypointAuthority: entrypointAuthority,
		AssetMint:           assetMint,
		Scope:               scope,
		Nonce:               0,
		Dead:                false,
		MaxTreeDepth:        maxTreeDepth,
		StateTree:           merkle.NewLeanIMT(uint32(maxTreeDepth)),
		AspTree:             merkle.NewLeanIMT(uint32(maxTreeDepth)),
	}
}

// IncrementNonce advances the nonce and returns its new (post-increment)
// value; the first deposit on a fresh pool observes nonce 1.
func (s *State) IncrementNonce() uint64 {
	s.Nonce++
	return s.Nonce
}

// IsKnownRoot reports whether root is in the rolling state-root window.
func (s *State) IsKnownRoot(root field.Digest) bool {
	return s.Roots.IsKnown(root)
}
