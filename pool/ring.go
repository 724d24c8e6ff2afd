// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pool implements the privacy pool protocol state: the root
// history ring, the pool state aggregate, nullifier and depositor
// records, and the transition processor that validates and applies
// InitializePool, Deposit, Withdraw, Ragequit and WindDown.
package pool

import "github.com/luxfi/privacypool/field"

// RingSize is the fixed capacity of the root history window.
const RingSize = 64

// Ring is a fixed-capacity circular window of recently produced state
// roots, used to tolerate withdraw proofs built against a slightly stale
// view of the state tree.
type Ring struct {
	roots [RingSize]field.Digest
	head  uint64
}

// Push appends root at the current head slot and advances head.
func (r *Ring) Push(root field.Digest) {
	r.roots[r.head%RingSize] = root
	r.head++
}

// IsKnown reports whether root currently occupies any slot in the ring.
func (r *Ring) IsKnown(root field.Digest) bool {
	for _, slot := range r.roots {
		if slot == root {
			return true
		}
	}
	return false
}

// Head returns the number of roots ever pushed (not wrapped).
func (r *Ring) Head() uint64 { return r.head }
