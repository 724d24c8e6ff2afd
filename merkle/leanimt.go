// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package merkle implements the Lean Incremental Merkle Tree (LeanIMT): a
// dynamic-depth, append-only Merkle accumulator with no zero-padding. An
// unpaired left node propagates to the parent level unchanged until a
// right sibling arrives to pair with it, rather than being hashed against
// a precomputed zero leaf. Depth grows strictly as needed, bounded by
// MaxDepth.
//
// This is adapted from the zero-padded, fixed-depth accumulator the
// teacher repository's dex/pool_manager.go and zk/verifier.go leave as an
// unimplemented stub (updatePoolMerkleRoot); the dynamic-depth
// construction here is grounded in the original Rust
// state/lean_imt.rs reference implementation this system was distilled
// from.
package merkle

import (
	"math/bits"

	"github.com/luxfi/privacypool/field"
)

// MaxDepth bounds the tree: at most 2^MaxDepth leaves may be inserted.
const MaxDepth = 32

// SideNodeCount is MaxDepth+1, the fixed capacity of the side-node array
// (depth 0 through depth MaxDepth inclusive).
const SideNodeCount = MaxDepth + 1

// LeanIMT is an append-only Merkle accumulator over field.Digest leaves.
// The zero value is an empty tree capped at MaxDepth; use NewLeanIMT to
// cap a tree at a pool-configured depth instead.
type LeanIMT struct {
	size      uint64
	depth     uint32
	capDepth  uint32
	sideNodes [SideNodeCount]field.Digest

	// leafIndices tracks the insertion index of every leaf ever inserted
	// via InsertUnique, so duplicate leaves can be rejected; Insert does
	// not populate or consult it. nil until the first InsertUnique call.
	leafIndices map[field.Digest]uint64
}

// NewLeanIMT returns an empty tree whose capacity is bounded at
// 2^capDepth leaves. Pool state trees are constructed this way so that a
// pool's configured maxTreeDepth (spec §4.D) is the effective growth
// ceiling, not just a proof-depth validity check: a pool opened with a
// shallow maxTreeDepth runs out of room exactly as many deposits as that
// depth allows, matching the TreeFull end-to-end scenario.
func NewLeanIMT(capDepth uint32) *LeanIMT {
	if capDepth > MaxDepth {
		capDepth = MaxDepth
	}
	return &LeanIMT{capDepth: capDepth}
}

func (t *LeanIMT) capacity() uint32 {
	if t.capDepth == 0 {
		return MaxDepth
	}
	return t.capDepth
}

// Size returns the number of leaves inserted so far.
func (t *LeanIMT) Size() uint64 { return t.size }

// Depth returns the current tree depth.
func (t *LeanIMT) Depth() uint32 { return t.depth }

// Root returns the current root: the side node at the current depth, or
// the zero digest for an empty tree.
func (t *LeanIMT) Root() field.Digest {
	if t.size == 0 {
		return field.Zero
	}
	return t.sideNodes[t.depth]
}

// SideNodeAt returns the raw side-node digest stored at level, for
// serialization. Callers outside this package should generally prefer
// Root(); this accessor exists so the pool package can persist and
// restore a tree's full internal state across a packed record encoding.
func (t *LeanIMT) SideNodeAt(level uint32) field.Digest {
	return t.sideNodes[level]
}

// RestoreLeanIMT reconstructs a tree from previously-serialized internal
// state, for decoding a packed pool record back into memory.
func RestoreLeanIMT(capDepth uint32, size uint64, depth uint32, sideNodes [SideNodeCount]field.Digest) *LeanIMT {
	return &LeanIMT{capDepth: capDepth, size: size, depth: depth, sideNodes: sideNodes}
}

// Insert appends leaf to the tree and returns the new root. It never
// checks for duplicate leaves; callers that need that guard should use
// InsertUnique instead.
func (t *LeanIMT) Insert(leaf field.Digest) (field.Digest, error) {
	return t.insert(leaf, false)
}

// InsertUnique appends leaf to the tree like Insert, but first rejects
// the insertion with ErrDuplicateLeaf if an equal leaf was already
// inserted through a prior InsertUnique call.
func (t *LeanIMT) InsertUnique(leaf field.Digest) (field.Digest, error) {
	return t.insert(leaf, true)
}

// Precheck reports the error a subsequent Insert/InsertUnique(leaf) of
// this same unique-ness mode would fail with, without mutating the tree.
// Callers that must guarantee atomicity across multiple trees (spec §5:
// a transition either fully applies or leaves state untouched) use this
// to validate every insert before performing any of them.
func (t *LeanIMT) Precheck(leaf field.Digest, unique bool) error {
	if t.size >= uint64(1)<<t.capacity() {
		return ErrTreeFull
	}
	if unique {
		if _, exists := t.leafIndices[leaf]; exists {
			return ErrDuplicateLeaf
		}
	}
	return nil
}

func (t *LeanIMT) insert(leaf field.Digest, unique bool) (field.Digest, error) {
	if err := t.Precheck(leaf, unique); err != nil {
		return field.Zero, err
	}

	if unique && t.leafIndices == nil {
		t.leafIndices = make(map[field.Digest]uint64)
	}

	i := t.size
	requiredDepth := uint32(0)
	if i != 0 {
		requiredDepth = ceilLog2(i + 1)
	}
	if requiredDepth > t.depth {
		t.depth = requiredDepth
	}

	node := leaf
	for level := uint32(0); level < t.depth; level++ {
		if (i>>level)&1 == 1 {
			// Right child: combine with the side node recorded at this
			// level the last time a left (lonely) node passed through.
			node = field.Hash2(t.sideNodes[level], node)
		} else {
			// Left child, including the lonely case: record it and let
			// it propagate to the parent unchanged -- no zero padding.
			t.sideNodes[level] = node
		}
	}
	t.sideNodes[t.depth] = node
	t.size++

	if unique {
		t.leafIndices[leaf] = i
	}

	return node, nil
}

// ceilLog2 returns the smallest d such that 2^d >= n, for n >= 1.
func ceilLog2(n uint64) uint32 {
	if n <= 1 {
		return 0
	}
	return uint32(bits.Len64(n - 1))
}
