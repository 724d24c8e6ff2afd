// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pool

import (
	"github.com/luxfi/geth/common"
	"github.com/luxfi/privacypool/field"
)

// Pubkey is a 32-byte Solana-style account key, distinct from the
// teacher's 20-byte Ethereum common.Address: this protocol's accounts,
// pools, and signers are addressed the way the original Rust source
// (pinocchio::pubkey::Pubkey) addresses them. It reuses common.Hash's
// [32]byte layout (rather than the 20-byte common.Address the teacher
// addresses EVM accounts with) purely for the array shape; this repo
// does not depend on common.Hash's own hex/RLP helpers.
type Pubkey common.Hash

// IsZero reports whether k is the all-zero key.
func (k Pubkey) IsZero() bool {
	return k == Pubkey{}
}

// Bytes returns the underlying 32 bytes.
func (k Pubkey) Bytes() []byte {
	h := common.Hash(k)
	return h.Bytes()
}

// NullifierRecord is the double-spend guard for one spent commitment: its
// mere existence at the canonical address for NullifierHash is sufficient
// to reject a repeat spend; IsSpent is redundant-but-defensive, matching
// spec §3 and the teacher's ZKVerifier.Nullifiers / SpendNullifier guard
// in zk/verifier.go.
type NullifierRecord struct {
	IsSpent       bool
	NullifierHash field.Digest
}

// DepositorRecord authorizes ragequit: only the recorded depositor may
// ragequit the deposit behind Label.
type DepositorRecord struct {
	Depositor Pubkey
	Label     field.Digest
}

// NullifierStore is the host-backed keyed store of spent nullifiers. The
// engine never owns storage (spec §3, "Ownership"); this interface is
// the seam a runtime host implements over its own account model.
type NullifierStore interface {
	Get(hash field.Digest) (NullifierRecord, bool)
	Put(rec NullifierRecord) error
}

// DepositorStore is the host-backed keyed store of depositor records,
// keyed by label.
type DepositorStore interface {
	Get(label field.Digest) (DepositorRecord, bool)
	Put(rec DepositorRecord) error
}

// MemNullifierStore is an in-memory NullifierStore reference
// implementation, adequate for tests and for hosts that keep small pools
// fully in memory; it is not the only valid backing (see SPEC_FULL.md).
type MemNullifierStore struct {
	records map[field.Digest]NullifierRecord
}

// NewMemNullifierStore returns an empty in-memory nullifier store.
func NewMemNullifierStore() *MemNullifierStore {
	return &MemNullifierStore{records: make(map[field.Digest]NullifierRecord)}
}

// Get implements NullifierStore.
func (s *MemNullifierStore) Get(hash field.Digest) (NullifierRecord, bool) {
	rec, ok := s.records[hash]
	return rec, ok
}

// Put implements NullifierStore.
func (s *MemNullifierStore) Put(rec NullifierRecord) error {
	s.records[rec.NullifierHash] = rec
	return nil
}

// MemDepositorStore is an in-memory DepositorStore reference
// implementation, analogous to MemNullifierStore.
type MemDepositorStore struct {
	records map[field.Digest]DepositorRecord
}

// NewMemDepositorStore returns an empty in-memory depositor store.
func NewMemDepositorStore() *MemDepositorStore {
	return &MemDepositorStore{records: make(map[field.Digest]DepositorRecord)}
}

// Get implements DepositorStore.
func (s *MemDepositorStore) Get(label field.Digest) (DepositorRecord, bool) {
	rec, ok := s.records[label]
	return rec, ok
}

// Put implements DepositorStore.
func (s *MemDepositorStore) Put(rec DepositorRecord) error {
	s.records[rec.Label] = rec
	return nil
}
