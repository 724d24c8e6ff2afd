// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pool

import (
	"encoding/binary"

	"github.com/luxfi/privacypool/field"
	"github.com/luxfi/privacypool/merkle"
)

// Packed, little-endian, no-implicit-padding record layouts. These mirror
// the teacher's hand-rolled byte-offset encoding style (zk/contract.go
// slices its precompile input by explicit offsets rather than using a
// reflection-based codec) and the original Rust #[repr(C, packed)]
// zero-copy structs these records were distilled from.

const (
	leanIMTEncodedLen = 8 + 4 + 4 + merkle.SideNodeCount*32 // size + depth + padding + side nodes

	// PoolRecordLen is the fixed encoded size of a pool record: header
	// fields, the root history ring, and two embedded LeanIMTs.
	PoolRecordLen = 1 + 32 + 32 + 32 + 32 + 32 + 8 + 1 + 1 + 6 + RingSize*32 + 8 + 2*leanIMTEncodedLen

	// NullifierRecordLen is the fixed encoded size of a nullifier record.
	NullifierRecordLen = 1 + 32

	// DepositorRecordLen is the fixed encoded size of a depositor record.
	DepositorRecordLen = 32 + 32
)

func putBool(b []byte, v bool) {
	if v {
		b[0] = 1
	} else {
		b[0] = 0
	}
}

func encodeLeanIMT(dst []byte, t *merkle.LeanIMT) {
	binary.LittleEndian.PutUint64(dst[0:8], t.Size())
	binary.LittleEndian.PutUint32(dst[8:12], t.Depth())
	// dst[12:16] is reserved padding, left zero.
	off := 16
	for i := 0; i < merkle.SideNodeCount; i++ {
		d := t.SideNodeAt(uint32(i))
		copy(dst[off:off+32], d[:])
		off += 32
	}
}

func decodeLeanIMT(src []byte, capDepth uint32) *merkle.LeanIMT {
	size := binary.LittleEndian.Uint64(src[0:8])
	depth := binary.LittleEndian.Uint32(src[8:12])
	off := 16
	var sideNodes [merkle.SideNodeCount]field.Digest
	for i := 0; i < merkle.SideNodeCount; i++ {
		sideNodes[i] = field.BytesToDigest(src[off : off+32])
		off += 32
	}
	return merkle.RestoreLeanIMT(capDepth, size, depth, sideNodes)
}

// EncodePoolRecord serializes s into the fixed PoolRecordLen-byte packed
// layout described by the protocol's external interface.
func EncodePoolRecord(s *State) []byte {
	buf := make([]byte, PoolRecordLen)
	off := 0

	putBool(buf[off:off+1], s.IsInitialized)
	off++
	copy(buf[off:off+32], s.Authority[:])
	off += 32
	copy(buf[off:off+32], s.AssetMint[:])
	off += 32
	copy(buf[off:off+32], s.EntrypointAuthority[:])
	off += 32
	copy(buf[off:off+32], s.VerifyingKeyID[:])
	off += 32
	copy(buf[off:off+32], s.Scope[:])
	off += 32
	binary.LittleEndian.PutUint64(buf[off:off+8], s.Nonce)
	off += 8
	putBool(buf[off:off+1], s.Dead)
	off++
	buf[off] = s.MaxTreeDepth
	off++
	off += 6 // reserved padding

	for i := 0; i < RingSize; i++ {
		copy(buf[off:off+32], s.Roots.roots[i][:])
		off += 32
	}
	binary.LittleEndian.PutUint64(buf[off:off+8], s.Roots.head)
	off += 8

	encodeLeanIMT(buf[off:off+leanIMTEncodedLen], s.StateTree)
	off += leanIMTEncodedLen
	encodeLeanIMT(buf[off:off+leanIMTEncodedLen], s.AspTree)
	off += leanIMTEncodedLen

	return buf
}

// DecodePoolRecord parses the fixed packed layout produced by
// EncodePoolRecord back into a live State.
func DecodePoolRecord(buf []byte) (*State, bool) {
	if len(buf) != PoolRecordLen {
		return nil, false
	}
	s := &State{}
	off := 0

	s.IsInitialized = buf[off] != 0
	off++
	copy(s.Authority[:], buf[off:off+32])
	off += 32
	copy(s.AssetMint[:], buf[off:off+32])
	off += 32
	copy(s.EntrypointAuthority[:], buf[off:off+32])
	off += 32
	s.VerifyingKeyID = field.BytesToDigest(buf[off : off+32])
	off += 32
	s.Scope = field.BytesToDigest(buf[off : off+32])
	off += 32
	s.Nonce = binary.LittleEndian.Uint64(buf[off : off+8])
	off += 8
	s.Dead = buf[off] != 0
	off++
	s.MaxTreeDepth = buf[off]
	off++
	off += 6 // reserved padding

	for i := 0; i < RingSize; i++ {
		s.Roots.roots[i] = field.BytesToDigest(buf[off : off+32])
		off += 32
	}
	s.Roots.head = binary.LittleEndian.Uint64(buf[off : off+8])
	off += 8

	s.StateTree = decodeLeanIMT(buf[off:off+leanIMTEncodedLen], uint32(s.MaxTreeDepth))
	off += leanIMTEncodedLen
	s.AspTree = decodeLeanIMT(buf[off:off+leanIMTEncodedLen], uint32(s.MaxTreeDepth))
	off += leanIMTEncodedLen

	return s, true
}

// EncodeNullifierRecord serializes rec into its fixed packed layout.
func EncodeNullifierRecord(rec NullifierRecord) []byte {
	buf := make([]byte, NullifierRecordLen)
	putBool(buf[0:1], rec.IsSpent)
	copy(buf[1:33], rec.NullifierHash[:])
	return buf
}

// DecodeNullifierRecord parses the fixed packed layout produced by
// EncodeNullifierRecord.
func DecodeNullifierRecord(buf []byte) (NullifierRecord, bool) {
	if len(buf) != NullifierRecordLen {
		return NullifierRecord{}, false
	}
	return NullifierRecord{
		IsSpent:       buf[0] != 0,
		NullifierHash: field.BytesToDigest(buf[1:33]),
	}, true
}

// EncodeDepositorRecord serializes rec into its fixed packed layout.
func EncodeDepositorRecord(rec DepositorRecord) []byte {
	buf := make([]byte, DepositorRecordLen)
	copy(buf[0:32], rec.Depositor[:])
	copy(buf[32:64], rec.Label[:])
	return buf
}

// DecodeDepositorRecord parses the fixed packed layout produced by
// EncodeDepositorRecord.
func DecodeDepositorRecord(buf []byte) (DepositorRecord, bool) {
	if len(buf) != DepositorRecordLen {
		return DepositorRecord{}, false
	}
	var rec DepositorRecord
	copy(rec.Depositor[:], buf[0:32])
	rec.Label = field.BytesToDigest(buf[32:64])
	return rec, true
}
