// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package proof implements the pluggable Groth16 verification predicate
// spec.md treats as an opaque black box (`verify(vk, proof, publics) ->
// bool`), plus the withdraw / ragequit proof envelopes carrying the
// public signals the pool engine inspects before delegating to it.
//
// The predicate itself is grounded in the teacher's zk/verifier.go
// groth16PairingCheck, which performs a real BN254 pairing check via
// github.com/luxfi/crypto/bn256 rather than stubbing verification out;
// this package adapts that pairing logic to the verifying-key and
// public-input shapes this protocol's withdraw/ragequit circuits use.
package proof

import "github.com/luxfi/privacypool/field"

// VerifyingKey is the opaque Groth16 verification key for one circuit
// (withdraw or ragequit). Its elements are uncompressed G1/G2 point
// encodings, exactly as the circuit's trusted setup emits them; the
// engine never inspects their structure beyond passing them to Verify.
type VerifyingKey struct {
	Alpha []byte   // G1
	Beta  []byte   // G2
	Gamma []byte   // G2
	Delta []byte   // G2
	IC    [][]byte // G1, one per public input plus one constant term
}

// WithdrawProof is the Groth16 proof plus public signals for a withdraw
// transition. Field accessors mirror the public-signal layout spec §4.E.3
// fixes: publicSignals[0..7] = withdrawnValue, stateRoot, stateTreeDepth,
// aspRoot, aspTreeDepth, context, newCommitmentHash, existingNullifierHash.
type WithdrawProof struct {
	A             [64]byte
	B             [128]byte
	C             [64]byte
	PublicSignals [8]field.Digest
}

// WithdrawnValue returns public signal 0's low 8 bytes as a u64.
func (p WithdrawProof) WithdrawnValue() uint64 {
	return le64(p.PublicSignals[0])
}

// StateRoot returns public signal 1.
func (p WithdrawProof) StateRoot() field.Digest { return p.PublicSignals[1] }

// StateTreeDepth returns public signal 2's low byte.
func (p WithdrawProof) StateTreeDepth() uint8 { return p.PublicSignals[2][0] }

// AspRoot returns public signal 3.
func (p WithdrawProof) AspRoot() field.Digest { return p.PublicSignals[3] }

// AspTreeDepth returns public signal 4's low byte.
func (p WithdrawProof) AspTreeDepth() uint8 { return p.PublicSignals[4][0] }

// Context returns public signal 5.
func (p WithdrawProof) Context() field.Digest { return p.PublicSignals[5] }

// NewCommitmentHash returns public signal 6.
func (p WithdrawProof) NewCommitmentHash() field.Digest { return p.PublicSignals[6] }

// ExistingNullifierHash returns public signal 7.
func (p WithdrawProof) ExistingNullifierHash() field.Digest { return p.PublicSignals[7] }

// RagequitProof is the Groth16 proof plus public signals for a ragequit
// transition: publicSignals[0..3] = value, label, commitmentHash,
// nullifierHash.
type RagequitProof struct {
	A             [64]byte
	B             [128]byte
	C             [64]byte
	PublicSignals [4]field.Digest
}

// Value returns public signal 0's low 8 bytes as a u64.
func (p RagequitProof) Value() uint64 { return le64(p.PublicSignals[0]) }

// Label returns public signal 1.
func (p RagequitProof) Label() field.Digest { return p.PublicSignals[1] }

// CommitmentHash returns public signal 2.
func (p RagequitProof) CommitmentHash() field.Digest { return p.PublicSignals[2] }

// NullifierHash returns public signal 3.
func (p RagequitProof) NullifierHash() field.Digest { return p.PublicSignals[3] }

func le64(d field.Digest) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(d[i])
	}
	return v
}
