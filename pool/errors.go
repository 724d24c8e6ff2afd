// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pool

import "errors"

// Error taxonomy for the transition processor. Every transition aborts
// with zero state change on any of these; the host translates them to its
// own user-visible error surface.
var (
	ErrInvalidInstructionData = errors.New("pool: invalid or truncated instruction envelope")
	ErrNotInitialized         = errors.New("pool: record not initialized")
	ErrAlreadyInitialized     = errors.New("pool: record already initialized")
	ErrMissingSignature       = errors.New("pool: required signer absent")
	ErrInvalidArgument        = errors.New("pool: invalid argument")
	ErrPoolDead               = errors.New("pool: deposit attempted after wind-down")
	ErrTreeFull               = errors.New("pool: tree at max capacity")
	ErrAlreadyDead            = errors.New("pool: pool already wound down")
	ErrContextMismatch        = errors.New("pool: withdrawal context mismatch")
	ErrInvalidDepth           = errors.New("pool: proof-declared depth exceeds max tree depth")
	ErrUnknownRoot            = errors.New("pool: state root not in rolling window")
	ErrNullifierSpent         = errors.New("pool: nullifier already spent")
	ErrInvalidProof           = errors.New("pool: groth16 verification failed")
	ErrNotOriginalDepositor   = errors.New("pool: ragequit signer is not the original depositor")
	ErrInvalidProcessor       = errors.New("pool: signer does not match withdrawal processor")
)
