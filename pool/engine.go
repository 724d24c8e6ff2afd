// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pool

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/luxfi/log"
	"github.com/luxfi/privacypool/field"
	"github.com/luxfi/privacypool/merkle"
	"github.com/luxfi/privacypool/proof"
)

// Config configures one Engine instance. It re-expresses the shape of the
// teacher's zk/module.go configurator pattern (a Config value plus a
// one-time Configure step) with what this repo can actually import: the
// teacher's own modules.Module / precompileconfig.Config types live in
// sibling packages of the retrieval pack that are not separately
// fetchable, so NewEngine plays the role zk/module.go's
// configurator.MakeConfig / Configure pair plays there.
type Config struct {
	// WithdrawVK and RagequitVK are the Groth16 verifying keys this
	// engine's proofs are checked against. The engine treats them as
	// opaque blobs (spec §9).
	WithdrawVK proof.VerifyingKey
	RagequitVK proof.VerifyingKey
	Verifier   proof.Verifier
	Log        log.Logger
}

// Engine is the transition processor (spec §4.E / component F). It holds
// no pool state of its own -- every method takes the *State to validate
// and mutate, per spec §3's "Ownership" (the host owns storage and hands
// the engine exclusive mutable access for the duration of one
// transition).
type Engine struct {
	cfg Config
}

// NewEngine constructs an Engine, performing the one-time structured log
// line the teacher's zk/module.go configurator emits at setup. The engine
// packages otherwise stay logging-free: spec §5 makes every transition a
// synchronous, side-effect-free-on-failure state machine, so there is no
// hot-path logging to wire in.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Verifier == nil {
		cfg.Verifier = proof.Groth16Verifier{}
	}
	if cfg.Log != nil {
		cfg.Log.Info("privacypool engine configured",
			"withdrawVKLen", len(cfg.WithdrawVK.IC),
			"ragequitVKLen", len(cfg.RagequitVK.IC),
		)
	}
	return &Engine{cfg: cfg}, nil
}

// InitializePool implements spec §4.E.1. caller must equal the signer
// that authorized this call; the host is trusted to have already checked
// the signature itself (spec §5: the engine has no internal notion of a
// transaction, only of the totally-ordered effects a host hands it).
func (e *Engine) InitializePool(s *State, signed bool, caller Pubkey, entrypointAuthority Pubkey, maxTreeDepth uint8, assetMint Pubkey) error {
	if !signed {
		return ErrMissingSignature
	}
	if s.IsInitialized {
		return ErrAlreadyInitialized
	}
	if maxTreeDepth < 1 || maxTreeDepth > merkle.MaxDepth {
		return ErrInvalidArgument
	}
	*s = *NewState(caller, entrypointAuthority, assetMint, maxTreeDepth)
	return nil
}

// Deposit implements spec §4.E.2. nullifiers are not produced on
// deposit; depStore records the depositor behind the derived label so a
// later ragequit can authorize against it.
func (e *Engine) Deposit(s *State, depStore DepositorStore, signed bool, signer Pubkey, depositor Pubkey, value uint64, precommitment field.Digest) error {
	if !signed {
		return ErrMissingSignature
	}
	if signer != depositor {
		return ErrInvalidArgument
	}
	if s.Dead {
		return ErrPoolDead
	}

	n := s.Nonce + 1
	lbl := field.Label(s.Scope, n)
	c := field.Commitment(value, lbl, precommitment)

	// Validate both tree insertions before mutating anything, so a
	// TreeFull on either leaves the pool record bit-identical to before
	// (spec §5: no partial effects).
	if err := s.StateTree.Precheck(c, true); err != nil {
		return translateTreeErr(err)
	}
	if err := s.AspTree.Precheck(lbl, true); err != nil {
		return translateTreeErr(err)
	}

	s.IncrementNonce()

	root, err := s.StateTree.InsertUnique(c)
	if err != nil {
		return translateTreeErr(err)
	}
	s.Roots.Push(root)

	if _, err := s.AspTree.InsertUnique(lbl); err != nil {
		return translateTreeErr(err)
	}

	return depStore.Put(DepositorRecord{Depositor: depositor, Label: lbl})
}

// Withdraw implements spec §4.E.3, checking preconditions strictly in the
// order the spec lists them so the first violated one is the error
// reported. The withdrawn amount is returned as a *uint256.Int, the
// word-sized integer type EVM-style hosts (matching the teacher's own
// StateDB.AddBalance(addr, *uint256.Int) convention in the dex package
// this repo adapts its storage idioms from) expect when crediting the
// out-of-band asset transfer spec §4.E.3 leaves to the host.
func (e *Engine) Withdraw(s *State, nullStore NullifierStore, signed bool, signer Pubkey, withdrawal WithdrawalData, p proof.WithdrawProof) (*uint256.Int, error) {
	if !signed {
		return nil, ErrMissingSignature
	}
	if signer != withdrawal.Processor {
		return nil, ErrInvalidProcessor
	}

	wantContext := field.Context(withdrawal.AsFieldWithdrawal(), s.Scope)
	if !wantContext.Equal(p.Context()) {
		return nil, ErrContextMismatch
	}

	if uint32(p.StateTreeDepth()) > uint32(s.MaxTreeDepth) || uint32(p.AspTreeDepth()) > uint32(s.MaxTreeDepth) {
		return nil, ErrInvalidDepth
	}

	if !s.IsKnownRoot(p.StateRoot()) {
		return nil, ErrUnknownRoot
	}

	nullifierHash := p.ExistingNullifierHash()
	if _, exists := nullStore.Get(nullifierHash); exists {
		return nil, ErrNullifierSpent
	}

	if !e.verifyWithdraw(p) {
		return nil, ErrInvalidProof
	}

	// Validate the state-tree insertion before recording the nullifier, so
	// a TreeFull leaves no partial effect behind.
	if err := s.StateTree.Precheck(p.NewCommitmentHash(), false); err != nil {
		return nil, translateTreeErr(err)
	}

	if err := nullStore.Put(NullifierRecord{IsSpent: true, NullifierHash: nullifierHash}); err != nil {
		return nil, err
	}

	root, err := s.StateTree.Insert(p.NewCommitmentHash())
	if err != nil {
		return nil, translateTreeErr(err)
	}
	s.Roots.Push(root)

	return uint256.NewInt(p.WithdrawnValue()), nil
}

// Ragequit implements spec §4.E.4.
func (e *Engine) Ragequit(s *State, nullStore NullifierStore, depStore DepositorStore, signed bool, signer Pubkey, p proof.RagequitProof) error {
	if !signed {
		return ErrMissingSignature
	}

	rec, ok := depStore.Get(p.Label())
	if !ok || rec.Depositor != signer {
		return ErrNotOriginalDepositor
	}

	nullifierHash := p.NullifierHash()
	if _, exists := nullStore.Get(nullifierHash); exists {
		return ErrNullifierSpent
	}

	if !e.verifyRagequit(p) {
		return ErrInvalidProof
	}

	return nullStore.Put(NullifierRecord{IsSpent: true, NullifierHash: nullifierHash})
}

// WindDown implements spec §4.E.5.
func (e *Engine) WindDown(s *State, signed bool, signer Pubkey) error {
	if !signed || signer != s.EntrypointAuthority {
		return ErrMissingSignature
	}
	if s.Dead {
		return ErrAlreadyDead
	}
	s.Dead = true
	return nil
}

func (e *Engine) verifyWithdraw(p proof.WithdrawProof) bool {
	publics := make([]*big.Int, len(p.PublicSignals))
	for i, d := range p.PublicSignals {
		publics[i] = digestToBigInt(d)
	}
	return e.cfg.Verifier.Verify(e.cfg.WithdrawVK, p.A[:], p.B[:], p.C[:], publics)
}

func (e *Engine) verifyRagequit(p proof.RagequitProof) bool {
	publics := make([]*big.Int, len(p.PublicSignals))
	for i, d := range p.PublicSignals {
		publics[i] = digestToBigInt(d)
	}
	return e.cfg.Verifier.Verify(e.cfg.RagequitVK, p.A[:], p.B[:], p.C[:], publics)
}

// digestToBigInt interprets d as the protocol's canonical little-endian
// digest and returns the corresponding non-negative integer, matching the
// big-endian-native convention math/big.Int.SetBytes expects.
func digestToBigInt(d field.Digest) *big.Int {
	be := make([]byte, 32)
	for i := 0; i < 32; i++ {
		be[i] = d[31-i]
	}
	return new(big.Int).SetBytes(be)
}

func translateTreeErr(err error) error {
	switch err {
	case merkle.ErrTreeFull:
		return ErrTreeFull
	case merkle.ErrDuplicateLeaf:
		return ErrInvalidArgument
	default:
		return err
	}
}
