// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pool

import (
	"math/big"
	"testing"

	"github.com/luxfi/privacypool/field"
	"github.com/luxfi/privacypool/proof"
)

// fakeVerifier lets engine tests exercise every precondition in the
// transition processor without depending on a real Groth16 prover; the
// spec itself treats verification as an opaque, pluggable predicate
// (§9), so these tests configure the predicate's answer directly.
type fakeVerifier struct{ result bool }

func (f fakeVerifier) Verify(proof.VerifyingKey, []byte, []byte, []byte, []*big.Int) bool {
	return f.result
}

func depositValid(depth uint8) (*Engine, *State, NullifierStore, DepositorStore, Pubkey, Pubkey) {
	eng, _ := NewEngine(Config{Verifier: fakeVerifier{result: true}})
	s := &State{}
	caller := Pubkey{1}
	entrypoint := Pubkey{2}
	mint := Pubkey{3}
	if err := eng.InitializePool(s, true, caller, entrypoint, depth, mint); err != nil {
		panic(err)
	}
	return eng, s, NewMemNullifierStore(), NewMemDepositorStore(), caller, entrypoint
}

func dummyProofBytes() ([64]byte, [128]byte, [64]byte) {
	var a [64]byte
	var b [128]byte
	var c [64]byte
	return a, b, c
}

func buildWithdrawProof(stateRoot, aspRoot field.Digest, stateDepth, aspDepth uint8, ctx, newCommit, existingNullifier field.Digest, value uint64) proof.WithdrawProof {
	a, b, c := dummyProofBytes()
	var signals [8]field.Digest
	signals[0] = field.LE256(value)
	signals[1] = stateRoot
	signals[2] = field.LE256(uint64(stateDepth))
	signals[3] = aspRoot
	signals[4] = field.LE256(uint64(aspDepth))
	signals[5] = ctx
	signals[6] = newCommit
	signals[7] = existingNullifier
	return proof.WithdrawProof{A: a, B: b, C: c, PublicSignals: signals}
}

func TestHappyPathDepositWithdraw(t *testing.T) {
	eng, s, nullStore, depStore, depositor, _ := depositValid(20)

	precommitment := field.BytesToDigest([]byte{7, 7, 7})
	if err := eng.Deposit(s, depStore, true, depositor, depositor, 1000, precommitment); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if s.Nonce != 1 {
		t.Fatalf("nonce = %d, want 1", s.Nonce)
	}
	wantLabel := field.Label(s.Scope, 1)
	wantCommitment := field.Commitment(1000, wantLabel, precommitment)
	if s.StateTree.Root() != wantCommitment {
		t.Fatalf("state root = %x, want commitment %x", s.StateTree.Root(), wantCommitment)
	}
	if !s.IsKnownRoot(wantCommitment) {
		t.Fatal("commitment root not in rolling window")
	}

	processor := Pubkey{9}
	withdrawal := WithdrawalData{Processor: processor}
	ctx := field.Context(withdrawal.AsFieldWithdrawal(), s.Scope)
	nullifier := field.BytesToDigest([]byte{1, 2, 3})
	newCommit := field.BytesToDigest([]byte{4, 5, 6})

	p := buildWithdrawProof(s.StateTree.Root(), s.AspTree.Root(), uint8(s.StateTree.Depth()), uint8(s.AspTree.Depth()), ctx, newCommit, nullifier, 1000)

	withdrawn, err := eng.Withdraw(s, nullStore, true, processor, withdrawal, p)
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if withdrawn.Uint64() != 1000 {
		t.Fatalf("withdrawn = %s, want 1000", withdrawn.String())
	}
	if rec, ok := nullStore.Get(nullifier); !ok || !rec.IsSpent {
		t.Fatal("nullifier not recorded spent")
	}
}

func TestThreeDeposits(t *testing.T) {
	eng, s, _, depStore, depositor, _ := depositValid(20)
	for i, v := range []uint64{10, 20, 30} {
		pre := field.BytesToDigest([]byte{byte(i + 1)})
		if err := eng.Deposit(s, depStore, true, depositor, depositor, v, pre); err != nil {
			t.Fatalf("deposit %d: %v", i, err)
		}
	}
	if s.Nonce != 3 {
		t.Fatalf("nonce = %d, want 3", s.Nonce)
	}
	if s.StateTree.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", s.StateTree.Depth())
	}
}

func TestWithdrawContextMismatch(t *testing.T) {
	eng, s, nullStore, depStore, depositor, _ := depositValid(20)
	pre := field.BytesToDigest([]byte{1})
	if err := eng.Deposit(s, depStore, true, depositor, depositor, 5, pre); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	processor := Pubkey{9}
	withdrawal := WithdrawalData{Processor: processor}
	badCtx := field.BytesToDigest([]byte{0xff})
	p := buildWithdrawProof(s.StateTree.Root(), s.AspTree.Root(), uint8(s.StateTree.Depth()), uint8(s.AspTree.Depth()), badCtx, field.Zero, field.Zero, 5)

	before := EncodePoolRecord(s)
	_, err := eng.Withdraw(s, nullStore, true, processor, withdrawal, p)
	if err != ErrContextMismatch {
		t.Fatalf("err = %v, want ErrContextMismatch", err)
	}
	if string(before) != string(EncodePoolRecord(s)) {
		t.Fatal("state mutated on failed withdraw")
	}
}

func TestWithdrawStaleRootBeyondWindow(t *testing.T) {
	eng, s, nullStore, depStore, depositor, _ := depositValid(20)

	var firstRoot field.Digest
	for i := 0; i < 65; i++ {
		pre := field.LE256(uint64(i + 1))
		if err := eng.Deposit(s, depStore, true, depositor, depositor, 1, pre); err != nil {
			t.Fatalf("deposit %d: %v", i, err)
		}
		if i == 0 {
			firstRoot = s.StateTree.Root()
		}
	}

	processor := Pubkey{9}
	withdrawal := WithdrawalData{Processor: processor}
	ctx := field.Context(withdrawal.AsFieldWithdrawal(), s.Scope)
	p := buildWithdrawProof(firstRoot, s.AspTree.Root(), uint8(s.StateTree.Depth()), uint8(s.AspTree.Depth()), ctx, field.Zero, field.Zero, 1)

	_, err := eng.Withdraw(s, nullStore, true, processor, withdrawal, p)
	if err != ErrUnknownRoot {
		t.Fatalf("err = %v, want ErrUnknownRoot", err)
	}
}

func TestDoubleSpend(t *testing.T) {
	eng, s, nullStore, depStore, depositor, _ := depositValid(20)
	pre := field.BytesToDigest([]byte{1})
	if err := eng.Deposit(s, depStore, true, depositor, depositor, 5, pre); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	processor := Pubkey{9}
	withdrawal := WithdrawalData{Processor: processor}
	ctx := field.Context(withdrawal.AsFieldWithdrawal(), s.Scope)
	nullifier := field.BytesToDigest([]byte{1, 2, 3})
	p := buildWithdrawProof(s.StateTree.Root(), s.AspTree.Root(), uint8(s.StateTree.Depth()), uint8(s.AspTree.Depth()), ctx, field.BytesToDigest([]byte{9}), nullifier, 5)

	if _, err := eng.Withdraw(s, nullStore, true, processor, withdrawal, p); err != nil {
		t.Fatalf("first withdraw: %v", err)
	}

	p2 := buildWithdrawProof(s.StateTree.Root(), s.AspTree.Root(), uint8(s.StateTree.Depth()), uint8(s.AspTree.Depth()), ctx, field.BytesToDigest([]byte{9}), nullifier, 5)
	if _, err := eng.Withdraw(s, nullStore, true, processor, withdrawal, p2); err != ErrNullifierSpent {
		t.Fatalf("err = %v, want ErrNullifierSpent", err)
	}
}

func TestWindDownThenDeposit(t *testing.T) {
	eng, s, nullStore, depStore, _, entrypoint := depositValid(20)
	depositor := Pubkey{4}

	if err := eng.WindDown(s, true, entrypoint); err != nil {
		t.Fatalf("WindDown: %v", err)
	}
	if !s.Dead {
		t.Fatal("pool not marked dead")
	}

	if err := eng.Deposit(s, depStore, true, depositor, depositor, 1, field.Zero); err != ErrPoolDead {
		t.Fatalf("err = %v, want ErrPoolDead", err)
	}

	if err := eng.WindDown(s, true, entrypoint); err != ErrAlreadyDead {
		t.Fatalf("err = %v, want ErrAlreadyDead", err)
	}

	// Withdraw must still succeed after dead.
	processor := Pubkey{9}
	withdrawal := WithdrawalData{Processor: processor}
	ctx := field.Context(withdrawal.AsFieldWithdrawal(), s.Scope)
	p := buildWithdrawProof(s.StateTree.Root(), s.AspTree.Root(), uint8(s.StateTree.Depth()), uint8(s.AspTree.Depth()), ctx, field.BytesToDigest([]byte{1}), field.BytesToDigest([]byte{2}), 0)
	if _, err := eng.Withdraw(s, nullStore, true, processor, withdrawal, p); err != nil {
		t.Fatalf("withdraw after wind-down: %v", err)
	}
}

func TestRagequitWrongParty(t *testing.T) {
	eng, s, nullStore, depStore, depositorA, _ := depositValid(20)
	precommitment := field.BytesToDigest([]byte{5})
	if err := eng.Deposit(s, depStore, true, depositorA, depositorA, 5, precommitment); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	label := field.Label(s.Scope, 1)

	depositorB := Pubkey{8}
	rqBad := proof.RagequitProof{PublicSignals: [4]field.Digest{field.LE256(5), label, field.Zero, field.BytesToDigest([]byte{1})}}
	if err := eng.Ragequit(s, nullStore, depStore, true, depositorB, rqBad); err != ErrNotOriginalDepositor {
		t.Fatalf("err = %v, want ErrNotOriginalDepositor", err)
	}

	rqGood := proof.RagequitProof{PublicSignals: [4]field.Digest{field.LE256(5), label, field.Zero, field.BytesToDigest([]byte{1})}}
	if err := eng.Ragequit(s, nullStore, depStore, true, depositorA, rqGood); err != nil {
		t.Fatalf("ragequit by original depositor: %v", err)
	}
}

func TestTreeFullAtMaxDepthTwo(t *testing.T) {
	eng, s, _, depStore, depositor, _ := depositValid(2)
	for i := 0; i < 4; i++ {
		pre := field.LE256(uint64(i + 1))
		if err := eng.Deposit(s, depStore, true, depositor, depositor, 1, pre); err != nil {
			t.Fatalf("deposit %d: %v", i, err)
		}
	}
	before := EncodePoolRecord(s)
	pre := field.LE256(5)
	if err := eng.Deposit(s, depStore, true, depositor, depositor, 1, pre); err != ErrTreeFull {
		t.Fatalf("err = %v, want ErrTreeFull", err)
	}
	if string(before) != string(EncodePoolRecord(s)) {
		t.Fatal("state mutated on TreeFull")
	}
}
