// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pool

import (
	"encoding/binary"

	"github.com/luxfi/privacypool/field"
	"github.com/luxfi/privacypool/proof"
)

// Instruction discriminants: the first byte of the binary envelope,
// matching the teacher's own first-input-byte opcode dispatch idiom
// (zk/contract.go's OpVerifyGroth16 etc.) generalized to this protocol's
// five transitions.
const (
	DiscInitializePool byte = 0
	DiscDeposit        byte = 1
	DiscWithdraw       byte = 2
	DiscRagequit       byte = 3
	DiscWindDown       byte = 4
)

// InitializePoolArgs decodes discriminant 0.
type InitializePoolArgs struct {
	EntrypointAuthority Pubkey
	MaxTreeDepth        uint8
	AssetMint           Pubkey
}

// DepositArgs decodes discriminant 1.
type DepositArgs struct {
	Depositor     Pubkey
	Value         uint64
	Precommitment field.Digest
}

// WithdrawArgs decodes discriminant 2.
type WithdrawArgs struct {
	Withdrawal WithdrawalData
	Proof      proof.WithdrawProof
}

// RagequitArgs decodes discriminant 3.
type RagequitArgs struct {
	Proof proof.RagequitProof
}

// WindDownArgs decodes discriminant 4 (no body).
type WindDownArgs struct{}

// WithdrawalData names the intended recipient and any auxiliary routing
// data a withdraw context hash binds to.
type WithdrawalData struct {
	Processor Pubkey
	Data      []byte
}

// AsFieldWithdrawal converts w into the form field.Context expects.
func (w WithdrawalData) AsFieldWithdrawal() field.Withdrawal {
	return field.Withdrawal{Processor: field.Digest(w.Processor), Data: w.Data}
}

// DecodeInstruction parses a binary instruction envelope and returns one
// of *InitializePoolArgs, *DepositArgs, *WithdrawArgs, *RagequitArgs, or
// *WindDownArgs. Any malformed or truncated envelope (including trailing
// bytes beyond a fixed-size body) is ErrInvalidInstructionData.
func DecodeInstruction(data []byte) (interface{}, error) {
	if len(data) < 1 {
		return nil, ErrInvalidInstructionData
	}
	disc, body := data[0], data[1:]

	switch disc {
	case DiscInitializePool:
		return decodeInitializePool(body)
	case DiscDeposit:
		return decodeDeposit(body)
	case DiscWithdraw:
		return decodeWithdraw(body)
	case DiscRagequit:
		return decodeRagequit(body)
	case DiscWindDown:
		if len(body) != 0 {
			return nil, ErrInvalidInstructionData
		}
		return &WindDownArgs{}, nil
	default:
		return nil, ErrInvalidInstructionData
	}
}

func decodeInitializePool(body []byte) (*InitializePoolArgs, error) {
	const want = 32 + 1 + 32
	if len(body) != want {
		return nil, ErrInvalidInstructionData
	}
	args := &InitializePoolArgs{}
	copy(args.EntrypointAuthority[:], body[0:32])
	args.MaxTreeDepth = body[32]
	copy(args.AssetMint[:], body[33:65])
	return args, nil
}

func decodeDeposit(body []byte) (*DepositArgs, error) {
	const want = 32 + 8 + 32
	if len(body) != want {
		return nil, ErrInvalidInstructionData
	}
	args := &DepositArgs{}
	copy(args.Depositor[:], body[0:32])
	args.Value = binary.LittleEndian.Uint64(body[32:40])
	args.Precommitment = field.BytesToDigest(body[40:72])
	return args, nil
}

// proofBodyLen is the fixed size of A(64) || B(128) || C(64).
const proofBodyLen = 64 + 128 + 64

func decodeWithdraw(body []byte) (*WithdrawArgs, error) {
	if len(body) < 32+4 {
		return nil, ErrInvalidInstructionData
	}
	var processor Pubkey
	copy(processor[:], body[0:32])
	dataLen := binary.LittleEndian.Uint32(body[32:36])

	rest := body[36:]
	if uint32(len(rest)) < dataLen {
		return nil, ErrInvalidInstructionData
	}
	wdata := rest[:dataLen]
	rest = rest[dataLen:]

	const numSignals = 8
	want := proofBodyLen + numSignals*32
	if len(rest) != want {
		return nil, ErrInvalidInstructionData
	}

	p, err := decodeProofBody(rest, numSignals)
	if err != nil {
		return nil, err
	}

	return &WithdrawArgs{
		Withdrawal: WithdrawalData{Processor: processor, Data: append([]byte(nil), wdata...)},
		Proof: proof.WithdrawProof{
			A: p.a, B: p.b, C: p.c,
			PublicSignals: [8]field.Digest{
				p.signals[0], p.signals[1], p.signals[2], p.signals[3],
				p.signals[4], p.signals[5], p.signals[6], p.signals[7],
			},
		},
	}, nil
}

func decodeRagequit(body []byte) (*RagequitArgs, error) {
	const numSignals = 4
	want := proofBodyLen + numSignals*32
	if len(body) != want {
		return nil, ErrInvalidInstructionData
	}
	p, err := decodeProofBody(body, numSignals)
	if err != nil {
		return nil, err
	}
	return &RagequitArgs{
		Proof: proof.RagequitProof{
			A: p.a, B: p.b, C: p.c,
			PublicSignals: [4]field.Digest{p.signals[0], p.signals[1], p.signals[2], p.signals[3]},
		},
	}, nil
}

type decodedProofBody struct {
	a       [64]byte
	b       [128]byte
	c       [64]byte
	signals []field.Digest
}

func decodeProofBody(body []byte, numSignals int) (decodedProofBody, error) {
	want := proofBodyLen + numSignals*32
	if len(body) != want {
		return decodedProofBody{}, ErrInvalidInstructionData
	}
	var out decodedProofBody
	copy(out.a[:], body[0:64])
	copy(out.b[:], body[64:192])
	copy(out.c[:], body[192:256])

	signals := make([]field.Digest, numSignals)
	off := 256
	for i := 0; i < numSignals; i++ {
		signals[i] = field.BytesToDigest(body[off : off+32])
		off += 32
	}
	out.signals = signals
	return out, nil
}
