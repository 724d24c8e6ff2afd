// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package proof

import (
	"math/big"

	"github.com/luxfi/crypto/bn256"
)

// Verifier is the pluggable predicate verify(vk, proof, publics) -> bool
// spec.md §9 treats as an opaque, external collaborator. Reimplementing
// pairing internals is out of this engine's core scope; Groth16Verifier
// below is the one concrete, ecosystem-grounded implementation this
// module ships, and the one pool.NewEngine installs when no Verifier is
// configured.
type Verifier interface {
	Verify(vk VerifyingKey, proofA, proofB, proofC []byte, publicInputs []*big.Int) bool
}

// Groth16Verifier checks the canonical Groth16 pairing equation
//
//	e(A, B) · e(-alpha, beta) · e(-vk_x, gamma) · e(-C, delta) = 1
//
// over the BN254/BN256 curve, where vk_x = IC[0] + sum_i publicInputs[i] *
// IC[i+1]. Adapted from the teacher's zk/verifier.go groth16PairingCheck,
// which performs this identical computation with
// github.com/luxfi/crypto/bn256's G1/G2 points and PairingCheck.
type Groth16Verifier struct{}

// Verify implements Verifier.
func (Groth16Verifier) Verify(vk VerifyingKey, proofA, proofB, proofC []byte, publicInputs []*big.Int) bool {
	var a bn256.G1
	if _, err := a.Unmarshal(proofA); err != nil {
		return false
	}
	var b bn256.G2
	if _, err := b.Unmarshal(proofB); err != nil {
		return false
	}
	var c bn256.G1
	if _, err := c.Unmarshal(proofC); err != nil {
		return false
	}

	var alpha bn256.G1
	if _, err := alpha.Unmarshal(vk.Alpha); err != nil {
		return false
	}
	var beta bn256.G2
	if _, err := beta.Unmarshal(vk.Beta); err != nil {
		return false
	}
	var gamma bn256.G2
	if _, err := gamma.Unmarshal(vk.Gamma); err != nil {
		return false
	}
	var delta bn256.G2
	if _, err := delta.Unmarshal(vk.Delta); err != nil {
		return false
	}

	if len(vk.IC) < 1 || len(publicInputs) != len(vk.IC)-1 {
		return false
	}
	ic := make([]*bn256.G1, len(vk.IC))
	for i, raw := range vk.IC {
		ic[i] = new(bn256.G1)
		if _, err := ic[i].Unmarshal(raw); err != nil {
			return false
		}
	}

	vkX := new(bn256.G1)
	vkX.ScalarMult(ic[0], big.NewInt(1))
	for i, input := range publicInputs {
		term := new(bn256.G1)
		term.ScalarMult(ic[i+1], input)
		vkX.Add(vkX, term)
	}

	negAlpha := new(bn256.G1).ScalarMult(&alpha, big.NewInt(-1))
	negVkX := new(bn256.G1).ScalarMult(vkX, big.NewInt(-1))
	negC := new(bn256.G1).ScalarMult(&c, big.NewInt(-1))

	g1Points := []*bn256.G1{&a, negAlpha, negVkX, negC}
	g2Points := []*bn256.G2{&b, &beta, &gamma, &delta}
	return bn256.PairingCheck(g1Points, g2Points)
}
