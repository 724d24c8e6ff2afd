// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pool

import (
	"testing"

	"github.com/luxfi/privacypool/field"
)

func TestRingMembershipWithinCapacity(t *testing.T) {
	var r Ring
	var roots []field.Digest
	for i := 0; i < 64; i++ {
		d := field.LE256(uint64(i + 1))
		roots = append(roots, d)
		r.Push(d)
	}
	for _, d := range roots {
		if !r.IsKnown(d) {
			t.Fatalf("root %x not known within capacity", d)
		}
	}
}

func TestRingEvictsOldestBeyondCapacity(t *testing.T) {
	var r Ring
	var roots []field.Digest
	for i := 0; i < 65; i++ {
		d := field.LE256(uint64(i + 1))
		roots = append(roots, d)
		r.Push(d)
	}
	if r.IsKnown(roots[0]) {
		t.Fatal("oldest root should have been evicted after 65 pushes")
	}
	for _, d := range roots[1:] {
		if !r.IsKnown(d) {
			t.Fatalf("root %x should still be known", d)
		}
	}
}

func TestRingHeadCounts(t *testing.T) {
	var r Ring
	for i := 0; i < 10; i++ {
		r.Push(field.LE256(uint64(i)))
	}
	if r.Head() != 10 {
		t.Fatalf("head = %d, want 10", r.Head())
	}
}
