// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package merkle

import "errors"

var (
	// ErrTreeFull is returned when an insert would grow the tree beyond
	// its capacity depth (size == 2^capDepth, where capDepth is the value
	// given to NewLeanIMT, or MaxDepth for the zero-value tree).
	ErrTreeFull = errors.New("merkle: tree full")

	// ErrDuplicateLeaf is returned by InsertUnique when the leaf being
	// inserted already exists in the tree.
	ErrDuplicateLeaf = errors.New("merkle: duplicate leaf")
)
