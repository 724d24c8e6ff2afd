// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pool

import (
	"github.com/zeebo/blake3"
)

// Fingerprint returns a compact, deterministic digest of s's full record,
// for logging and test diffing -- not a protocol-visible value. Adapted
// from the teacher's dex/pool_manager.go makeStorageKey, which hashes a
// prefix and identifier with blake3 to derive a storage key; here the
// "identifier" is the record's own packed encoding.
func (e *Engine) Fingerprint(s *State) [32]byte {
	h := blake3.New()
	h.Write([]byte("privacypool/fingerprint"))
	h.Write(EncodePoolRecord(s))
	var out [32]byte
	h.Digest().Read(out[:])
	return out
}
