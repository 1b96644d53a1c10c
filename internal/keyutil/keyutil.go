// Package keyutil supplies ready-made CompareKey/KeyToInt pairs for
// embedders whose keys are plain fixed-size byte slices and who would
// otherwise hand-roll the same bytes.Compare/xxhash pairing themselves.
package keyutil

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// CompareBytes is a ready-made CompareKeyFunc: total byte-lexicographic
// order, matching bytes.Compare.
func CompareBytes(a, b []byte) int {
	return bytes.Compare(a, b)
}

// ToUint32 is a ready-made KeyToIntFunc built on xxhash. It is not
// required to be collision-free; pinnedcache's Fibonacci mixing only
// needs a reasonably spread-out projection.
func ToUint32(key []byte) uint32 {
	return uint32(xxhash.Sum64(key))
}
