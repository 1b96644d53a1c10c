package keyutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareBytes(t *testing.T) {
	assert.Equal(t, 0, CompareBytes([]byte("abcd"), []byte("abcd")))
	assert.Less(t, CompareBytes([]byte("abcc"), []byte("abcd")), 0)
	assert.Greater(t, CompareBytes([]byte("abce"), []byte("abcd")), 0)
}

func TestToUint32Deterministic(t *testing.T) {
	k := []byte("some-fixed-size-key")
	assert.Equal(t, ToUint32(k), ToUint32(append([]byte{}, k...)))
}

func TestToUint32DiffersAcrossKeys(t *testing.T) {
	assert.NotEqual(t, ToUint32([]byte("key-a")), ToUint32([]byte("key-b")))
}
