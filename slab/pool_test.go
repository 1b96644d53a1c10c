package slab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireReleaseRoundTrip(t *testing.T) {
	p := New[int](8, 2)
	require.Equal(t, 2, p.Cap())

	a1, buf1, err := p.Acquire()
	require.NoError(t, err)
	require.True(t, a1.Valid())
	copy(buf1, "hello")
	assert.Equal(t, 1, p.Len())

	a2, _, err := p.Acquire()
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())

	_, _, err = p.Acquire()
	assert.ErrorIs(t, err, ErrExhausted)

	require.NoError(t, p.Release(a1))
	assert.Equal(t, 1, p.Len())

	a3, buf3, err := p.Acquire()
	require.NoError(t, err)
	assert.Equal(t, a1, a3, "freed slot should be reused")
	assert.Equal(t, "hello", string(buf3[:5]), "released slot's old bytes are not cleared")

	_ = a2
}

func TestReleaseUnallocatedFails(t *testing.T) {
	p := New[int](4, 1)
	assert.ErrorIs(t, p.Release(Invalid), ErrNotAllocated)
	assert.ErrorIs(t, p.Release(Addr{idx: 5}), ErrNotAllocated)

	a, _, err := p.Acquire()
	require.NoError(t, err)
	require.NoError(t, p.Release(a))
	assert.ErrorIs(t, p.Release(a), ErrNotAllocated, "double release must fail")
}

func TestOwnerRoundTrip(t *testing.T) {
	p := New[string](4, 1)
	a, _, err := p.Acquire()
	require.NoError(t, err)

	_, ok := p.GetOwner(a)
	assert.False(t, ok)

	p.SetOwner(a, "slot-owner")
	owner, ok := p.GetOwner(a)
	require.True(t, ok)
	assert.Equal(t, "slot-owner", owner)

	require.NoError(t, p.Release(a))
	_, ok = p.GetOwner(a)
	assert.False(t, ok, "owner cleared on release")
}

func TestElementSizeRoundedUpToMultipleOf4(t *testing.T) {
	p := New[int](5, 1)
	a, buf, err := p.Acquire()
	require.NoError(t, err)
	assert.Equal(t, 8, len(buf))
	_ = a
}
