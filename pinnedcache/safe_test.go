package pinnedcache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhaowynn/libcache/internal/keyutil"
	"github.com/zhaowynn/libcache/pinnedcache"
)

func newSafe(t *testing.T, capacity int) *pinnedcache.Safe {
	t.Helper()
	s, err := pinnedcache.NewSafe(pinnedcache.Config{
		Capacity:   capacity,
		EntrySize:  entrySize,
		KeySize:    4,
		CompareKey: keyutil.CompareBytes,
		KeyToInt:   keyutil.ToUint32,
	})
	require.NoError(t, err)
	return s
}

func TestSafeConcurrentAddAndLookup(t *testing.T) {
	s := newSafe(t, 64)

	var wg sync.WaitGroup
	for i := uint32(0); i < 64; i++ {
		wg.Add(1)
		go func(i uint32) {
			defer wg.Done()
			_, err := s.Add(key(i), value(uint64(i)))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 64, s.Size())

	for i := uint32(0); i < 64; i++ {
		wg.Add(1)
		go func(i uint32) {
			defer wg.Done()
			e, err := s.Lookup(key(i))
			if assert.NoError(t, err) {
				assert.NoError(t, s.Unlock(e))
			}
		}(i)
	}
	wg.Wait()
}

func TestSafeCapacityAndStats(t *testing.T) {
	s := newSafe(t, 4)
	assert.Equal(t, 4, s.Capacity())

	_, err := s.Add(key(1), value(1))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Size())

	_, err = s.Lookup(key(1))
	require.NoError(t, err)
	stats := s.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
}
