// Package pinnedcache implements a fixed-capacity, pinning, LRU-evicting
// associative cache. It composes three coupled structures — an LRU
// list, a hash index, and a slab pool — so that lookup, insert, delete
// and eviction are all O(1) (eviction's reverse scan aside, see Cache's
// doc comment).
package pinnedcache

import (
	"fmt"

	"github.com/zhaowynn/libcache/index"
	"github.com/zhaowynn/libcache/list"
	"github.com/zhaowynn/libcache/log"
	"github.com/zhaowynn/libcache/slab"
)

// CompareKeyFunc orders two keys; only cmp(a,b)==0 is load-bearing.
type CompareKeyFunc = index.CompareFunc

// KeyToIntFunc projects a key to a uint32 for hashing.
type KeyToIntFunc = index.ToIntFunc

// FreeEntryFunc is invoked once per resident entry during Destroy,
// before its slot is released. It may be nil.
type FreeEntryFunc func(key, payload []byte)

// Config holds everything needed to construct a Cache.
type Config struct {
	// Capacity is the maximum number of resident entries.
	Capacity int
	// EntrySize is the fixed size, in bytes, of every payload.
	EntrySize int
	// KeySize is the fixed size, in bytes, of every key.
	KeySize int
	// CompareKey and KeyToInt are the embedder-supplied key comparison
	// and hashing operations. Both are required.
	CompareKey CompareKeyFunc
	KeyToInt   KeyToIntFunc
	// FreeEntry is optional; see Destroy.
	FreeEntry FreeEntryFunc
	// Logger is optional; a no-op logger is used if nil.
	Logger log.Logger
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidArgument)
	case c.EntrySize <= 0:
		return fmt.Errorf("%w: entry size must be positive", ErrInvalidArgument)
	case c.KeySize <= 0:
		return fmt.Errorf("%w: key size must be positive", ErrInvalidArgument)
	case c.CompareKey == nil:
		return fmt.Errorf("%w: CompareKey is required", ErrInvalidArgument)
	case c.KeyToInt == nil:
		return fmt.Errorf("%w: KeyToInt is required", ErrInvalidArgument)
	}
	return nil
}

// slotState is the cache's bookkeeping record for one resident entry,
// pairing a pool slot, a hash entry, a key buffer and a pin-count.
type slotState struct {
	key       []byte
	hashEntry *index.Entry[*slotState]
	addr      slab.Addr
	entry     *Entry
	pins      int
	node      *list.Node[*slotState]
}

// Entry is a stable handle to a resident payload, returned by Lookup and
// Add. It remains valid at least until a matching Unlock, and at most
// until the next non-pinned operation (delete or eviction) on the same
// slot.
type Entry struct {
	addr    slab.Addr
	payload []byte
}

// Bytes returns the entry's payload region. Writes through this slice
// are visible to subsequent LookupInto/Lookup calls for the same key,
// for as long as the entry remains resident.
func (e *Entry) Bytes() []byte { return e.payload }

// Stats is a point-in-time snapshot of cache activity counters. It is
// ambient diagnostics infrastructure, separate from the pinning and
// eviction contract itself.
type Stats struct {
	Hits             uint64
	Misses           uint64
	Evictions        uint64
	LockedRejections uint64
}

// Cache is a fixed-capacity, pinning, LRU-evicting associative cache.
//
// Cache is not safe for concurrent use — see Safe for a synchronized
// wrapper. Every exported method runs to completion synchronously.
// Lookup, LookupInto, Add (when below capacity), DeleteByKey,
// DeleteByEntry and Unlock are all O(1); Add, when the cache is full,
// reverse-scans the LRU for the first unpinned slot, which is O(1) when
// the tail is unpinned and O(P+1) in the worst case, P being the number
// of pinned entries at the tail.
type Cache struct {
	cfg   Config
	pool  *slab.Pool[*slotState]
	index *index.Index[*slotState]
	lru   *list.List[*slotState]
	log   log.Logger
	stats Stats
}

// New constructs a Cache per cfg.
func New(cfg Config) (*Cache, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	l := cfg.Logger
	if l == nil {
		l = log.Nop()
	}
	return &Cache{
		cfg:   cfg,
		pool:  slab.New[*slotState](cfg.EntrySize, cfg.Capacity),
		index: index.New[*slotState](cfg.Capacity, cfg.KeySize, cfg.CompareKey, cfg.KeyToInt),
		lru:   list.NewList[*slotState](),
		log:   l,
	}, nil
}

// Capacity returns the cache's fixed maximum entry count.
func (c *Cache) Capacity() int { return c.cfg.Capacity }

// Size returns the number of currently resident entries.
func (c *Cache) Size() int { return c.lru.Size() }

// Stats returns a snapshot of the cache's activity counters.
func (c *Cache) Stats() Stats { return c.stats }

// Lookup finds key, promotes it to the LRU front, pins it once, and
// returns a stable Entry; call Unlock when the caller is done with it.
// A miss returns ErrNotFound.
func (c *Cache) Lookup(key []byte) (*Entry, error) {
	if key == nil {
		return nil, ErrInvalidArgument
	}
	s := c.find(key)
	if s == nil {
		c.stats.Misses++
		return nil, ErrNotFound
	}
	c.promote(s)
	s.pins++
	c.stats.Hits++
	c.log.Debugf("lookup hit, entry now pinned %d time(s)", s.pins)
	return s.entry, nil
}

// LookupInto finds key, promotes it to the LRU front, and copies its
// payload into dst without changing its pin-count. dst must be at least
// EntrySize bytes. A miss returns ErrNotFound and leaves dst untouched.
func (c *Cache) LookupInto(key, dst []byte) error {
	if key == nil || dst == nil {
		return ErrInvalidArgument
	}
	s := c.find(key)
	if s == nil {
		c.stats.Misses++
		return ErrNotFound
	}
	c.promote(s)
	copy(dst, s.entry.payload)
	c.stats.Hits++
	return nil
}

func (c *Cache) find(key []byte) *slotState {
	e := c.index.Find(key)
	if e == nil {
		return nil
	}
	return e.Value()
}

func (c *Cache) promote(s *slotState) {
	c.lru.Remove(s.node)
	c.lru.PushFront(s.node)
}

// Add inserts key with an optional initial value src.
//
// If src is non-nil, EntrySize bytes are copied from it into the new
// slot and the slot is left unpinned. If src is nil, the slot is pinned
// once and left with whatever bytes its pool slot happened to hold,
// for callers who mean to populate the entry in place through the
// returned Entry.
//
// Add never overwrites an existing key: it returns ErrDuplicate without
// touching the existing entry if key is already present — including not
// refreshing its LRU position. If the cache is at capacity and every
// resident entry is pinned, Add returns ErrCacheFull.
func (c *Cache) Add(key, src []byte) (*Entry, error) {
	if key == nil {
		return nil, ErrInvalidArgument
	}
	if c.index.Find(key) != nil {
		c.log.Debug("add: key already present, refusing without refreshing LRU")
		return nil, ErrDuplicate
	}

	s, err := c.obtainSlot()
	if err != nil {
		return nil, err
	}

	if src != nil {
		copy(s.entry.payload, src)
	}
	copy(s.key, key)
	s.pins = 0

	c.lru.PushFront(s.node)
	s.hashEntry = c.index.Add(s.key, s)

	if src == nil {
		s.pins++
	}
	return s.entry, nil
}

// obtainSlot returns a slotState ready to be populated: either freshly
// allocated from the slab pool, or reused by evicting the LRU tail's
// first unpinned member.
func (c *Cache) obtainSlot() (*slotState, error) {
	if c.lru.Size() < c.cfg.Capacity {
		return c.newSlot()
	}
	return c.evictOne()
}

func (c *Cache) newSlot() (*slotState, error) {
	addr, payload, err := c.pool.Acquire()
	if err != nil {
		// Should be unreachable: the pool has exactly Capacity slots
		// and we only get here below capacity. Surfaced with a stack
		// trace in case that invariant is ever violated by a future
		// change.
		return nil, wrap(ErrExhausted)
	}
	s := &slotState{
		key:   make([]byte, c.cfg.KeySize),
		addr:  addr,
		entry: &Entry{addr: addr, payload: payload[:c.cfg.EntrySize]},
	}
	s.node = list.New(s)
	c.pool.SetOwner(addr, s)
	return s, nil
}

// evictOne reverse-scans the LRU for the first unpinned slot and fully
// commits its eviction — hash delete, key buffer cleared — before
// returning it for reuse, so the caller's re-insert never races a
// dangling hash entry for the same slot.
func (c *Cache) evictOne() (*slotState, error) {
	victimNode := c.lru.ForeachReverse(func(n *list.Node[*slotState]) list.VisitResult {
		if n.Value.pins == 0 {
			return list.VisitStop
		}
		return list.VisitContinue
	})
	if victimNode == nil {
		c.stats.LockedRejections++
		return nil, ErrCacheFull
	}
	s := victimNode.Value
	c.lru.Remove(victimNode)
	c.index.Delete(s.hashEntry)
	s.hashEntry = nil
	for i := range s.key {
		s.key[i] = 0
	}
	c.stats.Evictions++
	c.log.Debugf("evicted slot to make room, pool addr reused")
	return s, nil
}

// DeleteByKey removes the entry stored under key. ErrNotFound if no such
// entry exists, ErrLocked if it is pinned.
func (c *Cache) DeleteByKey(key []byte) error {
	if key == nil {
		return ErrInvalidArgument
	}
	s := c.find(key)
	if s == nil {
		return ErrNotFound
	}
	if s.pins > 0 {
		return ErrLocked
	}
	c.removeSlot(s)
	return nil
}

// DeleteByEntry resolves entry back to its owning slot via the slab
// pool's owner lookup and removes it; equivalent to
// DeleteByKey(that slot's own key buffer).
func (c *Cache) DeleteByEntry(e *Entry) error {
	s, err := c.resolve(e)
	if err != nil {
		return err
	}
	if s.pins > 0 {
		return ErrLocked
	}
	c.removeSlot(s)
	return nil
}

func (c *Cache) resolve(e *Entry) (*slotState, error) {
	if e == nil {
		return nil, ErrInvalidArgument
	}
	s, ok := c.pool.GetOwner(e.addr)
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (c *Cache) removeSlot(s *slotState) {
	c.index.Delete(s.hashEntry)
	s.hashEntry = nil
	_ = c.pool.Release(s.addr)
	c.lru.Remove(s.node)
}

// Unlock decrements entry's pin-count by one. ErrAlreadyUnlocked if the
// pin-count is already zero — a diagnostic for unpaired lock/unlock
// calls.
func (c *Cache) Unlock(e *Entry) error {
	s, err := c.resolve(e)
	if err != nil {
		return err
	}
	if s.pins == 0 {
		return ErrAlreadyUnlocked
	}
	s.pins--
	return nil
}

// Clean removes every resident entry, as DeleteByKey would for each, but
// aborts with ErrLocked (changing nothing) if any entry is pinned.
func (c *Cache) Clean() error {
	if c.anyPinned() {
		return ErrLocked
	}
	for n := c.lru.PopFront(); n != nil; n = c.lru.PopFront() {
		s := n.Value
		c.index.Delete(s.hashEntry)
		_ = c.pool.Release(s.addr)
	}
	return nil
}

// Destroy is Clean plus invoking Config.FreeEntry (if set) on every
// entry's key and payload before its slot is released. ErrLocked under
// the same condition as Clean.
func (c *Cache) Destroy() error {
	if c.anyPinned() {
		return ErrLocked
	}
	for n := c.lru.PopFront(); n != nil; n = c.lru.PopFront() {
		s := n.Value
		if c.cfg.FreeEntry != nil {
			c.cfg.FreeEntry(s.key, s.entry.payload)
		}
		c.index.Delete(s.hashEntry)
		_ = c.pool.Release(s.addr)
	}
	c.index.Clear()
	return nil
}

func (c *Cache) anyPinned() bool {
	n := c.lru.Foreach(func(n *list.Node[*slotState]) list.VisitResult {
		if n.Value.pins > 0 {
			return list.VisitStop
		}
		return list.VisitContinue
	})
	return n != nil
}
