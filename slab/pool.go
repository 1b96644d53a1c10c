// Package slab implements a fixed-count allocator of equal-sized payload
// slots carved out of one contiguous arena.
//
// Unlike the C original this module is ported from, slots are addressed
// by a dense integer (Addr), not a raw pointer: resolving an Addr back
// to whatever owns it is a direct array index, never pointer arithmetic.
// That keeps the "stable handle that can be resolved back to its owner"
// property the original gets via a reserved pointer field, without
// requiring unsafe code or pinning the arena's address in memory.
package slab

import (
	"github.com/facebookgo/stackerr"

	"github.com/zhaowynn/libcache/list"
)

// ErrExhausted is returned by Acquire when every slot is busy.
var ErrExhausted = stackerr.New("slab: pool exhausted")

// ErrNotAllocated is returned by Release when the Addr does not name a
// currently busy slot.
var ErrNotAllocated = stackerr.New("slab: address not allocated")

// Addr identifies one slot of a Pool. The zero value names slot 0;
// Invalid is the not-a-slot value, which Valid() reports as false.
type Addr struct {
	idx int32
}

// Invalid is a recognizable not-a-slot value, returned alongside errors.
var Invalid = Addr{idx: -1}

// Valid reports whether a names a slot (not necessarily a busy one).
func (a Addr) Valid() bool { return a.idx >= 0 }

type slotDesc[O any] struct {
	payload  []byte
	owner    O
	hasOwner bool
	node     *list.Node[int32]
}

// Pool is a fixed-count, fixed-size slab allocator. O is the type of the
// opaque "owner" value a caller can attach to a slot and later recover
// given the slot's Addr — the mechanism pinnedcache uses to resolve a
// payload handle back to the cache slot that owns it.
type Pool[O any] struct {
	elemSize int
	arena    []byte
	slots    []slotDesc[O]
	free     *list.List[int32]
	busy     *list.List[int32]
}

func align4(n int) int {
	if n%4 != 0 {
		n += 4 - n%4
	}
	return n
}

// New constructs a pool of elemCount slots, each able to hold elemSize
// bytes. Each slot's size is rounded up to a multiple of 4 bytes.
func New[O any](elemSize, elemCount int) *Pool[O] {
	size := align4(elemSize)
	p := &Pool[O]{
		elemSize: size,
		arena:    make([]byte, size*elemCount),
		slots:    make([]slotDesc[O], elemCount),
		free:     list.NewList[int32](),
		busy:     list.NewList[int32](),
	}
	for i := 0; i < elemCount; i++ {
		p.slots[i].payload = p.arena[i*size : (i+1)*size : (i+1)*size]
		n := list.New(int32(i))
		p.slots[i].node = n
		p.free.PushBack(n)
	}
	return p
}

// Cap returns the total number of slots the pool was constructed with.
func (p *Pool[O]) Cap() int { return len(p.slots) }

// Len returns the number of currently busy slots.
func (p *Pool[O]) Len() int { return p.busy.Size() }

// Acquire pops a free slot and returns its address and payload region.
// The payload bytes are left over from whatever previously occupied the
// slot; callers are expected to overwrite what they need.
func (p *Pool[O]) Acquire() (Addr, []byte, error) {
	n := p.free.PopFront()
	if n == nil {
		return Invalid, nil, ErrExhausted
	}
	p.busy.PushBack(n)
	idx := n.Value
	return Addr{idx: idx}, p.slots[idx].payload, nil
}

func (p *Pool[O]) valid(a Addr) bool {
	return a.Valid() && int(a.idx) < len(p.slots)
}

// Release returns the slot at a to the free list, clearing its owner.
func (p *Pool[O]) Release(a Addr) error {
	if !p.valid(a) {
		return ErrNotAllocated
	}
	s := &p.slots[a.idx]
	if s.node.List() != p.busy {
		return ErrNotAllocated
	}
	p.busy.Remove(s.node)
	var zero O
	s.owner, s.hasOwner = zero, false
	p.free.PushBack(s.node)
	return nil
}

// Payload returns the byte region backing the slot at a.
func (p *Pool[O]) Payload(a Addr) []byte {
	return p.slots[a.idx].payload
}

// SetOwner attaches an opaque owner value to the busy slot at a.
func (p *Pool[O]) SetOwner(a Addr, owner O) {
	p.slots[a.idx].owner = owner
	p.slots[a.idx].hasOwner = true
}

// GetOwner recovers the owner value previously attached via SetOwner.
// ok is false if a is out of range or no owner is attached (none was
// set, or Release has since cleared it).
func (p *Pool[O]) GetOwner(a Addr) (owner O, ok bool) {
	if !p.valid(a) {
		return owner, false
	}
	s := &p.slots[a.idx]
	return s.owner, s.hasOwner
}
