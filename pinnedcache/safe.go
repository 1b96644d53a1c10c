package pinnedcache

import "sync"

// Safe wraps a Cache with a single mutex guarding every public method,
// so the hash lookup, LRU mutation, and pool transition of an operation
// happen as one exclusive section.
//
// A plain sync.Mutex is used rather than a sync.RWMutex split between
// readers and writers: Lookup is not a pure read, since a hit promotes
// the entry to the LRU front and may change its pin-count, so every
// method needs the exclusive section, not just the ones that look
// write-shaped.
type Safe struct {
	mu sync.Mutex
	c  *Cache
}

// NewSafe builds a Safe cache per cfg.
func NewSafe(cfg Config) (*Safe, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &Safe{c: c}, nil
}

func (s *Safe) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Capacity()
}

func (s *Safe) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Size()
}

func (s *Safe) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Stats()
}

func (s *Safe) Lookup(key []byte) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Lookup(key)
}

func (s *Safe) LookupInto(key, dst []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.LookupInto(key, dst)
}

func (s *Safe) Add(key, src []byte) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Add(key, src)
}

func (s *Safe) DeleteByKey(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.DeleteByKey(key)
}

func (s *Safe) DeleteByEntry(e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.DeleteByEntry(e)
}

func (s *Safe) Unlock(e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Unlock(e)
}

func (s *Safe) Clean() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Clean()
}

func (s *Safe) Destroy() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Destroy()
}
