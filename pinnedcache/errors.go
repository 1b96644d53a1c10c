package pinnedcache

import (
	"errors"

	"github.com/facebookgo/stackerr"
)

// Sentinel errors for the cache's failure modes. Compare with
// errors.Is; wrap attaches a stackerr stack trace without losing the
// sentinel identity.
var (
	ErrNotFound        = errors.New("pinnedcache: entry not found")
	ErrLocked          = errors.New("pinnedcache: entry is locked (pinned)")
	ErrAlreadyUnlocked = errors.New("pinnedcache: entry already unlocked")
	ErrCacheFull       = errors.New("pinnedcache: cache full, no unpinned entry to evict")
	ErrDuplicate       = errors.New("pinnedcache: key already present")
	ErrInvalidArgument = errors.New("pinnedcache: invalid argument")
	ErrExhausted       = errors.New("pinnedcache: allocator exhausted")
)

// tracedError takes its message and stack trace from the stackerr-wrapped
// form and unwraps to the sentinel, so errors.Is still matches it.
type tracedError struct {
	sentinel error
	traced   error
}

func (e *tracedError) Error() string { return e.traced.Error() }
func (e *tracedError) Unwrap() error { return e.sentinel }

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return &tracedError{sentinel: err, traced: stackerr.Wrap(err)}
}
