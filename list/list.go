// Package list implements a generic intrusive doubly linked list.
//
// The list owns only pointer bookkeeping, never the memory of the
// values it links: pop, remove and clear hand the detached node back to
// the caller (or a finalizer) to dispose of as it sees fit. This mirrors
// how a slab-backed cache wants to reuse the same node across evictions
// instead of allocating a fresh one on every insert.
package list

// VisitResult is returned by a Visitor to steer traversal.
type VisitResult int

const (
	// VisitStop ends traversal; the current node becomes the result.
	VisitStop VisitResult = 0
	// VisitContinue moves on to the next (or previous) node.
	VisitContinue VisitResult = 1
	// VisitAbort ends traversal with no result.
	VisitAbort VisitResult = -1
)

// Visitor inspects a node during a traversal.
type Visitor[T any] func(n *Node[T]) VisitResult

// VisitorWithContext is Visitor plus an opaque context value, for callers
// that want to avoid closures over loop-local state.
type VisitorWithContext[T any] func(n *Node[T], ctx any) VisitResult

// Node is one element of a List. A Node belongs to at most one List at a
// time; Value is the caller's payload.
type Node[T any] struct {
	prev, next *Node[T]
	owner      *List[T]
	Value      T
}

// List returns the list the node currently belongs to, or nil if it has
// been removed, popped, or never inserted.
func (n *Node[T]) List() *List[T] { return n.owner }

// New allocates a detached node carrying v. It is not a member of any
// list until pushed.
func New[T any](v T) *Node[T] {
	return &Node[T]{Value: v}
}

// List is a doubly linked list with sentinel head/tail nodes, so insert
// and remove never need a nil check.
type List[T any] struct {
	fakeHead Node[T]
	fakeTail Node[T]
	count    int
}

// Init sets up an empty list. The zero value is not usable; call Init
// (or use NewList) before use.
func (l *List[T]) Init() *List[T] {
	l.fakeHead.next = &l.fakeTail
	l.fakeTail.prev = &l.fakeHead
	l.fakeHead.owner, l.fakeTail.owner = l, l
	l.count = 0
	return l
}

// NewList returns an initialized empty list.
func NewList[T any]() *List[T] {
	return new(List[T]).Init()
}

// Empty reports whether the list has no members.
func (l *List[T]) Empty() bool { return l.count == 0 }

// Size returns the number of members in O(1).
func (l *List[T]) Size() int { return l.count }

// Front returns the head member, or nil.
func (l *List[T]) Front() *Node[T] {
	if l.Empty() {
		return nil
	}
	return l.fakeHead.next
}

// Back returns the tail member, or nil.
func (l *List[T]) Back() *Node[T] {
	if l.Empty() {
		return nil
	}
	return l.fakeTail.prev
}

func link[T any](a, b *Node[T]) { a.next, b.prev = b, a }

// PushFront inserts n at the head of the list in O(1).
func (l *List[T]) PushFront(n *Node[T]) {
	link(n, l.fakeHead.next)
	link(&l.fakeHead, n)
	n.owner = l
	l.count++
}

// PushBack inserts n at the tail of the list in O(1).
func (l *List[T]) PushBack(n *Node[T]) {
	link(l.fakeTail.prev, n)
	link(n, &l.fakeTail)
	n.owner = l
	l.count++
}

// Remove unlinks n, which must currently be a member of l. It does not
// search for n; callers are responsible for passing a member node.
func (l *List[T]) Remove(n *Node[T]) {
	link(n.prev, n.next)
	n.prev, n.next, n.owner = nil, nil, nil
	l.count--
}

// PopFront removes and returns the head member, or nil if empty.
func (l *List[T]) PopFront() *Node[T] {
	n := l.Front()
	if n == nil {
		return nil
	}
	l.Remove(n)
	return n
}

// PopBack removes and returns the tail member, or nil if empty.
func (l *List[T]) PopBack() *Node[T] {
	n := l.Back()
	if n == nil {
		return nil
	}
	l.Remove(n)
	return n
}

// Foreach walks front to back, invoking visit on each member. It stops
// early on VisitStop (returning that node) or VisitAbort (returning
// nil). If visit never stops, Foreach returns nil after the last node.
func (l *List[T]) Foreach(visit Visitor[T]) *Node[T] {
	for n := l.Front(); n != &l.fakeTail && n != nil; n = n.next {
		switch visit(n) {
		case VisitStop:
			return n
		case VisitAbort:
			return nil
		}
	}
	return nil
}

// ForeachReverse walks back to front; semantics otherwise match Foreach.
func (l *List[T]) ForeachReverse(visit Visitor[T]) *Node[T] {
	for n := l.Back(); n != &l.fakeHead && n != nil; n = n.prev {
		switch visit(n) {
		case VisitStop:
			return n
		case VisitAbort:
			return nil
		}
	}
	return nil
}

// ForeachWithContext is Foreach with an opaque context threaded to each
// call, for visitors that would otherwise need a closure.
func (l *List[T]) ForeachWithContext(visit VisitorWithContext[T], ctx any) *Node[T] {
	return l.Foreach(func(n *Node[T]) VisitResult {
		return visit(n, ctx)
	})
}

// Clear invokes finalizer on every member front to back, then empties
// the list. finalizer may be nil, in which case members are simply
// detached and dropped.
func (l *List[T]) Clear(finalizer func(n *Node[T])) {
	for n := l.PopFront(); n != nil; n = l.PopFront() {
		if finalizer != nil {
			finalizer(n)
		}
	}
}
