package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushFrontBack(t *testing.T) {
	l := NewList[int]()
	require.True(t, l.Empty())

	l.PushBack(New(1))
	l.PushBack(New(2))
	l.PushFront(New(0))

	require.Equal(t, 3, l.Size())
	assert.Equal(t, 0, l.Front().Value)
	assert.Equal(t, 2, l.Back().Value)
}

func TestRemoveAndPop(t *testing.T) {
	l := NewList[string]()
	a, b, c := New("a"), New("b"), New("c")
	l.PushBack(a)
	l.PushBack(b)
	l.PushBack(c)

	l.Remove(b)
	require.Equal(t, 2, l.Size())
	assert.Nil(t, b.List())

	front := l.PopFront()
	assert.Equal(t, "a", front.Value)
	back := l.PopBack()
	assert.Equal(t, "c", back.Value)
	assert.True(t, l.Empty())
	assert.Nil(t, l.PopFront())
}

func TestForeachStopsOnZero(t *testing.T) {
	l := NewList[int]()
	for i := 1; i <= 5; i++ {
		l.PushBack(New(i))
	}

	var seen []int
	found := l.Foreach(func(n *Node[int]) VisitResult {
		seen = append(seen, n.Value)
		if n.Value == 3 {
			return VisitStop
		}
		return VisitContinue
	})

	require.NotNil(t, found)
	assert.Equal(t, 3, found.Value)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestForeachReverseFindsFirstUnpinnedFromTail(t *testing.T) {
	l := NewList[int]()
	for i := 1; i <= 4; i++ {
		l.PushFront(New(i))
	}
	// front..back = 4,3,2,1

	found := l.ForeachReverse(func(n *Node[int]) VisitResult {
		if n.Value == 2 {
			return VisitStop
		}
		return VisitContinue
	})
	require.NotNil(t, found)
	assert.Equal(t, 2, found.Value)
}

func TestForeachAbortReturnsNil(t *testing.T) {
	l := NewList[int]()
	l.PushBack(New(1))
	l.PushBack(New(2))

	found := l.Foreach(func(n *Node[int]) VisitResult {
		return VisitAbort
	})
	assert.Nil(t, found)
}

func TestClearInvokesFinalizerInOrder(t *testing.T) {
	l := NewList[int]()
	for i := 1; i <= 3; i++ {
		l.PushBack(New(i))
	}

	var finalized []int
	l.Clear(func(n *Node[int]) {
		finalized = append(finalized, n.Value)
	})

	assert.Equal(t, []int{1, 2, 3}, finalized)
	assert.True(t, l.Empty())
	assert.Equal(t, 0, l.Size())
}

func TestForeachWithContext(t *testing.T) {
	l := NewList[int]()
	l.PushBack(New(10))
	l.PushBack(New(20))

	type ctxT struct{ target int }
	c := &ctxT{target: 20}

	found := l.ForeachWithContext(func(n *Node[int], ctx any) VisitResult {
		cc := ctx.(*ctxT)
		if n.Value == cc.target {
			return VisitStop
		}
		return VisitContinue
	}, c)

	require.NotNil(t, found)
	assert.Equal(t, 20, found.Value)
}
