package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPrev(t *testing.T) {
	tbl := []struct {
		i, n       int
		next, prev int
	}{
		{0, 5, 1, 4},
		{4, 5, 0, 3},
		{2, 5, 3, 1},
		{0, 1, 0, 0},
		{0, 0, 0, 0},
		{3, -1, 0, 0},
		{7, 5, 3, 1},
		{-1, 5, 0, 3},
	}

	for _, tt := range tbl {
		assert.Equal(t, tt.next, Next(tt.i, tt.n), "next(%d, %d)", tt.i, tt.n)
		assert.Equal(t, tt.prev, Prev(tt.i, tt.n), "prev(%d, %d)", tt.i, tt.n)
	}
}

func TestState(t *testing.T) {
	s := New(3)
	assert.Equal(t, State{Index: 0, Len: 3}, s)
	assert.False(t, s.Empty())

	s = s.Next().Next()
	assert.Equal(t, 2, s.Index)
	s = s.Next()
	assert.Equal(t, 0, s.Index, "wraps at the end")
	s = s.Prev()
	assert.Equal(t, 2, s.Index, "wraps at the start")

	orig := New(3)
	_ = orig.Next()
	assert.Equal(t, 0, orig.Index, "receiver not changed")

	assert.Equal(t, 1, New(3).Select(4).Index)
	assert.Equal(t, 2, New(3).Select(-1).Index)
	assert.Equal(t, 0, New(0).Select(5).Index)
	assert.True(t, New(-2).Empty())
}

func TestState_Apply(t *testing.T) {
	s := New(4)
	for _, e := range []Event{EventTick, EventTick, EventNext, EventPrev} {
		s = s.Apply(e)
	}
	assert.Equal(t, 2, s.Index)
	assert.Equal(t, s, s.Apply(Event(99)))
	assert.Equal(t, 0, New(0).Apply(EventNext).Index)
}
