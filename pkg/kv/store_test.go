package kv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_GetSet(t *testing.T) {
	s := New[string, int](0)

	s.Set("foo", 42)
	val, ok := s.Get("foo")
	assert.True(t, ok)
	assert.Equal(t, 42, val)

	_, ok = s.Get("bar")
	assert.False(t, ok)
}

func TestStore_Delete(t *testing.T) {
	s := New[string, string](0)
	s.Set("key", "value")

	s.Delete("key")
	s.Delete("missing")

	_, ok := s.Get("key")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestStore_Clear(t *testing.T) {
	s := New[string, int](0)
	s.Set("a", 1)
	s.Set("b", 2)

	s.Clear()

	assert.Equal(t, 0, s.Len())
}

func TestStore_LimitEvictsOldestWrite(t *testing.T) {
	s := New[string, int](2)
	s.Set("a", 1)
	s.Set("b", 2)
	s.Set("a", 10) // rewrite moves a to the back
	s.Set("c", 3)

	assert.Equal(t, 2, s.Len())
	_, ok := s.Get("b")
	assert.False(t, ok, "b was the oldest write")

	val, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 10, val)
}

func TestStore_GetOrCompute(t *testing.T) {
	s := New[string, string](0)
	calls := 0
	fn := func() string {
		calls++
		return "rendered"
	}

	assert.Equal(t, "rendered", s.GetOrCompute("k", fn))
	assert.Equal(t, "rendered", s.GetOrCompute("k", fn))
	assert.Equal(t, 1, calls)
}

func TestStore_Concurrent(t *testing.T) {
	s := New[int, int](16)
	var wg sync.WaitGroup

	for i := range 100 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Set(n, n*2)
			s.GetOrCompute(n+1000, func() int { return n })
			s.Get(n)
		}(i)
	}

	wg.Wait()
	assert.LessOrEqual(t, s.Len(), 16)
}
