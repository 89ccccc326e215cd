package databus

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTakeClearsEntry(t *testing.T) {
	b := New()
	b.Set("k", 42)

	v, ok := b.Take("k")
	require.True(t, ok)
	require.Equal(t, 42, v)

	_, ok = b.Take("k")
	require.False(t, ok, "second take should find nothing")
	require.Equal(t, 0, b.Len())
}

func TestGetDoesNotClear(t *testing.T) {
	var b Bus
	b.Set("k", "v")
	_, ok := b.Get("k")
	require.True(t, ok)
	_, ok = b.Get("k")
	require.True(t, ok)
	b.Del("k")
	_, ok = b.Get("k")
	require.False(t, ok)
}

func TestTakeAsWrongTypeLeavesValue(t *testing.T) {
	b := New()
	b.Set("k", "not an int")

	_, found, err := TakeAs[int](b, "k")
	require.True(t, found)
	require.ErrorIs(t, err, ErrWrongType)

	s, found, err := TakeAs[string](b, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "not an int", s)
	require.Equal(t, 0, b.Len())
}

func TestTakeAsMissing(t *testing.T) {
	b := New()
	v, found, err := TakeAs[*int](b, "missing")
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, v)
}

func TestConcurrentSetTake(t *testing.T) {
	b := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); b.Set("k", 1) }()
		go func() { defer wg.Done(); _, _ = b.Take("k") }()
	}
	wg.Wait()
	require.LessOrEqual(t, b.Len(), 1)
}
