package set

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aglyzov/go-pds/hamt"
)

func ints(vals ...int) []hamt.Key {
	keys := make([]hamt.Key, len(vals))
	for i, v := range vals {
		keys[i] = hamt.Int(v)
	}
	return keys
}

func TestNewSet(t *testing.T) {
	t.Parallel()

	s := NewSet()
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Empty())

	s = NewSet(ints(3, 1, 2, 1)...)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, ints(3, 1, 2), s.Elems())
}

func TestSet_InsertionOrder(t *testing.T) {
	t.Parallel()

	s := NewSet()
	for _, v := range []int{10, 5, 30, 5, 20, 10} {
		s.Add(hamt.Int(v))
	}

	assert.Equal(t, ints(10, 5, 30, 20), s.Elems())

	i, ok := s.IndexOf(hamt.Int(30))
	require.True(t, ok)
	assert.Equal(t, 2, i)
	assert.Equal(t, hamt.Int(30), s.At(2))

	_, ok = s.IndexOf(hamt.Int(99))
	assert.False(t, ok)
}

func TestSet_Del(t *testing.T) {
	t.Parallel()

	s := NewSet(ints(1, 2, 3, 4)...)

	assert.True(t, s.Del(hamt.Int(2)))
	assert.False(t, s.Del(hamt.Int(2)))
	assert.Equal(t, ints(1, 3, 4), s.Elems())

	// Positions after the removed member have shifted.
	i, ok := s.IndexOf(hamt.Int(4))
	require.True(t, ok)
	assert.Equal(t, 2, i)

	// Re-adding goes to the back.
	s.Add(hamt.Int(2))
	assert.Equal(t, ints(1, 3, 4, 2), s.Elems())
}

func TestSet_RandomOpsAgainstSlice(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(11))
	s := NewSet()
	var ref []int

	for i := 0; i < 5000; i++ {
		v := rng.Intn(200)
		if rng.Intn(3) == 0 {
			before := contains(ref, v)
			require.Equal(t, before, s.Del(hamt.Int(v)))
			ref = remove(ref, v)
		} else {
			before := contains(ref, v)
			require.Equal(t, !before, s.Add(hamt.Int(v)))
			if !before {
				ref = append(ref, v)
			}
		}
		require.Equal(t, len(ref), s.Len())
	}

	require.Equal(t, ints(ref...), s.Elems())
	for i, v := range ref {
		assert.Equal(t, hamt.Int(v), s.At(i))
	}
}

func TestSet_CloneIsolation(t *testing.T) {
	t.Parallel()

	a := NewSet(ints(1, 2, 3)...)
	b := a.Clone()
	b.Del(hamt.Int(2))
	b.Add(hamt.Int(4))

	assert.Equal(t, ints(1, 2, 3), a.Elems())
	assert.Equal(t, ints(1, 3, 4), b.Elems())
}

func TestSet_Panics(t *testing.T) {
	t.Parallel()

	s := NewSet(ints(1)...)
	assert.Panics(t, func() { s.At(-1) })
	assert.Panics(t, func() { s.At(1) })
}

func TestSet_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{}", NewSet().String())
	assert.Equal(t, "{3 1 2}", NewSet(ints(3, 1, 2)...).String())
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func remove(s []int, v int) []int {
	for i, x := range s {
		if x == v {
			return append(s[:i:i], s[i+1:]...)
		}
	}
	return s
}
