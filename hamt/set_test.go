package hamt

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSet(t *testing.T) {
	t.Parallel()

	s := NewSet()

	assert.NotNil(t, s)
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Empty())
}

func TestSet_Add_Has(t *testing.T) {
	t.Parallel()

	s := NewSet()

	for _, tcase := range []*struct {
		Elem   Int
		ExpAdd bool
	}{
		{1, true},
		{2, true},
		{1, false}, // duplicate
		{33, true}, // same level-0 chunk as 1
		{65, true}, // same level-0 chunk again
		{0, true},
		{2, false}, // duplicate
	} {
		tcase := tcase
		name := fmt.Sprintf("%v", tcase.Elem)

		t.Run(name, func(t *testing.T) {
			member, added := s.Add(tcase.Elem)

			assert.Equal(t, tcase.ExpAdd, added)
			assert.Equal(t, Key(tcase.Elem), member)
			assert.True(t, s.Has(tcase.Elem))
		})
	}

	assert.Equal(t, 5, s.Len())
	assert.False(t, s.Has(Int(99)))
}

func TestSet_Del(t *testing.T) {
	t.Parallel()

	s := intSet(1, 33, 65, 2)

	assert.Equal(t, Key(Int(33)), s.Del(Int(33)))
	assert.Nil(t, s.Del(Int(33))) // second removal is a no-op
	assert.Nil(t, s.Del(Int(99)))

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has(Int(1)))
	assert.True(t, s.Has(Int(65)))
	assert.False(t, s.Has(Int(33)))

	// drain completely
	assert.NotNil(t, s.Del(Int(1)))
	assert.NotNil(t, s.Del(Int(65)))
	assert.NotNil(t, s.Del(Int(2)))
	assert.True(t, s.Empty())
	assert.Nil(t, s.root)
}

// Membership round-trip: every inserted element is a member, everything
// else is not, and the count matches the number of distinct elements.
func TestSet_FakeData(t *testing.T) {
	t.Parallel()

	const (
		total = 100_000
		seed  = 1234567890
	)

	var (
		s     = NewSet()
		state = map[String]bool{}
		fake  = gofakeit.New(seed)
	)

	for i := 0; i < total; i++ {
		elem := String(fake.HipsterSentence(3))

		s.Add(elem)
		state[elem] = true
	}

	assert.Equal(t, len(state), s.Len())

	for elem := range state {
		assert.True(t, s.Has(elem), elem)
	}
	for i := 0; i < 1000; i++ {
		elem := String(fake.HackerPhrase())
		if !state[elem] {
			assert.False(t, s.Has(elem), elem)
		}
	}
}

// Count always equals the number of elements reachable by iteration,
// after any interleaving of inserts and removals.
func TestSet_CountInvariant(t *testing.T) {
	t.Parallel()

	var (
		s   = NewSet()
		ref = map[Int]bool{}
		rng = rand.New(rand.NewSource(42))
	)

	for i := 0; i < 10_000; i++ {
		elem := Int(rng.Intn(2000))
		if rng.Intn(3) == 0 {
			s.Del(elem)
			delete(ref, elem)
		} else {
			s.Add(elem)
			ref[elem] = true
		}

		require.Equal(t, len(ref), s.Len())
	}

	iterated := 0
	s.Iter(func(k Key) bool {
		iterated++
		assert.True(t, ref[k.(Int)])
		return true
	})
	assert.Equal(t, s.Len(), iterated)
}

// Mutating a clone never changes the original (clone isolation law).
func TestSet_CloneIsolation(t *testing.T) {
	t.Parallel()

	a := intSet(1, 2, 3, 33, 65, 1024)
	before := a.Elems()

	b := a.Clone()
	b.Del(Int(2))
	b.Del(Int(33))
	b.Add(Int(7))
	b.Add(Int(99))

	assert.Equal(t, 6, a.Len())
	assert.Equal(t, before, a.Elems())
	assert.True(t, a.Has(Int(2)))
	assert.False(t, a.Has(Int(7)))

	assert.Equal(t, 6, b.Len())
	assert.False(t, b.Has(Int(2)))
	assert.True(t, b.Has(Int(7)))
}

// The in-place fast path on an exclusively-owned container must be
// observationally identical to copy-then-mutate.
func TestSet_UniquenessTransparency(t *testing.T) {
	t.Parallel()

	var (
		owned  = NewSet()
		copied = NewSet()
		rng    = rand.New(rand.NewSource(7))
	)

	for i := 0; i < 3000; i++ {
		elem := Int(rng.Intn(500))
		del := rng.Intn(4) == 0

		if del {
			owned.Del(elem)
		} else {
			owned.Add(elem)
		}

		copied = copied.Clone() // defeat the in-place path every step
		if del {
			copied.Del(elem)
		} else {
			copied.Add(elem)
		}
	}

	assert.Equal(t, owned.Len(), copied.Len())
	assert.True(t, owned.Equal(copied))
	assert.Equal(t, owned.Elems(), copied.Elems())
}

// Equal sets always have the same canonical trie shape, no matter the
// insertion and removal history.
func TestSet_CanonicalShape(t *testing.T) {
	t.Parallel()

	elems := []int{1, 33, 65, 97, 2, 1024, 2048, 5, 1000000, 31, 32}

	a := intSet(elems...)

	// Same membership via a different history: shuffled order, extra
	// elements added and removed again.
	rng := rand.New(rand.NewSource(3))
	shuffled := append([]int(nil), elems...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	b := NewSet()
	for _, n := range shuffled {
		b.Add(Int(n))
		extra := Int(rng.Intn(5000) + 3000000)
		b.Add(extra)
		b.Del(extra)
	}

	assert.True(t, a.Equal(b))
	assert.True(t, equalNodes(a.root, b.root, false))
	assert.Equal(t, a.Elems(), b.Elems())
}

// Removing the last different-hash sibling of a collision bucket must
// hoist the bucket back to the first conflict slot, where inserts place
// it. Otherwise two sets with identical members keep different shapes
// and compare unequal.
func TestSet_CollisionHoisting(t *testing.T) {
	t.Parallel()

	var (
		ca = hashed{1, 0xFFFFFFFF}
		cb = hashed{2, 0xFFFFFFFF}
		x  = hashed{3, 0x7FFFFFFF} // diverges from the pair only at the deepest chunk
		y  = hashed{4, 0x7FFFFFFF}
	)
	direct := NewSet(ca, cb)

	check := func(t *testing.T, s *Set) {
		t.Helper()
		require.Equal(t, 2, s.Len())
		assert.True(t, s.Equal(direct))
		assert.True(t, direct.Equal(s))
		assert.True(t, equalNodes(s.root, direct.root, false))
	}

	t.Run("Del", func(t *testing.T) {
		s := NewSet(ca, cb, x)
		s.Del(x)
		check(t, s)
	})
	t.Run("DelAt", func(t *testing.T) {
		s := NewSet(ca, cb, x)
		idx, ok := s.IndexOf(x)
		require.True(t, ok)
		s.DelAt(idx)
		check(t, s)
	})
	t.Run("Subtract", func(t *testing.T) {
		check(t, NewSet(ca, cb, x).Subtract(NewSet(x)))
	})
	t.Run("Intersect", func(t *testing.T) {
		// Both operands carry the bucket under a full-depth spine; only
		// the bucket survives.
		check(t, NewSet(ca, cb, x).Intersect(NewSet(ca, cb, y)))
	})
}

// History-built and insert-built sets with colliding members always
// converge to the same shape.
func TestSet_CollisionCanonicalShape(t *testing.T) {
	t.Parallel()

	hashes := []uint32{0xFFFFFFFF, 0x7FFFFFFF, 42, 74}
	member := func(id int) hashed {
		return hashed{id, hashes[id%len(hashes)]}
	}

	rng := rand.New(rand.NewSource(21))
	for trial := 0; trial < 200; trial++ {
		s := NewSet()
		alive := map[int]bool{}
		for i := 0; i < 40; i++ {
			id := rng.Intn(24)
			if rng.Intn(3) == 0 {
				s.Del(member(id))
				delete(alive, id)
			} else {
				s.Add(member(id))
				alive[id] = true
			}
		}

		direct := NewSet()
		for id := range alive {
			direct.Add(member(id))
		}

		require.True(t, s.Equal(direct), "trial %d", trial)
		require.True(t, equalNodes(s.root, direct.root, false), "trial %d", trial)
	}
}

func TestSet_Collisions(t *testing.T) {
	t.Parallel()

	s := NewSet()

	for i := 0; i < 10; i++ {
		_, added := s.Add(collider{i})
		assert.True(t, added)
	}
	// Int(42) shares the colliders' hash but is not equal to any.
	s.Add(Int(42))

	assert.Equal(t, 11, s.Len())
	for i := 0; i < 10; i++ {
		assert.True(t, s.Has(collider{i}))
	}
	assert.True(t, s.Has(Int(42)))
	assert.False(t, s.Has(collider{10}))

	for i := 0; i < 10; i++ {
		assert.Equal(t, Key(collider{i}), s.Del(collider{i}))
	}
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Has(Int(42)))
}

func TestSet_Iterator(t *testing.T) {
	t.Parallel()

	s := intSet(5, 1, 33, 65, 2, 1024)

	var elems []Key
	for it := s.Iterator(); it.HasElem(); it.Next() {
		k, _ := it.Elem()
		elems = append(elems, k)
	}

	assert.Len(t, elems, s.Len())
	assert.Equal(t, s.Elems(), elems)

	// Iteration order is deterministic for a given trie shape.
	assert.Equal(t, elems, intSet(5, 1, 33, 65, 2, 1024).Elems())
	assert.Equal(t, elems, intSet(1024, 2, 65, 33, 1, 5).Elems())
}

func TestSet_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{}", NewSet().String())
	assert.Equal(t, "{7}", intSet(7).String())
}
