// Package bitset implements a dense set of small unsigned integers
// packed into 64-bit words. Comparison predicates accept another set,
// a contiguous integer range, or an arbitrary element slice, and obey
// the same subset/superset laws as the hamt containers.
package bitset

import (
	"fmt"
	"math/bits"
	"strings"

	popcount "github.com/hideo55/go-popcount"
)

const wordBits = 64

// Set is a bit-packed set of uints. The zero value is an empty set
// ready to use. Word storage grows with the largest member and is kept
// trimmed of trailing zero words, so equal sets always have equal word
// slices.
type Set struct {
	words []uint64
	count int
}

// New returns a set holding the given elements.
func New(elems ...uint) *Set {
	s := &Set{}
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

// Len returns the number of members.
func (s *Set) Len() int {
	return s.count
}

// Empty reports whether the set has no members.
func (s *Set) Empty() bool {
	return s.count == 0
}

// Has reports membership.
func (s *Set) Has(v uint) bool {
	w := v / wordBits
	return w < uint(len(s.words)) && s.words[w]>>(v%wordBits)&1 == 1
}

// Add inserts v, reporting whether it was absent.
func (s *Set) Add(v uint) bool {
	w, bit := v/wordBits, uint64(1)<<(v%wordBits)
	for uint(len(s.words)) <= w {
		s.words = append(s.words, 0)
	}
	if s.words[w]&bit != 0 {
		return false
	}
	s.words[w] |= bit
	s.count++
	return true
}

// Del removes v, reporting whether it was a member.
func (s *Set) Del(v uint) bool {
	w, bit := v/wordBits, uint64(1)<<(v%wordBits)
	if w >= uint(len(s.words)) || s.words[w]&bit == 0 {
		return false
	}
	s.words[w] &^= bit
	s.count--
	s.trim()
	return true
}

// Rank returns the number of members strictly less than v.
func (s *Set) Rank(v uint) int {
	w := v / wordBits
	if w >= uint(len(s.words)) {
		return s.count
	}
	n := popcount.CountSlice(s.words[:w])
	n += popcount.Count(s.words[w] & (1<<(v%wordBits) - 1))
	return int(n)
}

// Iter calls fn for every member in increasing order until fn returns
// false. It reports whether the whole set was visited.
func (s *Set) Iter(fn func(uint) bool) bool {
	for w, word := range s.words {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			if !fn(uint(w*wordBits + b)) {
				return false
			}
			word &^= 1 << b
		}
	}
	return true
}

// Elems returns all members in increasing order.
func (s *Set) Elems() []uint {
	elems := make([]uint, 0, s.count)
	s.Iter(func(v uint) bool {
		elems = append(elems, v)
		return true
	})
	return elems
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	return &Set{words: append([]uint64(nil), s.words...), count: s.count}
}

// Union returns a set with the members of both s and other.
func (s *Set) Union(other *Set) *Set {
	a, b := s.words, other.words
	if len(b) > len(a) {
		a, b = b, a
	}
	words := append([]uint64(nil), a...)
	for i, w := range b {
		words[i] |= w
	}
	return wrap(words)
}

// Intersect returns a set with the members present in both s and
// other.
func (s *Set) Intersect(other *Set) *Set {
	n := len(s.words)
	if len(other.words) < n {
		n = len(other.words)
	}
	words := make([]uint64, n)
	for i := range words {
		words[i] = s.words[i] & other.words[i]
	}
	return wrap(words)
}

// Subtract returns a set with s's members that are not in other.
func (s *Set) Subtract(other *Set) *Set {
	words := append([]uint64(nil), s.words...)
	for i, w := range other.words {
		if i == len(words) {
			break
		}
		words[i] &^= w
	}
	return wrap(words)
}

// SubsetOf reports whether every member of s is in other.
func (s *Set) SubsetOf(other *Set) bool {
	if len(s.words) > len(other.words) {
		return false
	}
	for i, w := range s.words {
		if w&^other.words[i] != 0 {
			return false
		}
	}
	return true
}

// SupersetOf reports whether every member of other is in s.
func (s *Set) SupersetOf(other *Set) bool {
	return other.SubsetOf(s)
}

// StrictSubsetOf reports whether s is a subset of other and not equal
// to it.
func (s *Set) StrictSubsetOf(other *Set) bool {
	return s.count < other.count && s.SubsetOf(other)
}

// StrictSupersetOf reports whether s is a superset of other and not
// equal to it.
func (s *Set) StrictSupersetOf(other *Set) bool {
	return other.StrictSubsetOf(s)
}

// DisjointWith reports whether s and other have no member in common.
func (s *Set) DisjointWith(other *Set) bool {
	n := len(s.words)
	if len(other.words) < n {
		n = len(other.words)
	}
	for i := 0; i < n; i++ {
		if s.words[i]&other.words[i] != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether s and other hold the same members.
func (s *Set) Equal(other *Set) bool {
	if s.count != other.count || len(s.words) != len(other.words) {
		return false
	}
	for i, w := range s.words {
		if w != other.words[i] {
			return false
		}
	}
	return true
}

func (s *Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	s.Iter(func(v uint) bool {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&b, "%d", v)
		return true
	})
	b.WriteByte('}')
	return b.String()
}

// trim drops trailing zero words, keeping the representation canonical.
func (s *Set) trim() {
	n := len(s.words)
	for n > 0 && s.words[n-1] == 0 {
		n--
	}
	s.words = s.words[:n]
}

func wrap(words []uint64) *Set {
	s := &Set{words: words}
	s.trim()
	s.count = int(popcount.CountSlice(s.words))
	return s
}
