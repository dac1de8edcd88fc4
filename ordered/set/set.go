// Package set implements a set that remembers insertion order. A
// backing slice holds the members in arrival order; a hamt.Dict maps
// each member to its slice position for O(1) membership.
package set

import (
	"fmt"
	"strings"

	"github.com/aglyzov/go-pds/hamt"
)

type Set struct {
	elems []hamt.Key
	pos   *hamt.Dict // member -> position in elems
}

// NewSet returns a set holding the given elements in first-insertion
// order.
func NewSet(elems ...hamt.Key) *Set {
	s := &Set{pos: hamt.NewDict()}
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.elems)
}

// Empty reports whether the set has no members.
func (s *Set) Empty() bool {
	return len(s.elems) == 0
}

// Has reports membership.
func (s *Set) Has(elem hamt.Key) bool {
	return s.pos.Has(elem)
}

// Add appends elem unless it is already a member, reporting whether an
// insertion happened. Re-adding never changes an element's position.
func (s *Set) Add(elem hamt.Key) bool {
	if s.pos.Has(elem) {
		return false
	}
	s.pos.Set(elem, len(s.elems))
	s.elems = append(s.elems, elem)
	return true
}

// Del removes elem, reporting whether it was a member. Later members
// shift down one position, so removal is O(n).
func (s *Set) Del(elem hamt.Key) bool {
	p, ok := s.pos.Get(elem)
	if !ok {
		return false
	}
	i := p.(int)
	s.pos.Del(elem)
	s.elems = append(s.elems[:i], s.elems[i+1:]...)
	for ; i < len(s.elems); i++ {
		s.pos.Set(s.elems[i], i)
	}
	return true
}

// At returns the member at position i. Panics when i is out of range.
func (s *Set) At(i int) hamt.Key {
	if i < 0 || i >= len(s.elems) {
		panic("set: position out of range")
	}
	return s.elems[i]
}

// IndexOf returns elem's insertion position.
func (s *Set) IndexOf(elem hamt.Key) (int, bool) {
	p, ok := s.pos.Get(elem)
	if !ok {
		return 0, false
	}
	return p.(int), true
}

// Iter calls fn for every member in insertion order until fn returns
// false. It reports whether the whole set was visited.
func (s *Set) Iter(fn func(hamt.Key) bool) bool {
	for _, e := range s.elems {
		if !fn(e) {
			return false
		}
	}
	return true
}

// Elems returns all members in insertion order.
func (s *Set) Elems() []hamt.Key {
	return append([]hamt.Key(nil), s.elems...)
}

// Clone returns an independent copy preserving order. The position
// index is shared structurally until either copy mutates.
func (s *Set) Clone() *Set {
	return &Set{
		elems: append([]hamt.Key(nil), s.elems...),
		pos:   s.pos.Clone(),
	}
}

func (s *Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range s.elems {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v", e)
	}
	b.WriteByte('}')
	return b.String()
}
