package hamt

import (
	"fmt"
	"strings"
)

// Set is a persistent unordered set of Keys. The zero value is not
// usable; construct with NewSet. Copies made with Clone share the trie
// and cost O(1); either copy can be mutated without the other
// observing a change.
type Set struct {
	core
}

// NewSet returns a set holding the given elements.
func NewSet(elems ...Key) *Set {
	s := &Set{newCore()}
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

// setResolve keeps the left (receiver) member on an equal-key conflict.
func setResolve(ea, eb entry) (entry, bool) {
	return ea, true
}

// Has reports membership.
func (s *Set) Has(elem Key) bool {
	_, ok := findNode(s.root, 0, elem.Hash(), elem)
	return ok
}

// Add inserts elem. It returns the member after the operation: elem
// itself when newly inserted, or the already-present equal member, with
// a flag reporting whether an insertion happened.
func (s *Set) Add(elem Key) (Key, bool) {
	s.invalidate()
	root, prev, added := insertNode(s.root, s.owner, 0, elem.Hash(), entry{key: elem}, false)
	s.root = root
	if added {
		s.count++
		return elem, true
	}
	return prev.key, false
}

// Del removes elem, returning the removed member, or nil when elem was
// not a member.
func (s *Set) Del(elem Key) Key {
	s.invalidate()
	if s.root == nil {
		return nil
	}
	root, removed, found := removeNode(s.root, s.owner, 0, elem.Hash(), elem)
	if !found {
		return nil
	}
	s.root = root
	s.count--
	return removed.key
}

// IndexOf returns a positional index for elem. The index stays valid
// until the next mutating operation on s.
func (s *Set) IndexOf(elem Key) (Index, bool) {
	steps, ok := indexOfNode(s.root, elem.Hash(), elem)
	if !ok {
		return Index{}, false
	}
	return Index{src: &s.core, gen: s.gen, steps: steps}, true
}

// At returns the member at idx. Panics on a stale or foreign index.
func (s *Set) At(idx Index) Key {
	s.check(idx)
	return idx.entryAt().key
}

// DelAt removes the member at idx without recomputing its hash.
// Panics on a stale or foreign index.
func (s *Set) DelAt(idx Index) Key {
	s.check(idx)
	s.invalidate()
	root, removed := removeAtPath(idx.steps, s.owner)
	s.root = root
	s.count--
	return removed.key
}

// Update replaces the member at idx with elem and returns the previous
// member. elem must compare equal to the stored member: the two differ
// only in identity or auxiliary payload, so the hash address is
// unchanged and no rehashing happens. Panics when elem is not equal to
// the stored member, or on a stale or foreign index.
func (s *Set) Update(elem Key, idx Index) Key {
	s.check(idx)
	old := idx.entryAt()
	if !elem.Equal(old.key) {
		panic("hamt: replacement element is not equal to the stored member")
	}
	s.invalidate()
	s.root = replaceAtPath(idx.steps, s.owner, entry{key: elem})
	return old.key
}

// Clone returns a copy sharing the whole trie.
func (s *Set) Clone() *Set {
	return &Set{core{root: s.share(), count: s.count, owner: newOwner()}}
}

// Iter calls fn for every member in trie order until fn returns false.
// It reports whether the whole set was visited.
func (s *Set) Iter(fn func(Key) bool) bool {
	return eachItem(s.root, func(e entry) bool { return fn(e.key) })
}

// Iterator returns a restartable walker over the set in trie order.
func (s *Set) Iterator() *Iterator {
	return newIterator(&s.core)
}

// Elems returns all members in trie order.
func (s *Set) Elems() []Key {
	elems := make([]Key, 0, s.count)
	s.Iter(func(k Key) bool {
		elems = append(elems, k)
		return true
	})
	return elems
}

// Union returns a set with the members of both s and other. Members
// present in both keep s's stored representative.
func (s *Set) Union(other *Set) *Set {
	ra, rb := s.share(), other.share()
	o := newOwner()
	root := rootify(unionNodes(ra, rb, o, 0, setResolve), o)
	return &Set{core{root: root, count: nodeSize(root), owner: o}}
}

// Intersect returns a set with the members present in both s and
// other, keeping s's stored representatives.
func (s *Set) Intersect(other *Set) *Set {
	ra, rb := s.share(), other.share()
	o := newOwner()
	root := rootify(intersectNodes(ra, rb, o, 0), o)
	return &Set{core{root: root, count: nodeSize(root), owner: o}}
}

// Subtract returns a set with s's members that are not in other.
func (s *Set) Subtract(other *Set) *Set {
	ra, rb := s.share(), other.share()
	o := newOwner()
	root := rootify(subtractNodes(ra, rb, o, 0), o)
	return &Set{core{root: root, count: nodeSize(root), owner: o}}
}

// SubsetOf reports whether every member of s is in other.
func (s *Set) SubsetOf(other *Set) bool {
	return subsetNodes(s.root, other.root, 0)
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
	return disjointNodes(s.root, other.root, 0)
}

// Equal reports whether s and other hold the same members, regardless
// of how either was built.
func (s *Set) Equal(other *Set) bool {
	return s.count == other.count && equalNodes(s.root, other.root, false)
}

// UnionElems returns a set with s's members plus the given elements.
// Duplicates in elems are ignored; existing members win conflicts.
func (s *Set) UnionElems(elems ...Key) *Set {
	r := s.Clone()
	for _, e := range elems {
		r.Add(e)
	}
	return r
}

// IntersectElems returns a set with s's members that appear in elems.
func (s *Set) IntersectElems(elems ...Key) *Set {
	return s.Intersect(NewSet(elems...))
}

// SubtractElems returns a set with s's members minus the given
// elements.
func (s *Set) SubtractElems(elems ...Key) *Set {
	r := s.Clone()
	for _, e := range elems {
		r.Del(e)
	}
	return r
}

// SupersetOfElems reports whether every given element is a member.
// Duplicates in elems are ignored.
func (s *Set) SupersetOfElems(elems ...Key) bool {
	for _, e := range elems {
		if !s.Has(e) {
			return false
		}
	}
	return true
}

// StrictSupersetOfElems reports whether s is a strict superset of the
// distinct given elements. A scratch set tracks duplicates.
func (s *Set) StrictSupersetOfElems(elems ...Key) bool {
	seen := NewSet()
	for _, e := range elems {
		if !s.Has(e) {
			return false
		}
		seen.Add(e)
	}
	return seen.count < s.count
}

// SubsetOfElems reports whether every member of s appears in elems.
func (s *Set) SubsetOfElems(elems ...Key) bool {
	seen := NewSet()
	for _, e := range elems {
		if s.Has(e) {
			seen.Add(e)
		}
	}
	return seen.count == s.count
}

// StrictSubsetOfElems reports whether s is a strict subset of the
// distinct given elements.
func (s *Set) StrictSubsetOfElems(elems ...Key) bool {
	return s.StrictSubsetOf(NewSet(elems...))
}

// DisjointWithElems reports whether none of the given elements is a
// member.
func (s *Set) DisjointWithElems(elems ...Key) bool {
	for _, e := range elems {
		if s.Has(e) {
			return false
		}
	}
	return true
}

func (s *Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	s.Iter(func(k Key) bool {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&b, "%v", k)
		return true
	})
	b.WriteByte('}')
	return b.String()
}
