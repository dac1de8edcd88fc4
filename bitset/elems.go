package bitset

// Comparison predicates over an arbitrary element slice. Predicates
// that only consume the slice test each element directly; the ones
// that must count distinct elements accumulate them into a scratch
// set, so duplicates in the slice are ignored.

// SupersetOfElems reports whether every given element is a member.
func (s *Set) SupersetOfElems(elems ...uint) bool {
	for _, e := range elems {
		if !s.Has(e) {
			return false
		}
	}
	return true
}

// StrictSupersetOfElems reports whether s is a strict superset of the
// distinct given elements.
func (s *Set) StrictSupersetOfElems(elems ...uint) bool {
	seen := New()
	for _, e := range elems {
		if !s.Has(e) {
			return false
		}
		seen.Add(e)
	}
	return seen.count < s.count
}

// SubsetOfElems reports whether every member appears among the given
// elements.
func (s *Set) SubsetOfElems(elems ...uint) bool {
	seen := New()
	for _, e := range elems {
		if s.Has(e) {
			seen.Add(e)
		}
	}
	return seen.count == s.count
}

// StrictSubsetOfElems reports whether s is a strict subset of the
// distinct given elements.
func (s *Set) StrictSubsetOfElems(elems ...uint) bool {
	return s.StrictSubsetOf(New(elems...))
}

// DisjointWithElems reports whether none of the given elements is a
// member.
func (s *Set) DisjointWithElems(elems ...uint) bool {
	for _, e := range elems {
		if s.Has(e) {
			return false
		}
	}
	return true
}

// EqualElems reports whether the members are exactly the distinct
// given elements.
func (s *Set) EqualElems(elems ...uint) bool {
	return s.Equal(New(elems...))
}
