package bitset

// Range is a half-open interval [Lo, Hi) used as a compact comparison
// operand. Bounds are signed: a range may reach below zero even though
// no set member can, in which case the negative part can never be
// covered.
type Range struct {
	Lo, Hi int
}

// Empty reports whether the range contains no integers.
func (r Range) Empty() bool {
	return r.Hi <= r.Lo
}

// Width returns the number of integers in the range.
func (r Range) Width() int {
	if r.Empty() {
		return 0
	}
	return r.Hi - r.Lo
}

// countIn returns the number of members inside the range, clamping the
// bounds to the representable domain.
func (s *Set) countIn(r Range) int {
	if r.Empty() {
		return 0
	}
	lo := 0
	if r.Lo > 0 {
		lo = r.Lo
	}
	if r.Hi <= lo {
		return 0
	}
	return s.Rank(uint(r.Hi)) - s.Rank(uint(lo))
}

// SupersetOfRange reports whether every integer in r is a member.
// Word-at-a-time mask checks make this O(width/64). A range reaching
// below zero can never be covered.
func (s *Set) SupersetOfRange(r Range) bool {
	if r.Empty() {
		return true
	}
	if r.Lo < 0 {
		return false
	}
	lo, hi := uint(r.Lo), uint(r.Hi) // members are lo..hi-1
	if (hi-1)/wordBits >= uint(len(s.words)) {
		return false
	}
	for w := lo / wordBits; w <= (hi-1)/wordBits; w++ {
		mask := ^uint64(0)
		if base := w * wordBits; base < lo {
			mask &= ^uint64(0) << (lo - base)
		}
		if end := (w + 1) * wordBits; end > hi {
			mask &= ^uint64(0) >> (end - hi)
		}
		if s.words[w]&mask != mask {
			return false
		}
	}
	return true
}

// SubsetOfRange reports whether every member lies inside r.
func (s *Set) SubsetOfRange(r Range) bool {
	return s.countIn(r) == s.count
}

// StrictSupersetOfRange reports whether s is a superset of r and holds
// at least one member outside it.
func (s *Set) StrictSupersetOfRange(r Range) bool {
	return s.count > r.Width() && s.SupersetOfRange(r)
}

// StrictSubsetOfRange reports whether every member lies inside r and r
// holds at least one integer that is not a member.
func (s *Set) StrictSubsetOfRange(r Range) bool {
	return s.count < r.Width() && s.SubsetOfRange(r)
}

// DisjointWithRange reports whether no member lies inside r.
func (s *Set) DisjointWithRange(r Range) bool {
	return s.countIn(r) == 0
}

// EqualRange reports whether the members are exactly the integers in r.
func (s *Set) EqualRange(r Range) bool {
	return s.count == r.Width() && s.SupersetOfRange(r)
}
