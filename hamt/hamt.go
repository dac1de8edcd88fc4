// Package hamt implements persistent hashed containers, Set and Dict,
// backed by a hash array mapped trie with copy-on-write structural
// sharing. Copying a container is near-O(1); copies share subtrees and
// never observe each other's mutations. Mutations rebuild only the path
// from the root to the touched slot, editing nodes in place when the
// mutating container is their sole owner.
//
// Iteration order is an artifact of hash-slot ordering: unspecified, but
// deterministic for a given trie shape.
package hamt

import (
	"reflect"

	"github.com/hideo55/go-popcount"
)

const (
	// chunkBits is the number of hash bits consumed per trie level.
	chunkBits = 5
	// nodeCap is the branching factor W: child slots per branch node.
	nodeCap = 1 << chunkBits
	// chunkMask extracts one chunk from a shifted hash.
	chunkMask = nodeCap - 1
	// maxShift is the deepest chunk offset still inside a 32-bit hash.
	// Past it the hash is exhausted and colliding items go to a
	// collision node.
	maxShift = 30
)

// Key is the capability contract for set elements and dictionary keys:
// a stable hash and an equality relation. Equal keys must have equal
// hashes; the hash of a stored key must never change.
type Key interface {
	Hash() uint32
	Equal(other any) bool
}

// chunk extracts the slot index for the given level (hash bit offset).
func chunk(shift, hash uint32) uint32 {
	return (hash >> shift) & chunkMask
}

// bitpos returns the bitmap bit for the slot at the given level.
func bitpos(shift, hash uint32) uint32 {
	return 1 << chunk(shift, hash)
}

// rank counts occupied slots below bit, giving the position of bit's
// entry in a branch's compact entry sequence.
func rank(bitmap, bit uint32) int {
	return int(popcount.Count(uint64(bitmap & (bit - 1))))
}

// popcnt counts all occupied slots of a bitmap.
func popcnt(bitmap uint32) int {
	return int(popcount.Count(uint64(bitmap)))
}

// nthBit returns the pos-th (0-based) set bit of bitmap.
func nthBit(bitmap uint32, pos int) uint32 {
	for ; pos > 0; pos-- {
		bitmap &= bitmap - 1
	}
	return bitmap &^ (bitmap - 1)
}

// owner is a mutation token, the Go rendition of a refcount-is-one
// check. Nodes stamped with a container's current token are reachable
// from that container alone and may be edited in place; every other
// node must be copied before modification. Operations that publish
// shared references (Clone, set algebra) retire the involved tokens.
//
// Must not be zero-sized: distinct tokens need distinct addresses.
type owner struct{ _ byte }

func newOwner() *owner {
	return &owner{}
}

// Int is a ready-made integer Key with identity hashing.
type Int int

func (i Int) Hash() uint32 { return uint32(i) }

func (i Int) Equal(other any) bool {
	j, ok := other.(Int)
	return ok && i == j
}

// String is a ready-made string Key using the DJB hash.
type String string

const djbInit uint32 = 5381

func (s String) Hash() uint32 {
	h := djbInit
	for i := 0; i < len(s); i++ {
		h = h<<5 + h + uint32(s[i])
	}
	return h
}

func (s String) Equal(other any) bool {
	t, ok := other.(String)
	return ok && s == t
}

// eqValue compares two stored dictionary values: an Equal method when
// the left value provides one, == for comparable values, and deep
// equality for values whose type == would reject, such as slices.
func eqValue(a, b any) bool {
	if eq, ok := a.(interface{ Equal(any) bool }); ok {
		return eq.Equal(b)
	}
	if a == nil || b == nil || reflect.TypeOf(a).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
