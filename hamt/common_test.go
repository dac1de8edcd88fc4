package hamt

// Test key types.

// collider hashes every value to the same bucket, forcing collision
// nodes regardless of trie depth.
type collider struct {
	id int
}

func (c collider) Hash() uint32 { return 42 }

func (c collider) Equal(other any) bool {
	o, ok := other.(collider)
	return ok && c.id == o.id
}

// tagged is equal by id only; the tag is an auxiliary payload that
// distinguishes otherwise equal members.
type tagged struct {
	id  int
	tag string
}

func (t tagged) Hash() uint32 { return uint32(t.id) }

func (t tagged) Equal(other any) bool {
	o, ok := other.(tagged)
	return ok && t.id == o.id
}

// hashed carries an explicit hash, decoupled from identity: distinct
// members can share a full hash, and near-misses diverging only at the
// deepest chunk are easy to construct.
type hashed struct {
	id int
	h  uint32
}

func (x hashed) Hash() uint32 { return x.h }

func (x hashed) Equal(other any) bool {
	o, ok := other.(hashed)
	return ok && x.id == o.id
}

func ints(ns ...int) []Key {
	elems := make([]Key, len(ns))
	for i, n := range ns {
		elems[i] = Int(n)
	}
	return elems
}

func intSet(ns ...int) *Set {
	return NewSet(ints(ns...)...)
}
