package hamt

// node is one trie storage unit: a bitmap-indexed branch or a
// collision bucket for items whose hashes are fully exhausted.
type node interface {
	size() int
}

// entry is one occupant of a branch slot (or one collision item).
// key == nil marks a child node stored in val; otherwise the entry is
// an item with key and, for dictionaries, an associated value.
type entry struct {
	key Key
	val any
}

func (e entry) child() node {
	return e.val.(node)
}

// branch holds up to nodeCap occupants. The compact entries sequence
// contains exactly one entry per set bitmap bit, in ascending slot
// order. count is the number of items reachable from this subtree.
type branch struct {
	owner   *owner
	bitmap  uint32
	entries []entry
	count   int
}

func (n *branch) size() int { return n.count }

// collision holds items sharing one full hash value. Membership is
// resolved by linear equality scan.
type collision struct {
	owner *owner
	hash  uint32
	items []entry
}

func (n *collision) size() int { return len(n.items) }

func nodeSize(n node) int {
	if n == nil {
		return 0
	}
	return n.size()
}

// collapsed reports whether a shrunk child must be inlined into its
// parent slot, keeping the trie minimal: a branch holding a lone item,
// a branch holding a lone collision bucket (the bucket belongs at the
// first conflict slot, where inserts place it), or a bucket reduced to
// one item. Applied at every level on the way up, so cascades happen
// for free.
func collapsed(n node) (entry, bool) {
	switch n := n.(type) {
	case *branch:
		if len(n.entries) == 1 {
			e := n.entries[0]
			if e.key != nil {
				return e, true
			}
			if _, ok := e.val.(*collision); ok {
				return e, true
			}
		}
	case *collision:
		if len(n.items) == 1 {
			return n.items[0], true
		}
	}
	return entry{}, false
}

// insertNode adds e to the subtree, or reports the already-present
// entry. When replace is set an existing entry with an equal key is
// overwritten (dictionary semantics); otherwise insertion of a present
// key is a no-op returning the original node reference. prev is the
// previously stored entry, if any.
func insertNode(n node, o *owner, shift, hash uint32, e entry, replace bool) (nn node, prev entry, added bool) {
	if n == nil {
		return &branch{owner: o, bitmap: bitpos(shift, hash), entries: []entry{e}, count: 1}, entry{}, true
	}
	switch t := n.(type) {
	case *branch:
		return t.insert(o, shift, hash, e, replace)
	case *collision:
		return t.insert(o, shift, hash, e, replace)
	}
	panic("hamt: unknown node variant")
}

func (n *branch) insert(o *owner, shift, hash uint32, e entry, replace bool) (node, entry, bool) {
	bit := bitpos(shift, hash)
	idx := rank(n.bitmap, bit)
	if n.bitmap&bit == 0 {
		return n.withEntryAdded(o, bit, idx, e), entry{}, true
	}
	cur := n.entries[idx]
	if cur.key == nil {
		child := cur.child()
		nc, prev, added := insertNode(child, o, shift+chunkBits, hash, e, replace)
		if nc == child && !added {
			return n, prev, false
		}
		delta := 0
		if added {
			delta = 1
		}
		return n.withEntryAt(o, idx, entry{nil, nc}, delta), prev, added
	}
	if cur.key.Equal(e.key) {
		if !replace {
			return n, cur, false
		}
		return n.withEntryAt(o, idx, e, 0), cur, false
	}
	// Slot conflict: push both items one level down, re-slicing their
	// hashes until the chunks differ or the hash is exhausted.
	sub := newSubNode(o, shift+chunkBits, cur, hash, e)
	return n.withEntryAt(o, idx, entry{nil, sub}, 1), entry{}, true
}

func (n *collision) insert(o *owner, shift, hash uint32, e entry, replace bool) (node, entry, bool) {
	if hash != n.hash {
		// A different hash reached this depth: wrap the bucket in a
		// branch and let the branch spread the two apart.
		wrap := &branch{
			owner:   o,
			bitmap:  bitpos(shift, n.hash),
			entries: []entry{{nil, node(n)}},
			count:   len(n.items),
		}
		return wrap.insert(o, shift, hash, e, replace)
	}
	for i, cur := range n.items {
		if cur.key.Equal(e.key) {
			if !replace {
				return n, cur, false
			}
			return n.withItemAt(o, i, e), cur, false
		}
	}
	return n.withItemAdded(o, e), entry{}, true
}

// newSubNode builds the smallest subtree holding two conflicting items.
// Identical full hashes land in a collision bucket; otherwise the items
// spread apart at the first level where their chunks differ.
func newSubNode(o *owner, shift uint32, e1 entry, h2 uint32, e2 entry) node {
	h1 := e1.key.Hash()
	if h1 == h2 {
		return &collision{owner: o, hash: h1, items: []entry{e1, e2}}
	}
	var n node
	n, _, _ = insertNode(nil, o, shift, h1, e1, false)
	n, _, _ = insertNode(n, o, shift, h2, e2, false)
	return n
}

// removeNode removes the entry with an equal key, if present. A nil
// result means the subtree emptied, which only happens at the root:
// inner branches never hold a lone item.
func removeNode(n node, o *owner, shift, hash uint32, k Key) (nn node, removed entry, found bool) {
	switch t := n.(type) {
	case *branch:
		return t.remove(o, shift, hash, k)
	case *collision:
		return t.remove(o, shift, hash, k)
	}
	panic("hamt: unknown node variant")
}

func (n *branch) remove(o *owner, shift, hash uint32, k Key) (node, entry, bool) {
	bit := bitpos(shift, hash)
	if n.bitmap&bit == 0 {
		return n, entry{}, false
	}
	idx := rank(n.bitmap, bit)
	cur := n.entries[idx]
	if cur.key == nil {
		child := cur.child()
		nc, removed, found := removeNode(child, o, shift+chunkBits, hash, k)
		if !found {
			return n, entry{}, false
		}
		if item, ok := collapsed(nc); ok {
			return n.withEntryAt(o, idx, item, -1), removed, true
		}
		return n.withEntryAt(o, idx, entry{nil, nc}, -1), removed, true
	}
	if cur.key.Equal(k) {
		if len(n.entries) == 1 {
			return nil, cur, true
		}
		return n.withEntryRemoved(o, bit, idx), cur, true
	}
	return n, entry{}, false
}

func (n *collision) remove(o *owner, shift, hash uint32, k Key) (node, entry, bool) {
	if hash != n.hash {
		return n, entry{}, false
	}
	for i, cur := range n.items {
		if cur.key.Equal(k) {
			return n.withItemRemoved(o, i), cur, true
		}
	}
	return n, entry{}, false
}

// findNode locates the stored entry with an equal key.
func findNode(n node, shift, hash uint32, k Key) (entry, bool) {
	for n != nil {
		switch t := n.(type) {
		case *branch:
			bit := bitpos(shift, hash)
			if t.bitmap&bit == 0 {
				return entry{}, false
			}
			e := t.entries[rank(t.bitmap, bit)]
			if e.key == nil {
				n = e.child()
				shift += chunkBits
				continue
			}
			if e.key.Equal(k) {
				return e, true
			}
			return entry{}, false
		case *collision:
			if hash != t.hash {
				return entry{}, false
			}
			for _, e := range t.items {
				if e.key.Equal(k) {
					return e, true
				}
			}
			return entry{}, false
		}
	}
	return entry{}, false
}

// eachItem walks every item in the subtree in trie order, stopping
// early when fn returns false.
func eachItem(n node, fn func(entry) bool) bool {
	switch t := n.(type) {
	case *branch:
		for _, e := range t.entries {
			if e.key == nil {
				if !eachItem(e.child(), fn) {
					return false
				}
			} else if !fn(e) {
				return false
			}
		}
	case *collision:
		for _, e := range t.items {
			if !fn(e) {
				return false
			}
		}
	}
	return true
}

// Copy-on-write primitives. Each edits the node in place when the
// caller's token matches the node's stamp, and copies otherwise.

func (n *branch) withEntryAdded(o *owner, bit uint32, idx int, e entry) *branch {
	if o != nil && n.owner == o {
		n.entries = append(n.entries, entry{})
		copy(n.entries[idx+1:], n.entries[idx:])
		n.entries[idx] = e
		n.bitmap |= bit
		n.count++
		return n
	}
	es := make([]entry, len(n.entries)+1)
	copy(es, n.entries[:idx])
	es[idx] = e
	copy(es[idx+1:], n.entries[idx:])
	return &branch{owner: o, bitmap: n.bitmap | bit, entries: es, count: n.count + 1}
}

func (n *branch) withEntryAt(o *owner, idx int, e entry, delta int) *branch {
	if o != nil && n.owner == o {
		n.entries[idx] = e
		n.count += delta
		return n
	}
	es := append([]entry(nil), n.entries...)
	es[idx] = e
	return &branch{owner: o, bitmap: n.bitmap, entries: es, count: n.count + delta}
}

func (n *branch) withEntryRemoved(o *owner, bit uint32, idx int) *branch {
	if o != nil && n.owner == o {
		copy(n.entries[idx:], n.entries[idx+1:])
		n.entries[len(n.entries)-1] = entry{}
		n.entries = n.entries[:len(n.entries)-1]
		n.bitmap &^= bit
		n.count--
		return n
	}
	es := make([]entry, len(n.entries)-1)
	copy(es, n.entries[:idx])
	copy(es[idx:], n.entries[idx+1:])
	return &branch{owner: o, bitmap: n.bitmap &^ bit, entries: es, count: n.count - 1}
}

func (n *collision) withItemAdded(o *owner, e entry) *collision {
	if o != nil && n.owner == o {
		n.items = append(n.items, e)
		return n
	}
	items := make([]entry, len(n.items)+1)
	copy(items, n.items)
	items[len(n.items)] = e
	return &collision{owner: o, hash: n.hash, items: items}
}

func (n *collision) withItemAt(o *owner, idx int, e entry) *collision {
	if o != nil && n.owner == o {
		n.items[idx] = e
		return n
	}
	items := append([]entry(nil), n.items...)
	items[idx] = e
	return &collision{owner: o, hash: n.hash, items: items}
}

func (n *collision) withItemRemoved(o *owner, idx int) *collision {
	if o != nil && n.owner == o {
		copy(n.items[idx:], n.items[idx+1:])
		n.items[len(n.items)-1] = entry{}
		n.items = n.items[:len(n.items)-1]
		return n
	}
	items := make([]entry, len(n.items)-1)
	copy(items, n.items[:idx])
	copy(items[idx:], n.items[idx+1:])
	return &collision{owner: o, hash: n.hash, items: items}
}
