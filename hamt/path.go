package hamt

// pathStep addresses one entry within one node: a position in a
// branch's compact sequence or in a collision bucket's item list.
type pathStep struct {
	n   node
	pos int
}

// Index is a positional address of one stored item: the exact chain of
// nodes and entry positions from the root down to the item, stamped
// with the generation of the issuing container. It lets positional
// operations reach the item directly, with no hash computation.
//
// An Index is valid only for the container and generation that issued
// it. Every mutating operation on the container, including no-op
// mutations, invalidates all outstanding indices; using a stale or
// foreign index is a contract violation and panics.
type Index struct {
	src   *core
	gen   uint32
	steps []pathStep
}

// entryAt returns the addressed item entry.
func (idx Index) entryAt() entry {
	last := idx.steps[len(idx.steps)-1]
	switch t := last.n.(type) {
	case *branch:
		return t.entries[last.pos]
	case *collision:
		return t.items[last.pos]
	}
	panic("hamt: unknown node variant")
}

// indexOfNode descends from the root by hash chunks, recording the path
// to the entry with an equal key.
func indexOfNode(root node, hash uint32, k Key) ([]pathStep, bool) {
	var (
		steps []pathStep
		n     = root
		shift = uint32(0)
	)
	for n != nil {
		switch t := n.(type) {
		case *branch:
			bit := bitpos(shift, hash)
			if t.bitmap&bit == 0 {
				return nil, false
			}
			pos := rank(t.bitmap, bit)
			e := t.entries[pos]
			steps = append(steps, pathStep{t, pos})
			if e.key == nil {
				n = e.child()
				shift += chunkBits
				continue
			}
			if e.key.Equal(k) {
				return steps, true
			}
			return nil, false
		case *collision:
			if hash != t.hash {
				return nil, false
			}
			for i, e := range t.items {
				if e.key.Equal(k) {
					return append(steps, pathStep{t, i}), true
				}
			}
			return nil, false
		}
	}
	return nil, false
}

// removeAtPath removes the addressed item by replaying the recorded
// path, rebuilding the spine bottom-up and inlining lone leftover items
// on the way. Returns the new root (nil when the trie emptied) and the
// removed entry.
func removeAtPath(steps []pathStep, o *owner) (node, entry) {
	var (
		last    = steps[len(steps)-1]
		cur     node
		removed entry
	)
	switch t := last.n.(type) {
	case *branch:
		removed = t.entries[last.pos]
		if len(t.entries) == 1 {
			cur = nil
		} else {
			cur = t.withEntryRemoved(o, nthBit(t.bitmap, last.pos), last.pos)
		}
	case *collision:
		removed = t.items[last.pos]
		cur = t.withItemRemoved(o, last.pos)
	}
	for i := len(steps) - 2; i >= 0; i-- {
		b := steps[i].n.(*branch)
		if item, ok := collapsed(cur); ok {
			cur = b.withEntryAt(o, steps[i].pos, item, -1)
			continue
		}
		cur = b.withEntryAt(o, steps[i].pos, entry{nil, cur}, -1)
	}
	return cur, removed
}

// replaceAtPath swaps the addressed item entry for e, leaving shape and
// counts untouched. The caller has already verified that e's key is
// equal to the stored one, so the hash address is unchanged.
func replaceAtPath(steps []pathStep, o *owner, e entry) node {
	var (
		last = steps[len(steps)-1]
		cur  node
	)
	switch t := last.n.(type) {
	case *branch:
		cur = node(t.withEntryAt(o, last.pos, e, 0))
	case *collision:
		cur = node(t.withItemAt(o, last.pos, e))
	}
	for i := len(steps) - 2; i >= 0; i-- {
		b := steps[i].n.(*branch)
		cur = b.withEntryAt(o, steps[i].pos, entry{nil, cur}, 0)
	}
	return cur
}

// Iterator walks a trie depth-first in slot order, holding an explicit
// stack of node positions. Like an Index, it is a positional view: it
// must not be advanced across a mutation of its container.
type Iterator struct {
	src   *core
	gen   uint32
	steps []pathStep
}

func newIterator(c *core) *Iterator {
	it := &Iterator{src: c, gen: c.gen}
	if c.root != nil {
		it.steps = append(it.steps, pathStep{c.root, 0})
		it.descend()
	}
	return it
}

// descend pushes child nodes until the top step points at an item.
func (it *Iterator) descend() {
	for {
		top := &it.steps[len(it.steps)-1]
		b, ok := top.n.(*branch)
		if !ok {
			return // collision items are iterated in list order
		}
		e := b.entries[top.pos]
		if e.key != nil {
			return
		}
		it.steps = append(it.steps, pathStep{e.child(), 0})
	}
}

// HasElem returns whether the iterator is pointing at an element.
func (it *Iterator) HasElem() bool {
	return len(it.steps) > 0
}

// Elem returns the current item's key and value.
func (it *Iterator) Elem() (Key, any) {
	top := it.steps[len(it.steps)-1]
	var e entry
	switch t := top.n.(type) {
	case *branch:
		e = t.entries[top.pos]
	case *collision:
		e = t.items[top.pos]
	}
	return e.key, e.val
}

// Index returns the current position as a generation-stamped Index.
func (it *Iterator) Index() Index {
	return Index{src: it.src, gen: it.gen, steps: append([]pathStep(nil), it.steps...)}
}

// Next moves the iterator to the next position.
func (it *Iterator) Next() {
	for len(it.steps) > 0 {
		top := &it.steps[len(it.steps)-1]
		top.pos++
		switch t := top.n.(type) {
		case *branch:
			if top.pos < len(t.entries) {
				it.descend()
				return
			}
		case *collision:
			if top.pos < len(t.items) {
				return
			}
		}
		it.steps = it.steps[:len(it.steps)-1]
	}
}
