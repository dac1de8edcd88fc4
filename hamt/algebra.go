package hamt

// Structural set algebra. All routines walk two tries node-by-node and
// short-circuit on identical node references: subtrees shared through
// earlier copies cost a single pointer comparison instead of a walk.
//
// resolve callbacks combine two entries with equal keys; the returned
// flag reports that the result is exactly the left entry, which lets
// the routines hand back an operand subtree unchanged.

// insertRight folds a right-operand item into a left-side subtree.
// The second return value reports that the subtree was left untouched.
func insertRight(n node, o *owner, shift uint32, eb entry, resolve func(entry, entry) (entry, bool)) (node, bool) {
	hash := eb.key.Hash()
	if prev, ok := findNode(n, shift, hash, eb.key); ok {
		r, left := resolve(prev, eb)
		if left {
			return n, true
		}
		nn, _, _ := insertNode(n, o, shift, hash, r, true)
		return nn, false
	}
	nn, _, _ := insertNode(n, o, shift, hash, eb, false)
	return nn, false
}

// insertLeft folds a left-operand item into a right-side subtree. The
// stored right-side entry is replaced even when the resolved entry
// compares equal: the left operand's member identity wins.
func insertLeft(n node, o *owner, shift uint32, ea entry, resolve func(entry, entry) (entry, bool)) node {
	hash := ea.key.Hash()
	if prev, ok := findNode(n, shift, hash, ea.key); ok {
		r, _ := resolve(ea, prev)
		nn, _, _ := insertNode(n, o, shift, hash, r, true)
		return nn
	}
	nn, _, _ := insertNode(n, o, shift, hash, ea, false)
	return nn
}

func unionNodes(a, b node, o *owner, shift uint32, resolve func(entry, entry) (entry, bool)) node {
	if a == b || b == nil {
		return a
	}
	if a == nil {
		return b
	}
	ab, aok := a.(*branch)
	bb, bok := b.(*branch)
	if aok && bok {
		return unionBranches(ab, bb, o, shift, resolve)
	}
	if ac, ok := a.(*collision); ok {
		if bc, ok := b.(*collision); ok && ac.hash == bc.hash {
			return unionCollisions(ac, bc, o, resolve)
		}
		// Fold a's bucket into b; left members win conflicts.
		res := b
		for _, ea := range ac.items {
			res = insertLeft(res, o, shift, ea, resolve)
		}
		return res
	}
	// a is a branch, b is a collision bucket.
	bc := b.(*collision)
	res, unchanged := a, true
	for _, eb := range bc.items {
		var same bool
		res, same = insertRight(res, o, shift, eb, resolve)
		unchanged = unchanged && same
	}
	if unchanged {
		return a
	}
	return res
}

func unionBranches(a, b *branch, o *owner, shift uint32, resolve func(entry, entry) (entry, bool)) node {
	var (
		bm    = a.bitmap | b.bitmap
		es    = make([]entry, 0, popcnt(bm))
		count = 0
		fromA = true
		fromB = true
	)
	for rest := bm; rest != 0; rest &= rest - 1 {
		bit := rest &^ (rest - 1)
		inA := a.bitmap&bit != 0
		inB := b.bitmap&bit != 0
		var e entry
		switch {
		case inA && !inB:
			e = a.entries[rank(a.bitmap, bit)]
			fromB = false
		case !inA && inB:
			e = b.entries[rank(b.bitmap, bit)]
			fromA = false
		default:
			var sameA, sameB bool
			e, sameA, sameB = unionSlot(
				a.entries[rank(a.bitmap, bit)],
				b.entries[rank(b.bitmap, bit)],
				o, shift, resolve)
			fromA = fromA && sameA
			fromB = fromB && sameB
		}
		es = append(es, e)
		if e.key != nil {
			count++
		} else {
			count += e.child().size()
		}
	}
	if fromA && bm == a.bitmap {
		return a
	}
	if fromB && bm == b.bitmap {
		return b
	}
	return &branch{owner: o, bitmap: bm, entries: es, count: count}
}

func unionSlot(ea, eb entry, o *owner, shift uint32, resolve func(entry, entry) (entry, bool)) (entry, bool, bool) {
	aChild := ea.key == nil
	bChild := eb.key == nil
	switch {
	case !aChild && !bChild:
		if ea.key.Equal(eb.key) {
			r, left := resolve(ea, eb)
			return r, left, false
		}
		return entry{nil, newSubNode(o, shift+chunkBits, ea, eb.key.Hash(), eb)}, false, false
	case !aChild && bChild:
		return entry{nil, insertLeft(eb.child(), o, shift+chunkBits, ea, resolve)}, false, false
	case aChild && !bChild:
		nc, same := insertRight(ea.child(), o, shift+chunkBits, eb, resolve)
		return entry{nil, nc}, same, false
	default:
		r := unionNodes(ea.child(), eb.child(), o, shift+chunkBits, resolve)
		return entry{nil, r}, r == ea.child(), r == eb.child()
	}
}

func unionCollisions(a, b *collision, o *owner, resolve func(entry, entry) (entry, bool)) node {
	res, unchanged := a, true
	for _, eb := range b.items {
		found := false
		for i, ea := range res.items {
			if ea.key.Equal(eb.key) {
				found = true
				if r, left := resolve(ea, eb); !left {
					res = res.withItemAt(o, i, r)
					unchanged = false
				}
				break
			}
		}
		if !found {
			res = res.withItemAdded(o, eb)
			unchanged = false
		}
	}
	if unchanged {
		return a
	}
	return res
}

func intersectNodes(a, b node, o *owner, shift uint32) node {
	if a == b || a == nil {
		return a
	}
	if b == nil {
		return nil
	}
	ab, aok := a.(*branch)
	bb, bok := b.(*branch)
	if aok && bok {
		return intersectBranches(ab, bb, o, shift)
	}
	if ac, ok := a.(*collision); ok {
		// Keep a's items that are members of b.
		var (
			items   []entry
			changed = false
		)
		for _, ea := range ac.items {
			if _, ok := findNode(b, shift, ac.hash, ea.key); ok {
				items = append(items, ea)
			} else {
				changed = true
			}
		}
		if !changed {
			return a
		}
		if len(items) == 0 {
			return nil
		}
		return &collision{owner: o, hash: ac.hash, items: items}
	}
	// a is a branch, b is a collision: keep a's stored representatives
	// of b's items.
	bc := b.(*collision)
	var items []entry
	for _, eb := range bc.items {
		if prev, ok := findNode(a, shift, bc.hash, eb.key); ok {
			items = append(items, prev)
		}
	}
	if len(items) == 0 {
		return nil
	}
	return &collision{owner: o, hash: bc.hash, items: items}
}

func intersectBranches(a, b *branch, o *owner, shift uint32) node {
	var (
		bm    uint32
		es    []entry
		count = 0
		fromA = a.bitmap&^b.bitmap == 0
	)
	for rest := a.bitmap & b.bitmap; rest != 0; rest &= rest - 1 {
		bit := rest &^ (rest - 1)
		e, keep, same := intersectSlot(
			a.entries[rank(a.bitmap, bit)],
			b.entries[rank(b.bitmap, bit)],
			o, shift)
		if !keep {
			fromA = false
			continue
		}
		fromA = fromA && same
		bm |= bit
		es = append(es, e)
		if e.key != nil {
			count++
		} else {
			count += e.child().size()
		}
	}
	if fromA {
		return a
	}
	if len(es) == 0 {
		return nil
	}
	return &branch{owner: o, bitmap: bm, entries: es, count: count}
}

func intersectSlot(ea, eb entry, o *owner, shift uint32) (e entry, keep, same bool) {
	aChild := ea.key == nil
	bChild := eb.key == nil
	switch {
	case !aChild && !bChild:
		if ea.key.Equal(eb.key) {
			return ea, true, true
		}
		return entry{}, false, false
	case !aChild && bChild:
		if _, ok := findNode(eb.child(), shift+chunkBits, ea.key.Hash(), ea.key); ok {
			return ea, true, true
		}
		return entry{}, false, false
	case aChild && !bChild:
		if prev, ok := findNode(ea.child(), shift+chunkBits, eb.key.Hash(), eb.key); ok {
			return prev, true, false
		}
		return entry{}, false, false
	default:
		r := intersectNodes(ea.child(), eb.child(), o, shift+chunkBits)
		if r == nil {
			return entry{}, false, false
		}
		if item, ok := collapsed(r); ok {
			return item, true, false
		}
		return entry{nil, r}, true, r == ea.child()
	}
}

func subtractNodes(a, b node, o *owner, shift uint32) node {
	if a == b || a == nil {
		return nil
	}
	if b == nil {
		return a
	}
	ab, aok := a.(*branch)
	bb, bok := b.(*branch)
	if aok && bok {
		return subtractBranches(ab, bb, o, shift)
	}
	if ac, ok := a.(*collision); ok {
		var (
			items   []entry
			changed = false
		)
		for _, ea := range ac.items {
			if _, ok := findNode(b, shift, ac.hash, ea.key); ok {
				changed = true
			} else {
				items = append(items, ea)
			}
		}
		if !changed {
			return a
		}
		if len(items) == 0 {
			return nil
		}
		return &collision{owner: o, hash: ac.hash, items: items}
	}
	// a is a branch, b is a collision: remove b's items one by one.
	bc := b.(*collision)
	res := node(a)
	for _, eb := range bc.items {
		if res == nil {
			break
		}
		res, _, _ = removeNode(res, o, shift, bc.hash, eb.key)
	}
	return res
}

func subtractBranches(a, b *branch, o *owner, shift uint32) node {
	var (
		bm    uint32
		es    []entry
		count = 0
		fromA = true
	)
	for rest := a.bitmap; rest != 0; rest &= rest - 1 {
		bit := rest &^ (rest - 1)
		ea := a.entries[rank(a.bitmap, bit)]
		if b.bitmap&bit == 0 {
			bm |= bit
			es = append(es, ea)
			if ea.key != nil {
				count++
			} else {
				count += ea.child().size()
			}
			continue
		}
		e, keep, same := subtractSlot(ea, b.entries[rank(b.bitmap, bit)], o, shift)
		if !keep {
			fromA = false
			continue
		}
		fromA = fromA && same
		bm |= bit
		es = append(es, e)
		if e.key != nil {
			count++
		} else {
			count += e.child().size()
		}
	}
	if fromA {
		return a
	}
	if len(es) == 0 {
		return nil
	}
	return &branch{owner: o, bitmap: bm, entries: es, count: count}
}

func subtractSlot(ea, eb entry, o *owner, shift uint32) (e entry, keep, same bool) {
	aChild := ea.key == nil
	bChild := eb.key == nil
	switch {
	case !aChild && !bChild:
		if ea.key.Equal(eb.key) {
			return entry{}, false, false
		}
		return ea, true, true
	case !aChild && bChild:
		if _, ok := findNode(eb.child(), shift+chunkBits, ea.key.Hash(), ea.key); ok {
			return entry{}, false, false
		}
		return ea, true, true
	case aChild && !bChild:
		r, _, found := removeNode(ea.child(), o, shift+chunkBits, eb.key.Hash(), eb.key)
		if !found {
			return ea, true, true
		}
		if r == nil {
			return entry{}, false, false
		}
		if item, ok := collapsed(r); ok {
			return item, true, false
		}
		return entry{nil, r}, true, false
	default:
		r := subtractNodes(ea.child(), eb.child(), o, shift+chunkBits)
		if r == nil {
			return entry{}, false, false
		}
		if item, ok := collapsed(r); ok {
			return item, true, false
		}
		return entry{nil, r}, true, r == ea.child()
	}
}

func subsetNodes(a, b node, shift uint32) bool {
	if a == b || a == nil {
		return true
	}
	if b == nil || nodeSize(a) > nodeSize(b) {
		return false
	}
	ab, aok := a.(*branch)
	bb, bok := b.(*branch)
	if aok && bok {
		if ab.bitmap&^bb.bitmap != 0 {
			return false
		}
		for rest := ab.bitmap; rest != 0; rest &= rest - 1 {
			bit := rest &^ (rest - 1)
			ea := ab.entries[rank(ab.bitmap, bit)]
			eb := bb.entries[rank(bb.bitmap, bit)]
			switch {
			case ea.key != nil && eb.key != nil:
				if !ea.key.Equal(eb.key) {
					return false
				}
			case ea.key != nil:
				if _, ok := findNode(eb.child(), shift+chunkBits, ea.key.Hash(), ea.key); !ok {
					return false
				}
			case eb.key != nil:
				// a's child subtree holds at least two items; they
				// cannot all equal one item of b.
				return false
			default:
				if !subsetNodes(ea.child(), eb.child(), shift+chunkBits) {
					return false
				}
			}
		}
		return true
	}
	if ac, ok := a.(*collision); ok {
		for _, ea := range ac.items {
			if _, ok := findNode(b, shift, ac.hash, ea.key); !ok {
				return false
			}
		}
		return true
	}
	// a is a branch, b is a collision: every item of a must sit in b's
	// bucket. Size screening above keeps this walk tiny.
	bc := b.(*collision)
	return eachItem(a, func(ea entry) bool {
		for _, eb := range bc.items {
			if ea.key.Equal(eb.key) {
				return true
			}
		}
		return false
	})
}

func disjointNodes(a, b node, shift uint32) bool {
	if a == nil || b == nil {
		return true
	}
	if a == b {
		return false
	}
	ab, aok := a.(*branch)
	bb, bok := b.(*branch)
	if aok && bok {
		for rest := ab.bitmap & bb.bitmap; rest != 0; rest &= rest - 1 {
			bit := rest &^ (rest - 1)
			ea := ab.entries[rank(ab.bitmap, bit)]
			eb := bb.entries[rank(bb.bitmap, bit)]
			switch {
			case ea.key != nil && eb.key != nil:
				if ea.key.Equal(eb.key) {
					return false
				}
			case ea.key != nil:
				if _, ok := findNode(eb.child(), shift+chunkBits, ea.key.Hash(), ea.key); ok {
					return false
				}
			case eb.key != nil:
				if _, ok := findNode(ea.child(), shift+chunkBits, eb.key.Hash(), eb.key); ok {
					return false
				}
			default:
				if !disjointNodes(ea.child(), eb.child(), shift+chunkBits) {
					return false
				}
			}
		}
		return true
	}
	if ac, ok := a.(*collision); ok {
		for _, ea := range ac.items {
			if _, ok := findNode(b, shift, ac.hash, ea.key); ok {
				return false
			}
		}
		return true
	}
	bc := b.(*collision)
	for _, eb := range bc.items {
		if _, ok := findNode(a, shift, bc.hash, eb.key); ok {
			return false
		}
	}
	return true
}

// equalNodes compares two tries element-wise. Equal containers always
// have identical canonical shapes, so mismatched node variants or
// bitmaps decide immediately. withVals extends the comparison to stored
// values (dictionary equality).
func equalNodes(a, b node, withVals bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.size() != b.size() {
		return false
	}
	switch at := a.(type) {
	case *branch:
		bt, ok := b.(*branch)
		if !ok || at.bitmap != bt.bitmap {
			return false
		}
		for i, ea := range at.entries {
			eb := bt.entries[i]
			switch {
			case ea.key != nil && eb.key != nil:
				if !ea.key.Equal(eb.key) {
					return false
				}
				if withVals && !eqValue(ea.val, eb.val) {
					return false
				}
			case ea.key == nil && eb.key == nil:
				if !equalNodes(ea.child(), eb.child(), withVals) {
					return false
				}
			default:
				return false
			}
		}
		return true
	case *collision:
		bt, ok := b.(*collision)
		if !ok || at.hash != bt.hash || len(at.items) != len(bt.items) {
			return false
		}
	outer:
		for _, ea := range at.items {
			for _, eb := range bt.items {
				if ea.key.Equal(eb.key) {
					if withVals && !eqValue(ea.val, eb.val) {
						return false
					}
					continue outer
				}
			}
			return false
		}
		return true
	}
	return false
}

// rootify normalizes an algebra result for use as a container root, so
// that equal containers keep identical trie shapes no matter how they
// were produced.
func rootify(n node, o *owner) node {
	if item, ok := collapsed(n); ok {
		if item.key != nil {
			return &branch{owner: o, bitmap: bitpos(0, item.key.Hash()), entries: []entry{item}, count: 1}
		}
		n = item.child() // hoisted bucket, rewrapped below
	}
	if c, ok := n.(*collision); ok {
		return &branch{owner: o, bitmap: bitpos(0, c.hash), entries: []entry{{nil, node(c)}}, count: len(c.items)}
	}
	return n
}
