package hamt

import (
	"fmt"
	"strings"
)

// Item is one key-value pair of a Dict.
type Item struct {
	Key Key
	Val any
}

// Dict is a persistent unordered dictionary sharing the Set's trie
// engine. The zero value is not usable; construct with NewDict.
type Dict struct {
	core
}

// NewDict returns a dictionary holding the given items. Later items
// with equal keys overwrite earlier ones.
func NewDict(items ...Item) *Dict {
	d := &Dict{newCore()}
	for _, it := range items {
		d.Set(it.Key, it.Val)
	}
	return d
}

// Get returns the value stored under k.
func (d *Dict) Get(k Key) (any, bool) {
	e, ok := findNode(d.root, 0, k.Hash(), k)
	if !ok {
		return nil, false
	}
	return e.val, true
}

// Has reports whether k has an associated value.
func (d *Dict) Has(k Key) bool {
	_, ok := findNode(d.root, 0, k.Hash(), k)
	return ok
}

// Set associates v with k. It returns the previous value and whether
// one was replaced.
func (d *Dict) Set(k Key, v any) (any, bool) {
	d.invalidate()
	root, prev, added := insertNode(d.root, d.owner, 0, k.Hash(), entry{key: k, val: v}, true)
	d.root = root
	if added {
		d.count++
		return nil, false
	}
	return prev.val, true
}

// Del removes the entry for k, returning the removed value and whether
// an entry existed.
func (d *Dict) Del(k Key) (any, bool) {
	d.invalidate()
	if d.root == nil {
		return nil, false
	}
	root, removed, found := removeNode(d.root, d.owner, 0, k.Hash(), k)
	if !found {
		return nil, false
	}
	d.root = root
	d.count--
	return removed.val, true
}

// IndexOf returns a positional index for k's entry. The index stays
// valid until the next mutating operation on d.
func (d *Dict) IndexOf(k Key) (Index, bool) {
	steps, ok := indexOfNode(d.root, k.Hash(), k)
	if !ok {
		return Index{}, false
	}
	return Index{src: &d.core, gen: d.gen, steps: steps}, true
}

// At returns the item at idx. Panics on a stale or foreign index.
func (d *Dict) At(idx Index) Item {
	d.check(idx)
	e := idx.entryAt()
	return Item{Key: e.key, Val: e.val}
}

// SetAt replaces the value at idx, returning the previous value. The
// key, and with it the hash address, is untouched. Panics on a stale
// or foreign index.
func (d *Dict) SetAt(idx Index, v any) any {
	d.check(idx)
	old := idx.entryAt()
	d.invalidate()
	d.root = replaceAtPath(idx.steps, d.owner, entry{key: old.key, val: v})
	return old.val
}

// DelAt removes the item at idx without recomputing its hash. Panics
// on a stale or foreign index.
func (d *Dict) DelAt(idx Index) Item {
	d.check(idx)
	d.invalidate()
	root, removed := removeAtPath(idx.steps, d.owner)
	d.root = root
	d.count--
	return Item{Key: removed.key, Val: removed.val}
}

// Update replaces the key stored at idx with k, which must compare
// equal to it, keeping the associated value. Returns the previous key.
// Panics when k is not equal to the stored key, or on a stale or
// foreign index.
func (d *Dict) Update(k Key, idx Index) Key {
	d.check(idx)
	old := idx.entryAt()
	if !k.Equal(old.key) {
		panic("hamt: replacement key is not equal to the stored key")
	}
	d.invalidate()
	d.root = replaceAtPath(idx.steps, d.owner, entry{key: k, val: old.val})
	return old.key
}

// Clone returns a copy sharing the whole trie.
func (d *Dict) Clone() *Dict {
	return &Dict{core{root: d.share(), count: d.count, owner: newOwner()}}
}

// Iter calls fn for every item in trie order until fn returns false.
// It reports whether the whole dictionary was visited.
func (d *Dict) Iter(fn func(Key, any) bool) bool {
	return eachItem(d.root, func(e entry) bool { return fn(e.key, e.val) })
}

// Iterator returns a restartable walker over the dictionary in trie
// order.
func (d *Dict) Iterator() *Iterator {
	return newIterator(&d.core)
}

// Keys returns all keys in trie order.
func (d *Dict) Keys() []Key {
	keys := make([]Key, 0, d.count)
	d.Iter(func(k Key, _ any) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Values returns all values in trie order.
func (d *Dict) Values() []any {
	vals := make([]any, 0, d.count)
	d.Iter(func(_ Key, v any) bool {
		vals = append(vals, v)
		return true
	})
	return vals
}

// Merge returns a dictionary with the entries of both d and other.
// When a key is present in both, combine picks the resulting value; a
// nil combine keeps d's. Shared subtrees are skipped wholesale.
func (d *Dict) Merge(other *Dict, combine func(k Key, v, w any) any) *Dict {
	resolve := setResolve
	if combine != nil {
		resolve = func(ea, eb entry) (entry, bool) {
			return entry{key: ea.key, val: combine(ea.key, ea.val, eb.val)}, false
		}
	}
	ra, rb := d.share(), other.share()
	o := newOwner()
	root := rootify(unionNodes(ra, rb, o, 0, resolve), o)
	return &Dict{core{root: root, count: nodeSize(root), owner: o}}
}

// Equal reports whether d and other hold the same keys with equal
// values. Values are compared with their Equal method when they have
// one, with == when comparable, and with deep equality otherwise.
func (d *Dict) Equal(other *Dict) bool {
	return d.count == other.count && equalNodes(d.root, other.root, true)
}

func (d *Dict) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	d.Iter(func(k Key, v any) bool {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&b, "%v:%v", k, v)
		return true
	})
	b.WriteByte('}')
	return b.String()
}
