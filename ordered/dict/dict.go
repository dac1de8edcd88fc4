// Package dict implements a dictionary that remembers key insertion
// order. A backing slice holds the items in arrival order; a hamt.Dict
// maps each key to its slice position for O(1) lookup.
package dict

import (
	"fmt"
	"strings"

	"github.com/aglyzov/go-pds/hamt"
)

// Item is one key-value pair.
type Item struct {
	Key hamt.Key
	Val any
}

type Dict struct {
	items []Item
	pos   *hamt.Dict // key -> position in items
}

// NewDict returns a dictionary holding the given items in
// first-insertion order. Later items with equal keys overwrite the
// value but keep the original position.
func NewDict(items ...Item) *Dict {
	d := &Dict{pos: hamt.NewDict()}
	for _, it := range items {
		d.Set(it.Key, it.Val)
	}
	return d
}

// Len returns the number of items.
func (d *Dict) Len() int {
	return len(d.items)
}

// Empty reports whether the dictionary has no items.
func (d *Dict) Empty() bool {
	return len(d.items) == 0
}

// Has reports whether k has an associated value.
func (d *Dict) Has(k hamt.Key) bool {
	return d.pos.Has(k)
}

// Get returns the value stored under k.
func (d *Dict) Get(k hamt.Key) (any, bool) {
	p, ok := d.pos.Get(k)
	if !ok {
		return nil, false
	}
	return d.items[p.(int)].Val, true
}

// Set associates v with k. A new key appends; an existing key keeps
// its position. Returns the previous value and whether one was
// replaced.
func (d *Dict) Set(k hamt.Key, v any) (any, bool) {
	if p, ok := d.pos.Get(k); ok {
		i := p.(int)
		prev := d.items[i].Val
		d.items[i].Val = v
		return prev, true
	}
	d.pos.Set(k, len(d.items))
	d.items = append(d.items, Item{Key: k, Val: v})
	return nil, false
}

// Del removes the item for k, returning the removed value and whether
// an item existed. Later items shift down one position, so removal is
// O(n).
func (d *Dict) Del(k hamt.Key) (any, bool) {
	p, ok := d.pos.Get(k)
	if !ok {
		return nil, false
	}
	i := p.(int)
	prev := d.items[i].Val
	d.pos.Del(k)
	d.items = append(d.items[:i], d.items[i+1:]...)
	for ; i < len(d.items); i++ {
		d.pos.Set(d.items[i].Key, i)
	}
	return prev, true
}

// At returns the item at position i. Panics when i is out of range.
func (d *Dict) At(i int) Item {
	if i < 0 || i >= len(d.items) {
		panic("dict: position out of range")
	}
	return d.items[i]
}

// IndexOf returns k's insertion position.
func (d *Dict) IndexOf(k hamt.Key) (int, bool) {
	p, ok := d.pos.Get(k)
	if !ok {
		return 0, false
	}
	return p.(int), true
}

// Iter calls fn for every item in insertion order until fn returns
// false. It reports whether the whole dictionary was visited.
func (d *Dict) Iter(fn func(hamt.Key, any) bool) bool {
	for _, it := range d.items {
		if !fn(it.Key, it.Val) {
			return false
		}
	}
	return true
}

// Keys returns all keys in insertion order.
func (d *Dict) Keys() []hamt.Key {
	keys := make([]hamt.Key, len(d.items))
	for i, it := range d.items {
		keys[i] = it.Key
	}
	return keys
}

// Values returns all values in insertion order.
func (d *Dict) Values() []any {
	vals := make([]any, len(d.items))
	for i, it := range d.items {
		vals[i] = it.Val
	}
	return vals
}

// Clone returns an independent copy preserving order.
func (d *Dict) Clone() *Dict {
	return &Dict{
		items: append([]Item(nil), d.items...),
		pos:   d.pos.Clone(),
	}
}

func (d *Dict) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, it := range d.items {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v:%v", it.Key, it.Val)
	}
	b.WriteByte('}')
	return b.String()
}
