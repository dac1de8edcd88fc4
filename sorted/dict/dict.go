// Package dict implements a dictionary over an AVL-balanced binary
// search tree. Keys are ordered by a user comparison function;
// iteration yields items in ascending key order.
package dict

import (
	"fmt"
	"strings"
)

// Item is one key-value pair.
type Item struct {
	Key any
	Val any
}

type node struct {
	key, val    any
	left, right *node
	height      int
}

// Dict is a sorted dictionary. Construct with NewDict; two keys a and
// b are considered equal when neither less(a, b) nor less(b, a) holds.
type Dict struct {
	less func(a, b any) bool
	root *node
	size int
}

// NewDict returns an empty dictionary ordered by less.
func NewDict(less func(a, b any) bool) *Dict {
	return &Dict{less: less}
}

// Len returns the number of items.
func (d *Dict) Len() int {
	return d.size
}

// Empty reports whether the dictionary has no items.
func (d *Dict) Empty() bool {
	return d.size == 0
}

// Get returns the value stored under k.
func (d *Dict) Get(k any) (any, bool) {
	n := d.root
	for n != nil {
		switch {
		case d.less(k, n.key):
			n = n.left
		case d.less(n.key, k):
			n = n.right
		default:
			return n.val, true
		}
	}
	return nil, false
}

// Has reports whether k has an associated value.
func (d *Dict) Has(k any) bool {
	_, ok := d.Get(k)
	return ok
}

// Set associates v with k. It returns the previous value and whether
// one was replaced.
func (d *Dict) Set(k, v any) (prev any, replaced bool) {
	d.root, prev, replaced = d.insert(d.root, k, v)
	if !replaced {
		d.size++
	}
	return prev, replaced
}

// Del removes the item for k, returning the removed value and whether
// an item existed.
func (d *Dict) Del(k any) (prev any, found bool) {
	d.root, prev, found = d.remove(d.root, k)
	if found {
		d.size--
	}
	return prev, found
}

// Min returns the item with the smallest key.
func (d *Dict) Min() (Item, bool) {
	if d.root == nil {
		return Item{}, false
	}
	n := d.root
	for n.left != nil {
		n = n.left
	}
	return Item{Key: n.key, Val: n.val}, true
}

// Max returns the item with the largest key.
func (d *Dict) Max() (Item, bool) {
	if d.root == nil {
		return Item{}, false
	}
	n := d.root
	for n.right != nil {
		n = n.right
	}
	return Item{Key: n.key, Val: n.val}, true
}

// Iter calls fn for every item in ascending key order until fn returns
// false. It reports whether the whole dictionary was visited.
func (d *Dict) Iter(fn func(k, v any) bool) bool {
	return each(d.root, fn)
}

// Keys returns all keys in ascending order.
func (d *Dict) Keys() []any {
	keys := make([]any, 0, d.size)
	d.Iter(func(k, _ any) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Values returns all values in ascending key order.
func (d *Dict) Values() []any {
	vals := make([]any, 0, d.size)
	d.Iter(func(_, v any) bool {
		vals = append(vals, v)
		return true
	})
	return vals
}

func (d *Dict) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	d.Iter(func(k, v any) bool {
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

func each(n *node, fn func(k, v any) bool) bool {
	if n == nil {
		return true
	}
	return each(n.left, fn) && fn(n.key, n.val) && each(n.right, fn)
}

func (d *Dict) insert(n *node, k, v any) (*node, any, bool) {
	if n == nil {
		return &node{key: k, val: v, height: 1}, nil, false
	}
	var (
		prev     any
		replaced bool
	)
	switch {
	case d.less(k, n.key):
		n.left, prev, replaced = d.insert(n.left, k, v)
	case d.less(n.key, k):
		n.right, prev, replaced = d.insert(n.right, k, v)
	default:
		prev, n.val = n.val, v
		return n, prev, true
	}
	return rebalance(n), prev, replaced
}

func (d *Dict) remove(n *node, k any) (*node, any, bool) {
	if n == nil {
		return nil, nil, false
	}
	var (
		prev  any
		found bool
	)
	switch {
	case d.less(k, n.key):
		n.left, prev, found = d.remove(n.left, k)
	case d.less(n.key, k):
		n.right, prev, found = d.remove(n.right, k)
	default:
		prev, found = n.val, true
		if n.left == nil {
			return n.right, prev, true
		}
		if n.right == nil {
			return n.left, prev, true
		}
		// Two children: pull up the in-order successor.
		s := n.right
		for s.left != nil {
			s = s.left
		}
		n.key, n.val = s.key, s.val
		n.right, _, _ = d.remove(n.right, s.key)
	}
	if !found {
		return n, nil, false
	}
	return rebalance(n), prev, true
}

func height(n *node) int {
	if n == nil {
		return 0
	}
	return n.height
}

func balance(n *node) int {
	return height(n.left) - height(n.right)
}

func refresh(n *node) *node {
	n.height = 1 + max(height(n.left), height(n.right))
	return n
}

func rebalance(n *node) *node {
	refresh(n)
	switch b := balance(n); {
	case b > 1:
		if balance(n.left) < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case b < -1:
		if balance(n.right) > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	}
	return n
}

func rotateLeft(n *node) *node {
	r := n.right
	n.right = r.left
	r.left = refresh(n)
	return refresh(r)
}

func rotateRight(n *node) *node {
	l := n.left
	n.left = l.right
	l.right = refresh(n)
	return refresh(l)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
