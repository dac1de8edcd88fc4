// Package heap implements an array-backed binary min-heap ordered by a
// user comparison function.
package heap

// Heap is a min-heap of arbitrary values: Pop always returns an
// element that no remaining element orders before. Construct with New.
type Heap struct {
	less  func(a, b any) bool
	elems []any
}

// New returns an empty heap ordered by less.
func New(less func(a, b any) bool) *Heap {
	return &Heap{less: less}
}

// Len returns the number of elements.
func (h *Heap) Len() int {
	return len(h.elems)
}

// Empty reports whether the heap has no elements.
func (h *Heap) Empty() bool {
	return len(h.elems) == 0
}

// Push inserts v.
func (h *Heap) Push(v any) {
	h.elems = append(h.elems, v)
	h.up(len(h.elems) - 1)
}

// Pop removes and returns the minimum element. Panics when empty.
func (h *Heap) Pop() any {
	if len(h.elems) == 0 {
		panic("heap: pop from an empty heap")
	}
	top := h.elems[0]
	last := len(h.elems) - 1
	h.elems[0] = h.elems[last]
	h.elems[last] = nil
	h.elems = h.elems[:last]
	if last > 0 {
		h.down(0)
	}
	return top
}

// Peek returns the minimum element without removing it. Panics when
// empty.
func (h *Heap) Peek() any {
	if len(h.elems) == 0 {
		panic("heap: peek at an empty heap")
	}
	return h.elems[0]
}

// Fix restores heap order after the element at index i changed its
// ordering key in place.
func (h *Heap) Fix(i int) {
	if i < 0 || i >= len(h.elems) {
		panic("heap: index out of range")
	}
	h.down(i)
	h.up(i)
}

func (h *Heap) up(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !h.less(h.elems[i], h.elems[p]) {
			break
		}
		h.elems[i], h.elems[p] = h.elems[p], h.elems[i]
		i = p
	}
}

func (h *Heap) down(i int) {
	n := len(h.elems)
	for {
		min := i
		if l := 2*i + 1; l < n && h.less(h.elems[l], h.elems[min]) {
			min = l
		}
		if r := 2*i + 2; r < n && h.less(h.elems[r], h.elems[min]) {
			min = r
		}
		if min == i {
			return
		}
		h.elems[i], h.elems[min] = h.elems[min], h.elems[i]
		i = min
	}
}
