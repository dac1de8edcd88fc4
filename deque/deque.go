// Package deque implements a double-ended queue over a circular
// buffer. Pushes at either end are amortized O(1); the buffer doubles
// when full.
package deque

const minCap = 8

// Deque is a double-ended queue of arbitrary values. The zero value is
// an empty deque ready to use.
type Deque struct {
	buf   []any
	head  int // index of the front element
	count int
}

// New returns an empty deque with room for at least n elements.
func New(n int) *Deque {
	c := minCap
	for c < n {
		c <<= 1
	}
	return &Deque{buf: make([]any, c)}
}

// Len returns the number of elements.
func (d *Deque) Len() int {
	return d.count
}

// Empty reports whether the deque has no elements.
func (d *Deque) Empty() bool {
	return d.count == 0
}

// PushFront prepends v.
func (d *Deque) PushFront(v any) {
	d.grow()
	d.head = d.wrap(d.head - 1)
	d.buf[d.head] = v
	d.count++
}

// PushBack appends v.
func (d *Deque) PushBack(v any) {
	d.grow()
	d.buf[d.wrap(d.head+d.count)] = v
	d.count++
}

// PopFront removes and returns the front element. Panics when empty.
func (d *Deque) PopFront() any {
	if d.count == 0 {
		panic("deque: pop from an empty deque")
	}
	v := d.buf[d.head]
	d.buf[d.head] = nil
	d.head = d.wrap(d.head + 1)
	d.count--
	return v
}

// PopBack removes and returns the back element. Panics when empty.
func (d *Deque) PopBack() any {
	if d.count == 0 {
		panic("deque: pop from an empty deque")
	}
	i := d.wrap(d.head + d.count - 1)
	v := d.buf[i]
	d.buf[i] = nil
	d.count--
	return v
}

// Front returns the front element without removing it. Panics when
// empty.
func (d *Deque) Front() any {
	if d.count == 0 {
		panic("deque: front of an empty deque")
	}
	return d.buf[d.head]
}

// Back returns the back element without removing it. Panics when
// empty.
func (d *Deque) Back() any {
	if d.count == 0 {
		panic("deque: back of an empty deque")
	}
	return d.buf[d.wrap(d.head+d.count-1)]
}

// At returns the i-th element counting from the front. Panics when i
// is out of range.
func (d *Deque) At(i int) any {
	if i < 0 || i >= d.count {
		panic("deque: index out of range")
	}
	return d.buf[d.wrap(d.head+i)]
}

// Iter calls fn for every element front to back until fn returns
// false. It reports whether the whole deque was visited.
func (d *Deque) Iter(fn func(any) bool) bool {
	for i := 0; i < d.count; i++ {
		if !fn(d.buf[d.wrap(d.head+i)]) {
			return false
		}
	}
	return true
}

func (d *Deque) wrap(i int) int {
	return i & (len(d.buf) - 1) // capacity is a power of two
}

func (d *Deque) grow() {
	if d.count < len(d.buf) {
		return
	}
	buf := make([]any, 2*len(d.buf))
	if d.count == 0 {
		buf = make([]any, minCap)
	}
	n := copy(buf, d.buf[d.head:])
	copy(buf[n:], d.buf[:d.head])
	d.buf = buf
	d.head = 0
}
