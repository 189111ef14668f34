package buffer

import (
	"github.com/huynhanx03/go-concurrentqueue/pkg/utils"
)

// Ring is a growable circular buffer of T with FIFO access.
// Capacity is always zero or a power of two so indexes wrap with a mask.
// It is NOT thread-safe.
type Ring[T any] struct {
	buf  []T
	head int // index of the oldest element
	size int // number of buffered elements
}

// NewRing creates a new Ring with the given initial capacity.
// The capacity will be rounded up to the nearest power of two.
// A capacity of zero defers allocation until the first push.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		return &Ring[T]{}
	}
	return &Ring[T]{buf: make([]T, utils.CeilToPowerOfTwo(capacity))}
}

func (r *Ring[T]) mask() int { return len(r.buf) - 1 }

// Len returns the number of buffered elements.
func (r *Ring[T]) Len() int { return r.size }

// Cap returns the capacity of the underlying buffer.
func (r *Ring[T]) Cap() int { return len(r.buf) }

// IsEmpty returns true if the ring holds no elements.
func (r *Ring[T]) IsEmpty() bool { return r.size == 0 }

// PushBack appends v at the tail, growing the buffer when full.
func (r *Ring[T]) PushBack(v T) {
	r.grow(1)
	r.buf[(r.head+r.size)&r.mask()] = v
	r.size++
}

// PushBackMany appends vs at the tail in order.
// The buffer grows at most once; vs is not retained.
func (r *Ring[T]) PushBackMany(vs []T) {
	if len(vs) == 0 {
		return
	}
	r.grow(len(vs))

	tail := (r.head + r.size) & r.mask()
	n := copy(r.buf[tail:], vs)
	copy(r.buf, vs[n:])
	r.size += len(vs)
}

// Front returns the oldest element without removing it.
func (r *Ring[T]) Front() (T, bool) {
	if r.size == 0 {
		var zero T
		return zero, false
	}
	return r.buf[r.head], true
}

// PopFront removes and returns the oldest element.
// Returns (zero, false) if the ring is empty.
func (r *Ring[T]) PopFront() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}

	v := r.buf[r.head]
	r.buf[r.head] = zero // drop the reference for the GC
	r.head = (r.head + 1) & r.mask()
	r.size--
	r.shrink()
	return v, true
}

// PopFrontN removes up to n of the oldest elements and appends them to dst in order.
// n <= 0 removes everything.
func (r *Ring[T]) PopFrontN(dst []T, n int) []T {
	if n <= 0 || n > r.size {
		n = r.size
	}
	if n == 0 {
		return dst
	}

	var zero T
	for i := 0; i < n; i++ {
		idx := (r.head + i) & r.mask()
		dst = append(dst, r.buf[idx])
		r.buf[idx] = zero
	}
	r.head = (r.head + n) & r.mask()
	r.size -= n
	r.shrink()
	return dst
}

// Reset drops all elements and releases the backing storage.
func (r *Ring[T]) Reset() {
	r.buf = nil
	r.head = 0
	r.size = 0
}

// grow makes room for n more elements.
func (r *Ring[T]) grow(n int) {
	need := r.size + n
	if need <= len(r.buf) {
		return
	}

	newCap := len(r.buf) * 2
	if newCap < defaultRingCap {
		newCap = defaultRingCap
	}
	if newCap < need {
		newCap = utils.CeilToPowerOfTwo(need)
	}
	r.resize(newCap)
}

// shrink halves the buffer once it is mostly idle, keeping at least defaultRingCap slots.
func (r *Ring[T]) shrink() {
	c := len(r.buf)
	if c <= ringShrinkFloor || r.size > c/ringShrinkRatio {
		return
	}
	r.resize(c / 2)
}

// resize moves the buffered elements, oldest first, into a buffer of capacity newCap.
func (r *Ring[T]) resize(newCap int) {
	buf := make([]T, newCap)
	if r.size > 0 {
		end := r.head + r.size
		if end <= len(r.buf) {
			copy(buf, r.buf[r.head:end])
		} else {
			n := copy(buf, r.buf[r.head:])
			copy(buf[n:], r.buf[:end&r.mask()])
		}
	}
	r.buf = buf
	r.head = 0
}
