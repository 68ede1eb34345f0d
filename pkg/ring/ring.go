// ABOUTME: Generic fixed-capacity circular buffer with a movable yank cursor
// ABOUTME: Overwrites the oldest element when full; rotation wraps over live elements

package ring

import "iter"

// Buffer is a fixed-capacity ring of T. Elements are kept in insertion
// order; inserting into a full buffer overwrites the oldest element.
//
// Besides the write cursor, a Buffer carries a yank cursor that selects the
// "current" element. Positions are counted from the newest element: position
// 0 is the most recent insert, Len()-1 the oldest. Rotating by a positive
// count moves the cursor toward older elements.
//
// A Buffer is not safe for concurrent use.
type Buffer[T any] struct {
	slots []T
	head  int // next write index
	count int
	yank  int // yank cursor as distance from the newest element
}

// New creates a Buffer holding at most capacity elements.
// A capacity below 1 is treated as 1.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{slots: make([]T, capacity)}
}

// Len returns the number of live elements.
func (b *Buffer[T]) Len() int {
	return b.count
}

// Cap returns the maximum number of live elements.
func (b *Buffer[T]) Cap() int {
	return len(b.slots)
}

// Insert stores v as the newest element and moves the yank cursor onto it.
// When the buffer is full the oldest element is overwritten.
func (b *Buffer[T]) Insert(v T) {
	b.slots[b.head] = v
	b.head = (b.head + 1) % len(b.slots)
	if b.count < len(b.slots) {
		b.count++
	}
	b.yank = 0
}

// Current returns the element under the yank cursor.
func (b *Buffer[T]) Current() (T, bool) {
	return b.Index(b.yank)
}

// Position returns the yank cursor as a distance from the newest element.
func (b *Buffer[T]) Position() int {
	return b.yank
}

// Rotate moves the yank cursor by steps (positive toward older elements,
// negative toward newer), wrapping over the live elements, and returns the
// new current element. Rotating an empty buffer leaves it untouched.
func (b *Buffer[T]) Rotate(steps int) (T, bool) {
	if b.count == 0 {
		var zero T
		return zero, false
	}
	b.yank = mod(b.yank+steps, b.count)
	return b.Current()
}

// Index returns the element pos steps older than the newest one.
func (b *Buffer[T]) Index(pos int) (T, bool) {
	if pos < 0 || pos >= b.count {
		var zero T
		return zero, false
	}
	return b.slots[b.slot(pos)], true
}

// Newest returns the most recently inserted element.
func (b *Buffer[T]) Newest() (T, bool) {
	return b.Index(0)
}

// ReplaceNewest overwrites the most recently inserted element in place and,
// like Insert, moves the yank cursor onto it. It reports false when the
// buffer is empty.
func (b *Buffer[T]) ReplaceNewest(v T) bool {
	if b.count == 0 {
		return false
	}
	b.slots[b.slot(0)] = v
	b.yank = 0
	return true
}

// SetCapacity resizes the buffer. When shrinking below the live count the
// oldest elements are dropped. The yank cursor stays on its element if that
// element survives, otherwise it lands on the oldest survivor.
func (b *Buffer[T]) SetCapacity(n int) {
	if n < 1 {
		n = 1
	}
	if n == len(b.slots) {
		return
	}
	keep := min(b.count, n)
	slots := make([]T, n)
	// slots[0] is the oldest survivor, slots[keep-1] the newest.
	for i := range keep {
		slots[keep-1-i] = b.slots[b.slot(i)]
	}
	yank := b.yank
	if yank >= keep {
		yank = max(keep-1, 0)
	}
	b.slots = slots
	b.head = keep % n
	b.count = keep
	b.yank = yank
}

// Clear drops every element and resets both cursors.
func (b *Buffer[T]) Clear() {
	clear(b.slots)
	b.head = 0
	b.count = 0
	b.yank = 0
}

// All yields the live elements in insertion order, oldest first. Each call
// starts a fresh pass; the buffer must not be modified during iteration.
func (b *Buffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for pos := b.count - 1; pos >= 0; pos-- {
			if !yield(b.slots[b.slot(pos)]) {
				return
			}
		}
	}
}

// slot maps a distance from the newest element to a slot index.
func (b *Buffer[T]) slot(pos int) int {
	return mod(b.head-1-pos, len(b.slots))
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
