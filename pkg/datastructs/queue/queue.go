// Package queue provides an unbounded, blocking FIFO queue for handing items
// from producer goroutines to consumer goroutines.
package queue

// Queue is a generic interface for FIFO queues.
type Queue[T any] interface {
	// Enqueue adds an item to the queue.
	// Returns true if successful, false if the queue no longer accepts items.
	Enqueue(item T) bool

	// Dequeue removes and returns an item from the queue without blocking.
	// Returns (item, true) if successful, (zero, false) if the queue is empty.
	Dequeue() (T, bool)

	// IsEmpty reports whether the queue holds no items.
	IsEmpty() bool
}
