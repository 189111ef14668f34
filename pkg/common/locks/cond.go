// Package locks provides synchronization primitives missing from the standard library.
package locks

import (
	"context"
	"sync"
	"time"
)

// waiter is a single parked goroutine. ready is buffered so a notifier never blocks.
type waiter struct {
	ready  chan struct{}
	prev   *waiter
	next   *waiter
	linked bool
}

// Cond is a condition variable associated with a Locker, like sync.Cond,
// whose waits can be bounded by a context or a deadline.
//
// Waiters are woken in FIFO order. As with sync.Cond, a wake-up does not
// guarantee the awaited condition holds: callers must re-check it in a loop.
//
// A Cond must not be copied after first use.
type Cond struct {
	// L is held while observing or changing the condition.
	L sync.Locker

	mu   sync.Mutex // guards the waiter list, independent of L
	head *waiter
	tail *waiter
}

// NewCond returns a new Cond with Locker l.
func NewCond(l sync.Locker) *Cond {
	return &Cond{L: l}
}

// Wait atomically unlocks c.L and suspends the calling goroutine until it is
// woken by Signal or Broadcast, or until ctx is done. c.L is locked again
// before Wait returns, in every case.
//
// Wait returns ctx.Err() when the context ended the wait. A wake-up that
// raced with the context is passed on to the next waiter, so Signal is never lost.
func (c *Cond) Wait(ctx context.Context) error {
	w := c.park()
	c.L.Unlock()
	defer c.L.Lock()

	select {
	case <-w.ready:
		return nil
	case <-ctx.Done():
	}

	if !c.unpark(w) {
		// Already unlinked by a notifier: the wake-up belongs to someone else.
		c.Signal()
	}
	return ctx.Err()
}

// WaitUntil is Wait bounded by an absolute deadline.
// It reports false if the deadline passed before a wake-up arrived.
func (c *Cond) WaitUntil(deadline time.Time) bool {
	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()
	return c.Wait(ctx) == nil
}

// Signal wakes the longest-waiting goroutine, if there is any.
// It is allowed but not required for the caller to hold c.L.
func (c *Cond) Signal() {
	c.mu.Lock()
	if w := c.head; w != nil {
		c.unlink(w)
		w.ready <- struct{}{}
	}
	c.mu.Unlock()
}

// Broadcast wakes all goroutines waiting on c.
// It is allowed but not required for the caller to hold c.L.
func (c *Cond) Broadcast() {
	c.mu.Lock()
	for w := c.head; w != nil; w = c.head {
		c.unlink(w)
		w.ready <- struct{}{}
	}
	c.mu.Unlock()
}

// Waiters returns the number of goroutines currently parked on c.
func (c *Cond) Waiters() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for w := c.head; w != nil; w = w.next {
		n++
	}
	return n
}

// park appends a new waiter to the tail of the list.
func (c *Cond) park() *waiter {
	w := &waiter{ready: make(chan struct{}, 1), linked: true}

	c.mu.Lock()
	if c.tail == nil {
		c.head = w
	} else {
		c.tail.next = w
		w.prev = c.tail
	}
	c.tail = w
	c.mu.Unlock()

	return w
}

// unpark removes w from the list. It reports false if a notifier got there first.
func (c *Cond) unpark(w *waiter) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !w.linked {
		return false
	}
	c.unlink(w)
	return true
}

// unlink detaches w. c.mu must be held.
func (c *Cond) unlink(w *waiter) {
	if w.prev == nil {
		c.head = w.next
	} else {
		w.prev.next = w.next
	}
	if w.next == nil {
		c.tail = w.prev
	} else {
		w.next.prev = w.prev
	}
	w.prev, w.next = nil, nil
	w.linked = false
}
