package queue

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-concurrentqueue/pkg/common/locks"
	"github.com/huynhanx03/go-concurrentqueue/pkg/datastructs/buffer"
)

var _ Queue[int] = (*Blocking[int])(nil)

// Blocking is an unbounded multiple-producer multiple-consumer FIFO queue.
//
// Producers never block. Consumers choose between Pop (blocks until an item
// arrives), TryPop (never blocks) and the bounded PopTimeout. Wait, WaitFor
// and WaitUntil report availability without consuming; another consumer may
// take the item before the caller gets to it.
//
// Items pushed by one goroutine are popped in push order. Items from different
// producers are ordered by when each producer acquired the queue lock.
//
// All methods are safe for concurrent use. A Blocking must not be copied.
type Blocking[T any] struct {
	mu     sync.Mutex
	cond   *locks.Cond
	items  *buffer.Ring[T]
	closed bool

	size atomic.Int64 // mirrors items.Len() for lock-free reads
	log  *zap.Logger
}

// New creates an empty queue.
func New[T any](opts ...Option) *Blocking[T] {
	o := newOptions(opts)
	b := &Blocking[T]{
		items: buffer.NewRing[T](o.capacity),
		log:   o.log,
	}
	b.cond = locks.NewCond(&b.mu)
	return b
}

// =============================================================================
// Producers
// =============================================================================

// Push appends item to the tail and wakes one waiting consumer.
// Any value is accepted, including the zero value.
// Returns ErrClosed if the queue has been closed.
func (b *Blocking[T]) Push(item T) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.items.PushBack(item)
	b.size.Add(1)
	b.mu.Unlock()

	b.cond.Signal()
	return nil
}

// PushMany appends items in order as one atomic step and wakes every waiting
// consumer. No other operation observes a partial batch. items is read but
// not retained, so the caller may reuse it once PushMany returns.
// Returns ErrClosed if the queue has been closed.
func (b *Blocking[T]) PushMany(items []T) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	if len(items) == 0 {
		b.mu.Unlock()
		return nil
	}
	b.items.PushBackMany(items)
	b.size.Add(int64(len(items)))
	b.mu.Unlock()

	b.cond.Broadcast()
	return nil
}

// Enqueue is Push reporting success as a bool.
func (b *Blocking[T]) Enqueue(item T) bool {
	return b.Push(item) == nil
}

// =============================================================================
// Consumers
// =============================================================================

// Pop removes and returns the head, blocking while the queue is empty.
//
// It fails with the context's error if ctx is done first, and with ErrClosed
// once the queue is closed and every remaining item has been taken. A nil ctx
// behaves like context.Background, waiting indefinitely.
func (b *Blocking[T]) Pop(ctx context.Context) (T, error) {
	var zero T
	if ctx == nil {
		ctx = context.Background()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.waitLocked(ctx); err != nil {
		return zero, errors.Wrap(err, "queue: pop")
	}
	return b.popLocked(), nil
}

// TryPop removes and returns the head without blocking.
// ok is false if the queue is empty.
func (b *Blocking[T]) TryPop() (item T, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.items.IsEmpty() {
		return item, false
	}
	return b.popLocked(), true
}

// Dequeue is TryPop.
func (b *Blocking[T]) Dequeue() (T, bool) {
	return b.TryPop()
}

// PopTimeout waits up to d for an item and removes it in the same critical
// section, so unlike WaitFor followed by TryPop no other consumer can take it
// in between. ok is false on timeout or when the queue is closed and empty.
func (b *Blocking[T]) PopTimeout(d time.Duration) (item T, ok bool) {
	deadline := time.Now().Add(d)

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.waitUntilLocked(deadline) {
		return item, false
	}
	return b.popLocked(), true
}

// Drain removes up to max items (all of them when max <= 0) in one critical
// section and returns them oldest first. It never blocks; the result is empty
// when the queue is.
func (b *Blocking[T]) Drain(max int) []T {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.items.IsEmpty() {
		return nil
	}
	out := b.items.PopFrontN(nil, max)
	b.size.Add(-int64(len(out)))
	return out
}

// =============================================================================
// Waiting without consuming
// =============================================================================

// Wait blocks until the queue is non-empty, without removing anything.
// Errors are as for Pop.
func (b *Blocking[T]) Wait(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.waitLocked(ctx); err != nil {
		return errors.Wrap(err, "queue: wait")
	}
	return nil
}

// WaitFor waits up to d for the queue to become non-empty.
// It reports false only after d has fully elapsed, or at once when the queue
// is closed and empty. d <= 0 checks without waiting.
func (b *Blocking[T]) WaitFor(d time.Duration) bool {
	return b.WaitUntil(time.Now().Add(d))
}

// WaitUntil is WaitFor with an absolute deadline.
func (b *Blocking[T]) WaitUntil(deadline time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.waitUntilLocked(deadline)
}

// =============================================================================
// Inspection / lifecycle
// =============================================================================

// IsEmpty reports whether the queue is empty. The answer may be stale by the
// time the caller acts on it.
func (b *Blocking[T]) IsEmpty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.items.IsEmpty()
}

// Len returns the number of queued items without taking the lock.
// It is a diagnostic snapshot; use TryPop or Pop to make decisions.
func (b *Blocking[T]) Len() int {
	return int(b.size.Load())
}

// Close stops the queue from accepting items and wakes every waiting
// consumer. Items already queued can still be popped; after that, blocking
// consumers get ErrClosed. Close is idempotent.
func (b *Blocking[T]) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	pending := b.items.Len()
	b.mu.Unlock()

	b.cond.Broadcast()
	b.log.Debug("queue closed", zap.Int("pending", pending))
}

// Closed reports whether Close has been called.
func (b *Blocking[T]) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.closed
}

// waitLocked parks until items is non-empty. b.mu must be held.
func (b *Blocking[T]) waitLocked(ctx context.Context) error {
	for b.items.IsEmpty() {
		if b.closed {
			return ErrClosed
		}
		// Wake-ups are hints: loop re-checks the predicate.
		if err := b.cond.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// waitUntilLocked parks until items is non-empty or deadline passes.
// b.mu must be held.
func (b *Blocking[T]) waitUntilLocked(deadline time.Time) bool {
	for b.items.IsEmpty() {
		if b.closed || !time.Now().Before(deadline) {
			return false
		}
		if !b.cond.WaitUntil(deadline) {
			return !b.items.IsEmpty()
		}
	}
	return true
}

// popLocked removes the head. b.mu must be held and items non-empty.
func (b *Blocking[T]) popLocked() T {
	item, _ := b.items.PopFront()
	b.size.Add(-1)
	return item
}
