package queue

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// sharedState is the reference-counted part every handle points to.
type sharedState[T any] struct {
	refs  atomic.Int32
	queue *Blocking[T]
	log   *zap.Logger
}

// Shared is a reference-counted handle to a Blocking queue.
//
// Each producer or consumer goroutine holds its own handle, obtained from
// Acquire, and calls Release when done. Releasing the last handle closes the
// queue, which wakes any consumer still blocked in it.
type Shared[T any] struct {
	state    *sharedState[T]
	released atomic.Bool
}

// NewShared creates a queue owned by a single handle.
func NewShared[T any](opts ...Option) *Shared[T] {
	o := newOptions(opts)
	st := &sharedState[T]{
		queue: New[T](opts...),
		log:   o.log,
	}
	st.refs.Store(1)
	return &Shared[T]{state: st}
}

// Acquire returns a new handle to the same queue.
// It panics with ErrReleased if this handle or the queue has been released.
func (s *Shared[T]) Acquire() *Shared[T] {
	if s.released.Load() {
		panic(ErrReleased)
	}
	for {
		n := s.state.refs.Load()
		if n <= 0 {
			panic(ErrReleased)
		}
		if s.state.refs.CompareAndSwap(n, n+1) {
			return &Shared[T]{state: s.state}
		}
	}
}

// Queue returns the underlying queue.
func (s *Shared[T]) Queue() *Blocking[T] {
	return s.state.queue
}

// Release drops this handle's reference. Further calls on the same handle
// are no-ops. The last release closes the queue.
func (s *Shared[T]) Release() {
	if !s.released.CompareAndSwap(false, true) {
		return
	}
	if s.state.refs.Add(-1) == 0 {
		s.state.queue.Close()
		s.state.log.Info("shared queue released",
			zap.Int("pending", s.state.queue.Len()))
	}
}

// Refs returns the number of live handles.
func (s *Shared[T]) Refs() int32 {
	return s.state.refs.Load()
}
