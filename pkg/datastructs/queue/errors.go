package queue

import "github.com/pkg/errors"

var (
	// ErrClosed is returned by producers after Close, and by blocking
	// consumers once the queue is closed and empty.
	ErrClosed = errors.New("queue: closed")

	// ErrReleased is the panic value of Acquire on a released Shared handle.
	ErrReleased = errors.New("queue: shared handle released")
)
