// Package batcher drains a blocking queue into batches for a Consumer.
package batcher

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/huynhanx03/go-concurrentqueue/pkg/datastructs/queue"
	"github.com/huynhanx03/go-concurrentqueue/pkg/settings"
)

const (
	defaultWorkers       = 1
	defaultBatchSize     = 512
	defaultFlushInterval = 100 * time.Millisecond
)

// Batcher pulls items from a queue with a fixed set of worker goroutines and
// hands them to a Consumer in batches.
//
// Behavior:
//   - A worker blocks until one item is available, then keeps collecting until
//     the batch is full or FlushInterval has passed since the first item.
//   - Every popped item is delivered in exactly one batch.
//   - Consumer errors are logged and counted; the batch is dropped.
//   - Run returns once the queue is closed and drained, or when ctx is done.
type Batcher[T any] struct {
	q        *queue.Blocking[T]
	cons     Consumer[T]
	workers  int
	size     int
	interval time.Duration
	log      *zap.Logger

	batches  atomic.Int64
	items    atomic.Int64
	failures atomic.Int64
}

// Option configures a Batcher.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger sets the logger used for consumer failures and worker exits.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// New creates a Batcher draining q into cons.
// Non-positive config values fall back to the defaults.
func New[T any](q *queue.Blocking[T], cons Consumer[T], cfg settings.Batcher, opts ...Option) *Batcher[T] {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	b := &Batcher[T]{
		q:        q,
		cons:     cons,
		workers:  cfg.Workers,
		size:     cfg.BatchSize,
		interval: cfg.FlushDuration(),
		log:      o.log,
	}
	if b.workers <= 0 {
		b.workers = defaultWorkers
	}
	if b.size <= 0 {
		b.size = defaultBatchSize
	}
	if b.interval <= 0 {
		b.interval = defaultFlushInterval
	}
	return b
}

// Run starts the workers and blocks until they all exit.
// It returns nil when the queue was closed and drained, otherwise the first
// worker error (wrapping ctx.Err() on cancellation).
func (b *Batcher[T]) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for id := 0; id < b.workers; id++ {
		g.Go(func() error { return b.work(gctx, id) })
	}
	return g.Wait()
}

// Stats returns the current counters.
func (b *Batcher[T]) Stats() Stats {
	return Stats{
		Batches:  b.batches.Load(),
		Items:    b.items.Load(),
		Failures: b.failures.Load(),
	}
}

func (b *Batcher[T]) work(ctx context.Context, id int) error {
	for {
		first, err := b.q.Pop(ctx)
		if errors.Is(err, queue.ErrClosed) {
			b.log.Debug("batcher worker stopped", zap.Int("worker", id))
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "batcher: worker %d", id)
		}

		batch := make([]T, 1, b.size)
		batch[0] = first
		b.flush(id, b.collect(batch))
	}
}

// collect tops batch up to the configured size, waiting at most one flush
// interval for stragglers.
func (b *Batcher[T]) collect(batch []T) []T {
	deadline := time.Now().Add(b.interval)
	for len(batch) < b.size {
		batch = append(batch, b.q.Drain(b.size-len(batch))...)
		if len(batch) >= b.size || !b.q.WaitUntil(deadline) {
			break
		}
	}
	return batch
}

func (b *Batcher[T]) flush(id int, batch []T) {
	b.batches.Add(1)
	b.items.Add(int64(len(batch)))

	if err := b.cons.Consume(batch); err != nil {
		b.failures.Add(1)
		b.log.Warn("batch consume failed",
			zap.Int("worker", id),
			zap.Int("size", len(batch)),
			zap.Error(err))
	}
}
