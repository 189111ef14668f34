package queue

import (
	"go.uber.org/zap"

	"github.com/huynhanx03/go-concurrentqueue/pkg/settings"
)

type options struct {
	capacity int
	log      *zap.Logger
}

// Option configures a Blocking queue.
type Option func(*options)

// WithCapacity preallocates room for n items. The queue still grows past n.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithConfig applies a settings.Queue section.
func WithConfig(cfg settings.Queue) Option {
	return WithCapacity(cfg.InitialCapacity)
}

func newOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
