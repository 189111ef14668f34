package batcher

// Consumer is the interface that must be implemented by users of the Batcher.
// It is responsible for processing a batch of items.
type Consumer[T any] interface {
	// Consume processes a batch of items. The batch is owned by the callee.
	// Returns an error if processing fails; the batch is not retried.
	Consume(batch []T) error
}

// ConsumerFunc adapts a plain function to Consumer.
type ConsumerFunc[T any] func(batch []T) error

// Consume calls f(batch).
func (f ConsumerFunc[T]) Consume(batch []T) error { return f(batch) }

// Stats is a snapshot of Batcher counters.
type Stats struct {
	Batches  int64 // batches handed to the consumer
	Items    int64 // items across those batches
	Failures int64 // batches the consumer returned an error for
}
