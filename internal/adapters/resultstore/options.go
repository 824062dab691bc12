package resultstore

// Option applies a configuration option to the InMemoryStore.
type Option[T any] func(*InMemoryStore[T])

// WithHistorySize bounds the ring of retained results. Sizes below 1 keep
// the default.
func WithHistorySize[T any](size int) Option[T] {
	return func(s *InMemoryStore[T]) {
		if size > 0 {
			s.historySize = size
		}
	}
}
