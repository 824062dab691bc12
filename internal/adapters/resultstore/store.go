// Package resultstore holds published pipeline results in memory.
//
// Publication is last-write-wins: when a newer snapshot supersedes an
// in-flight one, whichever result is published last is what readers see. A
// small ring of recent results is retained for the stats endpoint.
package resultstore

import (
	"context"
	"sync"
)

// Default store configuration constants.
const defaultHistorySize = 16

// Store provides read/write access to published results.
type Store[T any] interface {
	// Publish replaces the latest result (last-write-wins).
	Publish(ctx context.Context, result T)

	// Latest returns the most recently published result.
	// The bool result is false before the first publication.
	Latest(ctx context.Context) (T, bool)

	// History returns up to the configured number of recent results,
	// oldest first.
	History(ctx context.Context) []T

	// Count returns the number of publications since startup.
	Count(ctx context.Context) int
}

// InMemoryStore implements Store with a mutex-guarded ring buffer.
type InMemoryStore[T any] struct {
	mu          sync.RWMutex
	latest      T
	hasLatest   bool
	ring        []T
	ringStart   int
	ringLen     int
	historySize int
	published   int
}

// NewInMemoryStore creates an in-memory store with configuration options.
func NewInMemoryStore[T any](opts ...Option[T]) *InMemoryStore[T] {
	s := &InMemoryStore[T]{
		historySize: defaultHistorySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ring = make([]T, s.historySize)
	return s
}

// Publish replaces the latest result and appends it to the history ring.
func (s *InMemoryStore[T]) Publish(ctx context.Context, result T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = result
	s.hasLatest = true
	s.published++

	idx := (s.ringStart + s.ringLen) % s.historySize
	s.ring[idx] = result
	if s.ringLen < s.historySize {
		s.ringLen++
	} else {
		s.ringStart = (s.ringStart + 1) % s.historySize
	}
}

// Latest returns the most recently published result.
func (s *InMemoryStore[T]) Latest(ctx context.Context) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.hasLatest
}

// History returns the retained results, oldest first.
func (s *InMemoryStore[T]) History(ctx context.Context) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, s.ringLen)
	for i := 0; i < s.ringLen; i++ {
		out = append(out, s.ring[(s.ringStart+i)%s.historySize])
	}
	return out
}

// Count returns the number of publications since startup.
func (s *InMemoryStore[T]) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.published
}
