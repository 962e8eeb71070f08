package recordstore

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-memory Store. Same locking semantics as FileStore,
// no persistence.
type MemoryStore[T any] struct {
	mu      sync.Mutex
	name    string
	records []T
}

func NewMemoryStore[T any](name string) *MemoryStore[T] {
	return &MemoryStore[T]{name: name, records: []T{}}
}

func (s *MemoryStore[T]) Name() string { return s.name }

func (s *MemoryStore[T]) Load(_ context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.records), nil
}

func (s *MemoryStore[T]) Len(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records), nil
}

func (s *MemoryStore[T]) Append(_ context.Context, build BuildFunc[T]) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := build(slices.Clone(s.records))
	if err != nil {
		var zero T
		return zero, err
	}
	s.records = append(s.records, record)
	return record, nil
}
