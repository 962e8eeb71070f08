// Package recordstore keeps named, homogeneous, insert-only collections.
//
// A collection is read in full, extended by one record and written back in
// full inside a single locked append cycle. Services put their invariant
// checks (uniqueness, id assignment) into the build function of that cycle,
// so a check and the write it guards can never interleave with another
// append to the same collection.
package recordstore

import (
	"context"
	"fmt"
)

// BuildFunc receives the committed records of a collection, in insertion
// order, and returns the record to append. Returning an error aborts the
// cycle without writing anything. Implementations must not retain current.
type BuildFunc[T any] func(current []T) (T, error)

// Store is the storage abstraction handed to each service. One instance
// owns one collection.
type Store[T any] interface {
	// Name returns the collection name.
	Name() string

	// Load returns all committed records in insertion order.
	Load(ctx context.Context) ([]T, error)

	// Append runs one locked load-build-persist cycle and returns the
	// appended record once it is durable.
	Append(ctx context.Context, build BuildFunc[T]) (T, error)

	// Len returns the number of committed records.
	Len(ctx context.Context) (int, error)
}

// Backend names accepted by New.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
)

// New creates a Store for collection name based on the backend name.
//
// Supported backends:
//
//	"file"   - <dir>/<name>.json, rewritten atomically on each append (default)
//	"memory" - in-memory, lost on exit
func New[T any](backend, dir, name string, opts ...Option) (Store[T], error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore[T](dir, name, opts...)
	case BackendMemory:
		return NewMemoryStore[T](name), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: file, memory)", backend)
	}
}
