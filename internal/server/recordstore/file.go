package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/foodstore/internal/common"
	"github.com/dmitrijs2005/foodstore/internal/filex"
	"github.com/dmitrijs2005/foodstore/internal/logging"
	"github.com/dmitrijs2005/foodstore/internal/server/metrics"
)

// FileStore stores one collection as a pretty-printed JSON array on disk.
//
// Layout:
//
//	data_dir/
//	  users.json     # "users" collection
//	  orders.json    # "orders" collection
//
// The live file is never written in place: every append encodes the whole
// enlarged collection into a temporary file and renames it over the old one.
type FileStore[T any] struct {
	mu sync.Mutex
	// degraded is set while an unreadable file is being served as empty, so
	// repeated reads of the same file are logged and counted once.
	degraded bool
	name     string
	path     string
	policy   CorruptPolicy
	logger   logging.Logger
}

// NewFileStore creates dir if needed and returns the store for
// <dir>/<name>.json. The file itself is created by the first append.
func NewFileStore[T any](dir, name string, opts ...Option) (*FileStore[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}

	return &FileStore[T]{
		name:   name,
		path:   filepath.Join(abs, name+".json"),
		policy: o.policy,
		logger: o.logger.With("module", "recordstore", "collection", name),
	}, nil
}

func (s *FileStore[T]) Name() string { return s.name }

// Path returns the location of the collection file.
func (s *FileStore[T]) Path() string { return s.path }

func (s *FileStore[T]) Load(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if errors.Is(err, common.ErrorCorruptCollection) && s.policy == PolicyDegrade {
		if !s.degraded {
			s.degraded = true
			s.logger.Error(ctx, "collection file is unreadable, serving it as empty", "path", s.path, "error", err)
			metrics.RecordDegradation(s.name)
		}
		return []T{}, nil
	}
	if err != nil {
		return nil, s.storageError(err)
	}
	s.degraded = false
	return records, nil
}

func (s *FileStore[T]) Len(ctx context.Context) (int, error) {
	records, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *FileStore[T]) Append(ctx context.Context, build BuildFunc[T]) (T, error) {
	var zero T
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if errors.Is(err, common.ErrorCorruptCollection) && s.policy == PolicyDegrade {
		if err = s.quarantine(ctx, err); err == nil {
			current = []T{}
		}
	}
	if err != nil {
		metrics.RecordAppend(s.name, metrics.OutcomeFailed, time.Since(start))
		return zero, s.storageError(err)
	}
	s.degraded = false

	record, err := build(current)
	if err != nil {
		metrics.RecordAppend(s.name, metrics.OutcomeRejected, time.Since(start))
		return zero, err
	}

	next := append(current, record)
	err = filex.WriteAtomic(s.path, 0o644, func(w io.Writer) error {
		return encode(w, next)
	})
	if err != nil {
		s.logger.Error(ctx, "append failed, collection left unchanged", "path", s.path, "error", err)
		metrics.RecordAppend(s.name, metrics.OutcomeFailed, time.Since(start))
		return zero, s.storageError(err)
	}

	metrics.RecordAppend(s.name, metrics.OutcomeCommitted, time.Since(start))
	s.logger.Debug(ctx, "record appended", "records", len(next))
	return record, nil
}

// read decodes the collection file. A missing file is an empty collection.
func (s *FileStore[T]) read() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrorCorruptCollection, s.path, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// quarantine moves an unreadable collection file out of the way so the next
// write starts a fresh file without destroying what was there.
func (s *FileStore[T]) quarantine(ctx context.Context, cause error) error {
	aside := fmt.Sprintf("%s.corrupt-%d", s.path, time.Now().UnixNano())
	if err := os.Rename(s.path, aside); err != nil {
		return fmt.Errorf("quarantine %s: %w", s.path, err)
	}
	s.logger.Error(ctx, "unreadable collection file moved aside", "path", s.path, "moved_to", aside, "cause", cause)
	if !s.degraded {
		metrics.RecordDegradation(s.name)
	}
	s.degraded = false
	return nil
}

func (s *FileStore[T]) storageError(err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrorStorage, s.name, err)
}

func encode[T any](w io.Writer, records []T) error {
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	_, err = io.Copy(w, bytes.NewReader(b))
	return err
}
