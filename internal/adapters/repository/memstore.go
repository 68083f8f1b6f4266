package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/o4villegas/gameday-bingo/pkg/metrics"
)

// MemStore implements Store with an in-memory map. Values are copied on the
// way in and out so callers can never alias stored bytes.
type MemStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(_ context.Context, opts ...MemOption) *MemStore {
	s := &MemStore{
		data: make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MemOption applies a configuration option to the MemStore.
type MemOption func(*MemStore)

// WithInitialCapacity pre-sizes the backing map.
func WithInitialCapacity(n int) MemOption {
	return func(s *MemStore) {
		if n > 0 {
			s.data = make(map[string][]byte, n)
		}
	}
}

// Get implements Store.
func (s *MemStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	defer observe("get", time.Now())
	if key == "" {
		return nil, false, ErrEmptyKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, ErrClosed
	}
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put implements Store.
func (s *MemStore) Put(_ context.Context, key string, value []byte) error {
	defer observe("put", time.Now())
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

// PutIfAbsent implements Store.
func (s *MemStore) PutIfAbsent(_ context.Context, key string, value []byte) (bool, error) {
	defer observe("put_if_absent", time.Now())
	if key == "" {
		return false, ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrClosed
	}
	if _, exists := s.data[key]; exists {
		return false, nil
	}
	s.data[key] = append([]byte(nil), value...)
	return true, nil
}

// Delete implements Store.
func (s *MemStore) Delete(_ context.Context, key string) error {
	defer observe("delete", time.Now())
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	delete(s.data, key)
	return nil
}

// List implements Store.
func (s *MemStore) List(_ context.Context, prefix string) ([]KV, error) {
	defer observe("list", time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	var out []KV
	for k, v := range s.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, KV{Key: k, Value: append([]byte(nil), v...)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Close implements Store.
func (s *MemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.data = nil
	return nil
}

// observe records a store operation latency.
func observe(op string, start time.Time) {
	metrics.RecordStoreLatency(op, float64(time.Since(start).Microseconds())/1000.0)
}
