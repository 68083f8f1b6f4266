package poller

import (
	"encoding/json"
	"os"
	"sync"
)

// LocalState is a small durable key-value scratchpad for client identity,
// e.g. the submitted-player marker. Implementations may fail (full disk,
// read-only media); callers go through Safe to treat storage as best effort.
type LocalState interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Delete(key string) error
}

// Safe wraps a LocalState so that storage failures degrade to misses
// instead of surfacing errors. A client must keep working when its
// scratchpad is broken.
type Safe struct {
	inner LocalState
}

// NewSafe wraps inner. A nil inner behaves as an always-empty store.
func NewSafe(inner LocalState) *Safe {
	return &Safe{inner: inner}
}

// Get returns the value for key, or "" and false on miss or error.
func (s *Safe) Get(key string) (string, bool) {
	if s.inner == nil {
		return "", false
	}
	v, ok, err := s.inner.Get(key)
	if err != nil {
		return "", false
	}
	return v, ok
}

// Set stores key=value, ignoring failures.
func (s *Safe) Set(key, value string) {
	if s.inner == nil {
		return
	}
	_ = s.inner.Set(key, value)
}

// Delete removes key, ignoring failures.
func (s *Safe) Delete(key string) {
	if s.inner == nil {
		return
	}
	_ = s.inner.Delete(key)
}

// FileState is a LocalState persisted as a JSON object in a single file.
type FileState struct {
	mu   sync.Mutex
	path string
}

// NewFileState creates a file-backed local state at path. The file is
// created lazily on first write.
func NewFileState(path string) *FileState {
	return &FileState{path: path}
}

// Get implements LocalState.
func (f *FileState) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

// Set implements LocalState.
func (f *FileState) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.load()
	if err != nil {
		return err
	}
	m[key] = value
	return f.save(m)
}

// Delete implements LocalState.
func (f *FileState) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.load()
	if err != nil {
		return err
	}
	delete(m, key)
	return f.save(m)
}

func (f *FileState) load() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	m := map[string]string{}
	if err := json.Unmarshal(raw, &m); err != nil {
		// A corrupt scratchpad starts over rather than wedging the client.
		return map[string]string{}, nil
	}
	return m, nil
}

func (f *FileState) save(m map[string]string) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o600)
}

// MemState is an in-memory LocalState, useful in tests and as a fallback
// when no writable path exists.
type MemState struct {
	mu sync.Mutex
	m  map[string]string
}

// NewMemState creates an empty in-memory state.
func NewMemState() *MemState {
	return &MemState{m: map[string]string{}}
}

// Get implements LocalState.
func (s *MemState) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok, nil
}

// Set implements LocalState.
func (s *MemState) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

// Delete implements LocalState.
func (s *MemState) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
