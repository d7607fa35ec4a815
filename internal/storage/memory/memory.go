// Package memory provides an in-process storage.Storage backed by a map.
// Nothing survives the process; it exists for tests and for the
// "memory" driver when running without a data directory.
package memory

import (
	"sync"

	"github.com/aanand-mishra/student-records/internal/storage"
)

// Memory is a map-backed storage.Storage.
type Memory struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool

	// FailWrites makes Set return the given error. Tests use it to check
	// that a failed write leaves the roster untouched.
	FailWrites error
}

// New returns an empty Memory store.
func New() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, false, storage.ErrClosed
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return storage.ErrClosed
	}
	if m.FailWrites != nil {
		return m.FailWrites
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
