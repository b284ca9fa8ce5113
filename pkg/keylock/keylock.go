// Package keylock provides one lock per key so that work for different keys
// never waits on each other.
package keylock

import (
	"context"
	"sync"
)

type entry struct {
	sem  chan struct{}
	refs int
}

// Manager hands out per-key locks inside one process. Entries are reference
// counted and removed once the last holder or waiter releases them, so idle
// keys cost nothing.
type Manager struct {
	mu    sync.Mutex
	locks map[string]*entry
}

// NewManager creates an empty lock manager
func NewManager() *Manager {
	return &Manager{locks: make(map[string]*entry)}
}

// Lock blocks until the lock for key is held or ctx is done. The returned
// release function must be called exactly once after a nil error.
func (m *Manager) Lock(ctx context.Context, key string) (unlock func(), err error) {
	m.mu.Lock()
	e, ok := m.locks[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		m.locks[key] = e
	}
	e.refs++
	m.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		m.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			m.release(key, e)
		})
	}, nil
}

func (m *Manager) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

func (m *Manager) release(key string, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(m.locks, key)
	}
}
