package views

import "sync"

// Memo caches a derived value and recomputes it only when the source
// revision changes.
type Memo[T any] struct {
	mu       sync.Mutex
	compute  func() T
	revision uint64
	valid    bool
	value    T
}

func NewMemo[T any](compute func() T) *Memo[T] {
	return &Memo[T]{compute: compute}
}

func (m *Memo[T]) Get(revision uint64) T {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.valid || m.revision != revision {
		m.value = m.compute()
		m.revision = revision
		m.valid = true
	}
	return m.value
}
