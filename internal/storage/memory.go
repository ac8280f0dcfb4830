package storage

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value   string
	expires time.Time
}

// Memory is an in-process Store. With a positive TTL every write expires after
// that long, which is how tab-scoped data goes away once a tab is abandoned.
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if m.expired(e, m.now()) {
		m.mu.Lock()
		// A Set may have landed since the read lock was released.
		if cur, ok := m.entries[key]; ok && m.expired(cur, m.now()) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := entry{value: value}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

func (m *Memory) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Sweep drops expired entries and reports how many were removed.
func (m *Memory) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k, e := range m.entries {
		if m.expired(e, now) {
			delete(m.entries, k)
			n++
		}
	}
	return n
}

func (m *Memory) expired(e entry, now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}
