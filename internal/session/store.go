// Package session gates the admin views on the presence of a stored
// credential and manages that credential's lifecycle.
package session

import (
	"context"
	"sync"
)

// CredentialKey is the key the admin token is stored under.
const CredentialKey = "adminToken"

// Store persists values per origin. Get reports ok=false for an absent
// key; Delete of an absent key is not an error.
type Store interface {
	Get(ctx context.Context, origin, key string) (string, bool, error)
	Set(ctx context.Context, origin, key, value string) error
	Delete(ctx context.Context, origin, key string) error
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]map[string]string{}}
}

func (m *MemoryStore) Get(_ context.Context, origin, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[origin][key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, origin, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[origin] == nil {
		m.data[origin] = map[string]string{}
	}
	m.data[origin][key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, origin, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[origin], key)
	if len(m.data[origin]) == 0 {
		delete(m.data, origin)
	}
	return nil
}
