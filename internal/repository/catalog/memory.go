package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/apunisarkar/sevamcp/internal/domain"
)

// MemoryStore keeps the catalog snapshot in process memory with a TTL.
// Safe for concurrent use.
type MemoryStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	services  []domain.Service
	fetchedAt time.Time
	now       func() time.Time
}

// NewMemoryStore creates an in-memory snapshot store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now}
}

// Get returns the snapshot if one is present and not expired.
func (m *MemoryStore) Get(_ context.Context) ([]domain.Service, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.services == nil || m.now().Sub(m.fetchedAt) >= m.ttl {
		return nil, false, nil
	}
	return m.services, true, nil
}

// Set replaces the snapshot and restarts the TTL.
func (m *MemoryStore) Set(_ context.Context, services []domain.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.services = services
	m.fetchedAt = m.now()
	return nil
}
