package registry

import (
	"context"
	"sync"
	"time"

	"github.com/listify/backend/internal/domain"
)

// entry is a single registry value with optional expiration
type entry struct {
	value      string
	expiration time.Time
}

// MemoryStore is a thread-safe in-memory duplicate-spec registry.
// Entries live for the process lifetime unless a TTL is given. Safe only
// for single-instance deployments; multi-instance setups should use the
// Redis store.
type MemoryStore struct {
	data  map[string]entry
	mutex sync.RWMutex
}

// NewMemoryStore creates a new in-memory registry
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		data: make(map[string]entry),
	}

	// Remove expired entries every 10 minutes
	go store.cleanupExpired()

	return store
}

// Get retrieves a value from the registry
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	e, exists := s.data[key]
	if !exists || expired(e) {
		return "", domain.ErrRegistryMiss
	}
	return e.value, nil
}

// Set stores a value. A non-positive TTL means the entry never expires.
func (s *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	e := entry{value: value}
	if ttl > 0 {
		e.expiration = time.Now().Add(ttl)
	}
	s.data[key] = e
	return nil
}

// Delete removes a value from the registry
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, key)
	return nil
}

// Exists checks whether a key is present and not expired
func (s *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	e, exists := s.data[key]
	return exists && !expired(e), nil
}

// Size returns the current number of entries (for debugging/monitoring)
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

// Clear removes all entries
func (s *MemoryStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data = make(map[string]entry)
}

func expired(e entry) bool {
	return !e.expiration.IsZero() && time.Now().After(e.expiration)
}

func (s *MemoryStore) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mutex.Lock()
		for key, e := range s.data {
			if expired(e) {
				delete(s.data, key)
			}
		}
		s.mutex.Unlock()
	}
}
