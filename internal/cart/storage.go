package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/minikart-next/minikart/internal/cache"
	"github.com/minikart-next/minikart/internal/constants"
)

// Storage persists a whole cart under the fixed cart key, scoped per
// session. Implementations hold the serialized item slice and nothing else;
// read-modify-write lives in the callers.
type Storage interface {
	Load(ctx context.Context, session string) ([]Item, bool, error)
	Save(ctx context.Context, session string, items []Item) error
	Delete(ctx context.Context, session string) error
}

// RedisStorage keeps carts in redis so a session resume rehydrates the same
// cart. Keys look like "cart:<session>".
type RedisStorage struct{}

// NewRedisStorage creates a redis-backed cart storage.
func NewRedisStorage() *RedisStorage {
	return &RedisStorage{}
}

// Load reads the stored cart. The second return reports whether a cart
// existed for the session.
func (s *RedisStorage) Load(ctx context.Context, session string) ([]Item, bool, error) {
	var items []Item
	hit, err := cache.GetJSON(ctx, storageKey(session), &items)
	if err != nil {
		return nil, false, err
	}
	if !hit {
		return nil, false, nil
	}
	return items, true, nil
}

// Save overwrites the stored cart.
func (s *RedisStorage) Save(ctx context.Context, session string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	return cache.SetJSON(ctx, storageKey(session), items, 0)
}

// Delete removes the stored cart entirely.
func (s *RedisStorage) Delete(ctx context.Context, session string) error {
	return cache.Delete(ctx, storageKey(session))
}

func storageKey(session string) string {
	return fmt.Sprintf("%s:%s", constants.CartStorageKey, session)
}

// MemoryStorage keeps carts in process memory. Used when redis is disabled
// and by tests.
type MemoryStorage struct {
	mu    sync.Mutex
	carts map[string][]Item
}

// NewMemoryStorage creates an in-memory cart storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: make(map[string][]Item)}
}

// Load reads the stored cart.
func (s *MemoryStorage) Load(ctx context.Context, session string) ([]Item, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.carts[session]
	if !ok {
		return nil, false, nil
	}
	copied := make([]Item, len(items))
	copy(copied, items)
	return copied, true, nil
}

// Save overwrites the stored cart.
func (s *MemoryStorage) Save(ctx context.Context, session string, items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]Item, len(items))
	copy(copied, items)
	s.carts[session] = copied
	return nil
}

// Delete removes the stored cart entirely.
func (s *MemoryStorage) Delete(ctx context.Context, session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, session)
	return nil
}
