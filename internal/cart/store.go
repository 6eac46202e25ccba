package cart

import "context"

// Store exposes the current cart and a replace-whole-cart operation.
// Callers never patch a single line: every mutation computes the full next
// cart and calls Replace, which persists it under the fixed cart key.
type Store struct {
	storage Storage
}

// NewStore creates a cart store over the given storage backend.
func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Current rehydrates the cart for the session. A session without a stored
// cart reads as an empty cart.
func (s *Store) Current(ctx context.Context, session string) ([]Item, error) {
	items, ok, err := s.storage.Load(ctx, session)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Item{}, nil
	}
	return items, nil
}

// Replace swaps in the full next cart state and persists it.
func (s *Store) Replace(ctx context.Context, session string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	return s.storage.Save(ctx, session, items)
}

// Clear removes the cart and its persisted key.
func (s *Store) Clear(ctx context.Context, session string) error {
	return s.storage.Delete(ctx, session)
}
