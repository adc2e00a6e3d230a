package cart

import (
	"fmt"

	"github.com/arellano-digital/alternativas-backend/pkg/localstore"
)

// StorageKey is the durable storage key the cart persists under.
const StorageKey = "alternativas-cart"

// Store holds the ordered list of line items for the current form session.
// Every mutation is written through to durable storage immediately; on
// construction the previous session's items are rehydrated best-effort, so a
// corrupt or missing file just means an empty cart.
type Store struct {
	storage *localstore.Store
	items   []LineItem
}

func NewStore(storage *localstore.Store) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart: storage required")
	}
	s := &Store{storage: storage}
	var saved []LineItem
	if err := storage.Load(StorageKey, &saved); err == nil {
		s.items = saved
	}
	return s, nil
}

// Add appends the item to the end of the cart.
func (s *Store) Add(item LineItem) error {
	s.items = append(s.items, item)
	return s.persist()
}

// Update replaces the item at index in place.
func (s *Store) Update(index int, item LineItem) error {
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("cart: index %d out of range", index)
	}
	s.items[index] = item
	return s.persist()
}

// Remove deletes the item at index, preserving the relative order of the
// remaining items.
func (s *Store) Remove(index int) error {
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("cart: index %d out of range", index)
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return s.persist()
}

// Clear empties the cart.
func (s *Store) Clear() error {
	s.items = nil
	return s.persist()
}

// Items returns a copy of the cart in insertion order.
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items in the cart.
func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) persist() error {
	items := s.items
	if items == nil {
		items = []LineItem{}
	}
	return s.storage.Save(StorageKey, items)
}
