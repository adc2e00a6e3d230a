package cart

import (
	"fmt"

	"github.com/arellano-digital/alternativas-backend/pkg/localstore"
)

// GeneralStorageKey is the durable storage key for the shared header fields.
const GeneralStorageKey = "general-form"

// GeneralStore persists the header fields independently of the cart. It is
// cleared only after a fully successful multi-item submission.
type GeneralStore struct {
	storage *localstore.Store
	info    GeneralInfo
}

func NewGeneralStore(storage *localstore.Store) (*GeneralStore, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart: storage required")
	}
	s := &GeneralStore{storage: storage}
	var saved GeneralInfo
	if err := storage.Load(GeneralStorageKey, &saved); err == nil {
		s.info = saved
	}
	return s, nil
}

// Get returns the current header fields.
func (s *GeneralStore) Get() GeneralInfo {
	return s.info
}

// Set replaces the header fields and persists them.
func (s *GeneralStore) Set(info GeneralInfo) error {
	s.info = info
	return s.storage.Save(GeneralStorageKey, info)
}

// Clear resets the header fields and removes the stored value.
func (s *GeneralStore) Clear() error {
	s.info = GeneralInfo{}
	return s.storage.Delete(GeneralStorageKey)
}
