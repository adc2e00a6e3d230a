package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when a key has no stored value. A corrupt value is
// reported the same way so stores can fall back to their empty state.
var ErrNotFound = errors.New("localstore: key not found")

// Store persists JSON documents under fixed keys, one file per key. It is the
// durable client-side storage behind the cart and general-info stores: single
// writer, best-effort rehydration, no locking.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("localstore: dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("localstore: creating %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load decodes the value stored under key into dest. Missing and unreadable
// values both return ErrNotFound.
func (s *Store) Load(key string, dest any) error {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return ErrNotFound
	}
	return nil
}

// Save writes the value under key, replacing any previous value. The write
// goes through a temp file and rename so a crash never leaves a torn file.
func (s *Store) Save(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("localstore: encoding %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dir, key+"-*")
	if err != nil {
		return fmt.Errorf("localstore: temp file for %s: %w", key, err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("localstore: writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("localstore: closing %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("localstore: replacing %s: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key. Deleting a missing key is a
// no-op.
func (s *Store) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("localstore: deleting %s: %w", key, err)
	}
	return nil
}
