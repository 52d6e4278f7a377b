// Package state exposes the engine's storage port: a narrow key/value
// contract every other package codes against instead of a concrete
// database. Swapping storage/MemDB for storage/LevelDB never touches
// engine logic.
package state

import (
	"errors"

	"apistake/storage"
)

// ErrNotFound is returned by Store.Get when the key is absent. It wraps
// storage.ErrNotFound so callers can use either sentinel with errors.Is.
var ErrNotFound = storage.ErrNotFound

// Store is the storage port consumed by every stateful package
// (unbonding, ledger, stake, claim, provider, registry, era). It mirrors
// the get/insert/remove/iterate-by-prefix surface a pallet's storage map
// would expose, backed here by a flat key/value Database.
type Store interface {
	// Get returns the raw bytes stored at key, or ErrNotFound.
	Get(key []byte) ([]byte, error)
	// Set inserts or overwrites key with value.
	Set(key []byte, value []byte) error
	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key []byte) error
	// IteratePrefix walks every key under prefix in ascending order,
	// stopping early if fn returns false.
	IteratePrefix(prefix []byte, fn func(key, value []byte) bool) error
	// Has reports whether key is present.
	Has(key []byte) (bool, error)
}

// dbStore adapts a storage.Database into the Store port.
type dbStore struct {
	db storage.Database
}

// New wraps db as a Store.
func New(db storage.Database) Store {
	return &dbStore{db: db}
}

func (s *dbStore) Get(key []byte) ([]byte, error) {
	v, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *dbStore) Set(key []byte, value []byte) error {
	return s.db.Put(key, value)
}

func (s *dbStore) Delete(key []byte) error {
	return s.db.Delete(key)
}

func (s *dbStore) IteratePrefix(prefix []byte, fn func(key, value []byte) bool) error {
	return s.db.IteratePrefix(prefix, fn)
}

func (s *dbStore) Has(key []byte) (bool, error) {
	_, err := s.db.Get(key)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	return false, err
}
