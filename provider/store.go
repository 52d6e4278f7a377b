package provider

import (
	"encoding/json"

	"apistake/core/state"
)

// Store persists Provider records keyed by their external identifier.
type Store struct {
	store state.Store
}

// NewStore wraps a storage port as a provider store.
func NewStore(store state.Store) *Store {
	return &Store{store: store}
}

// Get loads providerID's record. The second return value is false if
// no provider was ever registered under that identifier.
func (s *Store) Get(providerID string) (Provider, bool, error) {
	raw, err := s.store.Get(state.ProviderKey(providerID))
	if err != nil {
		if err == state.ErrNotFound {
			return Provider{}, false, nil
		}
		return Provider{}, false, err
	}
	var p Provider
	if err := json.Unmarshal(raw, &p); err != nil {
		return Provider{}, false, err
	}
	return p, true, nil
}

// Put persists providerID's record.
func (s *Store) Put(providerID string, p Provider) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.store.Set(state.ProviderKey(providerID), raw)
}

// CountRegistered returns the number of providers currently in
// StatusRegistered.
func (s *Store) CountRegistered() (int, error) {
	count := 0
	err := s.store.IteratePrefix(state.ProviderPrefix(), func(_, value []byte) bool {
		var p Provider
		if json.Unmarshal(value, &p) == nil && p.Status == StatusRegistered {
			count++
		}
		return true
	})
	return count, err
}
