package registry

import "apistake/core/state"

// AccessStore persists the accepted chain-id set and the fisherman
// role set, both represented as presence-only key sets (the stored
// value is never read back, only Has/Delete).
type AccessStore struct {
	store state.Store
}

// NewAccessStore wraps store as an AccessStore.
func NewAccessStore(store state.Store) *AccessStore {
	return &AccessStore{store: store}
}

func (s *AccessStore) HasChainID(chainID string) (bool, error) {
	return s.store.Has(state.ChainIDKey(chainID))
}

func (s *AccessStore) AddChainID(chainID string) error {
	return s.store.Set(state.ChainIDKey(chainID), []byte{1})
}

func (s *AccessStore) RemoveChainID(chainID string) error {
	return s.store.Delete(state.ChainIDKey(chainID))
}

func (s *AccessStore) IsFisherman(account string) (bool, error) {
	return s.store.Has(state.FishermanKey(account))
}

func (s *AccessStore) AddFisherman(account string) error {
	return s.store.Set(state.FishermanKey(account), []byte{1})
}

func (s *AccessStore) RemoveFisherman(account string) error {
	return s.store.Delete(state.FishermanKey(account))
}
