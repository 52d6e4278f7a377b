// Package era owns the era clock and the per-era reward/stake snapshot
// store: block-reward accumulation, era boundary advancement, and the
// per-era RewardAndStake record, read back directly by era (a missing
// era reads as a zero record; no fallback to an earlier era is applied).
package era

import (
	"encoding/json"

	"apistake/core/balance"
	"apistake/core/state"
)

// RewardAndStake is the per-era totals record: rewards attributed to
// the era, total stake active during it, and total locked (including
// unbonding) balance during it.
type RewardAndStake struct {
	Rewards balance.Balance `json:"rewards"`
	Staked  balance.Balance `json:"staked"`
	Locked  balance.Balance `json:"locked"`
}

// SnapshotStore persists RewardAndStake records keyed by era.
type SnapshotStore struct {
	store state.Store
}

// NewSnapshotStore wraps a storage port as a snapshot store.
func NewSnapshotStore(store state.Store) *SnapshotStore {
	return &SnapshotStore{store: store}
}

// Get returns the record for era, or a zero-valued record if absent.
// Most callers that need the latest-available-prior fallback semantics
// live in the stake/claim engines, not here: this store is a dumb
// key/value layer over state.Store.
func (s *SnapshotStore) Get(e uint64) (RewardAndStake, bool, error) {
	raw, err := s.store.Get(state.EraSnapshotKey(e))
	if err != nil {
		if err == state.ErrNotFound {
			return RewardAndStake{}, false, nil
		}
		return RewardAndStake{}, false, err
	}
	var rec RewardAndStake
	if err := json.Unmarshal(raw, &rec); err != nil {
		return RewardAndStake{}, false, err
	}
	return rec, true, nil
}

// Put writes the record for era.
func (s *SnapshotStore) Put(e uint64, rec RewardAndStake) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.store.Set(state.EraSnapshotKey(e), raw)
}
