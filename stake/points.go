// Package stake implements the stake engine: bonding, unstaking,
// unbonded withdrawal, and the per-provider stake-points ledger those
// operations maintain.
package stake

import (
	"encoding/json"
	"sort"

	"apistake/core/balance"
	"apistake/core/state"
)

// ProviderStakePoints is the per-(provider, era) record: how much is
// staked in total, by whom, and whether this era's claim has already
// been paid.
type ProviderStakePoints struct {
	Total          balance.Balance            `json:"total"`
	Stakers        map[string]balance.Balance `json:"stakers"`
	ClaimedRewards balance.Balance            `json:"claimedRewards"`
}

func newPoints() ProviderStakePoints {
	return ProviderStakePoints{Stakers: make(map[string]balance.Balance)}
}

// StakerAmount is one (account, amount) pair from a provider's staker
// map, returned in a deterministic order by SortedStakers.
type StakerAmount struct {
	Account string
	Amount  balance.Balance
}

// SortedStakers returns the provider's staker map as (account, amount)
// pairs in ascending account order, giving every caller a deterministic
// iteration order.
func (p ProviderStakePoints) SortedStakers() []StakerAmount {
	accounts := make([]string, 0, len(p.Stakers))
	for a := range p.Stakers {
		accounts = append(accounts, a)
	}
	sort.Strings(accounts)
	out := make([]StakerAmount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, StakerAmount{Account: a, Amount: p.Stakers[a]})
	}
	return out
}

// PointsStore persists ProviderStakePoints, applying the
// latest-available-prior fallback rule on read: a missing (provider,
// era) entry resolves to the nearest earlier era's points with
// ClaimedRewards reset to zero, supporting no-op eras without writing
// every era.
type PointsStore struct {
	store state.Store
}

// NewPointsStore wraps a storage port as a points store.
func NewPointsStore(store state.Store) *PointsStore {
	return &PointsStore{store: store}
}

// GetDirect loads exactly the (provider, era) record, without applying
// the fallback rule. The second return value is false if no record was
// ever written for that exact era.
func (s *PointsStore) GetDirect(provider string, era uint64) (ProviderStakePoints, bool, error) {
	raw, err := s.store.Get(state.StakePointsKey(provider, era))
	if err != nil {
		if err == state.ErrNotFound {
			return ProviderStakePoints{}, false, nil
		}
		return ProviderStakePoints{}, false, err
	}
	var p ProviderStakePoints
	if err := json.Unmarshal(raw, &p); err != nil {
		return ProviderStakePoints{}, false, err
	}
	if p.Stakers == nil {
		p.Stakers = make(map[string]balance.Balance)
	}
	return p, true, nil
}

// Get loads (provider, era), falling back to the nearest earlier era's
// points (claimed rewards zeroed) when no direct entry exists. It
// never searches past era 0. The returned bool reports whether any
// record (direct or fallback) was found at all.
func (s *PointsStore) Get(provider string, era uint64) (ProviderStakePoints, bool, error) {
	if p, ok, err := s.GetDirect(provider, era); err != nil || ok {
		return p, ok, err
	}
	for e := era; e > 0; e-- {
		p, ok, err := s.GetDirect(provider, e-1)
		if err != nil {
			return ProviderStakePoints{}, false, err
		}
		if ok {
			p.ClaimedRewards = 0
			return p, true, nil
		}
	}
	return newPoints(), false, nil
}

// Put writes the (provider, era) record directly, materializing the
// current era so subsequent reads are direct rather than falling back.
func (s *PointsStore) Put(provider string, era uint64, p ProviderStakePoints) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.store.Set(state.StakePointsKey(provider, era), raw)
}
