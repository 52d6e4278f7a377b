// Package ledger owns the per-account staking ledger: the locked total
// plus unbonding queue mirrored against a currency lock, with the
// invariant that a ledger's storage entry and its currency lock exist
// together or not at all.
package ledger

import (
	"encoding/json"

	"apistake/core/balance"
	"apistake/core/state"
	"apistake/currency"
	"apistake/unbonding"
)

// AccountLedger is the per-staker record: total balance locked for
// staking across every provider, and the queue of chunks pending
// withdrawal.
type AccountLedger struct {
	Locked    balance.Balance `json:"locked"`
	Unbonding unbonding.Queue `json:"unbonding"`
}

// Empty reports whether the ledger holds nothing — the condition under
// which it (and its currency lock) must be removed entirely.
func (l AccountLedger) Empty() bool {
	return l.Locked == 0 && l.Unbonding.Empty()
}

// Store persists AccountLedger records and keeps the bound currency
// collaborator's lock in sync with them.
type Store struct {
	store state.Store
	cur   currency.Port
}

// NewStore constructs a ledger store bound to a storage port and the
// currency collaborator whose locks it mirrors.
func NewStore(store state.Store, cur currency.Port) *Store {
	return &Store{store: store, cur: cur}
}

// Get loads account's ledger, returning the zero value if absent.
func (s *Store) Get(account string) (AccountLedger, error) {
	raw, err := s.store.Get(state.LedgerKey(account))
	if err != nil {
		if err == state.ErrNotFound {
			return AccountLedger{}, nil
		}
		return AccountLedger{}, err
	}
	var l AccountLedger
	if err := json.Unmarshal(raw, &l); err != nil {
		return AccountLedger{}, err
	}
	return l, nil
}

// Update persists ledger for account and resynchronizes its currency
// lock: an empty ledger removes both the storage entry and the lock;
// otherwise the lock is reset to exactly ledger.Locked, blocking every
// withdraw reason.
func (s *Store) Update(account string, l AccountLedger) error {
	if l.Empty() {
		s.cur.RemoveLock(currency.LockID, account)
		return s.store.Delete(state.LedgerKey(account))
	}
	s.cur.SetLock(currency.LockID, account, l.Locked, currency.AllReasons)
	raw, err := json.Marshal(l)
	if err != nil {
		return err
	}
	return s.store.Set(state.LedgerKey(account), raw)
}

// TotalUnbonding sums every account's pending unbonding chunks across
// the whole ledger, for the staking metrics' point-in-time
// unbonding-total gauge.
func (s *Store) TotalUnbonding() (balance.Balance, error) {
	var total balance.Balance
	err := s.store.IteratePrefix(state.LedgerPrefix(), func(_, value []byte) bool {
		var l AccountLedger
		if json.Unmarshal(value, &l) == nil {
			total = balance.SaturatingAdd(total, l.Unbonding.Sum())
		}
		return true
	})
	return total, err
}
