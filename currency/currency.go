// Package currency defines the external currency collaborator the
// engine depends on rather than implements. Balances, reservations,
// issuance and locks are someone else's pallet; this package only
// states the contract the engine calls through, plus an in-memory
// reference implementation for tests and the cmd/apistaked driver.
package currency

import (
	"apistake/core/balance"
	apierrors "apistake/core/errors"
)

// LockID is the fixed 8-byte lock tag the engine uses for every account
// whose balance it locks for staking.
var LockID = [8]byte{'a', 'p', 'i', 's', 't', 'a', 'k', 'e'}

// LockReasons is an opaque bitmask of withdraw reasons a lock blocks.
// The engine always locks against every reason, so it is represented
// here as a single sentinel value rather than a full bitfield type.
type LockReasons uint8

// AllReasons blocks every kind of withdrawal against the locked amount.
const AllReasons LockReasons = 0xFF

// Existence controls what withdraw does to an account that would be
// drained to zero.
type Existence int

const (
	// AllowDeath permits an account's balance to fall to zero and the
	// account to be reaped.
	AllowDeath Existence = iota
	// KeepAlive refuses a withdrawal that would drop the account below
	// its existential deposit.
	KeepAlive
)

// Imbalance represents an un-settled credit (negative imbalance, i.e. a
// freshly minted amount awaiting a destination) or debit produced by a
// currency operation. It must be resolved or it represents an
// accounting leak — mirroring the source ecosystem's linear-type
// imbalance pattern without requiring Go generics over a trait.
type Imbalance struct {
	Amount balance.Balance
}

// Split divides the imbalance into (taken, rest). Used by the claim
// engine to peel the operator cut from the provider reward.
func (i Imbalance) Split(amount balance.Balance) (taken, rest Imbalance) {
	if amount > i.Amount {
		amount = i.Amount
	}
	return Imbalance{Amount: amount}, Imbalance{Amount: i.Amount - amount}
}

// Peek returns the imbalance's magnitude without consuming it.
func (i Imbalance) Peek() balance.Balance { return i.Amount }

// Port is the currency collaborator interface required
// by the core. Implementations own balances, reservations,
// issuance and locks; the engine never mutates them directly.
type Port interface {
	// Issue mints amount and returns the resulting negative imbalance.
	// Total issuance increases by amount.
	Issue(amount balance.Balance) Imbalance
	// ResolveCreating credits imbalance to account, consuming it.
	ResolveCreating(account string, imbalance Imbalance)
	// Withdraw removes amount from account's free balance, producing an
	// imbalance of the same magnitude. Fails if the account lacks
	// sufficient free balance, or if existence == KeepAlive and the
	// withdrawal would reap the account.
	Withdraw(account string, amount balance.Balance, existence Existence) (Imbalance, error)
	// Reserve moves amount from free to reserved balance.
	Reserve(account string, amount balance.Balance) error
	// Unreserve moves amount from reserved back to free balance.
	// Unreserving more than is reserved unreserves what is available
	// and returns the shortfall, mirroring the source ecosystem's
	// saturating unreserve semantics.
	Unreserve(account string, amount balance.Balance) (shortfall balance.Balance)
	// SetLock replaces any existing lock held under id for account with
	// amount, blocking withdrawals per reasons.
	SetLock(id [8]byte, account string, amount balance.Balance, reasons LockReasons)
	// RemoveLock releases the lock held under id for account.
	RemoveLock(id [8]byte, account string)
	// FreeBalance returns account's spendable (unlocked, unreserved)
	// balance view is the caller's concern; this returns the full free
	// balance including locked funds, matching the source ecosystem's
	// free_balance (locks constrain withdrawal, not the free figure).
	FreeBalance(account string) balance.Balance
	// TotalIssuance returns the sum of every account's balance plus
	// reserved balances currently in circulation.
	TotalIssuance() balance.Balance
}

// ErrInsufficientFree is returned by Withdraw when an account's free
// balance cannot cover the requested amount.
var ErrInsufficientFree = apierrors.ErrInsufficientValue
