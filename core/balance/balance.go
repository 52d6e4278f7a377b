// Package balance implements checked_add for user-supplied increments
// (returns core/errors.ErrOverflow on overflow) and
// saturating_add/saturating_sub for engine-internal aggregation, where
// a bounded-above result is the intended semantics rather than a hard
// failure.
package balance

import (
	"math"

	apierrors "apistake/core/errors"
)

// Balance is the engine's unsigned integer currency unit. A dedicated type
// (rather than a bare uint64) keeps checked/saturating call sites
// self-documenting and prevents accidental signed arithmetic.
type Balance uint64

// Zero is the additive identity.
const Zero Balance = 0

// CheckedAdd adds two balances, failing with ErrOverflow instead of
// wrapping. Used wherever a user-supplied amount is folded into a
// position that must never silently wrap.
func CheckedAdd(a, b Balance) (Balance, error) {
	if a > Balance(math.MaxUint64)-b {
		return 0, apierrors.ErrOverflow
	}
	return a + b, nil
}

// SaturatingAdd adds two balances, clamping at the maximum representable
// value instead of wrapping.
func SaturatingAdd(a, b Balance) Balance {
	if a > Balance(math.MaxUint64)-b {
		return Balance(math.MaxUint64)
	}
	return a + b
}

// SaturatingSub subtracts b from a, clamping at zero instead of
// underflowing.
func SaturatingSub(a, b Balance) Balance {
	if b > a {
		return 0
	}
	return a - b
}

// Min returns the smaller of two balances.
func Min(a, b Balance) Balance {
	if a < b {
		return a
	}
	return b
}
