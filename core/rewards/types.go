// Package rewards holds the deterministic rational arithmetic and
// payout-splitting logic the claim engine drives: a provider's share of
// an era's reward, and that provider's operator/staker split of the
// resulting payout.
package rewards

import "apistake/core/balance"

// Leg is one payout destination produced by a claim: an account and the
// amount owed to it.
type Leg struct {
	Account string
	Amount  balance.Balance
}

// Payout is the full result of computing a single (provider, era) claim:
// the total withdrawn from the pool, the operator's cut, and every
// staker's share. When the operator has a self-stake it also appears
// in Legs as a staker, in addition to OperatorCut. Legs lists every
// staker resolve destination in the order callers should emit Reward
// events for.
type Payout struct {
	ProviderReward balance.Balance
	OperatorCut    balance.Balance
	Legs           []Leg
}
