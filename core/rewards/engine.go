package rewards

import "apistake/core/balance"

// Engine computes the per-era claim split for a single provider. It is
// a pure function of its inputs — it owns no storage and issues no
// currency operations itself, leaving withdrawal and persistence to
// the caller.
type Engine struct {
	cfg Config
}

// NewEngine constructs a claim-split engine bound to cfg.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// ProviderReward computes a provider's share of an era's total reward:
// providerStake / eraStaked, applied to eraRewards.
func (e *Engine) ProviderReward(providerStake, eraStaked, eraRewards uint64) balance.Balance {
	ratio := NewRatio(providerStake, eraStaked)
	return balance.Balance(ratio.Apply(eraRewards))
}

// Split computes the full claim payout for a provider reward: the
// operator's cut, and every staker's proportional share of the
// remainder (providerReward - operatorCut). stakers must be a stable,
// deterministically ordered slice of (account, amount) pairs — callers
// own ordering so payouts and emitted events line up.
func (e *Engine) Split(providerReward, providerTotal balance.Balance, stakers []RewardStaker) Payout {
	operatorCut := balance.Balance(e.cfg.OperatorCut(uint64(providerReward)))
	remainder := providerReward - operatorCut

	legs := make([]Leg, 0, len(stakers))
	if providerTotal > 0 {
		for _, s := range stakers {
			ratio := NewRatio(uint64(s.Amount), uint64(providerTotal))
			share := balance.Balance(ratio.Apply(uint64(remainder)))
			if share == 0 {
				continue
			}
			legs = append(legs, Leg{Account: s.Account, Amount: share})
		}
	}

	return Payout{
		ProviderReward: providerReward,
		OperatorCut:    operatorCut,
		Legs:           legs,
	}
}

// RewardStaker is the minimal shape Split needs from a provider's
// staker map; the stake package's ProviderStakePoints satisfies it via
// a small adapter in the claim package, so this package does not
// import stake.
type RewardStaker struct {
	Account string
	Amount  balance.Balance
}
