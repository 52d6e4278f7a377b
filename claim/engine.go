// Package claim implements the era-reward claim: converting a
// provider's accrued share of a closed era's block reward into an
// operator cut and per-staker payout legs, exactly once per
// (provider, era) pair.
package claim

import (
	"apistake/core/era"
	apierrors "apistake/core/errors"
	"apistake/core/events"
	"apistake/core/rewards"
	"apistake/currency"
	"apistake/observability"
	"apistake/stake"
)

// Engine drives Claim against the stake-points store, the era
// snapshot store, and the currency collaborator holding the reward
// pool.
type Engine struct {
	engine    *rewards.Engine
	points    *stake.PointsStore
	snapshots *era.SnapshotStore
	clock     *era.Clock
	cur       currency.Port
	pool      string
	history   uint64
	emitter   events.Emitter
}

// NewEngine wires a claim Engine. history is the maximum age (in eras)
// behind the current era a claim may still target.
func NewEngine(cfg rewards.Config, points *stake.PointsStore, snapshots *era.SnapshotStore, clock *era.Clock, cur currency.Port, pool string, history uint64, emitter events.Emitter) *Engine {
	return &Engine{
		engine:    rewards.NewEngine(cfg),
		points:    points,
		snapshots: snapshots,
		clock:     clock,
		cur:       cur,
		pool:      pool,
		history:   history,
		emitter:   emitter,
	}
}

func (e *Engine) emit(t events.Typed) {
	if e.emitter != nil {
		e.emitter.Emit(t.Event())
	}
}

// Claim pays out providerID's share of era's closed block reward to
// operatorAccount (the operator's cut) and every recorded staker (the
// remainder, split proportionally). The caller is informational only —
// any account may trigger a claim, but the payout always flows to the
// provider's operator and stakers, never to the caller. Claiming fails
// if era is not yet closed, is older than the configured history
// depth, has already been claimed for providerID, or has no stakers or
// recorded reward.
func (e *Engine) Claim(caller, providerID, operatorAccount string, era_ uint64) error {
	currentEra, err := e.clock.CurrentEra()
	if err != nil {
		return err
	}
	if era_ >= currentEra {
		return apierrors.ErrEraOutOfBounds
	}
	if e.history > 0 && currentEra > e.history && era_ < currentEra-e.history {
		return apierrors.ErrEraOutOfBounds
	}

	points, ok, err := e.points.Get(providerID, era_)
	if err != nil {
		return err
	}
	if !ok || len(points.Stakers) == 0 {
		return apierrors.ErrNotStaked
	}
	if points.ClaimedRewards != 0 {
		return apierrors.ErrAlreadyClaimedThisEra
	}

	snap, ok, err := e.snapshots.Get(era_)
	if err != nil {
		return err
	}
	if !ok {
		return apierrors.ErrUnknownEraReward
	}

	providerReward := e.engine.ProviderReward(uint64(points.Total), uint64(snap.Staked), uint64(snap.Rewards))
	if providerReward == 0 {
		return apierrors.ErrUnknownEraReward
	}

	imbalance, err := e.cur.Withdraw(e.pool, providerReward, currency.AllowDeath)
	if err != nil {
		return apierrors.ErrUnknownEraReward
	}

	payout := e.engine.Split(providerReward, points.Total, adaptStakers(points))

	operatorShare, remainder := imbalance.Split(payout.OperatorCut)
	e.cur.ResolveCreating(operatorAccount, operatorShare)
	observability.Staking().RecordClaim("operator", uint64(payout.OperatorCut))
	e.emit(events.Reward{Account: operatorAccount, ProviderID: providerID, Era: era_, Amount: uint64(payout.OperatorCut)})

	for _, leg := range payout.Legs {
		var taken currency.Imbalance
		taken, remainder = remainder.Split(leg.Amount)
		e.cur.ResolveCreating(leg.Account, taken)
		observability.Staking().RecordClaim("staker", uint64(leg.Amount))
		e.emit(events.Reward{Account: leg.Account, ProviderID: providerID, Era: era_, Amount: uint64(leg.Amount)})
	}
	// Any rounding remainder left after every leg returns to the pool
	// rather than being destroyed.
	e.cur.ResolveCreating(e.pool, remainder)

	points.ClaimedRewards = providerReward
	return e.points.Put(providerID, era_, points)
}

func adaptStakers(p stake.ProviderStakePoints) []rewards.RewardStaker {
	sorted := p.SortedStakers()
	out := make([]rewards.RewardStaker, 0, len(sorted))
	for _, s := range sorted {
		out = append(out, rewards.RewardStaker{Account: s.Account, Amount: s.Amount})
	}
	return out
}
