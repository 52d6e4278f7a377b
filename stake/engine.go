package stake

import (
	"apistake/core/balance"
	"apistake/core/era"
	apierrors "apistake/core/errors"
	"apistake/core/events"
	"apistake/core/state"
	"apistake/currency"
	"apistake/ledger"
	"apistake/observability"
	"apistake/unbonding"
)

// Engine implements bond_and_stake, unstake, withdraw_unbonded and the
// forced exit used when a provider unregisters, coordinating the
// per-account ledger, the per-(provider, era) stake-points store, the
// era clock's current-era snapshot, and the currency collaborator that
// backs every locked balance.
type Engine struct {
	cfg     Config
	ledgers *ledger.Store
	points  *PointsStore
	clock   *era.Clock
	cur     currency.Port
	store   state.Store
	emitter events.Emitter
}

// NewEngine wires a stake Engine from its collaborators.
func NewEngine(cfg Config, store state.Store, ledgers *ledger.Store, points *PointsStore, clock *era.Clock, cur currency.Port, emitter events.Emitter) *Engine {
	return &Engine{cfg: cfg, ledgers: ledgers, points: points, clock: clock, cur: cur, store: store, emitter: emitter}
}

func (e *Engine) emit(t events.Typed) {
	if e.emitter != nil {
		e.emitter.Emit(t.Event())
	}
}

// reportAggregates refreshes the point-in-time staking gauges from the
// current era's snapshot and the ledger store's unbonding total.
func (e *Engine) reportAggregates(snap era.RewardAndStake) {
	observability.Staking().SetTotalStaked(uint64(snap.Staked))
	if total, err := e.ledgers.TotalUnbonding(); err == nil {
		observability.Staking().SetUnbondingTotal(uint64(total))
	}
}

// UnbondingPeriod exposes the configured unbonding delay, in eras, for
// collaborators (such as the provider registry) that must schedule a
// forced exit on the same cadence as a voluntary unstake.
func (e *Engine) UnbondingPeriod() uint64 { return e.cfg.UnbondingPeriod }

// eraStakeValues returns how many times BondAndStake has added staker
// to providerID's stakers map while staker was not already in it (the
// first join and every re-join after a full unstake). The count never
// decrements, bounding the history a single pair can accumulate across
// the life of the pallet.
func (e *Engine) eraStakeValues(staker, provider string) (uint64, error) {
	raw, err := e.store.Get(state.EraStakeValuesKey(staker, provider))
	if err != nil {
		if err == state.ErrNotFound {
			return 0, nil
		}
		return 0, err
	}
	return decodeCount(raw), nil
}

func (e *Engine) bumpEraStakeValues(staker, provider string, n uint64) error {
	return e.store.Set(state.EraStakeValuesKey(staker, provider), encodeCount(n))
}

// BondAndStake locks up to requested from staker's free balance onto
// providerID. The amount actually bonded is capped by what staker can
// spare while keeping MinimumRemainingAmount free and by any balance
// already locked for staking; it fails with ErrStakingWithNoValue if
// that cap resolves to zero.
func (e *Engine) BondAndStake(staker, providerID string, requested uint64) error {
	currentEra, err := e.clock.CurrentEra()
	if err != nil {
		return err
	}

	led, err := e.ledgers.Get(staker)
	if err != nil {
		return err
	}

	free := balance.SaturatingSub(e.cur.FreeBalance(staker), balance.Balance(e.cfg.MinimumRemainingAmount))
	available := balance.SaturatingSub(free, led.Locked)
	amount := balance.Min(balance.Balance(requested), available)
	if amount == 0 {
		return apierrors.ErrStakingWithNoValue
	}

	points, _, err := e.points.Get(providerID, currentEra)
	if err != nil {
		return err
	}

	_, alreadyStaker := points.Stakers[staker]
	if !alreadyStaker && len(points.Stakers) >= e.cfg.MaxStakersPerProvider {
		return apierrors.ErrMaxStakersExceeded
	}

	if !alreadyStaker {
		count, err := e.eraStakeValues(staker, providerID)
		if err != nil {
			return err
		}
		if count >= uint64(e.cfg.MaxEraStakeValues) {
			return apierrors.ErrTooManyEraStakeValues
		}
		if err := e.bumpEraStakeValues(staker, providerID, count+1); err != nil {
			return err
		}
	}

	newLocked, err := balance.CheckedAdd(led.Locked, amount)
	if err != nil {
		return err
	}
	points.Total = balance.SaturatingAdd(points.Total, amount)
	points.Stakers[staker] = balance.SaturatingAdd(points.Stakers[staker], amount)
	led.Locked = newLocked

	snap, _, err := e.clock.Snapshots().Get(currentEra)
	if err != nil {
		return err
	}
	snap.Staked = balance.SaturatingAdd(snap.Staked, amount)
	snap.Locked = balance.SaturatingAdd(snap.Locked, amount)

	if err := e.points.Put(providerID, currentEra, points); err != nil {
		return err
	}
	if err := e.ledgers.Update(staker, led); err != nil {
		return err
	}
	if err := e.clock.Snapshots().Put(currentEra, snap); err != nil {
		return err
	}
	e.reportAggregates(snap)

	e.emit(events.Stake{Staker: staker, ProviderID: providerID, Amount: uint64(amount)})
	return nil
}

// Unstake schedules value of staker's stake on providerID for
// unbonding. If the remaining stake on that provider would drop below
// MinimumStakingAmount, the entire remaining stake is unstaked instead
// (a staker is never left with dust below the minimum). Fails with
// ErrNotStaked if staker holds no stake on providerID, with
// ErrUnstakingWithNoValue if value is zero, and with
// ErrTooManyUnlockingChunks if the ledger's unbonding queue already
// holds MaxUnlockingChunks distinct eras and this call would add a new
// one.
func (e *Engine) Unstake(staker, providerID string, value uint64) error {
	currentEra, err := e.clock.CurrentEra()
	if err != nil {
		return err
	}

	points, _, err := e.points.Get(providerID, currentEra)
	if err != nil {
		return err
	}
	current, ok := points.Stakers[staker]
	if !ok || current == 0 {
		return apierrors.ErrNotStaked
	}

	amount := balance.Min(balance.Balance(value), current)
	if amount == 0 {
		return apierrors.ErrUnstakingWithNoValue
	}
	remaining := balance.SaturatingSub(current, amount)
	if remaining > 0 && remaining < balance.Balance(e.cfg.MinimumStakingAmount) {
		amount = current
		remaining = 0
	}

	led, err := e.ledgers.Get(staker)
	if err != nil {
		return err
	}

	unlockEra := currentEra + e.cfg.UnbondingPeriod
	_, hasChunkThisEra := chunkIndex(led.Unbonding, unlockEra)
	if !hasChunkThisEra && led.Unbonding.Len() >= e.cfg.MaxUnlockingChunks {
		return apierrors.ErrTooManyUnlockingChunks
	}
	led.Unbonding.Add(amount, unlockEra)

	if remaining == 0 {
		delete(points.Stakers, staker)
	} else {
		points.Stakers[staker] = remaining
	}
	points.Total = balance.SaturatingSub(points.Total, amount)

	snap, _, err := e.clock.Snapshots().Get(currentEra)
	if err != nil {
		return err
	}
	snap.Staked = balance.SaturatingSub(snap.Staked, amount)

	if err := e.points.Put(providerID, currentEra, points); err != nil {
		return err
	}
	if err := e.ledgers.Update(staker, led); err != nil {
		return err
	}
	if err := e.clock.Snapshots().Put(currentEra, snap); err != nil {
		return err
	}
	e.reportAggregates(snap)

	e.emit(events.Unstake{Staker: staker, ProviderID: providerID, Amount: uint64(amount)})
	return nil
}

// WithdrawUnbonded releases every unbonding chunk on staker's ledger
// that has matured as of the current era back to staker's free
// balance. It fails with ErrNothingToWithdraw if no chunk has matured.
func (e *Engine) WithdrawUnbonded(staker string) error {
	currentEra, err := e.clock.CurrentEra()
	if err != nil {
		return err
	}

	led, err := e.ledgers.Get(staker)
	if err != nil {
		return err
	}

	matured, pending := led.Unbonding.Partition(currentEra)
	amount := matured.Sum()
	if amount == 0 {
		return apierrors.ErrNothingToWithdraw
	}

	led.Unbonding = pending
	led.Locked = balance.SaturatingSub(led.Locked, amount)

	snap, _, err := e.clock.Snapshots().Get(currentEra)
	if err != nil {
		return err
	}
	snap.Locked = balance.SaturatingSub(snap.Locked, amount)

	if err := e.ledgers.Update(staker, led); err != nil {
		return err
	}
	if err := e.clock.Snapshots().Put(currentEra, snap); err != nil {
		return err
	}
	e.reportAggregates(snap)

	e.emit(events.Withdrawn{Staker: staker, Amount: uint64(amount)})
	return nil
}

// WithdrawFromUnregistered forcibly moves staker's entire remaining
// stake on providerID into the unbonding queue, unlocking at
// unregEra + UnbondingPeriod, rather than requiring a voluntary
// unstake. Used by the provider engine once a provider has
// unregistered; the provider engine checks that the era before
// unregEra has been claimed, and this method checks no claim state.
func (e *Engine) WithdrawFromUnregistered(staker, providerID string, unregEra uint64) error {
	points, _, err := e.points.Get(providerID, unregEra)
	if err != nil {
		return err
	}
	amount, ok := points.Stakers[staker]
	if !ok || amount == 0 {
		return apierrors.ErrNotStaked
	}

	led, err := e.ledgers.Get(staker)
	if err != nil {
		return err
	}

	unlockEra := unregEra + e.cfg.UnbondingPeriod
	led.Unbonding.Add(amount, unlockEra)

	delete(points.Stakers, staker)
	points.Total = balance.SaturatingSub(points.Total, amount)

	if err := e.points.Put(providerID, unregEra, points); err != nil {
		return err
	}
	if err := e.ledgers.Update(staker, led); err != nil {
		return err
	}

	e.emit(events.Unstake{Staker: staker, ProviderID: providerID, Amount: uint64(amount)})
	return nil
}

func chunkIndex(q unbonding.Queue, unlockEra uint64) (int, bool) {
	for i, c := range q.Chunks {
		if c.UnlockEra == unlockEra {
			return i, true
		}
	}
	return -1, false
}
