package provider

import (
	"apistake/core/balance"
	"apistake/core/era"
	apierrors "apistake/core/errors"
	"apistake/core/events"
	"apistake/currency"
	"apistake/observability"
	"apistake/stake"
)

// Engine implements register, unregister, and withdraw_from_unregistered,
// gating the stake engine's bond/unstake operations on a provider's
// lifecycle state.
type Engine struct {
	cfg     Config
	store   *Store
	stake   *stake.Engine
	points  *stake.PointsStore
	clock   *era.Clock
	cur     currency.Port
	emitter events.Emitter
}

// NewEngine wires a provider Engine from its collaborators.
func NewEngine(cfg Config, store *Store, stakeEng *stake.Engine, points *stake.PointsStore, clock *era.Clock, cur currency.Port, emitter events.Emitter) *Engine {
	return &Engine{cfg: cfg, store: store, stake: stakeEng, points: points, clock: clock, cur: cur, emitter: emitter}
}

func (e *Engine) emit(t events.Typed) {
	if e.emitter != nil {
		e.emitter.Emit(t.Event())
	}
}

// Register creates providerID under operator with the given chain and
// kind, reserving RegisterDeposit from deposit and bonding the
// remainder as the operator's initial self-stake. Fails with
// ErrAlreadyExist if providerID is taken, or ErrInsufficientBonding if
// deposit is below MinProviderDeposit.
func (e *Engine) Register(operator, providerID, chainID string, kind Kind, deposit uint64) error {
	if _, ok, err := e.store.Get(providerID); err != nil {
		return err
	} else if ok {
		return apierrors.ErrAlreadyExist
	}
	if deposit < e.cfg.MinProviderDeposit {
		return apierrors.ErrInsufficientBonding
	}

	if err := e.cur.Reserve(operator, balance.Balance(e.cfg.RegisterDeposit)); err != nil {
		return err
	}

	selfStake := deposit - e.cfg.RegisterDeposit
	if err := e.stake.BondAndStake(operator, providerID, selfStake); err != nil {
		e.cur.Unreserve(operator, balance.Balance(e.cfg.RegisterDeposit))
		return err
	}

	p := Provider{Operator: operator, ChainID: chainID, Kind: kind, Status: StatusRegistered}
	if err := e.store.Put(providerID, p); err != nil {
		return err
	}

	if count, err := e.store.CountRegistered(); err == nil {
		observability.Registry().SetProvidersRegistered(count)
	}

	e.emit(events.ProviderRegistered{ProviderID: providerID, Kind: kind.String(), Operator: operator, ChainID: chainID})
	return nil
}

// Unregister moves providerID from Registered to Unregistered, gated
// to the provider's own operator (or root) via the caller's isRoot
// flag, unreserving the register deposit. Fails ErrNotExist if the
// provider is unknown, ErrNotOwner if caller is neither the operator
// nor root, and ErrNotOperatedProvider if the provider has already
// left Registered.
func (e *Engine) Unregister(caller, providerID string, isRoot bool) error {
	p, ok, err := e.store.Get(providerID)
	if err != nil {
		return err
	}
	if !ok {
		return apierrors.ErrNotExist
	}
	if !isRoot && caller != p.Operator {
		return apierrors.ErrNotOwner
	}
	if p.Status != StatusRegistered {
		return apierrors.ErrNotOperatedProvider
	}

	currentEra, err := e.clock.CurrentEra()
	if err != nil {
		return err
	}

	p.Status = StatusUnregistered
	p.UnregEra = currentEra
	p.WithdrawableEra = currentEra + e.stakeUnbondingPeriod()

	e.cur.Unreserve(p.Operator, balance.Balance(e.cfg.RegisterDeposit))

	if err := e.store.Put(providerID, p); err != nil {
		return err
	}

	if count, err := e.store.CountRegistered(); err == nil {
		observability.Registry().SetProvidersRegistered(count)
	}

	e.emit(events.ProviderUnregistered{ProviderID: providerID, Kind: p.Kind.String()})
	return nil
}

// WithdrawFromUnregistered moves staker's entire remaining position on
// providerID into the unbonding queue. Requires the provider to have
// left Registered and the calling era to have reached unreg_era, and
// that the era immediately preceding unreg_era has already been
// claimed (or the provider had no stake in it) — the practical reading of "all
// prior era rewards claimed" given claims settle a whole era's
// (provider, era) record at once rather than per staker.
func (e *Engine) WithdrawFromUnregistered(staker, providerID string) error {
	p, ok, err := e.store.Get(providerID)
	if err != nil {
		return err
	}
	if !ok {
		return apierrors.ErrNotExist
	}
	if p.Status != StatusUnregistered {
		return apierrors.ErrNotOperatedProvider
	}

	currentEra, err := e.clock.CurrentEra()
	if err != nil {
		return err
	}
	if currentEra < p.UnregEra {
		return apierrors.ErrEraOutOfBounds
	}

	if p.UnregEra > 0 {
		prior, ok, err := e.points.Get(providerID, p.UnregEra-1)
		if err != nil {
			return err
		}
		if ok && prior.ClaimedRewards == 0 && prior.Total > 0 {
			return apierrors.ErrEraOutOfBounds
		}
	}

	return e.stake.WithdrawFromUnregistered(staker, providerID, p.UnregEra)
}

// BondAndStake bonds and stakes onto providerID on staker's behalf,
// gated to providers still Registered; returns ErrNotOperatedProvider
// once a provider has unregistered. Delegates to the stake engine for
// the bonding arithmetic itself.
func (e *Engine) BondAndStake(staker, providerID string, amount uint64) error {
	if err := e.requireRegistered(providerID); err != nil {
		return err
	}
	return e.stake.BondAndStake(staker, providerID, amount)
}

// Unstake schedules value of staker's stake on providerID for
// unbonding, gated the same way as BondAndStake.
func (e *Engine) Unstake(staker, providerID string, value uint64) error {
	if err := e.requireRegistered(providerID); err != nil {
		return err
	}
	return e.stake.Unstake(staker, providerID, value)
}

func (e *Engine) requireRegistered(providerID string) error {
	p, ok, err := e.store.Get(providerID)
	if err != nil {
		return err
	}
	if !ok {
		return apierrors.ErrNotExist
	}
	if p.Status != StatusRegistered {
		return apierrors.ErrNotOperatedProvider
	}
	return nil
}

// ForceUnregister unconditionally moves providerID out of Registered,
// driven by the registry's submit_provider_report. Unlike Unregister
// it is not gated to the operator, since a fisherman report is the
// caller.
func (e *Engine) ForceUnregister(providerID string) error {
	return e.Unregister("", providerID, true)
}

// stakeUnbondingPeriod reaches into the stake engine's configuration
// for the unbonding period eras, since the provider's withdrawable era
// must match the same cadence stake exits use.
func (e *Engine) stakeUnbondingPeriod() uint64 {
	return e.stake.UnbondingPeriod()
}
