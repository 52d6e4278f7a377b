package runtime

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"apistake/claim"
	"apistake/core/era"
	apierrors "apistake/core/errors"
	"apistake/core/events"
	"apistake/core/state"
	"apistake/currency"
	"apistake/ledger"
	"apistake/observability"
	"apistake/provider"
	"apistake/registry"
	"apistake/stake"
)

// tracer produces the spans wrapping block-boundary processing and
// claim settlement. It resolves against whatever TracerProvider the
// host has registered (see observability/tracing.Init); with none
// registered it is the OpenTelemetry no-op tracer.
var tracer trace.Tracer = otel.Tracer("apistake/runtime")

// Engine wires every staking-engine and registry component against a
// single storage port and currency collaborator. It is the only type
// a host (cmd/apistaked, or a blockchain runtime embedding this
// module) needs to construct. Every extrinsic method shares one event
// Buffer across the wired components and drains it on success,
// discarding it on failure — matching §5's all-or-nothing extrinsic
// semantics without requiring every component to roll back writes
// it never actually performed on the error path.
type Engine struct {
	cfg Config

	store state.Store
	cur   currency.Port
	buf   *events.Buffer

	clock     *era.Clock
	ledgers   *ledger.Store
	points    *stake.PointsStore
	stakeEng  *stake.Engine
	claimEng  *claim.Engine
	provStore *provider.Store
	provEng   *provider.Engine
	projects  *registry.ProjectStore
	access    *registry.AccessStore
	projEng   *registry.ProjectEngine
	accessEng *registry.AccessEngine
}

// New wires a runtime Engine from cfg over store and cur.
func New(cfg Config, store state.Store, cur currency.Port) *Engine {
	buf := &events.Buffer{}

	clock := era.NewClock(cfg.Era, store, cfg.PoolAccount)
	ledgers := ledger.NewStore(store, cur)
	points := stake.NewPointsStore(store)
	stakeEng := stake.NewEngine(cfg.Stake, store, ledgers, points, clock, cur, buf)

	claimEng := claim.NewEngine(cfg.Rewards, points, clock.Snapshots(), clock, cur, cfg.PoolAccount, cfg.Era.HistoryDepth, buf)

	provStore := provider.NewStore(store)
	provEng := provider.NewEngine(cfg.Provider, provStore, stakeEng, points, clock, cur, buf)

	projects := registry.NewProjectStore(store)
	access := registry.NewAccessStore(store)
	projEng := registry.NewProjectEngine(cfg.Registry, projects, access, provStore, provEng, cur, cfg.FishermanReportRate, cfg.FishermanReportBurst, buf)
	accessEng := registry.NewAccessEngine(cfg.Registry, access, buf)

	return &Engine{
		cfg:       cfg,
		store:     store,
		cur:       cur,
		buf:       buf,
		clock:     clock,
		ledgers:   ledgers,
		points:    points,
		stakeEng:  stakeEng,
		claimEng:  claimEng,
		provStore: provStore,
		provEng:   provEng,
		projects:  projects,
		access:    access,
		projEng:   projEng,
		accessEng: accessEng,
	}
}

// commit drains the shared buffer after an extrinsic call completes,
// returning the drained events on success and discarding them (and any
// already-buffered ones) on failure.
func (e *Engine) commit(err error) ([]*events.Event, error) {
	evs := e.buf.Drain()
	if err != nil {
		return nil, err
	}
	return evs, nil
}

// dispatch wraps a single extrinsic call with a span and a module
// metrics observation before committing its buffered events, so every
// public method below gets the same observability surface without
// repeating span/timer bookkeeping at each call site.
func (e *Engine) dispatch(method string, fn func() error) ([]*events.Event, error) {
	start := time.Now()
	_, span := tracer.Start(context.Background(), "runtime."+method)
	defer span.End()

	err := fn()
	observability.ModuleMetrics().Observe(method, err, time.Since(start))
	return e.commit(err)
}

// OnInitialize advances the era boundary when due. Must be called
// before any extrinsic in a block, per §5's ordering guarantee.
func (e *Engine) OnInitialize(blockNumber uint64) ([]*events.Event, error) {
	_, span := tracer.Start(context.Background(), "runtime.OnInitialize")
	defer span.End()

	evs, err := e.clock.OnInitialize(blockNumber)
	e.buf.Drain()
	if err != nil {
		return nil, err
	}
	if len(evs) > 0 {
		if era, ok := currentEra(e); ok {
			observability.Staking().RecordEraAdvance(era)
		}
	}
	return evs, nil
}

// OnTimestampSet mints the fixed block reward into the pool account.
// Must be called at most once per block, after OnInitialize.
func (e *Engine) OnTimestampSet() error {
	_, span := tracer.Start(context.Background(), "runtime.OnTimestampSet")
	defer span.End()

	if err := e.clock.OnTimestampSet(e.cur); err != nil {
		return err
	}
	observability.Staking().RecordRewardMinted(e.cfg.Era.RewardPerBlock)
	return nil
}

func currentEra(e *Engine) (uint64, bool) {
	era, err := e.clock.CurrentEra()
	if err != nil {
		return 0, false
	}
	return era, true
}

// CurrentEra exposes the clock's current era for callers (logging,
// RPC) that need to display or condition on it.
func (e *Engine) CurrentEra() (uint64, error) { return e.clock.CurrentEra() }

// BondAndStake bonds and stakes amount onto providerID on staker's
// behalf, gated to providers still Registered (§4.7, scenario S6).
func (e *Engine) BondAndStake(staker, providerID string, amount uint64) ([]*events.Event, error) {
	return e.dispatch("bond_and_stake", func() error {
		return e.provEng.BondAndStake(staker, providerID, amount)
	})
}

// Unstake schedules value of staker's stake on providerID for
// unbonding, gated the same way as BondAndStake.
func (e *Engine) Unstake(staker, providerID string, value uint64) ([]*events.Event, error) {
	return e.dispatch("unstake", func() error {
		return e.provEng.Unstake(staker, providerID, value)
	})
}

// WithdrawUnbonded releases every matured unbonding chunk on staker's
// ledger back to their free balance.
func (e *Engine) WithdrawUnbonded(staker string) ([]*events.Event, error) {
	return e.dispatch("withdraw_unbonded", func() error {
		return e.stakeEng.WithdrawUnbonded(staker)
	})
}

// WithdrawFromUnregistered forcibly exits staker's remaining stake on
// an unregistered providerID into the unbonding queue.
func (e *Engine) WithdrawFromUnregistered(staker, providerID string) ([]*events.Event, error) {
	return e.dispatch("withdraw_from_unregistered", func() error {
		return e.provEng.WithdrawFromUnregistered(staker, providerID)
	})
}

// Claim settles providerID's reward for atEra, resolving the operator
// payout account from the provider registry before delegating to the
// claim engine (see DESIGN.md for why claim.Engine itself takes an
// explicit operator account rather than importing provider).
func (e *Engine) Claim(caller, providerID string, atEra uint64) ([]*events.Event, error) {
	return e.dispatch("claim", func() error {
		p, ok, err := e.provStore.Get(providerID)
		if err != nil {
			return err
		}
		if !ok {
			return apierrors.ErrNotExist
		}
		return e.claimEng.Claim(caller, providerID, p.Operator, atEra)
	})
}

// RegisterProvider registers providerID under operator on chainID.
func (e *Engine) RegisterProvider(operator, providerID, chainID string, kind provider.Kind, deposit uint64) ([]*events.Event, error) {
	return e.dispatch("register_provider", func() error {
		return e.provEng.Register(operator, providerID, chainID, kind, deposit)
	})
}

// UnregisterProvider unregisters providerID, signed by its operator
// unless isRoot is set.
func (e *Engine) UnregisterProvider(caller, providerID string, isRoot bool) ([]*events.Event, error) {
	return e.dispatch("unregister_provider", func() error {
		return e.provEng.Unregister(caller, providerID, isRoot)
	})
}

// RegisterProject, DepositProject and WithdrawProjectDeposit forward
// to the project registry, taking currentBlock from the caller since
// the registry tracks no block clock of its own (see DESIGN.md).
func (e *Engine) RegisterProject(consumer, projectID, chainID string, deposit, currentBlock uint64) ([]*events.Event, error) {
	return e.dispatch("register_project", func() error {
		return e.projEng.RegisterProject(consumer, projectID, chainID, deposit, currentBlock)
	})
}

func (e *Engine) DepositProject(caller, projectID string, amount, currentBlock uint64) ([]*events.Event, error) {
	return e.dispatch("deposit_project", func() error {
		return e.projEng.DepositProject(caller, projectID, amount, currentBlock)
	})
}

func (e *Engine) WithdrawProjectDeposit(caller, projectID string, currentBlock uint64) ([]*events.Event, error) {
	return e.dispatch("withdraw_project_deposit", func() error {
		return e.projEng.WithdrawProjectDeposit(caller, projectID, currentBlock)
	})
}

// SubmitProjectUsage and SubmitProviderReport are fisherman-gated
// reports; both are rate-limited per fisherman (see
// registry/fishermangate.go).
func (e *Engine) SubmitProjectUsage(caller, projectID string, usage uint64) ([]*events.Event, error) {
	return e.dispatch("submit_project_usage", func() error {
		return e.projEng.SubmitProjectUsage(caller, projectID, usage)
	})
}

func (e *Engine) SubmitProviderReport(caller, providerID string, requests uint64, successRate uint32, latencyMs uint64) ([]*events.Event, error) {
	return e.dispatch("submit_provider_report", func() error {
		return e.projEng.SubmitProviderReport(caller, providerID, requests, successRate, latencyMs)
	})
}

// AddChainID, RemoveChainID, AddFisherman and RemoveFisherman are
// root-gated (§4.9); the caller is responsible for having
// authenticated the root origin before reaching these methods — the
// runtime performs no origin check of its own, matching how the
// teacher separates origin checks from pallet dispatch logic.
func (e *Engine) AddChainID(chainID string) ([]*events.Event, error) {
	return e.dispatch("add_chain_id", func() error { return e.accessEng.AddChainID(chainID) })
}

func (e *Engine) RemoveChainID(chainID string) ([]*events.Event, error) {
	return e.dispatch("remove_chain_id", func() error { return e.accessEng.RemoveChainID(chainID) })
}

func (e *Engine) AddFisherman(account string) ([]*events.Event, error) {
	return e.dispatch("add_fisherman", func() error { return e.accessEng.AddFisherman(account) })
}

func (e *Engine) RemoveFisherman(account string) ([]*events.Event, error) {
	return e.dispatch("remove_fisherman", func() error { return e.accessEng.RemoveFisherman(account) })
}
