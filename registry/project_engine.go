package registry

import (
	"apistake/core/balance"
	apierrors "apistake/core/errors"
	"apistake/core/events"
	"apistake/currency"
	"apistake/observability"
	"apistake/provider"

	"golang.org/x/time/rate"
)

// ProjectEngine implements the consumer project registry (C8):
// register/deposit/withdraw on a project's reserved deposit and quota,
// fisherman-submitted usage and provider performance reports. Usage and
// performance reports share one rate-limited gate per fisherman.
type ProjectEngine struct {
	cfg       Config
	projects  *ProjectStore
	access    *AccessStore
	providers *provider.Store
	operators *provider.Engine
	cur       currency.Port
	gate      *fishermanGate
	emitter   events.Emitter
}

// NewProjectEngine wires a ProjectEngine from its collaborators. limit
// and burst configure the per-fisherman report rate limiter.
func NewProjectEngine(cfg Config, projects *ProjectStore, access *AccessStore, providers *provider.Store, operators *provider.Engine, cur currency.Port, limit rate.Limit, burst int, emitter events.Emitter) *ProjectEngine {
	return &ProjectEngine{
		cfg:       cfg,
		projects:  projects,
		access:    access,
		providers: providers,
		operators: operators,
		cur:       cur,
		gate:      newFishermanGate(limit, burst),
		emitter:   emitter,
	}
}

func (e *ProjectEngine) emit(t events.Typed) {
	if e.emitter != nil {
		e.emitter.Emit(t.Event())
	}
}

func (e *ProjectEngine) requireFisherman(caller string) error {
	ok, err := e.access.IsFisherman(caller)
	if err != nil {
		return err
	}
	if !ok {
		return apierrors.ErrNotFisherman
	}
	return nil
}

// RegisterProject creates projectID for consumer on chainID, reserving
// deposit and computing its initial quota. Fails ErrAlreadyExist if
// projectID is taken, or ErrBadChainId if chainID is not in the
// accepted set.
func (e *ProjectEngine) RegisterProject(consumer, projectID, chainID string, deposit uint64, currentBlock uint64) error {
	if _, ok, err := e.projects.Get(projectID); err != nil {
		return err
	} else if ok {
		return apierrors.ErrAlreadyExist
	}
	if ok, err := e.access.HasChainID(chainID); err != nil {
		return err
	} else if !ok {
		return apierrors.ErrBadChainId
	}

	if err := e.cur.Reserve(consumer, balance.Balance(deposit)); err != nil {
		return err
	}

	quota := deposit / e.cfg.QuotaScale
	var chunks DepositChunks
	chunks.Add(balance.Balance(deposit), currentBlock+e.cfg.DepositLockBlocks)

	p := Project{Consumer: consumer, ChainID: chainID, Quota: quota, Usage: 0, DepositChunks: chunks}
	if err := e.projects.Put(projectID, p); err != nil {
		return err
	}

	if count, err := e.projects.Count(); err == nil {
		observability.Registry().SetProjectsRegistered(count)
	}

	e.emit(events.ProjectRegistered{ProjectID: projectID, Consumer: consumer, ChainID: chainID, Quota: quota, Deposit: deposit})
	return nil
}

// DepositProject adds amount to projectID's reserved deposit and
// quota, owner-gated to the project's consumer.
func (e *ProjectEngine) DepositProject(caller, projectID string, amount uint64, currentBlock uint64) error {
	p, ok, err := e.projects.Get(projectID)
	if err != nil {
		return err
	}
	if !ok {
		return apierrors.ErrNotExist
	}
	if caller != p.Consumer {
		return apierrors.ErrNotOwner
	}
	if p.DepositChunks.Len() >= e.cfg.MaxDepositChunks {
		return apierrors.ErrTooManyDepositChunks
	}

	if err := e.cur.Reserve(caller, balance.Balance(amount)); err != nil {
		return err
	}

	p.Quota += amount / e.cfg.QuotaScale
	p.DepositChunks.Add(balance.Balance(amount), currentBlock+e.cfg.DepositLockBlocks)

	if err := e.projects.Put(projectID, p); err != nil {
		return err
	}

	e.emit(events.ProjectDeposited{ProjectID: projectID, Amount: amount, NewQuota: p.Quota})
	return nil
}

// WithdrawProjectDeposit unreserves every deposit chunk that has
// matured as of currentBlock, owner-gated to the project's consumer.
// Unlike the stake engine's WithdrawUnbonded this never fails on an
// empty matured set: it is simply a no-op, since a project's deposit
// chunks are not a pending-action queue a caller must drain.
func (e *ProjectEngine) WithdrawProjectDeposit(caller, projectID string, currentBlock uint64) error {
	p, ok, err := e.projects.Get(projectID)
	if err != nil {
		return err
	}
	if !ok {
		return apierrors.ErrNotExist
	}
	if caller != p.Consumer {
		return apierrors.ErrNotOwner
	}

	matured, pending := p.DepositChunks.Partition(currentBlock)
	amount := matured.Sum()
	if amount == 0 {
		return nil
	}

	e.cur.Unreserve(caller, amount)
	p.DepositChunks = pending

	return e.projects.Put(projectID, p)
}

// SubmitProjectUsage applies a fisherman-reported usage delta,
// clamping at the project's quota. Fails ErrNotFisherman if caller
// lacks the role, and ErrFishermanRateLimited on a burst of reports
// within the same window.
func (e *ProjectEngine) SubmitProjectUsage(caller, projectID string, usage uint64) error {
	if err := e.requireFisherman(caller); err != nil {
		return err
	}
	if err := e.gate.precheck("submit_project_usage", caller); err != nil {
		return err
	}

	p, ok, err := e.projects.Get(projectID)
	if err != nil {
		return err
	}
	if !ok {
		return apierrors.ErrNotExist
	}

	next := uint64(balance.SaturatingAdd(balance.Balance(p.Usage), balance.Balance(usage)))
	reachedQuota := next >= p.Quota && p.Quota > 0
	if next > p.Quota {
		next = p.Quota
	}
	p.Usage = next

	if err := e.projects.Put(projectID, p); err != nil {
		return err
	}

	observability.Registry().RecordUsage(p.ChainID, usage, reachedQuota)

	if p.Usage == p.Quota {
		e.emit(events.ProjectReachedQuota{ProjectID: projectID, Quota: p.Quota})
	} else {
		e.emit(events.ProjectUsageReported{ProjectID: projectID, Usage: p.Usage, Quota: p.Quota})
	}
	return nil
}

// SubmitProviderReport applies a fisherman-submitted performance
// report, forcing the reported provider out of Registered. Fails
// ErrNotFisherman if caller lacks the role, ErrFishermanRateLimited on
// a burst of reports, and propagates ErrNotOperatedProvider /
// ErrNotExist from the forced unregistration.
func (e *ProjectEngine) SubmitProviderReport(caller, providerID string, requests uint64, successRate uint32, latencyMs uint64) error {
	if err := e.requireFisherman(caller); err != nil {
		return err
	}
	if err := e.gate.precheck("submit_provider_report", caller); err != nil {
		return err
	}

	p, ok, err := e.providers.Get(providerID)
	if err != nil {
		return err
	}
	if !ok {
		return apierrors.ErrNotExist
	}

	if err := e.operators.ForceUnregister(providerID); err != nil {
		return err
	}

	observability.Registry().RecordProviderReport("forced_exit")

	e.emit(events.ProviderPerformanceReported{
		ProviderID:  providerID,
		Kind:        p.Kind.String(),
		Requests:    requests,
		SuccessRate: successRate,
		LatencyMs:   latencyMs,
	})
	return nil
}
