package registry

import (
	"testing"

	"golang.org/x/time/rate"

	"apistake/core/balance"
	"apistake/core/era"
	apierrors "apistake/core/errors"
	"apistake/core/state"
	"apistake/currency"
	"apistake/ledger"
	"apistake/provider"
	"apistake/stake"
	"apistake/storage"
)

type testEnv struct {
	projects      *ProjectEngine
	access        *AccessEngine
	accessSt      *AccessStore
	providers     *provider.Engine
	providerStore *provider.Store
	cur           currency.Port
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := state.New(storage.NewMemDB())
	cur := currency.NewMemory()
	clock := era.NewClock(era.DefaultConfig(), store, "pool")
	if _, err := clock.OnInitialize(1); err != nil {
		t.Fatalf("OnInitialize: %v", err)
	}
	ledgers := ledger.NewStore(store, cur)
	points := stake.NewPointsStore(store)
	stakeEng := stake.NewEngine(stake.DefaultConfig(), store, ledgers, points, clock, cur, nil)
	providerStore := provider.NewStore(store)
	providerEng := provider.NewEngine(provider.DefaultConfig(), providerStore, stakeEng, points, clock, cur, nil)

	projectStore := NewProjectStore(store)
	accessStore := NewAccessStore(store)
	accessEng := NewAccessEngine(DefaultConfig(), accessStore, nil)
	// a generous rate so ordinary tests never trip the limiter; the
	// dedicated rate-limit test constructs its own tighter gate.
	projectEng := NewProjectEngine(DefaultConfig(), projectStore, accessStore, providerStore, providerEng, cur, rate.Limit(1000), 1000, nil)

	return &testEnv{projects: projectEng, access: accessEng, accessSt: accessStore, providers: providerEng, providerStore: providerStore, cur: cur}
}

func Test_RegisterProject_ComputesQuotaFromDeposit(t *testing.T) {
	env := newTestEnv(t)
	mem := env.cur.(*currency.Memory)
	mem.Fund("consumer-1", 10_000_000_000_000_000)

	if err := env.access.AddChainID("chain-a"); err != nil {
		t.Fatalf("AddChainID: %v", err)
	}
	deposit := uint64(5_000_000_000_000_000) // 5 * QuotaScale
	if err := env.projects.RegisterProject("consumer-1", "proj-1", "chain-a", deposit, 1); err != nil {
		t.Fatalf("RegisterProject: %v", err)
	}

	p, ok, err := env.projects.projects.Get("proj-1")
	if err != nil || !ok {
		t.Fatalf("Get project: ok=%v err=%v", ok, err)
	}
	if p.Quota != 5 {
		t.Fatalf("expected quota 5, got %d", p.Quota)
	}
}

func Test_RegisterProject_RejectsUnknownChainID(t *testing.T) {
	env := newTestEnv(t)
	mem := env.cur.(*currency.Memory)
	mem.Fund("consumer-1", 10_000_000_000_000_000)

	if err := env.projects.RegisterProject("consumer-1", "proj-1", "chain-z", 5_000_000_000_000_000, 1); err != apierrors.ErrBadChainId {
		t.Fatalf("expected ErrBadChainId, got %v", err)
	}
}

func Test_RegisterProject_DuplicateIDFails(t *testing.T) {
	env := newTestEnv(t)
	mem := env.cur.(*currency.Memory)
	mem.Fund("consumer-1", 10_000_000_000_000_000)
	mem.Fund("consumer-2", 10_000_000_000_000_000)

	if err := env.access.AddChainID("chain-a"); err != nil {
		t.Fatalf("AddChainID: %v", err)
	}
	if err := env.projects.RegisterProject("consumer-1", "proj-1", "chain-a", 5_000_000_000_000_000, 1); err != nil {
		t.Fatalf("RegisterProject: %v", err)
	}
	if err := env.projects.RegisterProject("consumer-2", "proj-1", "chain-a", 5_000_000_000_000_000, 1); err != apierrors.ErrAlreadyExist {
		t.Fatalf("expected ErrAlreadyExist, got %v", err)
	}
}

// Test_SubmitProjectUsage_ClampsAtQuota drives scenario S7: quota 100,
// usage 0 -> 60 (reported) -> 100 (clamped, reached) -> stays at 100.
func Test_SubmitProjectUsage_ClampsAtQuota(t *testing.T) {
	env := newTestEnv(t)
	mem := env.cur.(*currency.Memory)
	mem.Fund("consumer-1", 200_000_000_000_000_000)

	if err := env.access.AddChainID("chain-a"); err != nil {
		t.Fatalf("AddChainID: %v", err)
	}
	if err := env.access.AddFisherman("fish-1"); err != nil {
		t.Fatalf("AddFisherman: %v", err)
	}
	deposit := uint64(100) * env.projects.cfg.QuotaScale
	if err := env.projects.RegisterProject("consumer-1", "proj-1", "chain-a", deposit, 1); err != nil {
		t.Fatalf("RegisterProject: %v", err)
	}

	if err := env.projects.SubmitProjectUsage("fish-1", "proj-1", 60); err != nil {
		t.Fatalf("SubmitProjectUsage(60): %v", err)
	}
	p, _, _ := env.projects.projects.Get("proj-1")
	if p.Usage != 60 {
		t.Fatalf("expected usage 60, got %d", p.Usage)
	}

	if err := env.projects.SubmitProjectUsage("fish-1", "proj-1", 80); err != nil {
		t.Fatalf("SubmitProjectUsage(80): %v", err)
	}
	p, _, _ = env.projects.projects.Get("proj-1")
	if p.Usage != 100 {
		t.Fatalf("expected usage clamped at 100, got %d", p.Usage)
	}

	if err := env.projects.SubmitProjectUsage("fish-1", "proj-1", 50); err != nil {
		t.Fatalf("SubmitProjectUsage(50): %v", err)
	}
	p, _, _ = env.projects.projects.Get("proj-1")
	if p.Usage != 100 {
		t.Fatalf("expected usage to remain at quota 100, got %d", p.Usage)
	}
}

func Test_SubmitProjectUsage_RejectsNonFisherman(t *testing.T) {
	env := newTestEnv(t)
	mem := env.cur.(*currency.Memory)
	mem.Fund("consumer-1", 10_000_000_000_000_000)

	if err := env.access.AddChainID("chain-a"); err != nil {
		t.Fatalf("AddChainID: %v", err)
	}
	if err := env.projects.RegisterProject("consumer-1", "proj-1", "chain-a", 5_000_000_000_000_000, 1); err != nil {
		t.Fatalf("RegisterProject: %v", err)
	}

	if err := env.projects.SubmitProjectUsage("stranger", "proj-1", 10); err != apierrors.ErrNotFisherman {
		t.Fatalf("expected ErrNotFisherman, got %v", err)
	}
}

func Test_WithdrawProjectDeposit_PartitionsByBlock(t *testing.T) {
	env := newTestEnv(t)
	mem := env.cur.(*currency.Memory)
	mem.Fund("consumer-1", 10_000_000_000_000_000)

	if err := env.access.AddChainID("chain-a"); err != nil {
		t.Fatalf("AddChainID: %v", err)
	}
	deposit := uint64(5_000_000_000_000_000)
	if err := env.projects.RegisterProject("consumer-1", "proj-1", "chain-a", deposit, 1); err != nil {
		t.Fatalf("RegisterProject: %v", err)
	}

	lockBlocks := env.projects.cfg.DepositLockBlocks
	// Before the lock elapses, nothing unreserves.
	if err := env.projects.WithdrawProjectDeposit("consumer-1", "proj-1", 1); err != nil {
		t.Fatalf("WithdrawProjectDeposit (early): %v", err)
	}
	before := env.cur.FreeBalance("consumer-1")

	if err := env.projects.WithdrawProjectDeposit("consumer-1", "proj-1", 1+lockBlocks); err != nil {
		t.Fatalf("WithdrawProjectDeposit (matured): %v", err)
	}
	after := env.cur.FreeBalance("consumer-1")
	if after != before+balance.Balance(deposit) {
		t.Fatalf("expected matured deposit unreserved, before=%d after=%d deposit=%d", before, after, deposit)
	}
}

func Test_SubmitProviderReport_ForceUnregistersProvider(t *testing.T) {
	env := newTestEnv(t)
	mem := env.cur.(*currency.Memory)
	mem.Fund("operator", 1000)

	if err := env.access.AddFisherman("fish-1"); err != nil {
		t.Fatalf("AddFisherman: %v", err)
	}
	if err := env.providers.Register("operator", "gw-1", "chain-a", provider.KindGateway, 200); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := env.projects.SubmitProviderReport("fish-1", "gw-1", 1000, 9500, 120); err != nil {
		t.Fatalf("SubmitProviderReport: %v", err)
	}

	p, ok, err := env.projects.providers.Get("gw-1")
	if err != nil || !ok {
		t.Fatalf("Get provider: ok=%v err=%v", ok, err)
	}
	if p.Status != provider.StatusUnregistered {
		t.Fatalf("expected provider unregistered after report, got %v", p.Status)
	}
}

func Test_SubmitProviderReport_RateLimited(t *testing.T) {
	env := newTestEnv(t)
	mem := env.cur.(*currency.Memory)
	mem.Fund("operator", 1000)

	tight := NewProjectEngine(DefaultConfig(), NewProjectStore(nil), env.accessSt, env.providerStore, env.providers, env.cur, rate.Limit(0), 1, nil)
	if err := env.access.AddFisherman("fish-1"); err != nil {
		t.Fatalf("AddFisherman: %v", err)
	}
	if err := env.providers.Register("operator", "gw-1", "chain-a", provider.KindGateway, 200); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := tight.SubmitProviderReport("fish-1", "gw-1", 1, 9999, 1); err != nil {
		t.Fatalf("first report should pass the burst allowance: %v", err)
	}
	if err := tight.SubmitProviderReport("fish-1", "gw-1", 1, 9999, 1); err != apierrors.ErrFishermanRateLimited {
		t.Fatalf("expected ErrFishermanRateLimited, got %v", err)
	}
}
