package runtime

import (
	"testing"

	apierrors "apistake/core/errors"
	"apistake/core/state"
	"apistake/currency"
	"apistake/provider"
	"apistake/storage"
)

func newTestEngine(t *testing.T) (*Engine, *currency.Memory) {
	t.Helper()
	store := state.New(storage.NewMemDB())
	cur := currency.NewMemory()
	eng := New(DefaultConfig(), store, cur)
	return eng, cur
}

// driveBlocks calls OnInitialize/OnTimestampSet for every block number
// in [from, to], mirroring how a host drives the engine each block.
func driveBlocks(t *testing.T, eng *Engine, from, to uint64) {
	t.Helper()
	for b := from; b <= to; b++ {
		if _, err := eng.OnInitialize(b); err != nil {
			t.Fatalf("OnInitialize(%d): %v", b, err)
		}
		if err := eng.OnTimestampSet(); err != nil {
			t.Fatalf("OnTimestampSet(%d): %v", b, err)
		}
	}
}

// Test_RegisterBondClaim drives scenario S3: register a provider,
// bond stake from a second staker, let an era elapse, and claim the
// era's reward split between operator and staker.
func Test_RegisterBondClaim(t *testing.T) {
	eng, mem := newTestEngine(t)
	mem.Fund("operator", 1000)
	mem.Fund("staker-1", 1000)

	driveBlocks(t, eng, 1, 1)

	if _, err := eng.RegisterProvider("operator", "gw-1", "chain-a", provider.KindGateway, 200); err != nil {
		t.Fatalf("RegisterProvider: %v", err)
	}
	if _, err := eng.BondAndStake("staker-1", "gw-1", 50); err != nil {
		t.Fatalf("BondAndStake: %v", err)
	}

	// advance through era 1 (blocks 2,3) into era 2 so era 1 is
	// finalized and claimable.
	driveBlocks(t, eng, 2, 4)

	if _, err := eng.Claim("operator", "gw-1", 1); err != nil {
		t.Fatalf("Claim: %v", err)
	}

	if _, err := eng.Claim("operator", "gw-1", 1); err != apierrors.ErrAlreadyClaimedThisEra {
		t.Fatalf("expected ErrAlreadyClaimedThisEra on double claim, got %v", err)
	}
}

// Test_UnregisterStopsRewardsAndWithdraw drives scenario S6: once a
// provider unregisters, bonding/unstaking against it is rejected, and
// a staker can withdraw their remaining position into unbonding.
func Test_UnregisterStopsRewardsAndWithdraw(t *testing.T) {
	eng, mem := newTestEngine(t)
	mem.Fund("operator", 1000)
	mem.Fund("staker-1", 1000)

	driveBlocks(t, eng, 1, 1)

	if _, err := eng.RegisterProvider("operator", "gw-1", "chain-a", provider.KindGateway, 200); err != nil {
		t.Fatalf("RegisterProvider: %v", err)
	}
	if _, err := eng.BondAndStake("staker-1", "gw-1", 50); err != nil {
		t.Fatalf("BondAndStake: %v", err)
	}
	if _, err := eng.UnregisterProvider("operator", "gw-1", false); err != nil {
		t.Fatalf("UnregisterProvider: %v", err)
	}

	if _, err := eng.BondAndStake("staker-1", "gw-1", 10); err != apierrors.ErrNotOperatedProvider {
		t.Fatalf("expected ErrNotOperatedProvider, got %v", err)
	}
	if _, err := eng.Unstake("staker-1", "gw-1", 10); err != apierrors.ErrNotOperatedProvider {
		t.Fatalf("expected ErrNotOperatedProvider, got %v", err)
	}

	if _, err := eng.WithdrawFromUnregistered("staker-1", "gw-1"); err != nil {
		t.Fatalf("WithdrawFromUnregistered: %v", err)
	}
}

// Test_ProjectLifecycleAndUsage drives scenario S7: a project
// registers against an allow-listed chain, a fisherman reports usage
// that clamps at quota, and the deposit unreserves once its lock
// period matures.
func Test_ProjectLifecycleAndUsage(t *testing.T) {
	eng, mem := newTestEngine(t)
	mem.Fund("consumer-1", 200_000_000_000_000_000)

	if _, err := eng.AddChainID("chain-a"); err != nil {
		t.Fatalf("AddChainID: %v", err)
	}
	if _, err := eng.AddFisherman("fish-1"); err != nil {
		t.Fatalf("AddFisherman: %v", err)
	}

	deposit := uint64(100) * eng.cfg.Registry.QuotaScale
	if _, err := eng.RegisterProject("consumer-1", "proj-1", "chain-a", deposit, 1); err != nil {
		t.Fatalf("RegisterProject: %v", err)
	}

	if _, err := eng.SubmitProjectUsage("fish-1", "proj-1", 60); err != nil {
		t.Fatalf("SubmitProjectUsage: %v", err)
	}
	if _, err := eng.SubmitProjectUsage("fish-1", "proj-1", 80); err != nil {
		t.Fatalf("SubmitProjectUsage (overshoot): %v", err)
	}

	before := mem.FreeBalance("consumer-1")
	lockBlocks := eng.cfg.Registry.DepositLockBlocks
	if _, err := eng.WithdrawProjectDeposit("consumer-1", "proj-1", 1+lockBlocks); err != nil {
		t.Fatalf("WithdrawProjectDeposit: %v", err)
	}
	after := mem.FreeBalance("consumer-1")
	if after <= before {
		t.Fatalf("expected matured deposit to unreserve, before=%d after=%d", before, after)
	}
}

// Test_ProviderReportForceUnregisters drives the fisherman
// provider-report path end to end through the runtime: a report from a
// registered fisherman force-unregisters the provider, and a report
// from an account outside the fisherman set is rejected with
// ErrNotFisherman before the rate limiter is consulted.
func Test_ProviderReportForceUnregisters(t *testing.T) {
	eng, mem := newTestEngine(t)
	mem.Fund("operator", 1000)

	if _, err := eng.AddFisherman("fish-1"); err != nil {
		t.Fatalf("AddFisherman: %v", err)
	}
	if _, err := eng.RegisterProvider("operator", "gw-1", "chain-a", provider.KindGateway, 200); err != nil {
		t.Fatalf("RegisterProvider: %v", err)
	}

	if _, err := eng.SubmitProviderReport("fish-1", "gw-1", 1000, 9000, 50); err != nil {
		t.Fatalf("SubmitProviderReport: %v", err)
	}

	if _, err := eng.SubmitProviderReport("stranger", "gw-1", 1, 9000, 50); err != apierrors.ErrNotFisherman {
		t.Fatalf("expected ErrNotFisherman, got %v", err)
	}
}
