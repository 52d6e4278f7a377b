package era

import (
	"testing"

	"apistake/core/state"
	"apistake/currency"
	"apistake/storage"
)

func newTestClock(t *testing.T) (*Clock, currency.Port) {
	t.Helper()
	store := state.New(storage.NewMemDB())
	cfg := DefaultConfig()
	clock := NewClock(cfg, store, "pool")
	return clock, currency.NewMemory()
}

func Test_OnInitialize_GenesisBootstrap(t *testing.T) {
	clock, _ := newTestClock(t)

	evs, err := clock.OnInitialize(1)
	if err != nil {
		t.Fatalf("OnInitialize: %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("expected one NewEra event, got %d", len(evs))
	}

	cur, err := clock.CurrentEra()
	if err != nil {
		t.Fatalf("CurrentEra: %v", err)
	}
	if cur != 1 {
		t.Fatalf("expected current era 1, got %d", cur)
	}

	zero, ok, err := clock.Snapshots().Get(0)
	if err != nil || !ok {
		t.Fatalf("expected era 0 snapshot, ok=%v err=%v", ok, err)
	}
	if zero.Rewards != 0 || zero.Staked != 0 || zero.Locked != 0 {
		t.Fatalf("unexpected era 0 snapshot: %+v", zero)
	}

	one, ok, err := clock.Snapshots().Get(1)
	if err != nil || !ok {
		t.Fatalf("expected era 1 snapshot, ok=%v err=%v", ok, err)
	}
	if one.Rewards != 0 || one.Staked != 0 || one.Locked != 0 {
		t.Fatalf("unexpected era 1 snapshot: %+v", one)
	}
}

func Test_OnTimestampSet_AccumulatesAndCreditsPool(t *testing.T) {
	clock, cur := newTestClock(t)

	if _, err := clock.OnInitialize(1); err != nil {
		t.Fatalf("OnInitialize(1): %v", err)
	}
	if err := clock.OnTimestampSet(cur); err != nil {
		t.Fatalf("OnTimestampSet: %v", err)
	}
	if got := cur.FreeBalance("pool"); got != 1000 {
		t.Fatalf("expected pool balance 1000, got %d", got)
	}

	if evs, err := clock.OnInitialize(2); err != nil || len(evs) != 0 {
		t.Fatalf("OnInitialize(2) should not fire a boundary: evs=%v err=%v", evs, err)
	}
	if evs, err := clock.OnInitialize(3); err != nil || len(evs) != 0 {
		t.Fatalf("OnInitialize(3) should not fire a boundary: evs=%v err=%v", evs, err)
	}
	if _, err := clock.OnInitialize(4); err != nil {
		t.Fatalf("OnInitialize(4): %v", err)
	}

	one, ok, err := clock.Snapshots().Get(1)
	if err != nil || !ok {
		t.Fatalf("expected era 1 snapshot: ok=%v err=%v", ok, err)
	}
	if one.Rewards != 1000 {
		t.Fatalf("expected era 1 rewards 1000, got %d", one.Rewards)
	}

	cur2, err := clock.CurrentEra()
	if err != nil || cur2 != 2 {
		t.Fatalf("expected current era 2, got %d err=%v", cur2, err)
	}
}

func Test_OnInitialize_ForceEraFiresEarly(t *testing.T) {
	clock, _ := newTestClock(t)
	if _, err := clock.OnInitialize(1); err != nil {
		t.Fatalf("OnInitialize(1): %v", err)
	}
	if err := clock.ForceNewEra(); err != nil {
		t.Fatalf("ForceNewEra: %v", err)
	}
	evs, err := clock.OnInitialize(2)
	if err != nil {
		t.Fatalf("OnInitialize(2): %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("expected forced boundary to fire, got %d events", len(evs))
	}
	cur, err := clock.CurrentEra()
	if err != nil || cur != 2 {
		t.Fatalf("expected current era 2 after force, got %d err=%v", cur, err)
	}
}
