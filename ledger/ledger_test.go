package ledger

import (
	"testing"

	"apistake/core/state"
	"apistake/currency"
	"apistake/storage"
	"apistake/unbonding"
)

func Test_Update_SetsLockAndPersists(t *testing.T) {
	store := state.New(storage.NewMemDB())
	cur := currency.NewMemory()
	ls := NewStore(store, cur)

	var q unbonding.Queue
	q.Add(5, 3)
	err := ls.Update("alice", AccountLedger{Locked: 100, Unbonding: q})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := ls.Get("alice")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Locked != 100 {
		t.Fatalf("expected locked 100, got %d", got.Locked)
	}
	if got.Unbonding.Len() != 1 {
		t.Fatalf("expected one unbonding chunk, got %d", got.Unbonding.Len())
	}
}

func Test_Update_EmptyLedgerRemovesEntryAndLock(t *testing.T) {
	store := state.New(storage.NewMemDB())
	cur := currency.NewMemory()
	ls := NewStore(store, cur)

	if err := ls.Update("bob", AccountLedger{Locked: 50}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := ls.Update("bob", AccountLedger{}); err != nil {
		t.Fatalf("Update empty: %v", err)
	}

	got, err := ls.Get("bob")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Empty() {
		t.Fatalf("expected empty ledger after removal, got %+v", got)
	}

	has, err := store.Has(state.LedgerKey("bob"))
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if has {
		t.Fatalf("expected ledger storage entry to be removed")
	}
}
