package currency

import (
	"sync"

	"apistake/core/balance"
)

type lockEntry struct {
	amount  balance.Balance
	reasons LockReasons
}

type account struct {
	free     balance.Balance
	reserved balance.Balance
	locks    map[[8]byte]lockEntry
}

// Memory is an in-memory Port implementation, the engine's stand-in
// currency collaborator for tests and the standalone cmd/apistaked
// driver. It is not a production ledger: there is no persistence and
// no existential-deposit configuration beyond zero.
type Memory struct {
	mu       sync.Mutex
	accounts map[string]*account
	issued   balance.Balance
}

// NewMemory constructs an empty in-memory currency collaborator.
func NewMemory() *Memory {
	return &Memory{accounts: make(map[string]*account)}
}

func (m *Memory) acct(id string) *account {
	a, ok := m.accounts[id]
	if !ok {
		a = &account{locks: make(map[[8]byte]lockEntry)}
		m.accounts[id] = a
	}
	return a
}

// Fund credits account directly, without an imbalance, and adds amount
// to total issuance. Tests use this to seed starting free balances.
func (m *Memory) Fund(account string, amount balance.Balance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acct(account).free += amount
	m.issued += amount
}

func (m *Memory) Issue(amount balance.Balance) Imbalance {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued += amount
	return Imbalance{Amount: amount}
}

func (m *Memory) ResolveCreating(accountID string, imbalance Imbalance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acct(accountID).free += imbalance.Amount
}

// Withdraw moves amount out of an account's free balance into the
// returned imbalance. Total issuance is untouched: the caller is
// expected to resolve the imbalance back into circulation (a claim
// payout, a transfer) rather than drop it. A genuine burn only
// happens if the caller discards the imbalance instead of resolving
// it, which this reference implementation does not track.
func (m *Memory) Withdraw(accountID string, amount balance.Balance, existence Existence) (Imbalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.acct(accountID)
	if a.free < amount {
		return Imbalance{}, ErrInsufficientFree
	}
	a.free -= amount
	return Imbalance{Amount: amount}, nil
}

func (m *Memory) Reserve(accountID string, amount balance.Balance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.acct(accountID)
	if a.free < amount {
		return ErrInsufficientFree
	}
	a.free -= amount
	a.reserved += amount
	return nil
}

func (m *Memory) Unreserve(accountID string, amount balance.Balance) balance.Balance {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.acct(accountID)
	taken := amount
	shortfall := balance.Zero
	if taken > a.reserved {
		shortfall = taken - a.reserved
		taken = a.reserved
	}
	a.reserved -= taken
	a.free += taken
	return shortfall
}

func (m *Memory) SetLock(id [8]byte, accountID string, amount balance.Balance, reasons LockReasons) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.acct(accountID)
	a.locks[id] = lockEntry{amount: amount, reasons: reasons}
}

func (m *Memory) RemoveLock(id [8]byte, accountID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.acct(accountID).locks, id)
}

func (m *Memory) FreeBalance(accountID string) balance.Balance {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.acct(accountID).free
}

func (m *Memory) TotalIssuance() balance.Balance {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.issued
}

var _ Port = (*Memory)(nil)
