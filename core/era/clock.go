package era

import (
	"encoding/json"

	"apistake/core/balance"
	"apistake/core/events"
	"apistake/core/state"
	"apistake/currency"
)

// clockState is the clock's persisted singleton record.
type clockState struct {
	CurrentEra uint64          `json:"currentEra"`
	Accumulator balance.Balance `json:"accumulator"`
	ForceEra   bool            `json:"forceEra"`
}

// Clock drives era boundaries and the block-reward accumulator. It is
// the only component that mints currency: every other package only
// moves balances the clock has already created.
type Clock struct {
	cfg       Config
	store     state.Store
	snapshots *SnapshotStore
	pool      string
}

// NewClock constructs a Clock bound to store and configured to credit
// every minted block reward to poolAccount.
func NewClock(cfg Config, store state.Store, poolAccount string) *Clock {
	return &Clock{cfg: cfg, store: store, snapshots: NewSnapshotStore(store), pool: poolAccount}
}

func (c *Clock) load() (clockState, error) {
	raw, err := c.store.Get(state.EraKey())
	if err != nil {
		if err == state.ErrNotFound {
			return clockState{}, nil
		}
		return clockState{}, err
	}
	var s clockState
	if err := json.Unmarshal(raw, &s); err != nil {
		return clockState{}, err
	}
	return s, nil
}

func (c *Clock) save(s clockState) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.store.Set(state.EraKey(), raw)
}

// CurrentEra returns the era the clock currently considers active.
func (c *Clock) CurrentEra() (uint64, error) {
	s, err := c.load()
	if err != nil {
		return 0, err
	}
	return s.CurrentEra, nil
}

// ForceNewEra schedules an era boundary on the next OnInitialize call
// regardless of block number.
func (c *Clock) ForceNewEra() error {
	s, err := c.load()
	if err != nil {
		return err
	}
	s.ForceEra = true
	return c.save(s)
}

// OnTimestampSet mints RewardPerBlock through cur and folds it into the
// block-reward accumulator, then resolves the imbalance into the pool
// account. Called at most once per block.
func (c *Clock) OnTimestampSet(cur currency.Port) error {
	s, err := c.load()
	if err != nil {
		return err
	}
	imbalance := cur.Issue(balance.Balance(c.cfg.RewardPerBlock))
	s.Accumulator = balance.SaturatingAdd(s.Accumulator, imbalance.Peek())
	cur.ResolveCreating(c.pool, imbalance)
	return c.save(s)
}

// OnInitialize advances the era boundary when due. An era boundary
// fires when blockNumber modulo BlocksPerEra equals 1, when a new era
// has been forced, or before the clock has ever advanced
// (currentEra == 0, which also covers genesis). It returns the events
// produced, normally empty unless a boundary fired.
func (c *Clock) OnInitialize(blockNumber uint64) ([]*events.Event, error) {
	s, err := c.load()
	if err != nil {
		return nil, err
	}

	boundary := s.ForceEra || s.CurrentEra == 0 || blockNumber%c.cfg.BlocksPerEra == 1
	if !boundary {
		return nil, nil
	}

	closing := s.CurrentEra
	next := closing + 1

	reward := s.Accumulator
	s.Accumulator = 0

	if err := c.snapshot(closing, reward); err != nil {
		return nil, err
	}

	s.CurrentEra = next
	s.ForceEra = false
	if err := c.save(s); err != nil {
		return nil, err
	}

	ev := events.NewEra{Era: next}
	return []*events.Event{ev.Event()}, nil
}

// snapshot closes era e with reward r: it carries e's staked/locked
// totals forward into e+1 with a zero reward, then writes e's own
// record with the reward it accrued.
func (c *Clock) snapshot(e uint64, r balance.Balance) error {
	prior, _, err := c.snapshots.Get(e)
	if err != nil {
		return err
	}

	next := RewardAndStake{Rewards: 0, Staked: prior.Staked, Locked: prior.Locked}
	if err := c.snapshots.Put(e+1, next); err != nil {
		return err
	}

	prior.Rewards = r
	return c.snapshots.Put(e, prior)
}

// Snapshots exposes the clock's snapshot store to other packages that
// need direct (non-fallback) era-record access, such as the stake
// engine updating the current era's totals and the claim engine
// reading a closed era's reward.
func (c *Clock) Snapshots() *SnapshotStore { return c.snapshots }
