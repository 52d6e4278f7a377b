package era

import "fmt"

// Config describes the era cadence and the reward the clock mints each
// block. BLOCKS_PER_ERA, REWARD_PER_BLOCK and HISTORY_DEPTH all live
// here (scenario defaults in DefaultConfig).
type Config struct {
	// BlocksPerEra is the number of blocks that make up a single era. An
	// era boundary fires when the block number modulo this value is 1.
	BlocksPerEra uint64

	// RewardPerBlock is the fixed amount minted at every on_timestamp_set
	// call and routed into the block-reward accumulator.
	RewardPerBlock uint64

	// HistoryDepth bounds how many eras back a claim may still target
	// relative to the current era.
	HistoryDepth uint64
}

// DefaultConfig returns the scenario defaults used throughout the
// claim-engine walkthroughs: a 3-block era and a 1000-unit block
// reward.
func DefaultConfig() Config {
	return Config{
		BlocksPerEra:   3,
		RewardPerBlock: 1000,
		HistoryDepth:   84,
	}
}

// Validate ensures the configuration is self-consistent.
func (c Config) Validate() error {
	if c.BlocksPerEra == 0 {
		return fmt.Errorf("blocks per era must be greater than zero")
	}
	return nil
}
