package stake

// Config holds the stake engine's configurable minima and limits.
// Field names mirror the constants callers configure it with.
type Config struct {
	MinimumStakingAmount   uint64
	MinimumRemainingAmount uint64
	MaxUnlockingChunks     int
	MaxEraStakeValues      int
	MaxStakersPerProvider  int
	UnbondingPeriod        uint64
}

// DefaultConfig returns the scenario defaults used throughout the
// walkthroughs: minimum stake 10, minimum remaining 1, unbonding period
// 3 eras.
func DefaultConfig() Config {
	return Config{
		MinimumStakingAmount:   10,
		MinimumRemainingAmount: 1,
		MaxUnlockingChunks:     32,
		MaxEraStakeValues:      128,
		MaxStakersPerProvider:  256,
		UnbondingPeriod:        3,
	}
}
