package provider

// Config holds the provider registry's configurable deposit minima.
type Config struct {
	// RegisterDeposit is the fixed amount reserved from the operator at
	// registration and held until unregistration (the scenario default
	// is 10).
	RegisterDeposit uint64
	// MinProviderDeposit is the minimum total deposit a register call
	// must supply, before RegisterDeposit is carved out for the
	// reserve and the rest becomes the operator's initial self-stake.
	MinProviderDeposit uint64
}

// DefaultConfig returns the scenario defaults: a register deposit of
// 10, and a minimum total deposit of 20 (enough to cover the register
// deposit plus a self-stake of at least MinimumStakingAmount).
func DefaultConfig() Config {
	return Config{
		RegisterDeposit:    10,
		MinProviderDeposit: 20,
	}
}
