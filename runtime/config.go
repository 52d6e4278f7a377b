package runtime

import (
	"golang.org/x/time/rate"

	"apistake/core/era"
	"apistake/core/rewards"
	"apistake/crypto"
	"apistake/provider"
	"apistake/registry"
	"apistake/stake"
)

// Config bundles every wired component's configurable constants (§6)
// into one value the runtime Engine is constructed from.
type Config struct {
	Era      era.Config
	Stake    stake.Config
	Rewards  rewards.Config
	Provider provider.Config
	Registry registry.Config

	// FishermanReportRate and FishermanReportBurst configure the
	// per-fisherman token bucket guarding submit_project_usage and
	// submit_provider_report.
	FishermanReportRate  rate.Limit
	FishermanReportBurst int

	// PoolAccount is the staking pool account credited by block
	// rewards and debited by claims.
	PoolAccount string
}

// DefaultConfig returns the scenario defaults used throughout the
// walkthroughs for every wired component.
func DefaultConfig() Config {
	return Config{
		Era:                  era.DefaultConfig(),
		Stake:                stake.DefaultConfig(),
		Rewards:              rewards.DefaultConfig(),
		Provider:             provider.DefaultConfig(),
		Registry:             registry.DefaultConfig(),
		FishermanReportRate:  rate.Limit(1),
		FishermanReportBurst: 4,
		PoolAccount:          crypto.DeriveModuleAddress("pool").String(),
	}
}
