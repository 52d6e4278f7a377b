// Package config loads and persists the on-disk configuration for the
// apistaked binary: the chain-parameter knobs runtime.Config bundles,
// plus the host-level settings (listen addresses, data directory, log
// level) that have no home inside the engine itself.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"golang.org/x/time/rate"

	"apistake/core/era"
	"apistake/core/rewards"
	"apistake/crypto"
	"apistake/provider"
	"apistake/registry"
	"apistake/runtime"
	"apistake/stake"
)

// Config is the TOML-serializable form of everything apistaked needs
// to boot: where to listen, where to keep state, and the chain
// parameters the wired engine is constructed from.
type Config struct {
	ListenAddress string `toml:"ListenAddress"`
	MetricsAddr   string `toml:"MetricsAddress"`
	DataDir       string `toml:"DataDir"`
	LogLevel      string `toml:"LogLevel"`
	Env           string `toml:"Env"`

	Era      EraConfig      `toml:"Era"`
	Stake    StakeConfig    `toml:"Stake"`
	Rewards  RewardsConfig  `toml:"Rewards"`
	Provider ProviderConfig `toml:"Provider"`
	Registry RegistryConfig `toml:"Registry"`

	PoolAccount string `toml:"PoolAccount"`
}

// EraConfig mirrors era.Config's fields for TOML round-tripping.
type EraConfig struct {
	BlocksPerEra   uint64 `toml:"BlocksPerEra"`
	RewardPerBlock uint64 `toml:"RewardPerBlock"`
	HistoryDepth   uint64 `toml:"HistoryDepth"`
}

// StakeConfig mirrors stake.Config's fields for TOML round-tripping.
type StakeConfig struct {
	MinimumStakingAmount   uint64 `toml:"MinimumStakingAmount"`
	MinimumRemainingAmount uint64 `toml:"MinimumRemainingAmount"`
	MaxUnlockingChunks     int    `toml:"MaxUnlockingChunks"`
	MaxEraStakeValues      int    `toml:"MaxEraStakeValues"`
	MaxStakersPerProvider  int    `toml:"MaxStakersPerProvider"`
	UnbondingPeriod        uint64 `toml:"UnbondingPeriod"`
}

// RewardsConfig mirrors rewards.Config's fields for TOML round-tripping.
type RewardsConfig struct {
	OperatorPercentageBps uint32 `toml:"OperatorPercentageBps"`
}

// ProviderConfig mirrors provider.Config's fields for TOML round-tripping.
type ProviderConfig struct {
	RegisterDeposit    uint64 `toml:"RegisterDeposit"`
	MinProviderDeposit uint64 `toml:"MinProviderDeposit"`
}

// RegistryConfig mirrors registry.Config's fields, plus the
// fisherman-report token-bucket parameters runtime.Config bundles
// alongside it.
type RegistryConfig struct {
	QuotaScale           uint64  `toml:"QuotaScale"`
	DepositLockBlocks    uint64  `toml:"DepositLockBlocks"`
	MaxDepositChunks     int     `toml:"MaxDepositChunks"`
	ChainIDMaxLen        int     `toml:"ChainIDMaxLen"`
	FishermanReportRate  float64 `toml:"FishermanReportRate"`
	FishermanReportBurst int     `toml:"FishermanReportBurst"`
}

// Load reads cfg from path, writing out a generated default file if
// none exists yet.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// createDefault writes and returns the generated default configuration.
func createDefault(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the scenario-default configuration, matching
// runtime.DefaultConfig's chain parameters.
func Default() *Config {
	return &Config{
		ListenAddress: ":8081",
		MetricsAddr:   ":9100",
		DataDir:       "./apistaked-data",
		LogLevel:      "info",
		Env:           "development",
		Era: EraConfig{
			BlocksPerEra:   3,
			RewardPerBlock: 1000,
			HistoryDepth:   84,
		},
		Stake: StakeConfig{
			MinimumStakingAmount:   10,
			MinimumRemainingAmount: 1,
			MaxUnlockingChunks:     32,
			MaxEraStakeValues:      128,
			MaxStakersPerProvider:  256,
			UnbondingPeriod:        3,
		},
		Rewards: RewardsConfig{OperatorPercentageBps: 8_000},
		Provider: ProviderConfig{
			RegisterDeposit:    10,
			MinProviderDeposit: 20,
		},
		Registry: RegistryConfig{
			QuotaScale:           1_000_000_000_000_000,
			DepositLockBlocks:    100,
			MaxDepositChunks:     32,
			ChainIDMaxLen:        64,
			FishermanReportRate:  1,
			FishermanReportBurst: 4,
		},
		PoolAccount: "",
	}
}

// ToRuntime translates the on-disk configuration into a
// runtime.Config, deriving a deterministic pool account from the
// "pool" module identifier when PoolAccount is left blank.
func (c *Config) ToRuntime() runtime.Config {
	pool := c.PoolAccount
	if pool == "" {
		pool = crypto.DeriveModuleAddress("pool").String()
	}
	return runtime.Config{
		Era: era.Config{
			BlocksPerEra:   c.Era.BlocksPerEra,
			RewardPerBlock: c.Era.RewardPerBlock,
			HistoryDepth:   c.Era.HistoryDepth,
		},
		Stake: stake.Config{
			MinimumStakingAmount:   c.Stake.MinimumStakingAmount,
			MinimumRemainingAmount: c.Stake.MinimumRemainingAmount,
			MaxUnlockingChunks:     c.Stake.MaxUnlockingChunks,
			MaxEraStakeValues:      c.Stake.MaxEraStakeValues,
			MaxStakersPerProvider:  c.Stake.MaxStakersPerProvider,
			UnbondingPeriod:        c.Stake.UnbondingPeriod,
		},
		Rewards: rewards.Config{OperatorPercentageBps: c.Rewards.OperatorPercentageBps},
		Provider: provider.Config{
			RegisterDeposit:    c.Provider.RegisterDeposit,
			MinProviderDeposit: c.Provider.MinProviderDeposit,
		},
		Registry: registry.Config{
			QuotaScale:        c.Registry.QuotaScale,
			DepositLockBlocks: c.Registry.DepositLockBlocks,
			MaxDepositChunks:  c.Registry.MaxDepositChunks,
			ChainIDMaxLen:     c.Registry.ChainIDMaxLen,
		},
		FishermanReportRate:  rate.Limit(c.Registry.FishermanReportRate),
		FishermanReportBurst: c.Registry.FishermanReportBurst,
		PoolAccount:          pool,
	}
}
