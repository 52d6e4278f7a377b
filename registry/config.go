package registry

// Config holds the project/consumer registry's configurable constants.
type Config struct {
	// QuotaScale converts a deposit into a quota: quota = deposit /
	// QuotaScale. Defaults to 10^15 per §6.
	QuotaScale uint64
	// DepositLockBlocks is the number of blocks a project deposit chunk
	// remains reserved before withdraw_project_deposit can unreserve it,
	// mirroring the stake engine's unbonding delay but measured in
	// blocks since the project registry has no era of its own.
	DepositLockBlocks uint64
	// MaxDepositChunks bounds how many distinct unlock-block chunks a
	// single project's deposit history may accumulate.
	MaxDepositChunks int
	// ChainIDMaxLen bounds the byte length of a registered chain id.
	ChainIDMaxLen int
}

// DefaultConfig returns the scenario defaults: a quota scale of 10^15,
// a 100-block deposit lock, and room for 32 deposit chunks.
func DefaultConfig() Config {
	return Config{
		QuotaScale:        1_000_000_000_000_000,
		DepositLockBlocks: 100,
		MaxDepositChunks:  32,
		ChainIDMaxLen:     64,
	}
}
