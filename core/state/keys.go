package state

import "fmt"

// Key namespaces. Every stateful package owns one prefix and never reads
// or writes outside it, so prefix iteration (IteratePrefix) is always
// scoped to a single record family.
const (
	prefixEra            = "era/"
	prefixEraSnapshot    = "era/snapshot/"
	prefixLedger         = "ledger/"
	prefixStakePoints    = "stake/points/"
	prefixEraStakeValues = "stake/eraValues/"
	prefixProvider       = "provider/"
	prefixProject        = "project/"
	prefixChainID        = "access/chainId/"
	prefixFisherman      = "access/fisherman/"
)

// EraKey returns the singleton key holding the current era clock state.
func EraKey() []byte { return []byte(prefixEra + "current") }

// EraSnapshotKey returns the key for the EraRewardAndStake record of era.
func EraSnapshotKey(era uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", prefixEraSnapshot, era))
}

// EraSnapshotPrefix returns the iteration prefix for every era snapshot.
func EraSnapshotPrefix() []byte { return []byte(prefixEraSnapshot) }

// LedgerKey returns the key for an account's ledger record.
func LedgerKey(account string) []byte { return []byte(prefixLedger + account) }

// LedgerPrefix returns the iteration prefix for every ledger record.
func LedgerPrefix() []byte { return []byte(prefixLedger) }

// StakePointsKey returns the key for a provider's full ProviderStakePoints
// record at a given era.
func StakePointsKey(provider string, era uint64) []byte {
	return []byte(fmt.Sprintf("%s%s/%020d", prefixStakePoints, provider, era))
}

// EraStakeValuesKey returns the key for the count of times a staker has
// joined a provider's stakers map, used to enforce MaxEraStakeValues.
func EraStakeValuesKey(staker, provider string) []byte {
	return []byte(prefixEraStakeValues + staker + "/" + provider)
}

// ProviderKey returns the key for a provider's registration record.
func ProviderKey(providerID string) []byte { return []byte(prefixProvider + providerID) }

// ProviderPrefix returns the iteration prefix for every provider record.
func ProviderPrefix() []byte { return []byte(prefixProvider) }

// ProjectKey returns the key for a consumer project's registration record.
func ProjectKey(projectID string) []byte { return []byte(prefixProject + projectID) }

// ProjectPrefix returns the iteration prefix for every project record.
func ProjectPrefix() []byte { return []byte(prefixProject) }

// ChainIDKey returns the key for a member of the accepted chain-id set.
func ChainIDKey(chainID string) []byte { return []byte(prefixChainID + chainID) }

// ChainIDPrefix returns the iteration prefix for the accepted chain-id set.
func ChainIDPrefix() []byte { return []byte(prefixChainID) }

// FishermanKey returns the key for a member of the fisherman set.
func FishermanKey(account string) []byte { return []byte(prefixFisherman + account) }

// FishermanPrefix returns the iteration prefix for the fisherman set.
func FishermanPrefix() []byte { return []byte(prefixFisherman) }
