package registry

import "apistake/core/balance"

// DepositChunk is one deposit contribution to a project, due back to
// its consumer's free balance once the current block reaches
// UnlockBlock — the block-cadence counterpart to unbonding.Chunk's
// era cadence.
type DepositChunk struct {
	Amount     balance.Balance `json:"amount"`
	UnlockBlock uint64         `json:"unlockBlock"`
}

// DepositChunks is a project's set of deposit chunks, kept merged by
// UnlockBlock the same way unbonding.Queue merges by UnlockEra.
type DepositChunks struct {
	Chunks []DepositChunk `json:"chunks"`
}

// Add merges amount into the chunk unlocking at unlockBlock, creating
// one if none exists.
func (d *DepositChunks) Add(amount balance.Balance, unlockBlock uint64) {
	for i := range d.Chunks {
		if d.Chunks[i].UnlockBlock == unlockBlock {
			d.Chunks[i].Amount = balance.SaturatingAdd(d.Chunks[i].Amount, amount)
			return
		}
	}
	d.Chunks = append(d.Chunks, DepositChunk{Amount: amount, UnlockBlock: unlockBlock})
}

// Sum folds every chunk's amount, saturating.
func (d DepositChunks) Sum() balance.Balance {
	var total balance.Balance
	for _, c := range d.Chunks {
		total = balance.SaturatingAdd(total, c.Amount)
	}
	return total
}

// Partition splits the chunks at currentBlock: chunks with
// UnlockBlock <= currentBlock are matured, the rest are pending.
func (d DepositChunks) Partition(currentBlock uint64) (matured, pending DepositChunks) {
	for _, c := range d.Chunks {
		if c.UnlockBlock <= currentBlock {
			matured.Chunks = append(matured.Chunks, c)
		} else {
			pending.Chunks = append(pending.Chunks, c)
		}
	}
	return matured, pending
}

// Len reports the number of distinct unlock-block chunks.
func (d DepositChunks) Len() int { return len(d.Chunks) }

// Project is a consumer-side quota-bearing account (§3).
type Project struct {
	Consumer      string        `json:"consumer"`
	ChainID       string        `json:"chainId"`
	Quota         uint64        `json:"quota"`
	Usage         uint64        `json:"usage"`
	DepositChunks DepositChunks `json:"depositChunks"`
}
