// Package unbonding implements the per-account unbonding queue: ordered
// chunks of locked-but-pending-withdrawal balance, each tagged with the
// era it becomes withdrawable at.
package unbonding

import (
	"sort"

	"apistake/core/balance"
)

// Chunk is one unbonding entry: an amount due back to the account's
// free balance once the current era reaches UnlockEra.
type Chunk struct {
	Amount    balance.Balance `json:"amount"`
	UnlockEra uint64          `json:"unlockEra"`
}

// Queue is a set of chunks kept sorted ascending by UnlockEra with no
// duplicate eras — a merge on Add keeps it that way.
type Queue struct {
	Chunks []Chunk `json:"chunks"`
}

// Add merges amount into the chunk at unlockEra, creating one if none
// exists, preserving ascending order. No chunk-count limit is enforced
// here; callers check MAX_UNLOCKING_CHUNKS against Len before calling.
func (q *Queue) Add(amount balance.Balance, unlockEra uint64) {
	for i := range q.Chunks {
		if q.Chunks[i].UnlockEra == unlockEra {
			q.Chunks[i].Amount = balance.SaturatingAdd(q.Chunks[i].Amount, amount)
			return
		}
	}
	q.Chunks = append(q.Chunks, Chunk{Amount: amount, UnlockEra: unlockEra})
	sort.Slice(q.Chunks, func(i, j int) bool { return q.Chunks[i].UnlockEra < q.Chunks[j].UnlockEra })
}

// Sum folds every chunk's amount, saturating.
func (q Queue) Sum() balance.Balance {
	var total balance.Balance
	for _, c := range q.Chunks {
		total = balance.SaturatingAdd(total, c.Amount)
	}
	return total
}

// Partition splits the queue at currentEra: chunks with UnlockEra <=
// currentEra are "matured", the rest are "pending". Order is preserved
// in both halves, and the sum of the two partitions always equals the
// original sum.
func (q Queue) Partition(currentEra uint64) (matured, pending Queue) {
	for _, c := range q.Chunks {
		if c.UnlockEra <= currentEra {
			matured.Chunks = append(matured.Chunks, c)
		} else {
			pending.Chunks = append(pending.Chunks, c)
		}
	}
	return matured, pending
}

// Len reports the number of distinct unlock-era chunks.
func (q Queue) Len() int { return len(q.Chunks) }

// Equal reports whether two queues hold identical chunks in the same
// order.
func (q Queue) Equal(other Queue) bool {
	if len(q.Chunks) != len(other.Chunks) {
		return false
	}
	for i := range q.Chunks {
		if q.Chunks[i] != other.Chunks[i] {
			return false
		}
	}
	return true
}

// Empty reports whether the queue holds no chunks.
func (q Queue) Empty() bool { return len(q.Chunks) == 0 }
