package rewards

import "math/big"

// perbillUnit is the fixed-point scale (parts per billion) every Ratio
// is expressed against, giving bounded-precision rational arithmetic
// without floating point.
var perbillUnit = big.NewInt(1_000_000_000)

// Ratio is a deterministic rational number in [0, 1], stored as parts
// per billion. It is the engine's substitute for the fractional
// arithmetic a claim split needs (a provider's share of an era, a
// staker's share of a provider).
type Ratio struct {
	partsPerBillion *big.Int
}

// NewRatio computes numerator/denominator as a Ratio, clamped to
// [0, 1]. A zero denominator yields the zero ratio.
func NewRatio(numerator, denominator uint64) Ratio {
	if denominator == 0 {
		return Ratio{partsPerBillion: big.NewInt(0)}
	}
	num := new(big.Int).SetUint64(numerator)
	den := new(big.Int).SetUint64(denominator)
	scaled := new(big.Int).Mul(num, perbillUnit)
	scaled.Quo(scaled, den)
	if scaled.Cmp(perbillUnit) > 0 {
		scaled.Set(perbillUnit)
	}
	return Ratio{partsPerBillion: scaled}
}

// Apply multiplies amount by the ratio, truncating any fractional
// remainder (the remainder is left in the pool, never minted — see
// the claim engine's rounding-residue rule).
func (r Ratio) Apply(amount uint64) uint64 {
	if r.partsPerBillion == nil {
		return 0
	}
	product := new(big.Int).Mul(new(big.Int).SetUint64(amount), r.partsPerBillion)
	product.Quo(product, perbillUnit)
	return product.Uint64()
}

