package proof

import "math"

// Amount is a signed count of the smallest currency unit.
type Amount int64

// SatAdd adds b to a with saturation at the int64 bounds, used when
// summing stake amounts for Proof.StakedAmount/Score.
func (a Amount) SatAdd(b Amount) Amount {
	sum := a + b
	switch {
	case b > 0 && sum < a:
		return Amount(math.MaxInt64)
	case b < 0 && sum > a:
		return Amount(math.MinInt64)
	default:
		return sum
	}
}

// AmountToScore truncates (100 * total) / COIN into a u32 voting score.
// Truncation is intentional: a stake whose amount*100 doesn't cross a
// COIN boundary contributes zero score while still passing dust.
func AmountToScore(total Amount) uint32 {
	return uint32((100 * int64(total)) / int64(COIN))
}
