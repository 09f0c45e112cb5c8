package metrics

import (
	"errors"

	"github.com/babylonchain/avaproof/verify"
)

// reasonLabel maps a verification error back to its registered reason
// string for use as a Prometheus label, falling back to "other" for
// anything verify didn't register (e.g. a wrapped non-sentinel error).
func reasonLabel(err error) string {
	for _, candidate := range []struct {
		err   error
		label string
	}{
		{verify.ErrNoStake, "no-stake"},
		{verify.ErrTooManyUtxos, "too-many-utxos"},
		{verify.ErrDustThreshold, "amount-below-dust-threshold"},
		{verify.ErrWrongStakeOrdering, "wrong-stake-ordering"},
		{verify.ErrDuplicateStake, "duplicated-stake"},
		{verify.ErrInvalidStakeSignature, "invalid-stake-signature"},
		{verify.ErrInvalidProofSignature, "invalid-proof-signature"},
		{verify.ErrInvalidPayoutScript, "payout-script-non-standard"},
		{verify.ErrExpired, "expired-proof"},
		{verify.ErrMissingUtxo, "utxo-missing-or-spent"},
		{verify.ErrImmatureUtxo, "immature-utxo"},
		{verify.ErrCoinbaseMismatch, "coinbase-mismatch"},
		{verify.ErrHeightMismatch, "height-mismatch"},
		{verify.ErrAmountMismatch, "amount-mismatch"},
		{verify.ErrNonStandardDestination, "non-standard-destination"},
		{verify.ErrDestinationNotSupported, "destination-type-not-supported"},
		{verify.ErrDestinationMismatch, "destination-mismatch"},
	} {
		if errors.Is(err, candidate.err) {
			return candidate.label
		}
	}
	return "other"
}
