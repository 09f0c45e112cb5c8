// Package verify implements the two-tier Avalanche proof validation
// pipeline: StructuralVerifier checks a Proof against itself and a
// dust threshold; ChainVerifier runs StructuralVerifier and then
// cross-checks every stake against a live ChainView.
package verify

import (
	errorsmod "cosmossdk.io/errors"
)

// codespace namespaces the registered sentinel errors below the same
// way cosmos-sdk modules namespace theirs, so a caller can tell an
// avaproof validation failure apart from any other *errorsmod.Error it
// might be comparing against with errors.Is.
const codespace = "avaproof"

// Every InvalidReason in spec.md §7, registered once as a codespaced
// sentinel. Callers compare with errors.Is; detail is attached via
// errorsmod.Wrap/Wrapf at the call site, never by minting a new
// sentinel.
var (
	ErrNoStake                  = errorsmod.Register(codespace, 1, "no-stake")
	ErrTooManyUtxos             = errorsmod.Register(codespace, 2, "too-many-utxos")
	ErrDustThreshold            = errorsmod.Register(codespace, 3, "amount-below-dust-threshold")
	ErrWrongStakeOrdering       = errorsmod.Register(codespace, 4, "wrong-stake-ordering")
	ErrDuplicateStake           = errorsmod.Register(codespace, 5, "duplicated-stake")
	ErrInvalidStakeSignature    = errorsmod.Register(codespace, 6, "invalid-stake-signature")
	ErrInvalidProofSignature    = errorsmod.Register(codespace, 7, "invalid-proof-signature")
	ErrInvalidPayoutScript      = errorsmod.Register(codespace, 8, "payout-script-non-standard")
	ErrExpired                  = errorsmod.Register(codespace, 9, "expired-proof")
	ErrMissingUtxo              = errorsmod.Register(codespace, 10, "utxo-missing-or-spent")
	ErrImmatureUtxo             = errorsmod.Register(codespace, 11, "immature-utxo")
	ErrCoinbaseMismatch         = errorsmod.Register(codespace, 12, "coinbase-mismatch")
	ErrHeightMismatch           = errorsmod.Register(codespace, 13, "height-mismatch")
	ErrAmountMismatch           = errorsmod.Register(codespace, 14, "amount-mismatch")
	ErrNonStandardDestination   = errorsmod.Register(codespace, 15, "non-standard-destination")
	ErrDestinationNotSupported  = errorsmod.Register(codespace, 16, "destination-type-not-supported")
	ErrDestinationMismatch      = errorsmod.Register(codespace, 17, "destination-mismatch")
)
