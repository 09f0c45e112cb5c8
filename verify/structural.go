package verify

import (
	"bytes"

	errorsmod "cosmossdk.io/errors"

	"github.com/babylonchain/avaproof/proof"
)

// StructuralVerifier validates a Proof against itself and a dust
// threshold (spec.md §4.3). It is stateless and side-effect free: a
// caller may run many verifications concurrently against distinct
// proofs.
type StructuralVerifier struct {
	// StakeUtxoDustThreshold is the minimum admissible stake amount.
	StakeUtxoDustThreshold proof.Amount

	// PayoutScriptClassifier classifies a current-mode proof's payout
	// script. Defaults to DefaultPayoutScriptClassifier.
	PayoutScriptClassifier PayoutScriptClassifier
}

// Verify runs the fail-fast structural checks in order and returns the
// first failing *errorsmod.Error (optionally wrapped with detail), or
// nil if the proof is structurally valid.
func (v *StructuralVerifier) Verify(p *proof.Proof) error {
	stakes := p.Stakes()

	if len(stakes) == 0 {
		return ErrNoStake
	}
	if len(stakes) > proof.AVALANCHE_MAX_PROOF_STAKES {
		return errorsmod.Wrapf(ErrTooManyUtxos, "%d > %d", len(stakes), proof.AVALANCHE_MAX_PROOF_STAKES)
	}

	if p.Format() == proof.Current {
		classifier := v.PayoutScriptClassifier
		if classifier == nil {
			classifier = DefaultPayoutScriptClassifier
		}
		if !classifier.IsStandard(p.PayoutScript()) {
			return ErrInvalidPayoutScript
		}
		if !p.Master().VerifySchnorr(p.LimitedProofId().Array(), p.Signature()) {
			return ErrInvalidProofSignature
		}
	}

	commitment, err := p.StakeCommitment()
	if err != nil {
		return errorsmod.Wrap(ErrInvalidStakeSignature, err.Error())
	}

	var prevID [32]byte
	seenUTXOs := make(map[proof.OutPoint]struct{}, len(stakes))
	for _, ss := range stakes {
		s := ss.Stake()

		if s.Amount() < v.StakeUtxoDustThreshold {
			return errorsmod.Wrapf(ErrDustThreshold, "%d < %d", s.Amount(), v.StakeUtxoDustThreshold)
		}

		id := s.StakeID()
		// StakeId is collision-resistant, so two equal ids imply
		// identical stakes and thus identical UTXOs, which the
		// duplicate-UTXO check below rejects on its own. Using < here
		// (rather than <=) deliberately admits that impossible-in-
		// practice edge case rather than reject it.
		if bytes.Compare(id[:], prevID[:]) < 0 {
			return ErrWrongStakeOrdering
		}
		prevID = id

		if _, dup := seenUTXOs[s.UTXO()]; dup {
			return ErrDuplicateStake
		}
		seenUTXOs[s.UTXO()] = struct{}{}

		if !ss.Verify(commitment) {
			return errorsmod.Wrapf(ErrInvalidStakeSignature, "txid: %s", s.UTXO().Hash)
		}
	}

	return nil
}
