package verify

import "github.com/btcsuite/btcd/txscript"

// PayoutScriptClassifier reports whether a proof's payout script
// template is "standard" enough to be admissible in current-mode
// proofs. StructuralVerifier takes one as a collaborator so tests can
// substitute a stub without pulling in full script-engine behavior.
type PayoutScriptClassifier interface {
	IsStandard(script []byte) bool
}

type btcdPayoutScriptClassifier struct{}

func (btcdPayoutScriptClassifier) IsStandard(script []byte) bool {
	return txscript.GetScriptClass(script) != txscript.NonStandardTy
}

// DefaultPayoutScriptClassifier classifies scripts the way btcd's
// txscript package does: any recognized script template (P2PKH,
// P2SH, P2PK, multisig, ...) counts as standard.
var DefaultPayoutScriptClassifier PayoutScriptClassifier = btcdPayoutScriptClassifier{}
