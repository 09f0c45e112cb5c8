package proof

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/babylonchain/avaproof/codec"
)

// StakeCommitment is the fixed 32-byte value every per-stake signature
// binds to, tying stakes to the containing proof's identifying
// parameters.
type StakeCommitment chainhash.Hash

func (c StakeCommitment) Bytes() []byte {
	h := chainhash.Hash(c)
	return h[:]
}

// NewLegacyStakeCommitment copies a proof's own ProofId as its
// commitment. This only exists once LimitedProofId/ProofId have
// already been derived, which is why legacy-mode proof construction is
// necessarily two-pass: stakes are signed against a commitment that is
// only known after the full stake set is fixed.
func NewLegacyStakeCommitment(id ProofId) StakeCommitment {
	return StakeCommitment(id)
}

// NewStakeCommitment hashes expirationTime and master together. It is
// independent of the stake set, sequence, and payout script — the
// commitment is known before the final stake set is bound, which lets
// current-mode stakes be signed incrementally.
func NewStakeCommitment(expirationTime int64, master PubKey) (StakeCommitment, error) {
	var buf bytes.Buffer
	if err := codec.WriteInt64LE(&buf, expirationTime); err != nil {
		return StakeCommitment{}, err
	}
	if err := codec.WriteBytes(&buf, master.Bytes()); err != nil {
		return StakeCommitment{}, err
	}
	return StakeCommitment(chainhash.DoubleHashH(buf.Bytes())), nil
}
