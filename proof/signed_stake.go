package proof

import (
	"bytes"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/babylonchain/avaproof/codec"
)

// SignedStake pairs a Stake with the Schnorr signature binding it to a
// StakeCommitment. Immutable after construction.
type SignedStake struct {
	stake *Stake
	sig   [64]byte
}

func NewSignedStake(stake *Stake, sig [64]byte) *SignedStake {
	return &SignedStake{stake: stake, sig: sig}
}

func (ss *SignedStake) Stake() *Stake { return ss.stake }
func (ss *SignedStake) Sig() [64]byte { return ss.sig }

// Encode writes stake ‖ sig(64).
func (ss *SignedStake) Encode(w io.Writer) error {
	if err := ss.stake.Encode(w); err != nil {
		return err
	}
	return codec.WriteRaw(w, ss.sig[:])
}

// DecodeSignedStake reads a Stake followed by its 64-byte signature.
func DecodeSignedStake(r io.Reader) (*SignedStake, error) {
	stake, err := DecodeStake(r)
	if err != nil {
		return nil, err
	}
	sigBytes, err := codec.ReadRaw(r, 64)
	if err != nil {
		return nil, err
	}
	var sig [64]byte
	copy(sig[:], sigBytes)
	return NewSignedStake(stake, sig), nil
}

// Verify reports whether Sig is a valid signature by the stake's pubkey
// over H(commitment ‖ canonical-encoding(stake)).
func (ss *SignedStake) Verify(commitment StakeCommitment) bool {
	msg, err := stakeSignatureHash(commitment, ss.stake)
	if err != nil {
		return false
	}
	return ss.stake.pubkey.VerifySchnorr(msg, ss.sig)
}

// SignStake produces the signature a SignedStake for s under commitment
// must carry, issued by the same private key behind s.PubKey().
func SignStake(priv *btcec.PrivateKey, commitment StakeCommitment, s *Stake) ([64]byte, error) {
	msg, err := stakeSignatureHash(commitment, s)
	if err != nil {
		return [64]byte{}, err
	}
	return SignSchnorr(priv, msg)
}

func stakeSignatureHash(commitment StakeCommitment, s *Stake) ([32]byte, error) {
	var buf bytes.Buffer
	buf.Write(commitment.Bytes())
	if err := s.Encode(&buf); err != nil {
		return [32]byte{}, err
	}
	return [32]byte(chainhash.DoubleHashH(buf.Bytes())), nil
}
