// Package proof implements the Avalanche proof data model: Stake,
// SignedStake, StakeCommitment and Proof, their canonical wire
// encoding, and the identity (LimitedProofId/ProofId) and score
// derivation performed once at construction time.
package proof

import (
	"bytes"
	"encoding/hex"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/babylonchain/avaproof/codec"
)

const (
	// COIN is the number of smallest currency units in one full coin.
	COIN Amount = 100_000_000

	// AVALANCHE_MAX_PROOF_STAKES bounds the number of stakes a single
	// proof may carry, to bound per-proof validation cost.
	AVALANCHE_MAX_PROOF_STAKES = 2000

	// AVALANCHE_DEFAULT_LEGACY_PROOF is the default for the legacy
	// wire/identity format toggle.
	AVALANCHE_DEFAULT_LEGACY_PROOF = false

	// AVALANCHE_DEFAULT_STAKE_UTXO_CONFIRMATIONS is the default minimum
	// confirmation depth required of a stake UTXO.
	AVALANCHE_DEFAULT_STAKE_UTXO_CONFIRMATIONS = 1

	// maxDecodeStakes is the raw safety ceiling the codec enforces
	// before allocating a stake slice, independent of the structural
	// ceiling AVALANCHE_MAX_PROOF_STAKES enforced later by a verifier.
	maxDecodeStakes = 100_000

	// maxPayoutScriptLen bounds a decoded payout script before
	// allocation.
	maxPayoutScriptLen = 10_000
)

// Format selects between the legacy and current wire/identity layouts.
// The two are incompatible byte streams; nothing in the wire format
// itself identifies which was used.
type Format int

const (
	Current Format = iota
	Legacy
)

func (f Format) String() string {
	if f == Legacy {
		return "legacy"
	}
	return "current"
}

// LimitedProofId omits the master key from the proof's identity hash;
// ProofId folds it back in. Both are 32-byte double-SHA256 outputs.
type LimitedProofId chainhash.Hash
type ProofId chainhash.Hash

func (id LimitedProofId) Bytes() []byte  { h := chainhash.Hash(id); return h[:] }
func (id LimitedProofId) String() string { return chainhash.Hash(id).String() }
func (id LimitedProofId) Array() [32]byte {
	return [32]byte(id)
}

func (id ProofId) Bytes() []byte  { h := chainhash.Hash(id); return h[:] }
func (id ProofId) String() string { return chainhash.Hash(id).String() }
func (id ProofId) Array() [32]byte {
	return [32]byte(id)
}

// Proof is an ordered list of SignedStakes plus binding metadata. It is
// immutable after construction: LimitedProofId, ProofId, StakedAmount
// and Score are derived exactly once, in NewProof/Decode, and never
// recomputed afterward.
type Proof struct {
	format       Format
	sequence     uint64
	expiration   int64
	master       PubKey
	payoutScript []byte
	stakes       []*SignedStake
	signature    [64]byte

	limitedProofID LimitedProofId
	proofID        ProofId
	stakedAmount   Amount
	score          uint32
}

// NewProof builds a Proof from its fields and derives its identity.
// stakes must already be in ascending-stakeid order and individually
// signed; NewProof does not validate — that is StructuralVerifier's job.
func NewProof(
	format Format,
	sequence uint64,
	expiration int64,
	master PubKey,
	payoutScript []byte,
	stakes []*SignedStake,
	signature [64]byte,
) (*Proof, error) {
	p := &Proof{
		format:       format,
		sequence:     sequence,
		expiration:   expiration,
		master:       master,
		payoutScript: payoutScript,
		stakes:       stakes,
		signature:    signature,
	}
	if err := p.deriveIdentity(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Proof) deriveIdentity() error {
	var buf bytes.Buffer
	if err := codec.WriteUint64LE(&buf, p.sequence); err != nil {
		return err
	}
	if err := codec.WriteInt64LE(&buf, p.expiration); err != nil {
		return err
	}
	if p.format == Current {
		if err := codec.WriteBytes(&buf, p.payoutScript); err != nil {
			return err
		}
	}
	if err := codec.WriteCompactSize(&buf, uint64(len(p.stakes))); err != nil {
		return err
	}

	var total Amount
	for _, ss := range p.stakes {
		if err := ss.stake.Encode(&buf); err != nil {
			return err
		}
		total = total.SatAdd(ss.stake.amount)
	}
	p.limitedProofID = LimitedProofId(chainhash.DoubleHashH(buf.Bytes()))

	var idBuf bytes.Buffer
	idBuf.Write(p.limitedProofID.Bytes())
	if err := codec.WriteBytes(&idBuf, p.master.Bytes()); err != nil {
		return err
	}
	p.proofID = ProofId(chainhash.DoubleHashH(idBuf.Bytes()))

	p.stakedAmount = total
	p.score = AmountToScore(total)
	return nil
}

// SignProof produces the master signature a current-format proof must
// carry: a Schnorr signature by masterPriv over the proof's own
// LimitedProofId. Legacy-format proofs carry no master signature.
func SignProof(masterPriv *btcec.PrivateKey, limitedProofID LimitedProofId) ([64]byte, error) {
	return SignSchnorr(masterPriv, limitedProofID.Array())
}

// StakeCommitment computes the fixed 32-byte value each per-stake
// signature binds to. In legacy mode it is a copy of the proof's own
// ProofId (derived above); in current mode it depends only on
// ExpirationTime and Master, independent of the stake set.
func (p *Proof) StakeCommitment() (StakeCommitment, error) {
	if p.format == Legacy {
		return NewLegacyStakeCommitment(p.proofID), nil
	}
	return NewStakeCommitment(p.expiration, p.master)
}

func (p *Proof) Format() Format               { return p.format }
func (p *Proof) Sequence() uint64             { return p.sequence }
func (p *Proof) Expiration() int64            { return p.expiration }
func (p *Proof) Master() PubKey               { return p.master }
func (p *Proof) PayoutScript() []byte         { return p.payoutScript }
func (p *Proof) Stakes() []*SignedStake       { return p.stakes }
func (p *Proof) Signature() [64]byte          { return p.signature }
func (p *Proof) LimitedProofId() LimitedProofId { return p.limitedProofID }
func (p *Proof) ProofId() ProofId             { return p.proofID }
func (p *Proof) StakedAmount() Amount         { return p.stakedAmount }
func (p *Proof) Score() uint32                { return p.score }

// Encode writes the canonical wire layout for p.Format(): legacy proofs
// omit the payout script and proof signature entirely; current proofs
// carry both after the stake vector.
func (p *Proof) Encode(w io.Writer) error {
	if err := codec.WriteUint64LE(w, p.sequence); err != nil {
		return err
	}
	if err := codec.WriteInt64LE(w, p.expiration); err != nil {
		return err
	}
	if err := codec.WriteBytes(w, p.master.Bytes()); err != nil {
		return err
	}
	if err := codec.WriteCompactSize(w, uint64(len(p.stakes))); err != nil {
		return err
	}
	for _, ss := range p.stakes {
		if err := ss.Encode(w); err != nil {
			return err
		}
	}
	if p.format == Current {
		if err := codec.WriteBytes(w, p.payoutScript); err != nil {
			return err
		}
		if err := codec.WriteRaw(w, p.signature[:]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeProof reads a Proof in the given format and derives its
// identity. It does not check that the reader is fully consumed; use
// Decode for that (and for the format-mismatch detection it implies).
func DecodeProof(r io.Reader, format Format) (*Proof, error) {
	sequence, err := codec.ReadUint64LE(r)
	if err != nil {
		return nil, err
	}
	expiration, err := codec.ReadInt64LE(r)
	if err != nil {
		return nil, err
	}
	masterBytes, err := codec.ReadBytes(r, PubKeyCompressedLen)
	if err != nil {
		return nil, err
	}
	if len(masterBytes) != PubKeyCompressedLen {
		return nil, codec.NewMalformedEncodingError("master pubkey: want %d bytes, got %d", PubKeyCompressedLen, len(masterBytes))
	}
	master, err := ParsePubKey(masterBytes)
	if err != nil {
		return nil, codec.NewMalformedEncodingError("master pubkey: %v", err)
	}

	n, err := codec.ReadVectorLen(r)
	if err != nil {
		return nil, err
	}
	if n > maxDecodeStakes {
		return nil, &codec.TooManyElementsError{Count: n, Max: maxDecodeStakes}
	}
	stakes := make([]*SignedStake, 0, n)
	for i := uint64(0); i < n; i++ {
		ss, err := DecodeSignedStake(r)
		if err != nil {
			return nil, err
		}
		stakes = append(stakes, ss)
	}

	var payoutScript []byte
	var signature [64]byte
	if format == Current {
		payoutScript, err = codec.ReadBytes(r, maxPayoutScriptLen)
		if err != nil {
			return nil, err
		}
		sigBytes, err := codec.ReadRaw(r, 64)
		if err != nil {
			return nil, err
		}
		copy(signature[:], sigBytes)
	}

	return NewProof(format, sequence, expiration, master, payoutScript, stakes, signature)
}

// Decode decodes a Proof from data in the given format and requires
// that every byte of data is consumed. Decoding current-format bytes
// as legacy (or vice versa) leaves a non-empty or truncated remainder
// and fails with a malformed-encoding error, since the two formats
// share no version marker.
func Decode(data []byte, format Format) (*Proof, error) {
	r := bytes.NewReader(data)
	p, err := DecodeProof(r, format)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, codec.NewMalformedEncodingError("%d trailing bytes after proof", r.Len())
	}
	return p, nil
}

// ParseErrorKind discriminates the two ways FromHex can fail.
type ParseErrorKind int

const (
	NotHex ParseErrorKind = iota
	MalformedEncoding
)

// ParseError is the error type returned by FromHex.
type ParseError struct {
	Kind ParseErrorKind
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Kind == NotHex {
		return "not hex: " + e.Msg
	}
	return "malformed encoding: " + e.Msg
}

// FromHex decodes a lowercase, even-length hex string into a Proof in
// the given format.
func FromHex(format Format, s string) (*Proof, error) {
	if !isLowerHex(s) {
		return nil, &ParseError{Kind: NotHex, Msg: "proof must be a lowercase, even-length hexadecimal string"}
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, &ParseError{Kind: NotHex, Msg: err.Error()}
	}
	p, err := Decode(raw, format)
	if err != nil {
		return nil, &ParseError{Kind: MalformedEncoding, Msg: err.Error()}
	}
	return p, nil
}

// ToHex is the inverse of FromHex: lowercase, even-length hex, no
// leading-zero normalization.
func ToHex(p *Proof) (string, error) {
	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf.Bytes()), nil
}

func isLowerHex(s string) bool {
	if len(s)%2 != 0 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return false
		}
	}
	return true
}
