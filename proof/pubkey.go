package proof

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
)

// PubKeyCompressedLen is the wire length of a compressed secp256k1
// public key.
const PubKeyCompressedLen = 33

// PubKey is an opaque compressed secp256k1 public key. The zero value
// is invalid; use ParsePubKey or NewPubKey.
type PubKey struct {
	pk *btcec.PublicKey
}

// NewPubKey wraps an already-parsed secp256k1 public key.
func NewPubKey(pk *btcec.PublicKey) PubKey {
	return PubKey{pk: pk}
}

// ParsePubKey parses a 33-byte compressed secp256k1 public key.
func ParsePubKey(b []byte) (PubKey, error) {
	if len(b) != PubKeyCompressedLen {
		return PubKey{}, fmt.Errorf("pubkey: want %d bytes, got %d", PubKeyCompressedLen, len(b))
	}
	pk, err := btcec.ParsePubKey(b)
	if err != nil {
		return PubKey{}, fmt.Errorf("pubkey: %w", err)
	}
	return PubKey{pk: pk}, nil
}

// IsValid reports whether the key was actually parsed, as opposed to
// being a zero PubKey{}.
func (p PubKey) IsValid() bool {
	return p.pk != nil
}

// Bytes returns the 33-byte compressed encoding.
func (p PubKey) Bytes() []byte {
	if p.pk == nil {
		return make([]byte, PubKeyCompressedLen)
	}
	return p.pk.SerializeCompressed()
}

func (p PubKey) Equal(other PubKey) bool {
	return bytes.Equal(p.Bytes(), other.Bytes())
}

// VerifySchnorr reports whether sig is a valid 64-byte Schnorr signature
// by this key over the 32-byte message. The compressed key's x
// coordinate is taken as its BIP340 x-only representation; this is the
// crypto collaborator the verifiers consume through a narrow
// pubkey.VerifySchnorr(msg, sig) interface, not a general-purpose
// Schnorr implementation of its own.
func (p PubKey) VerifySchnorr(msg [32]byte, sig [64]byte) bool {
	if p.pk == nil {
		return false
	}
	xOnly, err := schnorr.ParsePubKey(p.Bytes()[1:])
	if err != nil {
		return false
	}
	parsedSig, err := schnorr.ParseSignature(sig[:])
	if err != nil {
		return false
	}
	return parsedSig.Verify(msg[:], xOnly)
}

// Hash160 returns RIPEMD160(SHA256(compressed pubkey)), used by
// ChainVerifier to cross-check a stake's pubkey against a P2PKH
// destination.
func (p PubKey) Hash160() [20]byte {
	var out [20]byte
	copy(out[:], btcutil.Hash160(p.Bytes()))
	return out
}

// SignSchnorr produces a 64-byte BIP340 Schnorr signature by priv over
// the 32-byte message, the counterpart to VerifySchnorr used when
// issuing a stake signature or a proof's own master signature.
func SignSchnorr(priv *btcec.PrivateKey, msg [32]byte) ([64]byte, error) {
	var out [64]byte
	sig, err := schnorr.Sign(priv, msg[:])
	if err != nil {
		return out, err
	}
	copy(out[:], sig.Serialize())
	return out, nil
}
