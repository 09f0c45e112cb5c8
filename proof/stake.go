package proof

import (
	"bytes"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/babylonchain/avaproof/codec"
)

// Stake is a single UTXO reference pledged by a proof, plus the amount,
// height, coinbase flag and public key that commits it. Stakes are
// immutable after construction; StakeId is derived once in NewStake and
// never recomputed.
type Stake struct {
	utxo     OutPoint
	amount   Amount
	height   uint32
	coinbase bool
	pubkey   PubKey
	stakeID  chainhash.Hash
}

// NewStake builds a Stake and derives its StakeId by hashing the
// stake's own canonical encoding.
func NewStake(utxo OutPoint, amount Amount, height uint32, coinbase bool, pubkey PubKey) (*Stake, error) {
	s := &Stake{
		utxo:     utxo,
		amount:   amount,
		height:   height,
		coinbase: coinbase,
		pubkey:   pubkey,
	}
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return nil, err
	}
	s.stakeID = chainhash.DoubleHashH(buf.Bytes())
	return s, nil
}

func (s *Stake) UTXO() OutPoint          { return s.utxo }
func (s *Stake) Amount() Amount          { return s.amount }
func (s *Stake) Height() uint32          { return s.height }
func (s *Stake) Coinbase() bool          { return s.coinbase }
func (s *Stake) PubKey() PubKey          { return s.pubkey }
func (s *Stake) StakeID() chainhash.Hash { return s.stakeID }

// packedHeight mirrors the wire representation: the true block height
// shifted left by one bit, with the coinbase flag packed into the LSB.
// Implementers must mirror this exactly; the field order and packing
// are part of the hashed stake identity.
func (s *Stake) packedHeight() uint32 {
	packed := s.height << 1
	if s.coinbase {
		packed |= 1
	}
	return packed
}

func unpackHeight(packed uint32) (height uint32, coinbase bool) {
	return packed >> 1, packed&1 == 1
}

// Encode writes the canonical wire layout:
// tx_id(32) ‖ output_index(u32 LE) ‖ amount(i64 LE) ‖ packed_height(u32 LE) ‖ pubkey.
func (s *Stake) Encode(w io.Writer) error {
	if err := codec.WriteRaw(w, s.utxo.Hash[:]); err != nil {
		return err
	}
	if err := codec.WriteUint32LE(w, s.utxo.Index); err != nil {
		return err
	}
	if err := codec.WriteInt64LE(w, int64(s.amount)); err != nil {
		return err
	}
	if err := codec.WriteUint32LE(w, s.packedHeight()); err != nil {
		return err
	}
	if err := codec.WriteBytes(w, s.pubkey.Bytes()); err != nil {
		return err
	}
	return nil
}

// DecodeStake reads a Stake in its canonical wire layout and rederives
// its StakeId.
func DecodeStake(r io.Reader) (*Stake, error) {
	txIDBytes, err := codec.ReadRaw(r, 32)
	if err != nil {
		return nil, err
	}
	index, err := codec.ReadUint32LE(r)
	if err != nil {
		return nil, err
	}
	amount, err := codec.ReadInt64LE(r)
	if err != nil {
		return nil, err
	}
	packed, err := codec.ReadUint32LE(r)
	if err != nil {
		return nil, err
	}
	pkBytes, err := codec.ReadBytes(r, PubKeyCompressedLen)
	if err != nil {
		return nil, err
	}
	if len(pkBytes) != PubKeyCompressedLen {
		return nil, codec.NewMalformedEncodingError("stake pubkey: want %d bytes, got %d", PubKeyCompressedLen, len(pkBytes))
	}
	pubkey, err := ParsePubKey(pkBytes)
	if err != nil {
		return nil, codec.NewMalformedEncodingError("stake pubkey: %v", err)
	}

	height, coinbase := unpackHeight(packed)

	var txID chainhash.Hash
	copy(txID[:], txIDBytes)

	return NewStake(OutPoint{Hash: txID, Index: index}, Amount(amount), height, coinbase, pubkey)
}
