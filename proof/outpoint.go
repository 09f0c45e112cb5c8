package proof

import "github.com/btcsuite/btcd/wire"

// OutPoint identifies a specific transaction output: a 32-byte tx id
// plus output index. wire.OutPoint already has exactly this shape
// (Hash chainhash.Hash, Index uint32) and is comparable, so it doubles
// directly as our UTXO map key for the duplicate-stake check.
type OutPoint = wire.OutPoint

// NewOutPoint builds an OutPoint from a raw 32-byte tx id and index.
func NewOutPoint(txID [32]byte, index uint32) OutPoint {
	return OutPoint{Hash: txID, Index: index}
}
