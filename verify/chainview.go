package verify

import "github.com/babylonchain/avaproof/proof"

// BlockHeader is the minimal chain-tip view ChainVerifier needs to
// enforce expiration.
type BlockHeader interface {
	MedianTimePast() int64
}

// Coin is the UTXO-set entry ChainVerifier cross-checks a stake
// against.
type Coin struct {
	Height   uint32
	Coinbase bool
	Amount   proof.Amount
	Script   []byte
}

// ChainView is the narrow read-only interface ChainVerifier consumes
// from a live node's chain state (spec.md §6). Implementations own
// their own synchronization; ChainVerifier never mutates chain state
// and expects active_tip/active_height/get_coin to observe one
// consistent snapshot for the duration of a single verification.
type ChainView interface {
	// ActiveTip returns the chain tip header, or ok=false if the chain
	// has no tip yet.
	ActiveTip() (BlockHeader, bool)
	// ActiveHeight returns the active chain height, 0 if there is no tip.
	ActiveHeight() int32
	// GetCoin looks up a UTXO, returning ok=false if it is absent from
	// the current UTXO set (spent or never existed).
	GetCoin(op proof.OutPoint) (Coin, bool)
	// StakeUtxoMinConfirmations is the configured minimum confirmation
	// depth a stake UTXO must have.
	StakeUtxoMinConfirmations() uint32
}
