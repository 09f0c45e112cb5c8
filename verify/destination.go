package verify

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// Destination is the classified recipient of a coin's script, the Go
// mirror of spec.md's "Option<Destination>" classifier output.
type Destination interface {
	isDestination()
}

// PubKeyHashDestination is the only Destination variant
// ChainVerifier's DestinationMismatch check accepts.
type PubKeyHashDestination struct {
	Hash [20]byte
}

func (PubKeyHashDestination) isDestination() {}

// OtherDestination covers every standard single-recipient destination
// type that isn't a bare pubkey hash (e.g. P2SH); ChainVerifier rejects
// these with DestinationNotSupported.
type OtherDestination struct {
	Class txscript.ScriptClass
}

func (OtherDestination) isDestination() {}

// DestinationExtractor extracts the destination from a coin's locking
// script, the collaborator ChainVerifier step 5f/5g consumes.
type DestinationExtractor interface {
	// ExtractDestination returns false when the script doesn't parse
	// into a standard single-recipient form.
	ExtractDestination(script []byte) (Destination, bool)
}

type btcdDestinationExtractor struct {
	params *chaincfg.Params
}

// NewBtcdDestinationExtractor builds a DestinationExtractor backed by
// btcd's txscript address classification. params only affects how
// addresses would be string-encoded, which this extractor never does —
// it only reads the underlying hash — so chaincfg.MainNetParams is a
// safe default regardless of which network the node actually runs.
func NewBtcdDestinationExtractor(params *chaincfg.Params) DestinationExtractor {
	if params == nil {
		params = &chaincfg.MainNetParams
	}
	return &btcdDestinationExtractor{params: params}
}

func (e *btcdDestinationExtractor) ExtractDestination(script []byte) (Destination, bool) {
	class, addrs, _, err := txscript.ExtractPkScriptAddrs(script, e.params)
	if err != nil || len(addrs) != 1 {
		return nil, false
	}
	switch addr := addrs[0].(type) {
	case *btcutil.AddressPubKeyHash:
		var h [20]byte
		hashPtr := addr.Hash160()
		copy(h[:], hashPtr[:])
		return PubKeyHashDestination{Hash: h}, true
	default:
		return OtherDestination{Class: class}, true
	}
}

// DefaultDestinationExtractor is the extractor ChainVerifier uses when
// none is injected.
var DefaultDestinationExtractor = NewBtcdDestinationExtractor(nil)
