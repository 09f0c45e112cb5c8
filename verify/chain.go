package verify

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/babylonchain/avaproof/proof"
)

// ChainVerifier validates a Proof against a live ChainView, after
// first running StructuralVerifier (spec.md §4.4). ChainVerifier never
// mutates View; the caller is responsible for holding whatever
// advisory lock View documents for the duration of Verify so that
// ActiveTip/ActiveHeight/GetCoin observe one consistent snapshot.
type ChainVerifier struct {
	Structural StructuralVerifier
	View       ChainView

	// DestinationExtractor classifies a coin's script. Defaults to
	// DefaultDestinationExtractor.
	DestinationExtractor DestinationExtractor
}

func (v *ChainVerifier) Verify(p *proof.Proof) error {
	if err := v.Structural.Verify(p); err != nil {
		return err
	}

	var mtp int64
	if tip, ok := v.View.ActiveTip(); ok {
		mtp = tip.MedianTimePast()
	}
	// Boundary is inclusive: a proof expires the instant mtp reaches
	// its expiration time, not only once it passes it.
	if p.Expiration() > 0 && mtp >= p.Expiration() {
		return ErrExpired
	}

	activeHeight := v.View.ActiveHeight()
	minConfs := v.View.StakeUtxoMinConfirmations()

	extractor := v.DestinationExtractor
	if extractor == nil {
		extractor = DefaultDestinationExtractor
	}

	for _, ss := range p.Stakes() {
		s := ss.Stake()

		coin, ok := v.View.GetCoin(s.UTXO())
		if !ok {
			return ErrMissingUtxo
		}

		if int64(coin.Height)+int64(minConfs)-1 > int64(activeHeight) {
			return errorsmod.Wrapf(ErrImmatureUtxo, "txid: %s, stake height: %d, chain tip height: %d",
				s.UTXO().Hash, s.Height(), activeHeight)
		}

		if s.Coinbase() != coin.Coinbase {
			return errorsmod.Wrapf(ErrCoinbaseMismatch, "expected %v, found %v", s.Coinbase(), coin.Coinbase)
		}

		if s.Height() != coin.Height {
			return errorsmod.Wrapf(ErrHeightMismatch, "expected %d, found %d", s.Height(), coin.Height)
		}

		if s.Amount() != coin.Amount {
			return errorsmod.Wrapf(ErrAmountMismatch, "expected %d, found %d", s.Amount(), coin.Amount)
		}

		dest, ok := extractor.ExtractDestination(coin.Script)
		if !ok {
			return ErrNonStandardDestination
		}

		pkh, ok := dest.(PubKeyHashDestination)
		if !ok {
			return ErrDestinationNotSupported
		}

		if pkh.Hash != s.PubKey().Hash160() {
			return ErrDestinationMismatch
		}
	}

	return nil
}
