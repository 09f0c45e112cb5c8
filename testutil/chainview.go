package testutil

import (
	"testing"

	"github.com/babylonchain/avaproof/proof"
	"github.com/babylonchain/avaproof/verify"
)

// FakeBlockHeader is a minimal verify.BlockHeader for tests.
type FakeBlockHeader struct {
	MTP int64
}

func (h FakeBlockHeader) MedianTimePast() int64 { return h.MTP }

// FakeChainView is a hand-written verify.ChainView test double backed
// by a plain map, for tests that want direct control over a proof's
// UTXO set without the overhead of a generated mock.
type FakeChainView struct {
	Tip         FakeBlockHeader
	HasTip      bool
	Height      int32
	Coins       map[proof.OutPoint]verify.Coin
	MinConfirms uint32
}

// NewFakeChainView returns an empty FakeChainView with no tip.
func NewFakeChainView() *FakeChainView {
	return &FakeChainView{Coins: make(map[proof.OutPoint]verify.Coin)}
}

func (v *FakeChainView) ActiveTip() (verify.BlockHeader, bool) {
	if !v.HasTip {
		return nil, false
	}
	return v.Tip, true
}

func (v *FakeChainView) ActiveHeight() int32 { return v.Height }

func (v *FakeChainView) GetCoin(op proof.OutPoint) (verify.Coin, bool) {
	c, ok := v.Coins[op]
	return c, ok
}

func (v *FakeChainView) StakeUtxoMinConfirmations() uint32 { return v.MinConfirms }

// PutStake registers a proof's stake into the fake UTXO set as exactly
// matching it (same height, coinbase flag and amount) with the given
// locking script. Maturity is left to the view's Height and MinConfirms.
func (v *FakeChainView) PutStake(t *testing.T, s *proof.Stake, script []byte) {
	v.Coins[s.UTXO()] = verify.Coin{
		Height:   s.Height(),
		Coinbase: s.Coinbase(),
		Amount:   s.Amount(),
		Script:   script,
	}
}
