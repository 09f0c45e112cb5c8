package verify_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/avaproof/proof"
	"github.com/babylonchain/avaproof/testutil"
	"github.com/babylonchain/avaproof/testutil/mocks"
	"github.com/babylonchain/avaproof/verify"
)

func buildSingleStakeProof(t *testing.T, height uint32, coinbase bool, amount proof.Amount) (*proof.Proof, []byte) {
	r := newRand()
	masterPriv, masterPub := testutil.GenRandomKeyPair(r, t)

	expiration := time.Now().Add(time.Hour).Unix()
	commitment, err := proof.NewStakeCommitment(expiration, masterPub)
	require.NoError(t, err)

	priv, stake := testutil.GenRandomStake(r, t, testutil.StakeOpts{Height: height, Coinbase: coinbase, Amount: amount})
	sig, err := proof.SignStake(priv, commitment, stake)
	require.NoError(t, err)
	ss := proof.NewSignedStake(stake, sig)

	payoutScript := []byte{0x76, 0xa9, 0x14}
	hash := masterPub.Hash160()
	payoutScript = append(payoutScript, hash[:]...)
	payoutScript = append(payoutScript, 0x88, 0xac)

	p, err := proof.NewProof(proof.Current, 1, expiration, masterPub, payoutScript, []*proof.SignedStake{ss}, [64]byte{})
	require.NoError(t, err)

	limitedSig, err := proof.SignProof(masterPriv, p.LimitedProofId())
	require.NoError(t, err)
	p, err = proof.NewProof(proof.Current, 1, expiration, masterPub, payoutScript, []*proof.SignedStake{ss}, limitedSig)
	require.NoError(t, err)

	destScript := []byte{0x76, 0xa9, 0x14}
	stakeHash := stake.PubKey().Hash160()
	destScript = append(destScript, stakeHash[:]...)
	destScript = append(destScript, 0x88, 0xac)

	return p, destScript
}

func TestChainVerifierAcceptsMatchingUTXO(t *testing.T) {
	p, destScript := buildSingleStakeProof(t, 100, false, proof.COIN)
	stake := p.Stakes()[0].Stake()

	view := testutil.NewFakeChainView()
	view.Height = 200
	view.MinConfirms = 1
	view.Coins[stake.UTXO()] = verify.Coin{
		Height:   stake.Height(),
		Coinbase: stake.Coinbase(),
		Amount:   stake.Amount(),
		Script:   destScript,
	}
	view.HasTip = true
	view.Tip = testutil.FakeBlockHeader{MTP: time.Now().Unix()}

	v := verify.ChainVerifier{View: view}
	require.NoError(t, v.Verify(p))
}

func TestChainVerifierRejectsMissingUTXO(t *testing.T) {
	p, _ := buildSingleStakeProof(t, 100, false, proof.COIN)

	view := testutil.NewFakeChainView()
	view.Height = 200
	v := verify.ChainVerifier{View: view}
	require.ErrorIs(t, v.Verify(p), verify.ErrMissingUtxo)
}

func TestChainVerifierRejectsImmatureUTXO(t *testing.T) {
	p, destScript := buildSingleStakeProof(t, 195, false, proof.COIN)
	stake := p.Stakes()[0].Stake()

	view := testutil.NewFakeChainView()
	view.Height = 200
	view.MinConfirms = 100 // requires height <= 101 to be mature at tip 200
	view.Coins[stake.UTXO()] = verify.Coin{
		Height:   stake.Height(),
		Coinbase: stake.Coinbase(),
		Amount:   stake.Amount(),
		Script:   destScript,
	}

	v := verify.ChainVerifier{View: view}
	require.ErrorIs(t, v.Verify(p), verify.ErrImmatureUtxo)
}

func TestChainVerifierRejectsCoinbaseMismatch(t *testing.T) {
	p, destScript := buildSingleStakeProof(t, 100, false, proof.COIN)
	stake := p.Stakes()[0].Stake()

	view := testutil.NewFakeChainView()
	view.Height = 200
	view.Coins[stake.UTXO()] = verify.Coin{
		Height:   stake.Height(),
		Coinbase: true, // proof claims non-coinbase
		Amount:   stake.Amount(),
		Script:   destScript,
	}

	v := verify.ChainVerifier{View: view}
	require.ErrorIs(t, v.Verify(p), verify.ErrCoinbaseMismatch)
}

func TestChainVerifierRejectsAmountMismatch(t *testing.T) {
	p, destScript := buildSingleStakeProof(t, 100, false, proof.COIN)
	stake := p.Stakes()[0].Stake()

	view := testutil.NewFakeChainView()
	view.Height = 200
	view.Coins[stake.UTXO()] = verify.Coin{
		Height:   stake.Height(),
		Coinbase: stake.Coinbase(),
		Amount:   stake.Amount() + 1,
		Script:   destScript,
	}

	v := verify.ChainVerifier{View: view}
	require.ErrorIs(t, v.Verify(p), verify.ErrAmountMismatch)
}

func TestChainVerifierRejectsDestinationMismatch(t *testing.T) {
	p, _ := buildSingleStakeProof(t, 100, false, proof.COIN)
	stake := p.Stakes()[0].Stake()

	r := newRand()
	_, other := testutil.GenRandomKeyPair(r, t)
	otherHash := other.Hash160()
	wrongScript := []byte{0x76, 0xa9, 0x14}
	wrongScript = append(wrongScript, otherHash[:]...)
	wrongScript = append(wrongScript, 0x88, 0xac)

	view := testutil.NewFakeChainView()
	view.Height = 200
	view.Coins[stake.UTXO()] = verify.Coin{
		Height:   stake.Height(),
		Coinbase: stake.Coinbase(),
		Amount:   stake.Amount(),
		Script:   wrongScript,
	}

	v := verify.ChainVerifier{View: view}
	require.ErrorIs(t, v.Verify(p), verify.ErrDestinationMismatch)
}

func TestChainVerifierRejectsExpiredProofAtBoundary(t *testing.T) {
	p, destScript := buildSingleStakeProof(t, 100, false, proof.COIN)
	stake := p.Stakes()[0].Stake()

	view := testutil.NewFakeChainView()
	view.Height = 200
	view.Coins[stake.UTXO()] = verify.Coin{
		Height:   stake.Height(),
		Coinbase: stake.Coinbase(),
		Amount:   stake.Amount(),
		Script:   destScript,
	}
	view.HasTip = true
	// Expiration is inclusive: mtp == expiration already expires it.
	view.Tip = testutil.FakeBlockHeader{MTP: p.Expiration()}

	v := verify.ChainVerifier{View: view}
	require.ErrorIs(t, v.Verify(p), verify.ErrExpired)
}

func TestChainVerifierRejectsNonStandardDestinationScript(t *testing.T) {
	p, _ := buildSingleStakeProof(t, 100, false, proof.COIN)
	stake := p.Stakes()[0].Stake()

	view := testutil.NewFakeChainView()
	view.Height = 200
	view.Coins[stake.UTXO()] = verify.Coin{
		Height:   stake.Height(),
		Coinbase: stake.Coinbase(),
		Amount:   stake.Amount(),
		Script:   []byte{0x61}, // bare OP_NOP, not a standard template
	}

	v := verify.ChainVerifier{View: view}
	require.ErrorIs(t, v.Verify(p), verify.ErrNonStandardDestination)
}

func TestChainVerifierRejectsUnsupportedDestinationType(t *testing.T) {
	p, _ := buildSingleStakeProof(t, 100, false, proof.COIN)
	stake := p.Stakes()[0].Stake()

	// A bare P2PK script is a standard, single-recipient template but
	// not the PubKeyHash destination ChainVerifier requires.
	r := newRand()
	_, other := testutil.GenRandomKeyPair(r, t)
	p2pk := append([]byte{0x21}, other.Bytes()...)
	p2pk = append(p2pk, 0xac)

	view := testutil.NewFakeChainView()
	view.Height = 200
	view.Coins[stake.UTXO()] = verify.Coin{
		Height:   stake.Height(),
		Coinbase: stake.Coinbase(),
		Amount:   stake.Amount(),
		Script:   p2pk,
	}

	v := verify.ChainVerifier{View: view}
	require.ErrorIs(t, v.Verify(p), verify.ErrDestinationNotSupported)
}

// TestChainVerifierUsesMockedChainView exercises the gomock-based
// double for a caller that wants call-count/argument assertions rather
// than the plain FakeChainView map.
func TestChainVerifierUsesMockedChainView(t *testing.T) {
	p, destScript := buildSingleStakeProof(t, 100, false, proof.COIN)
	stake := p.Stakes()[0].Stake()

	ctrl := gomock.NewController(t)
	view := mocks.NewMockChainView(ctrl)

	view.EXPECT().ActiveTip().Return(testutil.FakeBlockHeader{MTP: time.Now().Unix()}, true)
	view.EXPECT().ActiveHeight().Return(int32(200))
	view.EXPECT().StakeUtxoMinConfirmations().Return(uint32(1))
	view.EXPECT().GetCoin(stake.UTXO()).Return(verify.Coin{
		Height:   stake.Height(),
		Coinbase: stake.Coinbase(),
		Amount:   stake.Amount(),
		Script:   destScript,
	}, true)

	v := verify.ChainVerifier{View: view}
	require.NoError(t, v.Verify(p))
}
