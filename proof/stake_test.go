package proof_test

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/babylonchain/avaproof/proof"
	"github.com/babylonchain/avaproof/testutil"
)

func TestStakeEncodeDecodeRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	_, stake := testutil.GenRandomStake(r, t, testutil.StakeOpts{Height: 12345, Coinbase: true})

	var buf bytes.Buffer
	require.NoError(t, stake.Encode(&buf))

	got, err := proof.DecodeStake(&buf)
	require.NoError(t, err)

	require.Equal(t, stake.UTXO(), got.UTXO())
	require.Equal(t, stake.Amount(), got.Amount())
	require.Equal(t, stake.Height(), got.Height())
	require.Equal(t, stake.Coinbase(), got.Coinbase())
	require.Equal(t, stake.StakeID(), got.StakeID())
	require.True(t, stake.PubKey().Equal(got.PubKey()))
}

func TestStakeIDDiffersByCoinbaseFlagAlone(t *testing.T) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	_, pk := testutil.GenRandomKeyPair(r, t)
	utxo := testutil.GenRandomOutPoint(r)

	a, err := proof.NewStake(utxo, proof.COIN, 100, false, pk)
	require.NoError(t, err)
	b, err := proof.NewStake(utxo, proof.COIN, 100, true, pk)
	require.NoError(t, err)

	require.NotEqual(t, a.StakeID(), b.StakeID())
}

func TestSignedStakeVerify(t *testing.T) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	_, master := testutil.GenRandomKeyPair(r, t)
	commitment, err := proof.NewStakeCommitment(time.Now().Add(time.Hour).Unix(), master)
	require.NoError(t, err)

	priv, stake := testutil.GenRandomStake(r, t, testutil.StakeOpts{})
	sig, err := proof.SignStake(priv, commitment, stake)
	require.NoError(t, err)
	ss := proof.NewSignedStake(stake, sig)

	require.True(t, ss.Verify(commitment))
}

func TestSignedStakeVerifyFailsUnderWrongCommitment(t *testing.T) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	_, master := testutil.GenRandomKeyPair(r, t)
	commitment, err := proof.NewStakeCommitment(time.Now().Add(time.Hour).Unix(), master)
	require.NoError(t, err)
	otherCommitment, err := proof.NewStakeCommitment(time.Now().Add(2*time.Hour).Unix(), master)
	require.NoError(t, err)

	priv, stake := testutil.GenRandomStake(r, t, testutil.StakeOpts{})
	sig, err := proof.SignStake(priv, commitment, stake)
	require.NoError(t, err)
	ss := proof.NewSignedStake(stake, sig)

	require.False(t, ss.Verify(otherCommitment))
}

func TestSignedStakeEncodeDecodeRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	_, master := testutil.GenRandomKeyPair(r, t)
	commitment, err := proof.NewStakeCommitment(time.Now().Add(time.Hour).Unix(), master)
	require.NoError(t, err)

	ss := testutil.GenRandomSignedStake(r, t, commitment, testutil.StakeOpts{})

	var buf bytes.Buffer
	require.NoError(t, ss.Encode(&buf))

	got, err := proof.DecodeSignedStake(&buf)
	require.NoError(t, err)
	require.Equal(t, ss.Sig(), got.Sig())
	require.Equal(t, ss.Stake().StakeID(), got.Stake().StakeID())
	require.True(t, got.Verify(commitment))
}
