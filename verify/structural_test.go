package verify_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/avaproof/proof"
	"github.com/babylonchain/avaproof/testutil"
	"github.com/babylonchain/avaproof/verify"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// buildSignedCurrentProof builds a current-format proof over stakes with
// a standard P2PKH payout script and a valid master signature, so the
// payout-script and proof-signature checks pass and the per-stake checks
// decide the outcome.
func buildSignedCurrentProof(t *testing.T, masterPriv *btcec.PrivateKey, master proof.PubKey, expiration int64, stakes []*proof.SignedStake) *proof.Proof {
	hash := master.Hash160()
	payoutScript := []byte{0x76, 0xa9, 0x14}
	payoutScript = append(payoutScript, hash[:]...)
	payoutScript = append(payoutScript, 0x88, 0xac)

	p, err := proof.NewProof(proof.Current, 1, expiration, master, payoutScript, stakes, [64]byte{})
	require.NoError(t, err)
	sig, err := proof.SignProof(masterPriv, p.LimitedProofId())
	require.NoError(t, err)
	p, err = proof.NewProof(proof.Current, 1, expiration, master, payoutScript, stakes, sig)
	require.NoError(t, err)
	return p
}

func TestStructuralVerifierAcceptsWellFormedProof(t *testing.T) {
	for _, format := range []proof.Format{proof.Current, proof.Legacy} {
		r := newRand()
		p := testutil.GenRandomProof(r, t, format, testutil.ProofOpts{NumStakes: 5})

		v := verify.StructuralVerifier{}
		require.NoError(t, v.Verify(p))
	}
}

func TestStructuralVerifierRejectsEmptyProof(t *testing.T) {
	r := newRand()
	_, master := testutil.GenRandomKeyPair(r, t)
	p, err := proof.NewProof(proof.Current, 1, time.Now().Add(time.Hour).Unix(), master, []byte{0x51}, nil, [64]byte{})
	require.NoError(t, err)

	v := verify.StructuralVerifier{}
	require.ErrorIs(t, v.Verify(p), verify.ErrNoStake)
}

func TestStructuralVerifierRejectsTooManyStakes(t *testing.T) {
	r := newRand()
	p := testutil.GenRandomProof(r, t, proof.Current, testutil.ProofOpts{NumStakes: proof.AVALANCHE_MAX_PROOF_STAKES + 1})

	v := verify.StructuralVerifier{}
	require.ErrorIs(t, v.Verify(p), verify.ErrTooManyUtxos)
}

func TestStructuralVerifierRejectsDustStake(t *testing.T) {
	r := newRand()
	p := testutil.GenRandomProof(r, t, proof.Current, testutil.ProofOpts{NumStakes: 1})

	v := verify.StructuralVerifier{StakeUtxoDustThreshold: p.StakedAmount() + 1}
	require.ErrorIs(t, v.Verify(p), verify.ErrDustThreshold)
}

func TestStructuralVerifierRejectsDuplicateUTXO(t *testing.T) {
	r := newRand()
	masterPriv, master := testutil.GenRandomKeyPair(r, t)
	expiration := time.Now().Add(time.Hour).Unix()
	commitment, err := proof.NewStakeCommitment(expiration, master)
	require.NoError(t, err)

	priv, stake := testutil.GenRandomStake(r, t, testutil.StakeOpts{})
	sig, err := proof.SignStake(priv, commitment, stake)
	require.NoError(t, err)
	ss1 := proof.NewSignedStake(stake, sig)

	// Reuse the same raw stake for the second entry to guarantee a true
	// UTXO collision; both entries then carry the same StakeId, which the
	// ordering check admits, so the duplicate-UTXO check decides.
	ss2 := proof.NewSignedStake(stake, sig)

	p := buildSignedCurrentProof(t, masterPriv, master, expiration, []*proof.SignedStake{ss1, ss2})

	v := verify.StructuralVerifier{}
	require.ErrorIs(t, v.Verify(p), verify.ErrDuplicateStake)
}

func TestStructuralVerifierRejectsWrongStakeOrdering(t *testing.T) {
	r := newRand()
	masterPriv, master := testutil.GenRandomKeyPair(r, t)
	expiration := time.Now().Add(time.Hour).Unix()
	commitment, err := proof.NewStakeCommitment(expiration, master)
	require.NoError(t, err)

	var stakes []*proof.SignedStake
	for i := 0; i < 2; i++ {
		priv, stake := testutil.GenRandomStake(r, t, testutil.StakeOpts{})
		sig, err := proof.SignStake(priv, commitment, stake)
		require.NoError(t, err)
		stakes = append(stakes, proof.NewSignedStake(stake, sig))
	}

	// Force descending order regardless of actual StakeId values.
	a := stakes[0].Stake().StakeID()
	b := stakes[1].Stake().StakeID()
	if string(a[:]) < string(b[:]) {
		stakes[0], stakes[1] = stakes[1], stakes[0]
	}

	p := buildSignedCurrentProof(t, masterPriv, master, expiration, stakes)

	v := verify.StructuralVerifier{}
	require.ErrorIs(t, v.Verify(p), verify.ErrWrongStakeOrdering)
}

func TestStructuralVerifierRejectsInvalidStakeSignature(t *testing.T) {
	r := newRand()
	masterPriv, master := testutil.GenRandomKeyPair(r, t)
	expiration := time.Now().Add(time.Hour).Unix()

	priv, stake := testutil.GenRandomStake(r, t, testutil.StakeOpts{})
	wrongCommitment, err := proof.NewStakeCommitment(expiration+1, master)
	require.NoError(t, err)
	sig, err := proof.SignStake(priv, wrongCommitment, stake)
	require.NoError(t, err)
	ss := proof.NewSignedStake(stake, sig)

	p := buildSignedCurrentProof(t, masterPriv, master, expiration, []*proof.SignedStake{ss})

	v := verify.StructuralVerifier{}
	require.ErrorIs(t, v.Verify(p), verify.ErrInvalidStakeSignature)
}

func TestStructuralVerifierRejectsInvalidProofSignature(t *testing.T) {
	r := newRand()
	p := testutil.GenRandomProof(r, t, proof.Current, testutil.ProofOpts{NumStakes: 1})

	// Corrupt the master signature without touching any stake.
	corrupted, err := proof.NewProof(p.Format(), p.Sequence(), p.Expiration(), p.Master(), p.PayoutScript(), p.Stakes(), [64]byte{1, 2, 3})
	require.NoError(t, err)

	v := verify.StructuralVerifier{}
	require.ErrorIs(t, v.Verify(corrupted), verify.ErrInvalidProofSignature)
}

func TestStructuralVerifierRejectsNonStandardPayoutScript(t *testing.T) {
	r := newRand()
	p := testutil.GenRandomProof(r, t, proof.Current, testutil.ProofOpts{
		NumStakes:    1,
		PayoutScript: []byte{0x61}, // bare OP_NOP, matches no standard template
	})

	v := verify.StructuralVerifier{}
	require.ErrorIs(t, v.Verify(p), verify.ErrInvalidPayoutScript)
}

func TestStructuralVerifierSkipsPayoutScriptAndSignatureChecksInLegacyMode(t *testing.T) {
	r := newRand()
	p := testutil.GenRandomProof(r, t, proof.Legacy, testutil.ProofOpts{NumStakes: 1})
	require.Nil(t, p.PayoutScript())

	v := verify.StructuralVerifier{}
	require.NoError(t, v.Verify(p))
}
