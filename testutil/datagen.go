// Package testutil provides randomized test fixtures for the avaproof
// packages, adapted from the teacher's testutil/datagen.go: a
// math/rand-seeded RNG drives deterministic-per-seed generation of
// keys, stakes and full proofs so tests and fuzz targets can build
// realistic inputs without hand-assembling byte slices.
package testutil

import (
	"encoding/hex"
	"math/rand"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/avaproof/proof"
)

func GenRandomByteArray(r *rand.Rand, length uint64) []byte {
	b := make([]byte, length)
	r.Read(b)
	return b
}

func GenRandomHexStr(r *rand.Rand, length uint64) string {
	return hex.EncodeToString(GenRandomByteArray(r, length))
}

// AddRandomSeedsToFuzzer seeds f with num pseudo-random int64 seeds, the
// same pattern the teacher uses to avoid hand-picking fuzz corpus
// entries.
func AddRandomSeedsToFuzzer(f *testing.F, num uint) {
	r := rand.New(rand.NewSource(time.Now().Unix()))
	for i := uint(0); i < num; i++ {
		f.Add(r.Int63())
	}
}

// GenRandomKeyPair returns a fresh secp256k1 key pair.
func GenRandomKeyPair(r *rand.Rand, t require.TestingT) (*btcec.PrivateKey, proof.PubKey) {
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	return priv, proof.NewPubKey(priv.PubKey())
}

// GenRandomOutPoint returns a random UTXO reference.
func GenRandomOutPoint(r *rand.Rand) proof.OutPoint {
	var txID [32]byte
	r.Read(txID[:])
	return proof.NewOutPoint(txID, r.Uint32())
}

// StakeOpts customizes GenRandomStake and GenRandomSignedStake;
// zero-valued fields fall back to randomized or spec-default values.
type StakeOpts struct {
	Amount   proof.Amount
	Height   uint32
	Coinbase bool
}

// GenRandomStake builds an unsigned stake over a fresh random UTXO and
// key pair, returning the issuing private key alongside it so the
// caller can sign the stake later against whichever commitment applies.
// StakeId is fixed at construction, independent of any commitment.
func GenRandomStake(r *rand.Rand, t require.TestingT, opts StakeOpts) (*btcec.PrivateKey, *proof.Stake) {
	priv, pk := GenRandomKeyPair(r, t)

	amount := opts.Amount
	if amount == 0 {
		amount = proof.Amount(1+r.Int63n(1000)) * proof.COIN
	}

	stake, err := proof.NewStake(GenRandomOutPoint(r), amount, opts.Height, opts.Coinbase, pk)
	require.NoError(t, err)

	return priv, stake
}

// GenRandomSignedStake builds a signed stake over a fresh random UTXO
// and key pair, correctly signed against commitment.
func GenRandomSignedStake(r *rand.Rand, t require.TestingT, commitment proof.StakeCommitment, opts StakeOpts) *proof.SignedStake {
	priv, stake := GenRandomStake(r, t, opts)
	return signStake(t, priv, commitment, stake)
}

func signStake(t require.TestingT, priv *btcec.PrivateKey, commitment proof.StakeCommitment, stake *proof.Stake) *proof.SignedStake {
	sig, err := proof.SignStake(priv, commitment, stake)
	require.NoError(t, err)
	return proof.NewSignedStake(stake, sig)
}

// ProofOpts customizes GenRandomProof; zero-valued fields fall back to
// randomized or spec-default values.
type ProofOpts struct {
	Sequence     uint64
	Expiration   int64
	NumStakes    int
	PayoutScript []byte
}

// GenRandomProof builds a structurally valid Proof in the given format:
// correctly ordered, individually signed stakes, and (in current mode)
// a correctly signed master signature and a standard payout script.
func GenRandomProof(r *rand.Rand, t require.TestingT, format proof.Format, opts ProofOpts) *proof.Proof {
	masterPriv, master := GenRandomKeyPair(r, t)

	expiration := opts.Expiration
	if expiration == 0 {
		expiration = time.Now().Add(365 * 24 * time.Hour).Unix()
	}

	numStakes := opts.NumStakes
	if numStakes == 0 {
		numStakes = 1
	}

	payoutScript := opts.PayoutScript
	if format == proof.Current && payoutScript == nil {
		payoutScript = p2pkhScript(master)
	}

	// StakeId depends only on a stake's own fields, never on its
	// signature, so the raw stakes and their ordering are fixed once
	// and reused across every signing pass below.
	privs := make([]*btcec.PrivateKey, 0, numStakes)
	rawStakes := make([]*proof.Stake, 0, numStakes)
	for i := 0; i < numStakes; i++ {
		priv, stake := GenRandomStake(r, t, StakeOpts{})
		privs = append(privs, priv)
		rawStakes = append(rawStakes, stake)
	}
	sortRawStakesByID(privs, rawStakes)

	placeholder := make([]*proof.SignedStake, numStakes)
	for i, stake := range rawStakes {
		placeholder[i] = proof.NewSignedStake(stake, [64]byte{})
	}

	// The current-mode commitment depends only on expiration and
	// master, so stakes can be signed in a single pass. The legacy
	// commitment is the proof's own ProofId, which in turn depends on
	// the bound stake set — legacy construction is necessarily
	// two-pass: derive ProofId once with placeholder (unsigned)
	// stakes, then sign every stake against it and rebuild.
	var commitment proof.StakeCommitment
	if format == proof.Current {
		var err error
		commitment, err = proof.NewStakeCommitment(expiration, master)
		require.NoError(t, err)
	} else {
		provisional, err := proof.NewProof(format, opts.Sequence, expiration, master, payoutScript, placeholder, [64]byte{})
		require.NoError(t, err)
		commitment = proof.NewLegacyStakeCommitment(provisional.ProofId())
	}

	stakes := make([]*proof.SignedStake, numStakes)
	for i, stake := range rawStakes {
		stakes[i] = signStake(t, privs[i], commitment, stake)
	}

	p, err := proof.NewProof(format, opts.Sequence, expiration, master, payoutScript, stakes, [64]byte{})
	require.NoError(t, err)

	if format == proof.Current {
		sig, err := proof.SignProof(masterPriv, p.LimitedProofId())
		require.NoError(t, err)
		p, err = proof.NewProof(format, opts.Sequence, expiration, master, payoutScript, stakes, sig)
		require.NoError(t, err)
	}

	return p
}

// sortRawStakesByID insertion-sorts rawStakes into ascending StakeId
// order, the order StructuralVerifier requires, keeping privs aligned
// by index with its corresponding stake.
func sortRawStakesByID(privs []*btcec.PrivateKey, rawStakes []*proof.Stake) {
	for i := 1; i < len(rawStakes); i++ {
		for j := i; j > 0; j-- {
			a := rawStakes[j-1].StakeID()
			b := rawStakes[j].StakeID()
			if string(a[:]) <= string(b[:]) {
				break
			}
			rawStakes[j-1], rawStakes[j] = rawStakes[j], rawStakes[j-1]
			privs[j-1], privs[j] = privs[j], privs[j-1]
		}
	}
}

func p2pkhScript(pk proof.PubKey) []byte {
	hash := pk.Hash160()
	script := make([]byte, 0, 25)
	script = append(script, 0x76, 0xa9, 0x14)
	script = append(script, hash[:]...)
	script = append(script, 0x88, 0xac)
	return script
}
