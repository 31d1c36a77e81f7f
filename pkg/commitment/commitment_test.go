package commitment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/nero-mpc-core/pkg/commitment"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/polynomial"
)

func fixedChallenge(tag string) func(r curve.Point) curve.Scalar {
	return func(r curve.Point) curve.Scalar {
		rBytes, _ := r.MarshalBinary()
		return curve.ScalarFromBytesModN(append([]byte(tag), rBytes...))
	}
}

func twoWitnessChallenge(tag string) func(r1, r2 curve.Point) curve.Scalar {
	return func(r1, r2 curve.Point) curve.Scalar {
		b1, _ := r1.MarshalBinary()
		b2, _ := r2.MarshalBinary()
		return curve.ScalarFromBytesModN(append([]byte(tag), append(b1, b2...)...))
	}
}

func TestSchnorrProveVerifyRoundTrip(t *testing.T) {
	x, err := curve.RandomScalar()
	require.NoError(t, err)
	X := x.ActOnBase()

	proof, err := commitment.SchnorrProve(x, fixedChallenge("schnorr"))
	require.NoError(t, err)
	assert.True(t, commitment.SchnorrVerify(X, proof, fixedChallenge("schnorr")))
}

func TestSchnorrVerifyRejectsWrongPoint(t *testing.T) {
	x, err := curve.RandomScalar()
	require.NoError(t, err)
	proof, err := commitment.SchnorrProve(x, fixedChallenge("schnorr"))
	require.NoError(t, err)

	other, err := curve.RandomScalar()
	require.NoError(t, err)
	assert.False(t, commitment.SchnorrVerify(other.ActOnBase(), proof, fixedChallenge("schnorr")))
}

func TestSchnorrVerifyRejectsMismatchedChallenge(t *testing.T) {
	x, err := curve.RandomScalar()
	require.NoError(t, err)
	X := x.ActOnBase()
	proof, err := commitment.SchnorrProve(x, fixedChallenge("a"))
	require.NoError(t, err)
	assert.False(t, commitment.SchnorrVerify(X, proof, fixedChallenge("b")))
}

func TestTwoWitnessProveVerifyRoundTrip(t *testing.T) {
	gamma, err := curve.RandomScalar()
	require.NoError(t, err)
	k, err := curve.RandomScalar()
	require.NoError(t, err)
	D := gamma.ActOnBase()
	E := k.ActOnBase()

	proof, err := commitment.TwoWitnessProve(gamma, k, twoWitnessChallenge("nonce"))
	require.NoError(t, err)
	assert.True(t, commitment.TwoWitnessVerify(D, E, proof, twoWitnessChallenge("nonce")))
}

func TestTwoWitnessVerifyRejectsSwappedWitnesses(t *testing.T) {
	gamma, err := curve.RandomScalar()
	require.NoError(t, err)
	k, err := curve.RandomScalar()
	require.NoError(t, err)
	D := gamma.ActOnBase()
	E := k.ActOnBase()

	proof, err := commitment.TwoWitnessProve(gamma, k, twoWitnessChallenge("nonce"))
	require.NoError(t, err)
	// verifying against D, E swapped must fail unless gamma == k
	assert.False(t, commitment.TwoWitnessVerify(E, D, proof, twoWitnessChallenge("nonce")))
}

func TestPedersenCommitVerify(t *testing.T) {
	v, err := curve.RandomScalar()
	require.NoError(t, err)
	b, err := curve.RandomScalar()
	require.NoError(t, err)

	c := commitment.Commit(v, b)
	assert.True(t, c.Verify(v, b))

	other, err := curve.RandomScalar()
	require.NoError(t, err)
	assert.False(t, c.Verify(other, b))
}

func TestPedersenHIsStableAcrossCalls(t *testing.T) {
	assert.True(t, commitment.H().Equal(commitment.H()))
}

func TestDealFeldmanVerifyPoKAndShares(t *testing.T) {
	poly, _, err := polynomial.NewRandom(1)
	require.NoError(t, err)

	vss, err := commitment.DealFeldman("party-alice", poly)
	require.NoError(t, err)
	assert.True(t, vss.VerifyPoK("party-alice"))
	assert.False(t, vss.VerifyPoK("party-bob"))

	x := curve.ScalarFromUint32(2)
	share := poly.Evaluate(x)
	assert.True(t, vss.VerifyShare(x, share))
	assert.False(t, vss.VerifyShare(x, share.Add(curve.ScalarFromUint32(1))))
}

func TestVSSCommitmentVerifyPoKRejectsEmptyCoefficients(t *testing.T) {
	empty := commitment.VSSCommitment{}
	assert.False(t, empty.VerifyPoK("anyone"))
}
