package polynomial_test

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/polynomial"
)

func TestNewFixesConstantTerm(t *testing.T) {
	secret, err := curve.RandomScalar()
	require.NoError(t, err)
	p, err := polynomial.New(1, secret)
	require.NoError(t, err)
	assert.True(t, p.Constant().Equal(secret))
	assert.Equal(t, 1, p.Degree())
}

func TestEvaluateAtZeroIsConstant(t *testing.T) {
	p, secret, err := polynomial.NewRandom(2)
	require.NoError(t, err)
	assert.True(t, p.Evaluate(curve.NewScalar()).Equal(secret))
}

func TestVerifyShareAgainstCommitments(t *testing.T) {
	p, _, err := polynomial.NewRandom(2)
	require.NoError(t, err)
	commitments := p.Commitments()

	x := curve.ScalarFromUint32(3)
	share := p.Evaluate(x)
	assert.True(t, polynomial.VerifyShareAgainstCommitments(x, share, commitments))

	tampered := share.Add(curve.ScalarFromUint32(1))
	assert.False(t, polynomial.VerifyShareAgainstCommitments(x, tampered, commitments))
}

func TestLagrangeCoefficientsSumToOne(t *testing.T) {
	xs := []curve.Scalar{
		curve.ScalarFromUint32(1),
		curve.ScalarFromUint32(2),
	}
	coeffs, err := polynomial.EvaluateAllLagrange(xs)
	require.NoError(t, err)

	sum := curve.NewScalar()
	for _, c := range coeffs {
		sum = sum.Add(c)
	}
	assert.True(t, sum.Equal(curve.ScalarFromUint32(1)))
}

func TestReconstructRecoversSecretFromThresholdShares(t *testing.T) {
	p, secret, err := polynomial.NewRandom(1)
	require.NoError(t, err)

	xs := []curve.Scalar{curve.ScalarFromUint32(1), curve.ScalarFromUint32(2)}
	ys := []curve.Scalar{p.Evaluate(xs[0]), p.Evaluate(xs[1])}

	recovered, err := polynomial.Reconstruct(xs, ys)
	require.NoError(t, err)
	assert.True(t, recovered.Equal(secret))
}

func TestReconstructRejectsMismatchedLengths(t *testing.T) {
	_, err := polynomial.Reconstruct([]curve.Scalar{curve.ScalarFromUint32(1)}, nil)
	assert.Error(t, err)
}

func TestReconstructionAgreesRegardlessOfShareSubset(t *testing.T) {
	// property: for a degree-1 polynomial, any 2 of several evaluation
	// points reconstruct the same secret (spec §8's reconstruction
	// invariant for the threshold-2 case).
	f := func(seed uint8) bool {
		secretScalar := curve.ScalarFromUint32(uint32(seed) + 1)
		p, err := polynomial.New(1, secretScalar)
		if err != nil {
			return false
		}
		xsA := []curve.Scalar{curve.ScalarFromUint32(1), curve.ScalarFromUint32(2)}
		ysA := []curve.Scalar{p.Evaluate(xsA[0]), p.Evaluate(xsA[1])}
		recoveredA, err := polynomial.Reconstruct(xsA, ysA)
		if err != nil {
			return false
		}

		xsB := []curve.Scalar{curve.ScalarFromUint32(3), curve.ScalarFromUint32(5)}
		ysB := []curve.Scalar{p.Evaluate(xsB[0]), p.Evaluate(xsB[1])}
		recoveredB, err := polynomial.Reconstruct(xsB, ysB)
		if err != nil {
			return false
		}
		return recoveredA.Equal(secretScalar) && recoveredB.Equal(secretScalar)
	}
	require.NoError(t, quick.Check(f, nil))
}
