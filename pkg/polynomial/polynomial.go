// Package polynomial implements Shamir secret-sharing polynomials over the
// secp256k1 scalar field: generation, Horner evaluation, and Lagrange
// interpolation coefficients (spec §4.D). Grounded on the evaluate/Lagrange
// call sites used throughout the teacher's protocols/lss/keygen package.
package polynomial

import (
	"github.com/luxfi/nero-mpc-core/pkg/curve"
)

// Polynomial is f(x) = a_0 + a_1 x + ... + a_t x^t, coefficients low-to-high.
type Polynomial struct {
	Coefficients []curve.Scalar
}

// New builds a random polynomial of the given degree with a0 fixed to
// constant. All other coefficients are fresh nonzero random scalars
// (spec §4.D: "generate_polynomial(degree) returns degree+1 fresh non-zero
// scalars").
func New(degree int, constant curve.Scalar) (*Polynomial, error) {
	coeffs := make([]curve.Scalar, degree+1)
	coeffs[0] = constant
	for i := 1; i <= degree; i++ {
		s, err := curve.RandomScalar()
		if err != nil {
			return nil, err
		}
		coeffs[i] = s
	}
	return &Polynomial{Coefficients: coeffs}, nil
}

// NewRandom builds a polynomial of the given degree with a fresh random
// constant term, returning both the polynomial and its secret a0.
func NewRandom(degree int) (*Polynomial, curve.Scalar, error) {
	secret, err := curve.RandomScalar()
	if err != nil {
		return nil, curve.Scalar{}, err
	}
	p, err := New(degree, secret)
	return p, secret, err
}

// Degree returns the polynomial's degree.
func (p *Polynomial) Degree() int { return len(p.Coefficients) - 1 }

// Constant returns a0, the secret the polynomial shares.
func (p *Polynomial) Constant() curve.Scalar { return p.Coefficients[0] }

// Evaluate computes f(x) via Horner's method.
func (p *Polynomial) Evaluate(x curve.Scalar) curve.Scalar {
	result := curve.NewScalar()
	for i := len(p.Coefficients) - 1; i >= 0; i-- {
		result = result.Mul(x).Add(p.Coefficients[i])
	}
	return result
}

// Commitments returns {a_j * G} for every coefficient — the Feldman VSS
// verification vector (spec §4.C).
func (p *Polynomial) Commitments() []curve.Point {
	out := make([]curve.Point, len(p.Coefficients))
	for i, c := range p.Coefficients {
		out[i] = c.ActOnBase()
	}
	return out
}

// VerifyShareAgainstCommitments checks share = f(x) against the public
// commitment vector without learning f: y*G == Σ x^j * A_j.
func VerifyShareAgainstCommitments(x, share curve.Scalar, commitments []curve.Point) bool {
	lhs := share.ActOnBase()

	rhs := curve.NewPoint()
	xPow := curve.ScalarFromUint32(1)
	for _, a := range commitments {
		rhs = rhs.Add(xPow.Act(a))
		xPow = xPow.Mul(x)
	}
	return lhs.Equal(rhs)
}

// LagrangeCoefficient computes λ_i = Π_{j≠i} (-j)/(i-j) mod n for party index
// i against the participant index set xs (spec §4.D).
func LagrangeCoefficient(i curve.Scalar, xs []curve.Scalar) (curve.Scalar, error) {
	num := curve.ScalarFromUint32(1)
	den := curve.ScalarFromUint32(1)
	for _, j := range xs {
		if j.Equal(i) {
			continue
		}
		num = num.Mul(j.Negate())
		den = den.Mul(i.Sub(j))
	}
	denInv, err := den.Inverse()
	if err != nil {
		return curve.Scalar{}, err
	}
	return num.Mul(denInv), nil
}

// EvaluateAllLagrange computes the Lagrange coefficient for every index in
// xs simultaneously, keyed by the byte-hex-free scalar value's index
// position (convenience for §8 property 4's reconstruction check).
func EvaluateAllLagrange(xs []curve.Scalar) (map[int]curve.Scalar, error) {
	out := make(map[int]curve.Scalar, len(xs))
	for idx, xi := range xs {
		lambda, err := LagrangeCoefficient(xi, xs)
		if err != nil {
			return nil, err
		}
		out[idx] = lambda
	}
	return out, nil
}

// Reconstruct interpolates f(0) from the given (x, f(x)) pairs.
func Reconstruct(xs, ys []curve.Scalar) (curve.Scalar, error) {
	if len(xs) != len(ys) || len(xs) == 0 {
		return curve.Scalar{}, errShapeMismatch
	}
	acc := curve.NewScalar()
	for i := range xs {
		lambda, err := LagrangeCoefficient(xs[i], xs)
		if err != nil {
			return curve.Scalar{}, err
		}
		acc = acc.Add(lambda.Mul(ys[i]))
	}
	return acc, nil
}

var errShapeMismatch = polyError("polynomial: xs/ys length mismatch or empty")

type polyError string

func (e polyError) Error() string { return string(e) }
