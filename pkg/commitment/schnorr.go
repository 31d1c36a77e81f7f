package commitment

import (
	"github.com/luxfi/nero-mpc-core/pkg/curve"
)

// SchnorrProof is a single-witness proof of knowledge of the discrete log
// of a public point (spec §4.C Feldman PoK, §4.J multiplicative DKG PoK).
type SchnorrProof struct {
	R curve.Point
	S curve.Scalar
}

// SchnorrProve proves knowledge of x where X = x*G, given a
// caller-supplied Fiat-Shamir challenge derivation `challenge` that is
// handed the commitment point R = k*G and must return e = H(...). The
// challenge function lets each call site bind its own domain-separated
// transcript (party ID, commitment points, etc.) per spec §4.C/§4.J.
func SchnorrProve(x curve.Scalar, challenge func(r curve.Point) curve.Scalar) (SchnorrProof, error) {
	k, err := curve.RandomScalar()
	if err != nil {
		return SchnorrProof{}, err
	}
	r := k.ActOnBase()
	e := challenge(r)
	s := k.Add(x.Mul(e))
	return SchnorrProof{R: r, S: s}, nil
}

// SchnorrVerify checks s*G == R + e*X for the proof against public point X,
// recomputing e via the same challenge function used to produce the proof.
func SchnorrVerify(x curve.Point, proof SchnorrProof, challenge func(r curve.Point) curve.Scalar) bool {
	if proof.R.IsIdentity() || proof.S.IsZero() {
		return false
	}
	e := challenge(proof.R)
	lhs := proof.S.ActOnBase()
	rhs := proof.R.Add(e.Act(x))
	return lhs.Equal(rhs)
}

// TwoWitnessProof binds knowledge of two discrete logs simultaneously — the
// nonce-commit proof of spec §4.G that ties (γ, k) to (D, E) in one
// challenge.
type TwoWitnessProof struct {
	R1, R2 curve.Point
	S1, S2 curve.Scalar
}

// TwoWitnessProve proves knowledge of (gamma, k) where D = gamma*G and
// E = k*G, under a challenge bound to D, E, R1, R2.
func TwoWitnessProve(gamma, k curve.Scalar, challenge func(r1, r2 curve.Point) curve.Scalar) (TwoWitnessProof, error) {
	r1s, err := curve.RandomScalar()
	if err != nil {
		return TwoWitnessProof{}, err
	}
	r2s, err := curve.RandomScalar()
	if err != nil {
		return TwoWitnessProof{}, err
	}
	R1 := r1s.ActOnBase()
	R2 := r2s.ActOnBase()
	e := challenge(R1, R2)
	s1 := r1s.Add(gamma.Mul(e))
	s2 := r2s.Add(k.Mul(e))
	return TwoWitnessProof{R1: R1, R2: R2, S1: s1, S2: s2}, nil
}

// TwoWitnessVerify checks s1*G = R1 + e*D and s2*G = R2 + e*E, and that
// both responses are nonzero (the degenerate all-zero response is never
// produced by an honest prover and spec §4.G requires rejecting s1,s2
// outside [1, n)).
func TwoWitnessVerify(D, E curve.Point, proof TwoWitnessProof, challenge func(r1, r2 curve.Point) curve.Scalar) bool {
	if proof.S1.IsZero() || proof.S2.IsZero() {
		return false
	}
	if proof.R1.IsIdentity() || proof.R2.IsIdentity() {
		return false
	}
	e := challenge(proof.R1, proof.R2)

	lhs1 := proof.S1.ActOnBase()
	rhs1 := proof.R1.Add(e.Act(D))
	if !lhs1.Equal(rhs1) {
		return false
	}

	lhs2 := proof.S2.ActOnBase()
	rhs2 := proof.R2.Add(e.Act(E))
	return lhs2.Equal(rhs2)
}
