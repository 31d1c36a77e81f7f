package commitment

import (
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/polynomial"
	"github.com/luxfi/nero-mpc-core/pkg/xcrypto"
)

// VSSCommitment is the public output of Feldman VSS dealing: the
// coefficient commitments of the sharing polynomial plus a non-interactive
// proof of knowledge of the constant term (spec §3 "VSS Commitment").
type VSSCommitment struct {
	Coefficients []curve.Point
	PoK          SchnorrProof
}

// DealFeldman builds a VSSCommitment for poly, binding the PoK challenge to
// partyID so a proof cannot be replayed under a different party's identity
// (spec §4.C: "challenge H(party_id ∥ A_0 ∥ R)").
func DealFeldman(partyID string, poly *polynomial.Polynomial) (VSSCommitment, error) {
	coeffs := poly.Commitments()
	a0 := poly.Constant()

	proof, err := SchnorrProve(a0, func(r curve.Point) curve.Scalar {
		return feldmanChallenge(partyID, coeffs[0], r)
	})
	if err != nil {
		return VSSCommitment{}, err
	}
	return VSSCommitment{Coefficients: coeffs, PoK: proof}, nil
}

// VerifyPoK checks the Feldman dealer's proof of knowledge of a0.
func (v VSSCommitment) VerifyPoK(partyID string) bool {
	if len(v.Coefficients) == 0 {
		return false
	}
	a0 := v.Coefficients[0]
	return SchnorrVerify(a0, v.PoK, func(r curve.Point) curve.Scalar {
		return feldmanChallenge(partyID, a0, r)
	})
}

// VerifyShare checks share = f(x) against the dealt commitments (spec §4.C
// check equation: y*G == Σ x^j * A_j).
func (v VSSCommitment) VerifyShare(x, share curve.Scalar) bool {
	return polynomial.VerifyShareAgainstCommitments(x, share, v.Coefficients)
}

func feldmanChallenge(partyID string, a0, r curve.Point) curve.Scalar {
	a0Bytes, _ := a0.MarshalBinary()
	rBytes, _ := r.MarshalBinary()
	digest := xcrypto.SHA256([]byte(partyID), a0Bytes, rBytes)
	return curve.ScalarFromBytesModN(digest[:])
}
