package signing

import (
	"context"
	"encoding/hex"

	"github.com/luxfi/nero-mpc-core/internal/round"
	"github.com/luxfi/nero-mpc-core/internal/sessionerr"
	"github.com/luxfi/nero-mpc-core/internal/wire"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/polynomial"
	"github.com/luxfi/nero-mpc-core/pkg/sigverify"
)

// Round3 computes and exchanges the final partial signatures.
type Round3 struct {
	*Round2

	combinedK curve.Scalar
	nonceR    curve.Point
	sigR      curve.Scalar
}

// Number identifies this round.
func (r *Round3) Number() round.Number { return 3 }

// Result is the terminal output of an additive signing session: a standard
// ECDSA (r, s, v) signature with low-s normalization applied.
type Result struct {
	R             curve.Scalar
	S             curve.Scalar
	V             int
	FullSignature []byte
}

// Finalize computes this party's Lagrange-weighted partial signature,
// exchanges it via sign.complete, and returns the combined, low-s
// normalized signature (spec §4.G Round 3: "sigma_i = k^-1 * lambda_i *
// (H(m) + r*x_i); combine s = sigma_self + sigma_peer; normalize to low-s;
// derive v from the combined nonce point's parity").
func (r *Round3) Finalize(ctx context.Context) (*Result, error) {
	ctx, cancel := r.WithRoundDeadline(ctx)
	defer cancel()

	selfIndex, peerIndex := r.PartyIndices()
	selfX := curve.ScalarFromUint32(uint32(selfIndex))
	peerX := curve.ScalarFromUint32(uint32(peerIndex))
	xs := []curve.Scalar{selfX, peerX}
	lambdaSelf, err := polynomial.LagrangeCoefficient(selfX, xs)
	if err != nil {
		return nil, err
	}
	lambdaPeer, err := polynomial.LagrangeCoefficient(peerX, xs)
	if err != nil {
		return nil, err
	}

	privateShare, err := r.share.PrivateScalar()
	if err != nil {
		return nil, err
	}
	kInv, err := r.combinedK.Inverse()
	if err != nil {
		return nil, sessionerr.ErrNonceDegenerate
	}
	messageScalar := curve.ScalarFromBytesModN(r.messageHash[:])

	term := messageScalar.Add(r.sigR.Mul(privateShare))
	sigma := kInv.Mul(lambdaSelf.Mul(term))

	selfPublicPoint := privateShare.ActOnBase()
	publicShareHex, err := selfPublicPoint.Hex()
	if err != nil {
		return nil, err
	}
	noncePublicHex, err := r.e.Hex()
	if err != nil {
		return nil, err
	}

	resp, err := r.transport.SignComplete(ctx, wire.SignCompleteRequest{
		SessionID: r.SessionIDHex(),
		Partial: wire.PartialSignature{
			PartyID:     r.SelfID(),
			Sigma:       sigma.Hex(),
			PublicShare: publicShareHex,
			NoncePublic: noncePublicHex,
		},
	})
	if err != nil {
		return nil, sessionerr.ErrTransport
	}

	joint, err := r.share.JointPublicPoint()
	if err != nil {
		return nil, err
	}
	// Y = lambda_self*P_self + lambda_peer*P_peer, so the peer's share point
	// is P_peer = lambda_peer^-1 * (Y - lambda_self*P_self).
	lambdaPeerInv, err := lambdaPeer.Inverse()
	if err != nil {
		return nil, err
	}
	expectedPeerPublic := lambdaPeerInv.Act(joint.Sub(lambdaSelf.Act(selfPublicPoint)))
	if err := verifyPeerPartial(resp.PeerPartial, lambdaPeer, messageScalar, r.sigR, r.nonceR, r.peerE, expectedPeerPublic); err != nil {
		return nil, err
	}

	combinedR, err := curve.ScalarFromHex(resp.R)
	if err != nil {
		return nil, err
	}
	combinedS, err := curve.ScalarFromHex(resp.S)
	if err != nil {
		return nil, err
	}
	if !combinedR.Equal(r.sigR) {
		return nil, sessionerr.ErrProtocolViolation
	}

	if err := sigverify.Verify(joint, r.messageHash, combinedR, combinedS, resp.V); err != nil {
		return nil, sessionerr.ErrVerificationFailed
	}

	full, err := hex.DecodeString(resp.FullSignature)
	if err != nil {
		return nil, err
	}

	return &Result{
		R:             combinedR,
		S:             combinedS,
		V:             resp.V,
		FullSignature: full,
	}, nil
}

// verifyPeerPartial checks the peer's reported partial signature before it
// is trusted in the combination (spec §4.G "Verify peer partial"): sigma in
// range, nonce_public matching the E revealed back in round 2, public_share
// matching the share recorded at DKG time, and the algebraic identity.
//
// The identity is stated against this engine's own construction (sigma_j =
// combinedK^-1 * lambda_j * (m + r*x_j), with combinedK shared by both
// parties), so the nonce point acting on sigma_j is the combined R rather
// than peer's local E_j: R * sigma_j == lambda_j*m*G + (r*lambda_j)*P_j. A
// peer who reports any sigma other than the one their own share and r
// produce fails this check.
func verifyPeerPartial(peer wire.PartialSignature, lambdaPeer, messageScalar, sigR curve.Scalar, nonceR, peerE, expectedPeerPublic curve.Point) error {
	sigmaPeer, err := curve.ScalarFromHex(peer.Sigma)
	if err != nil || sigmaPeer.IsZero() {
		return sessionerr.ErrVerificationFailed
	}
	peerPublic, err := curve.PointFromHex(peer.PublicShare)
	if err != nil {
		return sessionerr.ErrVerificationFailed
	}
	peerNonce, err := curve.PointFromHex(peer.NoncePublic)
	if err != nil {
		return sessionerr.ErrVerificationFailed
	}
	if !peerPublic.Equal(expectedPeerPublic) {
		return sessionerr.ErrVerificationFailed
	}
	if !peerNonce.Equal(peerE) {
		return sessionerr.ErrVerificationFailed
	}

	lhs := sigmaPeer.Act(nonceR)
	rhs := lambdaPeer.Mul(messageScalar).ActOnBase().Add(lambdaPeer.Mul(sigR).Act(peerPublic))
	if !lhs.Equal(rhs) {
		return sessionerr.ErrVerificationFailed
	}
	return nil
}

// CombineLocal independently recomputes s = sigma_self + sigma_peer and the
// low-s/recovery-id normalization, for callers that do not trust the
// backend's reported combination (spec §9: "clients MAY independently
// verify the combined signature against the joint public key before
// trusting it").
func CombineLocal(sigmaSelf, sigmaPeer curve.Scalar, nonceR curve.Point) (curve.Scalar, curve.Scalar, int) {
	s := sigmaSelf.Add(sigmaPeer)
	v := 0
	if nonceR.YIsOdd() {
		v = 1
	}
	if s.IsOverHalfOrder() {
		s = s.Negate()
		v ^= 1
	}
	return nonceR.XCoordScalar(), s, v
}
