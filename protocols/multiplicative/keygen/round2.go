package keygen

import (
	"context"

	"github.com/luxfi/nero-mpc-core/internal/round"
	"github.com/luxfi/nero-mpc-core/internal/sessionerr"
	"github.com/luxfi/nero-mpc-core/internal/wire"
	"github.com/luxfi/nero-mpc-core/pkg/commitment"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/xcrypto"
)

// Round2 reveals the public share and proves knowledge of its discrete
// log, checking the peer's reveal against its earlier commitment hash.
type Round2 struct {
	*Round1

	peerCommitment []byte
}

// Number identifies this round.
func (r *Round2) Number() round.Number { return 2 }

// Finalize exchanges public shares and Schnorr proofs of knowledge via
// dkls.keygen.commitment, verifying the peer's reveal against its
// round-1 commitment hash before accepting it (spec §4.J Round 2).
func (r *Round2) Finalize(ctx context.Context) (*Round3, error) {
	ctx, cancel := r.WithRoundDeadline(ctx)
	defer cancel()

	proof, err := commitment.SchnorrProve(r.secret, func(rr curve.Point) curve.Scalar {
		return challengeSelf(r.SelfID(), r.publicShare, rr)
	})
	if err != nil {
		return nil, err
	}
	proofWire, err := wire.SchnorrProofToWire(proof)
	if err != nil {
		return nil, err
	}
	publicShareHex, err := r.publicShare.Hex()
	if err != nil {
		return nil, err
	}

	resp, err := r.transport.DKLSKeygenCommitment(ctx, wire.DKLSKeygenCommitmentRequest{
		SessionID:   r.SessionIDHex(),
		PublicShare: publicShareHex,
		Proof:       proofWire,
	})
	if err != nil {
		return nil, sessionerr.ErrTransport
	}

	peerPublicShare, err := curve.PointFromHex(resp.PeerPublicShare)
	if err != nil {
		return nil, err
	}
	peerPublicShareBytes, err := peerPublicShare.MarshalBinary()
	if err != nil {
		return nil, err
	}
	peerDigest := xcrypto.SHA256(peerPublicShareBytes)
	if hexEncode(peerDigest[:]) != hexEncode(r.peerCommitment) {
		return nil, sessionerr.ErrVerificationFailed
	}

	peerProof, err := wire.SchnorrProofFromWire(resp.PeerProof)
	if err != nil {
		return nil, err
	}
	valid := commitment.SchnorrVerify(peerPublicShare, peerProof, func(rr curve.Point) curve.Scalar {
		return challengeSelf(r.PeerID(), peerPublicShare, rr)
	})
	if !valid {
		return nil, sessionerr.ErrVerificationFailed
	}

	return &Round3{
		Round2:          r,
		peerPublicShare: peerPublicShare,
	}, nil
}
