package signing

import (
	"bytes"
	"context"

	"github.com/luxfi/nero-mpc-core/internal/round"
	"github.com/luxfi/nero-mpc-core/internal/sessionerr"
	"github.com/luxfi/nero-mpc-core/internal/wire"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/xcrypto"
)

// Round2 reveals the raw nonce point, checks it against the peer's
// round-1 commitment, and derives the combined nonce k_A*k_B*G via the
// commutative product relation (spec §4.K Phase 1).
type Round2 struct {
	*Round1

	peerCommitment []byte
}

// Number identifies this round.
func (r *Round2) Number() round.Number { return 2 }

// Finalize exchanges nonce points via dkls.signing.nonce, verifies the
// peer's reveal against its commitment, and computes the combined nonce
// and signature r component.
func (r *Round2) Finalize(ctx context.Context) (*Round3, error) {
	ctx, cancel := r.WithRoundDeadline(ctx)
	defer cancel()

	nonceHex, err := r.nonce.Hex()
	if err != nil {
		return nil, err
	}
	resp, err := r.transport.DKLSSigningNonce(ctx, wire.DKLSSigningNonceRequest{
		SessionID:  r.SessionIDHex(),
		NoncePoint: nonceHex,
	})
	if err != nil {
		return nil, sessionerr.ErrTransport
	}

	peerNonce, err := curve.PointFromHex(resp.PeerNoncePoint)
	if err != nil {
		return nil, err
	}
	peerNonceBytes, err := peerNonce.MarshalBinary()
	if err != nil {
		return nil, err
	}
	peerDigest := xcrypto.SHA256(peerNonceBytes)
	if !bytes.Equal(peerDigest[:], r.peerCommitment) {
		return nil, sessionerr.ErrVerificationFailed
	}

	combinedNonce := r.k.Act(peerNonce)
	sigR := combinedNonce.XCoordScalar()
	if sigR.IsZero() {
		return nil, sessionerr.ErrNonceDegenerate
	}
	kInv, err := r.k.Inverse()
	if err != nil {
		return nil, sessionerr.ErrNonceDegenerate
	}

	return &Round3{
		Round2:        r,
		combinedNonce: combinedNonce,
		sigR:          sigR,
		kInv:          kInv,
	}, nil
}
