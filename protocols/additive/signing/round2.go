package signing

import (
	"context"

	"github.com/luxfi/nero-mpc-core/internal/round"
	"github.com/luxfi/nero-mpc-core/internal/sessionerr"
	"github.com/luxfi/nero-mpc-core/internal/wire"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
)

// Round2 reveals the raw nonce scalars, checks them against the
// commitments exchanged in Round1, and derives the combined nonce and
// signature's r component.
type Round2 struct {
	*Round1

	peerD, peerE curve.Point
}

// Number identifies this round.
func (r *Round2) Number() round.Number { return 2 }

// Finalize exchanges nonce reveals via sign.nonce, validates them against
// the round-1 commitment points, and computes the combined k and r
// (spec §4.G Round 2; §9 nonce-degeneracy handling: "r == 0 aborts the
// session rather than retry silently").
func (r *Round2) Finalize(ctx context.Context) (*Round3, error) {
	ctx, cancel := r.WithRoundDeadline(ctx)
	defer cancel()

	resp, err := r.transport.SignNonce(ctx, wire.SignNonceRequest{
		SessionID: r.SessionIDHex(),
		Reveal:    wire.NonceReveal{Gamma: r.gamma.Hex(), K: r.k.Hex()},
	})
	if err != nil {
		return nil, sessionerr.ErrTransport
	}

	peerGamma, err := curve.ScalarFromHex(resp.PeerReveal.Gamma)
	if err != nil {
		return nil, err
	}
	peerK, err := curve.ScalarFromHex(resp.PeerReveal.K)
	if err != nil {
		return nil, err
	}
	if !peerGamma.ActOnBase().Equal(r.peerD) || !peerK.ActOnBase().Equal(r.peerE) {
		return nil, sessionerr.ErrVerificationFailed
	}

	combinedK := r.k.Add(peerK)
	if combinedK.IsZero() {
		return nil, sessionerr.ErrNonceDegenerate
	}
	R := r.e.Add(r.peerE)
	sigR := R.XCoordScalar()
	if sigR.IsZero() {
		return nil, sessionerr.ErrNonceDegenerate
	}

	return &Round3{
		Round2:    r,
		combinedK: combinedK,
		nonceR:    R,
		sigR:      sigR,
	}, nil
}
