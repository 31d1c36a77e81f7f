// Package signing implements the additive two-party ECDSA signing engine of
// spec §4.G: a three-round nonce commit/reveal/combine state machine that
// produces a standard low-s-normalized (r, s, v) signature from an additive
// KeyShare. Grounded on the nonce-commit broadcast pattern of
// protocols/lss/sign/round1.go, adapted from N-party aggregation to the
// 2-party Lagrange-weighted combination this engine performs directly,
// without the multiplicative-to-additive conversion the DKLS engine needs.
package signing

import (
	"context"
	"encoding/hex"

	"github.com/luxfi/nero-mpc-core/internal/round"
	"github.com/luxfi/nero-mpc-core/internal/sessionerr"
	"github.com/luxfi/nero-mpc-core/internal/wire"
	"github.com/luxfi/nero-mpc-core/pkg/commitment"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/keyshare"
	"github.com/luxfi/nero-mpc-core/pkg/transport"
	"github.com/luxfi/nero-mpc-core/pkg/xcrypto"
)

// Round1 holds the fresh per-signature nonce material: a blinding scalar
// gamma and the signing nonce k, committed via D=gamma*G, E=k*G and a
// two-witness proof of knowledge of both (spec §4.G Round 1).
type Round1 struct {
	*round.Helper
	transport transport.Transport
	share     keyshare.Additive

	messageHash [32]byte

	gamma curve.Scalar
	k     curve.Scalar
	d, e  curve.Point
	proof commitment.TwoWitnessProof
}

// NewSession generates fresh nonce material for signing messageHash under
// share.
func NewSession(selfID, peerID string, share keyshare.Additive, messageHash [32]byte, tr transport.Transport) (*Round1, error) {
	sessionID, err := round.NewSessionID("additive-sign", selfID, peerID, messageHash[:])
	if err != nil {
		return nil, err
	}
	gamma, err := curve.RandomScalar()
	if err != nil {
		return nil, err
	}
	k, err := curve.RandomScalar()
	if err != nil {
		return nil, err
	}
	d := gamma.ActOnBase()
	e := k.ActOnBase()

	proof, err := commitment.TwoWitnessProve(gamma, k, func(r1, r2 curve.Point) curve.Scalar {
		return nonceChallenge(sessionID, messageHash, d, e, r1, r2)
	})
	if err != nil {
		return nil, err
	}

	return &Round1{
		Helper:      round.NewHelper(selfID, peerID, sessionID, 2, round.DefaultRoundTimeout),
		transport:   tr,
		share:       share,
		messageHash: messageHash,
		gamma:       gamma,
		k:           k,
		d:           d,
		e:           e,
		proof:       proof,
	}, nil
}

// Number identifies this round.
func (r *Round1) Number() round.Number { return 1 }

// Finalize exchanges nonce commitments via sign.init and verifies the
// peer's two-witness proof.
func (r *Round1) Finalize(ctx context.Context) (*Round2, error) {
	ctx, cancel := r.WithRoundDeadline(ctx)
	defer cancel()

	dHex, err := r.d.Hex()
	if err != nil {
		return nil, err
	}
	eHex, err := r.e.Hex()
	if err != nil {
		return nil, err
	}
	proofWire, err := wire.TwoWitnessProofToWire(r.proof)
	if err != nil {
		return nil, err
	}

	resp, err := r.transport.SignInit(ctx, wire.SignInitRequest{
		SessionID:   r.SessionIDHex(),
		MessageHash: hex.EncodeToString(r.messageHash[:]),
		NonceCommit: wire.NonceCommit{D: dHex, E: eHex, Proof: proofWire},
	})
	if err != nil {
		return nil, sessionerr.ErrTransport
	}

	peerD, err := curve.PointFromHex(resp.PeerNonceCommit.D)
	if err != nil {
		return nil, err
	}
	peerE, err := curve.PointFromHex(resp.PeerNonceCommit.E)
	if err != nil {
		return nil, err
	}
	peerProof, err := wire.TwoWitnessProofFromWire(resp.PeerNonceCommit.Proof)
	if err != nil {
		return nil, err
	}
	valid := commitment.TwoWitnessVerify(peerD, peerE, peerProof, func(r1, r2 curve.Point) curve.Scalar {
		return nonceChallenge(r.SessionID(), r.messageHash, peerD, peerE, r1, r2)
	})
	if !valid {
		return nil, sessionerr.ErrVerificationFailed
	}

	return &Round2{
		Round1: r,
		peerD:  peerD,
		peerE:  peerE,
	}, nil
}

func nonceChallenge(sessionID []byte, messageHash [32]byte, d, e, r1, r2 curve.Point) curve.Scalar {
	dBytes, _ := d.MarshalBinary()
	eBytes, _ := e.MarshalBinary()
	r1Bytes, _ := r1.MarshalBinary()
	r2Bytes, _ := r2.MarshalBinary()
	digest := xcrypto.SHA256(sessionID, messageHash[:], dBytes, eBytes, r1Bytes, r2Bytes)
	return curve.ScalarFromBytesModN(digest[:])
}
