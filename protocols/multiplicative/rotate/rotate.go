// Package rotate implements multiplicative share rotation: a single
// round-trip that re-randomizes both parties' secret shares while holding
// the DH-style joint public key sk_self*sk_peer*G fixed. Grounded on the
// same commit/reveal/finalize shape as protocols/lss/reshare, replacing
// the Feldman-VSS resharing polynomial with the multiplicative analogue of
// protocols/additive/rotate's cancelling-mask trick: instead of two masks
// that cancel under addition, each party blinds by mask_self and unblinds
// by the peer's revealed mask_peer^-1, so the product sk_self'*sk_peer' is
// unchanged (spec Supplemented Features).
package rotate

import (
	"context"

	"github.com/luxfi/nero-mpc-core/internal/round"
	"github.com/luxfi/nero-mpc-core/internal/sessionerr"
	"github.com/luxfi/nero-mpc-core/internal/wire"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/keyshare"
	"github.com/luxfi/nero-mpc-core/pkg/transport"
)

// Run rotates share: new_self = sk_self * mask_self * mask_peer^-1. Both
// parties apply this same shape, so new_self*new_peer = sk_self*sk_peer
// regardless of mask choice, and the joint public key is unchanged.
// generation distinguishes rotation ceremonies the way it does in
// protocols/additive/rotate.
func Run(ctx context.Context, selfID, peerID, generation string, share keyshare.Multiplicative, tr transport.Transport) (*keyshare.Multiplicative, error) {
	sessionID, err := round.NewSessionID("multiplicative-rotate", selfID, peerID, []byte(generation))
	if err != nil {
		return nil, err
	}
	h := round.NewHelper(selfID, peerID, sessionID, 2, round.DefaultRoundTimeout)

	mask, err := curve.RandomScalar()
	if err != nil {
		return nil, err
	}

	ctx, cancel := h.WithRoundDeadline(ctx)
	defer cancel()

	resp, err := tr.Rotate(ctx, wire.RotateRequest{SessionID: h.SessionIDHex(), Mask: mask.Hex()})
	if err != nil {
		return nil, sessionerr.ErrTransport
	}
	peerMask, err := curve.ScalarFromHex(resp.PeerMask)
	if err != nil {
		return nil, err
	}
	peerMaskInv, err := peerMask.Inverse()
	if err != nil {
		return nil, sessionerr.ErrVerificationFailed
	}

	secret, err := share.SecretScalar()
	if err != nil {
		return nil, err
	}
	joint, err := share.JointPublicPoint()
	if err != nil {
		return nil, err
	}

	newSecret := secret.Mul(mask).Mul(peerMaskInv)
	newPublicHex, err := newSecret.ActOnBase().Hex()
	if err != nil {
		return nil, err
	}
	jointHex, err := joint.Hex()
	if err != nil {
		return nil, err
	}

	rotated := keyshare.Multiplicative{
		PartyID:         share.PartyID,
		SecretShare:     newSecret.Hex(),
		PublicShare:     newPublicHex,
		JointPublicKey:  jointHex,
		ProtocolVersion: keyshare.MultiplicativeProtocolVersion,
	}
	return &rotated, nil
}
