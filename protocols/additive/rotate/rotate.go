// Package rotate implements additive share rotation: a single round-trip
// that re-randomizes both parties' private shares while holding the joint
// public key fixed, narrowed from the general add/remove-party resharing
// of protocols/lss/reshare/round{1,2,3}.go down to the 2-party case, where
// "change the party set" collapses to "blind each existing share by a
// pair of masks that cancel in the Lagrange-weighted sum" (spec Supplemented Features: share
// rotation invalidates any previously-exfiltrated copy of a share without
// a fresh DKG ceremony).
package rotate

import (
	"context"

	"github.com/luxfi/nero-mpc-core/internal/round"
	"github.com/luxfi/nero-mpc-core/internal/sessionerr"
	"github.com/luxfi/nero-mpc-core/internal/wire"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/keyshare"
	"github.com/luxfi/nero-mpc-core/pkg/polynomial"
	"github.com/luxfi/nero-mpc-core/pkg/transport"
)

// Run rotates share: both parties draw an independent random mask,
// exchange it via Rotate, and update their private share by
// lambda_self^-1 * (mask_self - mask_peer), where lambda_self is the
// party's Lagrange coefficient. The two updates cancel in the
// Lagrange-weighted sum lambda_self*x_self + lambda_peer*x_peer, so the
// joint public key (and hence the address) never changes, but an old copy of either party's PrivateShare becomes
// useless the moment the other party rotates (spec Supplemented Features).
// generation distinguishes one rotation ceremony from the next between
// the same two parties; callers must agree on it out of band (e.g. a
// monotonic counter persisted alongside the share).
func Run(ctx context.Context, selfID, peerID, generation string, share keyshare.Additive, tr transport.Transport) (*keyshare.Additive, error) {
	sessionID, err := round.NewSessionID("additive-rotate", selfID, peerID, []byte(generation))
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

	private, err := share.PrivateScalar()
	if err != nil {
		return nil, err
	}
	joint, err := share.JointPublicPoint()
	if err != nil {
		return nil, err
	}

	selfIndex, peerIndex := h.PartyIndices()
	selfX := curve.ScalarFromUint32(uint32(selfIndex))
	xs := []curve.Scalar{selfX, curve.ScalarFromUint32(uint32(peerIndex))}
	lambdaSelf, err := polynomial.LagrangeCoefficient(selfX, xs)
	if err != nil {
		return nil, err
	}
	lambdaSelfInv, err := lambdaSelf.Inverse()
	if err != nil {
		return nil, err
	}

	newPrivate := private.Add(lambdaSelfInv.Mul(mask.Sub(peerMask)))
	newPublic := newPrivate.ActOnBase()

	rotated, err := keyshare.NewAdditive(share.PartyID, newPrivate, newPublic, joint)
	if err != nil {
		return nil, err
	}
	return &rotated, nil
}
