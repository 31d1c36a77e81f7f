package keygen

import (
	"context"

	"github.com/luxfi/nero-mpc-core/internal/round"
	"github.com/luxfi/nero-mpc-core/internal/sessionerr"
	"github.com/luxfi/nero-mpc-core/internal/wire"
	"github.com/luxfi/nero-mpc-core/pkg/address"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/keyshare"
)

// Round3 combines the two per-party polynomial evaluations into a single
// additive KeyShare and drives the finalize exchange.
type Round3 struct {
	*Round2

	receivedShare curve.Scalar
}

// Number identifies this round.
func (r *Round3) Number() round.Number { return 3 }

// Result is the terminal output of a completed additive DKG session.
type Result struct {
	KeyShare keyshare.Additive
}

// Finalize combines the local and received polynomial evaluations into the
// party's joint private share, derives the joint public key and Ethereum
// address, confirms them against the backend's dkg.share response, and
// returns the finished KeyShare (spec §4.F Round 3: "combined_private_share
// = own_evaluation + received_share... joint_public_key = A0_self + A0_peer").
func (r *Round3) Finalize(ctx context.Context) (*Result, error) {
	ctx, cancel := r.WithRoundDeadline(ctx)
	defer cancel()

	selfIndex, _ := r.PartyIndices()
	selfX := curve.ScalarFromUint32(uint32(selfIndex))
	ownEvaluation := r.poly.Evaluate(selfX)
	privateShare := ownEvaluation.Add(r.receivedShare)

	jointPublicKey := r.vss.Coefficients[0].Add(r.peerCommit.Coefficients[0])
	publicShare := privateShare.ActOnBase()

	resp, err := r.transport.DKGShare(ctx, wire.DKGShareRequest{
		SessionID: r.SessionIDHex(),
	})
	if err != nil {
		return nil, sessionerr.ErrTransport
	}

	jointPublicKeyHex, err := jointPublicKey.Hex()
	if err != nil {
		return nil, err
	}
	if resp.JointPublicKey != jointPublicKeyHex {
		return nil, sessionerr.ErrProtocolViolation
	}
	addr, err := address.FromPoint(jointPublicKey)
	if err != nil {
		return nil, err
	}
	if resp.Address != addr {
		return nil, sessionerr.ErrProtocolViolation
	}

	share, err := keyshare.NewAdditive(selfIndex, privateShare, publicShare, jointPublicKey)
	if err != nil {
		return nil, err
	}
	return &Result{KeyShare: share}, nil
}
