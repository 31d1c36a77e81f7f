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

// Round3 combines the two revealed public shares into the joint
// (product) public key via the DH-style relation sk_self * P_peer.
type Round3 struct {
	*Round2

	peerPublicShare curve.Point
}

// Number identifies this round.
func (r *Round3) Number() round.Number { return 3 }

// Result is the terminal output of a completed multiplicative DKG session.
type Result struct {
	KeyShare keyshare.Multiplicative
}

// Finalize computes the joint public key sk_self*sk_peer*G as
// sk_self.Act(P_peer), confirms it against the backend's dkls.keygen.complete
// response, and returns the finished KeyShare (spec §4.J Round 3).
func (r *Round3) Finalize(ctx context.Context) (*Result, error) {
	ctx, cancel := r.WithRoundDeadline(ctx)
	defer cancel()

	jointPublicKey := r.secret.Act(r.peerPublicShare)

	jointHex, err := jointPublicKey.Hex()
	if err != nil {
		return nil, err
	}
	addr, err := address.FromPoint(jointPublicKey)
	if err != nil {
		return nil, err
	}

	resp, err := r.transport.DKLSKeygenComplete(ctx, wire.DKLSKeygenCompleteRequest{
		SessionID:      r.SessionIDHex(),
		JointPublicKey: jointHex,
		Address:        addr,
	})
	if err != nil {
		return nil, sessionerr.ErrTransport
	}

	if resp.JointPublicKey != jointHex {
		return nil, sessionerr.ErrProtocolViolation
	}
	if resp.Address != addr {
		return nil, sessionerr.ErrProtocolViolation
	}

	secretHex := r.secret.Hex()
	publicShareHex, err := r.publicShare.Hex()
	if err != nil {
		return nil, err
	}

	share := keyshare.Multiplicative{
		PartyID:         mustIndex(r),
		SecretShare:     secretHex,
		PublicShare:     publicShareHex,
		JointPublicKey:  jointHex,
		ProtocolVersion: keyshare.MultiplicativeProtocolVersion,
	}
	return &Result{KeyShare: share}, nil
}

func mustIndex(r *Round3) int {
	self, _ := r.PartyIndices()
	return self
}
