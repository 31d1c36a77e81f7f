package keygen

import (
	"context"

	"github.com/luxfi/nero-mpc-core/internal/round"
	"github.com/luxfi/nero-mpc-core/internal/sessionerr"
	"github.com/luxfi/nero-mpc-core/internal/wire"
	"github.com/luxfi/nero-mpc-core/pkg/commitment"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/sharechannel"
)

// Round2 holds the peer's validated round-1 broadcast and drives the
// encrypted share exchange (spec §4.F Round 2: "Evaluate f(peer_index).
// Encrypt the evaluation under the peer's ephemeral public key.
// Exchange encrypted shares. Decrypt and verify the peer's share against
// its VSS commitments.").
type Round2 struct {
	*Round1

	peerCommit             commitment.VSSCommitment
	peerEphemeralPublicKey curve.Point
}

// Number identifies this round.
func (r *Round2) Number() round.Number { return 2 }

// Finalize evaluates, encrypts, and exchanges Shamir shares, then verifies
// the peer's share against its Feldman commitments before advancing.
func (r *Round2) Finalize(ctx context.Context) (*Round3, error) {
	ctx, cancel := r.WithRoundDeadline(ctx)
	defer cancel()

	selfIndex, peerIndex := r.PartyIndices()
	peerX := curve.ScalarFromUint32(uint32(peerIndex))
	shareForPeer := r.poly.Evaluate(peerX)

	encrypted, err := sharechannel.Encrypt(r.SelfID(), r.PeerID(), shareForPeer, r.peerEphemeralPublicKey)
	if err != nil {
		return nil, err
	}
	encryptedWire, err := wire.EncryptedShareToWire(encrypted)
	if err != nil {
		return nil, err
	}

	resp, err := r.transport.DKGCommit(ctx, wire.DKGCommitRequest{
		SessionID: r.SessionIDHex(),
		Share:     encryptedWire,
	})
	if err != nil {
		return nil, sessionerr.ErrTransport
	}

	peerShareMsg, err := wire.EncryptedShareFromWire(resp.PeerShare)
	if err != nil {
		return nil, err
	}
	receivedShare, err := sharechannel.Decrypt(peerShareMsg, r.ephemeral.Private)
	if err != nil {
		return nil, sessionerr.ErrVerificationFailed
	}

	selfX := curve.ScalarFromUint32(uint32(selfIndex))
	if !r.peerCommit.VerifyShare(selfX, receivedShare) {
		return nil, sessionerr.ErrVerificationFailed
	}

	return &Round3{
		Round2:        r,
		receivedShare: receivedShare,
	}, nil
}
