// Package keygen implements the additive (Pedersen/Feldman-VSS) two-party
// DKG engine of spec §4.F: a three-round commit/share/finalize state
// machine producing an additive KeyShare. Grounded directly on the
// round-struct/Helper/Finalize-chaining idiom of
// protocols/lss/keygen/round{1,2,3}.go, narrowed from an N-party threshold
// scheme to exactly two parties each holding one full Shamir share of a
// shared secret.
package keygen

import (
	"context"

	"github.com/luxfi/nero-mpc-core/internal/round"
	"github.com/luxfi/nero-mpc-core/internal/sessionerr"
	"github.com/luxfi/nero-mpc-core/internal/wire"
	"github.com/luxfi/nero-mpc-core/pkg/commitment"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/keyshare"
	"github.com/luxfi/nero-mpc-core/pkg/polynomial"
	"github.com/luxfi/nero-mpc-core/pkg/sharechannel"
	"github.com/luxfi/nero-mpc-core/pkg/transport"
)

// Round1 holds the freshly-dealt polynomial and ephemeral ECDH keypair a
// party generates before ever talking to its counterparty.
type Round1 struct {
	*round.Helper
	transport transport.Transport

	poly      *polynomial.Polynomial
	vss       commitment.VSSCommitment
	ephemeral sharechannel.EphemeralKeyPair
}

// NewSession deals a fresh degree-1 sharing polynomial, commits to it via
// Feldman VSS, and generates the ephemeral ECDH keypair this session will
// use to encrypt its outgoing share (spec §4.F Round 1: "Generate random
// polynomial f(x) of degree 1... Commit via Feldman VSS... Generate
// ephemeral ECDH keypair").
func NewSession(selfID, peerID string, tr transport.Transport) (*Round1, error) {
	sessionID, err := round.NewSessionID("additive-dkg", selfID, peerID)
	if err != nil {
		return nil, err
	}
	poly, _, err := polynomial.NewRandom(1)
	if err != nil {
		return nil, err
	}
	vss, err := commitment.DealFeldman(selfID, poly)
	if err != nil {
		return nil, err
	}
	eph, err := sharechannel.NewEphemeralKeyPair()
	if err != nil {
		return nil, err
	}
	return &Round1{
		Helper:    round.NewHelper(selfID, peerID, sessionID, 2, round.DefaultRoundTimeout),
		transport: tr,
		poly:      poly,
		vss:       vss,
		ephemeral: eph,
	}, nil
}

// Number identifies this round.
func (r *Round1) Number() round.Number { return 1 }

// Finalize broadcasts the local VSS commitment and ephemeral public key via
// dkg.init, and validates the peer's proof of knowledge of its constant
// term before advancing (spec §4.F Round 1 exchange; §9 "every received
// commitment's PoK is checked before use").
func (r *Round1) Finalize(ctx context.Context) (*Round2, error) {
	ctx, cancel := r.WithRoundDeadline(ctx)
	defer cancel()

	vssWire, err := wire.VSSCommitmentToWire(r.vss)
	if err != nil {
		return nil, err
	}
	ephHex, err := r.ephemeral.Public.Hex()
	if err != nil {
		return nil, err
	}

	resp, err := r.transport.DKGInit(ctx, wire.DKGInitRequest{
		SessionID:          r.SessionIDHex(),
		ProtocolVersion:    keyshare.ProtocolVersion,
		Commitment:         vssWire,
		EphemeralPublicKey: ephHex,
	})
	if err != nil {
		return nil, sessionerr.ErrTransport
	}

	peerCommit, err := wire.VSSCommitmentFromWire(resp.PeerCommit)
	if err != nil {
		return nil, err
	}
	if !peerCommit.VerifyPoK(r.PeerID()) {
		return nil, sessionerr.ErrVerificationFailed
	}
	peerEphemeral, err := curve.PointFromHex(resp.PeerEphemeralPublicKey)
	if err != nil {
		return nil, err
	}

	return &Round2{
		Round1:                 r,
		peerCommit:             peerCommit,
		peerEphemeralPublicKey: peerEphemeral,
	}, nil
}
