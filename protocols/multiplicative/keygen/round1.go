// Package keygen implements the multiplicative (DKLS-style) two-party DKG
// engine of spec §4.J: a three-message commit/reveal/finalize exchange
// whose joint private key is the *product* sk_A * sk_B mod n rather than a
// sum, computed without either party ever learning the other's secret via
// the Diffie-Hellman-style combination sk_self * P_peer = sk_self*sk_peer*G.
// Grounded on the same round/Helper/Finalize-chaining idiom used
// throughout the additive engine, generalized to the product relation
// spec §4.J's multiplicative signing engine needs.
package keygen

import (
	"context"

	"github.com/luxfi/nero-mpc-core/internal/round"
	"github.com/luxfi/nero-mpc-core/internal/sessionerr"
	"github.com/luxfi/nero-mpc-core/internal/wire"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/transport"
	"github.com/luxfi/nero-mpc-core/pkg/xcrypto"
)

// Round1 holds the freshly-generated secret share and its commitment hash.
type Round1 struct {
	*round.Helper
	transport transport.Transport

	secret       curve.Scalar
	publicShare  curve.Point
	commitDigest [32]byte
}

// NewSession generates a fresh secret share sk_self and commits to
// H(compress(sk_self*G)) without revealing the point itself yet
// (spec §4.J Round 1: "commit c_i = H(compress(P_i))").
func NewSession(selfID, peerID string, tr transport.Transport) (*Round1, error) {
	sessionID, err := round.NewSessionID("multiplicative-dkg", selfID, peerID)
	if err != nil {
		return nil, err
	}
	secret, err := curve.RandomScalar()
	if err != nil {
		return nil, err
	}
	publicShare := secret.ActOnBase()
	publicShareBytes, err := publicShare.MarshalBinary()
	if err != nil {
		return nil, err
	}
	digest := xcrypto.SHA256(publicShareBytes)

	return &Round1{
		Helper:       round.NewHelper(selfID, peerID, sessionID, 2, round.DefaultRoundTimeout),
		transport:    tr,
		secret:       secret,
		publicShare:  publicShare,
		commitDigest: digest,
	}, nil
}

// Number identifies this round.
func (r *Round1) Number() round.Number { return 1 }

// Finalize exchanges commitment hashes via dkls.keygen.init.
func (r *Round1) Finalize(ctx context.Context) (*Round2, error) {
	ctx, cancel := r.WithRoundDeadline(ctx)
	defer cancel()

	resp, err := r.transport.DKLSKeygenInit(ctx, wire.DKLSKeygenInitRequest{
		SessionID:  r.SessionIDHex(),
		Commitment: hexEncode(r.commitDigest[:]),
	})
	if err != nil {
		return nil, sessionerr.ErrTransport
	}
	peerCommitment, err := hexDecode(resp.PeerCommitment)
	if err != nil {
		return nil, err
	}

	return &Round2{
		Round1:         r,
		peerCommitment: peerCommitment,
	}, nil
}

func challengeSelf(partyID string, publicShare, r curve.Point) curve.Scalar {
	pBytes, _ := publicShare.MarshalBinary()
	rBytes, _ := r.MarshalBinary()
	digest := xcrypto.SHA256([]byte(partyID), pBytes, rBytes)
	return curve.ScalarFromBytesModN(digest[:])
}
