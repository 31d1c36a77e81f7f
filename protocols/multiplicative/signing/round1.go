// Package signing implements the multiplicative (DKLS-style) two-party
// signing engine of spec §4.K: a hash-only nonce commit-reveal, two
// parallel MtA instances converting the multiplicative relation k_A*k_B
// into additive shares of (k_A*k_B)^-1 and sk*(k_A*k_B)^-1, and a final
// partial-signature combination. Grounded on the same round/Helper/
// Finalize-chaining idiom as the additive signing engine, generalized to
// the product-nonce relation and the MtA-based cross-term conversion the
// multiplicative protocol needs in place of raw nonce-scalar disclosure.
package signing

import (
	"context"
	"encoding/hex"

	"github.com/luxfi/nero-mpc-core/internal/round"
	"github.com/luxfi/nero-mpc-core/internal/sessionerr"
	"github.com/luxfi/nero-mpc-core/internal/wire"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/keyshare"
	"github.com/luxfi/nero-mpc-core/pkg/transport"
	"github.com/luxfi/nero-mpc-core/pkg/xcrypto"
)

// Round1 holds the freshly-drawn nonce scalar and its hash commitment.
type Round1 struct {
	*round.Helper
	transport transport.Transport

	share       keyshare.Multiplicative
	messageHash [32]byte

	k            curve.Scalar
	nonce        curve.Point
	commitDigest [32]byte
}

// NewSession draws a fresh nonce k_i and commits to H(compress(k_i*G))
// without revealing the point yet (spec §4.K Phase 1).
func NewSession(selfID, peerID string, share keyshare.Multiplicative, messageHash [32]byte, tr transport.Transport) (*Round1, error) {
	sessionID, err := round.NewSessionID("dkls-sign", selfID, peerID, messageHash[:])
	if err != nil {
		return nil, err
	}
	k, err := curve.RandomScalar()
	if err != nil {
		return nil, err
	}
	nonce := k.ActOnBase()
	nonceBytes, err := nonce.MarshalBinary()
	if err != nil {
		return nil, err
	}
	digest := xcrypto.SHA256(nonceBytes)

	return &Round1{
		Helper:       round.NewHelper(selfID, peerID, sessionID, 2, round.DefaultRoundTimeout),
		transport:    tr,
		share:        share,
		messageHash:  messageHash,
		k:            k,
		nonce:        nonce,
		commitDigest: digest,
	}, nil
}

// Number identifies this round.
func (r *Round1) Number() round.Number { return 1 }

// Finalize exchanges nonce commitments via dkls.signing.init.
func (r *Round1) Finalize(ctx context.Context) (*Round2, error) {
	ctx, cancel := r.WithRoundDeadline(ctx)
	defer cancel()

	resp, err := r.transport.DKLSSigningInit(ctx, wire.DKLSSigningInitRequest{
		SessionID:   r.SessionIDHex(),
		MessageHash: hex.EncodeToString(r.messageHash[:]),
		Commitment:  hex.EncodeToString(r.commitDigest[:]),
	})
	if err != nil {
		return nil, sessionerr.ErrTransport
	}
	peerCommitment, err := hex.DecodeString(resp.PeerCommitment)
	if err != nil {
		return nil, err
	}

	return &Round2{
		Round1:         r,
		peerCommitment: peerCommitment,
	}, nil
}
