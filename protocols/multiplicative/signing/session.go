package signing

import (
	"context"

	"github.com/luxfi/nero-mpc-core/pkg/keyshare"
	"github.com/luxfi/nero-mpc-core/pkg/transport"
)

// Run drives the full three-round multiplicative signing session to
// completion, producing the combined (r, s, v) signature over messageHash
// (spec §4.K).
func Run(ctx context.Context, selfID, peerID string, share keyshare.Multiplicative, messageHash [32]byte, tr transport.Transport) (*Result, error) {
	r1, err := NewSession(selfID, peerID, share, messageHash, tr)
	if err != nil {
		return nil, err
	}
	r2, err := r1.Finalize(ctx)
	if err != nil {
		return nil, err
	}
	r3, err := r2.Finalize(ctx)
	if err != nil {
		return nil, err
	}
	return r3.Finalize(ctx)
}
