package signing

import (
	"context"

	"github.com/luxfi/nero-mpc-core/pkg/keyshare"
	"github.com/luxfi/nero-mpc-core/pkg/transport"
)

// Run drives a full additive signing session end to end over messageHash.
func Run(ctx context.Context, selfID, peerID string, share keyshare.Additive, messageHash [32]byte, tr transport.Transport) (*Result, error) {
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
