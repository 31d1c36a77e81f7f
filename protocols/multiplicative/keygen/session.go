package keygen

import (
	"context"

	"github.com/luxfi/nero-mpc-core/pkg/transport"
)

// Run drives the full three-round multiplicative DKG session to completion,
// producing a keyshare.Multiplicative whose joint public key is the product
// sk_self*sk_peer*G (spec §4.J).
func Run(ctx context.Context, selfID, peerID string, tr transport.Transport) (*Result, error) {
	r1, err := NewSession(selfID, peerID, tr)
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
