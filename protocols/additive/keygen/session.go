package keygen

import (
	"context"

	"github.com/luxfi/nero-mpc-core/pkg/transport"
)

// Run drives a full additive DKG session end to end: NewSession deals the
// round-1 state, and Run chains Round1 -> Round2 -> Round3 -> Result,
// propagating the first error encountered (spec §5: "any verification
// failure or transport error aborts the whole session").
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
