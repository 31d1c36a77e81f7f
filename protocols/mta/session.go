package mta

import (
	"context"

	"github.com/luxfi/nero-mpc-core/internal/round"
	"github.com/luxfi/nero-mpc-core/internal/sessionerr"
	"github.com/luxfi/nero-mpc-core/internal/wire"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/transport"
)

// Result is the terminal output of one MtA exchange: this party's own
// additive share (alpha, as OT sender of a) and the peer's contribution it
// received (beta, as OT receiver of the peer's sender instance). The two
// numbers alpha and beta do not sum to the same product — each party's
// local (alpha + beta) is its own additive share of a product with a
// *different* cross term per spec §4.K's two concurrent MtA instances;
// callers combine these with the rest of the signing equation, not with
// each other.
type Result struct {
	Alpha curve.Scalar
	Beta  curve.Scalar
}

// Run drives one full MtA exchange over tr: this party contributes a as
// the value it multiplies into the OT sender instance it owns (identified
// by mtaID), and b as the OT receiver choice bits for the peer's
// instance. Three request/response round trips correspond to the three
// Chou-Orlandi messages per instance (spec §4.I).
func Run(ctx context.Context, h *round.Helper, tr transport.Transport, mtaID string, a, b curve.Scalar) (*Result, error) {
	senderState, setupMsgs, err := SenderSetupRound(a)
	if err != nil {
		return nil, err
	}

	ctx1, cancel1 := h.WithRoundDeadline(ctx)
	resp1, err := tr.DKLSSigningMtARound1(ctx1, wire.MtARound1Request{
		SessionID: h.SessionIDHex(),
		MtAID:     mtaID,
		Setup:     setupMsgs,
	})
	cancel1()
	if err != nil {
		return nil, sessionerr.ErrTransport
	}

	receiverState, choiceMsgs, err := ReceiverChooseRound(b, resp1.PeerSetup)
	if err != nil {
		return nil, err
	}

	ctx2, cancel2 := h.WithRoundDeadline(ctx)
	resp2, err := tr.DKLSSigningMtARound2(ctx2, wire.MtARound2Request{
		SessionID: h.SessionIDHex(),
		Choice:    choiceMsgs,
	})
	cancel2()
	if err != nil {
		return nil, sessionerr.ErrTransport
	}

	completionMsgs, err := SenderCompleteRound(senderState, resp2.PeerChoice)
	if err != nil {
		return nil, err
	}

	ctx3, cancel3 := h.WithRoundDeadline(ctx)
	resp3, err := tr.DKLSSigningMtARound3(ctx3, wire.MtARound3Request{
		SessionID:  h.SessionIDHex(),
		Completion: completionMsgs,
	})
	cancel3()
	if err != nil {
		return nil, sessionerr.ErrTransport
	}

	beta, err := ReceiverCompleteRound(receiverState, resp1.PeerSetup, resp3.PeerCompletion)
	if err != nil {
		return nil, err
	}

	return &Result{Alpha: senderState.Alpha(), Beta: beta}, nil
}
