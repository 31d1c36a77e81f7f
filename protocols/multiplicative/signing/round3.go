package signing

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/luxfi/nero-mpc-core/internal/round"
	"github.com/luxfi/nero-mpc-core/internal/sessionerr"
	"github.com/luxfi/nero-mpc-core/internal/wire"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/sigverify"
	"github.com/luxfi/nero-mpc-core/protocols/mta"
)

// Round3 drives the two parallel MtA instances of Phase 2 and the
// partial-signature combination of Phase 3.
type Round3 struct {
	*Round2

	combinedNonce curve.Point
	sigR          curve.Scalar
	kInv          curve.Scalar
}

// Number identifies this round.
func (r *Round3) Number() round.Number { return 3 }

// Result is the terminal output of a completed multiplicative signing
// session: the combined (r, s, v) ready for on-chain or wallet use.
type Result struct {
	R string
	S string
	V int
}

// Finalize runs MtA1 (converting k_A^-1, k_B^-1 into additive shares of
// (k_A*k_B)^-1) and MtA2 (converting sk_A*k_A^-1, sk_B*k_B^-1 into
// additive shares of sk*(k_A*k_B)^-1) in parallel, combines the local
// partial signature, and submits it via dkls.signing.partial (spec §4.K
// Phases 2-3).
//
// Both MtA calls use the same symmetric (a=b=ownValue) convention: each
// party contributes its own scalar as both the sender-role input and the
// receiver-role input, so the exchange yields two independent additive
// decompositions of the same commutative product. Both parties pick the
// SAME decomposition — Alpha for the lexicographically-first party
// (index 1), Beta for the other — so the local shares sum to the
// intended cross term rather than to an arbitrary, inconsistently-paired
// one (see protocols/mta.Result's documented asymmetry).
func (r *Round3) Finalize(ctx context.Context) (*Result, error) {
	selfIdx, _ := r.PartyIndices()

	secret, err := r.share.SecretScalar()
	if err != nil {
		return nil, err
	}
	skKInv := secret.Mul(r.kInv)

	var deltaResult, muResult *mta.Result
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		res, err := mta.Run(gctx, r.Helper.SubSession("delta"), r.transport, "delta", r.kInv, r.kInv)
		if err != nil {
			return err
		}
		deltaResult = res
		return nil
	})
	group.Go(func() error {
		res, err := mta.Run(gctx, r.Helper.SubSession("mu"), r.transport, "mu", skKInv, skKInv)
		if err != nil {
			return err
		}
		muResult = res
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var tDelta, tMu curve.Scalar
	if selfIdx == 1 {
		tDelta, tMu = deltaResult.Alpha, muResult.Alpha
	} else {
		tDelta, tMu = deltaResult.Beta, muResult.Beta
	}

	messageScalar := curve.ScalarFromBytesModN(r.messageHash[:])
	sSelf := messageScalar.Mul(tDelta).Add(r.sigR.Mul(tMu))

	ctx, cancel := r.WithRoundDeadline(ctx)
	defer cancel()

	noncePublicHex, err := r.combinedNonce.Hex()
	if err != nil {
		return nil, err
	}

	resp, err := r.transport.DKLSSigningPartial(ctx, wire.DKLSSigningPartialRequest{
		SessionID:   r.SessionIDHex(),
		S:           sSelf.Hex(),
		NoncePublic: noncePublicHex,
	})
	if err != nil {
		return nil, sessionerr.ErrTransport
	}

	// The MtA outputs feeding peerS are secret-shared and never disclosed,
	// so no per-peer algebraic identity analogous to the additive protocol's
	// is available here: peerS alone, without the other party's k and sk
	// shares, proves nothing. The only robust check is a range sanity on
	// what the peer claims to have contributed, plus the final combined
	// signature against the joint public key below.
	peerS, err := curve.ScalarFromHex(resp.PeerS)
	if err != nil || peerS.IsZero() {
		return nil, sessionerr.ErrVerificationFailed
	}

	if resp.R != r.sigR.Hex() {
		return nil, sessionerr.ErrProtocolViolation
	}

	combinedR, err := curve.ScalarFromHex(resp.R)
	if err != nil {
		return nil, err
	}
	combinedS, err := curve.ScalarFromHex(resp.S)
	if err != nil {
		return nil, err
	}
	joint, err := r.share.JointPublicPoint()
	if err != nil {
		return nil, err
	}
	if err := sigverify.Verify(joint, r.messageHash, combinedR, combinedS, resp.V); err != nil {
		return nil, sessionerr.ErrVerificationFailed
	}

	return &Result{R: resp.R, S: resp.S, V: resp.V}, nil
}
