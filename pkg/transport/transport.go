// Package transport defines the Transport interface consumed by the engine
// (spec §6) — a request/response abstraction over framed JSON messages,
// keyed by logical operation name rather than URL. The core never
// implements this interface against a real network; callers supply one.
// Grounded on the `pkg/protocol.Handler`'s narrow surface in the teacher
// (`Listen`/`Accept`), narrowed here to synchronous request/response
// instead of N-party broadcast.
package transport

import (
	"context"

	"github.com/luxfi/nero-mpc-core/internal/wire"
)

// Transport is the external collaborator the engine drives every keygen
// and signing session through. Every method corresponds 1:1 to a row of
// spec §6's operation table. Implementations own retry policy, auth, and
// the wire encoding; the engine only ever sees the typed request/response
// pairs below.
type Transport interface {
	DKGInit(ctx context.Context, req wire.DKGInitRequest) (wire.DKGInitResponse, error)
	DKGCommit(ctx context.Context, req wire.DKGCommitRequest) (wire.DKGCommitResponse, error)
	DKGShare(ctx context.Context, req wire.DKGShareRequest) (wire.DKGShareResponse, error)

	SignInit(ctx context.Context, req wire.SignInitRequest) (wire.SignInitResponse, error)
	SignNonce(ctx context.Context, req wire.SignNonceRequest) (wire.SignNonceResponse, error)
	SignComplete(ctx context.Context, req wire.SignCompleteRequest) (wire.SignCompleteResponse, error)

	DKLSKeygenInit(ctx context.Context, req wire.DKLSKeygenInitRequest) (wire.DKLSKeygenInitResponse, error)
	DKLSKeygenCommitment(ctx context.Context, req wire.DKLSKeygenCommitmentRequest) (wire.DKLSKeygenCommitmentResponse, error)
	DKLSKeygenComplete(ctx context.Context, req wire.DKLSKeygenCompleteRequest) (wire.DKLSKeygenCompleteResponse, error)

	DKLSSigningInit(ctx context.Context, req wire.DKLSSigningInitRequest) (wire.DKLSSigningInitResponse, error)
	DKLSSigningNonce(ctx context.Context, req wire.DKLSSigningNonceRequest) (wire.DKLSSigningNonceResponse, error)
	DKLSSigningMtARound1(ctx context.Context, req wire.MtARound1Request) (wire.MtARound1Response, error)
	DKLSSigningMtARound2(ctx context.Context, req wire.MtARound2Request) (wire.MtARound2Response, error)
	DKLSSigningMtARound3(ctx context.Context, req wire.MtARound3Request) (wire.MtARound3Response, error)
	DKLSSigningPartial(ctx context.Context, req wire.DKLSSigningPartialRequest) (wire.DKLSSigningPartialResponse, error)

	Rotate(ctx context.Context, req wire.RotateRequest) (wire.RotateResponse, error)
}
