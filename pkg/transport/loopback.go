package transport

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/luxfi/nero-mpc-core/internal/wire"
	"github.com/luxfi/nero-mpc-core/pkg/address"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
)

// Hub is an in-process reference backend connecting exactly two Side
// instances, used by tests and the CLI demo in place of a real network
// service. It implements the symmetric-barrier model spec §6 describes:
// each method blocks until both parties have called it for the same
// session, then releases each caller with the other's payload. Where the
// operation needs genuine combination (the additive joint public key, a
// combined signature), the Hub performs it directly since it only ever
// sees the public material the engine itself would disclose to a real
// backend.
type Hub struct {
	mu        sync.Mutex
	slots     map[string]*slot
	jointKeys map[string]curve.Point // additive dkg.share: sessionID -> Y
}

type slot struct {
	req   any
	ready chan any
}

// NewLoopback constructs a fresh Hub and its two connected Sides.
func NewLoopback() (*Hub, Transport, Transport) {
	h := &Hub{
		slots:     make(map[string]*slot),
		jointKeys: make(map[string]curve.Point),
	}
	return h, &Side{hub: h}, &Side{hub: h}
}

func (h *Hub) rendezvous(ctx context.Context, key string, req any) (any, error) {
	h.mu.Lock()
	s, ok := h.slots[key]
	if !ok {
		s = &slot{req: req, ready: make(chan any, 1)}
		h.slots[key] = s
		h.mu.Unlock()
		select {
		case peer := <-s.ready:
			return peer, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	delete(h.slots, key)
	h.mu.Unlock()
	s.ready <- req
	return s.req, nil
}

func swap[T any](h *Hub, ctx context.Context, key string, req T) (T, error) {
	peerAny, err := h.rendezvous(ctx, key, req)
	if err != nil {
		var zero T
		return zero, err
	}
	return peerAny.(T), nil
}

// Side is one party's view of a Hub; it implements Transport.
type Side struct {
	hub *Hub
}

func (s *Side) DKGInit(ctx context.Context, req wire.DKGInitRequest) (wire.DKGInitResponse, error) {
	peer, err := swap(s.hub, ctx, "dkg.init|"+req.SessionID, req)
	if err != nil {
		return wire.DKGInitResponse{}, err
	}
	if err := s.hub.recordJointKey(req.SessionID, req.Commitment, peer.Commitment); err != nil {
		return wire.DKGInitResponse{}, err
	}
	return wire.DKGInitResponse{
		PeerCommit:             peer.Commitment,
		PeerEphemeralPublicKey: peer.EphemeralPublicKey,
	}, nil
}

func (s *Side) DKGCommit(ctx context.Context, req wire.DKGCommitRequest) (wire.DKGCommitResponse, error) {
	peer, err := swap(s.hub, ctx, "dkg.commit|"+req.SessionID, req)
	if err != nil {
		return wire.DKGCommitResponse{}, err
	}
	return wire.DKGCommitResponse{PeerShare: peer.Share}, nil
}

func (s *Side) DKGShare(ctx context.Context, req wire.DKGShareRequest) (wire.DKGShareResponse, error) {
	if _, err := swap(s.hub, ctx, "dkg.share|"+req.SessionID, req); err != nil {
		return wire.DKGShareResponse{}, err
	}
	s.hub.mu.Lock()
	joint, ok := s.hub.jointKeys[req.SessionID]
	s.hub.mu.Unlock()
	if !ok {
		return wire.DKGShareResponse{}, fmt.Errorf("transport: loopback: no joint key recorded for session %s", req.SessionID)
	}
	jointHex, err := joint.Hex()
	if err != nil {
		return wire.DKGShareResponse{}, err
	}
	addr, err := address.FromPoint(joint)
	if err != nil {
		return wire.DKGShareResponse{}, err
	}
	return wire.DKGShareResponse{JointPublicKey: jointHex, Address: addr}, nil
}

func (s *Side) SignInit(ctx context.Context, req wire.SignInitRequest) (wire.SignInitResponse, error) {
	peer, err := swap(s.hub, ctx, "sign.init|"+req.SessionID, req)
	if err != nil {
		return wire.SignInitResponse{}, err
	}
	return wire.SignInitResponse{PeerNonceCommit: peer.NonceCommit}, nil
}

func (s *Side) SignNonce(ctx context.Context, req wire.SignNonceRequest) (wire.SignNonceResponse, error) {
	peer, err := swap(s.hub, ctx, "sign.nonce|"+req.SessionID, req)
	if err != nil {
		return wire.SignNonceResponse{}, err
	}
	return wire.SignNonceResponse{PeerReveal: peer.Reveal}, nil
}

func (s *Side) SignComplete(ctx context.Context, req wire.SignCompleteRequest) (wire.SignCompleteResponse, error) {
	peer, err := swap(s.hub, ctx, "sign.complete|"+req.SessionID, req)
	if err != nil {
		return wire.SignCompleteResponse{}, err
	}

	// Each partial carries its own party's local nonce point E_i (spec
	// §4.G: "nonce_public=E_i"), not the combined R, so the backend sums
	// them the same way each engine does locally (round 2's R = E_self +
	// E_peer) before deriving r and v's parity from it.
	selfE, err := curve.PointFromHex(req.Partial.NoncePublic)
	if err != nil {
		return wire.SignCompleteResponse{}, err
	}
	peerE, err := curve.PointFromHex(peer.Partial.NoncePublic)
	if err != nil {
		return wire.SignCompleteResponse{}, err
	}
	combinedNonceHex, err := selfE.Add(peerE).Hex()
	if err != nil {
		return wire.SignCompleteResponse{}, err
	}

	resp, err := combineECDSA(req.Partial.Sigma, peer.Partial.Sigma, combinedNonceHex)
	if err != nil {
		return wire.SignCompleteResponse{}, err
	}
	resp.PeerPartial = peer.Partial
	return resp, nil
}

func (s *Side) DKLSKeygenInit(ctx context.Context, req wire.DKLSKeygenInitRequest) (wire.DKLSKeygenInitResponse, error) {
	peer, err := swap(s.hub, ctx, "dkls.keygen.init|"+req.SessionID, req)
	if err != nil {
		return wire.DKLSKeygenInitResponse{}, err
	}
	return wire.DKLSKeygenInitResponse{PeerCommitment: peer.Commitment}, nil
}

func (s *Side) DKLSKeygenCommitment(ctx context.Context, req wire.DKLSKeygenCommitmentRequest) (wire.DKLSKeygenCommitmentResponse, error) {
	peer, err := swap(s.hub, ctx, "dkls.keygen.commitment|"+req.SessionID, req)
	if err != nil {
		return wire.DKLSKeygenCommitmentResponse{}, err
	}
	return wire.DKLSKeygenCommitmentResponse{PeerPublicShare: peer.PublicShare, PeerProof: peer.Proof}, nil
}

func (s *Side) DKLSKeygenComplete(ctx context.Context, req wire.DKLSKeygenCompleteRequest) (wire.DKLSKeygenCompleteResponse, error) {
	peer, err := swap(s.hub, ctx, "dkls.keygen.complete|"+req.SessionID, req)
	if err != nil {
		return wire.DKLSKeygenCompleteResponse{}, err
	}
	return wire.DKLSKeygenCompleteResponse{JointPublicKey: peer.JointPublicKey, Address: peer.Address}, nil
}

func (s *Side) DKLSSigningInit(ctx context.Context, req wire.DKLSSigningInitRequest) (wire.DKLSSigningInitResponse, error) {
	peer, err := swap(s.hub, ctx, "dkls.signing.init|"+req.SessionID, req)
	if err != nil {
		return wire.DKLSSigningInitResponse{}, err
	}
	return wire.DKLSSigningInitResponse{PeerCommitment: peer.Commitment}, nil
}

func (s *Side) DKLSSigningNonce(ctx context.Context, req wire.DKLSSigningNonceRequest) (wire.DKLSSigningNonceResponse, error) {
	peer, err := swap(s.hub, ctx, "dkls.signing.nonce|"+req.SessionID, req)
	if err != nil {
		return wire.DKLSSigningNonceResponse{}, err
	}
	return wire.DKLSSigningNonceResponse{PeerNoncePoint: peer.NoncePoint}, nil
}

func (s *Side) DKLSSigningMtARound1(ctx context.Context, req wire.MtARound1Request) (wire.MtARound1Response, error) {
	peer, err := swap(s.hub, ctx, "mta.round1|"+req.SessionID, req)
	if err != nil {
		return wire.MtARound1Response{}, err
	}
	return wire.MtARound1Response{PeerMtAID: peer.MtAID, PeerSetup: peer.Setup}, nil
}

func (s *Side) DKLSSigningMtARound2(ctx context.Context, req wire.MtARound2Request) (wire.MtARound2Response, error) {
	peer, err := swap(s.hub, ctx, "mta.round2|"+req.SessionID, req)
	if err != nil {
		return wire.MtARound2Response{}, err
	}
	return wire.MtARound2Response{PeerChoice: peer.Choice}, nil
}

func (s *Side) DKLSSigningMtARound3(ctx context.Context, req wire.MtARound3Request) (wire.MtARound3Response, error) {
	peer, err := swap(s.hub, ctx, "mta.round3|"+req.SessionID, req)
	if err != nil {
		return wire.MtARound3Response{}, err
	}
	return wire.MtARound3Response{PeerCompletion: peer.Completion}, nil
}

func (s *Side) DKLSSigningPartial(ctx context.Context, req wire.DKLSSigningPartialRequest) (wire.DKLSSigningPartialResponse, error) {
	peer, err := swap(s.hub, ctx, "dkls.signing.partial|"+req.SessionID, req)
	if err != nil {
		return wire.DKLSSigningPartialResponse{}, err
	}
	resp, err := combineECDSA(req.S, peer.S, req.NoncePublic)
	if err != nil {
		return wire.DKLSSigningPartialResponse{}, err
	}
	return wire.DKLSSigningPartialResponse{R: resp.R, S: resp.S, V: resp.V, PeerS: peer.S}, nil
}

// Rotate exchanges rotation masks with no combination beyond the swap
// itself: the mask is never secret between the two legitimate parties, so
// there is nothing for the backend to compute or cross-check (spec
// Supplemented Features: share rotation keeps the joint key fixed while
// invalidating any previously-stored copy of either party's share).
func (s *Side) Rotate(ctx context.Context, req wire.RotateRequest) (wire.RotateResponse, error) {
	peer, err := swap(s.hub, ctx, "rotate|"+req.SessionID, req)
	if err != nil {
		return wire.RotateResponse{}, err
	}
	return wire.RotateResponse{PeerMask: peer.Mask}, nil
}

var _ Transport = (*Side)(nil)

// recordJointKey derives the additive joint public key Y = C_self[0] +
// C_peer[0] once both parties' round-1 VSS commitments are known, so
// dkg.share can return it without re-deriving anything secret.
func (h *Hub) recordJointKey(sessionID string, a, b wire.VSSCommitment) error {
	if len(a.Coefficients) == 0 || len(b.Coefficients) == 0 {
		return fmt.Errorf("transport: loopback: empty VSS commitment for session %s", sessionID)
	}
	pa, err := curve.PointFromHex(a.Coefficients[0])
	if err != nil {
		return err
	}
	pb, err := curve.PointFromHex(b.Coefficients[0])
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.jointKeys[sessionID] = pa.Add(pb)
	h.mu.Unlock()
	return nil
}

// combineECDSA sums two partial scalars sSelf+sPeer mod n, applies low-s
// normalization, and derives v from the shared combined-nonce point's
// parity (spec §4.G/§4.K's common combination-and-normalization step).
func combineECDSA(sSelfHex, sPeerHex, noncePublicHex string) (wire.SignCompleteResponse, error) {
	sSelf, err := curve.ScalarFromHex(sSelfHex)
	if err != nil {
		return wire.SignCompleteResponse{}, err
	}
	sPeer, err := curve.ScalarFromHex(sPeerHex)
	if err != nil {
		return wire.SignCompleteResponse{}, err
	}
	noncePublic, err := curve.PointFromHex(noncePublicHex)
	if err != nil {
		return wire.SignCompleteResponse{}, err
	}

	s := sSelf.Add(sPeer)
	v := 0
	if noncePublic.YIsOdd() {
		v = 1
	}
	if s.IsOverHalfOrder() {
		s = s.Negate()
		v ^= 1
	}
	r := noncePublic.XCoordScalar()

	rHex := r.Hex()
	sHex := s.Hex()
	full, err := packSignature(r, s, v)
	if err != nil {
		return wire.SignCompleteResponse{}, err
	}

	return wire.SignCompleteResponse{R: rHex, S: sHex, V: v, FullSignature: full}, nil
}

func packSignature(r, s curve.Scalar, v int) (string, error) {
	rBytes := r.Bytes()
	sBytes := s.Bytes()
	sig := make([]byte, 65)
	copy(sig[0:32], rBytes[:])
	copy(sig[32:64], sBytes[:])
	sig[64] = byte(v)
	return hex.EncodeToString(sig), nil
}
