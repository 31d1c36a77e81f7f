// Package replay provides deterministic session-replay fixtures for tests
// (spec §9: "allows deterministic replay in tests"). A Recorder wraps a
// live transport.Transport and captures every request/response pair as a
// CBOR-encoded Frame; a Player replays a recorded fixture back without a
// live peer. Grounded on pkg/protocol/handler.go's cbor.Marshal/Unmarshal
// use for wire content, narrowed from live wire transport to test-fixture
// encoding (JSON remains the wire format of spec §6; CBOR here is purely
// the on-disk fixture format).
package replay

import (
	"context"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/luxfi/nero-mpc-core/internal/wire"
	"github.com/luxfi/nero-mpc-core/pkg/transport"
)

// Frame is one recorded request/response exchange, tagged by the
// Transport method name that produced it.
type Frame struct {
	Method   string          `cbor:"method"`
	Request  cbor.RawMessage `cbor:"request"`
	Response cbor.RawMessage `cbor:"response"`
}

// Fixture is an ordered sequence of Frames forming one complete session.
type Fixture struct {
	Frames []Frame `cbor:"frames"`
}

// Marshal encodes a Fixture to its canonical CBOR byte form.
func Marshal(f Fixture) ([]byte, error) {
	return cbor.Marshal(f)
}

// Unmarshal decodes a Fixture from its CBOR byte form.
func Unmarshal(data []byte) (Fixture, error) {
	var f Fixture
	if err := cbor.Unmarshal(data, &f); err != nil {
		return Fixture{}, err
	}
	return f, nil
}

// Recorder wraps a live Transport, appending a Frame to Fixture for every
// call it intercepts.
type Recorder struct {
	inner   transport.Transport
	Fixture Fixture
}

// NewRecorder wraps inner for recording.
func NewRecorder(inner transport.Transport) *Recorder {
	return &Recorder{inner: inner}
}

func record[Req, Resp any](r *Recorder, method string, req Req, call func(Req) (Resp, error)) (Resp, error) {
	resp, err := call(req)
	if err != nil {
		var zero Resp
		return zero, err
	}
	reqBytes, mErr := cbor.Marshal(req)
	if mErr != nil {
		return resp, mErr
	}
	respBytes, mErr := cbor.Marshal(resp)
	if mErr != nil {
		return resp, mErr
	}
	r.Fixture.Frames = append(r.Fixture.Frames, Frame{
		Method:   method,
		Request:  reqBytes,
		Response: respBytes,
	})
	return resp, nil
}

func (r *Recorder) DKGInit(ctx context.Context, req wire.DKGInitRequest) (wire.DKGInitResponse, error) {
	return record(r, "DKGInit", req, func(req wire.DKGInitRequest) (wire.DKGInitResponse, error) {
		return r.inner.DKGInit(ctx, req)
	})
}

func (r *Recorder) DKGCommit(ctx context.Context, req wire.DKGCommitRequest) (wire.DKGCommitResponse, error) {
	return record(r, "DKGCommit", req, func(req wire.DKGCommitRequest) (wire.DKGCommitResponse, error) {
		return r.inner.DKGCommit(ctx, req)
	})
}

func (r *Recorder) DKGShare(ctx context.Context, req wire.DKGShareRequest) (wire.DKGShareResponse, error) {
	return record(r, "DKGShare", req, func(req wire.DKGShareRequest) (wire.DKGShareResponse, error) {
		return r.inner.DKGShare(ctx, req)
	})
}

func (r *Recorder) SignInit(ctx context.Context, req wire.SignInitRequest) (wire.SignInitResponse, error) {
	return record(r, "SignInit", req, func(req wire.SignInitRequest) (wire.SignInitResponse, error) {
		return r.inner.SignInit(ctx, req)
	})
}

func (r *Recorder) SignNonce(ctx context.Context, req wire.SignNonceRequest) (wire.SignNonceResponse, error) {
	return record(r, "SignNonce", req, func(req wire.SignNonceRequest) (wire.SignNonceResponse, error) {
		return r.inner.SignNonce(ctx, req)
	})
}

func (r *Recorder) SignComplete(ctx context.Context, req wire.SignCompleteRequest) (wire.SignCompleteResponse, error) {
	return record(r, "SignComplete", req, func(req wire.SignCompleteRequest) (wire.SignCompleteResponse, error) {
		return r.inner.SignComplete(ctx, req)
	})
}

func (r *Recorder) DKLSKeygenInit(ctx context.Context, req wire.DKLSKeygenInitRequest) (wire.DKLSKeygenInitResponse, error) {
	return record(r, "DKLSKeygenInit", req, func(req wire.DKLSKeygenInitRequest) (wire.DKLSKeygenInitResponse, error) {
		return r.inner.DKLSKeygenInit(ctx, req)
	})
}

func (r *Recorder) DKLSKeygenCommitment(ctx context.Context, req wire.DKLSKeygenCommitmentRequest) (wire.DKLSKeygenCommitmentResponse, error) {
	return record(r, "DKLSKeygenCommitment", req, func(req wire.DKLSKeygenCommitmentRequest) (wire.DKLSKeygenCommitmentResponse, error) {
		return r.inner.DKLSKeygenCommitment(ctx, req)
	})
}

func (r *Recorder) DKLSKeygenComplete(ctx context.Context, req wire.DKLSKeygenCompleteRequest) (wire.DKLSKeygenCompleteResponse, error) {
	return record(r, "DKLSKeygenComplete", req, func(req wire.DKLSKeygenCompleteRequest) (wire.DKLSKeygenCompleteResponse, error) {
		return r.inner.DKLSKeygenComplete(ctx, req)
	})
}

func (r *Recorder) DKLSSigningInit(ctx context.Context, req wire.DKLSSigningInitRequest) (wire.DKLSSigningInitResponse, error) {
	return record(r, "DKLSSigningInit", req, func(req wire.DKLSSigningInitRequest) (wire.DKLSSigningInitResponse, error) {
		return r.inner.DKLSSigningInit(ctx, req)
	})
}

func (r *Recorder) DKLSSigningNonce(ctx context.Context, req wire.DKLSSigningNonceRequest) (wire.DKLSSigningNonceResponse, error) {
	return record(r, "DKLSSigningNonce", req, func(req wire.DKLSSigningNonceRequest) (wire.DKLSSigningNonceResponse, error) {
		return r.inner.DKLSSigningNonce(ctx, req)
	})
}

func (r *Recorder) DKLSSigningMtARound1(ctx context.Context, req wire.MtARound1Request) (wire.MtARound1Response, error) {
	return record(r, "DKLSSigningMtARound1", req, func(req wire.MtARound1Request) (wire.MtARound1Response, error) {
		return r.inner.DKLSSigningMtARound1(ctx, req)
	})
}

func (r *Recorder) DKLSSigningMtARound2(ctx context.Context, req wire.MtARound2Request) (wire.MtARound2Response, error) {
	return record(r, "DKLSSigningMtARound2", req, func(req wire.MtARound2Request) (wire.MtARound2Response, error) {
		return r.inner.DKLSSigningMtARound2(ctx, req)
	})
}

func (r *Recorder) DKLSSigningMtARound3(ctx context.Context, req wire.MtARound3Request) (wire.MtARound3Response, error) {
	return record(r, "DKLSSigningMtARound3", req, func(req wire.MtARound3Request) (wire.MtARound3Response, error) {
		return r.inner.DKLSSigningMtARound3(ctx, req)
	})
}

func (r *Recorder) DKLSSigningPartial(ctx context.Context, req wire.DKLSSigningPartialRequest) (wire.DKLSSigningPartialResponse, error) {
	return record(r, "DKLSSigningPartial", req, func(req wire.DKLSSigningPartialRequest) (wire.DKLSSigningPartialResponse, error) {
		return r.inner.DKLSSigningPartial(ctx, req)
	})
}

func (r *Recorder) Rotate(ctx context.Context, req wire.RotateRequest) (wire.RotateResponse, error) {
	return record(r, "Rotate", req, func(req wire.RotateRequest) (wire.RotateResponse, error) {
		return r.inner.Rotate(ctx, req)
	})
}

var _ transport.Transport = (*Recorder)(nil)

// Player replays a recorded Fixture back to a single caller (one side of
// the original two-party session) without a live peer: each call pops the
// next Frame, checks the method name matches, and decodes its stored
// response. A method or ordering mismatch is a fixture-corruption error,
// never silently tolerated.
type Player struct {
	frames []Frame
	pos    int
}

// NewPlayer returns a Player over f's frames in order.
func NewPlayer(f Fixture) *Player {
	return &Player{frames: f.Frames}
}

func playNext[Resp any](p *Player, method string) (Resp, error) {
	var zero Resp
	if p.pos >= len(p.frames) {
		return zero, fmt.Errorf("replay: fixture exhausted, expected %s", method)
	}
	frame := p.frames[p.pos]
	p.pos++
	if frame.Method != method {
		return zero, fmt.Errorf("replay: fixture out of order, want %s got %s", method, frame.Method)
	}
	var resp Resp
	if err := cbor.Unmarshal(frame.Response, &resp); err != nil {
		return zero, err
	}
	return resp, nil
}

func (p *Player) DKGInit(context.Context, wire.DKGInitRequest) (wire.DKGInitResponse, error) {
	return playNext[wire.DKGInitResponse](p, "DKGInit")
}

func (p *Player) DKGCommit(context.Context, wire.DKGCommitRequest) (wire.DKGCommitResponse, error) {
	return playNext[wire.DKGCommitResponse](p, "DKGCommit")
}

func (p *Player) DKGShare(context.Context, wire.DKGShareRequest) (wire.DKGShareResponse, error) {
	return playNext[wire.DKGShareResponse](p, "DKGShare")
}

func (p *Player) SignInit(context.Context, wire.SignInitRequest) (wire.SignInitResponse, error) {
	return playNext[wire.SignInitResponse](p, "SignInit")
}

func (p *Player) SignNonce(context.Context, wire.SignNonceRequest) (wire.SignNonceResponse, error) {
	return playNext[wire.SignNonceResponse](p, "SignNonce")
}

func (p *Player) SignComplete(context.Context, wire.SignCompleteRequest) (wire.SignCompleteResponse, error) {
	return playNext[wire.SignCompleteResponse](p, "SignComplete")
}

func (p *Player) DKLSKeygenInit(context.Context, wire.DKLSKeygenInitRequest) (wire.DKLSKeygenInitResponse, error) {
	return playNext[wire.DKLSKeygenInitResponse](p, "DKLSKeygenInit")
}

func (p *Player) DKLSKeygenCommitment(context.Context, wire.DKLSKeygenCommitmentRequest) (wire.DKLSKeygenCommitmentResponse, error) {
	return playNext[wire.DKLSKeygenCommitmentResponse](p, "DKLSKeygenCommitment")
}

func (p *Player) DKLSKeygenComplete(context.Context, wire.DKLSKeygenCompleteRequest) (wire.DKLSKeygenCompleteResponse, error) {
	return playNext[wire.DKLSKeygenCompleteResponse](p, "DKLSKeygenComplete")
}

func (p *Player) DKLSSigningInit(context.Context, wire.DKLSSigningInitRequest) (wire.DKLSSigningInitResponse, error) {
	return playNext[wire.DKLSSigningInitResponse](p, "DKLSSigningInit")
}

func (p *Player) DKLSSigningNonce(context.Context, wire.DKLSSigningNonceRequest) (wire.DKLSSigningNonceResponse, error) {
	return playNext[wire.DKLSSigningNonceResponse](p, "DKLSSigningNonce")
}

func (p *Player) DKLSSigningMtARound1(context.Context, wire.MtARound1Request) (wire.MtARound1Response, error) {
	return playNext[wire.MtARound1Response](p, "DKLSSigningMtARound1")
}

func (p *Player) DKLSSigningMtARound2(context.Context, wire.MtARound2Request) (wire.MtARound2Response, error) {
	return playNext[wire.MtARound2Response](p, "DKLSSigningMtARound2")
}

func (p *Player) DKLSSigningMtARound3(context.Context, wire.MtARound3Request) (wire.MtARound3Response, error) {
	return playNext[wire.MtARound3Response](p, "DKLSSigningMtARound3")
}

func (p *Player) DKLSSigningPartial(context.Context, wire.DKLSSigningPartialRequest) (wire.DKLSSigningPartialResponse, error) {
	return playNext[wire.DKLSSigningPartialResponse](p, "DKLSSigningPartial")
}

func (p *Player) Rotate(context.Context, wire.RotateRequest) (wire.RotateResponse, error) {
	return playNext[wire.RotateResponse](p, "Rotate")
}

var _ transport.Transport = (*Player)(nil)
