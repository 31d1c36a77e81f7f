// Package round provides the per-session state-machine scaffolding shared
// by all four protocol engines: a round-number type, a Helper embedding the
// session's fixed parameters, and the session-identifier derivation that
// binds every round and every MtA message together (spec §4.I). Adapted
// from the `*round.Helper`-embedding idiom used throughout the teacher's
// protocols/lss/** round structs, narrowed from an N-party broadcast model
// to the spec's strict 2-party request/response model (§5: suspension only
// at Transport.send/recv).
package round

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Number identifies a round within a session (1-indexed, matching the
// teacher's round.Number usage).
type Number int

// DefaultRoundTimeout is the per-round wall-clock timeout spec §5 mandates
// a default for ("A per-round wall-clock timeout is configurable (default
// 30 s)").
const DefaultRoundTimeout = 30 * time.Second

// Helper carries the fixed parameters of one session: who the two parties
// are, the session identifier binding every message, and the round
// deadline. It is embedded as the first field of every round struct, the
// way protocols/lss/keygen/round1.go embeds *round.Helper.
type Helper struct {
	self      string
	peer      string
	sessionID []byte
	threshold int
	timeout   time.Duration
}

// NewHelper constructs a Helper for a 2-party session between self and peer.
func NewHelper(self, peer string, sessionID []byte, threshold int, timeout time.Duration) *Helper {
	if timeout <= 0 {
		timeout = DefaultRoundTimeout
	}
	return &Helper{self: self, peer: peer, sessionID: sessionID, threshold: threshold, timeout: timeout}
}

// SelfID returns this party's identifier.
func (h *Helper) SelfID() string { return h.self }

// PeerID returns the counterparty's identifier.
func (h *Helper) PeerID() string { return h.peer }

// SessionID returns the binding session identifier for this session.
func (h *Helper) SessionID() []byte { return h.sessionID }

// SessionIDHex returns the wire (hex-string) form of the session identifier.
func (h *Helper) SessionIDHex() string { return hex.EncodeToString(h.sessionID) }

// PartyIndices returns the (self, peer) Shamir x-coordinates for this
// session, deterministically derived from the lexicographic order of the
// two party identifiers so both ends agree without a coordination round
// (spec §3: "party_id" is opaque; x-coordinates are assigned out of band).
func (h *Helper) PartyIndices() (self, peer int) {
	if h.self < h.peer {
		return 1, 2
	}
	return 2, 1
}

// Threshold returns the scheme threshold (always 2 for this engine, spec
// §1: "the protocol is specified as exactly two parties with threshold
// two").
func (h *Helper) Threshold() int { return h.threshold }

// N returns the total party count (always 2).
func (h *Helper) N() int { return 2 }

// RoundTimeout returns the configured per-round wall-clock timeout.
func (h *Helper) RoundTimeout() time.Duration { return h.timeout }

// WithRoundDeadline returns a derived context bounded by the round timeout,
// and its cancel function. Expiry of the returned context is the sole
// trigger for the round-timeout abort path of spec §5.
func (h *Helper) WithRoundDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.timeout)
}

// SubSession derives a child Helper bound to a sub-session identifier
// deterministically mixed from this Helper's session ID and tag, so both
// parties agree on a fresh, disambiguating SessionID without a
// coordination round. Used to run multiple independent sub-exchanges
// (e.g. the two concurrent MtA instances of spec §4.K Phase 2) under one
// parent session without their wire messages colliding.
func (h *Helper) SubSession(tag string) *Helper {
	digest := sha256.Sum256(append(append([]byte{}, h.sessionID...), []byte("|"+tag)...))
	return &Helper{
		self:      h.self,
		peer:      h.peer,
		sessionID: digest[:],
		threshold: h.threshold,
		timeout:   h.timeout,
	}
}

// Session is implemented by every protocol's terminal result-bearing round,
// mirroring round.Session in the teacher pack (keygen/round3.go's
// `r.ResultRound(cfg)`).
type Session interface {
	Number() Number
}
