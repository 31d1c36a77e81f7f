package round

import (
	"github.com/zeebo/blake3"
)

const sessionIDContext = "NERO_MPC_SESSION_ID_V1"

// NewSessionID derives a session identifier binding a protocol tag (e.g.
// "additive-dkg", "dkls-sign"), the two party IDs, and any caller-supplied
// extra material (e.g. a signing session's message hash) via
// blake3.DeriveKey. Both parties call this independently with no prior
// handshake, so it must be reproducible by both sides without coordination:
// it is deliberately NOT randomized, and the two party IDs are sorted
// before hashing so self/peer ordering doesn't change the result. This
// identifier is echoed in every round of a session and in all four MtA
// messages of spec §4.I; a mismatch on receipt is a protocol violation,
// never silently ignored.
func NewSessionID(protocolTag, selfID, peerID string, extra ...[]byte) ([]byte, error) {
	lo, hi := selfID, peerID
	if hi < lo {
		lo, hi = hi, lo
	}
	keyMaterial := []byte(protocolTag + "|" + lo + "|" + hi)
	for _, e := range extra {
		keyMaterial = append(keyMaterial, '|')
		keyMaterial = append(keyMaterial, e...)
	}

	out := make([]byte, 32)
	blake3.DeriveKey(sessionIDContext, keyMaterial, out)
	return out, nil
}
