// Package wire defines the JSON request/response payloads exchanged with
// the backend over the Transport operations enumerated in spec §6. Parsing
// happens exclusively at this boundary; the cryptographic core (protocols/*)
// never touches an untyped JSON value, per spec §9's "Dynamic typing of
// message payloads" design note — every message kind here is a concrete,
// statically-typed Go struct.
package wire

// SchnorrProof is the wire form of commitment.SchnorrProof.
type SchnorrProof struct {
	R string `json:"r"`
	S string `json:"s"`
}

// TwoWitnessProof is the wire form of commitment.TwoWitnessProof.
type TwoWitnessProof struct {
	R1 string `json:"r1"`
	R2 string `json:"r2"`
	S1 string `json:"s1"`
	S2 string `json:"s2"`
}

// VSSCommitment is the wire form of commitment.VSSCommitment.
type VSSCommitment struct {
	Coefficients []string     `json:"coefficients"`
	PoK          SchnorrProof `json:"pok"`
}

// EncryptedShare is the wire form of sharechannel.EncryptedShare.
type EncryptedShare struct {
	From               string `json:"from"`
	To                 string `json:"to"`
	EphemeralPublicKey string `json:"ephemeralPublicKey"`
	Ciphertext         string `json:"ciphertext"`
	Nonce              string `json:"nonce"`
	Tag                string `json:"tag"`
}

// --- dkg.init ---

// DKGInitRequest submits the local VSS commitment and ephemeral public key
// and begins an additive-DKG session. The backend barriers on SessionID:
// it blocks until both parties have called dkg.init, then releases each
// with the other's payload (spec §6 Round 1 exchange).
type DKGInitRequest struct {
	SessionID          string        `json:"sessionId"`
	ProtocolVersion    string        `json:"protocolVersion"`
	Commitment         VSSCommitment `json:"commitment"`
	EphemeralPublicKey string        `json:"ephemeralPublicKey"`
}

// DKGInitResponse returns the peer's round-1 broadcast: its VSS commitment
// and ephemeral public key.
type DKGInitResponse struct {
	PeerCommit             VSSCommitment `json:"peerCommitment"`
	PeerEphemeralPublicKey string        `json:"peerEphemeralPublicKey"`
}

// --- dkg.commit ---

// DKGCommitRequest submits the local encrypted share for the peer,
// encrypted under the ephemeral keys exchanged in dkg.init (spec §6
// Round 2: "Submit encrypted share").
type DKGCommitRequest struct {
	SessionID string         `json:"sessionId"`
	Share     EncryptedShare `json:"share"`
}

// DKGCommitResponse returns the peer's encrypted share directed to us.
type DKGCommitResponse struct {
	PeerShare EncryptedShare `json:"peerShare"`
}

// --- dkg.share ---

// DKGShareRequest is the round-3 finalize signal; both shares have already
// been exchanged via dkg.commit, so this call carries no payload beyond the
// session identifier.
type DKGShareRequest struct {
	SessionID string `json:"sessionId"`
}

// DKGShareResponse carries the finalized joint public key and derived
// Ethereum address.
type DKGShareResponse struct {
	JointPublicKey string `json:"jointPublicKey"`
	Address        string `json:"address"`
}

// --- sign.init (additive) ---

// NonceCommit is the wire form of the additive nonce commitment
// (D, E, two-witness proof).
type NonceCommit struct {
	D     string          `json:"d"`
	E     string          `json:"e"`
	Proof TwoWitnessProof `json:"proof"`
}

// SignInitRequest begins an additive signing session for a message hash,
// carrying the local nonce commitment.
type SignInitRequest struct {
	SessionID   string      `json:"sessionId"`
	MessageHash string      `json:"messageHash"`
	NonceCommit NonceCommit `json:"nonceCommit"`
}

// SignInitResponse returns the peer's nonce commitment.
type SignInitResponse struct {
	PeerNonceCommit NonceCommit `json:"peerNonceCommit"`
}

// --- sign.nonce ---

// NonceReveal carries the raw nonce scalars committed to in sign.init, so
// both parties can verify them against the earlier commitment points and
// derive the combined nonce (spec §4.G Round 2: "reveal gamma, k; verify
// against D, E; compute combined k = k_self + k_peer, r = x(E_self+E_peer)").
type NonceReveal struct {
	Gamma string `json:"gamma"`
	K     string `json:"k"`
}

// SignNonceRequest submits the local nonce reveal.
type SignNonceRequest struct {
	SessionID string      `json:"sessionId"`
	Reveal    NonceReveal `json:"reveal"`
}

// SignNonceResponse returns the peer's nonce reveal.
type SignNonceResponse struct {
	PeerReveal NonceReveal `json:"peerReveal"`
}

// PartialSignature is the wire form of an additive partial signature.
type PartialSignature struct {
	PartyID     string `json:"partyId"`
	Sigma       string `json:"sigma"`
	PublicShare string `json:"publicShare"`
	NoncePublic string `json:"noncePublic"`
}

// --- sign.complete ---

// SignCompleteRequest submits the local partial signature.
type SignCompleteRequest struct {
	SessionID string           `json:"sessionId"`
	Partial   PartialSignature `json:"partial"`
}

// SignCompleteResponse carries the combined (r, s, v), the 65-byte packed
// signature, and the peer's raw partial so the caller can independently
// verify it before trusting the combination (spec §4.G "Verify peer
// partial").
type SignCompleteResponse struct {
	R             string           `json:"r"`
	S             string           `json:"s"`
	V             int              `json:"v"`
	FullSignature string           `json:"fullSignature"`
	PeerPartial   PartialSignature `json:"peerPartial"`
}

// --- dkls.keygen.* (multiplicative DKG) ---

// DKLSKeygenInitRequest submits the local commitment c_i = H(compress(P_i)).
type DKLSKeygenInitRequest struct {
	SessionID  string `json:"sessionId"`
	Commitment string `json:"commitment"`
}

// DKLSKeygenInitResponse returns the peer's commitment.
type DKLSKeygenInitResponse struct {
	PeerCommitment string `json:"peerCommitment"`
}

// DKLSKeygenCommitmentRequest reveals the local public share and its PoK.
type DKLSKeygenCommitmentRequest struct {
	SessionID   string       `json:"sessionId"`
	PublicShare string       `json:"publicShare"`
	Proof       SchnorrProof `json:"proof"`
}

// DKLSKeygenCommitmentResponse reveals the peer's public share and PoK.
type DKLSKeygenCommitmentResponse struct {
	PeerPublicShare string       `json:"peerPublicShare"`
	PeerProof       SchnorrProof `json:"peerProof"`
}

// DKLSKeygenCompleteRequest finalizes bookkeeping after local verification,
// carrying this party's independently-computed joint public key and
// address: unlike the additive protocol's joint key (a sum of public
// Feldman commitments the backend can recompute on its own), the DKLS
// joint key sk_self*P_peer requires a secret scalar, so each side must
// submit its own result for the backend to relay and cross-check rather
// than derive.
type DKLSKeygenCompleteRequest struct {
	SessionID      string `json:"sessionId"`
	JointPublicKey string `json:"jointPublicKey"`
	Address        string `json:"address"`
}

// DKLSKeygenCompleteResponse relays the peer's independently-computed
// joint public key and address; by DKLS's commutativity invariant these
// must equal the caller's own, and a mismatch is a protocol violation.
type DKLSKeygenCompleteResponse struct {
	JointPublicKey string `json:"jointPublicKey"`
	Address        string `json:"address"`
}

// --- dkls.signing.* (multiplicative signing) ---

// DKLSSigningInitRequest submits the local nonce commitment c_i = H(k_i*G).
type DKLSSigningInitRequest struct {
	SessionID   string `json:"sessionId"`
	MessageHash string `json:"messageHash"`
	Commitment  string `json:"commitment"`
}

// DKLSSigningInitResponse returns the peer's nonce commitment.
type DKLSSigningInitResponse struct {
	PeerCommitment string `json:"peerCommitment"`
}

// DKLSSigningNonceRequest reveals the local nonce point k_i*G.
type DKLSSigningNonceRequest struct {
	SessionID string `json:"sessionId"`
	NoncePoint string `json:"noncePoint"`
}

// DKLSSigningNonceResponse reveals the peer's nonce point.
type DKLSSigningNonceResponse struct {
	PeerNoncePoint string `json:"peerNoncePoint"`
}

// OTMessage is one message of a batched-COT exchange (§4.H): for each of
// the 256 bit positions, the sender's setup point, the receiver's chosen
// point, or the sender's sealed correlated pair, indexed by bit position.
type OTMessage struct {
	BitIndex int    `json:"bitIndex"`
	A        string `json:"a,omitempty"`
	B        string `json:"b,omitempty"`
	Enc0     string `json:"enc0,omitempty"`
	Enc1     string `json:"enc1,omitempty"`
}

// Each party runs exactly one MtA instance as OT sender (keyed by its own
// MtAID) and is the OT receiver of its counterparty's instance. Three
// round trips are the minimum Chou-Orlandi needs per instance (setup,
// choice, completion); running both parties' instances concurrently over
// the same three calls is spec §4.K Phase 2's "two MtA instances in
// parallel" (§4.I: "4-round choreography" counting the final ack).

// MtARound1Request submits this party's own batched OT sender setup.
type MtARound1Request struct {
	SessionID string      `json:"sessionId"`
	MtAID     string      `json:"mtaId"`
	Setup     []OTMessage `json:"setup"`
}

// MtARound1Response returns the peer's sender setup, for the instance
// where this party is the OT receiver.
type MtARound1Response struct {
	PeerMtAID string      `json:"peerMtaId"`
	PeerSetup []OTMessage `json:"peerSetup"`
}

// MtARound2Request submits this party's OT receiver choice, computed
// against the peer setup returned by MtARound1.
type MtARound2Request struct {
	SessionID string      `json:"sessionId"`
	Choice    []OTMessage `json:"choice"`
}

// MtARound2Response returns the peer's receiver choice for this party's
// own sender instance.
type MtARound2Response struct {
	PeerChoice []OTMessage `json:"peerChoice"`
}

// MtARound3Request submits this party's sealed correlated pairs, computed
// against the peer choice returned by MtARound2.
type MtARound3Request struct {
	SessionID  string      `json:"sessionId"`
	Completion []OTMessage `json:"completion"`
}

// MtARound3Response returns the peer's sealed correlated pairs for the
// instance where this party is the OT receiver, completing both parties'
// additive shares.
type MtARound3Response struct {
	PeerCompletion []OTMessage `json:"peerCompletion"`
}

// DKLSSigningPartialRequest submits the local partial s_i, plus the full
// combined-nonce point so the backend can derive v's parity bit and
// cross-check r without itself knowing either party's nonce scalar
// (mirroring PartialSignature.NoncePublic in the additive protocol).
type DKLSSigningPartialRequest struct {
	SessionID   string `json:"sessionId"`
	S           string `json:"s"`
	NoncePublic string `json:"noncePublic"`
}

// DKLSSigningPartialResponse carries the combined (r, s, v) and the peer's
// raw partial s_j for the caller's pre-combination sanity checks (spec
// §4.K: "any off-curve point, out-of-range scalar... aborts the session").
type DKLSSigningPartialResponse struct {
	R     string `json:"r"`
	S     string `json:"s"`
	V     int    `json:"v"`
	PeerS string `json:"peerS"`
}

// --- rotate (share rotation, additive and multiplicative) ---

// RotateRequest submits this party's rotation mask: an additive delta for
// the additive protocol's share, a multiplicative factor for DKLS's.
// Unlike the commitment-then-reveal exchanges elsewhere, the mask needs no
// hiding: rotation's correctness (the joint key is invariant) holds for any
// masks at all, so there is no adaptive advantage to seeing the peer's mask
// before choosing one's own.
type RotateRequest struct {
	SessionID string `json:"sessionId"`
	Mask      string `json:"mask"`
}

// RotateResponse returns the peer's rotation mask.
type RotateResponse struct {
	PeerMask string `json:"peerMask"`
}
