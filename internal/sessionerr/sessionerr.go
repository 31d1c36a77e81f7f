// Package sessionerr defines the sentinel error kinds of spec §7. These are
// kinds, not a type hierarchy: callers use errors.Is against the sentinels
// below, and every session-fatal error wraps one of them with context via
// fmt.Errorf("...: %w", ...).
package sessionerr

import "errors"

var (
	// ErrProtocolViolation covers malformed messages, out-of-order rounds,
	// and session-ID mismatches. Fatal to the session; state is zeroed.
	ErrProtocolViolation = errors.New("sessionerr: protocol violation")

	// ErrVerificationFailed covers a failed Schnorr proof, mismatched
	// commitment, off-curve point, or failed algebraic check. The peer has
	// provably misbehaved.
	ErrVerificationFailed = errors.New("sessionerr: cryptographic verification failed")

	// ErrInputDomain covers a caller error — wrong message-hash length, an
	// unknown EIP-712 type — that never starts a session.
	ErrInputDomain = errors.New("sessionerr: invalid input domain")

	// ErrTransport surfaces a network error or timeout as retryable; the
	// engine never retries automatically.
	ErrTransport = errors.New("sessionerr: transport error")

	// ErrStorage surfaces a Store read/write failure.
	ErrStorage = errors.New("sessionerr: storage error")

	// ErrEntropy is fatal to the process.
	ErrEntropy = errors.New("sessionerr: entropy failure")

	// ErrNonceDegenerate signals r=0 or another derived-zero scalar; the
	// caller MAY start a fresh session (spec §9: never refresh a nonce
	// within the same session).
	ErrNonceDegenerate = errors.New("sessionerr: nonce degeneracy, retry signing in a new session")

	// ErrCancelled signals the session was cancelled via its context.
	ErrCancelled = errors.New("sessionerr: session cancelled")

	// ErrTimeout signals a per-round wall-clock timeout expired.
	ErrTimeout = errors.New("sessionerr: round timeout expired")
)
