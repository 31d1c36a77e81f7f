// Package sigverify independently checks a combined (r, s, v) against a
// joint public key under standard secp256k1 ECDSA, using go-ethereum's
// verification and recovery routines rather than re-deriving the check from
// pkg/curve. This is the final backstop named in spec §4.G/§4.K ("verify
// the combined s against the joint public key") and the mechanism behind
// the signature-correctness test of §8 Testable Property 1: an engine that
// combined two honest partials incorrectly, or accepted a tampered one,
// produces a signature that fails this check regardless of what internal
// bookkeeping said.
package sigverify

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/luxfi/nero-mpc-core/pkg/curve"
)

// Verify reports an error if (r, s) does not verify against joint under
// messageHash, or if recovering the public key from (r, s, v) does not
// reproduce joint exactly.
func Verify(joint curve.Point, messageHash [32]byte, r, s curve.Scalar, v int) error {
	pubkey, err := joint.EncodeUncompressed()
	if err != nil {
		return fmt.Errorf("sigverify: encode joint public key: %w", err)
	}

	rBytes := r.Bytes()
	sBytes := s.Bytes()
	sig := make([]byte, 0, 65)
	sig = append(sig, rBytes[:]...)
	sig = append(sig, sBytes[:]...)

	if !crypto.VerifySignature(pubkey, messageHash[:], sig) {
		return fmt.Errorf("sigverify: signature does not verify against joint public key")
	}

	recoverable := append(append([]byte{}, sig...), byte(v))
	recovered, err := crypto.Ecrecover(messageHash[:], recoverable)
	if err != nil {
		return fmt.Errorf("sigverify: recover public key: %w", err)
	}
	if !bytes.Equal(recovered, pubkey) {
		return fmt.Errorf("sigverify: recovered public key does not match joint public key")
	}
	return nil
}
