package ot

import (
	"github.com/luxfi/nero-mpc-core/pkg/xcrypto"
)

// zeroNonce is safe here because every AES-GCM key derived in this package
// is single-use: a fresh y (sender) or x (receiver) is drawn for every OT
// instance, so no key is ever reused across two encryptions.
var zeroNonce = make([]byte, xcrypto.NonceSize)

// SealMessage encrypts a 32-byte correlated-OT payload under a transfer key.
func SealMessage(key, plaintext []byte) (ciphertext []byte, tag []byte, err error) {
	return xcrypto.SealDetached(key, zeroNonce, plaintext, nil)
}

// OpenMessage decrypts a payload sealed by SealMessage.
func OpenMessage(key, ciphertext, tag []byte) ([]byte, error) {
	return xcrypto.OpenDetached(key, zeroNonce, ciphertext, tag, nil)
}

// Transfer is one completed 1-of-2 OT: the sender's setup point S plus both
// encrypted messages, and the receiver's chosen point R. Sender and
// receiver each hold only the fields their role produced. The batched
// functions in cot.go do not use this type; they carry ciphertexts in
// SealedPair.
type Transfer struct {
	S           []byte
	R           []byte
	Enc0, Tag0  []byte
	Enc1, Tag1  []byte
}
