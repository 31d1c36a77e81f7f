// Package xcrypto collects the non-curve cryptographic primitives spec §4.B
// requires: SHA-256 for commitments and challenges, Keccak-256 for Ethereum
// hashing, HMAC, AES-256-GCM for share/blob encryption, and PBKDF2 for
// password-derived keys. Nothing here is hand-rolled: every primitive comes
// from the Go standard library or golang.org/x/crypto.
package xcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/sha3"
)

// KeySize is the AES-256-GCM key size in bytes.
const KeySize = 32

// NonceSize is the AES-GCM nonce size in bytes (96 bits, spec §4.B).
const NonceSize = 12

// TagSize is the AES-GCM authentication tag size in bytes (128 bits).
const TagSize = 16

// PBKDF2MinIterations is the floor spec §4.B mandates for password-derived
// keys ("≥ 100 000 iterations").
const PBKDF2MinIterations = 100_000

// SHA256 hashes the plain concatenation of parts with SHA-256 (no length
// framing between parts, so only the joined bytes matter), used for
// commitments and Fiat-Shamir challenges throughout the engine.
func SHA256(parts ...[]byte) [32]byte {
	h := sha256.New()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Keccak256 hashes the concatenation of parts with Ethereum's Keccak-256
// (NOT standard SHA3), for UserOp/EIP-712/EIP-191/address hashing only.
func Keccak256(parts ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// HMACSHA256 computes HMAC-SHA256(key, concat(parts)).
func HMACSHA256(key []byte, parts ...[]byte) []byte {
	mac := hmac.New(sha256.New, key)
	for _, p := range parts {
		_, _ = mac.Write(p)
	}
	return mac.Sum(nil)
}

// RandomNonce draws a fresh 96-bit AES-GCM nonce from the process CSPRNG.
// An entropy failure here is fatal to the process (spec §5 "RNG").
func RandomNonce() ([]byte, error) {
	n := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, n); err != nil {
		return nil, errors.New("xcrypto: entropy failure drawing AES-GCM nonce")
	}
	return n, nil
}

// SealDetached encrypts plaintext under key/nonce/aad and returns the
// ciphertext and the 128-bit authentication tag as separate slices, matching
// the Encrypted Share message shape of spec §3 ("tag is transported
// separately from the ciphertext").
func SealDetached(key, nonce, plaintext, aad []byte) (ciphertext, tag []byte, err error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, nil, err
	}
	if len(nonce) != NonceSize {
		return nil, nil, errors.New("xcrypto: nonce must be 12 bytes")
	}
	sealed := aead.Seal(nil, nonce, plaintext, aad)
	ciphertext = sealed[:len(sealed)-TagSize]
	tag = sealed[len(sealed)-TagSize:]
	return ciphertext, tag, nil
}

// OpenDetached verifies and decrypts a ciphertext/tag pair produced by
// SealDetached. Tag verification failure is mandatory and fatal to the
// enclosing session (spec §3, Encrypted Share invariant).
func OpenDetached(key, nonce, ciphertext, tag, aad []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, errors.New("xcrypto: nonce must be 12 bytes")
	}
	if len(tag) != TagSize {
		return nil, errors.New("xcrypto: tag must be 16 bytes")
	}
	sealed := append(append([]byte{}, ciphertext...), tag...)
	plaintext, err := aead.Open(nil, nonce, sealed, aad)
	if err != nil {
		return nil, errors.New("xcrypto: AES-GCM authentication failed")
	}
	return plaintext, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, errors.New("xcrypto: key must be 32 bytes (AES-256)")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// PBKDF2Key derives a 32-byte AES-256 key from a password and salt. Callers
// MUST pass at least PBKDF2MinIterations.
func PBKDF2Key(password, salt []byte, iterations int) ([]byte, error) {
	if iterations < PBKDF2MinIterations {
		return nil, errors.New("xcrypto: PBKDF2 iteration count below the required minimum")
	}
	return pbkdf2.Key(password, salt, iterations, KeySize, sha256.New), nil
}

// RandomSalt draws a fresh 16-byte PBKDF2 salt.
func RandomSalt() ([]byte, error) {
	s := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, s); err != nil {
		return nil, errors.New("xcrypto: entropy failure drawing PBKDF2 salt")
	}
	return s, nil
}
