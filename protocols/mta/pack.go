package mta

import (
	"encoding/hex"
	"errors"

	"github.com/luxfi/nero-mpc-core/pkg/xcrypto"
)

var errShortSealed = errors.New("mta: sealed message shorter than AEAD tag")

func packSealed(ciphertext, tag []byte) string {
	return hex.EncodeToString(append(append([]byte{}, ciphertext...), tag...))
}

func unpackSealed(s string) (ciphertext, tag []byte, err error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, nil, err
	}
	if len(raw) < xcrypto.TagSize {
		return nil, nil, errShortSealed
	}
	return raw[:len(raw)-xcrypto.TagSize], raw[len(raw)-xcrypto.TagSize:], nil
}
