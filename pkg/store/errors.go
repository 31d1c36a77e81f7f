package store

import "errors"

var (
	errShortCiphertext          = errors.New("store: ciphertext shorter than AEAD tag")
	errWrongBackupType          = errors.New("store: backup type tag mismatch")
	errUnsupportedBackupVersion = errors.New("store: unsupported backup version")
)
