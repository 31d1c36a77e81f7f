package store

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/luxfi/nero-mpc-core/pkg/xcrypto"
	"github.com/luxfi/nero-mpc-core/pkg/zeroize"
)

// SealEnvelope encrypts a JSON-encoded KeyShare under a PBKDF2-derived key,
// producing the Envelope record Store persists (spec §6). iterations must
// meet xcrypto.PBKDF2MinIterations.
func SealEnvelope(password []byte, plaintext []byte, iterations int) (Envelope, error) {
	salt, err := xcrypto.RandomSalt()
	if err != nil {
		return Envelope{}, err
	}
	key, err := xcrypto.PBKDF2Key(password, salt, iterations)
	if err != nil {
		return Envelope{}, err
	}
	nonce, err := xcrypto.RandomNonce()
	if err != nil {
		return Envelope{}, err
	}
	ciphertext, tag, err := xcrypto.SealDetached(key, nonce, plaintext, nil)
	zeroize.Bytes(key)
	if err != nil {
		return Envelope{}, err
	}
	sealed := append(append([]byte{}, ciphertext...), tag...)
	return Envelope{
		Ciphertext: base64.StdEncoding.EncodeToString(sealed),
		IV:         base64.StdEncoding.EncodeToString(nonce),
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Version:    1,
	}, nil
}

// OpenEnvelope reverses SealEnvelope, returning the plaintext JSON KeyShare.
func OpenEnvelope(password []byte, env Envelope, iterations int) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return nil, err
	}
	nonce, err := base64.StdEncoding.DecodeString(env.IV)
	if err != nil {
		return nil, err
	}
	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, err
	}
	key, err := xcrypto.PBKDF2Key(password, salt, iterations)
	if err != nil {
		return nil, err
	}
	if len(sealed) < xcrypto.TagSize {
		return nil, errShortCiphertext
	}
	ciphertext := sealed[:len(sealed)-xcrypto.TagSize]
	tag := sealed[len(sealed)-xcrypto.TagSize:]
	defer zeroize.Bytes(key)
	return xcrypto.OpenDetached(key, nonce, ciphertext, tag, nil)
}

// ExportBackup wraps an Envelope into the base64 exported-backup format of
// spec §6: base64(JSON({version, type, data, createdAt})).
func ExportBackup(env Envelope, createdAt time.Time) (string, error) {
	b := Backup{
		Version: BackupVersion,
		Type:    BackupType,
		Data: BackupData{
			Ciphertext: env.Ciphertext,
			IV:         env.IV,
			Salt:       env.Salt,
		},
		CreatedAt: createdAt.UnixMilli(),
	}
	raw, err := json.Marshal(b)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// ImportBackup reverses ExportBackup, validating the type and version tags.
func ImportBackup(encoded string) (Backup, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Backup{}, err
	}
	var b Backup
	if err := json.Unmarshal(raw, &b); err != nil {
		return Backup{}, err
	}
	if b.Type != BackupType {
		return Backup{}, errWrongBackupType
	}
	if b.Version != BackupVersion {
		return Backup{}, errUnsupportedBackupVersion
	}
	return b, nil
}
