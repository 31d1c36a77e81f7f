// Package store defines the Store interface consumed by the engine (spec
// §6) and the encrypted envelope / exported-backup formats built on top of
// it. The engine writes exactly one kind of record per user: an encrypted
// envelope wrapping the JSON-encoded KeyShare.
package store

import "context"

// Store is the external blob-persistence collaborator (spec §6).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Envelope is the single record shape the engine ever writes: an encrypted
// blob wrapping a JSON KeyShare (spec §6).
type Envelope struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
	Salt       string `json:"salt,omitempty"`
	Version    int    `json:"version"`
}

// Backup is the exported-backup wire format of spec §6.
type Backup struct {
	Version   int          `json:"version"`
	Type      string       `json:"type"`
	Data      BackupData   `json:"data"`
	CreatedAt int64        `json:"createdAt"`
}

// BackupData is the encrypted payload inside an exported Backup.
type BackupData struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
	Salt       string `json:"salt"`
}

// BackupType is the literal type tag spec §6 fixes for exported backups.
const BackupType = "nero-mpc-backup"

// BackupVersion is the current backup format version.
const BackupVersion = 1
