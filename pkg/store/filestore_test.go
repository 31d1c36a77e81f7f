package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	_, ok, err := fs.Get(ctx, "party-a/share")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, fs.Set(ctx, "party-a/share", []byte("payload")))
	got, ok, err := fs.Get(ctx, "party-a/share")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("payload"), got)

	require.NoError(t, fs.Delete(ctx, "party-a/share"))
	_, ok, err = fs.Get(ctx, "party-a/share")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileStoreClear(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, fs.Set(ctx, "a", []byte("1")))
	require.NoError(t, fs.Set(ctx, "b", []byte("2")))
	require.NoError(t, fs.Clear(ctx))

	_, ok, err := fs.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = fs.Get(ctx, "b")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFileStoreDeleteMissingIsNoop(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, fs.Delete(context.Background(), "never-written"))
}

func TestEnvelopeRoundTripThroughStore(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	password := []byte("correct horse battery staple")
	plaintext := []byte(`{"partyId":1,"privateShare":"ab"}`)

	env, err := SealEnvelope(password, plaintext, 100_000)
	require.NoError(t, err)

	blob, err := json.Marshal(env)
	require.NoError(t, err)
	require.NoError(t, fs.Set(ctx, "wallet-1", blob))

	raw, ok, err := fs.Get(ctx, "wallet-1")
	require.NoError(t, err)
	require.True(t, ok)

	var loaded Envelope
	require.NoError(t, json.Unmarshal(raw, &loaded))

	opened, err := OpenEnvelope(password, loaded, 100_000)
	require.NoError(t, err)
	require.Equal(t, plaintext, opened)
}
