package sharechannel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/sharechannel"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	recipientPriv, err := curve.RandomScalar()
	require.NoError(t, err)
	recipientPub := recipientPriv.ActOnBase()

	share, err := curve.RandomScalar()
	require.NoError(t, err)

	msg, err := sharechannel.Encrypt("alice", "bob", share, recipientPub)
	require.NoError(t, err)
	assert.Equal(t, "alice", msg.From)
	assert.Equal(t, "bob", msg.To)

	decrypted, err := sharechannel.Decrypt(msg, recipientPriv)
	require.NoError(t, err)
	assert.True(t, share.Equal(decrypted))
}

func TestDecryptFailsWithWrongPrivateKey(t *testing.T) {
	recipientPriv, err := curve.RandomScalar()
	require.NoError(t, err)
	recipientPub := recipientPriv.ActOnBase()

	share, err := curve.RandomScalar()
	require.NoError(t, err)
	msg, err := sharechannel.Encrypt("alice", "bob", share, recipientPub)
	require.NoError(t, err)

	wrongPriv, err := curve.RandomScalar()
	require.NoError(t, err)
	_, err = sharechannel.Decrypt(msg, wrongPriv)
	assert.Error(t, err)
}

func TestDecryptFailsOnTamperedCiphertext(t *testing.T) {
	recipientPriv, err := curve.RandomScalar()
	require.NoError(t, err)
	recipientPub := recipientPriv.ActOnBase()

	share, err := curve.RandomScalar()
	require.NoError(t, err)
	msg, err := sharechannel.Encrypt("alice", "bob", share, recipientPub)
	require.NoError(t, err)

	msg.Ciphertext[0] ^= 0xff
	_, err = sharechannel.Decrypt(msg, recipientPriv)
	assert.Error(t, err)
}

func TestEachEncryptionUsesFreshEphemeralKey(t *testing.T) {
	recipientPriv, err := curve.RandomScalar()
	require.NoError(t, err)
	recipientPub := recipientPriv.ActOnBase()
	share, err := curve.RandomScalar()
	require.NoError(t, err)

	a, err := sharechannel.Encrypt("alice", "bob", share, recipientPub)
	require.NoError(t, err)
	b, err := sharechannel.Encrypt("alice", "bob", share, recipientPub)
	require.NoError(t, err)

	assert.False(t, a.EphemeralPublicKey.Equal(b.EphemeralPublicKey))
}
