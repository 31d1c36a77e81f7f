package keyshare_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/keyshare"
)

func TestNewAdditiveVerifyIntegrity(t *testing.T) {
	priv, err := curve.RandomScalar()
	require.NoError(t, err)
	pub := priv.ActOnBase()
	joint, err := curve.RandomScalar()
	require.NoError(t, err)

	share, err := keyshare.NewAdditive(1, priv, pub, joint.ActOnBase())
	require.NoError(t, err)
	assert.True(t, share.VerifyIntegrity())
	assert.Equal(t, keyshare.ProtocolVersion, share.ProtocolVersion)
}

func TestAdditiveVerifyIntegrityRejectsTamperedShare(t *testing.T) {
	priv, err := curve.RandomScalar()
	require.NoError(t, err)
	pub := priv.ActOnBase()
	joint, err := curve.RandomScalar()
	require.NoError(t, err)

	share, err := keyshare.NewAdditive(1, priv, pub, joint.ActOnBase())
	require.NoError(t, err)

	other, err := curve.RandomScalar()
	require.NoError(t, err)
	share.PrivateShare = other.Hex()
	assert.False(t, share.VerifyIntegrity())
}

func TestAdditivePrivateScalarAndJointPublicPointRoundTrip(t *testing.T) {
	priv, err := curve.RandomScalar()
	require.NoError(t, err)
	pub := priv.ActOnBase()
	jointScalar, err := curve.RandomScalar()
	require.NoError(t, err)
	joint := jointScalar.ActOnBase()

	share, err := keyshare.NewAdditive(1, priv, pub, joint)
	require.NoError(t, err)

	decodedPriv, err := share.PrivateScalar()
	require.NoError(t, err)
	assert.True(t, priv.Equal(decodedPriv))

	decodedJoint, err := share.JointPublicPoint()
	require.NoError(t, err)
	assert.True(t, joint.Equal(decodedJoint))
}

func TestMultiplicativeSecretScalarAndJointPublicPointRoundTrip(t *testing.T) {
	secret, err := curve.RandomScalar()
	require.NoError(t, err)
	jointScalar, err := curve.RandomScalar()
	require.NoError(t, err)
	joint := jointScalar.ActOnBase()

	jointHex, err := joint.Hex()
	require.NoError(t, err)
	pubHex, err := secret.ActOnBase().Hex()
	require.NoError(t, err)

	share := keyshare.Multiplicative{
		PartyID:         2,
		SecretShare:     secret.Hex(),
		PublicShare:     pubHex,
		JointPublicKey:  jointHex,
		ProtocolVersion: keyshare.MultiplicativeProtocolVersion,
	}

	decodedSecret, err := share.SecretScalar()
	require.NoError(t, err)
	assert.True(t, secret.Equal(decodedSecret))

	decodedJoint, err := share.JointPublicPoint()
	require.NoError(t, err)
	assert.True(t, joint.Equal(decodedJoint))
}
