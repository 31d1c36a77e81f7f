package rotate_test

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/nero-mpc-core/pkg/transport"
	"github.com/luxfi/nero-mpc-core/protocols/multiplicative/keygen"
	"github.com/luxfi/nero-mpc-core/protocols/multiplicative/rotate"
	"github.com/luxfi/nero-mpc-core/protocols/multiplicative/signing"
)

func runKeygen(t *testing.T) (alice, bob *keygen.Result) {
	t.Helper()
	_, sideA, sideB := transport.NewLoopback()
	group, gctx := errgroup.WithContext(context.Background())
	group.Go(func() (err error) {
		alice, err = keygen.Run(gctx, "alice", "bob", sideA)
		return err
	})
	group.Go(func() (err error) {
		bob, err = keygen.Run(gctx, "bob", "alice", sideB)
		return err
	})
	require.NoError(t, group.Wait())
	return alice, bob
}

func TestRotatePreservesJointKeyButChangesSecretShares(t *testing.T) {
	alice, bob := runKeygen(t)

	oldSecretA, err := alice.KeyShare.SecretScalar()
	require.NoError(t, err)
	oldJoint, err := alice.KeyShare.JointPublicPoint()
	require.NoError(t, err)

	_, sideA, sideB := transport.NewLoopback()
	group, gctx := errgroup.WithContext(context.Background())
	var outA, outB = alice.KeyShare, bob.KeyShare
	group.Go(func() error {
		r, err := rotate.Run(gctx, "alice", "bob", "gen-1", alice.KeyShare, sideA)
		if err != nil {
			return err
		}
		outA = *r
		return nil
	})
	group.Go(func() error {
		r, err := rotate.Run(gctx, "bob", "alice", "gen-1", bob.KeyShare, sideB)
		if err != nil {
			return err
		}
		outB = *r
		return nil
	})
	require.NoError(t, group.Wait())

	newJointA, err := outA.JointPublicPoint()
	require.NoError(t, err)
	newJointB, err := outB.JointPublicPoint()
	require.NoError(t, err)
	assert.True(t, newJointA.Equal(newJointB))
	assert.True(t, newJointA.Equal(oldJoint))

	newSecretA, err := outA.SecretScalar()
	require.NoError(t, err)
	assert.False(t, newSecretA.Equal(oldSecretA))

	_, sideA2, sideB2 := transport.NewLoopback()
	messageHash := sha256.Sum256([]byte("dkls signed after rotation"))
	group2, gctx2 := errgroup.WithContext(context.Background())
	var sigA, sigB *signing.Result
	group2.Go(func() (err error) {
		sigA, err = signing.Run(gctx2, "alice", "bob", outA, messageHash, sideA2)
		return err
	})
	group2.Go(func() (err error) {
		sigB, err = signing.Run(gctx2, "bob", "alice", outB, messageHash, sideB2)
		return err
	})
	require.NoError(t, group2.Wait())
	assert.Equal(t, sigA.R, sigB.R)
	assert.Equal(t, sigA.S, sigB.S)
}
