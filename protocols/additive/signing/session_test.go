package signing_test

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/nero-mpc-core/pkg/sigverify"
	"github.com/luxfi/nero-mpc-core/pkg/transport"
	"github.com/luxfi/nero-mpc-core/protocols/additive/keygen"
	"github.com/luxfi/nero-mpc-core/protocols/additive/signing"
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

func TestRunOverLoopbackProducesValidSignature(t *testing.T) {
	alice, bob := runKeygen(t)

	_, sideA, sideB := transport.NewLoopback()
	messageHash := sha256.Sum256([]byte("hello threshold world"))

	group, gctx := errgroup.WithContext(context.Background())
	var resA, resB *signing.Result
	group.Go(func() (err error) {
		resA, err = signing.Run(gctx, "alice", "bob", alice.KeyShare, messageHash, sideA)
		return err
	})
	group.Go(func() (err error) {
		resB, err = signing.Run(gctx, "bob", "alice", bob.KeyShare, messageHash, sideB)
		return err
	})
	require.NoError(t, group.Wait())

	assert.True(t, resA.R.Equal(resB.R))
	assert.True(t, resA.S.Equal(resB.S))
	assert.Equal(t, resA.V, resB.V)
	assert.Equal(t, resA.FullSignature, resB.FullSignature)
	assert.False(t, resA.S.IsOverHalfOrder())

	// Property 1: the produced (r, s, v) verifies as a standard secp256k1
	// ECDSA signature against the joint public key and recovers it, checked
	// independently of anything this package's own arithmetic believes.
	joint, err := alice.KeyShare.JointPublicPoint()
	require.NoError(t, err)
	assert.NoError(t, sigverify.Verify(joint, messageHash, resA.R, resA.S, resA.V))
}

func TestRunOverLoopbackProducesDifferentSignaturesForDifferentMessages(t *testing.T) {
	alice, bob := runKeygen(t)

	_, sideA, sideB := transport.NewLoopback()
	messageHash := sha256.Sum256([]byte("message one"))
	group, gctx := errgroup.WithContext(context.Background())
	var resA1 *signing.Result
	group.Go(func() (err error) {
		resA1, err = signing.Run(gctx, "alice", "bob", alice.KeyShare, messageHash, sideA)
		return err
	})
	group.Go(func() error {
		_, err := signing.Run(gctx, "bob", "alice", bob.KeyShare, messageHash, sideB)
		return err
	})
	require.NoError(t, group.Wait())

	_, sideA2, sideB2 := transport.NewLoopback()
	messageHash2 := sha256.Sum256([]byte("message two"))
	group2, gctx2 := errgroup.WithContext(context.Background())
	var resA2 *signing.Result
	group2.Go(func() (err error) {
		resA2, err = signing.Run(gctx2, "alice", "bob", alice.KeyShare, messageHash2, sideA2)
		return err
	})
	group2.Go(func() error {
		_, err := signing.Run(gctx2, "bob", "alice", bob.KeyShare, messageHash2, sideB2)
		return err
	})
	require.NoError(t, group2.Wait())

	assert.False(t, resA1.R.Equal(resA2.R))
}
