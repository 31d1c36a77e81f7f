package signing_test

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/sigverify"
	"github.com/luxfi/nero-mpc-core/pkg/transport"
	"github.com/luxfi/nero-mpc-core/protocols/multiplicative/keygen"
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

func TestRunOverLoopbackProducesValidSignature(t *testing.T) {
	alice, bob := runKeygen(t)

	_, sideA, sideB := transport.NewLoopback()
	messageHash := sha256.Sum256([]byte("dkls signing over loopback"))

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

	assert.Equal(t, resA.R, resB.R)
	assert.Equal(t, resA.S, resB.S)
	assert.Equal(t, resA.V, resB.V)
	assert.NotEmpty(t, resA.R)
	assert.NotEmpty(t, resA.S)

	// Property 1: the produced (r, s, v) verifies as a standard secp256k1
	// ECDSA signature against the joint public key and recovers it.
	joint, err := alice.KeyShare.JointPublicPoint()
	require.NoError(t, err)
	r, err := curve.ScalarFromHex(resA.R)
	require.NoError(t, err)
	s, err := curve.ScalarFromHex(resA.S)
	require.NoError(t, err)
	assert.NoError(t, sigverify.Verify(joint, messageHash, r, s, resA.V))
}
