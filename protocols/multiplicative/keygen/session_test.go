package keygen_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/nero-mpc-core/pkg/transport"
	"github.com/luxfi/nero-mpc-core/protocols/multiplicative/keygen"
)

func TestRunOverLoopbackProducesMatchingJointKey(t *testing.T) {
	_, sideA, sideB := transport.NewLoopback()

	group, gctx := errgroup.WithContext(context.Background())
	var resA, resB *keygen.Result
	group.Go(func() (err error) {
		resA, err = keygen.Run(gctx, "alice", "bob", sideA)
		return err
	})
	group.Go(func() (err error) {
		resB, err = keygen.Run(gctx, "bob", "alice", sideB)
		return err
	})
	require.NoError(t, group.Wait())

	jointA, err := resA.KeyShare.JointPublicPoint()
	require.NoError(t, err)
	jointB, err := resB.KeyShare.JointPublicPoint()
	require.NoError(t, err)
	assert.True(t, jointA.Equal(jointB))
}
