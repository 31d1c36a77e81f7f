package mta_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/nero-mpc-core/internal/round"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/transport"
	"github.com/luxfi/nero-mpc-core/protocols/mta"
)

func TestRunOverLoopbackBothInstancesAgreeOnProduct(t *testing.T) {
	_, sideA, sideB := transport.NewLoopback()

	sessionID := []byte("mta-session-test")
	helperA := round.NewHelper("alice", "bob", sessionID, 2, 5*time.Second)
	helperB := round.NewHelper("bob", "alice", sessionID, 2, 5*time.Second)

	a, err := curve.RandomScalar()
	require.NoError(t, err)
	b, err := curve.RandomScalar()
	require.NoError(t, err)

	ctx := context.Background()
	group, gctx := errgroup.WithContext(ctx)

	var resultA, resultB *mta.Result
	group.Go(func() error {
		res, err := mta.Run(gctx, helperA, sideA, "mta", a, a)
		resultA = res
		return err
	})
	group.Go(func() error {
		res, err := mta.Run(gctx, helperB, sideB, "mta", b, b)
		resultB = res
		return err
	})
	require.NoError(t, group.Wait())

	selfA, _ := helperA.PartyIndices()
	product := a.Mul(b)
	if selfA == 1 {
		assert.True(t, resultA.Alpha.Add(resultB.Beta).Equal(product))
	} else {
		assert.True(t, resultB.Alpha.Add(resultA.Beta).Equal(product))
	}
}
