package transport_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/nero-mpc-core/internal/wire"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/transport"
)

func TestRotateSwapsMasksBetweenParties(t *testing.T) {
	_, sideA, sideB := transport.NewLoopback()
	ctx := context.Background()

	maskA, err := curve.RandomScalar()
	require.NoError(t, err)
	maskB, err := curve.RandomScalar()
	require.NoError(t, err)

	group, gctx := errgroup.WithContext(ctx)
	var respA, respB wire.RotateResponse
	group.Go(func() (err error) {
		respA, err = sideA.Rotate(gctx, wire.RotateRequest{SessionID: "rotate-1", Mask: maskA.Hex()})
		return err
	})
	group.Go(func() (err error) {
		respB, err = sideB.Rotate(gctx, wire.RotateRequest{SessionID: "rotate-1", Mask: maskB.Hex()})
		return err
	})
	require.NoError(t, group.Wait())

	assert.Equal(t, maskB.Hex(), respA.PeerMask)
	assert.Equal(t, maskA.Hex(), respB.PeerMask)
}

func TestDKGShareReturnsSameJointKeyToBothParties(t *testing.T) {
	_, sideA, sideB := transport.NewLoopback()
	ctx := context.Background()

	skA, err := curve.RandomScalar()
	require.NoError(t, err)
	skB, err := curve.RandomScalar()
	require.NoError(t, err)
	pkAHex, err := skA.ActOnBase().Hex()
	require.NoError(t, err)
	pkBHex, err := skB.ActOnBase().Hex()
	require.NoError(t, err)

	group, gctx := errgroup.WithContext(ctx)
	var respA, respB wire.DKGInitResponse
	group.Go(func() (err error) {
		respA, err = sideA.DKGInit(gctx, wire.DKGInitRequest{
			SessionID:  "sess-1",
			Commitment: wire.VSSCommitment{Coefficients: []string{pkAHex}},
		})
		return err
	})
	group.Go(func() (err error) {
		respB, err = sideB.DKGInit(gctx, wire.DKGInitRequest{
			SessionID:  "sess-1",
			Commitment: wire.VSSCommitment{Coefficients: []string{pkBHex}},
		})
		return err
	})
	require.NoError(t, group.Wait())
	assert.Equal(t, pkBHex, respA.PeerCommit.Coefficients[0])
	assert.Equal(t, pkAHex, respB.PeerCommit.Coefficients[0])

	group, gctx = errgroup.WithContext(ctx)
	var shareA, shareB wire.DKGShareResponse
	group.Go(func() (err error) {
		shareA, err = sideA.DKGShare(gctx, wire.DKGShareRequest{SessionID: "sess-1"})
		return err
	})
	group.Go(func() (err error) {
		shareB, err = sideB.DKGShare(gctx, wire.DKGShareRequest{SessionID: "sess-1"})
		return err
	})
	require.NoError(t, group.Wait())

	assert.Equal(t, shareA.JointPublicKey, shareB.JointPublicKey)
	assert.Equal(t, shareA.Address, shareB.Address)
	assert.NotEmpty(t, shareA.Address)
}

func TestSignCompleteCombinesPartialsIntoLowSSignature(t *testing.T) {
	_, sideA, sideB := transport.NewLoopback()
	ctx := context.Background()

	sSelf, err := curve.RandomScalar()
	require.NoError(t, err)
	sPeer, err := curve.RandomScalar()
	require.NoError(t, err)
	noncePoint, err := curve.RandomScalar()
	require.NoError(t, err)
	nonceHex, err := noncePoint.ActOnBase().Hex()
	require.NoError(t, err)

	group, gctx := errgroup.WithContext(ctx)
	var respA, respB wire.SignCompleteResponse
	group.Go(func() (err error) {
		respA, err = sideA.SignComplete(gctx, wire.SignCompleteRequest{
			SessionID: "sign-1",
			Partial:   wire.PartialSignature{Sigma: sSelf.Hex(), NoncePublic: nonceHex},
		})
		return err
	})
	group.Go(func() (err error) {
		respB, err = sideB.SignComplete(gctx, wire.SignCompleteRequest{
			SessionID: "sign-1",
			Partial:   wire.PartialSignature{Sigma: sPeer.Hex(), NoncePublic: nonceHex},
		})
		return err
	})
	require.NoError(t, group.Wait())

	assert.Equal(t, respA, respB)
	assert.NotEmpty(t, respA.FullSignature)

	combined, err := curve.ScalarFromHex(respA.S)
	require.NoError(t, err)
	assert.False(t, combined.IsOverHalfOrder())
}

func TestRendezvousTimesOutWhenPeerNeverArrives(t *testing.T) {
	_, sideA, _ := transport.NewLoopback()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sideA.DKGInit(ctx, wire.DKGInitRequest{
		SessionID:  "sess-timeout",
		Commitment: wire.VSSCommitment{Coefficients: []string{"dead"}},
	})
	assert.Error(t, err)
}

func TestDKLSSigningPartialAgreesAcrossBothSides(t *testing.T) {
	_, sideA, sideB := transport.NewLoopback()
	ctx := context.Background()

	sSelf, err := curve.RandomScalar()
	require.NoError(t, err)
	sPeer, err := curve.RandomScalar()
	require.NoError(t, err)
	noncePoint, err := curve.RandomScalar()
	require.NoError(t, err)
	nonceHex, err := noncePoint.ActOnBase().Hex()
	require.NoError(t, err)

	group, gctx := errgroup.WithContext(ctx)
	var respA, respB wire.DKLSSigningPartialResponse
	group.Go(func() (err error) {
		respA, err = sideA.DKLSSigningPartial(gctx, wire.DKLSSigningPartialRequest{
			SessionID: "dkls-sign-1", S: sSelf.Hex(), NoncePublic: nonceHex,
		})
		return err
	})
	group.Go(func() (err error) {
		respB, err = sideB.DKLSSigningPartial(gctx, wire.DKLSSigningPartialRequest{
			SessionID: "dkls-sign-1", S: sPeer.Hex(), NoncePublic: nonceHex,
		})
		return err
	})
	require.NoError(t, group.Wait())
	assert.Equal(t, respA, respB)
}
