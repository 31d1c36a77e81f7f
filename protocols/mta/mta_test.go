package mta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/protocols/mta"
)

func TestGilboaMtAYieldsAdditiveSharesOfProduct(t *testing.T) {
	a, err := curve.RandomScalar()
	require.NoError(t, err)
	b, err := curve.RandomScalar()
	require.NoError(t, err)

	senderState, senderSetupMsgs, err := mta.SenderSetupRound(a)
	require.NoError(t, err)

	receiverState, receiverChoiceMsgs, err := mta.ReceiverChooseRound(b, senderSetupMsgs)
	require.NoError(t, err)

	completionMsgs, err := mta.SenderCompleteRound(senderState, receiverChoiceMsgs)
	require.NoError(t, err)

	beta, err := mta.ReceiverCompleteRound(receiverState, senderSetupMsgs, completionMsgs)
	require.NoError(t, err)

	alpha := senderState.Alpha()
	assert.True(t, alpha.Add(beta).Equal(a.Mul(b)))
}

func TestGilboaMtAIsSensitiveToWrongFactor(t *testing.T) {
	a, err := curve.RandomScalar()
	require.NoError(t, err)
	b, err := curve.RandomScalar()
	require.NoError(t, err)
	wrongB, err := curve.RandomScalar()
	require.NoError(t, err)

	senderState, senderSetupMsgs, err := mta.SenderSetupRound(a)
	require.NoError(t, err)
	receiverState, receiverChoiceMsgs, err := mta.ReceiverChooseRound(b, senderSetupMsgs)
	require.NoError(t, err)
	completionMsgs, err := mta.SenderCompleteRound(senderState, receiverChoiceMsgs)
	require.NoError(t, err)
	beta, err := mta.ReceiverCompleteRound(receiverState, senderSetupMsgs, completionMsgs)
	require.NoError(t, err)

	alpha := senderState.Alpha()
	assert.False(t, alpha.Add(beta).Equal(a.Mul(wrongB)))
}
