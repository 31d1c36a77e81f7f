package ot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/nero-mpc-core/protocols/ot"
)

func TestReceiverKeyMatchesSenderKeyForChosenBit(t *testing.T) {
	for _, bit := range []bool{false, true} {
		sender, err := ot.NewSenderSetup()
		require.NoError(t, err)

		receiver, err := ot.Choose(sender.S, bit)
		require.NoError(t, err)

		k0, k1 := sender.SenderKeys(receiver.R)
		receiverKey := receiver.ReceiverKey(sender.S)

		if bit {
			assert.Equal(t, k1, receiverKey)
		} else {
			assert.Equal(t, k0, receiverKey)
		}
	}
}

func TestReceiverCannotDeriveTheOtherKey(t *testing.T) {
	sender, err := ot.NewSenderSetup()
	require.NoError(t, err)
	receiver, err := ot.Choose(sender.S, false)
	require.NoError(t, err)

	k0, k1 := sender.SenderKeys(receiver.R)
	receiverKey := receiver.ReceiverKey(sender.S)
	assert.Equal(t, k0, receiverKey)
	assert.NotEqual(t, k1, receiverKey)
}

func TestSealOpenMessageRoundTrip(t *testing.T) {
	sender, err := ot.NewSenderSetup()
	require.NoError(t, err)
	receiver, err := ot.Choose(sender.S, true)
	require.NoError(t, err)

	k0, k1 := sender.SenderKeys(receiver.R)
	payload0 := make([]byte, 32)
	payload1 := make([]byte, 32)
	for i := range payload1 {
		payload1[i] = 0xAA
	}

	enc0, tag0, err := ot.SealMessage(k0, payload0)
	require.NoError(t, err)
	enc1, tag1, err := ot.SealMessage(k1, payload1)
	require.NoError(t, err)

	receiverKey := receiver.ReceiverKey(sender.S)
	opened, err := ot.OpenMessage(receiverKey, enc1, tag1)
	require.NoError(t, err)
	assert.Equal(t, payload1, opened)

	// opening the message for the bit NOT chosen fails: the receiver key
	// only ever equals one of k0/k1.
	_, err = ot.OpenMessage(receiverKey, enc0, tag0)
	assert.Error(t, err)
}
