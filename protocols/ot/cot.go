package ot

import (
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/nero-mpc-core/pkg/curve"
)

// BitWidth is the number of parallel base-OT instances a batched transfer
// runs, one per bit of a secp256k1 scalar (spec §4.H: "batched COT over
// 256 bits").
const BitWidth = 256

// BitPair is one sender-side correlated message pair for a single bit
// position: (m0, m1), exactly one of which the receiver will learn.
type BitPair struct {
	M0, M1 [32]byte
}

// SenderBatch runs BitWidth independent sender setups in parallel.
func SenderBatch() ([]*SenderSetup, error) {
	out := make([]*SenderSetup, BitWidth)
	var g errgroup.Group
	for i := 0; i < BitWidth; i++ {
		i := i
		g.Go(func() error {
			s, err := NewSenderSetup()
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReceiverBatch runs BitWidth independent receiver choices in parallel
// against the sender's setup points, one choice bit per position.
func ReceiverBatch(senderPoints []curve.Point, bits []bool) ([]*ReceiverChoice, error) {
	out := make([]*ReceiverChoice, BitWidth)
	var g errgroup.Group
	for i := 0; i < BitWidth; i++ {
		i := i
		g.Go(func() error {
			c, err := Choose(senderPoints[i], bits[i])
			if err != nil {
				return err
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// SealedPair is one bit position's encrypted correlated message pair.
type SealedPair struct {
	Enc0, Tag0 []byte
	Enc1, Tag1 []byte
}

// SenderComplete derives both transfer keys per bit from the receiver's
// chosen points and seals the corresponding correlated message pairs, in
// parallel across bit positions.
func SenderComplete(setups []*SenderSetup, pairs []BitPair, receiverPoints []curve.Point) ([]SealedPair, error) {
	out := make([]SealedPair, BitWidth)
	var g errgroup.Group
	for i := 0; i < BitWidth; i++ {
		i := i
		g.Go(func() error {
			k0, k1 := setups[i].SenderKeys(receiverPoints[i])
			enc0, tag0, err := SealMessage(k0, pairs[i].M0[:])
			if err != nil {
				return err
			}
			enc1, tag1, err := SealMessage(k1, pairs[i].M1[:])
			if err != nil {
				return err
			}
			out[i] = SealedPair{Enc0: enc0, Tag0: tag0, Enc1: enc1, Tag1: tag1}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReceiverOpen decrypts the chosen message at every bit position using
// each receiver choice's derived key, in parallel.
func ReceiverOpen(choices []*ReceiverChoice, senderPoints []curve.Point, bits []bool, sealed []SealedPair) ([][32]byte, error) {
	out := make([][32]byte, BitWidth)
	var g errgroup.Group
	for i := 0; i < BitWidth; i++ {
		i := i
		g.Go(func() error {
			key := choices[i].ReceiverKey(senderPoints[i])
			var plaintext []byte
			var err error
			if bits[i] {
				plaintext, err = OpenMessage(key, sealed[i].Enc1, sealed[i].Tag1)
			} else {
				plaintext, err = OpenMessage(key, sealed[i].Enc0, sealed[i].Tag0)
			}
			if err != nil {
				return err
			}
			copy(out[i][:], plaintext)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
