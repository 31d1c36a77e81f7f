// Package mta implements the Multiplicative-to-Additive conversion of spec
// §4.I: given this party's scalar a it acts as OT sender for, and a scalar
// b it contributes as OT receiver of the peer's instance, both parties end
// with an additive share of the same product pair such that
// alpha + beta = a*b mod n, using the Gilboa (1999) construction over the
// batched correlated OT of protocols/ot. No pack example implements this;
// built directly from spec text using the same session-ID-bound round
// choreography as the rest of the engine.
package mta

import (
	"github.com/luxfi/nero-mpc-core/internal/wire"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/protocols/ot"
)

// SenderState carries this party's per-bit OT setups and correlated pairs
// for the instance it initiates as sender.
type SenderState struct {
	setups []*ot.SenderSetup
	pairs  []ot.BitPair
	alpha  curve.Scalar
}

// ReceiverState carries this party's per-bit OT choices for the instance
// where it is the receiver of the peer's sender setup.
type ReceiverState struct {
	choices []*ot.ReceiverChoice
	bits    []bool
}

// SenderSetupRound draws this party's BitWidth base-OT setups and the
// correlated (r_i, r_i + a*2^i) message pairs, and accumulates
// alpha = -sum(r_i) mod n (spec §4.I Phase 1, sender side).
func SenderSetupRound(a curve.Scalar) (*SenderState, []wire.OTMessage, error) {
	setups, err := ot.SenderBatch()
	if err != nil {
		return nil, nil, err
	}

	pairs := make([]ot.BitPair, ot.BitWidth)
	alpha := curve.NewScalar()
	weight := curve.ScalarFromUint32(1)
	for i := 0; i < ot.BitWidth; i++ {
		r, err := curve.RandomScalar()
		if err != nil {
			return nil, nil, err
		}
		delta := a.Mul(weight)
		m1 := r.Add(delta)

		rBytes := r.Bytes()
		m1Bytes := m1.Bytes()
		copy(pairs[i].M0[:], rBytes[:])
		copy(pairs[i].M1[:], m1Bytes[:])

		alpha = alpha.Sub(r)
		weight = weight.Add(weight)
	}

	msgs := make([]wire.OTMessage, ot.BitWidth)
	for i, s := range setups {
		hex, err := s.S.Hex()
		if err != nil {
			return nil, nil, err
		}
		msgs[i] = wire.OTMessage{BitIndex: i, A: hex}
	}

	return &SenderState{setups: setups, pairs: pairs, alpha: alpha}, msgs, nil
}

// Alpha returns this party's additive share of a*b once setup completes.
func (s *SenderState) Alpha() curve.Scalar { return s.alpha }

// ReceiverChooseRound runs this party's BitWidth OT choices against the
// peer's setup points, one choice bit per position of b's binary
// expansion (spec §4.I Phase 1, receiver side).
func ReceiverChooseRound(b curve.Scalar, peerSetup []wire.OTMessage) (*ReceiverState, []wire.OTMessage, error) {
	senderPoints, err := pointsFromMessages(peerSetup, fieldA)
	if err != nil {
		return nil, nil, err
	}
	bits := make([]bool, ot.BitWidth)
	for i := range bits {
		bits[i] = b.Bit(i)
	}

	choices, err := ot.ReceiverBatch(senderPoints, bits)
	if err != nil {
		return nil, nil, err
	}

	msgs := make([]wire.OTMessage, ot.BitWidth)
	for i, c := range choices {
		hex, err := c.R.Hex()
		if err != nil {
			return nil, nil, err
		}
		msgs[i] = wire.OTMessage{BitIndex: i, B: hex}
	}

	return &ReceiverState{choices: choices, bits: bits}, msgs, nil
}

// SenderCompleteRound derives the transfer keys against the peer's chosen
// points and seals the correlated pairs (spec §4.I Phase 2, sender side).
func SenderCompleteRound(state *SenderState, peerChoice []wire.OTMessage) ([]wire.OTMessage, error) {
	receiverPoints, err := pointsFromMessages(peerChoice, fieldB)
	if err != nil {
		return nil, err
	}

	sealed, err := ot.SenderComplete(state.setups, state.pairs, receiverPoints)
	if err != nil {
		return nil, err
	}

	msgs := make([]wire.OTMessage, ot.BitWidth)
	for i, s := range sealed {
		msgs[i] = wire.OTMessage{
			BitIndex: i,
			Enc0:     packSealed(s.Enc0, s.Tag0),
			Enc1:     packSealed(s.Enc1, s.Tag1),
		}
	}
	return msgs, nil
}

// ReceiverCompleteRound opens the chosen ciphertexts from the peer's
// sealed completion and sums them into this party's additive share beta
// (spec §4.I Phase 2, receiver side).
func ReceiverCompleteRound(state *ReceiverState, peerSetup []wire.OTMessage, peerCompletion []wire.OTMessage) (curve.Scalar, error) {
	senderPoints, err := pointsFromMessages(peerSetup, fieldA)
	if err != nil {
		return curve.Scalar{}, err
	}

	sealed := make([]ot.SealedPair, ot.BitWidth)
	for i, m := range peerCompletion {
		enc0, tag0, err := unpackSealed(m.Enc0)
		if err != nil {
			return curve.Scalar{}, err
		}
		enc1, tag1, err := unpackSealed(m.Enc1)
		if err != nil {
			return curve.Scalar{}, err
		}
		sealed[i] = ot.SealedPair{Enc0: enc0, Tag0: tag0, Enc1: enc1, Tag1: tag1}
	}

	opened, err := ot.ReceiverOpen(state.choices, senderPoints, state.bits, sealed)
	if err != nil {
		return curve.Scalar{}, err
	}

	beta := curve.NewScalar()
	for _, o := range opened {
		beta = beta.Add(curve.ScalarFromBytesModN(o[:]))
	}
	return beta, nil
}

type msgField int

const (
	fieldA msgField = iota
	fieldB
)

func pointsFromMessages(msgs []wire.OTMessage, field msgField) ([]curve.Point, error) {
	out := make([]curve.Point, len(msgs))
	for i, m := range msgs {
		hex := m.A
		if field == fieldB {
			hex = m.B
		}
		p, err := curve.PointFromHex(hex)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}
