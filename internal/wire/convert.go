package wire

import (
	"github.com/luxfi/nero-mpc-core/pkg/commitment"
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/sharechannel"
)

// This file is the single seam between the typed wire structs above and the
// domain types in pkg/commitment, pkg/curve, pkg/sharechannel. Every
// protocol engine converts through these functions rather than re-deriving
// JSON shapes inline.

func SchnorrProofToWire(p commitment.SchnorrProof) (SchnorrProof, error) {
	r, err := p.R.Hex()
	if err != nil {
		return SchnorrProof{}, err
	}
	return SchnorrProof{R: r, S: p.S.Hex()}, nil
}

func SchnorrProofFromWire(w SchnorrProof) (commitment.SchnorrProof, error) {
	r, err := curve.PointFromHex(w.R)
	if err != nil {
		return commitment.SchnorrProof{}, err
	}
	s, err := curve.ScalarFromHex(w.S)
	if err != nil {
		return commitment.SchnorrProof{}, err
	}
	return commitment.SchnorrProof{R: r, S: s}, nil
}

func TwoWitnessProofToWire(p commitment.TwoWitnessProof) (TwoWitnessProof, error) {
	r1, err := p.R1.Hex()
	if err != nil {
		return TwoWitnessProof{}, err
	}
	r2, err := p.R2.Hex()
	if err != nil {
		return TwoWitnessProof{}, err
	}
	return TwoWitnessProof{R1: r1, R2: r2, S1: p.S1.Hex(), S2: p.S2.Hex()}, nil
}

func TwoWitnessProofFromWire(w TwoWitnessProof) (commitment.TwoWitnessProof, error) {
	r1, err := curve.PointFromHex(w.R1)
	if err != nil {
		return commitment.TwoWitnessProof{}, err
	}
	r2, err := curve.PointFromHex(w.R2)
	if err != nil {
		return commitment.TwoWitnessProof{}, err
	}
	s1, err := curve.ScalarFromHex(w.S1)
	if err != nil {
		return commitment.TwoWitnessProof{}, err
	}
	s2, err := curve.ScalarFromHex(w.S2)
	if err != nil {
		return commitment.TwoWitnessProof{}, err
	}
	return commitment.TwoWitnessProof{R1: r1, R2: r2, S1: s1, S2: s2}, nil
}

func VSSCommitmentToWire(v commitment.VSSCommitment) (VSSCommitment, error) {
	coeffs := make([]string, len(v.Coefficients))
	for i, c := range v.Coefficients {
		hex, err := c.Hex()
		if err != nil {
			return VSSCommitment{}, err
		}
		coeffs[i] = hex
	}
	pok, err := SchnorrProofToWire(v.PoK)
	if err != nil {
		return VSSCommitment{}, err
	}
	return VSSCommitment{Coefficients: coeffs, PoK: pok}, nil
}

func VSSCommitmentFromWire(w VSSCommitment) (commitment.VSSCommitment, error) {
	coeffs := make([]curve.Point, len(w.Coefficients))
	for i, h := range w.Coefficients {
		p, err := curve.PointFromHex(h)
		if err != nil {
			return commitment.VSSCommitment{}, err
		}
		coeffs[i] = p
	}
	pok, err := SchnorrProofFromWire(w.PoK)
	if err != nil {
		return commitment.VSSCommitment{}, err
	}
	return commitment.VSSCommitment{Coefficients: coeffs, PoK: pok}, nil
}

func EncryptedShareToWire(e sharechannel.EncryptedShare) (EncryptedShare, error) {
	eph, err := e.EphemeralPublicKey.Hex()
	if err != nil {
		return EncryptedShare{}, err
	}
	return EncryptedShare{
		From:               e.From,
		To:                 e.To,
		EphemeralPublicKey: eph,
		Ciphertext:         hexEncodeBytes(e.Ciphertext),
		Nonce:              hexEncodeBytes(e.Nonce),
		Tag:                hexEncodeBytes(e.Tag),
	}, nil
}

func EncryptedShareFromWire(w EncryptedShare) (sharechannel.EncryptedShare, error) {
	eph, err := curve.PointFromHex(w.EphemeralPublicKey)
	if err != nil {
		return sharechannel.EncryptedShare{}, err
	}
	ciphertext, err := hexDecodeBytes(w.Ciphertext)
	if err != nil {
		return sharechannel.EncryptedShare{}, err
	}
	nonce, err := hexDecodeBytes(w.Nonce)
	if err != nil {
		return sharechannel.EncryptedShare{}, err
	}
	tag, err := hexDecodeBytes(w.Tag)
	if err != nil {
		return sharechannel.EncryptedShare{}, err
	}
	return sharechannel.EncryptedShare{
		From:               w.From,
		To:                 w.To,
		EphemeralPublicKey: eph,
		Ciphertext:         ciphertext,
		Nonce:              nonce,
		Tag:                tag,
	}, nil
}
