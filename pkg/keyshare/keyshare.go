// Package keyshare defines the two KeyShare shapes of spec §3: the
// additive-protocol share (Pedersen DKG, Shamir-style) and the
// multiplicative-protocol share (DKLS-style). Both are what Store persists,
// JSON-encoded, inside an encrypted envelope.
package keyshare

import (
	"encoding/hex"

	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/xcrypto"
)

// ProtocolVersion is the tag stamped into every additive KeyShare.
const ProtocolVersion = "nero-mpc-additive-v1"

// Additive is the additive-protocol KeyShare of spec §3.
type Additive struct {
	PartyID         int    `json:"partyId"`
	PrivateShare    string `json:"privateShare"`
	PublicShare     string `json:"publicShare"`
	JointPublicKey  string `json:"jointPublicKey"`
	Threshold       int    `json:"threshold"`
	TotalParties    int    `json:"totalParties"`
	ProtocolVersion string `json:"protocolVersion"`
	Commitment      string `json:"commitment"`
}

// NewAdditive builds an Additive KeyShare, computing the integrity
// commitment as a domain-separated hash of the private scalar (spec §3:
// "commitment (domain-separated hash of the scalar for integrity checks)").
func NewAdditive(partyID int, private curve.Scalar, public, jointPublicKey curve.Point) (Additive, error) {
	privBytes := private.Bytes()
	commitDigest := xcrypto.SHA256([]byte("NERO_MPC_KEYSHARE_COMMITMENT"), privBytes[:])

	pubHex, err := public.Hex()
	if err != nil {
		return Additive{}, err
	}
	jointHex, err := jointPublicKey.Hex()
	if err != nil {
		return Additive{}, err
	}
	return Additive{
		PartyID:         partyID,
		PrivateShare:    private.Hex(),
		PublicShare:     pubHex,
		JointPublicKey:  jointHex,
		Threshold:       2,
		TotalParties:    2,
		ProtocolVersion: ProtocolVersion,
		Commitment:      hex.EncodeToString(commitDigest[:]),
	}, nil
}

// VerifyIntegrity recomputes the commitment and checks it matches, guarding
// against silent on-disk corruption.
func (a Additive) VerifyIntegrity() bool {
	priv, err := curve.ScalarFromHex(a.PrivateShare)
	if err != nil {
		return false
	}
	privBytes := priv.Bytes()
	digest := xcrypto.SHA256([]byte("NERO_MPC_KEYSHARE_COMMITMENT"), privBytes[:])
	return hex.EncodeToString(digest[:]) == a.Commitment
}

// PrivateScalar decodes the stored private share.
func (a Additive) PrivateScalar() (curve.Scalar, error) {
	return curve.ScalarFromHex(a.PrivateShare)
}

// JointPublicPoint decodes the stored joint public key.
func (a Additive) JointPublicPoint() (curve.Point, error) {
	return curve.PointFromHex(a.JointPublicKey)
}

// MultiplicativeProtocolVersion tags DKLS-style shares.
const MultiplicativeProtocolVersion = "nero-mpc-multiplicative-v1"

// Multiplicative is the multiplicative-protocol KeyShare of spec §3.
type Multiplicative struct {
	PartyID         int    `json:"partyId"`
	SecretShare     string `json:"secretShare"`
	PublicShare     string `json:"publicShare"`
	JointPublicKey  string `json:"jointPublicKey"`
	ProtocolVersion string `json:"protocolVersion"`
}

// SecretScalar decodes the stored secret share.
func (m Multiplicative) SecretScalar() (curve.Scalar, error) {
	return curve.ScalarFromHex(m.SecretShare)
}

// JointPublicPoint decodes the stored joint public key.
func (m Multiplicative) JointPublicPoint() (curve.Point, error) {
	return curve.PointFromHex(m.JointPublicKey)
}
