// Package curve wraps secp256k1 scalar and point arithmetic behind a small
// interface. Scalar addition and multiplication use decred's constant-time
// ModNScalar operations; scalar inversion and point multiplication use
// decred's variable-time (NonConst) routines, including for secret
// scalars. Every secret-carrying value in
// the engine is a Scalar produced or consumed through this package; nothing
// above it touches decred's types directly.
package curve

import (
	"crypto/rand"
	"errors"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ErrOffCurve is returned when decoding a point that is not a valid,
// non-identity element of secp256k1.
var ErrOffCurve = errors.New("curve: point is not a valid non-identity secp256k1 point")

// ErrIdentity is returned whenever an operation would produce or consume
// the identity point where a secret-bearing point is required.
var ErrIdentity = errors.New("curve: identity point is not a valid key material")

// Scalar is an element of Z_n, n the secp256k1 group order. The zero value
// is the "unset" scalar from spec §3 and must never be treated as a secret.
type Scalar struct {
	v secp256k1.ModNScalar
}

// Point is an affine element of secp256k1(F_p), or the identity.
type Point struct {
	jac secp256k1.JacobianPoint
	inf bool
}

// NewScalar returns the zero scalar.
func NewScalar() Scalar { return Scalar{} }

// ScalarFromBytesModN reduces a 32-byte big-endian value modulo n.
func ScalarFromBytesModN(b []byte) Scalar {
	var s Scalar
	s.v.SetByteSlice(b)
	return s
}

// ScalarFromUint32 is a convenience constructor for small constants (party
// indices, Lagrange arithmetic).
func ScalarFromUint32(n uint32) Scalar {
	var s Scalar
	s.v.SetInt(n)
	return s
}

// RandomScalarNonZero draws a uniformly random non-zero scalar from the
// given CSPRNG, retrying on the negligible event of a zero or >=n draw
// (spec §4.A, §9 "Open question — zero-scalar handling").
func RandomScalarNonZero(r io.Reader) (Scalar, error) {
	var buf [32]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return Scalar{}, err
		}
		var s Scalar
		overflow := s.v.SetBytes(&buf)
		if overflow != 0 || s.v.IsZero() {
			continue
		}
		return s, nil
	}
}

// RandomScalar draws a random nonzero scalar using crypto/rand.
func RandomScalar() (Scalar, error) {
	return RandomScalarNonZero(rand.Reader)
}

// IsZero reports whether s is the unset/zero scalar.
func (s Scalar) IsZero() bool { return s.v.IsZero() }

// Equal reports whether two scalars are the same element of Z_n.
func (s Scalar) Equal(o Scalar) bool { return s.v.Equals(&o.v) }

// Add returns s + o mod n.
func (s Scalar) Add(o Scalar) Scalar {
	var out Scalar
	out.v.Add2(&s.v, &o.v)
	return out
}

// Sub returns s - o mod n.
func (s Scalar) Sub(o Scalar) Scalar {
	var neg secp256k1.ModNScalar
	neg.NegateVal(&o.v)
	var out Scalar
	out.v.Add2(&s.v, &neg)
	return out
}

// Negate returns -s mod n.
func (s Scalar) Negate() Scalar {
	var out Scalar
	out.v.NegateVal(&s.v)
	return out
}

// Mul returns s * o mod n.
func (s Scalar) Mul(o Scalar) Scalar {
	var out Scalar
	out.v.Mul2(&s.v, &o.v)
	return out
}

// Inverse returns s^-1 mod n. It is an error to invert the zero scalar.
func (s Scalar) Inverse() (Scalar, error) {
	if s.v.IsZero() {
		return Scalar{}, errors.New("curve: cannot invert the zero scalar")
	}
	var out Scalar
	out.v.Set(&s.v)
	out.v.InverseValNonConst()
	return out, nil
}

// IsOverHalfOrder reports whether s > n/2, used for ECDSA low-s normalization.
func (s Scalar) IsOverHalfOrder() bool { return s.v.IsOverHalfOrder() }

// Bit reports the value of bit i (0 = least significant) of s's canonical
// big-endian encoding, used by the Gilboa-style MtA bit decomposition
// (spec §4.I) to avoid any arbitrary-precision integer dependency.
func (s Scalar) Bit(i int) bool {
	b := s.Bytes()
	byteIdx := 31 - i/8
	if byteIdx < 0 || byteIdx > 31 {
		return false
	}
	return b[byteIdx]&(1<<uint(i%8)) != 0
}

// Bytes returns the 32-byte big-endian encoding of s.
func (s Scalar) Bytes() [32]byte { return s.v.Bytes() }

// Hex returns the 64-hex-character zero-padded encoding used on the wire
// (spec §6: "Scalars are 64-hex strings").
func (s Scalar) Hex() string {
	b := s.Bytes()
	return hexEncode(b[:])
}

// ScalarFromHex decodes a 64-hex-character wire scalar.
func ScalarFromHex(h string) (Scalar, error) {
	b, err := hexDecode(h)
	if err != nil {
		return Scalar{}, err
	}
	if len(b) != 32 {
		return Scalar{}, errors.New("curve: scalar hex must encode exactly 32 bytes")
	}
	return ScalarFromBytesModN(b), nil
}

// ActOnBase returns s*G, the scalar acting on the group generator.
func (s Scalar) ActOnBase() Point {
	var jac secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&s.v, &jac)
	return pointFromJacobian(jac)
}

// Act returns s*p, the scalar acting on an arbitrary point.
func (s Scalar) Act(p Point) Point {
	if p.inf {
		return Point{inf: true}
	}
	var jac secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&s.v, &p.jac, &jac)
	return pointFromJacobian(jac)
}

// MarshalBinary encodes s as its 32-byte representation (Feldman-VSS share
// transport format).
func (s Scalar) MarshalBinary() ([]byte, error) {
	b := s.Bytes()
	return b[:], nil
}

// UnmarshalBinary decodes a 32-byte scalar encoding.
func (s *Scalar) UnmarshalBinary(b []byte) error {
	if len(b) != 32 {
		return errors.New("curve: scalar binary encoding must be 32 bytes")
	}
	*s = ScalarFromBytesModN(b)
	return nil
}

// --- Point ---

// NewPoint returns the identity element.
func NewPoint() Point { return Point{inf: true} }

// Generator returns the secp256k1 base point G.
func Generator() Point {
	one := ScalarFromUint32(1)
	return one.ActOnBase()
}

func pointFromJacobian(jac secp256k1.JacobianPoint) Point {
	jac.ToAffine()
	if jac.X.IsZero() && jac.Y.IsZero() {
		return Point{inf: true}
	}
	return Point{jac: jac}
}

// IsIdentity reports whether p is the point at infinity.
func (p Point) IsIdentity() bool { return p.inf }

// Equal reports point equality, including both being the identity.
func (p Point) Equal(o Point) bool {
	if p.inf || o.inf {
		return p.inf == o.inf
	}
	return p.jac.X.Equals(&o.jac.X) && p.jac.Y.Equals(&o.jac.Y)
}

// Add returns p + o.
func (p Point) Add(o Point) Point {
	if p.inf {
		return o
	}
	if o.inf {
		return p
	}
	var out secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p.jac, &o.jac, &out)
	return pointFromJacobian(out)
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point {
	return p.Add(o.Negate())
}

// Negate returns -p.
func (p Point) Negate() Point {
	if p.inf {
		return p
	}
	neg := p
	neg.jac.Y.Negate(1)
	neg.jac.Y.Normalize()
	return neg
}

// XCoordScalar returns p.x mod n, the ECDSA "r" component. Calling this on
// the identity is a programming error and returns the zero scalar, which
// callers MUST treat as nonce degeneracy per spec §9.
func (p Point) XCoordScalar() Scalar {
	if p.inf {
		return Scalar{}
	}
	xBytes := p.jac.X.Bytes()
	return ScalarFromBytesModN(xBytes[:])
}

// YIsOdd reports the parity of p's y-coordinate, used to derive the
// ECDSA recovery id "v".
func (p Point) YIsOdd() bool {
	if p.inf {
		return false
	}
	return p.jac.Y.IsOdd()
}

// MarshalBinary encodes p in SEC1 compressed form (33 bytes), or a single
// zero byte for the identity (internal use only — the identity is never
// sent on the wire as a key-bearing value).
func (p Point) MarshalBinary() ([]byte, error) {
	if p.inf {
		return []byte{0x00}, nil
	}
	pub := secp256k1.NewPublicKey(&p.jac.X, &p.jac.Y)
	return pub.SerializeCompressed(), nil
}

// UnmarshalBinary decodes a SEC1 compressed point. The identity and
// off-curve encodings are rejected (spec §4.A: "decoding validates the
// point is on curve and non-identity; failure is a hard error").
func (p *Point) UnmarshalBinary(b []byte) error {
	pt, err := DecodeCompressed(b)
	if err != nil {
		return err
	}
	*p = pt
	return nil
}

// DecodeCompressed parses a 33-byte SEC1 compressed point.
func DecodeCompressed(b []byte) (Point, error) {
	if len(b) == 1 && b[0] == 0x00 {
		return Point{}, ErrIdentity
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return Point{}, ErrOffCurve
	}
	var jac secp256k1.JacobianPoint
	pub.AsJacobian(&jac)
	jac.ToAffine()
	return Point{jac: jac}, nil
}

// EncodeUncompressed returns the 65-byte SEC1 uncompressed encoding,
// used only for Ethereum address derivation (spec §1, §4.M).
func (p Point) EncodeUncompressed() ([]byte, error) {
	if p.inf {
		return nil, ErrIdentity
	}
	pub := secp256k1.NewPublicKey(&p.jac.X, &p.jac.Y)
	return pub.SerializeUncompressed(), nil
}

// DecodeUncompressed parses a 65-byte SEC1 uncompressed point.
func DecodeUncompressed(b []byte) (Point, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return Point{}, ErrOffCurve
	}
	var jac secp256k1.JacobianPoint
	pub.AsJacobian(&jac)
	jac.ToAffine()
	return Point{jac: jac}, nil
}

// Hex returns the 66-hex-character compressed wire encoding (spec §6).
func (p Point) Hex() (string, error) {
	b, err := p.MarshalBinary()
	if err != nil {
		return "", err
	}
	return hexEncode(b), nil
}

// PointFromHex decodes a 66-hex-character compressed wire point.
func PointFromHex(h string) (Point, error) {
	b, err := hexDecode(h)
	if err != nil {
		return Point{}, err
	}
	return DecodeCompressed(b)
}
