// Package commitment implements the Pedersen commitment scheme and the
// Schnorr proofs of knowledge spec §4.C describes, built atop pkg/curve and
// pkg/xcrypto. Grounded on the commit/verify shape of
// protocols/lss/keygen/round1.go, generalized from Feldman-vector
// commitments to the scalar/hash commitments the 2-party protocols need.
package commitment

import (
	"github.com/luxfi/nero-mpc-core/pkg/curve"
	"github.com/luxfi/nero-mpc-core/pkg/xcrypto"
)

// hGeneratorTag is the literal domain-separation tag spec §4.C and §9 fix
// as the source of the process-wide Pedersen H generator.
const hGeneratorTag = "NERO_MPC_PEDERSEN_H_GENERATOR"

// hPoint is computed once during package initialization by hashing the
// literal tag into a scalar and multiplying the base point; it is never
// written afterwards, so reads need no synchronization.
var hPoint = func() curve.Point {
	digest := xcrypto.SHA256([]byte(hGeneratorTag))
	scalar := curve.ScalarFromBytesModN(digest[:])
	return scalar.ActOnBase()
}()

// H returns the process-wide Pedersen generator.
func H() curve.Point {
	return hPoint
}

// Pedersen is a commitment C = v*G + b*H to value v with blinding b.
type Pedersen struct {
	C curve.Point
}

// Commit produces C = v*G + b*H.
func Commit(v, b curve.Scalar) Pedersen {
	return Pedersen{C: v.ActOnBase().Add(b.Act(H()))}
}

// Verify recomputes v*G + b*H and checks it against C.
func (p Pedersen) Verify(v, b curve.Scalar) bool {
	return p.C.Equal(Commit(v, b).C)
}
