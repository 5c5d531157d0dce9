package types

import (
	"github.com/colorfulnotion/sigmacodec/common"
)

// GroupElementSize is the width of a compressed point: a parity byte and the
// 32-byte x coordinate.
const GroupElementSize = 33

// GroupElement is a compressed curve point. The zero value is the identity.
type GroupElement [GroupElementSize]byte

// Identity is the point at infinity.
var Identity GroupElement

// NewGroupElement copies b after checking it against curve.
func NewGroupElement(curve Curve, b []byte) (GroupElement, error) {
	var g GroupElement
	if err := curve.ValidatePoint(b); err != nil {
		return g, err
	}
	copy(g[:], b)
	return g, nil
}

// ParseGroupElement is NewGroupElement on the chain's curve.
func ParseGroupElement(b []byte) (GroupElement, error) {
	return NewGroupElement(Secp256k1, b)
}

func (GroupElement) Kind() TypeKind { return KindGroupElement }

func (g GroupElement) IsIdentity() bool {
	return g == Identity
}

func (g GroupElement) Bytes() []byte {
	out := make([]byte, GroupElementSize)
	copy(out, g[:])
	return out
}

func (g GroupElement) String() string {
	return common.Bytes2Hex(g[:])
}
