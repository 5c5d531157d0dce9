package types

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
)

// Curve is the group the chain's GroupElement values live in. Implementations
// are immutable and safe for concurrent use.
type Curve interface {
	Name() string
	// ValidatePoint checks a compressed encoding, including the reserved
	// all-zero identity encoding.
	ValidatePoint(b []byte) error
	Generator() GroupElement
}

type secp256k1Curve struct {
	generator GroupElement
}

// Secp256k1 is the curve used by the chain.
var Secp256k1 Curve = newSecp256k1Curve()

func newSecp256k1Curve() secp256k1Curve {
	var g GroupElement
	copy(g[:], secp256k1.PrivKeyFromBytes([]byte{1}).PubKey().SerializeCompressed())
	return secp256k1Curve{generator: g}
}

func (secp256k1Curve) Name() string {
	return "secp256k1"
}

func (c secp256k1Curve) Generator() GroupElement {
	return c.generator
}

func (secp256k1Curve) ValidatePoint(b []byte) error {
	if len(b) != GroupElementSize {
		return fmt.Errorf("%w: want %d bytes, got %d", sigmaerrors.ErrInvalidPoint, GroupElementSize, len(b))
	}
	if isZero(b) {
		return nil
	}
	if b[0] != secp256k1.PubKeyFormatCompressedEven && b[0] != secp256k1.PubKeyFormatCompressedOdd {
		return fmt.Errorf("%w: prefix 0x%02x is not a compressed point", sigmaerrors.ErrInvalidPoint, b[0])
	}
	if _, err := secp256k1.ParsePubKey(b); err != nil {
		return fmt.Errorf("%w: %v", sigmaerrors.ErrInvalidPoint, err)
	}
	return nil
}

func isZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}
