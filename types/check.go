package types

import (
	"fmt"

	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
)

const (
	// MaxCollectionLength bounds every collection, byte array, ergoTree and
	// asset list a Constant may hold.
	MaxCollectionLength = 65535
	// MaxDepth bounds the nesting of a Constant's type, proposition tree and
	// box registers, counted the way the codec counts it.
	MaxDepth = 64
)

// CheckValue verifies that v structurally matches t, recursing through
// collections, tuples and proposition trees. Group elements must lie on
// Secp256k1 and every length must fit MaxCollectionLength.
func CheckValue(t SType, v Value) error {
	return checkValue(t, v, true)
}

func checkValue(t SType, v Value, points bool) error {
	if v == nil {
		return mismatch(t, v)
	}
	switch t.Kind {
	case KindBoolean, KindByte, KindShort, KindInt, KindLong, KindUnit:
		if v.Kind() != t.Kind {
			return mismatch(t, v)
		}
		return nil
	case KindGroupElement:
		g, ok := v.(GroupElement)
		if !ok {
			return mismatch(t, v)
		}
		if points {
			return Secp256k1.ValidatePoint(g[:])
		}
		return nil
	case KindBigInt:
		b, ok := v.(BigIntValue)
		if !ok {
			return mismatch(t, v)
		}
		_, err := NewBigIntValue(b.Int())
		return err
	case KindSigmaProp:
		sp, ok := v.(SigmaProp)
		if !ok {
			return mismatch(t, v)
		}
		return validateSigma(sp.Prop, points)
	case KindColl:
		if t.Elem == nil {
			return mismatch(t, v)
		}
		if t.IsByteArray() {
			b, ok := v.(BytesValue)
			if !ok {
				return mismatch(t, v)
			}
			return checkLength("Coll[Byte]", len(b))
		}
		items, ok := v.(CollValue)
		if !ok {
			return mismatch(t, v)
		}
		if err := checkLength(t.String(), len(items)); err != nil {
			return err
		}
		for i, it := range items {
			if err := checkValue(*t.Elem, it, points); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		return nil
	case KindTuple:
		items, ok := v.(TupleValue)
		if !ok || len(items) != len(t.Items) {
			return mismatch(t, v)
		}
		for i, it := range items {
			if err := checkValue(t.Items[i], it, points); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		return nil
	case KindBox:
		b, ok := v.(*BoxRecord)
		if !ok || b == nil {
			return mismatch(t, v)
		}
		if err := checkLength("ergoTree", len(b.ErgoTree)); err != nil {
			return err
		}
		return checkLength("assets", len(b.Assets))
	default:
		return fmt.Errorf("%w: invalid type kind %d", sigmaerrors.ErrTypeMismatch, t.Kind)
	}
}

func checkLength(what string, n int) error {
	if n > MaxCollectionLength {
		return fmt.Errorf("%w: %s length %d exceeds %d", sigmaerrors.ErrOverflow, what, n, MaxCollectionLength)
	}
	return nil
}

// checkDepth rejects constants nested deeper than MaxDepth.
func checkDepth(t SType, v Value) error {
	if d := constantDepth(t, v); d > MaxDepth {
		return fmt.Errorf("%w: %s nests %d levels, at most %d", sigmaerrors.ErrDepthExceeded, t, d, MaxDepth)
	}
	return nil
}

func constantDepth(t SType, v Value) int {
	d := t.Depth()
	if vd := valueDepth(v); vd > d {
		return vd
	}
	return d
}

// valueDepth counts the levels a value adds beyond its type: one per
// proposition node and one per box around its register constants.
func valueDepth(v Value) int {
	switch v := v.(type) {
	case SigmaProp:
		return sigmaHeight(v.Prop)
	case *BoxRecord:
		max := 0
		for _, c := range v.AdditionalRegisters.values {
			if d := constantDepth(c.tpe, c.value); d > max {
				max = d
			}
		}
		return 1 + max
	case CollValue:
		return maxDepth([]Value(v))
	case TupleValue:
		return maxDepth([]Value(v))
	default:
		return 0
	}
}

func maxDepth(items []Value) int {
	max := 0
	for _, it := range items {
		if d := valueDepth(it); d > max {
			max = d
		}
	}
	return max
}

func mismatch(t SType, v Value) error {
	return fmt.Errorf("%w: %T for %s", sigmaerrors.ErrTypeMismatch, v, t)
}
