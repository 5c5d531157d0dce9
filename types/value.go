package types

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/colorfulnotion/sigmacodec/common"
	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
)

// BigIntBits is the signed width of BigInt values.
const BigIntBits = 256

// Value is a decoded value. The set of implementations is closed and mirrors
// the SType kinds; a Value only has meaning next to the SType it matches.
type Value interface {
	Kind() TypeKind
}

type (
	BooleanValue bool
	ByteValue    int8
	ShortValue   int16
	IntValue     int32
	LongValue    int64
	UnitValue    struct{}

	// BytesValue is the Coll[Byte] representation.
	BytesValue []byte
	// CollValue holds the elements of any collection other than Coll[Byte].
	CollValue []Value
	// TupleValue holds tuple items in declared order.
	TupleValue []Value
)

func (BooleanValue) Kind() TypeKind { return KindBoolean }
func (ByteValue) Kind() TypeKind    { return KindByte }
func (ShortValue) Kind() TypeKind   { return KindShort }
func (IntValue) Kind() TypeKind     { return KindInt }
func (LongValue) Kind() TypeKind    { return KindLong }
func (UnitValue) Kind() TypeKind    { return KindUnit }
func (BytesValue) Kind() TypeKind   { return KindColl }
func (CollValue) Kind() TypeKind    { return KindColl }
func (TupleValue) Kind() TypeKind   { return KindTuple }

// BigIntValue is a signed integer of at most BigIntBits bits.
type BigIntValue struct {
	n *big.Int
}

var (
	bigIntMax = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), BigIntBits-1), big.NewInt(1))
	bigIntMin = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), BigIntBits-1))
)

// NewBigIntValue copies n, failing with an overflow outside the 256-bit range.
func NewBigIntValue(n *big.Int) (BigIntValue, error) {
	if n == nil {
		return BigIntValue{}, fmt.Errorf("%w: nil BigInt", sigmaerrors.ErrTypeMismatch)
	}
	if n.Cmp(bigIntMax) > 0 || n.Cmp(bigIntMin) < 0 {
		return BigIntValue{}, fmt.Errorf("%w: %s does not fit %d bits", sigmaerrors.ErrOverflow, n, BigIntBits)
	}
	return BigIntValue{n: new(big.Int).Set(n)}, nil
}

func (BigIntValue) Kind() TypeKind { return KindBigInt }

// Int returns a copy of the integer.
func (v BigIntValue) Int() *big.Int {
	if v.n == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v.n)
}

// CloneValue deep-copies v so the copy shares no mutable memory with it.
func CloneValue(v Value) Value {
	switch v := v.(type) {
	case BytesValue:
		out := make(BytesValue, len(v))
		copy(out, v)
		return out
	case CollValue:
		out := make(CollValue, len(v))
		for i, it := range v {
			out[i] = CloneValue(it)
		}
		return out
	case TupleValue:
		out := make(TupleValue, len(v))
		for i, it := range v {
			out[i] = CloneValue(it)
		}
		return out
	case BigIntValue:
		return BigIntValue{n: v.Int()}
	case SigmaProp:
		return SigmaProp{Prop: cloneSigma(v.Prop)}
	case *BoxRecord:
		return v.Clone()
	default:
		return v
	}
}

// ValueEqual compares two values structurally.
func ValueEqual(a, b Value) bool {
	switch a := a.(type) {
	case BytesValue:
		b, ok := b.(BytesValue)
		return ok && string(a) == string(b)
	case CollValue:
		b, ok := b.(CollValue)
		return ok && valuesEqual(a, b)
	case TupleValue:
		b, ok := b.(TupleValue)
		return ok && valuesEqual(a, b)
	case BigIntValue:
		b, ok := b.(BigIntValue)
		return ok && a.Int().Cmp(b.Int()) == 0
	case SigmaProp:
		b, ok := b.(SigmaProp)
		return ok && sigmaEqual(a.Prop, b.Prop)
	case *BoxRecord:
		b, ok := b.(*BoxRecord)
		return ok && a.Equal(b)
	default:
		return a == b
	}
}

func valuesEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ValueEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// FormatValue renders v for logs and the command line.
func FormatValue(v Value) string {
	switch v := v.(type) {
	case nil:
		return "<nil>"
	case BooleanValue:
		return fmt.Sprintf("%t", bool(v))
	case ByteValue, ShortValue, IntValue, LongValue:
		return fmt.Sprintf("%d", v)
	case BigIntValue:
		return v.Int().String()
	case UnitValue:
		return "()"
	case BytesValue:
		return common.Bytes2Hex(v)
	case GroupElement:
		return v.String()
	case SigmaProp:
		return v.String()
	case CollValue:
		parts := make([]string, len(v))
		for i, it := range v {
			parts[i] = FormatValue(it)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TupleValue:
		parts := make([]string, len(v))
		for i, it := range v {
			parts[i] = FormatValue(it)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *BoxRecord:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
