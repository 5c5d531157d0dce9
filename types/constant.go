package types

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
)

// Constant is an immutable (type, value) pair, the unit of serialization.
// Builders copy their inputs and accessors return copies.
type Constant struct {
	tpe   SType
	value Value
}

// NewConstant pairs t with v after checking that v matches t and fits the
// wire limits, so the result always encodes with the default codec.
func NewConstant(t SType, v Value) (Constant, error) {
	return newConstant(t, v, true)
}

// NewLenientConstant is NewConstant without the curve check on group
// elements. Codecs configured to skip point checks build constants with it.
func NewLenientConstant(t SType, v Value) (Constant, error) {
	return newConstant(t, v, false)
}

func newConstant(t SType, v Value, points bool) (Constant, error) {
	if err := t.Valid(); err != nil {
		return Constant{}, fmt.Errorf("%w: %v", sigmaerrors.ErrTypeMismatch, err)
	}
	if err := checkValue(t, v, points); err != nil {
		return Constant{}, err
	}
	if err := checkDepth(t, v); err != nil {
		return Constant{}, err
	}
	return Constant{tpe: t.clone(), value: CloneValue(v)}, nil
}

// MustConstant is NewConstant for values known to be well formed.
func MustConstant(t SType, v Value) Constant {
	c, err := NewConstant(t, v)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Constant) Type() SType {
	return c.tpe.clone()
}

func (c Constant) Value() Value {
	return CloneValue(c.value)
}

// IsZero reports the zero Constant, which holds no type.
func (c Constant) IsZero() bool {
	return c.tpe.Kind == KindInvalid
}

func (c Constant) Equal(o Constant) bool {
	return c.tpe.Equal(o.tpe) && ValueEqual(c.value, o.value)
}

func (c Constant) String() string {
	if c.IsZero() {
		return "Constant(<empty>)"
	}
	return fmt.Sprintf("%s(%s)", c.tpe, FormatValue(c.value))
}

func ConstantFromBool(v bool) Constant {
	return Constant{tpe: SBoolean, value: BooleanValue(v)}
}

func ConstantFromByte(v int8) Constant {
	return Constant{tpe: SByte, value: ByteValue(v)}
}

func ConstantFromInt16(v int16) Constant {
	return Constant{tpe: SShort, value: ShortValue(v)}
}

func ConstantFromInt32(v int32) Constant {
	return Constant{tpe: SInt, value: IntValue(v)}
}

func ConstantFromInt64(v int64) Constant {
	return Constant{tpe: SLong, value: LongValue(v)}
}

func ConstantFromUnit() Constant {
	return Constant{tpe: SUnit, value: UnitValue{}}
}

// ConstantFromBigInt fails with an overflow outside the 256-bit signed range.
func ConstantFromBigInt(n *big.Int) (Constant, error) {
	v, err := NewBigIntValue(n)
	if err != nil {
		return Constant{}, err
	}
	return Constant{tpe: SBigInt, value: v}, nil
}

// ConstantFromGroupElement fails with InvalidPoint off the curve.
func ConstantFromGroupElement(g GroupElement) (Constant, error) {
	if err := Secp256k1.ValidatePoint(g[:]); err != nil {
		return Constant{}, err
	}
	return Constant{tpe: SGroupElement, value: g}, nil
}

// ConstantFromECPointBytes validates b as a compressed secp256k1 point.
func ConstantFromECPointBytes(b []byte) (Constant, error) {
	g, err := ParseGroupElement(b)
	if err != nil {
		return Constant{}, err
	}
	return ConstantFromGroupElement(g)
}

func ConstantFromSigmaProp(sp SigmaProp) (Constant, error) {
	return NewConstant(SSigmaProp, sp)
}

// ConstantFromBytes builds a Coll[Byte] constant of at most
// MaxCollectionLength bytes.
func ConstantFromBytes(b []byte) (Constant, error) {
	if err := checkLength("Coll[Byte]", len(b)); err != nil {
		return Constant{}, err
	}
	out := make(BytesValue, len(b))
	copy(out, b)
	return Constant{tpe: SByteArray(), value: out}, nil
}

// ConstantFromInt64Slice builds a Coll[Long] constant.
func ConstantFromInt64Slice(vs []int64) (Constant, error) {
	if err := checkLength("Coll[Long]", len(vs)); err != nil {
		return Constant{}, err
	}
	items := make(CollValue, len(vs))
	for i, v := range vs {
		items[i] = LongValue(v)
	}
	return Constant{tpe: SColl(SLong), value: items}, nil
}

// ConstantFromInt64Strings builds a Coll[Long] constant from decimal strings.
func ConstantFromInt64Strings(ss []string) (Constant, error) {
	vs := make([]int64, len(ss))
	for i, s := range ss {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Constant{}, fmt.Errorf("element %d: %w", i, err)
		}
		vs[i] = v
	}
	return ConstantFromInt64Slice(vs)
}

// ConstantFromTupleBytes builds a (Coll[Byte], Coll[Byte]) constant.
func ConstantFromTupleBytes(a, b []byte) (Constant, error) {
	if err := checkLength("Coll[Byte]", len(a)); err != nil {
		return Constant{}, err
	}
	if err := checkLength("Coll[Byte]", len(b)); err != nil {
		return Constant{}, err
	}
	return Constant{
		tpe:   STuple(SByteArray(), SByteArray()),
		value: TupleValue{CloneValue(BytesValue(a)), CloneValue(BytesValue(b))},
	}, nil
}

// ConstantFromTupleInt64 builds a (Long, Long) constant.
func ConstantFromTupleInt64(a, b int64) Constant {
	return Constant{tpe: STuple(SLong, SLong), value: TupleValue{LongValue(a), LongValue(b)}}
}

func ConstantFromBox(b *BoxRecord) (Constant, error) {
	return NewConstant(SBox, b)
}

func (c Constant) wrongShape(want string) error {
	return fmt.Errorf("%w: constant is %s, not %s", sigmaerrors.ErrTypeMismatch, c.tpe, want)
}

func (c Constant) Bool() (bool, error) {
	v, ok := c.value.(BooleanValue)
	if !ok {
		return false, c.wrongShape("Boolean")
	}
	return bool(v), nil
}

func (c Constant) Byte() (int8, error) {
	v, ok := c.value.(ByteValue)
	if !ok {
		return 0, c.wrongShape("Byte")
	}
	return int8(v), nil
}

func (c Constant) Int16() (int16, error) {
	v, ok := c.value.(ShortValue)
	if !ok {
		return 0, c.wrongShape("Short")
	}
	return int16(v), nil
}

func (c Constant) Int32() (int32, error) {
	v, ok := c.value.(IntValue)
	if !ok {
		return 0, c.wrongShape("Int")
	}
	return int32(v), nil
}

func (c Constant) Int64() (int64, error) {
	v, ok := c.value.(LongValue)
	if !ok {
		return 0, c.wrongShape("Long")
	}
	return int64(v), nil
}

func (c Constant) BigInt() (*big.Int, error) {
	v, ok := c.value.(BigIntValue)
	if !ok {
		return nil, c.wrongShape("BigInt")
	}
	return v.Int(), nil
}

func (c Constant) GroupElement() (GroupElement, error) {
	v, ok := c.value.(GroupElement)
	if !ok {
		return GroupElement{}, c.wrongShape("GroupElement")
	}
	return v, nil
}

func (c Constant) SigmaProp() (SigmaProp, error) {
	v, ok := c.value.(SigmaProp)
	if !ok {
		return SigmaProp{}, c.wrongShape("SigmaProp")
	}
	return SigmaProp{Prop: cloneSigma(v.Prop)}, nil
}

// Bytes extracts a Coll[Byte] constant.
func (c Constant) Bytes() ([]byte, error) {
	v, ok := c.value.(BytesValue)
	if !ok {
		return nil, c.wrongShape("Coll[Byte]")
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Int64Slice extracts a Coll[Long] constant.
func (c Constant) Int64Slice() ([]int64, error) {
	items, ok := c.value.(CollValue)
	if !ok || !c.tpe.Equal(SColl(SLong)) {
		return nil, c.wrongShape("Coll[Long]")
	}
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = int64(it.(LongValue))
	}
	return out, nil
}

// Int64Strings extracts a Coll[Long] constant as decimal strings.
func (c Constant) Int64Strings() ([]string, error) {
	vs, err := c.Int64Slice()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = strconv.FormatInt(v, 10)
	}
	return out, nil
}

// TupleBytes extracts a (Coll[Byte], Coll[Byte]) constant.
func (c Constant) TupleBytes() ([]byte, []byte, error) {
	if !c.tpe.Equal(STuple(SByteArray(), SByteArray())) {
		return nil, nil, c.wrongShape("(Coll[Byte], Coll[Byte])")
	}
	items := c.value.(TupleValue)
	a := items[0].(BytesValue)
	b := items[1].(BytesValue)
	return append([]byte(nil), a...), append([]byte(nil), b...), nil
}

// TupleInt64 extracts a (Long, Long) constant.
func (c Constant) TupleInt64() (int64, int64, error) {
	if !c.tpe.Equal(STuple(SLong, SLong)) {
		return 0, 0, c.wrongShape("(Long, Long)")
	}
	items := c.value.(TupleValue)
	return int64(items[0].(LongValue)), int64(items[1].(LongValue)), nil
}

func (c Constant) Box() (*BoxRecord, error) {
	v, ok := c.value.(*BoxRecord)
	if !ok {
		return nil, c.wrongShape("Box")
	}
	return v.Clone(), nil
}
