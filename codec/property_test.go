package codec

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/colorfulnotion/sigmacodec/types"
)

func roundTrips(c types.Constant) bool {
	enc, err := EncodeConstant(c)
	if err != nil {
		return false
	}
	dec, err := ParseConstant(enc)
	if err != nil {
		return false
	}
	h, err := EncodeConstantHex(dec)
	if err != nil {
		return false
	}
	again, err := DecodeConstantHex(h)
	return err == nil && c.Equal(dec) && c.Equal(again)
}

func builtRoundTrips(c types.Constant, err error) bool {
	return err == nil && roundTrips(c)
}

func TestConstantRoundTripProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("bool", prop.ForAll(
		func(v bool) bool { return roundTrips(types.ConstantFromBool(v)) },
		gen.Bool(),
	))
	properties.Property("byte", prop.ForAll(
		func(v int8) bool { return roundTrips(types.ConstantFromByte(v)) },
		gen.Int8(),
	))
	properties.Property("short", prop.ForAll(
		func(v int16) bool { return roundTrips(types.ConstantFromInt16(v)) },
		gen.Int16(),
	))
	properties.Property("int", prop.ForAll(
		func(v int32) bool { return roundTrips(types.ConstantFromInt32(v)) },
		gen.Int32(),
	))
	properties.Property("long", prop.ForAll(
		func(v int64) bool { return roundTrips(types.ConstantFromInt64(v)) },
		gen.Int64(),
	))
	properties.Property("big int from four words", prop.ForAll(
		func(a, b, c, d uint64, neg bool) bool {
			n := new(big.Int).SetUint64(a)
			for _, w := range []uint64{b, c, d} {
				n.Lsh(n, 64).Or(n, new(big.Int).SetUint64(w))
			}
			n.Rsh(n, 1)
			if neg {
				n.Neg(n)
			}
			k, err := types.ConstantFromBigInt(n)
			return err == nil && roundTrips(k)
		},
		gen.UInt64(), gen.UInt64(), gen.UInt64(), gen.UInt64(), gen.Bool(),
	))
	properties.Property("byte array", prop.ForAll(
		func(v []byte) bool { return builtRoundTrips(types.ConstantFromBytes(v)) },
		gen.SliceOf(gen.UInt8()),
	))
	properties.Property("long array", prop.ForAll(
		func(v []int64) bool { return builtRoundTrips(types.ConstantFromInt64Slice(v)) },
		gen.SliceOf(gen.Int64()),
	))
	properties.Property("byte array pair", prop.ForAll(
		func(a, b []byte) bool { return builtRoundTrips(types.ConstantFromTupleBytes(a, b)) },
		gen.SliceOf(gen.UInt8()), gen.SliceOf(gen.UInt8()),
	))
	properties.Property("long pair", prop.ForAll(
		func(a, b int64) bool { return roundTrips(types.ConstantFromTupleInt64(a, b)) },
		gen.Int64(), gen.Int64(),
	))
	properties.Property("nested int collections", prop.ForAll(
		func(rows [][]int32) bool {
			outer := make(types.CollValue, len(rows))
			for i, row := range rows {
				inner := make(types.CollValue, len(row))
				for j, v := range row {
					inner[j] = types.IntValue(v)
				}
				outer[i] = inner
			}
			k, err := types.NewConstant(types.SColl(types.SColl(types.SInt)), outer)
			return err == nil && roundTrips(k)
		},
		gen.SliceOf(gen.SliceOf(gen.Int32())),
	))
	properties.Property("mixed tuple", prop.ForAll(
		func(b bool, s int16, l int64, bs []byte) bool {
			tpe := types.STuple(types.SBoolean, types.SShort, types.SLong, types.SByteArray(), types.SUnit)
			v := types.TupleValue{types.BooleanValue(b), types.ShortValue(s), types.LongValue(l), types.BytesValue(bs), types.UnitValue{}}
			k, err := types.NewConstant(tpe, v)
			return err == nil && roundTrips(k)
		},
		gen.Bool(), gen.Int16(), gen.Int64(), gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}

func TestBuilderAcceptedConstantsEncodeProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	properties.Property("byte array length", prop.ForAll(
		func(n int) bool {
			k, err := types.ConstantFromBytes(make([]byte, n))
			if err != nil {
				return n > types.MaxCollectionLength
			}
			_, err = EncodeConstant(k)
			return err == nil
		},
		gen.IntRange(types.MaxCollectionLength-2, types.MaxCollectionLength+2),
	))
	properties.Property("box ergoTree and assets", prop.ForAll(
		func(treeLen, assets int) bool {
			k, err := types.ConstantFromBox(&types.BoxRecord{
				ErgoTree: make([]byte, treeLen),
				Assets:   make([]types.Token, assets),
			})
			if err != nil {
				return treeLen > types.MaxCollectionLength || assets > types.MaxCollectionLength
			}
			_, err = EncodeConstant(k)
			return err == nil
		},
		gen.IntRange(types.MaxCollectionLength-1, types.MaxCollectionLength+1),
		gen.IntRange(types.MaxCollectionLength-1, types.MaxCollectionLength+1),
	))

	properties.TestingRun(t)
}

func TestDecodeNeverPanicsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("arbitrary input decodes or fails cleanly", prop.ForAll(
		func(b []byte) bool {
			k, n, err := DecodeConstantBytes(b)
			if err != nil {
				return n == 0
			}
			return n <= len(b) && !k.IsZero()
		},
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}
