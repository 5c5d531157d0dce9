package codec

import (
	"math"
	"math/big"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colorfulnotion/sigmacodec/common"
	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
	"github.com/colorfulnotion/sigmacodec/types"
	"github.com/colorfulnotion/sigmacodec/vlq"
)

const (
	testPointHex = "02d6b2141c21e4f337e9b065a031a6269fb5a49253094fc6243d38662eb765db00"
	testTreeHex  = "100204a00b08cd021dde34603426402615658f1d970cfa7c7bd92ac81a8b16eeebff264d59ce4604ea02d192a39a8cc7a70173007301"
	testBoxHex   = "63e56847ed19b3dc6b72828fcfb992fdf7310828cf291221269b7ffc72fd66706e808c82f5f60336100204a00b08cd021dde34603426402615658f1d970cfa7c7bd92ac81a8b16eeebff264d59ce4604ea02d192a39a8cc7a7017300730100d9b011009148408c04c2e38a6402a7950d6157730fa7d49e9ab3b9cadec481d7769918e901"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := common.Hex2Bytes(s)
	require.NoError(t, err)
	return b
}

func testPoint(t *testing.T) types.GroupElement {
	t.Helper()
	g, err := types.ParseGroupElement(mustHex(t, testPointHex))
	require.NoError(t, err)
	return g
}

func bytesConstant(t *testing.T, b []byte) types.Constant {
	t.Helper()
	c, err := types.ConstantFromBytes(b)
	require.NoError(t, err)
	return c
}

func fixtureBox(t *testing.T) *types.BoxRecord {
	t.Helper()
	return &types.BoxRecord{
		BoxID:          common.MustHexToDigest32("e56847ed19b3dc6b72828fcfb992fdf7310828cf291221269b7ffc72fd66706e"),
		Value:          67500000000,
		ErgoTree:       mustHex(t, testTreeHex),
		CreationHeight: 284761,
		TransactionID:  common.MustHexToDigest32("9148408c04c2e38a6402a7950d6157730fa7d49e9ab3b9cadec481d7769918e9"),
		Index:          1,
	}
}

func TestConstantVectors(t *testing.T) {
	point := testPoint(t)
	longs, err := types.ConstantFromInt64Strings([]string{"9223372036854775807", "1", "2"})
	require.NoError(t, err)
	pair, err := types.ConstantFromTupleBytes([]byte{1, 2}, []byte{3})
	require.NoError(t, err)
	ge, err := types.ConstantFromGroupElement(point)
	require.NoError(t, err)

	cases := []struct {
		name     string
		constant types.Constant
		hex      string
	}{
		{"int", types.ConstantFromInt32(777689414), "048ce5d4e505"},
		{"int 999999999", types.ConstantFromInt32(999999999), "04fea7d6b907"},
		{"long max", types.ConstantFromInt64(math.MaxInt64), "05feffffffffffffffff01"},
		{"byte array", bytesConstant(t, []byte{1, 1, 2, 255}), "0e04010102ff"},
		{"long pair", types.ConstantFromTupleInt64(math.MaxInt64, 29428734987293874), "59feffffffffffffffff01e4d2daf1e9d1c668"},
		{"long array", longs, "1103feffffffffffffffff010204"},
		{"byte array pair", pair, "3c0e0e0201020103"},
		{"group element", ge, "07" + testPointHex},
		{"bool", types.ConstantFromBool(true), "0101"},
		{"byte", types.ConstantFromByte(-1), "02ff"},
		{"short", types.ConstantFromInt16(-1), "0301"},
		{"unit", types.ConstantFromUnit(), "62"},
		{"empty byte array", bytesConstant(t, nil), "0e00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EncodeConstantHex(tc.constant)
			require.NoError(t, err)
			assert.Equal(t, tc.hex, got)

			decoded, n, err := DecodeConstantBytes(mustHex(t, tc.hex))
			require.NoError(t, err)
			assert.Equal(t, len(tc.hex)/2, n)
			assert.True(t, tc.constant.Equal(decoded), "decoded %s, want %s", decoded, tc.constant)
		})
	}
}

func TestBoxConstant(t *testing.T) {
	box := fixtureBox(t)
	c, err := types.ConstantFromBox(box)
	require.NoError(t, err)

	got, err := EncodeConstantHex(c)
	require.NoError(t, err)
	assert.Equal(t, testBoxHex, got)

	decoded, err := DecodeConstantHex(testBoxHex)
	require.NoError(t, err)
	b, err := decoded.Box()
	require.NoError(t, err)
	assert.True(t, box.Equal(b))
	assert.Equal(t, int64(67500000000), b.Value)
	assert.Equal(t, uint32(284761), b.CreationHeight)
	assert.Equal(t, uint16(1), b.Index)
	assert.Empty(t, b.Assets)
	assert.Equal(t, 0, b.AdditionalRegisters.Len())
}

func TestBoxWithAssetsAndRegisters(t *testing.T) {
	box := fixtureBox(t)
	box.Assets = []types.Token{
		{TokenID: common.Blake2b256([]byte("a")), Amount: 1},
		{TokenID: common.Blake2b256([]byte("b")), Amount: math.MaxInt64},
	}
	inner := fixtureBox(t)
	innerConst, err := types.ConstantFromBox(inner)
	require.NoError(t, err)
	regs, err := types.RegistersFromSlice([]types.Constant{
		types.ConstantFromInt32(7),
		bytesConstant(t, []byte("hello")),
		innerConst,
	})
	require.NoError(t, err)
	box.AdditionalRegisters = regs

	enc, err := EncodeBox(box)
	require.NoError(t, err)
	decoded, err := ParseBox(enc)
	require.NoError(t, err)
	assert.True(t, box.Equal(decoded))

	r6, ok := decoded.AdditionalRegisters.Get(types.R6)
	require.True(t, ok)
	nested, err := r6.Box()
	require.NoError(t, err)
	assert.True(t, inner.Equal(nested))

	_, err = ParseBox(append(enc, 0))
	assert.ErrorIs(t, err, sigmaerrors.ErrTrailingBytes)
}

func TestBoxRegisterCount(t *testing.T) {
	enc, err := EncodeBox(fixtureBox(t))
	require.NoError(t, err)
	// The register count sits right before the 32-byte transaction id and
	// the one-byte index.
	countAt := len(enc) - common.DigestLength - 2
	require.Equal(t, byte(0), enc[countAt])

	bad := append([]byte(nil), enc...)
	bad[countAt] = 7
	_, err = ParseBox(bad)
	assert.ErrorIs(t, err, sigmaerrors.ErrMalformedRegisters)
}

func TestTypeDescriptors(t *testing.T) {
	cases := []struct {
		tpe types.SType
		hex string
	}{
		{types.SInt, "04"},
		{types.SByteArray(), "0e"},
		{types.SColl(types.SColl(types.SInt)), "1c"},
		{types.SColl(types.SColl(types.SColl(types.SInt))), "0c1c"},
		{types.SColl(types.SUnit), "0c62"},
		{types.SColl(types.SBox), "0c63"},
		{types.STuple(types.SInt, types.SByteArray()), "400e"},
		{types.STuple(types.SByteArray(), types.SInt), "4c0e"},
		{types.STuple(types.SUnit, types.SInt), "4c62"},
		{types.STuple(types.SByteArray(), types.SColl(types.SInt)), "3c0e10"},
		{types.STuple(types.SLong, types.SLong), "59"},
		{types.STuple(types.SInt, types.SLong, types.SByte), "48040502"},
		{types.STuple(types.SInt, types.SInt, types.SInt, types.SInt), "5404040404"},
		{types.STuple(types.SBoolean, types.SByte, types.SShort, types.SInt, types.SLong), "60050102030405"},
		{types.SColl(types.STuple(types.SByteArray(), types.SLong)), "0c4d0e"},
		{types.SSigmaProp, "08"},
		{types.SBigInt, "06"},
	}
	for _, tc := range cases {
		t.Run(tc.tpe.String(), func(t *testing.T) {
			enc, err := EncodeType(tc.tpe)
			require.NoError(t, err)
			assert.Equal(t, tc.hex, common.Bytes2Hex(enc))

			r := vlq.NewReader(enc)
			dec, err := DecodeType(r)
			require.NoError(t, err)
			assert.True(t, tc.tpe.Equal(dec), "decoded %s", dec)
			assert.Equal(t, 0, r.Remaining())
		})
	}
}

func TestNonCanonicalTypeForms(t *testing.T) {
	// Pair1 with a second embeddable item decodes to the symmetric pair.
	dec, err := DecodeType(vlq.NewReader([]byte{0x40, 0x04}))
	require.NoError(t, err)
	assert.True(t, types.STuple(types.SInt, types.SInt).Equal(dec))

	// An empty nested collection slot reads the element type that follows.
	dec, err = DecodeType(vlq.NewReader([]byte{0x18, 0x63}))
	require.NoError(t, err)
	assert.True(t, types.SColl(types.SColl(types.SBox)).Equal(dec))
}

func TestUnknownTypeTags(t *testing.T) {
	for _, h := range []string{"00", "09", "0b", "15", "24", "2c", "30", "61", "64", "ff", "6001", "6000"} {
		_, err := ParseConstant(mustHex(t, h))
		assert.ErrorIs(t, err, sigmaerrors.ErrUnknownType, h)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		hex  string
		want error
	}{
		{"empty", "", sigmaerrors.ErrTruncated},
		{"missing int", "04", sigmaerrors.ErrTruncated},
		{"unterminated varint", "0480808080", sigmaerrors.ErrTruncated},
		{"int too wide", "048080808010", sigmaerrors.ErrOverflow},
		{"short too wide", "03808004", sigmaerrors.ErrOverflow},
		{"bad bool", "0102", sigmaerrors.ErrTypeMismatch},
		{"short byte array", "0e04ff", sigmaerrors.ErrTruncated},
		{"coll too long", "0e808004", sigmaerrors.ErrOverflow},
		{"long coll short input", "1105020202", sigmaerrors.ErrTruncated},
		{"missing tuple item", "5902", sigmaerrors.ErrTruncated},
		{"short point", "0702", sigmaerrors.ErrTruncated},
		{"bad point prefix", "0705" + strings.Repeat("00", 32), sigmaerrors.ErrInvalidPoint},
		{"unknown sigma op", "087f", sigmaerrors.ErrUnknownSigmaProp},
		{"empty conjecture", "089700", sigmaerrors.ErrTypeMismatch},
		{"threshold above count", "089803" + "01cd" + testPointHex, sigmaerrors.ErrTypeMismatch},
		{"trailing", "010100", sigmaerrors.ErrTrailingBytes},
		{"odd hex", "010", sigmaerrors.ErrInvalidHex},
		{"not hex", "zz", sigmaerrors.ErrInvalidHex},
		{"big int too wide", "06" + strings.Repeat("ff", 36) + "7f", sigmaerrors.ErrOverflow},
		{"nested unit explosion", "0c0c62" + "02" + "c0b802" + "c0b802", sigmaerrors.ErrOverflow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeConstantHex(tc.hex)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.want, sigmaerrors.Classify(err))
		})
	}
}

func TestDecodeConstantBytesLeavesRest(t *testing.T) {
	c, n, err := DecodeConstantBytes([]byte{0x01, 0x01, 0xff, 0xff})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	v, err := c.Bool()
	require.NoError(t, err)
	assert.True(t, v)

	r := vlq.NewReader([]byte{0x04, 0x02, 0x05, 0x03})
	first, err := DecodeConstant(r)
	require.NoError(t, err)
	second, err := DecodeConstant(r)
	require.NoError(t, err)
	assert.Equal(t, "Int(1)", first.String())
	assert.Equal(t, "Long(-2)", second.String())
	assert.Equal(t, 0, r.Remaining())
}

func TestDepthLimit(t *testing.T) {
	deep := append([]byte(strings.Repeat("\x0c", DefaultMaxDepth+1)), 0x63)
	_, err := ParseConstant(deep)
	assert.ErrorIs(t, err, sigmaerrors.ErrDepthExceeded)

	tpe := types.SBox
	for i := 0; i < DefaultMaxDepth; i++ {
		tpe = types.SColl(tpe)
	}
	_, err = EncodeType(tpe)
	assert.ErrorIs(t, err, sigmaerrors.ErrDepthExceeded)

	shallow, err := New(Config{MaxDepth: 3})
	require.NoError(t, err)
	_, err = shallow.ParseConstant([]byte{0x0c, 0x0c, 0x0c, 0x63, 0x00})
	assert.ErrorIs(t, err, sigmaerrors.ErrDepthExceeded)
	_, err = shallow.ParseConstant([]byte{0x0c, 0x0c, 0x63, 0x00})
	assert.NoError(t, err)
}

func TestBigIntConstants(t *testing.T) {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	min := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
	for _, n := range []*big.Int{big.NewInt(0), big.NewInt(-1), big.NewInt(1 << 40), max, min} {
		c, err := types.ConstantFromBigInt(n)
		require.NoError(t, err)
		enc, err := EncodeConstant(c)
		require.NoError(t, err)
		dec, err := ParseConstant(enc)
		require.NoError(t, err)
		got, err := dec.BigInt()
		require.NoError(t, err)
		assert.Equal(t, 0, n.Cmp(got), "%s != %s", n, got)
	}

	c, err := types.ConstantFromBigInt(big.NewInt(-1))
	require.NoError(t, err)
	assert.Equal(t, "0601", common.Bytes2Hex(MustEncodeConstant(c)))
}

func TestSigmaPropConstants(t *testing.T) {
	p := testPoint(t)
	g := types.Secp256k1.Generator()

	dlog, err := types.ConstantFromSigmaProp(types.SigmaProp{Prop: types.ProveDlog{H: p}})
	require.NoError(t, err)
	h, err := EncodeConstantHex(dlog)
	require.NoError(t, err)
	assert.Equal(t, "08cd"+testPointHex, h)

	threshold, err := types.ConstantFromSigmaProp(types.SigmaProp{Prop: types.CThreshold{
		K: 1,
		Children: []types.SigmaBoolean{
			types.ProveDlog{H: g},
			types.COR{Children: []types.SigmaBoolean{
				types.ProveDlog{H: p},
				types.ProveDHTuple{G: g, H: p, U: g, V: p},
			}},
		},
	}})
	require.NoError(t, err)
	enc, err := EncodeConstant(threshold)
	require.NoError(t, err)
	assert.Equal(t, "08980102cd", common.Bytes2Hex(enc[:5]))
	dec, err := ParseConstant(enc)
	require.NoError(t, err)
	assert.True(t, threshold.Equal(dec))
}

func TestInvalidPointOnEncode(t *testing.T) {
	var bad types.GroupElement
	bad[0] = 0x05
	k, err := types.NewLenientConstant(types.SGroupElement, bad)
	require.NoError(t, err)
	_, err = EncodeConstant(k)
	assert.ErrorIs(t, err, sigmaerrors.ErrInvalidPoint)

	lenient, err := New(Config{SkipPointCheck: true})
	require.NoError(t, err)
	enc, err := lenient.EncodeConstant(k)
	require.NoError(t, err)
	dec, err := lenient.ParseConstant(enc)
	require.NoError(t, err)
	got, err := dec.GroupElement()
	require.NoError(t, err)
	assert.Equal(t, bad, got)

	identity, err := ParseConstant(append([]byte{0x07}, make([]byte, types.GroupElementSize)...))
	require.NoError(t, err)
	ge, err := identity.GroupElement()
	require.NoError(t, err)
	assert.True(t, ge.IsIdentity())
}

func TestCollectionLimit(t *testing.T) {
	small, err := New(Config{MaxCollectionLength: 3})
	require.NoError(t, err)
	_, err = small.EncodeConstant(bytesConstant(t, []byte{1, 2, 3, 4}))
	assert.ErrorIs(t, err, sigmaerrors.ErrOverflow)
	_, err = small.ParseConstant(mustHex(t, "0e0401020304"))
	assert.ErrorIs(t, err, sigmaerrors.ErrOverflow)

	_, err = ParseConstant(mustHex(t, "0e0401020304"))
	assert.NoError(t, err)
}

func TestEncodeValueMismatch(t *testing.T) {
	_, err := EncodeValue(types.SInt, types.LongValue(1))
	assert.ErrorIs(t, err, sigmaerrors.ErrTypeMismatch)
	_, err = EncodeValue(types.SByteArray(), types.CollValue{types.ByteValue(1)})
	assert.ErrorIs(t, err, sigmaerrors.ErrTypeMismatch)
	_, err = EncodeConstant(types.Constant{})
	assert.ErrorIs(t, err, sigmaerrors.ErrTypeMismatch)
	assert.Panics(t, func() { MustEncodeConstant(types.Constant{}) })

	b, err := EncodeValue(types.SColl(types.SBoolean), types.CollValue{types.BooleanValue(true), types.BooleanValue(false)})
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 1, 0}, b)
	v, err := DecodeValue(vlq.NewReader(b), types.SColl(types.SBoolean))
	require.NoError(t, err)
	assert.Equal(t, types.CollValue{types.BooleanValue(true), types.BooleanValue(false)}, v)
}

func TestNewValidatesTags(t *testing.T) {
	tags := ErgoTags
	tags.Embeddable[types.KindInt] = tags.Embeddable[types.KindLong]
	_, err := New(Config{Tags: tags})
	assert.Error(t, err)

	tags = ErgoTags
	tags.Pair1 = 61
	_, err = New(Config{Tags: tags})
	assert.Error(t, err)

	_, err = New(Config{MaxDepth: DefaultMaxDepth + 1})
	assert.Error(t, err)
	_, err = New(Config{MaxCollectionLength: DefaultMaxCollectionLength + 1})
	assert.Error(t, err)

	c, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxDepth, c.Config().MaxDepth)
	assert.Equal(t, "secp256k1", c.Config().Curve.Name())
}

func TestConcurrentUse(t *testing.T) {
	constants := []types.Constant{
		types.ConstantFromInt32(777689414),
		bytesConstant(t, []byte{1, 1, 2, 255}),
		types.ConstantFromTupleInt64(math.MaxInt64, 29428734987293874),
	}
	box, err := types.ConstantFromBox(fixtureBox(t))
	require.NoError(t, err)
	constants = append(constants, box)

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				for _, c := range constants {
					h, err := EncodeConstantHex(c)
					if err != nil {
						errs <- err
						return
					}
					dec, err := DecodeConstantHex(h)
					if err != nil {
						errs <- err
						return
					}
					if !dec.Equal(c) {
						errs <- assert.AnError
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestConstructedConstantsEncodeAtLimits(t *testing.T) {
	g := testPoint(t)
	var sb types.SigmaBoolean = types.ProveDlog{H: g}
	for i := 1; i < DefaultMaxDepth; i++ {
		sb = types.COR{Children: []types.SigmaBoolean{sb}}
	}
	deep, err := types.ConstantFromSigmaProp(types.SigmaProp{Prop: sb})
	require.NoError(t, err)

	box := fixtureBox(t)
	box.ErgoTree = make([]byte, DefaultMaxCollectionLength)
	wide, err := types.ConstantFromBox(box)
	require.NoError(t, err)

	for _, k := range []types.Constant{deep, wide, bytesConstant(t, make([]byte, DefaultMaxCollectionLength))} {
		enc, err := EncodeConstant(k)
		require.NoError(t, err, k.Type().String())
		dec, err := ParseConstant(enc)
		require.NoError(t, err)
		assert.True(t, k.Equal(dec))
	}

	box.ErgoTree = make([]byte, 70000)
	_, err = types.ConstantFromBox(box)
	assert.ErrorIs(t, err, sigmaerrors.ErrOverflow)
}
