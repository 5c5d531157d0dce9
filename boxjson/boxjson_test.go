package boxjson

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colorfulnotion/sigmacodec/codec"
	"github.com/colorfulnotion/sigmacodec/common"
	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
	"github.com/colorfulnotion/sigmacodec/types"
)

const fixtureJSON = `[
  {
    "boxId": "e56847ed19b3dc6b72828fcfb992fdf7310828cf291221269b7ffc72fd66706e",
    "value": 67500000000,
    "ergoTree": "100204a00b08cd021dde34603426402615658f1d970cfa7c7bd92ac81a8b16eeebff264d59ce4604ea02d192a39a8cc7a70173007301",
    "assets": [],
    "creationHeight": 284761,
    "additionalRegisters": {},
    "transactionId": "9148408c04c2e38a6402a7950d6157730fa7d49e9ab3b9cadec481d7769918e9",
    "index": 1
  }
]`

const fixtureConstantHex = "63e56847ed19b3dc6b72828fcfb992fdf7310828cf291221269b7ffc72fd66706e808c82f5f60336100204a00b08cd021dde34603426402615658f1d970cfa7c7bd92ac81a8b16eeebff264d59ce4604ea02d192a39a8cc7a7017300730100d9b011009148408c04c2e38a6402a7950d6157730fa7d49e9ab3b9cadec481d7769918e901"

func TestParseFixtureBox(t *testing.T) {
	boxes, err := ParseBoxes(nil, []byte(fixtureJSON))
	require.NoError(t, err)
	require.Len(t, boxes, 1)
	b := boxes[0]
	assert.Equal(t, int64(67500000000), b.Value)
	assert.Equal(t, uint32(284761), b.CreationHeight)
	assert.Equal(t, uint16(1), b.Index)
	assert.Equal(t, 0, b.AdditionalRegisters.Len())

	c, err := types.ConstantFromBox(b)
	require.NoError(t, err)
	h, err := codec.EncodeConstantHex(c)
	require.NoError(t, err)
	assert.Equal(t, fixtureConstantHex, h)

	back, err := codec.DecodeConstantHex(h)
	require.NoError(t, err)
	decoded, err := back.Box()
	require.NoError(t, err)

	want, err := MarshalBoxes(nil, boxes)
	require.NoError(t, err)
	got, err := MarshalBoxes(nil, []*types.BoxRecord{decoded})
	require.NoError(t, err)
	assert.JSONEq(t, fixtureJSON, string(got))
	assert.Equal(t, string(want), string(got))
}

func TestRegistersAndAssets(t *testing.T) {
	doc := `{
  "boxId": "0000000000000000000000000000000000000000000000000000000000000001",
  "value": 1000000,
  "ergoTree": "0008cd021dde34603426402615658f1d970cfa7c7bd92ac81a8b16eeebff264d59ce4604",
  "assets": [
    {"tokenId": "0000000000000000000000000000000000000000000000000000000000000002", "amount": 9223372036854775807}
  ],
  "creationHeight": 1,
  "additionalRegisters": {"R4": "048ce5d4e505", "R5": "0e04010102ff"},
  "transactionId": "0000000000000000000000000000000000000000000000000000000000000003",
  "index": 0
}`
	b, err := ParseBox(nil, []byte(doc))
	require.NoError(t, err)
	require.Len(t, b.Assets, 1)
	assert.Equal(t, int64(9223372036854775807), b.Assets[0].Amount)

	r4, ok := b.AdditionalRegisters.Get(types.R4)
	require.True(t, ok)
	v, err := r4.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(777689414), v)

	out, err := MarshalBox(nil, b)
	require.NoError(t, err)
	assert.JSONEq(t, doc, string(out))
}

func TestParseErrors(t *testing.T) {
	base := func(regs string) string {
		return `{"boxId":"0000000000000000000000000000000000000000000000000000000000000001","value":1,"ergoTree":"00","assets":[],"creationHeight":1,"additionalRegisters":` + regs + `,"transactionId":"0000000000000000000000000000000000000000000000000000000000000003","index":0}`
	}
	_, err := ParseBox(nil, []byte(base(`{"R5":"0101"}`)))
	assert.ErrorIs(t, err, sigmaerrors.ErrMalformedRegisters)

	_, err = ParseBox(nil, []byte(base(`{"R4":"04"}`)))
	assert.ErrorIs(t, err, sigmaerrors.ErrTruncated)

	_, err = ParseBox(nil, []byte(base(`{"R4":"zz"}`)))
	assert.ErrorIs(t, err, sigmaerrors.ErrInvalidHex)

	_, err = ParseBox(nil, []byte(base(`{"Rx":"0101"}`)))
	assert.Error(t, err)

	_, err = ParseBox(nil, []byte(`{"boxId":"01"}`))
	assert.Error(t, err)

	_, err = ParseBox(nil, []byte(`{"unexpected":1}`))
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	boxes, err := ParseBoxes(nil, []byte(fixtureJSON))
	require.NoError(t, err)
	a := boxes[0]

	d, err := Diff(nil, a, a.Clone(), false)
	require.NoError(t, err)
	assert.Empty(t, d)

	b := a.Clone()
	b.Value++
	d, err = Diff(nil, a, b, false)
	require.NoError(t, err)
	assert.Contains(t, d, "67500000000")
	assert.Contains(t, d, "67500000001")
}

func TestFromRecordUsesCodec(t *testing.T) {
	c, err := codec.New(codec.Config{MaxCollectionLength: 2})
	require.NoError(t, err)
	k, err := types.ConstantFromBytes([]byte{1, 2, 3})
	require.NoError(t, err)
	regs, err := types.RegistersFromSlice([]types.Constant{k})
	require.NoError(t, err)
	r := &types.BoxRecord{
		BoxID:               common.Blake2b256([]byte("x")),
		AdditionalRegisters: regs,
	}
	_, err = FromRecord(c, r)
	assert.ErrorIs(t, err, sigmaerrors.ErrOverflow)

	_, err = FromRecord(nil, nil)
	assert.Error(t, err)

	out, err := MarshalBox(nil, r)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, map[string]interface{}{"R4": "0e03010203"}, m["additionalRegisters"])
}
