package common

import (
	"encoding/json"
	"testing"

	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boxIDHex = "e56847ed19b3dc6b72828fcfb992fdf7310828cf291221269b7ffc72fd66706e"

func TestDigest32Hex(t *testing.T) {
	d, err := HexToDigest32(boxIDHex)
	require.NoError(t, err)
	assert.Equal(t, boxIDHex, d.Hex())
	assert.Equal(t, "e568..706e", d.Short())
	assert.False(t, d.IsZero())

	prefixed, err := HexToDigest32("0x" + boxIDHex)
	require.NoError(t, err)
	assert.Equal(t, d, prefixed)

	_, err = HexToDigest32(boxIDHex[:62])
	assert.Error(t, err)

	_, err = HexToDigest32("zz" + boxIDHex[2:])
	assert.ErrorIs(t, err, sigmaerrors.ErrInvalidHex)
}

func TestDigest32JSON(t *testing.T) {
	d := MustHexToDigest32(boxIDHex)
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"`+boxIDHex+`"`, string(raw))

	var back Digest32
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, d, back)

	assert.Error(t, json.Unmarshal([]byte(`"abcd"`), &back))
}

func TestHex2Bytes(t *testing.T) {
	b, err := Hex2Bytes("010102ff")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 1, 2, 255}, b)
	assert.Equal(t, "010102ff", Bytes2Hex(b))

	_, err = Hex2Bytes("abc")
	assert.ErrorIs(t, err, sigmaerrors.ErrInvalidHex)
}

func TestBlake2b256(t *testing.T) {
	// BLAKE2b-256 of the empty string
	assert.Equal(t, "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8", Blake2b256(nil).Hex())
	assert.Equal(t, "bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319", Blake2b256([]byte("abc")).Hex())
}
