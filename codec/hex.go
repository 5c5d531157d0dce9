package codec

import (
	"github.com/colorfulnotion/sigmacodec/common"
	"github.com/colorfulnotion/sigmacodec/types"
)

// EncodeConstantHex is EncodeConstant rendered as lowercase base16.
func (c *Codec) EncodeConstantHex(k types.Constant) (string, error) {
	b, err := c.EncodeConstant(k)
	if err != nil {
		return "", err
	}
	return common.Bytes2Hex(b), nil
}

// DecodeConstantHex parses the base16 form of exactly one constant. An
// optional 0x prefix is accepted.
func (c *Codec) DecodeConstantHex(s string) (types.Constant, error) {
	b, err := common.Hex2Bytes(s)
	if err != nil {
		return types.Constant{}, err
	}
	return c.ParseConstant(b)
}
