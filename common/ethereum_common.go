package common

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	ethereumCommon "github.com/ethereum/go-ethereum/common"

	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
)

// DigestLength is the width of box, token and transaction identifiers.
const DigestLength = ethereumCommon.HashLength

// Digest32 is a 32-byte identifier based on Ethereum's common.Hash. Unlike the
// Ethereum form its textual representation is bare lowercase hex.
type Digest32 ethereumCommon.Hash

// Bytes returns the byte representation of the digest.
func (d Digest32) Bytes() []byte {
	return ethereumCommon.Hash(d).Bytes()
}

// Hex returns the lowercase hex form without a 0x prefix.
func (d Digest32) Hex() string {
	return Bytes2Hex(d[:])
}

func (d Digest32) String() string {
	return d.Hex()
}

// Short prints the first and last four hex characters.
func (d Digest32) Short() string {
	h := d.Hex()
	return fmt.Sprintf("%s..%s", h[:4], h[len(h)-4:])
}

func (d Digest32) IsZero() bool {
	return d == Digest32{}
}

// BytesToDigest32 requires b to be exactly DigestLength bytes.
func BytesToDigest32(b []byte) (Digest32, error) {
	if len(b) != DigestLength {
		return Digest32{}, fmt.Errorf("digest must be %d bytes, got %d", DigestLength, len(b))
	}
	return Digest32(ethereumCommon.BytesToHash(b)), nil
}

// HexToDigest32 parses a 64 character hex string, with or without 0x.
func HexToDigest32(s string) (Digest32, error) {
	b, err := Hex2Bytes(s)
	if err != nil {
		return Digest32{}, err
	}
	return BytesToDigest32(b)
}

// MustHexToDigest32 is HexToDigest32 for literals; it panics on bad input.
func MustHexToDigest32(s string) Digest32 {
	d, err := HexToDigest32(s)
	if err != nil {
		panic(err)
	}
	return d
}

// MarshalJSON custom marshaler to convert Digest32 to hex string.
func (d Digest32) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Hex())
}

// UnmarshalJSON custom unmarshaler to handle hex strings for Digest32.
func (d *Digest32) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	parsed, err := HexToDigest32(hexStr)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Bytes2Hex renders bytes as lowercase hex without a prefix.
func Bytes2Hex(d []byte) string {
	return ethereumCommon.Bytes2Hex(d)
}

// Hex2Bytes decodes hex text, accepting an optional 0x prefix. Unlike the
// Ethereum helper it rejects odd lengths and non-hex characters.
func Hex2Bytes(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sigmaerrors.ErrInvalidHex, err)
	}
	return b, nil
}
