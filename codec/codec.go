// Package codec serializes typed constants: a type descriptor followed by a
// value laid out according to that descriptor.
//
// The package-level functions use Default(); build a Codec with New to change
// limits, the curve or the tag table.
package codec

import (
	"github.com/colorfulnotion/sigmacodec/types"
	"github.com/colorfulnotion/sigmacodec/vlq"
)

func EncodeConstant(k types.Constant) ([]byte, error) {
	return defaultCodec.EncodeConstant(k)
}

// MustEncodeConstant runs EncodeConstant and panics on error.
func MustEncodeConstant(k types.Constant) []byte {
	return defaultCodec.MustEncodeConstant(k)
}

func DecodeConstant(r *vlq.Reader) (types.Constant, error) {
	return defaultCodec.DecodeConstant(r)
}

func DecodeConstantBytes(b []byte) (types.Constant, int, error) {
	return defaultCodec.DecodeConstantBytes(b)
}

func ParseConstant(b []byte) (types.Constant, error) {
	return defaultCodec.ParseConstant(b)
}

func EncodeConstantHex(k types.Constant) (string, error) {
	return defaultCodec.EncodeConstantHex(k)
}

func DecodeConstantHex(s string) (types.Constant, error) {
	return defaultCodec.DecodeConstantHex(s)
}

func EncodeType(t types.SType) ([]byte, error) {
	return defaultCodec.EncodeType(t)
}

func DecodeType(r *vlq.Reader) (types.SType, error) {
	return defaultCodec.DecodeType(r)
}

func EncodeValue(t types.SType, v types.Value) ([]byte, error) {
	return defaultCodec.EncodeValue(t, v)
}

func DecodeValue(r *vlq.Reader, t types.SType) (types.Value, error) {
	return defaultCodec.DecodeValue(r, t)
}

func EncodeBox(b *types.BoxRecord) ([]byte, error) {
	return defaultCodec.EncodeBox(b)
}

func DecodeBox(r *vlq.Reader) (*types.BoxRecord, error) {
	return defaultCodec.DecodeBox(r)
}

func ParseBox(b []byte) (*types.BoxRecord, error) {
	return defaultCodec.ParseBox(b)
}
