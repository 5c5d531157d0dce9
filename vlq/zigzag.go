// Package vlq implements the variable-length quantity integer encoding used by
// the sigma wire format: unsigned values are emitted seven bits at a time,
// least significant group first, with the high bit of every byte but the last
// set; signed values are first folded onto the unsigned range with ZigZag so
// small magnitudes of either sign stay short.
package vlq

import "math/big"

// EncodeZigZag32 maps a signed 32-bit value onto the unsigned range.
func EncodeZigZag32(n int32) uint32 {
	return uint32((n << 1) ^ (n >> 31))
}

// DecodeZigZag32 inverts EncodeZigZag32.
func DecodeZigZag32(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// EncodeZigZag64 maps a signed 64-bit value onto the unsigned range.
func EncodeZigZag64(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

// DecodeZigZag64 inverts EncodeZigZag64.
func DecodeZigZag64(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// EncodeZigZagBig is the arbitrary precision form of EncodeZigZag64.
// The input is not modified.
func EncodeZigZagBig(n *big.Int) *big.Int {
	u := new(big.Int)
	if n.Sign() >= 0 {
		return u.Lsh(n, 1)
	}
	// -n-1 keeps the result exact for the most negative value of any width
	u.Neg(n)
	u.Sub(u, bigOne)
	u.Lsh(u, 1)
	return u.Add(u, bigOne)
}

// DecodeZigZagBig inverts EncodeZigZagBig.
func DecodeZigZagBig(u *big.Int) *big.Int {
	n := new(big.Int).Rsh(u, 1)
	if u.Bit(0) == 1 {
		n.Neg(n)
		n.Sub(n, bigOne)
	}
	return n
}

var bigOne = big.NewInt(1)
