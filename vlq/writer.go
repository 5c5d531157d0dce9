package vlq

import (
	"encoding/binary"
	"math/big"
)

// Writer accumulates an encoding in memory. Writes never fail.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 64)}
}

func (w *Writer) PutByte(b byte) {
	w.buf = append(w.buf, b)
}

// PutBytes appends raw bytes with no length prefix.
func (w *Writer) PutBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// PutUvarint appends u as an unsigned VLQ.
func (w *Writer) PutUvarint(u uint64) {
	w.buf = binary.AppendUvarint(w.buf, u)
}

// PutInt16 writes a short the same way as an int; the decoder enforces the width.
func (w *Writer) PutInt16(v int16) {
	w.PutUvarint(uint64(EncodeZigZag32(int32(v))))
}

func (w *Writer) PutInt32(v int32) {
	w.PutUvarint(uint64(EncodeZigZag32(v)))
}

func (w *Writer) PutInt64(v int64) {
	w.PutUvarint(EncodeZigZag64(v))
}

// PutBigInt writes n with ZigZag over an unbounded digit sequence.
func (w *Writer) PutBigInt(n *big.Int) {
	u := EncodeZigZagBig(n)
	if u.IsUint64() {
		w.PutUvarint(u.Uint64())
		return
	}
	group := new(big.Int)
	mask := big.NewInt(0x7f)
	for u.BitLen() > 7 {
		group.And(u, mask)
		w.buf = append(w.buf, byte(group.Uint64())|0x80)
		u.Rsh(u, 7)
	}
	w.buf = append(w.buf, byte(u.Uint64()))
}

// Bytes returns the accumulated encoding. The slice aliases the writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) Len() int {
	return len(w.buf)
}

// EncodeVarInt returns the ZigZag VLQ encoding of n.
func EncodeVarInt(n int64) []byte {
	w := Writer{}
	w.PutInt64(n)
	return w.buf
}

// EncodeUvarint returns the unsigned VLQ encoding of u.
func EncodeUvarint(u uint64) []byte {
	w := Writer{}
	w.PutUvarint(u)
	return w.buf
}

// EncodeBigVarInt returns the ZigZag VLQ encoding of an arbitrary precision integer.
func EncodeBigVarInt(n *big.Int) []byte {
	w := Writer{}
	w.PutBigInt(n)
	return w.buf
}
