package vlq

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"

	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
)

// Reader is a forward-only cursor over an in-memory encoding. A failed read
// leaves the cursor where the read started.
type Reader struct {
	buf []byte
	pos int
}

// NewReader creates a cursor positioned at the start of b.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Position is the number of bytes consumed so far.
func (r *Reader) Position() int {
	return r.pos
}

func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, fmt.Errorf("%w: need 1 byte at offset %d", sigmaerrors.ErrTruncated, r.pos)
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes consumes exactly n bytes and returns a copy of them.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", sigmaerrors.ErrTruncated, n, r.pos, r.Remaining())
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

// ReadFixed fills dst completely from the input.
func (r *Reader) ReadFixed(dst []byte) error {
	if len(dst) > r.Remaining() {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", sigmaerrors.ErrTruncated, len(dst), r.pos, r.Remaining())
	}
	copy(dst, r.buf[r.pos:])
	r.pos += len(dst)
	return nil
}

// ReadUvarint decodes an unsigned VLQ of at most 64 bits. The whole run of
// continuation bytes is consumed before the width is checked, so an
// unterminated run is always reported as truncated.
func (r *Reader) ReadUvarint() (uint64, error) {
	start := r.pos
	var u uint64
	var shift uint
	overflow := false
	for {
		if r.pos >= len(r.buf) {
			r.pos = start
			return 0, fmt.Errorf("%w: unterminated varint at offset %d", sigmaerrors.ErrTruncated, start)
		}
		b := r.buf[r.pos]
		r.pos++
		group := uint64(b & 0x7f)
		switch {
		case shift < 63:
			u |= group << shift
		case shift == 63:
			if group > 1 {
				overflow = true
			}
			u |= group << shift
		case group != 0:
			overflow = true
		}
		if b < 0x80 {
			break
		}
		shift += 7
	}
	if overflow {
		r.pos = start
		return 0, fmt.Errorf("%w: varint at offset %d exceeds 64 bits", sigmaerrors.ErrOverflow, start)
	}
	return u, nil
}

func (r *Reader) readBounded(max uint64, width int) (uint64, error) {
	start := r.pos
	u, err := r.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if u > max {
		r.pos = start
		return 0, fmt.Errorf("%w: varint %d at offset %d exceeds %d bits", sigmaerrors.ErrOverflow, u, start, width)
	}
	return u, nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	u, err := r.readBounded(math.MaxUint16, 16)
	return uint16(u), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	u, err := r.readBounded(math.MaxUint32, 32)
	return uint32(u), err
}

func (r *Reader) ReadInt16() (int16, error) {
	u, err := r.readBounded(math.MaxUint16, 16)
	if err != nil {
		return 0, err
	}
	return int16(DecodeZigZag32(uint32(u))), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	u, err := r.readBounded(math.MaxUint32, 32)
	if err != nil {
		return 0, err
	}
	return DecodeZigZag32(uint32(u)), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	u, err := r.ReadUvarint()
	if err != nil {
		return 0, err
	}
	return DecodeZigZag64(u), nil
}

// ReadBigInt decodes a ZigZag VLQ over an unbounded digit sequence and fails
// with an overflow if the value does not fit a signed integer of maxBits.
func (r *Reader) ReadBigInt(maxBits int) (*big.Int, error) {
	start := r.pos
	u := new(big.Int)
	digit := new(big.Int)
	var shift uint
	overflow := false
	for {
		if r.pos >= len(r.buf) {
			r.pos = start
			return nil, fmt.Errorf("%w: unterminated big varint at offset %d", sigmaerrors.ErrTruncated, start)
		}
		b := r.buf[r.pos]
		r.pos++
		group := b & 0x7f
		if group != 0 && !overflow {
			if int(shift)+bits.Len8(group) > maxBits {
				overflow = true
			} else {
				digit.SetUint64(uint64(group))
				u.Or(u, digit.Lsh(digit, shift))
			}
		}
		if b < 0x80 {
			break
		}
		shift += 7
	}
	if overflow {
		r.pos = start
		return nil, fmt.Errorf("%w: big varint at offset %d exceeds %d bits", sigmaerrors.ErrOverflow, start, maxBits)
	}
	return DecodeZigZagBig(u), nil
}

// DecodeVarInt decodes a ZigZag VLQ from the front of b and reports how many
// bytes it used.
func DecodeVarInt(b []byte) (int64, int, error) {
	r := NewReader(b)
	n, err := r.ReadInt64()
	if err != nil {
		return 0, 0, err
	}
	return n, r.Position(), nil
}
