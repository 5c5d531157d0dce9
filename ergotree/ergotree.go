// Package ergotree reads the envelope of a serialized script: the header,
// the optional size and the segregated constants. The root expression is
// kept as opaque bytes, and so is the whole body when a constant cannot be
// decoded.
package ergotree

import (
	"fmt"

	"github.com/colorfulnotion/sigmacodec/codec"
	"github.com/colorfulnotion/sigmacodec/common"
	"github.com/colorfulnotion/sigmacodec/log"
	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
	"github.com/colorfulnotion/sigmacodec/types"
	"github.com/colorfulnotion/sigmacodec/vlq"
)

// Header bits.
const (
	VersionMask          byte = 0x07
	SizeFlag             byte = 0x08
	ConstantSegregation  byte = 0x10
	MaxConstants              = 4096
	p2pkRootPrefix            = 0x08 // SigmaProp constant placed inline
	sigmaPropProveDlogOp      = codec.OpProveDlog
)

// Header is the first byte of a tree.
type Header byte

func (h Header) Version() byte {
	return byte(h) & VersionMask
}

func (h Header) HasSize() bool {
	return byte(h)&SizeFlag != 0
}

func (h Header) IsConstantSegregated() bool {
	return byte(h)&ConstantSegregation != 0
}

// Tree is a parsed script envelope.
type Tree struct {
	header    Header
	constants []types.Constant
	root      []byte

	// unparsed is the body after the header and size when the constants
	// failed to decode; constantsErr holds the failure.
	unparsed     []byte
	constantsErr error
}

// New builds a tree. Constants are only allowed when the header has the
// segregation flag.
func New(h Header, constants []types.Constant, root []byte) (*Tree, error) {
	if !h.IsConstantSegregated() && len(constants) > 0 {
		return nil, fmt.Errorf("%w: header 0x%02x has no constant segregation", sigmaerrors.ErrTypeMismatch, byte(h))
	}
	if len(constants) > MaxConstants {
		return nil, fmt.Errorf("%w: %d constants", sigmaerrors.ErrTooManyConstants, len(constants))
	}
	for i, c := range constants {
		if c.IsZero() {
			return nil, fmt.Errorf("%w: constant %d is empty", sigmaerrors.ErrTypeMismatch, i)
		}
	}
	return &Tree{
		header:    h,
		constants: append([]types.Constant(nil), constants...),
		root:      append([]byte(nil), root...),
	}, nil
}

// P2PK builds the pay-to-public-key script for pk.
func P2PK(pk types.GroupElement) *Tree {
	root := make([]byte, 0, 2+types.GroupElementSize)
	root = append(root, p2pkRootPrefix, sigmaPropProveDlogOp)
	root = append(root, pk[:]...)
	return &Tree{root: root}
}

func (t *Tree) Header() Header {
	return t.header
}

// Constants returns the segregated constants in order, or nil when they
// could not be decoded.
func (t *Tree) Constants() []types.Constant {
	return append([]types.Constant(nil), t.constants...)
}

// Root returns the root expression bytes, or nil for an unparsed tree.
func (t *Tree) Root() []byte {
	return append([]byte(nil), t.root...)
}

// ConstantsErr reports why the segregated constants could not be decoded.
// Such a tree keeps its body as raw bytes and re-serializes it unchanged.
func (t *Tree) ConstantsErr() error {
	return t.constantsErr
}

// Unparsed returns the raw body of a tree whose constants did not decode.
func (t *Tree) Unparsed() []byte {
	return append([]byte(nil), t.unparsed...)
}

// WithConstant returns a copy of t with constant i replaced. The replacement
// must have the same type so the root expression stays valid.
func (t *Tree) WithConstant(i int, c types.Constant) (*Tree, error) {
	if t.constantsErr != nil {
		return nil, fmt.Errorf("tree constants not parsed: %w", t.constantsErr)
	}
	if i < 0 || i >= len(t.constants) {
		return nil, fmt.Errorf("constant index %d out of range [0, %d)", i, len(t.constants))
	}
	if !t.constants[i].Type().Equal(c.Type()) {
		return nil, fmt.Errorf("%w: constant %d is %s, not %s", sigmaerrors.ErrTypeMismatch, i, t.constants[i].Type(), c.Type())
	}
	out := &Tree{header: t.header, constants: t.Constants(), root: t.Root()}
	out.constants[i] = c
	return out, nil
}

// Parse reads a whole tree from b with c, or codec.Default() when c is nil.
// Malformed header, size or constant count bytes are errors. A constant that
// fails to decode is not: the tree keeps its body unparsed and reports the
// failure through ConstantsErr.
func Parse(c *codec.Codec, b []byte) (*Tree, error) {
	if c == nil {
		c = codec.Default()
	}
	r := vlq.NewReader(b)
	hb, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	h := Header(hb)
	if h.HasSize() {
		start := r.Position()
		size, err := r.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("size: %w", err)
		}
		switch {
		case int(size) > r.Remaining():
			return nil, fmt.Errorf("%w: size %d at offset %d, %d bytes left", sigmaerrors.ErrTruncated, size, start, r.Remaining())
		case int(size) < r.Remaining():
			return nil, fmt.Errorf("%w: %d bytes after tree of size %d", sigmaerrors.ErrTrailingBytes, r.Remaining()-int(size), size)
		}
	}

	bodyStart := r.Position()
	t := &Tree{header: h}
	if h.IsConstantSegregated() {
		start := r.Position()
		n, err := r.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("constant count: %w", err)
		}
		if n > MaxConstants {
			return nil, fmt.Errorf("%w: %d at offset %d, at most %d", sigmaerrors.ErrTooManyConstants, n, start, MaxConstants)
		}
		if t.constantsErr = decodeConstants(c, r, int(n), t); t.constantsErr != nil {
			t.constants = nil
			t.unparsed = append([]byte(nil), b[bodyStart:]...)
			log.Debug(log.TreeModule, "tree constants not parsed", "err", t.constantsErr, "body", len(t.unparsed))
			return t, nil
		}
	}
	t.root, _ = r.ReadBytes(r.Remaining())
	log.Trace(log.TreeModule, "parsed tree", "version", h.Version(), "constants", len(t.constants), "root", common.Bytes2Hex(t.root))
	return t, nil
}

func decodeConstants(c *codec.Codec, r *vlq.Reader, n int, t *Tree) error {
	if n > r.Remaining() {
		return fmt.Errorf("%w: %d constants, %d bytes left", sigmaerrors.ErrTruncated, n, r.Remaining())
	}
	t.constants = make([]types.Constant, n)
	for i := range t.constants {
		k, err := c.DecodeConstant(r)
		if err != nil {
			return fmt.Errorf("constant %d: %w", i, err)
		}
		t.constants[i] = k
	}
	return nil
}

// ParseHex is Parse on base16 text.
func ParseHex(c *codec.Codec, s string) (*Tree, error) {
	b, err := common.Hex2Bytes(s)
	if err != nil {
		return nil, err
	}
	return Parse(c, b)
}

// Bytes serializes t with c, or codec.Default() when c is nil. The size is
// recomputed when the header asks for it.
func (t *Tree) Bytes(c *codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default()
	}
	body := vlq.NewWriter()
	switch {
	case t.constantsErr != nil:
		body.PutBytes(t.unparsed)
	case t.header.IsConstantSegregated():
		body.PutUvarint(uint64(len(t.constants)))
		for i, k := range t.constants {
			enc, err := c.EncodeConstant(k)
			if err != nil {
				return nil, fmt.Errorf("constant %d: %w", i, err)
			}
			body.PutBytes(enc)
		}
		body.PutBytes(t.root)
	default:
		body.PutBytes(t.root)
	}

	w := vlq.NewWriter()
	w.PutByte(byte(t.header))
	if t.header.HasSize() {
		w.PutUvarint(uint64(body.Len()))
	}
	w.PutBytes(body.Bytes())
	return w.Bytes(), nil
}

// Hex is Bytes rendered as base16.
func (t *Tree) Hex(c *codec.Codec) (string, error) {
	b, err := t.Bytes(c)
	if err != nil {
		return "", err
	}
	return common.Bytes2Hex(b), nil
}
