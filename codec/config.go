package codec

import (
	"fmt"

	"github.com/colorfulnotion/sigmacodec/types"
)

// The defaults are also the ceilings: every decoded value must be a
// constructible Constant.
const (
	DefaultMaxDepth            = types.MaxDepth
	DefaultMaxCollectionLength = types.MaxCollectionLength
)

// TagTable holds the type descriptor codes. The values are part of the wire
// format and must not change once data has been written with them.
type TagTable struct {
	// Embeddable maps the primitive kinds that can be folded into a
	// constructor tag to their code; zero means not embeddable.
	Embeddable [types.KindSigmaProp + 1]byte
	// PrimRange is the width of each constructor range.
	PrimRange     byte
	Coll          byte
	NestedColl    byte
	Pair1         byte
	Pair2         byte // also Triple when the primitive slot is empty
	PairSymmetric byte // also Quadruple when the primitive slot is empty
	Tuple         byte
	Unit          byte
	Box           byte
}

// ErgoTags is the reference code table.
var ErgoTags = TagTable{
	Embeddable: [types.KindSigmaProp + 1]byte{
		types.KindBoolean:      1,
		types.KindByte:         2,
		types.KindShort:        3,
		types.KindInt:          4,
		types.KindLong:         5,
		types.KindBigInt:       6,
		types.KindGroupElement: 7,
		types.KindSigmaProp:    8,
	},
	PrimRange:     12,
	Coll:          12,
	NestedColl:    24,
	Pair1:         60,
	Pair2:         72,
	PairSymmetric: 84,
	Tuple:         96,
	Unit:          98,
	Box:           99,
}

// code returns the embeddable code of t, or 0.
func (tt *TagTable) code(t types.SType) byte {
	if int(t.Kind) < len(tt.Embeddable) {
		return tt.Embeddable[t.Kind]
	}
	return 0
}

// primitive resolves an embeddable code back to its type.
func (tt *TagTable) primitive(code byte) (types.SType, bool) {
	if code == 0 {
		return types.SType{}, false
	}
	for k, c := range tt.Embeddable {
		if c == code {
			return types.SType{Kind: types.TypeKind(k)}, true
		}
	}
	return types.SType{}, false
}

func (tt *TagTable) validate() error {
	seen := make(map[byte]bool)
	for k, c := range tt.Embeddable {
		if k == int(types.KindInvalid) {
			continue
		}
		if c == 0 || c >= tt.PrimRange {
			return fmt.Errorf("embeddable code %d for %s outside (0, %d)", c, types.TypeKind(k), tt.PrimRange)
		}
		if seen[c] {
			return fmt.Errorf("embeddable code %d used twice", c)
		}
		seen[c] = true
	}
	for _, base := range []byte{tt.Coll, tt.NestedColl, tt.Pair1, tt.Pair2, tt.PairSymmetric} {
		if base == 0 || base%tt.PrimRange != 0 || base >= tt.Tuple {
			return fmt.Errorf("constructor code %d is not a multiple of %d below %d", base, tt.PrimRange, tt.Tuple)
		}
	}
	if tt.Unit <= tt.Tuple || tt.Box <= tt.Tuple || tt.Unit == tt.Box {
		return fmt.Errorf("unit %d and box %d codes must be distinct and above tuple %d", tt.Unit, tt.Box, tt.Tuple)
	}
	return nil
}

// Config is fixed when a Codec is built.
type Config struct {
	// Curve validates decoded group elements.
	Curve types.Curve
	// SkipPointCheck decodes points without checking they lie on Curve.
	SkipPointCheck bool
	// MaxDepth bounds nesting of types, proposition trees and boxes. It may
	// not exceed DefaultMaxDepth.
	MaxDepth int
	// MaxCollectionLength bounds every declared length and count. It may not
	// exceed DefaultMaxCollectionLength.
	MaxCollectionLength int
	Tags                TagTable
}

func DefaultConfig() Config {
	return Config{
		Curve:               types.Secp256k1,
		MaxDepth:            DefaultMaxDepth,
		MaxCollectionLength: DefaultMaxCollectionLength,
		Tags:                ErgoTags,
	}
}

// Codec encodes and decodes constants under one Config. It holds no mutable
// state and is safe for concurrent use.
type Codec struct {
	cfg Config
}

// New checks cfg, filling unset limits and the curve with their defaults.
func New(cfg Config) (*Codec, error) {
	if cfg.Curve == nil {
		cfg.Curve = types.Secp256k1
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.MaxCollectionLength <= 0 {
		cfg.MaxCollectionLength = DefaultMaxCollectionLength
	}
	if cfg.MaxDepth > DefaultMaxDepth || cfg.MaxCollectionLength > DefaultMaxCollectionLength {
		return nil, fmt.Errorf("codec: limits depth %d, length %d above %d, %d",
			cfg.MaxDepth, cfg.MaxCollectionLength, DefaultMaxDepth, DefaultMaxCollectionLength)
	}
	if cfg.Tags == (TagTable{}) {
		cfg.Tags = ErgoTags
	}
	if err := cfg.Tags.validate(); err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	return &Codec{cfg: cfg}, nil
}

// MustNew is New for configurations known to be valid.
func MustNew(cfg Config) *Codec {
	c, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// Config returns a copy of the codec's configuration.
func (c *Codec) Config() Config {
	return c.cfg
}

var defaultCodec = MustNew(DefaultConfig())

// Default returns the codec used by the package-level functions.
func Default() *Codec {
	return defaultCodec
}
