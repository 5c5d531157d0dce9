package codec

import (
	"fmt"

	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
	"github.com/colorfulnotion/sigmacodec/vlq"
)

// decodeState carries one decoding pass over a shared reader.
type decodeState struct {
	*vlq.Reader
	cfg   *Config
	depth int
	// empty counts elements that occupy no bytes on the wire (Unit and
	// tuples of Unit); they are bounded separately since input length
	// cannot bound them.
	empty int
}

func (c *Codec) newDecodeState(r *vlq.Reader) *decodeState {
	return &decodeState{Reader: r, cfg: &c.cfg}
}

func (ds *decodeState) enter() error {
	ds.depth++
	if ds.depth > ds.cfg.MaxDepth {
		return fmt.Errorf("%w: nesting deeper than %d at offset %d", sigmaerrors.ErrDepthExceeded, ds.cfg.MaxDepth, ds.Position())
	}
	return nil
}

func (ds *decodeState) leave() {
	ds.depth--
}

// readLength reads a collection length or count and checks it against the
// limit and, for elements of at least minSize bytes, the remaining input.
func (ds *decodeState) readLength(minSize int) (int, error) {
	start := ds.Position()
	u, err := ds.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if u > uint64(ds.cfg.MaxCollectionLength) {
		return 0, fmt.Errorf("%w: length %d at offset %d exceeds %d", sigmaerrors.ErrOverflow, u, start, ds.cfg.MaxCollectionLength)
	}
	n := int(u)
	if minSize > 0 && n*minSize > ds.Remaining() {
		return 0, fmt.Errorf("%w: %d items of at least %d bytes at offset %d, %d bytes left", sigmaerrors.ErrTruncated, n, minSize, start, ds.Remaining())
	}
	return n, nil
}

func (ds *decodeState) countEmpty(n int) error {
	ds.empty += n
	if ds.empty > ds.cfg.MaxCollectionLength {
		return fmt.Errorf("%w: more than %d zero-width elements", sigmaerrors.ErrOverflow, ds.cfg.MaxCollectionLength)
	}
	return nil
}
