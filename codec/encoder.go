package codec

import (
	"fmt"

	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
	"github.com/colorfulnotion/sigmacodec/vlq"
)

// encodeState carries one encoding pass. Nesting is bounded on the way out
// as well so that everything written can be read back by the same codec.
type encodeState struct {
	*vlq.Writer
	cfg   *Config
	depth int
}

func (c *Codec) newEncodeState() *encodeState {
	return &encodeState{Writer: vlq.NewWriter(), cfg: &c.cfg}
}

func (es *encodeState) enter() error {
	es.depth++
	if es.depth > es.cfg.MaxDepth {
		return fmt.Errorf("%w: nesting deeper than %d", sigmaerrors.ErrDepthExceeded, es.cfg.MaxDepth)
	}
	return nil
}

func (es *encodeState) leave() {
	es.depth--
}

// putLength writes a collection length or count after checking the limit.
func (es *encodeState) putLength(n int) error {
	if n > es.cfg.MaxCollectionLength {
		return fmt.Errorf("%w: length %d exceeds %d", sigmaerrors.ErrOverflow, n, es.cfg.MaxCollectionLength)
	}
	es.PutUvarint(uint64(n))
	return nil
}
