package codec

import (
	"fmt"

	"github.com/colorfulnotion/sigmacodec/types"
)

func (es *encodeState) encodePoint(g types.GroupElement) {
	es.PutBytes(g[:])
}

// decodePoint reads a compressed point and checks it against the configured
// curve unless point checks are switched off.
func (ds *decodeState) decodePoint() (types.GroupElement, error) {
	var g types.GroupElement
	start := ds.Position()
	if err := ds.ReadFixed(g[:]); err != nil {
		return g, err
	}
	if ds.cfg.SkipPointCheck {
		return g, nil
	}
	if err := ds.cfg.Curve.ValidatePoint(g[:]); err != nil {
		return types.GroupElement{}, fmt.Errorf("%w (offset %d)", err, start)
	}
	return g, nil
}

// validatePoint applies the same check on the encoding side.
func (es *encodeState) validatePoint(g types.GroupElement) error {
	if es.cfg.SkipPointCheck {
		return nil
	}
	if err := es.cfg.Curve.ValidatePoint(g[:]); err != nil {
		return fmt.Errorf("encode point %s: %w", g, err)
	}
	return nil
}
