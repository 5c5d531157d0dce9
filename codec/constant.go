package codec

import (
	"fmt"

	"github.com/colorfulnotion/sigmacodec/log"
	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
	"github.com/colorfulnotion/sigmacodec/types"
	"github.com/colorfulnotion/sigmacodec/vlq"
)

// EncodeConstant serializes c as its type descriptor followed by its value.
func (c *Codec) EncodeConstant(k types.Constant) ([]byte, error) {
	es := c.newEncodeState()
	if err := es.encodeConstant(k); err != nil {
		log.Debug(log.CodecModule, "encode failed", "constant", k, "err", err)
		return nil, err
	}
	out := es.Bytes()
	log.Structured(log.CodecModule, "encode", out, "type", k.Type())
	return out, nil
}

// MustEncodeConstant runs EncodeConstant and panics on error.
func (c *Codec) MustEncodeConstant(k types.Constant) []byte {
	b, err := c.EncodeConstant(k)
	if err != nil {
		panic(err)
	}
	return b
}

// DecodeConstant reads one constant from r, leaving r after it.
func (c *Codec) DecodeConstant(r *vlq.Reader) (types.Constant, error) {
	return c.newDecodeState(r).decodeConstant()
}

// DecodeConstantBytes decodes the constant at the front of b and reports how
// many bytes it used. Bytes after the constant are left alone.
func (c *Codec) DecodeConstantBytes(b []byte) (types.Constant, int, error) {
	r := vlq.NewReader(b)
	k, err := c.DecodeConstant(r)
	if err != nil {
		log.Debug(log.CodecModule, "decode failed", "kind", sigmaerrors.GetErrorName(err), "offset", r.Position(), "err", err)
		return types.Constant{}, 0, err
	}
	log.Structured(log.CodecModule, "decode", b[:r.Position()], "type", k.Type(), "consumed", r.Position())
	return k, r.Position(), nil
}

// ParseConstant decodes b as exactly one constant.
func (c *Codec) ParseConstant(b []byte) (types.Constant, error) {
	k, n, err := c.DecodeConstantBytes(b)
	if err != nil {
		return types.Constant{}, err
	}
	if n != len(b) {
		return types.Constant{}, fmt.Errorf("%w: %d bytes after constant", sigmaerrors.ErrTrailingBytes, len(b)-n)
	}
	return k, nil
}

func (es *encodeState) encodeConstant(k types.Constant) error {
	if k.IsZero() {
		return fmt.Errorf("%w: empty constant", sigmaerrors.ErrTypeMismatch)
	}
	t := k.Type()
	if err := es.encodeType(t); err != nil {
		return err
	}
	return es.encodeValue(t, k.Value())
}

func (ds *decodeState) decodeConstant() (types.Constant, error) {
	t, err := ds.decodeType()
	if err != nil {
		return types.Constant{}, err
	}
	v, err := ds.decodeValue(t)
	if err != nil {
		return types.Constant{}, fmt.Errorf("%s value: %w", t, err)
	}
	if ds.cfg.SkipPointCheck {
		return types.NewLenientConstant(t, v)
	}
	return types.NewConstant(t, v)
}
