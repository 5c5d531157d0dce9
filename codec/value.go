package codec

import (
	"fmt"

	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
	"github.com/colorfulnotion/sigmacodec/types"
	"github.com/colorfulnotion/sigmacodec/vlq"
)

// EncodeValue serializes v as a value of type t, without the descriptor.
func (c *Codec) EncodeValue(t types.SType, v types.Value) ([]byte, error) {
	es := c.newEncodeState()
	if err := es.encodeValue(t, v); err != nil {
		return nil, err
	}
	return es.Bytes(), nil
}

// DecodeValue reads one value of type t from r.
func (c *Codec) DecodeValue(r *vlq.Reader, t types.SType) (types.Value, error) {
	return c.newDecodeState(r).decodeValue(t)
}

func valueMismatch(t types.SType, v types.Value) error {
	return fmt.Errorf("%w: cannot encode %T as %s", sigmaerrors.ErrTypeMismatch, v, t)
}

func (es *encodeState) encodeValue(t types.SType, v types.Value) error {
	switch t.Kind {
	case types.KindBoolean:
		b, ok := v.(types.BooleanValue)
		if !ok {
			return valueMismatch(t, v)
		}
		if b {
			es.PutByte(1)
		} else {
			es.PutByte(0)
		}
	case types.KindByte:
		b, ok := v.(types.ByteValue)
		if !ok {
			return valueMismatch(t, v)
		}
		es.PutByte(byte(b))
	case types.KindShort:
		s, ok := v.(types.ShortValue)
		if !ok {
			return valueMismatch(t, v)
		}
		es.PutInt16(int16(s))
	case types.KindInt:
		i, ok := v.(types.IntValue)
		if !ok {
			return valueMismatch(t, v)
		}
		es.PutInt32(int32(i))
	case types.KindLong:
		l, ok := v.(types.LongValue)
		if !ok {
			return valueMismatch(t, v)
		}
		es.PutInt64(int64(l))
	case types.KindBigInt:
		b, ok := v.(types.BigIntValue)
		if !ok {
			return valueMismatch(t, v)
		}
		n, err := types.NewBigIntValue(b.Int())
		if err != nil {
			return err
		}
		es.PutBigInt(n.Int())
	case types.KindGroupElement:
		g, ok := v.(types.GroupElement)
		if !ok {
			return valueMismatch(t, v)
		}
		if err := es.validatePoint(g); err != nil {
			return err
		}
		es.encodePoint(g)
	case types.KindSigmaProp:
		sp, ok := v.(types.SigmaProp)
		if !ok {
			return valueMismatch(t, v)
		}
		return es.encodeSigma(sp.Prop)
	case types.KindUnit:
		if _, ok := v.(types.UnitValue); !ok {
			return valueMismatch(t, v)
		}
	case types.KindColl:
		return es.encodeColl(t, v)
	case types.KindTuple:
		return es.encodeTuple(t, v)
	case types.KindBox:
		b, ok := v.(*types.BoxRecord)
		if !ok || b == nil {
			return valueMismatch(t, v)
		}
		return es.encodeBox(b)
	default:
		return valueMismatch(t, v)
	}
	return nil
}

func (ds *decodeState) decodeValue(t types.SType) (types.Value, error) {
	switch t.Kind {
	case types.KindBoolean:
		start := ds.Position()
		b, err := ds.ReadByte()
		if err != nil {
			return nil, err
		}
		switch b {
		case 0:
			return types.BooleanValue(false), nil
		case 1:
			return types.BooleanValue(true), nil
		}
		return nil, fmt.Errorf("%w: boolean byte 0x%02x at offset %d", sigmaerrors.ErrTypeMismatch, b, start)
	case types.KindByte:
		b, err := ds.ReadByte()
		if err != nil {
			return nil, err
		}
		return types.ByteValue(int8(b)), nil
	case types.KindShort:
		s, err := ds.ReadInt16()
		if err != nil {
			return nil, err
		}
		return types.ShortValue(s), nil
	case types.KindInt:
		i, err := ds.ReadInt32()
		if err != nil {
			return nil, err
		}
		return types.IntValue(i), nil
	case types.KindLong:
		l, err := ds.ReadInt64()
		if err != nil {
			return nil, err
		}
		return types.LongValue(l), nil
	case types.KindBigInt:
		n, err := ds.ReadBigInt(types.BigIntBits)
		if err != nil {
			return nil, err
		}
		return types.NewBigIntValue(n)
	case types.KindGroupElement:
		return ds.decodePoint()
	case types.KindSigmaProp:
		sb, err := ds.decodeSigma()
		if err != nil {
			return nil, err
		}
		return types.SigmaProp{Prop: sb}, nil
	case types.KindUnit:
		return types.UnitValue{}, nil
	case types.KindColl:
		return ds.decodeColl(t)
	case types.KindTuple:
		return ds.decodeTuple(t)
	case types.KindBox:
		return ds.decodeBox()
	}
	return nil, fmt.Errorf("%w: cannot decode type kind %s", sigmaerrors.ErrTypeMismatch, t.Kind)
}
