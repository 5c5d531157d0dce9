package codec

import (
	"fmt"

	"github.com/colorfulnotion/sigmacodec/log"
	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
	"github.com/colorfulnotion/sigmacodec/types"
	"github.com/colorfulnotion/sigmacodec/vlq"
)

// EncodeType serializes a type descriptor on its own.
func (c *Codec) EncodeType(t types.SType) ([]byte, error) {
	es := c.newEncodeState()
	if err := es.encodeType(t); err != nil {
		return nil, err
	}
	return es.Bytes(), nil
}

// DecodeType reads one type descriptor from r.
func (c *Codec) DecodeType(r *vlq.Reader) (types.SType, error) {
	return c.newDecodeState(r).decodeType()
}

func (es *encodeState) encodeType(t types.SType) error {
	if err := es.enter(); err != nil {
		return err
	}
	defer es.leave()

	tt := &es.cfg.Tags
	if code := tt.code(t); code != 0 {
		es.PutByte(code)
		return nil
	}
	switch t.Kind {
	case types.KindUnit:
		es.PutByte(tt.Unit)
	case types.KindBox:
		es.PutByte(tt.Box)
	case types.KindColl:
		if t.Elem == nil {
			return fmt.Errorf("%w: Coll without element type", sigmaerrors.ErrTypeMismatch)
		}
		elem := *t.Elem
		if code := tt.code(elem); code != 0 {
			es.PutByte(tt.Coll + code)
			return nil
		}
		if elem.Kind == types.KindColl && elem.Elem != nil {
			if code := tt.code(*elem.Elem); code != 0 {
				es.PutByte(tt.NestedColl + code)
				return nil
			}
		}
		es.PutByte(tt.Coll)
		return es.encodeType(elem)
	case types.KindTuple:
		return es.encodeTupleType(t.Items)
	default:
		return fmt.Errorf("%w: cannot encode type kind %s", sigmaerrors.ErrTypeMismatch, t.Kind)
	}
	return nil
}

// encodeTupleType picks the most compact form: pairs fold an embeddable item
// into the tag, triples and quadruples use the empty primitive slot of the
// pair ranges, and anything longer spells out its arity.
func (es *encodeState) encodeTupleType(items []types.SType) error {
	tt := &es.cfg.Tags
	switch len(items) {
	case 2:
		c1, c2 := tt.code(items[0]), tt.code(items[1])
		switch {
		case c1 != 0 && c1 == c2:
			es.PutByte(tt.PairSymmetric + c1)
			return nil
		case c1 != 0:
			es.PutByte(tt.Pair1 + c1)
			return es.encodeType(items[1])
		case c2 != 0:
			es.PutByte(tt.Pair2 + c2)
			return es.encodeType(items[0])
		}
		es.PutByte(tt.Pair1)
	case 3:
		es.PutByte(tt.Pair2)
	case 4:
		es.PutByte(tt.PairSymmetric)
	default:
		if len(items) < types.MinTupleArity || len(items) > types.MaxTupleArity {
			return fmt.Errorf("%w: tuple arity %d", sigmaerrors.ErrTypeMismatch, len(items))
		}
		es.PutByte(tt.Tuple)
		es.PutByte(byte(len(items)))
	}
	for _, it := range items {
		if err := es.encodeType(it); err != nil {
			return err
		}
	}
	return nil
}

func (ds *decodeState) decodeType() (types.SType, error) {
	if err := ds.enter(); err != nil {
		return types.SType{}, err
	}
	defer ds.leave()

	start := ds.Position()
	tag, err := ds.ReadByte()
	if err != nil {
		return types.SType{}, err
	}
	tt := &ds.cfg.Tags
	switch {
	case tag == tt.Unit:
		return types.SUnit, nil
	case tag == tt.Box:
		return types.SBox, nil
	case tag == tt.Tuple:
		n, err := ds.ReadByte()
		if err != nil {
			return types.SType{}, err
		}
		if int(n) < types.MinTupleArity {
			return types.SType{}, fmt.Errorf("%w: tuple of arity %d at offset %d", sigmaerrors.ErrUnknownType, n, start)
		}
		return ds.decodeItems(int(n))
	case tag > 0 && tag < tt.Tuple:
		return ds.decodeConstructor(tag, start)
	}
	log.Debug(log.TypeModule, "unknown type tag", "tag", tag, "offset", start)
	return types.SType{}, fmt.Errorf("%w: tag 0x%02x at offset %d", sigmaerrors.ErrUnknownType, tag, start)
}

// decodeConstructor splits a tag below the generic tuple code into its
// constructor range and primitive slot.
func (ds *decodeState) decodeConstructor(tag byte, start int) (types.SType, error) {
	tt := &ds.cfg.Tags
	base := tag / tt.PrimRange * tt.PrimRange
	slot := tag % tt.PrimRange

	var prim types.SType
	hasPrim := slot != 0
	if hasPrim {
		p, ok := tt.primitive(slot)
		if !ok {
			log.Debug(log.TypeModule, "unknown primitive code", "tag", tag, "offset", start)
			return types.SType{}, fmt.Errorf("%w: tag 0x%02x at offset %d", sigmaerrors.ErrUnknownType, tag, start)
		}
		prim = p
	}

	switch base {
	case 0:
		return prim, nil
	case tt.Coll:
		if hasPrim {
			return types.SColl(prim), nil
		}
		elem, err := ds.decodeType()
		if err != nil {
			return types.SType{}, err
		}
		return types.SColl(elem), nil
	case tt.NestedColl:
		if hasPrim {
			return types.SColl(types.SColl(prim)), nil
		}
		// The inner collection takes its own level, as it will when encoded.
		if err := ds.enter(); err != nil {
			return types.SType{}, err
		}
		defer ds.leave()
		elem, err := ds.decodeType()
		if err != nil {
			return types.SType{}, err
		}
		return types.SColl(types.SColl(elem)), nil
	case tt.Pair1:
		if !hasPrim {
			return ds.decodeItems(2)
		}
		second, err := ds.decodeType()
		if err != nil {
			return types.SType{}, err
		}
		return types.STuple(prim, second), nil
	case tt.Pair2:
		if !hasPrim {
			return ds.decodeItems(3)
		}
		first, err := ds.decodeType()
		if err != nil {
			return types.SType{}, err
		}
		return types.STuple(first, prim), nil
	case tt.PairSymmetric:
		if !hasPrim {
			return ds.decodeItems(4)
		}
		return types.STuple(prim, prim), nil
	}
	log.Debug(log.TypeModule, "unsupported type constructor", "tag", tag, "offset", start)
	return types.SType{}, fmt.Errorf("%w: tag 0x%02x at offset %d", sigmaerrors.ErrUnknownType, tag, start)
}

func (ds *decodeState) decodeItems(n int) (types.SType, error) {
	items := make([]types.SType, n)
	for i := range items {
		it, err := ds.decodeType()
		if err != nil {
			return types.SType{}, err
		}
		items[i] = it
	}
	return types.NewTupleType(items...)
}
