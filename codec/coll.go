package codec

import (
	"fmt"

	"github.com/colorfulnotion/sigmacodec/types"
)

func (es *encodeState) encodeColl(t types.SType, v types.Value) error {
	if t.Elem == nil {
		return valueMismatch(t, v)
	}
	if t.IsByteArray() {
		b, ok := v.(types.BytesValue)
		if !ok {
			return valueMismatch(t, v)
		}
		if err := es.putLength(len(b)); err != nil {
			return err
		}
		es.PutBytes(b)
		return nil
	}
	items, ok := v.(types.CollValue)
	if !ok {
		return valueMismatch(t, v)
	}
	if err := es.putLength(len(items)); err != nil {
		return err
	}
	for i, it := range items {
		if err := es.encodeValue(*t.Elem, it); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func (es *encodeState) encodeTuple(t types.SType, v types.Value) error {
	items, ok := v.(types.TupleValue)
	if !ok || len(items) != len(t.Items) {
		return valueMismatch(t, v)
	}
	for i, it := range items {
		if err := es.encodeValue(t.Items[i], it); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// zeroWidth reports types whose values occupy no bytes on the wire.
func zeroWidth(t types.SType) bool {
	switch t.Kind {
	case types.KindUnit:
		return true
	case types.KindTuple:
		for _, it := range t.Items {
			if !zeroWidth(it) {
				return false
			}
		}
		return true
	}
	return false
}

func (ds *decodeState) decodeColl(t types.SType) (types.Value, error) {
	if t.IsByteArray() {
		n, err := ds.readLength(1)
		if err != nil {
			return nil, err
		}
		b, err := ds.ReadBytes(n)
		if err != nil {
			return nil, err
		}
		return types.BytesValue(b), nil
	}
	elem := *t.Elem
	minSize := 1
	if zeroWidth(elem) {
		minSize = 0
	}
	n, err := ds.readLength(minSize)
	if err != nil {
		return nil, err
	}
	if minSize == 0 {
		if err := ds.countEmpty(n); err != nil {
			return nil, err
		}
	}
	items := make(types.CollValue, n)
	for i := range items {
		it, err := ds.decodeValue(elem)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		items[i] = it
	}
	return items, nil
}

func (ds *decodeState) decodeTuple(t types.SType) (types.Value, error) {
	items := make(types.TupleValue, len(t.Items))
	for i, it := range t.Items {
		v, err := ds.decodeValue(it)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items[i] = v
	}
	return items, nil
}
