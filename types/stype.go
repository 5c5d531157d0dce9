package types

import (
	"fmt"
	"strings"
)

// TypeKind identifies the outer variant of an SType.
type TypeKind uint8

const (
	KindInvalid TypeKind = iota
	KindBoolean
	KindByte
	KindShort
	KindInt
	KindLong
	KindBigInt
	KindGroupElement
	KindSigmaProp
	KindUnit
	KindColl
	KindTuple
	KindBox
)

const (
	// MinTupleArity and MaxTupleArity bound the number of tuple items.
	MinTupleArity = 2
	MaxTupleArity = 255
)

var kindNames = map[TypeKind]string{
	KindBoolean:      "Boolean",
	KindByte:         "Byte",
	KindShort:        "Short",
	KindInt:          "Int",
	KindLong:         "Long",
	KindBigInt:       "BigInt",
	KindGroupElement: "GroupElement",
	KindSigmaProp:    "SigmaProp",
	KindUnit:         "Unit",
	KindColl:         "Coll",
	KindTuple:        "Tuple",
	KindBox:          "Box",
}

func (k TypeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TypeKind(%d)", uint8(k))
}

// IsPrimitive reports whether k is a leaf type without children.
func (k TypeKind) IsPrimitive() bool {
	return k >= KindBoolean && k <= KindUnit
}

// SType is a type descriptor tree. Elem is set only for KindColl and Items
// only for KindTuple; children are owned by their parent.
type SType struct {
	Kind  TypeKind
	Elem  *SType
	Items []SType
}

var (
	SBoolean      = SType{Kind: KindBoolean}
	SByte         = SType{Kind: KindByte}
	SShort        = SType{Kind: KindShort}
	SInt          = SType{Kind: KindInt}
	SLong         = SType{Kind: KindLong}
	SBigInt       = SType{Kind: KindBigInt}
	SGroupElement = SType{Kind: KindGroupElement}
	SSigmaProp    = SType{Kind: KindSigmaProp}
	SUnit         = SType{Kind: KindUnit}
	SBox          = SType{Kind: KindBox}
)

// SColl builds the collection type Coll[elem].
func SColl(elem SType) SType {
	e := elem.clone()
	return SType{Kind: KindColl, Elem: &e}
}

// SByteArray is Coll[Byte].
func SByteArray() SType {
	return SColl(SByte)
}

// NewTupleType builds a tuple type, enforcing the arity bounds.
func NewTupleType(items ...SType) (SType, error) {
	if len(items) < MinTupleArity || len(items) > MaxTupleArity {
		return SType{}, fmt.Errorf("tuple arity %d outside [%d, %d]", len(items), MinTupleArity, MaxTupleArity)
	}
	owned := make([]SType, len(items))
	for i, it := range items {
		owned[i] = it.clone()
	}
	return SType{Kind: KindTuple, Items: owned}, nil
}

// STuple is NewTupleType for statically known arities. It panics on a bad arity.
func STuple(items ...SType) SType {
	t, err := NewTupleType(items...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t SType) clone() SType {
	out := SType{Kind: t.Kind}
	if t.Elem != nil {
		e := t.Elem.clone()
		out.Elem = &e
	}
	if t.Items != nil {
		out.Items = make([]SType, len(t.Items))
		for i, it := range t.Items {
			out.Items[i] = it.clone()
		}
	}
	return out
}

// IsByteArray reports the Coll[Byte] special case.
func (t SType) IsByteArray() bool {
	return t.Kind == KindColl && t.Elem != nil && t.Elem.Kind == KindByte
}

// Depth is 1 for a primitive and grows by one per level of nesting.
func (t SType) Depth() int {
	switch t.Kind {
	case KindColl:
		if t.Elem == nil {
			return 1
		}
		return 1 + t.Elem.Depth()
	case KindTuple:
		max := 0
		for _, it := range t.Items {
			if d := it.Depth(); d > max {
				max = d
			}
		}
		return 1 + max
	default:
		return 1
	}
}

// Valid checks the structural invariants of the whole tree.
func (t SType) Valid() error {
	switch {
	case t.Kind.IsPrimitive(), t.Kind == KindBox:
		if t.Elem != nil || t.Items != nil {
			return fmt.Errorf("%s must not carry children", t.Kind)
		}
		return nil
	case t.Kind == KindColl:
		if t.Elem == nil {
			return fmt.Errorf("Coll without element type")
		}
		return t.Elem.Valid()
	case t.Kind == KindTuple:
		if len(t.Items) < MinTupleArity || len(t.Items) > MaxTupleArity {
			return fmt.Errorf("tuple arity %d outside [%d, %d]", len(t.Items), MinTupleArity, MaxTupleArity)
		}
		for _, it := range t.Items {
			if err := it.Valid(); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("invalid type kind %d", t.Kind)
	}
}

// Equal compares two type trees structurally.
func (t SType) Equal(o SType) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindColl:
		if t.Elem == nil || o.Elem == nil {
			return t.Elem == o.Elem
		}
		return t.Elem.Equal(*o.Elem)
	case KindTuple:
		if len(t.Items) != len(o.Items) {
			return false
		}
		for i := range t.Items {
			if !t.Items[i].Equal(o.Items[i]) {
				return false
			}
		}
	}
	return true
}

// String renders the type the way the scripting language spells it, e.g.
// Coll[(Coll[Byte], Long)].
func (t SType) String() string {
	switch t.Kind {
	case KindColl:
		if t.Elem == nil {
			return "Coll[?]"
		}
		return "Coll[" + t.Elem.String() + "]"
	case KindTuple:
		parts := make([]string, len(t.Items))
		for i, it := range t.Items {
			parts[i] = it.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return t.Kind.String()
	}
}
