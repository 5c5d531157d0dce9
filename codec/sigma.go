package codec

import (
	"fmt"
	"math"

	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
	"github.com/colorfulnotion/sigmacodec/types"
)

// Proposition node op codes.
const (
	OpProveDlog    byte = 0xcd
	OpProveDHTuple byte = 0xce
	OpAnd          byte = 0x96
	OpOr           byte = 0x97
	OpThreshold    byte = 0x98
)

func (es *encodeState) encodeSigma(sb types.SigmaBoolean) error {
	if err := es.enter(); err != nil {
		return err
	}
	defer es.leave()

	switch sb := sb.(type) {
	case types.ProveDlog:
		if err := es.validatePoint(sb.H); err != nil {
			return err
		}
		es.PutByte(OpProveDlog)
		es.encodePoint(sb.H)
	case types.ProveDHTuple:
		for _, g := range []types.GroupElement{sb.G, sb.H, sb.U, sb.V} {
			if err := es.validatePoint(g); err != nil {
				return err
			}
		}
		es.PutByte(OpProveDHTuple)
		es.encodePoint(sb.G)
		es.encodePoint(sb.H)
		es.encodePoint(sb.U)
		es.encodePoint(sb.V)
	case types.CAND:
		es.PutByte(OpAnd)
		return es.encodeChildren(sb.Children)
	case types.COR:
		es.PutByte(OpOr)
		return es.encodeChildren(sb.Children)
	case types.CThreshold:
		if int(sb.K) > len(sb.Children) {
			return fmt.Errorf("%w: threshold %d over %d children", sigmaerrors.ErrTypeMismatch, sb.K, len(sb.Children))
		}
		es.PutByte(OpThreshold)
		es.PutUvarint(uint64(sb.K))
		return es.encodeChildren(sb.Children)
	default:
		return fmt.Errorf("%w: %T", sigmaerrors.ErrUnknownSigmaProp, sb)
	}
	return nil
}

func (es *encodeState) encodeChildren(children []types.SigmaBoolean) error {
	if len(children) == 0 || len(children) > math.MaxUint16 {
		return fmt.Errorf("%w: conjecture with %d children", sigmaerrors.ErrTypeMismatch, len(children))
	}
	es.PutUvarint(uint64(len(children)))
	for _, c := range children {
		if err := es.encodeSigma(c); err != nil {
			return err
		}
	}
	return nil
}

func (ds *decodeState) decodeSigma() (types.SigmaBoolean, error) {
	if err := ds.enter(); err != nil {
		return nil, err
	}
	defer ds.leave()

	start := ds.Position()
	op, err := ds.ReadByte()
	if err != nil {
		return nil, err
	}
	switch op {
	case OpProveDlog:
		h, err := ds.decodePoint()
		if err != nil {
			return nil, err
		}
		return types.ProveDlog{H: h}, nil
	case OpProveDHTuple:
		var pts [4]types.GroupElement
		for i := range pts {
			if pts[i], err = ds.decodePoint(); err != nil {
				return nil, err
			}
		}
		return types.ProveDHTuple{G: pts[0], H: pts[1], U: pts[2], V: pts[3]}, nil
	case OpAnd:
		children, err := ds.decodeChildren()
		if err != nil {
			return nil, err
		}
		return types.CAND{Children: children}, nil
	case OpOr:
		children, err := ds.decodeChildren()
		if err != nil {
			return nil, err
		}
		return types.COR{Children: children}, nil
	case OpThreshold:
		k, err := ds.ReadUint16()
		if err != nil {
			return nil, err
		}
		children, err := ds.decodeChildren()
		if err != nil {
			return nil, err
		}
		if int(k) > len(children) {
			return nil, fmt.Errorf("%w: threshold %d over %d children at offset %d", sigmaerrors.ErrTypeMismatch, k, len(children), start)
		}
		return types.CThreshold{K: k, Children: children}, nil
	}
	return nil, fmt.Errorf("%w: op code 0x%02x at offset %d", sigmaerrors.ErrUnknownSigmaProp, op, start)
}

func (ds *decodeState) decodeChildren() ([]types.SigmaBoolean, error) {
	start := ds.Position()
	n, err := ds.ReadUint16()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: conjecture without children at offset %d", sigmaerrors.ErrTypeMismatch, start)
	}
	if int(n) > ds.Remaining() {
		return nil, fmt.Errorf("%w: %d children at offset %d, %d bytes left", sigmaerrors.ErrTruncated, n, start, ds.Remaining())
	}
	children := make([]types.SigmaBoolean, n)
	for i := range children {
		if children[i], err = ds.decodeSigma(); err != nil {
			return nil, err
		}
	}
	return children, nil
}
