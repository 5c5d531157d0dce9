package storage

import (
	"fmt"

	"github.com/colorfulnotion/sigmacodec/codec"
	"github.com/colorfulnotion/sigmacodec/common"
	"github.com/colorfulnotion/sigmacodec/log"
	"github.com/colorfulnotion/sigmacodec/types"
)

// Key prefixes. Constants are content addressed by the blake2b-256 digest
// of their encoding; boxes are keyed by box id.
var (
	constantPrefix = []byte("c")
	boxPrefix      = []byte("b")
)

func constantKey(id common.Digest32) []byte {
	return append(append([]byte(nil), constantPrefix...), id.Bytes()...)
}

func boxKey(id common.Digest32) []byte {
	return append(append([]byte(nil), boxPrefix...), id.Bytes()...)
}

// Store persists constants and boxes in their wire encoding.
type Store struct {
	*PersistenceStore
	codec *codec.Codec
}

// Open opens a store at path; an empty path keeps everything in memory. A nil
// codec means codec.Default().
func Open(path string, c *codec.Codec) (*Store, error) {
	ps, err := NewPersistenceStore(path)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = codec.Default()
	}
	log.Debug(log.StoreModule, "opened store", "path", path)
	return &Store{PersistenceStore: ps, codec: c}, nil
}

// ConstantID is the content address of a constant.
func (s *Store) ConstantID(c types.Constant) (common.Digest32, error) {
	enc, err := s.codec.EncodeConstant(c)
	if err != nil {
		return common.Digest32{}, err
	}
	return common.Blake2b256(enc), nil
}

// PutConstant stores c and returns its content address.
func (s *Store) PutConstant(c types.Constant) (common.Digest32, error) {
	enc, err := s.codec.EncodeConstant(c)
	if err != nil {
		return common.Digest32{}, err
	}
	id := common.Blake2b256(enc)
	if err := s.Put(constantKey(id), enc); err != nil {
		return common.Digest32{}, fmt.Errorf("put constant %s: %w", id, err)
	}
	log.Structured(log.StoreModule, "put_constant", enc, "type", c.Type())
	return id, nil
}

// GetConstant loads the constant stored under id.
func (s *Store) GetConstant(id common.Digest32) (types.Constant, bool, error) {
	enc, ok, err := s.Get(constantKey(id))
	if err != nil || !ok {
		return types.Constant{}, false, err
	}
	c, err := s.codec.ParseConstant(enc)
	if err != nil {
		return types.Constant{}, false, fmt.Errorf("constant %s: %w", id, err)
	}
	return c, true, nil
}

// PutBox stores b under its box id.
func (s *Store) PutBox(b *types.BoxRecord) error {
	return s.PutBoxes([]*types.BoxRecord{b})
}

// PutBoxes stores boxes in one atomic batch.
func (s *Store) PutBoxes(boxes []*types.BoxRecord) error {
	pairs := make([][2][]byte, 0, len(boxes))
	for i, b := range boxes {
		if b == nil {
			return fmt.Errorf("box %d is nil", i)
		}
		enc, err := s.codec.EncodeBox(b)
		if err != nil {
			return fmt.Errorf("encode box %s: %w", b.BoxID, err)
		}
		pairs = append(pairs, [2][]byte{boxKey(b.BoxID), enc})
	}
	if err := s.PutBatch(pairs); err != nil {
		return fmt.Errorf("put %d boxes: %w", len(boxes), err)
	}
	log.Debug(log.StoreModule, "stored boxes", "count", len(boxes))
	return nil
}

func (s *Store) GetBox(id common.Digest32) (*types.BoxRecord, bool, error) {
	enc, ok, err := s.Get(boxKey(id))
	if err != nil || !ok {
		return nil, false, err
	}
	b, err := s.codec.ParseBox(enc)
	if err != nil {
		return nil, false, fmt.Errorf("box %s: %w", id, err)
	}
	return b, true, nil
}

func (s *Store) DeleteBox(id common.Digest32) error {
	return s.Delete(boxKey(id))
}

// Boxes calls fn for every stored box in box id order.
func (s *Store) Boxes(fn func(*types.BoxRecord) error) error {
	return s.IteratePrefix(boxPrefix, func(key, value []byte) error {
		b, err := s.codec.ParseBox(value)
		if err != nil {
			return fmt.Errorf("box %x: %w", key[len(boxPrefix):], err)
		}
		return fn(b)
	})
}
