package codec

import (
	"fmt"

	"github.com/colorfulnotion/sigmacodec/common"
	"github.com/colorfulnotion/sigmacodec/log"
	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
	"github.com/colorfulnotion/sigmacodec/types"
	"github.com/colorfulnotion/sigmacodec/vlq"
)

// tokenSize is the smallest encoding of one asset: a 32-byte id and a
// one-byte amount.
const tokenSize = common.DigestLength + 1

// EncodeBox serializes a box record without a type descriptor.
func (c *Codec) EncodeBox(b *types.BoxRecord) ([]byte, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil box", sigmaerrors.ErrTypeMismatch)
	}
	es := c.newEncodeState()
	if err := es.encodeBox(b); err != nil {
		return nil, err
	}
	return es.Bytes(), nil
}

// DecodeBox reads one box record from r.
func (c *Codec) DecodeBox(r *vlq.Reader) (*types.BoxRecord, error) {
	return c.newDecodeState(r).decodeBox()
}

// ParseBox decodes b as exactly one box record.
func (c *Codec) ParseBox(b []byte) (*types.BoxRecord, error) {
	r := vlq.NewReader(b)
	box, err := c.DecodeBox(r)
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d bytes after box", sigmaerrors.ErrTrailingBytes, r.Remaining())
	}
	return box, nil
}

func (es *encodeState) encodeBox(b *types.BoxRecord) error {
	if err := es.enter(); err != nil {
		return err
	}
	defer es.leave()

	es.PutBytes(b.BoxID.Bytes())
	es.PutInt64(b.Value)
	if err := es.putLength(len(b.ErgoTree)); err != nil {
		return fmt.Errorf("ergoTree: %w", err)
	}
	es.PutBytes(b.ErgoTree)
	if err := es.putLength(len(b.Assets)); err != nil {
		return fmt.Errorf("assets: %w", err)
	}
	for _, tok := range b.Assets {
		es.PutBytes(tok.TokenID.Bytes())
		es.PutInt64(tok.Amount)
	}
	es.PutUvarint(uint64(b.CreationHeight))

	regs := b.AdditionalRegisters.Values()
	if len(regs) > types.MaxAdditionalRegisters {
		return fmt.Errorf("%w: %d registers", sigmaerrors.ErrMalformedRegisters, len(regs))
	}
	es.PutByte(byte(len(regs)))
	for i, c := range regs {
		if err := es.encodeConstant(c); err != nil {
			return fmt.Errorf("register %s: %w", types.FirstAdditionalRegister+types.RegisterID(i), err)
		}
	}

	es.PutBytes(b.TransactionID.Bytes())
	es.PutUvarint(uint64(b.Index))
	return nil
}

func (ds *decodeState) decodeBox() (*types.BoxRecord, error) {
	if err := ds.enter(); err != nil {
		return nil, err
	}
	defer ds.leave()

	start := ds.Position()
	b := &types.BoxRecord{}
	var err error
	if err = ds.ReadFixed(b.BoxID[:]); err != nil {
		return nil, fmt.Errorf("boxId: %w", err)
	}
	if b.Value, err = ds.ReadInt64(); err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}
	n, err := ds.readLength(1)
	if err != nil {
		return nil, fmt.Errorf("ergoTree: %w", err)
	}
	if b.ErgoTree, err = ds.ReadBytes(n); err != nil {
		return nil, fmt.Errorf("ergoTree: %w", err)
	}
	if n, err = ds.readLength(tokenSize); err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	if n > 0 {
		b.Assets = make([]types.Token, n)
	}
	for i := range b.Assets {
		if err = ds.ReadFixed(b.Assets[i].TokenID[:]); err != nil {
			return nil, fmt.Errorf("asset %d: %w", i, err)
		}
		if b.Assets[i].Amount, err = ds.ReadInt64(); err != nil {
			return nil, fmt.Errorf("asset %d: %w", i, err)
		}
	}
	if b.CreationHeight, err = ds.ReadUint32(); err != nil {
		return nil, fmt.Errorf("creationHeight: %w", err)
	}

	regStart := ds.Position()
	count, err := ds.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("registers: %w", err)
	}
	if int(count) > types.MaxAdditionalRegisters {
		log.Debug(log.BoxModule, "register count out of range", "count", count, "offset", regStart)
		return nil, fmt.Errorf("%w: %d registers at offset %d, at most %d", sigmaerrors.ErrMalformedRegisters, count, regStart, types.MaxAdditionalRegisters)
	}
	regs := make([]types.Constant, count)
	for i := range regs {
		if regs[i], err = ds.decodeConstant(); err != nil {
			return nil, fmt.Errorf("register %s: %w", types.FirstAdditionalRegister+types.RegisterID(i), err)
		}
	}
	if b.AdditionalRegisters, err = types.RegistersFromSlice(regs); err != nil {
		return nil, err
	}

	if err = ds.ReadFixed(b.TransactionID[:]); err != nil {
		return nil, fmt.Errorf("transactionId: %w", err)
	}
	if b.Index, err = ds.ReadUint16(); err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	log.Trace(log.BoxModule, "decoded box", "box", b, "bytes", ds.Position()-start)
	return b, nil
}
