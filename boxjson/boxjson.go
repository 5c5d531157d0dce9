// Package boxjson converts between the node and explorer JSON form of a box
// and types.BoxRecord. Register values are serialized constants in hex.
package boxjson

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/colorfulnotion/sigmacodec/codec"
	"github.com/colorfulnotion/sigmacodec/common"
	"github.com/colorfulnotion/sigmacodec/log"
	"github.com/colorfulnotion/sigmacodec/types"
)

type Asset struct {
	TokenID common.Digest32 `json:"tokenId"`
	Amount  int64           `json:"amount"`
}

// Box mirrors the JSON document field for field.
type Box struct {
	BoxID               common.Digest32   `json:"boxId"`
	Value               int64             `json:"value"`
	ErgoTree            string            `json:"ergoTree"`
	Assets              []Asset           `json:"assets"`
	CreationHeight      uint32            `json:"creationHeight"`
	AdditionalRegisters map[string]string `json:"additionalRegisters"`
	TransactionID       common.Digest32   `json:"transactionId"`
	Index               uint16            `json:"index"`
}

// Record converts b, decoding the script and registers with c (or
// codec.Default() when c is nil).
func (b *Box) Record(c *codec.Codec) (*types.BoxRecord, error) {
	if c == nil {
		c = codec.Default()
	}
	tree, err := common.Hex2Bytes(b.ErgoTree)
	if err != nil {
		return nil, fmt.Errorf("box %s ergoTree: %w", b.BoxID, err)
	}
	regs := make(map[types.RegisterID]types.Constant, len(b.AdditionalRegisters))
	for name, h := range b.AdditionalRegisters {
		id, err := types.ParseRegisterID(name)
		if err != nil {
			return nil, fmt.Errorf("box %s: %w", b.BoxID, err)
		}
		k, err := c.DecodeConstantHex(h)
		if err != nil {
			return nil, fmt.Errorf("box %s register %s: %w", b.BoxID, id, err)
		}
		regs[id] = k
	}
	registers, err := types.NewRegisters(regs)
	if err != nil {
		return nil, fmt.Errorf("box %s: %w", b.BoxID, err)
	}
	r := &types.BoxRecord{
		BoxID:               b.BoxID,
		Value:               b.Value,
		ErgoTree:            tree,
		CreationHeight:      b.CreationHeight,
		AdditionalRegisters: registers,
		TransactionID:       b.TransactionID,
		Index:               b.Index,
	}
	for _, a := range b.Assets {
		r.Assets = append(r.Assets, types.Token{TokenID: a.TokenID, Amount: a.Amount})
	}
	return r, nil
}

// FromRecord renders r, encoding registers with c (or codec.Default()).
func FromRecord(c *codec.Codec, r *types.BoxRecord) (*Box, error) {
	if r == nil {
		return nil, fmt.Errorf("nil box")
	}
	if c == nil {
		c = codec.Default()
	}
	b := &Box{
		BoxID:               r.BoxID,
		Value:               r.Value,
		ErgoTree:            common.Bytes2Hex(r.ErgoTree),
		Assets:              make([]Asset, 0, len(r.Assets)),
		CreationHeight:      r.CreationHeight,
		AdditionalRegisters: make(map[string]string, r.AdditionalRegisters.Len()),
		TransactionID:       r.TransactionID,
		Index:               r.Index,
	}
	for _, t := range r.Assets {
		b.Assets = append(b.Assets, Asset{TokenID: t.TokenID, Amount: t.Amount})
	}
	for id, k := range r.AdditionalRegisters.Map() {
		h, err := c.EncodeConstantHex(k)
		if err != nil {
			return nil, fmt.Errorf("box %s register %s: %w", r.BoxID, id, err)
		}
		b.AdditionalRegisters[id.String()] = h
	}
	return b, nil
}

// ParseBoxes reads a JSON array of boxes.
func ParseBoxes(c *codec.Codec, data []byte) ([]*types.BoxRecord, error) {
	var boxes []Box
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&boxes); err != nil {
		return nil, fmt.Errorf("box json: %w", err)
	}
	out := make([]*types.BoxRecord, 0, len(boxes))
	for i := range boxes {
		r, err := boxes[i].Record(c)
		if err != nil {
			return nil, fmt.Errorf("box %d: %w", i, err)
		}
		out = append(out, r)
	}
	log.Debug(log.BoxModule, "parsed box json", "count", len(out))
	return out, nil
}

// ParseBox reads a single JSON box object.
func ParseBox(c *codec.Codec, data []byte) (*types.BoxRecord, error) {
	var b Box
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("box json: %w", err)
	}
	return b.Record(c)
}

// MarshalBox renders r as indented JSON.
func MarshalBox(c *codec.Codec, r *types.BoxRecord) ([]byte, error) {
	b, err := FromRecord(c, r)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(b, "", "  ")
}

// MarshalBoxes renders rs as an indented JSON array.
func MarshalBoxes(c *codec.Codec, rs []*types.BoxRecord) ([]byte, error) {
	out := make([]*Box, 0, len(rs))
	for _, r := range rs {
		b, err := FromRecord(c, r)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return json.MarshalIndent(out, "", "  ")
}

// Diff compares two boxes field by field in their JSON form. It returns an
// empty string when they match.
func Diff(c *codec.Codec, want, got *types.BoxRecord, coloring bool) (string, error) {
	left, err := MarshalBox(c, want)
	if err != nil {
		return "", err
	}
	right, err := MarshalBox(c, got)
	if err != nil {
		return "", err
	}
	delta, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return "", fmt.Errorf("diff box json: %w", err)
	}
	if !delta.Modified() {
		return "", nil
	}
	var leftObj map[string]interface{}
	if err := json.Unmarshal(left, &leftObj); err != nil {
		return "", err
	}
	f := formatter.NewAsciiFormatter(leftObj, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       coloring,
	})
	return f.Format(delta)
}
