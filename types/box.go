package types

import (
	"bytes"
	"fmt"

	"github.com/colorfulnotion/sigmacodec/common"
)

// Token is an amount of one asset held by a box.
type Token struct {
	TokenID common.Digest32
	Amount  int64
}

// BoxRecord is a transaction output. Assets keep insertion order since box
// identity depends on it.
type BoxRecord struct {
	BoxID               common.Digest32
	Value               int64
	ErgoTree            []byte
	Assets              []Token
	CreationHeight      uint32
	AdditionalRegisters Registers
	TransactionID       common.Digest32
	// Index is the position of the box among its transaction's outputs.
	Index uint16
}

func (*BoxRecord) Kind() TypeKind { return KindBox }

// Clone returns a deep copy.
func (b *BoxRecord) Clone() *BoxRecord {
	if b == nil {
		return nil
	}
	out := *b
	out.ErgoTree = append([]byte(nil), b.ErgoTree...)
	out.Assets = append([]Token(nil), b.Assets...)
	out.AdditionalRegisters = Registers{values: b.AdditionalRegisters.Values()}
	return &out
}

func (b *BoxRecord) Equal(o *BoxRecord) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.BoxID != o.BoxID || b.Value != o.Value || b.CreationHeight != o.CreationHeight ||
		b.TransactionID != o.TransactionID || b.Index != o.Index {
		return false
	}
	if !bytes.Equal(b.ErgoTree, o.ErgoTree) || len(b.Assets) != len(o.Assets) {
		return false
	}
	for i := range b.Assets {
		if b.Assets[i] != o.Assets[i] {
			return false
		}
	}
	return b.AdditionalRegisters.Equal(o.AdditionalRegisters)
}

func (b *BoxRecord) String() string {
	if b == nil {
		return "Box(<nil>)"
	}
	return fmt.Sprintf("Box(id=%s, value=%d, height=%d, tokens=%d, registers=%d, tx=%s:%d)",
		b.BoxID.Short(), b.Value, b.CreationHeight, len(b.Assets), b.AdditionalRegisters.Len(), b.TransactionID.Short(), b.Index)
}
