package main

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/colorfulnotion/sigmacodec/common"
	"github.com/colorfulnotion/sigmacodec/ergotree"
	"github.com/colorfulnotion/sigmacodec/types"
)

// constantTree renders a constant as a tree of its nested values.
func constantTree(c types.Constant) treeprint.Tree {
	tree := treeprint.New()
	tree.SetValue(c.Type().String())
	addValue(tree, c.Type(), c.Value())
	return tree
}

func addValue(branch treeprint.Tree, t types.SType, v types.Value) {
	switch v := v.(type) {
	case types.CollValue:
		sub := branch.AddMetaBranch(fmt.Sprintf("%d items", len(v)), t.String())
		for _, it := range v {
			addValue(sub, *t.Elem, it)
		}
	case types.TupleValue:
		sub := branch.AddBranch(t.String())
		for i, it := range v {
			addValue(sub, t.Items[i], it)
		}
	case types.SigmaProp:
		addSigma(branch, v.Prop)
	case *types.BoxRecord:
		addBox(branch, v)
	default:
		branch.AddMetaNode(t.String(), types.FormatValue(v))
	}
}

func addSigma(branch treeprint.Tree, sb types.SigmaBoolean) {
	switch sb := sb.(type) {
	case types.ProveDlog:
		branch.AddMetaNode("ProveDlog", sb.H.String())
	case types.ProveDHTuple:
		sub := branch.AddBranch("ProveDHTuple")
		sub.AddMetaNode("g", sb.G.String())
		sub.AddMetaNode("h", sb.H.String())
		sub.AddMetaNode("u", sb.U.String())
		sub.AddMetaNode("v", sb.V.String())
	case types.CAND:
		sub := branch.AddBranch("AND")
		for _, ch := range sb.Children {
			addSigma(sub, ch)
		}
	case types.COR:
		sub := branch.AddBranch("OR")
		for _, ch := range sb.Children {
			addSigma(sub, ch)
		}
	case types.CThreshold:
		sub := branch.AddBranch(fmt.Sprintf("THRESHOLD(%d)", sb.K))
		for _, ch := range sb.Children {
			addSigma(sub, ch)
		}
	}
}

func addBox(branch treeprint.Tree, b *types.BoxRecord) {
	sub := branch.AddMetaBranch("Box", b.BoxID.Hex())
	sub.AddMetaNode("value", b.Value)
	sub.AddMetaNode("ergoTree", common.Bytes2Hex(b.ErgoTree))
	if len(b.Assets) > 0 {
		assets := sub.AddBranch("assets")
		for _, a := range b.Assets {
			assets.AddMetaNode(a.TokenID.Hex(), a.Amount)
		}
	}
	sub.AddMetaNode("creationHeight", b.CreationHeight)
	if b.AdditionalRegisters.Len() > 0 {
		regs := sub.AddBranch("registers")
		for i, c := range b.AdditionalRegisters.Values() {
			id := types.FirstAdditionalRegister + types.RegisterID(i)
			addValue(regs.AddMetaBranch(id.String(), c.Type().String()), c.Type(), c.Value())
		}
	}
	sub.AddMetaNode("transactionId", b.TransactionID.Hex())
	sub.AddMetaNode("index", b.Index)
}

// ergoTreeTree renders the envelope of a script.
func ergoTreeTree(t *ergotree.Tree) treeprint.Tree {
	tree := treeprint.New()
	h := t.Header()
	tree.SetValue(fmt.Sprintf("ErgoTree v%d", h.Version()))
	tree.AddMetaNode("header", fmt.Sprintf("0x%02x size=%t segregated=%t", byte(h), h.HasSize(), h.IsConstantSegregated()))
	if err := t.ConstantsErr(); err != nil {
		tree.AddMetaNode("unparsed", err.Error())
		tree.AddMetaNode("body", common.Bytes2Hex(t.Unparsed()))
		return tree
	}
	if h.IsConstantSegregated() {
		consts := tree.AddMetaBranch(len(t.Constants()), "constants")
		for i, c := range t.Constants() {
			addValue(consts.AddMetaBranch(i, c.Type().String()), c.Type(), c.Value())
		}
	}
	tree.AddMetaNode("root", common.Bytes2Hex(t.Root()))
	return tree
}
