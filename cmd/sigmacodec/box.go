package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/colorfulnotion/sigmacodec/boxjson"
	"github.com/colorfulnotion/sigmacodec/common"
	"github.com/colorfulnotion/sigmacodec/types"
)

func newBoxCmd(opts *options) *cobra.Command {
	boxCmd := &cobra.Command{
		Use:   "box",
		Short: "Convert boxes between JSON and the binary record form",
	}

	var asConstant bool
	encodeCmd := &cobra.Command{
		Use:   "encode <file|->",
		Short: "Encode a JSON box, or an array of boxes, to hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.codec()
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			boxes, err := parseBoxDocument(opts, data)
			if err != nil {
				return err
			}
			for _, b := range boxes {
				var enc []byte
				if asConstant {
					k, err := types.ConstantFromBox(b)
					if err != nil {
						return err
					}
					enc, err = c.EncodeConstant(k)
					if err != nil {
						return err
					}
				} else if enc, err = c.EncodeBox(b); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), common.Bytes2Hex(enc))
			}
			return nil
		},
	}
	encodeCmd.Flags().BoolVar(&asConstant, "constant", false, "Prefix the Box type tag so the output is a constant")

	var decodeConstant, asTree bool
	decodeCmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a binary box and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := decodeBoxHex(opts, args[0], decodeConstant)
			if err != nil {
				return err
			}
			if asTree {
				k, err := types.ConstantFromBox(b)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), constantTree(k).String())
				return nil
			}
			c, err := opts.codec()
			if err != nil {
				return err
			}
			out, err := boxjson.MarshalBox(c, b)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	decodeCmd.Flags().BoolVar(&decodeConstant, "constant", false, "Input is a Box constant with its type tag")
	decodeCmd.Flags().BoolVar(&asTree, "tree", false, "Print the box as a tree")

	var noColor bool
	diffCmd := &cobra.Command{
		Use:   "diff <want> <got>",
		Short: "Compare two JSON boxes field by field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.codec()
			if err != nil {
				return err
			}
			var pair [2]*types.BoxRecord
			for i, path := range args {
				data, err := readInput(cmd, path)
				if err != nil {
					return err
				}
				if pair[i], err = boxjson.ParseBox(c, data); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			d, err := boxjson.Diff(c, pair[0], pair[1], !noColor)
			if err != nil {
				return err
			}
			if d == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "boxes match")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return fmt.Errorf("boxes differ")
		},
	}
	diffCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable ANSI colors")

	boxCmd.AddCommand(encodeCmd, decodeCmd, diffCmd)
	return boxCmd
}

// parseBoxDocument accepts either a single JSON object or an array.
func parseBoxDocument(opts *options, data []byte) ([]*types.BoxRecord, error) {
	c, err := opts.codec()
	if err != nil {
		return nil, err
	}
	if trimmed := bytes.TrimLeft(data, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '[' {
		return boxjson.ParseBoxes(c, data)
	}
	b, err := boxjson.ParseBox(c, data)
	if err != nil {
		return nil, err
	}
	return []*types.BoxRecord{b}, nil
}

func decodeBoxHex(opts *options, s string, isConstant bool) (*types.BoxRecord, error) {
	c, err := opts.codec()
	if err != nil {
		return nil, err
	}
	if isConstant {
		k, err := c.DecodeConstantHex(s)
		if err != nil {
			return nil, err
		}
		return k.Box()
	}
	raw, err := common.Hex2Bytes(s)
	if err != nil {
		return nil, err
	}
	return c.ParseBox(raw)
}
