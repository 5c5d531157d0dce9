package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/colorfulnotion/sigmacodec/ergotree"
	"github.com/colorfulnotion/sigmacodec/types"
)

func newTreeCmd(opts *options) *cobra.Command {
	var (
		index   int
		replace string
	)
	cmd := &cobra.Command{
		Use:   "tree <hex>",
		Short: "Show the header and segregated constants of an ErgoTree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.codec()
			if err != nil {
				return err
			}
			t, err := ergotree.ParseHex(c, args[0])
			if err != nil {
				return err
			}
			if replace == "" {
				fmt.Fprint(cmd.OutOrStdout(), ergoTreeTree(t).String())
				return nil
			}
			var k types.Constant
			if k, err = c.DecodeConstantHex(replace); err != nil {
				return fmt.Errorf("--set: %w", err)
			}
			if t, err = t.WithConstant(index, k); err != nil {
				return err
			}
			h, err := t.Hex(c)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "Constant index used with --set")
	cmd.Flags().StringVar(&replace, "set", "", "Replace constant --index with this constant hex and print the new tree")
	return cmd
}
