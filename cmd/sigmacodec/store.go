package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/colorfulnotion/sigmacodec/boxjson"
	"github.com/colorfulnotion/sigmacodec/common"
	"github.com/colorfulnotion/sigmacodec/storage"
	"github.com/colorfulnotion/sigmacodec/types"
)

func newStoreCmd(opts *options) *cobra.Command {
	var dbPath string
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Persist constants and boxes in a LevelDB database",
	}
	storeCmd.PersistentFlags().StringVar(&dbPath, "db", "sigmacodec.db", "Database directory")

	open := func() (*storage.Store, error) {
		c, err := opts.codec()
		if err != nil {
			return nil, err
		}
		return storage.Open(dbPath, c)
	}

	putCmd := &cobra.Command{
		Use:   "put <constant hex>",
		Short: "Store a constant and print its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()
			c, err := opts.codec()
			if err != nil {
				return err
			}
			k, err := c.DecodeConstantHex(args[0])
			if err != nil {
				return err
			}
			id, err := s.PutConstant(k)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id.Hex())
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Print the constant stored under id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := common.HexToDigest32(args[0])
			if err != nil {
				return err
			}
			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()
			k, ok, err := s.GetConstant(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("constant %s not found", id)
			}
			printConstant(cmd, k, false)
			return nil
		},
	}

	putBoxesCmd := &cobra.Command{
		Use:   "put-boxes <file|->",
		Short: "Store JSON boxes keyed by box id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			boxes, err := parseBoxDocument(opts, data)
			if err != nil {
				return err
			}
			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.PutBoxes(boxes); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %d boxes\n", len(boxes))
			return nil
		},
	}

	boxesCmd := &cobra.Command{
		Use:   "boxes",
		Short: "Print every stored box as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open()
			if err != nil {
				return err
			}
			defer s.Close()
			var all []*types.BoxRecord
			if err := s.Boxes(func(b *types.BoxRecord) error {
				all = append(all, b)
				return nil
			}); err != nil {
				return err
			}
			c, err := opts.codec()
			if err != nil {
				return err
			}
			out, err := boxjson.MarshalBoxes(c, all)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	storeCmd.AddCommand(putCmd, getCmd, putBoxesCmd, boxesCmd)
	return storeCmd
}
