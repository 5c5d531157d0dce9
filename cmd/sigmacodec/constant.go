package main

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/colorfulnotion/sigmacodec/boxjson"
	"github.com/colorfulnotion/sigmacodec/common"
	log "github.com/colorfulnotion/sigmacodec/log"
	"github.com/colorfulnotion/sigmacodec/types"
)

var valueFlags = []string{"bool", "byte", "short", "int", "long", "bigint", "bytes", "longs", "point", "pair-bytes", "pair-longs", "box-json"}

type encodeFlags struct {
	boolV     bool
	byteV     int8
	shortV    int16
	intV      int32
	longV     int64
	bigint    string
	bytes     string
	longs     []string
	point     string
	pairBytes []string
	pairLongs []int64
	boxJSON   string
}

// constant builds the constant selected by the one value flag that was set.
func (f *encodeFlags) constant(cmd *cobra.Command, opts *options) (types.Constant, error) {
	changed := func(name string) bool { return cmd.Flags().Changed(name) }
	switch {
	case changed("bool"):
		return types.ConstantFromBool(f.boolV), nil
	case changed("byte"):
		return types.ConstantFromByte(f.byteV), nil
	case changed("short"):
		return types.ConstantFromInt16(f.shortV), nil
	case changed("int"):
		return types.ConstantFromInt32(f.intV), nil
	case changed("long"):
		return types.ConstantFromInt64(f.longV), nil
	case changed("bigint"):
		n, ok := new(big.Int).SetString(f.bigint, 10)
		if !ok {
			return types.Constant{}, fmt.Errorf("invalid integer %q", f.bigint)
		}
		return types.ConstantFromBigInt(n)
	case changed("bytes"):
		b, err := common.Hex2Bytes(f.bytes)
		if err != nil {
			return types.Constant{}, err
		}
		return types.ConstantFromBytes(b)
	case changed("longs"):
		return types.ConstantFromInt64Strings(f.longs)
	case changed("point"):
		b, err := common.Hex2Bytes(f.point)
		if err != nil {
			return types.Constant{}, err
		}
		return types.ConstantFromECPointBytes(b)
	case changed("pair-bytes"):
		if len(f.pairBytes) != 2 {
			return types.Constant{}, fmt.Errorf("--pair-bytes takes two hex values, got %d", len(f.pairBytes))
		}
		a, err := common.Hex2Bytes(f.pairBytes[0])
		if err != nil {
			return types.Constant{}, err
		}
		b, err := common.Hex2Bytes(f.pairBytes[1])
		if err != nil {
			return types.Constant{}, err
		}
		return types.ConstantFromTupleBytes(a, b)
	case changed("pair-longs"):
		if len(f.pairLongs) != 2 {
			return types.Constant{}, fmt.Errorf("--pair-longs takes two values, got %d", len(f.pairLongs))
		}
		return types.ConstantFromTupleInt64(f.pairLongs[0], f.pairLongs[1]), nil
	case changed("box-json"):
		c, err := opts.codec()
		if err != nil {
			return types.Constant{}, err
		}
		data, err := readInput(cmd, f.boxJSON)
		if err != nil {
			return types.Constant{}, err
		}
		b, err := boxjson.ParseBox(c, data)
		if err != nil {
			return types.Constant{}, err
		}
		return types.ConstantFromBox(b)
	}
	return types.Constant{}, fmt.Errorf("one of --%s is required", strings.Join(valueFlags, ", --"))
}

func newEncodeCmd(opts *options) *cobra.Command {
	f := &encodeFlags{}
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a typed value as constant hex",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := f.constant(cmd, opts)
			if err != nil {
				return err
			}
			c, err := opts.codec()
			if err != nil {
				return err
			}
			h, err := c.EncodeConstantHex(k)
			if err != nil {
				return err
			}
			log.Debug(log.CLIModule, "encoded", "type", k.Type(), "hex", h)
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.BoolVar(&f.boolV, "bool", false, "Boolean value")
	fl.Int8Var(&f.byteV, "byte", 0, "Byte value")
	fl.Int16Var(&f.shortV, "short", 0, "Short value")
	fl.Int32Var(&f.intV, "int", 0, "Int value")
	fl.Int64Var(&f.longV, "long", 0, "Long value")
	fl.StringVar(&f.bigint, "bigint", "", "BigInt value in decimal")
	fl.StringVar(&f.bytes, "bytes", "", "Coll[Byte] value in hex")
	fl.StringSliceVar(&f.longs, "longs", nil, "Coll[Long] values in decimal")
	fl.StringVar(&f.point, "point", "", "GroupElement as compressed point hex")
	fl.StringSliceVar(&f.pairBytes, "pair-bytes", nil, "(Coll[Byte], Coll[Byte]) as two hex values")
	fl.Int64SliceVar(&f.pairLongs, "pair-longs", nil, "(Long, Long) as two values")
	fl.StringVar(&f.boxJSON, "box-json", "", "Box from a JSON file, or - for stdin")
	cmd.MarkFlagsMutuallyExclusive(valueFlags...)
	cmd.MarkFlagsOneRequired(valueFlags...)
	return cmd
}

func newDecodeCmd(opts *options) *cobra.Command {
	var asTree, prefix bool
	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode constant hex and print its type and value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.codec()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if prefix {
				b, err := common.Hex2Bytes(args[0])
				if err != nil {
					return err
				}
				k, n, err := c.DecodeConstantBytes(b)
				if err != nil {
					return err
				}
				printConstant(cmd, k, asTree)
				fmt.Fprintf(out, "consumed %d of %d bytes\n", n, len(b))
				return nil
			}
			k, err := c.DecodeConstantHex(args[0])
			if err != nil {
				return err
			}
			printConstant(cmd, k, asTree)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asTree, "tree", false, "Print nested values as a tree")
	cmd.Flags().BoolVar(&prefix, "prefix", false, "Decode one constant and report the bytes it used")
	return cmd
}

func printConstant(cmd *cobra.Command, k types.Constant, asTree bool) {
	out := cmd.OutOrStdout()
	if asTree {
		fmt.Fprint(out, constantTree(k).String())
		return
	}
	fmt.Fprintf(out, "%s: %s\n", k.Type(), types.FormatValue(k.Value()))
}

// readInput reads a file, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
