package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dop251/goja"
	"github.com/spf13/cobra"

	"github.com/colorfulnotion/sigmacodec/boxjson"
	"github.com/colorfulnotion/sigmacodec/codec"
	"github.com/colorfulnotion/sigmacodec/common"
	"github.com/colorfulnotion/sigmacodec/ergotree"
	"github.com/colorfulnotion/sigmacodec/types"
)

// newVM returns a JavaScript runtime with codec helpers bound to c. Every
// helper returns plain objects; failures surface as thrown JS errors.
func newVM(c *codec.Codec, out io.Writer) *goja.Runtime {
	vm := goja.New()
	throw := func(err error) {
		panic(vm.NewGoError(err))
	}
	describe := func(k types.Constant) map[string]interface{} {
		h, err := c.EncodeConstantHex(k)
		if err != nil {
			throw(err)
		}
		return map[string]interface{}{
			"type":  k.Type().String(),
			"value": types.FormatValue(k.Value()),
			"hex":   h,
		}
	}

	vm.Set("decode", func(h string) map[string]interface{} {
		k, err := c.DecodeConstantHex(h)
		if err != nil {
			throw(err)
		}
		return describe(k)
	})
	vm.Set("int", func(v int32) map[string]interface{} {
		return describe(types.ConstantFromInt32(v))
	})
	vm.Set("long", func(s string) map[string]interface{} {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			throw(err)
		}
		return describe(types.ConstantFromInt64(n))
	})
	vm.Set("bytes", func(h string) map[string]interface{} {
		b, err := common.Hex2Bytes(h)
		if err != nil {
			throw(err)
		}
		k, err := types.ConstantFromBytes(b)
		if err != nil {
			throw(err)
		}
		return describe(k)
	})
	vm.Set("box", func(h string) interface{} {
		k, err := c.DecodeConstantHex(h)
		if err != nil {
			throw(err)
		}
		b, err := k.Box()
		if err != nil {
			throw(err)
		}
		doc, err := boxjson.MarshalBox(c, b)
		if err != nil {
			throw(err)
		}
		var v interface{}
		if err := json.Unmarshal(doc, &v); err != nil {
			throw(err)
		}
		return v
	})
	vm.Set("tree", func(h string) map[string]interface{} {
		t, err := ergotree.ParseHex(c, h)
		if err != nil {
			throw(err)
		}
		consts := make([]interface{}, 0, len(t.Constants()))
		for _, k := range t.Constants() {
			consts = append(consts, describe(k))
		}
		out := map[string]interface{}{
			"version":   int(t.Header().Version()),
			"constants": consts,
			"root":      common.Bytes2Hex(t.Root()),
		}
		if err := t.ConstantsErr(); err != nil {
			out["unparsed"] = common.Bytes2Hex(t.Unparsed())
			out["error"] = err.Error()
		}
		return out
	})
	vm.Set("print", func(args ...goja.Value) {
		for _, arg := range args {
			fmt.Fprintln(out, arg.Export())
		}
	})
	return vm
}

// evalLine runs one console line and renders the result.
func evalLine(vm *goja.Runtime, line string) (string, error) {
	v, err := vm.RunString(line)
	if err != nil {
		return "", err
	}
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return "", nil
	}
	if obj, ok := v.Export().(map[string]interface{}); ok {
		b, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return v.String(), nil
}

func newConsoleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Interactive JavaScript console with codec helpers",
		Long: `Starts a JavaScript console. Available helpers:
  decode(hex)  int(n)  long("n")  bytes(hex)  box(hex)  tree(hex)  print(...)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.codec()
			if err != nil {
				return err
			}
			rl, err := readline.NewEx(&readline.Config{
				Prompt:      "sigma> ",
				HistoryFile: filepath.Join(os.TempDir(), "sigmacodec_console_history.txt"),
				Stdout:      cmd.OutOrStdout(),
			})
			if err != nil {
				return fmt.Errorf("start readline: %w", err)
			}
			defer rl.Close()

			out := cmd.OutOrStdout()
			vm := newVM(c, out)
			for {
				line, err := rl.Readline()
				if err != nil {
					return nil
				}
				line = strings.TrimSpace(line)
				if line == "exit" {
					return nil
				}
				if line == "" {
					continue
				}
				res, err := evalLine(vm, line)
				if err != nil {
					fmt.Fprintln(out, "error:", err)
					continue
				}
				if res != "" {
					fmt.Fprintln(out, res)
				}
			}
		},
	}
}
