// sigmacodec encodes and decodes sigma constants, boxes and ErgoTree
// envelopes from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/colorfulnotion/sigmacodec/codec"
	"github.com/colorfulnotion/sigmacodec/common"
	log "github.com/colorfulnotion/sigmacodec/log"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

type options struct {
	maxDepth       int
	maxCollLen     int
	skipPointCheck bool
	logLevel       string
	logModules     string
	logJSON        bool
}

func (o *options) codec() (*codec.Codec, error) {
	cfg := codec.DefaultConfig()
	cfg.MaxDepth = o.maxDepth
	cfg.MaxCollectionLength = o.maxCollLen
	cfg.SkipPointCheck = o.skipPointCheck
	return codec.New(cfg)
}

func (o *options) initLogging(cmd *cobra.Command) error {
	var err error
	if o.logJSON {
		err = log.InitJSONLogger(cmd.ErrOrStderr(), o.logLevel)
	} else {
		err = log.InitLogger(o.logLevel)
	}
	if err != nil {
		return err
	}
	log.EnableModules(o.logModules)
	return nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "sigmacodec",
		Short:         "Sigma constant, box and ErgoTree codec",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initLogging(cmd)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.IntVar(&opts.maxDepth, "max-depth", codec.DefaultMaxDepth, "Maximum nesting depth of types and values")
	pf.IntVar(&opts.maxCollLen, "max-coll-len", codec.DefaultMaxCollectionLength, "Maximum collection length")
	pf.BoolVar(&opts.skipPointCheck, "skip-point-check", false, "Accept group elements without curve validation")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level name (trace .. crit) or verbosity 0-5")
	pf.StringVar(&opts.logModules, "log-modules", "", "Comma separated debug modules, or \"all\"")
	pf.BoolVar(&opts.logJSON, "log-json", false, "Write logs as JSON")

	rootCmd.AddCommand(
		newEncodeCmd(opts),
		newDecodeCmd(opts),
		newBoxCmd(opts),
		newTreeCmd(opts),
		newStoreCmd(opts),
		newConsoleCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			commit := Commit
			if commit == "none" {
				commit = common.GetCommitHash()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sigmacodec %s (commit %s, built %s)\n", Version, commit, BuildTime)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(log.CLIModule, "command failed", "err", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
