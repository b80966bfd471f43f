package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/regdiff/internal/logger"
	"github.com/OpenTraceLab/regdiff/pkg/regdiff"
)

var (
	// Global flags
	verbose         int
	fixupsFile      string
	noDefaultFixups bool
)

var rootCmd = &cobra.Command{
	Use:   "regdiff",
	Short: "rtl8xxxu register map and dump diff tool",
	Long: `Reconstruct the rtl8xxxu register map from the driver header and explain
the differences between register dumps in terms of registers and fields.

Examples:
  regdiff diff rtl8xxxu_regs.h vendor.txt rtl8xxxu.txt   # Compare two dumps
  regdiff diff --section RF rtl8xxxu_regs.h dumps/       # Compare RF dumps of a directory
  regdiff map rtl8xxxu_regs.h                            # Show the reconstructed map
  regdiff capture-info captures/*.pcap                   # Show capture metadata`,
	Version:       "0.3.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Writer: cmd.ErrOrStderr(),
			Level:  logger.LevelFromVerbosity(verbose),
		})
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v",
		"increase log verbosity for each occurrence")
	rootCmd.PersistentFlags().StringVar(&fixupsFile, "fixups", "",
		"s-expression file with additional ignore rules and hints")
	rootCmd.PersistentFlags().BoolVar(&noDefaultFixups, "no-default-fixups", false,
		"do not apply the built-in ignore rules and hints")
}

// baseConfig returns a config carrying the global flags.
func baseConfig() *regdiff.Config {
	cfg := regdiff.DefaultConfig()
	cfg.FixupsFile = fixupsFile
	cfg.NoDefaultFixups = noDefaultFixups
	return cfg
}

// printJSON outputs data as formatted JSON
func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
