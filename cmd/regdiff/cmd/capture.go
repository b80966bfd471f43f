package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/regdiff/pkg/capture"
)

var captureJSON bool

var captureCmd = &cobra.Command{
	Use:   "capture-info <pcap-file> [pcap-file...]",
	Short: "Show the metadata encoded in capture file names",
	Long: `Decode driver, driver version, station MAC and direction from capture file
names of the form <driver>[-<version>]-[<station MAC>]-<rx|tx>.pcap.

Examples:
  regdiff capture-info rtl8xxxu-v2-00:11:22:33:44:55-tx.pcap
  regdiff capture-info --json captures/*.pcap`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCapture,
}

func init() {
	rootCmd.AddCommand(captureCmd)

	captureCmd.Flags().BoolVar(&captureJSON, "json", false, "output as JSON")
}

func runCapture(cmd *cobra.Command, args []string) error {
	var all []capture.Metadata
	for _, name := range args {
		md, err := capture.ParseMetadata(name)
		if err != nil {
			return err
		}
		all = append(all, md)
	}

	out := cmd.OutOrStdout()
	if captureJSON {
		return printJSON(out, all)
	}
	for i, md := range all {
		fmt.Fprintf(out, "%s: %s\n", args[i], md)
	}
	return nil
}
