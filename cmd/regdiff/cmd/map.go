package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/regdiff/pkg/header"
	"github.com/OpenTraceLab/regdiff/pkg/register"
)

var (
	mapSections []string
	mapSummary  bool
)

var mapCmd = &cobra.Command{
	Use:   "map <header>",
	Short: "Show the register map reconstructed from a header",
	Long: `Parse the register header and list, per section, every register with its
length and fields.

Examples:
  regdiff map rtl8xxxu_regs.h
  regdiff map --summary rtl8xxxu_regs.h
  regdiff map --section RF rtl8xxxu_regs.h`,
	Args: cobra.ExactArgs(1),
	RunE: runMap,
}

func init() {
	rootCmd.AddCommand(mapCmd)

	mapCmd.Flags().StringSliceVarP(&mapSections, "section", "s", nil,
		"only show these sections")
	mapCmd.Flags().BoolVar(&mapSummary, "summary", false,
		"only print the number of registers per section")
}

func runMap(cmd *cobra.Command, args []string) error {
	cfg := baseConfig()
	cfg.Sections = mapSections
	if err := cfg.Validate(); err != nil {
		return err
	}
	fx, err := cfg.Fixups()
	if err != nil {
		return err
	}

	parser, err := header.NewParser()
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	res, err := parser.ExtractFile(args[0], header.WithFixups(fx))
	if err != nil {
		return fmt.Errorf("failed to parse header: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, section := range register.All() {
		if !cfg.ShouldDiffSection(section.Name) {
			continue
		}
		m, err := header.BuildMap(res, section, fx)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, header.Summary(m))
		if mapSummary {
			continue
		}
		if err := m.Print(out); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	return nil
}
