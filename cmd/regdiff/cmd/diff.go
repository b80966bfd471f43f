package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/regdiff/internal/logger"
	"github.com/OpenTraceLab/regdiff/pkg/dump"
	"github.com/OpenTraceLab/regdiff/pkg/header"
	"github.com/OpenTraceLab/regdiff/pkg/regdiff"
)

var (
	diffFormat   string
	diffSections []string
)

var diffCmd = &cobra.Command{
	Use:   "diff <header> <dump> <dump> [dump...]",
	Short: "Print changes between register dumps",
	Long: `Parse the register header, group the dumps by section and print, per
section, every register whose value differs between the dumps together with
the fields that changed.

Dump arguments may be files or directories; directories are searched for
.txt, .dump and .reg files.

Examples:
  regdiff diff rtl8xxxu_regs.h vendor.txt rtl8xxxu.txt
  regdiff diff --format json rtl8xxxu_regs.h dumps/
  regdiff diff -v --section MAC --section BB rtl8xxxu_regs.h a.txt b.txt`,
	Args: cobra.MinimumNArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().StringVarP(&diffFormat, "format", "f", string(regdiff.FormatTable),
		"output format (table, json)")
	diffCmd.Flags().StringSliceVarP(&diffSections, "section", "s", nil,
		"only compare these sections")
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg := baseConfig()
	cfg.Format = regdiff.Format(diffFormat)
	cfg.Sections = diffSections
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
	maps, err := header.BuildMaps(res, fx)
	if err != nil {
		return err
	}

	var paths []string
	for _, arg := range args[1:] {
		found, err := dump.Find(arg)
		if err != nil {
			return err
		}
		paths = append(paths, found...)
	}
	collections, err := dump.LoadFiles(paths...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printed := 0
	for _, c := range collections {
		section := c.Section().Name
		if !cfg.ShouldDiffSection(section) {
			logger.L.Info("skipping section", "section", section)
			continue
		}
		if c.Len() < 2 {
			logger.L.Warn("need at least two dumps to compare", "section", section, "dumps", c.Len())
		}

		d, err := regdiff.New(c, maps[section], regdiff.WithFixups(fx))
		if err != nil {
			return err
		}
		if printed > 0 && cfg.Format == regdiff.FormatTable {
			fmt.Fprintln(out)
		}
		if err := d.Render(out, cfg.Format); err != nil {
			return err
		}
		printed++
	}
	return nil
}
