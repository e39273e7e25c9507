package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitecraft/cmsmigrator/internal/config"
	"github.com/sitecraft/cmsmigrator/internal/scanner"
)

// scanPreviewLimit bounds how many entries the scan command prints.
const scanPreviewLimit = 20

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Scan the source tree and preview the migration plan",
		RunE:  runScan,
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.SourceRoot == "" {
		return config.ErrSourceRootEmpty
	}
	logger, err := buildLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	sc := scanner.New(cfg.SourceRoot, cfg.ExclusionPrefix, cfg.SourceSuffix, logger)
	plan, err := sc.Scan()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sum := plan.Summary()
	fmt.Fprintf(out, "Plan: %d folders, %d pages\n", sum.Folders, sum.Pages)

	fmt.Fprintln(out, "\nFolders:")
	for i, f := range plan.Folders {
		if i == scanPreviewLimit {
			fmt.Fprintf(out, "  ... and %d more\n", len(plan.Folders)-scanPreviewLimit)
			break
		}
		fmt.Fprintf(out, "  %s\n", f.Path)
	}

	fmt.Fprintln(out, "\nPages:")
	for i, p := range plan.Pages {
		if i == scanPreviewLimit {
			fmt.Fprintf(out, "  ... and %d more\n", len(plan.Pages)-scanPreviewLimit)
			break
		}
		fmt.Fprintf(out, "  %s -> %s\n", p.SourcePath, p.Name)
	}
	return nil
}
