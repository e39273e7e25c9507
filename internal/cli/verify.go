package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitecraft/cmsmigrator/internal/config"
	"github.com/sitecraft/cmsmigrator/internal/migrate"
	"github.com/sitecraft/cmsmigrator/internal/scanner"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Reconcile the source tree against the migration state",
		Long: "Scan the source tree and compare it with the state database. Reports\n" +
			"entries not yet migrated and state entries whose source no longer exists.",
		RunE: runVerify,
	}
}

func runVerify(cmd *cobra.Command, args []string) error {
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

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}
	defer st.Close()

	sc := scanner.New(cfg.SourceRoot, cfg.ExclusionPrefix, cfg.SourceSuffix, logger)
	report, err := migrate.Verify(sc, st)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if report.Clean() {
		fmt.Fprintln(out, "State matches the source tree.")
		return nil
	}

	printPaths := func(header string, paths []string) {
		if len(paths) == 0 {
			return
		}
		fmt.Fprintf(out, "%s (%d):\n", header, len(paths))
		for _, p := range paths {
			fmt.Fprintf(out, "  %s\n", p)
		}
	}
	printPaths("Unmigrated folders", report.MissingFolders)
	printPaths("Unmigrated pages", report.MissingPages)
	printPaths("Stale folder records", report.StaleFolders)
	printPaths("Stale page records", report.StalePages)
	return nil
}
