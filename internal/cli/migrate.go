package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sitecraft/cmsmigrator/internal/cms"
	"github.com/sitecraft/cmsmigrator/internal/migrate"
	"github.com/sitecraft/cmsmigrator/pkg/types"
)

// migrateFlags holds the migrate subcommand's flag values.
type migrateFlags struct {
	dryRun      bool
	foldersOnly bool
	pagesOnly   bool
	workers     int
}

func newMigrateCmd() *cobra.Command {
	var mf migrateFlags

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the scanned hierarchy in the CMS",
		Long: "Scan the source tree, then create missing folders and pages in the CMS\n" +
			"by copying the configured template assets. Items already recorded in the\n" +
			"state database are skipped, so re-running resumes after a failure.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, mf)
		},
	}

	cmd.Flags().BoolVar(&mf.dryRun, "dry-run", false, "preview without remote calls or state writes")
	cmd.Flags().BoolVar(&mf.foldersOnly, "folders-only", false, "run only the folder phase")
	cmd.Flags().BoolVar(&mf.pagesOnly, "pages-only", false, "run only the page phase")
	cmd.Flags().IntVar(&mf.workers, "workers", 0, "concurrent creation calls (default from config)")
	cmd.MarkFlagsMutuallyExclusive("folders-only", "pages-only")

	return cmd
}

func runMigrate(cmd *cobra.Command, mf migrateFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if mf.workers > 0 {
		cfg.Workers = mf.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
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

	client := cms.NewClient(cfg.CMS.BaseURL, cfg.CMS.APIKey, nil)
	runner := migrate.NewRunner(st,
		client.Copier(cms.AssetTypeFolder),
		client.Copier(cms.AssetTypePage),
		cfg, logger)

	// Interrupt stops dispatching further items; in-flight creations finish
	// and are recorded, so the next run resumes cleanly.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runner.Run(ctx, migrate.Options{
		DryRun:      mf.dryRun,
		FoldersOnly: mf.foldersOnly,
		PagesOnly:   mf.pagesOnly,
	})
	if err != nil {
		// Sequencing mistakes are user errors; anything else that aborts a
		// run (scan, store, phase) maps to the system exit code.
		if errors.Is(err, types.ErrFoldersNotMigrated) {
			return err
		}
		return &systemError{err}
	}

	printSummary(cmd, summary)
	return nil
}

func printSummary(cmd *cobra.Command, s *types.Summary) {
	out := cmd.OutOrStdout()
	if s.DryRun {
		fmt.Fprintln(out, "Dry run; nothing was created.")
	}
	if s.Folders != nil {
		fmt.Fprintf(out, "Folders: %d created, %d skipped, %d failed (of %d)\n",
			s.Folders.Created, s.Folders.Skipped, s.Folders.Failed(), s.Folders.Total)
	}
	if s.Pages != nil {
		fmt.Fprintf(out, "Pages:   %d created, %d skipped, %d failed (of %d)\n",
			s.Pages.Created, s.Pages.Skipped, s.Pages.Failed(), s.Pages.Total)
	}
	if failures := s.Failures(); len(failures) > 0 {
		fmt.Fprintln(out, "\nFailures:")
		for _, f := range failures {
			fmt.Fprintf(out, "  %s: %s (%s)\n", f.Path, f.Reason, f.Detail)
		}
	}
}
