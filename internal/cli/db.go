package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	db := &cobra.Command{
		Use:   "db",
		Short: "Inspect and manage the migration state database",
	}
	db.AddCommand(newDBStatsCmd())
	db.AddCommand(newDBListCmd())
	db.AddCommand(newDBRunsCmd())
	db.AddCommand(newDBExportCmd())
	db.AddCommand(newDBClearCmd())
	return db
}

func newDBStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			stats, err := st.Stats()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "folders: %d\npages:   %d\nruns:    %d\n",
				stats.Folders, stats.Pages, stats.Runs)
			return nil
		},
	}
}

func newDBListCmd() *cobra.Command {
	var (
		prefix string
		limit  int
		pages  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List folder (or page) records by path prefix",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			out := cmd.OutOrStdout()
			if pages {
				recs, err := st.ListPages(prefix, limit)
				if err != nil {
					return err
				}
				for _, r := range recs {
					fmt.Fprintf(out, "%s\t%s\n", r.SourcePath, r.RemoteID)
				}
				return nil
			}
			recs, err := st.ListFolders(prefix, limit)
			if err != nil {
				return err
			}
			for _, r := range recs {
				fmt.Fprintf(out, "%s\t%s\n", r.SourcePath, r.RemoteID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "only records whose source path starts with this prefix")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum records to print (0 for all)")
	cmd.Flags().BoolVar(&pages, "pages", false, "list page records instead of folders")
	return cmd
}

func newDBRunsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded migration runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range runs {
				fmt.Fprintf(out, "%s  %s  created=%d skipped=%d failed=%d  %s\n",
					r.StartedAt.Format("2006-01-02 15:04:05"), r.Mode,
					r.Created, r.Skipped, r.Failed, r.RunID)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to print (0 for all)")
	return cmd
}

func newDBExportCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export folder and page records as JSONL",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.ExportJSONL(dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory to write folders.jsonl and pages.jsonl into")
	return cmd
}

func newDBClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all migration state",
		Long: "Delete every folder, page, and run record. The remote system is not\n" +
			"touched; a subsequent migrate run will attempt to recreate everything.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return errors.New("refusing to clear without --force")
			}
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migration state cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm the destructive clear")
	return cmd
}
