// Package cli implements the cmsmigrator command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sitecraft/cmsmigrator/internal/config"
	"github.com/sitecraft/cmsmigrator/internal/paths"
	"github.com/sitecraft/cmsmigrator/internal/store"
)

// Exit codes: 1 for user errors (bad config, bad flags), 2 for system
// errors (remote or store failures during a run).
const (
	exitUserError = 1
	exitSysError  = 2
)

// systemError marks a failure of the run itself, as opposed to bad user
// input, so Execute can map it to the system exit code.
type systemError struct{ err error }

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	logFormat string
}

var flags rootFlags

// NewRootCmd creates the top-level "cmsmigrator" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cmsmigrator",
		Short: "Migrate a source content tree into a CMS as empty shells",
		Long: "cmsmigrator scans a source directory tree and recreates its folder and\n" +
			"page hierarchy in a CMS by copying template assets. Progress is tracked\n" +
			"in a local database so interrupted runs resume where they left off.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .cmsmigrator)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .cmsmigrator-db)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "console", "log format (console or json)")

	root.AddCommand(newInitCmd())
	root.AddCommand(newScanCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newDBCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	var sys *systemError
	if errors.As(err, &sys) {
		return exitSysError
	}
	return exitUserError
}

// loadConfig resolves the config directory and loads the configuration.
func loadConfig() (*config.Config, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config directory: %w", err)
	}
	return config.Load(configDir)
}

// openStore resolves the data directory and opens the migration state store.
// The caller must Close the returned store.
func openStore() (*store.Store, error) {
	dataDir, err := paths.ResolveDataDir(flags.dataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data directory: %w", err)
	}
	return store.Open(paths.DatabasePath(dataDir))
}
