package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitecraft/cmsmigrator/internal/config"
	"github.com/sitecraft/cmsmigrator/internal/paths"
	"github.com/sitecraft/cmsmigrator/internal/store"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and state database",
		Long:  "Create the configuration directory with a default config.yaml and initialize the state database.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config directory: %w", err)
	}
	if err := config.WriteDefault(configDir); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir)
	if err != nil {
		return fmt.Errorf("resolve data directory: %w", err)
	}
	st, err := store.Open(paths.DatabasePath(dataDir))
	if err != nil {
		return fmt.Errorf("initialize state database: %w", err)
	}
	if err := st.Close(); err != nil {
		return fmt.Errorf("finalize state database: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s and %s\n", configDir, dataDir)
	return nil
}
