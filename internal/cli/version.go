package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the tool version, overridable at build time via -ldflags.
var Version = "0.3.0"

const modulePath = "github.com/sitecraft/cmsmigrator"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cmsmigrator version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "cmsmigrator v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
