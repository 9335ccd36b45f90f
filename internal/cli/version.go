package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the release string, set at build time with
// -ldflags "-X github.com/mesh-intelligence/daybook/internal/cli.Version=...".
var Version = "v0.1.0-dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the daybook version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "daybook", Version)
		},
	}
}
