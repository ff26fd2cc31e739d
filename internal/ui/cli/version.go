package cli

import (
	"fixturecheck/internal/shared/version"
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of fixturecheck",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(root.stdout, "fixturecheck %s\n", version.String())
		},
	}
}
