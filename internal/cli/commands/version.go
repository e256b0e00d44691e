package commands

import (
	"fmt"

	"github.com/leapstack-labs/oxoff/pkg/catalog"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the oxoff version and the oxlint rule catalog it ships with.`,
		Run: func(cmd *cobra.Command, _ []string) {
			cat := catalog.Default()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "oxoff v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "oxlint rule catalog %s (%d rules)\n", cat.Version(), cat.Len())
		},
	}
}
