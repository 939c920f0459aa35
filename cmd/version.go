package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates new command instance
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Args:  cobra.NoArgs,
		Short: "Print the version number of ksk-helper",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "ksk-helper")
			fmt.Fprintf(out, "Version: %s\n", version)
			fmt.Fprintf(out, "Build time: %s\n", buildTime)
		},
	}
}
