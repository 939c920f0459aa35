package cmd

import (
	"github.com/spf13/cobra"

	"github.com/odskit/ksk-helper/report"
)

// NewKeysCommand creates new command instance
func NewKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <zone>",
		Args:  cobra.ExactArgs(1),
		Short: "Lists the KSKs the enforcer knows for a zone",
		RunE:  listKeys,
	}
}

func listKeys(cmd *cobra.Command, args []string) error {
	keys, err := newKeySource(cfg).ZoneKeys(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), report.NewKeys(keys))
}
