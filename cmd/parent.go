package cmd

import (
	"github.com/spf13/cobra"

	"github.com/odskit/ksk-helper/model"
	"github.com/odskit/ksk-helper/report"
	"github.com/odskit/ksk-helper/util"
)

// NewParentCommand creates new command instance
func NewParentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parent <zone>",
		Args:  cobra.ExactArgs(1),
		Short: "Finds the authoritative server of the zone's parent",
		RunE:  findParent,
	}
}

// NewDSCommand creates new command instance
func NewDSCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ds <zone>",
		Args:  cobra.ExactArgs(1),
		Short: "Shows the DS records the parent publishes for a zone",
		RunE:  queryDS,
	}
}

func findParent(cmd *cobra.Command, args []string) error {
	return delegation(cmd, args[0], false)
}

func queryDS(cmd *cobra.Command, args []string) error {
	return delegation(cmd, args[0], true)
}

func delegation(cmd *cobra.Command, zone string, withDS bool) error {
	resolver, err := newDelegationResolver(cfg)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	zone = util.NormalizeZone(zone)

	authority, err := resolver.FindParentAuthority(ctx, zone)
	if err != nil {
		if authority != nil && cfg.Report.Trace {
			_ = render(cmd.OutOrStdout(), report.NewDelegation(zone, authority, nil, true))
		}

		return err
	}

	var ds *model.DsObservation

	if withDS {
		if ds, err = resolver.QueryDs(ctx, zone, authority); err != nil {
			return err
		}
	}

	return render(cmd.OutOrStdout(), report.NewDelegation(zone, authority, ds, cfg.Report.Trace))
}
