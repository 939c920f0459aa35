package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/avast/retry-go/v4"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/odskit/ksk-helper/config"
	"github.com/odskit/ksk-helper/log"
	"github.com/odskit/ksk-helper/metrics"
	"github.com/odskit/ksk-helper/model"
	"github.com/odskit/ksk-helper/report"
	"github.com/odskit/ksk-helper/rollover"
	"github.com/odskit/ksk-helper/util"
)

// NewCheckCommand creates new command instance
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <zone>",
		Args:  cobra.ExactArgs(1),
		Short: "Tells which step of the KSK rollover of a zone is due",
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	delegation, err := newDelegationResolver(cfg)
	if err != nil {
		return err
	}

	checker := rollover.NewChecker(newKeySource(cfg), delegation)

	ctx := commandContext(cmd)

	res, err := checkWithRetry(ctx, checker, args[0], cfg.Resolution)

	if cfg.Metrics.IsEnabled() {
		writeMetrics(ctx, res, err)
	}

	if err != nil {
		return err
	}

	r, err := report.Build(res, report.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), r)
}

// checkWithRetry repeats the whole check while resolution fails
func checkWithRetry(ctx context.Context, checker *rollover.Checker, zone string,
	cfg config.Resolution,
) (*rollover.Result, error) {
	var res *rollover.Result

	err := retry.Do(
		func() error {
			var err error

			res, err = checker.Check(ctx, zone)

			return err
		},
		retry.Context(ctx),
		retry.Attempts(cfg.Attempts),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(cfg.Cooldown.ToDuration()),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, model.ErrResolutionFailure)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.PrefixedLog("check").WithField("attempt", fmt.Sprintf("%d/%d", n+1, cfg.Attempts)).
				Warnf("resolution failed: %s", err)
		}),
	)

	return res, err
}

func render(w io.Writer, doc report.Document) error {
	renderer, err := report.NewRenderer(cfg.Report.Format, cfg.Report.Color && !color.NoColor)
	if err != nil {
		return err
	}

	return renderer.Render(w, doc)
}

func writeMetrics(ctx context.Context, res *rollover.Result, checkErr error) {
	recorder := metrics.NewRecorder(version, buildTime)
	recorder.Record(res, checkErr)

	util.LogOnError(ctx, "metrics export failed: ", recorder.WriteTextfile(cfg.Metrics.Textfile))
}
