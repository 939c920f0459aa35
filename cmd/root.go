package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/odskit/ksk-helper/config"
	"github.com/odskit/ksk-helper/enforcer"
	"github.com/odskit/ksk-helper/log"
	"github.com/odskit/ksk-helper/model"
	"github.com/odskit/ksk-helper/resolver"
	"github.com/odskit/ksk-helper/rollover"
)

const (
	defaultConfigPath = "/etc/ksk-helper/config.yml"
	configFileEnvVar  = "KSK_HELPER_CONFIG_FILE"
)

//nolint:gochecknoglobals
var (
	version   = "undefined"
	buildTime = "undefined"

	configPath      string
	logLevel        string
	output          string
	resolvers       []string
	trace           bool
	metricsTextfile string

	cfg *config.Config
)

//nolint:gochecknoglobals
var (
	newKeySource = func(cfg *config.Config) rollover.KeySource {
		return enforcer.NewKeyRepository(enforcer.NewODSEnforcer(cfg.Enforcer))
	}

	newDelegationResolver = func(cfg *config.Config) (rollover.DelegationResolver, error) {
		return resolver.NewWalker(cfg.Resolution)
	}
)

// NewRootCommand creates the root command with all sub commands
func NewRootCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "ksk-helper [zone]",
		Args:  cobra.MaximumNArgs(1),
		Short: "ksk-helper guides through KSK rollovers of OpenDNSSEC zones",
		Long: `Compares the KSKs the OpenDNSSEC enforcer knows for a zone with the
DS records published at the parent and tells which step of the
rollover is due next.

Called with a zone it runs the check command.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}

			return runCheck(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	c.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides the config file")
	c.PersistentFlags().StringVarP(&output, "output", "o", "",
		fmt.Sprintf("report format (%s)", strings.Join(config.ReportFormatNames(), ", ")))
	c.PersistentFlags().StringSliceVar(&resolvers, "resolver", nil, "resolver to start the delegation walk at")
	c.PersistentFlags().BoolVar(&trace, "trace", false, "show every step of the delegation walk")
	c.PersistentFlags().StringVar(&metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file")

	c.AddCommand(
		NewCheckCommand(),
		NewKeysCommand(),
		NewDSCommand(),
		NewParentCommand(),
		NewValidateCommand(),
		NewVersionCommand(),
	)

	return c
}

func initConfig() error {
	if configPath == defaultConfigPath {
		if val, present := os.LookupEnv(configFileEnvVar); present {
			configPath = val
		}
	}

	c, err := config.LoadConfig(configPath, configPath != defaultConfigPath)
	if err != nil {
		return model.NewValidationError("%s", err)
	}

	if err := applyFlags(c); err != nil {
		return model.NewValidationError("%s", err)
	}

	log.ConfigureLogger(c.Log)

	c.LogConfig(log.PrefixedLog("config"))

	cfg = c

	return nil
}

// applyFlags lets command line flags override the configuration
func applyFlags(c *config.Config) error {
	if logLevel != "" {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}

		c.Log.Level = level
	}

	if output != "" {
		c.Report.Format = config.ReportFormat(output)
	}

	if len(resolvers) > 0 {
		c.Resolution.Resolvers = make([]config.Upstream, 0, len(resolvers))

		for _, r := range resolvers {
			u, err := config.ParseUpstream(r)
			if err != nil {
				return err
			}

			c.Resolution.Resolvers = append(c.Resolution.Resolvers, u)
		}
	}

	if trace {
		c.Report.Trace = true
	}

	if metricsTextfile != "" {
		c.Metrics.Textfile = metricsTextfile
	}

	return c.Validate()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

// Execute runs the root command and exits with the status of the error class
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, NewRootCommand(), os.Args[1:], os.Stderr)

	stop()
	os.Exit(code)
}

func run(ctx context.Context, c *cobra.Command, args []string, stderr io.Writer) int {
	c.SetArgs(args)

	err := c.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}

	return model.ExitCode(err)
}
