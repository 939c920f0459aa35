package enforcer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/odskit/ksk-helper/config"
	"github.com/odskit/ksk-helper/log"
	"github.com/odskit/ksk-helper/model"
)

const enforcerLogPrefix = "enforcer"

// Enforcer is the source of key state of a zone
type Enforcer interface {
	// ListKeys returns the KSK listing of zone
	ListKeys(ctx context.Context, zone string) ([]KeyRow, error)
	// ExportDS returns the DS records of the keys of zone in state
	ExportDS(ctx context.Context, zone string, state model.KeyState) ([]DSRow, error)
}

// ODSEnforcer queries the OpenDNSSEC enforcer through its command line tool
type ODSEnforcer struct {
	command string
	timeout time.Duration
	runner  CommandRunner
}

// ODSEnforcerOption configures an ODSEnforcer
type ODSEnforcerOption func(*ODSEnforcer)

// WithRunner replaces the command runner
func WithRunner(r CommandRunner) ODSEnforcerOption {
	return func(e *ODSEnforcer) {
		e.runner = r
	}
}

// NewODSEnforcer creates the enforcer client
func NewODSEnforcer(cfg config.Enforcer, opts ...ODSEnforcerOption) *ODSEnforcer {
	e := &ODSEnforcer{
		command: cfg.Command,
		timeout: cfg.Timeout.ToDuration(),
		runner:  ExecRunner{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// ListKeys implements Enforcer
func (e *ODSEnforcer) ListKeys(ctx context.Context, zone string) ([]KeyRow, error) {
	out, err := e.run(ctx, "key", "list", "--verbose", "--keytype", "ksk", "--zone", zone)
	if err != nil {
		return nil, err
	}

	return parseKeyList(string(out)), nil
}

// ExportDS implements Enforcer
func (e *ODSEnforcer) ExportDS(ctx context.Context, zone string, state model.KeyState) ([]DSRow, error) {
	out, err := e.run(ctx, "key", "export", "--zone", zone, "--keystate", state.String(), "--keytype", "ksk", "--ds")
	if err != nil {
		return nil, err
	}

	return parseDSExport(string(out)), nil
}

// run executes the enforcer. A non-zero exit status is logged and the output is still used,
// the enforcer reports unknown zones that way.
func (e *ODSEnforcer) run(ctx context.Context, args ...string) ([]byte, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	logger := log.FromCtxWithPrefix(ctx, enforcerLogPrefix)
	logger.WithField("args", args).Debugf("running %s", e.command)

	out, err := e.runner.Run(ctx, e.command, args...)
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			logger.WithFields(logrus.Fields{
				"exit_code": cmdErr.ExitCode,
				"stderr":    cmdErr.Stderr,
			}).Warnf("%s exited with an error", e.command)

			return out, nil
		}

		return nil, fmt.Errorf("enforcer: %w", err)
	}

	return out, nil
}
