package rollover

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/odskit/ksk-helper/log"
	"github.com/odskit/ksk-helper/model"
	"github.com/odskit/ksk-helper/resolver"
	"github.com/odskit/ksk-helper/util"
)

const checkerLoggerPrefix = "rollover"

// KeySource returns the KSKs the enforcer knows for a zone
type KeySource interface {
	ZoneKeys(ctx context.Context, zone string) (*model.ZoneKeySet, error)
}

// DelegationResolver finds the parent authority of a zone and asks it for the zone's DS RRset
type DelegationResolver interface {
	FindParentAuthority(ctx context.Context, zone string) (*resolver.Authority, error)
	QueryDs(ctx context.Context, zone string, authority *resolver.Authority) (*model.DsObservation, error)
}

// Result is everything a check learned about a zone. On error it holds what was collected so far.
type Result struct {
	Zone       string
	Keys       *model.ZoneKeySet
	Authority  *resolver.Authority
	DS         *model.DsObservation
	Evaluation *Evaluation
}

// Checker runs the key repository, the resolver and the decision table for one zone
type Checker struct {
	Keys       KeySource
	Delegation DelegationResolver
}

// NewChecker creates a checker
func NewChecker(keys KeySource, delegation DelegationResolver) *Checker {
	return &Checker{Keys: keys, Delegation: delegation}
}

// Check evaluates zone. The enforcer is asked first, so an unknown zone fails before any DNS traffic.
func (c *Checker) Check(ctx context.Context, zone string) (*Result, error) {
	z, err := util.ValidateZone(zone)
	if err != nil {
		return nil, model.NewValidationError("%s", err)
	}

	ctx, logger := log.CtxWithFields(ctx, logrus.Fields{"prefix": checkerLoggerPrefix, "zone": z})

	res := &Result{Zone: z}

	res.Keys, err = c.Keys.ZoneKeys(ctx, z)
	if err != nil {
		return res, fmt.Errorf("can't load keys of %s: %w", z, err)
	}

	logger.Debugf("enforcer knows %d KSK(s)", res.Keys.Len())

	res.Authority, err = c.Delegation.FindParentAuthority(ctx, z)
	if err != nil {
		return res, fmt.Errorf("can't find parent authority of %s: %w", z, err)
	}

	res.DS, err = c.Delegation.QueryDs(ctx, z, res.Authority)
	if err != nil {
		return res, fmt.Errorf("can't query DS of %s: %w", z, err)
	}

	if res.DS.IsNoAnswer() {
		logger.Infof("no DS at %s (%s)", res.Authority, res.DS.Reason)
	}

	ev := Evaluate(res.Keys, res.DS)
	res.Evaluation = &ev

	logger.WithFields(logrus.Fields{
		"phase": ev.Phase,
		"stage": ev.Stage,
	}).Infof("%d instruction(s)", len(ev.Instructions))

	if len(ev.UnknownDS) > 0 {
		logger.Warnf("parent publishes DS for unknown key tag(s) %v", ev.UnknownDS)
	}

	return res, nil
}
