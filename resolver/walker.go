package resolver

import (
	"context"
	"errors"
	"net"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/publicsuffix"

	"github.com/odskit/ksk-helper/config"
	"github.com/odskit/ksk-helper/model"
	"github.com/odskit/ksk-helper/util"
)

// WalkPlan describes which names the delegation walk queries for a zone
type WalkPlan struct {
	Zone string
	// Suffix is the public suffix the zone is registered under
	Suffix string
	// Target is the parent zone that holds the delegation of Zone
	Target string
	// StartDepth is the label count of the first queried name
	StartDepth int
}

// NewWalkPlan computes the walk for zone. A zone that is a public suffix has no parent to ask.
func NewWalkPlan(zone string) (*WalkPlan, error) {
	z, err := util.ValidateZone(zone)
	if err != nil {
		return nil, model.NewValidationError("%s", err)
	}

	suffix := icannSuffix(z)
	if suffix == z {
		return nil, model.NewValidationError("'%s' is a public suffix, there is no parent to ask for DS records", z)
	}

	target := suffix

	if rest := strings.TrimSuffix(z, "."+suffix); strings.Contains(rest, ".") {
		target = z[strings.Index(z, ".")+1:]
	}

	return &WalkPlan{
		Zone:       z,
		Suffix:     suffix,
		Target:     target,
		StartDepth: dns.CountLabel(suffix),
	}, nil
}

// icannSuffix returns the public suffix of zone from the ICANN section of the list.
// Private entries like github.io are ordinary delegations below their TLD.
func icannSuffix(zone string) string {
	suffix, icann := publicsuffix.PublicSuffix(zone)

	for !icann && strings.Contains(suffix, ".") {
		suffix, icann = publicsuffix.PublicSuffix(suffix[strings.Index(suffix, ".")+1:])
	}

	return suffix
}

// Names returns the queried names, shortest first, ending with Target
func (p *WalkPlan) Names() []string {
	labels := dns.SplitDomainName(p.Target)
	names := make([]string, 0, len(labels)-p.StartDepth+1)

	for depth := p.StartDepth; depth <= len(labels); depth++ {
		names = append(names, strings.Join(labels[len(labels)-depth:], "."))
	}

	return names
}

// Walker locates the parent authority of a zone and asks it for DS records
type Walker struct {
	resolvers     []config.Upstream
	timeout       time.Duration
	authorityPort uint16
	exchanger     Exchanger
	selector      Selector
}

// WalkerOption configures a Walker
type WalkerOption func(*Walker)

// WithExchanger replaces the DNS client
func WithExchanger(e Exchanger) WalkerOption {
	return func(w *Walker) {
		w.exchanger = e
	}
}

// WithSelector replaces the random choice of resolvers, name servers and addresses
func WithSelector(s Selector) WalkerOption {
	return func(w *Walker) {
		w.selector = s
	}
}

// NewWalker creates a walker. Without configured resolvers the name servers of resolv.conf are used.
func NewWalker(cfg config.Resolution, opts ...WalkerOption) (*Walker, error) {
	resolvers, err := cfg.StartResolvers()
	if err != nil {
		return nil, model.NewValidationError("%s", err)
	}

	w := &Walker{
		resolvers:     resolvers,
		timeout:       cfg.Timeout.ToDuration(),
		authorityPort: cfg.AuthorityPort,
		selector:      NewRandomSelector(),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.exchanger == nil {
		w.exchanger = newDNSClient(w.timeout)
	}

	return w, nil
}

// FindParentAuthority walks the delegation chain of zone's parent, one label per query,
// and returns the name server selected in the last step. On error the returned authority
// still carries the hops done so far.
func (w *Walker) FindParentAuthority(ctx context.Context, zone string) (*Authority, error) {
	plan, err := NewWalkPlan(zone)
	if err != nil {
		return nil, err
	}

	resolver := w.resolvers[w.selector.Pick(len(w.resolvers))]
	initial := server{Name: resolver.String(), Address: resolver.Address()}

	logger(ctx).WithFields(logrus.Fields{
		"zone":        plan.Zone,
		"target":      plan.Target,
		"start_depth": plan.StartDepth,
		"resolver":    initial.String(),
	}).Debug("starting delegation walk")

	authority := &Authority{Zone: plan.Target}
	current := initial

	for _, name := range plan.Names() {
		hop, next, err := w.step(ctx, current, initial, name)
		authority.Hops = append(authority.Hops, hop)

		if err != nil {
			return authority, err
		}

		current = next
	}

	authority.Name = current.Name
	authority.Address = current.Address

	logger(ctx).WithField("zone", plan.Zone).Debugf("parent authority is %s", authority)

	return authority, nil
}

func (w *Walker) step(ctx context.Context, current, initial server, name string) (Hop, server, error) {
	hop := Hop{Server: current.String(), QueryName: name}

	msg := util.NewMsgWithQuestion(name, dns.TypeNS)
	// stub resolvers like systemd-resolved refuse queries without RD
	msg.RecursionDesired = current == initial

	resp, rtt, err := w.exchange(ctx, msg, current.Address)
	hop.RTT = rtt

	if err != nil {
		return hop, current, model.NewResolutionError(err, "NS query for %s to %s failed", name, current)
	}

	hop.Rcode = dns.RcodeToString[resp.Rcode]

	switch resp.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return hop, current, model.NewDelegationNotFoundError(name, current.String())
	default:
		return hop, current, model.NewResolutionError(nil, "NS query for %s to %s returned %s", name, current, hop.Rcode)
	}

	nameservers, hasSOA := delegation(resp)
	hop.Nameservers = nameservers

	if len(nameservers) == 0 {
		if !hasSOA {
			return hop, current, model.NewResolutionError(nil, "%s returned neither NS nor SOA for %s", current, name)
		}

		// same server is authoritative for name
		hop.Selected = current.String()

		return hop, current, nil
	}

	host := nameservers[w.selector.Pick(len(nameservers))]

	addresses, err := w.addresses(ctx, resp, host, initial)
	if err != nil {
		return hop, current, err
	}

	next := server{
		Name:    host,
		Address: net.JoinHostPort(addresses[w.selector.Pick(len(addresses))], strconv.Itoa(int(w.authorityPort))),
	}
	hop.Selected = next.String()

	return hop, next, nil
}

// addresses returns the glue of host, or asks the initial resolver
func (w *Walker) addresses(ctx context.Context, resp *dns.Msg, host string, initial server) ([]string, error) {
	if glue := aRecordsOf(resp.Extra, host); len(glue) > 0 {
		return glue, nil
	}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(host), dns.TypeA)

	answer, _, err := w.exchange(ctx, msg, initial.Address)
	if err != nil {
		return nil, model.NewResolutionError(err, "can't resolve address of %s", host)
	}

	if answer.Rcode != dns.RcodeSuccess {
		return nil, model.NewResolutionError(nil, "can't resolve address of %s: %s", host, dns.RcodeToString[answer.Rcode])
	}

	addresses := aRecordsOf(answer.Answer, host)
	if len(addresses) == 0 {
		return nil, model.NewResolutionError(nil, "%s has no A record", host)
	}

	return addresses, nil
}

// QueryDs asks authority directly for the DS RRset of zone. Missing answers are not an error.
func (w *Walker) QueryDs(ctx context.Context, zone string, authority *Authority) (*model.DsObservation, error) {
	z, err := util.ValidateZone(zone)
	if err != nil {
		return nil, model.NewValidationError("%s", err)
	}

	if authority == nil || authority.Address == "" {
		return nil, model.NewValidationError("no parent authority to query for %s", z)
	}

	used := authority.String()

	resp, _, err := w.exchange(ctx, util.NewMsgWithQuestion(z, dns.TypeDS), authority.Address)
	if err != nil {
		if isTimeout(err) {
			logger(ctx).WithField("zone", z).Warnf("DS query to %s timed out", used)

			return model.NewNoAnswer(z, used, model.NoAnswerTimeout), nil
		}

		return nil, model.NewResolutionError(err, "DS query for %s to %s failed", z, used)
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return model.NewNoAnswer(z, used, model.NoAnswerNXDomain), nil
	default:
		return nil, model.NewResolutionError(nil, "DS query for %s to %s returned %s", z, used, dns.RcodeToString[resp.Rcode])
	}

	records := dsRecordsOf(resp.Answer, z)
	if len(records) == 0 {
		return model.NewNoAnswer(z, used, model.NoAnswerEmpty), nil
	}

	return model.NewDsObservation(z, used, records...), nil
}

func (w *Walker) exchange(ctx context.Context, msg *dns.Msg, address string) (*dns.Msg, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	resp, rtt, err := w.exchanger.ExchangeContext(ctx, msg, address)
	if err != nil {
		logger(ctx).WithFields(logrus.Fields{
			"server":   address,
			"question": util.QuestionToString(msg.Question),
		}).Debugf("query failed: %s", err)

		return nil, rtt, err
	}

	logger(ctx).WithFields(logrus.Fields{
		"server":           address,
		"question":         util.QuestionToString(msg.Question),
		"answer":           util.AnswerToString(resp.Answer),
		"authority":        util.AnswerToString(resp.Ns),
		"return_code":      dns.RcodeToString[resp.Rcode],
		"response_time_ms": rtt.Milliseconds(),
	}).Debug("received response")

	return resp, rtt, nil
}

// delegation returns the sorted NS host names of resp, taken from the authority
// section if it has any, and whether an SOA was seen instead
func delegation(resp *dns.Msg) (nameservers []string, hasSOA bool) {
	section := resp.Answer
	if len(resp.Ns) > 0 {
		section = resp.Ns
	}

	seen := make(map[string]bool)

	for _, ns := range recordsOf[*dns.NS](section) {
		host := util.NormalizeZone(ns.Ns)
		if host != "" && !seen[host] {
			seen[host] = true

			nameservers = append(nameservers, host)
		}
	}

	sort.Strings(nameservers)

	return nameservers, len(recordsOf[*dns.SOA](section)) > 0
}

func recordsOf[T dns.RR](rrs []dns.RR) []T {
	res := make([]T, 0, len(rrs))

	for _, rr := range rrs {
		if t, ok := rr.(T); ok {
			res = append(res, t)
		}
	}

	return res
}

func aRecordsOf(rrs []dns.RR, host string) []string {
	var res []string

	for _, a := range recordsOf[*dns.A](rrs) {
		if util.NormalizeZone(a.Hdr.Name) == host && a.A != nil {
			res = append(res, a.A.String())
		}
	}

	sort.Strings(res)

	return res
}

func dsRecordsOf(rrs []dns.RR, zone string) []model.DSRecord {
	var res []model.DSRecord

	for _, ds := range recordsOf[*dns.DS](rrs) {
		if util.NormalizeZone(ds.Hdr.Name) != zone {
			continue
		}

		res = append(res, model.DSRecord{
			KeyTag:     ds.KeyTag,
			Algorithm:  model.Algorithm(ds.Algorithm),
			DigestType: model.DigestType(ds.DigestType),
			Digest:     strings.ToUpper(ds.Digest),
		})
	}

	return res
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}
