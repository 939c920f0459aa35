package resolver

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/miekg/dns"
	"github.com/mroth/weightedrand"
	"github.com/sirupsen/logrus"

	"github.com/odskit/ksk-helper/log"
)

const resolverLogPrefix = "resolver"

// Exchanger sends one DNS message to one server
type Exchanger interface {
	ExchangeContext(ctx context.Context, msg *dns.Msg, address string) (response *dns.Msg, rtt time.Duration, err error)
}

// Selector picks an index in [0, n)
type Selector interface {
	Pick(n int) int
}

// SelectorFunc is an adapter to allow the use of ordinary functions as Selector
type SelectorFunc func(n int) int

// Pick calls f(n)
func (f SelectorFunc) Pick(n int) int {
	return f(n)
}

type randomSelector struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomSelector returns a Selector where every index has the same weight
func NewRandomSelector() Selector {
	return &randomSelector{
		// nolint:gosec
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *randomSelector) Pick(n int) int {
	if n <= 1 {
		return 0
	}

	choices := make([]weightedrand.Choice, n)
	for i := range choices {
		choices[i] = weightedrand.Choice{Item: i, Weight: 1}
	}

	c, err := weightedrand.NewChooser(choices...)
	if err != nil {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return c.PickSource(s.rnd).(int)
}

// Hop is one NS query of the delegation walk
type Hop struct {
	Server      string        `json:"server" yaml:"server"`
	QueryName   string        `json:"queryName" yaml:"queryName"`
	Rcode       string        `json:"rcode" yaml:"rcode"`
	Nameservers []string      `json:"nameservers,omitempty" yaml:"nameservers,omitempty"`
	Selected    string        `json:"selected" yaml:"selected"`
	RTT         time.Duration `json:"-" yaml:"-"`
}

// Authority is the server authoritative for the parent of a zone
type Authority struct {
	// Zone the parent zone the walk ended in
	Zone    string `json:"zone" yaml:"zone"`
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
	Hops    []Hop  `json:"hops,omitempty" yaml:"hops,omitempty"`
}

func (a *Authority) String() string {
	return server{Name: a.Name, Address: a.Address}.String()
}

type server struct {
	Name    string
	Address string
}

func (s server) String() string {
	if s.Name == "" {
		return s.Address
	}

	// resolvers are named by their address already
	if s.Name == s.Address || net.ParseIP(strings.Trim(s.Name, "[]")) != nil {
		return s.Name
	}

	return fmt.Sprintf("%s (%s)", s.Name, s.Address)
}

func logger(ctx context.Context) *logrus.Entry {
	return log.FromCtxWithPrefix(ctx, resolverLogPrefix)
}
