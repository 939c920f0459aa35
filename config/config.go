package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/hashicorp/go-multierror"
	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/odskit/ksk-helper/log"
)

// ReportFormat is the output format of the operator report
type ReportFormat string

const (
	ReportFormatText ReportFormat = "text"
	ReportFormatJSON ReportFormat = "json"
	ReportFormatYAML ReportFormat = "yaml"
)

// ReportFormatNames returns the supported report formats
func ReportFormatNames() []string {
	return []string{string(ReportFormatText), string(ReportFormatJSON), string(ReportFormatYAML)}
}

// IsValid returns true for a supported format
func (f ReportFormat) IsValid() bool {
	switch f {
	case ReportFormatText, ReportFormatJSON, ReportFormatYAML:
		return true
	}

	return false
}

// Config main configuration
type Config struct {
	Resolution Resolution `yaml:"resolution"`
	Enforcer   Enforcer   `yaml:"enforcer"`
	Report     Report     `yaml:"report"`
	Metrics    Metrics    `yaml:"metrics"`
	Log        log.Config `yaml:"log"`
}

// Resolution configures the delegation walk and the DS query
type Resolution struct {
	// Resolvers the walk starts from; empty means the servers of ResolvConf
	Resolvers     []Upstream `yaml:"resolvers"`
	ResolvConf    string     `yaml:"resolvConf" default:"/etc/resolv.conf"`
	Timeout       Duration   `yaml:"timeout" default:"5s"`
	AuthorityPort uint16     `yaml:"authorityPort" default:"53"`
	// Attempts of a whole resolution run, 1 disables retrying
	Attempts uint     `yaml:"attempts" default:"1"`
	Cooldown Duration `yaml:"cooldown" default:"1s"`
}

// Enforcer configures the OpenDNSSEC enforcer command
type Enforcer struct {
	Command string   `yaml:"command" default:"ods-enforcer"`
	Timeout Duration `yaml:"timeout" default:"30s"`
}

// Report configures the operator report
type Report struct {
	Format      ReportFormat `yaml:"format" default:"text"`
	Color       bool         `yaml:"color" default:"true"`
	Trace       bool         `yaml:"trace" default:"false"`
	AnalyzerURL string       `yaml:"analyzerURL" default:"https://dnsviz.net/d/%s/dnssec/"`
}

// Metrics configures the Prometheus textfile export
type Metrics struct {
	Textfile string `yaml:"textfile"`
}

// IsEnabled returns true if a textfile path is configured
func (c *Metrics) IsEnabled() bool {
	return c.Textfile != ""
}

// NewDefaultConfig returns a configuration with every default applied
func NewDefaultConfig() (*Config, error) {
	var cfg Config

	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("can't apply default values: %w", err)
	}

	return &cfg, nil
}

// LoadConfig reads the configuration at path. A missing file is only an error if mandatory.
func LoadConfig(path string, mandatory bool) (*Config, error) {
	cfg, err := NewDefaultConfig()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mandatory {
			return cfg, nil
		}

		return nil, fmt.Errorf("can't read config file '%s': %w", path, err)
	}

	if err := unmarshalConfig(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func unmarshalConfig(data []byte, cfg *Config) error {
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return fmt.Errorf("wrong file structure: %w", err)
	}

	return cfg.Validate()
}

// Validate reports every configuration problem at once
func (c *Config) Validate() error {
	var mErr *multierror.Error

	if !c.Resolution.Timeout.IsAboveZero() {
		mErr = multierror.Append(mErr, errors.New("resolution.timeout must be above zero"))
	}

	if c.Resolution.Attempts == 0 {
		mErr = multierror.Append(mErr, errors.New("resolution.attempts must be at least 1"))
	}

	if c.Resolution.AuthorityPort == 0 {
		mErr = multierror.Append(mErr, errors.New("resolution.authorityPort must not be 0"))
	}

	if strings.TrimSpace(c.Enforcer.Command) == "" {
		mErr = multierror.Append(mErr, errors.New("enforcer.command must not be empty"))
	}

	if !c.Enforcer.Timeout.IsAboveZero() {
		mErr = multierror.Append(mErr, errors.New("enforcer.timeout must be above zero"))
	}

	if !c.Report.Format.IsValid() {
		mErr = multierror.Append(mErr, fmt.Errorf("report.format '%s' is not one of %s",
			c.Report.Format, strings.Join(ReportFormatNames(), ", ")))
	}

	if c.Report.AnalyzerURL != "" && strings.Count(c.Report.AnalyzerURL, "%s") != 1 {
		mErr = multierror.Append(mErr, errors.New("report.analyzerURL must contain exactly one '%s' for the zone"))
	}

	return mErr.ErrorOrNil()
}

// StartResolvers returns the configured resolvers, falling back to the name servers of resolv.conf
func (c *Resolution) StartResolvers() ([]Upstream, error) {
	if len(c.Resolvers) > 0 {
		return c.Resolvers, nil
	}

	clientConfig, err := dns.ClientConfigFromFile(c.ResolvConf)
	if err != nil {
		return nil, fmt.Errorf("no resolvers configured and can't read %s: %w", c.ResolvConf, err)
	}

	upstreams := make([]Upstream, 0, len(clientConfig.Servers))

	for _, server := range clientConfig.Servers {
		u, err := ParseUpstream(server)
		if err != nil {
			return nil, fmt.Errorf("invalid name server '%s' in %s: %w", server, c.ResolvConf, err)
		}

		if clientConfig.Port != "" {
			if p, err := ConvertPort(clientConfig.Port); err == nil && p != 0 {
				u.Port = p
			}
		}

		upstreams = append(upstreams, u)
	}

	if len(upstreams) == 0 {
		return nil, fmt.Errorf("no resolvers configured and %s lists no name server", c.ResolvConf)
	}

	return upstreams, nil
}

// LogConfig logs the configuration
func (c *Config) LogConfig(logger *logrus.Entry) {
	if len(c.Resolution.Resolvers) > 0 {
		for _, r := range c.Resolution.Resolvers {
			logger.Debugf("resolver = %s", r)
		}
	} else {
		logger.Debugf("resolvers from = %s", c.Resolution.ResolvConf)
	}

	logger.Debugf("timeout = %s", c.Resolution.Timeout)
	logger.Debugf("attempts = %d", c.Resolution.Attempts)
	logger.Debugf("authority port = %d", c.Resolution.AuthorityPort)
	logger.Debugf("enforcer = %s (timeout %s)", c.Enforcer.Command, c.Enforcer.Timeout)
	logger.Debugf("report format = %s", c.Report.Format)

	if c.Metrics.IsEnabled() {
		logger.Debugf("metrics textfile = %s", c.Metrics.Textfile)
	}
}
