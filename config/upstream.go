package config

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
)

const defaultDNSPort = 53

var validDomain = regexp.MustCompile(
	`^(([a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9\-]*[a-zA-Z0-9])\.)*([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9\-]*[A-Za-z0-9])$`)

// Upstream is a DNS server reached over plain UDP
type Upstream struct {
	Host string
	Port uint16
}

// IsDefault returns true if u is the default value
func (u *Upstream) IsDefault() bool {
	return *u == Upstream{}
}

// Address returns host:port as used by the DNS client
func (u Upstream) Address() string {
	return net.JoinHostPort(u.Host, strconv.Itoa(int(u.Port)))
}

// String returns the string representation of u
func (u Upstream) String() string {
	if u.IsDefault() {
		return "no upstream"
	}

	if u.Port == defaultDNSPort {
		if strings.ContainsRune(u.Host, ':') {
			return "[" + u.Host + "]"
		}

		return u.Host
	}

	return u.Address()
}

// MarshalText implements `encoding.TextMarshaler`.
func (u Upstream) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements `encoding.TextUnmarshaler`.
func (u *Upstream) UnmarshalText(data []byte) error {
	s := string(data)

	upstream, err := ParseUpstream(s)
	if err != nil {
		return fmt.Errorf("can't convert upstream '%s': %w", s, err)
	}

	*u = upstream

	return nil
}

// ParseUpstream creates new Upstream from passed string in format host[:port], IPv6 hosts with port in brackets
func ParseUpstream(upstream string) (Upstream, error) {
	upstream = strings.TrimSpace(upstream)
	if upstream == "" {
		return Upstream{}, fmt.Errorf("empty upstream")
	}

	var port uint16

	host, portString, err := net.SplitHostPort(upstream)

	// string contains host:port
	if err == nil {
		p, err := ConvertPort(portString)
		if err != nil {
			return Upstream{}, fmt.Errorf("can't convert port to number (1 - 65535) %w", err)
		}

		port = p
	} else {
		// only host, use default port
		host = upstream
		port = defaultDNSPort

		// trim any IPv6 brackets
		host = strings.TrimPrefix(host, "[")
		host = strings.TrimSuffix(host, "]")
	}

	// validate hostname or ip
	if ip := net.ParseIP(host); ip == nil {
		if !validDomain.MatchString(host) {
			return Upstream{}, fmt.Errorf("wrong host name '%s'", host)
		}
	}

	return Upstream{Host: host, Port: port}, nil
}

// ConvertPort converts string representation into a valid port (0 - 65535)
func ConvertPort(in string) (uint16, error) {
	const (
		base    = 10
		bitSize = 16
	)

	p, err := strconv.ParseUint(strings.TrimSpace(in), base, bitSize)
	if err != nil {
		return 0, err
	}

	return uint16(p), nil
}
