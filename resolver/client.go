package resolver

import (
	"context"
	"time"

	"github.com/miekg/dns"
)

// dnsClient queries over UDP and repeats truncated answers over TCP
type dnsClient struct {
	tcpClient, udpClient *dns.Client
}

func newDNSClient(timeout time.Duration) *dnsClient {
	return &dnsClient{
		tcpClient: &dns.Client{
			Net:     "tcp",
			Timeout: timeout,
		},
		udpClient: &dns.Client{
			Net:     "udp",
			Timeout: timeout,
		},
	}
}

func (c *dnsClient) ExchangeContext(ctx context.Context, msg *dns.Msg,
	address string,
) (response *dns.Msg, rtt time.Duration, err error) {
	response, rtt, err = c.udpClient.ExchangeContext(ctx, msg, address)
	if err != nil || !response.Truncated {
		return response, rtt, err
	}

	return c.tcpClient.ExchangeContext(ctx, msg, address)
}
