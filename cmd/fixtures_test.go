package cmd

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"

	"github.com/odskit/ksk-helper/config"
	"github.com/odskit/ksk-helper/helpertest"
	"github.com/odskit/ksk-helper/resolver"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const (
	oldDigest = "0F1E2D3C4B5A69788796A5B4C3D2E1F00F1E2D3C4B5A69788796A5B4C3D2E1F0"
	newDigest = "A1B2C3D4E5F60718293A4B5C6D7E8F90A1B2C3D4E5F60718293A4B5C6D7E8F90"
)

// rolloverListing is a zone whose new KSK 20 is active while KSK 10 is retired
var rolloverListing = []string{
	"Keys:",
	"Zone:        Keytype: State:  Date of next transition: Size: Algorithm: CKA_ID:  Repository: KeyTag:",
	"example.com  KSK      active  2027-01-01 00:00:00      256   13         aa01     SoftHSM     20",
	"example.com  KSK      retire  waiting for ds-gone      256   13         aa02     SoftHSM     10",
}

// startParent starts a DNS server that delegates com to itself and serves the DS records
// of example.com with the given tags
func startParent(tags ...uint16) (config.Upstream, *resolver.MockUDPUpstreamServer) {
	server := resolver.NewMockUDPUpstreamServer().WithAnswerFn(func(request *dns.Msg) *dns.Msg {
		q := request.Question[0]
		msg := new(dns.Msg)

		switch {
		case q.Qtype == dns.TypeNS && q.Name == "com.":
			msg.Answer = append(msg.Answer, rr("com. 172800 IN NS a.gtld.test."))
			msg.Extra = append(msg.Extra, rr("a.gtld.test. 172800 IN A 127.0.0.1"))
		case q.Qtype == dns.TypeDS && q.Name == "example.com.":
			for _, t := range tags {
				digest := oldDigest
				if t != 10 {
					digest = newDigest
				}

				msg.Answer = append(msg.Answer, rr(fmt.Sprintf("example.com. 86400 IN DS %d 13 2 %s", t, digest)))
			}
		default:
			msg.Rcode = dns.RcodeNameError
		}

		return msg
	})

	upstream := server.Start()
	DeferCleanup(server.Close)

	return upstream, server
}

func rr(s string) dns.RR {
	r, err := dns.NewRR(s)
	Expect(err).Should(Succeed())

	return r
}

// fakeEnforcer writes an ods-enforcer replacement that prints listing and exports the DS of KSK 20
func fakeEnforcer(tmpDir *helpertest.TmpFolder, listing ...string) string {
	list := tmpDir.CreateStringFile("listing.txt", listing...)
	Expect(list.Error).Should(Succeed())

	export := tmpDir.CreateStringFile("export.txt",
		";active KSK DS record (SHA256):",
		"example.com.\t3600\tIN\tDS\t20 13 2 "+strings.ToLower(newDigest))
	Expect(export.Error).Should(Succeed())

	script := tmpDir.CreateExecutable("ods-enforcer",
		`case "$2" in`,
		`list) cat `+list.Path+` ;;`,
		`export) [ "$6" = "active" ] && cat `+export.Path+` ;;`,
		`esac`,
		`exit 0`)
	Expect(script.Error).Should(Succeed())

	return script.Path
}

// writeConfig writes a configuration using upstream and enforcer. resolution lines go into the resolution section.
func writeConfig(tmpDir *helpertest.TmpFolder, upstream config.Upstream, enforcer string, resolution ...string) string {
	lines := []string{
		"resolution:",
		"  resolvers:",
		"    - " + upstream.String(),
		fmt.Sprintf("  authorityPort: %d", upstream.Port),
		"  timeout: 2s",
	}

	lines = append(lines, resolution...)
	lines = append(lines,
		"enforcer:",
		"  command: "+enforcer,
		"  timeout: 5s",
	)

	file := tmpDir.CreateStringFile("config.yml", lines...)
	Expect(file.Error).Should(Succeed())

	return file.Path
}
