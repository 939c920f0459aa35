package cmd

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/odskit/ksk-helper/helpertest"
	"github.com/odskit/ksk-helper/model"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Keys, parent and DS commands", func() {
	var (
		tmpDir  *helpertest.TmpFolder
		out     *bytes.Buffer
		cfgPath string
	)

	BeforeEach(func() {
		tmpDir = helpertest.NewTmpFolder("keys")
		DeferCleanup(tmpDir.Clean)

		out = new(bytes.Buffer)

		upstream, _ := startParent(10, 20)
		cfgPath = writeConfig(tmpDir, upstream, fakeEnforcer(tmpDir, rolloverListing...))
	})

	execute := func(args ...string) int {
		c := NewRootCommand()
		c.SetOut(out)

		return run(context.Background(), c, append(args, "--config", cfgPath), new(bytes.Buffer))
	}

	It("should list the keys of a zone", func() {
		Expect(execute("keys", "example.com")).Should(Equal(model.ExitOK))

		text := out.String()
		Expect(text).Should(HavePrefix("OpenDNSSEC zone example.com:\n"))
		Expect(text).Should(ContainSubstring("Zone has active KSK (256 bits) with tag 20"))
		Expect(text).Should(ContainSubstring("waiting for ds-gone"))
		Expect(text).ShouldNot(ContainSubstring("In DS"))
	})

	It("should list the keys as JSON", func() {
		Expect(execute("keys", "example.com", "-o", "json")).Should(Equal(model.ExitOK))

		var decoded struct {
			Zone string
			Keys []struct {
				Tag   uint16
				State string
			}
		}
		Expect(json.Unmarshal(out.Bytes(), &decoded)).Should(Succeed())
		Expect(decoded.Keys).Should(HaveLen(2))
		Expect(decoded.Keys[0].Tag).Should(Equal(uint16(10)))
		Expect(decoded.Keys[0].State).Should(Equal("retire"))
	})

	It("should fail for an unknown zone", func() {
		Expect(execute("keys", "example.net")).Should(Equal(model.ExitZoneNotFound))
	})

	It("should find the parent authority", func() {
		Expect(execute("parent", "example.com", "--trace")).Should(Equal(model.ExitOK))

		text := out.String()
		Expect(text).Should(HavePrefix("Parent authority of example.com: a.gtld.test (127.0.0.1:"))
		Expect(text).Should(ContainSubstring("Delegation walk:"))
		Expect(text).ShouldNot(ContainSubstring("DS records"))
	})

	It("should show the DS records at the parent", func() {
		Expect(execute("ds", "example.com")).Should(Equal(model.ExitOK))

		text := out.String()
		Expect(text).Should(ContainSubstring("DS records at the parent:"))
		Expect(text).Should(ContainSubstring(oldDigest))
		Expect(text).Should(ContainSubstring(newDigest))
	})

	It("should report a missing DS as data", func() {
		Expect(execute("ds", "other.com", "-o", "json")).Should(Equal(model.ExitOK))

		var decoded map[string]interface{}
		Expect(json.Unmarshal(out.Bytes(), &decoded)).Should(Succeed())
		Expect(decoded).Should(HaveKeyWithValue("dsStatus", "no-answer"))
		Expect(decoded).Should(HaveKeyWithValue("dsReason", "nxdomain"))
	})

	It("should print the partial walk of a failed lookup with --trace", func() {
		Expect(execute("parent", "example.org", "--trace")).Should(Equal(model.ExitDelegationNotFound))

		Expect(out.String()).Should(ContainSubstring("NXDOMAIN"))
	})
})
