package cmd

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Version command", func() {
	When("Version command is called", func() {
		It("should print version and build time", func() {
			out := new(bytes.Buffer)

			c := NewVersionCommand()
			c.SetOut(out)
			c.SetArgs(make([]string, 0))

			Expect(c.Execute()).Should(Succeed())
			Expect(out.String()).Should(Equal("ksk-helper\nVersion: undefined\nBuild time: undefined\n"))
		})
	})
})
