package cmd

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/odskit/ksk-helper/config"
	"github.com/odskit/ksk-helper/helpertest"
	"github.com/odskit/ksk-helper/log"
	"github.com/odskit/ksk-helper/model"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("root command", func() {
	var tmpDir *helpertest.TmpFolder

	BeforeEach(func() {
		tmpDir = helpertest.NewTmpFolder("RootCommand")
		DeferCleanup(tmpDir.Clean)
	})

	When("help is called", func() {
		It("should execute without error", func() {
			c := NewRootCommand()
			c.SetOut(io.Discard)
			c.SetArgs([]string{"help"})

			Expect(c.Execute()).Should(Succeed())
		})
	})

	It("should create root command with all subcommands", func() {
		var names []string

		for _, sub := range NewRootCommand().Commands() {
			names = append(names, sub.Name())
		}

		Expect(names).Should(ContainElements("check", "keys", "ds", "parent", "validate", "version"))
	})

	It("should set flags correctly", func() {
		c := NewRootCommand()

		configFlag := c.PersistentFlags().Lookup("config")
		Expect(configFlag).ShouldNot(BeNil())
		Expect(configFlag.Shorthand).Should(Equal("c"))
		Expect(configFlag.DefValue).Should(Equal(defaultConfigPath))

		for _, name := range []string{"log-level", "output", "resolver", "trace", "metrics-textfile"} {
			Expect(c.PersistentFlags().Lookup(name)).ShouldNot(BeNil(), name)
		}
	})

	Describe("initConfig", func() {
		BeforeEach(func() {
			NewRootCommand()
		})

		It("should read the config file named by the env var", func() {
			file := tmpDir.CreateStringFile("config.yml",
				"report:",
				"  format: yaml")

			configPath = defaultConfigPath

			os.Setenv(configFileEnvVar, file.Path)
			DeferCleanup(func() { os.Unsetenv(configFileEnvVar) })

			Expect(initConfig()).Should(Succeed())
			Expect(configPath).Should(Equal(file.Path))
			Expect(cfg.Report.Format).Should(Equal(config.ReportFormatYAML))
		})

		It("should let flags override the file", func() {
			file := tmpDir.CreateStringFile("config.yml",
				"resolution:",
				"  resolvers:",
				"    - 192.0.2.53",
				"log:",
				"  level: warn")

			configPath = file.Path
			logLevel = "debug"
			output = "json"
			resolvers = []string{"9.9.9.9", "[2620:fe::fe]:5353"}
			trace = true
			metricsTextfile = "/tmp/ksk.prom"

			Expect(initConfig()).Should(Succeed())
			Expect(cfg.Log.Level).Should(Equal(log.LevelDebug))
			Expect(cfg.Report.Format).Should(Equal(config.ReportFormatJSON))
			Expect(cfg.Report.Trace).Should(BeTrue())
			Expect(cfg.Metrics.Textfile).Should(Equal("/tmp/ksk.prom"))
			Expect(cfg.Resolution.Resolvers).Should(Equal([]config.Upstream{
				{Host: "9.9.9.9", Port: 53},
				{Host: "2620:fe::fe", Port: 5353},
			}))
		})

		It("should reject invalid flags", func() {
			configPath = tmpDir.CreateStringFile("config.yml", "").Path
			output = "xml"

			err := initConfig()
			Expect(err).Should(MatchError(model.ErrValidation))
			Expect(err.Error()).Should(ContainSubstring("report.format 'xml'"))
		})

		It("should reject an unknown log level", func() {
			configPath = tmpDir.CreateStringFile("config.yml", "").Path
			logLevel = "chatty"

			Expect(initConfig()).Should(MatchError(model.ErrValidation))
		})

		It("should use defaults without a config file at the default path", func() {
			configPath = defaultConfigPath

			Expect(initConfig()).Should(Succeed())
			Expect(cfg.Enforcer.Command).Should(Equal("ods-enforcer"))
		})

		It("should fail for a missing explicit config file", func() {
			configPath = tmpDir.JoinPath("missing.yml")

			Expect(initConfig()).Should(MatchError(model.ErrValidation))
		})
	})

	Describe("run", func() {
		It("should map errors to exit codes", func() {
			stderr := new(bytes.Buffer)
			c := NewRootCommand()
			c.SetOut(io.Discard)

			code := run(context.Background(), c, []string{"validate", "--config", tmpDir.JoinPath("missing.yml")}, stderr)

			Expect(code).Should(Equal(model.ExitValidation))
			Expect(stderr.String()).Should(HavePrefix("Error: validation error"))
		})

		It("should exit with 1 on usage errors", func() {
			c := NewRootCommand()
			c.SetOut(io.Discard)
			c.SetErr(io.Discard)

			Expect(run(context.Background(), c, []string{"check"}, io.Discard)).Should(Equal(model.ExitFailure))
		})
	})
})
