package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfg "github.com/maastricht-university/edmo-transcript/config"
	"github.com/maastricht-university/edmo-transcript/logger"
	"github.com/maastricht-university/edmo-transcript/orchestrator"
	"github.com/maastricht-university/edmo-transcript/rules"
)

// commandContext loads configuration, rules and the pipeline once per
// invocation.
type commandContext struct {
	v          *viper.Viper
	configFlag *string

	once     sync.Once
	conf     *cfg.Root
	set      *rules.Set
	pipeline *orchestrator.Pipeline
	err      error
}

func (c *commandContext) load() error {
	c.once.Do(func() {
		conf, err := cfg.LoadWith(c.v, strings.TrimSpace(*c.configFlag))
		if err != nil {
			c.err = err
			return
		}
		if err := logger.Init(logger.Options{Level: conf.Pipeline.LogLvl, File: conf.Pipeline.LogFile}); err != nil {
			c.err = err
			return
		}
		set, err := rules.LoadFile(conf.Rules.File)
		if err != nil {
			c.err = err
			return
		}
		p, err := orchestrator.NewPipeline(conf, set)
		if err != nil {
			c.err = err
			return
		}
		c.conf, c.set, c.pipeline = conf, set, p
	})
	return c.err
}

func newRootCommand() *cobra.Command {
	var configFlag string
	ctx := &commandContext{v: viper.New(), configFlag: &configFlag}

	rootCmd := &cobra.Command{
		Use:           "edmo-transcript",
		Short:         "Clean and organize Portuguese pitch transcripts by topic",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Also write JSON logs to this rotated file")
	flags.String("cleanup", "medium", "Cleanup level: light, medium or aggressive")
	flags.String("rules", "", "YAML rule file replacing the built-in vocabulary, fillers and topics")
	flags.Bool("llm", false, "Revise each utterance with the configured LLM")
	for key, name := range map[string]string{
		"pipeline.log_level": "log-level",
		"pipeline.log_file":  "log-file",
		"cleanup.level":      "cleanup",
		"rules.file":         "rules",
		"llm.enabled":        "llm",
	} {
		_ = ctx.v.BindPFlag(key, flags.Lookup(name))
	}

	rootCmd.AddCommand(newOrganizeCommand(ctx))
	rootCmd.AddCommand(newCleanCommand(ctx))
	rootCmd.AddCommand(newTranscribeCommand(ctx))
	rootCmd.AddCommand(newRulesCommand(ctx))
	return rootCmd
}
