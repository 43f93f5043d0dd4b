package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maastricht-university/edmo-transcript/rules"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "medium", cfg.Cleanup.Level)
	assert.Equal(t, rules.Medium, cfg.Level())
	assert.Equal(t, 2.5, cfg.Speakers.PauseThreshold)
	assert.Equal(t, 3.0, cfg.Speakers.MergeGapThreshold)
	assert.Equal(t, "General", cfg.Topics.DefaultTopic)
	assert.Equal(t, 600, cfg.Topics.MaxChars)
	assert.Equal(t, "TRANSCRIÇÃO", cfg.Parser.SectionMarker)
	assert.Equal(t, "outputs", cfg.Paths.Outputs)
}

func TestLoadGuessesByEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_ENV", "prod")
	writeConfig(t, filepath.Join(dir, "config", "prod"), "cleanup:\n  level: agressivo\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, rules.Aggressive, cfg.Level())
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
services:
  asr:
    url: http://asr:8000
speakers:
  merge_gap_threshold: 0
topics:
  default_topic: Geral
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://asr:8000", cfg.Services.ASR.URL)
	assert.Equal(t, 0.0, cfg.Speakers.MergeGapThreshold)
	assert.Equal(t, "Geral", cfg.Topics.DefaultTopic)
	assert.Equal(t, 1.5, cfg.Speakers.SecondaryPauseThreshold)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "cleanup:\n  level: light\n")
	t.Setenv("EDMO_CLEANUP_LEVEL", "aggressive")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, rules.Aggressive, cfg.Level())
}

func TestLoadWithBoundOverride(t *testing.T) {
	chdir(t, t.TempDir())
	v := viper.New()
	v.Set("pipeline.log_level", "debug")
	cfg, err := LoadWith(v, "")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Pipeline.LogLvl)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestValidate(t *testing.T) {
	chdir(t, t.TempDir())
	tests := []struct {
		name   string
		mutate func(c *Root)
		errMsg string
	}{
		{"valid", func(c *Root) {}, ""},
		{"bad level", func(c *Root) { c.Cleanup.Level = "extreme" }, "cleanup.level"},
		{"negative pause", func(c *Root) { c.Speakers.PauseThreshold = -1 }, "speakers.pause_threshold must be >= 0"},
		{"negative gap", func(c *Root) { c.Speakers.MergeGapThreshold = -0.1 }, "speakers.merge_gap_threshold"},
		{"max chars", func(c *Root) { c.Topics.MaxChars = 0 }, "topics.max_chars"},
		{"default topic", func(c *Root) { c.Topics.DefaultTopic = " " }, "topics.default_topic"},
		{"marker", func(c *Root) { c.Parser.SectionMarker = "" }, "parser.section_marker"},
		{"outputs", func(c *Root) { c.Paths.Outputs = "" }, "paths.outputs"},
		{"timeout", func(c *Root) { c.Pipeline.Timeout = 0 }, "pipeline.timeout"},
		{"llm key", func(c *Root) { c.LLM.Enabled = true }, "llm.api_key"},
		{"llm model", func(c *Root) { c.LLM.Enabled = true; c.LLM.APIKey = "k"; c.LLM.Model = "" }, "llm.model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			err = cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}
