package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/maastricht-university/edmo-transcript/rules"
	"github.com/maastricht-university/edmo-transcript/speaker"
)

type Service struct {
	URL string `yaml:"url" mapstructure:"url"`
}
type Services struct {
	ASR         Service `yaml:"asr" mapstructure:"asr"`
	Diarization Service `yaml:"diarization" mapstructure:"diarization"`
	Correction  Service `yaml:"correction" mapstructure:"correction"`
}
type LLM struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"` // any OpenAI compatible endpoint
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"` // 0 sizes the reply from the input
}
type Cleanup struct {
	Level string `yaml:"level" mapstructure:"level"`
}
type Speakers struct {
	PauseThreshold          float64 `yaml:"pause_threshold" mapstructure:"pause_threshold"`
	EnergyThreshold         float64 `yaml:"energy_threshold" mapstructure:"energy_threshold"`
	SecondaryPauseThreshold float64 `yaml:"secondary_pause_threshold" mapstructure:"secondary_pause_threshold"`
	MergeGapThreshold       float64 `yaml:"merge_gap_threshold" mapstructure:"merge_gap_threshold"` // 0 merges regardless of pause
	MinDuration             float64 `yaml:"min_duration" mapstructure:"min_duration"`
}
type Topics struct {
	DefaultTopic string `yaml:"default_topic" mapstructure:"default_topic"`
	MaxChars     int    `yaml:"max_chars" mapstructure:"max_chars"`
}
type Root struct {
	Pipeline struct {
		Name    string `yaml:"name" mapstructure:"name"`
		Version string `yaml:"version" mapstructure:"version"`
		LogLvl  string `yaml:"log_level" mapstructure:"log_level"`
		LogFile string `yaml:"log_file" mapstructure:"log_file"`
		Timeout int    `yaml:"timeout" mapstructure:"timeout"` // seconds, per service call
	} `yaml:"pipeline" mapstructure:"pipeline"`
	Services Services `yaml:"services" mapstructure:"services"`
	LLM      LLM      `yaml:"llm" mapstructure:"llm"`
	Cleanup  Cleanup  `yaml:"cleanup" mapstructure:"cleanup"`
	Speakers Speakers `yaml:"speakers" mapstructure:"speakers"`
	Topics   Topics   `yaml:"topics" mapstructure:"topics"`
	Parser   struct {
		SectionMarker string `yaml:"section_marker" mapstructure:"section_marker"`
	} `yaml:"parser" mapstructure:"parser"`
	Rules struct {
		File string `yaml:"file" mapstructure:"file"`
	} `yaml:"rules" mapstructure:"rules"`
	Paths struct {
		Outputs string `yaml:"outputs" mapstructure:"outputs"`
	} `yaml:"paths" mapstructure:"paths"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.name", "edmo-transcript")
	v.SetDefault("pipeline.version", "0.1.0")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("pipeline.log_file", "")
	v.SetDefault("pipeline.timeout", 60)
	v.SetDefault("services.asr.url", "")
	v.SetDefault("services.diarization.url", "")
	v.SetDefault("services.correction.url", "")
	v.SetDefault("llm.enabled", false)
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-3.5-turbo")
	v.SetDefault("llm.max_tokens", 0)
	v.SetDefault("cleanup.level", string(rules.Medium))
	v.SetDefault("speakers.pause_threshold", speaker.DefaultPauseThreshold)
	v.SetDefault("speakers.energy_threshold", speaker.DefaultEnergyThreshold)
	v.SetDefault("speakers.secondary_pause_threshold", speaker.DefaultSecondaryPauseThreshold)
	v.SetDefault("speakers.merge_gap_threshold", speaker.DefaultMergeGap)
	v.SetDefault("speakers.min_duration", 0.0)
	v.SetDefault("topics.default_topic", "General")
	v.SetDefault("topics.max_chars", 600)
	v.SetDefault("parser.section_marker", "TRANSCRIÇÃO")
	v.SetDefault("rules.file", "")
	v.SetDefault("paths.outputs", "outputs")
}

// guess lists the config locations tried when no path is given.
func guess() []string {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return []string{
		filepath.Join("config", env, "config.yaml"),
		filepath.Join("src", "shared", "config.yaml"),
	}
}

// Load reads the configuration with a fresh viper instance.
func Load(path string) (*Root, error) { return LoadWith(viper.New(), path) }

// LoadWith reads path, or the first guessed location that exists, into v
// and decodes it. EDMO_* environment variables override file values, and
// flags already bound on v override both. No file at all means defaults.
func LoadWith(v *viper.Viper, path string) (*Root, error) {
	setDefaults(v)
	v.SetEnvPrefix("EDMO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType("yaml")

	if path == "" {
		for _, p := range guess() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid key.
func (c *Root) Validate() error {
	if _, err := rules.ParseLevel(c.Cleanup.Level); err != nil {
		return fmt.Errorf("cleanup.level: %w", err)
	}
	s := c.Speakers
	thresholds := []struct {
		key string
		val float64
	}{
		{"speakers.pause_threshold", s.PauseThreshold},
		{"speakers.energy_threshold", s.EnergyThreshold},
		{"speakers.secondary_pause_threshold", s.SecondaryPauseThreshold},
		{"speakers.merge_gap_threshold", s.MergeGapThreshold},
		{"speakers.min_duration", s.MinDuration},
	}
	for _, th := range thresholds {
		if th.val < 0 {
			return fmt.Errorf("%s must be >= 0", th.key)
		}
	}
	if c.Topics.MaxChars <= 0 {
		return errors.New("topics.max_chars must be > 0")
	}
	if strings.TrimSpace(c.Topics.DefaultTopic) == "" {
		return errors.New("topics.default_topic is required")
	}
	if strings.TrimSpace(c.Parser.SectionMarker) == "" {
		return errors.New("parser.section_marker is required")
	}
	if c.Paths.Outputs == "" {
		return errors.New("paths.outputs is required")
	}
	if c.Pipeline.Timeout <= 0 {
		return errors.New("pipeline.timeout must be > 0")
	}
	if c.LLM.Enabled {
		if c.LLM.APIKey == "" {
			return errors.New("llm.api_key is required when llm.enabled is set")
		}
		if c.LLM.Model == "" {
			return errors.New("llm.model is required when llm.enabled is set")
		}
	}
	if c.LLM.MaxTokens < 0 {
		return errors.New("llm.max_tokens must be >= 0")
	}
	return nil
}

// Level is the parsed cleanup level. Call after Validate.
func (c *Root) Level() rules.Level {
	l, _ := rules.ParseLevel(c.Cleanup.Level)
	return l
}

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }
