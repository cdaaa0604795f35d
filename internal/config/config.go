// Package config loads revcrew's YAML configuration, with
// environment-variable overrides for secrets.
//
// Grounded on the teacher's internal/config/config.go: a YAML-backed
// struct with a DefaultConfig()/Load() pair and a separate
// applyEnvOverrides() pass, narrowed from the teacher's large
// multi-subsystem Config to revcrew's four sections.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LLMConfig configures the gateway's model selection and deadline.
type LLMConfig struct {
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
	APIKey  string `yaml:"-"` // never serialized; env-only
}

// CacheConfig configures the C5 result cache.
type CacheConfig struct {
	Enabled  bool `yaml:"enabled"`
	Capacity int  `yaml:"capacity"`
}

// SchedulerConfig configures the C6 fan-out scheduler.
type SchedulerConfig struct {
	AgentTimeout string `yaml:"agent_timeout"`
}

// LoggingConfig configures internal/logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Config is revcrew's full configuration.
type Config struct {
	LLM       LLMConfig       `yaml:"llm"`
	Cache     CacheConfig     `yaml:"cache"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DefaultConfig returns the baseline defaults: cache capacity 128,
// agent timeout 30s.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:   "gemini-2.0-flash",
			Timeout: "60s",
		},
		Cache: CacheConfig{
			Enabled:  true,
			Capacity: 128,
		},
		Scheduler: SchedulerConfig{
			AgentTimeout: "30s",
		},
		Logging: LoggingConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// Load reads a YAML config from path, merges it over DefaultConfig,
// then applies environment-variable overrides. An empty path returns
// DefaultConfig with env overrides applied.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides layers secret and override values from the
// environment on top of whatever Load parsed, mirroring the teacher's
// config.go precedence style: a non-empty env var overwrites the
// field whatever the YAML or defaults set. The API key is only ever
// env-sourced, since it is never read from YAML.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("REVCREW_GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if model := os.Getenv("REVCREW_LLM_MODEL"); model != "" {
		c.LLM.Model = model
	}
	if lvl := os.Getenv("REVCREW_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
}
