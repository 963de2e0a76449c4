// Package config provides run-scoped configuration for plankit.
//
// Configuration is an explicit value constructed at startup and passed into
// the orchestration entry points. Nothing in this package is loaded at import
// time and nothing is process-global.
package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// AutoModelID is a distinguished model name. It is not a model that can be
// instantiated; it instructs the caller to cycle through all configured
// models in priority order, falling back to the next one on failure.
const AutoModelID = "auto"

// AutoModelLabel is the human-readable label for AutoModelID.
const AutoModelLabel = "Auto"

// Default values applied when the config file omits them.
const (
	DefaultOutputDir      = "output"
	DefaultTimeoutSeconds = 120
	DefaultMaxTokens      = 8192
)

// ModelConfig describes a single LLM backend configuration.
type ModelConfig struct {
	// ID is the configuration name callers resolve against, e.g.
	// "openrouter-gemini-flash". Must be unique and must not be "auto".
	ID string `yaml:"id"`
	// Label is an optional display name. Defaults to ID.
	Label string `yaml:"label"`
	// BaseURL is the root of an OpenAI-compatible chat completions API.
	BaseURL string `yaml:"base_url"`
	// Model is the provider-side model identifier.
	Model string `yaml:"model"`
	// APIKeyEnv names the environment variable holding the API key.
	// The key itself never appears in config files or exports.
	APIKeyEnv string `yaml:"api_key_env"`
	// Priority orders models for the "auto" fallback chain.
	// Lower values are tried first. Models without a priority (zero)
	// are excluded from the chain but remain individually resolvable.
	Priority int `yaml:"priority"`

	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// DisplayLabel returns the label shown in model pickers. Models that
// participate in the auto chain carry their priority in the label.
func (m ModelConfig) DisplayLabel() string {
	label := m.Label
	if label == "" {
		label = m.ID
	}
	if m.Priority > 0 {
		return fmt.Sprintf("%s (prio: %d)", label, m.Priority)
	}
	return label
}

// Config is the top-level configuration value for a run.
type Config struct {
	// DefaultModel is the model ID used when the caller does not pick one.
	// May be AutoModelID.
	DefaultModel string `yaml:"default_model"`
	// OutputDir is where artifacts (JSON, markdown) are written.
	OutputDir string `yaml:"output_dir"`
	// ActivityLog is an optional path for the JSONL LLM activity log.
	// Empty disables tracking.
	ActivityLog string `yaml:"activity_log"`
	// Models lists the available LLM backend configurations.
	Models []ModelConfig `yaml:"models"`
}

// Default returns a configuration with no models and default paths.
func Default() *Config {
	return &Config{
		DefaultModel: AutoModelID,
		OutputDir:    DefaultOutputDir,
	}
}

// Load reads the YAML file at path and returns a validated Config.
// If the file does not exist, Load returns Default() (not an error).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DefaultModel == "" {
		c.DefaultModel = AutoModelID
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	for i := range c.Models {
		m := &c.Models[i]
		if m.TimeoutSeconds <= 0 {
			m.TimeoutSeconds = DefaultTimeoutSeconds
		}
		if m.MaxTokens <= 0 {
			m.MaxTokens = DefaultMaxTokens
		}
	}
}

// Validate checks model IDs for emptiness, duplicates and the reserved
// "auto" name. An empty DefaultModel is accepted and means AutoModelID.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Models))
	for _, m := range c.Models {
		if m.ID == "" {
			return fmt.Errorf("model with empty id")
		}
		if m.ID == AutoModelID {
			return fmt.Errorf("model id %q is reserved", AutoModelID)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("duplicate model id %q", m.ID)
		}
		seen[m.ID] = struct{}{}
		if m.Model == "" {
			return fmt.Errorf("model %q: missing provider model name", m.ID)
		}
	}
	if c.DefaultModel != "" && c.DefaultModel != AutoModelID && len(c.Models) > 0 {
		if _, ok := c.FindModel(c.DefaultModel); !ok {
			return fmt.Errorf("default_model %q not found", c.DefaultModel)
		}
	}
	return nil
}

// FindModel returns the model configuration with the given ID.
func (c *Config) FindModel(id string) (ModelConfig, bool) {
	for _, m := range c.Models {
		if m.ID == id {
			return m, true
		}
	}
	return ModelConfig{}, false
}

// IsValidModelID reports whether id names a configured model.
func (c *Config) IsValidModelID(id string) bool {
	_, ok := c.FindModel(id)
	return ok
}

// ModelsByPriority returns the models that carry a priority, sorted so that
// lower values come first. This is the fallback order used by "auto".
func (c *Config) ModelsByPriority() []ModelConfig {
	models := make([]ModelConfig, 0, len(c.Models))
	for _, m := range c.Models {
		if m.Priority > 0 {
			models = append(models, m)
		}
	}
	sort.SliceStable(models, func(i, j int) bool {
		return models[i].Priority < models[j].Priority
	})
	return models
}
