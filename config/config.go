// Package config provides configuration loading and management for
// traitmatrix runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/traitmatrix/llm"
	"github.com/c360studio/traitmatrix/prompt"
)

// Config represents the complete traitmatrix configuration
type Config struct {
	Model   ModelConfig   `yaml:"model"`
	Run     RunConfig     `yaml:"run"`
	Prompts PromptsConfig `yaml:"prompts"`
	Output  OutputConfig  `yaml:"output"`
}

// ModelConfig configures the inference backend
type ModelConfig struct {
	// Provider is the registered provider name ("ollama", "openai", "anthropic")
	Provider string `yaml:"provider"`
	// Endpoint is the provider base URL (default: http://localhost:11434)
	Endpoint string `yaml:"endpoint"`
	// Name is the model identifier (e.g. "llama3:70b")
	Name string `yaml:"name"`
	// Timeout is the maximum time to wait for model responses
	Timeout time.Duration `yaml:"timeout"`
	// Params are the generation parameters passed to the provider
	Params llm.Params `yaml:"params"`
}

// RunConfig configures which samples a run covers and how they are processed
type RunConfig struct {
	// DescType selects which description rows to digitize (default: "general")
	DescType string `yaml:"desctype"`
	// Start is the index of the first sample to process
	Start int `yaml:"start"`
	// Limit caps how many samples are processed (0 = no cap)
	Limit int `yaml:"limit"`
	// SeedSamples is how many samples tabulation seeding reads (default: 1)
	SeedSamples int `yaml:"seed_samples"`
	// Tabulate enables tabulation seeding over SeedSamples samples
	Tabulate bool `yaml:"tabulate"`
	// Followup enables the corrective second call per sample
	Followup bool `yaml:"followup"`
	// Workers is the extraction concurrency (accumulation is always sequential)
	Workers int `yaml:"workers"`
	// Language filters archive rows during conversion (empty = keep all)
	Language string `yaml:"language"`
}

// PromptsConfig points at template override files; empty paths keep the
// built-in templates
type PromptsConfig struct {
	System   string `yaml:"system"`
	Init     string `yaml:"init"`
	Tabulate string `yaml:"tabulate"`
	Accum    string `yaml:"accum"`
	Followup string `yaml:"followup"`
}

// OutputConfig configures where results land
type OutputConfig struct {
	// Path is the run output JSON file
	Path string `yaml:"path"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			Provider: "ollama",
			Endpoint: "http://localhost:11434",
			Name:     "llama3:70b",
			Timeout:  5 * time.Minute,
		},
		Run: RunConfig{
			DescType:    "general",
			SeedSamples: 1,
			Workers:     1,
		},
		Output: OutputConfig{
			Path: "output.json",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Model.Provider == "" {
		return fmt.Errorf("model.provider is required")
	}
	if c.Model.Name == "" {
		return fmt.Errorf("model.name is required")
	}
	if c.Run.Start < 0 {
		return fmt.Errorf("run.start must not be negative")
	}
	if c.Run.Limit < 0 {
		return fmt.Errorf("run.limit must not be negative")
	}
	if c.Run.SeedSamples < 1 {
		return fmt.Errorf("run.seed_samples must be at least 1")
	}
	if c.Run.Workers < 1 {
		return fmt.Errorf("run.workers must be at least 1")
	}
	if p := c.Model.Params.Temperature; p != nil && (*p < 0 || *p > 2) {
		return fmt.Errorf("model.params.temperature must be between 0 and 2")
	}
	if p := c.Model.Params.TopP; p != nil && (*p < 0 || *p > 1) {
		return fmt.Errorf("model.params.top_p must be between 0 and 1")
	}
	return nil
}

// Endpoint shapes the model settings as a backend endpoint
func (c *Config) Endpoint() llm.Endpoint {
	return llm.Endpoint{
		Provider: c.Model.Provider,
		URL:      c.Model.Endpoint,
		Model:    c.Model.Name,
	}
}

// LoadPrompts resolves the prompt templates, reading override files where
// configured and keeping the built-in template otherwise
func (c *Config) LoadPrompts() (prompt.Prompts, error) {
	p := prompt.Defaults()

	var err error
	if p.System, err = prompt.LoadFile(c.Prompts.System, p.System); err != nil {
		return prompt.Prompts{}, fmt.Errorf("system prompt: %w", err)
	}
	if p.Init, err = prompt.LoadFile(c.Prompts.Init, p.Init); err != nil {
		return prompt.Prompts{}, fmt.Errorf("init prompt: %w", err)
	}
	if p.Tabulate, err = prompt.LoadFile(c.Prompts.Tabulate, p.Tabulate); err != nil {
		return prompt.Prompts{}, fmt.Errorf("tabulate prompt: %w", err)
	}
	if p.Accum, err = prompt.LoadFile(c.Prompts.Accum, p.Accum); err != nil {
		return prompt.Prompts{}, fmt.Errorf("accum prompt: %w", err)
	}
	if p.Followup, err = prompt.LoadFile(c.Prompts.Followup, p.Followup); err != nil {
		return prompt.Prompts{}, fmt.Errorf("followup prompt: %w", err)
	}
	return p, nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Model
	if other.Model.Provider != "" {
		c.Model.Provider = other.Model.Provider
	}
	if other.Model.Endpoint != "" {
		c.Model.Endpoint = other.Model.Endpoint
	}
	if other.Model.Name != "" {
		c.Model.Name = other.Model.Name
	}
	if other.Model.Timeout != 0 {
		c.Model.Timeout = other.Model.Timeout
	}
	mergeParams(&c.Model.Params, other.Model.Params)

	// Run
	if other.Run.DescType != "" {
		c.Run.DescType = other.Run.DescType
	}
	if other.Run.Start != 0 {
		c.Run.Start = other.Run.Start
	}
	if other.Run.Limit != 0 {
		c.Run.Limit = other.Run.Limit
	}
	if other.Run.SeedSamples != 0 {
		c.Run.SeedSamples = other.Run.SeedSamples
	}
	if other.Run.Tabulate {
		c.Run.Tabulate = true
	}
	if other.Run.Followup {
		c.Run.Followup = true
	}
	if other.Run.Workers != 0 {
		c.Run.Workers = other.Run.Workers
	}
	if other.Run.Language != "" {
		c.Run.Language = other.Run.Language
	}

	// Prompts
	if other.Prompts.System != "" {
		c.Prompts.System = other.Prompts.System
	}
	if other.Prompts.Init != "" {
		c.Prompts.Init = other.Prompts.Init
	}
	if other.Prompts.Tabulate != "" {
		c.Prompts.Tabulate = other.Prompts.Tabulate
	}
	if other.Prompts.Accum != "" {
		c.Prompts.Accum = other.Prompts.Accum
	}
	if other.Prompts.Followup != "" {
		c.Prompts.Followup = other.Prompts.Followup
	}

	// Output
	if other.Output.Path != "" {
		c.Output.Path = other.Output.Path
	}
}

func mergeParams(dst *llm.Params, src llm.Params) {
	if src.Temperature != nil {
		dst.Temperature = src.Temperature
	}
	if src.Seed != nil {
		dst.Seed = src.Seed
	}
	if src.RepeatLastN != nil {
		dst.RepeatLastN = src.RepeatLastN
	}
	if src.MaxTokens != 0 {
		dst.MaxTokens = src.MaxTokens
	}
	if src.ContextSize != 0 {
		dst.ContextSize = src.ContextSize
	}
	if src.TopK != nil {
		dst.TopK = src.TopK
	}
	if src.TopP != nil {
		dst.TopP = src.TopP
	}
}
