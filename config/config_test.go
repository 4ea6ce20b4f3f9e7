package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model.Provider != "ollama" {
		t.Errorf("expected default provider ollama, got %s", cfg.Model.Provider)
	}
	if cfg.Model.Endpoint != "http://localhost:11434" {
		t.Errorf("expected default endpoint http://localhost:11434, got %s", cfg.Model.Endpoint)
	}
	if cfg.Run.DescType != "general" {
		t.Errorf("expected default desctype general, got %s", cfg.Run.DescType)
	}
	if cfg.Run.SeedSamples != 1 {
		t.Errorf("expected default seed_samples 1, got %d", cfg.Run.SeedSamples)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	badTemp := 2.5
	badTopP := 1.5

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing provider",
			modify:  func(c *Config) { c.Model.Provider = "" },
			wantErr: true,
		},
		{
			name:    "missing model name",
			modify:  func(c *Config) { c.Model.Name = "" },
			wantErr: true,
		},
		{
			name:    "negative start",
			modify:  func(c *Config) { c.Run.Start = -1 },
			wantErr: true,
		},
		{
			name:    "zero seed samples",
			modify:  func(c *Config) { c.Run.SeedSamples = 0 },
			wantErr: true,
		},
		{
			name:    "zero workers",
			modify:  func(c *Config) { c.Run.Workers = 0 },
			wantErr: true,
		},
		{
			name:    "temperature out of range",
			modify:  func(c *Config) { c.Model.Params.Temperature = &badTemp },
			wantErr: true,
		},
		{
			name:    "top_p out of range",
			modify:  func(c *Config) { c.Model.Params.TopP = &badTopP },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temp file with config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
model:
  provider: "ollama"
  endpoint: "http://test:1234"
  name: "test-model"
  timeout: 2m
  params:
    temperature: 0.1
    seed: 42
run:
  desctype: "general"
  limit: 50
  followup: true
output:
  path: "runs/out.json"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Model.Name != "test-model" {
		t.Errorf("expected model test-model, got %s", cfg.Model.Name)
	}
	if cfg.Model.Timeout != 2*time.Minute {
		t.Errorf("expected timeout 2m, got %v", cfg.Model.Timeout)
	}
	if cfg.Model.Params.Temperature == nil || *cfg.Model.Params.Temperature != 0.1 {
		t.Errorf("expected temperature 0.1, got %v", cfg.Model.Params.Temperature)
	}
	if cfg.Model.Params.Seed == nil || *cfg.Model.Params.Seed != 42 {
		t.Errorf("expected seed 42, got %v", cfg.Model.Params.Seed)
	}
	if cfg.Run.Limit != 50 {
		t.Errorf("expected limit 50, got %d", cfg.Run.Limit)
	}
	if !cfg.Run.Followup {
		t.Error("expected followup enabled")
	}
	if cfg.Output.Path != "runs/out.json" {
		t.Errorf("expected output path runs/out.json, got %s", cfg.Output.Path)
	}

	// Defaults fill in what the file omits
	if cfg.Run.SeedSamples != 1 {
		t.Errorf("expected default seed_samples 1, got %d", cfg.Run.SeedSamples)
	}
}

func TestLoadFromFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Model.Name = "llama3:8b"
	cfg.Run.Limit = 10

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if loaded.Model.Name != "llama3:8b" {
		t.Errorf("expected model llama3:8b, got %s", loaded.Model.Name)
	}
	if loaded.Run.Limit != 10 {
		t.Errorf("expected limit 10, got %d", loaded.Run.Limit)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()

	temp := 0.3
	override := &Config{}
	override.Model.Name = "mistral:7b"
	override.Model.Params.Temperature = &temp
	override.Run.Followup = true

	base.Merge(override)

	if base.Model.Name != "mistral:7b" {
		t.Errorf("expected merged model mistral:7b, got %s", base.Model.Name)
	}
	if base.Model.Provider != "ollama" {
		t.Errorf("merge should keep provider, got %s", base.Model.Provider)
	}
	if base.Model.Params.Temperature == nil || *base.Model.Params.Temperature != 0.3 {
		t.Errorf("expected merged temperature 0.3, got %v", base.Model.Params.Temperature)
	}
	if !base.Run.Followup {
		t.Error("expected followup merged in")
	}
	if base.Run.SeedSamples != 1 {
		t.Errorf("merge should keep seed_samples, got %d", base.Run.SeedSamples)
	}
}

func TestLoadPromptsOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	sysPath := filepath.Join(tmpDir, "system.txt")
	if err := os.WriteFile(sysPath, []byte("You are a botanist."), 0644); err != nil {
		t.Fatalf("failed to write prompt file: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Prompts.System = sysPath

	p, err := cfg.LoadPrompts()
	if err != nil {
		t.Fatalf("LoadPrompts() error = %v", err)
	}

	if p.System != "You are a botanist." {
		t.Errorf("expected overridden system prompt, got %q", p.System)
	}
	if p.Accum == "" {
		t.Error("expected built-in accum prompt to survive")
	}
}
