package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hrakoto/tailor/internal/model"
)

// Config is the root configuration for the tailor CLI.
type Config struct {
	StorePath     string
	OutputDir     string
	Embellishment int
	AI            AIConfig
}

// AIConfig points the completion client at a provider.
type AIConfig struct {
	BaseURL string        // defaults to https://api.openai.com/v1
	Model   string        // e.g. "gpt-4o-mini"
	APIKey  string        // expanded from env var by Load; may stay empty if the key lives in the store
	Timeout time.Duration // per-request timeout
}

const (
	defaultStorePath = "tailor.db"
	defaultTimeout   = 60 * time.Second
)

// rawConfig is used for YAML unmarshaling (snake_case fields, duration as string).
type rawConfig struct {
	StorePath     string      `yaml:"store_path"`
	OutputDir     string      `yaml:"output_dir"`
	Embellishment int         `yaml:"embellishment"`
	AI            rawAIConfig `yaml:"ai"`
}

type rawAIConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	Timeout string `yaml:"timeout"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		StorePath:     defaultStorePath,
		OutputDir:     ".",
		Embellishment: model.DefaultEmbellishment,
		AI:            AIConfig{Timeout: defaultTimeout},
	}
}

// Load reads and parses the YAML config at path. A missing file is not an
// error: the defaults apply and the API key can come from the store or env.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables, so api_key: ${OPENAI_API_KEY} works.
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if raw.StorePath != "" {
		cfg.StorePath = raw.StorePath
	}
	if raw.OutputDir != "" {
		cfg.OutputDir = raw.OutputDir
	}
	if raw.Embellishment != 0 {
		cfg.Embellishment = raw.Embellishment
	}
	cfg.AI.BaseURL = raw.AI.BaseURL
	cfg.AI.Model = raw.AI.Model
	cfg.AI.APIKey = raw.AI.APIKey

	if raw.AI.Timeout != "" {
		timeout, err := time.ParseDuration(raw.AI.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse ai.timeout %q: %w", raw.AI.Timeout, err)
		}
		cfg.AI.Timeout = timeout
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Embellishment < model.MinEmbellishment || cfg.Embellishment > model.MaxEmbellishment {
		return fmt.Errorf("embellishment must be between %d and %d, got %d",
			model.MinEmbellishment, model.MaxEmbellishment, cfg.Embellishment)
	}
	if cfg.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be positive, got %v", cfg.AI.Timeout)
	}
	return nil
}
