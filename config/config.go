// Package config loads the application configuration from a YAML file with
// environment overrides. The completion API key is resolved here, once, so the
// rest of the program receives it as plain data instead of reading the process
// environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the file nor the environment says otherwise.
const (
	DefaultAddr   = ":8080"
	DefaultDBPath = "data/specs.db"
	DefaultModel  = "meta-llama/llama-3-8b-instruct"

	defaultBaseURL = "https://openrouter.ai/api/v1"
)

// LLMConfig configures the completion client.
type LLMConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// Config holds all tasks-generator configuration.
type Config struct {
	Addr   string    `yaml:"addr"`
	DBPath string    `yaml:"db_path"`
	LLM    LLMConfig `yaml:"llm"`
}

// Load reads the YAML config at path (missing file is fine, defaults apply),
// then applies environment overrides: OPENROUTER_API_KEY, TASKS_ADDR, TASKS_DB.
func Load(path string) (Config, error) {
	cfg := Config{
		Addr:   DefaultAddr,
		DBPath: DefaultDBPath,
		LLM: LLMConfig{
			Model:   DefaultModel,
			BaseURL: defaultBaseURL,
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("TASKS_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("TASKS_DB"); v != "" {
		cfg.DBPath = v
	}

	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultModel
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = defaultBaseURL
	}

	return cfg, nil
}

// Validate checks that everything required to serve is present.
func (c Config) Validate() error {
	if c.LLM.APIKey == "" {
		return errors.New("missing OpenRouter API key; set OPENROUTER_API_KEY or llm.api_key in the config file")
	}
	return nil
}
