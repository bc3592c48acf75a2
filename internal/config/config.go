// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the workflow runner configuration.
type Config struct {
	LLM       LLMConfig          `toml:"llm"`      // Default LLM settings
	Profiles  map[string]Profile `toml:"profiles"` // Per-agent capability profiles
	Workflow  WorkflowConfig     `toml:"workflow"`
	Telemetry TelemetryConfig    `toml:"telemetry"`
	Storage   StorageConfig      `toml:"storage"` // Persistent storage settings
	Notify    NotifyConfig       `toml:"notify"`  // Phase event publication
}

// LLMConfig contains LLM provider settings.
type LLMConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	APIKeyEnv string `toml:"api_key_env"`
	MaxTokens int    `toml:"max_tokens"`
	BaseURL   string `toml:"base_url"` // Custom API endpoint (OpenRouter, LiteLLM, Ollama)
}

// Profile represents a capability profile mapping to a specific LLM configuration.
type Profile struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	APIKeyEnv string `toml:"api_key_env"`
	MaxTokens int    `toml:"max_tokens"`
	BaseURL   string `toml:"base_url"` // Custom API endpoint
}

// WorkflowConfig contains workflow-wide agent defaults.
type WorkflowConfig struct {
	RosterPath    string `toml:"roster_path"`    // YAML agent roster (default "agents.yaml")
	MaxIterations int    `toml:"max_iterations"` // Default tool-result cap per agent turn (default 15)
}

// TelemetryConfig contains telemetry settings.
type TelemetryConfig struct {
	Enabled  bool   `toml:"enabled"`
	Endpoint string `toml:"endpoint"` // OTLP endpoint (e.g., localhost:4317)
	Protocol string `toml:"protocol"` // grpc (default) or http
}

// StorageConfig contains persistent storage settings.
type StorageConfig struct {
	Path string `toml:"path"` // Base directory for the session database
}

// NotifyConfig configures the phase transition event stream.
type NotifyConfig struct {
	URL     string `toml:"url"`     // NATS server URL; empty disables publication
	Subject string `toml:"subject"` // Subject for phase events (default "sessions.phase")
}

// New creates a new config with defaults.
func New() *Config {
	return &Config{
		LLM: LLMConfig{
			MaxTokens: 4096,
		},
		Workflow: WorkflowConfig{
			RosterPath:    "agents.yaml",
			MaxIterations: 15,
		},
		Storage: StorageConfig{
			Path: "~/.local/lexpipe",
		},
		Telemetry: TelemetryConfig{
			Protocol: "noop",
		},
	}
}

// LoadFile loads configuration from a TOML file.
func LoadFile(path string) (*Config, error) {
	cfg := New()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// DatabasePath resolves the session database location, expanding a leading
// "~" against the user's home directory.
func (c *Config) DatabasePath() string {
	base := c.Storage.Path
	if len(base) > 0 && base[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			base = filepath.Join(home, base[1:])
		}
	}
	return filepath.Join(base, "sessions.db")
}

// GetAPIKey returns the API key from the configured environment variable.
// If api_key_env is not set, uses the default env var for the provider.
func (c *Config) GetAPIKey() string {
	envVar := c.LLM.APIKeyEnv
	if envVar == "" {
		envVar = DefaultAPIKeyEnv(c.LLM.Provider)
	}
	if envVar == "" {
		return ""
	}
	return os.Getenv(envVar)
}

// DefaultAPIKeyEnv returns the default environment variable name for a provider.
func DefaultAPIKeyEnv(provider string) string {
	switch provider {
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	case "google":
		return "GOOGLE_API_KEY"
	case "mistral":
		return "MISTRAL_API_KEY"
	case "groq":
		return "GROQ_API_KEY"
	default:
		return ""
	}
}

// GetProfile returns the LLM config for a capability profile.
// Falls back to default LLM config if profile not found.
func (c *Config) GetProfile(name string) LLMConfig {
	if name == "" {
		return c.LLM
	}
	if profile, ok := c.Profiles[name]; ok {
		// Fill in defaults from main LLM config
		result := LLMConfig{
			Provider:  profile.Provider,
			Model:     profile.Model,
			APIKeyEnv: profile.APIKeyEnv,
			MaxTokens: profile.MaxTokens,
			BaseURL:   profile.BaseURL,
		}
		if result.Provider == "" {
			result.Provider = c.LLM.Provider
		}
		if result.Model == "" {
			result.Model = c.LLM.Model
		}
		if result.APIKeyEnv == "" {
			result.APIKeyEnv = c.LLM.APIKeyEnv
		}
		if result.MaxTokens == 0 {
			result.MaxTokens = c.LLM.MaxTokens
		}
		return result
	}
	return c.LLM
}

// GetProfileAPIKey returns the API key for a specific profile.
func (c *Config) GetProfileAPIKey(profileName string) string {
	llmCfg := c.GetProfile(profileName)
	envVar := llmCfg.APIKeyEnv
	if envVar == "" {
		envVar = DefaultAPIKeyEnv(llmCfg.Provider)
	}
	if envVar == "" {
		return ""
	}
	return os.Getenv(envVar)
}
