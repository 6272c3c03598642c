package config

import (
	"fmt"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version string       `yaml:"version" json:"version"`
	AI      AIConfig     `yaml:"ai" json:"ai" envPrefix:"SYMTRIAGE_AI_"`
	Server  ServerConfig `yaml:"server" json:"server" envPrefix:"SYMTRIAGE_SERVER_"`
	Client  ClientConfig `yaml:"client" json:"client" envPrefix:"SYMTRIAGE_CLIENT_"`
	Output  OutputConfig `yaml:"output" json:"output" envPrefix:"SYMTRIAGE_OUTPUT_"`
}

// AIConfig configures the AI provider backing the analysis engine
type AIConfig struct {
	Provider string        `yaml:"provider" json:"provider" env:"PROVIDER"` // huggingface|openai
	Model    string        `yaml:"model" json:"model" env:"MODEL"`          // model name/identifier
	Endpoint string        `yaml:"endpoint" json:"endpoint" env:"ENDPOINT"` // API endpoint URL
	APIKey   string        `yaml:"api_key" json:"api_key" env:"API_KEY"`    // API key
	Timeout  time.Duration `yaml:"timeout" json:"timeout" env:"TIMEOUT"`    // request timeout
}

// ServerConfig configures the analysis API server
type ServerConfig struct {
	Host            string        `yaml:"host" json:"host" env:"HOST"`
	Port            int           `yaml:"port" json:"port" env:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout" env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" json:"max_body_bytes" env:"MAX_BODY_BYTES"`
}

// Addr returns the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ClientConfig configures how the intake wizard reaches the server
type ClientConfig struct {
	ServerURL string        `yaml:"server_url" json:"server_url" env:"SERVER_URL"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" env:"TIMEOUT"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format" env:"DEFAULT_FORMAT"` // terminal|json|markdown
	ColorMode     string `yaml:"color_mode" json:"color_mode" env:"COLOR_MODE"`             // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose" env:"VERBOSE"`                      // default verbosity
	ShowProgress  bool   `yaml:"show_progress" json:"show_progress" env:"SHOW_PROGRESS"`    // show spinners
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		AI: AIConfig{
			Provider: "huggingface",
			Model:    "facebook/bart-large-cnn",
			Endpoint: "https://api-inference.huggingface.co",
			APIKey:   "",
			Timeout:  60 * time.Second,
		},
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            5000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20, // 1MB
		},
		Client: ClientConfig{
			ServerURL: "http://127.0.0.1:5000",
			Timeout:   90 * time.Second,
		},
		Output: OutputConfig{
			DefaultFormat: "terminal",
			ColorMode:     "auto",
			Verbose:       false,
			ShowProgress:  true,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateAIConfig(); err != nil {
		return err
	}
	if err := c.validateServerConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return nil
}

// validateAIConfig validates AI-related configuration
func (c *Config) validateAIConfig() error {
	if c.AI.Provider != "" {
		validProviders := map[string]bool{
			"huggingface": true,
			"openai":      true,
		}
		if !validProviders[c.AI.Provider] {
			return fmt.Errorf("invalid AI provider: %s (must be one of: huggingface, openai)", c.AI.Provider)
		}
	}
	if c.AI.Timeout < 0 {
		return fmt.Errorf("ai timeout must be non-negative")
	}
	return nil
}

// validateServerConfig validates server-related configuration
func (c *Config) validateServerConfig() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.MaxBodyBytes < 1 {
		return fmt.Errorf("max_body_bytes must be greater than 0")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server timeouts must be non-negative")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"terminal": true,
			"json":     true,
			"markdown": true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: terminal, json, markdown)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}
