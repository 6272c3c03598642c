package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	loader := NewLoader()

	// Test loading with no config files (should use defaults)
	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}

	// Verify it's using defaults
	if cfg.AI.Provider != "huggingface" {
		t.Errorf("Expected default AI provider huggingface, got %s", cfg.AI.Provider)
	}
	if cfg.Output.DefaultFormat != "terminal" {
		t.Errorf("Expected default output format terminal, got %s", cfg.Output.DefaultFormat)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Expected default server port 5000, got %d", cfg.Server.Port)
	}
	if cfg.Client.ServerURL != "http://127.0.0.1:5000" {
		t.Errorf("Expected default client URL, got %s", cfg.Client.ServerURL)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	// Create a temporary config file
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test-config.yaml")

	configContent := `version: "1.0"
ai:
  provider: "openai"
  model: "gpt-4"
  timeout: 30s
server:
  port: 8080
output:
  default_format: "json"
  verbose: true
`

	err := os.WriteFile(configPath, []byte(configContent), 0o600)
	if err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	loader := NewLoader()
	cfg, err := loader.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	// Verify the config was loaded correctly
	if cfg.AI.Provider != "openai" {
		t.Errorf("Expected AI provider openai, got %s", cfg.AI.Provider)
	}
	if cfg.AI.Model != "gpt-4" {
		t.Errorf("Expected AI model gpt-4, got %s", cfg.AI.Model)
	}
	if cfg.AI.Timeout != 30*time.Second {
		t.Errorf("Expected AI timeout 30s, got %v", cfg.AI.Timeout)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected server port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("Expected output format json, got %s", cfg.Output.DefaultFormat)
	}
	if !cfg.Output.Verbose {
		t.Error("Expected verbose true")
	}

	// Fields the file does not set keep their defaults
	if cfg.Client.Timeout != 90*time.Second {
		t.Errorf("Expected default client timeout, got %v", cfg.Client.Timeout)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SYMTRIAGE_AI_PROVIDER", "openai")
	t.Setenv("SYMTRIAGE_AI_API_KEY", "sk-env-key")
	t.Setenv("SYMTRIAGE_SERVER_PORT", "9000")
	t.Setenv("SYMTRIAGE_OUTPUT_VERBOSE", "true")

	loader := NewLoader()
	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.AI.Provider != "openai" {
		t.Errorf("Expected env provider openai, got %s", cfg.AI.Provider)
	}
	if cfg.AI.APIKey != "sk-env-key" {
		t.Errorf("Expected env API key, got %s", cfg.AI.APIKey)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Expected env port 9000, got %d", cfg.Server.Port)
	}
	if !cfg.Output.Verbose {
		t.Error("Expected env verbose true")
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("ai:\n  provider: huggingface\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	t.Setenv("SYMTRIAGE_AI_PROVIDER", "openai")

	loader := NewLoader()
	cfg, err := loader.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.AI.Provider != "openai" {
		t.Errorf("Environment should override file value, got %s", cfg.AI.Provider)
	}
}

func TestLoadConfigInvalidPath(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name string
		path string
	}{
		{"path traversal", "../../../etc/config.yaml"},
		{"wrong extension", "config.txt"},
		{"nonexistent file", filepath.Join(t.TempDir(), "missing.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loader.LoadConfig(tt.path); err == nil {
				t.Errorf("Expected error for %s", tt.path)
			}
		})
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "bad.yaml")
	if err := os.WriteFile(configPath, []byte("ai: [unclosed"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	loader := NewLoader()
	if _, err := loader.LoadConfig(configPath); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfigValidationFailure(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("ai:\n  provider: unknown\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	loader := NewLoader()
	_, err := loader.LoadConfig(configPath)
	if err == nil {
		t.Fatal("Expected validation error for unknown provider")
	}
	if !strings.Contains(err.Error(), "invalid AI provider") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := GetConfigPaths()
	if len(paths) != 3 {
		t.Fatalf("Expected 3 paths, got %d", len(paths))
	}
	if paths[0] != "./.symtriage.yaml" {
		t.Errorf("Expected local path first, got %s", paths[0])
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	expanded := expandPath("~/config.yaml")
	if expanded != filepath.Join(home, "config.yaml") {
		t.Errorf("expandPath = %s", expanded)
	}

	absolute := expandPath("/etc/symtriage/config.yaml")
	if absolute != "/etc/symtriage/config.yaml" {
		t.Errorf("Absolute path should be unchanged, got %s", absolute)
	}
}
