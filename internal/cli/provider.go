package cli

import (
	"fmt"
	"strings"
	"sync"

	"github.com/denizgun/symtriage/internal/ai"
	"github.com/denizgun/symtriage/internal/ai/providers/huggingface"
	"github.com/denizgun/symtriage/internal/ai/providers/openai"
	"github.com/denizgun/symtriage/internal/config"
)

var registerOnce sync.Once

// registerProviders registers all provider factories with the global
// registry. Safe to call from every command.
func registerProviders() {
	registerOnce.Do(func() {
		_ = huggingface.Register()
		_ = openai.Register()
	})
}

// createProvider builds an AI provider from configuration through the
// provider registry.
func createProvider(aiConfig *config.AIConfig) (ai.Provider, error) {
	registerProviders()

	name := strings.ToLower(aiConfig.Provider)
	if name == "" {
		name = "huggingface"
	}

	providerConfig := &ai.ProviderConfig{
		Name:         name,
		Type:         name,
		APIKey:       aiConfig.APIKey,
		BaseURL:      aiConfig.Endpoint,
		DefaultModel: aiConfig.Model,
		Timeout:      aiConfig.Timeout,
	}

	provider, err := ai.GlobalRegistry().GetWithConfig(name, providerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI provider: %w", err)
	}
	return provider, nil
}
