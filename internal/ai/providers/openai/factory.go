package openai

import (
	"github.com/denizgun/symtriage/internal/ai"
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(config *ai.ProviderConfig) (ai.Provider, error) {
	if config == nil {
		config = f.DefaultConfig()
	}

	providerConfig := FromProviderConfig(config)
	return New(providerConfig)
}

func (f *Factory) Type() string {
	return "openai"
}

func (f *Factory) ValidateConfig(config *ai.ProviderConfig) error {
	if config == nil {
		return ai.NewConfigurationError("openai", "config", "configuration is required")
	}

	providerConfig := FromProviderConfig(config)
	return providerConfig.Validate()
}

func (f *Factory) DefaultConfig() *ai.ProviderConfig {
	return DefaultConfig().ToProviderConfig()
}

func Register() error {
	factory := NewFactory()
	return ai.RegisterProvider("openai", factory)
}
