package enhance

import (
	"fmt"

	"invox/internal/config"
	"invox/internal/port"
)

// ProviderFactory is a function that creates an Enhancer from a provider config.
type ProviderFactory func(cfg *config.EnhancerProviderConfig) (port.Enhancer, error)

// registry of enhancer provider factories, populated explicitly via
// RegisterProvider at startup.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an enhancer provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewEnhancer creates an Enhancer from a provider config using the registered factory.
func NewEnhancer(cfg *config.EnhancerProviderConfig) (port.Enhancer, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown enhancer provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
