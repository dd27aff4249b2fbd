package main

import (
	"fmt"
	"log"

	"invox/internal/config"
	"invox/internal/enhance"
	"invox/internal/enhance/gemini"
	"invox/internal/enhance/openai"
	"invox/internal/handler"
	"invox/internal/pipeline"
	"invox/internal/port"
	"invox/internal/router"
	"invox/internal/storage/noop"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registerProviders()

	var enhancer port.Enhancer
	if cfg.Enhancer.Enabled {
		enhancer, err = enhance.NewEnhancer(&cfg.Enhancer.Primary)
		if err != nil {
			return fmt.Errorf("failed to initialize enhancer: %w", err)
		}
	}

	store := noop.NewNoopStore()
	p := pipeline.New(enhance.NewOrchestrator(enhancer), nil, store)

	parseH := handler.NewParseHandler(p)
	healthH := handler.NewHealthHandler()

	r := router.Setup(parseH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func registerProviders() {
	enhance.RegisterProvider("openai", func(cfg *config.EnhancerProviderConfig) (port.Enhancer, error) {
		return openai.NewEnhancer(cfg), nil
	})
	enhance.RegisterProvider("gemini", func(cfg *config.EnhancerProviderConfig) (port.Enhancer, error) {
		return gemini.NewEnhancer(cfg), nil
	})
}
