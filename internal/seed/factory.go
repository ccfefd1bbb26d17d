package seed

import (
	"context"
	"fmt"

	"taskscreen/internal/config"
	"taskscreen/internal/service"
	"taskscreen/internal/task"
)

// Connector opens the remote service used by the google seed source.
type Connector func(ctx context.Context, cfg *config.Config) (service.Service, error)

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) ([]task.Task, error)

// Load implements Provider.
func (f ProviderFunc) Load(ctx context.Context) ([]task.Task, error) {
	return f(ctx)
}

// ForConfig returns the provider selected by cfg.Seed.Source.
// connect is only called for the google source.
func ForConfig(cfg *config.Config, connect Connector) (Provider, error) {
	switch cfg.Seed.Source {
	case "", config.SeedBuiltin:
		return Builtin{}, nil
	case config.SeedFile:
		return File{Path: cfg.SeedFilePath()}, nil
	case config.SeedGoogle:
		if connect == nil {
			return nil, fmt.Errorf("seed source %s is not available", config.SeedGoogle)
		}
		return ProviderFunc(func(ctx context.Context) ([]task.Task, error) {
			svc, err := connect(ctx, cfg)
			if err != nil {
				return nil, err
			}
			return Remote{Service: svc, ListName: cfg.Seed.List}.Load(ctx)
		}), nil
	}
	return nil, fmt.Errorf("unknown seed source: %s", cfg.Seed.Source)
}
