package api

import (
	"github.com/JaimeStill/vigil/internal/config"
	"github.com/JaimeStill/vigil/internal/infrastructure"
	"github.com/JaimeStill/vigil/internal/orchestrator"
	"github.com/JaimeStill/vigil/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination   pagination.Config
	Orchestrator orchestrator.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle:    infra.Lifecycle,
			Logger:       infra.Logger.With("module", "api"),
			Database:     infra.Database,
			Storage:      infra.Storage,
			Agent:        infra.Agent,
			AgentEnabled: infra.AgentEnabled,
		},
		Pagination: cfg.API.Pagination,
		Orchestrator: orchestrator.Config{
			DefaultStepTimeout: cfg.Orchestrator.DefaultStepTimeoutDuration(),
			MaxConcurrency:     cfg.Orchestrator.MaxConcurrency,
		},
	}
}
