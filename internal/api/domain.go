package api

import (
	"github.com/JaimeStill/vigil/internal/analysis"
	"github.com/JaimeStill/vigil/internal/audit"
	"github.com/JaimeStill/vigil/internal/binding"
	"github.com/JaimeStill/vigil/internal/capability"
	"github.com/JaimeStill/vigil/internal/catalog"
	"github.com/JaimeStill/vigil/internal/classifier"
	"github.com/JaimeStill/vigil/internal/orchestrator"
	"github.com/JaimeStill/vigil/internal/report"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Analysis analysis.System
	Audit    audit.System
}

// NewDomain creates all domain systems from the API runtime: the use-case
// catalog and capability registry feed the binder and orchestrator, the audit
// system records step and execution outcomes, and the report archive persists
// finished reports when blob storage is available.
func NewDomain(runtime *Runtime) (*Domain, error) {
	cat, err := catalog.NewDefault(runtime.Logger)
	if err != nil {
		return nil, err
	}

	registry, err := capability.NewDefaultRegistry(runtime.Logger, runtime.Agent, runtime.AgentEnabled)
	if err != nil {
		return nil, err
	}

	auditSystem := audit.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	orch := orchestrator.New(
		registry,
		auditSystem,
		runtime.Logger,
		runtime.Orchestrator,
	)

	reports := report.NewNop()
	if runtime.Storage != nil {
		reports = report.New(runtime.Storage, runtime.Logger)
	}

	analysisSystem := analysis.New(
		classifier.New(),
		binding.New(cat, runtime.Logger),
		orch,
		cat,
		auditSystem,
		reports,
		runtime.Logger,
	)

	return &Domain{
		Analysis: analysisSystem,
		Audit:    auditSystem,
	}, nil
}
