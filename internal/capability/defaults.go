package capability

import (
	"log/slog"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// RegisterDefaults registers the built-in capability set: the three baseline
// scans followed by the vertical analysis capabilities and the advisor.
func RegisterDefaults(r *Registry, agent gaconfig.AgentConfig, agentConfigured bool) error {
	builtins := []Capability{
		SecurityScan(),
		IntegrityScan(),
		AccuracyCheck(),
		ComplianceReview(),
		RiskProfile(),
		ContractTerms(),
		FinancialReconciliation(),
		FieldExtraction(),
		Advisor(agent, agentConfigured),
	}

	for _, c := range builtins {
		if err := r.Register(c); err != nil {
			return err
		}
	}

	return nil
}

// NewDefaultRegistry creates a registry pre-populated with the built-in set.
func NewDefaultRegistry(logger *slog.Logger, agent gaconfig.AgentConfig, agentConfigured bool) (*Registry, error) {
	r := NewRegistry(logger)
	if err := RegisterDefaults(r, agent, agentConfigured); err != nil {
		return nil, err
	}
	return r, nil
}
