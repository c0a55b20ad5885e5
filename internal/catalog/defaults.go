package catalog

import "github.com/JaimeStill/vigil/internal/scoring"

func f(v float64) *float64 {
	return &v
}

// defaultDefinitions is the seed catalog. Base workflows contain only
// vertical-specific steps; the orchestrator schedules the mandatory baseline
// scans ahead of every workflow regardless of its contents.
func defaultDefinitions() []Definition {
	return []Definition{
		{
			ID:       "energy-oil-gas-lease",
			Vertical: "energy",
			Name:     "Oil & Gas Lease Review",
			BaseWorkflow: Workflow{
				Steps: []Step{
					{
						ID:           "lease-compliance",
						Name:         "Lease Regulatory Compliance",
						CapabilityID: "compliance-review",
					},
					{
						ID:           "lease-terms",
						Name:         "Lease Term Coverage",
						CapabilityID: "contract-terms",
					},
					{
						ID:           "lease-risk",
						Name:         "Lease Risk Profile",
						CapabilityID: "risk-profile",
						DependsOn:    []string{"lease-compliance"},
						Optional:     true,
					},
				},
			},
			RequiredCapabilities: []string{"financial-reconciliation"},
			Regulations:          []string{"BLM Onshore Orders", "State Mineral Leasing Act"},
			Thresholds: map[string]Threshold{
				"royalty_rate": {Min: f(12.5), Max: f(25)},
			},
			BaseScores: scoring.Scores{Security: 80, Integrity: 80, Accuracy: 80},
		},
		{
			ID:       "energy-pipeline-compliance",
			Vertical: "energy",
			Name:     "Pipeline Compliance Inspection",
			BaseWorkflow: Workflow{
				Steps: []Step{
					{
						ID:           "pipeline-compliance",
						Name:         "Pipeline Regulatory Compliance",
						CapabilityID: "compliance-review",
					},
					{
						ID:           "pipeline-risk",
						Name:         "Pipeline Risk Profile",
						CapabilityID: "risk-profile",
						DependsOn:    []string{"pipeline-compliance"},
					},
				},
			},
			Regulations: []string{"PHMSA Part 192", "PHMSA Part 195"},
			BaseScores:  scoring.Scores{Security: 75, Integrity: 80, Accuracy: 80},
		},
		{
			ID:       "finance-loan-audit",
			Vertical: "finance",
			Name:     "Loan File Audit",
			BaseWorkflow: Workflow{
				Steps: []Step{
					{
						ID:           "loan-reconciliation",
						Name:         "Loan Amount Reconciliation",
						CapabilityID: "financial-reconciliation",
					},
					{
						ID:           "loan-compliance",
						Name:         "Lending Compliance",
						CapabilityID: "compliance-review",
					},
					{
						ID:           "loan-risk",
						Name:         "Credit Risk Profile",
						CapabilityID: "risk-profile",
						DependsOn:    []string{"loan-reconciliation", "loan-compliance"},
						Optional:     true,
					},
				},
			},
			RequiredCapabilities: []string{"field-extraction"},
			Regulations:          []string{"TILA", "ECOA", "Fair Lending"},
			Thresholds: map[string]Threshold{
				"debt_to_income": {Max: f(43)},
			},
			BaseScores: scoring.Scores{Security: 85, Integrity: 80, Accuracy: 75},
		},
		{
			ID:       "finance-expense-review",
			Vertical: "finance",
			Name:     "Expense Report Review",
			BaseWorkflow: Workflow{
				Steps: []Step{
					{
						ID:           "expense-reconciliation",
						Name:         "Expense Reconciliation",
						CapabilityID: "financial-reconciliation",
					},
					{
						ID:           "expense-extraction",
						Name:         "Expense Field Extraction",
						CapabilityID: "field-extraction",
						DependsOn:    []string{"expense-reconciliation"},
						Optional:     true,
						Config:       map[string]any{"fields": []string{"total", "cost_center"}},
					},
				},
			},
			BaseScores: scoring.Scores{Security: 85, Integrity: 85, Accuracy: 75},
		},
		{
			ID:       "healthcare-claims-review",
			Vertical: "healthcare",
			Name:     "Medical Claims Review",
			BaseWorkflow: Workflow{
				Steps: []Step{
					{
						ID:           "claims-compliance",
						Name:         "Claims Regulatory Compliance",
						CapabilityID: "compliance-review",
					},
					{
						ID:           "claims-reconciliation",
						Name:         "Claims Amount Reconciliation",
						CapabilityID: "financial-reconciliation",
						DependsOn:    []string{"claims-compliance"},
						Optional:     true,
					},
				},
			},
			Regulations: []string{"HIPAA", "CMS Billing Rules"},
			BaseScores:  scoring.Scores{Security: 90, Integrity: 85, Accuracy: 80},
		},
		{
			ID:       "legal-contract-review",
			Vertical: "legal",
			Name:     "Contract Review",
			BaseWorkflow: Workflow{
				Steps: []Step{
					{
						ID:           "contract-terms",
						Name:         "Clause Coverage",
						CapabilityID: "contract-terms",
					},
					{
						ID:           "contract-risk",
						Name:         "Contract Risk Profile",
						CapabilityID: "risk-profile",
						DependsOn:    []string{"contract-terms"},
					},
				},
			},
			RequiredCapabilities: []string{"compliance-review"},
			BaseScores:           scoring.Scores{Security: 80, Integrity: 85, Accuracy: 80},
		},
		{
			ID:       "construction-bid-review",
			Vertical: "construction",
			Name:     "Construction Bid Review",
			BaseWorkflow: Workflow{
				Steps: []Step{
					{
						ID:           "bid-reconciliation",
						Name:         "Bid Amount Reconciliation",
						CapabilityID: "financial-reconciliation",
					},
					{
						ID:           "bid-compliance",
						Name:         "Permit & Code Compliance",
						CapabilityID: "compliance-review",
						DependsOn:    []string{"bid-reconciliation"},
						Optional:     true,
					},
				},
			},
			Regulations: []string{"Local Building Code", "OSHA 1926"},
			BaseScores:  scoring.Scores{Security: 80, Integrity: 80, Accuracy: 75},
		},
		{
			ID:       GenericUseCaseID,
			Vertical: "general",
			Name:     "General Analysis",
			BaseWorkflow: Workflow{
				Steps: []Step{
					{
						ID:           "general-risk",
						Name:         "Risk Profile",
						CapabilityID: "risk-profile",
						Optional:     true,
					},
					{
						ID:           "general-advisor",
						Name:         "Advisor Assessment",
						CapabilityID: "advisor",
						DependsOn:    []string{"general-risk"},
						Optional:     true,
					},
				},
			},
			BaseScores: scoring.Scores{Security: 75, Integrity: 75, Accuracy: 75},
		},
	}
}
