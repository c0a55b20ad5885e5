package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/vigil/pkg/formatting"
)

type advisorResponse struct {
	Score           float64  `json:"score"`
	Confidence      float64  `json:"confidence"`
	Findings        []string `json:"findings"`
	Recommendations []string `json:"recommendations"`
}

// Advisor is an optional LLM-backed capability that reviews the request and
// contributes an accuracy assessment. It ships disabled unless an agent is
// configured; the heuristic pipeline never depends on it.
func Advisor(cfg gaconfig.AgentConfig, configured bool) *Func {
	f := NewFunc("advisor", func(ctx context.Context, p Payload) (*Result, error) {
		a, err := agent.New(&cfg)
		if err != nil {
			return nil, fmt.Errorf("create agent: %w", err)
		}

		prompt, err := composeAdvisorPrompt(p)
		if err != nil {
			return nil, err
		}

		resp, err := a.Chat(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("chat call: %w", err)
		}

		parsed, err := formatting.Parse[advisorResponse](resp.Content())
		if err != nil {
			return nil, fmt.Errorf("parse response: %w", err)
		}

		result := &Result{
			Type:            DimensionAccuracy,
			Score:           score(parsed.Score),
			Confidence:      confidence(parsed.Confidence),
			Recommendations: parsed.Recommendations,
		}
		if len(parsed.Findings) > 0 {
			result.Details = map[string]any{"findings": parsed.Findings}
		}
		return result, nil
	})

	f.SetEnabled(configured)
	return f
}

func composeAdvisorPrompt(p Payload) (string, error) {
	contextJSON, err := json.MarshalIndent(map[string]any{
		"vertical":    p.Vertical,
		"use_case":    p.UseCase,
		"regulations": p.Regulations,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize payload context: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("You are reviewing an analysis request for factual plausibility.\n")
	sb.WriteString("Respond with JSON: {\"score\": 0-100, \"confidence\": 0-1, ")
	sb.WriteString("\"findings\": [...], \"recommendations\": [...]}.\n\n")
	sb.WriteString("Analysis context:\n\n")
	sb.Write(contextJSON)
	sb.WriteString("\n\nRequest text:\n\n")
	sb.WriteString(p.Text)

	return sb.String(), nil
}
