package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvOrchestratorStepTimeout    = "VIGIL_ORCHESTRATOR_DEFAULT_STEP_TIMEOUT"
	EnvOrchestratorMaxConcurrency = "VIGIL_ORCHESTRATOR_MAX_CONCURRENCY"
)

// OrchestratorConfig holds workflow execution tuning.
type OrchestratorConfig struct {
	DefaultStepTimeout string `toml:"default_step_timeout"`
	MaxConcurrency     int    `toml:"max_concurrency"`
}

// DefaultStepTimeoutDuration returns DefaultStepTimeout as a time.Duration.
func (c *OrchestratorConfig) DefaultStepTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.DefaultStepTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *OrchestratorConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *OrchestratorConfig) Merge(overlay *OrchestratorConfig) {
	if overlay.DefaultStepTimeout != "" {
		c.DefaultStepTimeout = overlay.DefaultStepTimeout
	}
	if overlay.MaxConcurrency != 0 {
		c.MaxConcurrency = overlay.MaxConcurrency
	}
}

func (c *OrchestratorConfig) loadDefaults() {
	if c.DefaultStepTimeout == "" {
		c.DefaultStepTimeout = "30s"
	}
	if c.MaxConcurrency == 0 {
		c.MaxConcurrency = 4
	}
}

func (c *OrchestratorConfig) loadEnv() {
	if v := os.Getenv(EnvOrchestratorStepTimeout); v != "" {
		c.DefaultStepTimeout = v
	}
	if v := os.Getenv(EnvOrchestratorMaxConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxConcurrency = n
		}
	}
}

func (c *OrchestratorConfig) validate() error {
	if _, err := time.ParseDuration(c.DefaultStepTimeout); err != nil {
		return fmt.Errorf("invalid default_step_timeout: %w", err)
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be positive: %d", c.MaxConcurrency)
	}
	return nil
}
