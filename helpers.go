package main

import (
	"fmt"

	"github.com/Samy8769/mail-classifier-3/internal/axes"
	"github.com/Samy8769/mail-classifier-3/internal/hybrid"
)

// buildRegistry loads the built-in axis referential, applies the optional
// override file and validates the result.
func buildRegistry(cfg Config) (*axes.Registry, error) {
	configs := axes.Builtin()
	if cfg.AxisOverridePath != "" {
		if err := axes.LoadOverrides(configs, cfg.AxisOverridePath); err != nil {
			return nil, fmt.Errorf("axis overrides: %w", err)
		}
	}
	return axes.New(configs)
}

func buildPipeline(cfg Config) (*hybrid.Pipeline, error) {
	registry, err := buildRegistry(cfg)
	if err != nil {
		return nil, err
	}
	arb, err := cfg.BuildArbiter()
	if err != nil {
		return nil, err
	}
	var order []string
	if len(cfg.AxisOrder) > 0 {
		order = cfg.AxisOrder
	}
	return hybrid.New(registry, arb, order, cfg.ConfidenceThreshold), nil
}
