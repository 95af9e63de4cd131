// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/holomush/ahbicht/pkg/ahbsdk"
	"github.com/holomush/ahbicht/pkg/ahbsdk/memory"
)

// fcFixture is one format-constraint leaf's seeded result.
type fcFixture struct {
	Fulfilled    bool   `yaml:"fulfilled"`
	ErrorMessage string `yaml:"error_message"`
}

// fixture is the on-disk shape a CLI run seeds its in-memory logic
// bundle from: every content-evaluator answer the run will need,
// keyed by condition key.
type fixture struct {
	Format                 string               `yaml:"format"`
	Version                string               `yaml:"version"`
	EnteredText             string               `yaml:"entered_text"`
	Fields                  map[string]any       `yaml:"fields"`
	RequirementConstraints map[string]string    `yaml:"requirement_constraints"`
	FormatConstraints       map[string]fcFixture `yaml:"format_constraints"`
	Hints                   map[string]string    `yaml:"hints"`
	Packages                map[string]string    `yaml:"packages"`
}

func loadFixture(path string) (*fixture, error) {
	if path == "" {
		return &fixture{Format: "UTILMD", Version: "FV2504"}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	fx := &fixture{}
	if err := yaml.Unmarshal(data, fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return fx, nil
}

// buildBundle seeds an in-memory logic bundle from fx.
func buildBundle(fx *fixture) *memory.Bundle {
	b := memory.New(fx.Format, fx.Version)
	for key, value := range fx.RequirementConstraints {
		b.SetRC(key, parseRcFulfilled(value))
	}
	for key, fc := range fx.FormatConstraints {
		b.SetFC(key, fc.Fulfilled, fc.ErrorMessage)
	}
	for key, text := range fx.Hints {
		b.SetHint(key, text)
	}
	for key, expr := range fx.Packages {
		b.SetPackage(key, expr)
	}
	return b
}

func parseRcFulfilled(s string) ahbsdk.RcFulfilled {
	switch s {
	case "TRUE":
		return ahbsdk.RCTrue
	case "FALSE":
		return ahbsdk.RCFalse
	default:
		return ahbsdk.RCUnknown
	}
}
