package compat

import (
	"time"

	"github.com/partforge/PartForge-API/internal/models"
)

// Engine evaluates part sets against the built-in rule set. It is
// stateless apart from its lookup tables and safe for concurrent use.
type Engine struct {
	tables Tables
}

// NewEngine returns an engine using the default lookup tables.
func NewEngine() *Engine {
	return NewEngineWithTables(DefaultTables())
}

// NewEngineWithTables returns an engine with caller-supplied lookup data.
func NewEngineWithTables(tables Tables) *Engine {
	return &Engine{tables: tables}
}

// Evaluate runs every rule against the part set and builds one report.
// The report is a pure function of the part set (and the clock): the same
// components always produce the same issues, warnings and wattage.
func (e *Engine) Evaluate(parts models.PartSet) models.CompatibilityReport {
	return e.EvaluateAt(parts, time.Now().UTC())
}

// EvaluateAt is Evaluate with an explicit timestamp, so callers that need
// byte-identical reports can fix the clock.
func (e *Engine) EvaluateAt(parts models.PartSet, now time.Time) models.CompatibilityReport {
	issues := []string{}
	warnings := []string{}

	for _, check := range rules {
		for _, f := range check(e, parts) {
			switch f.Severity {
			case Issue:
				issues = append(issues, f.Message)
			case Warning:
				warnings = append(warnings, f.Message)
			}
		}
	}

	return models.CompatibilityReport{
		IsCompatible:     len(issues) == 0,
		Warnings:         warnings,
		Issues:           issues,
		EstimatedWattage: e.EstimateWattage(parts),
		LastChecked:      now,
	}
}
