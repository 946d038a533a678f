// Package types - Cost simulation types
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoursPerMonth is the averaged billing-hours constant used for
// hourly-to-monthly conversion (24 * 365 / 12, rounded).
const HoursPerMonth = 730

// Risk flags attached to simulation results
const (
	// RiskOverBudget - estimated monthly cost exceeds the supplied budget
	RiskOverBudget = "over_budget"

	// RiskAnalysisTimeout - the request deadline expired and the result
	// is best-effort partial
	RiskAnalysisTimeout = "analysis_timeout"
)

// BudgetRules carries optional caller-supplied budget constraints
type BudgetRules struct {
	// MonthlyBudget is the USD monthly ceiling; nil means unset
	MonthlyBudget *decimal.Decimal `json:"monthly_budget,omitempty"`
}

// CostBreakdownEntry is the per-resource line item of a simulation
type CostBreakdownEntry struct {
	// ResourceID links back to the canonical resource
	ResourceID string `json:"resource_id"`

	// Type is the resource type
	Type string `json:"type"`

	// Size is the priced SKU
	Size string `json:"size"`

	// MonthlyCost is the estimated monthly USD cost including count
	MonthlyCost decimal.Decimal `json:"monthly_cost"`

	// Notes carries pricing caveats (fallback source, defaults applied)
	Notes []string `json:"notes,omitempty"`
}

// SimulationResult is the aggregate cost estimate for a model
type SimulationResult struct {
	// EstimatedMonthlyCost is the USD sum over all breakdown entries
	EstimatedMonthlyCost decimal.Decimal `json:"estimated_monthly_cost"`

	// EstimatedFirstWeekCost approximates the first seven days
	// (monthly / 30 * 7, not usage-derived)
	EstimatedFirstWeekCost decimal.Decimal `json:"estimated_first_week_cost"`

	// BreakdownByResource preserves model parse order
	BreakdownByResource []CostBreakdownEntry `json:"breakdown_by_resource"`

	// RiskFlags carries non-fatal findings such as over_budget
	RiskFlags []string `json:"risk_flags"`

	// PricingConfidence is the worst confidence among contributing quotes
	PricingConfidence Confidence `json:"pricing_confidence"`

	// Duration is how long the simulation took
	Duration time.Duration `json:"duration"`
}

// HasRiskFlag reports whether the result carries the given flag
func (r *SimulationResult) HasRiskFlag(flag string) bool {
	for _, f := range r.RiskFlags {
		if f == flag {
			return true
		}
	}
	return false
}
