// Package api - API types for IaC cost analysis
// These types define the contract for the /analyze endpoint.
// The API is stateless: identical input yields identical output apart
// from request IDs and timing.
package api

import (
	"finopsguard/core/policy"
)

// AnalyzeRequest is the input to POST /analyze
type AnalyzeRequest struct {
	// Format of the payload: "terraform" or "ansible"
	Format string `json:"format"`

	// Payload is the raw IaC source text
	Payload string `json:"payload"`

	// Environment is the deployment target, e.g. "dev" or "prod"
	Environment string `json:"environment,omitempty"`

	// MonthlyBudget triggers the over_budget risk flag when exceeded.
	// Decimal string, USD.
	MonthlyBudget string `json:"monthly_budget,omitempty"`

	// Policies to evaluate against the simulation
	Policies []policy.Policy `json:"policies,omitempty"`
}

// AnalyzeResponse is the output of POST /analyze
type AnalyzeResponse struct {
	// Request tracking
	RequestID string `json:"request_id"`

	// Cost summary
	EstimatedMonthlyCost   float64 `json:"estimated_monthly_cost"`
	EstimatedFirstWeekCost float64 `json:"estimated_first_week_cost"`

	// Per-resource breakdown, in input parse order
	BreakdownByResource []ResourceCost `json:"breakdown_by_resource"`

	// Risk flags: "over_budget", "analysis_timeout"
	RiskFlags []string `json:"risk_flags"`

	// Worst confidence across all priced resources
	PricingConfidence string `json:"pricing_confidence"`

	// Policy results; omitted when no policies were supplied
	PolicyEval *PolicyEval `json:"policy_eval,omitempty"`

	// Timing
	DurationMs int64 `json:"duration_ms"`
}

// ResourceCost is one breakdown entry
type ResourceCost struct {
	ResourceID  string   `json:"resource_id"`
	Type        string   `json:"type"`
	Size        string   `json:"size"`
	MonthlyCost float64  `json:"monthly_cost"`
	Notes       []string `json:"notes,omitempty"`
}

// PolicyEval aggregates per-policy outcomes
type PolicyEval struct {
	Results []policy.EvaluationResult `json:"results"`
	Skipped []policy.SkippedPolicy    `json:"skipped,omitempty"`
	Blocked bool                      `json:"blocked"`
}

// ErrorResponse is the error envelope
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the typed error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}
