// Package policy - Policy types
package policy

import (
	"github.com/shopspring/decimal"
)

// ViolationMode classifies how a violation is treated downstream
type ViolationMode string

const (
	// ModeBlock - the caller should halt the deployment pipeline
	ModeBlock ViolationMode = "block"

	// ModeAdvisory - reported for visibility, never halts
	ModeAdvisory ViolationMode = "advisory"

	// ModeWarning - like advisory, surfaced more prominently
	ModeWarning ViolationMode = "warning"
)

// IsBlocking reports whether a failure in this mode blocks deployment
func (m ViolationMode) IsBlocking() bool {
	return m == ModeBlock
}

// Policy is one cost-governance rule.
// Exactly one evaluation mode applies: budget-mode when Budget is set,
// rule-mode when Expression is set.
type Policy struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
	Expression  *Expression      `json:"expression,omitempty"`
	OnViolation ViolationMode    `json:"on_violation"`
	Enabled     bool             `json:"enabled"`
}

// EvalStatus is the outcome of one policy evaluation
type EvalStatus string

const (
	StatusPass EvalStatus = "pass"
	StatusFail EvalStatus = "fail"
)

// BudgetViolation details a budget-mode failure
type BudgetViolation struct {
	Budget               decimal.Decimal `json:"budget"`
	EstimatedMonthlyCost decimal.Decimal `json:"estimated_monthly_cost"`
}

// ResourceViolation identifies one resource matching a forbidden condition
type ResourceViolation struct {
	ResourceID string `json:"resource_id"`
	Reason     string `json:"reason"`
}

// ViolationDetails carries mode-specific violation context
type ViolationDetails struct {
	Budget    *BudgetViolation    `json:"budget,omitempty"`
	Resources []ResourceViolation `json:"resources,omitempty"`
}

// EvaluationResult is the outcome of evaluating one policy
type EvaluationResult struct {
	Status           EvalStatus        `json:"status"`
	PolicyID         string            `json:"policy_id"`
	Reason           string            `json:"reason"`
	Mode             ViolationMode     `json:"mode"`
	ViolationDetails *ViolationDetails `json:"violation_details,omitempty"`
}

// SkippedPolicy records a malformed policy that was not evaluated
type SkippedPolicy struct {
	PolicyID string `json:"policy_id"`
	Reason   string `json:"reason"`
}

// EvaluationOutcome aggregates all per-policy results
type EvaluationOutcome struct {
	// Results preserves policy registration order
	Results []EvaluationResult `json:"results"`

	// Skipped lists malformed policies with their diagnostics
	Skipped []SkippedPolicy `json:"skipped,omitempty"`

	// Blocked is true iff at least one block-mode policy failed
	Blocked bool `json:"blocked"`
}

// FailedCount returns the number of failed policies
func (o *EvaluationOutcome) FailedCount() int {
	n := 0
	for _, r := range o.Results {
		if r.Status == StatusFail {
			n++
		}
	}
	return n
}
