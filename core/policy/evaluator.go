// Package policy - Evaluator
package policy

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"finopsguard/core/types"
	"finopsguard/internal/logging"
)

// EvalContext carries the deployment-level fields available to rules
type EvalContext struct {
	// Environment is the deployment target, e.g. "dev" or "prod"
	Environment string
}

// Evaluate runs every enabled policy against the simulation result and
// model, in the order the policies were supplied. A failed policy never
// stops evaluation of the ones after it. Malformed policies are skipped
// with a diagnostic rather than failing the whole evaluation; policies
// left unevaluated when the deadline expires are recorded the same way.
func Evaluate(ctx context.Context, policies []Policy, sim *types.SimulationResult, model *types.CanonicalResourceModel, evalCtx EvalContext) *EvaluationOutcome {
	outcome := &EvaluationOutcome{
		Results: make([]EvaluationResult, 0, len(policies)),
	}

	for i := range policies {
		p := &policies[i]
		if !p.Enabled {
			continue
		}

		if ctx.Err() != nil {
			outcome.Skipped = append(outcome.Skipped, SkippedPolicy{
				PolicyID: p.ID,
				Reason:   "not evaluated: request deadline exceeded",
			})
			continue
		}

		if reason := malformedReason(p); reason != "" {
			logging.Warn("skipping malformed policy",
				zap.String("policy", p.ID), zap.String("reason", reason))
			outcome.Skipped = append(outcome.Skipped, SkippedPolicy{
				PolicyID: p.ID,
				Reason:   reason,
			})
			continue
		}

		var result EvaluationResult
		if p.Budget != nil {
			result = evalBudget(p, sim)
		} else {
			result = evalRulePolicy(p, sim, model, evalCtx)
		}
		outcome.Results = append(outcome.Results, result)

		if result.Status == StatusFail && p.OnViolation.IsBlocking() {
			outcome.Blocked = true
		}
	}

	return outcome
}

// malformedReason returns a diagnostic for policies that cannot be
// evaluated, or "" when the policy is well formed
func malformedReason(p *Policy) string {
	if p.Budget == nil && p.Expression == nil {
		return "policy has neither budget nor expression"
	}
	if p.Budget != nil && p.Expression != nil {
		return "policy has both budget and expression"
	}
	if p.Budget != nil && p.Budget.IsNegative() {
		return "budget is negative"
	}
	if p.Expression != nil {
		if err := p.Expression.Validate(); err != nil {
			return err.Error()
		}
	}
	switch p.OnViolation {
	case ModeBlock, ModeAdvisory, ModeWarning:
	default:
		return fmt.Sprintf("unknown violation mode %q", p.OnViolation)
	}
	return ""
}

// evalBudget fails iff the estimated monthly cost exceeds the budget
func evalBudget(p *Policy, sim *types.SimulationResult) EvaluationResult {
	result := EvaluationResult{
		PolicyID: p.ID,
		Mode:     p.OnViolation,
	}

	if sim.EstimatedMonthlyCost.GreaterThan(*p.Budget) {
		result.Status = StatusFail
		result.Reason = fmt.Sprintf("estimated monthly cost $%s exceeds budget $%s",
			sim.EstimatedMonthlyCost.StringFixed(2), p.Budget.StringFixed(2))
		result.ViolationDetails = &ViolationDetails{
			Budget: &BudgetViolation{
				Budget:               *p.Budget,
				EstimatedMonthlyCost: sim.EstimatedMonthlyCost,
			},
		}
		return result
	}

	result.Status = StatusPass
	result.Reason = fmt.Sprintf("estimated monthly cost $%s within budget $%s",
		sim.EstimatedMonthlyCost.StringFixed(2), p.Budget.StringFixed(2))
	return result
}

// evalRulePolicy dispatches on policy scope: expressions referencing
// resource.* fields run once per resource, all others run once globally
func evalRulePolicy(p *Policy, sim *types.SimulationResult, model *types.CanonicalResourceModel, evalCtx EvalContext) EvaluationResult {
	result := EvaluationResult{
		PolicyID: p.ID,
		Mode:     p.OnViolation,
	}

	base := map[string]interface{}{
		"environment":  evalCtx.Environment,
		"cost.monthly": sim.EstimatedMonthlyCost,
	}

	if !p.Expression.ReferencesResource() {
		if p.Expression.Eval(base) {
			result.Status = StatusFail
			result.Reason = fmt.Sprintf("policy condition matched (%s)", p.Name)
		} else {
			result.Status = StatusPass
			result.Reason = "policy condition not matched"
		}
		return result
	}

	var violations []ResourceViolation
	for i := range model.Resources {
		res := &model.Resources[i]
		if p.Expression.Eval(resourceContext(base, res)) {
			violations = append(violations, ResourceViolation{
				ResourceID: res.ID,
				Reason:     fmt.Sprintf("%s %q matched policy condition", res.Type, res.Size),
			})
		}
	}

	if len(violations) > 0 {
		result.Status = StatusFail
		result.Reason = fmt.Sprintf("%d resource(s) matched policy condition (%s)", len(violations), p.Name)
		result.ViolationDetails = &ViolationDetails{Resources: violations}
		return result
	}

	result.Status = StatusPass
	result.Reason = "no resource matched policy condition"
	return result
}

// resourceContext extends the base context with one resource's fields
func resourceContext(base map[string]interface{}, res *types.CanonicalResource) map[string]interface{} {
	ctx := make(map[string]interface{}, len(base)+5+len(res.Tags))
	for k, v := range base {
		ctx[k] = v
	}
	ctx["resource.type"] = res.Type
	ctx["resource.size"] = res.Size
	ctx["resource.region"] = res.Region
	ctx["resource.name"] = res.Name
	ctx["resource.count"] = res.Count
	for k, v := range res.Tags {
		ctx["resource.tags."+k] = v
	}
	return ctx
}
