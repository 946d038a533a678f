package policy

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finopsguard/core/types"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func simWithCost(monthly string) *types.SimulationResult {
	return &types.SimulationResult{
		EstimatedMonthlyCost: decimal.RequireFromString(monthly),
		PricingConfidence:    types.ConfidenceMedium,
	}
}

func fleet() *types.CanonicalResourceModel {
	m := types.NewModel()
	m.Add(types.CanonicalResource{Type: "aws_instance", Name: "web", Size: "t3.medium", Region: "us-east-1", Count: 3})
	m.Add(types.CanonicalResource{Type: "aws_instance", Name: "batch", Size: "m5.24xlarge", Region: "us-east-1"})
	m.Add(types.CanonicalResource{Type: "aws_db_instance", Name: "db", Size: "db.t3.micro", Region: "us-east-1",
		Tags: map[string]string{"team": "data"}})
	return m
}

func TestBudgetPolicyFailsOverBudget(t *testing.T) {
	policies := []Policy{{
		ID: "monthly-cap", Name: "Monthly cap", Budget: dec("1000"),
		OnViolation: ModeBlock, Enabled: true,
	}}

	outcome := Evaluate(context.Background(), policies, simWithCost("1250.50"), fleet(), EvalContext{Environment: "prod"})

	require.Len(t, outcome.Results, 1)
	r := outcome.Results[0]
	assert.Equal(t, StatusFail, r.Status)
	assert.Contains(t, r.Reason, "1250.50")
	assert.Contains(t, r.Reason, "1000.00")
	require.NotNil(t, r.ViolationDetails)
	require.NotNil(t, r.ViolationDetails.Budget)
	assert.True(t, outcome.Blocked)
}

func TestBudgetPolicyPassesAtBoundary(t *testing.T) {
	policies := []Policy{{
		ID: "monthly-cap", Budget: dec("1000"), OnViolation: ModeBlock, Enabled: true,
	}}

	// exactly on budget is not over budget
	outcome := Evaluate(context.Background(), policies, simWithCost("1000"), fleet(), EvalContext{})
	require.Len(t, outcome.Results, 1)
	assert.Equal(t, StatusPass, outcome.Results[0].Status)
	assert.False(t, outcome.Blocked)
}

func TestResourceScopedPolicyCollectsViolations(t *testing.T) {
	policies := []Policy{{
		ID: "no-huge-instances", Name: "No huge instances", Enabled: true,
		OnViolation: ModeBlock,
		Expression: &Expression{And: []*Expression{
			leaf("environment", OpEq, "dev"),
			leaf("resource.size", OpContains, "24xlarge"),
		}},
	}}

	m := fleet()
	outcome := Evaluate(context.Background(), policies, simWithCost("500"), m, EvalContext{Environment: "dev"})

	require.Len(t, outcome.Results, 1)
	r := outcome.Results[0]
	assert.Equal(t, StatusFail, r.Status)
	require.NotNil(t, r.ViolationDetails)
	require.Len(t, r.ViolationDetails.Resources, 1)
	assert.Equal(t, m.Resources[1].ID, r.ViolationDetails.Resources[0].ResourceID)
	assert.True(t, outcome.Blocked)

	// same policy in prod does not match
	outcome = Evaluate(context.Background(), policies, simWithCost("500"), m, EvalContext{Environment: "prod"})
	assert.Equal(t, StatusPass, outcome.Results[0].Status)
	assert.False(t, outcome.Blocked)
}

func TestResourceTagsInScope(t *testing.T) {
	policies := []Policy{{
		ID: "data-team-db-only", Enabled: true, OnViolation: ModeAdvisory,
		Expression: &Expression{And: []*Expression{
			leaf("resource.tags.team", OpEq, "data"),
			leaf("resource.type", OpEq, "aws_db_instance"),
		}},
	}}

	outcome := Evaluate(context.Background(), policies, simWithCost("500"), fleet(), EvalContext{})
	require.Len(t, outcome.Results, 1)
	assert.Equal(t, StatusFail, outcome.Results[0].Status)
	assert.False(t, outcome.Blocked, "advisory failures never block")
}

func TestGlobalPolicyEvaluatedOnce(t *testing.T) {
	policies := []Policy{{
		ID: "dev-cost-ceiling", Enabled: true, OnViolation: ModeWarning,
		Expression: &Expression{And: []*Expression{
			leaf("environment", OpEq, "dev"),
			leaf("cost.monthly", OpGt, 400),
		}},
	}}

	outcome := Evaluate(context.Background(), policies, simWithCost("450"), fleet(), EvalContext{Environment: "dev"})
	require.Len(t, outcome.Results, 1)
	r := outcome.Results[0]
	assert.Equal(t, StatusFail, r.Status)
	assert.Nil(t, r.ViolationDetails)
	assert.False(t, outcome.Blocked)
}

func TestMalformedPoliciesSkipped(t *testing.T) {
	policies := []Policy{
		{ID: "no-modes", Enabled: true, OnViolation: ModeBlock},
		{ID: "bad-op", Enabled: true, OnViolation: ModeBlock,
			Expression: leaf("environment", "LIKE", "d%")},
		{ID: "bad-mode", Enabled: true, OnViolation: "panic",
			Budget: dec("100")},
		{ID: "good", Enabled: true, OnViolation: ModeAdvisory, Budget: dec("10000")},
	}

	outcome := Evaluate(context.Background(), policies, simWithCost("500"), fleet(), EvalContext{})

	require.Len(t, outcome.Results, 1)
	assert.Equal(t, "good", outcome.Results[0].PolicyID)
	require.Len(t, outcome.Skipped, 3)
	assert.False(t, outcome.Blocked)
}

func TestNullExpressionChildSkippedNotPanicking(t *testing.T) {
	policies, err := Decode([]byte(`[
		{"id": "broken", "enabled": true, "on_violation": "block",
		 "expression": {"and": [null]}},
		{"id": "good", "enabled": true, "on_violation": "advisory", "budget": "10000"}
	]`))
	require.NoError(t, err)

	outcome := Evaluate(context.Background(), policies, simWithCost("500"), fleet(), EvalContext{})

	require.Len(t, outcome.Skipped, 1)
	assert.Equal(t, "broken", outcome.Skipped[0].PolicyID)
	require.Len(t, outcome.Results, 1)
	assert.Equal(t, "good", outcome.Results[0].PolicyID)
	assert.False(t, outcome.Blocked)
}

func TestCancelledContextRecordsUnevaluatedPolicies(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policies := []Policy{
		{ID: "cap", Enabled: true, OnViolation: ModeBlock, Budget: dec("1")},
		{ID: "off", Enabled: false, OnViolation: ModeBlock, Budget: dec("1")},
		{ID: "advice", Enabled: true, OnViolation: ModeAdvisory, Budget: dec("1")},
	}

	outcome := Evaluate(ctx, policies, simWithCost("500"), fleet(), EvalContext{})

	assert.Empty(t, outcome.Results)
	require.Len(t, outcome.Skipped, 2)
	assert.Equal(t, "cap", outcome.Skipped[0].PolicyID)
	assert.Equal(t, "advice", outcome.Skipped[1].PolicyID)
	assert.Contains(t, outcome.Skipped[0].Reason, "deadline")
	assert.False(t, outcome.Blocked)
}

func TestDisabledPoliciesIgnored(t *testing.T) {
	policies := []Policy{{ID: "off", Enabled: false, OnViolation: ModeBlock, Budget: dec("1")}}
	outcome := Evaluate(context.Background(), policies, simWithCost("500"), fleet(), EvalContext{})
	assert.Empty(t, outcome.Results)
	assert.Empty(t, outcome.Skipped)
	assert.False(t, outcome.Blocked)
}

func TestNoCrossPolicyShortCircuit(t *testing.T) {
	policies := []Policy{
		{ID: "first-fails", Enabled: true, OnViolation: ModeBlock, Budget: dec("1")},
		{ID: "second-passes", Enabled: true, OnViolation: ModeBlock, Budget: dec("10000")},
		{ID: "third-fails", Enabled: true, OnViolation: ModeAdvisory, Budget: dec("2")},
	}

	outcome := Evaluate(context.Background(), policies, simWithCost("500"), fleet(), EvalContext{})

	require.Len(t, outcome.Results, 3)
	assert.Equal(t, StatusFail, outcome.Results[0].Status)
	assert.Equal(t, StatusPass, outcome.Results[1].Status)
	assert.Equal(t, StatusFail, outcome.Results[2].Status)
	assert.True(t, outcome.Blocked)
	assert.Equal(t, 2, outcome.FailedCount())
}

func TestDecodePolicyDocuments(t *testing.T) {
	arrayDoc := []byte(`[
		{"id": "cap", "budget": "1000", "on_violation": "block", "enabled": true}
	]`)
	policies, err := Decode(arrayDoc)
	require.NoError(t, err)
	require.Len(t, policies, 1)
	assert.Equal(t, "cap", policies[0].ID)
	require.NotNil(t, policies[0].Budget)
	assert.True(t, policies[0].Budget.Equal(decimal.NewFromInt(1000)))

	objectDoc := []byte(`{"policies": [
		{"id": "rule", "on_violation": "advisory", "enabled": true,
		 "expression": {"field": "environment", "operator": "==", "value": "dev"}}
	]}`)
	policies, err = Decode(objectDoc)
	require.NoError(t, err)
	require.Len(t, policies, 1)
	require.NotNil(t, policies[0].Expression)
	assert.NoError(t, policies[0].Expression.Validate())

	_, err = Decode([]byte(`{not json`))
	assert.Error(t, err)
}
