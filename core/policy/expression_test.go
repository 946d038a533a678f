package policy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(field string, op Operator, value interface{}) *Expression {
	return &Expression{Rule: &Rule{Field: field, Operator: op, Value: value}}
}

func TestEvalComparisonOperators(t *testing.T) {
	ctx := map[string]interface{}{
		"cost.monthly":    450.0,
		"environment":     "dev",
		"resource.size":   "t3.medium",
		"resource.count":  3,
		"resource.region": "us-east-1",
	}

	tests := []struct {
		name string
		expr *Expression
		want bool
	}{
		{"eq string", leaf("environment", OpEq, "dev"), true},
		{"eq mismatch", leaf("environment", OpEq, "prod"), false},
		{"ne", leaf("environment", OpNe, "prod"), true},
		{"gt", leaf("cost.monthly", OpGt, 300), true},
		{"gt false", leaf("cost.monthly", OpGt, 500), false},
		{"lt", leaf("cost.monthly", OpLt, 500), true},
		{"gte boundary", leaf("cost.monthly", OpGte, 450), true},
		{"lte boundary", leaf("cost.monthly", OpLte, 450), true},
		{"numeric eq across types", leaf("resource.count", OpEq, 3.0), true},
		{"in", leaf("environment", OpIn, []interface{}{"dev", "staging"}), true},
		{"in miss", leaf("environment", OpIn, []interface{}{"prod"}), false},
		{"contains substring", leaf("resource.size", OpContains, "medium"), true},
		{"starts_with", leaf("resource.size", OpStartsWith, "t3."), true},
		{"ends_with", leaf("resource.region", OpEndsWith, "-1"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.Eval(ctx))
		})
	}
}

func TestEvalFailsClosed(t *testing.T) {
	ctx := map[string]interface{}{"environment": "dev"}

	// missing field
	assert.False(t, leaf("cost.monthly", OpGt, 100).Eval(ctx))
	// non-numeric operand for numeric comparison
	assert.False(t, leaf("environment", OpGt, 100).Eval(ctx))
	// IN against a non-list rule value
	assert.False(t, leaf("environment", OpIn, "dev").Eval(ctx))
	// empty node
	assert.False(t, (&Expression{}).Eval(ctx))
}

func TestEvalAndOr(t *testing.T) {
	ctx := map[string]interface{}{"environment": "dev", "cost.monthly": 450.0}

	and := &Expression{And: []*Expression{
		leaf("environment", OpEq, "dev"),
		leaf("cost.monthly", OpGt, 300),
	}}
	assert.True(t, and.Eval(ctx))

	and.And[1] = leaf("cost.monthly", OpGt, 500)
	assert.False(t, and.Eval(ctx))

	or := &Expression{Or: []*Expression{
		leaf("environment", OpEq, "prod"),
		leaf("cost.monthly", OpGt, 300),
	}}
	assert.True(t, or.Eval(ctx))

	or.Or[1] = leaf("cost.monthly", OpGt, 500)
	assert.False(t, or.Eval(ctx))
}

func TestUnmarshalShorthandLeaf(t *testing.T) {
	var expr Expression
	require.NoError(t, json.Unmarshal([]byte(`{"field":"environment","operator":"==","value":"dev"}`), &expr))
	require.NotNil(t, expr.Rule)
	assert.Equal(t, OpEq, expr.Rule.Operator)

	var nested Expression
	require.NoError(t, json.Unmarshal([]byte(`{
		"and": [
			{"field": "environment", "operator": "==", "value": "dev"},
			{"or": [
				{"field": "resource.size", "operator": "STARTS_WITH", "value": "m5."},
				{"field": "resource.size", "operator": "STARTS_WITH", "value": "c5."}
			]}
		]
	}`), &nested))
	require.NoError(t, nested.Validate())
	require.Len(t, nested.And, 2)
	assert.Len(t, nested.And[1].Or, 2)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, leaf("environment", OpEq, "dev").Validate())
	assert.NoError(t, leaf("resource.tags.team", OpEq, "core").Validate())

	assert.Error(t, leaf("environment", "LIKE", "d%").Validate())
	assert.Error(t, leaf("weather", OpEq, "sunny").Validate())
	assert.Error(t, (&Expression{}).Validate())

	both := &Expression{
		Rule: &Rule{Field: "environment", Operator: OpEq, Value: "dev"},
		And:  []*Expression{leaf("environment", OpEq, "dev")},
	}
	assert.Error(t, both.Validate())

	// invalid child surfaces from nesting
	bad := &Expression{And: []*Expression{leaf("nope", OpEq, 1)}}
	assert.Error(t, bad.Validate())
}

func TestNullChildIsMalformedNotAPanic(t *testing.T) {
	// a JSON null inside and/or decodes to a nil child
	var expr Expression
	require.NoError(t, json.Unmarshal([]byte(`{"and": [null]}`), &expr))
	require.Len(t, expr.And, 1)
	require.Nil(t, expr.And[0])

	assert.Error(t, expr.Validate())
	assert.False(t, expr.Eval(map[string]interface{}{"environment": "dev"}))
	assert.False(t, expr.ReferencesResource())

	var or Expression
	require.NoError(t, json.Unmarshal([]byte(`{"or": [null, {"field":"environment","operator":"==","value":"dev"}]}`), &or))
	assert.Error(t, or.Validate())
	assert.True(t, or.Eval(map[string]interface{}{"environment": "dev"}))
}

func TestReferencesResource(t *testing.T) {
	assert.True(t, leaf("resource.size", OpEq, "t3.micro").ReferencesResource())
	assert.True(t, leaf("resource.tags.env", OpEq, "prod").ReferencesResource())
	assert.False(t, leaf("environment", OpEq, "dev").ReferencesResource())

	nested := &Expression{And: []*Expression{
		leaf("environment", OpEq, "dev"),
		&Expression{Or: []*Expression{leaf("resource.type", OpEq, "aws_instance")}},
	}}
	assert.True(t, nested.ReferencesResource())
}
