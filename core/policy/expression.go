// Package policy - Expression tree
// Rule expressions form a tagged union Rule | And | Or evaluated by a
// pure recursive visitor, independent of the syntax used to author them.
package policy

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Operator is a rule comparison operator
type Operator string

const (
	OpEq         Operator = "=="
	OpNe         Operator = "!="
	OpGt         Operator = ">"
	OpLt         Operator = "<"
	OpGte        Operator = ">="
	OpLte        Operator = "<="
	OpIn         Operator = "IN"
	OpContains   Operator = "CONTAINS"
	OpStartsWith Operator = "STARTS_WITH"
	OpEndsWith   Operator = "ENDS_WITH"
)

// IsValid checks the operator is known
func (o Operator) IsValid() bool {
	switch o {
	case OpEq, OpNe, OpGt, OpLt, OpGte, OpLte, OpIn, OpContains, OpStartsWith, OpEndsWith:
		return true
	default:
		return false
	}
}

// Rule is a single field comparison
type Rule struct {
	Field    string      `json:"field"`
	Operator Operator    `json:"operator"`
	Value    interface{} `json:"value"`
}

// Expression is a node of the rule tree: exactly one of Rule, And, Or
// is set
type Expression struct {
	Rule *Rule         `json:"rule,omitempty"`
	And  []*Expression `json:"and,omitempty"`
	Or   []*Expression `json:"or,omitempty"`
}

// UnmarshalJSON accepts both the nested form {"and":[...]} and the
// shorthand leaf form {"field":..,"operator":..,"value":..}
func (e *Expression) UnmarshalJSON(data []byte) error {
	var node struct {
		Rule     *Rule         `json:"rule"`
		And      []*Expression `json:"and"`
		Or       []*Expression `json:"or"`
		Field    string        `json:"field"`
		Operator Operator      `json:"operator"`
		Value    interface{}   `json:"value"`
	}
	if err := json.Unmarshal(data, &node); err != nil {
		return err
	}

	e.Rule = node.Rule
	e.And = node.And
	e.Or = node.Or
	if e.Rule == nil && node.Field != "" {
		e.Rule = &Rule{Field: node.Field, Operator: node.Operator, Value: node.Value}
	}
	return nil
}

// knownFields are the context fields a rule may reference
var knownFields = map[string]bool{
	"environment":     true,
	"cost.monthly":    true,
	"resource.type":   true,
	"resource.size":   true,
	"resource.region": true,
	"resource.name":   true,
	"resource.count":  true,
}

func fieldKnown(field string) bool {
	return knownFields[field] || strings.HasPrefix(field, "resource.tags.")
}

// Validate checks the tree is well formed: one variant per node, known
// operators, known fields
func (e *Expression) Validate() error {
	set := 0
	if e.Rule != nil {
		set++
	}
	if len(e.And) > 0 {
		set++
	}
	if len(e.Or) > 0 {
		set++
	}
	if set != 1 {
		return fmt.Errorf("expression node must have exactly one of rule, and, or")
	}

	if e.Rule != nil {
		if !e.Rule.Operator.IsValid() {
			return fmt.Errorf("unknown operator %q", e.Rule.Operator)
		}
		if !fieldKnown(e.Rule.Field) {
			return fmt.Errorf("unknown field %q", e.Rule.Field)
		}
		return nil
	}

	for _, child := range append(e.And, e.Or...) {
		if child == nil {
			return fmt.Errorf("expression node is null")
		}
		if err := child.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ReferencesResource reports whether any rule in the tree references a
// resource.* field, which makes the owning policy resource-scoped
func (e *Expression) ReferencesResource() bool {
	if e.Rule != nil {
		return strings.HasPrefix(e.Rule.Field, "resource.")
	}
	for _, child := range append(e.And, e.Or...) {
		if child != nil && child.ReferencesResource() {
			return true
		}
	}
	return false
}

// Eval evaluates the tree bottom-up against a flattened context.
// Missing fields and type mismatches fail closed: the node is false,
// never an error.
func (e *Expression) Eval(ctx map[string]interface{}) bool {
	switch {
	case e.Rule != nil:
		return evalRule(e.Rule, ctx)
	case len(e.And) > 0:
		for _, child := range e.And {
			if child == nil || !child.Eval(ctx) {
				return false
			}
		}
		return true
	case len(e.Or) > 0:
		for _, child := range e.Or {
			if child != nil && child.Eval(ctx) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func evalRule(r *Rule, ctx map[string]interface{}) bool {
	actual, ok := ctx[r.Field]
	if !ok {
		return false
	}

	switch r.Operator {
	case OpEq:
		return looseEqual(actual, r.Value)
	case OpNe:
		return !looseEqual(actual, r.Value)
	case OpGt, OpLt, OpGte, OpLte:
		return numericCompare(r.Operator, actual, r.Value)
	case OpIn:
		return evalIn(actual, r.Value)
	case OpContains:
		return evalContains(actual, r.Value)
	case OpStartsWith:
		return stringPair(actual, r.Value, strings.HasPrefix)
	case OpEndsWith:
		return stringPair(actual, r.Value, strings.HasSuffix)
	default:
		return false
	}
}

// looseEqual compares numerically when both sides coerce to numbers,
// otherwise as strings
func looseEqual(a, b interface{}) bool {
	an, aok := toNumber(a)
	bn, bok := toNumber(b)
	if aok && bok {
		return an == bn
	}
	as, aok := toString(a)
	bs, bok := toString(b)
	return aok && bok && as == bs
}

func numericCompare(op Operator, a, b interface{}) bool {
	an, aok := toNumber(a)
	bn, bok := toNumber(b)
	if !aok || !bok {
		// Fail closed on type mismatch
		return false
	}
	switch op {
	case OpGt:
		return an > bn
	case OpLt:
		return an < bn
	case OpGte:
		return an >= bn
	default:
		return an <= bn
	}
}

// evalIn: the context value is a member of the rule's list
func evalIn(actual, value interface{}) bool {
	list, ok := value.([]interface{})
	if !ok {
		return false
	}
	for _, item := range list {
		if looseEqual(actual, item) {
			return true
		}
	}
	return false
}

// evalContains: collection membership when the context value is a list,
// substring when it is a string
func evalContains(actual, value interface{}) bool {
	if list, ok := actual.([]interface{}); ok {
		for _, item := range list {
			if looseEqual(item, value) {
				return true
			}
		}
		return false
	}
	return stringPair(actual, value, strings.Contains)
}

func stringPair(a, b interface{}, fn func(string, string) bool) bool {
	as, aok := toString(a)
	bs, bok := toString(b)
	return aok && bok && fn(as, bs)
}

func toNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case decimal.Decimal:
		return t.InexactFloat64(), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case bool:
		return strconv.FormatBool(t), true
	case decimal.Decimal:
		return t.String(), true
	default:
		return "", false
	}
}
