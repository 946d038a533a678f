// Package terraform provides Terraform HCL parsing into the canonical
// resource model. Expressions are evaluated without a variable context:
// variables, module calls and conditionals degrade to defaults rather
// than erroring.
package terraform

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/zap"

	"finopsguard/core/parser"
	"finopsguard/core/types"
	"finopsguard/internal/errors"
	"finopsguard/internal/logging"
)

// Parser implements parser.Parser for Terraform HCL
type Parser struct{}

// NewParser creates a Terraform parser
func NewParser() *Parser {
	return &Parser{}
}

// Format returns the IaC format
func (p *Parser) Format() types.IaCFormat {
	return types.FormatTerraform
}

// Parse converts raw HCL into a canonical resource model
func (p *Parser) Parse(ctx context.Context, src []byte) (*types.CanonicalResourceModel, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, "input.tf")
	if diags.HasErrors() {
		return nil, parseError(src, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, errors.Parsing("unexpected HCL body type", "")
	}

	providerDefaults := extractProviderDefaults(body)

	model := types.NewModel()
	for _, block := range body.Blocks {
		if block.Type != "resource" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Timeout("parse cancelled")
		}

		res, err := p.parseResource(block, providerDefaults)
		if err != nil {
			return nil, err
		}
		if res != nil {
			model.Add(*res)
		}
	}

	return model, nil
}

// parseResource converts one resource block, or returns (nil, nil) when
// the resource type is unsupported
func (p *Parser) parseResource(block *hclsyntax.Block, providerDefaults map[types.Cloud]string) (*types.CanonicalResource, error) {
	if len(block.Labels) < 2 {
		name := ""
		if len(block.Labels) == 1 {
			name = block.Labels[0]
		}
		return nil, errors.Parsing("resource block missing type or name label", name)
	}

	resourceType := block.Labels[0]
	resourceName := block.Labels[1]

	cloud := types.CloudForResourceType(resourceType)
	if cloud == types.CloudUnknown {
		logging.Debug("skipping resource with unknown cloud prefix",
			zap.String("type", resourceType), zap.String("name", resourceName))
		return nil, nil
	}

	extractor, ok := parser.LookupExtractor(cloud, resourceType)
	if !ok {
		logging.Debug("skipping unsupported resource type",
			zap.String("type", resourceType), zap.String("name", resourceName))
		return nil, nil
	}

	attrs := bodyToMap(block.Body)

	size, ok := parser.LookupString(attrs, extractor.SizePaths)
	if !ok {
		size = extractor.DefaultSize
	}

	region := resolveRegion(cloud, attrs, extractor.RegionPaths, providerDefaults)

	return &types.CanonicalResource{
		Type:     resourceType,
		Name:     resourceName,
		Region:   region,
		Size:     size,
		Count:    extractCount(attrs),
		Tags:     extractTags(attrs),
		Metadata: extractMetadata(extractor, block),
	}, nil
}

// extractProviderDefaults collects default regions from provider blocks
func extractProviderDefaults(body *hclsyntax.Body) map[types.Cloud]string {
	defaults := make(map[types.Cloud]string)

	for _, block := range body.Blocks {
		if block.Type != "provider" || len(block.Labels) < 1 {
			continue
		}

		var cloud types.Cloud
		switch block.Labels[0] {
		case "aws":
			cloud = types.CloudAWS
		case "google", "google-beta":
			cloud = types.CloudGCP
		case "azurerm":
			cloud = types.CloudAzure
		default:
			continue
		}

		attrs := bodyToMap(block.Body)
		if region, ok := parser.LookupString(attrs, []string{"region", "zone", "location"}); ok {
			defaults[cloud] = normalizeRegion(cloud, region)
		}
	}

	return defaults
}

// resolveRegion applies the precedence chain:
// explicit resource attribute > provider default > per-cloud fallback
func resolveRegion(cloud types.Cloud, attrs map[string]interface{}, regionPaths []string, providerDefaults map[types.Cloud]string) string {
	if region, ok := parser.LookupString(attrs, regionPaths); ok {
		return normalizeRegion(cloud, region)
	}
	if region, ok := providerDefaults[cloud]; ok {
		return region
	}
	return cloud.DefaultRegion()
}

// normalizeRegion reduces GCP zones ("us-central1-a") to their region
func normalizeRegion(cloud types.Cloud, region string) string {
	if cloud != types.CloudGCP {
		return region
	}
	parts := strings.Split(region, "-")
	if len(parts) == 3 && len(parts[2]) == 1 {
		return parts[0] + "-" + parts[1]
	}
	return region
}

// extractCount reads the count meta-argument.
// Non-literal count expressions (conditionals, references) default to 1,
// a documented approximation.
func extractCount(attrs map[string]interface{}) int {
	v, ok := attrs["count"]
	if !ok {
		return 1
	}
	if f, ok := v.(float64); ok && f >= 1 {
		return int(f)
	}
	return 1
}

// extractTags reads the tags (or labels, for GCP) attribute
func extractTags(attrs map[string]interface{}) map[string]string {
	for _, key := range []string{"tags", "labels"} {
		raw, ok := attrs[key]
		if !ok {
			continue
		}
		m, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		tags := make(map[string]string, len(m))
		for k, v := range m {
			if s, ok := v.(string); ok {
				tags[k] = s
			} else if v != nil {
				tags[k] = fmt.Sprintf("%v", v)
			}
		}
		if len(tags) > 0 {
			return tags
		}
	}
	return nil
}

// extractMetadata records documentation attributes, never consulted for pricing
func extractMetadata(extractor parser.Extractor, block *hclsyntax.Block) map[string]interface{} {
	return map[string]interface{}{
		"category":    extractor.Category,
		"source_line": block.DefRange().Start.Line,
	}
}

// bodyToMap flattens an HCL body into plain Go values.
// Attributes that cannot be evaluated without a context (variables,
// function calls, references) are dropped; nested blocks become slices
// of maps so extractor paths can descend into them.
func bodyToMap(body *hclsyntax.Body) map[string]interface{} {
	out := make(map[string]interface{})

	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			continue
		}
		if converted, ok := ctyToGo(val); ok {
			out[name] = converted
		}
	}

	for _, block := range body.Blocks {
		nested := bodyToMap(block.Body)
		existing, _ := out[block.Type].([]interface{})
		out[block.Type] = append(existing, nested)
	}

	return out
}

// ctyToGo converts a cty value into plain Go types
func ctyToGo(val cty.Value) (interface{}, bool) {
	if val.IsNull() || !val.IsKnown() {
		return nil, false
	}

	switch {
	case val.Type() == cty.String:
		return val.AsString(), true
	case val.Type() == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f, true
	case val.Type() == cty.Bool:
		return val.True(), true
	case val.Type().IsListType() || val.Type().IsTupleType() || val.Type().IsSetType():
		var result []interface{}
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			if converted, ok := ctyToGo(elem); ok {
				result = append(result, converted)
			}
		}
		return result, true
	case val.Type().IsMapType() || val.Type().IsObjectType():
		result := make(map[string]interface{})
		for it := val.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			if converted, ok := ctyToGo(elem); ok {
				result[key.AsString()] = converted
			}
		}
		return result, true
	default:
		return nil, false
	}
}

// parseError converts HCL diagnostics into a parsing error with the
// closest available source context: the line number and, when a resource
// block header precedes the failure, the resource name
func parseError(src []byte, diags hcl.Diagnostics) error {
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		msg := diag.Summary
		if diag.Detail != "" {
			msg += ": " + diag.Detail
		}
		name := ""
		if diag.Subject != nil {
			name = enclosingResourceName(src, diag.Subject.Start.Line)
		}
		err := errors.Parsing(msg, name)
		if diag.Subject != nil {
			err = err.WithContext("line", diag.Subject.Start.Line)
		}
		return err
	}
	return errors.Parsing(diags.Error(), "")
}

// enclosingResourceName scans backwards from the diagnostic line for the
// nearest resource block header and returns its name label
func enclosingResourceName(src []byte, line int) string {
	lines := strings.Split(string(src), "\n")
	if line > len(lines) {
		line = len(lines)
	}
	for i := line - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, "resource ") {
			continue
		}
		parts := strings.Split(trimmed, "\"")
		// resource "type" "name" { splits into five or more parts
		if len(parts) >= 4 {
			return parts[3]
		}
		return ""
	}
	return ""
}

func init() {
	parser.RegisterFormat(NewParser())
}
