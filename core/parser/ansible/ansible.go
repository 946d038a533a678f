// Package ansible provides Ansible playbook parsing into the canonical
// resource model. Cloud modules (amazon.aws, google.cloud,
// azure.azcollection) are mapped to their canonical resource types; task
// arguments are treated as resource attributes. Jinja templating is not
// evaluated - templated values degrade to defaults.
package ansible

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"finopsguard/core/parser"
	"finopsguard/core/types"
	"finopsguard/internal/errors"
	"finopsguard/internal/logging"
)

// moduleTypes maps Ansible module names (short and fully qualified) to
// the canonical cloud-prefixed resource type
var moduleTypes = map[string]string{
	// AWS (amazon.aws / community.aws collections)
	"ec2_instance":        "aws_instance",
	"ec2":                 "aws_instance",
	"rds_instance":        "aws_db_instance",
	"rds":                 "aws_db_instance",
	"elasticache":         "aws_elasticache_cluster",
	"lambda":              "aws_lambda_function",
	"s3_bucket":           "aws_s3_bucket",
	"eks_cluster":         "aws_eks_cluster",
	"ecs_cluster":         "aws_ecs_cluster",
	"elb_application_lb":  "aws_lb",
	"ec2_eip":             "aws_eip",
	"dynamodb_table":      "aws_dynamodb_table",
	"redshift":            "aws_redshift_cluster",
	"ec2_vol":             "aws_ebs_volume",

	// GCP (google.cloud collection)
	"gcp_compute_instance":      "google_compute_instance",
	"gcp_container_cluster":     "google_container_cluster",
	"gcp_sql_instance":          "google_sql_database_instance",
	"gcp_storage_bucket":        "google_storage_bucket",
	"gcp_compute_disk":          "google_compute_disk",
	"gcp_redis_instance":        "google_redis_instance",

	// Azure (azure.azcollection collection)
	"azure_rm_virtualmachine":     "azurerm_virtual_machine",
	"azure_rm_aks":                "azurerm_kubernetes_cluster",
	"azure_rm_postgresqlserver":   "azurerm_postgresql_server",
	"azure_rm_mysqlserver":        "azurerm_mysql_server",
	"azure_rm_storageaccount":     "azurerm_storage_account",
	"azure_rm_rediscache":         "azurerm_redis_cache",
	"azure_rm_sqlserver":          "azurerm_sql_server",
}

// Parser implements parser.Parser for Ansible playbooks
type Parser struct{}

// NewParser creates an Ansible parser
func NewParser() *Parser {
	return &Parser{}
}

// Format returns the IaC format
func (p *Parser) Format() types.IaCFormat {
	return types.FormatAnsible
}

// Parse converts a YAML playbook into a canonical resource model
func (p *Parser) Parse(ctx context.Context, src []byte) (*types.CanonicalResourceModel, error) {
	var root interface{}
	if err := yaml.Unmarshal(src, &root); err != nil {
		return nil, errors.Parsing(fmt.Sprintf("invalid playbook YAML: %v", err), "")
	}

	var plays []interface{}
	switch t := root.(type) {
	case []interface{}:
		plays = t
	case map[string]interface{}:
		// single play without the enclosing list
		plays = []interface{}{t}
	case nil:
		return types.NewModel(), nil
	default:
		return nil, errors.Parsing("playbook root must be a list of plays", "")
	}

	model := types.NewModel()
	for _, rawPlay := range plays {
		if err := ctx.Err(); err != nil {
			return nil, errors.Timeout("parse cancelled")
		}

		play, ok := rawPlay.(map[string]interface{})
		if !ok {
			return nil, errors.Parsing("play is not a mapping", "")
		}

		playDefaults := playRegionDefaults(play)
		for _, section := range []string{"pre_tasks", "tasks", "post_tasks"} {
			tasks, _ := play[section].([]interface{})
			if err := p.parseTasks(tasks, playDefaults, model); err != nil {
				return nil, err
			}
		}
	}

	return model, nil
}

// parseTasks walks a task list, descending into block/rescue/always groups
func (p *Parser) parseTasks(tasks []interface{}, defaults map[types.Cloud]string, model *types.CanonicalResourceModel) error {
	for _, rawTask := range tasks {
		task, ok := rawTask.(map[string]interface{})
		if !ok {
			return errors.Parsing("task is not a mapping", "")
		}

		grouped := false
		for _, group := range []string{"block", "rescue", "always"} {
			if nested, ok := task[group].([]interface{}); ok {
				grouped = true
				if err := p.parseTasks(nested, defaults, model); err != nil {
					return err
				}
			}
		}
		if grouped {
			continue
		}

		if res := p.parseTask(task, defaults); res != nil {
			model.Add(*res)
		}
	}
	return nil
}

// parseTask converts one task, or returns nil when no supported cloud
// module is present
func (p *Parser) parseTask(task map[string]interface{}, defaults map[types.Cloud]string) *types.CanonicalResource {
	moduleName, args := findCloudModule(task)
	if moduleName == "" {
		return nil
	}

	resourceType, ok := moduleTypes[moduleName]
	if !ok {
		logging.Debug("skipping unsupported ansible module", zap.String("module", moduleName))
		return nil
	}

	cloud := types.CloudForResourceType(resourceType)
	extractor, ok := parser.LookupExtractor(cloud, resourceType)
	if !ok {
		logging.Debug("skipping ansible module without extractor",
			zap.String("module", moduleName), zap.String("type", resourceType))
		return nil
	}

	name, _ := task["name"].(string)
	if name == "" {
		name, _ = args["name"].(string)
	}
	if name == "" {
		name = moduleName
	}

	size, ok := parser.LookupString(args, extractor.SizePaths)
	if !ok || templated(size) {
		size = extractor.DefaultSize
	}

	region := ""
	if r, ok := parser.LookupString(args, append(extractor.RegionPaths, "region", "zone", "location")); ok && !templated(r) {
		region = r
	} else if r, ok := defaults[cloud]; ok {
		region = r
	} else {
		region = cloud.DefaultRegion()
	}

	return &types.CanonicalResource{
		Type:   resourceType,
		Name:   name,
		Region: region,
		Size:   size,
		Count:  taskCount(args),
		Tags:   taskTags(args),
		Metadata: map[string]interface{}{
			"category":       extractor.Category,
			"ansible_module": moduleName,
		},
	}
}

// templated reports whether a value carries unevaluated Jinja syntax
func templated(s string) bool {
	return strings.Contains(s, "{{")
}

// findCloudModule locates the cloud module key in a task.
// Fully qualified collection names are reduced to their final segment.
func findCloudModule(task map[string]interface{}) (string, map[string]interface{}) {
	for key, value := range task {
		short := key
		if idx := strings.LastIndex(key, "."); idx >= 0 {
			short = key[idx+1:]
		}
		if _, known := moduleTypes[short]; !known {
			continue
		}
		if args, ok := value.(map[string]interface{}); ok {
			return short, args
		}
		// module invoked without args (bare key)
		return short, map[string]interface{}{}
	}
	return "", nil
}

// playRegionDefaults reads region defaults from play vars
func playRegionDefaults(play map[string]interface{}) map[types.Cloud]string {
	defaults := make(map[types.Cloud]string)
	vars, ok := play["vars"].(map[string]interface{})
	if !ok {
		return defaults
	}

	// Probed in order; the first var set for a cloud wins
	for _, probe := range []struct {
		key   string
		cloud types.Cloud
	}{
		{"aws_region", types.CloudAWS},
		{"region", types.CloudAWS},
		{"gcp_region", types.CloudGCP},
		{"azure_location", types.CloudAzure},
	} {
		if v, ok := vars[probe.key].(string); ok && v != "" {
			if _, taken := defaults[probe.cloud]; !taken {
				defaults[probe.cloud] = v
			}
		}
	}
	return defaults
}

// taskCount reads count/exact_count, defaulting to 1 for absent or
// templated values
func taskCount(args map[string]interface{}) int {
	for _, key := range []string{"count", "exact_count"} {
		switch v := args[key].(type) {
		case int:
			if v >= 1 {
				return v
			}
		case float64:
			if v >= 1 {
				return int(v)
			}
		}
	}
	return 1
}

// taskTags reads the tags argument
func taskTags(args map[string]interface{}) map[string]string {
	raw, ok := args["tags"].(map[string]interface{})
	if !ok {
		return nil
	}
	tags := make(map[string]string, len(raw))
	for k, v := range raw {
		tags[k] = fmt.Sprintf("%v", v)
	}
	return tags
}

func init() {
	parser.RegisterFormat(NewParser())
}
