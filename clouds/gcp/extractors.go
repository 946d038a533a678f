// Package gcp registers resource extractors for Google Cloud resource types.
package gcp

import (
	"finopsguard/core/parser"
	"finopsguard/core/types"
)

func extractors() []parser.Extractor {
	region := []string{"region", "zone", "location"}

	e := func(resourceType, category, defaultSize string, sizePaths ...string) parser.Extractor {
		return parser.Extractor{
			Cloud:        types.CloudGCP,
			ResourceType: resourceType,
			SizePaths:    sizePaths,
			DefaultSize:  defaultSize,
			RegionPaths:  region,
			Category:     category,
		}
	}

	return []parser.Extractor{
		// Compute
		e("google_compute_instance", "compute", "e2-medium", "machine_type"),
		e("google_compute_instance_template", "compute", "e2-medium", "machine_type"),
		e("google_compute_instance_group_manager", "compute", "e2-medium"),

		// Containers
		e("google_container_cluster", "containers", "gke-control-plane", "node_config.machine_type"),
		e("google_container_node_pool", "containers", "e2-medium", "node_config.machine_type"),
		e("google_cloud_run_service", "containers", "cloud-run"),

		// Serverless
		e("google_cloudfunctions_function", "serverless", "256", "available_memory_mb"),

		// Database
		e("google_sql_database_instance", "database", "db-f1-micro", "settings.tier"),
		e("google_spanner_instance", "database", "spanner-node"),
		e("google_bigtable_instance", "database", "bigtable-node"),
		e("google_redis_instance", "database", "BASIC", "tier"),

		// Analytics
		e("google_bigquery_dataset", "analytics", "bigquery"),
		e("google_dataproc_cluster", "analytics", "n1-standard-4",
			"cluster_config.master_config.machine_type"),

		// Storage
		e("google_compute_disk", "storage", "pd-standard", "type"),
		e("google_storage_bucket", "storage", "STANDARD", "storage_class"),
		e("google_filestore_instance", "storage", "BASIC_HDD", "tier"),

		// Networking
		e("google_compute_forwarding_rule", "networking", "forwarding-rule"),
		e("google_compute_router_nat", "networking", "cloud-nat"),
		e("google_compute_address", "networking", "static-ip"),

		// Messaging / DNS
		e("google_pubsub_topic", "messaging", "pubsub-topic"),
		e("google_dns_managed_zone", "dns", "dns-zone"),
	}
}

func init() {
	for _, e := range extractors() {
		parser.RegisterExtractor(e)
	}
}
