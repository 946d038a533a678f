// Package aws registers resource extractors for AWS resource types.
// Each entry declares where the billable SKU lives for one resource type;
// adding coverage is a new entry here, never a change to core dispatch.
package aws

import (
	"finopsguard/core/parser"
	"finopsguard/core/types"
)

func extractors() []parser.Extractor {
	region := []string{"region"}

	e := func(resourceType, category, defaultSize string, sizePaths ...string) parser.Extractor {
		return parser.Extractor{
			Cloud:        types.CloudAWS,
			ResourceType: resourceType,
			SizePaths:    sizePaths,
			DefaultSize:  defaultSize,
			RegionPaths:  region,
			Category:     category,
		}
	}

	return []parser.Extractor{
		// Compute
		e("aws_instance", "compute", "t3.micro", "instance_type"),
		e("aws_launch_template", "compute", "t3.micro", "instance_type"),
		e("aws_launch_configuration", "compute", "t3.micro", "instance_type"),
		e("aws_autoscaling_group", "compute", "t3.micro", "instance_type", "launch_template.instance_type"),
		e("aws_ec2_host", "compute", "c5", "instance_family", "instance_type"),

		// Containers
		e("aws_eks_cluster", "containers", "eks-control-plane"),
		e("aws_eks_node_group", "containers", "t3.medium", "instance_types"),
		e("aws_ecs_cluster", "containers", "ecs-cluster"),
		e("aws_ecs_service", "containers", "fargate-task"),
		e("aws_ecr_repository", "containers", "ecr-repo"),

		// Serverless
		e("aws_lambda_function", "serverless", "128", "memory_size"),
		e("aws_sfn_state_machine", "serverless", "standard", "type"),

		// Database
		e("aws_db_instance", "database", "db.t3.micro", "instance_class"),
		e("aws_rds_cluster", "database", "aurora-cluster"),
		e("aws_rds_cluster_instance", "database", "db.r5.large", "instance_class"),
		e("aws_elasticache_cluster", "database", "cache.t3.micro", "node_type"),
		e("aws_elasticache_replication_group", "database", "cache.t3.micro", "node_type"),
		e("aws_dynamodb_table", "database", "PAY_PER_REQUEST", "billing_mode"),
		e("aws_redshift_cluster", "database", "dc2.large", "node_type"),
		e("aws_docdb_cluster_instance", "database", "db.r5.large", "instance_class"),
		e("aws_neptune_cluster_instance", "database", "db.r5.large", "instance_class"),
		e("aws_memorydb_cluster", "database", "db.t4g.small", "node_type"),

		// Analytics
		e("aws_opensearch_domain", "analytics", "t3.small.search", "cluster_config.instance_type"),
		e("aws_elasticsearch_domain", "analytics", "t3.small.elasticsearch",
			"cluster_config.instance_type", "elasticsearch_cluster_config.instance_type"),

		// Storage
		e("aws_s3_bucket", "storage", "standard"),
		e("aws_ebs_volume", "storage", "gp3", "type"),
		e("aws_ebs_snapshot", "storage", "ebs-snapshot"),
		e("aws_efs_file_system", "storage", "efs-standard"),
		e("aws_fsx_lustre_file_system", "storage", "fsx-lustre", "deployment_type"),
		e("aws_glacier_vault", "storage", "glacier"),
		e("aws_backup_vault", "storage", "backup-vault"),

		// Networking
		e("aws_lb", "networking", "application", "load_balancer_type"),
		e("aws_alb", "networking", "application", "load_balancer_type"),
		e("aws_elb", "networking", "classic"),
		e("aws_nat_gateway", "networking", "nat-gateway"),
		e("aws_eip", "networking", "eip"),
		e("aws_vpn_connection", "networking", "vpn-connection"),
		e("aws_vpc_endpoint", "networking", "interface", "vpc_endpoint_type"),

		// CDN / DNS
		e("aws_cloudfront_distribution", "cdn", "PriceClass_All", "price_class"),
		e("aws_route53_zone", "dns", "hosted-zone"),

		// Streaming / Messaging
		e("aws_kinesis_stream", "streaming", "kinesis-shard"),
		e("aws_msk_cluster", "streaming", "kafka.m5.large", "broker_node_group_info.instance_type"),
		e("aws_mq_broker", "messaging", "mq.t3.micro", "host_instance_type"),
		e("aws_sqs_queue", "messaging", "sqs-queue"),
		e("aws_sns_topic", "messaging", "sns-topic"),

		// API Gateway
		e("aws_api_gateway_rest_api", "apigateway", "rest-api"),
		e("aws_apigatewayv2_api", "apigateway", "http-api"),

		// ML
		e("aws_sagemaker_notebook_instance", "ml", "ml.t3.medium", "instance_type"),

		// Observability / Security
		e("aws_cloudwatch_log_group", "observability", "cw-logs"),
		e("aws_secretsmanager_secret", "security", "secret"),
		e("aws_kms_key", "security", "kms-key"),
	}
}

func init() {
	for _, e := range extractors() {
		parser.RegisterExtractor(e)
	}
}
