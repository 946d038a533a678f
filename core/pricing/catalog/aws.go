// Package catalog - AWS static price table
// On-demand hourly USD rates, us-east-1 baseline.
package catalog

var awsPrices = map[string]string{
	// EC2 general purpose
	"t2.micro":   "0.0116",
	"t2.small":   "0.023",
	"t2.medium":  "0.0464",
	"t3.micro":   "0.0104",
	"t3.small":   "0.0208",
	"t3.medium":  "0.0416",
	"t3.large":   "0.0832",
	"t3.xlarge":  "0.1664",
	"t3.2xlarge": "0.3328",
	"m5.large":   "0.096",
	"m5.xlarge":  "0.192",
	"m5.2xlarge": "0.384",
	"m6i.large":  "0.096",
	"m6i.xlarge": "0.192",

	// EC2 compute/memory optimized
	"c5.large":   "0.085",
	"c5.xlarge":  "0.17",
	"c5.2xlarge": "0.34",
	"c6i.large":  "0.085",
	"r5.large":   "0.126",
	"r5.xlarge":  "0.252",
	"r6i.large":  "0.126",

	// GPU
	"p3.2xlarge": "3.06",
	"g4dn.xlarge": "0.526",

	// RDS
	"db.t3.micro":  "0.017",
	"db.t3.small":  "0.034",
	"db.t3.medium": "0.068",
	"db.m5.large":  "0.171",
	"db.m5.xlarge": "0.342",
	"db.r5.large":  "0.24",
	"db.r5.xlarge": "0.48",
	"db.t4g.small": "0.032",

	// ElastiCache / MemoryDB
	"cache.t3.micro":  "0.017",
	"cache.t3.small":  "0.034",
	"cache.t3.medium": "0.068",
	"cache.m5.large":  "0.156",
	"cache.r5.large":  "0.216",

	// Redshift / OpenSearch
	"dc2.large":          "0.25",
	"ra3.xlplus":         "1.086",
	"t3.small.search":    "0.036",
	"m5.large.search":    "0.142",
	"t3.small.elasticsearch": "0.036",

	// MSK / MQ / SageMaker
	"kafka.m5.large":  "0.21",
	"kafka.m5.xlarge": "0.42",
	"mq.t3.micro":     "0.03",
	"ml.t3.medium":    "0.0582",

	// Aurora / DocumentDB defaults
	"aurora-cluster": "0.12",

	// Containers / serverless control planes
	"eks-control-plane": "0.10",
	"ecs-cluster":       "0",
	"fargate-task":      "0.04048",
	"ecr-repo":          "0.00014",
	"128":               "0.0000021",
	"256":               "0.0000042",
	"512":               "0.0000083",
	"1024":              "0.0000167",
	"standard":          "0.0000315",

	// Storage (per-unit hourly placeholders)
	"gp2":           "0.0137",
	"gp3":           "0.011",
	"io1":           "0.0171",
	"io2":           "0.0171",
	"st1":           "0.0062",
	"efs-standard":  "0.041",
	"fsx-lustre":    "0.067",
	"glacier":       "0.00055",
	"backup-vault":  "0.0069",
	"ebs-snapshot":  "0.0069",

	// Networking
	"application":    "0.0225",
	"network":        "0.0225",
	"gateway":        "0.0225",
	"classic":        "0.025",
	"nat-gateway":    "0.045",
	"eip":            "0.005",
	"vpn-connection": "0.05",
	"interface":      "0.01",
	"gatewaylb":      "0.0125",

	// CDN / DNS
	"PriceClass_All":     "0.0117",
	"PriceClass_200":     "0.0110",
	"PriceClass_100":     "0.0103",
	"hosted-zone":        "0.00068",

	// DynamoDB / streaming / messaging
	"PAY_PER_REQUEST": "0.00175",
	"PROVISIONED":     "0.00091",
	"kinesis-shard":   "0.015",
	"sqs-queue":       "0.00055",
	"sns-topic":       "0.00007",
	"rest-api":        "0.0048",
	"http-api":        "0.0014",

	// Observability / security
	"cw-logs": "0.00069",
	"secret":  "0.00055",
	"kms-key": "0.00137",
}
