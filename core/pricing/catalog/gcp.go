// Package catalog - GCP static price table
// On-demand hourly USD rates, us-central1 baseline.
package catalog

var gcpPrices = map[string]string{
	// Compute Engine
	"e2-micro":       "0.008376",
	"e2-small":       "0.016751",
	"e2-medium":      "0.033503",
	"e2-standard-2":  "0.067006",
	"e2-standard-4":  "0.134012",
	"e2-standard-8":  "0.268025",
	"n1-standard-1":  "0.0475",
	"n1-standard-2":  "0.095",
	"n1-standard-4":  "0.19",
	"n2-standard-2":  "0.0971",
	"n2-standard-4":  "0.1942",
	"c2-standard-4":  "0.2088",
	"n1-highmem-2":   "0.1184",

	// GKE / Cloud Run / Functions
	"gke-control-plane": "0.10",
	"cloud-run":         "0.0648",
	"256":               "0.000463",
	"512":               "0.000925",

	// Cloud SQL / Spanner / Bigtable / Memorystore
	"db-f1-micro":        "0.015",
	"db-g1-small":        "0.05",
	"db-n1-standard-1":   "0.0965",
	"db-n1-standard-2":   "0.193",
	"db-custom-2-7680":   "0.1883",
	"spanner-node":       "0.90",
	"bigtable-node":      "0.65",
	"BASIC":              "0.049",
	"STANDARD_HA":        "0.066",

	// Storage
	"pd-standard": "0.0055",
	"pd-balanced": "0.0137",
	"pd-ssd":      "0.0233",
	"STANDARD":    "0.0027",
	"NEARLINE":    "0.0014",
	"COLDLINE":    "0.0005",
	"BASIC_HDD":   "0.0274",
	"BASIC_SSD":   "0.0411",

	// Analytics
	"bigquery": "0.0068",

	// Networking
	"forwarding-rule": "0.025",
	"cloud-nat":       "0.044",
	"static-ip":       "0.01",

	// Messaging / DNS
	"pubsub-topic": "0.00055",
	"dns-zone":     "0.00027",
}
