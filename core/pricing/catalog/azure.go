// Package catalog - Azure static price table
// Pay-as-you-go hourly USD rates, eastus baseline.
package catalog

var azurePrices = map[string]string{
	// Virtual machines
	"Standard_B1s":    "0.0104",
	"Standard_B1ms":   "0.0207",
	"Standard_B2s":    "0.0416",
	"Standard_B2ms":   "0.0832",
	"Standard_D2s_v3": "0.096",
	"Standard_D4s_v3": "0.192",
	"Standard_DS2_v2": "0.114",
	"Standard_DS3_v2": "0.229",
	"Standard_E2s_v3": "0.126",
	"Standard_F2s_v2": "0.0846",
	"Standard_F4s_v2": "0.169",

	// App Service plans
	"B1": "0.075",
	"B2": "0.15",
	"S1": "0.10",
	"P1v2": "0.146",
	"P1v3": "0.166",

	// Databases
	"GP_Gen5_2":          "0.171",
	"GP_Gen5_4":          "0.342",
	"GP_Standard_D2s_v3": "0.171",
	"BC_Gen5_2":          "0.461",
	"S0":                 "0.0202",
	"S1_db":              "0.0403",

	// Shared tier names (redis, storage, eventhub, servicebus, cosmos)
	"Basic":    "0.02",
	"Standard": "0.03",
	"Premium":  "0.10",

	// Storage
	"Standard_LRS":    "0.0026",
	"StandardSSD_LRS": "0.0052",
	"Premium_LRS":     "0.0093",

	// Containers / serverless
	"container-group": "0.045",
	"consumption":     "0.0000002",

	// Networking
	"Standard_v2": "0.246",
	"WAF_v2":      "0.443",
	"nat-gateway": "0.045",
}
