// Package azure registers resource extractors for Azure resource types.
package azure

import (
	"finopsguard/core/parser"
	"finopsguard/core/types"
)

func extractors() []parser.Extractor {
	region := []string{"location"}

	e := func(resourceType, category, defaultSize string, sizePaths ...string) parser.Extractor {
		return parser.Extractor{
			Cloud:        types.CloudAzure,
			ResourceType: resourceType,
			SizePaths:    sizePaths,
			DefaultSize:  defaultSize,
			RegionPaths:  region,
			Category:     category,
		}
	}

	return []parser.Extractor{
		// Compute
		e("azurerm_virtual_machine", "compute", "Standard_B1s", "vm_size"),
		e("azurerm_linux_virtual_machine", "compute", "Standard_B1s", "size"),
		e("azurerm_windows_virtual_machine", "compute", "Standard_B1s", "size"),
		e("azurerm_virtual_machine_scale_set", "compute", "Standard_B1s", "sku.name", "sku"),
		e("azurerm_linux_virtual_machine_scale_set", "compute", "Standard_B1s", "sku"),
		e("azurerm_app_service_plan", "compute", "B1", "sku.size", "sku.tier"),
		e("azurerm_service_plan", "compute", "B1", "sku_name"),

		// Containers
		e("azurerm_kubernetes_cluster", "containers", "Standard_DS2_v2", "default_node_pool.vm_size"),
		e("azurerm_kubernetes_cluster_node_pool", "containers", "Standard_DS2_v2", "vm_size"),
		e("azurerm_container_group", "containers", "container-group"),

		// Serverless
		e("azurerm_function_app", "serverless", "consumption"),

		// Database
		e("azurerm_sql_database", "database", "GP_Gen5_2", "sku_name"),
		e("azurerm_mssql_database", "database", "GP_Gen5_2", "sku_name"),
		e("azurerm_postgresql_server", "database", "GP_Gen5_2", "sku_name"),
		e("azurerm_postgresql_flexible_server", "database", "GP_Standard_D2s_v3", "sku_name"),
		e("azurerm_mysql_server", "database", "GP_Gen5_2", "sku_name"),
		e("azurerm_redis_cache", "database", "Standard", "sku_name"),
		e("azurerm_cosmosdb_account", "database", "Standard", "offer_type"),

		// Storage
		e("azurerm_storage_account", "storage", "Standard", "account_tier"),
		e("azurerm_managed_disk", "storage", "Standard_LRS", "storage_account_type"),

		// Networking
		e("azurerm_lb", "networking", "Basic", "sku"),
		e("azurerm_public_ip", "networking", "Basic", "sku"),
		e("azurerm_application_gateway", "networking", "Standard_v2", "sku.name"),
		e("azurerm_nat_gateway", "networking", "nat-gateway", "sku_name"),

		// Messaging
		e("azurerm_eventhub_namespace", "messaging", "Standard", "sku"),
		e("azurerm_servicebus_namespace", "messaging", "Standard", "sku"),
	}
}

func init() {
	for _, e := range extractors() {
		parser.RegisterExtractor(e)
	}
}
