// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

import "strings"

// Cloud represents a cloud provider
type Cloud string

const (
	CloudAWS     Cloud = "aws"
	CloudGCP     Cloud = "gcp"
	CloudAzure   Cloud = "azure"
	CloudUnknown Cloud = "unknown"
)

// String returns the string representation of the cloud
func (c Cloud) String() string {
	return string(c)
}

// IsValid checks if the cloud is a known provider
func (c Cloud) IsValid() bool {
	switch c {
	case CloudAWS, CloudGCP, CloudAzure:
		return true
	default:
		return false
	}
}

// DefaultRegion returns the hardcoded fallback region for the cloud.
// Used when neither the resource nor a provider block declares one.
func (c Cloud) DefaultRegion() string {
	switch c {
	case CloudAWS:
		return "us-east-1"
	case CloudGCP:
		return "us-central1"
	case CloudAzure:
		return "eastus"
	default:
		return ""
	}
}

// CloudForResourceType determines the cloud from a resource type prefix
// (e.g. "aws_instance" -> aws, "azurerm_virtual_machine" -> azure)
func CloudForResourceType(resourceType string) Cloud {
	switch {
	case strings.HasPrefix(resourceType, "aws_"):
		return CloudAWS
	case strings.HasPrefix(resourceType, "google_"):
		return CloudGCP
	case strings.HasPrefix(resourceType, "azurerm_"):
		return CloudAzure
	default:
		return CloudUnknown
	}
}

// IaCFormat identifies the input IaC flavor
type IaCFormat string

const (
	FormatTerraform IaCFormat = "terraform"
	FormatAnsible   IaCFormat = "ansible"
)

// String returns the string representation
func (f IaCFormat) String() string {
	return string(f)
}

// IsValid checks if the format is supported
func (f IaCFormat) IsValid() bool {
	switch f {
	case FormatTerraform, FormatAnsible:
		return true
	default:
		return false
	}
}
