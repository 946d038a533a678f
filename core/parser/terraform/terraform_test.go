package terraform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finopsguard/core/types"
	"finopsguard/internal/errors"

	_ "finopsguard/clouds/aws"
	_ "finopsguard/clouds/azure"
	_ "finopsguard/clouds/gcp"
)

func parse(t *testing.T, src string) *types.CanonicalResourceModel {
	t.Helper()
	model, err := NewParser().Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	return model
}

func TestParseInstanceWithCount(t *testing.T) {
	model := parse(t, `
provider "aws" {
  region = "us-east-1"
}

resource "aws_instance" "web" {
  instance_type = "t3.medium"
  count         = 3
  tags = {
    env = "prod"
  }
}
`)
	require.Equal(t, 1, model.Len())

	res := model.Resources[0]
	assert.Equal(t, "aws_instance", res.Type)
	assert.Equal(t, "web", res.Name)
	assert.Equal(t, "t3.medium", res.Size)
	assert.Equal(t, "us-east-1", res.Region)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, "prod", res.Tags["env"])
	assert.NotEmpty(t, res.ID)
}

func TestParseIdempotent(t *testing.T) {
	src := `
resource "aws_instance" "web" {
  instance_type = "t3.medium"
}

resource "aws_db_instance" "db" {
  instance_class = "db.t3.micro"
}
`
	first := parse(t, src)
	second := parse(t, src)
	assert.Equal(t, first, second)
}

func TestRegionPrecedence(t *testing.T) {
	// explicit resource attribute wins over provider default
	model := parse(t, `
provider "aws" {
  region = "us-west-2"
}

resource "aws_instance" "explicit" {
  instance_type     = "t3.micro"
  availability_zone = "eu-west-1a"
  region            = "eu-west-1"
}

resource "aws_instance" "provider_default" {
  instance_type = "t3.micro"
}
`)
	require.Equal(t, 2, model.Len())
	assert.Equal(t, "eu-west-1", model.Resources[0].Region)
	assert.Equal(t, "us-west-2", model.Resources[1].Region)
}

func TestRegionCloudFallback(t *testing.T) {
	model := parse(t, `
resource "aws_instance" "a" {
  instance_type = "t3.micro"
}

resource "google_compute_instance" "b" {
  machine_type = "e2-medium"
}

resource "azurerm_linux_virtual_machine" "c" {
  size = "Standard_B1s"
}
`)
	require.Equal(t, 3, model.Len())
	assert.Equal(t, "us-east-1", model.Resources[0].Region)
	assert.Equal(t, "us-central1", model.Resources[1].Region)
	assert.Equal(t, "eastus", model.Resources[2].Region)
}

func TestGCPZoneNormalizedToRegion(t *testing.T) {
	model := parse(t, `
resource "google_compute_instance" "vm" {
  machine_type = "e2-medium"
  zone         = "us-central1-a"
}
`)
	require.Equal(t, 1, model.Len())
	assert.Equal(t, "us-central1", model.Resources[0].Region)
}

func TestNestedBlockSizeExtraction(t *testing.T) {
	model := parse(t, `
resource "azurerm_kubernetes_cluster" "aks" {
  location = "westeurope"

  default_node_pool {
    name       = "default"
    vm_size    = "Standard_DS2_v2"
    node_count = 3
  }
}
`)
	require.Equal(t, 1, model.Len())
	assert.Equal(t, "Standard_DS2_v2", model.Resources[0].Size)
	assert.Equal(t, "westeurope", model.Resources[0].Region)
}

func TestDefaultSizeWhenAttributeMissing(t *testing.T) {
	model := parse(t, `
resource "aws_instance" "bare" {
}
`)
	require.Equal(t, 1, model.Len())
	assert.Equal(t, "t3.micro", model.Resources[0].Size)
	assert.Equal(t, 1, model.Resources[0].Count)
}

func TestUnknownResourceTypesSkipped(t *testing.T) {
	model := parse(t, `
resource "aws_instance" "known" {
  instance_type = "t3.micro"
}

resource "kubernetes_deployment" "not_cloud" {
  replicas = 3
}

resource "aws_totally_unknown_thing" "no_extractor" {
  whatever = true
}
`)
	require.Equal(t, 1, model.Len())
	assert.Equal(t, "aws_instance", model.Resources[0].Type)
}

func TestMalformedHCLFails(t *testing.T) {
	_, err := NewParser().Parse(context.Background(), []byte(`resource "aws_instance" {{{`))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeParsing))
}

func TestParseErrorCarriesResourceName(t *testing.T) {
	_, err := NewParser().Parse(context.Background(), []byte(`
resource "aws_instance" "web" {
  instance_type =
}
`))
	require.Error(t, err)
	require.True(t, errors.IsType(err, errors.TypeParsing))

	e, ok := err.(*errors.Error)
	require.True(t, ok)
	assert.Equal(t, "web", e.Context["resource"])
	assert.NotNil(t, e.Context["line"])
}

func TestResourceMissingNameLabelFails(t *testing.T) {
	_, err := NewParser().Parse(context.Background(), []byte(`
resource "aws_instance" {
  instance_type = "t3.micro"
}
`))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeParsing))
}

func TestNonLiteralExpressionsDegrade(t *testing.T) {
	// variable references cannot be evaluated; size degrades to default
	model := parse(t, `
resource "aws_instance" "templated" {
  instance_type = var.instance_type
  count         = var.replicas
}
`)
	require.Equal(t, 1, model.Len())
	assert.Equal(t, "t3.micro", model.Resources[0].Size)
	assert.Equal(t, 1, model.Resources[0].Count)
}

func TestEmptySourceYieldsEmptyModel(t *testing.T) {
	model := parse(t, "")
	assert.Equal(t, 0, model.Len())
}

func TestEksNodeGroupListSize(t *testing.T) {
	model := parse(t, `
resource "aws_eks_node_group" "workers" {
  instance_types = ["m5.large", "m5.xlarge"]
}
`)
	require.Equal(t, 1, model.Len())
	assert.Equal(t, "m5.large", model.Resources[0].Size)
}
