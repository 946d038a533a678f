package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finopsguard/core/types"
)

func TestLookupBaseRegion(t *testing.T) {
	c := Default()

	price, ok := c.Lookup(types.CloudAWS, "t3.medium", "us-east-1")
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("0.0416")), price.String())

	price, ok = c.Lookup(types.CloudGCP, "e2-medium", "us-central1")
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("0.033503")))

	price, ok = c.Lookup(types.CloudAzure, "Standard_DS2_v2", "eastus")
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.RequireFromString("0.114")))
}

func TestLookupUnknownSKU(t *testing.T) {
	c := Default()
	_, ok := c.Lookup(types.CloudAWS, "z1.imaginary", "us-east-1")
	assert.False(t, ok)

	// SKUs do not leak across clouds
	_, ok = c.Lookup(types.CloudGCP, "t3.medium", "us-central1")
	assert.False(t, ok)
}

func TestRegionMultipliers(t *testing.T) {
	c := Default()
	base, ok := c.Lookup(types.CloudAWS, "t3.medium", "us-east-1")
	require.True(t, ok)

	eu, ok := c.Lookup(types.CloudAWS, "t3.medium", "eu-west-1")
	require.True(t, ok)
	assert.True(t, eu.Equal(base.Mul(decimal.RequireFromString("1.08"))))

	ap, ok := c.Lookup(types.CloudAWS, "t3.medium", "ap-southeast-1")
	require.True(t, ok)
	assert.True(t, ap.Equal(base.Mul(decimal.RequireFromString("1.12"))))

	// Azure region naming matches the same geography rules
	azBase, ok := c.Lookup(types.CloudAzure, "Standard_B1s", "eastus")
	require.True(t, ok)
	azEU, ok := c.Lookup(types.CloudAzure, "Standard_B1s", "westeurope")
	require.True(t, ok)
	assert.True(t, azEU.Equal(azBase.Mul(decimal.RequireFromString("1.08"))))
}

func TestDefaultCatalogCoverage(t *testing.T) {
	c := Default()
	assert.Greater(t, c.Size(), 100)

	// entries the simulator leans on
	for _, probe := range []struct {
		cloud types.Cloud
		sku   string
	}{
		{types.CloudAWS, "db.t3.micro"},
		{types.CloudAWS, "eks-control-plane"},
		{types.CloudAWS, "nat-gateway"},
		{types.CloudGCP, "db-f1-micro"},
		{types.CloudGCP, "gke-control-plane"},
		{types.CloudAzure, "GP_Gen5_2"},
	} {
		_, ok := c.Lookup(probe.cloud, probe.sku, "")
		assert.True(t, ok, "%s:%s", probe.cloud, probe.sku)
	}
}
