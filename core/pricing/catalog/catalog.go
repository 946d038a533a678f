// Package catalog bundles the static pricing tables used as the
// medium-confidence fallback when live pricing is unavailable.
// Prices are on-demand hourly USD rates for the base region of each
// cloud; other regions apply a coarse multiplier.
package catalog

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"finopsguard/core/types"
)

// Catalog is an immutable SKU price table
type Catalog struct {
	prices      map[string]decimal.Decimal
	multipliers []regionMultiplier
}

type regionMultiplier struct {
	match  string
	factor decimal.Decimal
}

// New builds a catalog from per-cloud price tables
func New(tables map[types.Cloud]map[string]string) *Catalog {
	c := &Catalog{
		prices: make(map[string]decimal.Decimal),
		// Coarse geography multipliers over the base-region price,
		// matched against AWS, GCP and Azure region naming
		multipliers: []regionMultiplier{
			{match: "eu-", factor: decimal.RequireFromString("1.08")},
			{match: "europe", factor: decimal.RequireFromString("1.08")},
			{match: "ap-", factor: decimal.RequireFromString("1.12")},
			{match: "asia", factor: decimal.RequireFromString("1.12")},
			{match: "sa-east", factor: decimal.RequireFromString("1.20")},
			{match: "southamerica", factor: decimal.RequireFromString("1.20")},
		},
	}
	for cloud, table := range tables {
		for sku, price := range table {
			c.prices[string(cloud)+":"+sku] = decimal.RequireFromString(price)
		}
	}
	return c
}

// Lookup returns the hourly price for (cloud, sku, region)
func (c *Catalog) Lookup(cloud types.Cloud, sku, region string) (decimal.Decimal, bool) {
	price, ok := c.prices[string(cloud)+":"+sku]
	if !ok {
		return decimal.Zero, false
	}
	return price.Mul(c.regionFactor(region)), true
}

// Size returns the number of SKU entries
func (c *Catalog) Size() int {
	return len(c.prices)
}

func (c *Catalog) regionFactor(region string) decimal.Decimal {
	for _, m := range c.multipliers {
		if strings.Contains(region, m.match) {
			return m.factor
		}
	}
	return decimal.NewFromInt(1)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the bundled catalog
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = New(map[types.Cloud]map[string]string{
			types.CloudAWS:   awsPrices,
			types.CloudGCP:   gcpPrices,
			types.CloudAzure: azurePrices,
		})
	})
	return defaultCatalog
}
