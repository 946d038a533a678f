// Package cmd - pricing commands
package cmd

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"finopsguard/core/engine"
	"finopsguard/core/types"
	"finopsguard/internal/config"
)

var hoursPerMonth = decimal.NewFromInt(types.HoursPerMonth)

var pricingCmd = &cobra.Command{
	Use:   "pricing",
	Short: "Pricing resolution utilities",
}

var pricingLookupCmd = &cobra.Command{
	Use:   "lookup <cloud> <sku> [region]",
	Short: "Resolve a unit price through the pricing cascade",
	Long: `Resolve the hourly price for a cloud/SKU pair.

Resolution follows the same cascade as analysis: live API (when
enabled), static catalog, then the low-confidence placeholder.

Examples:
  finopsguard pricing lookup aws t3.medium
  finopsguard pricing lookup gcp e2-medium europe-west1`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runPricingLookup,
}

func init() {
	pricingCmd.AddCommand(pricingLookupCmd)
}

func runPricingLookup(cmd *cobra.Command, args []string) error {
	cloud := types.Cloud(args[0])
	if !cloud.IsValid() {
		return fmt.Errorf("unknown cloud %q (use aws, gcp, or azure)", args[0])
	}

	sku := args[1]
	region := cloud.DefaultRegion()
	if len(args) > 2 {
		region = args[2]
	}

	eng, err := engine.New(config.Get())
	if err != nil {
		return err
	}

	quote, err := eng.ResolvePrice(context.Background(), cloud, sku, region)
	if err != nil {
		return err
	}

	fmt.Printf("Cloud:      %s\n", quote.Cloud)
	fmt.Printf("SKU:        %s\n", quote.SKU)
	fmt.Printf("Region:     %s\n", quote.Region)
	fmt.Printf("Hourly:     $%s\n", quote.HourlyPrice.String())
	fmt.Printf("Monthly:    $%s (x%d hours)\n",
		quote.HourlyPrice.Mul(hoursPerMonth).StringFixed(2), types.HoursPerMonth)
	fmt.Printf("Source:     %s\n", quote.Source)
	fmt.Printf("Confidence: %s\n", quote.Confidence)
	return nil
}
