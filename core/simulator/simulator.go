// Package simulator turns a canonical resource model into a cost
// estimate. Pricing lookups run concurrently under a bounded worker
// limit; breakdown output preserves model parse order so identical
// input always yields identical output.
package simulator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"finopsguard/core/pricing"
	"finopsguard/core/types"
	"finopsguard/internal/errors"
	"finopsguard/internal/logging"
)

var (
	hoursPerMonth = decimal.NewFromInt(types.HoursPerMonth)
	daysPerMonth  = decimal.NewFromInt(30)
	daysPerWeek   = decimal.NewFromInt(7)
)

// Simulator estimates costs for canonical resource models
type Simulator struct {
	resolver       *pricing.Resolver
	maxConcurrency int
}

// New creates a simulator over the given resolver
func New(resolver *pricing.Resolver, maxConcurrency int) *Simulator {
	if maxConcurrency <= 0 {
		maxConcurrency = 8
	}
	return &Simulator{
		resolver:       resolver,
		maxConcurrency: maxConcurrency,
	}
}

// Simulate produces a cost estimate for the model.
// Pricing degradation never fails a simulation; the only error paths are
// a deadline expiring before any resource was priced.
func (s *Simulator) Simulate(ctx context.Context, model *types.CanonicalResourceModel, budget *types.BudgetRules) (*types.SimulationResult, error) {
	start := time.Now()

	quotes := s.resolveQuotes(ctx, model)

	result := &types.SimulationResult{
		BreakdownByResource: make([]types.CostBreakdownEntry, 0, model.Len()),
		RiskFlags:           make([]string, 0),
		PricingConfidence:   types.ConfidenceHigh,
	}

	total := decimal.Zero
	priced := 0

	for i, res := range model.Resources {
		entry := types.CostBreakdownEntry{
			ResourceID: res.ID,
			Type:       res.Type,
			Size:       res.Size,
		}

		quote := quotes[i]
		if quote == nil {
			entry.MonthlyCost = decimal.Zero
			entry.Notes = append(entry.Notes, "not priced: request deadline exceeded")
			result.BreakdownByResource = append(result.BreakdownByResource, entry)
			continue
		}
		priced++

		entry.MonthlyCost = quote.HourlyPrice.
			Mul(decimal.NewFromInt(int64(res.Count))).
			Mul(hoursPerMonth)
		entry.Notes = append(entry.Notes, quoteNote(quote))

		total = total.Add(entry.MonthlyCost)
		result.PricingConfidence = result.PricingConfidence.Worst(quote.Confidence)
		result.BreakdownByResource = append(result.BreakdownByResource, entry)
	}

	if ctx.Err() != nil {
		if priced == 0 && model.Len() > 0 {
			return nil, errors.Timeout("analysis deadline exceeded before any resource was priced")
		}
		if priced < model.Len() {
			result.RiskFlags = append(result.RiskFlags, types.RiskAnalysisTimeout)
		}
	}

	result.EstimatedMonthlyCost = total
	result.EstimatedFirstWeekCost = total.Div(daysPerMonth).Mul(daysPerWeek)

	if budget != nil && budget.MonthlyBudget != nil && total.GreaterThan(*budget.MonthlyBudget) {
		result.RiskFlags = append(result.RiskFlags, types.RiskOverBudget)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// resolveQuotes prices every resource concurrently under the worker
// bound. Results land at the resource's own index, so ordering is
// unaffected by completion order.
func (s *Simulator) resolveQuotes(ctx context.Context, model *types.CanonicalResourceModel) []*types.PriceQuote {
	quotes := make([]*types.PriceQuote, model.Len())

	sem := make(chan struct{}, s.maxConcurrency)
	var wg sync.WaitGroup

	for i := range model.Resources {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			res := &model.Resources[i]
			quote, err := s.resolver.Resolve(ctx, res.Cloud(), res.Size, res.Region)
			if err != nil {
				// Invalid cloud cannot normally reach here; treat as unpriced
				logging.Warn("pricing resolution failed",
					zap.String("resource", res.ID), zap.Error(err))
				return
			}
			quotes[i] = quote
		}(i)
	}

	wg.Wait()
	return quotes
}

func quoteNote(q *types.PriceQuote) string {
	switch q.Source {
	case types.SourceLive:
		return "price source: live API (high confidence)"
	case types.SourceStatic:
		return "price source: static catalog (medium confidence)"
	default:
		return fmt.Sprintf("no price match for %q; default placeholder applied (low confidence)", q.SKU)
	}
}
