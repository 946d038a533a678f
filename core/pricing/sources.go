// Package pricing - Cascade sources
// Each step of the fallback chain is an explicit Source strategy that
// either produces a tagged quote or passes. Failure of a step is never
// surfaced; the next step absorbs it.
package pricing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"finopsguard/core/pricing/catalog"
	"finopsguard/core/types"
	"finopsguard/internal/logging"
)

// LiveClient fetches live hourly prices from one cloud's pricing API
type LiveClient interface {
	// Cloud returns the provider this client serves
	Cloud() types.Cloud

	// FetchLivePrice returns the hourly USD price for a SKU in a region
	FetchLivePrice(ctx context.Context, sku, region string) (decimal.Decimal, error)
}

// Source is one step of the resolution cascade
type Source interface {
	// Name identifies the cascade step
	Name() types.QuoteSource

	// Quote attempts to produce a price quote; false means pass to the
	// next step
	Quote(ctx context.Context, cloud types.Cloud, sku, region string) (*types.PriceQuote, bool)

	// TTL is how long quotes from this source may be cached
	TTL() time.Duration
}

// liveSource queries per-cloud live pricing clients with a bounded
// per-call timeout
type liveSource struct {
	clients     map[types.Cloud]LiveClient
	enabled     map[string]bool
	callTimeout time.Duration
	ttl         time.Duration
}

func (s *liveSource) Name() types.QuoteSource { return types.SourceLive }
func (s *liveSource) TTL() time.Duration      { return s.ttl }

func (s *liveSource) Quote(ctx context.Context, cloud types.Cloud, sku, region string) (*types.PriceQuote, bool) {
	if !s.enabled[cloud.String()] {
		return nil, false
	}
	client, ok := s.clients[cloud]
	if !ok {
		return nil, false
	}

	callCtx := ctx
	if s.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
	}

	price, err := client.FetchLivePrice(callCtx, sku, region)
	if err != nil {
		// Absorbed: timeout, auth and rate-limit failures all degrade
		// to the next cascade step
		logging.Warn("live pricing failed, falling back",
			zap.String("cloud", cloud.String()),
			zap.String("sku", sku),
			zap.String("region", region),
			zap.Error(err))
		return nil, false
	}
	if price.IsNegative() {
		logging.Warn("live pricing returned negative price, falling back",
			zap.String("cloud", cloud.String()), zap.String("sku", sku))
		return nil, false
	}

	return &types.PriceQuote{
		Cloud:       cloud,
		SKU:         sku,
		Region:      region,
		HourlyPrice: price,
		Confidence:  types.ConfidenceHigh,
		Source:      types.SourceLive,
		FetchedAt:   time.Now(),
	}, true
}

// staticSource looks up the bundled static catalog
type staticSource struct {
	catalog *catalog.Catalog
	ttl     time.Duration
}

func (s *staticSource) Name() types.QuoteSource { return types.SourceStatic }
func (s *staticSource) TTL() time.Duration      { return s.ttl }

func (s *staticSource) Quote(_ context.Context, cloud types.Cloud, sku, region string) (*types.PriceQuote, bool) {
	price, ok := s.catalog.Lookup(cloud, sku, region)
	if !ok {
		return nil, false
	}
	return &types.PriceQuote{
		Cloud:       cloud,
		SKU:         sku,
		Region:      region,
		HourlyPrice: price,
		Confidence:  types.ConfidenceMedium,
		Source:      types.SourceStatic,
		FetchedAt:   time.Now(),
	}, true
}

// defaultSource always quotes the configured placeholder price, keeping
// the resolver total: an analysis never fails for lack of pricing data
type defaultSource struct {
	price decimal.Decimal
	ttl   time.Duration
}

func (s *defaultSource) Name() types.QuoteSource { return types.SourceDefault }
func (s *defaultSource) TTL() time.Duration      { return s.ttl }

func (s *defaultSource) Quote(_ context.Context, cloud types.Cloud, sku, region string) (*types.PriceQuote, bool) {
	logging.Info("no price match, using default placeholder",
		zap.String("cloud", cloud.String()),
		zap.String("sku", sku),
		zap.String("region", region))
	return &types.PriceQuote{
		Cloud:       cloud,
		SKU:         sku,
		Region:      region,
		HourlyPrice: s.price,
		Confidence:  types.ConfidenceLow,
		Source:      types.SourceDefault,
		FetchedAt:   time.Now(),
	}, true
}
