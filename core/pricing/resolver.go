// Package pricing - Resolver
package pricing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"finopsguard/core/pricing/catalog"
	"finopsguard/core/types"
	"finopsguard/internal/errors"
)

// Options configures a resolver
type Options struct {
	// LiveEnabled lists clouds allowed to call live pricing APIs
	LiveEnabled map[string]bool

	// StaticFallbackEnabled enables the bundled static catalog step
	StaticFallbackEnabled bool

	// DefaultHourlyPrice is the low-confidence placeholder price
	DefaultHourlyPrice decimal.Decimal

	// LiveCallTimeout bounds a single live pricing API call
	LiveCallTimeout time.Duration

	// TTLs per cascade step
	LiveTTL    time.Duration
	StaticTTL  time.Duration
	DefaultTTL time.Duration
}

// DefaultOptions returns production defaults: live pricing off, static
// fallback on
func DefaultOptions() Options {
	return Options{
		LiveEnabled:           map[string]bool{},
		StaticFallbackEnabled: true,
		DefaultHourlyPrice:    decimal.RequireFromString("0.05"),
		LiveCallTimeout:       3 * time.Second,
		LiveTTL:               6 * time.Hour,
		StaticTTL:             24 * time.Hour,
		DefaultTTL:            time.Hour,
	}
}

// Resolver resolves unit prices through the source cascade.
// Explicitly constructed and injected; owns its own cache.
type Resolver struct {
	sources []Source
	cache   *Cache
}

// NewResolver builds a resolver from options and optional live clients
func NewResolver(opts Options, clients ...LiveClient) *Resolver {
	clientMap := make(map[types.Cloud]LiveClient, len(clients))
	for _, c := range clients {
		clientMap[c.Cloud()] = c
	}

	sources := []Source{
		&liveSource{
			clients:     clientMap,
			enabled:     opts.LiveEnabled,
			callTimeout: opts.LiveCallTimeout,
			ttl:         opts.LiveTTL,
		},
	}
	if opts.StaticFallbackEnabled {
		sources = append(sources, &staticSource{
			catalog: catalog.Default(),
			ttl:     opts.StaticTTL,
		})
	}
	sources = append(sources, &defaultSource{
		price: opts.DefaultHourlyPrice,
		ttl:   opts.DefaultTTL,
	})

	return &Resolver{
		sources: sources,
		cache:   NewCache(),
	}
}

// NewResolverWithSources builds a resolver over explicit sources,
// used by tests to inject fakes
func NewResolverWithSources(sources ...Source) *Resolver {
	return &Resolver{
		sources: sources,
		cache:   NewCache(),
	}
}

// Resolve returns a price quote for the triple.
// The only error path is an invalid cloud identifier; pricing
// unavailability is absorbed by the cascade.
func (r *Resolver) Resolve(ctx context.Context, cloud types.Cloud, sku, region string) (*types.PriceQuote, error) {
	if !cloud.IsValid() {
		return nil, errors.Pricing("invalid cloud identifier: "+cloud.String(), nil)
	}

	key := cloud.String() + ":" + sku + ":" + region
	if quote, ok := r.cache.Get(key); ok {
		return quote, nil
	}

	for _, source := range r.sources {
		quote, ok := source.Quote(ctx, cloud, sku, region)
		if !ok {
			continue
		}
		r.cache.Set(key, quote, source.TTL())
		return quote, nil
	}

	// Reached only when constructed without a default source
	return nil, errors.Pricing("no pricing source produced a quote", nil)
}

// Flush clears the quote cache
func (r *Resolver) Flush() {
	r.cache.Flush()
}

// CacheSize returns the number of cached quotes
func (r *Resolver) CacheSize() int {
	return r.cache.Size()
}
