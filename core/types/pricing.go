// Package types - Pricing types
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Confidence qualifies how trustworthy a price quote is
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// String returns the string representation
func (c Confidence) String() string {
	return string(c)
}

// rank orders confidences: low < medium < high
func (c Confidence) rank() int {
	switch c {
	case ConfidenceHigh:
		return 2
	case ConfidenceMedium:
		return 1
	default:
		return 0
	}
}

// Worst returns the lower of two confidence levels.
// Aggregate confidence of a simulation is the worst contributing quote.
func (c Confidence) Worst(other Confidence) Confidence {
	if other.rank() < c.rank() {
		return other
	}
	return c
}

// QuoteSource identifies which cascade step produced a quote
type QuoteSource string

const (
	// SourceLive - fetched from the cloud pricing API
	SourceLive QuoteSource = "live"

	// SourceStatic - looked up in the bundled static catalog
	SourceStatic QuoteSource = "static"

	// SourceDefault - placeholder price, nothing else matched
	SourceDefault QuoteSource = "default"
)

// String returns the string representation
func (s QuoteSource) String() string {
	return string(s)
}

// PriceQuote is the resolved unit price for a (cloud, sku, region) triple
type PriceQuote struct {
	// Cloud is the provider the quote applies to
	Cloud Cloud `json:"cloud"`

	// SKU is the provider size/tier string
	SKU string `json:"sku"`

	// Region is the pricing region
	Region string `json:"region"`

	// HourlyPrice is the USD price per hour, never negative
	HourlyPrice decimal.Decimal `json:"hourly_price"`

	// Confidence qualifies the quote
	Confidence Confidence `json:"confidence"`

	// Source identifies the cascade step that produced the quote
	Source QuoteSource `json:"source"`

	// FetchedAt is when the quote was obtained
	FetchedAt time.Time `json:"fetched_at"`
}
